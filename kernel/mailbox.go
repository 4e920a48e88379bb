// Package kernel carries intents from input adapters to the board actor.
package kernel

import (
	"runtime"
	"sync/atomic"
)

// MaxMessageBytes is the maximum payload size of a Message.
const MaxMessageBytes = 64

// Message is a fixed-size message envelope.
type Message struct {
	Kind uint16
	Len  uint16
	Data [MaxMessageBytes]byte
}

// NewMessage copies payload into a Message. It reports false when the
// payload does not fit.
func NewMessage(kind uint16, payload []byte) (Message, bool) {
	var msg Message
	if len(payload) > MaxMessageBytes {
		return msg, false
	}
	msg.Kind = kind
	msg.Len = uint16(len(payload))
	copy(msg.Data[:], payload)
	return msg, true
}

// Payload returns the used part of Data.
func (m *Message) Payload() []byte { return m.Data[:m.Len] }

const mailboxSlots = 16

type slot struct {
	// seq is stored relative to the slot index so the zero Mailbox is ready.
	seq atomic.Uint32
	msg Message
}

// Mailbox is a fixed-size multi-producer, single-consumer queue.
// It does not allocate; blocking calls spin with Gosched().
type Mailbox struct {
	_     [0]func() // prevent accidental copying.
	head  atomic.Uint32
	tail  atomic.Uint32
	slots [mailboxSlots]slot
}

// TrySend attempts to enqueue a message, returning false if the mailbox is full.
func (mb *Mailbox) TrySend(msg Message) bool {
	for {
		pos := mb.head.Load()
		idx := pos % mailboxSlots
		s := &mb.slots[idx]
		diff := int32(s.seq.Load() + idx - pos)
		switch {
		case diff == 0:
			if mb.head.CompareAndSwap(pos, pos+1) {
				s.msg = msg
				s.seq.Store(pos + 1 - idx)
				return true
			}
		case diff < 0:
			return false
		}
	}
}

// Send enqueues a message, blocking until it succeeds.
func (mb *Mailbox) Send(msg Message) {
	for !mb.TrySend(msg) {
		runtime.Gosched()
	}
}

// TryRecv attempts to dequeue one message, returning false if empty.
func (mb *Mailbox) TryRecv() (Message, bool) {
	for {
		pos := mb.tail.Load()
		idx := pos % mailboxSlots
		s := &mb.slots[idx]
		diff := int32(s.seq.Load() + idx - (pos + 1))
		switch {
		case diff == 0:
			if mb.tail.CompareAndSwap(pos, pos+1) {
				msg := s.msg
				s.seq.Store(pos + mailboxSlots - idx)
				return msg, true
			}
		case diff < 0:
			return Message{}, false
		}
	}
}

// Recv blocks until one message is available.
func (mb *Mailbox) Recv() Message {
	for {
		msg, ok := mb.TryRecv()
		if ok {
			return msg
		}
		runtime.Gosched()
	}
}

// Len is the number of queued messages. It is exact only when no other
// goroutine is using the mailbox.
func (mb *Mailbox) Len() int {
	return int(mb.head.Load() - mb.tail.Load())
}
