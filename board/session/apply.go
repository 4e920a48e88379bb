package session

import (
	"errors"
	"fmt"

	"github.com/GabrielDSAlves/jogo/kernel"
	"github.com/GabrielDSAlves/jogo/proto"
)

// ErrBadMessage reports a message that does not decode into an intent.
var ErrBadMessage = errors.New("bad message")

// Apply decodes one intent and runs it.
func (s *Session) Apply(msg kernel.Message) error {
	kind := proto.Kind(msg.Kind)
	payload := msg.Payload()

	switch kind {
	case proto.MsgNewEquation:
		s.NewEquation()
		return nil

	case proto.MsgLoadEquation:
		text, ok := proto.DecodeLoadEquationPayload(payload)
		if !ok {
			return badMessage(kind)
		}
		_, err := s.LoadEquation(text)
		return err

	case proto.MsgClear:
		s.Clear()
		return nil

	case proto.MsgSetDivisions:
		n, ok := proto.DecodeSetDivisionsPayload(payload)
		if !ok {
			return badMessage(kind)
		}
		return s.SetDivisions(n)

	case proto.MsgAddPiece:
		k, sign, ok := proto.DecodeAddPiecePayload(payload)
		if !ok {
			return badMessage(kind)
		}
		return s.AddPieceBothSides(k, sign)

	case proto.MsgMovePiece:
		id, side, sub, ok := proto.DecodeMovePiecePayload(payload)
		if !ok {
			return badMessage(kind)
		}
		_, err := s.MovePiece(id, side, sub)
		return err

	case proto.MsgBeginDrag:
		id, ok := proto.DecodePiecePayload(payload)
		if !ok {
			return badMessage(kind)
		}
		return s.BeginDrag(id)

	case proto.MsgDragPiece:
		id, pos, ok := proto.DecodeDragPiecePayload(payload)
		if !ok {
			return badMessage(kind)
		}
		return s.DragTo(id, pos)

	case proto.MsgDropPiece:
		id, ok := proto.DecodePiecePayload(payload)
		if !ok {
			return badMessage(kind)
		}
		_, err := s.Drop(id)
		return err

	case proto.MsgSettle:
		s.Settle()
		return nil

	case proto.MsgTick:
		dt, ok := proto.DecodeTickPayload(payload)
		if !ok {
			return badMessage(kind)
		}
		s.Tick(dt)
		return nil

	default:
		return badMessage(kind)
	}
}

// Drain applies every queued message. Failed intents are logged and do not
// stop the drain; the count of applied messages is returned.
func (s *Session) Drain(mb *kernel.Mailbox) int {
	n := 0
	for {
		msg, ok := mb.TryRecv()
		if !ok {
			return n
		}
		n++
		if err := s.Apply(msg); err != nil {
			s.log.Debug("intent failed", "kind", proto.Kind(msg.Kind), "err", err)
		}
	}
}

// Post encodes an intent into mb. It reports false when the mailbox is full
// or the payload does not fit.
func Post(mb *kernel.Mailbox, kind proto.Kind, payload []byte) bool {
	msg, ok := kernel.NewMessage(uint16(kind), payload)
	if !ok {
		return false
	}
	return mb.TrySend(msg)
}

func badMessage(kind proto.Kind) error {
	return fmt.Errorf("%w: %s", ErrBadMessage, kind)
}
