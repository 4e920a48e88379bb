// Package board is the framebuffer front end of the balance board: it turns
// keyboard and pointer events into intents and draws the session every frame.
package board

import (
	"log/slog"
	"strconv"

	"tinygo.org/x/tinyfont"

	"github.com/GabrielDSAlves/jogo/board/layout"
	"github.com/GabrielDSAlves/jogo/board/piece"
	"github.com/GabrielDSAlves/jogo/board/session"
	"github.com/GabrielDSAlves/jogo/hal"
	"github.com/GabrielDSAlves/jogo/kernel"
	"github.com/GabrielDSAlves/jogo/proto"
)

type dragState struct {
	active  bool
	id      int
	off     piece.Point
	pos     piece.Point
	pending bool
}

// Task owns no board state: every change goes through the mailbox and is
// applied by the session once per frame.
type Task struct {
	disp  hal.Display
	kbd   hal.Keyboard
	ptr   hal.Pointer
	clock hal.Time

	s   *session.Session
	mb  *kernel.Mailbox
	log *slog.Logger

	fb hal.Framebuffer
	d  *fbDisplayer

	font       tinyfont.Fonter
	fontHeight int16

	geom   layout.Geometry
	prompt prompt
	cursor piece.Point
	drag   dragState

	dropped int
}

func New(h hal.HAL, s *session.Session, mb *kernel.Mailbox, log *slog.Logger) *Task {
	if log == nil {
		log = slog.Default()
	}
	t := &Task{
		s:    s,
		mb:   mb,
		log:  log,
		geom: s.Geometry(),
	}
	if h != nil {
		t.disp = h.Display()
		t.clock = h.Time()
		if in := h.Input(); in != nil {
			t.kbd = in.Keyboard()
			t.ptr = in.Pointer()
		}
	}
	if t.disp != nil {
		t.fb = t.disp.Framebuffer()
		if t.fb != nil {
			t.d = &fbDisplayer{fb: t.fb}
		}
	}
	if !t.initFont() {
		t.font = nil
	}
	return t
}

// Step runs one frame: poll input, post intents, apply them, draw.
func (t *Task) Step() error {
	t.pollKeyboard()
	t.pollPointer()
	t.pollClock()

	t.s.Drain(t.mb)
	t.render(t.s.Snapshot())
	return nil
}

func (t *Task) pollKeyboard() {
	if t.kbd == nil {
		return
	}
	for {
		select {
		case ev := <-t.kbd.Events():
			t.handleKey(ev)
		default:
			return
		}
	}
}

func (t *Task) pollPointer() {
	if t.ptr == nil {
		return
	}
	for {
		select {
		case ev := <-t.ptr.Events():
			t.handlePointer(ev)
		default:
			t.flushDrag()
			return
		}
	}
}

func (t *Task) pollClock() {
	if t.clock == nil {
		return
	}
	if dt := t.clock.Elapsed(); dt > 0 {
		t.post(proto.MsgTick, proto.TickPayload(dt.Seconds()))
	}
}

func (t *Task) handleKey(ev hal.KeyEvent) {
	if !ev.Press {
		return
	}

	if t.prompt.active() {
		kind, text, res := t.prompt.key(ev)
		switch res {
		case promptSubmit:
			t.submitPrompt(kind, text)
		case promptCancel:
			if kind == promptDivisions {
				t.post(proto.MsgSetDivisions, proto.SetDivisionsPayload(0))
			}
		}
		return
	}

	switch ev.Rune {
	case 'n', 'N':
		t.post(proto.MsgNewEquation, nil)
	case 'c', 'C':
		t.post(proto.MsgClear, nil)
	case 'd', 'D':
		t.prompt.open(promptDivisions)
	case 'e', 'E':
		t.prompt.open(promptEquation)
	default:
		if slot, ok := paletteShortcut(ev.Rune); ok {
			t.post(proto.MsgAddPiece, proto.AddPiecePayload(slot.kind, slot.sign))
		}
	}
}

func (t *Task) submitPrompt(kind promptKind, text string) {
	switch kind {
	case promptDivisions:
		n, err := strconv.Atoi(text)
		if err != nil {
			n = 0
		}
		t.post(proto.MsgSetDivisions, proto.SetDivisionsPayload(n))
	case promptEquation:
		t.post(proto.MsgLoadEquation, proto.LoadEquationPayload(text))
	}
}

func (t *Task) handlePointer(ev hal.PointerEvent) {
	pt := piece.Point{X: ev.X, Y: ev.Y}
	t.cursor = pt

	switch ev.Action {
	case hal.PointerMove:
		if t.drag.active {
			t.drag.pos = piece.Point{X: pt.X - t.drag.off.X, Y: pt.Y - t.drag.off.Y}
			t.drag.pending = true
		}

	case hal.PointerPress:
		if t.prompt.active() || t.drag.active {
			return
		}
		switch hitButton(pt) {
		case actionGenerate:
			t.post(proto.MsgNewEquation, nil)
			return
		case actionClear:
			t.post(proto.MsgClear, nil)
			return
		case actionDivide:
			t.prompt.open(promptDivisions)
			return
		}
		if slot, ok := hitPalette(pt); ok {
			t.post(proto.MsgAddPiece, proto.AddPiecePayload(slot.kind, slot.sign))
			return
		}

		// Hit-test against the board as it stands after earlier intents.
		t.s.Drain(t.mb)
		p, ok := t.s.PieceAt(pt)
		if !ok {
			return
		}
		t.drag = dragState{
			active: true,
			id:     p.ID,
			off:    piece.Point{X: pt.X - p.Pos.X, Y: pt.Y - p.Pos.Y},
			pos:    p.Pos,
		}
		t.post(proto.MsgBeginDrag, proto.PiecePayload(p.ID))

	case hal.PointerRelease:
		if !t.drag.active {
			return
		}
		t.flushDrag()
		t.post(proto.MsgDropPiece, proto.PiecePayload(t.drag.id))
		t.drag = dragState{}
	}
}

// flushDrag posts the latest drag position, coalescing motion events.
func (t *Task) flushDrag() {
	if !t.drag.active || !t.drag.pending {
		return
	}
	t.post(proto.MsgDragPiece, proto.DragPiecePayload(t.drag.id, t.drag.pos))
	t.drag.pending = false
}

// post queues an intent, draining the mailbox once if it is full.
func (t *Task) post(kind proto.Kind, payload []byte) {
	if session.Post(t.mb, kind, payload) {
		return
	}
	t.s.Drain(t.mb)
	if session.Post(t.mb, kind, payload) {
		return
	}
	t.dropped++
	t.log.Warn("intent dropped", "kind", kind, "dropped", t.dropped)
}
