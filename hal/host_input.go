package hal

// Host devices queue events for the board task. A full queue drops the
// newest event.

type hostKeyboard struct {
	ch    chan KeyEvent
	chars []rune
}

func newHostKeyboard() *hostKeyboard {
	return &hostKeyboard{ch: make(chan KeyEvent, 64)}
}

func (k *hostKeyboard) Events() <-chan KeyEvent { return k.ch }

func (k *hostKeyboard) emit(ev KeyEvent) {
	select {
	case k.ch <- ev:
	default:
	}
}

type hostPointer struct {
	ch     chan PointerEvent
	x, y   int
	primed bool
}

func newHostPointer() *hostPointer {
	return &hostPointer{ch: make(chan PointerEvent, 64)}
}

func (p *hostPointer) Events() <-chan PointerEvent { return p.ch }

// moveTo records the cursor and reports a move when it changed.
func (p *hostPointer) moveTo(x, y int) {
	if p.primed && x == p.x && y == p.y {
		return
	}
	p.x, p.y = x, y
	p.primed = true
	p.emit(PointerMove)
}

func (p *hostPointer) emit(action PointerAction) {
	select {
	case p.ch <- PointerEvent{Action: action, X: p.x, Y: p.y}:
	default:
	}
}
