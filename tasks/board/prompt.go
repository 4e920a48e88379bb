package board

import (
	"unicode"

	"github.com/GabrielDSAlves/jogo/hal"
)

type promptKind uint8

const (
	promptNone promptKind = iota
	promptDivisions
	promptEquation
)

func (k promptKind) label() string {
	switch k {
	case promptDivisions:
		return "Divide into (integer):"
	case promptEquation:
		return "Equation (e.g. 2x+1=x+3):"
	default:
		return ""
	}
}

func (k promptKind) maxLen() int {
	switch k {
	case promptDivisions:
		return 2
	case promptEquation:
		return 40
	default:
		return 0
	}
}

func (k promptKind) accepts(r rune) bool {
	switch k {
	case promptDivisions:
		return r >= '0' && r <= '9'
	case promptEquation:
		return r < unicode.MaxASCII && unicode.IsPrint(r)
	default:
		return false
	}
}

type promptResult uint8

const (
	promptPending promptResult = iota
	promptSubmit
	promptCancel
)

// prompt is a modal one-line text input.
type prompt struct {
	kind  promptKind
	input []rune
}

func (p *prompt) open(kind promptKind) {
	p.kind = kind
	p.input = p.input[:0]
}

func (p *prompt) active() bool { return p.kind != promptNone }

func (p *prompt) text() string { return string(p.input) }

// key feeds one key press. On submit or cancel the prompt closes; the
// caller reads the kind and text from the returned values.
func (p *prompt) key(ev hal.KeyEvent) (promptKind, string, promptResult) {
	kind := p.kind
	if !ev.Press || kind == promptNone {
		return kind, "", promptPending
	}

	switch ev.Code {
	case hal.KeyEnter:
		text := p.text()
		p.kind = promptNone
		return kind, text, promptSubmit
	case hal.KeyEscape:
		p.kind = promptNone
		return kind, "", promptCancel
	case hal.KeyBackspace, hal.KeyDelete:
		if len(p.input) > 0 {
			p.input = p.input[:len(p.input)-1]
		}
		return kind, "", promptPending
	}

	switch ev.Rune {
	case '\r', '\n':
		text := p.text()
		p.kind = promptNone
		return kind, text, promptSubmit
	case 0x1b:
		p.kind = promptNone
		return kind, "", promptCancel
	case 0x08, 0x7f:
		if len(p.input) > 0 {
			p.input = p.input[:len(p.input)-1]
		}
		return kind, "", promptPending
	}

	if kind.accepts(ev.Rune) && len(p.input) < kind.maxLen() {
		p.input = append(p.input, ev.Rune)
	}
	return kind, "", promptPending
}
