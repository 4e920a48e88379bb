// Package tui is a terminal front end over the same board session.
package tui

import (
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/GabrielDSAlves/jogo/board/piece"
	"github.com/GabrielDSAlves/jogo/board/session"
)

const tickInterval = 50 * time.Millisecond

type promptKind uint8

const (
	promptNone promptKind = iota
	promptDivisions
	promptEquation
)

type tickMsg time.Time

type paletteKey struct {
	kind piece.Kind
	sign piece.Sign
}

var paletteKeys = map[string]paletteKey{
	"1": {piece.Constant, piece.Positive},
	"2": {piece.Constant, piece.Negative},
	"3": {piece.Variable, piece.Positive},
	"4": {piece.Variable, piece.Negative},
}

// Model is the bubbletea model. Board state lives in the session; the model
// only tracks the selection and the open prompt.
type Model struct {
	s *session.Session

	selected int
	prompt   promptKind
	input    textinput.Model

	lastTick time.Time
	width    int
	quitting bool
}

func New(s *session.Session) Model {
	ti := textinput.New()
	ti.CharLimit = 40
	ti.Width = 40
	return Model{s: s, input: ti}
}

func (m Model) Init() tea.Cmd {
	return tick()
}

func tick() tea.Cmd {
	return tea.Tick(tickInterval, func(t time.Time) tea.Msg { return tickMsg(t) })
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		return m, nil

	case tickMsg:
		now := time.Time(msg)
		if !m.lastTick.IsZero() {
			m.s.Tick(now.Sub(m.lastTick).Seconds())
		}
		m.lastTick = now
		return m, tick()

	case tea.KeyMsg:
		if m.prompt != promptNone {
			return m.updatePrompt(msg)
		}
		return m.updateBoard(msg)
	}
	return m, nil
}

func (m Model) updatePrompt(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEnter:
		text := strings.TrimSpace(m.input.Value())
		switch m.prompt {
		case promptDivisions:
			n, err := strconv.Atoi(text)
			if err != nil {
				n = 0
			}
			_ = m.s.SetDivisions(n)
		case promptEquation:
			_, _ = m.s.LoadEquation(text)
		}
		m.closePrompt()
		return m, nil

	case tea.KeyEsc:
		if m.prompt == promptDivisions {
			_ = m.s.SetDivisions(0)
		}
		m.closePrompt()
		return m, nil

	case tea.KeyCtrlC:
		m.quitting = true
		return m, tea.Quit
	}

	if m.prompt == promptDivisions && msg.Type == tea.KeyRunes {
		for _, r := range msg.Runes {
			if r < '0' || r > '9' {
				return m, nil
			}
		}
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m Model) updateBoard(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		m.quitting = true
		return m, tea.Quit
	case "n":
		m.s.NewEquation()
		m.selected = 0
	case "c":
		m.s.Clear()
		m.selected = 0
	case "d":
		cmd := m.openPrompt(promptDivisions, "divide into: ")
		return m, cmd
	case "e":
		cmd := m.openPrompt(promptEquation, "equation: ")
		return m, cmd
	case "up", "k", "shift+tab":
		m.selectStep(-1)
	case "down", "j", "tab":
		m.selectStep(1)
	case "left", "h":
		m.moveSelected(func(p piece.Piece) (piece.Side, int) { return piece.Left, p.Sub })
	case "right", "l":
		m.moveSelected(func(p piece.Piece) (piece.Side, int) { return piece.Right, p.Sub })
	case "[":
		m.moveSelected(func(p piece.Piece) (piece.Side, int) { return p.Side, max(0, p.Sub-1) })
	case "]":
		m.moveSelected(func(p piece.Piece) (piece.Side, int) { return p.Side, p.Sub + 1 })
	case "s":
		m.s.Settle()
	default:
		if pk, ok := paletteKeys[msg.String()]; ok {
			_ = m.s.AddPieceBothSides(pk.kind, pk.sign)
		}
	}
	return m, nil
}

func (m *Model) openPrompt(kind promptKind, label string) tea.Cmd {
	m.prompt = kind
	m.input.Prompt = label
	m.input.Reset()
	return tea.Batch(m.input.Focus(), textinput.Blink)
}

func (m *Model) closePrompt() {
	m.prompt = promptNone
	m.input.Blur()
	m.input.Reset()
}

// selectedPiece resolves the selection against the current board.
func (m Model) selectedPiece() (piece.Piece, bool) {
	pieces := m.s.Pieces()
	for _, p := range pieces {
		if p.ID == m.selected {
			return p, true
		}
	}
	if len(pieces) == 0 {
		return piece.Piece{}, false
	}
	return pieces[0], true
}

func (m *Model) selectStep(delta int) {
	pieces := m.s.Pieces()
	if len(pieces) == 0 {
		m.selected = 0
		return
	}
	cur, _ := m.selectedPiece()
	for i, p := range pieces {
		if p.ID == cur.ID {
			m.selected = pieces[(i+delta+len(pieces))%len(pieces)].ID
			return
		}
	}
}

func (m *Model) moveSelected(target func(piece.Piece) (piece.Side, int)) {
	p, ok := m.selectedPiece()
	if !ok {
		return
	}
	side, sub := target(p)
	if bands := m.s.Divisions(); sub >= bands {
		sub = max(0, bands-1)
	}
	m.selected = p.ID
	_, _ = m.s.MovePiece(p.ID, side, sub)
}
