package tui

import (
	"io"
	"log/slog"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/GabrielDSAlves/jogo/board/equation"
	"github.com/GabrielDSAlves/jogo/board/generator"
	"github.com/GabrielDSAlves/jogo/board/piece"
	"github.com/GabrielDSAlves/jogo/board/session"
)

func newModel(t *testing.T) (Model, *session.Session) {
	t.Helper()
	s := session.New(session.Options{
		Source: generator.NewXorshift(11),
		Logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	})
	return New(s), s
}

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func send(m Model, msgs ...tea.Msg) Model {
	for _, msg := range msgs {
		next, _ := m.Update(msg)
		m = next.(Model)
	}
	return m
}

func typeText(m Model, s string) Model {
	for _, r := range s {
		m = send(m, runes(string(r)))
	}
	return m
}

func TestNewEquationAndClear(t *testing.T) {
	m, s := newModel(t)

	m = send(m, runes("n"))
	assert.NotEmpty(t, s.Pieces())

	m = send(m, runes("c"))
	assert.Empty(t, s.Pieces())
	assert.Equal(t, "Cleared.", s.Message())
	_ = m
}

func TestEquationPrompt(t *testing.T) {
	m, s := newModel(t)

	m = send(m, runes("e"))
	require.Equal(t, promptEquation, m.prompt)
	m = typeText(m, "2x+1=x+3")
	m = send(m, tea.KeyMsg{Type: tea.KeyEnter})

	assert.Equal(t, promptNone, m.prompt)
	assert.Equal(t, equation.Equation{AL: 2, BL: 1, AR: 1, BR: 3}, s.Equation())
	assert.Equal(t, "Equation loaded.", s.Message())
}

func TestDivisionsPromptDigitsOnly(t *testing.T) {
	m, s := newModel(t)

	m = send(m, runes("d"))
	m = typeText(m, "2a")
	assert.Equal(t, "2", m.input.Value())
	m = send(m, tea.KeyMsg{Type: tea.KeyEnter})
	assert.Equal(t, 2, s.Divisions())

	m = send(m, runes("d"), tea.KeyMsg{Type: tea.KeyEsc})
	assert.Equal(t, promptNone, m.prompt)
	assert.Equal(t, 2, s.Divisions())
	assert.Equal(t, "Division cancelled or invalid.", s.Message())
}

func TestPaletteAndMoves(t *testing.T) {
	m, s := newModel(t)
	_, err := s.LoadEquation("x-1=3")
	require.NoError(t, err)

	// Select the -1 (second piece) and push it to the right.
	m = send(m, tea.KeyMsg{Type: tea.KeyTab})
	sel, ok := m.selectedPiece()
	require.True(t, ok)
	assert.Equal(t, 2, sel.ID)

	m = send(m, runes("l"))
	assert.Equal(t, equation.Equation{AL: 1, BL: 0, AR: 0, BR: 2}, s.Equation())
	assert.Equal(t, "Pieces cancelled!", s.Message())

	m = send(m, runes("4"))
	assert.Equal(t, equation.Equation{AL: 0, BL: 0, AR: -1, BR: 2}.AR, s.Equation().AR)
	assert.Len(t, s.Pieces(), 5)

	m = send(m, runes("s"))
	assert.Equal(t, equation.Equation{AL: 0, BL: 0, AR: -1, BR: 2}, s.Equation())
	_ = m
}

func TestMoveBetweenBands(t *testing.T) {
	m, s := newModel(t)
	_, err := s.LoadEquation("x=3")
	require.NoError(t, err)
	require.NoError(t, s.SetDivisions(2))

	m = send(m, runes("]"))
	assert.Equal(t, 1, s.Pieces()[0].Sub)
	m = send(m, runes("]"))
	assert.Equal(t, 1, s.Pieces()[0].Sub, "band index is clamped")
	m = send(m, runes("["))
	assert.Equal(t, 0, s.Pieces()[0].Sub)
	assert.Equal(t, piece.Left, s.Pieces()[0].Side)
}

func TestTickAdvancesMarkers(t *testing.T) {
	m, s := newModel(t)
	_, err := s.LoadEquation("x-1=3")
	require.NoError(t, err)
	_, err = s.MovePiece(2, piece.Right, 0)
	require.NoError(t, err)
	require.Len(t, s.Markers(), 1)

	now := time.Now()
	m = send(m, tickMsg(now), tickMsg(now.Add(time.Second)))
	assert.Empty(t, s.Markers())
	_ = m
}

func TestQuit(t *testing.T) {
	m, _ := newModel(t)
	next, cmd := m.Update(runes("q"))
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
	assert.Empty(t, next.View())
}

func TestView(t *testing.T) {
	m, s := newModel(t)
	_, err := s.LoadEquation("2x+1=x+3")
	require.NoError(t, err)
	m = send(m, tea.WindowSizeMsg{Width: 100, Height: 40})

	out := m.View()
	assert.True(t, strings.Contains(out, "2x +1 = x +3"), out)
	assert.Contains(t, out, "(x)")
	assert.Contains(t, out, "[1]")
	assert.NotContains(t, out, "Solved")

	_, err = s.LoadEquation("x=3")
	require.NoError(t, err)
	assert.Contains(t, m.View(), "Solved: x = 3")
}

func TestTokenLabels(t *testing.T) {
	tests := []struct {
		kind piece.Kind
		sign piece.Sign
		want string
	}{
		{piece.Variable, piece.Positive, "(x)"},
		{piece.Variable, piece.Negative, "(-x)"},
		{piece.Constant, piece.Positive, "[1]"},
		{piece.Constant, piece.Negative, "[-1]"},
	}
	for _, tt := range tests {
		got := token(piece.Piece{Kind: tt.kind, Sign: tt.sign}, false)
		assert.Equal(t, tt.want, got)
	}
}
