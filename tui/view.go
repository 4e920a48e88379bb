package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/GabrielDSAlves/jogo/board/layout"
	"github.com/GabrielDSAlves/jogo/board/piece"
	"github.com/GabrielDSAlves/jogo/board/session"
)

var (
	titleStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("99"))
	equationStyle = lipgloss.NewStyle().Bold(true)
	messageStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("244"))
	solvedStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("34"))
	helpStyle     = lipgloss.NewStyle().Faint(true)
	sideStyle     = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1)
	bandStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
	unitStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("205"))
	varStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("69"))
	selectedStyle = lipgloss.NewStyle().Reverse(true)
	markerStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("220"))
)

const (
	minSideWidth = 28
	help         = "n new  e equation  d divide  c clear  1-4 palette  tab select  h/l side  [/] band  q quit"
)

func (m Model) View() string {
	if m.quitting {
		return ""
	}
	snap := m.s.Snapshot()
	sel, _ := m.selectedPiece()

	var b strings.Builder
	b.WriteString(titleStyle.Render("Balance board"))
	b.WriteString("\n\n")
	b.WriteString(equationStyle.Render(snap.Equation.String()))
	if n := len(snap.Markers); n > 0 {
		b.WriteString("  ")
		b.WriteString(markerStyle.Render(strings.Repeat("*", n)))
	}
	b.WriteString("\n")
	b.WriteString(messageStyle.Render(snap.Message))
	b.WriteString("\n\n")

	width := max(minSideWidth, (m.width-8)/2)
	left := sideStyle.Width(width).Render(renderSide(snap, piece.Left, sel.ID))
	right := sideStyle.Width(width).Render(renderSide(snap, piece.Right, sel.ID))
	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Center, left, " = ", right))
	b.WriteString("\n")

	if snap.Solved {
		b.WriteString(solvedStyle.Render(fmt.Sprintf("Solved: x = %d", snap.Solution)))
		b.WriteString("\n")
	}
	if m.prompt != promptNone {
		b.WriteString("\n")
		b.WriteString(m.input.View())
		b.WriteString("\n")
	}
	b.WriteString("\n")
	b.WriteString(helpStyle.Render(help))
	return b.String()
}

// renderSide lists a side's pieces band by band, in collection order.
func renderSide(snap session.Snapshot, side piece.Side, selected int) string {
	bands := layout.Bands(snap.Divisions)
	rows := make([][]string, bands)
	for _, p := range snap.Pieces {
		if p.Side != side {
			continue
		}
		sub := min(max(p.Sub, 0), bands-1)
		rows[sub] = append(rows[sub], token(p, p.ID == selected))
	}

	lines := make([]string, 0, bands*2)
	for i, row := range rows {
		if i > 0 {
			lines = append(lines, bandStyle.Render(strings.Repeat("-", minSideWidth-4)))
		}
		if len(row) == 0 {
			lines = append(lines, "")
			continue
		}
		lines = append(lines, strings.Join(row, " "))
	}
	return side.String() + "\n" + strings.Join(lines, "\n")
}

func token(p piece.Piece, selected bool) string {
	label := p.Kind.Label()
	if p.Sign == piece.Negative {
		label = "-" + label
	}
	var s string
	if p.Kind == piece.Variable {
		s = varStyle.Render("(" + label + ")")
	} else {
		s = unitStyle.Render("[" + label + "]")
	}
	if selected {
		return selectedStyle.Render(s)
	}
	return s
}
