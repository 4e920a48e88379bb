package tui

import (
	"context"
	"errors"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/GabrielDSAlves/jogo/board/session"
)

// Run blocks until the user quits or ctx is cancelled.
func Run(ctx context.Context, s *session.Session) error {
	p := tea.NewProgram(New(s), tea.WithContext(ctx), tea.WithAltScreen())
	_, err := p.Run()
	if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
		return ctx.Err()
	}
	return err
}
