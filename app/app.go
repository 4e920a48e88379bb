// Package app wires the board session, its mailbox and the framebuffer task
// onto a HAL.
package app

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/GabrielDSAlves/jogo/board/generator"
	"github.com/GabrielDSAlves/jogo/board/session"
	"github.com/GabrielDSAlves/jogo/config"
	"github.com/GabrielDSAlves/jogo/hal"
	"github.com/GabrielDSAlves/jogo/kernel"
	"github.com/GabrielDSAlves/jogo/logging"
	boardtask "github.com/GabrielDSAlves/jogo/tasks/board"
)

type system struct {
	s    *session.Session
	mb   kernel.Mailbox
	task *boardtask.Task
	log  *slog.Logger
}

// NewSession builds a session from cfg and deals the first equation.
func NewSession(cfg config.Config, log *slog.Logger) (*session.Session, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	seed := cfg.Generator.Seed
	if seed == 0 {
		seed = uint32(time.Now().UnixNano())
	}
	s := session.New(session.Options{
		Geometry: cfg.Geometry(),
		Source:   generator.NewXorshift(seed),
		Logger:   log,
	})
	s.NewEquation()
	if n := cfg.Board.Divisions; n > 0 {
		if err := s.SetDivisions(n); err != nil {
			return nil, fmt.Errorf("initial divisions: %w", err)
		}
	}
	return s, nil
}

// New starts the board on h and returns the per-frame step. Setup errors are
// reported by the first call to the step.
func New(h hal.HAL, cfg config.Config) func() error {
	level, err := logging.ParseLevel(cfg.Log.Level)
	if err != nil {
		return func() error { return err }
	}
	var out hal.Logger
	if h != nil {
		out = h.Logger()
	}
	log := logging.New(out, level)

	sys, err := newSystem(h, cfg, log)
	if err != nil {
		log.Error("board setup failed", "err", err)
		return func() error { return err }
	}
	return sys.step(h)
}

func newSystem(h hal.HAL, cfg config.Config, log *slog.Logger) (*system, error) {
	s, err := NewSession(cfg, log)
	if err != nil {
		return nil, err
	}
	sys := &system{s: s, log: log}
	sys.task = boardtask.New(h, s, &sys.mb, log)
	log.Info("board started", "session_id", s.ID(), "equation", s.Equation().String())
	return sys, nil
}

func (sys *system) step(h hal.HAL) func() error {
	return func() (err error) {
		defer func() {
			if r := recover(); r != nil {
				err = crash(h, sys.log, r)
			}
		}()
		return sys.task.Step()
	}
}
