// Package logging routes slog records into a hal.Logger, one line per record.
package logging

import (
	"bytes"
	"fmt"
	"log/slog"
	"strings"
	"sync"

	"github.com/GabrielDSAlves/jogo/hal"
)

// New returns a text logger writing through out at level.
func New(out hal.Logger, level slog.Level) *slog.Logger {
	return slog.New(slog.NewTextHandler(NewWriter(out), &slog.HandlerOptions{Level: level}))
}

// ParseLevel maps debug, info, warn and error (any case) to a slog.Level.
func ParseLevel(s string) (slog.Level, error) {
	var l slog.Level
	if err := l.UnmarshalText([]byte(strings.TrimSpace(s))); err != nil {
		return slog.LevelInfo, fmt.Errorf("log level %q: %w", s, err)
	}
	return l, nil
}

// Writer adapts a hal.Logger to io.Writer. Partial lines are buffered
// until their newline arrives.
type Writer struct {
	mu  sync.Mutex
	out hal.Logger
	buf []byte
}

func NewWriter(out hal.Logger) *Writer {
	return &Writer{out: out}
}

func (w *Writer) Write(p []byte) (int, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	w.buf = append(w.buf, p...)
	for {
		i := bytes.IndexByte(w.buf, '\n')
		if i < 0 {
			break
		}
		if w.out != nil {
			w.out.WriteLineBytes(w.buf[:i])
		}
		w.buf = w.buf[i+1:]
	}
	if len(w.buf) == 0 {
		w.buf = nil
	}
	return len(p), nil
}
