package hal

import (
	"sync"
	"time"
)

// hostTime accumulates the wall time between runner frames.
type hostTime struct {
	now func() time.Time

	mu      sync.Mutex
	last    time.Time
	pending time.Duration
}

func newHostTime() *hostTime {
	return &hostTime{now: time.Now}
}

// frame is called by the runner once per frame, before the app steps.
func (t *hostTime) frame() {
	now := t.now()
	t.mu.Lock()
	defer t.mu.Unlock()
	if !t.last.IsZero() {
		t.pending += now.Sub(t.last)
	}
	t.last = now
}

func (t *hostTime) Elapsed() time.Duration {
	t.mu.Lock()
	defer t.mu.Unlock()
	d := t.pending
	t.pending = 0
	return d
}
