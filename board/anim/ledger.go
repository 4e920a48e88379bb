// Package anim keeps the short-lived markers drawn where pieces cancelled.
package anim

import "github.com/GabrielDSAlves/jogo/board/piece"

// MarkerDuration is how long a cancellation marker lives, in seconds.
const MarkerDuration = 0.5

// Marker is a transient visual at a board position.
type Marker struct {
	Pos      piece.Point
	Elapsed  float64
	Duration float64
}

// Progress is the fraction of the marker's life already spent, in [0, 1].
func (m Marker) Progress() float64 {
	if m.Duration <= 0 {
		return 1
	}
	f := m.Elapsed / m.Duration
	if f > 1 {
		return 1
	}
	return f
}

// Ledger owns the live markers.
type Ledger struct {
	markers []Marker
}

// Spawn adds a marker with the default duration.
func (l *Ledger) Spawn(pos piece.Point) {
	l.markers = append(l.markers, Marker{Pos: pos, Duration: MarkerDuration})
}

// Advance ages every marker by dt seconds and drops the expired ones.
func (l *Ledger) Advance(dt float64) {
	kept := l.markers[:0]
	for _, m := range l.markers {
		m.Elapsed += dt
		if m.Elapsed >= m.Duration {
			continue
		}
		kept = append(kept, m)
	}
	for i := len(kept); i < len(l.markers); i++ {
		l.markers[i] = Marker{}
	}
	l.markers = kept
}

// Markers returns a copy of the live markers.
func (l *Ledger) Markers() []Marker {
	out := make([]Marker, len(l.markers))
	copy(out, l.markers)
	return out
}

func (l *Ledger) Len() int { return len(l.markers) }

func (l *Ledger) Reset() { l.markers = nil }
