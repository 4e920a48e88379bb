// Package annihilate cancels matched positive/negative pieces.
package annihilate

import (
	"github.com/GabrielDSAlves/jogo/board/anim"
	"github.com/GabrielDSAlves/jogo/board/layout"
	"github.com/GabrielDSAlves/jogo/board/piece"
)

var kinds = [2]piece.Kind{piece.Variable, piece.Constant}

// Pair is one cancelled couple.
type Pair struct {
	Positive int
	Negative int
	At       piece.Point
}

// Annihilate removes every opposite-sign pair of the same kind on the same
// side and spawns a marker between each pair.
//
// Pairing is by collection order: the i-th positive goes with the i-th
// negative, not with the nearest one. It reports whether anything was removed.
func Annihilate(s *piece.Store, l *anim.Ledger, pieceSize int) bool {
	return len(Pairs(s, l, pieceSize)) > 0
}

// Pairs is Annihilate returning the removed pairs.
func Pairs(s *piece.Store, l *anim.Ledger, pieceSize int) []Pair {
	var out []Pair
	for _, side := range piece.Sides {
		for _, kind := range kinds {
			var pos, neg []*piece.Piece
			for _, p := range s.Pieces() {
				if p.Side != side || p.Kind != kind {
					continue
				}
				if p.Sign == piece.Positive {
					pos = append(pos, p)
				} else {
					neg = append(neg, p)
				}
			}

			n := min(len(pos), len(neg))
			for i := 0; i < n; i++ {
				a := pos[i].Center(pieceSize)
				b := neg[i].Center(pieceSize)
				at := piece.Point{X: (a.X + b.X) / 2, Y: (a.Y + b.Y) / 2}
				if l != nil {
					l.Spawn(at)
				}
				s.Remove(pos[i].ID)
				s.Remove(neg[i].ID)
				out = append(out, Pair{Positive: pos[i].ID, Negative: neg[i].ID, At: at})
			}
		}
	}
	return out
}

// Settle packs the board and cancels pairs until nothing changes. It returns
// the number of pairs removed.
func Settle(s *piece.Store, l *anim.Ledger, divisions int, g layout.Geometry) int {
	layout.Pack(s, divisions, g)
	total := 0
	for {
		n := len(Pairs(s, l, g.PieceSize))
		if n == 0 {
			return total
		}
		total += n
		layout.Pack(s, divisions, g)
	}
}
