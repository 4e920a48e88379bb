package layout

import "github.com/GabrielDSAlves/jogo/board/piece"

type groupKey struct {
	side piece.Side
	sub  int
}

// Pack lays every piece out on the grid of its side and band.
//
// Sub values are clamped into the current band range. Within a band pieces
// keep their collection order, so packing twice without changes is a no-op.
func Pack(s *piece.Store, divisions int, g Geometry) {
	subs := Bands(divisions)
	stepH := g.BandHeight(divisions)

	counts := make(map[groupKey]int, 2*subs)
	for _, p := range s.Pieces() {
		p.Sub = clampInt(p.Sub, 0, subs-1)

		key := groupKey{side: p.Side, sub: p.Sub}
		idx := counts[key]
		counts[key] = idx + 1

		col := idx % Columns
		row := idx / Columns
		baseX := float64(g.SideX(p.Side) + g.InsetX)
		baseY := float64(g.AreaY+g.PackInsetY) + float64(p.Sub)*stepH
		p.Pos = piece.Point{
			X: int(baseX + float64(col*g.Step())),
			Y: int(baseY + float64(row*g.Step())),
		}
	}
}
