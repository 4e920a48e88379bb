package layout

import (
	"testing"

	"github.com/GabrielDSAlves/jogo/board/equation"
	"github.com/GabrielDSAlves/jogo/board/piece"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func positions(s *piece.Store) []piece.Point {
	var out []piece.Point
	for _, p := range s.Pieces() {
		out = append(out, p.Pos)
	}
	return out
}

func TestDefaultGeometry(t *testing.T) {
	g := Default()
	require.NoError(t, g.Validate())

	assert.Equal(t, 520, g.SideWidth())
	assert.Equal(t, 420, g.AreaHeight())
	assert.Equal(t, 20, g.LeftX())
	assert.Equal(t, 560, g.RightX())
	assert.Equal(t, 58, g.Step())
	assert.Equal(t, Rect{X: 560, Y: 180, W: 520, H: 420}, g.Region(piece.Right))
}

func TestGeometryValidate(t *testing.T) {
	g := Default()
	g.Width = 50
	assert.ErrorIs(t, g.Validate(), ErrInvalidGeometry)

	g = Default()
	g.PieceSize = 0
	assert.ErrorIs(t, g.Validate(), ErrInvalidGeometry)

	g = Default()
	g.AreaY = 690
	assert.ErrorIs(t, g.Validate(), ErrInvalidGeometry)
}

func TestDefaultPosition(t *testing.T) {
	g := Default()
	assert.Equal(t, piece.Point{X: 40, Y: 200}, g.DefaultPosition(piece.Left, 0))
	assert.Equal(t, piece.Point{X: 40 + 5*58, Y: 200}, g.DefaultPosition(piece.Left, 5))
	assert.Equal(t, piece.Point{X: 580, Y: 258}, g.DefaultPosition(piece.Right, 6))
	assert.Equal(t, g.DefaultPosition(piece.Left, 0), g.DefaultPosition(piece.Left, -3))
}

func TestPackGrid(t *testing.T) {
	g := Default()
	s := piece.NewStore(g)
	s.Synthesize(equation.Equation{AL: 7, BR: 1})

	Pack(s, 0, g)

	ps := s.Pieces()
	assert.Equal(t, piece.Point{X: 40, Y: 190}, ps[0].Pos)
	assert.Equal(t, piece.Point{X: 40 + 5*58, Y: 190}, ps[5].Pos)
	assert.Equal(t, piece.Point{X: 40, Y: 248}, ps[6].Pos, "seventh piece wraps to a new row")
	assert.Equal(t, piece.Point{X: 580, Y: 190}, ps[7].Pos)
}

func TestPackIsIdempotent(t *testing.T) {
	g := Default()
	s := piece.NewStore(g)
	s.Synthesize(equation.Equation{AL: 3, BL: -9, AR: -2, BR: 5})
	for i, p := range s.Pieces() {
		p.Sub = i % 4
	}

	Pack(s, 3, g)
	first := positions(s)
	Pack(s, 3, g)
	assert.Equal(t, first, positions(s))
}

func TestPackPreservesCollectionOrder(t *testing.T) {
	g := Default()
	s := piece.NewStore(g)
	a := s.Add(piece.Constant, piece.Positive, piece.Left, 0, 0)
	b := s.Add(piece.Variable, piece.Negative, piece.Left, 1, 0)
	c := s.Add(piece.Constant, piece.Negative, piece.Left, 2, 0)

	require.True(t, s.Remove(a.ID))
	Pack(s, 1, g)

	assert.Equal(t, piece.Point{X: 40, Y: 190}, b.Pos)
	assert.Equal(t, piece.Point{X: 98, Y: 190}, c.Pos)
}

func TestPackBandsAndClamp(t *testing.T) {
	g := Default()
	s := piece.NewStore(g)
	a := s.Add(piece.Variable, piece.Positive, piece.Left, 0, 0)
	b := s.Add(piece.Variable, piece.Positive, piece.Left, 1, 2)
	c := s.Add(piece.Constant, piece.Positive, piece.Right, 0, 7)
	d := s.Add(piece.Constant, piece.Positive, piece.Right, 1, -2)

	Pack(s, 3, g)

	assert.Equal(t, 0, a.Sub)
	assert.Equal(t, 2, b.Sub)
	assert.Equal(t, 2, c.Sub, "clamped to the last band")
	assert.Equal(t, 0, d.Sub, "clamped to the first band")

	assert.Equal(t, piece.Point{X: 40, Y: 190}, a.Pos)
	assert.Equal(t, piece.Point{X: 40, Y: 190 + 280}, b.Pos)
	assert.Equal(t, piece.Point{X: 580, Y: 470}, c.Pos)
	assert.Equal(t, piece.Point{X: 580, Y: 190}, d.Pos)

	Pack(s, 1, g)
	for _, p := range s.Pieces() {
		assert.Zero(t, p.Sub, "one band collapses every piece into band 0")
	}
	assert.Equal(t, piece.Point{X: 98, Y: 190}, b.Pos)
}

func TestPackFractionalBands(t *testing.T) {
	g := Default()
	s := piece.NewStore(g)
	p := s.Add(piece.Variable, piece.Positive, piece.Left, 0, 1)

	Pack(s, 4, g)
	// 420/4 = 105 per band.
	assert.Equal(t, 190+105, p.Pos.Y)

	p.Sub = 3
	Pack(s, 8, g)
	// 420/8 = 52.5 per band: 190 + 157.5 truncates to 347.
	assert.Equal(t, 347, p.Pos.Y)
}

func TestBandLines(t *testing.T) {
	g := Default()
	assert.Nil(t, g.BandLines(0))
	assert.Nil(t, g.BandLines(1))
	assert.Equal(t, []int{320, 460}, g.BandLines(3))
}

func TestDropTarget(t *testing.T) {
	g := Default()
	tests := []struct {
		name      string
		center    piece.Point
		divisions int
		side      piece.Side
		sub       int
	}{
		{"inside left", piece.Point{X: 100, Y: 300}, 0, piece.Left, 0},
		{"inside right", piece.Point{X: 900, Y: 300}, 1, piece.Right, 0},
		{"off board left", piece.Point{X: -40, Y: 300}, 0, piece.Left, 0},
		{"gutter nearer left", piece.Point{X: 545, Y: 300}, 0, piece.Left, 0},
		{"gutter midpoint goes right", piece.Point{X: 550, Y: 300}, 0, piece.Right, 0},
		{"band from y", piece.Point{X: 100, Y: 180 + 300}, 3, piece.Left, 2},
		{"band top edge", piece.Point{X: 900, Y: 180}, 3, piece.Right, 0},
		{"band bottom edge clamps", piece.Point{X: 900, Y: 600}, 3, piece.Right, 2},
		{"above area ignores bands", piece.Point{X: 900, Y: 20}, 3, piece.Right, 0},
		{"below area ignores bands", piece.Point{X: 100, Y: 650}, 3, piece.Left, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			side, sub := g.DropTarget(tt.center, tt.divisions)
			assert.Equal(t, tt.side, side)
			assert.Equal(t, tt.sub, sub)
		})
	}
}
