package piece

import (
	"testing"

	"github.com/GabrielDSAlves/jogo/board/equation"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type gridPlacer struct{}

func (gridPlacer) DefaultPosition(side Side, index int) Point {
	x := 0
	if side == Right {
		x = 1000
	}
	return Point{X: x + (index%6)*10, Y: (index / 6) * 10}
}

func TestStoreAddAssignsMonotonicIDs(t *testing.T) {
	s := NewStore(gridPlacer{})

	a := s.Add(Variable, Positive, Left, 0, 0)
	b := s.Add(Constant, Negative, Right, 0, 2)
	c := s.AddAt(Constant, Positive, Left, Point{X: 5, Y: 6}, 0)

	assert.Equal(t, []int{1, 2, 3}, []int{a.ID, b.ID, c.ID})
	assert.Equal(t, 2, b.Sub)
	assert.Equal(t, Point{X: 5, Y: 6}, c.Pos)
	assert.Equal(t, Point{X: 1000, Y: 0}, b.Pos)

	require.True(t, s.Remove(b.ID))
	d := s.Add(Variable, Negative, Right, 7, 0)
	assert.Equal(t, 4, d.ID, "ids are never reused")
	assert.Equal(t, Point{X: 1010, Y: 10}, d.Pos)
}

func TestStoreClearResetsIDs(t *testing.T) {
	s := NewStore(gridPlacer{})
	s.Add(Variable, Positive, Left, 0, 0)
	s.Add(Variable, Positive, Left, 1, 0)

	s.Clear()
	assert.Zero(t, s.Len())
	assert.Equal(t, 1, s.nextID)
	assert.Equal(t, 1, s.Add(Constant, Positive, Right, 0, 0).ID)
}

func TestStoreAddRejectsInvalidEnums(t *testing.T) {
	s := NewStore(nil)
	assert.Panics(t, func() { s.Add(Kind(0), Positive, Left, 0, 0) })
	assert.Panics(t, func() { s.Add(Variable, Sign(0), Left, 0, 0) })
	assert.Panics(t, func() { s.Add(Variable, Positive, Side(9), 0, 0) })
	assert.Zero(t, s.Len())
}

func TestSynthesizeOrder(t *testing.T) {
	s := NewStore(gridPlacer{})
	s.Synthesize(equation.Equation{AL: 2, BL: -1, AR: -1, BR: 3})

	type shape struct {
		kind Kind
		sign Sign
		side Side
	}
	var got []shape
	for _, p := range s.Pieces() {
		got = append(got, shape{p.Kind, p.Sign, p.Side})
	}
	want := []shape{
		{Variable, Positive, Left},
		{Variable, Positive, Left},
		{Constant, Negative, Left},
		{Variable, Negative, Right},
		{Constant, Positive, Right},
		{Constant, Positive, Right},
		{Constant, Positive, Right},
	}
	assert.Equal(t, want, got)

	pieces := s.Pieces()
	assert.Equal(t, Point{X: 20, Y: 0}, pieces[2].Pos, "index hints run per side")
	assert.Equal(t, Point{X: 1000, Y: 0}, pieces[3].Pos)
	assert.Equal(t, 1, pieces[0].ID)
}

func TestSynthesizeZeroEmitsNothing(t *testing.T) {
	s := NewStore(gridPlacer{})
	s.Synthesize(equation.Equation{})
	assert.Zero(t, s.Len())

	s.Synthesize(equation.Equation{BR: 2})
	assert.Equal(t, 2, s.Len())
	assert.Equal(t, 2, s.CountSide(Right))
	assert.Zero(t, s.CountSide(Left))
}

func TestSynthesizeRoundTrip(t *testing.T) {
	s := NewStore(gridPlacer{})
	for aL := -20; aL <= 20; aL += 3 {
		for bL := -20; bL <= 20; bL += 4 {
			for aR := -20; aR <= 20; aR += 5 {
				for bR := -20; bR <= 20; bR += 7 {
					eq := equation.Equation{AL: aL, BL: bL, AR: aR, BR: bR}
					s.Synthesize(eq)
					require.Equal(t, eq, s.Equation())
					require.Equal(t, eq.Magnitude(), s.Len())
				}
			}
		}
	}
	for _, v := range []int{-20, 20} {
		eq := equation.Equation{AL: v, BL: v, AR: v, BR: v}
		s.Synthesize(eq)
		require.Equal(t, eq, s.Equation())
	}
}

func TestEquationTracksMutation(t *testing.T) {
	s := NewStore(gridPlacer{})
	s.Synthesize(equation.Fallback)

	p := s.Pieces()[0]
	p.Side = Right
	assert.Equal(t, equation.Equation{AL: 1, BL: 1, AR: 2, BR: 3}, s.Equation())

	require.True(t, s.Remove(p.ID))
	assert.Equal(t, equation.Equation{AL: 1, BL: 1, AR: 1, BR: 3}, s.Equation())
}

func TestSolvedRequiresIsolatedX(t *testing.T) {
	s := NewStore(gridPlacer{})
	s.Synthesize(equation.Equation{AL: 2, BR: 4})

	_, ok := s.Solved()
	assert.False(t, ok, "two x pieces still on the left")

	s.Synthesize(equation.Equation{AL: 1, BR: 4})
	x, ok := s.Solved()
	require.True(t, ok)
	assert.Equal(t, 4, x)

	s.Synthesize(equation.Equation{BL: -3, AR: 1})
	x, ok = s.Solved()
	require.True(t, ok)
	assert.Equal(t, -3, x)
}

func TestSolvedRejectsCancellingXPieces(t *testing.T) {
	s := NewStore(gridPlacer{})
	// 2x - x = 4 sums to x = 4 but three x pieces remain.
	s.Add(Variable, Positive, Left, 0, 0)
	s.Add(Variable, Positive, Left, 1, 0)
	s.Add(Variable, Negative, Left, 2, 0)
	for i := 0; i < 4; i++ {
		s.Add(Constant, Positive, Right, i, 0)
	}
	assert.Equal(t, equation.Equation{AL: 1, BR: 4}, s.Equation())
	_, ok := s.Solved()
	assert.False(t, ok)
}

func TestSolvedNeedsUniqueIntegerSolution(t *testing.T) {
	s := NewStore(gridPlacer{})

	s.Synthesize(equation.Equation{AL: 1, AR: 1})
	_, ok := s.Solved()
	assert.False(t, ok, "no unique solution")

	s.Add(Variable, Negative, Right, 0, 0)
	s.Add(Variable, Negative, Right, 1, 0)
	s.Add(Constant, Positive, Left, 0, 0)
	_, ok = s.Solved()
	assert.False(t, ok)

	s.Clear()
	s.Add(Variable, Positive, Left, 0, 0)
	s.Add(Variable, Positive, Left, 1, 0)
	s.Add(Constant, Positive, Right, 0, 0)
	_, ok = s.Solved()
	assert.False(t, ok, "1/2 is not an integer")
}

func TestCounts(t *testing.T) {
	s := NewStore(gridPlacer{})
	s.Synthesize(equation.Equation{AL: -2, BL: 3, AR: 1, BR: 0})

	assert.Equal(t, 5, s.CountSide(Left))
	assert.Equal(t, 1, s.CountSide(Right))
	assert.Equal(t, 2, s.CountKind(Left, Variable))
	assert.Equal(t, 3, s.CountKind(Left, Constant))
	assert.Zero(t, s.CountKind(Right, Constant))

	p, ok := s.Get(6)
	require.True(t, ok)
	assert.Equal(t, Right, p.Side)
	_, ok = s.Get(42)
	assert.False(t, ok)
	assert.False(t, s.Remove(42))
}

func TestPieceGeometry(t *testing.T) {
	p := &Piece{Pos: Point{X: 10, Y: 20}}
	assert.Equal(t, Point{X: 35, Y: 45}, p.Center(50))
	assert.True(t, p.Contains(Point{X: 10, Y: 20}, 50))
	assert.True(t, p.Contains(Point{X: 59, Y: 69}, 50))
	assert.False(t, p.Contains(Point{X: 60, Y: 20}, 50))
}

func TestEnumStrings(t *testing.T) {
	assert.Equal(t, "left", Left.String())
	assert.Equal(t, "x", Variable.Label())
	assert.Equal(t, "1", Constant.Label())
	assert.Equal(t, "-", Negative.String())
	assert.Equal(t, Negative, SignOf(-3))
	assert.Equal(t, Positive, SignOf(0))
}
