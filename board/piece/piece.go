// Package piece models the signed unit pieces placed on the balance board and
// the store that owns them.
package piece

// Kind is what a piece counts: a unit constant or one x.
type Kind uint8

const (
	Constant Kind = iota + 1
	Variable
)

func (k Kind) Valid() bool { return k == Constant || k == Variable }

func (k Kind) String() string {
	switch k {
	case Constant:
		return "constant"
	case Variable:
		return "variable"
	default:
		return "invalid"
	}
}

// Label is the glyph drawn on the piece.
func (k Kind) Label() string {
	if k == Variable {
		return "x"
	}
	return "1"
}

// Sign is +1 or -1.
type Sign int8

const (
	Negative Sign = -1
	Positive Sign = 1
)

func (s Sign) Valid() bool { return s == Positive || s == Negative }

func (s Sign) String() string {
	switch s {
	case Positive:
		return "+"
	case Negative:
		return "-"
	default:
		return "invalid"
	}
}

// SignOf returns the sign pieces need to represent v. Zero maps to Positive.
func SignOf(v int) Sign {
	if v < 0 {
		return Negative
	}
	return Positive
}

// Side is one half of the board, one side of '='.
type Side uint8

const (
	Left Side = iota + 1
	Right
)

// Sides lists both sides in processing order.
var Sides = [2]Side{Left, Right}

func (s Side) Valid() bool { return s == Left || s == Right }

func (s Side) String() string {
	switch s {
	case Left:
		return "left"
	case Right:
		return "right"
	default:
		return "invalid"
	}
}

// Point is a pixel position on the board.
type Point struct {
	X int
	Y int
}

// Piece is one signed unit on the board.
//
// Pos is the top-left corner of the piece square. ID is stable for the
// lifetime of the piece and never reused until the store is cleared.
type Piece struct {
	ID       int
	Kind     Kind
	Sign     Sign
	Side     Side
	Sub      int
	Pos      Point
	Dragging bool
}

// Value is the signed contribution of the piece to its side.
func (p *Piece) Value() int { return int(p.Sign) }

// Center returns the centre of the piece for a square of the given size.
func (p *Piece) Center(size int) Point {
	return Point{X: p.Pos.X + size/2, Y: p.Pos.Y + size/2}
}

// Contains reports whether pt lies inside the piece square.
func (p *Piece) Contains(pt Point, size int) bool {
	return pt.X >= p.Pos.X && pt.X < p.Pos.X+size &&
		pt.Y >= p.Pos.Y && pt.Y < p.Pos.Y+size
}
