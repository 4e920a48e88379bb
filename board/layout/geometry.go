// Package layout places pieces on the board: the two side regions, their
// horizontal bands, and the grid pieces are packed into.
package layout

import (
	"errors"

	"github.com/GabrielDSAlves/jogo/board/piece"
)

// Columns is the width of the piece grid inside a band.
const Columns = 6

var ErrInvalidGeometry = errors.New("invalid geometry")

// Rect is an axis-aligned pixel rectangle.
type Rect struct {
	X int
	Y int
	W int
	H int
}

func (r Rect) Contains(p piece.Point) bool {
	return p.X >= r.X && p.X < r.X+r.W && p.Y >= r.Y && p.Y < r.Y+r.H
}

// Geometry describes the board in pixels.
type Geometry struct {
	Width  int
	Height int
	Margin int

	AreaY int
	// AreaBottom is the space kept free under the piece areas.
	AreaBottom int

	PieceSize int
	PieceGap  int

	// InsetX is the distance from a region's left edge to the first column.
	InsetX int
	// PackInsetY is the distance from a band's top to the first row.
	PackInsetY int
	// DefaultInsetY is used for freshly added pieces before the next pack.
	DefaultInsetY int
}

// Default is the classic 1100x700 board.
func Default() Geometry {
	return Geometry{
		Width:         1100,
		Height:        700,
		Margin:        20,
		AreaY:         180,
		AreaBottom:    80,
		PieceSize:     50,
		PieceGap:      8,
		InsetX:        20,
		PackInsetY:    10,
		DefaultInsetY: 20,
	}
}

// Validate checks that every region has a positive size.
func (g Geometry) Validate() error {
	switch {
	case g.Width <= 0 || g.Height <= 0:
		return errors.Join(ErrInvalidGeometry, errors.New("window size must be positive"))
	case g.PieceSize <= 0 || g.PieceGap < 0:
		return errors.Join(ErrInvalidGeometry, errors.New("piece size must be positive"))
	case g.SideWidth() <= 0:
		return errors.Join(ErrInvalidGeometry, errors.New("margins leave no room for the sides"))
	case g.AreaHeight() <= 0:
		return errors.Join(ErrInvalidGeometry, errors.New("area leaves no room for pieces"))
	}
	return nil
}

// SideWidth is the width of one side region.
func (g Geometry) SideWidth() int { return (g.Width - 3*g.Margin) / 2 }

// AreaHeight is the height of both side regions.
func (g Geometry) AreaHeight() int { return g.Height - g.AreaY - g.Margin - g.AreaBottom }

func (g Geometry) LeftX() int  { return g.Margin }
func (g Geometry) RightX() int { return g.LeftX() + g.SideWidth() + g.Margin }

// SideX is the left edge of the region for side.
func (g Geometry) SideX(side piece.Side) int {
	if side == piece.Right {
		return g.RightX()
	}
	return g.LeftX()
}

// Region returns the rectangle of one side.
func (g Geometry) Region(side piece.Side) Rect {
	return Rect{X: g.SideX(side), Y: g.AreaY, W: g.SideWidth(), H: g.AreaHeight()}
}

// Step is the distance between two grid cells.
func (g Geometry) Step() int { return g.PieceSize + g.PieceGap }

// Bands is the effective band count for a divisions setting.
func Bands(divisions int) int {
	if divisions < 1 {
		return 1
	}
	return divisions
}

// BandHeight is the height of one band.
func (g Geometry) BandHeight(divisions int) float64 {
	return float64(g.AreaHeight()) / float64(Bands(divisions))
}

// BandLines returns the y coordinates of the separators between bands.
func (g Geometry) BandLines(divisions int) []int {
	subs := Bands(divisions)
	if subs <= 1 {
		return nil
	}
	step := g.BandHeight(divisions)
	out := make([]int, 0, subs-1)
	for i := 1; i < subs; i++ {
		out = append(out, int(float64(g.AreaY)+step*float64(i)))
	}
	return out
}

// DefaultPosition is the grid slot used for a new piece until the next pack.
func (g Geometry) DefaultPosition(side piece.Side, index int) piece.Point {
	if index < 0 {
		index = 0
	}
	col := index % Columns
	row := index / Columns
	return piece.Point{
		X: g.SideX(side) + g.InsetX + col*g.Step(),
		Y: g.AreaY + g.DefaultInsetY + row*g.Step(),
	}
}

// DropTarget maps the centre of a dropped piece to a side and band.
//
// Inside a region the region wins. In the gutter between them the nearer
// region centre wins. The band is taken from y only when the board is divided
// and y is within the areas; otherwise the piece lands in band 0.
func (g Geometry) DropTarget(center piece.Point, divisions int) (piece.Side, int) {
	side := piece.Left
	switch {
	case center.X < g.LeftX()+g.SideWidth():
		side = piece.Left
	case center.X > g.RightX():
		side = piece.Right
	default:
		leftDist := absInt(center.X - (g.LeftX() + g.SideWidth()/2))
		rightDist := absInt(center.X - (g.RightX() + g.SideWidth()/2))
		if leftDist >= rightDist {
			side = piece.Right
		}
	}

	subs := Bands(divisions)
	if subs <= 1 || center.Y < g.AreaY || center.Y > g.AreaY+g.AreaHeight() {
		return side, 0
	}
	sub := int(float64(center.Y-g.AreaY) / g.BandHeight(divisions))
	return side, clampInt(sub, 0, subs-1)
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func absInt(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
