// Package equation holds the linear equation value shown on the board and the
// text grammar used to enter one.
//
// An Equation is never stored by the board: it is projected from the pieces
// every time it is needed.
package equation

import (
	"strconv"
	"strings"
)

// Equation is aL·x + bL = aR·x + bR.
type Equation struct {
	AL int
	BL int
	AR int
	BR int
}

// MaxPieces bounds how many pieces a parsed equation may lay out.
const MaxPieces = 200

// Fallback is the equation used when random generation gives up.
var Fallback = Equation{AL: 2, BL: 1, AR: 1, BR: 3}

// Net moves every term to one side: coef·x = rhs.
func (e Equation) Net() (coef, rhs int) {
	return e.AL - e.AR, e.BR - e.BL
}

// Solution returns the integer solution of the equation, if it has exactly one.
func (e Equation) Solution() (int, bool) {
	coef, rhs := e.Net()
	if coef == 0 || rhs%coef != 0 {
		return 0, false
	}
	return rhs / coef, true
}

// Magnitude is the number of unit pieces needed to lay the equation out.
func (e Equation) Magnitude() int {
	return abs(e.AL) + abs(e.BL) + abs(e.AR) + abs(e.BR)
}

func (e Equation) String() string {
	return FormatSide(e.AL, e.BL) + " = " + FormatSide(e.AR, e.BR)
}

// FormatSide renders one side of an equation.
//
// The coefficient 1 is implicit ("x", "-x"). A positive constant only gets an
// explicit '+' after an x term. Parts are separated by a single space and an
// empty side renders as "0".
func FormatSide(coef, constant int) string {
	var parts []string
	if coef != 0 {
		switch coef {
		case 1:
			parts = append(parts, "x")
		case -1:
			parts = append(parts, "-x")
		default:
			parts = append(parts, strconv.Itoa(coef)+"x")
		}
	}
	if constant != 0 {
		s := strconv.Itoa(constant)
		if constant > 0 && len(parts) > 0 {
			s = "+" + s
		}
		parts = append(parts, s)
	}
	if len(parts) == 0 {
		return "0"
	}
	return strings.Join(parts, " ")
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

func (e Equation) fitsBoard() bool {
	for _, v := range [...]int{e.AL, e.BL, e.AR, e.BR} {
		if v > MaxPieces || v < -MaxPieces {
			return false
		}
	}
	return e.Magnitude() <= MaxPieces
}
