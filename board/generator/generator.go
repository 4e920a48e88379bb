// Package generator draws random equations with a small integer solution.
package generator

import (
	"github.com/GabrielDSAlves/jogo/board/equation"
)

const (
	// MaxAttempts bounds the sampling loop before falling back.
	MaxAttempts = 500

	solutionRange = 5
	coefRange     = 3
	constRange    = 5

	maxTerm  = 6
	maxTotal = 24
)

// Source yields uniform integers in [0, n).
type Source interface {
	Intn(n int) int
}

// Result is a generated equation and the solution it was built around.
type Result struct {
	Equation equation.Equation
	X0       int
	Attempts int
	Fallback bool
}

// Generator builds solvable equations small enough to lay out as pieces.
type Generator struct {
	src Source
}

func New(src Source) *Generator {
	if src == nil {
		src = NewXorshift(0)
	}
	return &Generator{src: src}
}

// Generate samples x0 and both coefficients, rejects equal coefficients,
// derives the right constant so x0 solves the equation, and keeps the result
// only if every term is at most 6 and their total at most 24. After
// MaxAttempts rejections it returns equation.Fallback.
func (g *Generator) Generate() Result {
	for attempt := 1; attempt <= MaxAttempts; attempt++ {
		x0 := g.between(-solutionRange, solutionRange)
		coefL := g.between(-coefRange, coefRange)
		coefR := g.between(-coefRange, coefRange)
		coef := coefL - coefR
		if coef == 0 {
			continue
		}

		bL := g.between(-constRange, constRange)
		bR := bL + coef*x0

		eq := equation.Equation{AL: coefL, BL: bL, AR: coefR, BR: bR}
		if !withinLimits(eq) {
			continue
		}
		return Result{Equation: eq, X0: x0, Attempts: attempt}
	}

	x0, _ := equation.Fallback.Solution()
	return Result{Equation: equation.Fallback, X0: x0, Attempts: MaxAttempts, Fallback: true}
}

func (g *Generator) between(lo, hi int) int {
	return lo + g.src.Intn(hi-lo+1)
}

func withinLimits(eq equation.Equation) bool {
	for _, v := range [...]int{eq.AL, eq.BL, eq.AR, eq.BR} {
		if v > maxTerm || v < -maxTerm {
			return false
		}
	}
	return eq.Magnitude() <= maxTotal
}

// Xorshift is a tiny deterministic Source.
type Xorshift struct {
	state uint32
}

// NewXorshift seeds a Source. A zero seed picks a fixed non-zero state.
func NewXorshift(seed uint32) *Xorshift {
	if seed == 0 {
		seed = zeroSeedState
	}
	return &Xorshift{state: seed}
}

func (x *Xorshift) Intn(n int) int {
	if n <= 0 {
		return 0
	}
	x.state = xorshift32(x.state)
	return int(x.state % uint32(n))
}

const zeroSeedState = 0x6d2b79f5

func xorshift32(x uint32) uint32 {
	x ^= x << 13
	x ^= x >> 17
	x ^= x << 5
	return x
}
