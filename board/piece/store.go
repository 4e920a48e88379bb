package piece

import (
	"fmt"

	"github.com/GabrielDSAlves/jogo/board/equation"
)

// Placer computes the position of a freshly added piece before the board is
// packed again.
type Placer interface {
	DefaultPosition(side Side, index int) Point
}

// Store owns the ordered piece collection and the id counter.
//
// Store is not safe for concurrent use; the session serializes access.
type Store struct {
	placer Placer
	pieces []*Piece
	nextID int
}

func NewStore(placer Placer) *Store {
	return &Store{placer: placer, nextID: 1}
}

// Clear removes every piece and restarts ids at 1.
func (s *Store) Clear() {
	s.pieces = nil
	s.nextID = 1
}

// Add appends a piece at the default grid slot index of its side.
func (s *Store) Add(kind Kind, sign Sign, side Side, index, sub int) *Piece {
	var pos Point
	if s.placer != nil {
		pos = s.placer.DefaultPosition(side, index)
	}
	return s.AddAt(kind, sign, side, pos, sub)
}

// AddAt appends a piece at an explicit position.
//
// kind, sign and side must be valid; anything else is a programming error.
func (s *Store) AddAt(kind Kind, sign Sign, side Side, pos Point, sub int) *Piece {
	mustValid(kind, sign, side)
	p := &Piece{
		ID:   s.nextID,
		Kind: kind,
		Sign: sign,
		Side: side,
		Sub:  sub,
		Pos:  pos,
	}
	s.nextID++
	s.pieces = append(s.pieces, p)
	return p
}

// Synthesize replaces the board with the pieces of eq.
//
// Each side gets its x pieces first, then its unit pieces; left before right.
func (s *Store) Synthesize(eq equation.Equation) {
	s.Clear()
	s.emitSide(Left, eq.AL, eq.BL)
	s.emitSide(Right, eq.AR, eq.BR)
}

func (s *Store) emitSide(side Side, coef, constant int) {
	idx := 0
	for i := 0; i < abs(coef); i++ {
		s.Add(Variable, SignOf(coef), side, idx, 0)
		idx++
	}
	for i := 0; i < abs(constant); i++ {
		s.Add(Constant, SignOf(constant), side, idx, 0)
		idx++
	}
}

// Remove deletes the piece with the given id.
func (s *Store) Remove(id int) bool {
	for i, p := range s.pieces {
		if p.ID == id {
			s.pieces = append(s.pieces[:i], s.pieces[i+1:]...)
			return true
		}
	}
	return false
}

// Get returns the piece with the given id.
func (s *Store) Get(id int) (*Piece, bool) {
	for _, p := range s.pieces {
		if p.ID == id {
			return p, true
		}
	}
	return nil, false
}

// Pieces returns the pieces in collection order. The slice is a copy; the
// pieces are shared.
func (s *Store) Pieces() []*Piece {
	out := make([]*Piece, len(s.pieces))
	copy(out, s.pieces)
	return out
}

func (s *Store) Len() int { return len(s.pieces) }

// CountSide counts the pieces on side.
func (s *Store) CountSide(side Side) int {
	n := 0
	for _, p := range s.pieces {
		if p.Side == side {
			n++
		}
	}
	return n
}

// CountKind counts the pieces of kind on side regardless of sign.
func (s *Store) CountKind(side Side, kind Kind) int {
	n := 0
	for _, p := range s.pieces {
		if p.Side == side && p.Kind == kind {
			n++
		}
	}
	return n
}

// Equation derives the equation the board currently shows.
func (s *Store) Equation() equation.Equation {
	var eq equation.Equation
	for _, p := range s.pieces {
		v := p.Value()
		switch {
		case p.Kind == Variable && p.Side == Left:
			eq.AL += v
		case p.Kind == Variable && p.Side == Right:
			eq.AR += v
		case p.Kind == Constant && p.Side == Left:
			eq.BL += v
		case p.Kind == Constant && p.Side == Right:
			eq.BR += v
		}
	}
	return eq
}

// Solved reports the solution once the board shows x isolated.
//
// The equation must have a unique integer solution and x must be isolated:
// one side holds exactly one x piece and the other side none. Arithmetic
// solvability alone is not enough while more x pieces are still visible.
func (s *Store) Solved() (int, bool) {
	x, ok := s.Equation().Solution()
	if !ok {
		return 0, false
	}
	left := s.CountKind(Left, Variable)
	right := s.CountKind(Right, Variable)
	if (left == 1 && right == 0) || (right == 1 && left == 0) {
		return x, true
	}
	return 0, false
}

func mustValid(kind Kind, sign Sign, side Side) {
	if !kind.Valid() {
		panic(fmt.Sprintf("piece: invalid kind %d", kind))
	}
	if !sign.Valid() {
		panic(fmt.Sprintf("piece: invalid sign %d", sign))
	}
	if !side.Valid() {
		panic(fmt.Sprintf("piece: invalid side %d", side))
	}
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
