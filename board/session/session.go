// Package session owns the board state and serializes every intent on it.
package session

import (
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/google/uuid"

	"github.com/GabrielDSAlves/jogo/board/anim"
	"github.com/GabrielDSAlves/jogo/board/annihilate"
	"github.com/GabrielDSAlves/jogo/board/equation"
	"github.com/GabrielDSAlves/jogo/board/generator"
	"github.com/GabrielDSAlves/jogo/board/layout"
	"github.com/GabrielDSAlves/jogo/board/piece"
)

var (
	ErrInvalidDivisions = errors.New("invalid divisions")
	ErrUnknownPiece     = errors.New("unknown piece")
	ErrInvalidPiece     = errors.New("invalid piece")
)

const (
	msgCleared        = "Cleared."
	msgLoaded         = "Equation loaded."
	msgFallback       = "Default equation generated (fallback)."
	msgBothSides      = "Piece added on both sides."
	msgCancelled      = "Pieces cancelled!"
	msgInvalidDivided = "Division cancelled or invalid."
)

// Options configures a Session. Zero values pick the defaults.
type Options struct {
	Geometry layout.Geometry
	Source   generator.Source
	Logger   *slog.Logger
}

// Session is the board controller. All methods are safe for concurrent use.
type Session struct {
	mu sync.Mutex

	id        string
	log       *slog.Logger
	geom      layout.Geometry
	store     *piece.Store
	ledger    anim.Ledger
	gen       *generator.Generator
	divisions int
	message   string
}

// New returns an empty board. Call NewEquation or LoadEquation to fill it.
func New(opts Options) *Session {
	geom := opts.Geometry
	if geom == (layout.Geometry{}) {
		geom = layout.Default()
	}
	log := opts.Logger
	if log == nil {
		log = slog.Default()
	}
	id := uuid.NewString()
	return &Session{
		id:    id,
		log:   log.With("session_id", id),
		geom:  geom,
		store: piece.NewStore(geom),
		gen:   generator.New(opts.Source),
	}
}

func (s *Session) ID() string { return s.id }

// NewEquation replaces the board with a generated equation.
func (s *Session) NewEquation() generator.Result {
	s.mu.Lock()
	defer s.mu.Unlock()

	res := s.gen.Generate()
	s.load(res.Equation)
	if res.Fallback {
		s.message = msgFallback
	} else {
		s.message = fmt.Sprintf("Equation generated with solution x = %d", res.X0)
	}
	s.log.Info("equation generated",
		"equation", res.Equation.String(),
		"x0", res.X0,
		"attempts", res.Attempts,
		"fallback", res.Fallback)
	return res
}

// LoadEquation parses text and replaces the board with it. A parse error
// leaves the board untouched.
func (s *Session) LoadEquation(text string) (equation.Equation, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	eq, err := equation.ParseEquation(text)
	if err != nil {
		s.message = fmt.Sprintf("Invalid equation: %v", err)
		s.log.Warn("equation rejected", "input", text, "err", err)
		return equation.Equation{}, err
	}
	s.load(eq)
	s.message = msgLoaded
	s.log.Info("equation loaded", "equation", eq.String())
	return eq, nil
}

func (s *Session) load(eq equation.Equation) {
	s.store.Synthesize(eq)
	layout.Pack(s.store, s.divisions, s.geom)
}

// Clear empties the board and resets the band count.
func (s *Session) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.store.Clear()
	s.ledger.Reset()
	s.divisions = 0
	layout.Pack(s.store, s.divisions, s.geom)
	s.message = msgCleared
	s.log.Info("board cleared")
}

// SetDivisions splits each side into n horizontal bands.
func (s *Session) SetDivisions(n int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if n < 1 {
		s.message = msgInvalidDivided
		s.log.Debug("divisions rejected", "n", n)
		return fmt.Errorf("%w: %d", ErrInvalidDivisions, n)
	}
	s.divisions = n
	layout.Pack(s.store, s.divisions, s.geom)
	s.message = fmt.Sprintf("Board divided into %d bands. Drag the pieces manually.", n)
	s.log.Info("board divided", "divisions", n)
	return nil
}

// AddPieceBothSides adds one piece of kind and sign to each side, keeping
// the balance. Pairs it completes are left for the next Settle.
func (s *Session) AddPieceBothSides(kind piece.Kind, sign piece.Sign) error {
	if !kind.Valid() || !sign.Valid() {
		return fmt.Errorf("%w: kind %d sign %d", ErrInvalidPiece, kind, sign)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	for _, side := range piece.Sides {
		s.store.Add(kind, sign, side, s.store.CountSide(side), 0)
	}
	layout.Pack(s.store, s.divisions, s.geom)
	s.message = msgBothSides
	s.log.Debug("piece added", "kind", kind, "sign", sign)
	return nil
}

// MovePiece reassigns a piece to side and band, then settles the board.
// It returns the number of pairs cancelled.
func (s *Session) MovePiece(id int, side piece.Side, sub int) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.move(id, side, sub)
}

func (s *Session) move(id int, side piece.Side, sub int) (int, error) {
	p, ok := s.store.Get(id)
	if !ok {
		return 0, fmt.Errorf("%w: %d", ErrUnknownPiece, id)
	}
	if !side.Valid() {
		return 0, fmt.Errorf("%w: side %d", ErrInvalidPiece, side)
	}
	p.Side = side
	p.Sub = sub
	p.Dragging = false
	s.log.Debug("piece moved", "id", id, "side", side, "sub", sub)
	return s.settle(), nil
}

// BeginDrag marks a piece as held by the pointer.
func (s *Session) BeginDrag(id int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	p, ok := s.store.Get(id)
	if !ok {
		return fmt.Errorf("%w: %d", ErrUnknownPiece, id)
	}
	p.Dragging = true
	return nil
}

// DragTo moves a held piece's top-left corner to pos without packing.
func (s *Session) DragTo(id int, pos piece.Point) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	p, ok := s.store.Get(id)
	if !ok {
		return fmt.Errorf("%w: %d", ErrUnknownPiece, id)
	}
	p.Pos = pos
	return nil
}

// Drop releases a piece where it lies: its centre picks the side and band.
func (s *Session) Drop(id int) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	p, ok := s.store.Get(id)
	if !ok {
		return 0, fmt.Errorf("%w: %d", ErrUnknownPiece, id)
	}
	side, sub := s.geom.DropTarget(p.Center(s.geom.PieceSize), s.divisions)
	return s.move(id, side, sub)
}

// PieceAt returns the topmost piece under pt.
func (s *Session) PieceAt(pt piece.Point) (piece.Piece, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	pieces := s.store.Pieces()
	for i := len(pieces) - 1; i >= 0; i-- {
		if pieces[i].Contains(pt, s.geom.PieceSize) {
			return *pieces[i], true
		}
	}
	return piece.Piece{}, false
}

// Settle packs the board and cancels pairs until nothing changes.
func (s *Session) Settle() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.settle()
}

func (s *Session) settle() int {
	n := annihilate.Settle(s.store, &s.ledger, s.divisions, s.geom)
	if n > 0 {
		s.message = msgCancelled
		s.log.Debug("pairs cancelled", "pairs", n, "equation", s.store.Equation().String())
	}
	if x, ok := s.store.Solved(); ok && n > 0 {
		s.log.Info("board solved", "x", x)
	}
	return n
}

// Tick advances the cancel markers by dt seconds.
func (s *Session) Tick(dt float64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ledger.Advance(dt)
}

// Pieces returns value copies in collection order.
func (s *Session) Pieces() []piece.Piece {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.pieces()
}

func (s *Session) pieces() []piece.Piece {
	src := s.store.Pieces()
	out := make([]piece.Piece, len(src))
	for i, p := range src {
		out[i] = *p
	}
	return out
}

func (s *Session) Equation() equation.Equation {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.store.Equation()
}

// Solved reports x once the board shows it isolated.
func (s *Session) Solved() (int, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.store.Solved()
}

func (s *Session) Markers() []anim.Marker {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.ledger.Markers()
}

func (s *Session) Divisions() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.divisions
}

func (s *Session) Message() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.message
}

func (s *Session) Geometry() layout.Geometry { return s.geom }

// Snapshot is a consistent view of the board for renderers.
type Snapshot struct {
	Pieces    []piece.Piece
	Equation  equation.Equation
	Solution  int
	Solved    bool
	Markers   []anim.Marker
	Divisions int
	Message   string
}

func (s *Session) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	x, ok := s.store.Solved()
	return Snapshot{
		Pieces:    s.pieces(),
		Equation:  s.store.Equation(),
		Solution:  x,
		Solved:    ok,
		Markers:   s.ledger.Markers(),
		Divisions: s.divisions,
		Message:   s.message,
	}
}
