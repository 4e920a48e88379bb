package board

import (
	"io"
	"log/slog"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/GabrielDSAlves/jogo/board/equation"
	"github.com/GabrielDSAlves/jogo/board/generator"
	"github.com/GabrielDSAlves/jogo/board/piece"
	"github.com/GabrielDSAlves/jogo/board/session"
	"github.com/GabrielDSAlves/jogo/hal"
	"github.com/GabrielDSAlves/jogo/kernel"
)

type memFB struct {
	w, h     int
	buf      []byte
	presents int
}

func newMemFB(w, h int) *memFB { return &memFB{w: w, h: h, buf: make([]byte, w*h*2)} }

func (f *memFB) Width() int              { return f.w }
func (f *memFB) Height() int             { return f.h }
func (f *memFB) Format() hal.PixelFormat { return hal.PixelFormatRGB565 }
func (f *memFB) StrideBytes() int        { return f.w * 2 }
func (f *memFB) Buffer() []byte          { return f.buf }
func (f *memFB) ClearRGB(r, g, b uint8)  {}
func (f *memFB) Present() error          { f.presents++; return nil }

func (f *memFB) pixel(x, y int) uint16 {
	off := y*f.StrideBytes() + x*2
	return uint16(f.buf[off]) | uint16(f.buf[off+1])<<8
}

type fakeHAL struct {
	fb      *memFB
	keys    chan hal.KeyEvent
	ptr     chan hal.PointerEvent
	elapsed time.Duration
}

func newFakeHAL() *fakeHAL {
	return &fakeHAL{
		fb:   newMemFB(1100, 700),
		keys: make(chan hal.KeyEvent, 64),
		ptr:  make(chan hal.PointerEvent, 64),
	}
}

func (h *fakeHAL) Logger() hal.Logger           { return nil }
func (h *fakeHAL) Display() hal.Display         { return h }
func (h *fakeHAL) Input() hal.Input             { return h }
func (h *fakeHAL) Time() hal.Time               { return h }
func (h *fakeHAL) Framebuffer() hal.Framebuffer { return h.fb }
func (h *fakeHAL) Keyboard() hal.Keyboard       { return keyboard(h.keys) }
func (h *fakeHAL) Pointer() hal.Pointer         { return pointer(h.ptr) }

func (h *fakeHAL) Elapsed() time.Duration {
	d := h.elapsed
	h.elapsed = 0
	return d
}

func (h *fakeHAL) typeText(s string) {
	for _, r := range s {
		h.keys <- hal.KeyEvent{Press: true, Rune: r}
	}
}

func (h *fakeHAL) key(code hal.KeyCode) { h.keys <- hal.KeyEvent{Code: code, Press: true} }

func (h *fakeHAL) mouse(action hal.PointerAction, x, y int) {
	h.ptr <- hal.PointerEvent{Action: action, X: x, Y: y}
}

type keyboard chan hal.KeyEvent

func (k keyboard) Events() <-chan hal.KeyEvent { return k }

type pointer chan hal.PointerEvent

func (p pointer) Events() <-chan hal.PointerEvent { return p }

func newTask(t *testing.T) (*Task, *fakeHAL, *session.Session) {
	t.Helper()
	h := newFakeHAL()
	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	s := session.New(session.Options{Source: generator.NewXorshift(3), Logger: log})
	var mb kernel.Mailbox
	return New(h, s, &mb, log), h, s
}

func TestStepRendersBoard(t *testing.T) {
	tk, h, s := newTask(t)
	_, err := s.LoadEquation("x-1=3")
	require.NoError(t, err)

	require.NoError(t, tk.Step())
	assert.Equal(t, 1, h.fb.presents)
	assert.Equal(t, rgb565From888(colorBG.R, colorBG.G, colorBG.B), h.fb.pixel(5, 5))

	g := s.Geometry()
	table := rgb565From888(colorTable.R, colorTable.G, colorTable.B)
	assert.Equal(t, table, h.fb.pixel(g.RightX()+g.SideWidth()-5, g.AreaY+g.AreaHeight()-5))

	unit := rgb565From888(colorUnit.R, colorUnit.G, colorUnit.B)
	first := s.Pieces()[len(s.Pieces())-1]
	assert.Equal(t, unit, h.fb.pixel(first.Pos.X+5, first.Pos.Y+45))
}

func TestKeyboardShortcuts(t *testing.T) {
	tk, h, s := newTask(t)

	h.typeText("n")
	require.NoError(t, tk.Step())
	assert.True(t, strings.HasPrefix(s.Message(), "Equation generated") || strings.HasPrefix(s.Message(), "Default equation"), s.Message())
	assert.NotEmpty(t, s.Pieces())

	h.typeText("c")
	require.NoError(t, tk.Step())
	assert.Empty(t, s.Pieces())
	assert.Equal(t, "Cleared.", s.Message())

	h.typeText("3")
	require.NoError(t, tk.Step())
	assert.Equal(t, equation.Equation{AL: 1, AR: 1}, s.Equation())
}

func TestDivisionsPrompt(t *testing.T) {
	tk, h, s := newTask(t)

	h.typeText("d4a")
	h.key(hal.KeyBackspace)
	h.typeText("3")
	h.key(hal.KeyEnter)
	require.NoError(t, tk.Step())
	assert.Equal(t, 3, s.Divisions())
	assert.False(t, tk.prompt.active())

	h.typeText("d")
	h.key(hal.KeyEscape)
	require.NoError(t, tk.Step())
	assert.Equal(t, 3, s.Divisions())
	assert.Equal(t, "Division cancelled or invalid.", s.Message())

	h.typeText("d")
	h.key(hal.KeyEnter)
	require.NoError(t, tk.Step())
	assert.Equal(t, "Division cancelled or invalid.", s.Message())
}

func TestEquationPrompt(t *testing.T) {
	tk, h, s := newTask(t)

	h.typeText("e2x+1=x+3")
	h.key(hal.KeyEnter)
	require.NoError(t, tk.Step())
	assert.Equal(t, equation.Equation{AL: 2, BL: 1, AR: 1, BR: 3}, s.Equation())
	assert.Equal(t, "Equation loaded.", s.Message())

	h.typeText("e1=2=3")
	h.key(hal.KeyEnter)
	require.NoError(t, tk.Step())
	assert.Equal(t, equation.Equation{AL: 2, BL: 1, AR: 1, BR: 3}, s.Equation())
	assert.True(t, strings.HasPrefix(s.Message(), "Invalid equation: "), s.Message())
}

func TestPromptRendersWhileOpen(t *testing.T) {
	tk, h, _ := newTask(t)
	h.typeText("d")
	require.NoError(t, tk.Step())
	require.True(t, tk.prompt.active())

	bg := rgb565From888(colorPromptBG.R, colorPromptBG.G, colorPromptBG.B)
	assert.Equal(t, bg, h.fb.pixel(1100/2-120, 700/2+60))
}

func TestButtonsAndPalette(t *testing.T) {
	tk, h, s := newTask(t)
	_, err := s.LoadEquation("x=3")
	require.NoError(t, err)

	h.mouse(hal.PointerPress, 510, 110)
	h.mouse(hal.PointerRelease, 510, 110)
	require.NoError(t, tk.Step())
	assert.Equal(t, equation.Equation{AL: 1, BL: 1, AR: 0, BR: 4}, s.Equation())
	assert.Equal(t, "Piece added on both sides.", s.Message())

	h.mouse(hal.PointerPress, 300, 30)
	require.NoError(t, tk.Step())
	assert.Empty(t, s.Pieces())

	h.mouse(hal.PointerPress, 400, 30)
	require.NoError(t, tk.Step())
	assert.True(t, tk.prompt.active())

	h.mouse(hal.PointerPress, 30, 30)
	require.NoError(t, tk.Step())
	assert.Empty(t, s.Pieces(), "clicks are ignored while a prompt is open")
}

func TestDragAcrossTheBoard(t *testing.T) {
	tk, h, s := newTask(t)
	_, err := s.LoadEquation("x-1=3")
	require.NoError(t, err)
	g := s.Geometry()

	var minus piece.Piece
	for _, p := range s.Pieces() {
		if p.Kind == piece.Constant && p.Sign == piece.Negative {
			minus = p
		}
	}
	require.NotZero(t, minus.ID)

	grab := piece.Point{X: minus.Pos.X + 10, Y: minus.Pos.Y + 10}
	h.mouse(hal.PointerPress, grab.X, grab.Y)
	h.mouse(hal.PointerMove, g.RightX()+200, g.AreaY+100)
	require.NoError(t, tk.Step())

	held := s.Pieces()
	var dragging bool
	for _, p := range held {
		if p.ID == minus.ID {
			dragging = p.Dragging
			assert.Equal(t, piece.Point{X: g.RightX() + 190, Y: g.AreaY + 90}, p.Pos)
		}
	}
	assert.True(t, dragging)

	h.mouse(hal.PointerRelease, g.RightX()+200, g.AreaY+100)
	require.NoError(t, tk.Step())
	assert.Equal(t, equation.Equation{AL: 1, BL: 0, AR: 0, BR: 2}, s.Equation())
	assert.Equal(t, "Pieces cancelled!", s.Message())
	assert.Len(t, s.Markers(), 1)

	require.NoError(t, tk.Step())
	require.Len(t, s.Markers(), 1, "no time passed")
	h.elapsed = time.Second
	require.NoError(t, tk.Step())
	assert.Empty(t, s.Markers())
}

func TestPressOnEmptyBoardDoesNothing(t *testing.T) {
	tk, h, s := newTask(t)
	h.mouse(hal.PointerPress, 900, 650)
	h.mouse(hal.PointerRelease, 900, 650)
	require.NoError(t, tk.Step())
	assert.False(t, tk.drag.active)
	assert.Empty(t, s.Message())
}

func TestPostDrainsWhenFull(t *testing.T) {
	tk, h, s := newTask(t)
	for i := 0; i < 40; i++ {
		h.typeText("1")
	}
	require.NoError(t, tk.Step())
	assert.Len(t, s.Pieces(), 80)
	assert.Zero(t, tk.dropped)
}
