package board

import (
	"fmt"
	"image/color"

	"tinygo.org/x/drivers"
	"tinygo.org/x/tinyfont"

	"github.com/GabrielDSAlves/jogo/board/anim"
	"github.com/GabrielDSAlves/jogo/board/layout"
	"github.com/GabrielDSAlves/jogo/board/piece"
	"github.com/GabrielDSAlves/jogo/board/session"
	"github.com/GabrielDSAlves/jogo/hal"
)

var (
	colorBG        = color.RGBA{R: 250, G: 247, B: 255, A: 0xFF}
	colorTable     = color.RGBA{R: 240, G: 230, B: 250, A: 0xFF}
	colorLine      = color.RGBA{R: 90, G: 90, B: 120, A: 0xFF}
	colorBand      = color.RGBA{R: 100, G: 100, B: 100, A: 0xFF}
	colorText      = color.RGBA{R: 40, G: 40, B: 60, A: 0xFF}
	colorWhite     = color.RGBA{R: 255, G: 255, B: 255, A: 0xFF}
	colorButton    = color.RGBA{R: 200, G: 200, B: 200, A: 0xFF}
	colorButtonHot = color.RGBA{R: 220, G: 220, B: 225, A: 0xFF}
	colorPalette   = color.RGBA{R: 240, G: 240, B: 240, A: 0xFF}
	colorUnit      = color.RGBA{R: 255, G: 140, B: 180, A: 0xFF}
	colorUnitHL    = color.RGBA{R: 255, G: 190, B: 230, A: 0xFF}
	colorX         = color.RGBA{R: 120, G: 160, B: 255, A: 0xFF}
	colorXHL       = color.RGBA{R: 160, G: 200, B: 255, A: 0xFF}
	colorNegStripe = color.RGBA{R: 60, G: 60, B: 60, A: 0xFF}
	colorHighlight = color.RGBA{R: 255, G: 220, B: 80, A: 0xFF}
	colorMarker    = color.RGBA{R: 255, G: 200, B: 60, A: 0xFF}
	colorSolved    = color.RGBA{R: 30, G: 150, B: 30, A: 0xFF}
	colorPromptBG  = color.RGBA{R: 245, G: 245, B: 245, A: 0xFF}
	colorPromptBox = color.RGBA{R: 50, G: 50, B: 50, A: 0xFF}
)

const (
	textSmall  = 2
	textNormal = 3
	textBig    = 4
)

func (t *Task) initFont() bool {
	t.font = &tinyfont.TomThumb
	t.fontHeight = int16(t.font.GetYAdvance())
	return t.fontHeight > 0
}

func (t *Task) render(snap session.Snapshot) {
	if t.fb == nil || t.d == nil || t.fb.Format() != hal.PixelFormatRGB565 {
		return
	}
	w := int16(t.fb.Width())
	h := int16(t.fb.Height())
	if w <= 0 || h <= 0 {
		return
	}
	g := t.geom

	_ = t.d.FillRectangle(0, 0, w, h, colorBG)

	t.drawText(g.Margin, 60, "Balance board", textBig, colorText)
	for _, b := range buttons {
		fill := colorButton
		if b.rect.Contains(t.cursor) {
			fill = colorButtonHot
		}
		t.fillRect(b.rect, fill)
		t.drawTextCentered(b.rect, b.label, textNormal, colorText)
	}
	for _, p := range palette {
		t.fillRect(p.rect, colorPalette)
		t.strokeRect(p.rect, 2, colorLine)
		t.drawTextCentered(p.rect, p.label, textNormal, colorText)
	}

	t.drawText(g.Margin, g.AreaY-60, snap.Equation.String(), textBig, colorText)
	t.drawText(g.Margin, g.AreaY-20, snap.Message, textNormal, colorText)

	for _, side := range piece.Sides {
		r := g.Region(side)
		t.fillRect(r, colorTable)
		for _, y := range g.BandLines(snap.Divisions) {
			t.fillRect(layout.Rect{X: r.X + 10, Y: y - 1, W: r.W - 20, H: 2}, colorBand)
		}
	}

	eqX := g.LeftX() + g.SideWidth() + g.Margin/2
	t.fillRect(layout.Rect{X: eqX - 1, Y: g.AreaY + 20, W: 2, H: g.AreaHeight() - 40}, colorLine)
	t.drawText(eqX-6, g.AreaY+g.AreaHeight()/2-10, "=", textBig, colorText)

	var held *piece.Piece
	for i := range snap.Pieces {
		if snap.Pieces[i].Dragging {
			held = &snap.Pieces[i]
			continue
		}
		t.drawPiece(snap.Pieces[i])
	}
	if held != nil {
		t.drawPiece(*held)
	}

	for _, m := range snap.Markers {
		t.drawMarker(m)
	}

	t.drawText(g.Margin, g.Height-50, "Use the palette to add pieces. Only a piece plus its opposite cancels.", textSmall, colorText)
	if snap.Solved {
		t.drawText(g.RightX()-20, g.Height-90, fmt.Sprintf("Solved: x = %d", snap.Solution), textBig, colorSolved)
	}

	if t.prompt.active() {
		t.drawPrompt()
	}

	_ = t.d.Display()
}

func (t *Task) drawPiece(p piece.Piece) {
	size := t.geom.PieceSize
	r := layout.Rect{X: p.Pos.X, Y: p.Pos.Y, W: size, H: size}

	switch p.Kind {
	case piece.Constant:
		t.fillRect(r, colorUnit)
		t.fillRect(layout.Rect{X: r.X + 4, Y: r.Y + 4, W: r.W - 8, H: r.H / 3}, colorUnitHL)
		t.strokeRect(r, 2, colorLine)
		t.drawTextCentered(r, p.Kind.Label(), textNormal, colorWhite)
	case piece.Variable:
		c := p.Center(size)
		radius := size / 2
		t.fillCircle(c.X, c.Y, radius, colorX)
		t.fillCircle(c.X-8, c.Y-10, radius/3, colorXHL)
		t.strokeCircle(c.X, c.Y, radius, 2, colorLine)
		t.drawTextCentered(r, p.Kind.Label(), textNormal, colorWhite)
	}

	if p.Sign == piece.Negative {
		stripe := layout.Rect{X: r.X, Y: r.Y - 10, W: r.W, H: 10}
		t.fillRect(stripe, colorNegStripe)
		t.drawTextCentered(stripe, "-", textSmall, colorWhite)
	}

	if p.Dragging {
		t.strokeRect(r, 3, colorHighlight)
	}
}

func (t *Task) drawMarker(m anim.Marker) {
	frac := m.Progress()
	if frac >= 1 {
		return
	}
	radius := int(24*(1-frac) + 2)
	t.fillCircle(m.Pos.X, m.Pos.Y, radius, colorMarker)
}

func (t *Task) drawPrompt() {
	w, h := 260, 140
	if t.prompt.kind == promptEquation {
		w = 560
	}
	box := layout.Rect{X: (t.geom.Width - w) / 2, Y: (t.geom.Height - h) / 2, W: w, H: h}
	t.fillRect(box, colorPromptBG)
	t.strokeRect(box, 2, colorPromptBox)
	t.drawText(box.X+20, box.Y+20, t.prompt.kind.label(), textNormal, colorText)
	t.drawText(box.X+20, box.Y+70, t.prompt.text()+"_", textBig, colorText)
}

func (t *Task) fillRect(r layout.Rect, c color.RGBA) {
	_ = t.d.FillRectangle(int16(r.X), int16(r.Y), int16(r.W), int16(r.H), c)
}

func (t *Task) strokeRect(r layout.Rect, width int, c color.RGBA) {
	t.fillRect(layout.Rect{X: r.X, Y: r.Y, W: r.W, H: width}, c)
	t.fillRect(layout.Rect{X: r.X, Y: r.Y + r.H - width, W: r.W, H: width}, c)
	t.fillRect(layout.Rect{X: r.X, Y: r.Y, W: width, H: r.H}, c)
	t.fillRect(layout.Rect{X: r.X + r.W - width, Y: r.Y, W: width, H: r.H}, c)
}

func (t *Task) fillCircle(cx, cy, radius int, c color.RGBA) {
	for dy := -radius; dy <= radius; dy++ {
		dx := isqrt(radius*radius - dy*dy)
		t.fillRect(layout.Rect{X: cx - dx, Y: cy + dy, W: 2*dx + 1, H: 1}, c)
	}
}

func (t *Task) strokeCircle(cx, cy, radius, width int, c color.RGBA) {
	inner := radius - width
	for dy := -radius; dy <= radius; dy++ {
		outer := isqrt(radius*radius - dy*dy)
		if inner < 0 || dy < -inner || dy > inner {
			t.fillRect(layout.Rect{X: cx - outer, Y: cy + dy, W: 2*outer + 1, H: 1}, c)
			continue
		}
		in := isqrt(inner*inner - dy*dy)
		t.fillRect(layout.Rect{X: cx - outer, Y: cy + dy, W: outer - in, H: 1}, c)
		t.fillRect(layout.Rect{X: cx + in + 1, Y: cy + dy, W: outer - in, H: 1}, c)
	}
}

func isqrt(v int) int {
	if v <= 0 {
		return 0
	}
	r := 0
	for (r+1)*(r+1) <= v {
		r++
	}
	return r
}

// drawText writes s with its top-left corner at (x, y), each font pixel
// blown up to scale×scale.
func (t *Task) drawText(x, y int, s string, scale int16, c color.RGBA) {
	if t.font == nil || s == "" {
		return
	}
	sd := &scaledDisplayer{d: t.d, ox: int16(x), oy: int16(y), scale: scale}
	tinyfont.WriteLine(sd, t.font, 0, t.fontHeight-1, s, c)
}

func (t *Task) drawTextCentered(r layout.Rect, s string, scale int16, c color.RGBA) {
	w := t.textWidth(s, scale)
	h := int(t.fontHeight) * int(scale)
	t.drawText(r.X+(r.W-w)/2, r.Y+(r.H-h)/2, s, scale, c)
}

func (t *Task) textWidth(s string, scale int16) int {
	if t.font == nil {
		return 0
	}
	_, outbox := tinyfont.LineWidth(t.font, s)
	return int(outbox) * int(scale)
}

// scaledDisplayer draws each pixel as a scale×scale block offset by (ox, oy).
type scaledDisplayer struct {
	d      *fbDisplayer
	ox, oy int16
	scale  int16
}

var _ drivers.Displayer = (*scaledDisplayer)(nil)

func (s *scaledDisplayer) Size() (x, y int16) { return s.d.Size() }

func (s *scaledDisplayer) SetPixel(x, y int16, c color.RGBA) {
	_ = s.d.FillRectangle(s.ox+x*s.scale, s.oy+y*s.scale, s.scale, s.scale, c)
}

func (s *scaledDisplayer) Display() error { return nil }

type fbDisplayer struct {
	fb hal.Framebuffer
}

var _ drivers.Displayer = (*fbDisplayer)(nil)

func (d *fbDisplayer) Size() (x, y int16) {
	if d.fb == nil {
		return 0, 0
	}
	return int16(d.fb.Width()), int16(d.fb.Height())
}

func (d *fbDisplayer) SetPixel(x, y int16, c color.RGBA) {
	_ = d.FillRectangle(x, y, 1, 1, c)
}

func (d *fbDisplayer) Display() error {
	if d.fb == nil {
		return nil
	}
	return d.fb.Present()
}

func (d *fbDisplayer) FillRectangle(x, y, width, height int16, c color.RGBA) error {
	if d.fb == nil || d.fb.Format() != hal.PixelFormatRGB565 {
		return nil
	}
	buf := d.fb.Buffer()
	if buf == nil {
		return nil
	}

	w := d.fb.Width()
	h := d.fb.Height()
	x0 := clampInt(int(x), 0, w)
	y0 := clampInt(int(y), 0, h)
	x1 := clampInt(int(x)+int(width), 0, w)
	y1 := clampInt(int(y)+int(height), 0, h)
	if x0 >= x1 || y0 >= y1 {
		return nil
	}

	pixel := rgb565From888(c.R, c.G, c.B)
	lo := byte(pixel)
	hi := byte(pixel >> 8)
	stride := d.fb.StrideBytes()
	for py := y0; py < y1; py++ {
		row := py * stride
		for px := x0; px < x1; px++ {
			off := row + px*2
			if off < 0 || off+1 >= len(buf) {
				continue
			}
			buf[off] = lo
			buf[off+1] = hi
		}
	}
	return nil
}

func rgb565From888(r, g, b uint8) uint16 {
	return uint16((uint16(r>>3)&0x1F)<<11 | (uint16(g>>2)&0x3F)<<5 | (uint16(b>>3) & 0x1F))
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
