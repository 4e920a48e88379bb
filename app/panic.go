package app

import (
	"fmt"
	"image/color"
	"log/slog"
	"runtime/debug"
	"strings"
	"unicode/utf8"

	"tinygo.org/x/tinyfont"

	"github.com/GabrielDSAlves/jogo/hal"
)

const (
	crashScale      = 2
	crashLineHeight = 7 * crashScale
	crashGlyphWidth = 4 * crashScale
)

// crash logs a recovered panic with its stack, paints it onto the
// framebuffer and returns it as an error so the runner stops.
func crash(h hal.HAL, log *slog.Logger, value any) error {
	stack := string(debug.Stack())
	log.Error("board panic", "panic", value, "stack", stack)

	lines := []string{"Board panic:", fmt.Sprintf("panic: %v", value), "stack:"}
	for _, line := range strings.Split(stack, "\n") {
		if line != "" {
			lines = append(lines, strings.ReplaceAll(line, "\t", "  "))
		}
	}
	if h != nil {
		if disp := h.Display(); disp != nil {
			if fb := disp.Framebuffer(); fb != nil {
				paintCrash(fb, lines)
			}
		}
	}
	return fmt.Errorf("board panic: %v", value)
}

func paintCrash(fb hal.Framebuffer, lines []string) {
	fb.ClearRGB(255, 255, 255)
	d := crashDisplay{fb: fb}
	fg := color.RGBA{A: 255}

	cols := int16(fb.Width()) / crashGlyphWidth
	if cols <= 0 {
		cols = 1
	}
	y := int16(crashLineHeight)
	for _, line := range lines {
		for len(line) > 0 {
			if int(y) > fb.Height() {
				_ = fb.Present()
				return
			}
			chunk, rest := takeRunes(line, cols)
			tinyfont.WriteLine(d, &tinyfont.TomThumb, 0, y/crashScale, chunk, fg)
			y += crashLineHeight
			line = strings.TrimLeft(rest, " ")
		}
	}
	_ = fb.Present()
}

// crashDisplay scales TomThumb glyphs up onto an RGB565 framebuffer.
type crashDisplay struct {
	fb hal.Framebuffer
}

func (d crashDisplay) Size() (x, y int16) {
	return int16(d.fb.Width() / crashScale), int16(d.fb.Height() / crashScale)
}

func (d crashDisplay) SetPixel(x, y int16, c color.RGBA) {
	if d.fb.Format() != hal.PixelFormatRGB565 {
		return
	}
	buf := d.fb.Buffer()
	w, h := d.fb.Width(), d.fb.Height()
	pixel := uint16((uint16(c.R>>3)&0x1F)<<11 | (uint16(c.G>>2)&0x3F)<<5 | (uint16(c.B>>3) & 0x1F))
	for dy := 0; dy < crashScale; dy++ {
		for dx := 0; dx < crashScale; dx++ {
			ix := int(x)*crashScale + dx
			iy := int(y)*crashScale + dy
			if ix < 0 || ix >= w || iy < 0 || iy >= h {
				continue
			}
			off := iy*d.fb.StrideBytes() + ix*2
			if off < 0 || off+1 >= len(buf) {
				continue
			}
			buf[off] = byte(pixel)
			buf[off+1] = byte(pixel >> 8)
		}
	}
}

func (d crashDisplay) Display() error { return nil }

func takeRunes(s string, n int16) (prefix, rest string) {
	if n <= 0 || s == "" {
		return "", s
	}
	if int64(len(s)) <= int64(n) {
		return s, ""
	}
	var i int
	var count int16
	for i < len(s) && count < n {
		_, size := utf8.DecodeRuneInString(s[i:])
		if size <= 0 {
			break
		}
		i += size
		count++
	}
	if i >= len(s) {
		return s, ""
	}
	return s[:i], s[i:]
}
