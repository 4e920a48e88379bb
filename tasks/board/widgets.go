package board

import (
	"github.com/GabrielDSAlves/jogo/board/layout"
	"github.com/GabrielDSAlves/jogo/board/piece"
)

type action uint8

const (
	actionNone action = iota
	actionGenerate
	actionClear
	actionDivide
)

type button struct {
	rect  layout.Rect
	label string
	act   action
}

var buttons = [...]button{
	{layout.Rect{X: 20, Y: 20, W: 220, H: 32}, "New equation", actionGenerate},
	{layout.Rect{X: 250, Y: 20, W: 120, H: 32}, "Clear", actionClear},
	{layout.Rect{X: 380, Y: 20, W: 120, H: 32}, "Divide", actionDivide},
}

type paletteSlot struct {
	rect  layout.Rect
	label string
	kind  piece.Kind
	sign  piece.Sign
}

const paletteSize = 58

// palette is ordered as the 1..4 shortcuts.
var palette = [...]paletteSlot{
	{layout.Rect{X: 500, Y: 100, W: paletteSize, H: paletteSize}, "+1", piece.Constant, piece.Positive},
	{layout.Rect{X: 580, Y: 100, W: paletteSize, H: paletteSize}, "-1", piece.Constant, piece.Negative},
	{layout.Rect{X: 660, Y: 100, W: paletteSize, H: paletteSize}, "+x", piece.Variable, piece.Positive},
	{layout.Rect{X: 740, Y: 100, W: paletteSize, H: paletteSize}, "-x", piece.Variable, piece.Negative},
}

func hitButton(pt piece.Point) action {
	for _, b := range buttons {
		if b.rect.Contains(pt) {
			return b.act
		}
	}
	return actionNone
}

func hitPalette(pt piece.Point) (paletteSlot, bool) {
	for _, p := range palette {
		if p.rect.Contains(pt) {
			return p, true
		}
	}
	return paletteSlot{}, false
}

// paletteShortcut maps '1'..'4' to a palette slot.
func paletteShortcut(r rune) (paletteSlot, bool) {
	i := int(r - '1')
	if i < 0 || i >= len(palette) {
		return paletteSlot{}, false
	}
	return palette[i], true
}
