// Package preview hosts a markup Text in a terminal: it shapes the text on the
// cell grid, draws link underlines and inline images from the decoration
// pool, and routes mouse clicks back to the text's click handlers.
package preview

import (
	"image"
	"image/color"

	"cogentcore.org/core/math32"

	"github.com/yaklabco/imgtext/pkg/decor"
)

type visual struct {
	decor.Placement
	visible bool
}

// Canvas is the decoration sink of a terminal host. It keeps every visual the
// pool has created; hidden visuals stay allocated for reuse.
type Canvas struct {
	underlines []visual
	images     []visual
}

var _ decor.Sink = (*Canvas)(nil)

func (c *Canvas) list(kind decor.Kind) *[]visual {
	if kind == decor.KindImage {
		return &c.images
	}
	return &c.underlines
}

// Create implements decor.Sink.
func (c *Canvas) Create(index int, p decor.Placement) {
	list := c.list(p.Kind)
	for len(*list) <= index {
		*list = append(*list, visual{})
	}
	(*list)[index] = visual{Placement: p, visible: true}
}

// Update implements decor.Sink.
func (c *Canvas) Update(index int, p decor.Placement) {
	list := c.list(p.Kind)
	if index < 0 || index >= len(*list) {
		c.Create(index, p)
		return
	}
	(*list)[index] = visual{Placement: p, visible: true}
}

// Hide implements decor.Sink.
func (c *Canvas) Hide(kind decor.Kind, index int) {
	list := c.list(kind)
	if index >= 0 && index < len(*list) {
		(*list)[index].visible = false
		(*list)[index].Color = decor.Transparent
	}
}

// Len returns the number of allocated visuals of kind.
func (c *Canvas) Len(kind decor.Kind) int {
	return len(*c.list(kind))
}

// Visible returns the placements of the visible visuals of kind.
func (c *Canvas) Visible(kind decor.Kind) []decor.Placement {
	var out []decor.Placement
	for _, v := range *c.list(kind) {
		if v.visible {
			out = append(out, v.Placement)
		}
	}
	return out
}

// underlineSpan returns the row and the half-open column range an underline
// placement covers on a grid of cellWidth wide cells.
func underlineSpan(p decor.Placement, cellAt func(math32.Vector2) (int, int), cellWidth float32) (row, from, to int) {
	left := p.Center.X - p.Size.X/2
	right := p.Center.X + p.Size.X/2
	_, row = cellAt(p.Center)
	from = int(math32.Floor(left/cellWidth + 0.5))
	to = int(math32.Floor(right/cellWidth + 0.5))
	return row, from, to
}

// averageColor samples img on a coarse grid and returns its mean opaque color.
func averageColor(img image.Image) (color.RGBA, bool) {
	if img == nil {
		return color.RGBA{}, false
	}

	b := img.Bounds()
	if b.Empty() {
		return color.RGBA{}, false
	}

	const samples = 8
	stepX := max(1, b.Dx()/samples)
	stepY := max(1, b.Dy()/samples)

	var r, g, bl, n uint64
	for y := b.Min.Y; y < b.Max.Y; y += stepY {
		for x := b.Min.X; x < b.Max.X; x += stepX {
			cr, cg, cb, ca := img.At(x, y).RGBA()
			if ca == 0 {
				continue
			}
			r += uint64(cr >> 8)
			g += uint64(cg >> 8)
			bl += uint64(cb >> 8)
			n++
		}
	}
	if n == 0 {
		return color.RGBA{}, false
	}

	return color.RGBA{R: uint8(r / n), G: uint8(g / n), B: uint8(bl / n), A: 255}, true
}
