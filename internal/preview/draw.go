package preview

import (
	"image/color"

	"cogentcore.org/core/math32"
	"github.com/gdamore/tcell/v2"

	"github.com/yaklabco/imgtext/pkg/decor"
	"github.com/yaklabco/imgtext/pkg/shaper"
)

// Cell runes for images.
const (
	imageRune   = '▣'
	missingRune = '?'
)

// Draw renders the layout, its decorations and the status line.
func (h *Host) Draw() {
	h.screen.Clear()

	if h.layout != nil {
		for _, g := range h.layout.Glyphs {
			if g.Placeholder {
				continue
			}
			h.screen.SetContent(g.Col, g.Row, g.Rune, nil, glyphStyle(g.Style))
		}
	}

	h.drawUnderlines()
	h.drawImages()
	h.drawStatus()

	h.screen.Show()
}

func glyphStyle(s shaper.Style) tcell.Style {
	style := tcell.StyleDefault
	if s.Color != "" {
		style = style.Foreground(tcell.GetColor(s.Color))
	}
	return style.Bold(s.Bold).Italic(s.Italic)
}

func tcellColor(c color.RGBA) tcell.Color {
	return tcell.NewRGBColor(int32(c.R), int32(c.G), int32(c.B))
}

func (h *Host) cellAt(p math32.Vector2) (int, int) {
	return h.opts.Shaper.CellAt(p)
}

func (h *Host) cellWidth() float32 {
	if h.opts.Shaper.GlyphWidth > 0 {
		return h.opts.Shaper.GlyphWidth
	}
	return shaper.DefaultGlyphWidth
}

func (h *Host) drawUnderlines() {
	for _, p := range h.canvas.Visible(decor.KindUnderline) {
		row, from, to := underlineSpan(p, h.cellAt, h.cellWidth())
		for col := from; col < to; col++ {
			mainc, combc, style, _ := h.screen.GetContent(col, row)
			style = style.Underline(true)
			h.screen.SetContent(col, row, mainc, combc, style)
		}
	}
}

func (h *Host) drawImages() {
	for _, p := range h.canvas.Visible(decor.KindImage) {
		col, row := h.cellAt(p.Center)

		if avg, ok := averageColor(p.Image); ok {
			h.screen.SetContent(col, row, imageRune, nil, tcell.StyleDefault.Foreground(tcellColor(avg)))
			continue
		}
		h.screen.SetContent(col, row, missingRune, nil, tcell.StyleDefault.Foreground(tcell.ColorRed).Bold(true))
	}
}

func (h *Host) drawStatus() {
	w, ht := h.screen.Size()
	if ht == 0 {
		return
	}

	style := tcell.StyleDefault.Reverse(true)
	status := []rune(" " + h.Status() + "  [click] follow  [m] mode  [q] quit")
	for x := range w {
		r := ' '
		if x < len(status) {
			r = status[x]
		}
		h.screen.SetContent(x, ht-1, r, nil, style)
	}
}
