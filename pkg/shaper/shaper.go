// Package shaper is a monospace grid text shaper that turns a rendered
// markup string into a glyph-quad geometry stream.
//
// It understands the native tags a rich text shaper interprets (color, bold,
// italic, size and quad) and emits geometry in one of two modes: ModeCurrent
// emits quads only for visible glyphs, while ModeLegacy emits one quad for
// every character of the input plus a trailing one.
package shaper

import (
	"fmt"
	"strings"
	"unicode"

	"cogentcore.org/core/math32"

	"github.com/yaklabco/imgtext/pkg/markup"
)

// Mode selects the geometry layout.
type Mode int

const (
	// ModeCurrent emits no geometry for tags and whitespace.
	ModeCurrent Mode = iota

	// ModeLegacy emits a quad for every character, degenerate for tags and
	// whitespace, plus one trailing degenerate quad.
	ModeLegacy
)

// String returns the mode name.
func (m Mode) String() string {
	if m == ModeLegacy {
		return "legacy"
	}
	return "current"
}

// ParseMode parses a mode name.
func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "current":
		return ModeCurrent, nil
	case "legacy":
		return ModeLegacy, nil
	default:
		return ModeCurrent, fmt.Errorf("unknown shaper mode %q (want current or legacy)", s)
	}
}

// Default glyph metrics.
const (
	DefaultGlyphWidth  = 8
	DefaultGlyphHeight = 14
	DefaultLineHeight  = 16
)

// Options configures the shaper.
type Options struct {
	Mode Mode

	GlyphWidth  float32
	GlyphHeight float32

	// LineHeight is the distance between rows. It must exceed GlyphHeight so
	// line breaks are detectable in the geometry.
	LineHeight float32

	// MaxColumns wraps lines at this many columns; zero disables wrapping.
	MaxColumns int
}

// DefaultOptions returns current-mode options with the default metrics.
func DefaultOptions() Options {
	return Options{
		Mode:        ModeCurrent,
		GlyphWidth:  DefaultGlyphWidth,
		GlyphHeight: DefaultGlyphHeight,
		LineHeight:  DefaultLineHeight,
	}
}

func (o Options) withDefaults() Options {
	if o.GlyphWidth <= 0 {
		o.GlyphWidth = DefaultGlyphWidth
	}
	if o.GlyphHeight <= 0 {
		o.GlyphHeight = DefaultGlyphHeight
	}
	if o.LineHeight <= o.GlyphHeight {
		o.LineHeight = o.GlyphHeight + 2
	}
	return o
}

// CellOrigin returns the top-left corner of the cell at col, row.
func (o Options) CellOrigin(col, row int) math32.Vector2 {
	o = o.withDefaults()
	return math32.Vec2(float32(col)*o.GlyphWidth, -float32(row)*o.LineHeight)
}

// CellCenter returns the centre of the glyph drawn in the cell at col, row.
func (o Options) CellCenter(col, row int) math32.Vector2 {
	o = o.withDefaults()
	origin := o.CellOrigin(col, row)
	return math32.Vec2(origin.X+o.GlyphWidth/2, origin.Y-o.GlyphHeight/2)
}

// CellAt returns the cell containing p.
func (o Options) CellAt(p math32.Vector2) (col, row int) {
	o = o.withDefaults()
	return int(math32.Floor(p.X / o.GlyphWidth)), int(math32.Floor(-p.Y / o.LineHeight))
}

// Style is the native formatting applied to a glyph.
type Style struct {
	Color  string
	Bold   bool
	Italic bool
	Size   string
}

// Glyph is one visible glyph placed on the grid.
type Glyph struct {
	Rune  rune
	Col   int
	Row   int
	Style Style

	// Placeholder marks the single glyph a quad tag renders as.
	Placeholder bool
}

// Layout is the result of shaping one string.
type Layout struct {
	Vertices []markup.Vertex
	Glyphs   []Glyph
	Rows     int
	Columns  int
}

type runeClass int

const (
	classText runeClass = iota
	classTag
	classQuadHead
)

// Shape lays out rendered on the grid.
func Shape(rendered string, opts Options) (*Layout, error) {
	opts = opts.withDefaults()

	matches, err := markup.Scan(rendered)
	if err != nil {
		return nil, fmt.Errorf("shape: %w", err)
	}

	runes := []rune(rendered)
	classes, styles := classify(runes, matches)

	s := &state{opts: opts, layout: &Layout{}}
	for i, r := range runes {
		switch {
		case classes[i] == classTag:
			s.degenerate()
		case classes[i] == classQuadHead:
			s.glyph(Glyph{Rune: r, Style: styles[i], Placeholder: true})
		case r == '\n':
			s.degenerate()
			s.newline()
		case unicode.IsSpace(r):
			s.degenerate()
			s.col++
		default:
			s.glyph(Glyph{Rune: r, Style: styles[i]})
		}
	}
	s.degenerate()

	s.layout.Rows = s.row + 1
	return s.layout, nil
}

// classify marks every rune as text, tag markup or quad placeholder, and
// resolves the formatting style of each rune.
func classify(runes []rune, m *markup.Matches) ([]runeClass, []Style) {
	classes := make([]runeClass, len(runes))
	styles := make([]Style, len(runes))

	mark := func(g markup.Group, c runeClass) {
		for i := g.Index; i < g.End() && i < len(runes); i++ {
			classes[i] = c
		}
	}

	for _, f := range m.Formatting {
		mark(f.Open, classTag)
		mark(f.Close, classTag)

		value := tagValue(runes[f.Open.Index:f.Open.End()])
		for i := f.Content.Index; i < f.Content.End() && i < len(runes); i++ {
			switch f.Kind {
			case markup.KindColor:
				styles[i].Color = value
			case markup.KindBold:
				styles[i].Bold = true
			case markup.KindItalic:
				styles[i].Italic = true
			case markup.KindSize:
				styles[i].Size = value
			}
		}
	}

	for _, q := range m.Quads {
		mark(q.Whole, classTag)
		if q.Whole.Length > 0 {
			classes[q.Whole.Index] = classQuadHead
		}
	}

	return classes, styles
}

// tagValue returns the text between '=' and '>' of an opening tag.
func tagValue(open []rune) string {
	s := string(open)
	eq := strings.IndexByte(s, '=')
	if eq < 0 {
		return ""
	}
	return strings.TrimSuffix(s[eq+1:], ">")
}

type state struct {
	opts   Options
	layout *Layout
	col    int
	row    int
}

func (s *state) newline() {
	s.col = 0
	s.row++
}

func (s *state) glyph(g Glyph) {
	if s.opts.MaxColumns > 0 && s.col >= s.opts.MaxColumns {
		s.newline()
	}

	g.Col, g.Row = s.col, s.row
	origin := s.opts.CellOrigin(s.col, s.row)
	s.quad(origin, s.opts.GlyphWidth, s.opts.GlyphHeight)
	s.layout.Glyphs = append(s.layout.Glyphs, g)

	s.col++
	s.layout.Columns = max(s.layout.Columns, s.col)
}

// degenerate emits a zero-size quad at the pen in legacy mode.
func (s *state) degenerate() {
	if s.opts.Mode != ModeLegacy {
		return
	}
	col := s.col
	if s.opts.MaxColumns > 0 {
		col = min(col, s.opts.MaxColumns)
	}
	s.quad(s.opts.CellOrigin(col, s.row), 0, 0)
}

func (s *state) quad(origin math32.Vector2, w, h float32) {
	tl := origin
	tr := math32.Vec2(origin.X+w, origin.Y)
	br := math32.Vec2(origin.X+w, origin.Y-h)
	bl := math32.Vec2(origin.X, origin.Y-h)

	for _, p := range [...]math32.Vector2{tl, tr, br, br, bl, tl} {
		s.layout.Vertices = append(s.layout.Vertices, markup.Vertex{Pos: p})
	}
}
