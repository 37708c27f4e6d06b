package shaper_test

import (
	"testing"

	"cogentcore.org/core/math32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/imgtext/internal/logging"
	"github.com/yaklabco/imgtext/pkg/markup"
	"github.com/yaklabco/imgtext/pkg/shaper"
)

func glyphRunes(l *shaper.Layout) string {
	out := make([]rune, 0, len(l.Glyphs))
	for _, g := range l.Glyphs {
		out = append(out, g.Rune)
	}
	return string(out)
}

func TestShape_Current(t *testing.T) {
	t.Parallel()

	layout, err := shaper.Shape("Go to <color=blue>Baidu</color> now", shaper.DefaultOptions())
	require.NoError(t, err)

	assert.Equal(t, "GotoBaidunow", glyphRunes(layout))
	assert.Len(t, layout.Vertices, 12*markup.VerticesPerGlyph)
	assert.Equal(t, 1, layout.Rows)
	assert.Equal(t, 15, layout.Columns)

	b := layout.Glyphs[4]
	assert.Equal(t, 'B', b.Rune)
	assert.Equal(t, 6, b.Col)
	assert.Equal(t, "blue", b.Style.Color)
	assert.Empty(t, layout.Glyphs[0].Style.Color)
}

func TestShape_Legacy(t *testing.T) {
	t.Parallel()

	rendered := "Go to <color=blue>Baidu</color> now"
	opts := shaper.DefaultOptions()
	opts.Mode = shaper.ModeLegacy

	layout, err := shaper.Shape(rendered, opts)
	require.NoError(t, err)

	assert.Len(t, layout.Vertices, markup.ExpectedLegacyVertexCount(rendered))
	assert.Equal(t, "GotoBaidunow", glyphRunes(layout))

	// Rune 18 is the 'B' of the label; its quad is a full glyph.
	b := layout.Vertices[18*markup.VerticesPerGlyph : 19*markup.VerticesPerGlyph]
	assert.Equal(t, math32.Vec2(48, 0), b[0].Pos)
	assert.Equal(t, math32.Vec2(48, -14), b[4].Pos)
}

func TestShape_Styles(t *testing.T) {
	t.Parallel()

	layout, err := shaper.Shape("<b>x</b><i>y</i><size=20>z</size>", shaper.DefaultOptions())
	require.NoError(t, err)
	require.Len(t, layout.Glyphs, 3)

	assert.True(t, layout.Glyphs[0].Style.Bold)
	assert.True(t, layout.Glyphs[1].Style.Italic)
	assert.Equal(t, "20", layout.Glyphs[2].Style.Size)
}

func TestShape_QuadPlaceholder(t *testing.T) {
	t.Parallel()

	layout, err := shaper.Shape("<quad img=icon size=2 width=1.5 height=1.5/>hi", shaper.DefaultOptions())
	require.NoError(t, err)

	require.Len(t, layout.Glyphs, 3)
	assert.True(t, layout.Glyphs[0].Placeholder)
	assert.Equal(t, "<hi", glyphRunes(layout))
}

func TestShape_Wrap(t *testing.T) {
	t.Parallel()

	opts := shaper.DefaultOptions()
	opts.MaxColumns = 3

	layout, err := shaper.Shape("abcdef", opts)
	require.NoError(t, err)

	assert.Equal(t, 2, layout.Rows)
	assert.Equal(t, 3, layout.Columns)
	assert.Equal(t, 0, layout.Glyphs[3].Col)
	assert.Equal(t, 1, layout.Glyphs[3].Row)
	assert.Equal(t, math32.Vec2(0, -16), layout.Vertices[3*markup.VerticesPerGlyph].Pos)
}

func TestShape_Newline(t *testing.T) {
	t.Parallel()

	layout, err := shaper.Shape("ab\ncd", shaper.DefaultOptions())
	require.NoError(t, err)

	assert.Equal(t, 2, layout.Rows)
	assert.Equal(t, 0, layout.Glyphs[2].Col)
	assert.Equal(t, 1, layout.Glyphs[2].Row)
}

func TestParseMode(t *testing.T) {
	t.Parallel()

	mode, err := shaper.ParseMode("Legacy")
	require.NoError(t, err)
	assert.Equal(t, shaper.ModeLegacy, mode)

	mode, err = shaper.ParseMode("")
	require.NoError(t, err)
	assert.Equal(t, shaper.ModeCurrent, mode)

	_, err = shaper.ParseMode("fancy")
	require.Error(t, err)
}

func TestOptions_Cells(t *testing.T) {
	t.Parallel()

	opts := shaper.DefaultOptions()

	assert.Equal(t, math32.Vec2(12, -23), opts.CellCenter(1, 1))

	col, row := opts.CellAt(opts.CellCenter(4, 2))
	assert.Equal(t, 4, col)
	assert.Equal(t, 2, row)
}

// layoutText shapes t's rendered string and feeds the geometry back to it.
func layoutText(t *testing.T, text *markup.Text, opts shaper.Options) *shaper.Layout {
	t.Helper()

	layout, err := shaper.Shape(text.Rendered(), opts)
	require.NoError(t, err)
	text.Populate(layout.Vertices)
	return layout
}

func TestEndToEnd_ClickBothModes(t *testing.T) {
	t.Parallel()

	for _, mode := range []shaper.Mode{shaper.ModeCurrent, shaper.ModeLegacy} {
		t.Run(mode.String(), func(t *testing.T) {
			t.Parallel()

			text := markup.New(markup.WithLogger(logging.Discard()))
			require.NoError(t, text.SetText("Go to <url param=baidu.com>Baidu</url> now"))

			opts := shaper.DefaultOptions()
			opts.Mode = mode
			layoutText(t, text, opts)

			var got string
			_, err := text.AddClickLinkEvent(0, func(param string) { got = param })
			require.NoError(t, err)

			assert.Zero(t, text.Click(opts.CellCenter(0, 0)))
			assert.Equal(t, 1, text.Click(opts.CellCenter(8, 0)))
			assert.Equal(t, "baidu.com", got)
		})
	}
}

func TestEndToEnd_WrappedLink(t *testing.T) {
	t.Parallel()

	for _, mode := range []shaper.Mode{shaper.ModeCurrent, shaper.ModeLegacy} {
		t.Run(mode.String(), func(t *testing.T) {
			t.Parallel()

			text := markup.New(markup.WithLogger(logging.Discard()))
			require.NoError(t, text.SetText("<url param=p>abcdef</url>"))

			opts := shaper.DefaultOptions()
			opts.Mode = mode
			opts.MaxColumns = 4
			layoutText(t, text, opts)

			links := text.Links()
			require.Len(t, links, 1)
			assert.Len(t, links[0].Regions, 2)
			assert.Equal(t, []int{0}, text.HitTest(opts.CellCenter(1, 1)))
			assert.Empty(t, text.HitTest(opts.CellCenter(3, 1)))
		})
	}
}

func TestEndToEnd_ImageAnchor(t *testing.T) {
	t.Parallel()

	for _, mode := range []shaper.Mode{shaper.ModeCurrent, shaper.ModeLegacy} {
		t.Run(mode.String(), func(t *testing.T) {
			t.Parallel()

			text := markup.New(markup.WithLogger(logging.Discard()))
			require.NoError(t, text.SetText("hi <quad img=icon size=2 width=1.5 height=1.5/>"))

			opts := shaper.DefaultOptions()
			opts.Mode = mode
			layoutText(t, text, opts)

			images := text.Images()
			require.Len(t, images, 1)
			require.True(t, images[0].Resolved)
			assert.Equal(t, opts.CellCenter(3, 0), images[0].Anchor)
		})
	}
}
