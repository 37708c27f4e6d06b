package markup_test

import (
	"testing"

	"cogentcore.org/core/math32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/imgtext/pkg/markup"
)

const (
	testGlyphW = 8
	testGlyphH = 14
	testLineH  = 16
)

// glyph returns the six vertices of a glyph whose top-left corner is (x, y).
func glyph(x, y float32) []markup.Vertex {
	tl := math32.Vec2(x, y)
	tr := math32.Vec2(x+testGlyphW, y)
	br := math32.Vec2(x+testGlyphW, y-testGlyphH)
	bl := math32.Vec2(x, y-testGlyphH)

	out := make([]markup.Vertex, 0, markup.VerticesPerGlyph)
	for _, p := range []math32.Vector2{tl, tr, br, br, bl, tl} {
		out = append(out, markup.Vertex{Pos: p})
	}
	return out
}

// grid lays out cols glyphs per row for the given number of glyphs.
func grid(n, cols int) []markup.Vertex {
	var stream []markup.Vertex
	for i := range n {
		col, row := i%cols, i/cols
		stream = append(stream, glyph(float32(col*testGlyphW), float32(-row*testLineH))...)
	}
	return stream
}

func TestToIndexRange(t *testing.T) {
	t.Parallel()

	r := markup.ToIndexRange(markup.Offsets{Start: 6, End: 10})
	assert.Equal(t, markup.IndexRange{Start: 36, End: 65}, r)
	assert.True(t, r.InBounds(37))
	assert.False(t, r.InBounds(36))
	assert.False(t, markup.IndexRange{Start: -6, End: -1}.InBounds(10))
}

func TestSelectTrack(t *testing.T) {
	t.Parallel()

	expected := markup.ExpectedLegacyVertexCount("Go to <color=blue>Baidu</color> now")
	assert.Equal(t, 6*36, expected)
	assert.Equal(t, markup.TrackLegacy, markup.SelectTrack(expected, expected))
	assert.Equal(t, markup.TrackCurrent, markup.SelectTrack(expected-6, expected))
	assert.Equal(t, "legacy", markup.TrackLegacy.String())
	assert.Equal(t, "current", markup.TrackCurrent.String())
}

func TestBuildRegions_SingleLine(t *testing.T) {
	t.Parallel()

	stream := grid(5, 10)
	regions := markup.BuildRegions(stream, markup.ToIndexRange(markup.Offsets{Start: 1, End: 3}))

	require.Len(t, regions, 1)
	assert.Equal(t, math32.Vec2(8, -14), regions[0].Min)
	assert.Equal(t, math32.Vec2(32, 0), regions[0].Max)
}

func TestBuildRegions_Wrapped(t *testing.T) {
	t.Parallel()

	// Three columns: glyphs 1,2 on row 0 and 3,4 on row 1.
	stream := grid(6, 3)
	regions := markup.BuildRegions(stream, markup.ToIndexRange(markup.Offsets{Start: 1, End: 4}))

	require.Len(t, regions, 2)
	assert.Equal(t, math32.Vec2(8, -14), regions[0].Min)
	assert.Equal(t, math32.Vec2(24, 0), regions[0].Max)
	assert.Equal(t, math32.Vec2(0, -30), regions[1].Min)
	assert.Equal(t, math32.Vec2(16, -16), regions[1].Max)
}

func TestBuildRegions_OutOfBounds(t *testing.T) {
	t.Parallel()

	stream := grid(2, 10)
	assert.Nil(t, markup.BuildRegions(stream, markup.IndexRange{Start: 12, End: 17}))
	assert.Nil(t, markup.BuildRegions(stream, markup.IndexRange{Start: -6, End: 5}))
}

func TestBuildRegions_EndPastStream(t *testing.T) {
	t.Parallel()

	stream := grid(2, 10)
	regions := markup.BuildRegions(stream, markup.IndexRange{Start: 6, End: 29})

	require.Len(t, regions, 1)
	assert.Equal(t, math32.Vec2(16, 0), regions[0].Max)
}

func TestComputeAnchorAndCollapse(t *testing.T) {
	t.Parallel()

	stream := grid(3, 10)
	r := markup.ToIndexRange(markup.Offsets{Start: 1, End: 1})

	anchor, bounds := markup.ComputeAnchor(stream, r)
	assert.Equal(t, math32.Vec2(12, -7), anchor)
	assert.Equal(t, math32.Vec2(8, -14), bounds.Min)

	collapsed := markup.CollapseStream(stream, []markup.IndexRange{r})
	require.Len(t, collapsed, len(stream))
	for i := r.Start; i <= r.End; i++ {
		assert.Equal(t, stream[r.Start].Pos, collapsed[i].Pos)
	}
	assert.Equal(t, stream[0], collapsed[0])
	// Input is untouched.
	assert.Equal(t, math32.Vec2(16, 0), stream[r.Start+1].Pos)
}
