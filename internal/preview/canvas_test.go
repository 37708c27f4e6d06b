package preview

import (
	"image"
	"image/color"
	"testing"

	"cogentcore.org/core/math32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/imgtext/pkg/decor"
	"github.com/yaklabco/imgtext/pkg/shaper"
)

func TestCanvas_Sink(t *testing.T) {
	t.Parallel()

	c := &Canvas{}
	blue := color.RGBA{B: 255, A: 255}
	first := decor.Underline(math32.B2(0, -14, 16, 0), 1, blue)
	second := decor.Underline(math32.B2(16, -14, 32, 0), 1, blue)

	c.Create(0, first)
	c.Create(1, second)
	assert.Equal(t, 2, c.Len(decor.KindUnderline))
	assert.Zero(t, c.Len(decor.KindImage))

	c.Update(0, second)
	c.Hide(decor.KindUnderline, 1)
	c.Hide(decor.KindUnderline, 7)

	visible := c.Visible(decor.KindUnderline)
	require.Len(t, visible, 1)
	assert.Equal(t, second, visible[0])
	assert.Equal(t, decor.Transparent, c.underlines[1].Color)

	c.Update(3, first)
	assert.Equal(t, 4, c.Len(decor.KindUnderline))
}

func TestUnderlineSpan(t *testing.T) {
	t.Parallel()

	opts := shaper.DefaultOptions()
	p := decor.Underline(math32.B2(48, -14, 88, 0), 1, color.RGBA{})

	row, from, to := underlineSpan(p, opts.CellAt, opts.GlyphWidth)
	assert.Zero(t, row)
	assert.Equal(t, 6, from)
	assert.Equal(t, 11, to)

	p = decor.Underline(math32.B2(0, -30, 24, -16), 1, color.RGBA{})
	row, from, to = underlineSpan(p, opts.CellAt, opts.GlyphWidth)
	assert.Equal(t, 1, row)
	assert.Zero(t, from)
	assert.Equal(t, 3, to)
}

func TestAverageColor(t *testing.T) {
	t.Parallel()

	img := image.NewRGBA(image.Rect(0, 0, 2, 1))
	img.Set(0, 0, color.RGBA{R: 200, A: 255})
	img.Set(1, 0, color.RGBA{B: 100, A: 255})

	avg, ok := averageColor(img)
	require.True(t, ok)
	assert.Equal(t, color.RGBA{R: 100, B: 50, A: 255}, avg)

	_, ok = averageColor(image.NewRGBA(image.Rect(0, 0, 2, 2)))
	assert.False(t, ok, "fully transparent")

	_, ok = averageColor(nil)
	assert.False(t, ok)
}
