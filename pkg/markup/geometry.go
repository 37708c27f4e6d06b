package markup

import (
	"image/color"
	"unicode/utf8"

	"cogentcore.org/core/math32"
)

// VerticesPerGlyph is the number of geometry entries per rendered character:
// two triangles, emitted as top-left, top-right, bottom-right, bottom-right,
// bottom-left, top-left.
const VerticesPerGlyph = 6

// Vertex is one entry of the shaper's geometry stream. Y grows upward.
type Vertex struct {
	Pos   math32.Vector2
	UV    math32.Vector2
	Color color.RGBA
}

// IndexRange is an inclusive range of geometry stream indexes.
type IndexRange struct {
	Start int
	End   int
}

// ToIndexRange converts character offsets into the geometry range covering
// those characters: [Start*6, (End+1)*6-1].
func ToIndexRange(o Offsets) IndexRange {
	return IndexRange{
		Start: o.Start * VerticesPerGlyph,
		End:   (o.End+1)*VerticesPerGlyph - 1,
	}
}

// InBounds reports whether the range starts inside a stream of length n.
func (r IndexRange) InBounds(n int) bool {
	return r.Start >= 0 && r.Start < n
}

// Track selects which offset pair is authoritative for a layout pass.
type Track int

const (
	// TrackCurrent uses offsets with tags and whitespace removed.
	TrackCurrent Track = iota

	// TrackLegacy uses offsets into the rendered string itself, for shapers
	// that emit a glyph quad for every character.
	TrackLegacy
)

// String returns the track name.
func (t Track) String() string {
	if t == TrackLegacy {
		return "legacy"
	}
	return "current"
}

// ExpectedLegacyVertexCount returns the stream length a legacy shaper emits
// for rendered: one quad per character plus one trailing quad.
func ExpectedLegacyVertexCount(rendered string) int {
	return VerticesPerGlyph * (utf8.RuneCountInString(rendered) + 1)
}

// SelectTrack picks the legacy track exactly when the observed stream length
// matches the expected legacy length.
func SelectTrack(streamLen, expectedLegacy int) Track {
	if streamLen == expectedLegacy {
		return TrackLegacy
	}
	return TrackCurrent
}
