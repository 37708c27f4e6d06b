package markup

import (
	"cogentcore.org/core/math32"
)

// pointBox returns a zero-size box at p.
func pointBox(p math32.Vector2) math32.Box2 {
	return math32.Box2{Min: p, Max: p}
}

// BuildRegions returns one rectangle per visual line covered by r.
//
// The range is scanned vertex by vertex. At every glyph boundary the previous
// glyph's height (top-left minus bottom-left) is compared with the drop from
// the previous glyph's top-left to the current vertex; a positive drop larger
// than that height starts a new line.
func BuildRegions(stream []Vertex, r IndexRange) []math32.Box2 {
	if !r.InBounds(len(stream)) {
		return nil
	}

	var regions []math32.Box2
	box := pointBox(stream[r.Start].Pos)

	for i := r.Start + 1; i <= r.End && i < len(stream); i++ {
		cur := stream[i].Pos

		if i%VerticesPerGlyph == 0 && i-VerticesPerGlyph >= 0 {
			prevTop := stream[i-VerticesPerGlyph].Pos.Y
			prevHeight := prevTop - stream[i-VerticesPerGlyph+4].Pos.Y
			drop := prevTop - cur.Y

			if drop > 0 && drop > prevHeight {
				regions = append(regions, box)
				box = pointBox(cur)
				continue
			}
		}

		box.ExpandByPoint(cur)
	}

	return append(regions, box)
}

// ComputeAnchor returns the centre and bounds of the original vertex positions
// in r. The caller must ensure r is in bounds.
func ComputeAnchor(stream []Vertex, r IndexRange) (math32.Vector2, math32.Box2) {
	box := pointBox(stream[r.Start].Pos)
	for i := r.Start + 1; i <= r.End && i < len(stream); i++ {
		box.ExpandByPoint(stream[i].Pos)
	}
	return box.Center(), box
}

// CollapseStream returns a copy of stream in which every vertex of each range
// sits on the range's first vertex, so the placeholder glyph renders as a
// degenerate point. Out-of-bounds ranges are left alone.
func CollapseStream(stream []Vertex, ranges []IndexRange) []Vertex {
	out := make([]Vertex, len(stream))
	copy(out, stream)

	for _, r := range ranges {
		if !r.InBounds(len(out)) {
			continue
		}
		pos := out[r.Start].Pos
		for i := r.Start + 1; i <= r.End && i < len(out); i++ {
			out[i].Pos = pos
		}
	}

	return out
}
