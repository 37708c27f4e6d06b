package markup

// Offsets is an inclusive character range in one string representation.
type Offsets struct {
	Start int
	End   int
}

// Len returns the number of characters covered.
func (o Offsets) Len() int {
	return o.End - o.Start + 1
}

// Valid reports whether the range is non-negative and ordered.
func (o Offsets) Valid() bool {
	return o.Start >= 0 && o.Start <= o.End
}

// Default embellishment counts for the whitespace walk. The space walk counts
// the whitespace inside tags too; these give it back for tags that collapse.
const (
	// DefaultQuadSpaces is the number of spaces inside `<quad img=.. size=.. width=.. height=../>`.
	DefaultQuadSpaces = 4

	// DefaultLinkSpaces is the number of spaces inside `<url param=...>`.
	DefaultLinkSpaces = 1
)

// OffsetProfile selects which embellishments the offset walk subtracts when
// mapping a tag's source index into a rendered-glyph index. A single walk is
// parametrized by the profile; the current and legacy tracks differ only here.
type OffsetProfile struct {
	// Formatting subtracts the opening and closing markers of color, bold,
	// italic and size tags.
	Formatting bool

	// Quads collapses each earlier quad tag to a single placeholder character.
	Quads bool

	// Spaces subtracts one per whitespace character.
	Spaces bool

	// QuadSpaces is added back per earlier quad tag when Spaces is set.
	QuadSpaces int

	// LinkSpaces is added back per earlier link tag when Spaces is set.
	LinkSpaces int

	// WrapLinks accounts for the color wrapper the stripper inserts around
	// every link label, for shapers that render tag characters as glyphs.
	WrapLinks bool
	Wrap      ColorWrap
}

// CurrentProfile is the profile for shapers that render neither tags nor
// whitespace as glyphs.
func CurrentProfile() OffsetProfile {
	return OffsetProfile{
		Formatting: true,
		Quads:      true,
		Spaces:     true,
		QuadSpaces: DefaultQuadSpaces,
		LinkSpaces: DefaultLinkSpaces,
	}
}

// LegacyProfile is the profile for shapers that emit a glyph quad for every
// character of the rendered string, tags included.
func LegacyProfile(wrap ColorWrap) OffsetProfile {
	return OffsetProfile{
		WrapLinks: true,
		Wrap:      wrap,
	}
}

// RemapLinks computes the rendered offsets of every link in m under profile p.
// m must come from scanning the source text.
func RemapLinks(m *Matches, p OffsetProfile) []Offsets {
	out := make([]Offsets, 0, len(m.Links))
	for _, link := range m.Links {
		at := link.Whole.Index
		start := at + p.shift(m, at)
		if p.WrapLinks {
			start += p.Wrap.OpenLength()
		}

		for _, earlier := range m.Links {
			if earlier.Whole.Index >= at {
				continue
			}
			start -= earlier.Whole.Length - earlier.LabelLength()
			if p.Spaces {
				start += p.LinkSpaces
			}
			if p.WrapLinks {
				start += p.Wrap.Length()
			}
		}

		out = append(out, Offsets{Start: start, End: start + link.LabelLength() - 1})
	}
	return out
}

// RemapImages computes the rendered offsets of every image placeholder in m
// under profile p. m must come from scanning the stripped render string, where
// links have already been rewritten into color tags.
func RemapImages(m *Matches, p OffsetProfile) []Offsets {
	out := make([]Offsets, 0, len(m.Images))
	for _, img := range m.Images {
		at := img.Whole.Index
		start := at + p.shift(m, at)
		out = append(out, Offsets{Start: start, End: start})
	}
	return out
}

// shift returns the offset adjustment contributed by every formatting, quad
// and whitespace match that starts strictly before at.
func (p OffsetProfile) shift(m *Matches, at int) int {
	delta := 0

	if p.Formatting {
		for _, f := range m.Formatting {
			if f.Open.Index < at {
				delta -= f.Open.Length
			}
			if f.Close.Index < at {
				delta -= f.Close.Length
			}
		}
	}

	if p.Quads {
		for _, q := range m.Quads {
			if q.Whole.Index >= at {
				continue
			}
			delta -= q.Whole.Length - 1
			if p.Spaces {
				delta += p.QuadSpaces
			}
		}
	}

	if p.Spaces {
		for _, s := range m.Spaces {
			if s.Whole.Index < at {
				delta--
			}
		}
	}

	return delta
}
