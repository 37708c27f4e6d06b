// Package markup implements the inline markup engine behind the imgtext widget:
// tag scanning, link rewriting, offset remapping between the tagged source and the
// text the shaper renders, and the conversion of shaped glyph geometry into
// clickable regions and image anchors.
//
// All offsets in this package are character (rune) offsets, never byte offsets.
package markup

import (
	"fmt"
	"strconv"

	"github.com/dlclark/regexp2"
)

// TagKind identifies the kind of a scanned tag.
type TagKind int

const (
	KindColor TagKind = iota
	KindBold
	KindItalic
	KindSize
	KindQuad
	KindLink
	KindQuadImage
	KindSpace
)

// String returns the tag kind name.
func (k TagKind) String() string {
	switch k {
	case KindColor:
		return "color"
	case KindBold:
		return "bold"
	case KindItalic:
		return "italic"
	case KindSize:
		return "size"
	case KindQuad:
		return "quad"
	case KindLink:
		return "link"
	case KindQuadImage:
		return "quad-image"
	case KindSpace:
		return "space"
	default:
		return "unknown"
	}
}

// Tag patterns. Formatting tags and bare quads are case-insensitive; link and
// image tags are case-sensitive. Only the link label may span lines.
//
//nolint:gochecknoglobals // Compiled once, read-only.
var (
	linkPattern      = regexp2.MustCompile(`<url param=(.*?)>(.*?)(</url>)`, regexp2.Singleline)
	colorPattern     = regexp2.MustCompile(`(<color=.*?>)(.*?)(</color>)`, regexp2.IgnoreCase)
	boldPattern      = regexp2.MustCompile(`(<b>)(.*?)(</b>)`, regexp2.IgnoreCase)
	italicPattern    = regexp2.MustCompile(`(<i>)(.*?)(</i>)`, regexp2.IgnoreCase)
	sizePattern      = regexp2.MustCompile(`(<size=.*?>)(.*?)(</size>)`, regexp2.IgnoreCase)
	quadPattern      = regexp2.MustCompile(`<quad .*?>`, regexp2.IgnoreCase)
	spacePattern     = regexp2.MustCompile(`\s`, regexp2.None)
	quadImagePattern = regexp2.MustCompile(
		`<quad img=(.*?) size=(\d+) width=(\d+(\.\d+)?) height=(\d+(\.\d+)?)/>`, regexp2.None)
)

// formattingPatterns lists the paired formatting tags in scan order.
//
//nolint:gochecknoglobals // Read-only lookup table.
var formattingPatterns = []struct {
	kind    TagKind
	pattern *regexp2.Regexp
}{
	{KindColor, colorPattern},
	{KindBold, boldPattern},
	{KindItalic, italicPattern},
	{KindSize, sizePattern},
}

// Group is a span of characters within a scanned string.
type Group struct {
	Index  int
	Length int
}

// End returns the offset one past the last character of the group.
func (g Group) End() int {
	return g.Index + g.Length
}

// TagMatch is a single tag occurrence. Open, Content and Close are only set
// for paired tags; unpaired kinds carry just the Whole span.
type TagMatch struct {
	Kind    TagKind
	Whole   Group
	Open    Group
	Content Group
	Close   Group
}

// Paired reports whether the match has separate opening and closing markers.
func (m TagMatch) Paired() bool {
	return m.Open.Length > 0 && m.Close.Length > 0
}

// MarkerLength returns the combined length of the opening and closing markers.
func (m TagMatch) MarkerLength() int {
	return m.Open.Length + m.Close.Length
}

// LinkMatch is a `<url param=PARAM>LABEL</url>` occurrence.
type LinkMatch struct {
	TagMatch

	Param string
	Label string
}

// LabelLength returns the label length in characters.
func (l LinkMatch) LabelLength() int {
	return l.Content.Length
}

// ImageMatch is a `<quad img=PATH size=N width=W height=H/>` occurrence.
type ImageMatch struct {
	TagMatch

	Path   string
	Size   int
	ScaleX float64
	ScaleY float64
}

// Dimensions returns the rendered image size: size times each scale factor.
func (m ImageMatch) Dimensions() (width, height float32) {
	return float32(float64(m.Size) * m.ScaleX), float32(float64(m.Size) * m.ScaleY)
}

// Matches holds every tag found in one string, per kind, in appearance order.
type Matches struct {
	// Formatting holds color, bold, italic and size tags, grouped by kind.
	Formatting []TagMatch
	Quads      []TagMatch
	Spaces     []TagMatch
	Links      []LinkMatch
	Images     []ImageMatch
}

// Scan extracts every supported tag kind from text.
// Malformed tags are not matched and remain literal text.
func Scan(text string) (*Matches, error) {
	formatting, err := ScanFormatting(text)
	if err != nil {
		return nil, err
	}
	quads, err := ScanQuads(text)
	if err != nil {
		return nil, err
	}
	spaces, err := ScanSpaces(text)
	if err != nil {
		return nil, err
	}
	links, err := ScanLinks(text)
	if err != nil {
		return nil, err
	}
	images, err := ScanImages(text)
	if err != nil {
		return nil, err
	}

	return &Matches{
		Formatting: formatting,
		Quads:      quads,
		Spaces:     spaces,
		Links:      links,
		Images:     images,
	}, nil
}

// ScanFormatting returns the color, bold, italic and size tags of text.
func ScanFormatting(text string) ([]TagMatch, error) {
	var out []TagMatch
	for _, fp := range formattingPatterns {
		err := eachMatch(fp.pattern, text, func(m *regexp2.Match) {
			out = append(out, TagMatch{
				Kind:    fp.kind,
				Whole:   wholeGroup(m),
				Open:    group(m, 1),
				Content: group(m, 2),
				Close:   group(m, 3),
			})
		})
		if err != nil {
			return nil, fmt.Errorf("scan %s tags: %w", fp.kind, err)
		}
	}
	return out, nil
}

// ScanQuads returns every `<quad ...>` tag, image quads included.
func ScanQuads(text string) ([]TagMatch, error) {
	return scanUnpaired(quadPattern, KindQuad, text)
}

// ScanSpaces returns one match per whitespace character.
func ScanSpaces(text string) ([]TagMatch, error) {
	return scanUnpaired(spacePattern, KindSpace, text)
}

// ScanLinks returns the link tags of text.
func ScanLinks(text string) ([]LinkMatch, error) {
	var out []LinkMatch
	err := eachMatch(linkPattern, text, func(m *regexp2.Match) {
		out = append(out, LinkMatch{
			TagMatch: TagMatch{
				Kind:    KindLink,
				Whole:   wholeGroup(m),
				Open:    Group{Index: m.Index, Length: m.GroupByNumber(2).Index - m.Index},
				Content: group(m, 2),
				Close:   group(m, 3),
			},
			Param: m.GroupByNumber(1).String(),
			Label: m.GroupByNumber(2).String(),
		})
	})
	if err != nil {
		return nil, fmt.Errorf("scan link tags: %w", err)
	}
	return out, nil
}

// ScanImages returns the inline image tags of text. A tag whose numeric
// captures do not parse is skipped and stays literal text.
func ScanImages(text string) ([]ImageMatch, error) {
	var out []ImageMatch
	err := eachMatch(quadImagePattern, text, func(m *regexp2.Match) {
		size, err := strconv.Atoi(m.GroupByNumber(2).String())
		if err != nil {
			return
		}
		scaleX, err := strconv.ParseFloat(m.GroupByNumber(3).String(), 64)
		if err != nil {
			return
		}
		scaleY, err := strconv.ParseFloat(m.GroupByNumber(5).String(), 64)
		if err != nil {
			return
		}
		out = append(out, ImageMatch{
			TagMatch: TagMatch{Kind: KindQuadImage, Whole: wholeGroup(m)},
			Path:     m.GroupByNumber(1).String(),
			Size:     size,
			ScaleX:   scaleX,
			ScaleY:   scaleY,
		})
	})
	if err != nil {
		return nil, fmt.Errorf("scan image tags: %w", err)
	}
	return out, nil
}

func scanUnpaired(re *regexp2.Regexp, kind TagKind, text string) ([]TagMatch, error) {
	var out []TagMatch
	err := eachMatch(re, text, func(m *regexp2.Match) {
		out = append(out, TagMatch{Kind: kind, Whole: wholeGroup(m)})
	})
	if err != nil {
		return nil, fmt.Errorf("scan %s tags: %w", kind, err)
	}
	return out, nil
}

// eachMatch calls fn for every non-overlapping match of re in text.
func eachMatch(re *regexp2.Regexp, text string, fn func(m *regexp2.Match)) error {
	m, err := re.FindStringMatch(text)
	for m != nil && err == nil {
		fn(m)
		m, err = re.FindNextMatch(m)
	}
	return err
}

func wholeGroup(m *regexp2.Match) Group {
	return Group{Index: m.Index, Length: m.Length}
}

func group(m *regexp2.Match, n int) Group {
	g := m.GroupByNumber(n)
	if g == nil {
		return Group{}
	}
	return Group{Index: g.Index, Length: g.Length}
}
