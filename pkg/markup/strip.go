package markup

import (
	"strings"
	"unicode/utf8"
)

// DefaultLinkColor is the color value used to highlight link labels.
const DefaultLinkColor = "blue"

// ColorWrap is the color tag pair the stripper wraps around each link label.
type ColorWrap struct {
	Open  string
	Close string
}

// DefaultColorWrap returns the wrapper for DefaultLinkColor.
func DefaultColorWrap() ColorWrap {
	return LinkColorWrap(DefaultLinkColor)
}

// LinkColorWrap returns a wrapper for the given color value.
// An empty color selects DefaultLinkColor.
func LinkColorWrap(color string) ColorWrap {
	if color == "" {
		color = DefaultLinkColor
	}
	return ColorWrap{Open: "<color=" + color + ">", Close: "</color>"}
}

// OpenLength returns the opening tag length in characters.
func (w ColorWrap) OpenLength() int {
	return utf8.RuneCountInString(w.Open)
}

// Length returns the combined opening and closing tag length in characters.
func (w ColorWrap) Length() int {
	return utf8.RuneCountInString(w.Open) + utf8.RuneCountInString(w.Close)
}

// Strip produces the string handed to the shaper: every link tag is replaced by
// its label wrapped in wrap. All other tags are native shaper markup and pass
// through untouched.
func Strip(text string, links []LinkMatch, wrap ColorWrap) string {
	if len(links) == 0 {
		return text
	}

	runes := []rune(text)

	var builder strings.Builder
	builder.Grow(len(text) + len(links)*(len(wrap.Open)+len(wrap.Close)))

	index := 0
	for _, link := range links {
		builder.WriteString(string(runes[index:link.Whole.Index]))
		builder.WriteString(wrap.Open)
		builder.WriteString(link.Label)
		builder.WriteString(wrap.Close)
		index = link.Whole.End()
	}
	builder.WriteString(string(runes[index:]))

	return builder.String()
}
