// Package mdconv converts Markdown documents into imgtext markup.
//
// Links become `<url param=DEST>LABEL</url>` tags, images become inline
// `<quad img=...>` tags, and emphasis and headings map to the native bold,
// italic and size tags. Inline markup tags in the Markdown source pass
// through unchanged.
package mdconv

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/text"
)

// Markdown flavors.
const (
	FlavorCommonMark = "commonmark"
	FlavorGFM        = "gfm"
)

// Default image tag values.
const (
	DefaultImageSize   = 16
	DefaultImageWidth  = 1.0
	DefaultImageHeight = 1.0
)

// Options configures the converter.
type Options struct {
	Flavor string

	// Image tag values used for every Markdown image.
	ImageSize   int
	ImageWidth  float64
	ImageHeight float64

	// HeadingSizes maps heading level 1..n to a size tag value; deeper
	// levels use the last entry.
	HeadingSizes []int

	// Bullet prefixes unordered list items.
	Bullet string
}

// DefaultOptions returns CommonMark options with the default image values.
func DefaultOptions() Options {
	return Options{
		Flavor:       FlavorCommonMark,
		ImageSize:    DefaultImageSize,
		ImageWidth:   DefaultImageWidth,
		ImageHeight:  DefaultImageHeight,
		HeadingSizes: []int{32, 28, 24, 20},
		Bullet:       "• ",
	}
}

// Converter turns Markdown into markup.
type Converter struct {
	opts Options
	md   goldmark.Markdown
}

// New returns a converter for opts. Unknown flavors default to CommonMark.
func New(opts Options) *Converter {
	defaults := DefaultOptions()
	if opts.ImageSize <= 0 {
		opts.ImageSize = defaults.ImageSize
	}
	if opts.ImageWidth <= 0 {
		opts.ImageWidth = defaults.ImageWidth
	}
	if opts.ImageHeight <= 0 {
		opts.ImageHeight = defaults.ImageHeight
	}
	if len(opts.HeadingSizes) == 0 {
		opts.HeadingSizes = defaults.HeadingSizes
	}
	if opts.Bullet == "" {
		opts.Bullet = defaults.Bullet
	}

	var mdOpts []goldmark.Option
	if opts.Flavor == FlavorGFM {
		mdOpts = append(mdOpts, goldmark.WithExtensions(extension.Strikethrough, extension.Linkify))
	} else {
		opts.Flavor = FlavorCommonMark
	}

	return &Converter{opts: opts, md: goldmark.New(mdOpts...)}
}

// Convert converts src with opts.
func Convert(ctx context.Context, src []byte, opts Options) (string, error) {
	return New(opts).Convert(ctx, src)
}

// Convert parses src and renders it as markup.
func (c *Converter) Convert(ctx context.Context, src []byte) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", fmt.Errorf("convert cancelled: %w", err)
	}

	doc := c.md.Parser().Parse(text.NewReader(src), parser.WithContext(parser.NewContext()))

	if err := ctx.Err(); err != nil {
		return "", fmt.Errorf("convert cancelled: %w", err)
	}

	w := &writer{opts: c.opts, src: src}
	if err := ast.Walk(doc, w.walk); err != nil {
		return "", fmt.Errorf("render markup: %w", err)
	}

	return strings.TrimRight(w.out.String(), "\n"), nil
}

type writer struct {
	opts Options
	src  []byte
	out  strings.Builder
}

// separate starts a new block: a blank line between top-level blocks, a
// single newline between list items.
func (w *writer) separate(n ast.Node) {
	if w.out.Len() == 0 {
		return
	}
	if parent := n.Parent(); parent != nil && parent.Kind() == ast.KindListItem {
		if n.PreviousSibling() == nil {
			return
		}
		w.out.WriteString("\n")
		return
	}
	w.out.WriteString("\n\n")
}

func (w *writer) headingSize(level int) int {
	sizes := w.opts.HeadingSizes
	if level-1 < len(sizes) {
		return sizes[max(level-1, 0)]
	}
	return sizes[len(sizes)-1]
}

func inBlockquote(n ast.Node) bool {
	for p := n.Parent(); p != nil; p = p.Parent() {
		if p.Kind() == ast.KindBlockquote {
			return true
		}
	}
	return false
}

//nolint:cyclop,funlen // One case per node kind.
func (w *writer) walk(n ast.Node, entering bool) (ast.WalkStatus, error) {
	switch node := n.(type) {
	case *ast.Heading:
		if entering {
			w.separate(n)
			fmt.Fprintf(&w.out, "<size=%d><b>", w.headingSize(node.Level))
		} else {
			w.out.WriteString("</b></size>")
		}

	case *ast.Paragraph:
		quoted := inBlockquote(n)
		switch {
		case entering:
			w.separate(n)
			if quoted {
				w.out.WriteString("<i>")
			}
		case quoted:
			w.out.WriteString("</i>")
		}

	case *ast.ListItem:
		if entering {
			if n.PreviousSibling() == nil {
				w.separate(n.Parent())
			} else {
				w.out.WriteString("\n")
			}
			w.out.WriteString(w.listMarker(node))
		}

	case *ast.FencedCodeBlock, *ast.CodeBlock:
		if entering {
			w.separate(n)
			w.writeLines(n)
		}
		return ast.WalkSkipChildren, nil

	case *ast.ThematicBreak:
		if entering {
			w.separate(n)
			w.out.WriteString(strings.Repeat("─", 8))
		}

	case *ast.HTMLBlock:
		if entering {
			w.separate(n)
			w.writeLines(n)
		}
		return ast.WalkSkipChildren, nil

	case *ast.Text:
		if entering {
			w.out.Write(node.Segment.Value(w.src))
			switch {
			case node.HardLineBreak():
				w.out.WriteString("\n")
			case node.SoftLineBreak():
				w.out.WriteString(" ")
			}
		}

	case *ast.String:
		if entering {
			w.out.Write(node.Value)
		}

	case *ast.Emphasis:
		tag := "i"
		if node.Level >= 2 {
			tag = "b"
		}
		if entering {
			w.out.WriteString("<" + tag + ">")
		} else {
			w.out.WriteString("</" + tag + ">")
		}

	case *ast.Link:
		if entering {
			fmt.Fprintf(&w.out, "<url param=%s>", node.Destination)
		} else {
			w.out.WriteString("</url>")
		}

	case *ast.AutoLink:
		if entering {
			url := node.URL(w.src)
			fmt.Fprintf(&w.out, "<url param=%s>%s</url>", url, node.Label(w.src))
		}
		return ast.WalkSkipChildren, nil

	case *ast.Image:
		if entering {
			fmt.Fprintf(&w.out, "<quad img=%s size=%d width=%s height=%s/>",
				node.Destination,
				w.opts.ImageSize,
				strconv.FormatFloat(w.opts.ImageWidth, 'f', -1, 64),
				strconv.FormatFloat(w.opts.ImageHeight, 'f', -1, 64),
			)
		}
		return ast.WalkSkipChildren, nil

	case *ast.RawHTML:
		if entering {
			for i := range node.Segments.Len() {
				seg := node.Segments.At(i)
				w.out.Write(seg.Value(w.src))
			}
		}
		return ast.WalkSkipChildren, nil
	}

	return ast.WalkContinue, nil
}

func (w *writer) listMarker(item *ast.ListItem) string {
	list, ok := item.Parent().(*ast.List)
	if !ok || !list.IsOrdered() {
		return w.opts.Bullet
	}

	index := 0
	for sib := item.PreviousSibling(); sib != nil; sib = sib.PreviousSibling() {
		index++
	}
	return strconv.Itoa(list.Start+index) + string(list.Marker) + " "
}

func (w *writer) writeLines(n ast.Node) {
	lines := n.Lines()
	var b strings.Builder
	for i := range lines.Len() {
		seg := lines.At(i)
		b.Write(seg.Value(w.src))
	}
	w.out.WriteString(strings.TrimRight(b.String(), "\n"))
}
