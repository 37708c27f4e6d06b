// Package decor reconciles a pool of decoration visuals (link underlines and
// inline images) against the placements the current layout asks for.
//
// The reconciliation itself is a pure function; the Pool applies its actions
// to a host-provided Sink, so any UI toolkit can back the visuals.
package decor

import (
	"image"
	"image/color"

	"cogentcore.org/core/math32"
)

// Kind is the kind of decoration visual.
type Kind int

const (
	KindUnderline Kind = iota
	KindImage

	kindCount
)

// String returns the kind name.
func (k Kind) String() string {
	switch k {
	case KindUnderline:
		return "underline"
	case KindImage:
		return "image"
	default:
		return "unknown"
	}
}

// Placement describes where and how one decoration visual is drawn,
// in the widget's local coordinate space.
type Placement struct {
	Kind   Kind
	Center math32.Vector2
	Size   math32.Vector2
	Color  color.RGBA

	// Resource is the image resource path, for KindImage.
	Resource string

	// Image is the resolved resource; nil when missing or not yet resolved.
	Image image.Image
}

// Opaque is the tint applied to visible images.
//
//nolint:gochecknoglobals // Read-only color value.
var Opaque = color.RGBA{R: 255, G: 255, B: 255, A: 255}

// Transparent is the tint hidden pool entries are set to.
//
//nolint:gochecknoglobals // Read-only color value.
var Transparent = color.RGBA{R: 255, G: 255, B: 255, A: 0}

// Underline places an underline bar along the bottom edge of box.
func Underline(box math32.Box2, width float32, c color.RGBA) Placement {
	return Placement{
		Kind:   KindUnderline,
		Center: math32.Vec2(box.Center().X, box.Min.Y),
		Size:   math32.Vec2(box.Size().X, width),
		Color:  c,
	}
}

// Image places an image of the given size centred on anchor.
func Image(anchor math32.Vector2, width, height float32, resource string) Placement {
	return Placement{
		Kind:     KindImage,
		Center:   anchor,
		Size:     math32.Vec2(width, height),
		Color:    Opaque,
		Resource: resource,
	}
}
