package cli

import (
	"cogentcore.org/core/math32"

	"github.com/yaklabco/imgtext/pkg/markup"
	"github.com/yaklabco/imgtext/pkg/shaper"
)

// JSON shapes printed with --format json.

type rangeJSON struct {
	Start int `json:"start"`
	End   int `json:"end"`
}

type boxJSON struct {
	MinX float32 `json:"min_x"`
	MinY float32 `json:"min_y"`
	MaxX float32 `json:"max_x"`
	MaxY float32 `json:"max_y"`
}

type pointJSON struct {
	X float32 `json:"x"`
	Y float32 `json:"y"`
}

type linkJSON struct {
	Index    int        `json:"index"`
	Label    string     `json:"label"`
	Param    string     `json:"param"`
	Current  rangeJSON  `json:"current"`
	Legacy   rangeJSON  `json:"legacy"`
	Range    *rangeJSON `json:"range,omitempty"`
	Resolved *bool      `json:"resolved,omitempty"`
	Regions  []boxJSON  `json:"regions,omitempty"`
}

type imageJSON struct {
	Index    int        `json:"index"`
	Path     string     `json:"path"`
	Width    float32    `json:"width"`
	Height   float32    `json:"height"`
	Current  rangeJSON  `json:"current"`
	Legacy   rangeJSON  `json:"legacy"`
	Range    *rangeJSON `json:"range,omitempty"`
	Resolved *bool      `json:"resolved,omitempty"`
	Anchor   *pointJSON `json:"anchor,omitempty"`
	Loaded   *bool      `json:"loaded,omitempty"`
}

type scanReport struct {
	Source   string      `json:"source"`
	Rendered string      `json:"rendered"`
	Links    []linkJSON  `json:"links"`
	Images   []imageJSON `json:"images"`
}

type clickJSON struct {
	Col   int      `json:"col"`
	Row   int      `json:"row"`
	Hits  []int    `json:"hits"`
	Fired []string `json:"fired"`
}

type layoutReport struct {
	Track    string      `json:"track"`
	Mode     string      `json:"mode"`
	Vertices int         `json:"vertices"`
	Rows     int         `json:"rows"`
	Columns  int         `json:"columns"`
	Skipped  int         `json:"skipped"`
	Links    []linkJSON  `json:"links"`
	Images   []imageJSON `json:"images"`
	Click    *clickJSON  `json:"click,omitempty"`
}

func offsetsJSON(o markup.Offsets) rangeJSON {
	return rangeJSON{Start: o.Start, End: o.End}
}

func boxToJSON(b math32.Box2) boxJSON {
	return boxJSON{MinX: b.Min.X, MinY: b.Min.Y, MaxX: b.Max.X, MaxY: b.Max.Y}
}

func linksJSON(links []markup.LinkSpan, layout bool) []linkJSON {
	out := make([]linkJSON, 0, len(links))
	for i, l := range links {
		j := linkJSON{
			Index:   i,
			Label:   l.Label,
			Param:   l.Param,
			Current: offsetsJSON(l.Current),
			Legacy:  offsetsJSON(l.Legacy),
		}
		if layout {
			resolved := l.Resolved
			j.Range = &rangeJSON{Start: l.Range.Start, End: l.Range.End}
			j.Resolved = &resolved
			for _, r := range l.Regions {
				j.Regions = append(j.Regions, boxToJSON(r))
			}
		}
		out = append(out, j)
	}
	return out
}

// imagesJSON converts image markers; loaded reports per image whether its
// resource resolved, and is only consulted with layout set.
func imagesJSON(images []markup.ImageMarker, layout bool, loaded []bool) []imageJSON {
	out := make([]imageJSON, 0, len(images))
	for i, img := range images {
		j := imageJSON{
			Index:   i,
			Path:    img.Path,
			Width:   img.Width,
			Height:  img.Height,
			Current: offsetsJSON(img.Current),
			Legacy:  offsetsJSON(img.Legacy),
		}
		if layout {
			resolved := img.Resolved
			j.Range = &rangeJSON{Start: img.Range.Start, End: img.Range.End}
			j.Resolved = &resolved
			if resolved {
				j.Anchor = &pointJSON{X: img.Anchor.X, Y: img.Anchor.Y}
			}
			if i < len(loaded) {
				ok := loaded[i]
				j.Loaded = &ok
			}
		}
		out = append(out, j)
	}
	return out
}

func newLayoutReport(text *markup.Text, layout *shaper.Layout, opts shaper.Options,
	result markup.PopulateResult, loaded []bool,
) layoutReport {
	return layoutReport{
		Track:    result.Track.String(),
		Mode:     opts.Mode.String(),
		Vertices: len(layout.Vertices),
		Rows:     layout.Rows,
		Columns:  layout.Columns,
		Skipped:  result.Skipped,
		Links:    linksJSON(text.Links(), true),
		Images:   imagesJSON(text.Images(), true, loaded),
	}
}
