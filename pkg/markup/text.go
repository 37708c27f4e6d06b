package markup

import (
	"fmt"
	"image/color"
	"sync"
	"sync/atomic"

	"cogentcore.org/core/math32"
	"github.com/charmbracelet/log"

	"github.com/yaklabco/imgtext/internal/logging"
	"github.com/yaklabco/imgtext/pkg/decor"
)

// DefaultUnderlineWidth is the default underline bar thickness.
const DefaultUnderlineWidth = 1

// LinkSpan is one link of the source text. Its position in Text.Links is the
// stable link index callers use to attach click handlers.
type LinkSpan struct {
	// RawIndex is the position of the link tag in the source text.
	RawIndex int

	Label string
	Param string

	Current      Offsets
	Legacy       Offsets
	CurrentRange IndexRange
	LegacyRange  IndexRange

	// Range is the geometry range chosen for the last layout pass.
	Range IndexRange

	// Resolved is false when the last pass skipped this link because its
	// range fell outside the geometry stream.
	Resolved bool

	// Regions holds one rectangle per visual line, rebuilt every pass.
	Regions []math32.Box2
}

// ImageMarker is one inline image of the rendered text.
type ImageMarker struct {
	// RawIndex is the position of the image tag in the rendered string.
	RawIndex int

	Path   string
	Width  float32
	Height float32

	Current      Offsets
	Legacy       Offsets
	CurrentRange IndexRange
	LegacyRange  IndexRange
	Range        IndexRange
	Resolved     bool

	// Anchor is the centre of the placeholder glyph before it was collapsed.
	Anchor math32.Vector2
	Bounds math32.Box2
}

func pick(track Track, current, legacy IndexRange) IndexRange {
	if track == TrackLegacy {
		return legacy
	}
	return current
}

// Resolve returns the geometry range of the link for track.
func (l LinkSpan) Resolve(track Track) IndexRange {
	return pick(track, l.CurrentRange, l.LegacyRange)
}

// Resolve returns the geometry range of the image for track.
func (m ImageMarker) Resolve(track Track) IndexRange {
	return pick(track, m.CurrentRange, m.LegacyRange)
}

// Option configures a Text.
type Option func(*Text)

// WithLinkColor sets the color value links are highlighted with.
func WithLinkColor(color string) Option {
	return func(t *Text) {
		t.wrap = LinkColorWrap(color)
	}
}

// WithProfile sets the offset profile of the current track.
func WithProfile(p OffsetProfile) Option {
	return func(t *Text) {
		t.profile = p
	}
}

// WithUnderline sets the underline bar thickness and color.
func WithUnderline(width float32, c color.RGBA) Option {
	return func(t *Text) {
		t.underlineWidth = width
		t.underlineColor = c
	}
}

// WithLogger sets the logger diagnostics are written to.
func WithLogger(logger *log.Logger) Option {
	return func(t *Text) {
		if logger != nil {
			t.logger = logger
		}
	}
}

// Text is the markup model behind one text widget.
//
// SetText and the click-handler methods run on the host's main loop. Populate
// may run inside the host's mesh generation, possibly off the main loop; it
// only marks decorations dirty, and Update applies them on the next tick.
type Text struct {
	mu sync.Mutex

	source   string
	rendered string

	wrap    ColorWrap
	profile OffsetProfile

	links  []LinkSpan
	images []ImageMarker

	expectedLegacy int
	track          Track

	handlers    [][]handlerEntry
	nextHandler HandlerID

	underlineWidth float32
	underlineColor color.RGBA

	dirty  atomic.Bool
	logger *log.Logger
}

// New returns an empty Text.
func New(opts ...Option) *Text {
	t := &Text{
		wrap:           DefaultColorWrap(),
		profile:        CurrentProfile(),
		underlineWidth: DefaultUnderlineWidth,
		underlineColor: color.RGBA{B: 255, A: 255},
		logger:         logging.Component("markup"),
	}
	for _, opt := range opts {
		opt(t)
	}
	t.expectedLegacy = ExpectedLegacyVertexCount("")
	return t
}

// SetText assigns new source markup. Links and images are rebuilt from
// scratch; click handlers survive for link indexes that still exist.
func (t *Text) SetText(source string) error {
	srcMatches, err := Scan(source)
	if err != nil {
		return fmt.Errorf("scan source: %w", err)
	}

	rendered := Strip(source, srcMatches.Links, t.wrap)

	renderedMatches, err := Scan(rendered)
	if err != nil {
		return fmt.Errorf("scan rendered text: %w", err)
	}

	legacy := LegacyProfile(t.wrap)

	links := make([]LinkSpan, len(srcMatches.Links))
	currentLinks := RemapLinks(srcMatches, t.profile)
	legacyLinks := RemapLinks(srcMatches, legacy)
	for i, m := range srcMatches.Links {
		links[i] = LinkSpan{
			RawIndex:     m.Whole.Index,
			Label:        m.Label,
			Param:        m.Param,
			Current:      currentLinks[i],
			Legacy:       legacyLinks[i],
			CurrentRange: ToIndexRange(currentLinks[i]),
			LegacyRange:  ToIndexRange(legacyLinks[i]),
		}
	}

	images := make([]ImageMarker, len(renderedMatches.Images))
	currentImages := RemapImages(renderedMatches, t.profile)
	legacyImages := RemapImages(renderedMatches, legacy)
	for i, m := range renderedMatches.Images {
		width, height := m.Dimensions()
		images[i] = ImageMarker{
			RawIndex:     m.Whole.Index,
			Path:         m.Path,
			Width:        width,
			Height:       height,
			Current:      currentImages[i],
			Legacy:       legacyImages[i],
			CurrentRange: ToIndexRange(currentImages[i]),
			LegacyRange:  ToIndexRange(legacyImages[i]),
		}
	}

	for i := range links {
		t.checkOffsets(KindLink, i, links[i].Current, links[i].Legacy)
	}
	for i := range images {
		t.checkOffsets(KindQuadImage, i, images[i].Current, images[i].Legacy)
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	t.source = source
	t.rendered = rendered
	t.links = links
	t.images = images
	t.expectedLegacy = ExpectedLegacyVertexCount(rendered)

	if len(t.handlers) > len(links) {
		for i := len(links); i < len(t.handlers); i++ {
			if n := len(t.handlers[i]); n > 0 {
				t.logger.Warn("dropping click handlers of removed link",
					logging.FieldIndex, i,
					logging.FieldCount, n,
					logging.FieldLinks, len(links),
				)
			}
		}
		t.handlers = t.handlers[:len(links)]
	}

	t.logger.Debug("markup assigned",
		logging.FieldLinks, len(links),
		logging.FieldImages, len(images),
		logging.FieldExpected, t.expectedLegacy,
	)

	return nil
}

// Source returns the assigned source markup.
func (t *Text) Source() string {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.source
}

// Rendered returns the string to hand to the shaper.
func (t *Text) Rendered() string {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.rendered
}

// ExpectedLegacyVertexCount returns the stream length that selects the legacy track.
func (t *Text) ExpectedLegacyVertexCount() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.expectedLegacy
}

// Track returns the track chosen by the last layout pass.
func (t *Text) Track() Track {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.track
}

// Links returns a copy of the link spans in source order.
func (t *Text) Links() []LinkSpan {
	t.mu.Lock()
	defer t.mu.Unlock()

	out := make([]LinkSpan, len(t.links))
	for i, l := range t.links {
		l.Regions = append([]math32.Box2(nil), l.Regions...)
		out[i] = l
	}
	return out
}

// Images returns a copy of the image markers in appearance order.
func (t *Text) Images() []ImageMarker {
	t.mu.Lock()
	defer t.mu.Unlock()
	return append([]ImageMarker(nil), t.images...)
}

// Dirty reports whether a layout pass has produced decorations that Update
// has not applied yet.
func (t *Text) Dirty() bool {
	return t.dirty.Load()
}

// PopulateResult is the outcome of one layout pass.
type PopulateResult struct {
	Track Track

	// Stream replaces the shaper's geometry when the text has images;
	// it is nil otherwise.
	Stream []Vertex

	// Skipped counts links and images whose range fell outside the stream.
	Skipped int
}

// Populate consumes the geometry stream of a layout pass: it rebuilds every
// link's regions and every image's anchor, and marks decorations dirty.
func (t *Text) Populate(stream []Vertex) PopulateResult {
	t.mu.Lock()
	defer t.mu.Unlock()

	track := SelectTrack(len(stream), t.expectedLegacy)
	t.track = track
	result := PopulateResult{Track: track}

	for i := range t.links {
		link := &t.links[i]
		link.Range = link.Resolve(track)
		link.Regions = nil
		link.Resolved = link.Range.InBounds(len(stream))

		if !link.Resolved {
			t.logOutOfRange(KindLink, i, link.Range, len(stream), track)
			result.Skipped++
			continue
		}
		link.Regions = BuildRegions(stream, link.Range)
	}

	collapse := make([]IndexRange, 0, len(t.images))
	for i := range t.images {
		img := &t.images[i]
		img.Range = img.Resolve(track)
		img.Resolved = img.Range.InBounds(len(stream))

		if !img.Resolved {
			t.logOutOfRange(KindQuadImage, i, img.Range, len(stream), track)
			result.Skipped++
			continue
		}
		img.Anchor, img.Bounds = ComputeAnchor(stream, img.Range)
		collapse = append(collapse, img.Range)
	}

	if len(t.images) > 0 {
		result.Stream = CollapseStream(stream, collapse)
	}

	t.dirty.Store(true)
	return result
}

// checkOffsets warns about offsets the walk drove negative or out of order.
// Such entities stay in the list and are skipped when the geometry is
// populated.
func (t *Text) checkOffsets(kind TagKind, index int, current, legacy Offsets) {
	for _, o := range [...]struct {
		track   Track
		offsets Offsets
	}{{TrackCurrent, current}, {TrackLegacy, legacy}} {
		if o.offsets.Valid() {
			continue
		}
		t.logger.Warn("invalid rendered offsets",
			logging.FieldKind, kind,
			logging.FieldIndex, index,
			logging.FieldStart, o.offsets.Start,
			logging.FieldEnd, o.offsets.End,
			logging.FieldTrack, o.track,
		)
	}
}

func (t *Text) logOutOfRange(kind TagKind, index int, r IndexRange, streamLen int, track Track) {
	t.logger.Warn("geometry index out of range",
		logging.FieldKind, kind,
		logging.FieldIndex, index,
		logging.FieldStart, r.Start,
		logging.FieldStreamLen, streamLen,
		logging.FieldTrack, track,
	)
}

// Placements returns the decorations the last layout pass asks for:
// one underline per link region and one visual per resolved image.
func (t *Text) Placements() (underlines, images []decor.Placement) {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.placementsLocked()
}

func (t *Text) placementsLocked() (underlines, images []decor.Placement) {
	for _, link := range t.links {
		for _, box := range link.Regions {
			underlines = append(underlines, decor.Underline(box, t.underlineWidth, t.underlineColor))
		}
	}
	for _, img := range t.images {
		if !img.Resolved {
			continue
		}
		images = append(images, decor.Image(img.Anchor, img.Width, img.Height, img.Path))
	}
	return underlines, images
}

// Update applies pending decorations to pool on the main loop. It reports
// whether anything was applied.
func (t *Text) Update(pool *decor.Pool, sink decor.Sink) bool {
	if !t.dirty.CompareAndSwap(true, false) {
		return false
	}

	underlines, images := t.Placements()
	pool.Sync(decor.KindImage, images, sink)
	pool.Sync(decor.KindUnderline, underlines, sink)

	return true
}
