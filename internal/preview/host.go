package preview

import (
	"context"
	"fmt"
	"sync"

	"github.com/charmbracelet/log"
	"github.com/gdamore/tcell/v2"

	"github.com/yaklabco/imgtext/internal/logging"
	"github.com/yaklabco/imgtext/pkg/decor"
	"github.com/yaklabco/imgtext/pkg/markup"
	"github.com/yaklabco/imgtext/pkg/shaper"
)

// ClickFunc observes link clicks dispatched by the host.
type ClickFunc func(index int, param string)

// Options configures a Host.
type Options struct {
	Shaper shaper.Options

	// Resolver resolves image placements; nil leaves images unresolved.
	Resolver decor.Resolver

	// OnClick is called for every link handler the host fires.
	OnClick ClickFunc

	Logger *log.Logger
}

// reloadEvent carries new source text into the event loop.
type reloadEvent struct {
	source string
	err    error
}

type quitEvent struct{}

// Host renders one markup Text on a tcell screen. All Text mutation happens
// on the goroutine running Run or HandleEvent.
type Host struct {
	screen tcell.Screen
	text   *markup.Text
	opts   Options
	pool   *decor.Pool
	canvas *Canvas
	logger *log.Logger

	layout *shaper.Layout
	result markup.PopulateResult

	// handled is the number of link indices the host has attached its
	// click handler to; handlers persist across SetText by index.
	handled int

	mu     sync.Mutex
	status string
}

// New returns a host drawing text on screen. The screen must be initialised.
func New(screen tcell.Screen, text *markup.Text, opts Options) *Host {
	logger := opts.Logger
	if logger == nil {
		logger = logging.Component("preview")
	}

	return &Host{
		screen: screen,
		text:   text,
		opts:   opts,
		pool:   decor.NewPool(opts.Resolver),
		canvas: &Canvas{},
		logger: logger,
	}
}

// Canvas returns the decoration sink.
func (h *Host) Canvas() *Canvas {
	return h.canvas
}

// Layout returns the last shaped layout.
func (h *Host) Layout() *shaper.Layout {
	return h.layout
}

// Status returns the status line text.
func (h *Host) Status() string {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.status
}

func (h *Host) setStatus(format string, args ...any) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.status = fmt.Sprintf(format, args...)
}

// Load replaces the source text and lays it out again.
func (h *Host) Load(source string) error {
	if err := h.text.SetText(source); err != nil {
		return fmt.Errorf("set text: %w", err)
	}

	// SetText drops the handlers of link indexes that no longer exist.
	links := len(h.text.Links())
	h.handled = min(h.handled, links)
	for ; h.handled < links; h.handled++ {
		index := h.handled
		_, err := h.text.AddClickLinkEvent(index, func(param string) {
			h.setStatus("link %d: %s", index, param)
			if h.opts.OnClick != nil {
				h.opts.OnClick(index, param)
			}
		})
		if err != nil {
			return fmt.Errorf("attach click handler: %w", err)
		}
	}

	return h.Relayout()
}

// Relayout shapes the current text and applies its decorations.
func (h *Host) Relayout() error {
	layout, err := shaper.Shape(h.text.Rendered(), h.opts.Shaper)
	if err != nil {
		return fmt.Errorf("shape: %w", err)
	}

	h.layout = layout
	h.result = h.text.Populate(layout.Vertices)
	h.text.Update(h.pool, h.canvas)

	h.logger.Debug("layout",
		logging.FieldTrack, h.result.Track,
		logging.FieldLinks, len(h.text.Links()),
		logging.FieldImages, len(h.text.Images()),
	)
	h.setStatus("%s track, %d links, %d images, %d skipped",
		h.result.Track, len(h.text.Links()), len(h.text.Images()), h.result.Skipped)

	return nil
}

// ToggleMode switches the shaper between the current and legacy modes.
func (h *Host) ToggleMode() error {
	if h.opts.Shaper.Mode == shaper.ModeLegacy {
		h.opts.Shaper.Mode = shaper.ModeCurrent
	} else {
		h.opts.Shaper.Mode = shaper.ModeLegacy
	}
	return h.Relayout()
}

// Click dispatches a click on the screen cell x, y.
func (h *Host) Click(x, y int) int {
	p := h.opts.Shaper.CellCenter(x, y)
	n := h.text.Click(p)
	if n == 0 {
		h.setStatus("no link at %d,%d", x, y)
	}
	return n
}

// Reload posts new source text to the event loop. It is safe to call from
// any goroutine.
func (h *Host) Reload(source string, err error) {
	if postErr := h.screen.PostEvent(tcell.NewEventInterrupt(reloadEvent{source: source, err: err})); postErr != nil {
		h.logger.Warn("dropping reload", logging.FieldError, postErr)
	}
}

// HandleEvent applies one screen event. It reports whether the host should
// quit.
func (h *Host) HandleEvent(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventResize:
		h.screen.Sync()

	case *tcell.EventKey:
		switch {
		case ev.Key() == tcell.KeyEscape, ev.Key() == tcell.KeyCtrlC, ev.Rune() == 'q':
			return true
		case ev.Rune() == 'm':
			if err := h.ToggleMode(); err != nil {
				h.setStatus("error: %v", err)
			}
		}

	case *tcell.EventMouse:
		if ev.Buttons()&tcell.ButtonPrimary != 0 {
			x, y := ev.Position()
			h.Click(x, y)
		}

	case *tcell.EventInterrupt:
		switch data := ev.Data().(type) {
		case quitEvent:
			return true
		case reloadEvent:
			if data.err != nil {
				h.setStatus("reload failed: %v", data.err)
				break
			}
			if err := h.Load(data.source); err != nil {
				h.setStatus("reload failed: %v", err)
			}
		}
	}

	return false
}

// Run draws and handles events until the user quits or ctx is done.
func (h *Host) Run(ctx context.Context) error {
	h.screen.EnableMouse()
	defer h.screen.DisableMouse()

	stop := context.AfterFunc(ctx, func() {
		_ = h.screen.PostEvent(tcell.NewEventInterrupt(quitEvent{}))
	})
	defer stop()

	for {
		h.Draw()

		ev := h.screen.PollEvent()
		if ev == nil {
			return nil
		}
		if h.HandleEvent(ev) {
			return nil
		}
	}
}
