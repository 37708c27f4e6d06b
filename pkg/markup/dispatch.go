package markup

import (
	"errors"
	"fmt"

	"cogentcore.org/core/math32"

	"github.com/yaklabco/imgtext/internal/logging"
)

// ErrLinkIndexOutOfRange is returned when a handler is registered for a link
// index beyond the current link count.
var ErrLinkIndexOutOfRange = errors.New("link index out of range")

// ErrNilHandler is returned when registering a nil handler.
var ErrNilHandler = errors.New("nil click handler")

// Handler is invoked with a link's param when the link is clicked.
type Handler func(param string)

// HandlerID identifies a registered handler for removal.
type HandlerID uint64

type handlerEntry struct {
	id HandlerID
	fn Handler
}

// AddClickLinkEvent appends fn to the handlers of link index. Handlers run in
// registration order.
func (t *Text) AddClickLinkEvent(index int, fn Handler) (HandlerID, error) {
	if fn == nil {
		return 0, ErrNilHandler
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	if index < 0 || index >= len(t.links) {
		t.logger.Error("AddClickLinkEvent: link index out of bounds",
			logging.FieldIndex, index,
			logging.FieldLinks, len(t.links),
		)
		return 0, fmt.Errorf("%w: index %d, %d links", ErrLinkIndexOutOfRange, index, len(t.links))
	}

	if len(t.handlers) < len(t.links) {
		grown := make([][]handlerEntry, len(t.links))
		copy(grown, t.handlers)
		t.handlers = grown
	}

	t.nextHandler++
	id := t.nextHandler
	t.handlers[index] = append(t.handlers[index], handlerEntry{id: id, fn: fn})

	return id, nil
}

// RemoveClickLinkEvent removes one handler from link index. Removing an
// unknown handler or index is a no-op; it reports whether a handler was removed.
func (t *Text) RemoveClickLinkEvent(index int, id HandlerID) bool {
	t.mu.Lock()
	defer t.mu.Unlock()

	if index < 0 || index >= len(t.handlers) {
		return false
	}

	entries := t.handlers[index]
	for i, e := range entries {
		if e.id == id {
			t.handlers[index] = append(entries[:i:i], entries[i+1:]...)
			return true
		}
	}
	return false
}

// RemoveClickLinkAllEvents clears every handler of link index.
func (t *Text) RemoveClickLinkAllEvents(index int) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if index < 0 || index >= len(t.handlers) {
		return
	}
	t.handlers[index] = nil
}

// HandlerCount returns the number of handlers attached to link index.
func (t *Text) HandlerCount(index int) int {
	t.mu.Lock()
	defer t.mu.Unlock()

	if index < 0 || index >= len(t.handlers) {
		return 0
	}
	return len(t.handlers[index])
}

type pendingCall struct {
	fn    Handler
	param string
}

// Click dispatches a pointer click at p, given in the widget's local space.
// Every link with a region containing p fires once; overlapping links all
// fire. It returns the number of handlers invoked.
func (t *Text) Click(p math32.Vector2) int {
	t.mu.Lock()
	var calls []pendingCall
	for i, link := range t.links {
		if !hits(link.Regions, p) {
			continue
		}
		if i >= len(t.handlers) {
			continue
		}
		for _, e := range t.handlers[i] {
			calls = append(calls, pendingCall{fn: e.fn, param: link.Param})
		}
	}
	t.mu.Unlock()

	// Handlers run unlocked so they may reassign the text.
	for _, c := range calls {
		c.fn(c.param)
	}
	return len(calls)
}

// HitTest returns the indexes of the links whose regions contain p.
func (t *Text) HitTest(p math32.Vector2) []int {
	t.mu.Lock()
	defer t.mu.Unlock()

	var out []int
	for i, link := range t.links {
		if hits(link.Regions, p) {
			out = append(out, i)
		}
	}
	return out
}

// hits tests p against regions that include their min edges and exclude
// their max edges, so adjacent regions never share a point.
func hits(regions []math32.Box2, p math32.Vector2) bool {
	for _, box := range regions {
		if p.X >= box.Min.X && p.X < box.Max.X && p.Y >= box.Min.Y && p.Y < box.Max.Y {
			return true
		}
	}
	return false
}
