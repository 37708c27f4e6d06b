package decor_test

import (
	"image"
	"image/color"
	"testing"

	"cogentcore.org/core/math32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/imgtext/pkg/decor"
)

func TestUnderline(t *testing.T) {
	t.Parallel()

	box := math32.Box2{Min: math32.Vec2(10, -14), Max: math32.Vec2(50, 0)}
	c := color.RGBA{B: 255, A: 255}

	p := decor.Underline(box, 2, c)

	assert.Equal(t, decor.KindUnderline, p.Kind)
	assert.Equal(t, math32.Vec2(30, -14), p.Center)
	assert.Equal(t, math32.Vec2(40, 2), p.Size)
	assert.Equal(t, c, p.Color)
}

func TestImage(t *testing.T) {
	t.Parallel()

	p := decor.Image(math32.Vec2(4, -7), 3, 6, "icon")

	assert.Equal(t, decor.KindImage, p.Kind)
	assert.Equal(t, math32.Vec2(4, -7), p.Center)
	assert.Equal(t, math32.Vec2(3, 6), p.Size)
	assert.Equal(t, decor.Opaque, p.Color)
	assert.Equal(t, "icon", p.Resource)
}

func placements(n int) []decor.Placement {
	out := make([]decor.Placement, n)
	for i := range out {
		out[i] = decor.Placement{Kind: decor.KindUnderline, Center: math32.Vec2(float32(i), 0)}
	}
	return out
}

func TestReconcile(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		desired  int
		poolSize int
		want     []decor.ActionKind
	}{
		{name: "empty", desired: 0, poolSize: 0, want: []decor.ActionKind{}},
		{name: "grow from empty", desired: 2, poolSize: 0, want: []decor.ActionKind{decor.ActionCreate, decor.ActionCreate}},
		{name: "same size", desired: 2, poolSize: 2, want: []decor.ActionKind{decor.ActionUpdate, decor.ActionUpdate}},
		{
			name: "grow", desired: 3, poolSize: 1,
			want: []decor.ActionKind{decor.ActionUpdate, decor.ActionCreate, decor.ActionCreate},
		},
		{
			name: "shrink", desired: 1, poolSize: 3,
			want: []decor.ActionKind{decor.ActionUpdate, decor.ActionHide, decor.ActionHide},
		},
		{name: "hide all", desired: 0, poolSize: 2, want: []decor.ActionKind{decor.ActionHide, decor.ActionHide}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			actions := decor.Reconcile(placements(tt.desired), tt.poolSize)

			kinds := make([]decor.ActionKind, 0, len(actions))
			for i, a := range actions {
				kinds = append(kinds, a.Kind)
				assert.Equal(t, i, a.Index)
			}
			assert.Equal(t, tt.want, kinds)
		})
	}
}

type sinkCall struct {
	op    string
	kind  decor.Kind
	index int
	p     decor.Placement
}

type fakeSink struct {
	calls []sinkCall
}

func (s *fakeSink) Create(index int, p decor.Placement) {
	s.calls = append(s.calls, sinkCall{op: "create", kind: p.Kind, index: index, p: p})
}

func (s *fakeSink) Update(index int, p decor.Placement) {
	s.calls = append(s.calls, sinkCall{op: "update", kind: p.Kind, index: index, p: p})
}

func (s *fakeSink) Hide(kind decor.Kind, index int) {
	s.calls = append(s.calls, sinkCall{op: "hide", kind: kind, index: index})
}

type mapResolver map[string]image.Image

func (r mapResolver) Get(path string) (image.Image, bool) {
	img, ok := r[path]
	return img, ok
}

func TestPool_Sync(t *testing.T) {
	t.Parallel()

	pool := decor.NewPool(nil)
	sink := &fakeSink{}

	pool.Sync(decor.KindUnderline, placements(3), sink)
	assert.Equal(t, 3, pool.Size(decor.KindUnderline))
	assert.Zero(t, pool.Size(decor.KindImage))

	sink.calls = nil
	actions := pool.Sync(decor.KindUnderline, placements(1), sink)
	require.Len(t, actions, 3)
	assert.Equal(t, 3, pool.Size(decor.KindUnderline), "pool entries are never destroyed")

	require.Len(t, sink.calls, 3)
	assert.Equal(t, "update", sink.calls[0].op)
	assert.Equal(t, "hide", sink.calls[1].op)
	assert.Equal(t, decor.KindUnderline, sink.calls[1].kind)
	assert.Equal(t, 2, sink.calls[2].index)

	sink.calls = nil
	pool.Sync(decor.KindUnderline, placements(4), sink)
	require.Len(t, sink.calls, 4)
	assert.Equal(t, "create", sink.calls[3].op)
	assert.Equal(t, 4, pool.Size(decor.KindUnderline))
}

func TestPool_SyncResolvesImages(t *testing.T) {
	t.Parallel()

	icon := image.NewRGBA(image.Rect(0, 0, 2, 2))
	pool := decor.NewPool(mapResolver{"icon": icon})
	sink := &fakeSink{}

	pool.Sync(decor.KindImage, []decor.Placement{
		decor.Image(math32.Vec2(0, 0), 1, 1, "icon"),
		decor.Image(math32.Vec2(0, 0), 1, 1, "missing"),
	}, sink)

	require.Len(t, sink.calls, 2)
	assert.Same(t, icon, sink.calls[0].p.Image)
	assert.Nil(t, sink.calls[1].p.Image)
	assert.Equal(t, "missing", sink.calls[1].p.Resource)
}

func TestPool_UnknownKind(t *testing.T) {
	t.Parallel()

	pool := decor.NewPool(nil)
	assert.Nil(t, pool.Sync(decor.Kind(42), placements(1), &fakeSink{}))
	assert.Zero(t, pool.Size(decor.Kind(-1)))
}

func TestKindStrings(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "underline", decor.KindUnderline.String())
	assert.Equal(t, "image", decor.KindImage.String())
	assert.Equal(t, "hide", decor.ActionHide.String())
	assert.Equal(t, "create", decor.ActionCreate.String())
}
