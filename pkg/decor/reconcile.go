package decor

import (
	"image"
)

// ActionKind is what a reconcile action does to a pool entry.
type ActionKind int

const (
	// ActionUpdate repositions an existing pool entry.
	ActionUpdate ActionKind = iota

	// ActionCreate appends a new pool entry.
	ActionCreate

	// ActionHide makes an unused pool entry transparent. Entries are never
	// destroyed so they can be reused by a later layout.
	ActionHide
)

// String returns the action name.
func (k ActionKind) String() string {
	switch k {
	case ActionUpdate:
		return "update"
	case ActionCreate:
		return "create"
	case ActionHide:
		return "hide"
	default:
		return "unknown"
	}
}

// Action is one step of a reconciliation.
type Action struct {
	Kind      ActionKind
	Index     int
	Placement Placement
}

// Reconcile returns the actions that make a pool of poolSize entries show
// exactly desired: entries below min(len(desired), poolSize) are updated,
// missing entries are created, and surplus entries are hidden.
func Reconcile(desired []Placement, poolSize int) []Action {
	actions := make([]Action, 0, max(len(desired), poolSize))

	for i, p := range desired {
		kind := ActionUpdate
		if i >= poolSize {
			kind = ActionCreate
		}
		actions = append(actions, Action{Kind: kind, Index: i, Placement: p})
	}

	for i := len(desired); i < poolSize; i++ {
		actions = append(actions, Action{Kind: ActionHide, Index: i})
	}

	return actions
}

// Sink receives reconcile actions for one host.
type Sink interface {
	// Create adds a new visual at index, which always equals the pool size.
	Create(index int, p Placement)

	// Update moves the visual at index to p.
	Update(index int, p Placement)

	// Hide makes the visual at index transparent.
	Hide(kind Kind, index int)
}

// Resolver resolves image resources by path.
type Resolver interface {
	Get(path string) (image.Image, bool)
}

// Pool tracks how many visuals of each kind a host has created and applies
// reconciliations to it. A Pool is owned by the main loop.
type Pool struct {
	sizes    [kindCount]int
	resolver Resolver
}

// NewPool returns an empty pool. resolver may be nil, in which case image
// placements are passed on unresolved.
func NewPool(resolver Resolver) *Pool {
	return &Pool{resolver: resolver}
}

// Size returns the number of visuals of kind in the pool.
func (p *Pool) Size(kind Kind) int {
	if kind < 0 || kind >= kindCount {
		return 0
	}
	return p.sizes[kind]
}

// Sync reconciles the visuals of kind against desired and applies the result
// to sink. It returns the applied actions.
func (p *Pool) Sync(kind Kind, desired []Placement, sink Sink) []Action {
	if kind < 0 || kind >= kindCount {
		return nil
	}

	if kind == KindImage && p.resolver != nil {
		for i := range desired {
			if desired[i].Image == nil && desired[i].Resource != "" {
				desired[i].Image, _ = p.resolver.Get(desired[i].Resource)
			}
		}
	}

	actions := Reconcile(desired, p.sizes[kind])
	for _, action := range actions {
		switch action.Kind {
		case ActionUpdate:
			sink.Update(action.Index, action.Placement)
		case ActionCreate:
			sink.Create(action.Index, action.Placement)
		case ActionHide:
			sink.Hide(kind, action.Index)
		}
	}

	p.sizes[kind] = max(p.sizes[kind], len(desired))
	return actions
}
