package shape

import (
	"context"
	"strings"

	goshape "github.com/okisaka/goshape"
)

// Handler consumes a validated value already narrowed to one union member.
type Handler[R any] func(ctx context.Context, v goshape.Validated) (R, error)

// Dispatcher routes a validated union value to the handler registered for its
// tag. The handler set is total over the union's tags by construction, so
// dispatch can never fall through; the result type R is fixed at compile time
// by the caller's handler set.
//
// Dispatch itself is side-effect-free; any side effects belong to the
// handlers.
type Dispatcher[R any] struct {
	union    *Union
	handlers map[Tag]Handler[R]
}

// DispatcherBuilder accumulates handlers; Build verifies exhaustiveness.
type DispatcherBuilder[R any] struct {
	union    *Union
	handlers map[Tag]Handler[R]
	err      *goshape.UsageError
}

// NewDispatcher creates a dispatcher builder over the given union.
func NewDispatcher[R any](u *Union) *DispatcherBuilder[R] {
	if u == nil {
		panic(&goshape.UsageError{Op: "shape.NewDispatcher", Detail: "nil union"})
	}
	return &DispatcherBuilder[R]{union: u, handlers: make(map[Tag]Handler[R])}
}

// Handle registers the handler for tag. Unknown tags and duplicate
// registrations are programmer errors reported by Build.
func (b *DispatcherBuilder[R]) Handle(tag Tag, h Handler[R]) *DispatcherBuilder[R] {
	if b.err != nil {
		return b
	}
	if h == nil {
		b.err = &goshape.UsageError{Op: "shape.Dispatcher", Detail: "nil handler for tag '" + string(tag) + "'"}
		return b
	}
	if _, known := b.union.index[tag]; !known {
		b.err = &goshape.UsageError{Op: "shape.Dispatcher", Detail: "handler for undeclared tag '" + string(tag) + "'"}
		return b
	}
	if _, dup := b.handlers[tag]; dup {
		b.err = &goshape.UsageError{Op: "shape.Dispatcher", Detail: "duplicate handler for tag '" + string(tag) + "'"}
		return b
	}
	b.handlers[tag] = h
	return b
}

// Build verifies the handler set covers every declared tag and returns the
// dispatcher. A union member without a handler is a programmer error, caught
// at construction, before any classification.
func (b *DispatcherBuilder[R]) Build() (*Dispatcher[R], error) {
	if b.err != nil {
		return nil, b.err
	}
	var missing []string
	for _, m := range b.union.members {
		if _, ok := b.handlers[m.tag]; !ok {
			missing = append(missing, string(m.tag))
		}
	}
	if len(missing) > 0 {
		return nil, &goshape.UsageError{
			Op:     "shape.Dispatcher",
			Detail: "missing handler for tag(s): " + strings.Join(missing, ", "),
		}
	}
	return &Dispatcher[R]{union: b.union, handlers: b.handlers}, nil
}

// MustBuild is like Build but panics on error.
func (b *DispatcherBuilder[R]) MustBuild() *Dispatcher[R] {
	d, err := b.Build()
	if err != nil {
		panic(err)
	}
	return d
}

// Dispatch classifies v and invokes the handler for its tag. The handler
// receives the already-validated, already-narrowed value. The same
// preconditions as Union.Classify apply.
func (d *Dispatcher[R]) Dispatch(ctx context.Context, v goshape.Validated) (R, error) {
	tag := d.union.Classify(ctx, v)
	return d.handlers[tag](ctx, v)
}
