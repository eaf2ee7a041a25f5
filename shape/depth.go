package shape

import (
	"context"

	goshape "github.com/okisaka/goshape"
)

// maxDescriptorDepth bounds descriptor recursion during validation. Shape
// graphs are finite by construction unless a programmer wires a cycle; the
// guard turns such a cycle into an immediate programmer error instead of a
// stack overflow.
const maxDescriptorDepth = 256

type ctxKey int

const ctxKeyDepth ctxKey = iota

// descend records one level of descriptor recursion and panics with a
// *goshape.UsageError when the guard is exceeded.
func descend(ctx context.Context) context.Context {
	d, _ := ctx.Value(ctxKeyDepth).(int)
	d++
	if d > maxDescriptorDepth {
		panic(&goshape.UsageError{Op: "shape", Detail: "descriptor too deep or cyclic (depth guard exceeded)"})
	}
	return context.WithValue(ctx, ctxKeyDepth, d)
}
