package shape

import (
	"context"

	goshape "github.com/okisaka/goshape"
	js "github.com/okisaka/goshape/jsonschema"
)

// Optional marks a shape as allowed to be absent when used as an object
// field. Absence short-circuits to success; a present value (including JSON
// null) is checked against the inner shape.
func Optional(inner goshape.Shape) goshape.Shape {
	if inner == nil {
		panic(&goshape.UsageError{Op: "shape.Optional", Detail: "nil inner shape"})
	}
	return optionalShape{inner: inner}
}

type optionalShape struct{ inner goshape.Shape }

func (o optionalShape) Kind() goshape.Kind { return goshape.KindOptional }

// Inner returns the wrapped shape.
func (o optionalShape) Inner() goshape.Shape { return o.inner }

func (o optionalShape) Parse(ctx context.Context, v any) (any, error) {
	return o.inner.Parse(descend(ctx), v)
}

func (o optionalShape) JSONSchema() (*js.Schema, error) { return o.inner.JSONSchema() }

// unwrapOptional splits a field shape into its effective shape and an
// optionality flag.
func unwrapOptional(s goshape.Shape) (goshape.Shape, bool) {
	if o, ok := s.(optionalShape); ok {
		return o.inner, true
	}
	return s, false
}
