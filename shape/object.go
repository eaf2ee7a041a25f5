package shape

import (
	"context"

	goshape "github.com/okisaka/goshape"
	"github.com/okisaka/goshape/i18n"
	js "github.com/okisaka/goshape/jsonschema"
)

type objectField struct {
	name     string
	shape    goshape.Shape // Optional already unwrapped
	optional bool
}

// ObjectShape validates objects field by field in declaration order. Unknown
// keys in the input are ignored and pruned from the validated value
// (structural subtyping: only declared fields are ever inspected).
type ObjectShape struct {
	fields []objectField
	index  map[string]int
}

var _ goshape.Shape = (*ObjectShape)(nil)

// ObjectBuilder accumulates fields; call Build (or MustBuild) to obtain the
// immutable ObjectShape.
type ObjectBuilder struct {
	fields []objectField
	err    *goshape.UsageError
}

// Object creates a new object builder. Fields are required unless wrapped in
// Optional.
func Object() *ObjectBuilder { return &ObjectBuilder{} }

// Field appends a field. Declaration order determines violation order.
func (b *ObjectBuilder) Field(name string, s goshape.Shape) *ObjectBuilder {
	if b.err == nil && s == nil {
		b.err = &goshape.UsageError{Op: "shape.Object", Detail: "nil shape for field '" + name + "'"}
		return b
	}
	inner, opt := unwrapOptional(s)
	b.fields = append(b.fields, objectField{name: name, shape: inner, optional: opt})
	return b
}

// Build validates the builder and returns the shape. Duplicate field names
// are a programmer error.
func (b *ObjectBuilder) Build() (*ObjectShape, error) {
	if b.err != nil {
		return nil, b.err
	}
	index := make(map[string]int, len(b.fields))
	for i, f := range b.fields {
		if _, dup := index[f.name]; dup {
			return nil, &goshape.UsageError{Op: "shape.Object", Detail: "duplicate field '" + f.name + "'"}
		}
		index[f.name] = i
	}
	fields := make([]objectField, len(b.fields))
	copy(fields, b.fields)
	return &ObjectShape{fields: fields, index: index}, nil
}

// MustBuild is like Build but panics on error.
func (b *ObjectBuilder) MustBuild() *ObjectShape {
	s, err := b.Build()
	if err != nil {
		panic(err)
	}
	return s
}

func (o *ObjectShape) Kind() goshape.Kind { return goshape.KindObject }

// declaresField reports whether name is a declared field. Union builders use
// it to verify discriminator wiring.
func (o *ObjectShape) declaresField(name string) bool {
	_, ok := o.index[name]
	return ok
}

func (o *ObjectShape) Parse(ctx context.Context, v any) (any, error) {
	src, ok := v.(map[string]any)
	if !ok {
		return nil, typeIssue(goshape.KindObject, v)
	}
	out := make(map[string]any, len(o.fields))
	var iss goshape.Issues
	for _, f := range o.fields {
		val, exists := src[f.name]
		if !exists {
			if f.optional {
				continue
			}
			iss = goshape.AppendIssues(iss, goshape.Issue{
				Path:    "/" + goshape.EscapePointerToken(f.name),
				Code:    goshape.CodeRequired,
				Message: i18n.T(goshape.CodeRequired, nil),
				Hint:    "required property missing",
				Params:  map[string]any{"expected": f.shape.Kind().String(), "actual": "missing"},
			})
			if goshape.IsFailFast(ctx) {
				return nil, iss
			}
			continue
		}
		parsed, err := f.shape.Parse(descend(ctx), val)
		if err != nil {
			iss = goshape.AppendIssues(iss, goshape.Rebase(f.name, issuesFromErr(err))...)
			if goshape.IsFailFast(ctx) {
				return nil, iss
			}
			continue
		}
		out[f.name] = parsed
	}
	if len(iss) > 0 {
		return nil, iss
	}
	return out, nil
}

func (o *ObjectShape) JSONSchema() (*js.Schema, error) {
	props := make(map[string]*js.Schema, len(o.fields))
	var req []string
	for _, f := range o.fields {
		fs, err := f.shape.JSONSchema()
		if err != nil {
			return nil, err
		}
		props[f.name] = fs
		if !f.optional {
			req = append(req, f.name)
		}
	}
	// Unknown keys are accepted then discarded, so additionalProperties stays
	// open in JSON Schema terms.
	return &js.Schema{Type: "object", Properties: props, Required: req, AdditionalProperties: true}, nil
}

// issuesFromErr converts an error into Issues, wrapping non-Issues with
// CodeParseError.
func issuesFromErr(err error) goshape.Issues {
	if err == nil {
		return nil
	}
	if iss, ok := goshape.AsIssues(err); ok {
		return iss
	}
	return goshape.Issues{goshape.Issue{Path: "/", Code: goshape.CodeParseError, Message: err.Error(), Cause: err}}
}
