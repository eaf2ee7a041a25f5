package shape

import (
	"context"
	"strconv"

	goshape "github.com/okisaka/goshape"
	js "github.com/okisaka/goshape/jsonschema"
)

// Array returns a homogeneous sequence shape. Elements are validated
// positionally without short-circuiting: a single call reports every element
// violation, each annotated with its index.
func Array(elem goshape.Shape) goshape.Shape {
	if elem == nil {
		panic(&goshape.UsageError{Op: "shape.Array", Detail: "nil element shape"})
	}
	return arrayShape{elem: elem}
}

type arrayShape struct{ elem goshape.Shape }

func (a arrayShape) Kind() goshape.Kind { return goshape.KindArray }

func (a arrayShape) Parse(ctx context.Context, v any) (any, error) {
	src, ok := v.([]any)
	if !ok {
		return nil, typeIssue(goshape.KindArray, v)
	}
	out := make([]any, 0, len(src))
	var iss goshape.Issues
	for i := range src {
		parsed, err := a.elem.Parse(descend(ctx), src[i])
		if err != nil {
			iss = goshape.AppendIssues(iss, goshape.Rebase(strconv.Itoa(i), issuesFromErr(err))...)
			if goshape.IsFailFast(ctx) {
				return nil, iss
			}
			continue
		}
		out = append(out, parsed)
	}
	if len(iss) > 0 {
		return nil, iss
	}
	return out, nil
}

func (a arrayShape) JSONSchema() (*js.Schema, error) {
	es, err := a.elem.JSONSchema()
	if err != nil {
		return nil, err
	}
	return &js.Schema{Type: "array", Items: es}, nil
}
