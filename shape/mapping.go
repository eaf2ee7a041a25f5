package shape

import (
	"context"
	"sort"

	goshape "github.com/okisaka/goshape"
	js "github.com/okisaka/goshape/jsonschema"
)

// Map returns a dynamic-key record shape: every key must satisfy key and
// every value must satisfy value. Input iteration order is irrelevant;
// violations are emitted in lexicographic key order so identical malformed
// inputs always report identical failures.
func Map(key, value goshape.Shape) goshape.Shape {
	if key == nil || value == nil {
		panic(&goshape.UsageError{Op: "shape.Map", Detail: "nil key or value shape"})
	}
	return mapShape{key: key, value: value}
}

type mapShape struct {
	key   goshape.Shape
	value goshape.Shape
}

func (m mapShape) Kind() goshape.Kind { return goshape.KindMap }

func (m mapShape) Parse(ctx context.Context, v any) (any, error) {
	src, ok := v.(map[string]any)
	if !ok {
		return nil, typeIssue(goshape.KindMap, v)
	}
	keys := make([]string, 0, len(src))
	for k := range src {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	out := make(map[string]any, len(src))
	var iss goshape.Issues
	for _, k := range keys {
		if _, err := m.key.Parse(descend(ctx), k); err != nil {
			iss = goshape.AppendIssues(iss, goshape.Rebase(k, issuesFromErr(err))...)
			if goshape.IsFailFast(ctx) {
				return nil, iss
			}
			continue
		}
		parsed, err := m.value.Parse(descend(ctx), src[k])
		if err != nil {
			iss = goshape.AppendIssues(iss, goshape.Rebase(k, issuesFromErr(err))...)
			if goshape.IsFailFast(ctx) {
				return nil, iss
			}
			continue
		}
		out[k] = parsed
	}
	if len(iss) > 0 {
		return nil, iss
	}
	return out, nil
}

func (m mapShape) JSONSchema() (*js.Schema, error) {
	vs, err := m.value.JSONSchema()
	if err != nil {
		return nil, err
	}
	return &js.Schema{Type: "object", AdditionalProperties: vs}, nil
}
