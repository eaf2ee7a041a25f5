package shape

import (
	"context"
	"encoding/json"

	goshape "github.com/okisaka/goshape"
	"github.com/okisaka/goshape/i18n"
	js "github.com/okisaka/goshape/jsonschema"
)

// String returns the string primitive shape.
func String() goshape.Shape { return stringShape{} }

// Number returns the number primitive shape. It accepts json.Number and
// float64, the two representations produced by the decoding engine. Numeric
// strings are rejected: no coercion is ever performed.
func Number() goshape.Shape { return numberShape{} }

// Bool returns the bool primitive shape.
func Bool() goshape.Shape { return boolShape{} }

type stringShape struct{}

func (stringShape) Kind() goshape.Kind { return goshape.KindString }

func (stringShape) Parse(ctx context.Context, v any) (any, error) {
	if _, ok := v.(string); !ok {
		return nil, typeIssue(goshape.KindString, v)
	}
	return v, nil
}

func (stringShape) JSONSchema() (*js.Schema, error) { return &js.Schema{Type: "string"}, nil }

type numberShape struct{}

func (numberShape) Kind() goshape.Kind { return goshape.KindNumber }

func (numberShape) Parse(ctx context.Context, v any) (any, error) {
	switch v.(type) {
	case json.Number, float64:
		return v, nil
	default:
		return nil, typeIssue(goshape.KindNumber, v)
	}
}

func (numberShape) JSONSchema() (*js.Schema, error) { return &js.Schema{Type: "number"}, nil }

type boolShape struct{}

func (boolShape) Kind() goshape.Kind { return goshape.KindBool }

func (boolShape) Parse(ctx context.Context, v any) (any, error) {
	if _, ok := v.(bool); !ok {
		return nil, typeIssue(goshape.KindBool, v)
	}
	return v, nil
}

func (boolShape) JSONSchema() (*js.Schema, error) { return &js.Schema{Type: "boolean"}, nil }

// typeIssue builds the single invalid_type violation for a kind mismatch.
func typeIssue(expected goshape.Kind, v any) goshape.Issues {
	return goshape.Issues{goshape.Issue{
		Path:    "/",
		Code:    goshape.CodeInvalidType,
		Message: i18n.T(goshape.CodeInvalidType, nil),
		Hint:    "expected " + expected.String(),
		Params:  map[string]any{"expected": expected.String(), "actual": goshape.KindOfValue(v)},
	}}
}
