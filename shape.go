package goshape

import (
	"context"
	"encoding/json"
	"fmt"

	js "github.com/okisaka/goshape/jsonschema"
)

// Kind identifies a shape descriptor kind. It names the expected structure in
// diagnostics and drives union tried-member listings.
type Kind int

const (
	KindInvalid Kind = iota
	KindString
	KindNumber
	KindBool
	KindObject
	KindMap
	KindArray
	KindUnion
	KindOptional
)

func (k Kind) String() string {
	switch k {
	case KindString:
		return "string"
	case KindNumber:
		return "number"
	case KindBool:
		return "bool"
	case KindObject:
		return "object"
	case KindMap:
		return "map"
	case KindArray:
		return "array"
	case KindUnion:
		return "union"
	case KindOptional:
		return "optional"
	default:
		return "invalid"
	}
}

// Shape is an immutable descriptor of an expected value structure. Shapes are
// built once (see the shape package) and are read-only afterwards, safe for
// unlimited concurrent readers.
//
// Parse checks v against the shape and returns the canonical value: objects
// are pruned to their declared fields, everything else passes through.
// Violation paths are JSON Pointers relative to v. Parse never panics for
// malformed input; it panics with *UsageError for malformed descriptors
// (recursion beyond the depth guard).
//
// Parse alone yields no proof token; only Validate/ValidateFrom mint a
// Validated.
type Shape interface {
	Kind() Kind
	Parse(ctx context.Context, v any) (any, error)
	// JSONSchema projects the shape into a JSON Schema representation.
	JSONSchema() (*js.Schema, error)
}

// KindOfValue names the runtime kind of a decoded input value for use in
// "actual" diagnostics. Numbers cover json.Number and float64, the two
// representations produced by the decoding engine.
func KindOfValue(v any) string {
	switch v.(type) {
	case nil:
		return "null"
	case string:
		return "string"
	case bool:
		return "bool"
	case json.Number, float64:
		return "number"
	case map[string]any:
		return "object"
	case []any:
		return "array"
	default:
		return fmt.Sprintf("%T", v)
	}
}
