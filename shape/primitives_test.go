package shape_test

import (
	"context"
	"encoding/json"
	"testing"

	goshape "github.com/okisaka/goshape"
	"github.com/okisaka/goshape/shape"
)

func TestPrimitives_HappyPath(t *testing.T) {
	ctx := context.Background()
	cases := []struct {
		name string
		s    goshape.Shape
		v    any
	}{
		{"string", shape.String(), "hi"},
		{"bool", shape.Bool(), true},
		{"number-json", shape.Number(), json.Number("42")},
		{"number-float", shape.Number(), 4.5},
	}
	for _, tc := range cases {
		if _, err := goshape.Validate(ctx, tc.s, tc.v); err != nil {
			t.Fatalf("%s: unexpected err: %v", tc.name, err)
		}
	}
}

func TestPrimitives_KindMismatch(t *testing.T) {
	ctx := context.Background()
	cases := []struct {
		name     string
		s        goshape.Shape
		v        any
		expected string
		actual   string
	}{
		{"number-not-string", shape.Number(), "1700000000000", "number", "string"},
		{"string-not-number", shape.String(), json.Number("1"), "string", "number"},
		{"bool-not-string", shape.Bool(), "true", "bool", "string"},
		{"string-not-null", shape.String(), nil, "string", "null"},
	}
	for _, tc := range cases {
		_, err := goshape.Validate(ctx, tc.s, tc.v)
		if err == nil {
			t.Fatalf("%s: expected invalid_type", tc.name)
		}
		iss, ok := goshape.AsIssues(err)
		if !ok || len(iss) != 1 {
			t.Fatalf("%s: unexpected err: %v", tc.name, err)
		}
		it := iss[0]
		if it.Code != goshape.CodeInvalidType || it.Path != "/" {
			t.Fatalf("%s: unexpected issue: %+v", tc.name, it)
		}
		if it.Params["expected"] != tc.expected || it.Params["actual"] != tc.actual {
			t.Fatalf("%s: unexpected params: %v", tc.name, it.Params)
		}
	}
}

func TestKinds(t *testing.T) {
	if shape.String().Kind() != goshape.KindString {
		t.Fatalf("string kind")
	}
	if shape.Number().Kind() != goshape.KindNumber {
		t.Fatalf("number kind")
	}
	if shape.Bool().Kind() != goshape.KindBool {
		t.Fatalf("bool kind")
	}
	if shape.Optional(shape.String()).Kind() != goshape.KindOptional {
		t.Fatalf("optional kind")
	}
}
