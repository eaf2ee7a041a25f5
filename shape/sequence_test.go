package shape_test

import (
	"context"
	"encoding/json"
	"testing"

	goshape "github.com/okisaka/goshape"
	"github.com/okisaka/goshape/shape"
)

func TestArray_CollectsAllElementViolations(t *testing.T) {
	ctx := context.Background()
	s := shape.Array(shape.Number())

	_, err := goshape.Validate(ctx, s, []any{json.Number("1"), "x", json.Number("3"), "y"})
	if err == nil {
		t.Fatalf("expected failure")
	}
	iss, _ := goshape.AsIssues(err)
	if len(iss) != 2 {
		t.Fatalf("expected exactly 2 violations, got %d: %v", len(iss), iss)
	}
	if iss[0].Path != "/1" || iss[1].Path != "/3" {
		t.Fatalf("unexpected paths: %v", iss)
	}
	for _, it := range iss {
		if it.Code != goshape.CodeInvalidType {
			t.Fatalf("unexpected code: %+v", it)
		}
	}
}

func TestArray_EmptyAndHappyPath(t *testing.T) {
	ctx := context.Background()
	s := shape.Array(shape.String())

	if _, err := goshape.Validate(ctx, s, []any{}); err != nil {
		t.Fatalf("empty: %v", err)
	}
	v, err := goshape.Validate(ctx, s, []any{"a", "b"})
	if err != nil {
		t.Fatalf("happy: %v", err)
	}
	arr, _ := v.Value().([]any)
	if len(arr) != 2 || arr[0] != "a" {
		t.Fatalf("unexpected value: %#v", v.Value())
	}
}

func TestArray_NotAnArray(t *testing.T) {
	ctx := context.Background()
	s := shape.Array(shape.String())
	_, err := goshape.Validate(ctx, s, map[string]any{})
	iss, _ := goshape.AsIssues(err)
	if len(iss) != 1 || iss[0].Code != goshape.CodeInvalidType || iss[0].Params["expected"] != "array" {
		t.Fatalf("unexpected issues: %v", iss)
	}
}

func TestArray_NestedElementPaths(t *testing.T) {
	ctx := context.Background()
	elem := shape.Object().Field("name", shape.String()).MustBuild()
	s := shape.Array(elem)

	_, err := goshape.Validate(ctx, s, []any{
		map[string]any{"name": "ok"},
		map[string]any{},
	})
	iss, _ := goshape.AsIssues(err)
	if len(iss) != 1 || iss[0].Path != "/1/name" || iss[0].Code != goshape.CodeRequired {
		t.Fatalf("unexpected issues: %v", iss)
	}
}
