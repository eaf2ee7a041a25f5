package shape_test

import (
	"context"
	"encoding/json"
	"testing"

	goshape "github.com/okisaka/goshape"
	"github.com/okisaka/goshape/shape"
)

func buildMessageObject(t *testing.T) *shape.ObjectShape {
	t.Helper()
	s, err := shape.Object().
		Field("id", shape.String()).
		Field("sender", shape.String()).
		Field("timestamp", shape.Number()).
		Build()
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	return s
}

func TestObject_MissingFieldsReportedInDeclarationOrder(t *testing.T) {
	ctx := context.Background()
	s := buildMessageObject(t)

	_, err := goshape.Validate(ctx, s, map[string]any{"sender": "Bob"})
	if err == nil {
		t.Fatalf("expected failure")
	}
	iss, _ := goshape.AsIssues(err)
	if len(iss) != 2 {
		t.Fatalf("expected 2 violations, got %d: %v", len(iss), iss)
	}
	if iss[0].Path != "/id" || iss[0].Code != goshape.CodeRequired {
		t.Fatalf("first violation: %+v", iss[0])
	}
	if iss[1].Path != "/timestamp" || iss[1].Code != goshape.CodeRequired {
		t.Fatalf("second violation: %+v", iss[1])
	}
	if iss[0].Params["expected"] != "string" || iss[0].Params["actual"] != "missing" {
		t.Fatalf("required params: %v", iss[0].Params)
	}
	if iss[1].Params["expected"] != "number" {
		t.Fatalf("required params: %v", iss[1].Params)
	}
}

func TestObject_UnknownKeysIgnoredAndPruned(t *testing.T) {
	ctx := context.Background()
	s := buildMessageObject(t)

	v, err := goshape.Validate(ctx, s, map[string]any{
		"id": "1", "sender": "A", "timestamp": json.Number("5"), "extra": "ignored",
	})
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	m := v.Object()
	if _, ok := m["extra"]; ok {
		t.Fatalf("unknown key must be pruned: %#v", m)
	}
	if len(m) != 3 {
		t.Fatalf("unexpected field set: %#v", m)
	}
}

func TestObject_NestedViolationPaths(t *testing.T) {
	ctx := context.Background()
	inner := shape.Object().Field("url", shape.String()).MustBuild()
	outer := shape.Object().
		Field("id", shape.String()).
		Field("attachment", inner).
		MustBuild()

	_, err := goshape.Validate(ctx, outer, map[string]any{
		"id":         "1",
		"attachment": map[string]any{"url": 7},
	})
	iss, _ := goshape.AsIssues(err)
	if len(iss) != 1 || iss[0].Path != "/attachment/url" {
		t.Fatalf("unexpected issues: %v", iss)
	}
}

func TestObject_OptionalField(t *testing.T) {
	ctx := context.Background()
	s := shape.Object().
		Field("id", shape.String()).
		Field("note", shape.Optional(shape.String())).
		MustBuild()

	// absent: accepted
	if _, err := goshape.Validate(ctx, s, map[string]any{"id": "1"}); err != nil {
		t.Fatalf("absent optional: %v", err)
	}
	// present with the right kind: accepted
	if _, err := goshape.Validate(ctx, s, map[string]any{"id": "1", "note": "x"}); err != nil {
		t.Fatalf("present optional: %v", err)
	}
	// present with a wrong kind: rejected, absence is the only short-circuit
	_, err := goshape.Validate(ctx, s, map[string]any{"id": "1", "note": 7})
	iss, _ := goshape.AsIssues(err)
	if len(iss) != 1 || iss[0].Path != "/note" || iss[0].Code != goshape.CodeInvalidType {
		t.Fatalf("unexpected issues: %v", iss)
	}
	// present as null: rejected too, null is a value, not absence
	_, err = goshape.Validate(ctx, s, map[string]any{"id": "1", "note": nil})
	if err == nil {
		t.Fatalf("null optional must be rejected")
	}
}

func TestObject_NotAnObject(t *testing.T) {
	ctx := context.Background()
	s := buildMessageObject(t)
	_, err := goshape.Validate(ctx, s, []any{"nope"})
	iss, _ := goshape.AsIssues(err)
	if len(iss) != 1 || iss[0].Code != goshape.CodeInvalidType || iss[0].Params["actual"] != "array" {
		t.Fatalf("unexpected issues: %v", iss)
	}
}

func TestObject_DuplicateFieldIsBuildError(t *testing.T) {
	_, err := shape.Object().
		Field("id", shape.String()).
		Field("id", shape.Number()).
		Build()
	if err == nil {
		t.Fatalf("expected build error")
	}
	if _, ok := err.(*goshape.UsageError); !ok {
		t.Fatalf("expected *UsageError, got %T", err)
	}
}

func TestObject_MustBuildPanicsOnDuplicateField(t *testing.T) {
	defer func() {
		r := recover()
		if _, ok := r.(*goshape.UsageError); !ok {
			t.Fatalf("expected *UsageError panic, got %v", r)
		}
	}()
	shape.Object().
		Field("id", shape.String()).
		Field("id", shape.Number()).
		MustBuild()
}

func TestObject_FailFastStopsAtFirstViolation(t *testing.T) {
	ctx := goshape.WithFailFast(context.Background(), true)
	s := buildMessageObject(t)
	_, err := goshape.Validate(ctx, s, map[string]any{"sender": "Bob"})
	iss, _ := goshape.AsIssues(err)
	if len(iss) != 1 || iss[0].Path != "/id" {
		t.Fatalf("expected single first violation, got: %v", iss)
	}
}
