package shape_test

import (
	"context"
	"encoding/json"
	"testing"

	goshape "github.com/okisaka/goshape"
	"github.com/okisaka/goshape/shape"
)

// End-to-end scenario: a chat message payload validated against an object
// shape, then its attachment routed through a structural union.

func TestMessage_EndToEnd(t *testing.T) {
	ctx := context.Background()

	msg := shape.Object().
		Field("id", shape.String()).
		Field("sender", shape.String()).
		Field("timestamp", shape.Number()).
		Field("reactions", shape.Optional(shape.Map(shape.String(), shape.Number()))).
		MustBuild()

	raw := []byte(`{"id":"42","sender":"Alice","timestamp":1700000000000,"reactions":{"👍":3},"trace":"drop-me"}`)
	v, err := goshape.ValidateFrom(ctx, msg, goshape.JSONBytes(raw))
	if err != nil {
		t.Fatalf("ValidateFrom: %v", err)
	}
	out := v.Object()
	if out["id"] != "42" || out["sender"] != "Alice" {
		t.Fatalf("unexpected output: %#v", out)
	}
	if _, leaked := out["trace"]; leaked {
		t.Fatalf("undeclared key survived pruning: %#v", out)
	}
	reactions, _ := out["reactions"].(map[string]any)
	if reactions["👍"] != json.Number("3") {
		t.Fatalf("unexpected reactions: %#v", reactions)
	}
}

func TestMessage_AttachmentUnionNoMatch(t *testing.T) {
	ctx := context.Background()
	text := shape.Object().Field("text", shape.String()).MustBuild()
	image := shape.Object().Field("imageUrl", shape.String()).MustBuild()
	video := shape.Object().Field("videoUrl", shape.String()).MustBuild()
	u := shape.NewUnion().
		Variant("text", text).
		Variant("image", image).
		Variant("video", video).
		MustBuild()

	_, err := goshape.Validate(ctx, u, map[string]any{"id": "42", "sender": "Alice"})
	iss, _ := goshape.AsIssues(err)
	if len(iss) != 1 || iss[0].Code != goshape.CodeUnionNoMatch {
		t.Fatalf("unexpected issues: %v", iss)
	}
	tried, _ := iss[0].Params["tried"].([]string)
	if len(tried) != 3 || tried[0] != "text" || tried[1] != "image" || tried[2] != "video" {
		t.Fatalf("unexpected tried list: %v", tried)
	}

	// Declaring a member that does match makes the same payload classify.
	plain := shape.Object().Field("id", shape.String()).Field("sender", shape.String()).MustBuild()
	u2 := shape.NewUnion().
		Variant("text", text).
		Variant("plain", plain).
		MustBuild()
	v, err := goshape.Validate(ctx, u2, map[string]any{"id": "42", "sender": "Alice"})
	if err != nil {
		t.Fatalf("Validate: %v", err)
	}
	if got := u2.Classify(ctx, v); got != "plain" {
		t.Fatalf("Classify=%q, want plain", got)
	}
}

func TestDescriptorDepthGuard(t *testing.T) {
	ctx := context.Background()

	s := goshape.Shape(shape.Number())
	in := any(json.Number("1"))
	for i := 0; i < 300; i++ {
		s = shape.Array(s)
		in = []any{in}
	}

	defer func() {
		r := recover()
		if _, ok := r.(*goshape.UsageError); !ok {
			t.Fatalf("expected *goshape.UsageError panic, got %v", r)
		}
	}()
	_, _ = goshape.Validate(ctx, s, in)
}
