package shape_test

import (
	"context"
	"testing"

	goshape "github.com/okisaka/goshape"
	"github.com/okisaka/goshape/shape"
)

func TestClassify_MismatchedShapePanics(t *testing.T) {
	ctx := context.Background()
	u := buildAttachmentUnion(t)
	other := shape.Object().Field("id", shape.String()).MustBuild()

	v, err := goshape.Validate(ctx, other, map[string]any{"id": "42"})
	if err != nil {
		t.Fatalf("Validate: %v", err)
	}

	defer func() {
		r := recover()
		if _, ok := r.(*goshape.UsageError); !ok {
			t.Fatalf("expected *goshape.UsageError panic, got %v", r)
		}
	}()
	u.Classify(ctx, v)
}

func TestClassify_ZeroTokenPanics(t *testing.T) {
	ctx := context.Background()
	u := buildAttachmentUnion(t)

	defer func() {
		r := recover()
		if _, ok := r.(*goshape.UsageError); !ok {
			t.Fatalf("expected *goshape.UsageError panic, got %v", r)
		}
	}()
	u.Classify(ctx, goshape.Validated{})
}

func TestClassify_Deterministic(t *testing.T) {
	ctx := context.Background()
	text := shape.Object().Field("text", shape.String()).MustBuild()
	image := shape.Object().Field("imageUrl", shape.String()).MustBuild()
	u := shape.NewUnion().Variant("text", text).Variant("image", image).MustBuild()

	v, err := goshape.Validate(ctx, u, map[string]any{"text": "hi"})
	if err != nil {
		t.Fatalf("Validate: %v", err)
	}
	for i := 0; i < 10; i++ {
		if got := u.Classify(ctx, v); got != "text" {
			t.Fatalf("run %d: Classify=%q, want text", i, got)
		}
	}
}
