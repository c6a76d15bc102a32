package reqid

import (
	"context"
	"testing"
)

func TestContextRoundTrip(t *testing.T) {
	ctx, id := NewContext(context.Background())
	got, ok := FromContext(ctx)
	if !ok || got != id {
		t.Fatalf("expected %d from context, got %d ok=%v", id, got, ok)
	}
	if _, ok := FromContext(context.Background()); ok {
		t.Fatalf("unexpected id in empty context")
	}
}

func TestIDsArePositiveAndDistinct(t *testing.T) {
	seen := map[int64]bool{}
	for i := 0; i < 100; i++ {
		_, id := NewContext(context.Background())
		if id <= 0 || seen[id] {
			t.Fatalf("bad id %d", id)
		}
		seen[id] = true
	}
	if got := String(255); got != "ff" {
		t.Fatalf("String(255) = %q", got)
	}
}
