package rank

import (
	"context"
	"fmt"
	"testing"

	miniredis "github.com/alicebob/miniredis/v2"
)

func newTestStore(t *testing.T) (*Store, func()) {
	t.Helper()
	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("miniredis: %v", err)
	}
	s, err := NewStoreFromURL(fmt.Sprintf("redis://%s/0", mr.Addr()))
	if err != nil {
		t.Fatalf("NewStoreFromURL: %v", err)
	}
	return s, func() { _ = s.Close(); mr.Close() }
}

func TestRecordBestKeepsHighest(t *testing.T) {
	s, cleanup := newTestStore(t)
	defer cleanup()
	ctx := context.Background()

	if err := s.RecordBest(ctx, "u1", 3); err != nil {
		t.Fatalf("RecordBest: %v", err)
	}
	if err := s.RecordBest(ctx, "u1", 1); err != nil {
		t.Fatalf("RecordBest: %v", err)
	}
	best, ok, err := s.Best(ctx, "u1")
	if err != nil || !ok {
		t.Fatalf("Best: ok=%v err=%v", ok, err)
	}
	if best != 3 {
		t.Fatalf("best = %d, want 3 (lower score must not overwrite)", best)
	}

	if err := s.RecordBest(ctx, "u1", 7); err != nil {
		t.Fatalf("RecordBest: %v", err)
	}
	best, _, _ = s.Best(ctx, "u1")
	if best != 7 {
		t.Fatalf("best = %d, want 7", best)
	}
}

func TestBestUnknownPlayer(t *testing.T) {
	s, cleanup := newTestStore(t)
	defer cleanup()

	_, ok, err := s.Best(context.Background(), "ghost")
	if err != nil {
		t.Fatalf("Best: %v", err)
	}
	if ok {
		t.Fatalf("expected no entry for unknown player")
	}
}

func TestTopOrdering(t *testing.T) {
	s, cleanup := newTestStore(t)
	defer cleanup()
	ctx := context.Background()

	for player, score := range map[string]int{"a": 2, "b": 9, "c": 5} {
		if err := s.RecordBest(ctx, player, score); err != nil {
			t.Fatalf("RecordBest(%s): %v", player, err)
		}
	}
	top, err := s.Top(ctx, 2)
	if err != nil {
		t.Fatalf("Top: %v", err)
	}
	if len(top) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(top))
	}
	if top[0].Player != "b" || top[0].Score != 9 {
		t.Fatalf("top[0] = %+v, want b/9", top[0])
	}
	if top[1].Player != "c" || top[1].Score != 5 {
		t.Fatalf("top[1] = %+v, want c/5", top[1])
	}
}
