package store

import (
	"context"
	"fmt"
	"testing"
	"time"

	miniredis "github.com/alicebob/miniredis/v2"
	"github.com/benbeisheim/shashki-backend/internal/model"
)

func newTestHistory(t *testing.T, limit int) (*RedisHistory, *miniredis.Miniredis) {
	t.Helper()
	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("miniredis: %v", err)
	}
	t.Cleanup(func() { mr.Close() })

	rdb, err := NewRedisClient(context.Background(), fmt.Sprintf("redis://%s/0", mr.Addr()))
	if err != nil {
		t.Fatalf("NewRedisClient: %v", err)
	}
	t.Cleanup(func() { _ = rdb.Close() })
	return NewRedisHistory(rdb, limit, time.Hour), mr
}

func TestRedisHistoryRoundTrip(t *testing.T) {
	h, mr := newTestHistory(t, 0)
	ctx := context.Background()

	s := model.NewGameState()
	if _, err := s.Play(model.Square{Row: 5, Col: 2}, model.Square{Row: 4, Col: 1}); err != nil {
		t.Fatalf("Play: %v", err)
	}
	snap := s.Snapshot()
	if err := h.Push(ctx, "g1", snap); err != nil {
		t.Fatalf("Push: %v", err)
	}
	if !mr.Exists("shashki:history:g1") {
		t.Fatalf("history key not written")
	}
	if ttl := mr.TTL("shashki:history:g1"); ttl <= 0 {
		t.Fatalf("history key has no ttl")
	}

	got, ok, err := h.Pop(ctx, "g1")
	if err != nil || !ok {
		t.Fatalf("Pop: %v %v", ok, err)
	}
	if got.CurrentPlayer != model.PlayerColorBlack {
		t.Fatalf("current player: %s", got.CurrentPlayer)
	}
	if got.Board.At(model.Square{Row: 4, Col: 1}) == nil || got.Board.At(model.Square{Row: 5, Col: 2}) != nil {
		t.Fatalf("board did not survive the round trip")
	}
	if _, ok, err := h.Pop(ctx, "g1"); ok || err != nil {
		t.Fatalf("expected empty stack, got ok=%v err=%v", ok, err)
	}
}

func TestRedisHistoryLimitAndClear(t *testing.T) {
	h, _ := newTestHistory(t, 2)
	ctx := context.Background()

	for i := 1; i <= 3; i++ {
		snap := model.Snapshot{Tally: model.CaptureTally{White: i}}
		if err := h.Push(ctx, "g1", snap); err != nil {
			t.Fatalf("Push %d: %v", i, err)
		}
	}
	if n, err := h.Len(ctx, "g1"); err != nil || n != 2 {
		t.Fatalf("Len = %d, %v; want 2", n, err)
	}
	top, _, _ := h.Pop(ctx, "g1")
	if top.Tally.White != 3 {
		t.Fatalf("expected newest snapshot on top, got %+v", top.Tally)
	}

	if err := h.Clear(ctx, "g1"); err != nil {
		t.Fatalf("Clear: %v", err)
	}
	if n, _ := h.Len(ctx, "g1"); n != 0 {
		t.Fatalf("clear left %d entries", n)
	}
}

func TestRedisHistoryDrivesGameUndo(t *testing.T) {
	h, _ := newTestHistory(t, 0)
	ctx := context.Background()
	g := model.NewGame("g1", h)

	if _, _, err := g.Play(ctx, model.Square{Row: 5, Col: 2}, model.Square{Row: 4, Col: 3}); err != nil {
		t.Fatalf("Play: %v", err)
	}
	undone, frame, err := g.Undo(ctx)
	if err != nil || !undone {
		t.Fatalf("Undo: %v %v", undone, err)
	}
	if frame.CurrentPlayer != model.PlayerColorWhite || frame.Board.At(model.Square{Row: 5, Col: 2}) == nil {
		t.Fatalf("undo through redis did not rewind")
	}
}

func TestNewRedisClientRejectsBadURL(t *testing.T) {
	ctx := context.Background()
	if _, err := NewRedisClient(ctx, ""); err == nil {
		t.Fatalf("empty url accepted")
	}
	if _, err := NewRedisClient(ctx, "not-a-url"); err == nil {
		t.Fatalf("malformed url accepted")
	}
}

func TestNewResultRepositoryRequiresURL(t *testing.T) {
	if _, err := NewResultRepository("  "); err == nil {
		t.Fatalf("empty DATABASE_URL accepted")
	}
	var r *ResultRepository
	if err := r.SaveResult(context.Background(), GameResult{}); err != nil {
		t.Fatalf("nil repository should be a no-op: %v", err)
	}
}
