package model

import (
	"context"
	"testing"
)

func TestSnapshotIsIndependent(t *testing.T) {
	s := NewGameState()
	snap := s.Snapshot()
	if _, err := s.Play(Square{5, 2}, Square{4, 1}); err != nil {
		t.Fatalf("Play: %v", err)
	}
	if snap.Board.At(Square{5, 2}) == nil || snap.CurrentPlayer != PlayerColorWhite {
		t.Fatalf("snapshot followed the live game")
	}

	s.Restore(snap)
	if s.Board.At(Square{4, 1}) != nil || s.CurrentPlayer != PlayerColorWhite {
		t.Fatalf("restore did not rewind: %+v", s)
	}
	s.Board.At(Square{5, 2}).King = true
	if snap.Board.At(Square{5, 2}).King {
		t.Fatalf("restored board shares pieces with the snapshot")
	}
}

func TestRestoreMidChainReselects(t *testing.T) {
	s := promotionChain()
	if _, err := s.Play(Square{2, 1}, Square{0, 3}); err != nil {
		t.Fatalf("Play: %v", err)
	}
	snap := s.Snapshot()
	if snap.ChainPiece == nil || *snap.ChainPiece != (Square{0, 3}) {
		t.Fatalf("snapshot lost the chain piece: %+v", snap)
	}

	if _, err := s.Play(Square{0, 3}, Square{2, 5}); err != nil {
		t.Fatalf("Play: %v", err)
	}
	s.Restore(snap)
	if !s.InChainCapture || s.Selection == nil || *s.Selection != (Square{0, 3}) || len(s.LegalMoves) != 3 {
		t.Fatalf("chain not restored: %+v", s)
	}
}

func TestMemoryHistory(t *testing.T) {
	ctx := context.Background()
	h := NewMemoryHistory(2)

	if _, ok, err := h.Pop(ctx, "g"); ok || err != nil {
		t.Fatalf("empty pop: %v %v", ok, err)
	}
	for _, p := range []PlayerColor{PlayerColorWhite, PlayerColorBlack, PlayerColorWhite} {
		if err := h.Push(ctx, "g", Snapshot{CurrentPlayer: p, Tally: CaptureTally{White: 1}}); err != nil {
			t.Fatalf("Push: %v", err)
		}
	}
	if n, _ := h.Len(ctx, "g"); n != 2 {
		t.Fatalf("limit not applied, len=%d", n)
	}
	snap, ok, _ := h.Pop(ctx, "g")
	if !ok || snap.CurrentPlayer != PlayerColorWhite {
		t.Fatalf("expected newest snapshot, got %+v", snap)
	}
	if n, _ := h.Len(ctx, "other"); n != 0 {
		t.Fatalf("games share a stack")
	}
	if err := h.Clear(ctx, "g"); err != nil {
		t.Fatalf("Clear: %v", err)
	}
	if n, _ := h.Len(ctx, "g"); n != 0 {
		t.Fatalf("clear left %d snapshots", n)
	}
}
