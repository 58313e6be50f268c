package model

import (
	"context"
	"sync"
)

// HistoryStore keeps the undo stack of every game, newest snapshot on top.
type HistoryStore interface {
	Push(ctx context.Context, gameID string, snap Snapshot) error
	// Pop removes and returns the newest snapshot; ok is false when empty.
	Pop(ctx context.Context, gameID string) (snap Snapshot, ok bool, err error)
	Len(ctx context.Context, gameID string) (int, error)
	Clear(ctx context.Context, gameID string) error
}

// MemoryHistory is the in-process HistoryStore. A positive limit bounds
// each stack; the oldest snapshots are dropped first.
type MemoryHistory struct {
	mu     sync.Mutex
	limit  int
	stacks map[string][]Snapshot
}

func NewMemoryHistory(limit int) *MemoryHistory {
	return &MemoryHistory{
		limit:  limit,
		stacks: make(map[string][]Snapshot),
	}
}

func (h *MemoryHistory) Push(ctx context.Context, gameID string, snap Snapshot) error {
	h.mu.Lock()
	defer h.mu.Unlock()

	stack := append(h.stacks[gameID], snap)
	if h.limit > 0 && len(stack) > h.limit {
		stack = append([]Snapshot(nil), stack[len(stack)-h.limit:]...)
	}
	h.stacks[gameID] = stack
	return nil
}

func (h *MemoryHistory) Pop(ctx context.Context, gameID string) (Snapshot, bool, error) {
	h.mu.Lock()
	defer h.mu.Unlock()

	stack := h.stacks[gameID]
	if len(stack) == 0 {
		return Snapshot{}, false, nil
	}
	snap := stack[len(stack)-1]
	h.stacks[gameID] = stack[:len(stack)-1]
	return snap, true, nil
}

func (h *MemoryHistory) Len(ctx context.Context, gameID string) (int, error) {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.stacks[gameID]), nil
}

func (h *MemoryHistory) Clear(ctx context.Context, gameID string) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	delete(h.stacks, gameID)
	return nil
}
