package engine

import (
	"context"
	"log/slog"
	"sort"
	"sync"

	"helmsman/internal/domain"
	"helmsman/internal/store"
)

// StopTracker is the authoritative internal record of entry price and stop
// level for every position this engine opened. The broker does not persist
// strategy-defined stops, so the tracker writes through to a StopStore and
// reloads it at startup.
//
// All mutation happens from within a reconciliation cycle on a single
// goroutine; the mutex exists so dashboards can take read-only snapshots
// concurrently.
type StopTracker struct {
	mu        sync.RWMutex
	positions map[string]domain.TrackedPosition
	store     store.StopStore // may be nil (tests, ephemeral runs)
	log       *slog.Logger
}

// NewStopTracker creates a tracker backed by the given store. A nil store
// keeps state in memory only.
func NewStopTracker(st store.StopStore, log *slog.Logger) *StopTracker {
	return &StopTracker{
		positions: make(map[string]domain.TrackedPosition),
		store:     st,
		log:       log.With("component", "stop-tracker"),
	}
}

// Load populates the tracker from the store.
func (t *StopTracker) Load(ctx context.Context) error {
	if t.store == nil {
		return nil
	}
	stops, err := t.store.ListStops(ctx)
	if err != nil {
		return err
	}

	t.mu.Lock()
	defer t.mu.Unlock()
	for _, p := range stops {
		t.positions[p.Symbol] = p
	}
	if len(stops) > 0 {
		t.log.Info("tracked positions restored", "count", len(stops))
	}
	return nil
}

// Record stores the tracked position for its symbol, overwriting any prior
// entry. A re-fill recalculates the stop from the new fill price; it never
// averages with the old one.
func (t *StopTracker) Record(ctx context.Context, pos domain.TrackedPosition) {
	t.mu.Lock()
	t.positions[pos.Symbol] = pos
	t.mu.Unlock()

	if t.store != nil {
		if err := t.store.SaveStop(ctx, pos); err != nil {
			t.log.Error("persisting tracked position", "symbol", pos.Symbol, "error", err)
		}
	}
}

// Get returns the tracked position for a symbol.
func (t *StopTracker) Get(symbol string) (domain.TrackedPosition, bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	pos, ok := t.positions[symbol]
	return pos, ok
}

// Remove drops the tracked position for a symbol.
func (t *StopTracker) Remove(ctx context.Context, symbol string) {
	t.mu.Lock()
	delete(t.positions, symbol)
	t.mu.Unlock()

	if t.store != nil {
		if err := t.store.DeleteStop(ctx, symbol); err != nil {
			t.log.Error("deleting tracked position", "symbol", symbol, "error", err)
		}
	}
}

// All returns a copy of every tracked position, sorted by symbol.
func (t *StopTracker) All() []domain.TrackedPosition {
	t.mu.RLock()
	defer t.mu.RUnlock()

	out := make([]domain.TrackedPosition, 0, len(t.positions))
	for _, p := range t.positions {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Symbol < out[j].Symbol })
	return out
}

// Snapshot is All under its read-facing name: dashboards must never hold a
// live reference to tracker state.
func (t *StopTracker) Snapshot() []domain.TrackedPosition {
	return t.All()
}

// Len returns the number of tracked positions.
func (t *StopTracker) Len() int {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return len(t.positions)
}
