// Package signal holds the pending-signal queue: signals admitted for
// execution that have not yet been filled, cancelled, or rejected.
package signal

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"sync"
	"time"

	"helmsman/internal/domain"
	"helmsman/internal/store"
)

// Queue is the pending-signal queue, keyed by symbol: at most one pending
// signal per symbol at a time. The engine mutates it only between cycles;
// the mutex exists so HTTP handlers can admit signals and take snapshots
// concurrently.
type Queue struct {
	mu      sync.RWMutex
	pending map[string]domain.Signal
	store   store.SignalStore // may be nil (tests, ephemeral runs)
	log     *slog.Logger
}

// NewQueue creates a queue backed by the given store. A nil store keeps
// state in memory only.
func NewQueue(st store.SignalStore, log *slog.Logger) *Queue {
	return &Queue{
		pending: make(map[string]domain.Signal),
		store:   st,
		log:     log.With("component", "signal-queue"),
	}
}

// Load populates the queue from the store.
func (q *Queue) Load(ctx context.Context) error {
	if q.store == nil {
		return nil
	}
	sigs, err := q.store.ListSignals(ctx)
	if err != nil {
		return err
	}

	q.mu.Lock()
	defer q.mu.Unlock()
	for _, s := range sigs {
		q.pending[s.Symbol] = s
	}
	if len(sigs) > 0 {
		q.log.Info("pending signals restored", "count", len(sigs))
	}
	return nil
}

// Add validates and admits a signal, replacing any pending signal for the
// same symbol.
func (q *Queue) Add(ctx context.Context, sig domain.Signal) error {
	if err := validate(sig); err != nil {
		return err
	}
	if sig.CreatedAt.IsZero() {
		sig.CreatedAt = time.Now()
	}

	q.mu.Lock()
	q.pending[sig.Symbol] = sig
	q.mu.Unlock()

	if q.store != nil {
		if err := q.store.SaveSignal(ctx, sig); err != nil {
			q.log.Error("persisting signal", "symbol", sig.Symbol, "error", err)
		}
	}
	q.log.Info("signal admitted",
		"symbol", sig.Symbol, "action", sig.Action, "price", sig.Price,
		"stop", sig.StopLevel, "source", sig.Source)
	return nil
}

// Pending returns a copy of the pending map for a reconciliation cycle.
func (q *Queue) Pending() map[string]domain.Signal {
	q.mu.RLock()
	defer q.mu.RUnlock()

	out := make(map[string]domain.Signal, len(q.pending))
	for sym, s := range q.pending {
		out[sym] = s
	}
	return out
}

// Consume removes the given symbols from the queue, typically the symbols a
// reconciliation cycle reported as fully absorbed.
func (q *Queue) Consume(ctx context.Context, symbols []string) {
	for _, sym := range symbols {
		q.Remove(ctx, sym)
	}
}

// Remove drops the pending signal for a symbol.
func (q *Queue) Remove(ctx context.Context, symbol string) {
	q.mu.Lock()
	delete(q.pending, symbol)
	q.mu.Unlock()

	if q.store != nil {
		if err := q.store.DeleteSignal(ctx, symbol); err != nil {
			q.log.Error("deleting signal", "symbol", symbol, "error", err)
		}
	}
}

// Snapshot returns all pending signals sorted by symbol.
func (q *Queue) Snapshot() []domain.Signal {
	q.mu.RLock()
	defer q.mu.RUnlock()

	out := make([]domain.Signal, 0, len(q.pending))
	for _, s := range q.pending {
		out = append(out, s)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Symbol < out[j].Symbol })
	return out
}

// Len returns the number of pending signals.
func (q *Queue) Len() int {
	q.mu.RLock()
	defer q.mu.RUnlock()
	return len(q.pending)
}

func validate(sig domain.Signal) error {
	if sig.Symbol == "" {
		return fmt.Errorf("signal missing symbol")
	}
	if sig.Action != domain.SignalActionBuy && sig.Action != domain.SignalActionSell {
		return fmt.Errorf("signal %s: unknown action %q", sig.Symbol, sig.Action)
	}
	if sig.Price <= 0 {
		return fmt.Errorf("signal %s: price must be positive, got %v", sig.Symbol, sig.Price)
	}
	if sig.StopLevel <= 0 {
		return fmt.Errorf("signal %s: stop level must be positive, got %v", sig.Symbol, sig.StopLevel)
	}
	switch sig.Action {
	case domain.SignalActionBuy:
		if sig.StopLevel >= sig.Price {
			return fmt.Errorf("signal %s: buy stop %v must be below entry %v",
				sig.Symbol, sig.StopLevel, sig.Price)
		}
	case domain.SignalActionSell:
		if sig.StopLevel <= sig.Price {
			return fmt.Errorf("signal %s: sell stop %v must be above entry %v",
				sig.Symbol, sig.StopLevel, sig.Price)
		}
	}
	return nil
}
