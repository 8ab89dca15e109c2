// Package store defines storage interfaces for the engine's durable state:
// tracked stop levels, the pending-signal queue, and the fill journal.
package store

import (
	"context"
	"time"

	"helmsman/internal/domain"
)

// StopStore persists tracked positions so internal stop levels survive a
// process restart. The broker does not hold strategy-defined stops, so this
// store is the only durable copy.
type StopStore interface {
	// SaveStop inserts or replaces the tracked position for its symbol.
	SaveStop(ctx context.Context, pos domain.TrackedPosition) error

	// DeleteStop removes the tracked position for a symbol.
	DeleteStop(ctx context.Context, symbol string) error

	// ListStops returns all tracked positions.
	ListStops(ctx context.Context) ([]domain.TrackedPosition, error)
}

// SignalStore persists the pending-signal queue across restarts.
type SignalStore interface {
	// SaveSignal inserts or replaces the pending signal for its symbol.
	SaveSignal(ctx context.Context, sig domain.Signal) error

	// DeleteSignal removes the pending signal for a symbol.
	DeleteSignal(ctx context.Context, symbol string) error

	// ListSignals returns all pending signals.
	ListSignals(ctx context.Context) ([]domain.Signal, error)
}

// ---------------------------------------------------------------------------
// Journal
// ---------------------------------------------------------------------------

// JournalEventType classifies journal entries.
type JournalEventType string

const (
	JournalEntryPlaced  JournalEventType = "entry_placed"
	JournalFill         JournalEventType = "fill"
	JournalCancel       JournalEventType = "cancel"
	JournalLiquidation  JournalEventType = "liquidation"
	JournalCloseReadmit JournalEventType = "close_readmitted"
	JournalPositionGone JournalEventType = "position_gone"
)

// JournalEvent is one row of the execution journal.
type JournalEvent struct {
	Time   time.Time
	Type   JournalEventType
	Symbol string
	Side   domain.OrderSide
	Qty    float64
	Price  float64
	Stop   float64
	Source string
	Note   string
}

// Journal records execution events for offline analysis. Implementations
// must tolerate being nil-checked by callers; journaling failures never
// affect the trading cycle.
type Journal interface {
	// Append writes events to the journal.
	Append(ctx context.Context, events []JournalEvent) error

	// ReadDay returns all events journaled on the given day.
	ReadDay(ctx context.Context, day time.Time) ([]JournalEvent, error)
}
