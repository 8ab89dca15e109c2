package store

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"helmsman/internal/domain"
)

func newTestSQLite(t *testing.T) *SQLiteStore {
	t.Helper()
	s, err := NewSQLiteStore(filepath.Join(t.TempDir(), "helmsman.db"))
	if err != nil {
		t.Fatalf("NewSQLiteStore: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestSQLiteStopStore(t *testing.T) {
	s := newTestSQLite(t)
	ctx := context.Background()

	pos := domain.TrackedPosition{
		Symbol:     "NVDA",
		EntryPrice: 905.10,
		StopLevel:  870.00,
		Source:     "long_term",
		OpenedAt:   time.Date(2026, 3, 2, 14, 30, 0, 0, time.UTC),
	}
	if err := s.SaveStop(ctx, pos); err != nil {
		t.Fatalf("SaveStop: %v", err)
	}

	stops, err := s.ListStops(ctx)
	if err != nil {
		t.Fatalf("ListStops: %v", err)
	}
	if len(stops) != 1 {
		t.Fatalf("ListStops returned %d rows, want 1", len(stops))
	}
	got := stops[0]
	if got.Symbol != "NVDA" || got.EntryPrice != 905.10 || got.StopLevel != 870.00 {
		t.Errorf("round-trip mismatch: %+v", got)
	}
	if !got.OpenedAt.Equal(pos.OpenedAt) {
		t.Errorf("OpenedAt = %v, want %v", got.OpenedAt, pos.OpenedAt)
	}

	// Save for the same symbol overwrites.
	pos.StopLevel = 880.00
	if err := s.SaveStop(ctx, pos); err != nil {
		t.Fatalf("SaveStop overwrite: %v", err)
	}
	stops, _ = s.ListStops(ctx)
	if len(stops) != 1 || stops[0].StopLevel != 880.00 {
		t.Errorf("overwrite failed: %+v", stops)
	}

	if err := s.DeleteStop(ctx, "NVDA"); err != nil {
		t.Fatalf("DeleteStop: %v", err)
	}
	stops, _ = s.ListStops(ctx)
	if len(stops) != 0 {
		t.Errorf("ListStops after delete returned %d rows, want 0", len(stops))
	}
}

func TestSQLiteSignalStore(t *testing.T) {
	s := newTestSQLite(t)
	ctx := context.Background()

	sigs := []domain.Signal{
		{Symbol: "AAPL", Action: domain.SignalActionBuy, Price: 187.20, StopLevel: 182.50,
			Source: "long_term", CreatedAt: time.Date(2026, 3, 2, 14, 0, 0, 0, time.UTC)},
		{Symbol: "TSLA", Action: domain.SignalActionBuy, Price: 244.80, StopLevel: 241.00,
			Source: "short_term", CreatedAt: time.Date(2026, 3, 2, 14, 5, 0, 0, time.UTC)},
	}
	for _, sig := range sigs {
		if err := s.SaveSignal(ctx, sig); err != nil {
			t.Fatalf("SaveSignal(%s): %v", sig.Symbol, err)
		}
	}

	got, err := s.ListSignals(ctx)
	if err != nil {
		t.Fatalf("ListSignals: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("ListSignals returned %d rows, want 2", len(got))
	}
	// Ordered by created_at.
	if got[0].Symbol != "AAPL" || got[1].Symbol != "TSLA" {
		t.Errorf("unexpected order: %s, %s", got[0].Symbol, got[1].Symbol)
	}
	if got[1].Action != domain.SignalActionBuy || got[1].Source != "short_term" {
		t.Errorf("round-trip mismatch: %+v", got[1])
	}

	if err := s.DeleteSignal(ctx, "AAPL"); err != nil {
		t.Fatalf("DeleteSignal: %v", err)
	}
	got, _ = s.ListSignals(ctx)
	if len(got) != 1 || got[0].Symbol != "TSLA" {
		t.Errorf("after delete want only TSLA, got %+v", got)
	}
}

func TestParquetJournalAppendRead(t *testing.T) {
	j := NewParquetJournal(t.TempDir())
	ctx := context.Background()

	day := time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)
	first := []JournalEvent{
		{
			Time:   day.Add(14*time.Hour + 31*time.Minute),
			Type:   JournalFill,
			Symbol: "AAPL",
			Side:   domain.OrderSideBuy,
			Qty:    124,
			Price:  187.35,
			Stop:   182.50,
			Source: "long_term",
		},
	}
	if err := j.Append(ctx, first); err != nil {
		t.Fatalf("Append: %v", err)
	}

	// A second append on the same day must preserve earlier rows.
	second := []JournalEvent{
		{
			Time:   day.Add(19 * time.Hour),
			Type:   JournalLiquidation,
			Symbol: "AAPL",
			Side:   domain.OrderSideSell,
			Qty:    124,
			Price:  182.40,
			Stop:   182.50,
			Source: "long_term",
			Note:   "stop breach",
		},
	}
	if err := j.Append(ctx, second); err != nil {
		t.Fatalf("second Append: %v", err)
	}

	events, err := j.ReadDay(ctx, day)
	if err != nil {
		t.Fatalf("ReadDay: %v", err)
	}
	if len(events) != 2 {
		t.Fatalf("ReadDay returned %d events, want 2", len(events))
	}
	if events[0].Type != JournalFill || events[1].Type != JournalLiquidation {
		t.Errorf("events out of order: %s, %s", events[0].Type, events[1].Type)
	}
	if events[1].Note != "stop breach" {
		t.Errorf("Note = %q, want %q", events[1].Note, "stop breach")
	}

	// Reading an empty day is not an error.
	empty, err := j.ReadDay(ctx, day.AddDate(0, 0, 1))
	if err != nil {
		t.Fatalf("ReadDay empty: %v", err)
	}
	if len(empty) != 0 {
		t.Errorf("empty day returned %d events", len(empty))
	}
}

func TestParquetJournalPath(t *testing.T) {
	j := NewParquetJournal("/data")
	want := filepath.Join("/data", "journal", "2026-03-02.parquet")
	if got := j.dayPath("2026-03-02"); got != want {
		t.Errorf("dayPath = %s, want %s", got, want)
	}
}
