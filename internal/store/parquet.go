package store

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/parquet-go/parquet-go"

	"helmsman/internal/domain"
)

// Compile-time interface check.
var _ Journal = (*ParquetJournal)(nil)

// ParquetJournal implements Journal using one Parquet file per day on disk.
type ParquetJournal struct {
	DataDir string
}

// NewParquetJournal creates a journal rooted at the given data directory.
func NewParquetJournal(dataDir string) *ParquetJournal {
	return &ParquetJournal{DataDir: dataDir}
}

// ---------------------------------------------------------------------------
// Parquet record type (on-disk schema)
// ---------------------------------------------------------------------------

// EventRecord is the Parquet schema for journal events.
type EventRecord struct {
	Timestamp int64   `parquet:"timestamp,timestamp(millisecond)"` // Unix ms
	Type      string  `parquet:"type"`
	Symbol    string  `parquet:"symbol"`
	Side      string  `parquet:"side"`
	Qty       float64 `parquet:"qty"`
	Price     float64 `parquet:"price"`
	Stop      float64 `parquet:"stop"`
	Source    string  `parquet:"source"`
	Note      string  `parquet:"note"`
}

// ---------------------------------------------------------------------------
// Journal implementation
// ---------------------------------------------------------------------------

// Append writes events to their day files. Parquet files are immutable, so a
// day file is read back, merged, and rewritten; event volume is a handful of
// rows per cycle at most.
func (j *ParquetJournal) Append(_ context.Context, events []JournalEvent) error {
	if len(events) == 0 {
		return nil
	}

	groups := make(map[string][]EventRecord)
	for _, e := range events {
		day := e.Time.UTC().Format("2006-01-02")
		groups[day] = append(groups[day], EventRecord{
			Timestamp: e.Time.UnixMilli(),
			Type:      string(e.Type),
			Symbol:    e.Symbol,
			Side:      string(e.Side),
			Qty:       e.Qty,
			Price:     e.Price,
			Stop:      e.Stop,
			Source:    e.Source,
			Note:      e.Note,
		})
	}

	for day, records := range groups {
		path := j.dayPath(day)

		existing, _ := readParquetFile[EventRecord](path)
		merged := append(existing, records...)
		sort.Slice(merged, func(i, k int) bool {
			return merged[i].Timestamp < merged[k].Timestamp
		})

		if err := writeParquetFile(path, merged); err != nil {
			return fmt.Errorf("writing journal for %s: %w", day, err)
		}
	}
	return nil
}

// ReadDay returns all events journaled on the given day, in time order.
func (j *ParquetJournal) ReadDay(_ context.Context, day time.Time) ([]JournalEvent, error) {
	path := j.dayPath(day.UTC().Format("2006-01-02"))

	records, err := readParquetFile[EventRecord](path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}

	events := make([]JournalEvent, 0, len(records))
	for _, r := range records {
		events = append(events, JournalEvent{
			Time:   time.UnixMilli(r.Timestamp),
			Type:   JournalEventType(r.Type),
			Symbol: r.Symbol,
			Side:   domain.OrderSide(r.Side),
			Qty:    r.Qty,
			Price:  r.Price,
			Stop:   r.Stop,
			Source: r.Source,
			Note:   r.Note,
		})
	}
	return events, nil
}

// dayPath returns the filesystem path for a day's journal file.
// Layout: <dataDir>/journal/<YYYY-MM-DD>.parquet
func (j *ParquetJournal) dayPath(day string) string {
	return filepath.Join(j.DataDir, "journal", day+".parquet")
}

// ---------------------------------------------------------------------------
// Parquet file helpers
// ---------------------------------------------------------------------------

func writeParquetFile[T any](path string, records []T) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	return parquet.WriteFile(path, records)
}

func readParquetFile[T any](path string) ([]T, error) {
	rows, err := parquet.ReadFile[T](path)
	if err != nil {
		return nil, err
	}
	return rows, nil
}
