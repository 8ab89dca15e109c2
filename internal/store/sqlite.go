package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"helmsman/internal/domain"

	_ "modernc.org/sqlite" // Pure-Go SQLite driver.
)

// Compile-time interface checks.
var _ StopStore = (*SQLiteStore)(nil)
var _ SignalStore = (*SQLiteStore)(nil)

// SQLiteStore implements StopStore and SignalStore backed by a SQLite
// database.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLiteStore opens (or creates) a SQLite database at dbPath, runs the
// schema migration, and returns a ready-to-use SQLiteStore.
func NewSQLiteStore(dbPath string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, err
	}

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrating schema: %w", err)
	}

	return &SQLiteStore{db: db}, nil
}

const schema = `
CREATE TABLE IF NOT EXISTS tracked_positions (
	symbol      TEXT PRIMARY KEY,
	entry_price REAL NOT NULL,
	stop_level  REAL NOT NULL,
	source      TEXT NOT NULL,
	opened_at   INTEGER NOT NULL
);

CREATE TABLE IF NOT EXISTS pending_signals (
	symbol     TEXT PRIMARY KEY,
	action     TEXT NOT NULL,
	price      REAL NOT NULL,
	stop_level REAL NOT NULL,
	source     TEXT NOT NULL,
	created_at INTEGER NOT NULL
);
`

// Close closes the underlying database connection.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// ---------------------------------------------------------------------------
// StopStore implementation
// ---------------------------------------------------------------------------

// SaveStop inserts or replaces the tracked position for its symbol.
func (s *SQLiteStore) SaveStop(ctx context.Context, pos domain.TrackedPosition) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT OR REPLACE INTO tracked_positions
			(symbol, entry_price, stop_level, source, opened_at)
		VALUES (?, ?, ?, ?, ?)`,
		pos.Symbol, pos.EntryPrice, pos.StopLevel, pos.Source, pos.OpenedAt.UnixMilli())
	return err
}

// DeleteStop removes the tracked position for a symbol.
func (s *SQLiteStore) DeleteStop(ctx context.Context, symbol string) error {
	_, err := s.db.ExecContext(ctx,
		`DELETE FROM tracked_positions WHERE symbol = ?`, symbol)
	return err
}

// ListStops returns all tracked positions ordered by symbol.
func (s *SQLiteStore) ListStops(ctx context.Context) ([]domain.TrackedPosition, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT symbol, entry_price, stop_level, source, opened_at
		FROM tracked_positions ORDER BY symbol`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.TrackedPosition
	for rows.Next() {
		var p domain.TrackedPosition
		var openedAt int64
		if err := rows.Scan(&p.Symbol, &p.EntryPrice, &p.StopLevel, &p.Source, &openedAt); err != nil {
			return nil, err
		}
		p.OpenedAt = time.UnixMilli(openedAt)
		out = append(out, p)
	}
	return out, rows.Err()
}

// ---------------------------------------------------------------------------
// SignalStore implementation
// ---------------------------------------------------------------------------

// SaveSignal inserts or replaces the pending signal for its symbol.
func (s *SQLiteStore) SaveSignal(ctx context.Context, sig domain.Signal) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT OR REPLACE INTO pending_signals
			(symbol, action, price, stop_level, source, created_at)
		VALUES (?, ?, ?, ?, ?, ?)`,
		sig.Symbol, string(sig.Action), sig.Price, sig.StopLevel, sig.Source,
		sig.CreatedAt.UnixMilli())
	return err
}

// DeleteSignal removes the pending signal for a symbol.
func (s *SQLiteStore) DeleteSignal(ctx context.Context, symbol string) error {
	_, err := s.db.ExecContext(ctx,
		`DELETE FROM pending_signals WHERE symbol = ?`, symbol)
	return err
}

// ListSignals returns all pending signals ordered by creation time.
func (s *SQLiteStore) ListSignals(ctx context.Context) ([]domain.Signal, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT symbol, action, price, stop_level, source, created_at
		FROM pending_signals ORDER BY created_at`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.Signal
	for rows.Next() {
		var sig domain.Signal
		var action string
		var createdAt int64
		if err := rows.Scan(&sig.Symbol, &action, &sig.Price, &sig.StopLevel, &sig.Source, &createdAt); err != nil {
			return nil, err
		}
		sig.Action = domain.SignalAction(action)
		sig.CreatedAt = time.UnixMilli(createdAt)
		out = append(out, sig)
	}
	return out, rows.Err()
}
