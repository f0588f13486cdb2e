package history

import (
	"context"
	"database/sql"
	"time"

	"github.com/condorlabs/condor/internal/core"

	_ "modernc.org/sqlite" // Pure-Go SQLite driver.
)

// Compile-time interface check.
var _ Provider = (*SQLiteStore)(nil)

const barsSchema = `
CREATE TABLE IF NOT EXISTS historical_data (
	underlying TEXT    NOT NULL,
	date       TEXT    NOT NULL,
	open       REAL    NOT NULL,
	high       REAL    NOT NULL,
	low        REAL    NOT NULL,
	close      REAL    NOT NULL,
	volume     INTEGER NOT NULL,
	UNIQUE (underlying, date)
);
CREATE INDEX IF NOT EXISTS idx_historical_underlying_date
	ON historical_data (underlying, date);
`

// SQLiteStore persists daily bars in a SQLite database. It satisfies
// Provider for reads and adds write methods used by the seeder and the
// ingestion path.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLiteStore opens (or creates) a SQLite database at dbPath and ensures
// the bar schema exists.
func NewSQLiteStore(dbPath string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, core.WrapError(core.ErrStoreFailed, err)
	}
	if _, err := db.Exec(barsSchema); err != nil {
		db.Close()
		return nil, core.WrapError(core.ErrStoreFailed, err)
	}
	return &SQLiteStore{db: db}, nil
}

// Close closes the underlying database connection.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// Load returns the bars for an underlying within [start, end], ordered by
// date ascending. An underlying with no rows in range yields an empty slice,
// not an error.
func (s *SQLiteStore) Load(ctx context.Context, underlying string, start, end time.Time) ([]core.Bar, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT date, open, high, low, close, volume
		FROM historical_data
		WHERE underlying = ? AND date >= ? AND date <= ?
		ORDER BY date ASC`,
		underlying, start.Format(dateLayout), end.Format(dateLayout),
	)
	if err != nil {
		return nil, core.WrapError(core.ErrStoreFailed, err)
	}
	defer rows.Close()

	var bars []core.Bar
	for rows.Next() {
		var b core.Bar
		var date string
		if err := rows.Scan(&date, &b.Open, &b.High, &b.Low, &b.Close, &b.Volume); err != nil {
			return nil, core.WrapError(core.ErrStoreFailed, err)
		}
		b.Date, err = time.ParseInLocation(dateLayout, date, time.UTC)
		if err != nil {
			return nil, core.WrapError(core.ErrStoreFailed, err)
		}
		bars = append(bars, b)
	}
	if err := rows.Err(); err != nil {
		return nil, core.WrapError(core.ErrStoreFailed, err)
	}
	return bars, nil
}

// SaveBars inserts bars for an underlying inside a single transaction.
// Conflicting (underlying, date) rows are replaced so re-ingesting a range
// is idempotent.
func (s *SQLiteStore) SaveBars(ctx context.Context, underlying string, bars []core.Bar) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return core.WrapError(core.ErrStoreFailed, err)
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx, `
		INSERT OR REPLACE INTO historical_data
			(underlying, date, open, high, low, close, volume)
		VALUES (?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return core.WrapError(core.ErrStoreFailed, err)
	}
	defer stmt.Close()

	for _, b := range bars {
		if _, err := stmt.ExecContext(ctx,
			underlying, b.Date.Format(dateLayout),
			b.Open, b.High, b.Low, b.Close, b.Volume,
		); err != nil {
			return core.WrapError(core.ErrStoreFailed, err)
		}
	}
	if err := tx.Commit(); err != nil {
		return core.WrapError(core.ErrStoreFailed, err)
	}
	return nil
}

// ReplaceBars drops every stored bar for an underlying and writes the given
// series in its place.
func (s *SQLiteStore) ReplaceBars(ctx context.Context, underlying string, bars []core.Bar) error {
	if _, err := s.db.ExecContext(ctx,
		`DELETE FROM historical_data WHERE underlying = ?`, underlying,
	); err != nil {
		return core.WrapError(core.ErrStoreFailed, err)
	}
	return s.SaveBars(ctx, underlying, bars)
}

// Count returns the number of stored bars for an underlying.
func (s *SQLiteStore) Count(ctx context.Context, underlying string) (int, error) {
	var n int
	err := s.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM historical_data WHERE underlying = ?`, underlying,
	).Scan(&n)
	if err != nil {
		return 0, core.WrapError(core.ErrStoreFailed, err)
	}
	return n, nil
}

// Underlyings lists the distinct underlyings with stored bars.
func (s *SQLiteStore) Underlyings(ctx context.Context) ([]string, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT DISTINCT underlying FROM historical_data ORDER BY underlying`)
	if err != nil {
		return nil, core.WrapError(core.ErrStoreFailed, err)
	}
	defer rows.Close()

	var names []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, core.WrapError(core.ErrStoreFailed, err)
		}
		names = append(names, name)
	}
	return names, rows.Err()
}

const dateLayout = "2006-01-02"
