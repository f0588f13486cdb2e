// internal/storage/results/sqlite.go
package results

import (
	"context"
	"database/sql"
	"encoding/json"
	"strings"
	"time"

	"github.com/condorlabs/condor/internal/backtest"
	"github.com/condorlabs/condor/internal/core"

	_ "modernc.org/sqlite" // Pure-Go SQLite driver.
)

// Compile-time interface check.
var _ Store = (*SQLiteStore)(nil)

const resultsSchema = `
CREATE TABLE IF NOT EXISTS backtest_results (
	id             TEXT PRIMARY KEY,
	underlying     TEXT    NOT NULL,
	strategy       TEXT    NOT NULL,
	start_date     TEXT    NOT NULL,
	end_date       TEXT    NOT NULL,
	total_trades   INTEGER NOT NULL,
	winning_trades INTEGER NOT NULL,
	losing_trades  INTEGER NOT NULL,
	total_pl       REAL    NOT NULL,
	max_drawdown   REAL    NOT NULL,
	sharpe_ratio   REAL    NOT NULL,
	win_rate       REAL    NOT NULL,
	avg_win        REAL    NOT NULL,
	avg_loss       REAL    NOT NULL,
	created_at     TEXT    NOT NULL,
	trades         TEXT    NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_results_underlying_created
	ON backtest_results (underlying, created_at DESC);
`

// SQLiteStore persists backtest results in SQLite. The trade ledger is kept
// as a JSON column: it is read back whole or not at all, never queried into.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLiteStore opens (or creates) a SQLite database at dbPath and ensures
// the results schema exists.
func NewSQLiteStore(dbPath string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, core.WrapError(core.ErrStoreFailed, err)
	}
	if _, err := db.Exec(resultsSchema); err != nil {
		db.Close()
		return nil, core.WrapError(core.ErrStoreFailed, err)
	}
	return &SQLiteStore{db: db}, nil
}

// Close closes the underlying database connection.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// Save persists a finished run.
func (s *SQLiteStore) Save(ctx context.Context, result *backtest.Result) error {
	trades, err := json.Marshal(result.Trades)
	if err != nil {
		return core.WrapError(core.ErrStoreFailed, err)
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO backtest_results
			(id, underlying, strategy, start_date, end_date,
			 total_trades, winning_trades, losing_trades,
			 total_pl, max_drawdown, sharpe_ratio, win_rate, avg_win, avg_loss,
			 created_at, trades)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		result.ID, result.Underlying, string(result.Tier),
		result.StartDate.UTC().Format(time.RFC3339),
		result.EndDate.UTC().Format(time.RFC3339),
		result.TotalTrades, result.WinningTrades, result.LosingTrades,
		result.TotalPL, result.MaxDrawdown, result.SharpeRatio,
		result.WinRate, result.AvgWin, result.AvgLoss,
		result.CreatedAt.UTC().Format(time.RFC3339Nano),
		string(trades),
	)
	if err != nil {
		return core.WrapError(core.ErrStoreFailed, err)
	}
	return nil
}

// GetByID retrieves a result, trade ledger included.
func (s *SQLiteStore) GetByID(ctx context.Context, id string) (*backtest.Result, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, underlying, strategy, start_date, end_date,
		       total_trades, winning_trades, losing_trades,
		       total_pl, max_drawdown, sharpe_ratio, win_rate, avg_win, avg_loss,
		       created_at, trades
		FROM backtest_results WHERE id = ?`, id)

	result, trades, err := scanResult(row)
	if err == sql.ErrNoRows {
		return nil, core.ErrNotFound
	}
	if err != nil {
		return nil, core.WrapError(core.ErrStoreFailed, err)
	}
	if err := json.Unmarshal([]byte(trades), &result.Trades); err != nil {
		return nil, core.WrapError(core.ErrStoreFailed, err)
	}
	return result, nil
}

// List retrieves result summaries matching the filter, newest first. The
// trade ledger stays in the database.
func (s *SQLiteStore) List(ctx context.Context, filter ListFilter) ([]backtest.Result, error) {
	where, args := filter.clauses()
	query := `
		SELECT id, underlying, strategy, start_date, end_date,
		       total_trades, winning_trades, losing_trades,
		       total_pl, max_drawdown, sharpe_ratio, win_rate, avg_win, avg_loss,
		       created_at, '[]'
		FROM backtest_results` + where + ` ORDER BY created_at DESC`
	if filter.Limit > 0 {
		query += " LIMIT ?"
		args = append(args, filter.Limit)
		if filter.Offset > 0 {
			query += " OFFSET ?"
			args = append(args, filter.Offset)
		}
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, core.WrapError(core.ErrStoreFailed, err)
	}
	defer rows.Close()

	var out []backtest.Result
	for rows.Next() {
		result, _, err := scanResult(rows)
		if err != nil {
			return nil, core.WrapError(core.ErrStoreFailed, err)
		}
		result.Trades = nil
		out = append(out, *result)
	}
	if err := rows.Err(); err != nil {
		return nil, core.WrapError(core.ErrStoreFailed, err)
	}
	return out, nil
}

// Count returns the number of results matching the filter.
func (s *SQLiteStore) Count(ctx context.Context, filter ListFilter) (int, error) {
	where, args := filter.clauses()
	var n int
	err := s.db.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM backtest_results"+where, args...,
	).Scan(&n)
	if err != nil {
		return 0, core.WrapError(core.ErrStoreFailed, err)
	}
	return n, nil
}

func (f ListFilter) clauses() (string, []any) {
	var conds []string
	var args []any
	if f.Underlying != "" {
		conds = append(conds, "underlying = ?")
		args = append(args, f.Underlying)
	}
	if f.Tier != "" {
		conds = append(conds, "strategy = ?")
		args = append(args, string(f.Tier))
	}
	if !f.From.IsZero() {
		conds = append(conds, "created_at >= ?")
		args = append(args, f.From.UTC().Format(time.RFC3339Nano))
	}
	if !f.To.IsZero() {
		conds = append(conds, "created_at <= ?")
		args = append(args, f.To.UTC().Format(time.RFC3339Nano))
	}
	if len(conds) == 0 {
		return "", nil
	}
	return " WHERE " + strings.Join(conds, " AND "), args
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanResult(row rowScanner) (*backtest.Result, string, error) {
	var r backtest.Result
	var tier, startDate, endDate, createdAt, trades string
	err := row.Scan(
		&r.ID, &r.Underlying, &tier, &startDate, &endDate,
		&r.TotalTrades, &r.WinningTrades, &r.LosingTrades,
		&r.TotalPL, &r.MaxDrawdown, &r.SharpeRatio, &r.WinRate, &r.AvgWin, &r.AvgLoss,
		&createdAt, &trades,
	)
	if err != nil {
		return nil, "", err
	}
	r.Tier = core.Tier(tier)
	if r.StartDate, err = time.Parse(time.RFC3339, startDate); err != nil {
		return nil, "", err
	}
	if r.EndDate, err = time.Parse(time.RFC3339, endDate); err != nil {
		return nil, "", err
	}
	if r.CreatedAt, err = time.Parse(time.RFC3339Nano, createdAt); err != nil {
		return nil, "", err
	}
	return &r, trades, nil
}
