package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/mattn/go-sqlite3"
)

// SQLiteStore implements RunStore using SQLite.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLiteStore creates a new SQLite-based run store.
func NewSQLiteStore(dbPath string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite3", dbPath+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	db.SetMaxOpenConns(4)
	db.SetMaxIdleConns(2)
	db.SetConnMaxLifetime(time.Hour)

	s := &SQLiteStore{db: db}
	if err := s.initSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}
	return s, nil
}

func (s *SQLiteStore) initSchema() error {
	schema := `
	CREATE TABLE IF NOT EXISTS runs (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		timestamp DATETIME NOT NULL,
		family TEXT NOT NULL,
		kind TEXT NOT NULL,
		style TEXT NOT NULL,
		spot REAL NOT NULL,
		strike REAL NOT NULL,
		strike2 REAL,
		rate REAL NOT NULL,
		volatility REAL NOT NULL,
		maturity REAL NOT NULL,
		dividend_yield REAL NOT NULL,
		steps INTEGER NOT NULL,
		price REAL NOT NULL,
		delta REAL,
		gamma REAL,
		theta REAL,
		vega REAL,
		rho REAL,
		created_at DATETIME DEFAULT CURRENT_TIMESTAMP
	);
	CREATE INDEX IF NOT EXISTS idx_runs_timestamp ON runs(timestamp DESC);
	`
	_, err := s.db.Exec(schema)
	return err
}

// SaveRun records one pricing run.
func (s *SQLiteStore) SaveRun(ctx context.Context, run *Run) error {
	res, err := s.db.ExecContext(ctx, `
		INSERT INTO runs (timestamp, family, kind, style, spot, strike, strike2,
			rate, volatility, maturity, dividend_yield, steps, price,
			delta, gamma, theta, vega, rho)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		run.Timestamp, run.Family, run.Kind, run.Style,
		run.Spot, run.Strike, run.Strike2,
		run.Rate, run.Volatility, run.Maturity, run.DividendYield,
		run.Steps, run.Price,
		run.Delta, run.Gamma, run.Theta, run.Vega, run.Rho)
	if err != nil {
		return fmt.Errorf("failed to save run: %w", err)
	}
	if id, err := res.LastInsertId(); err == nil {
		run.ID = id
	}
	return nil
}

// ListRuns returns the most recent runs, newest first.
func (s *SQLiteStore) ListRuns(ctx context.Context, limit int) ([]Run, error) {
	if limit <= 0 {
		limit = 20
	}
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, timestamp, family, kind, style, spot, strike, strike2,
			rate, volatility, maturity, dividend_yield, steps, price,
			delta, gamma, theta, vega, rho
		FROM runs ORDER BY timestamp DESC, id DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query runs: %w", err)
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		var r Run
		if err := rows.Scan(&r.ID, &r.Timestamp, &r.Family, &r.Kind, &r.Style,
			&r.Spot, &r.Strike, &r.Strike2,
			&r.Rate, &r.Volatility, &r.Maturity, &r.DividendYield,
			&r.Steps, &r.Price,
			&r.Delta, &r.Gamma, &r.Theta, &r.Vega, &r.Rho); err != nil {
			return nil, fmt.Errorf("failed to scan run: %w", err)
		}
		runs = append(runs, r)
	}
	return runs, rows.Err()
}

// Close closes the underlying database.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}
