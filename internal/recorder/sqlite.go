package recorder

import (
	"context"
	"database/sql"
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog"
	_ "modernc.org/sqlite"

	"SignalSentinel/internal/model"
)

// SQLiteRecorder archives candles in a SQLite database. It doubles as an
// offline candle source.
type SQLiteRecorder struct {
	db     *sql.DB
	mu     sync.Mutex
	logger zerolog.Logger
}

// NewSQLiteRecorder opens (or creates) the SQLite database and runs migrations.
func NewSQLiteRecorder(dbPath string, logger zerolog.Logger) (*SQLiteRecorder, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}

	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("set WAL mode: %w", err)
	}

	r := &SQLiteRecorder{db: db, logger: logger.With().Str("component", "recorder").Logger()}
	if err := r.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}

	r.logger.Info().Str("path", dbPath).Msg("sqlite recorder opened")
	return r, nil
}

func (r *SQLiteRecorder) migrate() error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS candles (
			symbol     TEXT    NOT NULL,
			interval   TEXT    NOT NULL,
			open_time  INTEGER NOT NULL,
			open       REAL,
			high       REAL,
			low        REAL,
			close      REAL,
			volume     REAL,
			fetched_at INTEGER NOT NULL,
			PRIMARY KEY (symbol, interval, open_time)
		)`,
		`CREATE INDEX IF NOT EXISTS idx_candles_fetched ON candles(fetched_at)`,
	}

	for _, s := range stmts {
		if _, err := r.db.Exec(s); err != nil {
			return fmt.Errorf("exec %q: %w", s[:40], err)
		}
	}
	return nil
}

// RecordCandles upserts candles keyed by symbol, interval and open time. The
// newest candle may still have been forming on an earlier fetch, so existing
// rows are overwritten.
func (r *SQLiteRecorder) RecordCandles(symbol, interval string, candles []model.Candle) error {
	if len(candles) == 0 {
		return nil
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	tx, err := r.db.Begin()
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.Prepare(`INSERT INTO candles
		(symbol, interval, open_time, open, high, low, close, volume, fetched_at)
		VALUES (?,?,?,?,?,?,?,?,?)
		ON CONFLICT(symbol, interval, open_time) DO UPDATE SET
			open = excluded.open,
			high = excluded.high,
			low = excluded.low,
			close = excluded.close,
			volume = excluded.volume,
			fetched_at = excluded.fetched_at`)
	if err != nil {
		return fmt.Errorf("prepare: %w", err)
	}
	defer stmt.Close()

	now := time.Now().Unix()
	for _, c := range candles {
		if _, err := stmt.Exec(symbol, interval, c.Time.UnixMilli(),
			c.Open, c.High, c.Low, c.Close, c.Volume, now); err != nil {
			return fmt.Errorf("insert candle %s: %w", c.Time.Format(time.RFC3339), err)
		}
	}
	return tx.Commit()
}

func (r *SQLiteRecorder) Name() string { return "sqlite" }

// FetchCandles returns the newest limit archived candles, oldest first.
func (r *SQLiteRecorder) FetchCandles(ctx context.Context, symbol, interval string, limit int) ([]model.Candle, error) {
	if limit <= 0 {
		limit = model.DefaultWindow
	}
	rows, err := r.db.QueryContext(ctx, `SELECT open_time, open, high, low, close, volume
		FROM (
			SELECT * FROM candles
			WHERE symbol = ? AND interval = ?
			ORDER BY open_time DESC
			LIMIT ?
		)
		ORDER BY open_time ASC`, symbol, interval, limit)
	if err != nil {
		return nil, fmt.Errorf("query candles: %w", err)
	}
	defer rows.Close()

	var candles []model.Candle
	for rows.Next() {
		var (
			c    model.Candle
			open int64
		)
		if err := rows.Scan(&open, &c.Open, &c.High, &c.Low, &c.Close, &c.Volume); err != nil {
			return nil, fmt.Errorf("scan candle: %w", err)
		}
		c.Time = time.UnixMilli(open).UTC()
		candles = append(candles, c)
	}
	return candles, rows.Err()
}

func (r *SQLiteRecorder) Close() error {
	r.logger.Info().Msg("closing sqlite recorder")
	return r.db.Close()
}
