package regime

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/pivotlab/regime-core/internal/logger"
	"github.com/pivotlab/regime-core/internal/model"
)

const (
	_createRegimes = `CREATE TABLE IF NOT EXISTS regimes (
						ts timestamptz PRIMARY KEY,
						benchmark_close double precision,
						benchmark_sma double precision,
						volatility_close double precision,
						label text NOT NULL
					)`

	_upsertRegime = `INSERT INTO regimes (ts, benchmark_close, benchmark_sma, volatility_close, label)
					VALUES ($1, $2, $3, $4, $5)
					ON CONFLICT (ts)
					DO UPDATE SET
						benchmark_close = EXCLUDED.benchmark_close,
						benchmark_sma = EXCLUDED.benchmark_sma,
						volatility_close = EXCLUDED.volatility_close,
						label = EXCLUDED.label;`

	_queryRegimes = `SELECT ts, benchmark_close, benchmark_sma, volatility_close, label
					FROM regimes
					WHERE ts BETWEEN $1::timestamptz AND $2::timestamptz
					ORDER BY ts`
)

// Store persists classified days in postgres, one row per date. Upserts are
// idempotent and independent; concurrent overlapping runs converge with
// last-write-wins per date.
type Store struct {
	db     *sqlx.DB
	logger logger.Logger
}

func NewStore(db *sqlx.DB, logger logger.Logger) *Store {
	return &Store{
		db:     db,
		logger: logger,
	}
}

func (s *Store) InitSchema(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, _createRegimes); err != nil {
		return fmt.Errorf("%w: can't create regimes table", err)
	}
	return nil
}

func (s *Store) Upsert(ctx context.Context, rec model.RegimeRecord) error {
	_, err := s.db.ExecContext(ctx, _upsertRegime,
		rec.Ts, rec.BenchmarkClose, rec.BenchmarkSMA, rec.VolatilityClose, rec.Label)
	if err != nil {
		return fmt.Errorf("%w: can't upsert regime for %s", err, rec.Ts.Format(time.DateOnly))
	}
	return nil
}

func (s *Store) QueryRange(ctx context.Context, from, to time.Time) ([]model.RegimeRecord, error) {
	var records []model.RegimeRecord
	if err := s.db.SelectContext(ctx, &records, _queryRegimes, from, to); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("%w: can't query regimes", err)
	}
	return records, nil
}

// Persist writes records as a sequence of independent per-date upserts.
// A failed row is logged and skipped; partial completion is recoverable by
// re-running classification for the failed range.
func (s *Store) Persist(ctx context.Context, records []model.RegimeRecord) (int, error) {
	written := 0
	for _, rec := range records {
		if err := ctx.Err(); err != nil {
			return written, err
		}
		if err := s.Upsert(ctx, rec); err != nil {
			s.logger.Errorf("%s: skipping regime row", err)
			continue
		}
		written++
	}
	return written, nil
}
