// Package postgres persists oracle samples to Postgres.
package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"perpmirror/internal/storage"
)

// Store provides Postgres persistence for oracle samples.
type Store struct {
	pool *pgxpool.Pool
}

func NewStore(ctx context.Context, dsn string) (*Store, error) {
	if dsn == "" {
		return nil, fmt.Errorf("pg dsn is required")
	}
	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		return nil, err
	}
	return &Store{pool: pool}, nil
}

func (s *Store) Close() {
	if s.pool != nil {
		s.pool.Close()
	}
}

// PutSampleBatch inserts a batch of samples. A feed publishes at most one
// sample per slot, so duplicates on (feed, slot) are dropped.
func (s *Store) PutSampleBatch(ctx context.Context, samples []storage.PriceSample) error {
	if len(samples) == 0 {
		return nil
	}
	batch := &pgx.Batch{}
	for _, sample := range samples {
		batch.Queue(`
			INSERT INTO oracle_samples (
				feed, price, confidence, twap, twap_confidence, slot, sufficient, recorded_at
			) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
			ON CONFLICT (feed, slot) DO NOTHING
		`,
			sample.Feed,
			sample.Price.String(),
			sample.Confidence.String(),
			sample.Twap.String(),
			sample.TwapConfidence.String(),
			int64(sample.Slot),
			sample.Sufficient,
			sample.RecordedAt,
		)
	}

	br := s.pool.SendBatch(ctx, batch)
	defer br.Close()

	for range samples {
		if _, err := br.Exec(); err != nil {
			return err
		}
	}
	return nil
}
