package store

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/wonny/signalcheck/internal/contracts"
)

// ResultRepository persists walk-forward evaluation records.
// ⭐ SSOT: 평가 결과 저장소는 여기서만
type ResultRepository struct {
	pool *pgxpool.Pool
}

// NewResultRepository creates a new result repository
func NewResultRepository(pool *pgxpool.Pool) *ResultRepository {
	return &ResultRepository{pool: pool}
}

// SaveReport stores every record of a report in one batch. Metrics travel
// as JSONB keyed by strategy name.
func (r *ResultRepository) SaveReport(ctx context.Context, report *contracts.Report) error {
	if len(report.Records) == 0 {
		return nil
	}

	batch := &pgx.Batch{}
	query := `
		INSERT INTO eval.results
			(base_date, period_index, train_start, train_end, test_start, test_end,
			 metrics, failed, error)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		ON CONFLICT (base_date, period_index)
		DO UPDATE SET
			train_start = EXCLUDED.train_start,
			train_end   = EXCLUDED.train_end,
			test_start  = EXCLUDED.test_start,
			test_end    = EXCLUDED.test_end,
			metrics     = EXCLUDED.metrics,
			failed      = EXCLUDED.failed,
			error       = EXCLUDED.error
	`
	for _, rec := range report.Records {
		batch.Queue(query,
			rec.BaseDate, rec.PeriodIndex,
			rec.TrainStart, rec.TrainEnd, rec.TestStart, rec.TestEnd,
			rec.Metrics, rec.Failed, rec.Error,
		)
	}

	results := r.pool.SendBatch(ctx, batch)
	defer results.Close()

	for range report.Records {
		if _, err := results.Exec(); err != nil {
			return fmt.Errorf("save result record: %w", err)
		}
	}
	return nil
}
