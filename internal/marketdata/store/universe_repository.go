package store

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/wonny/signalcheck/internal/contracts"
)

// UniverseRepository stores ranked universe snapshots per (date, market).
// ⭐ SSOT: 유니버스 스냅샷 저장소는 여기서만
type UniverseRepository struct {
	pool *pgxpool.Pool
}

// NewUniverseRepository creates a new universe repository
func NewUniverseRepository(pool *pgxpool.Pool) *UniverseRepository {
	return &UniverseRepository{pool: pool}
}

// Save stores one snapshot, replacing an existing one for the same key.
func (r *UniverseRepository) Save(ctx context.Context, snapshot contracts.UniverseSnapshot) error {
	query := `
		INSERT INTO data.universe_snapshots (snapshot_date, market, codes)
		VALUES ($1, $2, $3)
		ON CONFLICT (snapshot_date, market)
		DO UPDATE SET codes = EXCLUDED.codes
	`
	if _, err := r.pool.Exec(ctx, query, snapshot.Date, snapshot.Market, snapshot.Codes); err != nil {
		return fmt.Errorf("save universe snapshot: %w", err)
	}
	return nil
}

// GetLatestBefore returns the most recent snapshot at or before date.
// 기준일 당일 스냅샷이 없으면 가장 가까운 과거 스냅샷을 쓴다.
func (r *UniverseRepository) GetLatestBefore(ctx context.Context, date time.Time, market string) (*contracts.UniverseSnapshot, error) {
	query := `
		SELECT snapshot_date, market, codes
		FROM data.universe_snapshots
		WHERE market = $1 AND snapshot_date <= $2
		ORDER BY snapshot_date DESC
		LIMIT 1
	`

	var s contracts.UniverseSnapshot
	err := r.pool.QueryRow(ctx, query, market, date).Scan(&s.Date, &s.Market, &s.Codes)
	if err != nil {
		return nil, fmt.Errorf("query universe snapshot: %w", err)
	}
	return &s, nil
}
