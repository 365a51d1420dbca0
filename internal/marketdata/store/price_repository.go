// Package store persists collected market data and evaluation results in
// PostgreSQL and serves the evaluation core's DataProvider contract from
// the stored tables.
package store

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/wonny/signalcheck/internal/contracts"
)

// PriceRepository stores daily close prices.
// ⭐ SSOT: 가격 데이터 저장소는 여기서만
type PriceRepository struct {
	pool *pgxpool.Pool
}

// NewPriceRepository creates a new price repository
func NewPriceRepository(pool *pgxpool.Pool) *PriceRepository {
	return &PriceRepository{pool: pool}
}

// SaveBatch upserts a batch of daily closes.
func (r *PriceRepository) SaveBatch(ctx context.Context, prices []contracts.Price) error {
	if len(prices) == 0 {
		return nil
	}

	batch := &pgx.Batch{}
	query := `
		INSERT INTO data.daily_prices (stock_code, trade_date, close_price)
		VALUES ($1, $2, $3)
		ON CONFLICT (stock_code, trade_date)
		DO UPDATE SET close_price = EXCLUDED.close_price
	`
	for _, p := range prices {
		batch.Queue(query, p.Code, p.Date, p.Close)
	}

	results := r.pool.SendBatch(ctx, batch)
	defer results.Close()

	for range prices {
		if _, err := results.Exec(); err != nil {
			return fmt.Errorf("save price batch: %w", err)
		}
	}
	return nil
}

// GetByCodesAndDateRange retrieves all stored closes for the codes within
// the date range, ordered by date.
func (r *PriceRepository) GetByCodesAndDateRange(ctx context.Context, codes []string, from, to time.Time) ([]contracts.Price, error) {
	query := `
		SELECT stock_code, trade_date, close_price
		FROM data.daily_prices
		WHERE stock_code = ANY($1) AND trade_date BETWEEN $2 AND $3
		ORDER BY trade_date ASC, stock_code ASC
	`

	rows, err := r.pool.Query(ctx, query, codes, from, to)
	if err != nil {
		return nil, fmt.Errorf("query prices: %w", err)
	}
	defer rows.Close()

	var prices []contracts.Price
	for rows.Next() {
		var p contracts.Price
		if err := rows.Scan(&p.Code, &p.Date, &p.Close); err != nil {
			return nil, fmt.Errorf("scan price: %w", err)
		}
		prices = append(prices, p)
	}
	return prices, rows.Err()
}

// TradingDates returns the distinct trading dates covered by the codes in
// the range, ascending. 거래일 축은 저장된 가격 데이터에서만 유도한다.
func (r *PriceRepository) TradingDates(ctx context.Context, codes []string, from, to time.Time) ([]time.Time, error) {
	query := `
		SELECT DISTINCT trade_date
		FROM data.daily_prices
		WHERE stock_code = ANY($1) AND trade_date BETWEEN $2 AND $3
		ORDER BY trade_date ASC
	`

	rows, err := r.pool.Query(ctx, query, codes, from, to)
	if err != nil {
		return nil, fmt.Errorf("query trading dates: %w", err)
	}
	defer rows.Close()

	var dates []time.Time
	for rows.Next() {
		var d time.Time
		if err := rows.Scan(&d); err != nil {
			return nil, fmt.Errorf("scan trading date: %w", err)
		}
		dates = append(dates, d)
	}
	return dates, rows.Err()
}
