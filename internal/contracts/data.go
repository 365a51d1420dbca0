package contracts

import (
	"context"
	"time"
)

// DataProvider supplies the asset universe and raw close prices for one
// anchor date. Implementations own all I/O; the evaluation core only sees
// this interface.
// ⭐ SSOT: 시장 데이터 조회 인터페이스는 여기서만 정의
type DataProvider interface {
	// GetUniverse returns the top-N asset codes by market cap for the market
	// as of the given date.
	GetUniverse(ctx context.Context, date time.Time, market string, topN int) ([]string, error)

	// GetPricePanel returns daily close prices for the assets between from
	// and to (inclusive). Missing cells are NaN.
	GetPricePanel(ctx context.Context, from, to time.Time, assets []string) (*RawPricePanel, error)
}

// RawPricePanel is the provider-side price table before any filtering.
// Rows are trading dates in ascending order, columns follow Assets.
// Close[i][j] is NaN when no price exists for (Dates[i], Assets[j]).
type RawPricePanel struct {
	Dates  []time.Time
	Assets []string
	Close  [][]float64
}

// Price represents one daily close observation as stored.
type Price struct {
	Code  string
	Date  time.Time
	Close float64
}

// UniverseSnapshot is the ranked universe for one (date, market) pair.
type UniverseSnapshot struct {
	Date   time.Time `json:"date"`
	Market string    `json:"market"`
	Codes  []string  `json:"codes"` // market-cap 순위 순서 유지
}
