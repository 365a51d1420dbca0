package store

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/wonny/signalcheck/internal/contracts"
)

// Provider implements contracts.DataProvider from the stored tables. The
// evaluation core never touches the network; `signalcheck fetch` fills the
// tables this provider reads.
type Provider struct {
	prices   *PriceRepository
	universe *UniverseRepository
}

// NewProvider creates a DB-backed data provider.
func NewProvider(prices *PriceRepository, universe *UniverseRepository) *Provider {
	return &Provider{prices: prices, universe: universe}
}

var _ contracts.DataProvider = (*Provider)(nil)

// GetUniverse returns the stored top-N ranked codes for the market as of
// the date.
func (p *Provider) GetUniverse(ctx context.Context, date time.Time, market string, topN int) ([]string, error) {
	snapshot, err := p.universe.GetLatestBefore(ctx, date, market)
	if err != nil {
		return nil, fmt.Errorf("universe for %s/%s: %w", market, date.Format("2006-01-02"), err)
	}
	if len(snapshot.Codes) > topN {
		return snapshot.Codes[:topN], nil
	}
	return snapshot.Codes, nil
}

// GetPricePanel assembles the raw close panel for the assets from stored
// prices. The date axis is the union of trading dates any asset traded on;
// cells without a stored close stay NaN.
func (p *Provider) GetPricePanel(ctx context.Context, from, to time.Time, assets []string) (*contracts.RawPricePanel, error) {
	dates, err := p.prices.TradingDates(ctx, assets, from, to)
	if err != nil {
		return nil, err
	}
	if len(dates) == 0 {
		return nil, fmt.Errorf("no stored prices between %s and %s",
			from.Format("2006-01-02"), to.Format("2006-01-02"))
	}

	prices, err := p.prices.GetByCodesAndDateRange(ctx, assets, from, to)
	if err != nil {
		return nil, err
	}

	dateIdx := make(map[time.Time]int, len(dates))
	for i, d := range dates {
		dateIdx[d] = i
	}
	assetIdx := make(map[string]int, len(assets))
	for j, a := range assets {
		assetIdx[a] = j
	}

	grid := make([][]float64, len(dates))
	for i := range grid {
		row := make([]float64, len(assets))
		for j := range row {
			row[j] = math.NaN()
		}
		grid[i] = row
	}
	for _, price := range prices {
		i, ok := dateIdx[price.Date]
		if !ok {
			continue
		}
		j, ok := assetIdx[price.Code]
		if !ok {
			continue
		}
		grid[i][j] = price.Close
	}

	return &contracts.RawPricePanel{Dates: dates, Assets: assets, Close: grid}, nil
}
