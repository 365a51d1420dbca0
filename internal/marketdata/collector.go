// Package marketdata collects the upstream market data the evaluation
// runs on: a ranked universe snapshot and each member's daily close
// history, persisted through the store repositories.
package marketdata

import (
	"context"
	"fmt"
	"time"

	"github.com/wonny/signalcheck/internal/contracts"
	"github.com/wonny/signalcheck/internal/marketdata/naver"
	"github.com/wonny/signalcheck/internal/marketdata/store"
	"github.com/wonny/signalcheck/pkg/logger"
)

// Collector pulls universe rankings and close prices from Naver Finance
// into the database.
// ⭐ SSOT: 시장 데이터 수집은 여기서만
type Collector struct {
	naver    *naver.Client
	prices   *store.PriceRepository
	universe *store.UniverseRepository
	logger   *logger.Logger
}

// NewCollector creates a collector.
func NewCollector(nv *naver.Client, prices *store.PriceRepository, universe *store.UniverseRepository, log *logger.Logger) *Collector {
	return &Collector{naver: nv, prices: prices, universe: universe, logger: log}
}

// Collect snapshots the top-N universe for (date, market) and fetches each
// member's daily closes over the lookback window. Individual per-stock
// fetch failures are logged and skipped; the snapshot itself failing
// aborts the collection.
func (c *Collector) Collect(ctx context.Context, date time.Time, market string, topN, lookbackYears int) error {
	start := time.Now()

	codes, err := c.naver.FetchMarketCapRanking(ctx, market, topN)
	if err != nil {
		return fmt.Errorf("fetch market cap ranking: %w", err)
	}
	if err := c.universe.Save(ctx, contracts.UniverseSnapshot{
		Date:   date,
		Market: market,
		Codes:  codes,
	}); err != nil {
		return err
	}

	from := date.AddDate(-lookbackYears, 0, 0)
	fetched, skipped := 0, 0
	for _, code := range codes {
		if err := ctx.Err(); err != nil {
			return err
		}

		closes, err := c.naver.FetchDailyCloses(ctx, code, from, date)
		if err != nil {
			skipped++
			c.logger.WithFields(map[string]interface{}{
				"stock_code": code,
				"error":      err.Error(),
			}).Warn("Skipping stock, price fetch failed")
			continue
		}

		prices := make([]contracts.Price, len(closes))
		for i, dc := range closes {
			prices[i] = contracts.Price{Code: dc.StockCode, Date: dc.TradeDate, Close: dc.Close}
		}
		if err := c.prices.SaveBatch(ctx, prices); err != nil {
			return fmt.Errorf("save prices for %s: %w", code, err)
		}
		fetched++
	}

	c.logger.WithFields(map[string]interface{}{
		"date":     date.Format("2006-01-02"),
		"market":   market,
		"universe": len(codes),
		"fetched":  fetched,
		"skipped":  skipped,
		"duration": time.Since(start).Seconds(),
	}).Info("Market data collection completed")
	return nil
}
