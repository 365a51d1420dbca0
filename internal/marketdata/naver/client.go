// Package naver fetches the daily close prices and market-cap rankings the
// evaluation pipeline's data provider is built from. Naver Finance is the
// only upstream source.
package naver

import (
	"time"

	"github.com/wonny/signalcheck/pkg/config"
	"github.com/wonny/signalcheck/pkg/httputil"
	"github.com/wonny/signalcheck/pkg/logger"
)

const userAgent = "Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/537.36"

// Client handles communication with Naver Finance
// ⭐ SSOT: Naver Finance API 호출은 이 클라이언트에서만
type Client struct {
	httpClient    *httputil.Client
	logger        *logger.Logger
	baseURL       string
	chartBaseURL  string
	mobileBaseURL string
}

// NewClient creates a new Naver Finance client
func NewClient(cfg *config.Config, httpClient *httputil.Client, log *logger.Logger) *Client {
	return &Client{
		httpClient:    httpClient.WithRateLimit(cfg.Naver.RequestsPerSec),
		logger:        log,
		baseURL:       cfg.Naver.BaseURL,
		chartBaseURL:  cfg.Naver.ChartBaseURL,
		mobileBaseURL: "https://m.stock.naver.com",
	}
}

// DailyClose is one daily close observation for a single stock.
type DailyClose struct {
	StockCode string
	TradeDate time.Time
	Close     float64
}
