package runner

import (
	"context"
	"fmt"
	"time"

	"github.com/wonny/signalcheck/internal/contracts"
	"github.com/wonny/signalcheck/internal/panel"
	"github.com/wonny/signalcheck/internal/study"
	"github.com/wonny/signalcheck/pkg/logger"
)

// Engine drives the full evaluation across anchor dates: per base date it
// asks the data provider for a universe and a lookback price panel, builds
// the derived panels and runs every study period the axis supports.
// ⭐ SSOT: 워크포워드 평가 실행은 여기서만
type Engine struct {
	provider contracts.DataProvider
	runner   *Runner
	filter   panel.FilterConfig
	logger   *logger.Logger
}

// RunConfig holds one evaluation run's parameters.
type RunConfig struct {
	BaseDates     []time.Time
	Market        string // KOSPI | KOSDAQ
	TopN          int    // 시가총액 상위 N개 종목
	LookbackYears int    // 기준일로부터의 가격 조회 구간
}

// NewEngine creates an evaluation engine.
func NewEngine(provider contracts.DataProvider, r *Runner, filter panel.FilterConfig, log *logger.Logger) *Engine {
	return &Engine{provider: provider, runner: r, filter: filter, logger: log}
}

// Run evaluates every base date in order and returns the collected report.
// A base date with fewer aligned trading dates than one study period needs
// produces no records; a failed study period produces a failed record.
// Only provider errors abort the run.
func (e *Engine) Run(ctx context.Context, cfg RunConfig) (*contracts.Report, error) {
	report := &contracts.Report{}
	start := time.Now()

	for _, baseDate := range cfg.BaseDates {
		if err := e.runBaseDate(ctx, cfg, baseDate, report); err != nil {
			return nil, fmt.Errorf("base date %s: %w", baseDate.Format("2006-01-02"), err)
		}
	}

	e.logger.WithFields(map[string]interface{}{
		"base_dates": len(cfg.BaseDates),
		"records":    len(report.Records),
		"failed":     report.FailedCount(),
		"duration":   time.Since(start).Seconds(),
	}).Info("Walk-forward evaluation completed")
	return report, nil
}

func (e *Engine) runBaseDate(ctx context.Context, cfg RunConfig, baseDate time.Time, report *contracts.Report) error {
	universe, err := e.provider.GetUniverse(ctx, baseDate, cfg.Market, cfg.TopN)
	if err != nil {
		return fmt.Errorf("get universe: %w", err)
	}

	from := baseDate.AddDate(-cfg.LookbackYears, 0, 0)
	raw, err := e.provider.GetPricePanel(ctx, from, baseDate, universe)
	if err != nil {
		return fmt.Errorf("get price panel: %w", err)
	}

	prices, err := panel.BuildPricePanel(raw, e.filter)
	if err != nil {
		return fmt.Errorf("build price panel: %w", err)
	}
	returns, err := panel.Returns(prices)
	if err != nil {
		return fmt.Errorf("build returns: %w", err)
	}
	labels, err := panel.Labels(returns)
	if err != nil {
		return fmt.Errorf("build labels: %w", err)
	}

	periods := study.PlanPeriods(returns.NumDates(), e.runner.cfg.Plan)
	if len(periods) == 0 {
		// 정상 경계 조건: 거래일이 부족하면 해당 기준일은 건너뜀
		e.logger.WithFields(map[string]interface{}{
			"base_date":     baseDate.Format("2006-01-02"),
			"trading_dates": returns.NumDates(),
			"required":      e.runner.cfg.Plan.TrainLen + e.runner.cfg.Plan.TestLen,
		}).Info("Insufficient history, no study periods")
		return nil
	}

	e.logger.WithFields(map[string]interface{}{
		"base_date": baseDate.Format("2006-01-02"),
		"assets":    returns.NumAssets(),
		"dates":     returns.NumDates(),
		"periods":   len(periods),
	}).Info("Running study periods")

	for i, period := range periods {
		report.Append(e.runner.RunPeriod(ctx, baseDate, i, period, returns, labels))
	}
	return nil
}
