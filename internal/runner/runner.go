// Package runner orchestrates walk-forward evaluation: it slices the
// return history into study periods, trains one classifier per period and
// scores it against the three baselines with the shared evaluation
// methodology, emitting one result record per period.
package runner

import (
	"context"
	"fmt"
	"time"

	"github.com/wonny/signalcheck/internal/contracts"
	"github.com/wonny/signalcheck/internal/evaluate"
	"github.com/wonny/signalcheck/internal/model"
	"github.com/wonny/signalcheck/internal/panel"
	"github.com/wonny/signalcheck/internal/strategy"
	"github.com/wonny/signalcheck/internal/study"
	"github.com/wonny/signalcheck/pkg/logger"
)

// Config holds the evaluation parameters shared by every study period.
type Config struct {
	Plan  study.PlanConfig
	Model model.Config
}

// DefaultConfig returns the standard 750/250/250 walk-forward setup with
// the default classifier.
func DefaultConfig() Config {
	return Config{
		Plan:  study.DefaultPlanConfig(),
		Model: model.DefaultConfig(),
	}
}

// Runner executes single (base date, study period) passes. Each pass owns
// its own standardizer and classifier instance; nothing is shared across
// periods.
// ⭐ SSOT: 스터디 구간 1회 실행은 여기서만
type Runner struct {
	cfg    Config
	logger *logger.Logger
}

// NewRunner creates a study period runner.
func NewRunner(cfg Config, log *logger.Logger) *Runner {
	return &Runner{cfg: cfg, logger: log}
}

// RunPeriod runs one study period: standardize on the train slice, build
// sequences, train and predict, then evaluate the classifier and the three
// baselines over the test decision dates.
//
// Any failure inside the pass (degenerate train statistics, training
// divergence, malformed shapes) marks this period's record as failed and
// never reaches the caller as an error; later periods stay unaffected.
func (r *Runner) RunPeriod(ctx context.Context, baseDate time.Time, index int, period study.Period, returns, labels *panel.Panel) contracts.ResultRecord {
	dates := returns.Dates()
	record := contracts.ResultRecord{
		BaseDate:    baseDate,
		PeriodIndex: index,
		TrainStart:  dates[period.TrainStart],
		TrainEnd:    dates[period.TrainEnd-1],
		TestStart:   dates[period.TestStart],
		TestEnd:     dates[period.TestEnd-1],
	}

	start := time.Now()
	metrics, err := r.runPeriod(ctx, period, returns, labels)
	if err != nil {
		record.Failed = true
		record.Error = err.Error()
		r.logger.WithFields(map[string]interface{}{
			"base_date": baseDate.Format("2006-01-02"),
			"period":    index,
			"error":     err.Error(),
		}).Warn("Study period failed")
		return record
	}

	record.Metrics = metrics
	r.logger.WithFields(map[string]interface{}{
		"base_date":   baseDate.Format("2006-01-02"),
		"period":      index,
		"duration":    time.Since(start).Seconds(),
		"lstm_sharpe": fmt.Sprintf("%.2f", metrics[contracts.StrategyLSTM].SharpeRatio),
	}).Info("Study period completed")
	return record
}

func (r *Runner) runPeriod(ctx context.Context, period study.Period, returns, labels *panel.Panel) (map[contracts.StrategyName]contracts.StrategyMetrics, error) {
	trainReturns, err := returns.SliceDates(period.TrainStart, period.TrainEnd)
	if err != nil {
		return nil, fmt.Errorf("slice train returns: %w", err)
	}
	testReturns, err := returns.SliceDates(period.TestStart, period.TestEnd)
	if err != nil {
		return nil, fmt.Errorf("slice test returns: %w", err)
	}
	trainLabels, err := labels.SliceDates(period.TrainStart, period.TrainEnd)
	if err != nil {
		return nil, fmt.Errorf("slice train labels: %w", err)
	}
	testLabels, err := labels.SliceDates(period.TestStart, period.TestEnd)
	if err != nil {
		return nil, fmt.Errorf("slice test labels: %w", err)
	}

	// 표준화 파라미터는 학습 구간에서만 적합 (누수 금지)
	var std study.Standardizer
	if err := std.Fit(trainReturns); err != nil {
		return nil, err
	}
	trainZ, err := std.Transform(trainReturns)
	if err != nil {
		return nil, err
	}
	testZ, err := std.Transform(testReturns)
	if err != nil {
		return nil, err
	}

	window := r.cfg.Model.Window
	trainSeqs, err := study.BuildSequences(trainZ, trainLabels, window)
	if err != nil {
		return nil, fmt.Errorf("build train sequences: %w", err)
	}
	testSeqs, err := study.BuildSequences(testZ, testLabels, window)
	if err != nil {
		return nil, fmt.Errorf("build test sequences: %w", err)
	}
	if len(testSeqs) == 0 {
		return nil, fmt.Errorf("no labeled test sequences in period")
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	classifier, err := model.New(r.cfg.Model)
	if err != nil {
		return nil, err
	}
	if err := classifier.Train(trainSeqs); err != nil {
		return nil, fmt.Errorf("train classifier: %w", err)
	}
	preds, err := classifier.Predict(testSeqs)
	if err != nil {
		return nil, fmt.Errorf("predict: %w", err)
	}

	// 예측은 입력 순서를 보존하므로 provenance와 zip으로 복원
	points := make([]contracts.Provenance, len(testSeqs))
	lstmSignals := make([]contracts.Signal, len(testSeqs))
	for i, seq := range testSeqs {
		points[i] = seq.Provenance()
		lstmSignals[i] = contracts.Signal{Date: seq.Date, Asset: seq.Asset, Value: preds[i]}
	}

	// Baselines read the raw (unstandardized) return panel: a z-score's
	// sign is not the sign of the return.
	evaluator := evaluate.New(returns, labels)
	metrics := map[contracts.StrategyName]contracts.StrategyMetrics{
		contracts.StrategyLSTM:       evaluator.Evaluate(lstmSignals),
		contracts.StrategyBuyHold:    evaluator.Evaluate(strategy.BuyHold(points)),
		contracts.StrategyMomentum:   evaluator.Evaluate(strategy.Momentum(points, returns)),
		contracts.StrategyContrarian: evaluator.Evaluate(strategy.Contrarian(points, returns)),
	}
	return metrics, nil
}
