package jobs

import (
	"context"
	"time"

	"github.com/wonny/signalcheck/internal/marketdata/store"
	"github.com/wonny/signalcheck/internal/runner"
	"github.com/wonny/signalcheck/pkg/config"
	"github.com/wonny/signalcheck/pkg/logger"
)

// EvaluateJob runs the full walk-forward evaluation with today as the
// single anchor date and persists the resulting records.
type EvaluateJob struct {
	engine  *runner.Engine
	results *store.ResultRepository
	eval    config.EvalConfig
	logger  *logger.Logger
}

// NewEvaluateJob creates the weekly evaluation job.
func NewEvaluateJob(engine *runner.Engine, results *store.ResultRepository, eval config.EvalConfig, log *logger.Logger) *EvaluateJob {
	return &EvaluateJob{engine: engine, results: results, eval: eval, logger: log}
}

// Name returns the job name
func (j *EvaluateJob) Name() string { return "walkforward-evaluate" }

// Schedule runs Saturday mornings, 수집이 끝난 주말에 재평가.
func (j *EvaluateJob) Schedule() string { return "0 0 6 * * SAT" }

// Run executes the job
func (j *EvaluateJob) Run(ctx context.Context) error {
	today := time.Now().Truncate(24 * time.Hour)

	report, err := j.engine.Run(ctx, runner.RunConfig{
		BaseDates:     []time.Time{today},
		Market:        j.eval.Market,
		TopN:          j.eval.TopN,
		LookbackYears: j.eval.LookbackYears,
	})
	if err != nil {
		return err
	}
	if err := j.results.SaveReport(ctx, report); err != nil {
		return err
	}

	j.logger.WithFields(map[string]interface{}{
		"records": len(report.Records),
		"failed":  report.FailedCount(),
	}).Info("Scheduled evaluation persisted")
	return nil
}
