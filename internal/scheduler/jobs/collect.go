// Package jobs defines the scheduled jobs: nightly market data collection
// and the follow-up walk-forward evaluation.
package jobs

import (
	"context"
	"time"

	"github.com/wonny/signalcheck/internal/marketdata"
	"github.com/wonny/signalcheck/pkg/config"
)

// CollectJob refreshes the universe snapshot and close prices after the
// market closes.
type CollectJob struct {
	collector *marketdata.Collector
	eval      config.EvalConfig
}

// NewCollectJob creates the nightly collection job.
func NewCollectJob(collector *marketdata.Collector, eval config.EvalConfig) *CollectJob {
	return &CollectJob{collector: collector, eval: eval}
}

// Name returns the job name
func (j *CollectJob) Name() string { return "market-data-collect" }

// Schedule runs on weekdays at 17:00 KST, 장 마감 및 정산 이후.
func (j *CollectJob) Schedule() string { return "0 0 17 * * MON-FRI" }

// Run executes the job
func (j *CollectJob) Run(ctx context.Context) error {
	today := time.Now().Truncate(24 * time.Hour)
	return j.collector.Collect(ctx, today, j.eval.Market, j.eval.TopN, j.eval.LookbackYears)
}
