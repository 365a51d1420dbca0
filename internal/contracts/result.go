package contracts

import "time"

// StrategyMetrics holds the evaluation outcome of one strategy over one
// study period's test window.
type StrategyMetrics struct {
	Accuracy        float64 `json:"accuracy"`
	MeanDailyReturn float64 `json:"mean_daily_return"`
	SharpeRatio     float64 `json:"sharpe_ratio"`
}

// ResultRecord is one row of the terminal report: one (base date, study
// period) pass with the metrics of all four strategies. Records are
// immutable once appended to a report.
// ⭐ SSOT: 평가 결과 스키마는 여기서만 정의
type ResultRecord struct {
	BaseDate    time.Time `json:"base_date"`
	PeriodIndex int       `json:"period_index"`

	TrainStart time.Time `json:"train_start"`
	TrainEnd   time.Time `json:"train_end"`
	TestStart  time.Time `json:"test_start"`
	TestEnd    time.Time `json:"test_end"`

	Metrics map[StrategyName]StrategyMetrics `json:"metrics"`

	// A failed training pass marks the record instead of reporting zeros
	// that would be indistinguishable from a real zero-return outcome.
	Failed bool   `json:"failed"`
	Error  string `json:"error,omitempty"`
}

// Report is the ordered collection of result records produced by one
// walk-forward evaluation run.
type Report struct {
	Records []ResultRecord `json:"records"`
}

// Append adds a record to the report.
func (r *Report) Append(rec ResultRecord) {
	r.Records = append(r.Records, rec)
}

// FailedCount returns the number of study periods that failed.
func (r *Report) FailedCount() int {
	n := 0
	for _, rec := range r.Records {
		if rec.Failed {
			n++
		}
	}
	return n
}
