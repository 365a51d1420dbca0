// Package study slices a return history into walk-forward study periods and
// prepares the standardized, windowed sequences a classifier trains on.
package study

import "time"

// PlanConfig controls study period generation.
type PlanConfig struct {
	TrainLen int // 학습 구간 길이 (거래일)
	TestLen  int // 검증 구간 길이 (거래일)
	Step     int // 연속 구간 사이 시작 오프셋
}

// DefaultPlanConfig is the standard 750/250/250 walk-forward layout:
// consecutive train windows overlap by 500 trading days.
func DefaultPlanConfig() PlanConfig {
	return PlanConfig{TrainLen: 750, TestLen: 250, Step: 250}
}

// Period is one (train, test) window pair over the date axis. Ranges are
// half-open index ranges; test begins immediately after train.
type Period struct {
	TrainStart int
	TrainEnd   int
	TestStart  int
	TestEnd    int
}

// TrainDates returns the train window's dates from the full axis.
func (p Period) TrainDates(dates []time.Time) []time.Time {
	return dates[p.TrainStart:p.TrainEnd]
}

// TestDates returns the test window's dates from the full axis.
func (p Period) TestDates(dates []time.Time) []time.Time {
	return dates[p.TestStart:p.TestEnd]
}

// PlanPeriods partitions a date axis of length n into overlapping study
// periods. Fewer than TrainLen+TestLen dates yields zero periods; callers
// treat that as a normal no-op pass, not an error.
func PlanPeriods(n int, cfg PlanConfig) []Period {
	span := cfg.TrainLen + cfg.TestLen
	var periods []Period
	for s := 0; s+span <= n; s += cfg.Step {
		periods = append(periods, Period{
			TrainStart: s,
			TrainEnd:   s + cfg.TrainLen,
			TestStart:  s + cfg.TrainLen,
			TestEnd:    s + span,
		})
	}
	return periods
}
