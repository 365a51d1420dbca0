package evaluate

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wonny/signalcheck/internal/contracts"
	"github.com/wonny/signalcheck/internal/panel"
)

func day(n int) time.Time {
	return time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC).AddDate(0, 0, n)
}

func mustPanel(t *testing.T, n int, assets []string, data [][]float64) *panel.Panel {
	t.Helper()
	dates := make([]time.Time, n)
	for i := range dates {
		dates[i] = day(i)
	}
	p, err := panel.New(dates, assets, data)
	require.NoError(t, err)
	return p
}

func TestAccuracy_NextDateLabel(t *testing.T) {
	nan := math.NaN()
	labels := mustPanel(t, 3, []string{"A", "B"}, [][]float64{
		{0, 1},
		{1, nan},
		{nan, nan},
	})
	returns := mustPanel(t, 3, []string{"A", "B"}, [][]float64{
		{0, 0}, {0, 0}, {0, 0},
	})
	e := New(returns, labels)

	signals := []contracts.Signal{
		{Date: day(0), Asset: "A", Value: 1}, // label at day(1) is 1 → correct
		{Date: day(0), Asset: "B", Value: 1}, // label at day(1) is NaN → skipped
		{Date: day(1), Asset: "A", Value: 0}, // label at day(2) is NaN → skipped
		{Date: day(2), Asset: "A", Value: 1}, // no next date → skipped
	}

	assert.InDelta(t, 1.0, e.Accuracy(signals), 1e-12)

	// flip the one counted signal
	signals[0].Value = 0
	assert.InDelta(t, 0.0, e.Accuracy(signals), 1e-12)
}

func TestAccuracy_NoCountableSignals(t *testing.T) {
	labels := mustPanel(t, 2, []string{"A"}, [][]float64{{1}, {math.NaN()}})
	returns := mustPanel(t, 2, []string{"A"}, [][]float64{{0}, {0}})
	e := New(returns, labels)

	// only signal's next-date label is NaN
	signals := []contracts.Signal{{Date: day(1), Asset: "A", Value: 1}}
	assert.Equal(t, 0.0, e.Accuracy(signals))
}

func TestDailyReturns_EqualWeightNextDay(t *testing.T) {
	nan := math.NaN()
	returns := mustPanel(t, 3, []string{"A", "B", "C"}, [][]float64{
		{0, 0, 0},
		{0.10, -0.02, nan},
		{0.04, 0.06, 0.08},
	})
	labels := mustPanel(t, 3, []string{"A", "B", "C"}, [][]float64{
		{0, 0, 0}, {0, 0, 0}, {nan, nan, nan},
	})
	e := New(returns, labels)

	signals := []contracts.Signal{
		// day(0): long A, B, C → realized at day(1); C is NaN and skipped
		{Date: day(0), Asset: "A", Value: 1},
		{Date: day(0), Asset: "B", Value: 1},
		{Date: day(0), Asset: "C", Value: 1},
		// day(1): no longs at all
		{Date: day(1), Asset: "A", Value: 0},
		{Date: day(1), Asset: "B", Value: 0},
		// day(2): long on the last date, no next date
		{Date: day(2), Asset: "A", Value: 1},
	}

	daily := e.DailyReturns(signals)
	require.Len(t, daily, 3)

	assert.InDelta(t, (0.10-0.02)/2, daily[0], 1e-12) // NaN C dropped from the mean
	assert.Equal(t, 0.0, daily[1])                    // no longs → zero contribution
	assert.Equal(t, 0.0, daily[2])                    // last date → zero contribution
}

func TestDailyReturns_AllRealizedNaN(t *testing.T) {
	nan := math.NaN()
	returns := mustPanel(t, 2, []string{"A"}, [][]float64{{0}, {nan}})
	labels := mustPanel(t, 2, []string{"A"}, [][]float64{{0}, {nan}})
	e := New(returns, labels)

	daily := e.DailyReturns([]contracts.Signal{{Date: day(0), Asset: "A", Value: 1}})
	require.Len(t, daily, 1)
	assert.Equal(t, 0.0, daily[0])
}

func TestSharpeRatio(t *testing.T) {
	// mean 0.01, sample std of {0.005, 0.015, 0.01} over mean 0.01
	daily := []float64{0.005, 0.015, 0.01}
	got := SharpeRatio(daily)
	assert.Greater(t, got, 0.0)

	mean := 0.01
	std := math.Sqrt(((0.005-mean)*(0.005-mean) + (0.015-mean)*(0.015-mean)) / 2)
	assert.InDelta(t, mean/std*math.Sqrt(252), got, 1e-9)
}

func TestSharpeRatio_Degenerate(t *testing.T) {
	// 관측 2개 미만 또는 변동성 0 → 정확히 0.0
	assert.Equal(t, 0.0, SharpeRatio(nil))
	assert.Equal(t, 0.0, SharpeRatio([]float64{0.05}))
	assert.Equal(t, 0.0, SharpeRatio([]float64{0.01, 0.01, 0.01}))
}

func TestDailyReturns_BuyHoldReproducesMarket(t *testing.T) {
	nan := math.NaN()
	returns := mustPanel(t, 5, []string{"A", "B", "C"}, [][]float64{
		{0.01, -0.02, 0.00},
		{0.03, 0.01, nan},
		{-0.01, -0.01, 0.02},
		{0.02, nan, nan},
		{0.00, 0.01, -0.03},
	})
	labels := mustPanel(t, 5, []string{"A", "B", "C"}, [][]float64{
		{0, 1, 0}, {1, 0, 0}, {0, 0, 1}, {1, 0, 0}, {nan, nan, nan},
	})
	e := New(returns, labels)

	// all-ones long set: the portfolio IS the equal-weight market
	var signals []contracts.Signal
	for i := 0; i < 4; i++ {
		for _, a := range []string{"A", "B", "C"} {
			signals = append(signals, contracts.Signal{Date: day(i), Asset: a, Value: 1})
		}
	}

	daily := e.DailyReturns(signals)
	require.Len(t, daily, 4)
	for i := 0; i < 4; i++ {
		want := panel.NaNMean(returns.Row(i + 1))
		assert.InDelta(t, want, daily[i], 1e-12, "date %d", i)
	}
}

func TestEvaluate_FullMetricSet(t *testing.T) {
	returns := mustPanel(t, 3, []string{"A"}, [][]float64{{0}, {0.02}, {0.01}})
	labels := mustPanel(t, 3, []string{"A"}, [][]float64{{1}, {1}, {math.NaN()}})
	e := New(returns, labels)

	signals := []contracts.Signal{
		{Date: day(0), Asset: "A", Value: 1},
		{Date: day(1), Asset: "A", Value: 1},
	}
	m := e.Evaluate(signals)

	assert.InDelta(t, 1.0, m.Accuracy, 1e-12)
	assert.InDelta(t, (0.02+0.01)/2, m.MeanDailyReturn, 1e-12)
	assert.NotZero(t, m.SharpeRatio)
}
