// Package evaluate converts per-(date, asset) go-long signals into the
// shared performance methodology all four strategies are scored with:
// next-day accuracy, an equal-weight long-only daily return series, and
// the annualized Sharpe ratio.
package evaluate

import (
	"math"
	"sort"
	"time"

	"gonum.org/v1/gonum/stat"

	"github.com/wonny/signalcheck/internal/contracts"
	"github.com/wonny/signalcheck/internal/panel"
)

const tradingDaysPerYear = 252

// Evaluator scores signal sets against realized returns and labels. Both
// panels keep their own date axes; every lookup is an explicit checked
// lookup by (date, asset).
type Evaluator struct {
	returns *panel.Panel
	labels  *panel.Panel
}

// New creates an evaluator over the realized return and label panels.
func New(returns, labels *panel.Panel) *Evaluator {
	return &Evaluator{returns: returns, labels: labels}
}

// Evaluate computes the full metric set for one strategy's signals.
func (e *Evaluator) Evaluate(signals []contracts.Signal) contracts.StrategyMetrics {
	daily := e.DailyReturns(signals)
	return contracts.StrategyMetrics{
		Accuracy:        e.Accuracy(signals),
		MeanDailyReturn: meanOrZero(daily),
		SharpeRatio:     SharpeRatio(daily),
	}
}

// Accuracy is the fraction of signals whose value matches the label
// realized on the trading date immediately after the decision date.
//
// 주의: 신호값(롱 여부)과 익일 초과수익 라벨을 그대로 비교하는 비대칭
// 정의다. 네 전략을 같은 잣대로 재기 위해 의도적으로 유지한다.
// Records with no next label date or no label entry are skipped, not
// counted wrong.
func (e *Evaluator) Accuracy(signals []contracts.Signal) float64 {
	total, correct := 0, 0
	for _, s := range signals {
		next, ok := e.labels.NextDate(s.Date)
		if !ok {
			continue
		}
		label, ok := e.labels.At(next, s.Asset)
		if !ok || math.IsNaN(label) {
			continue
		}
		total++
		if int(label) == s.Value {
			correct++
		}
	}
	if total == 0 {
		return 0
	}
	return float64(correct) / float64(total)
}

// DailyReturns builds the portfolio's daily return series from a signal
// set. Long signals are grouped by decision date; each date's portfolio
// return is the equal-weight mean of the long assets' returns realized on
// the next trading date, skipping NaN returns. Dates with no long assets,
// no valid realized returns, or no next trading date contribute 0.0.
// The series is ordered by decision date.
func (e *Evaluator) DailyReturns(signals []contracts.Signal) []float64 {
	longs := make(map[time.Time][]string)
	dateSet := make(map[time.Time]struct{})
	for _, s := range signals {
		dateSet[s.Date] = struct{}{}
		if s.Value == 1 {
			longs[s.Date] = append(longs[s.Date], s.Asset)
		}
	}

	dates := make([]time.Time, 0, len(dateSet))
	for d := range dateSet {
		dates = append(dates, d)
	}
	sort.Slice(dates, func(i, j int) bool { return dates[i].Before(dates[j]) })

	daily := make([]float64, len(dates))
	for i, d := range dates {
		daily[i] = e.portfolioReturn(d, longs[d])
	}
	return daily
}

// portfolioReturn computes one date's realized equal-weight return.
func (e *Evaluator) portfolioReturn(date time.Time, assets []string) float64 {
	if len(assets) == 0 {
		return 0
	}
	next, ok := e.returns.NextDate(date)
	if !ok {
		// 패널 마지막 날짜: 실현 수익률이 없으므로 0 기여
		return 0
	}

	sum, valid := 0.0, 0
	for _, a := range assets {
		r, ok := e.returns.At(next, a)
		if !ok || math.IsNaN(r) {
			continue
		}
		sum += r
		valid++
	}
	if valid == 0 {
		return 0
	}
	return sum / float64(valid)
}

// SharpeRatio annualizes mean-over-volatility of a daily return series.
// Fewer than two observations or zero volatility yields 0.0 exactly.
func SharpeRatio(daily []float64) float64 {
	if len(daily) < 2 {
		return 0
	}
	mean := stat.Mean(daily, nil)
	std := stat.StdDev(daily, nil)
	if std == 0 || math.IsNaN(std) {
		return 0
	}
	return mean / std * math.Sqrt(tradingDaysPerYear)
}

func meanOrZero(xs []float64) float64 {
	if len(xs) == 0 {
		return 0
	}
	return stat.Mean(xs, nil)
}
