// Package strategy implements the three naive baseline signal sources the
// classifier is scored against. Each is a pure function from decision
// points to go-long signals and uses only information dated at or before
// the decision date.
package strategy

import (
	"math"

	"github.com/wonny/signalcheck/internal/contracts"
	"github.com/wonny/signalcheck/internal/panel"
)

// BuyHold goes long every asset on every decision date.
func BuyHold(points []contracts.Provenance) []contracts.Signal {
	signals := make([]contracts.Signal, len(points))
	for i, p := range points {
		signals[i] = contracts.Signal{Date: p.Date, Asset: p.Asset, Value: 1}
	}
	return signals
}

// Momentum goes long when the asset's realized return on the decision date
// itself is strictly positive. Missing returns produce no position.
func Momentum(points []contracts.Provenance, returns *panel.Panel) []contracts.Signal {
	return thresholdSignals(points, returns, func(r float64) bool { return r > 0 })
}

// Contrarian goes long when the asset's realized return on the decision
// date is strictly negative. Missing returns produce no position.
func Contrarian(points []contracts.Provenance, returns *panel.Panel) []contracts.Signal {
	return thresholdSignals(points, returns, func(r float64) bool { return r < 0 })
}

func thresholdSignals(points []contracts.Provenance, returns *panel.Panel, long func(float64) bool) []contracts.Signal {
	signals := make([]contracts.Signal, len(points))
	for i, p := range points {
		value := 0
		// 결정일 당일(t) 수익률만 사용, t+1은 평가 전용
		if r, ok := returns.At(p.Date, p.Asset); ok && !math.IsNaN(r) && long(r) {
			value = 1
		}
		signals[i] = contracts.Signal{Date: p.Date, Asset: p.Asset, Value: value}
	}
	return signals
}
