package contracts

import "time"

// Provenance identifies the decision point a sequence or signal belongs to:
// the asset and the date the decision is made on. Realized outcomes are
// always looked up one trading day later.
type Provenance struct {
	Date  time.Time
	Asset string
}

// Signal is a single go-long decision: 1 = hold the asset for the next
// trading day, 0 = stay out. Signals carry no other state.
type Signal struct {
	Date  time.Time
	Asset string
	Value int
}

// StrategyName identifies one of the four evaluated signal sources.
type StrategyName string

const (
	StrategyLSTM       StrategyName = "lstm"
	StrategyBuyHold    StrategyName = "buy_hold"
	StrategyMomentum   StrategyName = "momentum"
	StrategyContrarian StrategyName = "contrarian"
)

// Strategies lists all evaluated strategies in report order.
var Strategies = []StrategyName{
	StrategyLSTM,
	StrategyBuyHold,
	StrategyMomentum,
	StrategyContrarian,
}
