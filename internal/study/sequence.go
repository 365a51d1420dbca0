package study

import (
	"fmt"
	"math"
	"time"

	"github.com/wonny/signalcheck/internal/contracts"
	"github.com/wonny/signalcheck/internal/panel"
)

// Sequence is one labeled training or test example: a fixed window of
// standardized returns for a single asset ending just before the decision
// date, the binary label realized for that date, and its provenance.
type Sequence struct {
	Window []float64 // 길이 W, 과거 → 최근 순서
	Label  int
	Date   time.Time
	Asset  string
}

// Provenance returns the (date, asset) pair this sequence was built for.
func (s Sequence) Provenance() contracts.Provenance {
	return contracts.Provenance{Date: s.Date, Asset: s.Asset}
}

// BuildSequences converts a standardized return panel and a label panel
// with identical axes into labeled sequences of length window.
//
// Per asset, for each date index i in [window, n): the window is rows
// [i-window, i) of that asset's column (the decision date itself is
// excluded), the label is labels[i][asset]. Positions with a NaN label are
// skipped, which drops the unlabeled tail. Emission order is by asset then
// date; downstream training shuffles and evaluation joins back by
// provenance, so ordering carries no meaning.
func BuildSequences(returns, labels *panel.Panel, window int) ([]Sequence, error) {
	if returns.NumDates() != labels.NumDates() || returns.NumAssets() != labels.NumAssets() {
		return nil, fmt.Errorf("study: returns %dx%d and labels %dx%d differ",
			returns.NumDates(), returns.NumAssets(), labels.NumDates(), labels.NumAssets())
	}
	if window <= 0 {
		return nil, fmt.Errorf("study: invalid window %d", window)
	}

	n := returns.NumDates()
	dates := returns.Dates()

	var seqs []Sequence
	for j, asset := range returns.Assets() {
		lj, ok := labels.AssetIndex(asset)
		if !ok {
			return nil, fmt.Errorf("study: asset %s missing from label panel", asset)
		}
		col := returns.Column(j)
		for i := window; i < n; i++ {
			li, ok := labels.DateIndex(dates[i])
			if !ok {
				continue
			}
			label := labels.AtIndex(li, lj)
			if math.IsNaN(label) {
				continue
			}

			w := make([]float64, window)
			copy(w, col[i-window:i])
			seqs = append(seqs, Sequence{
				Window: w,
				Label:  int(label),
				Date:   dates[i],
				Asset:  asset,
			})
		}
	}
	return seqs, nil
}
