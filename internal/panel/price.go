package panel

import (
	"fmt"
	"math"
	"time"

	"github.com/wonny/signalcheck/internal/contracts"
)

// FilterConfig controls which assets survive price panel construction.
type FilterConfig struct {
	// MinCoverage is the minimum fraction of dates that must carry a price
	// after forward-filling from the first valid observation.
	MinCoverage float64

	// DelistWindow: 마지막 N개 종가가 전부 동일하면 상장폐지로 간주.
	// A heuristic, not a guaranteed delisting flag; kept configurable.
	DelistWindow int
}

// DefaultFilterConfig mirrors the evaluation defaults.
func DefaultFilterConfig() FilterConfig {
	return FilterConfig{MinCoverage: 0.70, DelistWindow: 100}
}

// BuildPricePanel turns a raw provider panel into the filtered, forward-
// filled close price panel the pipeline runs on. Columns are dropped when
// coverage is below MinCoverage or the trailing DelistWindow observations
// are all identical. The result is immutable.
func BuildPricePanel(raw *contracts.RawPricePanel, cfg FilterConfig) (*Panel, error) {
	if len(raw.Dates) == 0 || len(raw.Assets) == 0 {
		return nil, fmt.Errorf("price panel: empty input %dx%d", len(raw.Dates), len(raw.Assets))
	}

	n := len(raw.Dates)
	keep := make([]int, 0, len(raw.Assets))

	filled := make([][]float64, len(raw.Assets)) // per-asset column, forward-filled
	for j := range raw.Assets {
		col := make([]float64, n)
		for i := 0; i < n; i++ {
			col[i] = raw.Close[i][j]
		}
		forwardFill(col)
		filled[j] = col

		if coverage(col) < cfg.MinCoverage {
			continue
		}
		if cfg.DelistWindow > 0 && trailingConstant(col, cfg.DelistWindow) {
			continue
		}
		keep = append(keep, j)
	}
	if len(keep) == 0 {
		return nil, fmt.Errorf("price panel: no assets passed filters")
	}

	assets := make([]string, len(keep))
	data := make([][]float64, n)
	for i := range data {
		data[i] = make([]float64, len(keep))
	}
	for k, j := range keep {
		assets[k] = raw.Assets[j]
		for i := 0; i < n; i++ {
			data[i][k] = filled[j][i]
		}
	}

	dates := make([]time.Time, n)
	copy(dates, raw.Dates)
	return New(dates, assets, data)
}

// Returns derives the simple daily return panel from a price panel. The
// first date is dropped: a return needs a previous close.
func Returns(prices *Panel) (*Panel, error) {
	n := prices.NumDates()
	if n < 2 {
		return nil, fmt.Errorf("returns: need at least 2 dates, have %d", n)
	}

	data := make([][]float64, n-1)
	for i := 1; i < n; i++ {
		row := make([]float64, prices.NumAssets())
		for j := 0; j < prices.NumAssets(); j++ {
			prev := prices.AtIndex(i-1, j)
			cur := prices.AtIndex(i, j)
			if math.IsNaN(prev) || math.IsNaN(cur) || prev == 0 {
				row[j] = math.NaN()
				continue
			}
			row[j] = cur/prev - 1
		}
		data[i-1] = row
	}

	dates := make([]time.Time, n-1)
	copy(dates, prices.Dates()[1:])
	assets := make([]string, prices.NumAssets())
	copy(assets, prices.Assets())
	return New(dates, assets, data)
}

// forwardFill carries the last valid value forward, in place. Leading NaNs
// before the first valid observation stay NaN.
func forwardFill(col []float64) {
	last := math.NaN()
	for i, v := range col {
		if math.IsNaN(v) {
			col[i] = last
			continue
		}
		last = v
	}
}

func coverage(col []float64) float64 {
	valid := 0
	for _, v := range col {
		if !math.IsNaN(v) {
			valid++
		}
	}
	return float64(valid) / float64(len(col))
}

// trailingConstant reports whether the last window observations are all
// present and identical.
func trailingConstant(col []float64, window int) bool {
	if len(col) < window {
		return false
	}
	tail := col[len(col)-window:]
	first := tail[0]
	if math.IsNaN(first) {
		return false
	}
	for _, v := range tail[1:] {
		if math.IsNaN(v) || v != first {
			return false
		}
	}
	return true
}
