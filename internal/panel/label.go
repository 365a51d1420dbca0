package panel

import (
	"math"
	"time"
)

// Labels derives the binary outperformance label panel from a return panel.
//
// label[t][a] = 1 when asset a's return at t+1 exceeds the cross-sectional
// median of all assets' returns at t+1, else 0. Cells where the t+1 return
// is missing are NaN, and the last date carries no labels at all since no
// t+1 exists.
// ⭐ SSOT: 라벨 정의(익일 수익률 > 단면 중앙값)는 여기서만
func Labels(returns *Panel) (*Panel, error) {
	n := returns.NumDates()
	m := returns.NumAssets()

	data := make([][]float64, n)
	for t := 0; t < n; t++ {
		row := make([]float64, m)
		if t+1 >= n {
			for j := range row {
				row[j] = math.NaN()
			}
			data[t] = row
			continue
		}

		next := returns.Row(t + 1)
		med := NaNMedian(next)
		for j := 0; j < m; j++ {
			r := next[j]
			if math.IsNaN(r) || math.IsNaN(med) {
				row[j] = math.NaN()
				continue
			}
			if r > med {
				row[j] = 1
			} else {
				row[j] = 0
			}
		}
		data[t] = row
	}

	dates := make([]time.Time, n)
	copy(dates, returns.Dates())
	assets := make([]string, m)
	copy(assets, returns.Assets())
	return New(dates, assets, data)
}
