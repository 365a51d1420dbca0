// Package panel implements the aligned (dates × assets) float64 grids the
// evaluation pipeline works on: close prices, simple returns, and binary
// outperformance labels. Missing observations are NaN.
//
// Every cross-panel lookup goes through explicit date→index and asset→index
// maps; nothing downstream relies on positional alignment between panels
// whose asset sets may differ after delisting removal.
package panel

import (
	"fmt"
	"math"
	"time"
)

// Panel is an immutable 2D grid of float64 values over trading dates (rows)
// and asset codes (columns). NaN marks a missing cell.
// ⭐ SSOT: 날짜×종목 2차원 데이터는 이 타입으로만 표현
type Panel struct {
	dates  []time.Time
	assets []string
	data   [][]float64 // [dateIdx][assetIdx]

	dateIdx  map[time.Time]int
	assetIdx map[string]int
}

// New builds a panel from raw rows. It copies nothing; callers hand over
// ownership of dates, assets and data.
func New(dates []time.Time, assets []string, data [][]float64) (*Panel, error) {
	if len(data) != len(dates) {
		return nil, fmt.Errorf("panel: %d rows for %d dates", len(data), len(dates))
	}
	for i, row := range data {
		if len(row) != len(assets) {
			return nil, fmt.Errorf("panel: row %d has %d cells for %d assets", i, len(row), len(assets))
		}
	}

	p := &Panel{
		dates:    dates,
		assets:   assets,
		data:     data,
		dateIdx:  make(map[time.Time]int, len(dates)),
		assetIdx: make(map[string]int, len(assets)),
	}
	for i, d := range dates {
		p.dateIdx[d] = i
	}
	for j, a := range assets {
		p.assetIdx[a] = j
	}
	return p, nil
}

// Dates returns the date axis in ascending order.
func (p *Panel) Dates() []time.Time { return p.dates }

// Assets returns the asset axis.
func (p *Panel) Assets() []string { return p.assets }

// NumDates returns the number of rows.
func (p *Panel) NumDates() int { return len(p.dates) }

// NumAssets returns the number of columns.
func (p *Panel) NumAssets() int { return len(p.assets) }

// DateIndex returns the row index of a date.
func (p *Panel) DateIndex(d time.Time) (int, bool) {
	i, ok := p.dateIdx[d]
	return i, ok
}

// AssetIndex returns the column index of an asset.
func (p *Panel) AssetIndex(a string) (int, bool) {
	j, ok := p.assetIdx[a]
	return j, ok
}

// At returns the value for (date, asset). The second result is false when
// either axis key is unknown; a present-but-missing cell returns (NaN, true).
func (p *Panel) At(d time.Time, asset string) (float64, bool) {
	i, ok := p.dateIdx[d]
	if !ok {
		return math.NaN(), false
	}
	j, ok := p.assetIdx[asset]
	if !ok {
		return math.NaN(), false
	}
	return p.data[i][j], true
}

// AtIndex returns the value at (row, col) without bounds checks.
func (p *Panel) AtIndex(i, j int) float64 { return p.data[i][j] }

// Row returns the values of one date row.
func (p *Panel) Row(i int) []float64 { return p.data[i] }

// Column copies one asset's series out of the panel.
func (p *Panel) Column(j int) []float64 {
	col := make([]float64, len(p.dates))
	for i := range p.dates {
		col[i] = p.data[i][j]
	}
	return col
}

// NextDate returns the date immediately following d on this panel's axis.
// The second result is false when d is unknown or is the last date.
func (p *Panel) NextDate(d time.Time) (time.Time, bool) {
	i, ok := p.dateIdx[d]
	if !ok || i+1 >= len(p.dates) {
		return time.Time{}, false
	}
	return p.dates[i+1], true
}

// SliceDates returns a view of rows [i0, i1). The returned panel shares the
// underlying rows; both panels must be treated as read-only.
func (p *Panel) SliceDates(i0, i1 int) (*Panel, error) {
	if i0 < 0 || i1 > len(p.dates) || i0 >= i1 {
		return nil, fmt.Errorf("panel: invalid date slice [%d, %d) for %d dates", i0, i1, len(p.dates))
	}
	return New(p.dates[i0:i1], p.assets, p.data[i0:i1])
}
