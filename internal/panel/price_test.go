package panel

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wonny/signalcheck/internal/contracts"
)

// rawPanel builds a RawPricePanel from per-asset columns.
func rawPanel(t *testing.T, assets []string, cols [][]float64) *contracts.RawPricePanel {
	t.Helper()
	n := len(cols[0])
	for _, col := range cols {
		require.Len(t, col, n)
	}
	close := make([][]float64, n)
	for i := 0; i < n; i++ {
		row := make([]float64, len(assets))
		for j := range assets {
			row[j] = cols[j][i]
		}
		close[i] = row
	}
	return &contracts.RawPricePanel{Dates: days(n), Assets: assets, Close: close}
}

func TestBuildPricePanel_ForwardFill(t *testing.T) {
	nan := math.NaN()
	raw := rawPanel(t, []string{"A"}, [][]float64{
		{nan, 100, nan, nan, 110},
	})

	p, err := BuildPricePanel(raw, FilterConfig{MinCoverage: 0.5, DelistWindow: 0})
	require.NoError(t, err)

	// leading NaN stays, gaps carry the last close forward
	assert.True(t, math.IsNaN(p.AtIndex(0, 0)))
	assert.Equal(t, 100.0, p.AtIndex(1, 0))
	assert.Equal(t, 100.0, p.AtIndex(2, 0))
	assert.Equal(t, 100.0, p.AtIndex(3, 0))
	assert.Equal(t, 110.0, p.AtIndex(4, 0))
}

func TestBuildPricePanel_CoverageFilter(t *testing.T) {
	nan := math.NaN()
	raw := rawPanel(t, []string{"KEEP", "DROP"}, [][]float64{
		{100, 101, 102, 103, 104, 105, 106, 107, 108, 109},
		{nan, nan, nan, nan, nan, nan, nan, 107, 108, 109}, // 30% coverage after fill
	})

	p, err := BuildPricePanel(raw, FilterConfig{MinCoverage: 0.70, DelistWindow: 0})
	require.NoError(t, err)
	assert.Equal(t, []string{"KEEP"}, p.Assets())
}

func TestBuildPricePanel_DelistHeuristic(t *testing.T) {
	flat := make([]float64, 10)
	live := make([]float64, 10)
	for i := range flat {
		flat[i] = 500 // 마지막 구간 전부 동일 종가
		live[i] = 100 + float64(i)
	}
	raw := rawPanel(t, []string{"DEAD", "LIVE"}, [][]float64{flat, live})

	p, err := BuildPricePanel(raw, FilterConfig{MinCoverage: 0.5, DelistWindow: 5})
	require.NoError(t, err)
	assert.Equal(t, []string{"LIVE"}, p.Assets())

	// window longer than the series never triggers
	p, err = BuildPricePanel(raw, FilterConfig{MinCoverage: 0.5, DelistWindow: 11})
	require.NoError(t, err)
	assert.Equal(t, []string{"DEAD", "LIVE"}, p.Assets())
}

func TestBuildPricePanel_AllFiltered(t *testing.T) {
	nan := math.NaN()
	raw := rawPanel(t, []string{"A"}, [][]float64{{nan, nan, nan, 1}})

	_, err := BuildPricePanel(raw, FilterConfig{MinCoverage: 0.9, DelistWindow: 0})
	assert.Error(t, err)
}

func TestBuildPricePanel_EmptyInput(t *testing.T) {
	_, err := BuildPricePanel(&contracts.RawPricePanel{}, DefaultFilterConfig())
	assert.Error(t, err)
}

func TestReturns(t *testing.T) {
	nan := math.NaN()
	prices, err := New(days(4), []string{"A", "B"}, [][]float64{
		{100, nan},
		{110, 50},
		{99, 50},
		{99, nan},
	})
	require.NoError(t, err)

	r, err := Returns(prices)
	require.NoError(t, err)

	// first date dropped
	assert.Equal(t, 3, r.NumDates())
	assert.Equal(t, day(1), r.Dates()[0])

	assert.InDelta(t, 0.10, r.AtIndex(0, 0), 1e-12)
	assert.InDelta(t, -0.10, r.AtIndex(1, 0), 1e-12)
	assert.InDelta(t, 0.0, r.AtIndex(2, 0), 1e-12)

	// NaN previous close propagates
	assert.True(t, math.IsNaN(r.AtIndex(0, 1)))
	assert.InDelta(t, 0.0, r.AtIndex(1, 1), 1e-12)
	assert.True(t, math.IsNaN(r.AtIndex(2, 1)))
}

func TestReturns_TooShort(t *testing.T) {
	prices, err := New(days(1), []string{"A"}, [][]float64{{100}})
	require.NoError(t, err)

	_, err = Returns(prices)
	assert.Error(t, err)
}
