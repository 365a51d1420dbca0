package study

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildSequences_WindowExcludesDecisionDate(t *testing.T) {
	returns := testPanel(t, []string{"A"}, [][]float64{
		{0.1}, {0.2}, {0.3}, {0.4}, {0.5},
	})
	labels := testPanel(t, []string{"A"}, [][]float64{
		{0}, {1}, {0}, {1}, {math.NaN()},
	})

	seqs, err := BuildSequences(returns, labels, 3)
	require.NoError(t, err)
	require.Len(t, seqs, 1) // only i=3 has a window and a label; i=4 label is NaN

	s := seqs[0]
	assert.Equal(t, []float64{0.1, 0.2, 0.3}, s.Window) // rows [0,3), not including row 3
	assert.Equal(t, 1, s.Label)
	assert.Equal(t, "A", s.Asset)
	assert.Equal(t, returns.Dates()[3], s.Date)
	assert.Equal(t, s.Date, s.Provenance().Date)
}

func TestBuildSequences_CountPerAsset(t *testing.T) {
	n, window := 245, 240
	col := make([][]float64, n)
	lab := make([][]float64, n)
	for i := 0; i < n; i++ {
		col[i] = []float64{float64(i) / 1000}
		lab[i] = []float64{float64(i % 2)}
	}
	returns := testPanel(t, []string{"A"}, col)
	labels := testPanel(t, []string{"A"}, lab)

	seqs, err := BuildSequences(returns, labels, window)
	require.NoError(t, err)
	assert.Len(t, seqs, n-window)
}

func TestBuildSequences_SkipsNaNLabels(t *testing.T) {
	nan := math.NaN()
	returns := testPanel(t, []string{"A", "B"}, [][]float64{
		{0.1, 0.1}, {0.2, 0.2}, {0.3, 0.3}, {0.4, 0.4},
	})
	labels := testPanel(t, []string{"A", "B"}, [][]float64{
		{0, 0}, {1, 1}, {nan, 0}, {1, nan},
	})

	seqs, err := BuildSequences(returns, labels, 2)
	require.NoError(t, err)

	// A keeps i=3 only (i=2 label NaN); B keeps i=2 only
	require.Len(t, seqs, 2)
	byAsset := map[string]Sequence{}
	for _, s := range seqs {
		byAsset[s.Asset] = s
	}
	assert.Equal(t, returns.Dates()[3], byAsset["A"].Date)
	assert.Equal(t, returns.Dates()[2], byAsset["B"].Date)
}

func TestBuildSequences_WindowIsACopy(t *testing.T) {
	returns := testPanel(t, []string{"A"}, [][]float64{{0.1}, {0.2}, {0.3}})
	labels := testPanel(t, []string{"A"}, [][]float64{{0}, {0}, {1}})

	seqs, err := BuildSequences(returns, labels, 2)
	require.NoError(t, err)
	require.Len(t, seqs, 1)

	seqs[0].Window[0] = 99
	assert.Equal(t, 0.1, returns.AtIndex(0, 0))
}

func TestBuildSequences_Validation(t *testing.T) {
	returns := testPanel(t, []string{"A"}, [][]float64{{0.1}, {0.2}})
	labels := testPanel(t, []string{"A", "B"}, [][]float64{{0, 0}, {1, 1}})

	_, err := BuildSequences(returns, labels, 1)
	assert.Error(t, err)

	labels = testPanel(t, []string{"A"}, [][]float64{{0}, {1}})
	_, err = BuildSequences(returns, labels, 0)
	assert.Error(t, err)

	// window longer than the axis yields zero sequences, not an error
	seqs, err := BuildSequences(returns, labels, 10)
	require.NoError(t, err)
	assert.Empty(t, seqs)
}
