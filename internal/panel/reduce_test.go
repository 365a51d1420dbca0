package panel

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNaNMean(t *testing.T) {
	nan := math.NaN()

	assert.InDelta(t, 2.0, NaNMean([]float64{1, 2, 3}), 1e-12)
	assert.InDelta(t, 2.0, NaNMean([]float64{1, nan, 3}), 1e-12)
	assert.True(t, math.IsNaN(NaNMean([]float64{nan, nan})))
	assert.True(t, math.IsNaN(NaNMean(nil)))
}

func TestNaNStdDev(t *testing.T) {
	nan := math.NaN()

	// sample std of {1,2,3} is 1
	assert.InDelta(t, 1.0, NaNStdDev([]float64{1, 2, 3}), 1e-12)
	assert.InDelta(t, math.Sqrt2, NaNStdDev([]float64{1, nan, 3}), 1e-12)

	// fewer than two observations
	assert.True(t, math.IsNaN(NaNStdDev([]float64{5})))
	assert.True(t, math.IsNaN(NaNStdDev([]float64{5, nan})))
}

func TestNaNMedian(t *testing.T) {
	nan := math.NaN()

	tests := []struct {
		name string
		xs   []float64
		want float64
	}{
		{"odd count", []float64{3, 1, 2}, 2},
		{"even count averages middle two", []float64{4, 1, 3, 2}, 2.5},
		{"NaN skipped", []float64{1, nan, 3, nan, 2}, 2},
		{"single value", []float64{7}, 7},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, NaNMedian(tt.xs), 1e-12)
		})
	}

	assert.True(t, math.IsNaN(NaNMedian([]float64{nan})))
	assert.True(t, math.IsNaN(NaNMedian(nil)))
}
