package study

import (
	"errors"
	"fmt"
	"math"

	"gonum.org/v1/gonum/stat"

	"github.com/wonny/signalcheck/internal/panel"
)

// ErrDegenerateStdDev is returned when the pooled train returns have zero
// or undefined standard deviation. A study period hitting this is failed
// explicitly instead of letting NaN/Inf propagate into sequences.
var ErrDegenerateStdDev = errors.New("study: degenerate standard deviation in train returns")

// Standardizer applies the affine transform z = (x − μ) / σ, with μ and σ
// fitted on pooled train-period returns only. Test data never influences
// the fitted parameters.
// ⭐ SSOT: 표준화 파라미터는 학습 구간에서만 적합
type Standardizer struct {
	mean   float64
	std    float64
	fitted bool
}

// Fit pools every (date, asset) cell of the train panel — all assets
// together, not per asset — and computes mean and standard deviation over
// the non-NaN pool.
func (s *Standardizer) Fit(train *panel.Panel) error {
	pool := make([]float64, 0, train.NumDates()*train.NumAssets())
	for i := 0; i < train.NumDates(); i++ {
		for _, v := range train.Row(i) {
			if !math.IsNaN(v) {
				pool = append(pool, v)
			}
		}
	}
	if len(pool) < 2 {
		return fmt.Errorf("%w: %d observations", ErrDegenerateStdDev, len(pool))
	}

	mean := stat.Mean(pool, nil)
	std := stat.StdDev(pool, nil)
	if std == 0 || math.IsNaN(std) {
		return ErrDegenerateStdDev
	}

	s.mean = mean
	s.std = std
	s.fitted = true
	return nil
}

// Params returns the fitted (mean, std) pair.
func (s *Standardizer) Params() (mean, std float64) { return s.mean, s.std }

// Transform returns a new panel with the fitted transform applied to every
// cell. NaN cells stay NaN. The input panel is not modified.
func (s *Standardizer) Transform(p *panel.Panel) (*panel.Panel, error) {
	if !s.fitted {
		return nil, errors.New("study: standardizer not fitted")
	}

	data := make([][]float64, p.NumDates())
	for i := 0; i < p.NumDates(); i++ {
		row := make([]float64, p.NumAssets())
		for j, v := range p.Row(i) {
			if math.IsNaN(v) {
				row[j] = math.NaN()
				continue
			}
			row[j] = (v - s.mean) / s.std
		}
		data[i] = row
	}
	return panel.New(p.Dates(), p.Assets(), data)
}
