package study

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPlanPeriods(t *testing.T) {
	cfg := DefaultPlanConfig()

	tests := []struct {
		name string
		n    int
		want int
	}{
		{"far too short", 500, 0},
		{"one short of first period", 999, 0},
		{"exactly one period", 1000, 1},
		{"just under second period", 1249, 1},
		{"two periods", 1250, 2},
		{"typical five year history", 1260, 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			periods := PlanPeriods(tt.n, cfg)
			assert.Len(t, periods, tt.want)
		})
	}
}

func TestPlanPeriods_Layout(t *testing.T) {
	periods := PlanPeriods(1250, DefaultPlanConfig())
	require.Len(t, periods, 2)

	first := periods[0]
	assert.Equal(t, 0, first.TrainStart)
	assert.Equal(t, 750, first.TrainEnd)
	assert.Equal(t, 750, first.TestStart)
	assert.Equal(t, 1000, first.TestEnd)

	// second period starts one step later; train windows overlap by 500 days
	second := periods[1]
	assert.Equal(t, 250, second.TrainStart)
	assert.Equal(t, 1000, second.TrainEnd)
	assert.Equal(t, 1000, second.TestStart)
	assert.Equal(t, 1250, second.TestEnd)
}

func TestPlanPeriods_NonDefaultStep(t *testing.T) {
	cfg := PlanConfig{TrainLen: 10, TestLen: 5, Step: 3}
	periods := PlanPeriods(22, cfg)
	require.Len(t, periods, 3)

	assert.Equal(t, 0, periods[0].TrainStart)
	assert.Equal(t, 3, periods[1].TrainStart)
	assert.Equal(t, 6, periods[2].TrainStart)
	assert.Equal(t, 21, periods[2].TestEnd)
}

func TestPeriod_Dates(t *testing.T) {
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	dates := make([]time.Time, 20)
	for i := range dates {
		dates[i] = base.AddDate(0, 0, i)
	}

	p := Period{TrainStart: 2, TrainEnd: 5, TestStart: 5, TestEnd: 8}

	train := p.TrainDates(dates)
	require.Len(t, train, 3)
	assert.Equal(t, dates[2], train[0])
	assert.Equal(t, dates[4], train[2])

	test := p.TestDates(dates)
	require.Len(t, test, 3)
	assert.Equal(t, dates[5], test[0])
	assert.Equal(t, dates[7], test[2])
}
