package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "development", cfg.Env)
	assert.Equal(t, "info", cfg.LogLevel)

	assert.Equal(t, "KOSPI", cfg.Eval.Market)
	assert.Equal(t, 200, cfg.Eval.TopN)
	assert.Equal(t, 5, cfg.Eval.LookbackYears)
	assert.Equal(t, 0.70, cfg.Eval.MinCoverage)
	assert.Equal(t, 100, cfg.Eval.DelistWindow)

	assert.Equal(t, 750, cfg.Eval.TrainLen)
	assert.Equal(t, 250, cfg.Eval.TestLen)
	assert.Equal(t, 250, cfg.Eval.Step)

	assert.Equal(t, 240, cfg.Eval.Window)
	assert.Equal(t, 25, cfg.Eval.HiddenSize)
	assert.Equal(t, 2, cfg.Eval.NumLayers)
	assert.Equal(t, 0.1, cfg.Eval.Dropout)
	assert.Equal(t, 1e-3, cfg.Eval.LearningRate)
	assert.Equal(t, 10, cfg.Eval.Epochs)
	assert.Equal(t, 512, cfg.Eval.BatchSize)
	assert.Equal(t, int64(42), cfg.Eval.Seed)
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("EVAL_MARKET", "KOSDAQ")
	t.Setenv("EVAL_TOP_N", "50")
	t.Setenv("EVAL_WINDOW", "120")
	t.Setenv("NAVER_REQUESTS_PER_SEC", "2.5")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "KOSDAQ", cfg.Eval.Market)
	assert.Equal(t, 50, cfg.Eval.TopN)
	assert.Equal(t, 120, cfg.Eval.Window)
	assert.Equal(t, 2.5, cfg.Naver.RequestsPerSec)
}

func TestLoad_MalformedValuesFallBack(t *testing.T) {
	t.Setenv("EVAL_TOP_N", "not-a-number")
	t.Setenv("EVAL_DROPOUT", "abc")
	t.Setenv("DB_MAX_CONN_LIFETIME", "forever")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 200, cfg.Eval.TopN)
	assert.Equal(t, 0.1, cfg.Eval.Dropout)
	assert.Equal(t, cfg.Database.MaxConnLifetime.String(), "1h0m0s")
}

func TestLoad_Validation(t *testing.T) {
	tests := []struct {
		name  string
		key   string
		value string
	}{
		{"unknown env", "ENV", "sandbox"},
		{"unknown market", "EVAL_MARKET", "NASDAQ"},
		{"negative train length", "EVAL_TRAIN_LEN", "-1"},
		{"window not smaller than train", "EVAL_WINDOW", "750"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv(tt.key, tt.value)
			_, err := Load()
			assert.Error(t, err)
		})
	}
}
