// Package config loads all application configuration from the environment.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all configuration for the application
// ⭐ SSOT: 모든 환경변수는 여기서만 읽음
type Config struct {
	Env string // development, staging, production

	// Database
	Database DatabaseConfig

	// Naver Finance
	Naver NaverConfig

	// Evaluation parameters
	Eval EvalConfig

	// Logging
	LogLevel  string
	LogFormat string
}

// DatabaseConfig holds PostgreSQL configuration
type DatabaseConfig struct {
	URL string

	// Connection Pool
	MaxConns        int
	MinConns        int
	MaxConnLifetime time.Duration
	MaxConnIdleTime time.Duration
}

// NaverConfig holds Naver Finance configuration
type NaverConfig struct {
	BaseURL        string
	ChartBaseURL   string
	RequestsPerSec float64 // 초당 요청 제한
}

// EvalConfig holds walk-forward evaluation parameters
type EvalConfig struct {
	Market        string // KOSPI | KOSDAQ
	TopN          int    // 시가총액 상위 종목 수
	LookbackYears int    // 기준일 기준 가격 조회 기간 (년)

	// Panel filters
	MinCoverage  float64 // 최소 데이터 커버리지
	DelistWindow int     // 상장폐지 휴리스틱 윈도우

	// Study period layout
	TrainLen int
	TestLen  int
	Step     int

	// Classifier
	Window       int
	HiddenSize   int
	NumLayers    int
	Dropout      float64
	LearningRate float64
	Epochs       int
	BatchSize    int
	Seed         int64
}

// Load reads configuration from environment variables
// ⭐ SSOT: 이 함수만 os.Getenv()를 호출함
func Load() (*Config, error) {
	loadEnvFile()

	cfg := &Config{
		Env: getEnv("ENV", "development"),

		Database: DatabaseConfig{
			URL:             getEnv("DATABASE_URL", ""),
			MaxConns:        getEnvAsInt("DB_MAX_CONNS", 10),
			MinConns:        getEnvAsInt("DB_MIN_CONNS", 2),
			MaxConnLifetime: getEnvAsDuration("DB_MAX_CONN_LIFETIME", "1h"),
			MaxConnIdleTime: getEnvAsDuration("DB_MAX_CONN_IDLE_TIME", "30m"),
		},

		Naver: NaverConfig{
			BaseURL:        getEnv("NAVER_BASE_URL", "https://finance.naver.com"),
			ChartBaseURL:   getEnv("NAVER_CHART_BASE_URL", "https://fchart.stock.naver.com"),
			RequestsPerSec: getEnvAsFloat("NAVER_REQUESTS_PER_SEC", 5),
		},

		Eval: EvalConfig{
			Market:        getEnv("EVAL_MARKET", "KOSPI"),
			TopN:          getEnvAsInt("EVAL_TOP_N", 200),
			LookbackYears: getEnvAsInt("EVAL_LOOKBACK_YEARS", 5),
			MinCoverage:   getEnvAsFloat("EVAL_MIN_COVERAGE", 0.70),
			DelistWindow:  getEnvAsInt("EVAL_DELIST_WINDOW", 100),
			TrainLen:      getEnvAsInt("EVAL_TRAIN_LEN", 750),
			TestLen:       getEnvAsInt("EVAL_TEST_LEN", 250),
			Step:          getEnvAsInt("EVAL_STEP", 250),
			Window:        getEnvAsInt("EVAL_WINDOW", 240),
			HiddenSize:    getEnvAsInt("EVAL_HIDDEN_SIZE", 25),
			NumLayers:     getEnvAsInt("EVAL_NUM_LAYERS", 2),
			Dropout:       getEnvAsFloat("EVAL_DROPOUT", 0.1),
			LearningRate:  getEnvAsFloat("EVAL_LEARNING_RATE", 1e-3),
			Epochs:        getEnvAsInt("EVAL_EPOCHS", 10),
			BatchSize:     getEnvAsInt("EVAL_BATCH_SIZE", 512),
			Seed:          int64(getEnvAsInt("EVAL_SEED", 42)),
		},

		LogLevel:  getEnv("LOG_LEVEL", "info"),
		LogFormat: getEnv("LOG_FORMAT", "console"),
	}

	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}
	return cfg, nil
}

// validate checks if required configuration values are set
func (c *Config) validate() error {
	if c.Env != "development" && c.Env != "staging" && c.Env != "production" {
		return fmt.Errorf("ENV must be one of: development, staging, production")
	}
	if c.Eval.Market != "KOSPI" && c.Eval.Market != "KOSDAQ" {
		return fmt.Errorf("EVAL_MARKET must be KOSPI or KOSDAQ")
	}
	if c.Eval.TrainLen <= 0 || c.Eval.TestLen <= 0 || c.Eval.Step <= 0 {
		return fmt.Errorf("study period lengths must be positive")
	}
	if c.Eval.Window <= 0 || c.Eval.Window >= c.Eval.TrainLen {
		return fmt.Errorf("EVAL_WINDOW must be positive and smaller than EVAL_TRAIN_LEN")
	}
	return nil
}

// Helper functions (private, only used within this file)

// loadEnvFile tries to load .env from multiple locations
func loadEnvFile() {
	paths := []string{".env"}

	if exe, err := os.Executable(); err == nil {
		exeDir := filepath.Dir(exe)
		paths = append(paths,
			filepath.Join(exeDir, ".env"),
			filepath.Join(exeDir, "..", ".env"),
		)
	}

	for _, path := range paths {
		if _, err := os.Stat(path); err == nil {
			_ = godotenv.Load(path)
			return
		}
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}

	value, err := strconv.Atoi(valueStr)
	if err != nil {
		return defaultValue
	}
	return value
}

func getEnvAsFloat(key string, defaultValue float64) float64 {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}

	value, err := strconv.ParseFloat(valueStr, 64)
	if err != nil {
		return defaultValue
	}
	return value
}

func getEnvAsDuration(key string, defaultValue string) time.Duration {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		valueStr = defaultValue
	}

	duration, err := time.ParseDuration(valueStr)
	if err != nil {
		duration, _ = time.ParseDuration(defaultValue)
	}
	return duration
}
