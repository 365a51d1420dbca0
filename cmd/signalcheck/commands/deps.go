package commands

import (
	"fmt"

	"github.com/wonny/signalcheck/internal/marketdata"
	"github.com/wonny/signalcheck/internal/marketdata/naver"
	"github.com/wonny/signalcheck/internal/marketdata/store"
	"github.com/wonny/signalcheck/internal/model"
	"github.com/wonny/signalcheck/internal/panel"
	"github.com/wonny/signalcheck/internal/runner"
	"github.com/wonny/signalcheck/internal/study"
	"github.com/wonny/signalcheck/pkg/config"
	"github.com/wonny/signalcheck/pkg/database"
	"github.com/wonny/signalcheck/pkg/httputil"
	"github.com/wonny/signalcheck/pkg/logger"
)

// deps holds the wired dependency graph every command starts from.
type deps struct {
	cfg       *config.Config
	logger    *logger.Logger
	db        *database.DB
	results   *store.ResultRepository
	collector *marketdata.Collector
	engine    *runner.Engine
}

// initDeps loads config and wires the full graph.
// ⭐ SSOT: 의존성 조립은 여기서만
func initDeps() (*deps, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	if verbose {
		cfg.LogLevel = "debug"
	}

	log := logger.New(cfg)

	db, err := database.New(cfg)
	if err != nil {
		return nil, fmt.Errorf("connect to database: %w", err)
	}

	prices := store.NewPriceRepository(db.Pool)
	universe := store.NewUniverseRepository(db.Pool)
	results := store.NewResultRepository(db.Pool)

	httpClient := httputil.New(log)
	naverClient := naver.NewClient(cfg, httpClient, log)
	collector := marketdata.NewCollector(naverClient, prices, universe, log)

	runnerCfg := runner.Config{
		Plan: study.PlanConfig{
			TrainLen: cfg.Eval.TrainLen,
			TestLen:  cfg.Eval.TestLen,
			Step:     cfg.Eval.Step,
		},
		Model: model.Config{
			Window:       cfg.Eval.Window,
			HiddenSize:   cfg.Eval.HiddenSize,
			NumLayers:    cfg.Eval.NumLayers,
			Dropout:      cfg.Eval.Dropout,
			LearningRate: cfg.Eval.LearningRate,
			Epochs:       cfg.Eval.Epochs,
			BatchSize:    cfg.Eval.BatchSize,
			Seed:         cfg.Eval.Seed,
		},
	}
	filter := panel.FilterConfig{
		MinCoverage:  cfg.Eval.MinCoverage,
		DelistWindow: cfg.Eval.DelistWindow,
	}
	provider := store.NewProvider(prices, universe)
	engine := runner.NewEngine(provider, runner.NewRunner(runnerCfg, log), filter, log)

	return &deps{
		cfg:       cfg,
		logger:    log,
		db:        db,
		results:   results,
		collector: collector,
		engine:    engine,
	}, nil
}

// close releases held resources.
func (d *deps) close() {
	d.db.Close()
}
