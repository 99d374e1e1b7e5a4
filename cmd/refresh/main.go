// Command refresh runs one pipeline build from the command line: fetch (if
// an API key is configured), rebuild every derived table and update the
// prediction ledger, then exit.
package main

import (
	"context"
	"os"
	"time"

	"go.uber.org/zap"

	"github.com/Tom-Draper/Premier-League/analysis"
	"github.com/Tom-Draper/Premier-League/config"
	"github.com/Tom-Draper/Premier-League/dataset"
	"github.com/Tom-Draper/Premier-League/ledger"
	applog "github.com/Tom-Draper/Premier-League/logger"
	"github.com/Tom-Draper/Premier-League/teams"
)

func main() {
	cfg := config.Load()
	logger, err := applog.New(cfg.Debug)
	if err != nil {
		panic(err)
	}
	defer func() { _ = logger.Sync() }()

	store, err := dataset.NewStore(cfg.DataDir)
	if err != nil {
		logger.Fatal("open dataset store failed", zap.Error(err))
	}
	led := ledger.NewStore(cfg.LedgerPath(), logger)

	var feed *dataset.Client
	if cfg.FootballDataAPIKey != "" {
		feed = dataset.NewClient(cfg.FootballDataAPIKey, logger)
	}

	pipe := analysis.New(cfg, teams.PremierLeague(), store, led, feed, logger)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()
	if err := pipe.Refresh(ctx); err != nil {
		logger.Error("refresh failed", zap.Error(err))
		os.Exit(1)
	}
	logger.Info("refresh complete", zap.Int("season", cfg.Season))
}
