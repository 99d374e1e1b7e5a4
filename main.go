package main

import (
	"context"
	"net/http"
	"os"
	"time"

	"github.com/go-co-op/gocron/v2"
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"go.uber.org/zap"
	"golang.org/x/crypto/acme/autocert"

	"github.com/Tom-Draper/Premier-League/analysis"
	"github.com/Tom-Draper/Premier-League/config"
	"github.com/Tom-Draper/Premier-League/dataset"
	"github.com/Tom-Draper/Premier-League/handlers"
	"github.com/Tom-Draper/Premier-League/ledger"
	applog "github.com/Tom-Draper/Premier-League/logger"
	mw "github.com/Tom-Draper/Premier-League/middleware"
	"github.com/Tom-Draper/Premier-League/teams"
)

func main() {
	cfg := config.Load()
	logger, err := applog.New(cfg.Debug)
	if err != nil {
		panic(err)
	}
	defer func() { _ = logger.Sync() }()
	zap.ReplaceGlobals(logger)

	reg := teams.PremierLeague()
	store, err := dataset.NewStore(cfg.DataDir)
	if err != nil {
		logger.Fatal("open dataset store failed", zap.Error(err))
	}
	led := ledger.NewStore(cfg.LedgerPath(), logger)

	var feed *dataset.Client
	if cfg.FootballDataAPIKey != "" {
		feed = dataset.NewClient(cfg.FootballDataAPIKey, logger)
	} else {
		logger.Warn("no feed API key configured, serving from local cache only")
	}

	pipe := analysis.New(cfg, reg, store, led, feed, logger)

	// First build runs in the background so the server comes up
	// immediately; reads return 503 until it lands.
	go func() {
		if err := pipe.Refresh(context.Background()); err != nil {
			logger.Error("initial refresh failed", zap.Error(err))
		}
	}()

	scheduler, err := gocron.NewScheduler()
	if err != nil {
		logger.Fatal("create scheduler failed", zap.Error(err))
	}
	_, err = scheduler.NewJob(
		gocron.DurationJob(cfg.RefreshInterval),
		gocron.NewTask(func() {
			if err := pipe.Refresh(context.Background()); err != nil {
				logger.Error("scheduled refresh failed", zap.Error(err))
			}
		}),
	)
	if err != nil {
		logger.Fatal("schedule refresh failed", zap.Error(err))
	}
	scheduler.Start()
	defer func() { _ = scheduler.Shutdown() }()

	h := handlers.New(pipe, led, reg, logger)

	e := echo.New()
	e.Use(echomw.RequestLoggerWithConfig(echomw.RequestLoggerConfig{
		LogMethod: true,
		LogURI:    true,
		LogStatus: true,
		LogError:  true,
		LogValuesFunc: func(c echo.Context, v echomw.RequestLoggerValues) error {
			fields := []zap.Field{
				zap.Int("status", v.Status),
				zap.String("method", v.Method),
				zap.String("uri", v.URI),
			}
			if v.Error != nil {
				fields = append(fields, zap.Error(v.Error))
			}
			switch {
			case v.Status >= 500:
				logger.Error("http request", fields...)
			case v.Status >= 400:
				logger.Warn("http request", fields...)
			default:
				logger.Info("http request", fields...)
			}
			return nil
		},
	}))
	e.Use(echomw.Recover())
	e.Use(echomw.CORSWithConfig(echomw.CORSConfig{
		AllowOrigins: []string{"*"},
		AllowMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowHeaders: []string{"*", "Authorization"},
	}))

	// Public read API
	api := e.Group("/api")
	h.Register(api)

	// Protected – require valid JWT in Authorization header
	api.POST("/refresh", h.Refresh, mw.JWT(cfg.JWTKey()))

	if cfg.Debug {
		logger.Info("starting server", zap.String("mode", "debug"), zap.String("addr", cfg.Port))
		if err := e.Start(cfg.Port); err != nil {
			logger.Fatal("server exited", zap.Error(err))
		}
		return
	}

	autoTLS := &autocert.Manager{
		Prompt:     autocert.AcceptTOS,
		Cache:      autocert.DirCache(".cache"),
		HostPolicy: autocert.HostWhitelist(cfg.TLSDomains...),
	}

	s := &http.Server{
		Addr:         ":443",
		Handler:      e,
		TLSConfig:    autoTLS.TLSConfig(),
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 120 * time.Second,
		IdleTimeout:  15 * time.Second,
	}

	if err := s.ListenAndServeTLS("", ""); err != http.ErrServerClosed {
		logger.Error("tls server exited", zap.Error(err))
		os.Exit(1)
	}
}
