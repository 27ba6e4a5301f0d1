// Package main provides the entry point for the prediction daemon.
package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/yourusername/prop-edge/internal/baseline"
	"github.com/yourusername/prop-edge/internal/catalog"
	"github.com/yourusername/prop-edge/internal/config"
	"github.com/yourusername/prop-edge/internal/crossref"
	"github.com/yourusername/prop-edge/internal/database"
	"github.com/yourusername/prop-edge/internal/datasource"
	"github.com/yourusername/prop-edge/internal/engine"
	"github.com/yourusername/prop-edge/internal/health"
	"github.com/yourusername/prop-edge/internal/logger"
	"github.com/yourusername/prop-edge/internal/metrics"
	"github.com/yourusername/prop-edge/internal/oddsfeed"
	"github.com/yourusername/prop-edge/internal/orchestrator"
	"github.com/yourusername/prop-edge/internal/repository"
	"github.com/yourusername/prop-edge/internal/scheduler"
	"github.com/yourusername/prop-edge/internal/weather"
)

func main() {
	// Load configuration
	cfg, err := config.Load(configPath())
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// Load AWS secrets if enabled
	if os.Getenv("AWS_SECRETS_ENABLED") == "true" {
		region := os.Getenv("AWS_REGION")
		secretName := os.Getenv("AWS_SECRET_NAME")
		if region == "" || secretName == "" {
			log.Fatalf("AWS_REGION and AWS_SECRET_NAME environment variables must be set when AWS_SECRETS_ENABLED is true")
		}
		if err := config.LoadSecretsFromAWS(cfg, region, secretName); err != nil {
			log.Fatalf("Failed to load secrets: %v", err)
		}
	}

	// Validate configuration
	if err := config.Validate(cfg); err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}
	if err := config.ValidateEnvironment(cfg); err != nil {
		log.Fatalf("Invalid configuration for environment: %v", err)
	}

	// Set up logging
	appLog := logger.NewLogger(cfg.App.LogLevel)
	appLog.WithFields(logrus.Fields{
		"environment": cfg.App.Environment,
		"log_level":   cfg.App.LogLevel,
	}).Info("Prop Edge prediction daemon starting")

	metrics.InitRegistry()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Initialize database connection
	db, err := database.NewDB(ctx, &cfg.Database)
	if err != nil {
		appLog.WithError(err).Fatal("Failed to connect to database")
	}
	defer db.Close()

	appLog.Info("Database connection established")

	// Initialize repositories
	performanceRepo := repository.NewPostgresPerformanceRepository(db)
	predictionRepo := repository.NewPostgresPredictionRepository(db)

	// Build the stat catalog and the prediction stack
	cat, err := catalog.New()
	if err != nil {
		appLog.WithError(err).Fatal("Failed to build stat catalog")
	}

	registry := engine.NewRegistry()
	for _, sport := range cat.Sports() {
		for _, stat := range cat.StatNames(sport) {
			registry.Register(sport, stat, engine.DefaultModels()...)
		}
	}
	eng := engine.New(registry, cfg.PredictionCacheTTL(), appLog)
	appLog.WithField("models", registry.Size()).Info("Prediction engine initialized")

	adjuster := crossref.NewAdjuster(crossref.NewStochasticReferee(cfg.Prediction.RefereeSeed), appLog)

	var weatherSrc weather.Source
	if cfg.Features.WeatherEnabled {
		weatherSrc = newWeatherSource(cfg, appLog)
		appLog.WithField("api_url", cfg.Weather.APIURL).Info("Weather source initialized")
	} else {
		appLog.Info("Weather adjustments disabled; predictions skip the weather stage")
	}

	// Baseline service shared between the pipeline and the refresh job, so
	// predictions read the cache the cron warms.
	baselines := baseline.NewService(baseline.NewNeutralRanker(), cfg.BaselineCacheTTL(), appLog)

	orchCfg := orchestrator.Config{
		Season:           cfg.Prediction.Season,
		TopPlays:         cfg.Betting.TopPlays,
		MinEdge:          cfg.Betting.MinEdge,
		MinConfidence:    cfg.Betting.MinConfidence,
		MaxParlays:       cfg.Betting.MaxParlays,
		MaxParlayLegs:    cfg.Betting.MaxParlayLegs,
		MaxParallelFetch: cfg.Weather.MaxParallelFetch,
	}
	if !cfg.Features.ParlaysEnabled {
		orchCfg.MaxParlays = 0
	}
	orch := orchestrator.New(cat, performanceRepo, baselines, weatherSrc, adjuster, eng, orchCfg, appLog)
	orch.SetRecorder(predictionRepo)

	// Games and props source
	gamesSrc := newGamesSource(cfg, appLog)

	// Background jobs
	refreshJob := &baselineRefreshJob{
		repo:      performanceRepo,
		baselines: baselines,
		season:    cfg.Prediction.Season,
		logger:    appLog,
	}
	slates := newSlateJob(gamesSrc, orch, cat, appLog)

	sched := scheduler.NewScheduler(refreshJob, slates, appLog)
	if err := sched.ScheduleBaselineRefresh(cfg.Scheduler.BaselineRefresh); err != nil {
		appLog.WithError(err).Fatal("Failed to schedule baseline refresh")
	}
	if err := sched.ScheduleSlateRun(cfg.Scheduler.SlateRun); err != nil {
		appLog.WithError(err).Fatal("Failed to schedule slate run")
	}
	if err := sched.Start(); err != nil {
		appLog.WithError(err).Fatal("Failed to start scheduler")
	}
	defer func() {
		if err := sched.Stop(); err != nil {
			appLog.WithError(err).Error("Error stopping scheduler")
		}
	}()

	// Odds feed
	var stream *oddsfeed.StreamClient
	if cfg.Features.OddsFeedEnabled {
		stream = oddsfeed.NewStreamClient(cfg.Odds.StreamURL, cfg.Odds.APIKey, appLog)
		stream.AddHandler(func(update oddsfeed.LineUpdate) error {
			// A moved line invalidates the cached prediction so the next
			// evaluation sees the fresh market.
			eng.Invalidate(update.EntityID, update.StatName, update.GameID)
			appLog.WithFields(logrus.Fields{
				"game_id": update.GameID,
				"player":  update.Player,
				"stat":    update.StatName,
				"line":    update.Line,
			}).Debug("Line moved")
			return nil
		})
		if err := stream.ConnectWithRetry(ctx); err != nil {
			appLog.WithError(err).Error("Odds feed unavailable, continuing without live line updates")
		} else if err := stream.Subscribe(nil, cat.Sports()); err != nil {
			appLog.WithError(err).Error("Failed to subscribe to line updates")
		}
		defer func() {
			if stream != nil {
				if err := stream.Close(); err != nil {
					appLog.WithError(err).Error("Error closing odds stream")
				}
			}
		}()
	}

	// Health and metrics servers
	healthServer := health.NewServer(health.Config{
		ServiceName: cfg.App.Name,
		Season:      cfg.Prediction.Season,
		Port:        fmt.Sprintf("%d", cfg.Health.Port),
		Logger:      appLog,
		DB:          db,
	})
	healthServer.AddComponent("models", func(ctx context.Context) string {
		return fmt.Sprintf("%d registered", registry.Size())
	})
	healthServer.AddComponent("scheduler", func(ctx context.Context) string {
		next := sched.GetNextRun()
		if next.IsZero() {
			return "idle"
		}
		return "next run " + next.UTC().Format(time.RFC3339)
	})
	if stream != nil {
		healthServer.AddComponent("odds_feed", func(ctx context.Context) string {
			if !stream.IsConnected() {
				return "disconnected"
			}
			if last := stream.LastMessageTime(); !last.IsZero() {
				return "connected, last message " + last.UTC().Format(time.RFC3339)
			}
			return "connected"
		})
	}
	go func() {
		if err := healthServer.Start(ctx); err != nil && err != http.ErrServerClosed {
			appLog.WithError(err).Error("Health server failed")
		}
	}()
	defer func() {
		if err := healthServer.Shutdown(); err != nil {
			appLog.WithError(err).Error("Error shutting down health server")
		}
	}()

	var metricsServer *http.Server
	if cfg.Metrics.Enabled {
		mux := http.NewServeMux()
		mux.Handle(cfg.Metrics.Path, metrics.Handler())
		metricsServer = &http.Server{
			Addr:    fmt.Sprintf(":%d", cfg.Metrics.Port),
			Handler: mux,
		}
		go func() {
			if err := metricsServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
				appLog.WithError(err).Error("Metrics server failed")
			}
		}()
		appLog.WithFields(logrus.Fields{
			"port": cfg.Metrics.Port,
			"path": cfg.Metrics.Path,
		}).Info("Metrics server started")
	}

	healthServer.SetReady(true)
	appLog.WithFields(logrus.Fields{
		"season":            cfg.Prediction.Season,
		"weather_enabled":   cfg.Features.WeatherEnabled,
		"odds_feed_enabled": cfg.Features.OddsFeedEnabled,
		"parlays_enabled":   cfg.Features.ParlaysEnabled,
		"next_run":          sched.GetNextRun(),
	}).Info("Daemon is running")

	// Wait for shutdown signal
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	sig := <-sigChan
	appLog.WithField("signal", sig).Info("Shutdown signal received")

	healthServer.SetReady(false)
	cancel()

	if metricsServer != nil {
		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer shutdownCancel()
		if err := metricsServer.Shutdown(shutdownCtx); err != nil {
			appLog.WithError(err).Error("Error shutting down metrics server")
		}
	}

	appLog.Info("Prop Edge prediction daemon shut down")
}

func configPath() string {
	if path := os.Getenv("PROP_EDGE_CONFIG_PATH"); path != "" {
		return path
	}
	return "config/config.yaml"
}

func newWeatherSource(cfg *config.Config, appLog *logrus.Logger) weather.Source {
	httpCfg := datasource.DefaultHTTPClientConfig()
	httpCfg.RateLimit = float64(cfg.Weather.RequestsPerSecond)
	httpCfg.MaxRetries = cfg.Weather.RetryAttempts
	httpCfg.Timeout = time.Duration(cfg.Weather.TimeoutSeconds) * time.Second

	src := weather.NewHTTPSource(cfg.Weather.APIURL, cfg.Weather.APIKey, httpCfg, appLog)
	fallback := weather.NewFallbackSource(src, appLog)
	return weather.NewCachedSource(fallback, cfg.WeatherCacheTTL())
}

func newGamesSource(cfg *config.Config, appLog *logrus.Logger) datasource.GamesSource {
	httpCfg := datasource.DefaultHTTPClientConfig()
	httpCfg.RateLimit = float64(cfg.Odds.RequestsPerSecond)
	httpCfg.MaxRetries = cfg.Odds.RetryAttempts
	httpCfg.Timeout = time.Duration(cfg.Odds.TimeoutSeconds) * time.Second
	return datasource.NewSportsAPIClient(cfg.Odds.APIURL, cfg.Odds.APIKey, httpCfg, appLog)
}
