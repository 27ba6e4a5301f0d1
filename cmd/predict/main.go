// Package main provides the single-prediction CLI tool.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/yourusername/prop-edge/internal/baseline"
	"github.com/yourusername/prop-edge/internal/catalog"
	"github.com/yourusername/prop-edge/internal/config"
	"github.com/yourusername/prop-edge/internal/crossref"
	"github.com/yourusername/prop-edge/internal/database"
	"github.com/yourusername/prop-edge/internal/datasource"
	"github.com/yourusername/prop-edge/internal/engine"
	"github.com/yourusername/prop-edge/internal/logger"
	"github.com/yourusername/prop-edge/internal/models"
	"github.com/yourusername/prop-edge/internal/orchestrator"
	"github.com/yourusername/prop-edge/internal/repository"
	"github.com/yourusername/prop-edge/internal/weather"
)

func main() {
	var (
		configPath  = flag.String("config", "config/config.yaml", "Path to config file")
		entityID    = flag.String("entity", "", "Entity ID to predict for")
		entityName  = flag.String("name", "", "Entity display name")
		entityType  = flag.String("type", models.EntityTypePlayer, "Entity type: player or team")
		sport       = flag.String("sport", "", "Sport code (NBA, NFL, MLB, NHL)")
		stats       = flag.String("stats", "", "Comma-separated stat names to predict")
		gameID      = flag.String("game", "", "Game ID for context")
		location    = flag.String("location", "", "Game location for weather lookup")
		marketLine  = flag.Float64("line", 0, "Market line to evaluate against")
		hasLine     = flag.Bool("with-line", false, "Evaluate the -line value against the prediction")
		contextPath = flag.String("context", "", "Path to a game context JSON file")
	)
	flag.Parse()

	appLog := logrus.New()
	ctx := context.Background()

	if *entityID == "" || *sport == "" || *stats == "" {
		appLog.Fatal("Flags -entity, -sport, and -stats are required")
	}

	cfg := loadConfigWithSecrets(*configPath, appLog)
	appLog = logger.NewLogger(cfg.App.LogLevel)

	db, err := database.NewDB(ctx, &cfg.Database)
	if err != nil {
		appLog.WithError(err).Fatal("Failed to connect to database")
	}
	defer db.Close()

	orch, err := buildOrchestrator(cfg, db, appLog)
	if err != nil {
		appLog.WithError(err).Fatal("Failed to build prediction pipeline")
	}

	in := orchestrator.PredictInput{
		EntityID:   *entityID,
		EntityName: *entityName,
		EntityType: *entityType,
		Sport:      *sport,
		GameID:     *gameID,
		Location:   *location,
		Context:    loadGameContext(*contextPath, appLog),
	}
	if *hasLine {
		in.MarketLine = marketLine
	}

	statNames := splitStats(*stats)
	if len(statNames) == 1 {
		in.StatName = statNames[0]
		printJSON(orch.Predict(ctx, in), appLog)
		return
	}
	printJSON(orch.Comprehensive(ctx, in, statNames), appLog)
}

func loadConfigWithSecrets(path string, appLog *logrus.Logger) *config.Config {
	cfg, err := config.Load(path)
	if err != nil {
		appLog.Fatalf("Failed to load config: %v", err)
	}
	if os.Getenv("AWS_SECRETS_ENABLED") == "true" {
		region := os.Getenv("AWS_REGION")
		secretName := os.Getenv("AWS_SECRET_NAME")
		if region == "" || secretName == "" {
			appLog.Fatalf("AWS_REGION and AWS_SECRET_NAME environment variables must be set when AWS_SECRETS_ENABLED is true")
		}
		if err := config.LoadSecretsFromAWS(cfg, region, secretName); err != nil {
			appLog.Fatalf("Failed to load secrets: %v", err)
		}
	}
	if err := config.Validate(cfg); err != nil {
		appLog.Fatalf("Invalid configuration: %v", err)
	}
	return cfg
}

func buildOrchestrator(cfg *config.Config, db *database.DB, appLog *logrus.Logger) (*orchestrator.Orchestrator, error) {
	cat, err := catalog.New()
	if err != nil {
		return nil, fmt.Errorf("failed to build stat catalog: %w", err)
	}

	registry := engine.NewRegistry()
	registerDefaultModels(registry, cat)
	eng := engine.New(registry, cfg.PredictionCacheTTL(), appLog)

	adjuster := crossref.NewAdjuster(crossref.NewStochasticReferee(cfg.Prediction.RefereeSeed), appLog)
	historical := repository.NewPostgresPerformanceRepository(db)
	baselines := baseline.NewService(baseline.NewNeutralRanker(), cfg.BaselineCacheTTL(), appLog)

	var weatherSrc weather.Source
	if cfg.Features.WeatherEnabled {
		weatherSrc = buildWeatherSource(cfg, appLog)
	}

	orchCfg := orchestrator.Config{
		Season:           cfg.Prediction.Season,
		TopPlays:         cfg.Betting.TopPlays,
		MinEdge:          cfg.Betting.MinEdge,
		MinConfidence:    cfg.Betting.MinConfidence,
		MaxParlays:       cfg.Betting.MaxParlays,
		MaxParlayLegs:    cfg.Betting.MaxParlayLegs,
		MaxParallelFetch: cfg.Weather.MaxParallelFetch,
	}
	return orchestrator.New(cat, historical, baselines, weatherSrc, adjuster, eng, orchCfg, appLog), nil
}

func buildWeatherSource(cfg *config.Config, appLog *logrus.Logger) weather.Source {
	httpCfg := datasource.DefaultHTTPClientConfig()
	httpCfg.RateLimit = float64(cfg.Weather.RequestsPerSecond)
	httpCfg.MaxRetries = cfg.Weather.RetryAttempts
	httpCfg.Timeout = time.Duration(cfg.Weather.TimeoutSeconds) * time.Second

	src := weather.NewHTTPSource(cfg.Weather.APIURL, cfg.Weather.APIKey, httpCfg, appLog)
	fallback := weather.NewFallbackSource(src, appLog)
	return weather.NewCachedSource(fallback, cfg.WeatherCacheTTL())
}

func registerDefaultModels(registry *engine.Registry, cat *catalog.Catalog) {
	for _, sport := range cat.Sports() {
		for _, stat := range cat.StatNames(sport) {
			registry.Register(sport, stat, engine.DefaultModels()...)
		}
	}
}

func loadGameContext(path string, appLog *logrus.Logger) models.GameContext {
	if path == "" {
		return models.GameContext{}
	}
	data, err := os.ReadFile(path)
	if err != nil {
		appLog.Fatalf("Failed to read context file: %v", err)
	}
	var gc models.GameContext
	if err := json.Unmarshal(data, &gc); err != nil {
		appLog.Fatalf("Failed to parse context file: %v", err)
	}
	return gc
}

func splitStats(raw string) []string {
	parts := strings.Split(raw, ",")
	stats := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			stats = append(stats, trimmed)
		}
	}
	return stats
}

func printJSON(v interface{}, appLog *logrus.Logger) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		appLog.Fatalf("Failed to marshal output: %v", err)
	}
	fmt.Println(string(data))
}
