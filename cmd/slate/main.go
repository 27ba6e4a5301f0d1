// Package main provides the daily slate analysis CLI tool.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/shopspring/decimal"
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

// slateOutput is the printed report: the analyzed slate plus suggested stakes.
type slateOutput struct {
	Report orchestrator.SlateReport     `json:"report"`
	Stakes map[string]models.KellyStake `json:"stakes"`
}

func main() {
	var (
		configPath = flag.String("config", "config/config.yaml", "Path to config file")
		sport      = flag.String("sport", "", "Sport code to analyze (NBA, NFL, MLB, NHL)")
		dateFlag   = flag.String("date", "", "Slate date (YYYY-MM-DD), defaults to today")
	)
	flag.Parse()

	appLog := logrus.New()
	ctx := context.Background()

	if *sport == "" {
		appLog.Fatal("Flag -sport is required")
	}

	cfg := loadConfigWithSecrets(*configPath, appLog)
	appLog = logger.NewLogger(cfg.App.LogLevel)

	date := time.Now().UTC()
	if *dateFlag != "" {
		parsed, err := time.Parse("2006-01-02", *dateFlag)
		if err != nil {
			appLog.Fatalf("Invalid date: %v", err)
		}
		date = parsed
	}

	db, err := database.NewDB(ctx, &cfg.Database)
	if err != nil {
		appLog.WithError(err).Fatal("Failed to connect to database")
	}
	defer db.Close()

	orch, err := buildOrchestrator(cfg, db, appLog)
	if err != nil {
		appLog.WithError(err).Fatal("Failed to build prediction pipeline")
	}

	games := fetchGamesClient(cfg, appLog)
	bets, contexts, locations := collectSlate(ctx, games, *sport, date, appLog)
	if len(bets) == 0 {
		appLog.WithFields(logrus.Fields{
			"sport": *sport,
			"date":  date.Format("2006-01-02"),
		}).Info("No offered props for the slate")
		return
	}

	report := orch.AnalyzeSlate(ctx, bets, contexts, locations)
	stakes := engine.CalculateKellySizes(report.TopPlays, decimal.NewFromFloat(cfg.Betting.Bankroll))

	audit := logger.NewAuditLogger(appLog)
	for label, stake := range stakes {
		audit.LogStakeSuggestion(label, stake.Fraction, stake.Stake.String(), cfg.Betting.Bankroll)
	}

	printJSON(slateOutput{Report: report, Stakes: stakes}, appLog)
}

func fetchGamesClient(cfg *config.Config, appLog *logrus.Logger) datasource.GamesSource {
	httpCfg := datasource.DefaultHTTPClientConfig()
	httpCfg.RateLimit = float64(cfg.Odds.RequestsPerSecond)
	httpCfg.MaxRetries = cfg.Odds.RetryAttempts
	httpCfg.Timeout = time.Duration(cfg.Odds.TimeoutSeconds) * time.Second
	return datasource.NewSportsAPIClient(cfg.Odds.APIURL, cfg.Odds.APIKey, httpCfg, appLog)
}

// collectSlate flattens the day's games into the prop list plus the per-game
// context and location maps the analyzer wants.
func collectSlate(ctx context.Context, src datasource.GamesSource, sport string, date time.Time, appLog *logrus.Logger) ([]models.PropBet, map[string]models.GameContext, map[string]string) {
	games, err := src.FetchGames(ctx, sport, date)
	if err != nil {
		appLog.WithError(err).Fatal("Failed to fetch games")
	}

	var bets []models.PropBet
	contexts := make(map[string]models.GameContext, len(games))
	locations := make(map[string]string, len(games))

	for _, game := range games {
		gameTime := game.StartTime
		venue := game.Venue
		contexts[game.GameID] = models.GameContext{
			GameID:   game.GameID,
			Venue:    &venue,
			GameTime: &gameTime,
		}
		if !game.Indoor {
			locations[game.GameID] = game.Location
		}

		props, err := src.FetchProps(ctx, game.GameID)
		if err != nil {
			appLog.WithError(err).WithField("game_id", game.GameID).Warn("Failed to fetch props, skipping game")
			continue
		}
		for _, prop := range props {
			if prop.GameID == "" {
				prop.GameID = game.GameID
			}
			bets = append(bets, prop)
		}
	}
	return bets, contexts, locations
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
	for _, sport := range cat.Sports() {
		for _, stat := range cat.StatNames(sport) {
			registry.Register(sport, stat, engine.DefaultModels()...)
		}
	}
	eng := engine.New(registry, cfg.PredictionCacheTTL(), appLog)

	adjuster := crossref.NewAdjuster(crossref.NewStochasticReferee(cfg.Prediction.RefereeSeed), appLog)
	historical := repository.NewPostgresPerformanceRepository(db)
	baselines := baseline.NewService(baseline.NewNeutralRanker(), cfg.BaselineCacheTTL(), appLog)

	var weatherSrc weather.Source
	if cfg.Features.WeatherEnabled {
		httpCfg := datasource.DefaultHTTPClientConfig()
		httpCfg.RateLimit = float64(cfg.Weather.RequestsPerSecond)
		httpCfg.MaxRetries = cfg.Weather.RetryAttempts
		httpCfg.Timeout = time.Duration(cfg.Weather.TimeoutSeconds) * time.Second
		src := weather.NewHTTPSource(cfg.Weather.APIURL, cfg.Weather.APIKey, httpCfg, appLog)
		weatherSrc = weather.NewCachedSource(weather.NewFallbackSource(src, appLog), cfg.WeatherCacheTTL())
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
	if !cfg.Features.ParlaysEnabled {
		orchCfg.MaxParlays = 0
	}
	return orchestrator.New(cat, historical, baselines, weatherSrc, adjuster, eng, orchCfg, appLog), nil
}

func printJSON(v interface{}, appLog *logrus.Logger) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		appLog.Fatalf("Failed to marshal output: %v", err)
	}
	fmt.Println(string(data))
}
