package orchestrator

import (
	"context"
	"fmt"
	"io"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yourusername/prop-edge/internal/baseline"
	"github.com/yourusername/prop-edge/internal/catalog"
	"github.com/yourusername/prop-edge/internal/crossref"
	"github.com/yourusername/prop-edge/internal/engine"
	"github.com/yourusername/prop-edge/internal/models"
	"github.com/yourusername/prop-edge/internal/weather"
)

func testLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return logger
}

func ptr[T any](v T) *T { return &v }

// stubHistorical serves a fixed stat series for every entity.
type stubHistorical struct {
	stat   string
	values []float64
	err    error
}

func (s stubHistorical) LoadRows(ctx context.Context, entityID, entityType, sport string, seasons []string) ([]models.PerformanceRow, error) {
	if s.err != nil {
		return nil, s.err
	}
	rows := make([]models.PerformanceRow, len(s.values))
	base := time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC)
	for i, v := range s.values {
		rows[i] = models.PerformanceRow{
			EntityID: entityID,
			Sport:    sport,
			GameDate: base.AddDate(0, 0, i),
			Stats:    map[string]float64{s.stat: v},
		}
	}
	return rows, nil
}

// stubWeather serves one fixed observation.
type stubWeather struct {
	obs models.WeatherObservation
	err error
}

func (s stubWeather) Current(ctx context.Context, location string) (models.WeatherObservation, error) {
	return s.obs, s.err
}

func (s stubWeather) Historical(ctx context.Context, location string, at time.Time) (models.WeatherObservation, error) {
	return s.obs, s.err
}

func (s stubWeather) Forecast(ctx context.Context, location string, days int) ([]models.WeatherObservation, error) {
	return []models.WeatherObservation{s.obs}, s.err
}

func windyObservation(speed float64) models.WeatherObservation {
	temp := 70.0
	humidity := 50.0
	pressure := 1013.25
	precip := 0.0
	return models.WeatherObservation{
		Temperature:   &temp,
		Humidity:      &humidity,
		Pressure:      &pressure,
		WindSpeed:     &speed,
		Precipitation: &precip,
		Timestamp:     time.Now().UTC(),
	}
}

func newTestOrchestrator(t *testing.T, historical stubHistorical, weatherSrc weather.Source) *Orchestrator {
	t.Helper()
	cat, err := catalog.New()
	require.NoError(t, err)

	logger := testLogger()
	adjuster := crossref.NewAdjuster(nil, logger)
	eng := engine.New(engine.NewRegistry(), time.Minute, logger)
	baselines := baseline.NewService(nil, time.Minute, logger)

	return New(cat, historical, baselines, weatherSrc, adjuster, eng, DefaultConfig(), logger)
}

func TestPredictAppliesWeatherBeforeCrossRef(t *testing.T) {
	historical := stubHistorical{stat: "passing_yards", values: []float64{250, 250, 250, 250, 250, 250}}
	weatherSrc := stubWeather{obs: windyObservation(25)}
	o := newTestOrchestrator(t, historical, weatherSrc)

	out := o.Predict(context.Background(), PredictInput{
		EntityID:   "qb-17",
		EntityType: models.EntityTypePlayer,
		Sport:      "NFL",
		StatName:   "passing_yards",
		GameID:     "g1",
		Location:   "Buffalo",
		Context:    models.GameContext{IsHome: ptr(true)},
	})

	require.NotNil(t, out.Weather)
	require.NotNil(t, out.CrossRef)
	// Severe wind knocks the projection down before cross-reference runs.
	assert.Less(t, out.Weather.AdjustedValue, out.Weather.BaseValue)
	// Cross-reference starts from the weather-adjusted value, not the base.
	assert.Equal(t, out.Weather.AdjustedValue, out.CrossRef.BaseValue)
	assert.Equal(t, out.CrossRef.AdjustedValue, out.Prediction.PredictedValue)
}

func TestPredictSkipsWeatherForIndoorSport(t *testing.T) {
	historical := stubHistorical{stat: "points", values: []float64{25, 28, 30, 27, 26}}
	weatherSrc := stubWeather{obs: windyObservation(25)}
	o := newTestOrchestrator(t, historical, weatherSrc)

	out := o.Predict(context.Background(), PredictInput{
		EntityID:   "p1",
		EntityType: models.EntityTypePlayer,
		Sport:      "NBA",
		StatName:   "points",
		GameID:     "g1",
		Location:   "Denver",
		Context:    models.GameContext{},
	})
	assert.Nil(t, out.Weather)
	require.NotNil(t, out.CrossRef)
}

func TestPredictSurvivesHistoricalFailure(t *testing.T) {
	historical := stubHistorical{err: fmt.Errorf("connection refused")}
	o := newTestOrchestrator(t, historical, nil)

	out := o.Predict(context.Background(), PredictInput{
		EntityID:   "p1",
		EntityType: models.EntityTypePlayer,
		Sport:      "NBA",
		StatName:   "points",
		GameID:     "g1",
	})
	// Degrades to the no-history fallback, never errors.
	assert.GreaterOrEqual(t, out.Prediction.ConfidenceScore, 0.3)
	assert.LessOrEqual(t, out.Prediction.ConfidenceScore, 0.95)
}

func TestPredictRederivesProbabilitiesFromFinalValue(t *testing.T) {
	historical := stubHistorical{stat: "points", values: []float64{20, 22, 24, 26, 28, 30}}
	o := newTestOrchestrator(t, historical, nil)

	line := 24.5
	out := o.Predict(context.Background(), PredictInput{
		EntityID:   "p1",
		EntityType: models.EntityTypePlayer,
		Sport:      "NBA",
		StatName:   "points",
		GameID:     "g1",
		MarketLine: &line,
		Context:    models.GameContext{ScheduleSpot: ptr(models.ScheduleBackToBack), RestDays: ptr(0)},
	})

	pred := out.Prediction
	for _, lp := range pred.Lines {
		assert.InDelta(t, 1.0, lp.Over+lp.Under, 1e-9)
	}
	mid := (pred.ConfidenceInterval[0] + pred.ConfidenceInterval[1]) / 2
	assert.InDelta(t, pred.PredictedValue, mid, 1e-6)
	assert.NotEmpty(t, pred.Recommendation)
}

func TestComprehensiveCollectsAllStats(t *testing.T) {
	historical := stubHistorical{stat: "points", values: []float64{25, 27, 29, 24, 26}}
	o := newTestOrchestrator(t, historical, nil)

	report := o.Comprehensive(context.Background(), PredictInput{
		EntityID:   "p1",
		EntityType: models.EntityTypePlayer,
		Sport:      "NBA",
		GameID:     "g1",
		Context:    models.GameContext{IsHome: ptr(true)},
	}, []string{"points", "assists", "rebounds"})

	assert.Len(t, report.Predictions, 3)
	assert.NotNil(t, report.CrossRefSummary)
	assert.False(t, report.GeneratedAt.IsZero())
}

func TestPredictGameOutcome(t *testing.T) {
	historical := stubHistorical{stat: "points", values: []float64{110, 112, 108, 115, 111}}
	o := newTestOrchestrator(t, historical, nil)

	game := models.Game{
		GameID:   "g9",
		Sport:    "NBA",
		HomeTeam: "DEN",
		AwayTeam: "LAL",
	}
	outcome := o.PredictGameOutcome(context.Background(), game, models.GameContext{}, models.GameContext{})

	assert.Equal(t, "g9", outcome.GameID)
	assert.InDelta(t, outcome.HomeProjected-outcome.AwayProjected, outcome.ProjectedSpread, 1e-9)
	assert.InDelta(t, outcome.HomeProjected+outcome.AwayProjected, outcome.ProjectedTotal, 1e-9)
	assert.GreaterOrEqual(t, outcome.HomeWinProbability, 0.0)
	assert.LessOrEqual(t, outcome.HomeWinProbability, 1.0)
	// Same series for both teams: the home side edges ahead on home court.
	assert.Greater(t, outcome.HomeWinProbability, 0.5)
}

func TestAnalyzeSlateRanksAndCaps(t *testing.T) {
	historical := stubHistorical{stat: "points", values: []float64{30, 32, 31, 33, 30, 32}}
	o := newTestOrchestrator(t, historical, nil)

	var bets []models.PropBet
	for i := 0; i < 8; i++ {
		bets = append(bets, models.PropBet{
			Player:     fmt.Sprintf("player-%d", i),
			EntityID:   fmt.Sprintf("p%d", i),
			EntityType: models.EntityTypePlayer,
			Sport:      "NBA",
			GameID:     "g1",
			StatName:   "points",
			Line:       24.5,
			OddsOver:   -110,
			OddsUnder:  -110,
		})
	}
	report := o.AnalyzeSlate(context.Background(), bets, nil, nil)

	assert.Len(t, report.Analyses, 8)
	for i := 1; i < len(report.Analyses); i++ {
		assert.GreaterOrEqual(t, report.Analyses[i-1].ExpectedValue, report.Analyses[i].ExpectedValue)
	}
	assert.LessOrEqual(t, len(report.Parlays), 5)
	assert.LessOrEqual(t, len(report.TopPlays), DefaultConfig().TopPlays)
	assert.Equal(t, 8, report.Portfolio.BetCount)
}

func TestAnalyzeSlateEmpty(t *testing.T) {
	o := newTestOrchestrator(t, stubHistorical{}, nil)
	report := o.AnalyzeSlate(context.Background(), nil, nil, nil)
	assert.Empty(t, report.Analyses)
	assert.Empty(t, report.Parlays)
	assert.Zero(t, report.Portfolio.BetCount)
}

func TestPortfolioMetrics(t *testing.T) {
	analyses := []models.PropBetAnalysis{
		{Edge: 0.08, ExpectedValue: 0.15},
		{Edge: 0.02, ExpectedValue: 0.04},
		{Edge: -0.03, ExpectedValue: -0.06},
		{Edge: 0.05, ExpectedValue: 0.10},
	}
	m := computePortfolio(analyses)

	assert.Equal(t, 4, m.BetCount)
	assert.InDelta(t, 0.75, m.PositiveEdgeRate, 1e-9)
	assert.InDelta(t, 0.03, m.AverageEdge, 1e-9)
	assert.Positive(t, m.SharpeRatio)
	assert.Positive(t, m.Variance)
}

func TestPredictReadsWarmedBaselineCache(t *testing.T) {
	logger := testLogger()
	cat, err := catalog.New()
	require.NoError(t, err)

	baselines := baseline.NewService(nil, time.Minute, logger)
	warmSeries := stubHistorical{stat: "points", values: []float64{40, 41, 42, 40, 41, 42}}
	warmRows, err := warmSeries.LoadRows(context.Background(), "p1", models.EntityTypePlayer, "NBA", nil)
	require.NoError(t, err)
	warmed := baselines.GetOrCompute(warmRows, "p1", models.EntityTypePlayer, "NBA", "")

	// The live repository serves a much weaker series; the cached season
	// baseline built by the refresh job must win over a recompute.
	historical := stubHistorical{stat: "points", values: []float64{10, 10, 10, 10, 10, 10}}
	adjuster := crossref.NewAdjuster(nil, logger)
	eng := engine.New(engine.NewRegistry(), time.Minute, logger)
	o := New(cat, historical, baselines, nil, adjuster, eng, DefaultConfig(), logger)

	out := o.Predict(context.Background(), PredictInput{
		EntityID:   "p1",
		EntityType: models.EntityTypePlayer,
		Sport:      "NBA",
		StatName:   "points",
		GameID:     "g1",
	})

	require.NotNil(t, out.Baseline)
	assert.Equal(t, warmed.ComputedAt, out.Baseline.ComputedAt)
	assert.InDelta(t, warmed.Statistics["points"].Mean, out.Prediction.HistoricalAverage, 1e-9)
}

func TestComprehensiveIncludesBaselineTrend(t *testing.T) {
	historical := stubHistorical{stat: "points", values: []float64{10, 14, 18, 22, 26, 30}}
	o := newTestOrchestrator(t, historical, nil)

	report := o.Comprehensive(context.Background(), PredictInput{
		EntityID:   "p1",
		EntityType: models.EntityTypePlayer,
		Sport:      "NBA",
		GameID:     "g1",
	}, []string{"points"})

	require.NotNil(t, report.Baseline)
	assert.Equal(t, models.TrendUp, report.Baseline.Trends["points"].Direction)

	found := false
	for _, insight := range report.KeyInsights {
		if strings.Contains(insight, "points trending up") {
			found = true
		}
	}
	assert.True(t, found, "baseline trend should surface in the key insights")
}

// countingWeather records every location fetched through it.
type countingWeather struct {
	stubWeather
	mu        sync.Mutex
	locations []string
}

func (c *countingWeather) Current(ctx context.Context, location string) (models.WeatherObservation, error) {
	c.mu.Lock()
	c.locations = append(c.locations, location)
	c.mu.Unlock()
	return c.stubWeather.Current(ctx, location)
}

func TestAnalyzeSlatePrefetchesDistinctLocations(t *testing.T) {
	src := &countingWeather{stubWeather: stubWeather{obs: windyObservation(5)}}
	historical := stubHistorical{stat: "points", values: []float64{25, 26, 27, 25, 26}}
	o := newTestOrchestrator(t, historical, src)

	bets := []models.PropBet{{
		Player:     "a",
		EntityID:   "p1",
		EntityType: models.EntityTypePlayer,
		Sport:      "NBA",
		GameID:     "g1",
		StatName:   "points",
		Line:       24.5,
		OddsOver:   -110,
		OddsUnder:  -110,
	}}
	locations := map[string]string{"g1": "Chicago", "g2": "Chicago", "g3": ""}

	o.AnalyzeSlate(context.Background(), bets, nil, locations)

	// Indoor hoops never fetches weather per bet, so every recorded fetch
	// came from the slate prefetch, deduplicated across games.
	assert.Equal(t, []string{"Chicago"}, src.locations)
}

// recordingSink captures persisted predictions.
type recordingSink struct {
	saved []models.StatisticalPrediction
	err   error
}

func (r *recordingSink) SavePrediction(ctx context.Context, p models.StatisticalPrediction) error {
	r.saved = append(r.saved, p)
	return r.err
}

func TestPredictPersistsThroughRecorder(t *testing.T) {
	historical := stubHistorical{stat: "points", values: []float64{25, 26, 24, 27, 25, 26}}
	o := newTestOrchestrator(t, historical, nil)

	sink := &recordingSink{}
	o.SetRecorder(sink)

	out := o.Predict(context.Background(), PredictInput{
		EntityID:   "player-1",
		EntityType: models.EntityTypePlayer,
		Sport:      "NBA",
		StatName:   "points",
		GameID:     "g1",
	})

	require.Len(t, sink.saved, 1)
	assert.Equal(t, out.Prediction.ID, sink.saved[0].ID)
	assert.Equal(t, out.Prediction.PredictedValue, sink.saved[0].PredictedValue)
}

func TestPredictSurvivesRecorderFailure(t *testing.T) {
	historical := stubHistorical{stat: "points", values: []float64{25, 26, 24, 27, 25, 26}}
	o := newTestOrchestrator(t, historical, nil)
	o.SetRecorder(&recordingSink{err: fmt.Errorf("connection refused")})

	out := o.Predict(context.Background(), PredictInput{
		EntityID:   "player-2",
		EntityType: models.EntityTypePlayer,
		Sport:      "NBA",
		StatName:   "points",
		GameID:     "g2",
	})
	assert.NotZero(t, out.Prediction.PredictedValue)
}
