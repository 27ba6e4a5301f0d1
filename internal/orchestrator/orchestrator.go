// Package orchestrator sequences the prediction pipeline: historical
// baseline, model estimate, weather adjustment, cross-reference adjustment,
// then bet-level evaluation on the final adjusted value. Stage order is fixed
// because later stages operate on the already-adjusted value.
package orchestrator

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/yourusername/prop-edge/internal/baseline"
	"github.com/yourusername/prop-edge/internal/catalog"
	"github.com/yourusername/prop-edge/internal/crossref"
	"github.com/yourusername/prop-edge/internal/datasource"
	"github.com/yourusername/prop-edge/internal/engine"
	"github.com/yourusername/prop-edge/internal/logger"
	"github.com/yourusername/prop-edge/internal/mathutil"
	"github.com/yourusername/prop-edge/internal/models"
	"github.com/yourusername/prop-edge/internal/weather"
)

// Config carries the slate evaluation knobs.
type Config struct {
	Season           string
	TopPlays         int
	MinEdge          float64
	MinConfidence    float64
	MaxParlays       int
	MaxParlayLegs    int
	MaxParallelFetch int
}

// DefaultConfig returns the slate evaluation defaults.
func DefaultConfig() Config {
	return Config{
		TopPlays:         10,
		MinEdge:          0.03,
		MinConfidence:    0.55,
		MaxParlays:       5,
		MaxParlayLegs:    3,
		MaxParallelFetch: 4,
	}
}

// PredictionSink persists produced predictions for later calibration
// analysis. Optional; a nil sink disables persistence.
type PredictionSink interface {
	SavePrediction(ctx context.Context, p models.StatisticalPrediction) error
}

// Orchestrator wires the catalog, historical source, baseline service,
// prediction engine, and the weather and cross-reference adjusters into one
// pipeline.
type Orchestrator struct {
	catalog     *catalog.Catalog
	historical  datasource.HistoricalSource
	baselines   *baseline.Service
	weatherSrc  weather.Source
	weatherCalc *weather.Calculator
	adjuster    *crossref.Adjuster
	engine      *engine.Engine
	recorder    PredictionSink
	audit       *logger.AuditLogger
	cfg         Config
	logger      *logrus.Logger
}

// New creates an orchestrator. The weather source may be nil; predictions
// then skip the weather stage entirely. A nil baseline service skips the
// baseline stage and predicts from the raw rows.
func New(cat *catalog.Catalog, historical datasource.HistoricalSource, baselines *baseline.Service, weatherSrc weather.Source, adjuster *crossref.Adjuster, eng *engine.Engine, cfg Config, baseLogger *logrus.Logger) *Orchestrator {
	return &Orchestrator{
		catalog:     cat,
		historical:  historical,
		baselines:   baselines,
		weatherSrc:  weatherSrc,
		weatherCalc: weather.NewCalculator(baseLogger),
		adjuster:    adjuster,
		engine:      eng,
		audit:       logger.NewAuditLogger(baseLogger),
		cfg:         cfg,
		logger:      baseLogger,
	}
}

// PredictInput identifies one (entity, stat, game) prediction request.
type PredictInput struct {
	EntityID   string
	EntityName string
	EntityType string
	Sport      string
	StatName   string
	GameID     string
	Location   string
	MarketLine *float64
	Context    models.GameContext
}

// PredictOutput is the final prediction with the per-stage summaries that
// produced it.
type PredictOutput struct {
	Prediction models.StatisticalPrediction
	Baseline   *models.PerformanceBaseline
	Weather    *models.WeatherImpactResult
	CrossRef   *models.CrossReferenceResult
}

// Predict runs the full pipeline for one stat. It never fails on missing or
// broken external data: every stage degrades to its documented fallback and
// lowers the confidence instead.
func (o *Orchestrator) Predict(ctx context.Context, in PredictInput) PredictOutput {
	rows := o.loadRows(ctx, in)
	bl := o.baselineFor(rows, in)
	weatherSensitive, outdoor := o.statWeatherProfile(in.Sport, in.StatName)

	var obs *models.WeatherObservation
	if weatherSensitive && outdoor && o.weatherSrc != nil && in.Location != "" {
		if fetched, err := o.weatherSrc.Current(ctx, in.Location); err == nil {
			obs = &fetched
		}
	}

	features := engine.BuildFeatures(rows, in.StatName, in.Context, obs, outdoor)
	if bl != nil {
		applyBaseline(&features, *bl, in.StatName)
	}
	pred := o.engine.Predict(engine.PredictRequest{
		EntityID:   in.EntityID,
		EntityName: in.EntityName,
		EntityType: in.EntityType,
		Sport:      in.Sport,
		GameID:     in.GameID,
		StatName:   in.StatName,
		Features:   features,
		MarketLine: in.MarketLine,
	})

	out := PredictOutput{Prediction: pred, Baseline: bl}
	value := pred.PredictedValue
	std := pred.Std()
	confidence := pred.ConfidenceScore

	if obs != nil {
		impact := o.weatherCalc.Calculate(in.Sport, in.StatName, value, *obs)
		std = scaleSpread(std, value, impact.AdjustedValue)
		value = impact.AdjustedValue
		confidence = combineConfidence(confidence, impact.Confidence)
		out.Weather = &impact
	}

	adjustment := o.adjuster.Adjust(in.Sport, in.StatName, value, in.Context)
	std = scaleSpread(std, value, adjustment.AdjustedValue)
	value = adjustment.AdjustedValue
	confidence = combineConfidence(confidence, adjustment.Confidence)
	out.CrossRef = &adjustment

	out.Prediction = rederive(pred, in, value, std, confidence)
	o.audit.LogPrediction(out.Prediction.ID.String(), in.EntityID, in.Sport, in.StatName,
		in.GameID, value, confidence, out.Prediction.PredictedAt)

	if o.recorder != nil {
		if err := o.recorder.SavePrediction(ctx, out.Prediction); err != nil {
			o.logger.WithError(err).WithFields(logrus.Fields{
				"entity_id": in.EntityID,
				"stat":      in.StatName,
			}).Warn("Failed to persist prediction")
		}
	}
	return out
}

// SetRecorder attaches a prediction sink. Persistence failures are logged,
// never surfaced to callers.
func (o *Orchestrator) SetRecorder(sink PredictionSink) {
	o.recorder = sink
}

// Comprehensive predicts every requested stat for one entity in one game and
// assembles the aggregate report.
func (o *Orchestrator) Comprehensive(ctx context.Context, in PredictInput, stats []string) models.ComprehensivePrediction {
	report := models.ComprehensivePrediction{
		EntityID:    in.EntityID,
		EntityName:  in.EntityName,
		EntityType:  in.EntityType,
		Sport:       in.Sport,
		GameID:      in.GameID,
		Predictions: make(map[string]models.StatisticalPrediction, len(stats)),
		GeneratedAt: time.Now().UTC(),
	}
	for _, stat := range stats {
		statIn := in
		statIn.StatName = stat
		out := o.Predict(ctx, statIn)
		report.Predictions[stat] = out.Prediction
		if out.Baseline != nil && report.Baseline == nil {
			report.Baseline = out.Baseline
		}
		if out.Weather != nil && report.WeatherSummary == nil {
			report.WeatherSummary = out.Weather
		}
		if out.CrossRef != nil && report.CrossRefSummary == nil {
			report.CrossRefSummary = out.CrossRef
		}
	}
	report.KeyInsights, report.RiskFactors = narrative(report)
	return report
}

// baselineFor resolves the season baseline for the entity, hitting the cache
// warmed by the daemon's refresh job before recomputing from the loaded rows.
func (o *Orchestrator) baselineFor(rows []models.PerformanceRow, in PredictInput) *models.PerformanceBaseline {
	if o.baselines == nil {
		return nil
	}
	b := o.baselines.GetOrCompute(rows, in.EntityID, in.EntityType, in.Sport, o.cfg.Season)
	return &b
}

// applyBaseline overrides the row-derived season aggregates with the cached
// season baseline so ad-hoc predictions and the refresh job agree on the
// entity's season profile.
func applyBaseline(f *engine.FeatureVector, b models.PerformanceBaseline, stat string) {
	summary, ok := b.Statistics[stat]
	if !ok || summary.Games == 0 {
		return
	}
	f.SeasonAverage = summary.Mean
	if summary.Std > 0 {
		f.SeasonStd = summary.Std
	}
}

// loadRows fetches the historical series, degrading to an empty series on
// failure.
func (o *Orchestrator) loadRows(ctx context.Context, in PredictInput) []models.PerformanceRow {
	if o.historical == nil {
		return nil
	}
	var seasons []string
	if o.cfg.Season != "" {
		seasons = []string{o.cfg.Season}
	}
	rows, err := o.historical.LoadRows(ctx, in.EntityID, in.EntityType, in.Sport, seasons)
	if err != nil {
		o.logger.WithFields(logrus.Fields{
			"entity_id": in.EntityID,
			"sport":     in.Sport,
		}).WithError(err).Warn("Historical load failed, predicting without history")
		return nil
	}
	return rows
}

// statWeatherProfile resolves whether the stat warrants a weather stage.
// Catalog misses resolve to a neutral profile, logged, never fatal.
func (o *Orchestrator) statWeatherProfile(sport, stat string) (weatherSensitive, outdoor bool) {
	def, err := o.catalog.Lookup(sport, stat)
	if err != nil {
		o.logger.WithFields(logrus.Fields{
			"sport": sport,
			"stat":  stat,
		}).Debug("Stat not in catalog, skipping weather stage")
		return false, o.catalog.IsOutdoorSport(sport)
	}
	return def.WeatherSensitive, o.catalog.IsOutdoorSport(sport)
}

// scaleSpread keeps the relative spread constant across a multiplicative
// value adjustment.
func scaleSpread(std, before, after float64) float64 {
	if before == 0 {
		return std
	}
	ratio := after / before
	if ratio < 0 {
		ratio = -ratio
	}
	return std * ratio
}

// combineConfidence takes the weakest stage as the pipeline confidence,
// clamped to the engine's range.
func combineConfidence(a, b float64) float64 {
	if b < a {
		a = b
	}
	return mathutil.Clamp(a, 0.3, 0.95)
}

// rederive rebuilds the probability artifacts from the final adjusted value
// and its propagated spread.
func rederive(pred models.StatisticalPrediction, in PredictInput, value, std, confidence float64) models.StatisticalPrediction {
	pred.PredictedValue = value
	pred.ExpectedVariance = std * std
	pred.ConfidenceInterval = [2]float64{value - 1.96*std, value + 1.96*std}
	pred.Lines = engine.LineGrid(in.StatName, value, std)
	pred.ConfidenceScore = confidence
	if in.MarketLine != nil {
		over := engine.OverProbability(*in.MarketLine, value, std)
		pred.Recommendation = engine.Recommendation(over, confidence)
	}
	return pred
}
