package engine

import (
	"math"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/yourusername/prop-edge/internal/mathutil"
	"github.com/yourusername/prop-edge/internal/metrics"
	"github.com/yourusername/prop-edge/internal/models"
)

// Prediction source labels recorded on the predictions_total counter.
const (
	sourceEnsemble = "ensemble"
	sourceFallback = "fallback"
	sourceDefault  = "default"
)

// Low-confidence default returned when every model in an ensemble fails.
const (
	defaultValue       = 0.0
	defaultStd         = 1.0
	defaultConfidence  = 0.3
	minConfidence      = 0.3
	maxConfidence      = 0.95
	fallbackConfidence = 0.5
	// Perfect model agreement carries no spread information; the historical
	// spread (or a fraction of the estimate) stands in.
	stdFloorFraction = 0.15
)

// Engine produces statistical predictions from a model registry.
type Engine struct {
	registry *Registry
	cache    *PredictionCache
	logger   *logrus.Logger
}

// New creates an engine around a registry. A nil registry starts empty, so
// every prediction takes the fallback path.
func New(registry *Registry, cacheTTL time.Duration, logger *logrus.Logger) *Engine {
	if registry == nil {
		registry = NewRegistry()
	}
	metrics.RegisteredModels.Set(float64(registry.Size()))
	return &Engine{
		registry: registry,
		cache:    NewPredictionCache(cacheTTL),
		logger:   logger,
	}
}

// PredictRequest identifies the (entity, stat, game) triple and carries the
// assembled feature vector. MarketLine, when set, drives the recommendation.
type PredictRequest struct {
	EntityID   string
	EntityName string
	EntityType string
	Sport      string
	GameID     string
	StatName   string
	Features   FeatureVector
	MarketLine *float64
}

// Predict returns the calibrated prediction for a request, consulting the
// cache first. Never returns an error: total model failure degrades to the
// documented low-confidence default.
func (e *Engine) Predict(req PredictRequest) models.StatisticalPrediction {
	if cached, ok := e.cache.Get(req.EntityID, req.StatName, req.GameID); ok {
		return cached
	}

	start := time.Now()
	value, std, confidence, source := e.estimate(req.Sport, req.StatName, req.Features)

	pred := models.StatisticalPrediction{
		ID:                 uuid.New(),
		EntityID:           req.EntityID,
		EntityName:         req.EntityName,
		EntityType:         req.EntityType,
		Sport:              req.Sport,
		GameID:             req.GameID,
		StatName:           req.StatName,
		PredictedValue:     value,
		ConfidenceInterval: [2]float64{value - 1.96*std, value + 1.96*std},
		Lines:              LineGrid(req.StatName, value, std),
		ExpectedVariance:   std * std,
		ConfidenceScore:    confidence,
		HistoricalAverage:  req.Features.SeasonAverage,
		RecentForm:         req.Features.Last5Average,
		MatchupHistory:     req.Features.MatchupAverage,
		Recommendation:     models.RecommendNoPlay,
		PredictedAt:        time.Now().UTC(),
	}
	if req.MarketLine != nil {
		over := OverProbability(*req.MarketLine, value, std)
		pred.Recommendation = Recommendation(over, confidence)
	}

	e.cache.Set(req.EntityID, req.StatName, req.GameID, pred)
	metrics.RecordPrediction(req.Sport, source, time.Since(start).Seconds())

	e.logger.WithFields(logrus.Fields{
		"entity_id":  req.EntityID,
		"stat":       req.StatName,
		"game_id":    req.GameID,
		"value":      value,
		"std":        std,
		"confidence": confidence,
		"source":     source,
	}).Debug("Prediction produced")

	return pred
}

// Invalidate drops a cached prediction so the next request recomputes it.
// Used when a market line moves on a game already analyzed.
func (e *Engine) Invalidate(entityID, stat, gameID string) {
	e.cache.Invalidate(entityID, stat, gameID)
}

// estimate runs the registered ensemble, or the deterministic fallback when
// no model set exists for the (sport, stat) pair.
func (e *Engine) estimate(sport, stat string, f FeatureVector) (value, std, confidence float64, source string) {
	modelSet := e.registry.Lookup(sport, stat)
	if len(modelSet) == 0 {
		value = fallbackEstimate(f)
		std = spreadFloor(f.SeasonStd, value)
		return value, std, fallbackConfidence, sourceFallback
	}

	var outputs []float64
	var weights []float64
	for i, model := range modelSet {
		out, err := model.Predict(f)
		if err != nil {
			metrics.ModelFailuresTotal.Inc()
			e.logger.WithFields(logrus.Fields{
				"model": model.Name(),
				"stat":  stat,
			}).WithError(err).Debug("Model excluded from ensemble")
			continue
		}
		outputs = append(outputs, out)
		weights = append(weights, weightFor(i))
	}

	if len(outputs) == 0 {
		e.logger.WithFields(logrus.Fields{"sport": sport, "stat": stat}).
			Warn("All ensemble models failed, returning low-confidence default")
		return defaultValue, defaultStd, defaultConfidence, sourceDefault
	}

	var weightedSum, weightTotal float64
	for i, out := range outputs {
		weightedSum += out * weights[i]
		weightTotal += weights[i]
	}
	value = weightedSum / weightTotal

	disagreement := mathutil.Std(outputs)
	std = spreadFloor(disagreement, value)
	if f.SeasonStd > std {
		std = f.SeasonStd
	}
	confidence = disagreementConfidence(disagreement, value)
	return value, std, confidence, sourceEnsemble
}

func weightFor(i int) float64 {
	if i < len(ensembleWeights) {
		return ensembleWeights[i]
	}
	return ensembleWeights[len(ensembleWeights)-1]
}

func spreadFloor(std, value float64) float64 {
	if floor := stdFloorFraction * math.Abs(value); std < floor {
		return floor
	}
	return std
}

// disagreementConfidence maps cross-model disagreement relative to the
// estimate's magnitude onto [0.3, 0.95]: full agreement tops out, spread
// wider than the estimate itself bottoms out.
func disagreementConfidence(disagreement, value float64) float64 {
	magnitude := math.Abs(value)
	if magnitude < 1 {
		magnitude = 1
	}
	relative := disagreement / magnitude
	return mathutil.Clamp(maxConfidence-relative*1.3, minConfidence, maxConfidence)
}
