// Package metrics provides the centralized Prometheus metrics registry for
// the prediction engine.
package metrics

import (
	"net/http"
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Global registry instance
var (
	registry *prometheus.Registry
	once     sync.Once
)

// Counter metrics
var (
	PredictionsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "prop_edge",
		Name:      "predictions_total",
		Help:      "Total number of stat predictions produced",
	}, []string{"sport", "source"})
	PropAnalysesTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "prop_edge",
		Name:      "prop_analyses_total",
		Help:      "Total number of prop bets analyzed",
	})
	ParlaysBuiltTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "prop_edge",
		Name:      "parlays_built_total",
		Help:      "Total number of parlay combinations constructed",
	})
	ModelFailuresTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "prop_edge",
		Name:      "model_failures_total",
		Help:      "Total number of ensemble model evaluation failures",
	})
	ExternalFetchesTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "prop_edge",
		Name:      "external_fetches_total",
		Help:      "Total number of external data fetches by source and outcome",
	}, []string{"source", "outcome"})
	WeatherFallbacksTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "prop_edge",
		Name:      "weather_fallbacks_total",
		Help:      "Total number of weather fetches resolved by the fallback record",
	})
)

// Gauge metrics
var (
	PredictionCacheHitRatio = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: "prop_edge",
		Name:      "prediction_cache_hit_ratio",
		Help:      "Hit ratio of the prediction cache",
	})
	SlatePositiveEdgeBets = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: "prop_edge",
		Name:      "slate_positive_edge_bets",
		Help:      "Number of positive-edge bets in the latest analyzed slate",
	})
	RegisteredModels = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: "prop_edge",
		Name:      "registered_models",
		Help:      "Number of models registered with the prediction engine",
	})
)

// Histogram metrics
var (
	PredictionDuration = prometheus.NewHistogram(prometheus.HistogramOpts{
		Namespace: "prop_edge",
		Name:      "prediction_duration_seconds",
		Help:      "Duration of single-stat prediction calls in seconds",
		Buckets:   prometheus.DefBuckets,
	})
	SlateAnalysisDuration = prometheus.NewHistogram(prometheus.HistogramOpts{
		Namespace: "prop_edge",
		Name:      "slate_analysis_duration_seconds",
		Help:      "Duration of full slate analysis runs in seconds",
		Buckets:   []float64{0.1, 0.5, 1, 5, 10, 30, 60},
	})
)

// InitRegistry initializes the global Prometheus registry.
func InitRegistry() *prometheus.Registry {
	once.Do(func() {
		registry = prometheus.NewRegistry()

		registry.MustRegister(PredictionsTotal)
		registry.MustRegister(PropAnalysesTotal)
		registry.MustRegister(ParlaysBuiltTotal)
		registry.MustRegister(ModelFailuresTotal)
		registry.MustRegister(ExternalFetchesTotal)
		registry.MustRegister(WeatherFallbacksTotal)

		registry.MustRegister(PredictionCacheHitRatio)
		registry.MustRegister(SlatePositiveEdgeBets)
		registry.MustRegister(RegisteredModels)

		registry.MustRegister(PredictionDuration)
		registry.MustRegister(SlateAnalysisDuration)
	})
	return registry
}

// GetRegistry returns the global Prometheus registry.
func GetRegistry() *prometheus.Registry {
	if registry == nil {
		return InitRegistry()
	}
	return registry
}

// Handler returns the Prometheus HTTP handler.
func Handler() http.Handler {
	return promhttp.HandlerFor(GetRegistry(), promhttp.HandlerOpts{})
}

// RecordPrediction records a produced prediction with its model source.
func RecordPrediction(sport, source string, durationSeconds float64) {
	PredictionsTotal.WithLabelValues(sport, source).Inc()
	PredictionDuration.Observe(durationSeconds)
}

// RecordWeatherFallback records a weather fetch served by the fallback record.
func RecordWeatherFallback() {
	WeatherFallbacksTotal.Inc()
}
