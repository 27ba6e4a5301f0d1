package models

import (
	"math"
	"time"

	"github.com/google/uuid"
)

// LineProbability holds the over/under split for one candidate betting line.
// Over + Under always sums to 1 for every line.
type LineProbability struct {
	Line  float64 `json:"line"`
	Over  float64 `json:"over"`
	Under float64 `json:"under"`
}

// StatisticalPrediction is the calibrated point estimate plus uncertainty
// band for one (entity, stat, game) triple.
type StatisticalPrediction struct {
	ID                 uuid.UUID         `json:"id"`
	EntityID           string            `json:"entity_id" validate:"required"`
	EntityName         string            `json:"entity_name,omitempty"`
	EntityType         string            `json:"entity_type" validate:"required,oneof=player team"`
	Sport              string            `json:"sport" validate:"required"`
	GameID             string            `json:"game_id,omitempty"`
	StatName           string            `json:"stat_name" validate:"required"`
	PredictedValue     float64           `json:"predicted_value"`
	ConfidenceInterval [2]float64        `json:"confidence_interval"`
	Lines              []LineProbability `json:"lines"`
	ExpectedVariance   float64           `json:"expected_variance"`
	ConfidenceScore    float64           `json:"confidence_score" validate:"gte=0.3,lte=0.95"`
	HistoricalAverage  float64           `json:"historical_average"`
	RecentForm         float64           `json:"recent_form"`
	MatchupHistory     float64           `json:"matchup_history"`
	Recommendation     string            `json:"recommendation"`
	PredictedAt        time.Time         `json:"predicted_at"`
}

// Std returns the standard deviation implied by the expected variance.
func (p StatisticalPrediction) Std() float64 {
	if p.ExpectedVariance <= 0 {
		return 0
	}
	return math.Sqrt(p.ExpectedVariance)
}

// ComprehensivePrediction aggregates every stat prediction for one entity in
// one game together with the baseline, weather, situational, and risk
// summaries.
type ComprehensivePrediction struct {
	EntityID        string                           `json:"entity_id"`
	EntityName      string                           `json:"entity_name,omitempty"`
	EntityType      string                           `json:"entity_type"`
	Sport           string                           `json:"sport"`
	GameID          string                           `json:"game_id"`
	Predictions     map[string]StatisticalPrediction `json:"predictions"`
	Baseline        *PerformanceBaseline             `json:"baseline,omitempty"`
	WeatherSummary  *WeatherImpactResult             `json:"weather_summary,omitempty"`
	CrossRefSummary *CrossReferenceResult            `json:"cross_ref_summary,omitempty"`
	RiskFactors     []string                         `json:"risk_factors"`
	KeyInsights     []string                         `json:"key_insights"`
	GeneratedAt     time.Time                        `json:"generated_at"`
}
