package models

import "time"

// TrendDirection classifies the slope of a performance trend.
type TrendDirection string

// Trend directions
const (
	TrendUp     TrendDirection = "up"
	TrendDown   TrendDirection = "down"
	TrendStable TrendDirection = "stable"
)

// StatSummary holds the descriptive statistics for one stat column over a
// historical series. Missing values are excluded before computation.
type StatSummary struct {
	Mean   float64 `json:"mean"`
	Median float64 `json:"median"`
	Std    float64 `json:"std"`
	Min    float64 `json:"min"`
	Max    float64 `json:"max"`
	Q1     float64 `json:"q1"`
	Q3     float64 `json:"q3"`
	Games  int     `json:"games"`
}

// PerformanceTrend describes the direction and strength of a stat over a
// recent window. It is a pure function of the value sequence it was built
// from and carries no hidden state.
type PerformanceTrend struct {
	EntityID           string         `json:"entity_id"`
	StatName           string         `json:"stat_name"`
	Period             string         `json:"period"`
	Direction          TrendDirection `json:"direction"`
	Strength           float64        `json:"strength"`
	Values             []float64      `json:"values"`
	MovingAverage      []float64      `json:"moving_average"`
	Projection         float64        `json:"projection"`
	ConfidenceInterval [2]float64     `json:"confidence_interval"`
}

// PerformanceBaseline is the per-entity, per-season statistical aggregate
// produced from a historical series. A baseline with GamesPlayed == 0 and
// empty maps is the documented result for an entity with no history.
type PerformanceBaseline struct {
	EntityID          string                        `json:"entity_id"`
	EntityType        string                        `json:"entity_type"`
	Sport             string                        `json:"sport"`
	Season            string                        `json:"season"`
	GamesPlayed       int                           `json:"games_played"`
	Statistics        map[string]StatSummary        `json:"statistics"`
	Percentiles       map[string]float64            `json:"percentiles"`
	Trends            map[string]PerformanceTrend   `json:"trends"`
	ConsistencyScores map[string]float64            `json:"consistency_scores"`
	ClutchMetrics     map[string]float64            `json:"clutch_metrics"`
	SituationalSplits map[string]map[string]float64 `json:"situational_splits"`
	ComputedAt        time.Time                     `json:"computed_at"`
}

// ComparisonResult places a current value against a cached baseline.
type ComparisonResult struct {
	StatName     string  `json:"stat_name"`
	CurrentValue float64 `json:"current_value"`
	BaselineMean float64 `json:"baseline_mean"`
	ZScore       float64 `json:"z_score"`
	Percentile   float64 `json:"percentile"`
	Tier         string  `json:"tier"`
}

// Performance tiers for baseline comparisons
const (
	TierElite        = "elite"
	TierExcellent    = "excellent"
	TierAboveAverage = "above_average"
	TierAverage      = "average"
	TierBelowAverage = "below_average"
	TierPoor         = "poor"
)
