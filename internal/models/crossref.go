package models

// Cross-reference factor names. The weighted sum iterates this fixed set so
// absent factors contribute zero rather than redistributing weight.
const (
	FactorVenue     = "venue"
	FactorOpponent  = "opponent"
	FactorRest      = "rest"
	FactorSchedule  = "schedule"
	FactorInjury    = "injury"
	FactorCoaching  = "coaching"
	FactorReferee   = "referee"
	FactorTravel    = "travel"
	FactorTimeOfDay = "time_of_day"
	FactorRivalry   = "rivalry"
)

// CrossReferenceResult combines the situational factor adjustments applied to
// one base prediction. Ephemeral: one per prediction call, never persisted.
type CrossReferenceResult struct {
	BaseValue         float64            `json:"base_value"`
	AdjustedValue     float64            `json:"adjusted_value"`
	TotalAdjustment   float64            `json:"total_adjustment"`
	FactorAdjustments map[string]float64 `json:"factor_adjustments"`
	Confidence        float64            `json:"confidence"`
	KeyInsights       []string           `json:"key_insights"`
	RiskFactors       []string           `json:"risk_factors"`
}
