package models

import (
	"github.com/shopspring/decimal"
)

// Bet sides
const (
	SideOver  = "over"
	SideUnder = "under"
)

// Recommendation labels emitted by the prediction engine.
const (
	RecommendStrongOver  = "strong over"
	RecommendLeanOver    = "lean over"
	RecommendStrongUnder = "strong under"
	RecommendLeanUnder   = "lean under"
	RecommendNoPlay      = "no play"
)

// PropBet is one offered player/team prop: a line plus American odds for each
// side, as supplied by the odds source.
type PropBet struct {
	Player       string  `json:"player" validate:"required"`
	EntityID     string  `json:"entity_id" validate:"required"`
	EntityType   string  `json:"entity_type"`
	Sport        string  `json:"sport" validate:"required"`
	GameID       string  `json:"game_id,omitempty"`
	StatName     string  `json:"stat_name" validate:"required"`
	Line         float64 `json:"line"`
	OddsOver     int     `json:"odds_over"`
	OddsUnder    int     `json:"odds_under"`
}

// PropBetAnalysis is the evaluated form of a PropBet: probabilities, edge,
// and a recommendation. Derived per request, never persisted.
type PropBetAnalysis struct {
	Player             string   `json:"player"`
	EntityID           string   `json:"entity_id"`
	Sport              string   `json:"sport"`
	StatName           string   `json:"stat_name"`
	Line               float64  `json:"line"`
	PredictedValue     float64  `json:"predicted_value"`
	OverProbability    float64  `json:"over_probability"`
	UnderProbability   float64  `json:"under_probability"`
	Side               string   `json:"side"`
	DecimalOdds        float64  `json:"decimal_odds"`
	Edge               float64  `json:"edge"`
	ExpectedValue      float64  `json:"expected_value"`
	Recommendation     string   `json:"recommendation"`
	Confidence         float64  `json:"confidence"`
	SupportingFactors  []string `json:"supporting_factors"`
	RiskFactors        []string `json:"risk_factors"`
}

// ParlayLeg is one constituent of a parlay with its independent probability
// and decimal odds.
type ParlayLeg struct {
	Label       string  `json:"label"`
	Probability float64 `json:"probability"`
	DecimalOdds float64 `json:"decimal_odds"`
}

// ParlayAnalysis is the multiplicative combination of independent legs.
type ParlayAnalysis struct {
	Legs             []ParlayLeg `json:"legs"`
	TotalProbability float64     `json:"total_probability"`
	TotalOdds        float64     `json:"total_odds"`
	ExpectedValue    float64     `json:"expected_value"`
	Recommendation   string      `json:"recommendation"`
	RiskLevel        string      `json:"risk_level"`
}

// Parlay risk levels
const (
	RiskLow      = "low"
	RiskModerate = "moderate"
	RiskHigh     = "high"
	RiskExtreme  = "extreme"
)

// KellyStake is the recommended bankroll allocation for one bet. Stake is
// kept as a decimal because it is a money amount.
type KellyStake struct {
	Label    string          `json:"label"`
	Fraction float64         `json:"fraction"`
	Stake    decimal.Decimal `json:"stake"`
}
