package engine

import (
	"fmt"

	"github.com/shopspring/decimal"
	"github.com/yourusername/prop-edge/internal/mathutil"
	"github.com/yourusername/prop-edge/internal/metrics"
	"github.com/yourusername/prop-edge/internal/models"
)

// Recommendation thresholds, applied to the confidence-adjusted probability
// 0.5 + (p-0.5)*confidence.
const (
	strongOverThreshold  = 0.65
	leanOverThreshold    = 0.55
	leanUnderThreshold   = 0.35
	strongUnderThreshold = 0.25
)

// ExpectedValue is the per-unit EV of a bet: p*decimal_odds - 1.
func ExpectedValue(probability, decimalOdds float64) float64 {
	return probability*decimalOdds - 1
}

// Recommendation maps the over probability, shrunk toward a coin flip by
// confidence, onto the recommendation labels.
func Recommendation(overProbability, confidence float64) string {
	adjusted := 0.5 + (overProbability-0.5)*confidence
	switch {
	case adjusted >= strongOverThreshold:
		return models.RecommendStrongOver
	case adjusted >= leanOverThreshold:
		return models.RecommendLeanOver
	case adjusted <= strongUnderThreshold:
		return models.RecommendStrongUnder
	case adjusted <= leanUnderThreshold:
		return models.RecommendLeanUnder
	default:
		return models.RecommendNoPlay
	}
}

// AnalyzePropBet evaluates one offered prop against a prediction: derives the
// over/under split at the offered line, picks the better-EV side, and labels
// it.
func AnalyzePropBet(bet models.PropBet, pred models.StatisticalPrediction) models.PropBetAnalysis {
	over := OverProbability(bet.Line, pred.PredictedValue, pred.Std())
	under := 1 - over

	overEV := ExpectedValue(over, AmericanToDecimal(bet.OddsOver))
	underEV := ExpectedValue(under, AmericanToDecimal(bet.OddsUnder))

	side := models.SideOver
	probability := over
	ev := overEV
	odds := AmericanToDecimal(bet.OddsOver)
	if underEV > overEV {
		side = models.SideUnder
		probability = under
		ev = underEV
		odds = AmericanToDecimal(bet.OddsUnder)
	}

	metrics.PropAnalysesTotal.Inc()
	return models.PropBetAnalysis{
		Player:           bet.Player,
		EntityID:         bet.EntityID,
		Sport:            bet.Sport,
		StatName:         bet.StatName,
		Line:             bet.Line,
		PredictedValue:   pred.PredictedValue,
		OverProbability:  over,
		UnderProbability: under,
		Side:             side,
		DecimalOdds:      odds,
		Edge:             probability - 1/odds,
		ExpectedValue:    ev,
		Recommendation:   Recommendation(over, pred.ConfidenceScore),
		Confidence:       pred.ConfidenceScore,
	}
}

// Parlay recommendation and risk parameters.
const (
	parlayPlayThreshold = 0.10
	ParlayPlay          = "Play"
	ParlayPass          = "Pass"
)

// AnalyzeParlay multiplies independent legs: combined probability, combined
// decimal odds, EV, and a risk tier from the combined probability and leg
// count.
func AnalyzeParlay(legs []models.ParlayLeg) models.ParlayAnalysis {
	analysis := models.ParlayAnalysis{
		Legs:             legs,
		TotalProbability: 1,
		TotalOdds:        1,
		Recommendation:   ParlayPass,
		RiskLevel:        models.RiskLow,
	}
	if len(legs) == 0 {
		analysis.TotalProbability = 0
		analysis.TotalOdds = 0
		return analysis
	}

	for _, leg := range legs {
		analysis.TotalProbability *= mathutil.Clamp(leg.Probability, 0, 1)
		analysis.TotalOdds *= leg.DecimalOdds
	}
	analysis.ExpectedValue = analysis.TotalOdds*analysis.TotalProbability - 1
	if analysis.ExpectedValue > parlayPlayThreshold {
		analysis.Recommendation = ParlayPlay
	}
	analysis.RiskLevel = parlayRisk(analysis.TotalProbability, len(legs))

	metrics.ParlaysBuiltTotal.Inc()
	return analysis
}

// parlayRisk tiers on combined probability, bumped one tier for parlays of
// more than three legs.
func parlayRisk(probability float64, legCount int) string {
	tiers := []string{models.RiskLow, models.RiskModerate, models.RiskHigh, models.RiskExtreme}
	tier := 0
	switch {
	case probability >= 0.45:
		tier = 0
	case probability >= 0.30:
		tier = 1
	case probability >= 0.15:
		tier = 2
	default:
		tier = 3
	}
	if legCount > 3 && tier < len(tiers)-1 {
		tier++
	}
	return tiers[tier]
}

// Kelly sizing parameters: quarter-Kelly, stake capped at 5% of bankroll,
// anything below 1% dropped.
const (
	kellyDivisor  = 4.0
	kellyStakeCap = 0.05
	kellyMinStake = 0.01
)

// CalculateKellySizes returns the quarter-Kelly bankroll fraction and stake
// for each analyzed bet with a playable edge. An empty input yields an empty
// map, never an error.
func CalculateKellySizes(bets []models.PropBetAnalysis, bankroll decimal.Decimal) map[string]models.KellyStake {
	stakes := make(map[string]models.KellyStake)
	for _, bet := range bets {
		p := mathutil.Clamp(betProbability(bet), 0, 1)
		b := bet.DecimalOdds - 1
		if b <= 0 {
			continue
		}
		fraction := (p*b - (1 - p)) / b / kellyDivisor
		fraction = mathutil.Clamp(fraction, 0, kellyStakeCap)
		if fraction < kellyMinStake {
			continue
		}
		label := fmt.Sprintf("%s %s %s %.1f", bet.Player, bet.StatName, bet.Side, bet.Line)
		stakes[label] = models.KellyStake{
			Label:    label,
			Fraction: fraction,
			Stake:    bankroll.Mul(decimal.NewFromFloat(fraction)).Round(2),
		}
	}
	return stakes
}

func betProbability(bet models.PropBetAnalysis) float64 {
	if bet.Side == models.SideUnder {
		return bet.UnderProbability
	}
	return bet.OverProbability
}
