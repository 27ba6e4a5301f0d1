package crossref

import (
	"github.com/yourusername/prop-edge/internal/mathutil"
	"github.com/yourusername/prop-edge/internal/models"
)

// Injury factor bounds. The clamp stops arbitrarily long injury lists from
// cascading a runaway multiplicative adjustment through the pipeline.
const (
	injuryFloor        = -0.40
	injuryCeil         = 0.20
	ownTeamInjuryScale = 0.25
	opponentInjuryScale = 0.20
)

// injuryFactor weighs each report by importance, severity, and the chance
// the player sits. Own-team injuries hurt; opponent injuries help. Total is
// clamped to [-0.40, +0.20].
func injuryFactor(gc models.GameContext) (float64, bool) {
	if len(gc.TeamInjuries) == 0 && len(gc.OpponentInjuries) == 0 {
		return 0, false
	}

	impact := -injuryBurden(gc.TeamInjuries) * ownTeamInjuryScale
	impact += injuryBurden(gc.OpponentInjuries) * opponentInjuryScale
	return mathutil.Clamp(impact, injuryFloor, injuryCeil), true
}

func injuryBurden(reports []models.InjuryReport) float64 {
	total := 0.0
	for _, report := range reports {
		importance := mathutil.Clamp(report.Importance, 0, 1)
		severity := mathutil.Clamp(report.Severity, 0, 1)
		probPlaying := mathutil.Clamp(report.ProbabilityPlaying, 0, 1)
		total += importance * severity * (1 - probPlaying)
	}
	return total
}
