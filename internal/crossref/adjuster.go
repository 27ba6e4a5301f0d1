// Package crossref combines situational factors (venue, opponent, rest,
// schedule, injuries, coaching, referee, travel, time of day, rivalry) into
// one weighted adjustment on a base prediction.
package crossref

import (
	"fmt"
	"math"
	"math/rand"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/yourusername/prop-edge/internal/mathutil"
	"github.com/yourusername/prop-edge/internal/models"
)

// Confidence shaping constants.
const (
	baseConfidence        = 0.8
	minConfidence         = 0.3
	maxConfidence         = 0.95
	missingContextPenalty = 0.1
	manyFactorsBonus      = 0.05
	manyFactorsThreshold  = 5
)

// RefereeModel estimates the referee influence on a prediction.
// The default is a bounded random placeholder; a real implementation needs a
// referee-tendency lookup. TODO: replace with tendency data once the
// officials feed is available.
type RefereeModel interface {
	Adjustment(referee string) float64
}

// stochasticReferee emits a small random adjustment in [-0.02, 0.02]. The
// numeric range is not a calibrated signal.
type stochasticReferee struct {
	rng *rand.Rand
}

func (r stochasticReferee) Adjustment(referee string) float64 {
	return (r.rng.Float64() - 0.5) * 0.04
}

// NewStochasticReferee returns the placeholder referee model seeded for
// reproducibility.
func NewStochasticReferee(seed int64) RefereeModel {
	return stochasticReferee{rng: rand.New(rand.NewSource(seed))}
}

// Adjuster computes cross-reference adjustments for supported sports.
type Adjuster struct {
	referee RefereeModel
	logger  *logrus.Logger
}

// NewAdjuster creates an adjuster. A nil referee model defaults to the
// stochastic placeholder.
func NewAdjuster(referee RefereeModel, logger *logrus.Logger) *Adjuster {
	if referee == nil {
		referee = NewStochasticReferee(1)
	}
	return &Adjuster{referee: referee, logger: logger}
}

// Adjust computes the weighted situational adjustment for a base value.
// Unsupported sports return the identity result at confidence 0.5.
func (a *Adjuster) Adjust(sport, stat string, baseValue float64, gc models.GameContext) models.CrossReferenceResult {
	sport = strings.ToUpper(sport)
	result := models.CrossReferenceResult{
		BaseValue:         baseValue,
		AdjustedValue:     baseValue,
		FactorAdjustments: make(map[string]float64),
		Confidence:        0.5,
	}

	weights, ok := factorWeights[sport]
	if !ok {
		a.logger.WithField("sport", sport).Debug("Unsupported sport for cross-reference, returning identity")
		return result
	}

	record := func(name string, value float64, fired bool) {
		if fired {
			result.FactorAdjustments[name] = value
		}
	}

	v, fired := venueFactor(sport, stat, gc)
	record(models.FactorVenue, v, fired)
	v, fired = opponentFactor(gc)
	record(models.FactorOpponent, v, fired)
	v, fired = restFactor(sport, gc)
	record(models.FactorRest, v, fired)
	v, fired = scheduleFactor(gc)
	record(models.FactorSchedule, v, fired)
	v, fired = injuryFactor(gc)
	record(models.FactorInjury, v, fired)
	v, fired = coachingFactor(gc)
	record(models.FactorCoaching, v, fired)
	if gc.Referee != nil {
		record(models.FactorReferee, a.referee.Adjustment(*gc.Referee), true)
	}
	v, fired = travelFactor(sport, gc)
	record(models.FactorTravel, v, fired)
	v, fired = timeOfDayFactor(sport, gc)
	record(models.FactorTimeOfDay, v, fired)
	v, fired = rivalryFactor(sport, gc)
	record(models.FactorRivalry, v, fired)

	total := 0.0
	for name, value := range result.FactorAdjustments {
		total += value * weights[name]
	}
	result.TotalAdjustment = total
	result.AdjustedValue = baseValue * (1 + total)
	result.Confidence = confidence(gc, result.FactorAdjustments)
	result.KeyInsights, result.RiskFactors = narrate(result.FactorAdjustments)

	a.logger.WithFields(logrus.Fields{
		"sport":            sport,
		"stat":             stat,
		"factors":          len(result.FactorAdjustments),
		"total_adjustment": total,
		"confidence":       result.Confidence,
	}).Debug("Cross-reference adjustment computed")

	return result
}

// confidence starts at 0.8, deducts for missing expected context fields and
// for a dominant single factor, and rewards broad factor coverage. Always
// lands in [0.3, 0.95].
func confidence(gc models.GameContext, factors map[string]float64) float64 {
	c := baseConfidence
	if gc.Venue == nil {
		c -= missingContextPenalty
	}
	if gc.OpponentStrength == nil {
		c -= missingContextPenalty
	}
	if gc.RestDays == nil {
		c -= missingContextPenalty
	}
	if len(gc.TeamInjuries) == 0 && len(gc.OpponentInjuries) == 0 {
		c -= missingContextPenalty
	}

	switch magnitude := maxAbs(factors); {
	case magnitude > 0.20:
		c -= 0.15
	case magnitude > 0.15:
		c -= 0.10
	case magnitude > 0.10:
		c -= 0.05
	}

	if len(factors) >= manyFactorsThreshold {
		c += manyFactorsBonus
	}
	return mathutil.Clamp(c, minConfidence, maxConfidence)
}

// narrationThresholds gates the observational strings per factor. Purely
// cosmetic: no effect on computed values.
var narrationThresholds = map[string]float64{
	models.FactorVenue:    0.10,
	models.FactorOpponent: 0.15,
	models.FactorInjury:   0.15,
	models.FactorSchedule: 0.08,
	models.FactorRest:     0.08,
	models.FactorTravel:   0.05,
}

func narrate(factors map[string]float64) (insights, risks []string) {
	for name, value := range factors {
		threshold, ok := narrationThresholds[name]
		if !ok || math.Abs(value) < threshold {
			continue
		}
		if value > 0 {
			insights = append(insights, fmt.Sprintf("%s works in favor (%+.1f%%)", name, value*100))
		} else {
			risks = append(risks, fmt.Sprintf("%s works against (%+.1f%%)", name, value*100))
		}
	}
	return insights, risks
}
