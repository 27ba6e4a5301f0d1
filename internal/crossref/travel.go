package crossref

import (
	"math"

	"github.com/yourusername/prop-edge/internal/mathutil"
	"github.com/yourusername/prop-edge/internal/models"
)

// Travel impact parameters. Travel never helps: the result is clamped to
// [-0.10, 0].
const (
	travelFloor         = -0.10
	longHaulDistance    = 2000.0
	mediumHaulDistance  = 1000.0
	shortHaulDistance   = 500.0
	longHaulPenalty     = -0.04
	mediumHaulPenalty   = -0.025
	shortHaulPenalty    = -0.012
	timezonePenalty     = -0.015
	congestedScale      = 1.2
	weeklyCadenceScale  = 0.8
)

// travelFactor buckets distance, adds a per-timezone penalty, and scales by
// schedule cadence: back-to-back-heavy sports feel travel more, weekly
// sports less.
func travelFactor(sport string, gc models.GameContext) (float64, bool) {
	if gc.TravelDistance == nil && gc.TimezonesCrossed == nil {
		return 0, false
	}

	impact := 0.0
	if gc.TravelDistance != nil {
		switch distance := *gc.TravelDistance; {
		case distance > longHaulDistance:
			impact += longHaulPenalty
		case distance > mediumHaulDistance:
			impact += mediumHaulPenalty
		case distance > shortHaulDistance:
			impact += shortHaulPenalty
		}
	}
	if gc.TimezonesCrossed != nil {
		impact += timezonePenalty * math.Abs(float64(*gc.TimezonesCrossed))
	}

	switch {
	case backToBackHeavySports[sport]:
		impact *= congestedScale
	case weeklyCadenceSports[sport]:
		impact *= weeklyCadenceScale
	}

	return mathutil.Clamp(impact, travelFloor, 0), true
}
