package baseline

import (
	"fmt"

	"github.com/yourusername/prop-edge/internal/mathutil"
	"github.com/yourusername/prop-edge/internal/models"
)

// Compare places a current value against a baseline: z-score against the
// baseline mean/std, percentile via the normal CDF, and a performance tier.
// higherIsBetter=false inverts the z-score sign so "elite" always means good.
func Compare(b models.PerformanceBaseline, statName string, currentValue float64, higherIsBetter bool) (models.ComparisonResult, error) {
	summary, ok := b.Statistics[statName]
	if !ok {
		return models.ComparisonResult{}, fmt.Errorf("%w: %s has no baseline for %s", models.ErrUnsupportedStat, b.EntityID, statName)
	}

	result := models.ComparisonResult{
		StatName:     statName,
		CurrentValue: currentValue,
		BaselineMean: summary.Mean,
	}

	if summary.Std > 0 {
		result.ZScore = (currentValue - summary.Mean) / summary.Std
	}
	if !higherIsBetter {
		result.ZScore = -result.ZScore
	}
	result.Percentile = mathutil.NormCDF(result.ZScore) * 100
	result.Tier = tierForPercentile(result.Percentile)
	return result, nil
}

func tierForPercentile(p float64) string {
	switch {
	case p >= 90:
		return models.TierElite
	case p >= 75:
		return models.TierExcellent
	case p >= 60:
		return models.TierAboveAverage
	case p >= 40:
		return models.TierAverage
	case p >= 25:
		return models.TierBelowAverage
	default:
		return models.TierPoor
	}
}
