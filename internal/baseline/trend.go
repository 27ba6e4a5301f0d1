package baseline

import (
	"math"

	"github.com/yourusername/prop-edge/internal/mathutil"
	"github.com/yourusername/prop-edge/internal/models"
)

// stableSlopeThreshold is the absolute slope below which a trend is flat.
const stableSlopeThreshold = 0.01

// movingAverageWindow is the window used for the smoothed series.
const movingAverageWindow = 3

// ComputeTrend derives a PerformanceTrend from a value sequence in game
// order. Pure function of its inputs: direction from the OLS slope sign,
// strength from |Pearson r| capped at 1, projection from the fitted line one
// step past the series.
func ComputeTrend(entityID, statName, period string, values []float64) models.PerformanceTrend {
	trend := models.PerformanceTrend{
		EntityID: entityID,
		StatName: statName,
		Period:   period,
		Values:   values,
	}
	if len(values) == 0 {
		trend.Direction = models.TrendStable
		return trend
	}

	slope, intercept := mathutil.OLSSlope(values)
	switch {
	case math.Abs(slope) < stableSlopeThreshold:
		trend.Direction = models.TrendStable
	case slope > 0:
		trend.Direction = models.TrendUp
	default:
		trend.Direction = models.TrendDown
	}
	trend.Strength = math.Min(math.Abs(mathutil.PearsonR(values)), 1.0)
	trend.MovingAverage = movingAverage(values, movingAverageWindow)
	trend.Projection = intercept + slope*float64(len(values))

	// Confidence interval from the residual spread around the fitted line.
	residualStd := residualStd(values, slope, intercept)
	trend.ConfidenceInterval = [2]float64{
		trend.Projection - 1.96*residualStd,
		trend.Projection + 1.96*residualStd,
	}
	return trend
}

func movingAverage(values []float64, window int) []float64 {
	if window < 1 || len(values) == 0 {
		return nil
	}
	out := make([]float64, len(values))
	for i := range values {
		start := i - window + 1
		if start < 0 {
			start = 0
		}
		out[i] = mathutil.Mean(values[start : i+1])
	}
	return out
}

func residualStd(values []float64, slope, intercept float64) float64 {
	if len(values) < 3 {
		return 0
	}
	residuals := make([]float64, len(values))
	for i, v := range values {
		residuals[i] = v - (intercept + slope*float64(i))
	}
	return mathutil.Std(residuals)
}
