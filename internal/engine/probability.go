package engine

import (
	"math"

	"github.com/yourusername/prop-edge/internal/mathutil"
	"github.com/yourusername/prop-edge/internal/models"
)

// OverProbability is P(X > line) under a normal approximation N(mu, sigma).
// The degenerate sigma=0 case resolves to an exact 0/1 split (0.5 exactly on
// the line).
func OverProbability(line, mu, sigma float64) float64 {
	if sigma <= 0 {
		switch {
		case mu > line:
			return 1.0
		case mu < line:
			return 0.0
		default:
			return 0.5
		}
	}
	return 1 - mathutil.NormCDF((line-mu)/sigma)
}

// Line-grid shape: offsets in grid steps on each side of the predicted value.
const gridHalfWidth = 3

// gridStep picks the candidate-line spacing from the stat's magnitude and
// type: percentage-like stats get fine offsets, large counting stats coarse.
func gridStep(stat string, mu float64) float64 {
	if isPercentageStat(stat) || math.Abs(mu) <= 1 {
		return 0.05
	}
	switch abs := math.Abs(mu); {
	case abs <= 20:
		return 0.5
	case abs <= 100:
		return 2.5
	default:
		return 5.0
	}
}

// LineGrid generates candidate lines around the predicted value with the
// over/under split for each. Lines land on the half-step so they never equal
// a whole-number outcome.
func LineGrid(stat string, mu, sigma float64) []models.LineProbability {
	step := gridStep(stat, mu)
	center := math.Round(mu/step)*step + step/2

	grid := make([]models.LineProbability, 0, 2*gridHalfWidth+1)
	for i := -gridHalfWidth; i <= gridHalfWidth; i++ {
		line := center + float64(i)*step
		over := OverProbability(line, mu, sigma)
		grid = append(grid, models.LineProbability{
			Line:  line,
			Over:  over,
			Under: 1 - over,
		})
	}
	return grid
}

// AmericanToDecimal converts American odds to decimal odds.
// +150 -> 2.50, -110 -> 1.909...
func AmericanToDecimal(odds int) float64 {
	if odds == 0 {
		return 1.0
	}
	if odds > 0 {
		return float64(odds)/100 + 1
	}
	return 100/math.Abs(float64(odds)) + 1
}

// DecimalToAmerican converts decimal odds to the nearest American odds.
func DecimalToAmerican(dec float64) int {
	if dec <= 1 {
		return 0
	}
	if dec >= 2 {
		return int(math.Round((dec - 1) * 100))
	}
	return int(math.Round(-100 / (dec - 1)))
}
