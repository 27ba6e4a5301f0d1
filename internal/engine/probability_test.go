package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestOverUnderAlwaysSumToOne(t *testing.T) {
	cases := []struct{ line, mu, sigma float64 }{
		{250.5, 250, 45},
		{25.5, 27.3, 6.2},
		{0.5, 0.3, 0.1},
		{100, 100, 10},
		{5.5, 5.5, 0},
	}
	for _, tc := range cases {
		over := OverProbability(tc.line, tc.mu, tc.sigma)
		under := 1 - over
		assert.InDelta(t, 1.0, over+under, 1e-9)
		assert.GreaterOrEqual(t, over, 0.0)
		assert.LessOrEqual(t, over, 1.0)
	}
}

func TestOverProbabilityDegenerateSigma(t *testing.T) {
	assert.Equal(t, 1.0, OverProbability(20.5, 25, 0))
	assert.Equal(t, 0.0, OverProbability(30.5, 25, 0))
	assert.Equal(t, 0.5, OverProbability(25, 25, 0))
}

func TestOverProbabilitySymmetry(t *testing.T) {
	// The line at the mean splits 50/50.
	assert.InDelta(t, 0.5, OverProbability(250, 250, 45), 1e-9)
	// One sigma above the mean leaves ~15.87% over.
	assert.InDelta(t, 0.1587, OverProbability(295, 250, 45), 1e-3)
}

func TestLineGridCoversBothSides(t *testing.T) {
	grid := LineGrid("points", 27.3, 6.2)
	assert.Len(t, grid, 7)

	var below, above int
	for _, lp := range grid {
		assert.InDelta(t, 1.0, lp.Over+lp.Under, 1e-9)
		if lp.Line < 27.3 {
			below++
		} else {
			above++
		}
	}
	assert.NotZero(t, below)
	assert.NotZero(t, above)
}

func TestLineGridGranularity(t *testing.T) {
	fine := LineGrid("batting_avg", 0.310, 0.04)
	assert.InDelta(t, 0.05, fine[1].Line-fine[0].Line, 1e-9)

	coarse := LineGrid("passing_yards", 250, 45)
	assert.InDelta(t, 5.0, coarse[1].Line-coarse[0].Line, 1e-9)
}

func TestAmericanToDecimal(t *testing.T) {
	assert.InDelta(t, 2.50, AmericanToDecimal(150), 1e-9)
	assert.InDelta(t, 1.9090909, AmericanToDecimal(-110), 1e-6)
	assert.InDelta(t, 2.0, AmericanToDecimal(100), 1e-9)
	assert.Equal(t, 1.0, AmericanToDecimal(0))
}

func TestDecimalToAmericanRoundTrip(t *testing.T) {
	for _, odds := range []int{150, -110, 100, -250, 300} {
		assert.Equal(t, odds, DecimalToAmerican(AmericanToDecimal(odds)))
	}
}
