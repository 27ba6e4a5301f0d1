package crossref

import (
	"io"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yourusername/prop-edge/internal/models"
)

type fixedReferee struct{ value float64 }

func (f fixedReferee) Adjustment(string) float64 { return f.value }

func testAdjuster(referee RefereeModel) *Adjuster {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return NewAdjuster(referee, logger)
}

func TestAdjustUnsupportedSportIsIdentity(t *testing.T) {
	adj := testAdjuster(nil)
	result := adj.Adjust("cricket", "runs", 42.0, models.GameContext{IsHome: ptr(true)})

	assert.Equal(t, 42.0, result.BaseValue)
	assert.Equal(t, 42.0, result.AdjustedValue)
	assert.Zero(t, result.TotalAdjustment)
	assert.Empty(t, result.FactorAdjustments)
	assert.Equal(t, 0.5, result.Confidence)
}

func TestAdjustBackToBackRecordsUnweightedFactor(t *testing.T) {
	adj := testAdjuster(nil)
	result := adj.Adjust("NBA", "points", 25.0, models.GameContext{
		ScheduleSpot: ptr(models.ScheduleBackToBack),
	})

	require.Contains(t, result.FactorAdjustments, models.FactorSchedule)
	assert.Equal(t, -0.12, result.FactorAdjustments[models.FactorSchedule])
	// Weighted contribution, not the raw factor, moves the value.
	assert.InDelta(t, 25.0*(1-0.12*0.15), result.AdjustedValue, 1e-9)
}

func TestAdjustWeightedSum(t *testing.T) {
	adj := testAdjuster(fixedReferee{value: 0.01})
	gc := models.GameContext{
		IsHome:           ptr(true),
		OpponentStrength: ptr(60.0),
		RestDays:         ptr(0),
		Referee:          ptr("T. Brothers"),
	}
	result := adj.Adjust("NBA", "points", 20.0, gc)

	want := 0.028*0.12 + (-0.02)*0.18 + (-0.12)*0.15 + 0.01*0.02
	assert.InDelta(t, want, result.TotalAdjustment, 1e-9)
	assert.InDelta(t, 20.0*(1+want), result.AdjustedValue, 1e-9)
}

func TestAdjustLowercaseSportAccepted(t *testing.T) {
	adj := testAdjuster(nil)
	result := adj.Adjust("nba", "points", 20.0, models.GameContext{IsHome: ptr(true)})
	assert.NotEmpty(t, result.FactorAdjustments)
}

func TestConfidenceDeductsForMissingContext(t *testing.T) {
	adj := testAdjuster(nil)

	sparse := adj.Adjust("NBA", "points", 20.0, models.GameContext{})
	rich := adj.Adjust("NBA", "points", 20.0, models.GameContext{
		IsHome:           ptr(true),
		Venue:            ptr("Madison Square Garden"),
		OpponentStrength: ptr(55.0),
		RestDays:         ptr(2),
		TeamInjuries: []models.InjuryReport{
			{PlayerName: "bench wing", Importance: 0.2, Severity: 0.3, ProbabilityPlaying: 0.5},
		},
	})

	assert.Less(t, sparse.Confidence, rich.Confidence)
	// All four context deductions: 0.8 - 4*0.1.
	assert.InDelta(t, 0.4, sparse.Confidence, 1e-9)
}

func TestConfidenceStaysWithinBounds(t *testing.T) {
	adj := testAdjuster(nil)
	heavy := models.InjuryReport{PlayerName: "x", Importance: 1, Severity: 1, ProbabilityPlaying: 0}
	gc := models.GameContext{
		IsHome:           ptr(false),
		OpponentStrength: ptr(95.0),
		RestDays:         ptr(0),
		ScheduleSpot:     ptr(models.ScheduleBackToBack),
		TeamInjuries:     []models.InjuryReport{heavy, heavy, heavy, heavy},
		TravelDistance:   ptr(3000.0),
		TimezonesCrossed: ptr(3),
	}
	result := adj.Adjust("NBA", "points", 20.0, gc)

	assert.GreaterOrEqual(t, result.Confidence, 0.3)
	assert.LessOrEqual(t, result.Confidence, 0.95)
}

func TestNarrationSplitsInsightsAndRisks(t *testing.T) {
	adj := testAdjuster(nil)
	heavy := models.InjuryReport{PlayerName: "x", Importance: 1, Severity: 1, ProbabilityPlaying: 0}
	result := adj.Adjust("MLB", "home_runs", 1.2, models.GameContext{
		Venue:            ptr("Coors Field"),
		IsHome:           ptr(true),
		OpponentInjuries: []models.InjuryReport{heavy},
	})

	assert.NotEmpty(t, result.KeyInsights)
	assert.Empty(t, result.RiskFactors)

	worn := adj.Adjust("NBA", "points", 25.0, models.GameContext{
		ScheduleSpot: ptr(models.ScheduleBackToBack),
		TeamInjuries: []models.InjuryReport{heavy, heavy},
	})
	assert.NotEmpty(t, worn.RiskFactors)
}

func TestStochasticRefereeStaysBounded(t *testing.T) {
	model := NewStochasticReferee(7)
	for i := 0; i < 1000; i++ {
		v := model.Adjustment("any")
		assert.GreaterOrEqual(t, v, -0.02)
		assert.LessOrEqual(t, v, 0.02)
	}
}
