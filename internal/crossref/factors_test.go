package crossref

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/yourusername/prop-edge/internal/models"
)

func ptr[T any](v T) *T { return &v }

func TestVenueFactorSpecificVenueBeatsGeneric(t *testing.T) {
	gc := models.GameContext{
		Venue:  ptr("Coors Field"),
		IsHome: ptr(true),
	}
	v, fired := venueFactor("MLB", "home_runs", gc)
	assert.True(t, fired)
	assert.Equal(t, 0.15, v)
}

func TestVenueFactorGenericHomeAway(t *testing.T) {
	home, fired := venueFactor("NBA", "points", models.GameContext{IsHome: ptr(true)})
	assert.True(t, fired)
	assert.Equal(t, 0.028, home)

	away, fired := venueFactor("NBA", "points", models.GameContext{IsHome: ptr(false)})
	assert.True(t, fired)
	assert.Equal(t, -0.028, away)
}

func TestVenueFactorMissingContext(t *testing.T) {
	_, fired := venueFactor("NBA", "points", models.GameContext{})
	assert.False(t, fired)
}

func TestOpponentFactorStrengthAndHeadToHead(t *testing.T) {
	v, fired := opponentFactor(models.GameContext{OpponentStrength: ptr(70.0)})
	assert.True(t, fired)
	assert.InDelta(t, -0.04, v, 1e-9)

	v, _ = opponentFactor(models.GameContext{
		OpponentStrength:  ptr(30.0),
		HeadToHeadWinRate: ptr(0.75),
	})
	assert.InDelta(t, 0.04+0.05, v, 1e-9)
}

func TestRestFactorDifferential(t *testing.T) {
	v, fired := restFactor("NBA", models.GameContext{
		RestDays:         ptr(3),
		OpponentRestDays: ptr(0),
	})
	assert.True(t, fired)
	assert.InDelta(t, 0.02+0.03, v, 1e-9)
}

func TestRestFactorExtendedRestUsesHighestKeyedEntry(t *testing.T) {
	v, fired := restFactor("NBA", models.GameContext{RestDays: ptr(6)})
	assert.True(t, fired)
	assert.InDelta(t, 0.02, v, 1e-9)
}

func TestScheduleFactorBackToBack(t *testing.T) {
	v, fired := scheduleFactor(models.GameContext{ScheduleSpot: ptr(models.ScheduleBackToBack)})
	assert.True(t, fired)
	assert.Equal(t, -0.12, v)
}

func TestScheduleFactorFatigueWindows(t *testing.T) {
	v, fired := scheduleFactor(models.GameContext{
		GamesLast7Days:  ptr(4),
		GamesLast14Days: ptr(8),
	})
	assert.True(t, fired)
	assert.InDelta(t, -0.05, v, 1e-9)
}

func TestInjuryFactorClampedForLongLists(t *testing.T) {
	out := models.InjuryReport{PlayerName: "x", Importance: 1, Severity: 1, ProbabilityPlaying: 0}
	var roster []models.InjuryReport
	for i := 0; i < 50; i++ {
		roster = append(roster, out)
	}

	v, fired := injuryFactor(models.GameContext{TeamInjuries: roster})
	assert.True(t, fired)
	assert.Equal(t, -0.40, v)

	v, _ = injuryFactor(models.GameContext{OpponentInjuries: roster})
	assert.Equal(t, 0.20, v)
}

func TestInjuryFactorSingleReport(t *testing.T) {
	v, fired := injuryFactor(models.GameContext{
		TeamInjuries: []models.InjuryReport{
			{PlayerName: "star", Importance: 0.9, Severity: 0.8, ProbabilityPlaying: 0.25},
		},
	})
	assert.True(t, fired)
	assert.InDelta(t, -0.9*0.8*0.75*0.25, v, 1e-9)
}

func TestTravelFactorNeverPositiveAndFloored(t *testing.T) {
	v, fired := travelFactor("NBA", models.GameContext{
		TravelDistance:   ptr(2600.0),
		TimezonesCrossed: ptr(3),
	})
	assert.True(t, fired)
	assert.LessOrEqual(t, v, 0.0)
	assert.GreaterOrEqual(t, v, -0.10)
}

func TestTravelFactorCadenceScaling(t *testing.T) {
	gc := models.GameContext{TravelDistance: ptr(1500.0)}

	nba, _ := travelFactor("NBA", gc)
	assert.InDelta(t, -0.025*1.2, nba, 1e-9)

	nfl, _ := travelFactor("NFL", gc)
	assert.InDelta(t, -0.025*0.8, nfl, 1e-9)
}

func TestTimeOfDayFactorCircadianMismatch(t *testing.T) {
	night := time.Date(2026, 6, 12, 19, 0, 0, 0, time.UTC)
	v, fired := timeOfDayFactor("MLB", models.GameContext{
		GameTime:           &night,
		PlayerPrefersNight: ptr(false),
	})
	assert.True(t, fired)
	assert.Equal(t, -0.02, v)
}

func TestTimeOfDayFactorOddHour(t *testing.T) {
	late := time.Date(2026, 6, 12, 22, 30, 0, 0, time.UTC)
	v, fired := timeOfDayFactor("NBA", models.GameContext{GameTime: &late})
	assert.True(t, fired)
	assert.Equal(t, -0.015, v)
}

func TestCoachingFactorTacticalMatchup(t *testing.T) {
	v, fired := coachingFactor(models.GameContext{
		CoachSituationalWinPct: ptr(0.7),
		TacticalMatchup:        ptr("favorable"),
	})
	assert.True(t, fired)
	assert.InDelta(t, 0.08, v, 1e-9)
}

func TestRivalryFactor(t *testing.T) {
	v, fired := rivalryFactor("NFL", models.GameContext{IsRivalry: true})
	assert.True(t, fired)
	assert.Equal(t, 0.03, v)

	_, fired = rivalryFactor("NFL", models.GameContext{})
	assert.False(t, fired)
}
