package crossref

import "github.com/yourusername/prop-edge/internal/models"

// factorWeights is the fixed per-sport weighting applied to factor values.
// Each table sums to at most 1 and is applied identically regardless of
// which factors fired: absent factors contribute zero, their weight is never
// redistributed.
var factorWeights = map[string]map[string]float64{
	"NBA": {
		models.FactorVenue:     0.12,
		models.FactorOpponent:  0.18,
		models.FactorRest:      0.15,
		models.FactorSchedule:  0.15,
		models.FactorInjury:    0.20,
		models.FactorCoaching:  0.05,
		models.FactorReferee:   0.02,
		models.FactorTravel:    0.05,
		models.FactorTimeOfDay: 0.03,
		models.FactorRivalry:   0.05,
	},
	"NFL": {
		models.FactorVenue:     0.15,
		models.FactorOpponent:  0.22,
		models.FactorRest:      0.10,
		models.FactorSchedule:  0.12,
		models.FactorInjury:    0.22,
		models.FactorCoaching:  0.08,
		models.FactorReferee:   0.02,
		models.FactorTravel:    0.03,
		models.FactorTimeOfDay: 0.02,
		models.FactorRivalry:   0.04,
	},
	"MLB": {
		models.FactorVenue:     0.14,
		models.FactorOpponent:  0.16,
		models.FactorRest:      0.12,
		models.FactorSchedule:  0.10,
		models.FactorInjury:    0.18,
		models.FactorCoaching:  0.06,
		models.FactorReferee:   0.02,
		models.FactorTravel:    0.08,
		models.FactorTimeOfDay: 0.06,
		models.FactorRivalry:   0.03,
	},
	"NHL": {
		models.FactorVenue:     0.13,
		models.FactorOpponent:  0.17,
		models.FactorRest:      0.15,
		models.FactorSchedule:  0.14,
		models.FactorInjury:    0.18,
		models.FactorCoaching:  0.05,
		models.FactorReferee:   0.03,
		models.FactorTravel:    0.06,
		models.FactorTimeOfDay: 0.03,
		models.FactorRivalry:   0.04,
	},
}

// genericHomeField is the fixed home-field percentage per sport used when no
// venue-specific entry exists.
var genericHomeField = map[string]float64{
	"NBA": 0.028,
	"NFL": 0.025,
	"MLB": 0.015,
	"NHL": 0.022,
}

// venueStatAdjustments holds venue-specific stat adjustments that take
// precedence over the generic home-field percentage.
var venueStatAdjustments = map[string]map[string]float64{
	"Coors Field": {
		"home_runs":      0.15,
		"hits":           0.08,
		"total_bases":    0.12,
		"earned_run_avg": 0.10,
	},
	"Oracle Park": {
		"home_runs": -0.08,
	},
	"Empower Field": {
		"field_goals_made": 0.05,
		"passing_yards":    0.02,
	},
	"Lambeau Field": {
		"passing_yards": -0.03,
	},
	"Madison Square Garden": {
		"points": 0.02,
	},
}

// restDayImpacts maps rest days to impact per sport. Back-to-backs hit NBA
// and NHL hardest; MLB plays daily so rest means little.
var restDayImpacts = map[string]map[int]float64{
	"NBA": {0: -0.12, 1: -0.02, 2: 0.01, 3: 0.02},
	"NHL": {0: -0.10, 1: -0.02, 2: 0.01, 3: 0.02},
	"NFL": {3: -0.05, 4: -0.03, 6: 0.0, 7: 0.01, 10: 0.02},
	"MLB": {0: -0.02, 1: 0.0, 2: 0.01},
}

// scheduleSpotImpacts maps named congestion patterns to fixed impacts.
var scheduleSpotImpacts = map[string]float64{
	models.ScheduleBackToBack:  -0.12,
	models.ScheduleThreeInFour: -0.08,
	models.ScheduleFourInFive:  -0.10,
	models.ScheduleFiveInSeven: -0.09,
	models.ScheduleShortWeek:   -0.06,
	models.SchedulePostBye:     0.05,
}

// rivalryBonus is the fixed per-sport boost applied when a game is flagged
// as a rivalry matchup.
var rivalryBonus = map[string]float64{
	"NFL": 0.03,
	"NBA": 0.02,
	"MLB": 0.02,
	"NHL": 0.03,
}

// backToBackHeavySports travel harder within short turnarounds.
var backToBackHeavySports = map[string]bool{"NBA": true, "NHL": true}

// weeklyCadenceSports have a full week to absorb travel.
var weeklyCadenceSports = map[string]bool{"NFL": true}

// SupportedSports returns the sports with a weight table.
func SupportedSports() []string {
	sports := make([]string, 0, len(factorWeights))
	for sport := range factorWeights {
		sports = append(sports, sport)
	}
	return sports
}
