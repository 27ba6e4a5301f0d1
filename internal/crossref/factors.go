package crossref

import (
	"math"

	"github.com/yourusername/prop-edge/internal/models"
)

// Each factor below is a pure function of its slice of the game context.
// Factors never read each other's output; the only coupling is the final
// weighted sum in the adjuster.

// venueFactor prefers the venue+stat lookup table, falling back to the
// generic home-field percentage, signed by home/away.
func venueFactor(sport, stat string, gc models.GameContext) (float64, bool) {
	if gc.Venue != nil {
		if statAdj, ok := venueStatAdjustments[*gc.Venue]; ok {
			if adj, ok := statAdj[stat]; ok {
				return adj, true
			}
		}
	}
	if gc.IsHome == nil {
		return 0, false
	}
	generic := genericHomeField[sport]
	if *gc.IsHome {
		return generic, true
	}
	return -generic, true
}

// opponentFactor scales with opponent strength above or below league average
// (50) and nudges for lopsided head-to-head history.
func opponentFactor(gc models.GameContext) (float64, bool) {
	if gc.OpponentStrength == nil {
		return 0, false
	}
	impact := -((*gc.OpponentStrength - 50) / 100) * 0.20
	if gc.HeadToHeadWinRate != nil {
		switch winRate := *gc.HeadToHeadWinRate; {
		case winRate > 0.6:
			impact += 0.05
		case winRate < 0.4:
			impact -= 0.05
		}
	}
	return impact, true
}

// restFactor looks up the sport-specific rest-day impact and adds a bonus or
// penalty for the rest differential against the opponent.
func restFactor(sport string, gc models.GameContext) (float64, bool) {
	if gc.RestDays == nil {
		return 0, false
	}
	impact := restDayImpact(sport, *gc.RestDays)
	if gc.OpponentRestDays != nil {
		diff := *gc.RestDays - *gc.OpponentRestDays
		switch {
		case diff > 1:
			impact += 0.03
		case diff < -1:
			impact -= 0.03
		}
	}
	return impact, true
}

func restDayImpact(sport string, restDays int) float64 {
	table, ok := restDayImpacts[sport]
	if !ok {
		return 0
	}
	if impact, ok := table[restDays]; ok {
		return impact
	}
	// Beyond the table means more rest than the worst key: use the highest
	// keyed entry at or below restDays.
	best := 0.0
	bestKey := -1
	for key, impact := range table {
		if key <= restDays && key > bestKey {
			bestKey = key
			best = impact
		}
	}
	return best
}

// fatigue thresholds for recent game counts.
const (
	fatigueGames7Threshold  = 3
	fatigueGames14Threshold = 7
	fatigueGames7Penalty    = -0.03
	fatigueGames14Penalty   = -0.02
)

// scheduleFactor applies named congestion-spot penalties plus windowed
// fatigue when recent game counts exceed thresholds.
func scheduleFactor(gc models.GameContext) (float64, bool) {
	fired := false
	impact := 0.0
	if gc.ScheduleSpot != nil {
		if spotImpact, ok := scheduleSpotImpacts[*gc.ScheduleSpot]; ok {
			impact += spotImpact
			fired = true
		}
	}
	if gc.PostBye {
		impact += scheduleSpotImpacts[models.SchedulePostBye]
		fired = true
	}
	if gc.GamesLast7Days != nil {
		fired = true
		if *gc.GamesLast7Days > fatigueGames7Threshold {
			impact += fatigueGames7Penalty
		}
	}
	if gc.GamesLast14Days != nil {
		fired = true
		if *gc.GamesLast14Days > fatigueGames14Threshold {
			impact += fatigueGames14Penalty
		}
	}
	return impact, fired
}

// coachingFactor rewards coaches with strong situational and head-to-head
// records, plus a fixed swing for a named tactical matchup.
func coachingFactor(gc models.GameContext) (float64, bool) {
	fired := false
	impact := 0.0
	if gc.CoachSituationalWinPct != nil {
		fired = true
		switch pct := *gc.CoachSituationalWinPct; {
		case pct > 0.6:
			impact += 0.03
		case pct < 0.4:
			impact -= 0.03
		}
	}
	if gc.CoachHeadToHeadWinPct != nil {
		fired = true
		switch pct := *gc.CoachHeadToHeadWinPct; {
		case pct > 0.6:
			impact += 0.03
		case pct < 0.4:
			impact -= 0.03
		}
	}
	if gc.TacticalMatchup != nil {
		fired = true
		switch *gc.TacticalMatchup {
		case "favorable":
			impact += 0.05
		case "unfavorable":
			impact -= 0.05
		}
	}
	return impact, fired
}

// Time-of-day penalties.
const (
	circadianPenalty = -0.02
	oddHourPenalty   = -0.015
	dayGameHour      = 17
	earlyStartHour   = 12
	lateStartHour    = 22
)

// timeOfDayFactor penalizes day/night mismatches against player preference
// for baseball and extreme start times for the arena sports.
func timeOfDayFactor(sport string, gc models.GameContext) (float64, bool) {
	if gc.GameTime == nil {
		return 0, false
	}
	hour := gc.GameTime.Hour()
	switch sport {
	case "MLB":
		if gc.PlayerPrefersNight == nil {
			return 0, true
		}
		isNight := hour >= dayGameHour
		if isNight != *gc.PlayerPrefersNight {
			return circadianPenalty, true
		}
		return 0, true
	case "NBA", "NHL":
		if hour < earlyStartHour || hour >= lateStartHour {
			return oddHourPenalty, true
		}
		return 0, true
	default:
		return 0, true
	}
}

// rivalryFactor applies the fixed per-sport bonus when flagged.
func rivalryFactor(sport string, gc models.GameContext) (float64, bool) {
	if !gc.IsRivalry {
		return 0, false
	}
	return rivalryBonus[sport], true
}

// maxAbs returns the largest absolute factor value.
func maxAbs(factors map[string]float64) float64 {
	max := 0.0
	for _, v := range factors {
		if abs := math.Abs(v); abs > max {
			max = abs
		}
	}
	return max
}
