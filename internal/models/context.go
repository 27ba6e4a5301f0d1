package models

import "time"

// InjuryReport describes one injured player feeding the injury factor.
// Importance and Severity are normalized to [0,1]; ProbabilityPlaying is the
// chance the player suits up anyway.
type InjuryReport struct {
	PlayerName         string  `json:"player_name"`
	Importance         float64 `json:"importance" validate:"gte=0,lte=1"`
	Severity           float64 `json:"severity" validate:"gte=0,lte=1"`
	ProbabilityPlaying float64 `json:"probability_playing" validate:"gte=0,lte=1"`
}

// GameContext is the explicit, typed replacement for the loosely keyed
// context bags that situational adjusters tend to accumulate. Optional fields
// are pointers; nil means "not supplied" and each factor falls back to its
// documented neutral default.
type GameContext struct {
	GameID             string         `json:"game_id,omitempty"`
	Venue              *string        `json:"venue,omitempty"`
	IsHome             *bool          `json:"is_home,omitempty"`
	OpponentStrength   *float64       `json:"opponent_strength,omitempty"`
	HeadToHeadWinRate  *float64       `json:"head_to_head_win_rate,omitempty"`
	RestDays           *int           `json:"rest_days,omitempty"`
	OpponentRestDays   *int           `json:"opponent_rest_days,omitempty"`
	ScheduleSpot       *string        `json:"schedule_spot,omitempty"`
	PostBye            bool           `json:"post_bye,omitempty"`
	GamesLast7Days     *int           `json:"games_last_7_days,omitempty"`
	GamesLast14Days    *int           `json:"games_last_14_days,omitempty"`
	TeamInjuries       []InjuryReport `json:"team_injuries,omitempty"`
	OpponentInjuries   []InjuryReport `json:"opponent_injuries,omitempty"`
	CoachSituationalWinPct *float64   `json:"coach_situational_win_pct,omitempty"`
	CoachHeadToHeadWinPct  *float64   `json:"coach_head_to_head_win_pct,omitempty"`
	TacticalMatchup    *string        `json:"tactical_matchup,omitempty"`
	Referee            *string        `json:"referee,omitempty"`
	TravelDistance     *float64       `json:"travel_distance,omitempty"`
	TimezonesCrossed   *int           `json:"timezones_crossed,omitempty"`
	GameTime           *time.Time     `json:"game_time,omitempty"`
	PlayerPrefersNight *bool          `json:"player_prefers_night,omitempty"`
	IsRivalry          bool           `json:"is_rivalry,omitempty"`

	// Market context consumed as plain numerics from the odds source.
	MarketSpread *float64 `json:"market_spread,omitempty"`
	MarketTotal  *float64 `json:"market_total,omitempty"`
	OpponentRank *int     `json:"opponent_rank,omitempty"`

	// Prediction feature context.
	ProjectedUsage *float64 `json:"projected_usage,omitempty"`
	HealthStatus   *float64 `json:"health_status,omitempty"`
	MatchupAverage *float64 `json:"matchup_average,omitempty"`
	SeasonProgress *float64 `json:"season_progress,omitempty"`
}

// Named schedule congestion spots recognized by the schedule factor.
const (
	ScheduleBackToBack = "b2b"
	ScheduleThreeInFour = "3in4"
	ScheduleFourInFive  = "4in5"
	ScheduleFiveInSeven = "5in7"
	ScheduleShortWeek   = "short_week"
	SchedulePostBye     = "post_bye"
)
