package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Game is one scheduled contest as supplied by the odds/games source,
// including the market numbers consumed as plain context by the prediction
// pipeline.
type Game struct {
	GameID       string          `json:"game_id" validate:"required"`
	Sport        string          `json:"sport" validate:"required"`
	HomeTeam     string          `json:"home_team"`
	AwayTeam     string          `json:"away_team"`
	StartTime    time.Time       `json:"start_time"`
	Venue        string          `json:"venue,omitempty"`
	Location     string          `json:"location,omitempty"`
	Indoor       bool            `json:"indoor,omitempty"`
	MarketSpread decimal.Decimal `json:"market_spread"`
	MarketTotal  decimal.Decimal `json:"market_total"`
	OddsHome     int             `json:"odds_home,omitempty"`
	OddsAway     int             `json:"odds_away,omitempty"`
	BettingLines []PropBet       `json:"betting_lines,omitempty"`
}
