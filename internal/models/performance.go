package models

import "time"

// PerformanceRow is one historical game row for an entity. Stat values live
// in the Stats map keyed by stat name; situational columns are optional and
// nil when the upstream source did not supply them.
type PerformanceRow struct {
	EntityID   string             `json:"entity_id"`
	EntityType string             `json:"entity_type"`
	Sport      string             `json:"sport"`
	Season     string             `json:"season"`
	GameDate   time.Time          `json:"game_date"`
	Opponent   string             `json:"opponent"`
	IsHome     *bool              `json:"is_home,omitempty"`
	RestDays   *int               `json:"rest_days,omitempty"`
	GameHour   *int               `json:"game_hour,omitempty"`
	Stats      map[string]float64 `json:"stats"`
}

// StatValue returns the value for a stat and whether the row carries it.
func (r PerformanceRow) StatValue(name string) (float64, bool) {
	v, ok := r.Stats[name]
	return v, ok
}

// EntityType values used across the prediction pipeline.
const (
	EntityTypePlayer = "player"
	EntityTypeTeam   = "team"
)
