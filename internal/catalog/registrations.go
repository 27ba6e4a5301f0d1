package catalog

import "github.com/yourusername/prop-edge/internal/models"

// defaultRegistrations is the explicit registration list: sport code to an
// ordered list of named stat groups. Adding a stat means adding it here; no
// reflective discovery.
func defaultRegistrations() map[string][]StatGroup {
	return map[string][]StatGroup{
		"NFL": {
			{
				Name: "passing",
				Stats: []models.StatDefinition{
					{Name: "passing_yards", Category: "passing", Unit: "yards", HigherIsBetter: true, WeatherSensitive: true, VenueSensitive: true},
					{Name: "passing_touchdowns", Category: "passing", Unit: "count", HigherIsBetter: true, WeatherSensitive: true, VenueSensitive: true},
					{Name: "interceptions", Category: "passing", Unit: "count", HigherIsBetter: false, WeatherSensitive: true},
					{Name: "completion_pct", Category: "passing", Unit: "percent", HigherIsBetter: true, WeatherSensitive: true, IsPercentage: true},
				},
			},
			{
				Name: "rushing",
				Stats: []models.StatDefinition{
					{Name: "rushing_yards", Category: "rushing", Unit: "yards", HigherIsBetter: true, VenueSensitive: true},
					{Name: "rushing_touchdowns", Category: "rushing", Unit: "count", HigherIsBetter: true},
					{Name: "carries", Category: "rushing", Unit: "count", HigherIsBetter: true},
				},
			},
			{
				Name: "receiving",
				Stats: []models.StatDefinition{
					{Name: "receiving_yards", Category: "receiving", Unit: "yards", HigherIsBetter: true, WeatherSensitive: true, VenueSensitive: true},
					{Name: "receptions", Category: "receiving", Unit: "count", HigherIsBetter: true, WeatherSensitive: true},
					{Name: "receiving_touchdowns", Category: "receiving", Unit: "count", HigherIsBetter: true, WeatherSensitive: true},
				},
			},
			{
				Name: "kicking",
				Stats: []models.StatDefinition{
					{Name: "field_goals_made", Category: "kicking", Unit: "count", HigherIsBetter: true, WeatherSensitive: true, VenueSensitive: true},
					{Name: "field_goal_pct", Category: "kicking", Unit: "percent", HigherIsBetter: true, WeatherSensitive: true, IsPercentage: true},
				},
			},
		},
		"NBA": {
			{
				Name: "scoring",
				Stats: []models.StatDefinition{
					{Name: "points", Category: "scoring", Unit: "count", HigherIsBetter: true, VenueSensitive: true},
					{Name: "three_pointers_made", Category: "scoring", Unit: "count", HigherIsBetter: true, VenueSensitive: true},
					{Name: "free_throw_pct", Category: "scoring", Unit: "percent", HigherIsBetter: true, IsPercentage: true},
					{Name: "field_goal_pct", Category: "scoring", Unit: "percent", HigherIsBetter: true, IsPercentage: true},
				},
			},
			{
				Name: "playmaking",
				Stats: []models.StatDefinition{
					{Name: "assists", Category: "playmaking", Unit: "count", HigherIsBetter: true},
					{Name: "turnovers", Category: "playmaking", Unit: "count", HigherIsBetter: false},
				},
			},
			{
				Name: "defense",
				Stats: []models.StatDefinition{
					{Name: "rebounds", Category: "defense", Unit: "count", HigherIsBetter: true},
					{Name: "steals", Category: "defense", Unit: "count", HigherIsBetter: true},
					{Name: "blocks", Category: "defense", Unit: "count", HigherIsBetter: true},
				},
			},
		},
		"MLB": {
			{
				Name: "batting",
				Stats: []models.StatDefinition{
					{Name: "hits", Category: "batting", Unit: "count", HigherIsBetter: true, WeatherSensitive: true, VenueSensitive: true},
					{Name: "home_runs", Category: "batting", Unit: "count", HigherIsBetter: true, WeatherSensitive: true, VenueSensitive: true},
					{Name: "runs_batted_in", Category: "batting", Unit: "count", HigherIsBetter: true, WeatherSensitive: true},
					{Name: "batting_avg", Category: "batting", Unit: "percent", HigherIsBetter: true, WeatherSensitive: true, IsPercentage: true},
					{Name: "total_bases", Category: "batting", Unit: "count", HigherIsBetter: true, WeatherSensitive: true, VenueSensitive: true},
				},
			},
			{
				Name: "pitching",
				Stats: []models.StatDefinition{
					{Name: "strikeouts", Category: "pitching", Unit: "count", HigherIsBetter: true, WeatherSensitive: true},
					{Name: "earned_run_avg", Category: "pitching", Unit: "runs", HigherIsBetter: false, WeatherSensitive: true, VenueSensitive: true},
					{Name: "pitching_outs", Category: "pitching", Unit: "count", HigherIsBetter: true},
				},
			},
		},
		"NHL": {
			{
				Name: "scoring",
				Stats: []models.StatDefinition{
					{Name: "goals", Category: "scoring", Unit: "count", HigherIsBetter: true, VenueSensitive: true},
					{Name: "assists", Category: "scoring", Unit: "count", HigherIsBetter: true},
					{Name: "shots_on_goal", Category: "scoring", Unit: "count", HigherIsBetter: true},
				},
			},
			{
				Name: "goaltending",
				Stats: []models.StatDefinition{
					{Name: "saves", Category: "goaltending", Unit: "count", HigherIsBetter: true},
					{Name: "save_pct", Category: "goaltending", Unit: "percent", HigherIsBetter: true, IsPercentage: true},
					{Name: "goals_against", Category: "goaltending", Unit: "count", HigherIsBetter: false},
				},
			},
		},
	}
}
