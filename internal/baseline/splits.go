package baseline

import (
	"github.com/yourusername/prop-edge/internal/mathutil"
	"github.com/yourusername/prop-edge/internal/models"
)

// Situational split names
const (
	SplitHome      = "home"
	SplitAway      = "away"
	SplitDay       = "day"
	SplitNight     = "night"
	SplitRested    = "rested"
	SplitShortRest = "short_rest"
)

// nightGameHour is the local start hour at or after which a game counts as a
// night game.
const nightGameHour = 17

// restedDays is the minimum rest for the "rested" split.
const restedDays = 2

// computeSplits averages numeric stats over situational subsets of the rows.
// Each split is computed only when the relevant column exists on at least one
// row; splits are independent of one another.
func computeSplits(rows []models.PerformanceRow) map[string]map[string]float64 {
	splits := make(map[string]map[string]float64)

	home, away := partition(rows, func(r models.PerformanceRow) (bool, bool) {
		if r.IsHome == nil {
			return false, false
		}
		return *r.IsHome, true
	})
	addSplit(splits, SplitHome, home)
	addSplit(splits, SplitAway, away)

	day, night := partition(rows, func(r models.PerformanceRow) (bool, bool) {
		if r.GameHour == nil {
			return false, false
		}
		return *r.GameHour < nightGameHour, true
	})
	addSplit(splits, SplitDay, day)
	addSplit(splits, SplitNight, night)

	rested, short := partition(rows, func(r models.PerformanceRow) (bool, bool) {
		if r.RestDays == nil {
			return false, false
		}
		return *r.RestDays >= restedDays, true
	})
	addSplit(splits, SplitRested, rested)
	addSplit(splits, SplitShortRest, short)

	return splits
}

// partition splits rows by a predicate; rows where the predicate reports the
// column missing are dropped from both sides.
func partition(rows []models.PerformanceRow, pred func(models.PerformanceRow) (bool, bool)) (yes, no []models.PerformanceRow) {
	for _, row := range rows {
		match, ok := pred(row)
		if !ok {
			continue
		}
		if match {
			yes = append(yes, row)
		} else {
			no = append(no, row)
		}
	}
	return yes, no
}

func addSplit(splits map[string]map[string]float64, name string, rows []models.PerformanceRow) {
	if len(rows) == 0 {
		return
	}
	averages := make(map[string]float64)
	for _, stat := range statColumns(rows) {
		values := columnValues(rows, stat)
		if len(values) > 0 {
			averages[stat] = mathutil.Mean(values)
		}
	}
	splits[name] = averages
}
