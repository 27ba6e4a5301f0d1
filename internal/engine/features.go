// Package engine produces calibrated statistical predictions and derives
// bet-level artifacts from them: line probabilities, expected value,
// recommendations, parlays, and stake sizing.
package engine

import (
	"strings"

	"github.com/yourusername/prop-edge/internal/mathutil"
	"github.com/yourusername/prop-edge/internal/models"
)

// Neutral defaults substituted for missing feature inputs. Missing data never
// fails a prediction.
const (
	neutralOpponentRank   = 15.0
	neutralRestDays       = 2.0
	neutralUsage          = 0.20
	neutralHealth         = 1.0
	neutralHomeFlag       = 0.5
	neutralGameHour       = 19.0
	neutralSeasonProgress = 0.5
)

// FeatureVector is the fixed-order numeric input to every model. Field order
// here is the vector order; models index by name, not position, but Values()
// keeps a stable layout for anything that wants the raw slice.
type FeatureVector struct {
	Last5Average   float64
	Last10Average  float64
	Last20Average  float64
	SeasonAverage  float64
	SeasonStd      float64
	OpponentRank   float64
	HomeFlag       float64
	RestDays       float64
	ProjectedUsage float64
	Temperature    float64
	WindSpeed      float64
	Precipitation  float64
	Humidity       float64
	MatchupAverage float64
	GameTotal      float64
	HealthStatus   float64
	GameHour       float64
	SeasonProgress float64
}

// Values returns the vector in its fixed order.
func (f FeatureVector) Values() []float64 {
	return []float64{
		f.Last5Average, f.Last10Average, f.Last20Average, f.SeasonAverage,
		f.SeasonStd, f.OpponentRank, f.HomeFlag, f.RestDays, f.ProjectedUsage,
		f.Temperature, f.WindSpeed, f.Precipitation, f.Humidity,
		f.MatchupAverage, f.GameTotal, f.HealthStatus, f.GameHour,
		f.SeasonProgress,
	}
}

// BuildFeatures assembles the feature vector for one stat from historical
// rows (chronological, oldest first), the game context, and an optional
// weather observation. Weather fields stay zero for indoor sports.
func BuildFeatures(rows []models.PerformanceRow, stat string, gc models.GameContext, obs *models.WeatherObservation, outdoor bool) FeatureVector {
	values := statSeries(rows, stat)

	f := FeatureVector{
		Last5Average:   recentAverage(values, 5),
		Last10Average:  recentAverage(values, 10),
		Last20Average:  recentAverage(values, 20),
		SeasonAverage:  mathutil.Mean(values),
		SeasonStd:      mathutil.Std(values),
		OpponentRank:   neutralOpponentRank,
		HomeFlag:       neutralHomeFlag,
		RestDays:       neutralRestDays,
		ProjectedUsage: neutralUsage,
		HealthStatus:   neutralHealth,
		GameHour:       neutralGameHour,
		SeasonProgress: neutralSeasonProgress,
	}
	f.MatchupAverage = f.SeasonAverage

	if gc.OpponentRank != nil {
		f.OpponentRank = float64(*gc.OpponentRank)
	}
	if gc.IsHome != nil {
		if *gc.IsHome {
			f.HomeFlag = 1
		} else {
			f.HomeFlag = 0
		}
	}
	if gc.RestDays != nil {
		f.RestDays = float64(*gc.RestDays)
	}
	if gc.ProjectedUsage != nil {
		f.ProjectedUsage = *gc.ProjectedUsage
	}
	if gc.HealthStatus != nil {
		f.HealthStatus = *gc.HealthStatus
	}
	if gc.MatchupAverage != nil {
		f.MatchupAverage = *gc.MatchupAverage
	}
	if gc.MarketTotal != nil {
		f.GameTotal = *gc.MarketTotal
	}
	if gc.GameTime != nil {
		f.GameHour = float64(gc.GameTime.Hour())
	}
	if gc.SeasonProgress != nil {
		f.SeasonProgress = mathutil.Clamp(*gc.SeasonProgress, 0, 1)
	}

	if outdoor && obs != nil {
		if obs.Temperature != nil {
			f.Temperature = *obs.Temperature
		}
		if obs.WindSpeed != nil {
			f.WindSpeed = *obs.WindSpeed
		}
		if obs.Precipitation != nil {
			f.Precipitation = *obs.Precipitation
		}
		if obs.Humidity != nil {
			f.Humidity = *obs.Humidity
		}
	}
	return f
}

// statSeries extracts the stat column in chronological order, skipping rows
// that do not carry it.
func statSeries(rows []models.PerformanceRow, stat string) []float64 {
	values := make([]float64, 0, len(rows))
	for _, row := range rows {
		if v, ok := row.StatValue(stat); ok {
			values = append(values, v)
		}
	}
	return values
}

// recentAverage averages the trailing n values; fewer than n uses what exists.
func recentAverage(values []float64, n int) float64 {
	if len(values) == 0 {
		return 0
	}
	if len(values) > n {
		values = values[len(values)-n:]
	}
	return mathutil.Mean(values)
}

// isPercentageStat decides the line-grid granularity for a stat.
func isPercentageStat(stat string) bool {
	return strings.Contains(stat, "pct") || strings.Contains(stat, "percentage") || strings.Contains(stat, "avg")
}
