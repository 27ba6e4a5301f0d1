package models

import "time"

// Relative wind directions used by direction-aware sensitivity profiles.
const (
	WindTailwind  = "tailwind"
	WindHeadwind  = "headwind"
	WindCrosswind = "crosswind"
)

// WeatherObservation is a raw weather record for a game location. Fields are
// pointers because upstream providers routinely omit them; missing fields
// reduce impact confidence rather than failing the prediction.
type WeatherObservation struct {
	Temperature   *float64  `json:"temperature,omitempty"`
	Humidity      *float64  `json:"humidity,omitempty"`
	Pressure      *float64  `json:"pressure,omitempty"`
	WindSpeed     *float64  `json:"wind_speed,omitempty"`
	WindDirection *string   `json:"wind_direction,omitempty"`
	Precipitation *float64  `json:"precipitation,omitempty"`
	Clouds        *float64  `json:"clouds,omitempty"`
	Timestamp     time.Time `json:"timestamp"`
	Location      string    `json:"location,omitempty"`
	IsFallback    bool      `json:"is_fallback,omitempty"`
}

// FallbackObservation returns the documented neutral record used when the
// weather provider is unavailable: 20 degrees, 50% humidity, standard
// pressure, light wind, no precipitation.
func FallbackObservation(location string) WeatherObservation {
	temp := 20.0
	humidity := 50.0
	pressure := 1013.25
	wind := 5.0
	precip := 0.0
	return WeatherObservation{
		Temperature:   &temp,
		Humidity:      &humidity,
		Pressure:      &pressure,
		WindSpeed:     &wind,
		Precipitation: &precip,
		Timestamp:     time.Now().UTC(),
		Location:      location,
		IsFallback:    true,
	}
}

// WeatherImpactResult is the outcome of running one stat through the weather
// impact model.
type WeatherImpactResult struct {
	BaseValue        float64            `json:"base_value"`
	AdjustedValue    float64            `json:"adjusted_value"`
	TotalImpact      float64            `json:"total_impact"`
	ImpactPercentage float64            `json:"impact_percentage"`
	Factors          map[string]float64 `json:"factors"`
	Confidence       float64            `json:"confidence"`
	Severity         string             `json:"severity"`
}

// Impact severity labels bucketed from |total impact|.
const (
	SeverityMinimal     = "minimal"
	SeverityMinor       = "minor"
	SeverityModerate    = "moderate"
	SeveritySignificant = "significant"
	SeveritySevere      = "severe"
)
