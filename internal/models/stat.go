package models

// StatDefinition is immutable metadata describing a single statistical category.
// Instances are created at catalog load and never mutated afterwards.
type StatDefinition struct {
	Name             string `json:"name" validate:"required"`
	Category         string `json:"category" validate:"required"`
	Unit             string `json:"unit" validate:"required"`
	HigherIsBetter   bool   `json:"higher_is_better"`
	WeatherSensitive bool   `json:"weather_sensitive"`
	VenueSensitive   bool   `json:"venue_sensitive"`
	IsPercentage     bool   `json:"is_percentage"`
}

// DirectionSign returns +1 for stats where bigger numbers are better and -1
// otherwise. Used to keep z-score and percentile normalization consistent for
// inverted stats such as turnovers or ERA.
func (d StatDefinition) DirectionSign() float64 {
	if d.HigherIsBetter {
		return 1.0
	}
	return -1.0
}
