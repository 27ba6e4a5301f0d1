package weather

// Sensitivity holds the per-factor coefficients for one (sport, stat) pair.
// A factor is either a scalar linear coefficient or a bucketed map; bucketed
// maps take precedence when both are set.
type Sensitivity struct {
	Wind                 float64
	WindDirectional      map[string]float64
	TemperatureCoeff     float64
	TemperatureBuckets   map[string]float64
	PrecipitationCoeff   float64
	PrecipitationBuckets map[string]float64
	Humidity             float64
	Pressure             float64
}

// Temperature buckets
const (
	BucketCold = "cold"
	BucketHot  = "hot"
)

// Precipitation buckets
const (
	BucketLight    = "light"
	BucketModerate = "moderate"
	BucketHeavy    = "heavy"
)

// Reference points for the linear factor functions.
const (
	windFloor           = 5.0
	windAmplifyAt       = 10.0
	windSevereAt        = 20.0
	windAmplifier       = 1.5
	optimalTemperature  = 70.0
	temperatureDeadZone = 10.0
	coldThreshold       = 50.0
	hotThreshold        = 85.0
	optimalHumidity     = 50.0
	humidityDeadZone    = 20.0
	optimalPressureInHg = 30.00
	precipLightMax      = 0.3
	precipModerateMax   = 0.7
	maxPrecipIntensity  = 1.0
)

// defaultProfiles maps sport to stat to sensitivity coefficients. Indoor
// sports have no entries and always resolve to zero impact.
func defaultProfiles() map[string]map[string]Sensitivity {
	return map[string]map[string]Sensitivity{
		"NFL": {
			"passing_yards": {
				Wind:               -0.010,
				TemperatureCoeff:   -0.0015,
				PrecipitationCoeff: -0.08,
				Humidity:           -0.0005,
			},
			"passing_touchdowns": {
				Wind:               -0.008,
				TemperatureCoeff:   -0.001,
				PrecipitationCoeff: -0.06,
			},
			"completion_pct": {
				Wind:               -0.006,
				PrecipitationBuckets: map[string]float64{
					BucketLight:    -0.02,
					BucketModerate: -0.05,
					BucketHeavy:    -0.09,
				},
				Humidity: -0.0004,
			},
			"interceptions": {
				Wind:               0.008,
				PrecipitationCoeff: 0.05,
			},
			"receiving_yards": {
				Wind:               -0.008,
				TemperatureCoeff:   -0.001,
				PrecipitationCoeff: -0.06,
			},
			"receptions": {
				Wind:               -0.005,
				PrecipitationCoeff: -0.05,
			},
			"receiving_touchdowns": {
				Wind:               -0.006,
				PrecipitationCoeff: -0.05,
			},
			"field_goals_made": {
				Wind: -0.012,
				TemperatureBuckets: map[string]float64{
					BucketCold: -0.06,
					BucketHot:  0.01,
				},
				PrecipitationCoeff: -0.07,
			},
			"field_goal_pct": {
				Wind: -0.010,
				TemperatureBuckets: map[string]float64{
					BucketCold: -0.05,
					BucketHot:  0.01,
				},
				PrecipitationCoeff: -0.06,
			},
		},
		"MLB": {
			"home_runs": {
				WindDirectional: map[string]float64{
					"tailwind":  0.012,
					"headwind":  -0.012,
					"crosswind": -0.002,
				},
				TemperatureBuckets: map[string]float64{
					BucketCold: -0.05,
					BucketHot:  0.04,
				},
				Humidity: -0.0006,
				Pressure: 0.05,
			},
			"hits": {
				Wind:               -0.003,
				TemperatureCoeff:   -0.0008,
				PrecipitationCoeff: -0.04,
			},
			"total_bases": {
				Wind: -0.003,
				TemperatureBuckets: map[string]float64{
					BucketCold: -0.03,
					BucketHot:  0.02,
				},
				Humidity: -0.0004,
				Pressure: 0.03,
			},
			"runs_batted_in": {
				Wind: -0.002,
				TemperatureBuckets: map[string]float64{
					BucketCold: -0.02,
					BucketHot:  0.015,
				},
			},
			"batting_avg": {
				Wind:               -0.002,
				TemperatureCoeff:   -0.0006,
				PrecipitationCoeff: -0.03,
			},
			"strikeouts": {
				TemperatureCoeff: -0.0008,
				Humidity:         0.0003,
			},
			"earned_run_avg": {
				Wind: 0.003,
				TemperatureBuckets: map[string]float64{
					BucketCold: -0.02,
					BucketHot:  0.03,
				},
				Pressure: -0.02,
			},
		},
	}
}
