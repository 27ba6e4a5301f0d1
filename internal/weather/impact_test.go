package weather

import (
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/yourusername/prop-edge/internal/models"
)

func testLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetLevel(logrus.PanicLevel)
	return logger
}

func f(v float64) *float64 { return &v }

func obsWith(temp, wind, humidity, precip float64) models.WeatherObservation {
	return models.WeatherObservation{
		Temperature:   f(temp),
		WindSpeed:     f(wind),
		Humidity:      f(humidity),
		Precipitation: f(precip),
		Pressure:      f(1013.25),
	}
}

func TestIndoorSportZeroImpact(t *testing.T) {
	calc := NewCalculator(testLogger())

	result := calc.Calculate("NBA", "points", 25.0, obsWith(70, 30, 50, 1))
	assert.Equal(t, 25.0, result.AdjustedValue)
	assert.Zero(t, result.TotalImpact)
	assert.Equal(t, 1.0, result.Confidence)
	assert.Equal(t, models.SeverityMinimal, result.Severity)
}

func TestMissingProfileNeutral(t *testing.T) {
	calc := NewCalculator(testLogger())

	result := calc.Calculate("NFL", "carries", 18.0, obsWith(70, 30, 50, 1))
	assert.Equal(t, 18.0, result.AdjustedValue)
	assert.Zero(t, result.TotalImpact)
	assert.Equal(t, 0.5, result.Confidence)
}

func TestSevereWindOnPassingYards(t *testing.T) {
	calc := NewCalculator(testLogger())

	// 25-unit wind is past the severe cutoff: fixed severe penalty, strongly
	// negative impact on a 250-yard base.
	result := calc.Calculate("NFL", "passing_yards", 250.0, obsWith(70, 25, 50, 0))
	assert.Less(t, result.ImpactPercentage, -20.0)
	assert.Less(t, result.AdjustedValue, 200.0)
	assert.Contains(t, []string{models.SeveritySignificant, models.SeveritySevere}, result.Severity)
}

func TestWindTiers(t *testing.T) {
	calc := NewCalculator(testLogger())

	calm := calc.Calculate("NFL", "passing_yards", 250, obsWith(70, 3, 50, 0))
	assert.Zero(t, calm.Factors["wind"])

	linear := calc.Calculate("NFL", "passing_yards", 250, obsWith(70, 8, 50, 0))
	assert.InDelta(t, -0.010*3, linear.Factors["wind"], 1e-9)

	amplified := calc.Calculate("NFL", "passing_yards", 250, obsWith(70, 15, 50, 0))
	assert.InDelta(t, -0.010*10*1.5, amplified.Factors["wind"], 1e-9)

	severe := calc.Calculate("NFL", "passing_yards", 250, obsWith(70, 40, 50, 0))
	assert.InDelta(t, -0.010*15*1.5, severe.Factors["wind"], 1e-9)
}

func TestDirectionalWindOnHomeRuns(t *testing.T) {
	calc := NewCalculator(testLogger())

	tailwind := models.WindTailwind
	obs := obsWith(75, 15, 50, 0)
	obs.WindDirection = &tailwind

	result := calc.Calculate("MLB", "home_runs", 1.2, obs)
	assert.Greater(t, result.Factors["wind"], 0.0)

	headwind := models.WindHeadwind
	obs.WindDirection = &headwind
	result = calc.Calculate("MLB", "home_runs", 1.2, obs)
	assert.Less(t, result.Factors["wind"], 0.0)
}

func TestTemperatureDeadZone(t *testing.T) {
	calc := NewCalculator(testLogger())

	inZone := calc.Calculate("NFL", "passing_yards", 250, obsWith(75, 0, 50, 0))
	assert.Zero(t, inZone.Factors["temperature"])

	cold := calc.Calculate("NFL", "passing_yards", 250, obsWith(30, 0, 50, 0))
	// 30 degrees: |deviation| 40, dead zone trims to 30 units of excess.
	assert.InDelta(t, -0.0015*30, cold.Factors["temperature"], 1e-9)
	assert.Less(t, cold.Factors["temperature"], 0.0)
}

func TestTemperatureBuckets(t *testing.T) {
	calc := NewCalculator(testLogger())

	cold := calc.Calculate("NFL", "field_goals_made", 2.0, obsWith(30, 0, 50, 0))
	assert.InDelta(t, -0.06, cold.Factors["temperature"], 1e-9)

	hot := calc.Calculate("NFL", "field_goals_made", 2.0, obsWith(95, 0, 50, 0))
	assert.InDelta(t, 0.01, hot.Factors["temperature"], 1e-9)
}

func TestPrecipitationBuckets(t *testing.T) {
	calc := NewCalculator(testLogger())

	light := calc.Calculate("NFL", "completion_pct", 65, obsWith(70, 0, 50, 0.1))
	assert.InDelta(t, -0.02, light.Factors["precipitation"], 1e-9)

	heavy := calc.Calculate("NFL", "completion_pct", 65, obsWith(70, 0, 50, 0.9))
	assert.InDelta(t, -0.09, heavy.Factors["precipitation"], 1e-9)
}

func TestPrecipitationLinearCapped(t *testing.T) {
	calc := NewCalculator(testLogger())

	capped := calc.Calculate("NFL", "passing_yards", 250, obsWith(70, 0, 50, 3.0))
	assert.InDelta(t, -0.08, capped.Factors["precipitation"], 1e-9)
}

func TestPressureHelpsBattedBalls(t *testing.T) {
	calc := NewCalculator(testLogger())

	// Low pressure (29.50 inHg) lifts home run expectation.
	obs := obsWith(75, 0, 50, 0)
	obs.Pressure = f(29.50)
	result := calc.Calculate("MLB", "home_runs", 1.2, obs)
	assert.Greater(t, result.Factors["pressure"], 0.0)

	// hPa readings are converted before the comparison.
	obs.Pressure = f(1013.25)
	converted := calc.Calculate("MLB", "home_runs", 1.2, obs)
	assert.NotZero(t, converted.Factors["pressure"])
}

func TestConfidenceDeductions(t *testing.T) {
	calc := NewCalculator(testLogger())

	full := calc.Calculate("NFL", "passing_yards", 250, obsWith(70, 8, 50, 0))
	assert.Equal(t, 1.0, full.Confidence)

	missing := calc.Calculate("NFL", "passing_yards", 250, models.WeatherObservation{})
	assert.InDelta(t, 0.6, missing.Confidence, 1e-9)
}

func TestConfidenceFloor(t *testing.T) {
	calc := NewCalculator(testLogger())

	for _, obs := range []models.WeatherObservation{
		{},
		obsWith(-40, 60, 100, 5),
		{WindSpeed: f(120)},
	} {
		result := calc.Calculate("NFL", "passing_yards", 250, obs)
		assert.GreaterOrEqual(t, result.Confidence, 0.3)
		assert.LessOrEqual(t, result.Confidence, 1.0)
	}
}

func TestCalculateIdempotent(t *testing.T) {
	calc := NewCalculator(testLogger())
	obs := obsWith(45, 18, 80, 0.4)

	first := calc.Calculate("NFL", "passing_yards", 250, obs)
	second := calc.Calculate("NFL", "passing_yards", 250, obs)
	assert.Equal(t, first, second)
}

func TestSeverityLabels(t *testing.T) {
	cases := map[float64]string{
		0.01:  models.SeverityMinimal,
		0.07:  models.SeverityMinor,
		-0.15: models.SeverityModerate,
		0.25:  models.SeveritySignificant,
		-0.40: models.SeveritySevere,
	}
	for total, want := range cases {
		assert.Equal(t, want, severityLabel(total), "total=%v", total)
	}
}
