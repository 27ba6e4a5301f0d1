// Package weather maps raw weather observations and per-stat sensitivity
// profiles to multiplicative adjustment factors on predicted values.
package weather

import (
	"math"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/yourusername/prop-edge/internal/mathutil"
	"github.com/yourusername/prop-edge/internal/models"
)

// Confidence bounds for weather impact results.
const (
	minImpactConfidence   = 0.3
	missingFieldPenalty   = 0.1
	extremeFactorPenalty  = 0.2
	extremeFactorMagnitude = 0.3
)

// Calculator evaluates weather impact for (sport, stat) pairs. Stateless
// apart from its profile tables; Calculate is a pure function of its inputs.
type Calculator struct {
	profiles map[string]map[string]Sensitivity
	logger   *logrus.Logger
}

// NewCalculator creates a calculator with the default sensitivity profiles.
func NewCalculator(logger *logrus.Logger) *Calculator {
	return &Calculator{
		profiles: defaultProfiles(),
		logger:   logger,
	}
}

// Calculate returns the weather adjustment for a base value. Indoor sports
// (no profiles configured) return zero impact at confidence 1.0; an outdoor
// sport with no profile for the stat returns a neutral result at confidence
// 0.5. Never fails.
func (c *Calculator) Calculate(sport, stat string, baseValue float64, obs models.WeatherObservation) models.WeatherImpactResult {
	result := models.WeatherImpactResult{
		BaseValue:     baseValue,
		AdjustedValue: baseValue,
		Factors:       make(map[string]float64),
		Confidence:    1.0,
		Severity:      models.SeverityMinimal,
	}

	sportProfiles, outdoor := c.profiles[strings.ToUpper(sport)]
	if !outdoor {
		return result
	}

	sensitivity, ok := sportProfiles[stat]
	if !ok {
		c.logger.WithFields(logrus.Fields{
			"sport": sport,
			"stat":  stat,
		}).Debug("No weather sensitivity profile, returning neutral impact")
		result.Confidence = 0.5
		return result
	}

	total := 0.0
	if impact, fired := windImpact(obs, sensitivity); fired {
		result.Factors["wind"] = impact
		total += impact
	}
	if impact, fired := temperatureImpact(obs, sensitivity); fired {
		result.Factors["temperature"] = impact
		total += impact
	}
	if impact, fired := precipitationImpact(obs, sensitivity); fired {
		result.Factors["precipitation"] = impact
		total += impact
	}
	if impact, fired := humidityImpact(obs, sensitivity); fired {
		result.Factors["humidity"] = impact
		total += impact
	}
	if impact, fired := pressureImpact(obs, sensitivity); fired {
		result.Factors["pressure"] = impact
		total += impact
	}

	result.TotalImpact = total
	result.AdjustedValue = baseValue * (1 + total)
	result.ImpactPercentage = total * 100
	result.Confidence = c.confidence(obs, result.Factors)
	result.Severity = severityLabel(total)
	return result
}

// windImpact applies the tiered wind model: nothing below the floor, linear
// to 10 units, amplified 1.5x to 20 units, a fixed severe penalty beyond.
// Direction-aware profiles pick their coefficient from the relative wind
// direction, defaulting to crosswind.
func windImpact(obs models.WeatherObservation, s Sensitivity) (float64, bool) {
	if obs.WindSpeed == nil {
		return 0, false
	}
	coeff := s.Wind
	if len(s.WindDirectional) > 0 {
		direction := models.WindCrosswind
		if obs.WindDirection != nil {
			direction = *obs.WindDirection
		}
		if dc, ok := s.WindDirectional[direction]; ok {
			coeff = dc
		} else {
			coeff = s.WindDirectional[models.WindCrosswind]
		}
	}
	if coeff == 0 {
		return 0, false
	}

	speed := *obs.WindSpeed
	switch {
	case speed < windFloor:
		return 0, true
	case speed <= windAmplifyAt:
		return coeff * (speed - windFloor), true
	case speed <= windSevereAt:
		return coeff * (speed - windFloor) * windAmplifier, true
	default:
		// Fixed severe penalty: the amplified impact at the severe cutoff.
		return coeff * (windSevereAt - windFloor) * windAmplifier, true
	}
}

// temperatureImpact uses the cold/hot bucket lookup when configured,
// otherwise a linear deviation beyond the dead zone around the optimum.
func temperatureImpact(obs models.WeatherObservation, s Sensitivity) (float64, bool) {
	if obs.Temperature == nil {
		return 0, false
	}
	temp := *obs.Temperature
	if len(s.TemperatureBuckets) > 0 {
		switch {
		case temp <= coldThreshold:
			return s.TemperatureBuckets[BucketCold], true
		case temp >= hotThreshold:
			return s.TemperatureBuckets[BucketHot], true
		default:
			return 0, true
		}
	}
	if s.TemperatureCoeff == 0 {
		return 0, false
	}
	// Scalar coefficients apply to the deviation magnitude beyond the dead
	// zone: the sign of the coefficient decides whether extremes help or
	// hurt, not which side of the optimum they fall on.
	excess := math.Abs(temp-optimalTemperature) - temperatureDeadZone
	if excess <= 0 {
		return 0, true
	}
	return s.TemperatureCoeff * excess, true
}

// precipitationImpact buckets by intensity when a bucket map is configured,
// otherwise scales linearly with intensity capped at 1.0.
func precipitationImpact(obs models.WeatherObservation, s Sensitivity) (float64, bool) {
	if obs.Precipitation == nil {
		return 0, false
	}
	intensity := *obs.Precipitation
	if intensity <= 0 {
		if s.PrecipitationCoeff == 0 && len(s.PrecipitationBuckets) == 0 {
			return 0, false
		}
		return 0, true
	}
	if len(s.PrecipitationBuckets) > 0 {
		switch {
		case intensity < precipLightMax:
			return s.PrecipitationBuckets[BucketLight], true
		case intensity < precipModerateMax:
			return s.PrecipitationBuckets[BucketModerate], true
		default:
			return s.PrecipitationBuckets[BucketHeavy], true
		}
	}
	if s.PrecipitationCoeff == 0 {
		return 0, false
	}
	return s.PrecipitationCoeff * math.Min(intensity, maxPrecipIntensity), true
}

// humidityImpact is linear beyond the dead zone around 50.
func humidityImpact(obs models.WeatherObservation, s Sensitivity) (float64, bool) {
	if obs.Humidity == nil || s.Humidity == 0 {
		return 0, false
	}
	excess := math.Abs(*obs.Humidity-optimalHumidity) - humidityDeadZone
	if excess <= 0 {
		return 0, true
	}
	return s.Humidity * excess, true
}

// pressureImpact is baseball-only: the negative of coefficient times the
// deviation from 30.00 inHg. Lower pressure carries the ball farther.
// Observations reporting hPa are converted first.
func pressureImpact(obs models.WeatherObservation, s Sensitivity) (float64, bool) {
	if obs.Pressure == nil || s.Pressure == 0 {
		return 0, false
	}
	pressure := *obs.Pressure
	if pressure > 100 {
		pressure *= 0.02953 // hPa to inHg
	}
	return -(s.Pressure * (pressure - optimalPressureInHg)), true
}

// confidence starts at 1.0, loses 0.1 per missing expected field and 0.2
// when any single factor is extreme, floored at 0.3.
func (c *Calculator) confidence(obs models.WeatherObservation, factors map[string]float64) float64 {
	confidence := 1.0
	if obs.Temperature == nil {
		confidence -= missingFieldPenalty
	}
	if obs.WindSpeed == nil {
		confidence -= missingFieldPenalty
	}
	if obs.Humidity == nil {
		confidence -= missingFieldPenalty
	}
	if obs.Pressure == nil {
		confidence -= missingFieldPenalty
	}
	for _, impact := range factors {
		if math.Abs(impact) > extremeFactorMagnitude {
			confidence -= extremeFactorPenalty
			break
		}
	}
	return mathutil.Clamp(confidence, minImpactConfidence, 1.0)
}

func severityLabel(total float64) string {
	switch magnitude := math.Abs(total); {
	case magnitude < 0.05:
		return models.SeverityMinimal
	case magnitude < 0.10:
		return models.SeverityMinor
	case magnitude < 0.20:
		return models.SeverityModerate
	case magnitude < 0.30:
		return models.SeveritySignificant
	default:
		return models.SeveritySevere
	}
}
