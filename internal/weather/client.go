package weather

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/yourusername/prop-edge/internal/datasource"
	"github.com/yourusername/prop-edge/internal/logger"
	"github.com/yourusername/prop-edge/internal/metrics"
	"github.com/yourusername/prop-edge/internal/models"
)

const weatherSourceName = "weather_api"

// Source fetches weather observations for a location. Implementations must
// treat provider failures as recoverable; the Fallback wrapper supplies the
// documented neutral record when they are not.
type Source interface {
	Current(ctx context.Context, location string) (models.WeatherObservation, error)
	Historical(ctx context.Context, location string, at time.Time) (models.WeatherObservation, error)
	Forecast(ctx context.Context, location string, days int) ([]models.WeatherObservation, error)
}

// HTTPSource is the JSON weather provider client.
type HTTPSource struct {
	baseURL string
	apiKey  string
	client  *datasource.RateLimitedHTTPClient
	logger  *logrus.Logger
}

// NewHTTPSource creates a weather API client.
func NewHTTPSource(baseURL, apiKey string, httpCfg datasource.HTTPClientConfig, logger *logrus.Logger) *HTTPSource {
	return &HTTPSource{
		baseURL: baseURL,
		apiKey:  apiKey,
		client:  datasource.NewRateLimitedHTTPClient(httpCfg, logger),
		logger:  logger,
	}
}

// Current fetches the current observation for a location.
func (s *HTTPSource) Current(ctx context.Context, location string) (models.WeatherObservation, error) {
	endpoint := fmt.Sprintf("%s/v1/current?location=%s&api_key=%s",
		s.baseURL, url.QueryEscape(location), url.QueryEscape(s.apiKey))
	return s.getObservation(ctx, endpoint, location)
}

// Historical fetches the observation closest to a past timestamp.
func (s *HTTPSource) Historical(ctx context.Context, location string, at time.Time) (models.WeatherObservation, error) {
	endpoint := fmt.Sprintf("%s/v1/historical?location=%s&at=%s&api_key=%s",
		s.baseURL, url.QueryEscape(location), url.QueryEscape(at.Format(time.RFC3339)), url.QueryEscape(s.apiKey))
	return s.getObservation(ctx, endpoint, location)
}

// Forecast fetches daily forecast observations.
func (s *HTTPSource) Forecast(ctx context.Context, location string, days int) ([]models.WeatherObservation, error) {
	endpoint := fmt.Sprintf("%s/v1/forecast?location=%s&days=%d&api_key=%s",
		s.baseURL, url.QueryEscape(location), days, url.QueryEscape(s.apiKey))

	resp, err := s.client.Get(ctx, endpoint)
	if err != nil {
		metrics.ExternalFetchesTotal.WithLabelValues(weatherSourceName, "error").Inc()
		return nil, datasource.NewDataSourceError(weatherSourceName, datasource.ErrCodeNetworkError, "forecast request failed", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		metrics.ExternalFetchesTotal.WithLabelValues(weatherSourceName, "error").Inc()
		return nil, datasource.NewDataSourceError(weatherSourceName, datasource.ErrCodeServerError,
			fmt.Sprintf("forecast returned %d", resp.StatusCode), datasource.ErrServerError)
	}

	var payload struct {
		Observations []models.WeatherObservation `json:"observations"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		metrics.ExternalFetchesTotal.WithLabelValues(weatherSourceName, "error").Inc()
		return nil, datasource.NewDataSourceError(weatherSourceName, datasource.ErrCodeInvalidData, "failed to decode forecast", err)
	}
	metrics.ExternalFetchesTotal.WithLabelValues(weatherSourceName, "ok").Inc()
	for i := range payload.Observations {
		payload.Observations[i].Location = location
	}
	return payload.Observations, nil
}

func (s *HTTPSource) getObservation(ctx context.Context, endpoint, location string) (models.WeatherObservation, error) {
	resp, err := s.client.Get(ctx, endpoint)
	if err != nil {
		metrics.ExternalFetchesTotal.WithLabelValues(weatherSourceName, "error").Inc()
		return models.WeatherObservation{}, datasource.NewDataSourceError(weatherSourceName, datasource.ErrCodeNetworkError, "request failed", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		metrics.ExternalFetchesTotal.WithLabelValues(weatherSourceName, "error").Inc()
		return models.WeatherObservation{}, datasource.NewDataSourceError(weatherSourceName, datasource.ErrCodeServerError,
			fmt.Sprintf("weather API returned %d", resp.StatusCode), datasource.ErrServerError)
	}

	var obs models.WeatherObservation
	if err := json.NewDecoder(resp.Body).Decode(&obs); err != nil {
		metrics.ExternalFetchesTotal.WithLabelValues(weatherSourceName, "error").Inc()
		return models.WeatherObservation{}, datasource.NewDataSourceError(weatherSourceName, datasource.ErrCodeInvalidData, "failed to decode observation", err)
	}
	metrics.ExternalFetchesTotal.WithLabelValues(weatherSourceName, "ok").Inc()
	obs.Location = location
	return obs, nil
}

// Close releases the underlying HTTP client.
func (s *HTTPSource) Close() error {
	return s.client.Close()
}

// FallbackSource wraps a Source and resolves every failure to the documented
// neutral record so a dead weather provider never aborts a prediction.
type FallbackSource struct {
	inner Source
	audit *logger.AuditLogger
}

// NewFallbackSource wraps a weather source with fallback behaviour.
func NewFallbackSource(inner Source, baseLogger *logrus.Logger) *FallbackSource {
	return &FallbackSource{inner: inner, audit: logger.NewAuditLogger(baseLogger)}
}

// Current returns the provider observation or the fallback record.
func (f *FallbackSource) Current(ctx context.Context, location string) (models.WeatherObservation, error) {
	obs, err := f.inner.Current(ctx, location)
	if err != nil {
		f.warn(location, err)
		return models.FallbackObservation(location), nil
	}
	return obs, nil
}

// Historical returns the provider observation or the fallback record.
func (f *FallbackSource) Historical(ctx context.Context, location string, at time.Time) (models.WeatherObservation, error) {
	obs, err := f.inner.Historical(ctx, location, at)
	if err != nil {
		f.warn(location, err)
		return models.FallbackObservation(location), nil
	}
	return obs, nil
}

// Forecast returns the provider forecast or a single-entry fallback.
func (f *FallbackSource) Forecast(ctx context.Context, location string, days int) ([]models.WeatherObservation, error) {
	observations, err := f.inner.Forecast(ctx, location, days)
	if err != nil {
		f.warn(location, err)
		return []models.WeatherObservation{models.FallbackObservation(location)}, nil
	}
	return observations, nil
}

func (f *FallbackSource) warn(location string, err error) {
	metrics.RecordWeatherFallback()
	f.audit.LogExternalFallback("weather", location, err.Error())
}
