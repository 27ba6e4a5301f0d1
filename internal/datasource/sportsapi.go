package datasource

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/yourusername/prop-edge/internal/metrics"
	"github.com/yourusername/prop-edge/internal/models"
)

const sportsAPISourceName = "sports_api"

// SportsAPIClient is the JSON games/odds provider. Fetch failures degrade to
// empty results at the orchestrator level; they are never fatal to an
// in-flight prediction.
type SportsAPIClient struct {
	baseURL string
	apiKey  string
	client  *RateLimitedHTTPClient
	logger  *logrus.Logger
}

// NewSportsAPIClient creates a games/odds API client.
func NewSportsAPIClient(baseURL, apiKey string, httpCfg HTTPClientConfig, logger *logrus.Logger) *SportsAPIClient {
	return &SportsAPIClient{
		baseURL: baseURL,
		apiKey:  apiKey,
		client:  NewRateLimitedHTTPClient(httpCfg, logger),
		logger:  logger,
	}
}

// Name returns the data source name.
func (c *SportsAPIClient) Name() string {
	return sportsAPISourceName
}

type gamesResponse struct {
	Games []models.Game `json:"games"`
}

type propsResponse struct {
	Props []models.PropBet `json:"props"`
}

// FetchGames retrieves games for a sport on a given date.
func (c *SportsAPIClient) FetchGames(ctx context.Context, sport string, date time.Time) ([]models.Game, error) {
	endpoint := fmt.Sprintf("%s/v1/games?sport=%s&date=%s&api_key=%s",
		c.baseURL, url.QueryEscape(sport), date.Format("2006-01-02"), url.QueryEscape(c.apiKey))

	var payload gamesResponse
	if err := c.getJSON(ctx, endpoint, &payload); err != nil {
		metrics.ExternalFetchesTotal.WithLabelValues(sportsAPISourceName, "error").Inc()
		return nil, err
	}
	metrics.ExternalFetchesTotal.WithLabelValues(sportsAPISourceName, "ok").Inc()

	c.logger.WithFields(logrus.Fields{
		"sport": sport,
		"date":  date.Format("2006-01-02"),
		"games": len(payload.Games),
	}).Debug("Fetched games")
	return payload.Games, nil
}

// FetchProps retrieves the offered prop bets for a game.
func (c *SportsAPIClient) FetchProps(ctx context.Context, gameID string) ([]models.PropBet, error) {
	endpoint := fmt.Sprintf("%s/v1/games/%s/props?api_key=%s",
		c.baseURL, url.PathEscape(gameID), url.QueryEscape(c.apiKey))

	var payload propsResponse
	if err := c.getJSON(ctx, endpoint, &payload); err != nil {
		metrics.ExternalFetchesTotal.WithLabelValues(sportsAPISourceName, "error").Inc()
		return nil, err
	}
	metrics.ExternalFetchesTotal.WithLabelValues(sportsAPISourceName, "ok").Inc()
	return payload.Props, nil
}

func (c *SportsAPIClient) getJSON(ctx context.Context, endpoint string, out interface{}) error {
	resp, err := c.client.Get(ctx, endpoint)
	if err != nil {
		return NewDataSourceError(sportsAPISourceName, ErrCodeNetworkError, "request failed", err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return NewDataSourceError(sportsAPISourceName, ErrCodeNotFound, "resource not found", ErrNotFound)
	case resp.StatusCode == http.StatusTooManyRequests:
		return NewDataSourceError(sportsAPISourceName, ErrCodeRateLimitExceeded, "rate limited", ErrRateLimitExceeded)
	case resp.StatusCode >= 500:
		return NewDataSourceError(sportsAPISourceName, ErrCodeServerError,
			fmt.Sprintf("server returned %d", resp.StatusCode), ErrServerError)
	case resp.StatusCode != http.StatusOK:
		return NewDataSourceError(sportsAPISourceName, ErrCodeInvalidData,
			fmt.Sprintf("unexpected status %d", resp.StatusCode), ErrInvalidData)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return NewDataSourceError(sportsAPISourceName, ErrCodeInvalidData, "failed to decode response", err)
	}
	return nil
}

// Close releases the underlying HTTP client.
func (c *SportsAPIClient) Close() error {
	return c.client.Close()
}
