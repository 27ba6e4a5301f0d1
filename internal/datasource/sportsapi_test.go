package datasource

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return logger
}

func fastHTTPConfig() HTTPClientConfig {
	cfg := DefaultHTTPClientConfig()
	cfg.MaxRetries = 0
	cfg.RetryWaitMin = time.Millisecond
	cfg.RetryWaitMax = time.Millisecond
	cfg.Timeout = 2 * time.Second
	return cfg
}

func TestFetchGames(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/games", r.URL.Path)
		assert.Equal(t, "NBA", r.URL.Query().Get("sport"))
		assert.Equal(t, "secret", r.URL.Query().Get("api_key"))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"games":[{"game_id":"g1","sport":"NBA","home_team":"LAL","away_team":"BOS"}]}`))
	}))
	defer server.Close()

	client := NewSportsAPIClient(server.URL, "secret", fastHTTPConfig(), testLogger())
	defer client.Close()

	games, err := client.FetchGames(context.Background(), "NBA", time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	require.Len(t, games, 1)
	assert.Equal(t, "g1", games[0].GameID)
	assert.Equal(t, "LAL", games[0].HomeTeam)
}

func TestFetchProps(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/games/g1/props", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"props":[{"player":"LeBron James","entity_id":"p1","sport":"NBA","stat_name":"points","line":27.5,"odds_over":-110,"odds_under":-110}]}`))
	}))
	defer server.Close()

	client := NewSportsAPIClient(server.URL, "secret", fastHTTPConfig(), testLogger())
	defer client.Close()

	props, err := client.FetchProps(context.Background(), "g1")
	require.NoError(t, err)
	require.Len(t, props, 1)
	assert.Equal(t, "points", props[0].StatName)
	assert.Equal(t, 27.5, props[0].Line)
}

func TestFetchGamesNotFound(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer server.Close()

	client := NewSportsAPIClient(server.URL, "secret", fastHTTPConfig(), testLogger())
	defer client.Close()

	_, err := client.FetchGames(context.Background(), "NBA", time.Now())
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrNotFound))

	var dsErr DataSourceError
	require.True(t, errors.As(err, &dsErr))
	assert.Equal(t, sportsAPISourceName, dsErr.Source)
	assert.Equal(t, ErrCodeNotFound, dsErr.Code)
}

func TestFetchPropsInvalidJSON(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"props": not json`))
	}))
	defer server.Close()

	client := NewSportsAPIClient(server.URL, "secret", fastHTTPConfig(), testLogger())
	defer client.Close()

	_, err := client.FetchProps(context.Background(), "g1")
	require.Error(t, err)

	var dsErr DataSourceError
	require.True(t, errors.As(err, &dsErr))
	assert.Equal(t, ErrCodeInvalidData, dsErr.Code)
}

func TestSourceName(t *testing.T) {
	client := NewSportsAPIClient("http://localhost", "key", fastHTTPConfig(), testLogger())
	assert.Equal(t, "sports_api", client.Name())
}
