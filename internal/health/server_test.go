package health

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http/httptest"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return logger
}

// stubPinger simulates the historical store.
type stubPinger struct {
	err error
}

func (s stubPinger) Ping(ctx context.Context) error { return s.err }

func newTestServer(db DatabasePinger) *Server {
	return NewServer(Config{
		ServiceName: "prop-edge",
		Season:      "2026-27",
		Version:     "1.2.3",
		Port:        "0",
		Logger:      testLogger(),
		DB:          db,
	})
}

func TestHealthReportsSeasonAndComponents(t *testing.T) {
	s := newTestServer(stubPinger{})
	s.AddComponent("models", func(ctx context.Context) string { return "412 registered" })
	s.AddComponent("odds_feed", func(ctx context.Context) string { return "disconnected" })

	rec := httptest.NewRecorder()
	s.handleHealth(rec, httptest.NewRequest("GET", "/health", nil))

	require.Equal(t, 200, rec.Code)
	var resp healthResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "ok", resp.Status)
	assert.Equal(t, "prop-edge", resp.Service)
	assert.Equal(t, "2026-27", resp.Season)
	assert.Equal(t, "412 registered", resp.Components["models"])
	assert.Equal(t, "disconnected", resp.Components["odds_feed"])
	assert.NotEmpty(t, resp.Uptime)
}

func TestReadyBeforePipelineWired(t *testing.T) {
	s := newTestServer(stubPinger{})

	rec := httptest.NewRecorder()
	s.handleReady(rec, httptest.NewRequest("GET", "/ready", nil))

	require.Equal(t, 503, rec.Code)
	var resp readyResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "not_ready", resp.Status)
	assert.Equal(t, "not_ready", resp.Checks["pipeline"])
	assert.Equal(t, "ok", resp.Checks["database"])
}

func TestReadyWhenPipelineAndDatabaseOK(t *testing.T) {
	s := newTestServer(stubPinger{})
	s.SetReady(true)
	s.AddComponent("scheduler", func(ctx context.Context) string { return "next run 2026-08-30T10:00:00Z" })

	rec := httptest.NewRecorder()
	s.handleReady(rec, httptest.NewRequest("GET", "/ready", nil))

	require.Equal(t, 200, rec.Code)
	var resp readyResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "ok", resp.Status)
	assert.Equal(t, "ok", resp.Checks["pipeline"])
	assert.Contains(t, resp.Components["scheduler"], "next run")
}

func TestReadyDatabaseFailureDegrades(t *testing.T) {
	s := newTestServer(stubPinger{err: fmt.Errorf("connection refused")})
	s.SetReady(true)

	rec := httptest.NewRecorder()
	s.handleReady(rec, httptest.NewRequest("GET", "/ready", nil))

	require.Equal(t, 503, rec.Code)
	var resp readyResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "not_ready", resp.Status)
	assert.Contains(t, resp.Checks["database"], "connection refused")
}

func TestDegradedComponentDoesNotFlipReadiness(t *testing.T) {
	s := newTestServer(stubPinger{})
	s.SetReady(true)
	s.AddComponent("odds_feed", func(ctx context.Context) string { return "disconnected" })

	rec := httptest.NewRecorder()
	s.handleReady(rec, httptest.NewRequest("GET", "/ready", nil))

	require.Equal(t, 200, rec.Code)
	var resp readyResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "disconnected", resp.Components["odds_feed"])
}
