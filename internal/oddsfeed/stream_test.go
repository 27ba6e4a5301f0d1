package oddsfeed

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testLogger() *logrus.Logger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}

// newTestStream starts a WebSocket echo server that pushes the given raw
// messages to every connection after reading one subscribe message.
func newTestStream(t *testing.T, pushes []string, gotSubscribe chan subscribeMessage) *httptest.Server {
	t.Helper()
	upgrader := websocket.Upgrader{}
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		require.NoError(t, err)
		defer conn.Close()

		var sub subscribeMessage
		require.NoError(t, conn.ReadJSON(&sub))
		gotSubscribe <- sub

		for _, push := range pushes {
			require.NoError(t, conn.WriteMessage(websocket.TextMessage, []byte(push)))
		}
		// Keep the connection open until the client hangs up.
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}))
}

func wsURL(server *httptest.Server) string {
	return "ws" + strings.TrimPrefix(server.URL, "http")
}

func TestStreamDeliversLineUpdates(t *testing.T) {
	subscribes := make(chan subscribeMessage, 1)
	server := newTestStream(t, []string{
		`{"op":"heartbeat"}`,
		`{"game_id":"g1","entity_id":"p1","player":"LeBron James","stat_name":"points","line":27.5,"odds_over":-110,"odds_under":-110}`,
	}, subscribes)
	defer server.Close()

	client := NewStreamClient(wsURL(server), "test-key", testLogger())
	updates := make(chan LineUpdate, 4)
	client.AddHandler(func(update LineUpdate) error {
		updates <- update
		return nil
	})

	require.NoError(t, client.Connect(context.Background()))
	defer client.Close()
	assert.True(t, client.IsConnected())

	require.NoError(t, client.Subscribe([]string{"g1"}, nil))

	select {
	case sub := <-subscribes:
		assert.Equal(t, "subscribe", sub.Op)
		assert.Equal(t, "test-key", sub.APIKey)
		assert.Equal(t, []string{"g1"}, sub.GameIDs)
	case <-time.After(2 * time.Second):
		t.Fatal("server never received subscribe message")
	}

	select {
	case update := <-updates:
		assert.Equal(t, "g1", update.GameID)
		assert.Equal(t, "points", update.StatName)
		assert.Equal(t, 27.5, update.Line)
		assert.Equal(t, -110, update.OddsOver)
	case <-time.After(2 * time.Second):
		t.Fatal("handler never received line update")
	}

	// The heartbeat carries no stat and must not reach handlers.
	select {
	case update := <-updates:
		t.Fatalf("unexpected extra update: %+v", update)
	case <-time.After(100 * time.Millisecond):
	}
}

func TestStreamConnectTwiceFails(t *testing.T) {
	subscribes := make(chan subscribeMessage, 1)
	server := newTestStream(t, nil, subscribes)
	defer server.Close()

	client := NewStreamClient(wsURL(server), "test-key", testLogger())
	require.NoError(t, client.Connect(context.Background()))
	defer client.Close()

	assert.Error(t, client.Connect(context.Background()))
}

func TestSubscribeBeforeConnect(t *testing.T) {
	client := NewStreamClient("ws://127.0.0.1:1", "test-key", testLogger())
	assert.Error(t, client.Subscribe(nil, []string{"NBA"}))
}

func TestConnectWithRetryExhausts(t *testing.T) {
	client := NewStreamClient("ws://127.0.0.1:1", "test-key", testLogger())
	client.reconnectConfig = ReconnectConfig{
		MaxRetries:        1,
		InitialBackoff:    time.Millisecond,
		MaxBackoff:        time.Millisecond,
		BackoffMultiplier: 1.5,
	}

	err := client.ConnectWithRetry(context.Background())
	assert.Error(t, err)
	assert.False(t, client.IsConnected())
}

func TestDefaultReconnectConfig(t *testing.T) {
	cfg := DefaultReconnectConfig()
	assert.Equal(t, 10, cfg.MaxRetries)
	assert.Equal(t, time.Second, cfg.InitialBackoff)
	assert.Equal(t, 30*time.Second, cfg.MaxBackoff)
	assert.Equal(t, 1.5, cfg.BackoffMultiplier)
}
