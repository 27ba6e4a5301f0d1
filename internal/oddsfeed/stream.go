// Package oddsfeed consumes the provider's WebSocket stream of line updates
// so a running slate can react to market moves without polling.
package oddsfeed

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/sirupsen/logrus"
)

// LineUpdate is one pushed market move for an offered prop.
type LineUpdate struct {
	GameID    string    `json:"game_id"`
	EntityID  string    `json:"entity_id"`
	Player    string    `json:"player"`
	StatName  string    `json:"stat_name"`
	Line      float64   `json:"line"`
	OddsOver  int       `json:"odds_over"`
	OddsUnder int       `json:"odds_under"`
	Timestamp time.Time `json:"timestamp"`
}

// UpdateHandler is called for every pushed line update. Handler errors are
// logged and do not stop the stream.
type UpdateHandler func(update LineUpdate) error

// ReconnectConfig controls reconnection behavior
type ReconnectConfig struct {
	MaxRetries        int
	InitialBackoff    time.Duration
	MaxBackoff        time.Duration
	BackoffMultiplier float64
}

// DefaultReconnectConfig returns default reconnection configuration
func DefaultReconnectConfig() ReconnectConfig {
	return ReconnectConfig{
		MaxRetries:        10,
		InitialBackoff:    1 * time.Second,
		MaxBackoff:        30 * time.Second,
		BackoffMultiplier: 1.5,
	}
}

// subscribeMessage subscribes the connection to games of interest.
type subscribeMessage struct {
	Op      string   `json:"op"`
	APIKey  string   `json:"api_key"`
	GameIDs []string `json:"game_ids,omitempty"`
	Sports  []string `json:"sports,omitempty"`
}

// StreamClient handles the WebSocket connection to the odds provider.
type StreamClient struct {
	conn            *websocket.Conn
	apiKey          string
	streamURL       string
	mu              sync.RWMutex
	isConnected     bool
	handlers        []UpdateHandler
	reconnectConfig ReconnectConfig
	lastMessageTime time.Time
	logger          *logrus.Logger
}

// NewStreamClient creates a new stream client
func NewStreamClient(streamURL, apiKey string, logger *logrus.Logger) *StreamClient {
	return &StreamClient{
		apiKey:          apiKey,
		streamURL:       streamURL,
		handlers:        make([]UpdateHandler, 0),
		reconnectConfig: DefaultReconnectConfig(),
		logger:          logger,
	}
}

// Connect establishes the WebSocket connection and starts the read loop
func (s *StreamClient) Connect(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.isConnected {
		return fmt.Errorf("already connected")
	}

	s.logger.WithField("url", s.streamURL).Info("Connecting to odds stream")

	dialer := websocket.Dialer{
		HandshakeTimeout: 10 * time.Second,
	}

	conn, _, err := dialer.DialContext(ctx, s.streamURL, nil)
	if err != nil {
		return fmt.Errorf("failed to connect to odds stream: %w", err)
	}

	s.conn = conn
	s.isConnected = true
	s.lastMessageTime = time.Now()

	s.logger.Info("Connected to odds stream")

	// Start message reading loop
	go s.readMessages()

	return nil
}

// Subscribe subscribes to line updates for specific games, or entire sports
// when gameIDs is empty.
func (s *StreamClient) Subscribe(gameIDs, sports []string) error {
	msg := subscribeMessage{
		Op:      "subscribe",
		APIKey:  s.apiKey,
		GameIDs: gameIDs,
		Sports:  sports,
	}

	s.logger.WithFields(logrus.Fields{
		"games":  len(gameIDs),
		"sports": len(sports),
	}).Info("Subscribing to line updates")
	return s.sendMessage(msg)
}

// AddHandler registers an update handler
func (s *StreamClient) AddHandler(handler UpdateHandler) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.handlers = append(s.handlers, handler)
}

// readMessages reads messages from the WebSocket connection
func (s *StreamClient) readMessages() {
	defer s.Close()

	for {
		var raw json.RawMessage
		if err := s.conn.ReadJSON(&raw); err != nil {
			s.logger.WithError(err).Warn("Odds stream read failed")
			s.mu.Lock()
			s.isConnected = false
			s.mu.Unlock()
			return
		}

		s.mu.Lock()
		s.lastMessageTime = time.Now()
		s.mu.Unlock()

		var update LineUpdate
		if err := json.Unmarshal(raw, &update); err != nil {
			s.logger.WithError(err).Debug("Skipping unparseable stream message")
			continue
		}
		if update.StatName == "" {
			// Heartbeats and acks carry no line payload.
			continue
		}

		s.mu.RLock()
		handlers := s.handlers
		s.mu.RUnlock()

		for _, handler := range handlers {
			if err := handler(update); err != nil {
				s.logger.WithError(err).Warn("Line update handler failed")
			}
		}
	}
}

// sendMessage sends a JSON message on the stream
func (s *StreamClient) sendMessage(msg interface{}) error {
	s.mu.RLock()
	if !s.isConnected || s.conn == nil {
		s.mu.RUnlock()
		return fmt.Errorf("not connected")
	}
	conn := s.conn
	s.mu.RUnlock()

	return conn.WriteJSON(msg)
}

// IsConnected returns whether the stream is connected
func (s *StreamClient) IsConnected() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.isConnected
}

// LastMessageTime returns the time of the last received message
func (s *StreamClient) LastMessageTime() time.Time {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.lastMessageTime
}

// ConnectWithRetry connects with exponential backoff per the reconnect
// configuration.
func (s *StreamClient) ConnectWithRetry(ctx context.Context) error {
	backoff := s.reconnectConfig.InitialBackoff
	var lastErr error

	for attempt := 0; attempt <= s.reconnectConfig.MaxRetries; attempt++ {
		if err := s.Connect(ctx); err == nil {
			return nil
		} else {
			lastErr = err
		}

		s.logger.WithFields(logrus.Fields{
			"attempt": attempt + 1,
			"backoff": backoff.String(),
		}).Warn("Odds stream connect failed, retrying")

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(backoff):
		}

		backoff = time.Duration(float64(backoff) * s.reconnectConfig.BackoffMultiplier)
		if backoff > s.reconnectConfig.MaxBackoff {
			backoff = s.reconnectConfig.MaxBackoff
		}
	}
	return fmt.Errorf("odds stream connect retries exhausted: %w", lastErr)
}

// Close closes the connection
func (s *StreamClient) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.isConnected = false
	if s.conn != nil {
		err := s.conn.Close()
		s.conn = nil
		return err
	}
	return nil
}
