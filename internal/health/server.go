// Package health serves the daemon's liveness and readiness endpoints,
// reporting the state of the prediction pipeline alongside the plain
// container checks.
package health

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
)

// DatabasePinger checks connectivity to the historical performance store.
type DatabasePinger interface {
	Ping(ctx context.Context) error
}

// StatusFunc reports one pipeline component's state for the health payload
// (scheduler next run, odds feed connection, model registry size, ...).
// Components are informational: a disconnected odds feed is reported but
// does not flip readiness, which stays driven by SetReady and the database
// ping.
type StatusFunc func(ctx context.Context) string

// readyCheckTimeout bounds the database ping on /ready.
const readyCheckTimeout = 3 * time.Second

type healthResponse struct {
	Status     string            `json:"status"`
	Service    string            `json:"service"`
	Season     string            `json:"season,omitempty"`
	Uptime     string            `json:"uptime,omitempty"`
	Version    string            `json:"version,omitempty"`
	Commit     string            `json:"commit,omitempty"`
	Timestamp  string            `json:"timestamp,omitempty"`
	Components map[string]string `json:"components,omitempty"`
}

type readyResponse struct {
	Status     string            `json:"status"`
	Service    string            `json:"service"`
	Checks     map[string]string `json:"checks,omitempty"`
	Components map[string]string `json:"components,omitempty"`
	Duration   string            `json:"duration,omitempty"`
}

// Server exposes /health, /live, and /ready for the prediction daemon.
type Server struct {
	serviceName string
	season      string
	version     string
	commit      string
	port        string
	server      *http.Server
	logger      *logrus.Logger
	db          DatabasePinger
	startedAt   time.Time

	mu         sync.RWMutex
	ready      bool
	components map[string]StatusFunc
}

// Config holds the health server configuration.
type Config struct {
	ServiceName string
	Season      string
	Version     string
	Commit      string
	Port        string
	Logger      *logrus.Logger
	DB          DatabasePinger
}

// NewServer creates a health server. It reports not-ready until SetReady is
// called, so the daemon can finish wiring the pipeline first.
func NewServer(cfg Config) *Server {
	port := cfg.Port
	if port == "" {
		port = os.Getenv("HEALTH_PORT")
	}
	if port == "" {
		port = "8080"
	}

	return &Server{
		serviceName: cfg.ServiceName,
		season:      cfg.Season,
		version:     cfg.Version,
		commit:      cfg.Commit,
		port:        port,
		logger:      cfg.Logger,
		db:          cfg.DB,
		startedAt:   time.Now().UTC(),
		components:  make(map[string]StatusFunc),
	}
}

// AddComponent registers a pipeline component whose state shows up in the
// health and readiness payloads.
func (s *Server) AddComponent(name string, status StatusFunc) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.components[name] = status
}

// SetReady marks the daemon as ready to serve predictions.
func (s *Server) SetReady(ready bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ready = ready
}

// IsReady returns whether the daemon is marked ready.
func (s *Server) IsReady() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.ready
}

// Start runs the health server in the background and shuts it down when the
// context is cancelled.
func (s *Server) Start(ctx context.Context) error {
	mux := http.NewServeMux()
	mux.HandleFunc("/health", s.handleHealth)
	mux.HandleFunc("/ready", s.handleReady)
	mux.HandleFunc("/live", s.handleLive)

	s.server = &http.Server{
		Addr:         ":" + s.port,
		Handler:      mux,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		if s.logger != nil {
			s.logger.WithFields(logrus.Fields{
				"port":    s.port,
				"service": s.serviceName,
			}).Info("Health server starting")
		}
		if err := s.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			if s.logger != nil {
				s.logger.WithError(err).Error("Health server error")
			}
		}
	}()

	go func() {
		<-ctx.Done()
		s.Shutdown()
	}()

	return nil
}

// Shutdown gracefully stops the health server.
func (s *Server) Shutdown() error {
	if s.server == nil {
		return nil
	}
	if s.logger != nil {
		s.logger.Info("Health server shutting down")
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return s.server.Shutdown(ctx)
}

// componentReport snapshots the registered component states. Status funcs run
// outside the lock since they may touch other goroutines' state.
func (s *Server) componentReport(ctx context.Context) map[string]string {
	s.mu.RLock()
	funcs := make(map[string]StatusFunc, len(s.components))
	for name, status := range s.components {
		funcs[name] = status
	}
	s.mu.RUnlock()

	if len(funcs) == 0 {
		return nil
	}
	report := make(map[string]string, len(funcs))
	for name, status := range funcs {
		report[name] = status(ctx)
	}
	return report
}

// handleHealth reports the daemon identity, uptime, and pipeline component
// states. Always 200: component degradation belongs to /ready.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, healthResponse{
		Status:     "ok",
		Service:    s.serviceName,
		Season:     s.season,
		Uptime:     time.Since(s.startedAt).Round(time.Second).String(),
		Version:    s.version,
		Commit:     s.commit,
		Timestamp:  time.Now().UTC().Format(time.RFC3339),
		Components: s.componentReport(r.Context()),
	})
}

// handleLive answers the kubernetes liveness check: the process is up.
func (s *Server) handleLive(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, healthResponse{
		Status:  "ok",
		Service: s.serviceName,
	})
}

// handleReady gates traffic: 503 until the pipeline is wired and the
// historical store answers a ping.
func (s *Server) handleReady(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	checks := make(map[string]string)
	healthy := true

	if s.IsReady() {
		checks["pipeline"] = "ok"
	} else {
		healthy = false
		checks["pipeline"] = "not_ready"
	}

	if s.db != nil {
		ctx, cancel := context.WithTimeout(r.Context(), readyCheckTimeout)
		defer cancel()
		if err := s.db.Ping(ctx); err != nil {
			healthy = false
			checks["database"] = fmt.Sprintf("error: %v", err)
		} else {
			checks["database"] = "ok"
		}
	}

	response := readyResponse{
		Service:    s.serviceName,
		Checks:     checks,
		Components: s.componentReport(r.Context()),
		Duration:   time.Since(start).String(),
	}

	status := http.StatusOK
	response.Status = "ok"
	if !healthy {
		status = http.StatusServiceUnavailable
		response.Status = "not_ready"
	}
	writeJSON(w, status, response)
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}
