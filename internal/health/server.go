// Package health provides a lightweight HTTP server for container
// health probes and the Prometheus scrape endpoint.
package health

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
)

// DatabasePinger checks ledger database connectivity.
type DatabasePinger interface {
	Ping(ctx context.Context) error
}

// StatusResponse is the JSON body of the liveness endpoints.
type StatusResponse struct {
	Status    string `json:"status"`
	Service   string `json:"service"`
	Timestamp string `json:"timestamp,omitempty"`
	Version   string `json:"version,omitempty"`
}

// ReadyResponse is the JSON body of the readiness endpoint.
type ReadyResponse struct {
	Status   string            `json:"status"`
	Service  string            `json:"service"`
	Checks   map[string]string `json:"checks,omitempty"`
	Duration string            `json:"duration,omitempty"`
}

// Config holds the configuration for the health server.
type Config struct {
	ServiceName string
	Version     string
	Port        int
	MetricsPath string
	Metrics     http.Handler
	Logger      *logrus.Logger
	DB          DatabasePinger
}

// Server exposes /health, /live, /ready and, when configured, the
// metrics scrape path on a single listener.
type Server struct {
	cfg    Config
	server *http.Server
	mu     sync.RWMutex
	ready  bool
}

// NewServer creates a new health check server.
func NewServer(cfg Config) *Server {
	if cfg.Port == 0 {
		cfg.Port = 8080
	}
	return &Server{cfg: cfg}
}

// SetReady marks the server as ready to accept traffic.
func (s *Server) SetReady(ready bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ready = ready
}

// IsReady returns whether the server is ready.
func (s *Server) IsReady() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.ready
}

// Start starts the server in the background and shuts it down when the
// context is canceled.
func (s *Server) Start(ctx context.Context) error {
	mux := http.NewServeMux()
	mux.HandleFunc("/health", s.handleHealth)
	mux.HandleFunc("/live", s.handleLive)
	mux.HandleFunc("/ready", s.handleReady)
	if s.cfg.Metrics != nil && s.cfg.MetricsPath != "" {
		mux.Handle(s.cfg.MetricsPath, s.cfg.Metrics)
	}

	s.server = &http.Server{
		Addr:         fmt.Sprintf(":%d", s.cfg.Port),
		Handler:      mux,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		if s.cfg.Logger != nil {
			s.cfg.Logger.WithFields(logrus.Fields{
				"port":    s.cfg.Port,
				"service": s.cfg.ServiceName,
			}).Info("Health server starting")
		}
		if err := s.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			if s.cfg.Logger != nil {
				s.cfg.Logger.WithError(err).Error("Health server error")
			}
		}
	}()

	go func() {
		<-ctx.Done()
		s.Shutdown()
	}()

	return nil
}

// Shutdown gracefully shuts down the server.
func (s *Server) Shutdown() error {
	if s.server == nil {
		return nil
	}
	if s.cfg.Logger != nil {
		s.cfg.Logger.Info("Health server shutting down")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return s.server.Shutdown(ctx)
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, StatusResponse{
		Status:    "ok",
		Service:   s.cfg.ServiceName,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Version:   s.cfg.Version,
	})
}

func (s *Server) handleLive(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, StatusResponse{
		Status:  "ok",
		Service: s.cfg.ServiceName,
	})
}

func (s *Server) handleReady(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	checks := make(map[string]string)
	healthy := true

	if s.IsReady() {
		checks["service"] = "ok"
	} else {
		healthy = false
		checks["service"] = "not_ready"
	}

	if s.cfg.DB != nil {
		ctx, cancel := context.WithTimeout(r.Context(), 3*time.Second)
		defer cancel()
		if err := s.cfg.DB.Ping(ctx); err != nil {
			healthy = false
			checks["database"] = fmt.Sprintf("error: %v", err)
		} else {
			checks["database"] = "ok"
		}
	}

	response := ReadyResponse{
		Service:  s.cfg.ServiceName,
		Checks:   checks,
		Duration: time.Since(start).String(),
	}

	if healthy {
		response.Status = "ok"
		writeJSON(w, http.StatusOK, response)
		return
	}
	response.Status = "not_ready"
	writeJSON(w, http.StatusServiceUnavailable, response)
}

func writeJSON(w http.ResponseWriter, code int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(body)
}
