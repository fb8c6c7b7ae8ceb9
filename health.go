package scorebot

import (
	"context"
	"encoding/json"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/pkg/errors"
	"github.com/shinyhunt/scorebot/config"
	"github.com/shinyhunt/scorebot/schedule"
	"net"
	"net/http"
	"strconv"
	"sync"
	"time"
)

const (
	healthPluginName = "health"
	healthStatusOK   = "ok"
	shutdownTimeout  = 5 * time.Second
)

// healthMonitor tracks the liveness probe and serves the health endpoint
type healthMonitor struct {
	Plugin

	now func() time.Time

	mu        sync.RWMutex
	lastProbe time.Time
}

// healthStatus is the body of the health endpoint
type healthStatus struct {
	Status          string     `json:"status"`
	Time            time.Time  `json:"time"`
	LastHealthCheck *time.Time `json:"lastHealthCheck"`
}

func newHealthMonitor(probeInterval time.Duration, now func() time.Time) (h *healthMonitor) {
	h = new(healthMonitor)
	h.now = now
	h.Plugin = Plugin{Name: healthPluginName, ScheduledActions: []ScheduledActionDefinition{{
		Schedule:    schedule.EveryDuration(probeInterval),
		Description: "Log a liveness probe",
		Action:      h.probe,
	}}}

	return h
}

// probe records and logs a successful liveness check
func (h *healthMonitor) probe() {
	t := h.now()

	h.mu.Lock()
	h.lastProbe = t
	h.mu.Unlock()

	h.Logger.Printf("[%s] %s - status: OK\n", healthPluginName, t.Format(time.RFC3339))
}

// status returns the current health status
func (h *healthMonitor) status() (hs healthStatus) {
	hs = healthStatus{Status: healthStatusOK, Time: h.now()}

	h.mu.RLock()
	defer h.mu.RUnlock()

	if !h.lastProbe.IsZero() {
		last := h.lastProbe
		hs.LastHealthCheck = &last
	}

	return hs
}

// routes returns the http handler of the health endpoint
func (h *healthMonitor) routes() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Get("/health", h.serveHealth)

	return r
}

func (h *healthMonitor) serveHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)

	if err := json.NewEncoder(w).Encode(h.status()); err != nil {
		h.Logger.Printf("Error writing health status: %v\n", err)
	}
}

// startHealthServer starts serving the health endpoint on the configured host and port unless the port is 0.
// The returned function shuts the server down
func (s *Scorebot) startHealthServer() (shutdown func(), err error) {
	port := s.config.GetInt(config.HealthPortKey)
	if port == 0 {
		s.log.Printf("Health endpoint disabled\n")
		return func() {}, nil
	}

	addr := net.JoinHostPort(s.config.GetString(config.HealthHostKey), strconv.Itoa(port))
	listener, err := net.Listen("tcp", addr)
	if err != nil {
		return nil, errors.Wrapf(err, "unable to listen on [%s] for the health endpoint", addr)
	}

	srv := &http.Server{Handler: s.health.routes(), ReadHeaderTimeout: 10 * time.Second}
	go func() {
		if err := srv.Serve(listener); err != nil && err != http.ErrServerClosed {
			s.log.Printf("Health endpoint stopped: %v\n", err)
		}
	}()

	s.log.Printf("Health endpoint listening on [http://%s/health]\n", listener.Addr())

	return func() {
		ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()

		if err := srv.Shutdown(ctx); err != nil {
			s.log.Printf("Error shutting down health endpoint: %v\n", err)
		}
	}, nil
}
