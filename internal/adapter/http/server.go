package http

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/couchcryptid/quake-feed-service/internal/domain"
	"github.com/couchcryptid/quake-feed-service/internal/present"
	"github.com/couchcryptid/quake-feed-service/internal/store"
	sharedobs "github.com/couchcryptid/storm-data-shared/observability"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// FeedSource exposes the current event store state.
type FeedSource interface {
	sharedobs.ReadinessChecker
	Snapshot() (store.State, *store.Result)
}

// Server exposes the earthquake list plus health, readiness, and metrics endpoints.
type Server struct {
	httpServer *http.Server
	logger     *slog.Logger
}

// NewServer creates an HTTP server with /earthquakes, /healthz, /readyz, and /metrics routes.
func NewServer(addr string, feed FeedSource, logger *slog.Logger) *Server {
	mux := http.NewServeMux()

	s := &Server{
		httpServer: &http.Server{
			Addr:         addr,
			Handler:      mux,
			ReadTimeout:  10 * time.Second,
			WriteTimeout: 10 * time.Second,
			IdleTimeout:  60 * time.Second,
		},
		logger: logger,
	}

	mux.HandleFunc("GET /earthquakes", handleEarthquakes(feed))
	mux.HandleFunc("GET /healthz", sharedobs.LivenessHandler())
	mux.HandleFunc("GET /readyz", sharedobs.ReadinessHandler(feed))
	mux.Handle("GET /metrics", promhttp.Handler())

	return s
}

// Start begins listening. Returns http.ErrServerClosed on graceful shutdown.
func (s *Server) Start() error {
	s.logger.Info("http server starting", "addr", s.httpServer.Addr)
	return s.httpServer.ListenAndServe()
}

// Shutdown gracefully drains connections within the given context deadline.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}

// ServeHTTP delegates to the underlying handler, useful for testing.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.httpServer.Handler.ServeHTTP(w, r)
}

type earthquakesResponse struct {
	Status    string                   `json:"status"`
	Message   string                   `json:"message,omitempty"`
	Error     string                   `json:"error,omitempty"`
	FetchedAt *time.Time               `json:"fetched_at,omitempty"`
	Count     int                      `json:"count"`
	Skipped   int                      `json:"skipped,omitempty"`
	Events    []domain.EarthquakeEvent `json:"events,omitempty"`
	Items     []present.ListItem       `json:"items,omitempty"`
}

// handleEarthquakes serves the store result. ?view=list returns display rows
// instead of raw events.
func handleEarthquakes(feed FeedSource) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		state, res := feed.Snapshot()

		switch state {
		case store.Idle:
			sharedobs.WriteJSON(w, http.StatusServiceUnavailable, earthquakesResponse{
				Status:  state.String(),
				Message: present.NoInternetConnection,
			})
		case store.Loading:
			sharedobs.WriteJSON(w, http.StatusAccepted, earthquakesResponse{Status: state.String()})
		case store.Failed:
			sharedobs.WriteJSON(w, http.StatusBadGateway, earthquakesResponse{
				Status:    state.String(),
				Error:     res.Err.Error(),
				FetchedAt: &res.FetchedAt,
			})
		default:
			body := earthquakesResponse{
				Status:    state.String(),
				FetchedAt: &res.FetchedAt,
				Count:     len(res.Events),
				Skipped:   res.Skipped,
			}
			if len(res.Events) == 0 {
				body.Message = present.NoEarthquakesFound
			}
			if r.URL.Query().Get("view") == "list" {
				body.Items = present.Items(res.Events, time.UTC)
			} else {
				body.Events = res.Events
			}
			sharedobs.WriteJSON(w, http.StatusOK, body)
		}
	}
}
