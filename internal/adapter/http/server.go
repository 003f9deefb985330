// Package http exposes the operational endpoints plus a synchronous
// prediction API for ad-hoc scenario evaluation.
package http

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/seismolab/vrancea-gmm/internal/gmm"
)

// ReadinessChecker reports whether the service is ready to serve traffic.
type ReadinessChecker interface {
	CheckReadiness(ctx context.Context) error
}

// Server exposes health, readiness, metrics, and prediction HTTP endpoints.
type Server struct {
	httpServer *http.Server
	logger     *slog.Logger
}

// NewServer creates an HTTP server with /healthz, /readyz, /metrics, and
// /v1/predict routes.
func NewServer(addr string, ready ReadinessChecker, logger *slog.Logger) *Server {
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

	mux.HandleFunc("GET /healthz", s.handleHealth)
	mux.HandleFunc("GET /readyz", handleReady(ready))
	mux.Handle("GET /metrics", promhttp.Handler())
	mux.HandleFunc("POST /v1/predict", s.handlePredict)
	mux.HandleFunc("GET /v1/model", s.handleModel)

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

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "healthy"})
}

func handleReady(checker ReadinessChecker) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()

		if err := checker.CheckReadiness(ctx); err != nil {
			writeJSON(w, http.StatusServiceUnavailable, map[string]string{
				"status": "not ready",
				"error":  err.Error(),
			})
			return
		}
		writeJSON(w, http.StatusOK, map[string]string{"status": "ready"})
	}
}

// handlePredict evaluates a scenario synchronously. Sites must carry their
// own vs30 here; enrichment only runs on the Kafka path.
func (s *Server) handlePredict(w http.ResponseWriter, r *http.Request) {
	var req gmm.ScenarioRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "malformed request: " + err.Error()})
		return
	}
	if len(req.Sites) == 0 {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "scenario has no sites"})
		return
	}

	imt, rup, sites, dists, kinds, err := req.Inputs()
	if err != nil {
		writeJSON(w, predictStatus(err), map[string]string{"error": err.Error()})
		return
	}

	pred, err := gmm.Predict(imt, rup, sites, dists, kinds)
	if err != nil {
		writeJSON(w, predictStatus(err), map[string]string{"error": err.Error()})
		return
	}

	result := gmm.NewHazardResult(req, pred, kinds, gmm.Vs30SourceMessage)
	s.logger.Debug("predict request served", "scenario_id", req.ID, "imt", result.IMT, "sites", len(req.Sites))
	writeJSON(w, http.StatusOK, result)
}

// modelInfo describes the model's capabilities for framework discovery.
type modelInfo struct {
	TectonicRegion        string           `json:"tectonic_region"`
	IMComponent           string           `json:"im_component"`
	SupportedIMTs         []gmm.IMTType    `json:"supported_imts"`
	SupportedPeriods      []float64        `json:"supported_periods"`
	SupportedStdDevKinds  []gmm.StdDevKind `json:"supported_stddev_kinds"`
	RequiredSiteParams    []string         `json:"required_site_params"`
	RequiredRuptureParams []string         `json:"required_rupture_params"`
	RequiredDistances     []string         `json:"required_distances"`
}

func (s *Server) handleModel(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, modelInfo{
		TectonicRegion:        gmm.TectonicRegion,
		IMComponent:           gmm.IMComponent,
		SupportedIMTs:         gmm.SupportedIMTs(),
		SupportedPeriods:      gmm.SupportedPeriods(),
		SupportedStdDevKinds:  gmm.SupportedStdDevKinds(),
		RequiredSiteParams:    gmm.RequiredSiteParams(),
		RequiredRuptureParams: gmm.RequiredRuptureParams(),
		RequiredDistances:     gmm.RequiredDistances(),
	})
}

// predictStatus maps model errors to HTTP codes: inputs the model rejects
// are unprocessable, everything else is a bad request.
func predictStatus(err error) int {
	switch {
	case errors.Is(err, gmm.ErrUnsupportedIMT),
		errors.Is(err, gmm.ErrUnsupportedStdDev),
		errors.Is(err, gmm.ErrInvalidDistance),
		errors.Is(err, gmm.ErrMismatchedLengths):
		return http.StatusUnprocessableEntity
	default:
		return http.StatusBadRequest
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v) //nolint:errcheck // best-effort response
}
