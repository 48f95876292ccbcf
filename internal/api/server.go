// Package api serves the HTTP query interface of a tracker instance.
package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/banshee-data/vehicle.tracker/internal/httputil"
	"github.com/banshee-data/vehicle.tracker/internal/monitoring"
	"github.com/banshee-data/vehicle.tracker/internal/tracking"
	"github.com/banshee-data/vehicle.tracker/internal/version"
)

// maxHistoryLimit caps the limit query parameter of the history endpoint.
const maxHistoryLimit = 10000

// Server exposes the registry over HTTP. Sweeper and Metrics are optional.
type Server struct {
	reg     *tracking.Registry
	sweeper *tracking.Sweeper
	metrics *monitoring.Metrics
	log     *slog.Logger
}

func NewServer(reg *tracking.Registry, sweeper *tracking.Sweeper, metrics *monitoring.Metrics, log *slog.Logger) *Server {
	if log == nil {
		log = slog.Default()
	}
	return &Server{reg: reg, sweeper: sweeper, metrics: metrics, log: log}
}

// Handler returns the router for every API and chart route.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(RequestLogger(s.log))

	r.Route("/api", func(r chi.Router) {
		r.Get("/version", s.showVersion)
		r.Get("/vehicles", s.listVehicles)
		r.Route("/vehicles/{id}", func(r chi.Router) {
			r.Get("/", s.showVehicle)
			r.Get("/history", s.showHistory)
			r.Post("/command", s.sendCommand)
		})
		r.Get("/sweeper", s.showSweeper)
		r.Post("/sweeper/run", s.runSweeper)
	})
	r.Get("/debug/vehicles/{id}/speed", s.speedChart)
	if s.metrics != nil {
		r.Method(http.MethodGet, "/metrics", s.metrics.Handler(func() {
			s.metrics.SetActiveStreams(s.reg.ActiveStreams())
		}))
	}
	return r
}

// Attach mounts the handler on mux. The chart route is registered
// explicitly so that it wins over a /debug/ subtree already on mux.
func (s *Server) Attach(mux *http.ServeMux) {
	h := s.Handler()
	mux.Handle("/", h)
	mux.Handle("/debug/vehicles/", h)
}

func vehicleID(r *http.Request) tracking.VehicleID {
	return tracking.VehicleID(chi.URLParam(r, "id"))
}

func (s *Server) showVersion(w http.ResponseWriter, r *http.Request) {
	httputil.WriteJSONOK(w, struct {
		version.Info
		InstanceID string `json:"instance_id"`
	}{version.Get(), s.reg.InstanceID()})
}

func (s *Server) listVehicles(w http.ResponseWriter, r *http.Request) {
	vehicles, err := s.reg.ActiveVehicles(r.Context())
	if err != nil {
		s.log.Error("failed to list vehicles", "error", err)
		httputil.ServiceUnavailable(w, fmt.Sprintf("failed to list vehicles: %v", err))
		return
	}
	if vehicles == nil {
		vehicles = []*tracking.VehicleStatus{}
	}
	httputil.WriteJSONOK(w, vehicles)
}

func (s *Server) showVehicle(w http.ResponseWriter, r *http.Request) {
	id := vehicleID(r)
	st, err := s.reg.VehicleStatus(r.Context(), id)
	if errors.Is(err, tracking.ErrVehicleNotFound) {
		httputil.NotFound(w, fmt.Sprintf("vehicle %s not found", id))
		return
	}
	if err != nil {
		s.log.Error("failed to load vehicle status", "vehicle_id", id, "error", err)
		httputil.ServiceUnavailable(w, fmt.Sprintf("failed to load vehicle: %v", err))
		return
	}
	httputil.WriteJSONOK(w, st)
}

// showHistory returns the durable position log of a vehicle, oldest first.
// The limit parameter defaults to 100.
func (s *Server) showHistory(w http.ResponseWriter, r *http.Request) {
	id := vehicleID(r)
	limit := tracking.DefaultHistorySize
	if l := r.URL.Query().Get("limit"); l != "" {
		parsed, err := strconv.Atoi(l)
		if err != nil || parsed < 1 || parsed > maxHistoryLimit {
			httputil.BadRequest(w, fmt.Sprintf("invalid 'limit' parameter (1-%d)", maxHistoryLimit))
			return
		}
		limit = parsed
	}

	positions, err := s.reg.Store().RecentPositions(r.Context(), id, limit)
	if err != nil {
		httputil.ServiceUnavailable(w, fmt.Sprintf("failed to load history: %v", err))
		return
	}
	if positions == nil {
		positions = []tracking.PositionSample{}
	}
	httputil.WriteJSONOK(w, map[string]any{
		"vehicle_id": id,
		"positions":  positions,
	})
}

type commandRequest struct {
	Command string `json:"command"`
}

type commandResult struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

func (s *Server) sendCommand(w http.ResponseWriter, r *http.Request) {
	id := vehicleID(r)
	var req commandRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, 4096)).Decode(&req); err != nil {
		httputil.BadRequest(w, "invalid JSON body")
		return
	}

	err := s.reg.SendCommand(r.Context(), id, tracking.Command(req.Command))
	switch {
	case errors.Is(err, tracking.ErrEmptyCommand):
		httputil.BadRequest(w, "command is required")
	case errors.Is(err, tracking.ErrStreamNotFound):
		httputil.NotFound(w, fmt.Sprintf("vehicle %s has no live stream on this instance", id))
	case err != nil:
		httputil.InternalServerError(w, fmt.Sprintf("failed to send command: %v", err))
	default:
		httputil.WriteJSONOK(w, commandResult{
			Success: true,
			Message: fmt.Sprintf("command %s sent to %s", req.Command, id),
		})
	}
}

func (s *Server) showSweeper(w http.ResponseWriter, r *http.Request) {
	if s.sweeper == nil {
		httputil.NotFound(w, "sweeper not running")
		return
	}
	httputil.WriteJSONOK(w, s.sweeper.Status())
}

func (s *Server) runSweeper(w http.ResponseWriter, r *http.Request) {
	if s.sweeper == nil {
		httputil.NotFound(w, "sweeper not running")
		return
	}
	queued := s.sweeper.TriggerManualRun()
	httputil.WriteJSON(w, http.StatusAccepted, map[string]bool{"queued": queued})
}

type statusRecorder struct {
	http.ResponseWriter
	status int
	size   int
}

func (w *statusRecorder) WriteHeader(code int) {
	w.status = code
	w.ResponseWriter.WriteHeader(code)
}

func (w *statusRecorder) Write(b []byte) (int, error) {
	n, err := w.ResponseWriter.Write(b)
	w.size += n
	return n, err
}

// RequestLogger logs method, path, status and duration of every request.
func RequestLogger(log *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
			next.ServeHTTP(rec, r)
			log.Debug("request",
				"method", r.Method,
				"path", r.URL.Path,
				"status", rec.status,
				"duration_ms", float64(time.Since(start).Nanoseconds())/1e6,
				"size", rec.size,
			)
		})
	}
}
