// Package api implements the netgauged REST API: on-demand subnet
// assessments and read access to the run history, backed by Postgres.
package api

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"sync/atomic"
	"time"

	"github.com/google/uuid"

	"github.com/netgauge/netgauge/internal/history"
	"github.com/netgauge/netgauge/pkg/assess"
	"github.com/netgauge/netgauge/pkg/config"
)

// Handler is the top-level API handler for the netgauged service.
type Handler struct {
	cfg     *atomic.Pointer[config.Config]
	prober  assess.Prober
	history *history.Service
	log     *slog.Logger
}

// NewHandler creates a new API handler. cfg is a hot-reloadable pointer so
// in-flight requests always see a consistent config snapshot. history may
// be nil when persistence is disabled.
func NewHandler(cfg *atomic.Pointer[config.Config], prober assess.Prober, hist *history.Service, log *slog.Logger) *Handler {
	return &Handler{
		cfg:     cfg,
		prober:  prober,
		history: hist,
		log:     log,
	}
}

// RegisterRoutes registers all API routes on the given ServeMux.
func (h *Handler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("POST /v1/assessments", h.handleAssess)
	mux.HandleFunc("GET /v1/assessments/{runID}", h.handleGetRun)
	mux.HandleFunc("GET /v1/assessments", h.handleListRuns)
}

type assessRequest struct {
	Subnet string `json:"subnet"`
}

func (h *Handler) handleAssess(w http.ResponseWriter, r *http.Request) {
	var req assessRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Subnet == "" {
		writeError(w, http.StatusBadRequest, "subnet is required")
		return
	}

	start := time.Now()
	engine := assess.New(h.prober, h.cfg.Load(), assess.WithLogger(h.log))
	result, err := engine.Assess(r.Context(), req.Subnet)
	if err != nil {
		observeFailure(err)
		h.log.Error("assessment failed", "subnet", req.Subnet, "err", err)
		writeError(w, http.StatusBadGateway, err.Error())
		return
	}
	observeRun(result.Outcome, time.Since(start))

	if h.history != nil {
		if err := h.history.RecordRun(r.Context(), result); err != nil {
			h.log.Error("recording run failed", "run_id", result.ID, "err", err)
		}
	}

	writeJSON(w, http.StatusOK, result)
}

func (h *Handler) handleGetRun(w http.ResponseWriter, r *http.Request) {
	if h.history == nil {
		writeError(w, http.StatusNotFound, "history persistence disabled")
		return
	}

	id, err := uuid.Parse(r.PathValue("runID"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid run ID")
		return
	}

	run, err := h.history.GetRun(r.Context(), id)
	if err != nil {
		writeError(w, http.StatusNotFound, "run not found")
		return
	}
	writeJSON(w, http.StatusOK, run)
}

func (h *Handler) handleListRuns(w http.ResponseWriter, r *http.Request) {
	if h.history == nil {
		writeError(w, http.StatusNotFound, "history persistence disabled")
		return
	}

	subnet := r.URL.Query().Get("subnet")
	if subnet == "" {
		writeError(w, http.StatusBadRequest, "subnet query parameter is required")
		return
	}

	runs, err := h.history.ListRuns(r.Context(), subnet, 50)
	if err != nil {
		h.log.Error("listing runs failed", "subnet", subnet, "err", err)
		writeError(w, http.StatusInternalServerError, "listing runs failed")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"runs": runs})
}

// failureStage names the pipeline stage a typed failure came from, for the
// failure counter's label.
func failureStage(err error) string {
	var (
		df *assess.DiscoveryFailure
		tf *assess.TelemetryFailure
		pf *assess.TopologyFailure
	)
	switch {
	case errors.As(err, &df):
		return "discovery"
	case errors.As(err, &tf):
		return "telemetry"
	case errors.As(err, &pf):
		return "topology"
	default:
		return "other"
	}
}

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	_ = enc.Encode(data)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
