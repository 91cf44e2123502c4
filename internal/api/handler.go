package api

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"

	"github.com/go-chi/chi/v5"
	"github.com/goccy/go-json"

	"github.com/rpgo/retirement-projector/internal/config"
	"github.com/rpgo/retirement-projector/internal/domain"
	"github.com/rpgo/retirement-projector/internal/store"
)

// maxBodyBytes caps snapshot uploads.
const maxBodyBytes = 1 << 20

// Projector runs one projection. *calculation.CalculationEngine satisfies it.
type Projector interface {
	RunScenario(ctx context.Context, snap *domain.Snapshot) (*domain.ProjectionResult, error)
}

// Handler provides HTTP endpoints for projections and stored scenarios.
type Handler struct {
	projector Projector
	scenarios store.Store
	parser    *config.InputParser
}

// NewHandler creates a new API handler.
func NewHandler(projector Projector, scenarios store.Store) *Handler {
	return &Handler{projector: projector, scenarios: scenarios, parser: config.NewInputParser()}
}

// Health handles GET /healthz.
func (h *Handler) Health(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// RunProjection handles POST /api/v1/projections.
func (h *Handler) RunProjection(w http.ResponseWriter, r *http.Request) {
	snap, ok := h.decodeSnapshot(w, r)
	if !ok {
		return
	}
	result, err := h.projector.RunScenario(r.Context(), snap)
	if err != nil {
		slog.Error("failed to run projection", "scenario", snap.Name, "error", err)
		writeError(w, http.StatusInternalServerError, "projection failed")
		return
	}
	writeJSON(w, http.StatusOK, result)
}

// ListScenarios handles GET /api/v1/scenarios.
func (h *Handler) ListScenarios(w http.ResponseWriter, r *http.Request) {
	list, err := h.scenarios.List(r.Context())
	if err != nil {
		slog.Error("failed to list scenarios", "error", err)
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}
	if list == nil {
		list = []store.Summary{}
	}
	writeJSON(w, http.StatusOK, list)
}

// GetActiveScenario handles GET /api/v1/scenarios/active.
func (h *Handler) GetActiveScenario(w http.ResponseWriter, r *http.Request) {
	name, err := h.scenarios.LastActive(r.Context())
	if err != nil {
		slog.Error("failed to read active scenario", "error", err)
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}
	if name == "" {
		writeError(w, http.StatusNotFound, "no active scenario")
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"name": name})
}

// GetScenario handles GET /api/v1/scenarios/{name}.
func (h *Handler) GetScenario(w http.ResponseWriter, r *http.Request) {
	name, ok := scenarioName(w, r)
	if !ok {
		return
	}
	snap, err := h.scenarios.Load(r.Context(), name)
	if err != nil {
		h.storeError(w, "load", name, err)
		return
	}
	writeJSON(w, http.StatusOK, snap)
}

// PutScenario handles PUT /api/v1/scenarios/{name}.
func (h *Handler) PutScenario(w http.ResponseWriter, r *http.Request) {
	name, ok := scenarioName(w, r)
	if !ok {
		return
	}
	snap, ok := h.decodeSnapshot(w, r)
	if !ok {
		return
	}
	sum, err := h.scenarios.Save(r.Context(), name, snap)
	if err != nil {
		h.storeError(w, "save", name, err)
		return
	}
	writeJSON(w, http.StatusOK, sum)
}

// DeleteScenario handles DELETE /api/v1/scenarios/{name}.
func (h *Handler) DeleteScenario(w http.ResponseWriter, r *http.Request) {
	name, ok := scenarioName(w, r)
	if !ok {
		return
	}
	if err := h.scenarios.Delete(r.Context(), name); err != nil {
		h.storeError(w, "delete", name, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// RunStoredProjection handles POST /api/v1/scenarios/{name}/projection and
// marks the scenario as the last active one.
func (h *Handler) RunStoredProjection(w http.ResponseWriter, r *http.Request) {
	name, ok := scenarioName(w, r)
	if !ok {
		return
	}
	snap, err := h.scenarios.Load(r.Context(), name)
	if err != nil {
		h.storeError(w, "load", name, err)
		return
	}
	result, err := h.projector.RunScenario(r.Context(), snap)
	if err != nil {
		slog.Error("failed to run projection", "scenario", name, "error", err)
		writeError(w, http.StatusInternalServerError, "projection failed")
		return
	}
	if err := h.scenarios.SetLastActive(r.Context(), name); err != nil {
		slog.Warn("failed to record active scenario", "scenario", name, "error", err)
	}
	writeJSON(w, http.StatusOK, domain.ScenarioResult{Name: name, Result: result})
}

func (h *Handler) decodeSnapshot(w http.ResponseWriter, r *http.Request) (*domain.Snapshot, bool) {
	data, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err != nil {
		writeError(w, http.StatusRequestEntityTooLarge, "request body too large")
		return nil, false
	}
	snap, err := h.parser.Parse(data, config.FormatJSON)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return nil, false
	}
	return snap, true
}

func (h *Handler) storeError(w http.ResponseWriter, op, name string, err error) {
	if errors.Is(err, store.ErrNotFound) {
		writeError(w, http.StatusNotFound, fmt.Sprintf("scenario %q not found", name))
		return
	}
	slog.Error("scenario store failure", "op", op, "scenario", name, "error", err)
	writeError(w, http.StatusInternalServerError, "internal error")
}

func scenarioName(w http.ResponseWriter, r *http.Request) (string, bool) {
	name, err := url.PathUnescape(chi.URLParam(r, "name"))
	if err != nil || name == "" {
		writeError(w, http.StatusBadRequest, "invalid scenario name")
		return "", false
	}
	return name, true
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	data, err := json.Marshal(v)
	if err != nil {
		slog.Error("failed to marshal JSON response", "error", err)
		http.Error(w, `{"error":"internal error"}`, http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if _, err := w.Write(data); err != nil {
		slog.Warn("failed to write HTTP response body", "error", err)
		return
	}
	_, _ = w.Write([]byte("\n"))
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
