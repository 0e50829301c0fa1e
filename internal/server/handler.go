// Package server exposes the admin HTTP endpoint: health, metrics, run
// history, and remote task execution behind bearer-token auth.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/dmitrijs2005/authmaint/internal/common"
	"github.com/dmitrijs2005/authmaint/internal/logging"
	"github.com/dmitrijs2005/authmaint/internal/models"
)

const defaultRunsLimit = 50

type errorResponse struct {
	Error string `json:"error"`
}

// TaskService is the slice of the task layer the admin endpoint needs.
type TaskService interface {
	Run(ctx context.Context, name string) (*models.Report, error)
	ListRuns(ctx context.Context, limit int) ([]models.Run, error)
}

type Handler struct {
	service TaskService
	logger  logging.Logger
	secret  []byte
}

// NewHandler wires the admin routes. Task execution and run history require
// a valid admin token; health and metrics do not.
func NewHandler(service TaskService, logger logging.Logger, secret []byte) http.Handler {
	h := &Handler{service: service, logger: logger, secret: secret}

	mux := http.NewServeMux()
	mux.HandleFunc("/healthz", h.healthz)
	mux.Handle("/metrics", promhttp.Handler())
	mux.Handle("/api/runs", h.requireToken(http.HandlerFunc(h.listRuns)))
	mux.Handle("/api/tasks/", h.requireToken(http.HandlerFunc(h.runTask)))
	return mux
}

func (h *Handler) healthz(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *Handler) listRuns(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	limit := defaultRunsLimit
	if v := r.URL.Query().Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n <= 0 {
			writeError(w, http.StatusBadRequest, "invalid limit")
			return
		}
		limit = n
	}

	runs, err := h.service.ListRuns(r.Context(), limit)
	if err != nil {
		h.logger.Error(r.Context(), "error listing runs", "error", err)
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}

	writeJSON(w, http.StatusOK, runs)
}

// runTask executes POST /api/tasks/{name}/run synchronously and returns the
// task report. The admin API never prompts for confirmation.
func (h *Handler) runTask(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	name, ok := strings.CutSuffix(strings.TrimPrefix(r.URL.Path, "/api/tasks/"), "/run")
	if !ok || name == "" || strings.Contains(name, "/") {
		writeError(w, http.StatusNotFound, "not found")
		return
	}

	report, err := h.service.Run(r.Context(), name)
	if err != nil {
		if errors.Is(err, common.ErrorUnknownTask) {
			writeError(w, http.StatusNotFound, "unknown task")
			return
		}
		h.logger.Error(r.Context(), "error running task", "task", name, "error", err)
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}

	writeJSON(w, http.StatusOK, report)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, errorResponse{Error: msg})
}
