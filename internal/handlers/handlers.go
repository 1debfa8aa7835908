// Package handlers implements the JSON HTTP API and serves the embedded
// web frontend.
package handlers

import (
	"embed"
	"encoding/json"
	"io/fs"
	"net/http"

	"github.com/dirscope/dirscope/internal/config"
	"github.com/dirscope/dirscope/internal/metrics"
	"github.com/dirscope/dirscope/internal/services"
)

// Handler holds all HTTP handlers.
type Handler struct {
	scanner  *services.Scanner
	cfg      *config.Config
	staticFS fs.FS
}

// New creates a new Handler. webFS must contain the frontend under static/.
func New(scanner *services.Scanner, cfg *config.Config, webFS embed.FS) (*Handler, error) {
	staticFS, err := fs.Sub(webFS, "static")
	if err != nil {
		return nil, err
	}

	return &Handler{
		scanner:  scanner,
		cfg:      cfg,
		staticFS: staticFS,
	}, nil
}

// RegisterRoutes registers all HTTP routes.
func (h *Handler) RegisterRoutes(mux *http.ServeMux) {
	// Frontend
	mux.Handle("/", http.FileServer(http.FS(h.staticFS)))

	// Scan API
	mux.HandleFunc("POST /api/scan", h.Scan)

	// History API
	mux.HandleFunc("GET /api/history", h.History)
	mux.HandleFunc("GET /api/history/item", h.HistoryItem)
	mux.HandleFunc("POST /api/history/clear", h.ClearHistory)

	// Operational endpoints
	mux.HandleFunc("GET /health", h.Health)
	mux.Handle("GET /metrics", metrics.Handler())
}

// Health handles GET /health.
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		// Headers are already out; nothing left to do.
		return
	}
}

type errorResponse struct {
	Error string `json:"error"`
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, errorResponse{Error: msg})
}
