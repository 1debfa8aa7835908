package handlers

import (
	"errors"
	"net/http"

	"github.com/dirscope/dirscope/internal/scan"
)

type scanRequest struct {
	Path         string `json:"path"`
	ForceRefresh bool   `json:"forceRefresh"`
}

// Scan handles POST /api/scan.
func (h *Handler) Scan(w http.ResponseWriter, r *http.Request) {
	var req scanRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	result, err := h.scanner.Scan(req.Path, req.ForceRefresh)
	if err != nil {
		writeError(w, scanErrorStatus(err), err.Error())
		return
	}

	writeJSON(w, http.StatusOK, result)
}

// scanErrorStatus maps scan error kinds to HTTP status codes.
func scanErrorStatus(err error) int {
	switch {
	case errors.Is(err, scan.ErrEmptyPath), errors.Is(err, scan.ErrNotDirectory):
		return http.StatusBadRequest
	case errors.Is(err, scan.ErrNotAccessible):
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}
