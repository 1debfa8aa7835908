package handlers

import (
	"net/http"

	"github.com/dirscope/dirscope/internal/history"
)

// History handles GET /api/history. Records come back newest first.
func (h *Handler) History(w http.ResponseWriter, r *http.Request) {
	records, err := h.scanner.History()
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if records == nil {
		records = []*history.Record{}
	}
	writeJSON(w, http.StatusOK, records)
}

// HistoryItem handles GET /api/history/item?path=. The most recent record
// for the path wins.
func (h *Handler) HistoryItem(w http.ResponseWriter, r *http.Request) {
	path := r.URL.Query().Get("path")
	if path == "" {
		writeError(w, http.StatusBadRequest, "missing path parameter")
		return
	}

	result, err := h.scanner.HistoryItem(path)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if result == nil {
		writeError(w, http.StatusNotFound, "no history for path")
		return
	}

	writeJSON(w, http.StatusOK, result)
}

// ClearHistory handles POST /api/history/clear.
func (h *Handler) ClearHistory(w http.ResponseWriter, r *http.Request) {
	if err := h.scanner.ClearHistory(); err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "cleared"})
}
