package server

import (
	"net/http"

	"wavefm/core/paging"
)

// GetHistoryHandler pages the caller's playback history, most recent first.
func (h *APIHandler) GetHistoryHandler(w http.ResponseWriter, r *http.Request) {
	userID, err := userIDFromContext(r.Context())
	if err != nil {
		respondError(w, err)
		return
	}

	pg, err := h.pagination(r)
	if err != nil {
		respondError(w, err)
		return
	}

	entries, total, err := h.history.List(r.Context(), userID, pg.Skip, pg.Take)
	if err != nil {
		respondError(w, err)
		return
	}

	respondPage(w, http.StatusOK, "Success", paging.NewPage(entries, total, pg.Take, pg.CurrentPage))
}

// GetStatsHandler summarizes the caller's retained playback history.
func (h *APIHandler) GetStatsHandler(w http.ResponseWriter, r *http.Request) {
	userID, err := userIDFromContext(r.Context())
	if err != nil {
		respondError(w, err)
		return
	}

	stats, err := h.history.Stats(r.Context(), userID)
	if err != nil {
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, "Success", stats)
}
