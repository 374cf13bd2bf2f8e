package server

import (
	"net/http"

	"wavefm/core/apperr"
)

// MeHandler returns the authenticated user's profile.
func (h *APIHandler) MeHandler(w http.ResponseWriter, r *http.Request) {
	userID, err := userIDFromContext(r.Context())
	if err != nil {
		respondError(w, err)
		return
	}

	user, err := h.users.GetByID(r.Context(), userID)
	if err != nil {
		respondError(w, err)
		return
	}
	if user == nil {
		respondError(w, apperr.New(apperr.NotFound, "User not found"))
		return
	}

	respondJSON(w, http.StatusOK, "Success", user)
}
