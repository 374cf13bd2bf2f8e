package server

import (
	"net/http"

	"wavefm/core/paging"
)

// GetFavoritesHandler pages the caller's favorite songs.
func (h *APIHandler) GetFavoritesHandler(w http.ResponseWriter, r *http.Request) {
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

	entries, total, err := h.library.ListFavorites(r.Context(), userID, pg.Skip, pg.Take)
	if err != nil {
		respondError(w, err)
		return
	}

	respondPage(w, http.StatusOK, "Success", paging.NewPage(entries, total, pg.Take, pg.CurrentPage))
}

// AddFavoriteHandler favorites a song for the caller. Re-favoriting is a
// conflict.
func (h *APIHandler) AddFavoriteHandler(w http.ResponseWriter, r *http.Request) {
	userID, err := userIDFromContext(r.Context())
	if err != nil {
		respondError(w, err)
		return
	}

	songID, err := pathID(r, "songId")
	if err != nil {
		respondError(w, err)
		return
	}

	favorite, err := h.library.AddFavorite(r.Context(), userID, songID)
	if err != nil {
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusCreated, "Song added to favorites", favorite)
}

// RemoveFavoriteHandler unfavorites a song for the caller. Removing a song
// that was never favorited is not found.
func (h *APIHandler) RemoveFavoriteHandler(w http.ResponseWriter, r *http.Request) {
	userID, err := userIDFromContext(r.Context())
	if err != nil {
		respondError(w, err)
		return
	}

	songID, err := pathID(r, "songId")
	if err != nil {
		respondError(w, err)
		return
	}

	favorite, err := h.library.RemoveFavorite(r.Context(), userID, songID)
	if err != nil {
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, "Song removed from favorites", favorite)
}
