package server

import (
	"net/http"
	"strconv"
	"time"

	"wavefm/core/apperr"
	"wavefm/core/catalog"
	"wavefm/core/paging"
	"wavefm/core/ranking"
)

// GetSongsHandler lists the catalog, optionally filtered by a search
// keyword matched against normalized titles.
func (h *APIHandler) GetSongsHandler(w http.ResponseWriter, r *http.Request) {
	pg, err := h.pagination(r)
	if err != nil {
		respondError(w, err)
		return
	}

	keyword := catalog.Normalize(r.URL.Query().Get("keyword"))

	songs, total, err := h.songs.Search(r.Context(), keyword, pg.Skip, pg.Take)
	if err != nil {
		respondError(w, err)
		return
	}

	respondPage(w, http.StatusOK, "Success", paging.NewPage(songs, total, pg.Take, pg.CurrentPage))
}

// GetSongHandler returns one song with its artist.
func (h *APIHandler) GetSongHandler(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		respondError(w, err)
		return
	}

	song, err := h.songs.GetByID(r.Context(), id)
	if err != nil {
		respondError(w, err)
		return
	}
	if song == nil {
		respondError(w, apperr.New(apperr.NotFound, "Song not found"))
		return
	}

	respondJSON(w, http.StatusOK, "Success", song)
}

// TopSongsHandler returns a page of songs ranked by listen count.
// ?genre= scopes the ranking to one genre; ?days= restricts it to a
// recency window. The aggregator does not validate genre values: an
// unknown genre simply matches nothing.
func (h *APIHandler) TopSongsHandler(w http.ResponseWriter, r *http.Request) {
	pg, err := h.pagination(r)
	if err != nil {
		respondError(w, err)
		return
	}

	query := ranking.Query{
		Genre: r.URL.Query().Get("genre"),
		Skip:  pg.Skip,
		Take:  pg.Take,
	}

	if raw := r.URL.Query().Get("days"); raw != "" {
		days, err := strconv.Atoi(raw)
		if err != nil || days < 1 {
			respondError(w, apperr.New(apperr.InvalidArgument, "Days must be a positive integer if provided."))
			return
		}
		query.Since = time.Now().AddDate(0, 0, -days)
	}

	rows, total, err := h.ranking.TopSongs(r.Context(), query)
	if err != nil {
		respondError(w, err)
		return
	}

	respondPage(w, http.StatusOK, "Success", paging.NewPage(rows, total, pg.Take, pg.CurrentPage))
}

// GenresHandler lists the distinct genres in the catalog.
func (h *APIHandler) GenresHandler(w http.ResponseWriter, r *http.Request) {
	genres, err := h.ranking.ListGenres(r.Context())
	if err != nil {
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, "Success", genres)
}

// PlaySongHandler records a listen event for the authenticated user.
func (h *APIHandler) PlaySongHandler(w http.ResponseWriter, r *http.Request) {
	userID, err := userIDFromContext(r.Context())
	if err != nil {
		respondError(w, err)
		return
	}

	songID, err := pathID(r, "id")
	if err != nil {
		respondError(w, err)
		return
	}

	if err := h.history.RecordPlay(r.Context(), userID, songID); err != nil {
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusCreated, "Play recorded", map[string]int64{"songId": songID})
}
