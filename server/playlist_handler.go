package server

import (
	"encoding/json"
	"net/http"

	"wavefm/core/apperr"
	"wavefm/core/paging"
)

type playlistNameRequest struct {
	Name string `json:"name"`
}

type playlistSongRequest struct {
	SongID int64 `json:"songId"`
}

// GetPlaylistsHandler lists the caller's playlists.
func (h *APIHandler) GetPlaylistsHandler(w http.ResponseWriter, r *http.Request) {
	userID, err := userIDFromContext(r.Context())
	if err != nil {
		respondError(w, err)
		return
	}

	playlists, err := h.library.ListPlaylists(r.Context(), userID)
	if err != nil {
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, "Success", playlists)
}

// CreatePlaylistHandler creates a playlist for the caller.
func (h *APIHandler) CreatePlaylistHandler(w http.ResponseWriter, r *http.Request) {
	userID, err := userIDFromContext(r.Context())
	if err != nil {
		respondError(w, err)
		return
	}

	var req playlistNameRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, apperr.New(apperr.InvalidArgument, "Invalid request body"))
		return
	}

	playlist, err := h.library.CreatePlaylist(r.Context(), userID, req.Name)
	if err != nil {
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusCreated, "Playlist created", playlist)
}

// RenamePlaylistHandler renames one of the caller's playlists.
func (h *APIHandler) RenamePlaylistHandler(w http.ResponseWriter, r *http.Request) {
	userID, err := userIDFromContext(r.Context())
	if err != nil {
		respondError(w, err)
		return
	}

	playlistID, err := pathID(r, "id")
	if err != nil {
		respondError(w, err)
		return
	}

	var req playlistNameRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, apperr.New(apperr.InvalidArgument, "Invalid request body"))
		return
	}

	playlist, err := h.library.RenamePlaylist(r.Context(), userID, playlistID, req.Name)
	if err != nil {
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, "Playlist renamed", playlist)
}

// DeletePlaylistHandler deletes one of the caller's playlists.
func (h *APIHandler) DeletePlaylistHandler(w http.ResponseWriter, r *http.Request) {
	userID, err := userIDFromContext(r.Context())
	if err != nil {
		respondError(w, err)
		return
	}

	playlistID, err := pathID(r, "id")
	if err != nil {
		respondError(w, err)
		return
	}

	playlist, err := h.library.DeletePlaylist(r.Context(), userID, playlistID)
	if err != nil {
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, "Playlist deleted", playlist)
}

// GetPlaylistSongsHandler pages the songs of one of the caller's playlists.
func (h *APIHandler) GetPlaylistSongsHandler(w http.ResponseWriter, r *http.Request) {
	userID, err := userIDFromContext(r.Context())
	if err != nil {
		respondError(w, err)
		return
	}

	playlistID, err := pathID(r, "id")
	if err != nil {
		respondError(w, err)
		return
	}

	pg, err := h.pagination(r)
	if err != nil {
		respondError(w, err)
		return
	}

	entries, total, err := h.library.ListPlaylistSongs(r.Context(), userID, playlistID, pg.Skip, pg.Take)
	if err != nil {
		respondError(w, err)
		return
	}

	respondPage(w, http.StatusOK, "Success", paging.NewPage(entries, total, pg.Take, pg.CurrentPage))
}

// AddPlaylistSongHandler adds a song to one of the caller's playlists.
func (h *APIHandler) AddPlaylistSongHandler(w http.ResponseWriter, r *http.Request) {
	userID, err := userIDFromContext(r.Context())
	if err != nil {
		respondError(w, err)
		return
	}

	playlistID, err := pathID(r, "id")
	if err != nil {
		respondError(w, err)
		return
	}

	var req playlistSongRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.SongID < 1 {
		respondError(w, apperr.New(apperr.InvalidArgument, "A valid songId is required"))
		return
	}

	entry, err := h.library.AddSongToPlaylist(r.Context(), userID, playlistID, req.SongID)
	if err != nil {
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusCreated, "Song added to playlist", entry)
}

// RemovePlaylistSongHandler removes a song from one of the caller's
// playlists.
func (h *APIHandler) RemovePlaylistSongHandler(w http.ResponseWriter, r *http.Request) {
	userID, err := userIDFromContext(r.Context())
	if err != nil {
		respondError(w, err)
		return
	}

	playlistID, err := pathID(r, "id")
	if err != nil {
		respondError(w, err)
		return
	}

	songID, err := pathID(r, "songId")
	if err != nil {
		respondError(w, err)
		return
	}

	entry, err := h.library.RemoveSongFromPlaylist(r.Context(), userID, playlistID, songID)
	if err != nil {
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, "Song removed from playlist", entry)
}
