// Package library guards mutations of the user's library: favorites,
// playlists and playlist membership. Every mutation verifies ownership and
// existence before writing; uniqueness is ultimately enforced by the
// storage layer's constraints, with pre-checks only supplying better error
// messages.
package library

import (
	"context"
	"errors"
	"strings"

	"wavefm/core/apperr"
	"wavefm/model"
	"wavefm/repository"
)

// Service coordinates library mutations and listings.
type Service struct {
	playlists repository.PlaylistRepository
	favorites repository.FavoriteRepository
	songs     repository.SongRepository
}

// NewService creates a library Service over the given repositories.
func NewService(playlists repository.PlaylistRepository, favorites repository.FavoriteRepository, songs repository.SongRepository) *Service {
	return &Service{playlists: playlists, favorites: favorites, songs: songs}
}

// ========== favorites ==========

// AddFavorite adds a song to the user's favorites. Adding a song that is
// already favorited is a Conflict, not a no-op.
func (s *Service) AddFavorite(ctx context.Context, userID, songID int64) (*model.Favorite, error) {
	exists, err := s.songs.ExistsByID(ctx, songID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, apperr.New(apperr.NotFound, "Song not found")
	}

	favorited, err := s.favorites.Exists(ctx, userID, songID)
	if err != nil {
		return nil, err
	}
	if favorited {
		return nil, apperr.New(apperr.Conflict, "Song already in favorites")
	}

	favorite := &model.Favorite{UserID: userID, SongID: songID}
	if err := s.favorites.Add(ctx, favorite); err != nil {
		// A concurrent add can slip past the pre-check; the unique
		// constraint still reports the same Conflict.
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, apperr.New(apperr.Conflict, "Song already in favorites")
		}
		return nil, err
	}
	return favorite, nil
}

// RemoveFavorite removes a song from the user's favorites. Removing a song
// that was never favorited is NotFound, not a silent success.
func (s *Service) RemoveFavorite(ctx context.Context, userID, songID int64) (*model.Favorite, error) {
	favorite, err := s.favorites.Remove(ctx, userID, songID)
	if err != nil {
		return nil, err
	}
	if favorite == nil {
		return nil, apperr.New(apperr.NotFound, "Song not in favorites")
	}
	return favorite, nil
}

// ListFavorites pages the user's favorite songs, newest favorite first.
func (s *Service) ListFavorites(ctx context.Context, userID int64, skip, take int) ([]model.FavoriteEntry, int64, error) {
	edges, total, err := s.favorites.ListByUser(ctx, userID, skip, take)
	if err != nil {
		return nil, 0, err
	}

	entries, err := s.hydrateFavorites(ctx, edges)
	if err != nil {
		return nil, 0, err
	}
	return entries, total, nil
}

func (s *Service) hydrateFavorites(ctx context.Context, edges []*model.Favorite) ([]model.FavoriteEntry, error) {
	if len(edges) == 0 {
		return []model.FavoriteEntry{}, nil
	}

	ids := make([]int64, 0, len(edges))
	for _, edge := range edges {
		ids = append(ids, edge.SongID)
	}

	songs, err := s.songs.GetByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	byID := make(map[int64]*model.Song, len(songs))
	for _, song := range songs {
		byID[song.ID] = song
	}

	// Walk the edges, not the fetched songs, so edge order survives the
	// unordered bulk fetch.
	entries := make([]model.FavoriteEntry, 0, len(edges))
	for _, edge := range edges {
		song, ok := byID[edge.SongID]
		if !ok {
			continue
		}
		entries = append(entries, model.FavoriteEntry{Song: *song, FavoritedAt: edge.CreatedAt})
	}
	return entries, nil
}

// ========== playlists ==========

// CreatePlaylist creates a playlist for the user. A duplicate name for the
// same user is a Conflict.
func (s *Service) CreatePlaylist(ctx context.Context, userID int64, name string) (*model.Playlist, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, apperr.New(apperr.InvalidArgument, "Playlist name is required")
	}

	playlist := &model.Playlist{Name: name, UserID: userID}
	if err := s.playlists.Create(ctx, playlist); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, apperr.New(apperr.Conflict, "Playlist name already in use")
		}
		return nil, err
	}
	return playlist, nil
}

// ListPlaylists returns the user's playlists.
func (s *Service) ListPlaylists(ctx context.Context, userID int64) ([]*model.Playlist, error) {
	playlists, err := s.playlists.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	if playlists == nil {
		playlists = []*model.Playlist{}
	}
	return playlists, nil
}

// RenamePlaylist renames a playlist owned by the user. A duplicate name for
// the same user is a Conflict.
func (s *Service) RenamePlaylist(ctx context.Context, userID, playlistID int64, name string) (*model.Playlist, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, apperr.New(apperr.InvalidArgument, "New playlist name is required")
	}

	playlist, err := s.ownedPlaylist(ctx, userID, playlistID)
	if err != nil {
		return nil, err
	}

	if err := s.playlists.Rename(ctx, playlistID, name); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, apperr.New(apperr.Conflict, "Playlist name already in use")
		}
		return nil, err
	}

	playlist.Name = name
	return playlist, nil
}

// DeletePlaylist deletes a playlist owned by the user, returning the
// deleted playlist.
func (s *Service) DeletePlaylist(ctx context.Context, userID, playlistID int64) (*model.Playlist, error) {
	playlist, err := s.ownedPlaylist(ctx, userID, playlistID)
	if err != nil {
		return nil, err
	}

	if err := s.playlists.Delete(ctx, playlistID); err != nil {
		return nil, err
	}
	return playlist, nil
}

// ========== playlist membership ==========

// AddSongToPlaylist adds a song to a playlist owned by the user. Adding a
// song already in the playlist is a Conflict.
func (s *Service) AddSongToPlaylist(ctx context.Context, userID, playlistID, songID int64) (*model.PlaylistSong, error) {
	if _, err := s.ownedPlaylist(ctx, userID, playlistID); err != nil {
		return nil, err
	}

	exists, err := s.songs.ExistsByID(ctx, songID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, apperr.New(apperr.NotFound, "Song not found")
	}

	present, err := s.playlists.HasSong(ctx, playlistID, songID)
	if err != nil {
		return nil, err
	}
	if present {
		return nil, apperr.New(apperr.Conflict, "Song already in playlist")
	}

	entry := &model.PlaylistSong{PlaylistID: playlistID, SongID: songID}
	if err := s.playlists.AddSong(ctx, entry); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, apperr.New(apperr.Conflict, "Song already in playlist")
		}
		return nil, err
	}
	return entry, nil
}

// RemoveSongFromPlaylist removes a song from a playlist owned by the user.
// Removing a song that is not in the playlist is NotFound.
func (s *Service) RemoveSongFromPlaylist(ctx context.Context, userID, playlistID, songID int64) (*model.PlaylistSong, error) {
	if _, err := s.ownedPlaylist(ctx, userID, playlistID); err != nil {
		return nil, err
	}

	entry, err := s.playlists.RemoveSong(ctx, playlistID, songID)
	if err != nil {
		return nil, err
	}
	if entry == nil {
		return nil, apperr.New(apperr.NotFound, "Song not in playlist")
	}
	return entry, nil
}

// ListPlaylistSongs pages the songs of a playlist owned by the user, in the
// order they were added.
func (s *Service) ListPlaylistSongs(ctx context.Context, userID, playlistID int64, skip, take int) ([]model.PlaylistEntry, int64, error) {
	if _, err := s.ownedPlaylist(ctx, userID, playlistID); err != nil {
		return nil, 0, err
	}

	edges, total, err := s.playlists.ListSongs(ctx, playlistID, skip, take)
	if err != nil {
		return nil, 0, err
	}
	if len(edges) == 0 {
		return []model.PlaylistEntry{}, total, nil
	}

	ids := make([]int64, 0, len(edges))
	for _, edge := range edges {
		ids = append(ids, edge.SongID)
	}

	songs, err := s.songs.GetByIDs(ctx, ids)
	if err != nil {
		return nil, 0, err
	}
	byID := make(map[int64]*model.Song, len(songs))
	for _, song := range songs {
		byID[song.ID] = song
	}

	entries := make([]model.PlaylistEntry, 0, len(edges))
	for _, edge := range edges {
		song, ok := byID[edge.SongID]
		if !ok {
			continue
		}
		entries = append(entries, model.PlaylistEntry{Song: *song, AddedAt: edge.AddedAt})
	}
	return entries, total, nil
}

// ownedPlaylist loads a playlist and verifies ownership. A playlist that
// does not exist and a playlist owned by someone else both report NotFound;
// the API never reveals which it was.
func (s *Service) ownedPlaylist(ctx context.Context, userID, playlistID int64) (*model.Playlist, error) {
	playlist, err := s.playlists.GetByID(ctx, playlistID)
	if err != nil {
		return nil, err
	}
	if playlist == nil || playlist.UserID != userID {
		return nil, apperr.New(apperr.NotFound, "Playlist not found")
	}
	return playlist, nil
}
