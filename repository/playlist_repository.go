package repository

import (
	"context"

	"wavefm/model"

	"gorm.io/gorm"
)

// PlaylistRepository defines data operations on playlists and their
// membership edges.
type PlaylistRepository interface {
	// ========== playlist CRUD ==========

	// Create inserts a playlist. A (user, name) collision returns
	// ErrDuplicate.
	Create(ctx context.Context, playlist *model.Playlist) error
	GetByID(ctx context.Context, id int64) (*model.Playlist, error)
	ListByUser(ctx context.Context, userID int64) ([]*model.Playlist, error)
	// Rename updates the playlist name. A (user, name) collision returns
	// ErrDuplicate.
	Rename(ctx context.Context, id int64, name string) error
	// Delete removes the playlist and its membership edges.
	Delete(ctx context.Context, id int64) error

	// ========== membership edges ==========

	// AddSong inserts the membership edge. A duplicate (playlist, song)
	// returns ErrDuplicate.
	AddSong(ctx context.Context, entry *model.PlaylistSong) error
	// RemoveSong deletes the edge and returns it. Returns nil without
	// error when the edge does not exist.
	RemoveSong(ctx context.Context, playlistID, songID int64) (*model.PlaylistSong, error)
	HasSong(ctx context.Context, playlistID, songID int64) (bool, error)
	// ListSongs pages the membership edges in insertion order with the
	// full count.
	ListSongs(ctx context.Context, playlistID int64, skip, take int) ([]*model.PlaylistSong, int64, error)
}

// gormPlaylistRepository implements PlaylistRepository on GORM.
type gormPlaylistRepository struct {
	db *gorm.DB
}

// NewGormPlaylistRepository creates a GORM playlist repository.
func NewGormPlaylistRepository(db *gorm.DB) PlaylistRepository {
	return &gormPlaylistRepository{db: db}
}

// Create inserts a playlist.
func (r *gormPlaylistRepository) Create(ctx context.Context, playlist *model.Playlist) error {
	return translateError(r.db.WithContext(ctx).Create(playlist).Error)
}

// GetByID retrieves a playlist. Returns nil without error when missing.
func (r *gormPlaylistRepository) GetByID(ctx context.Context, id int64) (*model.Playlist, error) {
	var playlist model.Playlist
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&playlist).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}
	return &playlist, nil
}

// ListByUser returns a user's playlists, newest first.
func (r *gormPlaylistRepository) ListByUser(ctx context.Context, userID int64) ([]*model.Playlist, error) {
	var playlists []*model.Playlist
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&playlists).Error
	return playlists, err
}

// Rename updates the playlist name.
func (r *gormPlaylistRepository) Rename(ctx context.Context, id int64, name string) error {
	err := r.db.WithContext(ctx).Model(&model.Playlist{}).
		Where("id = ?", id).
		Update("name", name).Error
	return translateError(err)
}

// Delete removes the playlist and its membership edges in one transaction.
func (r *gormPlaylistRepository) Delete(ctx context.Context, id int64) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("playlist_id = ?", id).Delete(&model.PlaylistSong{}).Error; err != nil {
			return err
		}
		return tx.Where("id = ?", id).Delete(&model.Playlist{}).Error
	})
}

// AddSong inserts the membership edge.
func (r *gormPlaylistRepository) AddSong(ctx context.Context, entry *model.PlaylistSong) error {
	return translateError(r.db.WithContext(ctx).Create(entry).Error)
}

// RemoveSong deletes and returns the membership edge.
func (r *gormPlaylistRepository) RemoveSong(ctx context.Context, playlistID, songID int64) (*model.PlaylistSong, error) {
	var entry model.PlaylistSong
	err := r.db.WithContext(ctx).
		Where("playlist_id = ? AND song_id = ?", playlistID, songID).
		First(&entry).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}

	if err := r.db.WithContext(ctx).Delete(&entry).Error; err != nil {
		return nil, err
	}
	return &entry, nil
}

// HasSong checks whether the edge is present.
func (r *gormPlaylistRepository) HasSong(ctx context.Context, playlistID, songID int64) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.PlaylistSong{}).
		Where("playlist_id = ? AND song_id = ?", playlistID, songID).
		Count(&count).Error
	return count > 0, err
}

// ListSongs pages the membership edges in insertion order.
func (r *gormPlaylistRepository) ListSongs(ctx context.Context, playlistID int64, skip, take int) ([]*model.PlaylistSong, int64, error) {
	query := r.db.WithContext(ctx).Model(&model.PlaylistSong{}).Where("playlist_id = ?", playlistID)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var entries []*model.PlaylistSong
	err := query.
		Order("added_at ASC, id ASC").
		Offset(skip).
		Limit(take).
		Find(&entries).Error
	if err != nil {
		return nil, 0, err
	}

	return entries, total, nil
}
