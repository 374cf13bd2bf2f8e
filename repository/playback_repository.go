package repository

import (
	"context"
	"time"

	"wavefm/model"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// SongListenCount is one group of the listen-count aggregation.
type SongListenCount struct {
	SongID  int64
	Listens int64
}

// PlaybackRepository defines playback-history data operations.
type PlaybackRepository interface {
	// RecordPlay upserts the (user, song) playback row: a replay moves
	// PlayedAt forward instead of inserting a duplicate.
	RecordPlay(ctx context.Context, userID, songID int64, playedAt time.Time) error
	// CountBySong groups matching playback events by song and counts them.
	// genre scopes to songs of that genre when non-empty; since scopes to
	// events at or after that instant when non-zero. No paging happens
	// here: ranking needs the entire matching population.
	CountBySong(ctx context.Context, genre string, since time.Time) ([]SongListenCount, error)
	// ListByUser pages a user's events, most recent first, with the full
	// matching count.
	ListByUser(ctx context.Context, userID int64, skip, take int) ([]*model.PlaybackEvent, int64, error)
	StatsByUser(ctx context.Context, userID int64) (*model.ListenStats, error)
	// DeleteOlderThan removes events played before cutoff and returns the
	// number of deleted rows.
	DeleteOlderThan(ctx context.Context, cutoff time.Time) (int64, error)
}

// gormPlaybackRepository implements PlaybackRepository on GORM.
type gormPlaybackRepository struct {
	db *gorm.DB
}

// NewGormPlaybackRepository creates a GORM playback repository.
func NewGormPlaybackRepository(db *gorm.DB) PlaybackRepository {
	return &gormPlaybackRepository{db: db}
}

// RecordPlay inserts or refreshes the playback row for (user, song).
func (r *gormPlaybackRepository) RecordPlay(ctx context.Context, userID, songID int64, playedAt time.Time) error {
	event := model.PlaybackEvent{
		UserID:   userID,
		SongID:   songID,
		PlayedAt: playedAt,
	}

	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}, {Name: "song_id"}},
		DoUpdates: clause.Assignments(map[string]interface{}{"played_at": playedAt}),
	}).Create(&event).Error
}

// CountBySong aggregates listen counts per song over the full matching
// event population.
func (r *gormPlaybackRepository) CountBySong(ctx context.Context, genre string, since time.Time) ([]SongListenCount, error) {
	query := r.db.WithContext(ctx).Model(&model.PlaybackEvent{}).
		Select("playback_events.song_id AS song_id, COUNT(*) AS listens")

	if genre != "" {
		query = query.
			Joins("JOIN songs ON songs.id = playback_events.song_id").
			Where("songs.genre = ?", genre)
	}
	if !since.IsZero() {
		query = query.Where("playback_events.played_at >= ?", since)
	}

	var counts []SongListenCount
	err := query.Group("playback_events.song_id").Scan(&counts).Error
	return counts, err
}

// ListByUser pages a user's playback events, newest first.
func (r *gormPlaybackRepository) ListByUser(ctx context.Context, userID int64, skip, take int) ([]*model.PlaybackEvent, int64, error) {
	query := r.db.WithContext(ctx).Model(&model.PlaybackEvent{}).Where("user_id = ?", userID)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var events []*model.PlaybackEvent
	err := query.
		Order("played_at DESC, song_id ASC").
		Offset(skip).
		Limit(take).
		Find(&events).Error
	if err != nil {
		return nil, 0, err
	}

	return events, total, nil
}

// StatsByUser summarizes a user's history within the retention window.
// With at most one live row per (user, song), row count and distinct-song
// count coincide.
func (r *gormPlaybackRepository) StatsByUser(ctx context.Context, userID int64) (*model.ListenStats, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.PlaybackEvent{}).
		Where("user_id = ?", userID).
		Count(&count).Error
	if err != nil {
		return nil, err
	}

	return &model.ListenStats{DistinctSongs: count, TotalPlays: count}, nil
}

// DeleteOlderThan removes aged playback rows and reports how many went.
func (r *gormPlaybackRepository) DeleteOlderThan(ctx context.Context, cutoff time.Time) (int64, error) {
	result := r.db.WithContext(ctx).
		Where("played_at < ?", cutoff).
		Delete(&model.PlaybackEvent{})
	return result.RowsAffected, result.Error
}
