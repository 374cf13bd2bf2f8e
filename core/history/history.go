// Package history records listen events and serves a user's playback
// history and stats.
package history

import (
	"context"
	"time"

	"wavefm/core/apperr"
	"wavefm/model"
	"wavefm/repository"
)

// Service coordinates playback-history operations.
type Service struct {
	playback repository.PlaybackRepository
	songs    repository.SongRepository
	now      func() time.Time
}

// NewService creates a history Service over the given repositories.
func NewService(playback repository.PlaybackRepository, songs repository.SongRepository) *Service {
	return &Service{playback: playback, songs: songs, now: time.Now}
}

// RecordPlay records that the user played the song. A replay refreshes the
// existing row's timestamp; at most one live event exists per (user, song).
func (s *Service) RecordPlay(ctx context.Context, userID, songID int64) error {
	exists, err := s.songs.ExistsByID(ctx, songID)
	if err != nil {
		return err
	}
	if !exists {
		return apperr.New(apperr.NotFound, "Song not found")
	}

	return s.playback.RecordPlay(ctx, userID, songID, s.now())
}

// List pages the user's playback history, most recent play first, hydrated
// with song and artist detail.
func (s *Service) List(ctx context.Context, userID int64, skip, take int) ([]model.HistoryEntry, int64, error) {
	events, total, err := s.playback.ListByUser(ctx, userID, skip, take)
	if err != nil {
		return nil, 0, err
	}
	if len(events) == 0 {
		return []model.HistoryEntry{}, total, nil
	}

	ids := make([]int64, 0, len(events))
	for _, event := range events {
		ids = append(ids, event.SongID)
	}

	songs, err := s.songs.GetByIDs(ctx, ids)
	if err != nil {
		return nil, 0, err
	}
	byID := make(map[int64]*model.Song, len(songs))
	for _, song := range songs {
		byID[song.ID] = song
	}

	// Event order carries the most-recent-first contract; the bulk fetch
	// does not preserve it.
	entries := make([]model.HistoryEntry, 0, len(events))
	for _, event := range events {
		song, ok := byID[event.SongID]
		if !ok {
			continue
		}
		entries = append(entries, model.HistoryEntry{Song: *song, PlayedAt: event.PlayedAt})
	}
	return entries, total, nil
}

// Stats summarizes the user's history within the retention window.
func (s *Service) Stats(ctx context.Context, userID int64) (*model.ListenStats, error) {
	return s.playback.StatsByUser(ctx, userID)
}
