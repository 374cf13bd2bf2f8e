package history

import (
	"context"
	"testing"
	"time"

	"wavefm/core/apperr"
	"wavefm/model"
	"wavefm/repository"
)

type fakePlaybackRepo struct {
	events []*model.PlaybackEvent
}

func (f *fakePlaybackRepo) RecordPlay(_ context.Context, userID, songID int64, playedAt time.Time) error {
	for _, event := range f.events {
		if event.UserID == userID && event.SongID == songID {
			event.PlayedAt = playedAt
			return nil
		}
	}
	f.events = append(f.events, &model.PlaybackEvent{
		ID:       int64(len(f.events) + 1),
		UserID:   userID,
		SongID:   songID,
		PlayedAt: playedAt,
	})
	return nil
}

func (f *fakePlaybackRepo) CountBySong(context.Context, string, time.Time) ([]repository.SongListenCount, error) {
	return nil, nil
}

func (f *fakePlaybackRepo) ListByUser(_ context.Context, userID int64, skip, take int) ([]*model.PlaybackEvent, int64, error) {
	var matched []*model.PlaybackEvent
	for _, event := range f.events {
		if event.UserID == userID {
			matched = append(matched, event)
		}
	}
	// Most recent first, as the real query orders.
	for i := 0; i < len(matched); i++ {
		for j := i + 1; j < len(matched); j++ {
			if matched[j].PlayedAt.After(matched[i].PlayedAt) {
				matched[i], matched[j] = matched[j], matched[i]
			}
		}
	}
	total := int64(len(matched))
	if skip >= len(matched) {
		return nil, total, nil
	}
	end := skip + take
	if end > len(matched) {
		end = len(matched)
	}
	return matched[skip:end], total, nil
}

func (f *fakePlaybackRepo) StatsByUser(_ context.Context, userID int64) (*model.ListenStats, error) {
	var count int64
	for _, event := range f.events {
		if event.UserID == userID {
			count++
		}
	}
	return &model.ListenStats{DistinctSongs: count, TotalPlays: count}, nil
}

func (f *fakePlaybackRepo) DeleteOlderThan(context.Context, time.Time) (int64, error) {
	return 0, nil
}

type fakeSongRepo struct {
	songs map[int64]*model.Song
}

func (f *fakeSongRepo) Create(context.Context, *model.Song) error { return nil }

func (f *fakeSongRepo) GetByID(_ context.Context, id int64) (*model.Song, error) {
	return f.songs[id], nil
}

func (f *fakeSongRepo) GetByIDs(_ context.Context, ids []int64) ([]*model.Song, error) {
	// Reverse the requested order so hydration order bugs surface.
	var out []*model.Song
	for i := len(ids) - 1; i >= 0; i-- {
		if song, ok := f.songs[ids[i]]; ok {
			out = append(out, song)
		}
	}
	return out, nil
}

func (f *fakeSongRepo) ExistsByID(_ context.Context, id int64) (bool, error) {
	_, ok := f.songs[id]
	return ok, nil
}

func (f *fakeSongRepo) Search(context.Context, string, int, int) ([]*model.Song, int64, error) {
	return nil, 0, nil
}

func (f *fakeSongRepo) ListGenres(context.Context) ([]string, error) { return nil, nil }

func newTestService() (*Service, *fakePlaybackRepo, *fakeSongRepo) {
	playback := &fakePlaybackRepo{}
	songs := &fakeSongRepo{songs: map[int64]*model.Song{
		1: {ID: 1, Title: "First"},
		2: {ID: 2, Title: "Second"},
		3: {ID: 3, Title: "Third"},
	}}
	return NewService(playback, songs), playback, songs
}

func TestRecordPlayUnknownSong(t *testing.T) {
	svc, playback, _ := newTestService()

	err := svc.RecordPlay(context.Background(), 1, 99)
	if !apperr.IsKind(err, apperr.NotFound) {
		t.Errorf("RecordPlay(unknown song) = %v, want NotFound", err)
	}
	if len(playback.events) != 0 {
		t.Error("no event should be recorded for an unknown song")
	}
}

func TestRecordPlayReplayRefreshesTimestamp(t *testing.T) {
	svc, playback, _ := newTestService()
	base := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)

	svc.now = func() time.Time { return base }
	if err := svc.RecordPlay(context.Background(), 1, 2); err != nil {
		t.Fatalf("RecordPlay() error: %v", err)
	}

	svc.now = func() time.Time { return base.Add(time.Hour) }
	if err := svc.RecordPlay(context.Background(), 1, 2); err != nil {
		t.Fatalf("RecordPlay() replay error: %v", err)
	}

	if len(playback.events) != 1 {
		t.Fatalf("got %d events, want 1 live row per (user, song)", len(playback.events))
	}
	if !playback.events[0].PlayedAt.Equal(base.Add(time.Hour)) {
		t.Errorf("PlayedAt = %v, want the replay timestamp", playback.events[0].PlayedAt)
	}
}

func TestListMostRecentFirst(t *testing.T) {
	svc, _, _ := newTestService()
	base := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)

	for i, songID := range []int64{1, 2, 3} {
		ts := base.Add(time.Duration(i) * time.Hour)
		svc.now = func() time.Time { return ts }
		if err := svc.RecordPlay(context.Background(), 7, songID); err != nil {
			t.Fatalf("RecordPlay() error: %v", err)
		}
	}

	entries, total, err := svc.List(context.Background(), 7, 0, 10)
	if err != nil {
		t.Fatalf("List() error: %v", err)
	}
	if total != 3 {
		t.Errorf("total = %d, want 3", total)
	}

	wantTitles := []string{"Third", "Second", "First"}
	if len(entries) != len(wantTitles) {
		t.Fatalf("got %d entries, want %d", len(entries), len(wantTitles))
	}
	for i, want := range wantTitles {
		if entries[i].Title != want {
			t.Errorf("entries[%d].Title = %q, want %q", i, entries[i].Title, want)
		}
	}
}

func TestListEmptyHistory(t *testing.T) {
	svc, _, _ := newTestService()

	entries, total, err := svc.List(context.Background(), 7, 0, 10)
	if err != nil {
		t.Fatalf("List() error: %v", err)
	}
	if total != 0 || len(entries) != 0 {
		t.Errorf("got %d entries, total %d, want empty", len(entries), total)
	}
	if entries == nil {
		t.Error("List() should return an empty slice, not nil")
	}
}
