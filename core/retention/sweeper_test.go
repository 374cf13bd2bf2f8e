package retention

import (
	"context"
	"testing"
	"time"

	"wavefm/model"
	"wavefm/repository"
)

// MockClock implements Clock for a fixed instant.
type MockClock struct {
	MockTime time.Time
}

func (m MockClock) Now() time.Time {
	return m.MockTime
}

// fakePlaybackRepo keeps events in memory and implements DeleteOlderThan
// the way the real store does: strictly-older rows go, the rest stay.
type fakePlaybackRepo struct {
	events []model.PlaybackEvent
}

func (f *fakePlaybackRepo) RecordPlay(ctx context.Context, userID, songID int64, playedAt time.Time) error {
	return nil
}

func (f *fakePlaybackRepo) CountBySong(ctx context.Context, genre string, since time.Time) ([]repository.SongListenCount, error) {
	return nil, nil
}

func (f *fakePlaybackRepo) ListByUser(ctx context.Context, userID int64, skip, take int) ([]*model.PlaybackEvent, int64, error) {
	return nil, 0, nil
}

func (f *fakePlaybackRepo) StatsByUser(ctx context.Context, userID int64) (*model.ListenStats, error) {
	return &model.ListenStats{}, nil
}

func (f *fakePlaybackRepo) DeleteOlderThan(ctx context.Context, cutoff time.Time) (int64, error) {
	var kept []model.PlaybackEvent
	var deleted int64
	for _, event := range f.events {
		if event.PlayedAt.Before(cutoff) {
			deleted++
			continue
		}
		kept = append(kept, event)
	}
	f.events = kept
	return deleted, nil
}

func TestSweepOnceDeletesOnlyAgedRows(t *testing.T) {
	now := time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)

	repo := &fakePlaybackRepo{events: []model.PlaybackEvent{
		{ID: 1, PlayedAt: now.Add(-8 * 24 * time.Hour)},  // aged out
		{ID: 2, PlayedAt: now.Add(-10 * 24 * time.Hour)}, // aged out
		{ID: 3, PlayedAt: now.Add(-6 * 24 * time.Hour)},  // kept
		{ID: 4, PlayedAt: now.Add(-time.Hour)},           // kept
	}}

	sweeper := NewSweeper(repo, 7).WithClock(MockClock{MockTime: now})

	deleted, err := sweeper.SweepOnce(context.Background())
	if err != nil {
		t.Fatalf("SweepOnce() error = %v", err)
	}
	if deleted != 2 {
		t.Errorf("deleted = %d, want 2", deleted)
	}
	if len(repo.events) != 2 {
		t.Fatalf("remaining events = %d, want 2", len(repo.events))
	}
	for _, event := range repo.events {
		if event.ID != 3 && event.ID != 4 {
			t.Errorf("event %d should have survived the sweep", event.ID)
		}
	}
}

func TestSweepOnceBoundary(t *testing.T) {
	now := time.Date(2025, 6, 15, 0, 0, 0, 0, time.UTC)

	// Exactly at the cutoff is not strictly older, so it survives.
	repo := &fakePlaybackRepo{events: []model.PlaybackEvent{
		{ID: 1, PlayedAt: now.Add(-7 * 24 * time.Hour)},
	}}

	sweeper := NewSweeper(repo, 7).WithClock(MockClock{MockTime: now})

	deleted, err := sweeper.SweepOnce(context.Background())
	if err != nil {
		t.Fatalf("SweepOnce() error = %v", err)
	}
	if deleted != 0 {
		t.Errorf("deleted = %d, want 0", deleted)
	}
}

func TestSweepOnceEmptyStore(t *testing.T) {
	sweeper := NewSweeper(&fakePlaybackRepo{}, 7).
		WithClock(MockClock{MockTime: time.Now()})

	deleted, err := sweeper.SweepOnce(context.Background())
	if err != nil {
		t.Fatalf("SweepOnce() error = %v", err)
	}
	if deleted != 0 {
		t.Errorf("deleted = %d, want 0", deleted)
	}
}

func TestNextMidnight(t *testing.T) {
	tests := []struct {
		name string
		now  time.Time
		want time.Time
	}{
		{
			name: "afternoon rolls to next day",
			now:  time.Date(2025, 6, 15, 15, 30, 0, 0, time.UTC),
			want: time.Date(2025, 6, 16, 0, 0, 0, 0, time.UTC),
		},
		{
			name: "exactly midnight waits a full day",
			now:  time.Date(2025, 6, 15, 0, 0, 0, 0, time.UTC),
			want: time.Date(2025, 6, 16, 0, 0, 0, 0, time.UTC),
		},
		{
			name: "month boundary",
			now:  time.Date(2025, 6, 30, 23, 59, 59, 0, time.UTC),
			want: time.Date(2025, 7, 1, 0, 0, 0, 0, time.UTC),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := nextMidnight(tt.now); !got.Equal(tt.want) {
				t.Errorf("nextMidnight(%v) = %v, want %v", tt.now, got, tt.want)
			}
		})
	}
}
