// Package retention removes playback events once they age past the
// configured threshold.
package retention

import (
	"context"
	"time"

	"wavefm/logger"
	"wavefm/repository"
)

// Clock defines an interface for getting the current time, so tests can
// inject a fixed instant.
type Clock interface {
	Now() time.Time
}

// RealClock implements Clock using the system time.
type RealClock struct{}

func (RealClock) Now() time.Time {
	return time.Now()
}

// Sweeper deletes playback events older than the retention threshold.
type Sweeper struct {
	playback  repository.PlaybackRepository
	retention time.Duration
	clock     Clock
}

// NewSweeper creates a Sweeper that keeps retentionDays of history.
func NewSweeper(playback repository.PlaybackRepository, retentionDays int) *Sweeper {
	return &Sweeper{
		playback:  playback,
		retention: time.Duration(retentionDays) * 24 * time.Hour,
		clock:     RealClock{},
	}
}

// WithClock replaces the sweeper's clock.
func (s *Sweeper) WithClock(clock Clock) *Sweeper {
	s.clock = clock
	return s
}

// SweepOnce deletes everything played before now minus the retention
// threshold and returns the number of deleted rows.
func (s *Sweeper) SweepOnce(ctx context.Context) (int64, error) {
	cutoff := s.clock.Now().Add(-s.retention)
	return s.playback.DeleteOlderThan(ctx, cutoff)
}

// Run sweeps once per day at midnight until ctx is cancelled. A failed
// sweep is logged and retried at the next tick; it never takes the
// process down.
func (s *Sweeper) Run(ctx context.Context) {
	for {
		wait := nextMidnight(s.clock.Now()).Sub(s.clock.Now())
		timer := time.NewTimer(wait)

		select {
		case <-ctx.Done():
			timer.Stop()
			return
		case <-timer.C:
		}

		deleted, err := s.SweepOnce(ctx)
		if err != nil {
			logger.Error("Playback history sweep failed", logger.ErrorField(err))
			continue
		}
		logger.Info("Playback history sweep completed", logger.Int64("deletedRows", deleted))
	}
}

func nextMidnight(now time.Time) time.Time {
	year, month, day := now.Date()
	return time.Date(year, month, day, 0, 0, 0, 0, now.Location()).AddDate(0, 0, 1)
}
