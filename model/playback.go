package model

import "time"

// PlaybackEvent records that a user played a song. At most one live row
// exists per (user_id, song_id); a replay updates PlayedAt instead of
// inserting a duplicate. Rows older than the retention threshold are
// removed by the nightly sweep.
type PlaybackEvent struct {
	ID       int64     `json:"id" gorm:"primaryKey;autoIncrement"`
	UserID   int64     `json:"userId" gorm:"not null;uniqueIndex:uq_user_song_play;index"`
	SongID   int64     `json:"songId" gorm:"not null;uniqueIndex:uq_user_song_play;index"`
	PlayedAt time.Time `json:"playedAt" gorm:"index;not null"`
}

// TableName specifies the table name.
func (PlaybackEvent) TableName() string {
	return "playback_events"
}

// HistoryEntry is a playback event joined with song and artist detail, as
// returned by the history endpoints.
type HistoryEntry struct {
	Song
	PlayedAt time.Time `json:"playedAt"`
}

// ListenStats summarizes a user's playback history within the retention
// window.
type ListenStats struct {
	DistinctSongs int64 `json:"distinctSongs"`
	TotalPlays    int64 `json:"totalPlays"`
}
