package model

import "time"

// Playlist is a user-owned, named collection of songs. The (user_id, name)
// pair is unique: a user cannot have two playlists with the same name.
type Playlist struct {
	ID        int64     `json:"id" gorm:"primaryKey;autoIncrement"`
	Name      string    `json:"name" gorm:"size:255;not null;uniqueIndex:uq_user_playlist_name"`
	UserID    int64     `json:"userId" gorm:"not null;uniqueIndex:uq_user_playlist_name;index"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// TableName specifies the table name.
func (Playlist) TableName() string {
	return "playlists"
}

// PlaylistSong is the playlist membership edge. Unique per
// (playlist_id, song_id); adding an existing edge is a conflict.
type PlaylistSong struct {
	ID         int64     `json:"id" gorm:"primaryKey;autoIncrement"`
	PlaylistID int64     `json:"playlistId" gorm:"not null;uniqueIndex:uq_playlist_song"`
	SongID     int64     `json:"songId" gorm:"not null;uniqueIndex:uq_playlist_song;index"`
	AddedAt    time.Time `json:"addedAt" gorm:"autoCreateTime"`
}

// TableName specifies the table name.
func (PlaylistSong) TableName() string {
	return "playlist_songs"
}

// PlaylistEntry is a playlist song hydrated with catalog detail, as
// returned by the playlist-songs endpoint.
type PlaylistEntry struct {
	Song
	AddedAt time.Time `json:"addedAt"`
}
