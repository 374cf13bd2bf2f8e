package model

import "time"

// Song represents a catalog song. Genre is optional; the empty string means
// the song has no genre and is excluded from genre listings.
type Song struct {
	ID              int64     `json:"id" gorm:"primaryKey;autoIncrement"`
	Title           string    `json:"title" gorm:"size:255;not null"`
	NormalizedTitle string    `json:"-" gorm:"size:255;index;not null"`
	Genre           string    `json:"genre,omitempty" gorm:"size:50;index"`
	DurationSeconds int       `json:"durationSeconds"`
	MediaURL        string    `json:"mediaUrl" gorm:"size:767;not null"`
	ImageURL        string    `json:"imageUrl,omitempty" gorm:"size:767"`
	ArtistID        int64     `json:"artistId" gorm:"index;not null"`
	Artist          *Artist   `json:"artist,omitempty" gorm:"foreignKey:ArtistID"`
	CreatedAt       time.Time `json:"createdAt"`
	UpdatedAt       time.Time `json:"updatedAt"`
}

// TableName specifies the table name.
func (Song) TableName() string {
	return "songs"
}

// RankedSong is a song joined with its artist and the aggregated listen
// count, as returned by the ranking endpoints.
type RankedSong struct {
	Song
	ListenCount int64 `json:"listenCount"`
}
