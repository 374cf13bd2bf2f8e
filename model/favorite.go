package model

import "time"

// Favorite is the user-song favorite edge. Existence is binary and unique
// per (user_id, song_id); re-favoriting is a conflict, not a no-op.
type Favorite struct {
	ID        int64     `json:"id" gorm:"primaryKey;autoIncrement"`
	UserID    int64     `json:"userId" gorm:"not null;uniqueIndex:uq_user_favorite"`
	SongID    int64     `json:"songId" gorm:"not null;uniqueIndex:uq_user_favorite;index"`
	CreatedAt time.Time `json:"createdAt"`
}

// TableName specifies the table name.
func (Favorite) TableName() string {
	return "favorites"
}

// FavoriteEntry is a favorite hydrated with catalog detail, as returned by
// the favorites listing.
type FavoriteEntry struct {
	Song
	FavoritedAt time.Time `json:"favoritedAt"`
}
