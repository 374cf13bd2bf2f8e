package model

import "time"

// Artist represents a catalog artist. Rows are created by seeding and are
// immutable from the API's point of view.
type Artist struct {
	ID             int64     `json:"id" gorm:"primaryKey;autoIncrement"`
	Name           string    `json:"name" gorm:"size:255;not null"`
	NormalizedName string    `json:"-" gorm:"size:255;index;not null"`
	CreatedAt      time.Time `json:"createdAt"`
	UpdatedAt      time.Time `json:"updatedAt"`
}

// TableName specifies the table name.
func (Artist) TableName() string {
	return "artists"
}
