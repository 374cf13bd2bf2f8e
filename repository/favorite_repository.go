package repository

import (
	"context"

	"wavefm/model"

	"gorm.io/gorm"
)

// FavoriteRepository defines data operations on the user-song favorite edge.
type FavoriteRepository interface {
	// Add inserts the edge. A second insert for the same (user, song)
	// returns ErrDuplicate.
	Add(ctx context.Context, favorite *model.Favorite) error
	// Remove deletes the edge and returns it. Returns nil without error
	// when the edge does not exist.
	Remove(ctx context.Context, userID, songID int64) (*model.Favorite, error)
	Exists(ctx context.Context, userID, songID int64) (bool, error)
	// ListByUser pages a user's favorites, newest first, with the full count.
	ListByUser(ctx context.Context, userID int64, skip, take int) ([]*model.Favorite, int64, error)
}

// gormFavoriteRepository implements FavoriteRepository on GORM.
type gormFavoriteRepository struct {
	db *gorm.DB
}

// NewGormFavoriteRepository creates a GORM favorite repository.
func NewGormFavoriteRepository(db *gorm.DB) FavoriteRepository {
	return &gormFavoriteRepository{db: db}
}

// Add inserts the favorite edge.
func (r *gormFavoriteRepository) Add(ctx context.Context, favorite *model.Favorite) error {
	return translateError(r.db.WithContext(ctx).Create(favorite).Error)
}

// Remove deletes and returns the favorite edge.
func (r *gormFavoriteRepository) Remove(ctx context.Context, userID, songID int64) (*model.Favorite, error) {
	var favorite model.Favorite
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND song_id = ?", userID, songID).
		First(&favorite).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}

	if err := r.db.WithContext(ctx).Delete(&favorite).Error; err != nil {
		return nil, err
	}
	return &favorite, nil
}

// Exists checks whether the edge is present.
func (r *gormFavoriteRepository) Exists(ctx context.Context, userID, songID int64) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.Favorite{}).
		Where("user_id = ? AND song_id = ?", userID, songID).
		Count(&count).Error
	return count > 0, err
}

// ListByUser pages a user's favorite edges, newest first.
func (r *gormFavoriteRepository) ListByUser(ctx context.Context, userID int64, skip, take int) ([]*model.Favorite, int64, error) {
	query := r.db.WithContext(ctx).Model(&model.Favorite{}).Where("user_id = ?", userID)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var favorites []*model.Favorite
	err := query.
		Order("created_at DESC, song_id ASC").
		Offset(skip).
		Limit(take).
		Find(&favorites).Error
	if err != nil {
		return nil, 0, err
	}

	return favorites, total, nil
}
