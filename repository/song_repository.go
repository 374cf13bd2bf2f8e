package repository

import (
	"context"

	"wavefm/model"

	"gorm.io/gorm"
)

// SongRepository defines catalog queries over songs and artists.
type SongRepository interface {
	Create(ctx context.Context, song *model.Song) error
	GetByID(ctx context.Context, id int64) (*model.Song, error)
	// GetByIDs fetches songs for the given ID list with their artists.
	// Result order is whatever the datastore returns, not input order.
	GetByIDs(ctx context.Context, ids []int64) ([]*model.Song, error)
	ExistsByID(ctx context.Context, id int64) (bool, error)
	// Search pages through songs whose normalized title contains keyword.
	// An empty keyword matches the whole catalog. Returns the page and the
	// full matching count.
	Search(ctx context.Context, keyword string, skip, take int) ([]*model.Song, int64, error)
	// ListGenres returns the distinct non-empty genre values in the catalog.
	ListGenres(ctx context.Context) ([]string, error)
}

// gormSongRepository implements SongRepository on GORM.
type gormSongRepository struct {
	db *gorm.DB
}

// NewGormSongRepository creates a GORM song repository.
func NewGormSongRepository(db *gorm.DB) SongRepository {
	return &gormSongRepository{db: db}
}

// Create adds a song to the catalog.
func (r *gormSongRepository) Create(ctx context.Context, song *model.Song) error {
	return translateError(r.db.WithContext(ctx).Create(song).Error)
}

// GetByID retrieves a song with its artist. Returns nil without error when
// missing.
func (r *gormSongRepository) GetByID(ctx context.Context, id int64) (*model.Song, error) {
	var song model.Song
	err := r.db.WithContext(ctx).Preload("Artist").Where("id = ?", id).First(&song).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}
	return &song, nil
}

// GetByIDs retrieves songs by ID list with their artists.
func (r *gormSongRepository) GetByIDs(ctx context.Context, ids []int64) ([]*model.Song, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	var songs []*model.Song
	err := r.db.WithContext(ctx).Preload("Artist").Where("id IN ?", ids).Find(&songs).Error
	return songs, err
}

// ExistsByID checks whether a song exists.
func (r *gormSongRepository) ExistsByID(ctx context.Context, id int64) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.Song{}).Where("id = ?", id).Count(&count).Error
	return count > 0, err
}

// Search counts the full match set first, then fetches one page, so total
// and data always describe the same filter.
func (r *gormSongRepository) Search(ctx context.Context, keyword string, skip, take int) ([]*model.Song, int64, error) {
	query := r.db.WithContext(ctx).Model(&model.Song{})
	if keyword != "" {
		query = query.Where("normalized_title LIKE ?", "%"+keyword+"%")
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var songs []*model.Song
	err := query.Preload("Artist").
		Order("title ASC, id ASC").
		Offset(skip).
		Limit(take).
		Find(&songs).Error
	if err != nil {
		return nil, 0, err
	}

	return songs, total, nil
}

// ListGenres returns the distinct non-empty genres, alphabetically.
func (r *gormSongRepository) ListGenres(ctx context.Context) ([]string, error) {
	var genres []string
	err := r.db.WithContext(ctx).Model(&model.Song{}).
		Distinct("genre").
		Where("genre <> ''").
		Order("genre ASC").
		Pluck("genre", &genres).Error
	return genres, err
}
