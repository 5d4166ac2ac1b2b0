package repository

import (
	"context"
	"strings"

	"gorm.io/gorm"

	"cinelog/internal/model"
)

// MovieFilter holds the optional list constraints. Nil/empty fields impose
// no constraint; set fields are combined conjunctively on top of the owner
// predicate.
type MovieFilter struct {
	Genre     string
	Watched   *bool
	MinRating *float64
}

// MovieRepository defines movie persistence operations. Every query is
// scoped by the owning user; there is no unscoped read or write path.
type MovieRepository interface {
	Create(ctx context.Context, movie *model.Movie) error
	FindByOwner(ctx context.Context, ownerID uint, filter MovieFilter) ([]model.Movie, error)
	FindByIDAndOwner(ctx context.Context, id, ownerID uint) (*model.Movie, error)
	Save(ctx context.Context, movie *model.Movie) error
	Delete(ctx context.Context, movie *model.Movie) error
}

type movieRepository struct {
	db *gorm.DB
}

// NewMovieRepository builds a GORM-backed repository.
func NewMovieRepository(db *gorm.DB) MovieRepository {
	return &movieRepository{db: db}
}

func (r *movieRepository) Create(ctx context.Context, movie *model.Movie) error {
	return r.db.WithContext(ctx).Create(movie).Error
}

// FindByOwner lists the owner's movies, narrowed by the filter. Rows with a
// NULL rating never satisfy the rating threshold. Ordered by id so listings
// are stable across calls.
func (r *movieRepository) FindByOwner(ctx context.Context, ownerID uint, filter MovieFilter) ([]model.Movie, error) {
	q := r.db.WithContext(ctx).Where("user_id = ?", ownerID)

	if filter.Genre != "" {
		q = q.Where("LOWER(genre) LIKE ?", "%"+strings.ToLower(filter.Genre)+"%")
	}
	if filter.Watched != nil {
		q = q.Where("watched = ?", *filter.Watched)
	}
	if filter.MinRating != nil {
		q = q.Where("rating >= ?", *filter.MinRating)
	}

	var movies []model.Movie
	if err := q.Order("id ASC").Find(&movies).Error; err != nil {
		return nil, err
	}
	return movies, nil
}

func (r *movieRepository) FindByIDAndOwner(ctx context.Context, id, ownerID uint) (*model.Movie, error) {
	var movie model.Movie
	if err := r.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", id, ownerID).
		First(&movie).Error; err != nil {
		return nil, err
	}
	return &movie, nil
}

func (r *movieRepository) Save(ctx context.Context, movie *model.Movie) error {
	return r.db.WithContext(ctx).Save(movie).Error
}

func (r *movieRepository) Delete(ctx context.Context, movie *model.Movie) error {
	return r.db.WithContext(ctx).Delete(movie).Error
}
