package service

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"gorm.io/gorm"

	"cinelog/internal/cache"
	"cinelog/internal/errors"
	"cinelog/internal/model"
	"cinelog/internal/repository"
)

const movieCacheTTL = 5 * time.Minute

// MovieInput carries the writable movie fields of a create or replace
// request. Optional fields are pointers: nil means the field was absent.
type MovieInput struct {
	Title    string
	Director *string
	Genre    *string
	Year     *int
	Rating   *float64
	Watched  *bool
}

// MoviePatch carries a partial update. Only non-nil fields are applied.
type MoviePatch struct {
	Title    *string
	Director *string
	Genre    *string
	Year     *int
	Rating   *float64
	Watched  *bool
}

// MovieService exposes the owner-scoped movie operations. Every method takes
// the authenticated caller's id and can neither observe nor mutate another
// user's rows.
type MovieService interface {
	Create(ctx context.Context, input MovieInput, ownerID uint) (*model.Movie, error)
	List(ctx context.Context, ownerID uint, filter repository.MovieFilter) ([]model.Movie, error)
	GetByID(ctx context.Context, id, ownerID uint) (*model.Movie, error)
	PartialUpdate(ctx context.Context, id uint, patch MoviePatch, ownerID uint) (*model.Movie, error)
	Replace(ctx context.Context, id uint, input MovieInput, ownerID uint) (*model.Movie, error)
	Delete(ctx context.Context, id, ownerID uint) (bool, error)
}

type movieService struct {
	repo  repository.MovieRepository
	cache *cache.Client
}

// NewMovieService builds a MovieService with repository and cache.
func NewMovieService(repo repository.MovieRepository, cache *cache.Client) MovieService {
	return &movieService{repo: repo, cache: cache}
}

func (s *movieService) cacheKey(id, ownerID uint) string {
	return fmt.Sprintf("movie:%d:user:%d", id, ownerID)
}

// Create validates and persists a new movie owned by the caller. The owner
// comes from the authenticated identity, never from the payload.
func (s *movieService) Create(ctx context.Context, input MovieInput, ownerID uint) (*model.Movie, error) {
	if err := validateMovieFields(input.Title, input.Rating); err != nil {
		return nil, err
	}

	movie := &model.Movie{
		Title:    input.Title,
		Director: input.Director,
		Genre:    input.Genre,
		Year:     input.Year,
		Rating:   input.Rating,
		UserID:   ownerID,
	}
	if input.Watched != nil {
		movie.Watched = *input.Watched
	}

	if err := s.repo.Create(ctx, movie); err != nil {
		return nil, fmt.Errorf("create movie: %w", err)
	}
	return movie, nil
}

// List returns the caller's movies narrowed by the filter.
func (s *movieService) List(ctx context.Context, ownerID uint, filter repository.MovieFilter) ([]model.Movie, error) {
	movies, err := s.repo.FindByOwner(ctx, ownerID, filter)
	if err != nil {
		return nil, fmt.Errorf("list movies: %w", err)
	}
	return movies, nil
}

// GetByID returns the movie only when it exists and belongs to the caller.
// A movie owned by someone else reads as not found.
func (s *movieService) GetByID(ctx context.Context, id, ownerID uint) (*model.Movie, error) {
	if data, _ := s.cache.Get(ctx, s.cacheKey(id, ownerID)); data != nil {
		var cached model.Movie
		if err := json.Unmarshal(data, &cached); err == nil {
			return &cached, nil
		}
	}

	movie, err := s.repo.FindByIDAndOwner(ctx, id, ownerID)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, errors.ErrMovieNotFound
		}
		return nil, fmt.Errorf("find movie: %w", err)
	}

	if payload, err := json.Marshal(movie); err == nil {
		_ = s.cache.Set(ctx, s.cacheKey(id, ownerID), payload, movieCacheTTL)
	}
	return movie, nil
}

// PartialUpdate applies only the fields present in the patch. An empty patch
// is a no-op returning the stored record unchanged.
func (s *movieService) PartialUpdate(ctx context.Context, id uint, patch MoviePatch, ownerID uint) (*model.Movie, error) {
	movie, err := s.repo.FindByIDAndOwner(ctx, id, ownerID)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, errors.ErrMovieNotFound
		}
		return nil, fmt.Errorf("find movie: %w", err)
	}

	if patch.Title != nil {
		movie.Title = *patch.Title
	}
	if patch.Director != nil {
		movie.Director = patch.Director
	}
	if patch.Genre != nil {
		movie.Genre = patch.Genre
	}
	if patch.Year != nil {
		movie.Year = patch.Year
	}
	if patch.Rating != nil {
		movie.Rating = patch.Rating
	}
	if patch.Watched != nil {
		movie.Watched = *patch.Watched
	}

	if err := validateMovieFields(movie.Title, movie.Rating); err != nil {
		return nil, err
	}

	if err := s.repo.Save(ctx, movie); err != nil {
		return nil, fmt.Errorf("update movie: %w", err)
	}
	_ = s.cache.Delete(ctx, s.cacheKey(id, ownerID))
	return movie, nil
}

// Replace overwrites the whole record: optional fields absent from the input
// are reset to NULL and watched falls back to false. This is a destructive
// overwrite, not a merge.
func (s *movieService) Replace(ctx context.Context, id uint, input MovieInput, ownerID uint) (*model.Movie, error) {
	if err := validateMovieFields(input.Title, input.Rating); err != nil {
		return nil, err
	}

	movie, err := s.repo.FindByIDAndOwner(ctx, id, ownerID)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, errors.ErrMovieNotFound
		}
		return nil, fmt.Errorf("find movie: %w", err)
	}

	movie.Title = input.Title
	movie.Director = input.Director
	movie.Genre = input.Genre
	movie.Year = input.Year
	movie.Rating = input.Rating
	movie.Watched = false
	if input.Watched != nil {
		movie.Watched = *input.Watched
	}

	if err := s.repo.Save(ctx, movie); err != nil {
		return nil, fmt.Errorf("replace movie: %w", err)
	}
	_ = s.cache.Delete(ctx, s.cacheKey(id, ownerID))
	return movie, nil
}

// Delete removes the caller's movie. A missing or foreign row is a no-op
// signalled by false, not an error.
func (s *movieService) Delete(ctx context.Context, id, ownerID uint) (bool, error) {
	movie, err := s.repo.FindByIDAndOwner(ctx, id, ownerID)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return false, nil
		}
		return false, fmt.Errorf("find movie: %w", err)
	}

	if err := s.repo.Delete(ctx, movie); err != nil {
		return false, fmt.Errorf("delete movie: %w", err)
	}
	_ = s.cache.Delete(ctx, s.cacheKey(id, ownerID))
	return true, nil
}

func validateMovieFields(title string, rating *float64) error {
	fields := map[string]string{}
	if title == "" {
		fields["title"] = "title is required"
	}
	if rating != nil && (*rating < 0 || *rating > 10) {
		fields["rating"] = "rating must be between 0 and 10"
	}
	if len(fields) > 0 {
		return errors.NewValidationError(fields)
	}
	return nil
}

// ParseMovieFilter coerces raw query parameters into a MovieFilter. A
// non-empty watched value matches the original API's literal coercion:
// anything other than "true" filters for unwatched. An unparsable rating
// imposes no constraint.
func ParseMovieFilter(genre, watched, rating string) repository.MovieFilter {
	filter := repository.MovieFilter{Genre: genre}

	if watched != "" {
		w := watched == "true"
		filter.Watched = &w
	}
	if rating != "" {
		if threshold, err := strconv.ParseFloat(rating, 64); err == nil {
			filter.MinRating = &threshold
		}
	}
	return filter
}
