package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"gorm.io/gorm"

	"cinelog/internal/errors"
	"cinelog/internal/model"
	"cinelog/internal/repository"
)

// MockMovieRepository is a mock implementation of MovieRepository.
type MockMovieRepository struct {
	mock.Mock
}

func (m *MockMovieRepository) Create(ctx context.Context, movie *model.Movie) error {
	args := m.Called(ctx, movie)
	return args.Error(0)
}

func (m *MockMovieRepository) FindByOwner(ctx context.Context, ownerID uint, filter repository.MovieFilter) ([]model.Movie, error) {
	args := m.Called(ctx, ownerID, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Movie), args.Error(1)
}

func (m *MockMovieRepository) FindByIDAndOwner(ctx context.Context, id, ownerID uint) (*model.Movie, error) {
	args := m.Called(ctx, id, ownerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Movie), args.Error(1)
}

func (m *MockMovieRepository) Save(ctx context.Context, movie *model.Movie) error {
	args := m.Called(ctx, movie)
	return args.Error(0)
}

func (m *MockMovieRepository) Delete(ctx context.Context, movie *model.Movie) error {
	args := m.Called(ctx, movie)
	return args.Error(0)
}

func strPtr(s string) *string     { return &s }
func floatPtr(f float64) *float64 { return &f }
func boolPtr(b bool) *bool        { return &b }

func TestMovieService_Create(t *testing.T) {
	t.Run("owner comes from the caller", func(t *testing.T) {
		mockRepo := new(MockMovieRepository)
		mockRepo.On("Create", mock.Anything, mock.MatchedBy(func(movie *model.Movie) bool {
			return movie.UserID == 7 && movie.Title == "Dune" && !movie.Watched
		})).Return(nil)

		svc := NewMovieService(mockRepo, nil)
		movie, err := svc.Create(context.Background(), MovieInput{Title: "Dune"}, 7)

		assert.NoError(t, err)
		assert.Equal(t, uint(7), movie.UserID)
		mockRepo.AssertExpectations(t)
	})

	t.Run("empty title is rejected", func(t *testing.T) {
		svc := NewMovieService(new(MockMovieRepository), nil)
		_, err := svc.Create(context.Background(), MovieInput{Title: ""}, 7)

		var vErr *errors.ValidationError
		assert.ErrorAs(t, err, &vErr)
		assert.Contains(t, vErr.Fields, "title")
	})

	t.Run("rating outside 0..10 is rejected", func(t *testing.T) {
		svc := NewMovieService(new(MockMovieRepository), nil)
		_, err := svc.Create(context.Background(), MovieInput{Title: "Dune", Rating: floatPtr(10.5)}, 7)

		var vErr *errors.ValidationError
		assert.ErrorAs(t, err, &vErr)
		assert.Contains(t, vErr.Fields, "rating")
	})

	t.Run("boundary ratings are accepted", func(t *testing.T) {
		for _, rating := range []float64{0, 10} {
			mockRepo := new(MockMovieRepository)
			mockRepo.On("Create", mock.Anything, mock.Anything).Return(nil)

			svc := NewMovieService(mockRepo, nil)
			_, err := svc.Create(context.Background(), MovieInput{Title: "Dune", Rating: floatPtr(rating)}, 7)
			assert.NoError(t, err)
		}
	})
}

func TestMovieService_GetByID(t *testing.T) {
	t.Run("foreign or missing movie reads as not found", func(t *testing.T) {
		mockRepo := new(MockMovieRepository)
		mockRepo.On("FindByIDAndOwner", mock.Anything, uint(1), uint(2)).Return(nil, gorm.ErrRecordNotFound)

		svc := NewMovieService(mockRepo, nil)
		_, err := svc.GetByID(context.Background(), 1, 2)
		assert.ErrorIs(t, err, errors.ErrMovieNotFound)
	})

	t.Run("owned movie is returned", func(t *testing.T) {
		mockRepo := new(MockMovieRepository)
		mockRepo.On("FindByIDAndOwner", mock.Anything, uint(1), uint(2)).Return(&model.Movie{ID: 1, Title: "Dune", UserID: 2}, nil)

		svc := NewMovieService(mockRepo, nil)
		movie, err := svc.GetByID(context.Background(), 1, 2)
		assert.NoError(t, err)
		assert.Equal(t, "Dune", movie.Title)
	})
}

func TestMovieService_PartialUpdate(t *testing.T) {
	stored := func() *model.Movie {
		return &model.Movie{
			ID:       1,
			Title:    "Dune",
			Director: strPtr("Denis Villeneuve"),
			Rating:   floatPtr(8.5),
			Watched:  false,
			UserID:   2,
		}
	}

	t.Run("empty patch is a no-op", func(t *testing.T) {
		mockRepo := new(MockMovieRepository)
		mockRepo.On("FindByIDAndOwner", mock.Anything, uint(1), uint(2)).Return(stored(), nil)
		mockRepo.On("Save", mock.Anything, mock.Anything).Return(nil)

		svc := NewMovieService(mockRepo, nil)
		movie, err := svc.PartialUpdate(context.Background(), 1, MoviePatch{}, 2)

		assert.NoError(t, err)
		assert.Equal(t, "Dune", movie.Title)
		assert.Equal(t, "Denis Villeneuve", *movie.Director)
		assert.Equal(t, 8.5, *movie.Rating)
	})

	t.Run("only present fields change", func(t *testing.T) {
		mockRepo := new(MockMovieRepository)
		mockRepo.On("FindByIDAndOwner", mock.Anything, uint(1), uint(2)).Return(stored(), nil)
		mockRepo.On("Save", mock.Anything, mock.Anything).Return(nil)

		svc := NewMovieService(mockRepo, nil)
		movie, err := svc.PartialUpdate(context.Background(), 1, MoviePatch{Watched: boolPtr(true)}, 2)

		assert.NoError(t, err)
		assert.True(t, movie.Watched)
		assert.Equal(t, "Denis Villeneuve", *movie.Director)
	})

	t.Run("patching title to empty is rejected", func(t *testing.T) {
		mockRepo := new(MockMovieRepository)
		mockRepo.On("FindByIDAndOwner", mock.Anything, uint(1), uint(2)).Return(stored(), nil)

		svc := NewMovieService(mockRepo, nil)
		_, err := svc.PartialUpdate(context.Background(), 1, MoviePatch{Title: strPtr("")}, 2)

		var vErr *errors.ValidationError
		assert.ErrorAs(t, err, &vErr)
		mockRepo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	})

	t.Run("foreign movie reads as not found", func(t *testing.T) {
		mockRepo := new(MockMovieRepository)
		mockRepo.On("FindByIDAndOwner", mock.Anything, uint(1), uint(99)).Return(nil, gorm.ErrRecordNotFound)

		svc := NewMovieService(mockRepo, nil)
		_, err := svc.PartialUpdate(context.Background(), 1, MoviePatch{Watched: boolPtr(true)}, 99)
		assert.ErrorIs(t, err, errors.ErrMovieNotFound)
	})
}

func TestMovieService_Replace(t *testing.T) {
	stored := func() *model.Movie {
		return &model.Movie{
			ID:       1,
			Title:    "Dune",
			Director: strPtr("Denis Villeneuve"),
			Genre:    strPtr("Sci-Fi"),
			Rating:   floatPtr(8.5),
			Watched:  true,
			UserID:   2,
		}
	}

	t.Run("absent optional fields are reset", func(t *testing.T) {
		mockRepo := new(MockMovieRepository)
		mockRepo.On("FindByIDAndOwner", mock.Anything, uint(1), uint(2)).Return(stored(), nil)
		mockRepo.On("Save", mock.Anything, mock.Anything).Return(nil)

		svc := NewMovieService(mockRepo, nil)
		movie, err := svc.Replace(context.Background(), 1, MovieInput{Title: "Dune Part Two"}, 2)

		assert.NoError(t, err)
		assert.Equal(t, "Dune Part Two", movie.Title)
		assert.Nil(t, movie.Director)
		assert.Nil(t, movie.Genre)
		assert.Nil(t, movie.Rating)
		assert.False(t, movie.Watched)
		assert.Equal(t, uint(2), movie.UserID)
	})

	t.Run("missing title fails before the load", func(t *testing.T) {
		mockRepo := new(MockMovieRepository)

		svc := NewMovieService(mockRepo, nil)
		_, err := svc.Replace(context.Background(), 1, MovieInput{}, 2)

		var vErr *errors.ValidationError
		assert.ErrorAs(t, err, &vErr)
		mockRepo.AssertNotCalled(t, "FindByIDAndOwner", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("foreign movie reads as not found", func(t *testing.T) {
		mockRepo := new(MockMovieRepository)
		mockRepo.On("FindByIDAndOwner", mock.Anything, uint(1), uint(99)).Return(nil, gorm.ErrRecordNotFound)

		svc := NewMovieService(mockRepo, nil)
		_, err := svc.Replace(context.Background(), 1, MovieInput{Title: "X"}, 99)
		assert.ErrorIs(t, err, errors.ErrMovieNotFound)
	})
}

// The defining difference between PATCH and PUT: an empty patch keeps the
// director, a title-only replace clears it.
func TestMovieService_PatchAndReplaceDiverge(t *testing.T) {
	stored := func() *model.Movie {
		return &model.Movie{ID: 1, Title: "Dune", Director: strPtr("Denis Villeneuve"), UserID: 2}
	}

	mockRepo := new(MockMovieRepository)
	mockRepo.On("FindByIDAndOwner", mock.Anything, uint(1), uint(2)).Return(stored(), nil)
	mockRepo.On("Save", mock.Anything, mock.Anything).Return(nil)
	svc := NewMovieService(mockRepo, nil)

	patched, err := svc.PartialUpdate(context.Background(), 1, MoviePatch{}, 2)
	assert.NoError(t, err)
	assert.NotNil(t, patched.Director)

	replaced, err := svc.Replace(context.Background(), 1, MovieInput{Title: "Dune"}, 2)
	assert.NoError(t, err)
	assert.Nil(t, replaced.Director)
}

func TestMovieService_Delete(t *testing.T) {
	t.Run("missing or foreign movie is a no-op", func(t *testing.T) {
		mockRepo := new(MockMovieRepository)
		mockRepo.On("FindByIDAndOwner", mock.Anything, uint(1), uint(2)).Return(nil, gorm.ErrRecordNotFound)

		svc := NewMovieService(mockRepo, nil)
		deleted, err := svc.Delete(context.Background(), 1, 2)
		assert.NoError(t, err)
		assert.False(t, deleted)
		mockRepo.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
	})

	t.Run("owned movie is removed", func(t *testing.T) {
		movie := &model.Movie{ID: 1, Title: "Dune", UserID: 2}
		mockRepo := new(MockMovieRepository)
		mockRepo.On("FindByIDAndOwner", mock.Anything, uint(1), uint(2)).Return(movie, nil)
		mockRepo.On("Delete", mock.Anything, movie).Return(nil)

		svc := NewMovieService(mockRepo, nil)
		deleted, err := svc.Delete(context.Background(), 1, 2)
		assert.NoError(t, err)
		assert.True(t, deleted)
		mockRepo.AssertExpectations(t)
	})
}

func TestParseMovieFilter(t *testing.T) {
	tests := []struct {
		name    string
		genre   string
		watched string
		rating  string
		want    repository.MovieFilter
	}{
		{
			name: "no params means no constraints",
			want: repository.MovieFilter{},
		},
		{
			name:  "genre passes through",
			genre: "drama",
			want:  repository.MovieFilter{Genre: "drama"},
		},
		{
			name:    "watched true",
			watched: "true",
			want:    repository.MovieFilter{Watched: boolPtr(true)},
		},
		{
			name:    "watched false",
			watched: "false",
			want:    repository.MovieFilter{Watched: boolPtr(false)},
		},
		{
			name:    "any other watched value coerces to false",
			watched: "banana",
			want:    repository.MovieFilter{Watched: boolPtr(false)},
		},
		{
			name:   "rating threshold",
			rating: "7",
			want:   repository.MovieFilter{MinRating: floatPtr(7)},
		},
		{
			name:   "unparsable rating imposes no constraint",
			rating: "high",
			want:   repository.MovieFilter{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ParseMovieFilter(tt.genre, tt.watched, tt.rating)
			assert.Equal(t, tt.want, got)
		})
	}
}
