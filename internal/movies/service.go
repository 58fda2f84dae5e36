package movies

import (
	"context"
	"fmt"

	"github.com/angelmondragon/vidly-backend/pkg/db"
	"github.com/angelmondragon/vidly-backend/pkg/db/models"
	pkgerrors "github.com/angelmondragon/vidly-backend/pkg/errors"
	"github.com/google/uuid"
)

type genreLoader interface {
	FindByID(ctx context.Context, id uuid.UUID) (*models.Genre, error)
}

// Service exposes movie catalog operations. Stock transitions caused by
// rentals live in the rentals package and go through Repository directly.
type Service interface {
	List(ctx context.Context) ([]MovieDTO, error)
	Get(ctx context.Context, id uuid.UUID) (*MovieDTO, error)
	Create(ctx context.Context, input MovieInput) (*MovieDTO, error)
	Update(ctx context.Context, id uuid.UUID, input MovieInput) (*MovieDTO, error)
	ToggleLiked(ctx context.Context, id uuid.UUID) (*MovieDTO, error)
	Delete(ctx context.Context, id uuid.UUID) (*MovieDTO, error)
}

type service struct {
	repo   Repository
	genres genreLoader
}

// NewService builds the movie service.
func NewService(repo Repository, genres genreLoader) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("movies repository required")
	}
	if genres == nil {
		return nil, fmt.Errorf("genre loader required")
	}
	return &service{repo: repo, genres: genres}, nil
}

func (s *service) List(ctx context.Context) ([]MovieDTO, error) {
	items, err := s.repo.List(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "list movies")
	}
	return FromModels(items), nil
}

func (s *service) Get(ctx context.Context, id uuid.UUID) (*MovieDTO, error) {
	movie, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, mapLookupError(err, id)
	}
	return FromModel(movie), nil
}

func (s *service) Create(ctx context.Context, input MovieInput) (*MovieDTO, error) {
	input = input.normalize()
	if err := validateInput(input); err != nil {
		return nil, err
	}
	genre, err := s.loadGenre(ctx, input.GenreID)
	if err != nil {
		return nil, err
	}
	movie, err := s.repo.Create(ctx, input.toModel(genre))
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "create movie")
	}
	return FromModel(movie), nil
}

func (s *service) Update(ctx context.Context, id uuid.UUID, input MovieInput) (*MovieDTO, error) {
	input = input.normalize()
	if err := validateInput(input); err != nil {
		return nil, err
	}
	genre, err := s.loadGenre(ctx, input.GenreID)
	if err != nil {
		return nil, err
	}
	movie, err := s.repo.Update(ctx, id, input.toUpdates(genre))
	if err != nil {
		return nil, mapLookupError(err, id)
	}
	return FromModel(movie), nil
}

func (s *service) ToggleLiked(ctx context.Context, id uuid.UUID) (*MovieDTO, error) {
	movie, err := s.repo.ToggleLiked(ctx, id)
	if err != nil {
		return nil, mapLookupError(err, id)
	}
	return FromModel(movie), nil
}

func (s *service) Delete(ctx context.Context, id uuid.UUID) (*MovieDTO, error) {
	movie, err := s.repo.Delete(ctx, id)
	if err != nil {
		return nil, mapLookupError(err, id)
	}
	return FromModel(movie), nil
}

// loadGenre resolves the genre a movie points at. A dangling genre id is a
// bad request rather than a missing movie.
func (s *service) loadGenre(ctx context.Context, id uuid.UUID) (*models.Genre, error) {
	genre, err := s.genres.FindByID(ctx, id)
	if err != nil {
		if db.IsNotFound(err) {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "genre not found").
				WithDetails(map[string]any{"entity": "genre", "id": id.String()})
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load genre")
	}
	return genre, nil
}

func validateInput(input MovieInput) error {
	if input.Title == "" {
		return pkgerrors.New(pkgerrors.CodeValidation, "title is required")
	}
	if input.GenreID == uuid.Nil {
		return pkgerrors.New(pkgerrors.CodeValidation, "genre_id is required")
	}
	if input.DailyRentalRate.IsNegative() {
		return pkgerrors.New(pkgerrors.CodeValidation, "daily_rental_rate must not be negative")
	}
	if input.NumberInStock < 0 {
		return pkgerrors.New(pkgerrors.CodeValidation, "number_in_stock must not be negative")
	}
	return nil
}

func mapLookupError(err error, id uuid.UUID) error {
	if db.IsNotFound(err) {
		return pkgerrors.NotFound("movie", id)
	}
	return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load movie")
}
