package genres

import (
	"context"
	"fmt"

	"github.com/angelmondragon/vidly-backend/pkg/db"
	"github.com/angelmondragon/vidly-backend/pkg/db/models"
	pkgerrors "github.com/angelmondragon/vidly-backend/pkg/errors"
	"github.com/google/uuid"
)

// Service exposes genre CRUD.
type Service interface {
	List(ctx context.Context) ([]GenreDTO, error)
	Get(ctx context.Context, id uuid.UUID) (*GenreDTO, error)
	Create(ctx context.Context, input GenreInput) (*GenreDTO, error)
	Update(ctx context.Context, id uuid.UUID, input GenreInput) (*GenreDTO, error)
	Delete(ctx context.Context, id uuid.UUID) (*GenreDTO, error)
}

type service struct {
	repo Repository
}

// NewService builds the genre service.
func NewService(repo Repository) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("genres repository required")
	}
	return &service{repo: repo}, nil
}

func (s *service) List(ctx context.Context) ([]GenreDTO, error) {
	items, err := s.repo.List(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "list genres")
	}
	return FromModels(items), nil
}

func (s *service) Get(ctx context.Context, id uuid.UUID) (*GenreDTO, error) {
	genre, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, mapLookupError(err, id)
	}
	return FromModel(genre), nil
}

func (s *service) Create(ctx context.Context, input GenreInput) (*GenreDTO, error) {
	name := input.normalizedName()
	if name == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "name is required")
	}
	genre, err := s.repo.Create(ctx, &models.Genre{Name: name})
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "create genre")
	}
	return FromModel(genre), nil
}

func (s *service) Update(ctx context.Context, id uuid.UUID, input GenreInput) (*GenreDTO, error) {
	name := input.normalizedName()
	if name == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "name is required")
	}
	genre, err := s.repo.UpdateName(ctx, id, name)
	if err != nil {
		return nil, mapLookupError(err, id)
	}
	return FromModel(genre), nil
}

func (s *service) Delete(ctx context.Context, id uuid.UUID) (*GenreDTO, error) {
	genre, err := s.repo.Delete(ctx, id)
	if err != nil {
		return nil, mapLookupError(err, id)
	}
	return FromModel(genre), nil
}

func mapLookupError(err error, id uuid.UUID) error {
	if db.IsNotFound(err) {
		return pkgerrors.NotFound("genre", id)
	}
	return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load genre")
}
