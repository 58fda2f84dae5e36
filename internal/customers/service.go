package customers

import (
	"context"
	"fmt"

	"github.com/angelmondragon/vidly-backend/pkg/db"
	pkgerrors "github.com/angelmondragon/vidly-backend/pkg/errors"
	"github.com/google/uuid"
)

// Service exposes customer CRUD.
type Service interface {
	List(ctx context.Context) ([]CustomerDTO, error)
	Get(ctx context.Context, id uuid.UUID) (*CustomerDTO, error)
	Create(ctx context.Context, input CustomerInput) (*CustomerDTO, error)
	Update(ctx context.Context, id uuid.UUID, input CustomerInput) (*CustomerDTO, error)
	Delete(ctx context.Context, id uuid.UUID) (*CustomerDTO, error)
}

type service struct {
	repo Repository
}

// NewService builds the customer service.
func NewService(repo Repository) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("customers repository required")
	}
	return &service{repo: repo}, nil
}

func (s *service) List(ctx context.Context) ([]CustomerDTO, error) {
	items, err := s.repo.List(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "list customers")
	}
	return FromModels(items), nil
}

func (s *service) Get(ctx context.Context, id uuid.UUID) (*CustomerDTO, error) {
	customer, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, mapLookupError(err, id)
	}
	return FromModel(customer), nil
}

func (s *service) Create(ctx context.Context, input CustomerInput) (*CustomerDTO, error) {
	input = input.normalize()
	if err := validateInput(input); err != nil {
		return nil, err
	}
	customer, err := s.repo.Create(ctx, input.toModel())
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "create customer")
	}
	return FromModel(customer), nil
}

func (s *service) Update(ctx context.Context, id uuid.UUID, input CustomerInput) (*CustomerDTO, error) {
	input = input.normalize()
	if err := validateInput(input); err != nil {
		return nil, err
	}
	customer, err := s.repo.Update(ctx, id, input.toUpdates())
	if err != nil {
		return nil, mapLookupError(err, id)
	}
	return FromModel(customer), nil
}

func (s *service) Delete(ctx context.Context, id uuid.UUID) (*CustomerDTO, error) {
	customer, err := s.repo.Delete(ctx, id)
	if err != nil {
		return nil, mapLookupError(err, id)
	}
	return FromModel(customer), nil
}

func validateInput(input CustomerInput) error {
	if input.Name == "" {
		return pkgerrors.New(pkgerrors.CodeValidation, "name is required")
	}
	if input.Phone == "" {
		return pkgerrors.New(pkgerrors.CodeValidation, "phone is required")
	}
	return nil
}

func mapLookupError(err error, id uuid.UUID) error {
	if db.IsNotFound(err) {
		return pkgerrors.NotFound("customer", id)
	}
	return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load customer")
}
