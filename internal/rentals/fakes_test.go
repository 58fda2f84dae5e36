package rentals

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/angelmondragon/vidly-backend/internal/customers"
	"github.com/angelmondragon/vidly-backend/internal/movies"
	"github.com/angelmondragon/vidly-backend/pkg/db/models"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// memStore is an in-memory stand-in for the database. Its tx runner
// serializes units of work and restores the previous state when one fails.
type memStore struct {
	mu        sync.Mutex
	movies    map[uuid.UUID]models.Movie
	customers map[uuid.UUID]models.Customer
	rentals   map[uuid.UUID]models.Rental

	failCreate error
	failCommit error
}

func newMemStore() *memStore {
	return &memStore{
		movies:    map[uuid.UUID]models.Movie{},
		customers: map[uuid.UUID]models.Customer{},
		rentals:   map[uuid.UUID]models.Rental{},
	}
}

func (s *memStore) WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	movieSnap := cloneMap(s.movies)
	rentalSnap := cloneMap(s.rentals)
	err := fn(nil)
	if err == nil && s.failCommit != nil {
		err = s.failCommit
	}
	if err != nil {
		s.movies = movieSnap
		s.rentals = rentalSnap
		return err
	}
	return nil
}

func cloneMap[K comparable, V any](in map[K]V) map[K]V {
	out := make(map[K]V, len(in))
	for k, v := range in {
		out[k] = v
	}
	return out
}

func (s *memStore) addMovie(title string, rate string, stock int) models.Movie {
	m := models.Movie{ID: uuid.New(), Title: title, NumberInStock: stock}
	m.DailyRentalRate = decimal.RequireFromString(rate)
	s.movies[m.ID] = m
	return m
}

func (s *memStore) addCustomer(name, phone string) models.Customer {
	c := models.Customer{ID: uuid.New(), Name: name, Phone: phone}
	s.customers[c.ID] = c
	return c
}

func (s *memStore) stock(id uuid.UUID) int {
	return s.movies[id].NumberInStock
}

// movieRepo, customerRepo and rentalRepo read and write the store without
// locking; they are only called from inside memStore.WithTx or by tests
// after all units of work finished.
type movieRepo struct {
	movies.Repository
	s *memStore
}

func (r movieRepo) WithTx(*gorm.DB) movies.Repository { return r }

func (r movieRepo) FindByID(ctx context.Context, id uuid.UUID) (*models.Movie, error) {
	m, ok := r.s.movies[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return &m, nil
}

func (r movieRepo) DecrementStock(ctx context.Context, id uuid.UUID) (bool, error) {
	m, ok := r.s.movies[id]
	if !ok || m.NumberInStock <= 0 {
		return false, nil
	}
	m.NumberInStock--
	r.s.movies[id] = m
	return true, nil
}

func (r movieRepo) IncrementStock(ctx context.Context, id uuid.UUID) (bool, error) {
	m, ok := r.s.movies[id]
	if !ok {
		return false, nil
	}
	m.NumberInStock++
	r.s.movies[id] = m
	return true, nil
}

type customerRepo struct {
	customers.Repository
	s *memStore
}

func (r customerRepo) WithTx(*gorm.DB) customers.Repository { return r }

func (r customerRepo) FindByID(ctx context.Context, id uuid.UUID) (*models.Customer, error) {
	c, ok := r.s.customers[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return &c, nil
}

type rentalRepo struct {
	s *memStore
}

func (r rentalRepo) WithTx(*gorm.DB) Repository { return r }

func (r rentalRepo) Create(ctx context.Context, rental *models.Rental) (*models.Rental, error) {
	if r.s.failCreate != nil {
		return nil, r.s.failCreate
	}
	if rental.ID == uuid.Nil {
		rental.ID = uuid.New()
	}
	r.s.rentals[rental.ID] = *rental
	return rental, nil
}

func (r rentalRepo) FindByID(ctx context.Context, id uuid.UUID) (*models.Rental, error) {
	rental, ok := r.s.rentals[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return &rental, nil
}

func (r rentalRepo) List(ctx context.Context) ([]models.Rental, error) {
	out := make([]models.Rental, 0, len(r.s.rentals))
	for _, rental := range r.s.rentals {
		out = append(out, rental)
	}
	return out, nil
}

func (r rentalRepo) MarkReturned(ctx context.Context, id uuid.UUID, at time.Time) (bool, error) {
	rental, ok := r.s.rentals[id]
	if !ok || rental.DateReturned != nil {
		return false, nil
	}
	rental.DateReturned = &at
	r.s.rentals[id] = rental
	return true, nil
}

func (r rentalRepo) Delete(ctx context.Context, id uuid.UUID) (*models.Rental, error) {
	rental, ok := r.s.rentals[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	delete(r.s.rentals, id)
	return &rental, nil
}

var errInjected = errors.New("injected failure")
