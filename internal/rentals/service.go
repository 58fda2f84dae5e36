package rentals

import (
	"context"
	"fmt"
	"time"

	"github.com/angelmondragon/vidly-backend/internal/customers"
	"github.com/angelmondragon/vidly-backend/internal/movies"
	"github.com/angelmondragon/vidly-backend/pkg/db"
	"github.com/angelmondragon/vidly-backend/pkg/db/models"
	pkgerrors "github.com/angelmondragon/vidly-backend/pkg/errors"
	"github.com/angelmondragon/vidly-backend/pkg/logger"
	"github.com/angelmondragon/vidly-backend/pkg/metrics"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// DefaultFeeMultiplier is the number of days billed up front at checkout.
const DefaultFeeMultiplier = 10

type txRunner interface {
	WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error
}

// Service runs the rental lifecycle. Checkout and Return each touch the
// ledger and the movie stock inside one transaction.
type Service interface {
	Checkout(ctx context.Context, customerID, movieID uuid.UUID) (*models.Rental, error)
	Return(ctx context.Context, rentalID uuid.UUID, returnedAt time.Time) (*models.Rental, error)
	GetByID(ctx context.Context, id uuid.UUID) (*models.Rental, error)
	List(ctx context.Context) ([]models.Rental, error)
	Delete(ctx context.Context, id uuid.UUID) (*models.Rental, error)
}

// ServiceParams wires the rental service dependencies.
type ServiceParams struct {
	Tx            txRunner
	Rentals       Repository
	Movies        movies.Repository
	Customers     customers.Repository
	Clock         func() time.Time
	FeeMultiplier int
	Metrics       *metrics.RentalMetrics
	Logger        *logger.Logger
}

type service struct {
	tx            txRunner
	rentals       Repository
	movies        movies.Repository
	customers     customers.Repository
	now           func() time.Time
	feeMultiplier decimal.Decimal
	metrics       *metrics.RentalMetrics
	logg          *logger.Logger
}

// NewService builds the rental service.
func NewService(params ServiceParams) (Service, error) {
	if params.Tx == nil {
		return nil, fmt.Errorf("tx runner required")
	}
	if params.Rentals == nil {
		return nil, fmt.Errorf("rentals repository required")
	}
	if params.Movies == nil {
		return nil, fmt.Errorf("movies repository required")
	}
	if params.Customers == nil {
		return nil, fmt.Errorf("customers repository required")
	}
	if params.FeeMultiplier < 0 {
		return nil, fmt.Errorf("fee multiplier must not be negative")
	}
	multiplier := params.FeeMultiplier
	if multiplier == 0 {
		multiplier = DefaultFeeMultiplier
	}
	clock := params.Clock
	if clock == nil {
		clock = time.Now
	}
	logg := params.Logger
	if logg == nil {
		logg = logger.Nop()
	}
	return &service{
		tx:            params.Tx,
		rentals:       params.Rentals,
		movies:        params.Movies,
		customers:     params.Customers,
		now:           clock,
		feeMultiplier: decimal.NewFromInt(int64(multiplier)),
		metrics:       params.Metrics,
		logg:          logg,
	}, nil
}

func (s *service) Checkout(ctx context.Context, customerID, movieID uuid.UUID) (*models.Rental, error) {
	if customerID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "customer_id is required")
	}
	if movieID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "movie_id is required")
	}

	started := time.Now()
	var created *models.Rental
	err := s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		customer, err := s.customers.WithTx(tx).FindByID(ctx, customerID)
		if err != nil {
			if db.IsNotFound(err) {
				return pkgerrors.NotFound("customer", customerID)
			}
			return err
		}

		movieRepo := s.movies.WithTx(tx)
		taken, err := movieRepo.DecrementStock(ctx, movieID)
		if err != nil {
			return err
		}
		movie, err := movieRepo.FindByID(ctx, movieID)
		if err != nil {
			if db.IsNotFound(err) {
				return pkgerrors.NotFound("movie", movieID)
			}
			return err
		}
		if !taken {
			return pkgerrors.New(pkgerrors.CodeOutOfStock, "movie out of stock").
				WithDetails(map[string]any{"movie_id": movieID.String()})
		}

		rental := &models.Rental{
			Movie: models.RentalMovie{
				ID:    movie.ID,
				Title: movie.Title,
				// stock as it stood before this checkout took its copy
				NumberInStock:   movie.NumberInStock + 1,
				DailyRentalRate: movie.DailyRentalRate,
			},
			Customer: models.RentalCustomer{
				ID:    customer.ID,
				Name:  customer.Name,
				Phone: customer.Phone,
			},
			RentalFee: movie.DailyRentalRate.Mul(s.feeMultiplier),
			DateOut:   s.now().UTC(),
		}
		created, err = s.rentals.WithTx(tx).Create(ctx, rental)
		return err
	})
	err = classify(err, "checkout aborted")
	s.record(metrics.OpCheckout, started, err)
	if err != nil {
		return nil, err
	}

	ctx = s.logg.WithFields(ctx, map[string]any{
		"rental_id":   created.ID.String(),
		"movie_id":    movieID.String(),
		"customer_id": customerID.String(),
	})
	s.logg.Info(ctx, "rental.checkout.completed")
	return created, nil
}

func (s *service) Return(ctx context.Context, rentalID uuid.UUID, returnedAt time.Time) (*models.Rental, error) {
	if rentalID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "rental id is required")
	}
	if returnedAt.IsZero() {
		returnedAt = s.now()
	}
	returnedAt = returnedAt.UTC()

	started := time.Now()
	var closed *models.Rental
	err := s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		ledger := s.rentals.WithTx(tx)
		rental, err := ledger.FindByID(ctx, rentalID)
		if err != nil {
			if db.IsNotFound(err) {
				return pkgerrors.NotFound("rental", rentalID)
			}
			return err
		}
		if !rental.IsOpen() {
			return alreadyReturned(rentalID)
		}
		if returnedAt.Before(rental.DateOut) {
			return pkgerrors.New(pkgerrors.CodeValidation, "date_returned must not precede date_out")
		}

		// The conditional write is what decides a race between two returns;
		// the IsOpen check above only short-circuits the common case.
		ok, err := ledger.MarkReturned(ctx, rentalID, returnedAt)
		if err != nil {
			return err
		}
		if !ok {
			return alreadyReturned(rentalID)
		}

		restocked, err := s.movies.WithTx(tx).IncrementStock(ctx, rental.Movie.ID)
		if err != nil {
			return err
		}
		if !restocked {
			return pkgerrors.NotFound("movie", rental.Movie.ID)
		}

		rental.DateReturned = &returnedAt
		closed = rental
		return nil
	})
	err = classify(err, "return aborted")
	s.record(metrics.OpReturn, started, err)
	if err != nil {
		return nil, err
	}

	ctx = s.logg.WithFields(ctx, map[string]any{
		"rental_id": rentalID.String(),
		"movie_id":  closed.Movie.ID.String(),
	})
	s.logg.Info(ctx, "rental.return.completed")
	return closed, nil
}

func (s *service) GetByID(ctx context.Context, id uuid.UUID) (*models.Rental, error) {
	rental, err := s.rentals.FindByID(ctx, id)
	if err != nil {
		if db.IsNotFound(err) {
			return nil, pkgerrors.NotFound("rental", id)
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load rental")
	}
	return rental, nil
}

func (s *service) List(ctx context.Context) ([]models.Rental, error) {
	items, err := s.rentals.List(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "list rentals")
	}
	return items, nil
}

// Delete removes a ledger entry. It is an administrative correction and does
// not touch stock.
func (s *service) Delete(ctx context.Context, id uuid.UUID) (*models.Rental, error) {
	rental, err := s.rentals.Delete(ctx, id)
	if err != nil {
		if db.IsNotFound(err) {
			return nil, pkgerrors.NotFound("rental", id)
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "delete rental")
	}
	return rental, nil
}

func (s *service) record(op string, started time.Time, err error) {
	s.metrics.ObserveDuration(op, time.Since(started))
	outcome := "ok"
	if err != nil {
		outcome = string(pkgerrors.As(err).Code())
	}
	s.metrics.IncOutcome(op, outcome)
}

func alreadyReturned(id uuid.UUID) error {
	return pkgerrors.New(pkgerrors.CodeAlreadyReturned, "rental already returned").
		WithDetails(map[string]any{"rental_id": id.String()})
}

// classify passes business errors through and turns anything else that made
// the unit of work fail (driver errors, commit failures, timeouts) into a
// retryable abort.
func classify(err error, message string) error {
	if err == nil {
		return nil
	}
	if pkgerrors.As(err) != nil {
		return err
	}
	return pkgerrors.Wrap(pkgerrors.CodeTransactionAborted, err, message)
}
