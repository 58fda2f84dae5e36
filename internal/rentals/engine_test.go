package rentals

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/angelmondragon/vidly-backend/internal/customers"
	"github.com/angelmondragon/vidly-backend/internal/movies"
	"github.com/angelmondragon/vidly-backend/pkg/db"
	"github.com/angelmondragon/vidly-backend/pkg/db/dbtest"
	"github.com/angelmondragon/vidly-backend/pkg/db/models"
	pkgerrors "github.com/angelmondragon/vidly-backend/pkg/errors"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type sqliteFixture struct {
	conn     *gorm.DB
	movie    *models.Movie
	customer *models.Customer
}

func newSQLiteFixture(t *testing.T, stock int) sqliteFixture {
	t.Helper()
	conn := dbtest.Open(t)

	movie := &models.Movie{
		Title:           "The Matrix",
		DailyRentalRate: decimal.RequireFromString("2.5"),
		NumberInStock:   stock,
	}
	require.NoError(t, conn.Create(movie).Error)
	customer := &models.Customer{Name: "Neo Anderson", Phone: "5550101"}
	require.NoError(t, conn.Create(customer).Error)

	return sqliteFixture{conn: conn, movie: movie, customer: customer}
}

func (f sqliteFixture) service(t *testing.T, ledger Repository) Service {
	t.Helper()
	if ledger == nil {
		ledger = NewRepository(f.conn)
	}
	svc, err := NewService(ServiceParams{
		Tx:        db.NewWithConn(f.conn, 5*time.Second),
		Rentals:   ledger,
		Movies:    movies.NewRepository(f.conn),
		Customers: customers.NewRepository(f.conn),
		Clock:     func() time.Time { return fixedNow },
	})
	require.NoError(t, err)
	return svc
}

func (f sqliteFixture) stock(t *testing.T) int {
	t.Helper()
	var movie models.Movie
	require.NoError(t, f.conn.First(&movie, "id = ?", f.movie.ID).Error)
	return movie.NumberInStock
}

func (f sqliteFixture) rentalCount(t *testing.T) int64 {
	t.Helper()
	var count int64
	require.NoError(t, f.conn.Model(&models.Rental{}).Count(&count).Error)
	return count
}

// failingLedger makes the second write of checkout fail after the stock
// decrement already ran inside the transaction.
type failingLedger struct {
	Repository
}

func (l failingLedger) WithTx(tx *gorm.DB) Repository {
	return failingLedger{Repository: l.Repository.WithTx(tx)}
}

func (l failingLedger) Create(ctx context.Context, rental *models.Rental) (*models.Rental, error) {
	return nil, errInjected
}

func TestSQLiteCheckoutAndReturn(t *testing.T) {
	f := newSQLiteFixture(t, 1)
	svc := f.service(t, nil)
	ctx := context.Background()

	rental, err := svc.Checkout(ctx, f.customer.ID, f.movie.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, f.stock(t))
	assert.True(t, decimal.RequireFromString("25").Equal(rental.RentalFee))

	stored, err := svc.GetByID(ctx, rental.ID)
	require.NoError(t, err)
	assert.True(t, stored.IsOpen())
	assert.Equal(t, "The Matrix", stored.Movie.Title)
	assert.Equal(t, 1, stored.Movie.NumberInStock)
	assert.Equal(t, "Neo Anderson", stored.Customer.Name)

	_, err = svc.Checkout(ctx, f.customer.ID, f.movie.ID)
	assert.True(t, pkgerrors.IsCode(err, pkgerrors.CodeOutOfStock))
	assert.Equal(t, int64(1), f.rentalCount(t))

	_, err = svc.Return(ctx, rental.ID, fixedNow.Add(48*time.Hour))
	require.NoError(t, err)
	assert.Equal(t, 1, f.stock(t))

	_, err = svc.Return(ctx, rental.ID, fixedNow.Add(48*time.Hour))
	assert.True(t, pkgerrors.IsCode(err, pkgerrors.CodeAlreadyReturned))
	assert.Equal(t, 1, f.stock(t))

	stored, err = svc.GetByID(ctx, rental.ID)
	require.NoError(t, err)
	assert.False(t, stored.IsOpen())
}

func TestSQLiteCheckoutLedgerFailureLeavesNothing(t *testing.T) {
	f := newSQLiteFixture(t, 3)
	svc := f.service(t, failingLedger{Repository: NewRepository(f.conn)})

	_, err := svc.Checkout(context.Background(), f.customer.ID, f.movie.ID)
	require.Error(t, err)
	assert.True(t, pkgerrors.IsCode(err, pkgerrors.CodeTransactionAborted))
	assert.Equal(t, 3, f.stock(t))
	assert.Equal(t, int64(0), f.rentalCount(t))
}

func TestSQLiteConcurrentCheckoutsLastCopy(t *testing.T) {
	f := newSQLiteFixture(t, 1)
	svc := f.service(t, nil)

	const workers = 5
	var (
		wg         sync.WaitGroup
		mu         sync.Mutex
		successes  int
		outOfStock int
	)
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := svc.Checkout(context.Background(), f.customer.ID, f.movie.ID)
			mu.Lock()
			defer mu.Unlock()
			if err == nil {
				successes++
			} else if pkgerrors.IsCode(err, pkgerrors.CodeOutOfStock) {
				outOfStock++
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 1, successes)
	assert.Equal(t, workers-1, outOfStock)
	assert.Equal(t, 0, f.stock(t))
	assert.Equal(t, int64(1), f.rentalCount(t))
}

func TestSQLiteReturnMissingRental(t *testing.T) {
	f := newSQLiteFixture(t, 1)
	svc := f.service(t, nil)

	_, err := svc.Return(context.Background(), uuid.New(), fixedNow)
	assert.True(t, pkgerrors.IsCode(err, pkgerrors.CodeNotFound))
	assert.Equal(t, 1, f.stock(t))
}

func TestSQLiteListNewestFirst(t *testing.T) {
	f := newSQLiteFixture(t, 0)
	ledger := NewRepository(f.conn)
	ctx := context.Background()

	older := &models.Rental{
		Movie:     models.RentalMovie{ID: f.movie.ID, Title: f.movie.Title, DailyRentalRate: f.movie.DailyRentalRate},
		Customer:  models.RentalCustomer{ID: f.customer.ID, Name: f.customer.Name, Phone: f.customer.Phone},
		RentalFee: decimal.NewFromInt(25),
		DateOut:   fixedNow.Add(-24 * time.Hour),
	}
	newer := &models.Rental{
		Movie:     older.Movie,
		Customer:  older.Customer,
		RentalFee: decimal.NewFromInt(25),
		DateOut:   fixedNow,
	}
	_, err := ledger.Create(ctx, older)
	require.NoError(t, err)
	_, err = ledger.Create(ctx, newer)
	require.NoError(t, err)

	list, err := ledger.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, newer.ID, list[0].ID)
	assert.Equal(t, older.ID, list[1].ID)
}
