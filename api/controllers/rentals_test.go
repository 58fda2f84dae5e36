package controllers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/angelmondragon/vidly-backend/internal/rentals"
	"github.com/angelmondragon/vidly-backend/pkg/db/models"
	pkgerrors "github.com/angelmondragon/vidly-backend/pkg/errors"
)

type stubRentalService struct {
	rentals.Service

	rental       *models.Rental
	err          error
	gotCustomer  uuid.UUID
	gotMovie     uuid.UUID
	gotRental    uuid.UUID
	gotReturned  time.Time
	returnCalled bool
}

func (s *stubRentalService) Checkout(ctx context.Context, customerID, movieID uuid.UUID) (*models.Rental, error) {
	s.gotCustomer, s.gotMovie = customerID, movieID
	return s.rental, s.err
}

func (s *stubRentalService) Return(ctx context.Context, rentalID uuid.UUID, returnedAt time.Time) (*models.Rental, error) {
	s.returnCalled = true
	s.gotRental, s.gotReturned = rentalID, returnedAt
	return s.rental, s.err
}

func (s *stubRentalService) GetByID(ctx context.Context, id uuid.UUID) (*models.Rental, error) {
	s.gotRental = id
	return s.rental, s.err
}

func (s *stubRentalService) List(ctx context.Context) ([]models.Rental, error) {
	if s.rental == nil {
		return nil, s.err
	}
	return []models.Rental{*s.rental}, s.err
}

func (s *stubRentalService) Delete(ctx context.Context, id uuid.UUID) (*models.Rental, error) {
	s.gotRental = id
	return s.rental, s.err
}

func sampleRental() *models.Rental {
	return &models.Rental{
		ID: uuid.New(),
		Movie: models.RentalMovie{
			ID:              uuid.New(),
			Title:           "Terminator",
			NumberInStock:   3,
			DailyRentalRate: decimal.NewFromInt(2),
		},
		Customer:  models.RentalCustomer{ID: uuid.New(), Name: "Jane Doe", Phone: "5551234"},
		RentalFee: decimal.NewFromInt(20),
		DateOut:   time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC),
	}
}

func TestRentalCheckoutCreated(t *testing.T) {
	rental := sampleRental()
	svc := &stubRentalService{rental: rental}
	customerID, movieID := uuid.New(), uuid.New()

	body := `{"customer_id":"` + customerID.String() + `","movie_id":"` + movieID.String() + `"}`
	rec := httptest.NewRecorder()
	RentalCheckout(svc, nil).ServeHTTP(rec, newRequest(http.MethodPost, "/api/v1/rentals", body, nil))

	require.Equal(t, http.StatusCreated, rec.Code)
	require.Equal(t, customerID, svc.gotCustomer)
	require.Equal(t, movieID, svc.gotMovie)

	dto := decodeData[rentals.RentalDTO](t, rec)
	require.Equal(t, rental.ID, dto.ID)
	require.Equal(t, rentals.StatusOpen, dto.Status)
	require.True(t, decimal.NewFromInt(20).Equal(dto.RentalFee))
}

func TestRentalCheckoutRequiresIDs(t *testing.T) {
	svc := &stubRentalService{}
	rec := httptest.NewRecorder()
	RentalCheckout(svc, nil).ServeHTTP(rec, newRequest(http.MethodPost, "/api/v1/rentals", `{"movie_id":"`+uuid.NewString()+`"}`, nil))

	require.Equal(t, http.StatusBadRequest, rec.Code)
	require.Equal(t, string(pkgerrors.CodeValidation), decodeAPIError(t, rec).Code)
	require.Equal(t, uuid.Nil, svc.gotMovie)
}

func TestRentalCheckoutOutOfStock(t *testing.T) {
	svc := &stubRentalService{err: pkgerrors.New(pkgerrors.CodeOutOfStock, "movie out of stock")}
	body := `{"customer_id":"` + uuid.NewString() + `","movie_id":"` + uuid.NewString() + `"}`
	rec := httptest.NewRecorder()
	RentalCheckout(svc, nil).ServeHTTP(rec, newRequest(http.MethodPost, "/api/v1/rentals", body, nil))

	require.Equal(t, http.StatusConflict, rec.Code)
	apiErr := decodeAPIError(t, rec)
	require.Equal(t, string(pkgerrors.CodeOutOfStock), apiErr.Code)
	require.False(t, apiErr.Retryable)
}

func TestRentalCheckoutAbortedIsRetryable(t *testing.T) {
	svc := &stubRentalService{err: pkgerrors.New(pkgerrors.CodeTransactionAborted, "checkout aborted")}
	body := `{"customer_id":"` + uuid.NewString() + `","movie_id":"` + uuid.NewString() + `"}`
	rec := httptest.NewRecorder()
	RentalCheckout(svc, nil).ServeHTTP(rec, newRequest(http.MethodPost, "/api/v1/rentals", body, nil))

	require.Equal(t, http.StatusServiceUnavailable, rec.Code)
	require.True(t, decodeAPIError(t, rec).Retryable)
}

func TestRentalReturnWithoutBody(t *testing.T) {
	rental := sampleRental()
	returned := rental.DateOut.Add(48 * time.Hour)
	rental.DateReturned = &returned
	svc := &stubRentalService{rental: rental}

	rec := httptest.NewRecorder()
	req := newRequest(http.MethodPatch, "/api/v1/rentals/"+rental.ID.String()+"/return", "", map[string]string{"id": rental.ID.String()})
	RentalReturn(svc, nil).ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, rental.ID, svc.gotRental)
	require.True(t, svc.gotReturned.IsZero())

	dto := decodeData[rentals.RentalDTO](t, rec)
	require.Equal(t, rentals.StatusClosed, dto.Status)
	require.NotNil(t, dto.DateReturned)
}

func TestRentalReturnPassesDate(t *testing.T) {
	svc := &stubRentalService{rental: sampleRental()}
	id := uuid.New()

	rec := httptest.NewRecorder()
	req := newRequest(http.MethodPatch, "/", `{"date_returned":"2024-03-05T10:00:00Z"}`, map[string]string{"id": id.String()})
	RentalReturn(svc, nil).ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	require.True(t, svc.gotReturned.Equal(time.Date(2024, 3, 5, 10, 0, 0, 0, time.UTC)))
}

func TestRentalReturnAlreadyReturned(t *testing.T) {
	svc := &stubRentalService{err: pkgerrors.New(pkgerrors.CodeAlreadyReturned, "rental already returned")}

	rec := httptest.NewRecorder()
	RentalReturn(svc, nil).ServeHTTP(rec, newRequest(http.MethodPatch, "/", "", map[string]string{"id": uuid.NewString()}))

	require.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	require.Equal(t, string(pkgerrors.CodeAlreadyReturned), decodeAPIError(t, rec).Code)
}

func TestRentalReturnRejectsInvalidID(t *testing.T) {
	svc := &stubRentalService{}

	rec := httptest.NewRecorder()
	RentalReturn(svc, nil).ServeHTTP(rec, newRequest(http.MethodPatch, "/", "", map[string]string{"id": "1234"}))

	require.Equal(t, http.StatusBadRequest, rec.Code)
	require.False(t, svc.returnCalled)
}

func TestRentalGetNotFound(t *testing.T) {
	id := uuid.New()
	svc := &stubRentalService{err: pkgerrors.NotFound("rental", id)}

	rec := httptest.NewRecorder()
	RentalGet(svc, nil).ServeHTTP(rec, newRequest(http.MethodGet, "/", "", map[string]string{"id": id.String()}))

	require.Equal(t, http.StatusNotFound, rec.Code)
	apiErr := decodeAPIError(t, rec)
	details := apiErr.Details.(map[string]any)
	require.Equal(t, "rental", details["entity"])
	require.Equal(t, id.String(), details["id"])
}

func TestRentalListAndDelete(t *testing.T) {
	rental := sampleRental()
	svc := &stubRentalService{rental: rental}

	rec := httptest.NewRecorder()
	RentalList(svc, nil).ServeHTTP(rec, newRequest(http.MethodGet, "/api/v1/rentals", "", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	require.Len(t, decodeData[[]rentals.RentalDTO](t, rec), 1)

	rec = httptest.NewRecorder()
	RentalDelete(svc, nil).ServeHTTP(rec, newRequest(http.MethodDelete, "/", "", map[string]string{"id": rental.ID.String()}))
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, rental.ID, svc.gotRental)
}

func TestRentalHandlersWithoutService(t *testing.T) {
	rec := httptest.NewRecorder()
	RentalList(nil, nil).ServeHTTP(rec, newRequest(http.MethodGet, "/", "", nil))
	require.Equal(t, http.StatusInternalServerError, rec.Code)
}
