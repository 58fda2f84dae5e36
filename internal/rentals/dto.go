package rentals

import (
	"time"

	"github.com/angelmondragon/vidly-backend/pkg/db/models"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// CheckoutRequest is the body accepted by POST /rentals.
type CheckoutRequest struct {
	CustomerID uuid.UUID `json:"customer_id" validate:"required"`
	MovieID    uuid.UUID `json:"movie_id" validate:"required"`
}

// ReturnRequest is the body accepted by PATCH /rentals/{id}/return. A missing
// date means "now".
type ReturnRequest struct {
	DateReturned *time.Time `json:"date_returned"`
}

// RentalMovieDTO is the movie snapshot stored on a rental.
type RentalMovieDTO struct {
	ID              uuid.UUID       `json:"id"`
	Title           string          `json:"title"`
	NumberInStock   int             `json:"number_in_stock"`
	DailyRentalRate decimal.Decimal `json:"daily_rental_rate"`
}

// RentalCustomerDTO is the customer snapshot stored on a rental.
type RentalCustomerDTO struct {
	ID    uuid.UUID `json:"id"`
	Name  string    `json:"name"`
	Phone string    `json:"phone"`
}

// RentalDTO is the API shape of a rental.
type RentalDTO struct {
	ID           uuid.UUID         `json:"id"`
	Movie        RentalMovieDTO    `json:"movie"`
	Customer     RentalCustomerDTO `json:"customer"`
	RentalFee    decimal.Decimal   `json:"rental_fee"`
	DateOut      time.Time         `json:"date_out"`
	DateReturned *time.Time        `json:"date_returned,omitempty"`
	Status       string            `json:"status"`
}

const (
	StatusOpen   = "open"
	StatusClosed = "closed"
)

func FromModel(r *models.Rental) *RentalDTO {
	if r == nil {
		return nil
	}
	status := StatusClosed
	if r.IsOpen() {
		status = StatusOpen
	}
	return &RentalDTO{
		ID: r.ID,
		Movie: RentalMovieDTO{
			ID:              r.Movie.ID,
			Title:           r.Movie.Title,
			NumberInStock:   r.Movie.NumberInStock,
			DailyRentalRate: r.Movie.DailyRentalRate,
		},
		Customer: RentalCustomerDTO{
			ID:    r.Customer.ID,
			Name:  r.Customer.Name,
			Phone: r.Customer.Phone,
		},
		RentalFee:    r.RentalFee,
		DateOut:      r.DateOut,
		DateReturned: r.DateReturned,
		Status:       status,
	}
}

func FromModels(items []models.Rental) []RentalDTO {
	out := make([]RentalDTO, 0, len(items))
	for i := range items {
		out = append(out, *FromModel(&items[i]))
	}
	return out
}
