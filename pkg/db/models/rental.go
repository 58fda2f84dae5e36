package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// RentalMovie is the movie as it looked when the rental was checked out.
type RentalMovie struct {
	ID              uuid.UUID       `gorm:"column:id;type:uuid;not null"`
	Title           string          `gorm:"column:title;not null"`
	NumberInStock   int             `gorm:"column:number_in_stock;not null"`
	DailyRentalRate decimal.Decimal `gorm:"column:daily_rental_rate;type:numeric(10,2);not null"`
}

// RentalCustomer is the customer as they looked at checkout.
type RentalCustomer struct {
	ID    uuid.UUID `gorm:"column:id;type:uuid;not null"`
	Name  string    `gorm:"column:name;not null"`
	Phone string    `gorm:"column:phone;not null"`
}

// Rental is a ledger entry. It is written once by checkout and mutated once by
// return (DateReturned); the snapshots are never refreshed.
type Rental struct {
	ID           uuid.UUID       `gorm:"column:id;type:uuid;primaryKey"`
	Movie        RentalMovie     `gorm:"embedded;embeddedPrefix:movie_"`
	Customer     RentalCustomer  `gorm:"embedded;embeddedPrefix:customer_"`
	RentalFee    decimal.Decimal `gorm:"column:rental_fee;type:numeric(12,2);not null"`
	DateOut      time.Time       `gorm:"column:date_out;not null"`
	DateReturned *time.Time      `gorm:"column:date_returned"`
}

func (r *Rental) BeforeCreate(*gorm.DB) error {
	ensureID(&r.ID)
	return nil
}

// IsOpen reports whether the movie is still out.
func (r Rental) IsOpen() bool {
	return r.DateReturned == nil
}
