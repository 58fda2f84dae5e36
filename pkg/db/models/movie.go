package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// GenreSnapshot is the genre copy embedded into a movie row.
type GenreSnapshot struct {
	ID   *uuid.UUID `gorm:"column:id;type:uuid"`
	Name string     `gorm:"column:name"`
}

// Movie is the inventory record: identity plus the available stock counter.
// NumberInStock only moves through the rental engine's conditional updates.
type Movie struct {
	ID              uuid.UUID       `gorm:"column:id;type:uuid;primaryKey"`
	Title           string          `gorm:"column:title;not null"`
	Genre           GenreSnapshot   `gorm:"embedded;embeddedPrefix:genre_"`
	DailyRentalRate decimal.Decimal `gorm:"column:daily_rental_rate;type:numeric(10,2);not null"`
	NumberInStock   int             `gorm:"column:number_in_stock;not null;default:0;check:chk_movies_number_in_stock,number_in_stock >= 0"`
	Liked           bool            `gorm:"column:liked;not null;default:false"`
	CreatedAt       time.Time       `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt       time.Time       `gorm:"column:updated_at;autoUpdateTime"`
}

func (m *Movie) BeforeCreate(*gorm.DB) error {
	ensureID(&m.ID)
	return nil
}
