package movies

import (
	"strings"

	"github.com/angelmondragon/vidly-backend/pkg/db/models"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// GenreRef is the genre snapshot carried by a movie.
type GenreRef struct {
	ID   *uuid.UUID `json:"id,omitempty"`
	Name string     `json:"name"`
}

// MovieDTO is the API shape of a movie.
type MovieDTO struct {
	ID              uuid.UUID       `json:"id"`
	Title           string          `json:"title"`
	Genre           GenreRef        `json:"genre"`
	DailyRentalRate decimal.Decimal `json:"daily_rental_rate"`
	NumberInStock   int             `json:"number_in_stock"`
	Liked           bool            `json:"liked"`
}

// MovieInput carries the writable movie fields.
type MovieInput struct {
	Title           string          `json:"title" validate:"required,min=2,max=50"`
	GenreID         uuid.UUID       `json:"genre_id" validate:"required"`
	DailyRentalRate decimal.Decimal `json:"daily_rental_rate"`
	NumberInStock   int             `json:"number_in_stock" validate:"min=0"`
	Liked           bool            `json:"liked"`
}

func (i MovieInput) normalize() MovieInput {
	i.Title = strings.TrimSpace(i.Title)
	return i
}

func (i MovieInput) toModel(genre *models.Genre) *models.Movie {
	return &models.Movie{
		Title:           i.Title,
		Genre:           snapshotOf(genre),
		DailyRentalRate: i.DailyRentalRate,
		NumberInStock:   i.NumberInStock,
		Liked:           i.Liked,
	}
}

// toUpdates leaves number_in_stock alone; after create only rentals move it.
func (i MovieInput) toUpdates(genre *models.Genre) map[string]any {
	return map[string]any{
		"title":             i.Title,
		"genre_id":          genre.ID,
		"genre_name":        genre.Name,
		"daily_rental_rate": i.DailyRentalRate,
		"liked":             i.Liked,
	}
}

func snapshotOf(genre *models.Genre) models.GenreSnapshot {
	id := genre.ID
	return models.GenreSnapshot{ID: &id, Name: genre.Name}
}

func FromModel(m *models.Movie) *MovieDTO {
	if m == nil {
		return nil
	}
	return &MovieDTO{
		ID:              m.ID,
		Title:           m.Title,
		Genre:           GenreRef{ID: m.Genre.ID, Name: m.Genre.Name},
		DailyRentalRate: m.DailyRentalRate,
		NumberInStock:   m.NumberInStock,
		Liked:           m.Liked,
	}
}

func FromModels(items []models.Movie) []MovieDTO {
	out := make([]MovieDTO, 0, len(items))
	for i := range items {
		out = append(out, *FromModel(&items[i]))
	}
	return out
}
