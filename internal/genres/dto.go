package genres

import (
	"strings"

	"github.com/angelmondragon/vidly-backend/pkg/db/models"
	"github.com/google/uuid"
)

// GenreDTO is the API shape of a genre.
type GenreDTO struct {
	ID   uuid.UUID `json:"id"`
	Name string    `json:"name"`
}

// GenreInput carries the writable genre fields.
type GenreInput struct {
	Name string `json:"name" validate:"required,min=5,max=50"`
}

func (i GenreInput) normalizedName() string {
	return strings.TrimSpace(i.Name)
}

func FromModel(g *models.Genre) *GenreDTO {
	if g == nil {
		return nil
	}
	return &GenreDTO{ID: g.ID, Name: g.Name}
}

func FromModels(items []models.Genre) []GenreDTO {
	out := make([]GenreDTO, 0, len(items))
	for i := range items {
		out = append(out, *FromModel(&items[i]))
	}
	return out
}
