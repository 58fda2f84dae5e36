package customers

import (
	"strings"

	"github.com/angelmondragon/vidly-backend/pkg/db/models"
	"github.com/google/uuid"
)

// CustomerDTO is the API shape of a customer.
type CustomerDTO struct {
	ID     uuid.UUID `json:"id"`
	Name   string    `json:"name"`
	Phone  string    `json:"phone"`
	IsGold bool      `json:"is_gold"`
}

// CustomerInput carries the writable customer fields.
type CustomerInput struct {
	Name   string `json:"name" validate:"required,min=5,max=50"`
	Phone  string `json:"phone" validate:"required,min=7,max=10"`
	IsGold bool   `json:"is_gold"`
}

func (i CustomerInput) normalize() CustomerInput {
	i.Name = strings.TrimSpace(i.Name)
	i.Phone = strings.TrimSpace(i.Phone)
	return i
}

func (i CustomerInput) toModel() *models.Customer {
	return &models.Customer{Name: i.Name, Phone: i.Phone, IsGold: i.IsGold}
}

func (i CustomerInput) toUpdates() map[string]any {
	return map[string]any{
		"name":    i.Name,
		"phone":   i.Phone,
		"is_gold": i.IsGold,
	}
}

func FromModel(c *models.Customer) *CustomerDTO {
	if c == nil {
		return nil
	}
	return &CustomerDTO{ID: c.ID, Name: c.Name, Phone: c.Phone, IsGold: c.IsGold}
}

func FromModels(items []models.Customer) []CustomerDTO {
	out := make([]CustomerDTO, 0, len(items))
	for i := range items {
		out = append(out, *FromModel(&items[i]))
	}
	return out
}
