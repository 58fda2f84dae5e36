package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Genre classifies movies.
type Genre struct {
	ID        uuid.UUID `gorm:"column:id;type:uuid;primaryKey"`
	Name      string    `gorm:"column:name;not null"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime"`
}

func (g *Genre) BeforeCreate(*gorm.DB) error {
	ensureID(&g.ID)
	return nil
}
