package genres

import (
	"context"

	"github.com/angelmondragon/vidly-backend/pkg/db/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Repository persists genres.
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	Create(ctx context.Context, genre *models.Genre) (*models.Genre, error)
	FindByID(ctx context.Context, id uuid.UUID) (*models.Genre, error)
	List(ctx context.Context) ([]models.Genre, error)
	UpdateName(ctx context.Context, id uuid.UUID, name string) (*models.Genre, error)
	Delete(ctx context.Context, id uuid.UUID) (*models.Genre, error)
}

type repository struct {
	db *gorm.DB
}

// NewRepository binds a genres repository to the provided DB.
func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *gorm.DB) Repository {
	if tx == nil {
		return r
	}
	return &repository{db: tx}
}

func (r *repository) Create(ctx context.Context, genre *models.Genre) (*models.Genre, error) {
	if err := r.db.WithContext(ctx).Create(genre).Error; err != nil {
		return nil, err
	}
	return genre, nil
}

func (r *repository) FindByID(ctx context.Context, id uuid.UUID) (*models.Genre, error) {
	var genre models.Genre
	if err := r.db.WithContext(ctx).First(&genre, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &genre, nil
}

func (r *repository) List(ctx context.Context) ([]models.Genre, error) {
	var genres []models.Genre
	if err := r.db.WithContext(ctx).Order("name ASC").Find(&genres).Error; err != nil {
		return nil, err
	}
	return genres, nil
}

func (r *repository) UpdateName(ctx context.Context, id uuid.UUID, name string) (*models.Genre, error) {
	result := r.db.WithContext(ctx).
		Model(&models.Genre{}).
		Where("id = ?", id).
		Update("name", name)
	if result.Error != nil {
		return nil, result.Error
	}
	if result.RowsAffected == 0 {
		return nil, gorm.ErrRecordNotFound
	}
	return r.FindByID(ctx, id)
}

// Delete removes the genre and returns the row as it was before deletion.
func (r *repository) Delete(ctx context.Context, id uuid.UUID) (*models.Genre, error) {
	genre, err := r.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := r.db.WithContext(ctx).Delete(&models.Genre{}, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return genre, nil
}
