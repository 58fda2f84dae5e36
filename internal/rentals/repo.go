package rentals

import (
	"context"
	"time"

	"github.com/angelmondragon/vidly-backend/pkg/db/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Repository is the rental ledger.
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	Create(ctx context.Context, rental *models.Rental) (*models.Rental, error)
	FindByID(ctx context.Context, id uuid.UUID) (*models.Rental, error)
	List(ctx context.Context) ([]models.Rental, error)
	MarkReturned(ctx context.Context, id uuid.UUID, at time.Time) (bool, error)
	Delete(ctx context.Context, id uuid.UUID) (*models.Rental, error)
}

type repository struct {
	db *gorm.DB
}

// NewRepository binds the rental ledger to the provided DB.
func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *gorm.DB) Repository {
	if tx == nil {
		return r
	}
	return &repository{db: tx}
}

func (r *repository) Create(ctx context.Context, rental *models.Rental) (*models.Rental, error) {
	if err := r.db.WithContext(ctx).Create(rental).Error; err != nil {
		return nil, err
	}
	return rental, nil
}

func (r *repository) FindByID(ctx context.Context, id uuid.UUID) (*models.Rental, error) {
	var rental models.Rental
	if err := r.db.WithContext(ctx).First(&rental, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &rental, nil
}

func (r *repository) List(ctx context.Context) ([]models.Rental, error) {
	var rentals []models.Rental
	if err := r.db.WithContext(ctx).Order("date_out DESC, id DESC").Find(&rentals).Error; err != nil {
		return nil, err
	}
	return rentals, nil
}

// MarkReturned closes an open rental. It reports false when the rental is
// missing or was already closed, so the open check and the write cannot be
// split by a concurrent return.
func (r *repository) MarkReturned(ctx context.Context, id uuid.UUID, at time.Time) (bool, error) {
	result := r.db.WithContext(ctx).
		Model(&models.Rental{}).
		Where("id = ? AND date_returned IS NULL", id).
		UpdateColumn("date_returned", at)
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected == 1, nil
}

func (r *repository) Delete(ctx context.Context, id uuid.UUID) (*models.Rental, error) {
	rental, err := r.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := r.db.WithContext(ctx).Delete(&models.Rental{}, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return rental, nil
}
