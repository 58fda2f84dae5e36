package movies

import (
	"context"

	"github.com/angelmondragon/vidly-backend/pkg/db/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Repository persists movies and owns the stock counter writes used by the
// rental engine.
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	Create(ctx context.Context, movie *models.Movie) (*models.Movie, error)
	FindByID(ctx context.Context, id uuid.UUID) (*models.Movie, error)
	List(ctx context.Context) ([]models.Movie, error)
	Update(ctx context.Context, id uuid.UUID, updates map[string]any) (*models.Movie, error)
	Delete(ctx context.Context, id uuid.UUID) (*models.Movie, error)
	ToggleLiked(ctx context.Context, id uuid.UUID) (*models.Movie, error)
	DecrementStock(ctx context.Context, id uuid.UUID) (bool, error)
	IncrementStock(ctx context.Context, id uuid.UUID) (bool, error)
}

type repository struct {
	db *gorm.DB
}

// NewRepository binds a movies repository to the provided DB.
func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *gorm.DB) Repository {
	if tx == nil {
		return r
	}
	return &repository{db: tx}
}

func (r *repository) Create(ctx context.Context, movie *models.Movie) (*models.Movie, error) {
	if err := r.db.WithContext(ctx).Create(movie).Error; err != nil {
		return nil, err
	}
	return movie, nil
}

func (r *repository) FindByID(ctx context.Context, id uuid.UUID) (*models.Movie, error) {
	var movie models.Movie
	if err := r.db.WithContext(ctx).First(&movie, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &movie, nil
}

func (r *repository) List(ctx context.Context) ([]models.Movie, error) {
	var movies []models.Movie
	if err := r.db.WithContext(ctx).Order("title ASC").Find(&movies).Error; err != nil {
		return nil, err
	}
	return movies, nil
}

func (r *repository) Update(ctx context.Context, id uuid.UUID, updates map[string]any) (*models.Movie, error) {
	result := r.db.WithContext(ctx).
		Model(&models.Movie{}).
		Where("id = ?", id).
		Updates(updates)
	if result.Error != nil {
		return nil, result.Error
	}
	if result.RowsAffected == 0 {
		return nil, gorm.ErrRecordNotFound
	}
	return r.FindByID(ctx, id)
}

func (r *repository) Delete(ctx context.Context, id uuid.UUID) (*models.Movie, error) {
	movie, err := r.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := r.db.WithContext(ctx).Delete(&models.Movie{}, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return movie, nil
}

// ToggleLiked flips the liked flag in a single statement and returns the new row.
func (r *repository) ToggleLiked(ctx context.Context, id uuid.UUID) (*models.Movie, error) {
	result := r.db.WithContext(ctx).
		Model(&models.Movie{}).
		Where("id = ?", id).
		UpdateColumn("liked", gorm.Expr("NOT liked"))
	if result.Error != nil {
		return nil, result.Error
	}
	if result.RowsAffected == 0 {
		return nil, gorm.ErrRecordNotFound
	}
	return r.FindByID(ctx, id)
}

// DecrementStock takes one copy out of stock. It reports false, without
// error, when the movie is missing or already at zero; the guard and the
// write are one statement so concurrent callers cannot both take the last copy.
func (r *repository) DecrementStock(ctx context.Context, id uuid.UUID) (bool, error) {
	result := r.db.WithContext(ctx).
		Model(&models.Movie{}).
		Where("id = ? AND number_in_stock > 0", id).
		UpdateColumn("number_in_stock", gorm.Expr("number_in_stock - 1"))
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected == 1, nil
}

// IncrementStock puts one copy back. It reports false when the movie is missing.
func (r *repository) IncrementStock(ctx context.Context, id uuid.UUID) (bool, error) {
	result := r.db.WithContext(ctx).
		Model(&models.Movie{}).
		Where("id = ?", id).
		UpdateColumn("number_in_stock", gorm.Expr("number_in_stock + 1"))
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected == 1, nil
}
