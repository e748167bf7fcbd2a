package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"store-locator-service/internal/domain"
)

// LocationRepository implements domain.LocationRepository using PostgreSQL.
// Callers are expected to hold the per-user distributed lock around
// Insert/UpdateByUser; the unique index on user_id is the backstop.
type LocationRepository struct {
	db *gorm.DB
}

// NewLocationRepository creates a new PostgreSQL location repository.
func NewLocationRepository(db *gorm.DB) *LocationRepository {
	return &LocationRepository{db: db}
}

// GetByUser retrieves the location row for a user. Returns nil when absent.
func (r *LocationRepository) GetByUser(ctx context.Context, userID string) (*domain.UserLocation, error) {
	var model UserLocationModel
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		First(&model).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}

		return nil, fmt.Errorf("getting location by user: %w", err)
	}

	return model.ToDomain(), nil
}

// Insert creates the location row for a user without one.
func (r *LocationRepository) Insert(ctx context.Context, userID string, lat, lon float64) (*domain.UserLocation, error) {
	model := &UserLocationModel{
		ID:        uuid.NewString(),
		UserID:    userID,
		Latitude:  lat,
		Longitude: lon,
		Location:  Point{Lng: lon, Lat: lat},
	}

	if err := r.db.WithContext(ctx).Create(model).Error; err != nil {
		return nil, fmt.Errorf("inserting location: %w", err)
	}

	return model.ToDomain(), nil
}

// UpdateByUser overwrites the existing location row. The database refreshes
// updated_at; the fresh row is reloaded so the caller sees the stored values.
func (r *LocationRepository) UpdateByUser(ctx context.Context, userID string, lat, lon float64) (*domain.UserLocation, error) {
	result := r.db.WithContext(ctx).
		Model(&UserLocationModel{}).
		Where("user_id = ?", userID).
		Updates(map[string]interface{}{
			"latitude":  lat,
			"longitude": lon,
			"location":  Point{Lng: lon, Lat: lat},
		})
	if result.Error != nil {
		return nil, fmt.Errorf("updating location: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return nil, domain.ErrLocationNotFound
	}

	var model UserLocationModel
	if err := r.db.WithContext(ctx).Where("user_id = ?", userID).First(&model).Error; err != nil {
		return nil, fmt.Errorf("reloading location: %w", err)
	}

	return model.ToDomain(), nil
}
