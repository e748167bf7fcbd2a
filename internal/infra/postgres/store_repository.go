package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"store-locator-service/internal/domain"
)

// haversineExpr computes the great-circle distance in meters between the
// bound center point and a store row, in plain SQL so no geo extension is
// required. Positional args: center lat, center lng, center lat.
const haversineExpr = `(6371000 * acos(least(1.0, greatest(-1.0, ` +
	`cos(radians(?)) * cos(radians(latitude)) * cos(radians(longitude) - radians(?)) + ` +
	`sin(radians(?)) * sin(radians(latitude))))))`

// StoreRepository implements domain.StoreRepository using PostgreSQL.
type StoreRepository struct {
	db *gorm.DB
}

// NewStoreRepository creates a new PostgreSQL store repository.
func NewStoreRepository(db *gorm.DB) *StoreRepository {
	return &StoreRepository{db: db}
}

// Create inserts a new store.
func (r *StoreRepository) Create(ctx context.Context, store *domain.Store) error {
	model := storeModelFromDomain(store)
	if model.ID == "" {
		model.ID = uuid.NewString()
	}
	model.IsActive = true

	if err := r.db.WithContext(ctx).Create(model).Error; err != nil {
		return fmt.Errorf("creating store: %w", err)
	}

	store.ID = model.ID
	store.IsActive = model.IsActive
	store.CreatedAt = model.CreatedAt
	store.UpdatedAt = model.UpdatedAt

	return nil
}

// GetByID retrieves an active store by ID. Returns nil when absent.
func (r *StoreRepository) GetByID(ctx context.Context, id string) (*domain.Store, error) {
	var model StoreModel
	err := r.db.WithContext(ctx).
		Where("id = ? AND is_active = ?", id, true).
		First(&model).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}

		return nil, fmt.Errorf("getting store by id: %w", err)
	}

	return model.ToDomain(), nil
}

// Update persists store changes, keeping the geometric point in sync with the
// scalar coordinates.
func (r *StoreRepository) Update(ctx context.Context, store *domain.Store) error {
	updates := map[string]interface{}{
		"name":      store.Name,
		"type":      string(store.Type),
		"address":   store.Address,
		"latitude":  store.Latitude,
		"longitude": store.Longitude,
		"location":  Point{Lng: store.Longitude, Lat: store.Latitude},
		"rating":    store.Rating,
	}

	result := r.db.WithContext(ctx).
		Model(&StoreModel{}).
		Where("id = ? AND is_active = ?", store.ID, true).
		Updates(updates)
	if result.Error != nil {
		return fmt.Errorf("updating store: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return domain.ErrStoreNotFound
	}

	var model StoreModel
	if err := r.db.WithContext(ctx).Where("id = ?", store.ID).First(&model).Error; err != nil {
		return fmt.Errorf("reloading store: %w", err)
	}
	*store = *model.ToDomain()

	return nil
}

// Deactivate soft-deletes a store so it no longer appears in searches.
func (r *StoreRepository) Deactivate(ctx context.Context, id string) error {
	result := r.db.WithContext(ctx).
		Model(&StoreModel{}).
		Where("id = ? AND is_active = ?", id, true).
		Update("is_active", false)
	if result.Error != nil {
		return fmt.Errorf("deactivating store: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return domain.ErrStoreNotFound
	}

	return nil
}

// List returns a page of active stores and the total count.
func (r *StoreRepository) List(ctx context.Context, pageIndex, pageSize int) ([]domain.Store, int64, error) {
	var total int64
	err := r.db.WithContext(ctx).
		Model(&StoreModel{}).
		Where("is_active = ?", true).
		Count(&total).Error
	if err != nil {
		return nil, 0, fmt.Errorf("counting stores: %w", err)
	}

	var models []StoreModel
	err = r.db.WithContext(ctx).
		Where("is_active = ?", true).
		Order("created_at DESC").
		Offset((pageIndex - 1) * pageSize).
		Limit(pageSize).
		Find(&models).Error
	if err != nil {
		return nil, 0, fmt.Errorf("listing stores: %w", err)
	}

	stores := make([]domain.Store, len(models))
	for i, m := range models {
		stores[i] = *m.ToDomain()
	}

	return stores, total, nil
}

// buildRadiusQuery builds the WHERE clause for a radius search. A fresh chain
// per use keeps Count and Find statements independent.
func (r *StoreRepository) buildRadiusQuery(ctx context.Context, params domain.SearchStoresParams) *gorm.DB {
	query := r.db.WithContext(ctx).
		Model(&StoreModel{}).
		Where("is_active = ?", true).
		Where(haversineExpr+" <= ?",
			params.Latitude, params.Longitude, params.Latitude, params.RadiusMeters())

	if params.Name != "" {
		query = query.Where("name ILIKE ?", "%"+params.Name+"%")
	}
	if params.Type != "" {
		query = query.Where("type = ?", string(params.Type))
	}

	return query
}

// storeDistanceRow carries a store row plus its computed distance.
type storeDistanceRow struct {
	StoreModel
	DistanceMeters float64 `gorm:"column:distance_meters"`
}

// SearchByRadius finds active stores within the radius of the center, ordered
// by ascending distance, with the total matching count. Only active rows are
// eligible; optional name (substring) and type (exact) filters narrow the set.
func (r *StoreRepository) SearchByRadius(ctx context.Context, params domain.SearchStoresParams) ([]domain.StoreWithDistance, int64, error) {
	params.Validate()

	var total int64
	if err := r.buildRadiusQuery(ctx, params).Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("counting stores in radius: %w", err)
	}

	var rows []storeDistanceRow
	err := r.buildRadiusQuery(ctx, params).
		Select("stores.*, "+haversineExpr+" AS distance_meters",
			params.Latitude, params.Longitude, params.Latitude).
		Order("distance_meters ASC").
		Offset(params.Offset()).
		Limit(params.PageSize).
		Find(&rows).Error
	if err != nil {
		return nil, 0, fmt.Errorf("searching stores in radius: %w", err)
	}

	stores := make([]domain.StoreWithDistance, len(rows))
	for i, row := range rows {
		stores[i] = domain.StoreWithDistance{
			Store:          *row.StoreModel.ToDomain(),
			DistanceMeters: row.DistanceMeters,
		}
	}

	return stores, total, nil
}
