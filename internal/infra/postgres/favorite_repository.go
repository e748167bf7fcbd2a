package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"store-locator-service/internal/domain"
)

// FavoriteRepository implements domain.FavoriteRepository using PostgreSQL.
type FavoriteRepository struct {
	db *gorm.DB
}

// NewFavoriteRepository creates a new PostgreSQL favorite repository.
func NewFavoriteRepository(db *gorm.DB) *FavoriteRepository {
	return &FavoriteRepository{db: db}
}

// Create inserts a favorite. The unique index on (user_id, store_id) turns
// duplicates into ErrFavoriteExists.
func (r *FavoriteRepository) Create(ctx context.Context, fav *domain.Favorite) error {
	model := &FavoriteModel{
		ID:      uuid.NewString(),
		UserID:  fav.UserID,
		StoreID: fav.StoreID,
	}

	err := r.db.WithContext(ctx).Omit("Store").Create(model).Error
	if err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return domain.ErrFavoriteExists
		}

		return fmt.Errorf("creating favorite: %w", err)
	}

	fav.ID = model.ID
	fav.CreatedAt = model.CreatedAt

	return nil
}

// ListByUser returns a page of a user's favorites, newest first, with the
// store rows preloaded.
func (r *FavoriteRepository) ListByUser(ctx context.Context, userID string, pageIndex, pageSize int) (*domain.FavoriteListResult, error) {
	base := r.db.WithContext(ctx).Model(&FavoriteModel{}).Where("user_id = ?", userID)

	var total int64
	if err := base.Count(&total).Error; err != nil {
		return nil, fmt.Errorf("counting favorites: %w", err)
	}

	var models []FavoriteModel
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Preload("Store").
		Order("created_at DESC").
		Offset((pageIndex - 1) * pageSize).
		Limit(pageSize).
		Find(&models).Error
	if err != nil {
		return nil, fmt.Errorf("listing favorites: %w", err)
	}

	favorites := make([]domain.Favorite, len(models))
	for i, m := range models {
		favorites[i] = *m.ToDomain()
	}

	return &domain.FavoriteListResult{
		Favorites: favorites,
		Total:     total,
		PageIndex: pageIndex,
		PageSize:  pageSize,
	}, nil
}

// Delete removes a favorite by (user, store).
func (r *FavoriteRepository) Delete(ctx context.Context, userID, storeID string) error {
	result := r.db.WithContext(ctx).
		Where("user_id = ? AND store_id = ?", userID, storeID).
		Delete(&FavoriteModel{})
	if result.Error != nil {
		return fmt.Errorf("deleting favorite: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return domain.ErrFavoriteNotFound
	}

	return nil
}
