package service

import (
	"context"

	"go.uber.org/zap"

	"store-locator-service/internal/domain"
)

// FavoriteService manages a user's bookmarked stores.
type FavoriteService struct {
	repo   domain.FavoriteRepository
	stores domain.StoreRepository
	logger *zap.Logger
}

// NewFavoriteService creates a new FavoriteService.
func NewFavoriteService(repo domain.FavoriteRepository, stores domain.StoreRepository, logger *zap.Logger) *FavoriteService {
	return &FavoriteService{
		repo:   repo,
		stores: stores,
		logger: logger,
	}
}

// Add bookmarks a store for the user. The store must exist and be active.
func (s *FavoriteService) Add(ctx context.Context, userID, storeID string) (*domain.Favorite, error) {
	store, err := s.stores.GetByID(ctx, storeID)
	if err != nil {
		return nil, err
	}
	if store == nil {
		return nil, domain.ErrStoreNotFound
	}

	fav := &domain.Favorite{
		UserID:  userID,
		StoreID: storeID,
	}
	if err := s.repo.Create(ctx, fav); err != nil {
		return nil, err
	}
	fav.Store = store

	s.logger.Debug("favorite added",
		zap.String("user_id", userID),
		zap.String("store_id", storeID),
	)

	return fav, nil
}

// List returns a page of the user's favorites.
func (s *FavoriteService) List(ctx context.Context, userID string, pageIndex, pageSize int) (*domain.FavoriteListResult, error) {
	if pageIndex < 1 {
		pageIndex = 1
	}
	if pageSize < 1 || pageSize > 100 {
		pageSize = 10
	}

	return s.repo.ListByUser(ctx, userID, pageIndex, pageSize)
}

// Remove deletes a bookmark.
func (s *FavoriteService) Remove(ctx context.Context, userID, storeID string) error {
	if err := s.repo.Delete(ctx, userID, storeID); err != nil {
		return err
	}

	s.logger.Debug("favorite removed",
		zap.String("user_id", userID),
		zap.String("store_id", storeID),
	)

	return nil
}
