package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"go.uber.org/zap"

	"store-locator-service/internal/domain"
)

const searchCachePrefix = "stores:search:"

// StoreService handles store CRUD and cached radius search.
type StoreService struct {
	repo        domain.StoreRepository
	locationSvc *LocationService
	cache       domain.Cache
	cacheTTL    time.Duration
	logger      *zap.Logger
}

// NewStoreService creates a new StoreService. cache may be nil to disable
// search-result caching.
func NewStoreService(
	repo domain.StoreRepository,
	locationSvc *LocationService,
	cache domain.Cache,
	cacheTTL time.Duration,
	logger *zap.Logger,
) *StoreService {
	if cacheTTL <= 0 {
		cacheTTL = 5 * time.Minute
	}

	return &StoreService{
		repo:        repo,
		locationSvc: locationSvc,
		cache:       cache,
		cacheTTL:    cacheTTL,
		logger:      logger,
	}
}

// Search finds active stores within a radius, ordered by ascending distance.
// Results are cached under a fingerprint of the canonicalized parameters;
// empty pages are cached too, so a repeat of a zero-hit query is still a
// cache hit. Store mutations do not invalidate entries; a result may be up
// to cacheTTL stale.
func (s *StoreService) Search(ctx context.Context, params domain.SearchStoresParams) (*domain.SearchStoresResult, error) {
	params.Validate()
	key := searchFingerprint(params)

	if cached := s.cachedResult(ctx, key); cached != nil {
		return cached, nil
	}

	stores, total, err := s.repo.SearchByRadius(ctx, params)
	if err != nil {
		s.logger.Error("store search failed", zap.Error(err))
		return nil, fmt.Errorf("searching stores: %w", err)
	}

	result := domain.NewSearchStoresResult(stores, total, params)
	s.cacheResult(ctx, key, result)

	s.logger.Debug("store search completed",
		zap.Int64("total", total),
		zap.Int("count", len(stores)),
		zap.Float64("radius_km", params.RadiusKm),
	)

	return result, nil
}

// SearchFromUserLocation runs Search centered on the caller's current
// location. Propagates domain.ErrLocationNotFound when the user has no
// location yet.
func (s *StoreService) SearchFromUserLocation(ctx context.Context, userID string, params domain.SearchStoresParams) (*domain.SearchStoresResult, error) {
	location, err := s.locationSvc.GetLocation(ctx, userID)
	if err != nil {
		return nil, err
	}

	params.Latitude = location.Latitude
	params.Longitude = location.Longitude

	return s.Search(ctx, params)
}

// Create inserts a new store.
func (s *StoreService) Create(ctx context.Context, store *domain.Store) error {
	if err := s.repo.Create(ctx, store); err != nil {
		s.logger.Error("store create failed", zap.Error(err))
		return err
	}

	s.logger.Info("store created",
		zap.String("store_id", store.ID),
		zap.String("name", store.Name),
	)

	return nil
}

// GetByID retrieves an active store.
func (s *StoreService) GetByID(ctx context.Context, id string) (*domain.Store, error) {
	store, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if store == nil {
		return nil, domain.ErrStoreNotFound
	}

	return store, nil
}

// Update persists store changes.
func (s *StoreService) Update(ctx context.Context, store *domain.Store) error {
	if err := s.repo.Update(ctx, store); err != nil {
		return err
	}

	s.logger.Info("store updated", zap.String("store_id", store.ID))

	return nil
}

// Deactivate soft-deletes a store.
func (s *StoreService) Deactivate(ctx context.Context, id string) error {
	if err := s.repo.Deactivate(ctx, id); err != nil {
		return err
	}

	s.logger.Info("store deactivated", zap.String("store_id", id))

	return nil
}

// List returns a page of active stores.
func (s *StoreService) List(ctx context.Context, pageIndex, pageSize int) ([]domain.Store, int64, error) {
	return s.repo.List(ctx, pageIndex, pageSize)
}

// searchFingerprint derives the cache key for a search. Coordinates are
// formatted to 6 decimal places (~11 cm), so queries differing only in
// floating-point noise beyond that collide, while any change to radius,
// filters or pagination yields a distinct key.
func searchFingerprint(p domain.SearchStoresParams) string {
	return fmt.Sprintf("%slat:%.6f|lng:%.6f|r:%g|n:%s|t:%s|pi:%d|ps:%d",
		searchCachePrefix,
		p.Latitude, p.Longitude, p.RadiusKm, p.Name, p.Type, p.PageIndex, p.PageSize,
	)
}

// cachedResult reads the cache, treating every failure as a miss.
func (s *StoreService) cachedResult(ctx context.Context, key string) *domain.SearchStoresResult {
	if s.cache == nil {
		return nil
	}

	data, err := s.cache.Get(ctx, key)
	if err != nil {
		s.logger.Warn("search cache read failed, falling back to database",
			zap.Error(err),
		)
		return nil
	}
	if data == nil {
		return nil
	}

	var result domain.SearchStoresResult
	if err := json.Unmarshal(data, &result); err != nil {
		s.logger.Warn("corrupt cached search result, falling back to database",
			zap.Error(err),
		)
		return nil
	}

	s.logger.Debug("search cache hit", zap.String("key", key))

	return &result
}

// cacheResult writes the cache entry, swallowing errors.
func (s *StoreService) cacheResult(ctx context.Context, key string, result *domain.SearchStoresResult) {
	if s.cache == nil {
		return
	}

	data, err := json.Marshal(result)
	if err != nil {
		s.logger.Warn("failed to encode search result for cache", zap.Error(err))
		return
	}

	if err := s.cache.Set(ctx, key, data, s.cacheTTL); err != nil {
		s.logger.Warn("failed to cache search result", zap.Error(err))
	}
}
