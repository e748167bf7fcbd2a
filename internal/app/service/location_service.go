// Package service provides application use cases.
package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"store-locator-service/internal/domain"
	"store-locator-service/pkg/locker"
)

const (
	locationCachePrefix = "user:location:"
	locationLockPrefix  = "lock:user:location:"
)

// LocationService manages per-user current locations with a read-through/
// write-through Redis cache and a distributed lock serializing concurrent
// updates for the same user.
type LocationService struct {
	repo     domain.LocationRepository
	cache    domain.Cache
	locker   locker.DistributedLocker
	logger   *zap.Logger
	cacheTTL time.Duration
	lockOpts locker.Options
}

// NewLocationService creates a new LocationService.
func NewLocationService(
	repo domain.LocationRepository,
	cache domain.Cache,
	distLocker locker.DistributedLocker,
	cacheTTL time.Duration,
	lockOpts locker.Options,
	logger *zap.Logger,
) *LocationService {
	if cacheTTL <= 0 {
		cacheTTL = 5 * time.Minute
	}

	return &LocationService{
		repo:     repo,
		cache:    cache,
		locker:   distLocker,
		logger:   logger,
		cacheTTL: cacheTTL,
		lockOpts: lockOpts,
	}
}

// UpdateLocation upserts the user's durable location row under the per-user
// distributed lock, then refreshes the cache. Two concurrent updates for the
// same user are serialized; updates for different users never contend. When
// all lock attempts fail the operation maps to domain.ErrConcurrentUpdate so
// callers can tell "retry later" apart from a database failure.
func (s *LocationService) UpdateLocation(ctx context.Context, userID string, lat, lon float64) (*domain.UserLocation, error) {
	lockKey := locationLockPrefix + userID

	var location *domain.UserLocation
	err := locker.WithLock(ctx, s.locker, lockKey, s.lockOpts, func(ctx context.Context) error {
		existing, err := s.repo.GetByUser(ctx, userID)
		if err != nil {
			return err
		}

		if existing != nil {
			location, err = s.repo.UpdateByUser(ctx, userID, lat, lon)
		} else {
			location, err = s.repo.Insert(ctx, userID, lat, lon)
		}
		if err != nil {
			return err
		}

		// The durable write has committed; the cache refresh is a pure
		// optimization and must not fail the update.
		s.cacheLocation(ctx, location)

		return nil
	})
	if err != nil {
		if errors.Is(err, locker.ErrLockNotAcquired) {
			s.logger.Warn("location update lost lock race",
				zap.String("user_id", userID),
			)
			return nil, domain.ErrConcurrentUpdate
		}

		return nil, fmt.Errorf("updating location for user %s: %w", userID, err)
	}

	s.logger.Debug("location updated",
		zap.String("user_id", userID),
		zap.Float64("latitude", lat),
		zap.Float64("longitude", lon),
	)

	return location, nil
}

// GetLocation returns the user's current location, serving from cache when
// possible. Any cache failure degrades to a durable read; an absent durable
// row is domain.ErrLocationNotFound.
func (s *LocationService) GetLocation(ctx context.Context, userID string) (*domain.UserLocation, error) {
	if cached := s.cachedLocation(ctx, userID); cached != nil {
		return cached, nil
	}

	location, err := s.repo.GetByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("getting location for user %s: %w", userID, err)
	}
	if location == nil {
		return nil, domain.ErrLocationNotFound
	}

	s.cacheLocation(ctx, location)

	return location, nil
}

// InvalidateLocation drops the cached location for a user. Best-effort: the
// entry expires on its own either way.
func (s *LocationService) InvalidateLocation(ctx context.Context, userID string) {
	if err := s.cache.Delete(ctx, locationCachePrefix+userID); err != nil {
		s.logger.Warn("failed to invalidate location cache",
			zap.String("user_id", userID),
			zap.Error(err),
		)
	}
}

// cachedLocation reads the cache, treating every failure (store error,
// corrupt payload) identically to a miss so cache trouble never surfaces to
// the caller.
func (s *LocationService) cachedLocation(ctx context.Context, userID string) *domain.UserLocation {
	data, err := s.cache.Get(ctx, locationCachePrefix+userID)
	if err != nil {
		s.logger.Warn("location cache read failed, falling back to database",
			zap.String("user_id", userID),
			zap.Error(err),
		)
		return nil
	}
	if data == nil {
		return nil
	}

	var location domain.UserLocation
	if err := json.Unmarshal(data, &location); err != nil {
		s.logger.Warn("corrupt cached location, falling back to database",
			zap.String("user_id", userID),
			zap.Error(err),
		)
		return nil
	}

	s.logger.Debug("location cache hit", zap.String("user_id", userID))

	return &location
}

// cacheLocation writes the cache entry, swallowing errors.
func (s *LocationService) cacheLocation(ctx context.Context, location *domain.UserLocation) {
	data, err := json.Marshal(location)
	if err != nil {
		s.logger.Warn("failed to encode location for cache",
			zap.String("user_id", location.UserID),
			zap.Error(err),
		)
		return
	}

	if err := s.cache.Set(ctx, locationCachePrefix+location.UserID, data, s.cacheTTL); err != nil {
		s.logger.Warn("failed to cache location",
			zap.String("user_id", location.UserID),
			zap.Error(err),
		)
	}
}
