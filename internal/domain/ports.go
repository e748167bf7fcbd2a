package domain

import (
	"context"
	"time"
)

// UserRepository defines persistence operations for users.
// Implementation: internal/infra/postgres/user_repository.go
type UserRepository interface {
	// Create inserts a new user and fills database-generated fields.
	Create(ctx context.Context, user *User) error

	// GetByID retrieves an active user by ID. Returns nil when absent.
	GetByID(ctx context.Context, id string) (*User, error)

	// GetByEmail retrieves an active user by normalized email. Returns nil
	// when absent.
	GetByEmail(ctx context.Context, email string) (*User, error)

	// List returns a page of active users and the total count.
	List(ctx context.Context, pageIndex, pageSize int) ([]User, int64, error)

	// UpdatePassword replaces the stored password hash.
	UpdatePassword(ctx context.Context, id, passwordHash string) error

	// Deactivate soft-deletes a user.
	Deactivate(ctx context.Context, id string) error

	// ListActiveEmails returns the emails of every active user. Used to
	// populate the email membership filter at startup.
	ListActiveEmails(ctx context.Context) ([]string, error)
}

// StoreRepository defines persistence operations for stores.
// Implementation: internal/infra/postgres/store_repository.go
type StoreRepository interface {
	// Create inserts a new store.
	Create(ctx context.Context, store *Store) error

	// GetByID retrieves an active store by ID. Returns nil when absent.
	GetByID(ctx context.Context, id string) (*Store, error)

	// Update persists name/type/address/position/rating changes.
	Update(ctx context.Context, store *Store) error

	// Deactivate soft-deletes a store. Deactivated stores never appear in
	// search results.
	Deactivate(ctx context.Context, id string) error

	// List returns a page of active stores and the total count.
	List(ctx context.Context, pageIndex, pageSize int) ([]Store, int64, error)

	// SearchByRadius finds active stores within params.RadiusMeters() of the
	// center, ordered by ascending distance, with the total matching count.
	SearchByRadius(ctx context.Context, params SearchStoresParams) ([]StoreWithDistance, int64, error)
}

// LocationRepository defines persistence operations for user locations.
// Implementation: internal/infra/postgres/location_repository.go
type LocationRepository interface {
	// GetByUser retrieves the location row for a user. Returns nil when absent.
	GetByUser(ctx context.Context, userID string) (*UserLocation, error)

	// Insert creates the location row for a user without one.
	Insert(ctx context.Context, userID string, lat, lon float64) (*UserLocation, error)

	// UpdateByUser overwrites the existing location row, refreshing UpdatedAt.
	UpdateByUser(ctx context.Context, userID string, lat, lon float64) (*UserLocation, error)
}

// FavoriteRepository defines persistence operations for user favorites.
// Implementation: internal/infra/postgres/favorite_repository.go
type FavoriteRepository interface {
	// Create inserts a favorite. Returns ErrFavoriteExists on duplicates.
	Create(ctx context.Context, fav *Favorite) error

	// ListByUser returns a page of a user's favorites with stores populated.
	ListByUser(ctx context.Context, userID string, pageIndex, pageSize int) (*FavoriteListResult, error)

	// Delete removes a favorite by (user, store). Returns ErrFavoriteNotFound
	// when no entry exists.
	Delete(ctx context.Context, userID, storeID string) error
}

// Cache defines key-value caching operations with TTL support.
// Implementation: internal/infra/redis/cache.go
type Cache interface {
	// Get retrieves a value by key. Returns (nil, nil) when absent.
	Get(ctx context.Context, key string) ([]byte, error)

	// Set stores a value with the given TTL.
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error

	// Delete removes a value by key. Idempotent.
	Delete(ctx context.Context, key string) error

	// Exists reports whether the key is present.
	Exists(ctx context.Context, key string) (bool, error)
}

// EmailFilter is a probabilistic membership structure over registered emails:
// no false negatives, bounded false-positive rate.
// Implementation: pkg/bloom
type EmailFilter interface {
	// Add records an email. Returns true when the email was not previously
	// known to the filter (false positives make this a best-effort signal).
	Add(ctx context.Context, email string) (bool, error)

	// AddAll records a batch of emails in one pipelined call. Empty input is
	// a no-op with no store round-trip.
	AddAll(ctx context.Context, emails []string) error

	// MightContain reports whether the email may have been added. Fails open
	// to true on store errors.
	MightContain(ctx context.Context, email string) bool
}

// Mailer sends transactional mail.
// Implementation: internal/infra/mailer
type Mailer interface {
	// SendPasswordReset delivers a password-reset token to the address.
	SendPasswordReset(ctx context.Context, to, token string) error
}
