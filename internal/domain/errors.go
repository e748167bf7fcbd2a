package domain

import "errors"

// Sentinel errors crossing the service boundary. Handlers map these to HTTP
// status codes; anything else is treated as an internal failure.
var (
	// ErrUserNotFound indicates the requested user does not exist or is inactive.
	ErrUserNotFound = errors.New("user not found")

	// ErrEmailExists indicates a registration attempt with an already-used email.
	ErrEmailExists = errors.New("email already registered")

	// ErrInvalidCredentials indicates a failed login attempt.
	ErrInvalidCredentials = errors.New("invalid credentials")

	// ErrInvalidResetToken indicates an unknown or expired password-reset token.
	ErrInvalidResetToken = errors.New("invalid or expired reset token")

	// ErrStoreNotFound indicates the requested store does not exist or is inactive.
	ErrStoreNotFound = errors.New("store not found")

	// ErrLocationNotFound indicates no location record exists for the user.
	ErrLocationNotFound = errors.New("location not found")

	// ErrConcurrentUpdate indicates a location update lost the race for the
	// per-user lock after all retries. Callers should retry the whole operation.
	ErrConcurrentUpdate = errors.New("concurrent location update in progress")

	// ErrFavoriteExists indicates the store is already in the user's favorites.
	ErrFavoriteExists = errors.New("store already in favorites")

	// ErrFavoriteNotFound indicates the favorite entry does not exist.
	ErrFavoriteNotFound = errors.New("favorite not found")
)
