package domain

import "time"

// Favorite links a user to a store they bookmarked. One entry per
// (user, store) pair.
type Favorite struct {
	ID        string
	UserID    string
	StoreID   string
	CreatedAt time.Time

	// Store is populated on list queries for response assembly.
	Store *Store
}

// FavoriteListResult holds one page of a user's favorites.
type FavoriteListResult struct {
	Favorites []Favorite
	Total     int64
	PageIndex int
	PageSize  int
}
