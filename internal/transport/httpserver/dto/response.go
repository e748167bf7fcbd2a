package dto

import (
	"time"

	"store-locator-service/internal/domain"
)

// UserResponse represents a user in API responses. The password hash never
// leaves the service.
type UserResponse struct {
	ID        string `json:"id"`
	Email     string `json:"email"`
	Role      string `json:"role"`
	CreatedAt string `json:"created_at"`
}

// FromDomainUser converts domain.User to UserResponse.
func FromDomainUser(u *domain.User) UserResponse {
	return UserResponse{
		ID:        u.ID,
		Email:     u.Email,
		Role:      string(u.Role),
		CreatedAt: u.CreatedAt.Format(time.RFC3339),
	}
}

// TokenResponse represents a successful login.
type TokenResponse struct {
	AccessToken string       `json:"access_token"`
	TokenType   string       `json:"token_type"`
	User        UserResponse `json:"user"`
}

// LocationResponse represents a user's current location.
type LocationResponse struct {
	UserID    string  `json:"user_id"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
	UpdatedAt string  `json:"updated_at"`
}

// FromDomainLocation converts domain.UserLocation to LocationResponse.
func FromDomainLocation(l *domain.UserLocation) LocationResponse {
	return LocationResponse{
		UserID:    l.UserID,
		Latitude:  l.Latitude,
		Longitude: l.Longitude,
		UpdatedAt: l.UpdatedAt.Format(time.RFC3339),
	}
}

// StoreResponse represents a single store.
type StoreResponse struct {
	ID        string  `json:"id"`
	Name      string  `json:"name"`
	Type      string  `json:"type"`
	Address   string  `json:"address,omitempty"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
	Rating    float64 `json:"rating,omitempty"`
	CreatedAt string  `json:"created_at"`
	UpdatedAt string  `json:"updated_at"`
}

// FromDomainStore converts domain.Store to StoreResponse.
func FromDomainStore(s *domain.Store) StoreResponse {
	return StoreResponse{
		ID:        s.ID,
		Name:      s.Name,
		Type:      string(s.Type),
		Address:   s.Address,
		Latitude:  s.Latitude,
		Longitude: s.Longitude,
		Rating:    s.Rating,
		CreatedAt: s.CreatedAt.Format(time.RFC3339),
		UpdatedAt: s.UpdatedAt.Format(time.RFC3339),
	}
}

// StoreWithDistanceResponse is a search hit annotated with its distance from
// the query center.
type StoreWithDistanceResponse struct {
	StoreResponse
	DistanceMeters float64 `json:"distance_meters"`
}

// SearchStoresResponse represents one page of radius search results.
type SearchStoresResponse struct {
	Stores []StoreWithDistanceResponse `json:"stores"`
	Center CenterMeta                  `json:"center"`
	Radius float64                     `json:"radius_km"`

	Pagination PaginationMeta `json:"pagination"`
}

// CenterMeta echoes the query center back to the client.
type CenterMeta struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// PaginationMeta holds pagination metadata.
type PaginationMeta struct {
	Total      int64 `json:"total"`
	Page       int   `json:"page"`
	PageSize   int   `json:"page_size"`
	TotalPages int   `json:"total_pages"`
}

// NewPaginationMeta derives page metadata from a total row count.
func NewPaginationMeta(total int64, page, pageSize int) PaginationMeta {
	totalPages := 0
	if pageSize > 0 {
		totalPages = int((total + int64(pageSize) - 1) / int64(pageSize))
	}

	return PaginationMeta{
		Total:      total,
		Page:       page,
		PageSize:   pageSize,
		TotalPages: totalPages,
	}
}

// FromSearchStoresResult converts domain.SearchStoresResult to
// SearchStoresResponse.
func FromSearchStoresResult(result *domain.SearchStoresResult) SearchStoresResponse {
	stores := make([]StoreWithDistanceResponse, len(result.Stores))
	for i := range result.Stores {
		stores[i] = StoreWithDistanceResponse{
			StoreResponse:  FromDomainStore(&result.Stores[i].Store),
			DistanceMeters: result.Stores[i].DistanceMeters,
		}
	}

	return SearchStoresResponse{
		Stores: stores,
		Center: CenterMeta{
			Latitude:  result.CenterLatitude,
			Longitude: result.CenterLongitude,
		},
		Radius:     result.RadiusKm,
		Pagination: NewPaginationMeta(result.Total, result.PageIndex, result.PageSize),
	}
}

// FavoriteResponse represents one bookmarked store.
type FavoriteResponse struct {
	ID        string         `json:"id"`
	StoreID   string         `json:"store_id"`
	CreatedAt string         `json:"created_at"`
	Store     *StoreResponse `json:"store,omitempty"`
}

// FromDomainFavorite converts domain.Favorite to FavoriteResponse.
func FromDomainFavorite(f *domain.Favorite) FavoriteResponse {
	resp := FavoriteResponse{
		ID:        f.ID,
		StoreID:   f.StoreID,
		CreatedAt: f.CreatedAt.Format(time.RFC3339),
	}
	if f.Store != nil {
		store := FromDomainStore(f.Store)
		resp.Store = &store
	}

	return resp
}

// FavoriteListResponse represents one page of a user's favorites.
type FavoriteListResponse struct {
	Favorites  []FavoriteResponse `json:"favorites"`
	Pagination PaginationMeta     `json:"pagination"`
}

// FromFavoriteListResult converts domain.FavoriteListResult to
// FavoriteListResponse.
func FromFavoriteListResult(result *domain.FavoriteListResult) FavoriteListResponse {
	favorites := make([]FavoriteResponse, len(result.Favorites))
	for i := range result.Favorites {
		favorites[i] = FromDomainFavorite(&result.Favorites[i])
	}

	return FavoriteListResponse{
		Favorites:  favorites,
		Pagination: NewPaginationMeta(result.Total, result.PageIndex, result.PageSize),
	}
}

// UserListResponse represents one page of users.
type UserListResponse struct {
	Users      []UserResponse `json:"users"`
	Pagination PaginationMeta `json:"pagination"`
}

// StoreListResponse represents one page of stores.
type StoreListResponse struct {
	Stores     []StoreResponse `json:"stores"`
	Pagination PaginationMeta  `json:"pagination"`
}

// ErrorResponse represents an error response.
type ErrorResponse struct {
	Error   string      `json:"error"`
	Code    string      `json:"code,omitempty"`
	Details interface{} `json:"details,omitempty"`
}
