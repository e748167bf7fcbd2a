// Package dto provides Data Transfer Objects for HTTP requests and responses.
package dto

import "store-locator-service/internal/domain"

// RegisterRequest represents the request body for account registration.
type RegisterRequest struct {
	Email    string `json:"email" validate:"required,email,max=254"`
	Password string `json:"password" validate:"required,min=8,max=72"`
}

// LoginRequest represents the request body for login.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// PasswordResetRequest represents the request body for requesting a reset token.
type PasswordResetRequest struct {
	Email string `json:"email" validate:"required,email"`
}

// PasswordResetConfirmRequest represents the request body for redeeming a
// reset token.
type PasswordResetConfirmRequest struct {
	Token       string `json:"token" validate:"required"`
	NewPassword string `json:"new_password" validate:"required,min=8,max=72"`
}

// UpdateLocationRequest represents the request body for reporting the caller's
// current position.
type UpdateLocationRequest struct {
	Latitude  float64 `json:"latitude" validate:"latitude"`
	Longitude float64 `json:"longitude" validate:"longitude"`
}

// SearchStoresRequest represents the query parameters for a radius search.
type SearchStoresRequest struct {
	Latitude  float64 `query:"lat" validate:"latitude"`
	Longitude float64 `query:"lng" validate:"longitude"`
	RadiusKm  float64 `query:"radius_km" validate:"omitempty,gt=0,max=100"`
	Name      string  `query:"name" validate:"max=200"`
	Type      string  `query:"type" validate:"storetype"`
	PageIndex int     `query:"page" validate:"omitempty,min=1"`
	PageSize  int     `query:"page_size" validate:"omitempty,min=1,max=100"`
}

// ToSearchParams converts SearchStoresRequest to domain.SearchStoresParams.
func (r *SearchStoresRequest) ToSearchParams() domain.SearchStoresParams {
	params := domain.DefaultSearchStoresParams()

	params.Latitude = r.Latitude
	params.Longitude = r.Longitude
	params.Name = r.Name
	params.Type = domain.StoreType(r.Type)

	if r.RadiusKm > 0 {
		params.RadiusKm = r.RadiusKm
	}
	if r.PageIndex > 0 {
		params.PageIndex = r.PageIndex
	}
	if r.PageSize > 0 {
		params.PageSize = r.PageSize
	}

	return params
}

// NearbyStoresRequest represents the query parameters for a radius search
// centered on the caller's saved location.
type NearbyStoresRequest struct {
	RadiusKm  float64 `query:"radius_km" validate:"omitempty,gt=0,max=100"`
	Name      string  `query:"name" validate:"max=200"`
	Type      string  `query:"type" validate:"storetype"`
	PageIndex int     `query:"page" validate:"omitempty,min=1"`
	PageSize  int     `query:"page_size" validate:"omitempty,min=1,max=100"`
}

// ToSearchParams converts NearbyStoresRequest to domain.SearchStoresParams.
// The center coordinates are filled in later from the user's location.
func (r *NearbyStoresRequest) ToSearchParams() domain.SearchStoresParams {
	params := domain.DefaultSearchStoresParams()

	params.Name = r.Name
	params.Type = domain.StoreType(r.Type)

	if r.RadiusKm > 0 {
		params.RadiusKm = r.RadiusKm
	}
	if r.PageIndex > 0 {
		params.PageIndex = r.PageIndex
	}
	if r.PageSize > 0 {
		params.PageSize = r.PageSize
	}

	return params
}

// CreateStoreRequest represents the request body for creating a store.
type CreateStoreRequest struct {
	Name      string  `json:"name" validate:"required,max=200"`
	Type      string  `json:"type" validate:"required,storetype"`
	Address   string  `json:"address" validate:"max=500"`
	Latitude  float64 `json:"latitude" validate:"latitude"`
	Longitude float64 `json:"longitude" validate:"longitude"`
	Rating    float64 `json:"rating" validate:"omitempty,min=0,max=5"`
}

// ToDomain converts CreateStoreRequest to a domain.Store.
func (r *CreateStoreRequest) ToDomain() *domain.Store {
	return &domain.Store{
		Name:      r.Name,
		Type:      domain.StoreType(r.Type),
		Address:   r.Address,
		Latitude:  r.Latitude,
		Longitude: r.Longitude,
		Rating:    r.Rating,
		IsActive:  true,
	}
}

// UpdateStoreRequest represents the request body for updating a store.
type UpdateStoreRequest struct {
	Name      string  `json:"name" validate:"required,max=200"`
	Type      string  `json:"type" validate:"required,storetype"`
	Address   string  `json:"address" validate:"max=500"`
	Latitude  float64 `json:"latitude" validate:"latitude"`
	Longitude float64 `json:"longitude" validate:"longitude"`
	Rating    float64 `json:"rating" validate:"omitempty,min=0,max=5"`
}

// Apply overlays the request onto an existing store.
func (r *UpdateStoreRequest) Apply(store *domain.Store) {
	store.Name = r.Name
	store.Type = domain.StoreType(r.Type)
	store.Address = r.Address
	store.Latitude = r.Latitude
	store.Longitude = r.Longitude
	store.Rating = r.Rating
}

// AddFavoriteRequest represents the request body for bookmarking a store.
type AddFavoriteRequest struct {
	StoreID string `json:"store_id" validate:"required,uuid4"`
}

// PageRequest represents bare pagination query parameters.
type PageRequest struct {
	PageIndex int `query:"page" validate:"omitempty,min=1"`
	PageSize  int `query:"page_size" validate:"omitempty,min=1,max=100"`
}
