package postgres

import (
	"time"

	"store-locator-service/internal/domain"
)

// UserModel is the GORM model for the users table.
type UserModel struct {
	ID        string    `gorm:"type:uuid;primaryKey"`
	Email     string    `gorm:"type:varchar(255);not null;uniqueIndex"`
	Password  string    `gorm:"type:varchar(255);not null"`
	Role      string    `gorm:"type:varchar(20);not null;default:user"`
	IsActive  bool      `gorm:"not null;default:true;index"`
	CreatedAt time.Time `gorm:"autoCreateTime"`
	UpdatedAt time.Time `gorm:"autoUpdateTime"`
}

// TableName returns the table name for UserModel.
func (UserModel) TableName() string {
	return "users"
}

// ToDomain converts UserModel to domain.User.
func (m *UserModel) ToDomain() *domain.User {
	return &domain.User{
		ID:        m.ID,
		Email:     m.Email,
		Password:  m.Password,
		Role:      domain.UserRole(m.Role),
		IsActive:  m.IsActive,
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}
}

// StoreModel is the GORM model for the stores table. The location column
// mirrors the latitude/longitude scalars as a queryable geometric point and
// is refreshed on every write.
type StoreModel struct {
	ID        string    `gorm:"type:uuid;primaryKey"`
	Name      string    `gorm:"type:varchar(255);not null;index"`
	Type      string    `gorm:"type:varchar(50);not null;index"`
	Address   string    `gorm:"type:varchar(500)"`
	Latitude  float64   `gorm:"not null"`
	Longitude float64   `gorm:"not null"`
	Location  Point     `gorm:"type:point"`
	Rating    float64   `gorm:"type:decimal(3,2);default:0"`
	IsActive  bool      `gorm:"not null;default:true;index"`
	CreatedAt time.Time `gorm:"autoCreateTime"`
	UpdatedAt time.Time `gorm:"autoUpdateTime"`
}

// TableName returns the table name for StoreModel.
func (StoreModel) TableName() string {
	return "stores"
}

// ToDomain converts StoreModel to domain.Store.
func (m *StoreModel) ToDomain() *domain.Store {
	return &domain.Store{
		ID:        m.ID,
		Name:      m.Name,
		Type:      domain.StoreType(m.Type),
		Address:   m.Address,
		Latitude:  m.Latitude,
		Longitude: m.Longitude,
		Rating:    m.Rating,
		IsActive:  m.IsActive,
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}
}

// storeModelFromDomain creates a StoreModel from domain.Store, deriving the
// geometric point from the scalar coordinates.
func storeModelFromDomain(s *domain.Store) *StoreModel {
	return &StoreModel{
		ID:        s.ID,
		Name:      s.Name,
		Type:      string(s.Type),
		Address:   s.Address,
		Latitude:  s.Latitude,
		Longitude: s.Longitude,
		Location:  Point{Lng: s.Longitude, Lat: s.Latitude},
		Rating:    s.Rating,
		IsActive:  s.IsActive,
		CreatedAt: s.CreatedAt,
		UpdatedAt: s.UpdatedAt,
	}
}

// UserLocationModel is the GORM model for the user_locations table. One row
// per user.
type UserLocationModel struct {
	ID        string    `gorm:"type:uuid;primaryKey"`
	UserID    string    `gorm:"type:uuid;not null;uniqueIndex"`
	Latitude  float64   `gorm:"not null"`
	Longitude float64   `gorm:"not null"`
	Location  Point     `gorm:"type:point"`
	CreatedAt time.Time `gorm:"autoCreateTime"`
	UpdatedAt time.Time `gorm:"autoUpdateTime"`
}

// TableName returns the table name for UserLocationModel.
func (UserLocationModel) TableName() string {
	return "user_locations"
}

// ToDomain converts UserLocationModel to domain.UserLocation.
func (m *UserLocationModel) ToDomain() *domain.UserLocation {
	return &domain.UserLocation{
		UserID:    m.UserID,
		Latitude:  m.Latitude,
		Longitude: m.Longitude,
		UpdatedAt: m.UpdatedAt,
	}
}

// FavoriteModel is the GORM model for the user_favorites table.
type FavoriteModel struct {
	ID        string     `gorm:"type:uuid;primaryKey"`
	UserID    string     `gorm:"type:uuid;not null;index:idx_user_store,unique"`
	StoreID   string     `gorm:"type:uuid;not null;index:idx_user_store,unique"`
	CreatedAt time.Time  `gorm:"autoCreateTime"`
	Store     StoreModel `gorm:"foreignKey:StoreID"`
}

// TableName returns the table name for FavoriteModel.
func (FavoriteModel) TableName() string {
	return "user_favorites"
}

// ToDomain converts FavoriteModel to domain.Favorite.
func (m *FavoriteModel) ToDomain() *domain.Favorite {
	fav := &domain.Favorite{
		ID:        m.ID,
		UserID:    m.UserID,
		StoreID:   m.StoreID,
		CreatedAt: m.CreatedAt,
	}
	if m.Store.ID != "" {
		fav.Store = m.Store.ToDomain()
	}

	return fav
}
