package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"store-locator-service/internal/domain"
)

// UserRepository implements domain.UserRepository using PostgreSQL.
type UserRepository struct {
	db *gorm.DB
}

// NewUserRepository creates a new PostgreSQL user repository.
func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{db: db}
}

// Create inserts a new user. The caller provides a normalized email and the
// bcrypt hash; the ID is generated here when absent.
func (r *UserRepository) Create(ctx context.Context, user *domain.User) error {
	model := &UserModel{
		ID:       user.ID,
		Email:    user.Email,
		Password: user.Password,
		Role:     string(user.Role),
		IsActive: true,
	}
	if model.ID == "" {
		model.ID = uuid.NewString()
	}

	err := r.db.WithContext(ctx).Create(model).Error
	if err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return domain.ErrEmailExists
		}

		return fmt.Errorf("creating user: %w", err)
	}

	user.ID = model.ID
	user.IsActive = model.IsActive
	user.CreatedAt = model.CreatedAt
	user.UpdatedAt = model.UpdatedAt

	return nil
}

// GetByID retrieves an active user by ID. Returns nil when absent.
func (r *UserRepository) GetByID(ctx context.Context, id string) (*domain.User, error) {
	var model UserModel
	err := r.db.WithContext(ctx).
		Where("id = ? AND is_active = ?", id, true).
		First(&model).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}

		return nil, fmt.Errorf("getting user by id: %w", err)
	}

	return model.ToDomain(), nil
}

// GetByEmail retrieves an active user by email. Returns nil when absent.
func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	var model UserModel
	err := r.db.WithContext(ctx).
		Where("email = ? AND is_active = ?", email, true).
		First(&model).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}

		return nil, fmt.Errorf("getting user by email: %w", err)
	}

	return model.ToDomain(), nil
}

// List returns a page of active users and the total count.
func (r *UserRepository) List(ctx context.Context, pageIndex, pageSize int) ([]domain.User, int64, error) {
	var total int64
	err := r.db.WithContext(ctx).
		Model(&UserModel{}).
		Where("is_active = ?", true).
		Count(&total).Error
	if err != nil {
		return nil, 0, fmt.Errorf("counting users: %w", err)
	}

	var models []UserModel
	err = r.db.WithContext(ctx).
		Where("is_active = ?", true).
		Order("created_at DESC").
		Offset((pageIndex - 1) * pageSize).
		Limit(pageSize).
		Find(&models).Error
	if err != nil {
		return nil, 0, fmt.Errorf("listing users: %w", err)
	}

	users := make([]domain.User, len(models))
	for i, m := range models {
		users[i] = *m.ToDomain()
	}

	return users, total, nil
}

// UpdatePassword replaces the stored password hash.
func (r *UserRepository) UpdatePassword(ctx context.Context, id, passwordHash string) error {
	result := r.db.WithContext(ctx).
		Model(&UserModel{}).
		Where("id = ? AND is_active = ?", id, true).
		Update("password", passwordHash)
	if result.Error != nil {
		return fmt.Errorf("updating password: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return domain.ErrUserNotFound
	}

	return nil
}

// Deactivate soft-deletes a user.
func (r *UserRepository) Deactivate(ctx context.Context, id string) error {
	result := r.db.WithContext(ctx).
		Model(&UserModel{}).
		Where("id = ? AND is_active = ?", id, true).
		Update("is_active", false)
	if result.Error != nil {
		return fmt.Errorf("deactivating user: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return domain.ErrUserNotFound
	}

	return nil
}

// ListActiveEmails returns the emails of every active user.
func (r *UserRepository) ListActiveEmails(ctx context.Context) ([]string, error) {
	var emails []string
	err := r.db.WithContext(ctx).
		Model(&UserModel{}).
		Where("is_active = ?", true).
		Pluck("email", &emails).Error
	if err != nil {
		return nil, fmt.Errorf("listing active emails: %w", err)
	}

	return emails, nil
}
