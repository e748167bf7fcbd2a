package service

import (
	"context"
	"fmt"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"store-locator-service/internal/domain"
)

// UserService handles registration and user management. Registration is
// fronted by the probabilistic email filter: only when the filter says the
// email might exist does the flow pay for a durable lookup.
type UserService struct {
	repo   domain.UserRepository
	filter domain.EmailFilter
	logger *zap.Logger
}

// NewUserService creates a new UserService.
func NewUserService(repo domain.UserRepository, filter domain.EmailFilter, logger *zap.Logger) *UserService {
	return &UserService{
		repo:   repo,
		filter: filter,
		logger: logger,
	}
}

// Register creates a new account. The email is normalized before every
// check; a filter hit triggers a durable existence lookup, a filter miss
// guarantees the email is new and skips it. Adding the fresh email to the
// filter is best-effort; a failed add only costs a future extra lookup.
func (s *UserService) Register(ctx context.Context, email, password string) (*domain.User, error) {
	email = domain.NormalizeEmail(email)

	if s.filter.MightContain(ctx, email) {
		s.logger.Debug("email filter hit, verifying against database",
			zap.String("email", email),
		)

		existing, err := s.repo.GetByEmail(ctx, email)
		if err != nil {
			return nil, fmt.Errorf("checking email existence: %w", err)
		}
		if existing != nil {
			return nil, domain.ErrEmailExists
		}
	} else {
		s.logger.Debug("email filter miss, skipping existence lookup",
			zap.String("email", email),
		)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hashing password: %w", err)
	}

	user := &domain.User{
		Email:    email,
		Password: string(hash),
		Role:     domain.RoleUser,
	}
	if err := s.repo.Create(ctx, user); err != nil {
		return nil, err
	}

	if _, err := s.filter.Add(ctx, email); err != nil {
		s.logger.Warn("failed to add email to membership filter",
			zap.String("email", email),
			zap.Error(err),
		)
	}

	s.logger.Info("user registered", zap.String("user_id", user.ID))

	return user, nil
}

// WarmEmailFilter populates the membership filter with every active email in
// one bulk pass. Called at startup so restarts do not replay registrations
// one at a time.
func (s *UserService) WarmEmailFilter(ctx context.Context) error {
	emails, err := s.repo.ListActiveEmails(ctx)
	if err != nil {
		return fmt.Errorf("listing emails for filter warmup: %w", err)
	}

	if err := s.filter.AddAll(ctx, emails); err != nil {
		return fmt.Errorf("warming email filter: %w", err)
	}

	s.logger.Info("email filter warmed", zap.Int("count", len(emails)))

	return nil
}

// GetByID retrieves an active user.
func (s *UserService) GetByID(ctx context.Context, id string) (*domain.User, error) {
	user, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrUserNotFound
	}

	return user, nil
}

// List returns a page of active users.
func (s *UserService) List(ctx context.Context, pageIndex, pageSize int) ([]domain.User, int64, error) {
	if pageIndex < 1 {
		pageIndex = 1
	}
	if pageSize < 1 || pageSize > 100 {
		pageSize = 10
	}

	return s.repo.List(ctx, pageIndex, pageSize)
}

// Deactivate soft-deletes a user. The email stays in the membership filter
// (a bloom filter cannot remove entries), costing at most one extra durable
// lookup if the address registers again.
func (s *UserService) Deactivate(ctx context.Context, id string) error {
	if err := s.repo.Deactivate(ctx, id); err != nil {
		return err
	}

	s.logger.Info("user deactivated", zap.String("user_id", id))

	return nil
}
