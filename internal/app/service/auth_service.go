package service

import (
	"context"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"store-locator-service/internal/domain"
)

const resetTokenPrefix = "auth:pwdreset:"

// TokenClaims carries the identity extracted from a verified access token.
type TokenClaims struct {
	UserID string
	Role   domain.UserRole
}

// AuthService issues and verifies JWT access tokens and runs the
// password-reset flow. Reset tokens are one-time values stored in Redis with
// a TTL, so they expire without any cleanup job.
type AuthService struct {
	users    domain.UserRepository
	cache    domain.Cache
	mailer   domain.Mailer
	logger   *zap.Logger
	secret   []byte
	tokenTTL time.Duration
	resetTTL time.Duration
}

// NewAuthService creates a new AuthService.
func NewAuthService(
	users domain.UserRepository,
	cache domain.Cache,
	mailer domain.Mailer,
	secret string,
	tokenTTL, resetTTL time.Duration,
	logger *zap.Logger,
) *AuthService {
	if tokenTTL <= 0 {
		tokenTTL = 24 * time.Hour
	}
	if resetTTL <= 0 {
		resetTTL = 15 * time.Minute
	}

	return &AuthService{
		users:    users,
		cache:    cache,
		mailer:   mailer,
		logger:   logger,
		secret:   []byte(secret),
		tokenTTL: tokenTTL,
		resetTTL: resetTTL,
	}
}

// Login verifies the credentials and returns a signed access token. Unknown
// emails and wrong passwords are indistinguishable to the caller.
func (s *AuthService) Login(ctx context.Context, email, password string) (string, *domain.User, error) {
	email = domain.NormalizeEmail(email)

	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		return "", nil, fmt.Errorf("looking up user for login: %w", err)
	}
	if user == nil {
		return "", nil, domain.ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		s.logger.Debug("login rejected", zap.String("email", email))
		return "", nil, domain.ErrInvalidCredentials
	}

	now := time.Now().UTC()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub":  user.ID,
		"role": string(user.Role),
		"iat":  now.Unix(),
		"exp":  now.Add(s.tokenTTL).Unix(),
	})

	signed, err := token.SignedString(s.secret)
	if err != nil {
		return "", nil, fmt.Errorf("signing access token: %w", err)
	}

	s.logger.Info("user logged in", zap.String("user_id", user.ID))

	return signed, user, nil
}

// ValidateToken verifies a signed access token and returns its claims.
func (s *AuthService) ValidateToken(tokenString string) (*TokenClaims, error) {
	token, err := jwt.Parse(tokenString, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return s.secret, nil
	})
	if err != nil || !token.Valid {
		return nil, domain.ErrInvalidCredentials
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, domain.ErrInvalidCredentials
	}

	sub, _ := claims["sub"].(string)
	role, _ := claims["role"].(string)
	if sub == "" {
		return nil, domain.ErrInvalidCredentials
	}

	return &TokenClaims{
		UserID: sub,
		Role:   domain.UserRole(role),
	}, nil
}

// RequestPasswordReset issues a one-time reset token and mails it. Unknown
// emails succeed silently so the endpoint cannot be used to probe for
// accounts.
func (s *AuthService) RequestPasswordReset(ctx context.Context, email string) error {
	email = domain.NormalizeEmail(email)

	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		return fmt.Errorf("looking up user for password reset: %w", err)
	}
	if user == nil {
		s.logger.Debug("password reset requested for unknown email",
			zap.String("email", email),
		)
		return nil
	}

	token := uuid.NewString()
	if err := s.cache.Set(ctx, resetTokenPrefix+token, []byte(user.ID), s.resetTTL); err != nil {
		return fmt.Errorf("storing reset token: %w", err)
	}

	if err := s.mailer.SendPasswordReset(ctx, user.Email, token); err != nil {
		return fmt.Errorf("sending reset mail: %w", err)
	}

	s.logger.Info("password reset requested", zap.String("user_id", user.ID))

	return nil
}

// ConfirmPasswordReset redeems a reset token and replaces the password. The
// token is deleted after use; deletion failure is tolerated since the TTL
// clears it anyway.
func (s *AuthService) ConfirmPasswordReset(ctx context.Context, token, newPassword string) error {
	key := resetTokenPrefix + token

	userID, err := s.cache.Get(ctx, key)
	if err != nil {
		return fmt.Errorf("looking up reset token: %w", err)
	}
	if userID == nil {
		return domain.ErrInvalidResetToken
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("hashing new password: %w", err)
	}

	if err := s.users.UpdatePassword(ctx, string(userID), string(hash)); err != nil {
		return err
	}

	if err := s.cache.Delete(ctx, key); err != nil {
		s.logger.Warn("failed to delete redeemed reset token", zap.Error(err))
	}

	s.logger.Info("password reset completed", zap.String("user_id", string(userID)))

	return nil
}
