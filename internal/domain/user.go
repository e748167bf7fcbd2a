// Package domain contains the core entities and ports of the service.
package domain

import (
	"strings"
	"time"
)

// UserRole represents the access level of a user.
type UserRole string

const (
	RoleUser  UserRole = "user"
	RoleAdmin UserRole = "admin"
)

// User is a registered account. Password holds the bcrypt hash, never the
// plaintext.
type User struct {
	ID        string
	Email     string
	Password  string
	Role      UserRole
	IsActive  bool
	CreatedAt time.Time
	UpdatedAt time.Time
}

// NormalizeEmail lowercases and trims an email address so cosmetically
// different spellings of the same address compare equal everywhere
// (registration, login, membership filter).
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
