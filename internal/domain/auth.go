// Package domain contains the core business entities and interfaces.
package domain

import (
	"context"
	"slices"
	"strings"
	"time"
)

// Authorities granted to accounts.
const (
	RoleUser  = "ROLE_USER"
	RoleAdmin = "ROLE_ADMIN"
)

// User represents an authenticated account.
type User struct {
	ID           int64     `json:"id"`
	Login        string    `json:"login"`
	PasswordHash string    `json:"-"`
	Authorities  []string  `json:"authorities"`
	CreatedAt    time.Time `json:"createdAt"`
}

// HasAuthority reports whether the user was granted the given role.
func (u *User) HasAuthority(role string) bool {
	return u != nil && slices.Contains(u.Authorities, role)
}

// IsAdmin reports whether the user holds ROLE_ADMIN.
func (u *User) IsAdmin() bool {
	return u.HasAuthority(RoleAdmin)
}

// JoinAuthorities renders authorities for storage and token claims.
func JoinAuthorities(a []string) string {
	return strings.Join(a, ",")
}

// SplitAuthorities is the inverse of JoinAuthorities.
func SplitAuthorities(s string) []string {
	if s == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	out := parts[:0]
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// Session represents an active cookie session.
type Session struct {
	Token     string
	UserID    int64
	UserAgent string
	IP        string
	ExpiresAt time.Time
	CreatedAt time.Time
}

// UserRepository defines the port for account persistence.
type UserRepository interface {
	GetByLogin(ctx context.Context, login string) (*User, error)
	GetByID(ctx context.Context, id int64) (*User, error)
	Create(ctx context.Context, login, passwordHash string, authorities []string) (*User, error)
	Count(ctx context.Context) (int, error)
}

// SessionRepository defines the port for session persistence.
type SessionRepository interface {
	Create(ctx context.Context, userID int64, token, userAgent, ip string, expiresAt time.Time) error
	GetByToken(ctx context.Context, token string) (*Session, error)
	Delete(ctx context.Context, token string) error
	DeleteExpired(ctx context.Context) error
}
