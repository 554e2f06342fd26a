package auth

import (
	"context"
	"time"
)

// User is an account as the login backend stores it. It satisfies
// token.User.
type User struct {
	ID any
	// Email is the normalized address.
	Email string
	// PasswordHash is the stored hash in "<algorithm>$..." form. Empty means
	// the account has no password.
	PasswordHash string
	LastLoginAt  *time.Time
	IsActive     bool
	CreatedAt    time.Time
}

func (u *User) GetPrimaryKey() any { return u.ID }

func (u *User) GetPasswordHash() (string, bool) {
	return u.PasswordHash, u.PasswordHash != ""
}

func (u *User) GetEmail() string { return u.Email }

func (u *User) GetLastLogin() (time.Time, bool) {
	if u.LastLoginAt == nil {
		return time.Time{}, false
	}
	return *u.LastLoginAt, true
}

// Storage defines the persistence operations the login service needs.
type Storage interface {
	// GetUserByID returns ErrUserNotFound when no account has id.
	GetUserByID(ctx context.Context, id any) (*User, error)
	UpdateLastLogin(ctx context.Context, id any, at time.Time) error
}

// ReplayGuard records consumed tokens so each one authenticates once.
type ReplayGuard interface {
	// ConsumeToken marks tokenID as used for ttl. It returns
	// ErrTokenAlreadyUsed if the token was consumed before.
	ConsumeToken(ctx context.Context, tokenID string, ttl time.Duration) error
}

// LoginLink is an issued token with its ready-to-send URL.
type LoginLink struct {
	Token string
	URL   string
	// ExpiresAt is zero when tokens do not expire.
	ExpiresAt time.Time
}
