package domain

import (
	"context"
	"time"
)

// MaxUsernameLen bounds usernames at registration time.
const MaxUsernameLen = 150

type User struct {
	ID       int64
	Username string
	// PasswordHash is the argon2id digest of the user's password. The
	// plaintext password never leaves the registration/login request.
	PasswordHash string
	CreatedAt    time.Time
}

type UserRepository interface {
	// Create persists a new user and fills in the generated ID.
	// Returns ErrDuplicateUsername if the username is already taken.
	Create(ctx context.Context, user *User) error

	// GetByUsername returns ErrUserNotFound if no such user exists.
	GetByUsername(ctx context.Context, username string) (*User, error)

	// GetByID returns ErrUserNotFound if no such user exists.
	GetByID(ctx context.Context, id int64) (*User, error)
}
