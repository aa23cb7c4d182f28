package domain

import "context"

// AppService is the application layer consumed by the HTTP handlers.
type AppService interface {
	// RegisterUser validates and persists a new user with a hashed
	// password. Returns ErrEmptyField, ErrFieldTooLong, or
	// ErrDuplicateUsername.
	RegisterUser(ctx context.Context, username, password string) (*User, error)

	// AuthenticateUser verifies the credentials and returns the matching
	// user. Unknown usernames and wrong passwords both come back as
	// ErrInvalidCredentials.
	AuthenticateUser(ctx context.Context, username, password string) (*User, error)

	// GetUserByID retrieves a user by internal ID.
	GetUserByID(ctx context.Context, id int64) (*User, error)

	CreateTask(ctx context.Context, ownerID int64, title, description string) (*Task, error)
	ListTasks(ctx context.Context, ownerID int64, titleFilter string) ([]Task, error)
	GetTask(ctx context.Context, taskID, ownerID int64) (*Task, error)
	UpdateTask(ctx context.Context, taskID, ownerID int64, title, description string) error
	DeleteTask(ctx context.Context, taskID, ownerID int64) error
}
