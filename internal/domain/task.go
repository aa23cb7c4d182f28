package domain

import (
	"context"
	"time"
)

// Field length limits enforced at validation time and mirrored by the
// column definitions in the tasks table.
const (
	MaxTitleLen       = 200
	MaxDescriptionLen = 500
)

type Task struct {
	ID          int64
	UserID      int64
	Title       string
	Description string
	CreatedAt   time.Time
}

// TaskRepository is the owner-scoped task store. Every lookup and mutation
// filters by (task id, owner id) in the query predicate itself, so a task
// belonging to another user is indistinguishable from a missing one.
type TaskRepository interface {
	// Create persists a new task and fills in the generated ID.
	Create(ctx context.Context, task *Task) error

	// ListByOwner returns all tasks owned by ownerID, ordered by id
	// ascending. A non-empty titleFilter restricts the result to tasks
	// whose title contains it as a case-insensitive substring.
	ListByOwner(ctx context.Context, ownerID int64, titleFilter string) ([]Task, error)

	// GetByOwner returns ErrTaskNotFound if the task does not exist or is
	// owned by someone else.
	GetByOwner(ctx context.Context, id, ownerID int64) (*Task, error)

	// Update overwrites title and description. Returns ErrTaskNotFound
	// under the same ownership condition as GetByOwner.
	Update(ctx context.Context, id, ownerID int64, title, description string) error

	// Delete removes the task permanently. Returns ErrTaskNotFound under
	// the same ownership condition as GetByOwner.
	Delete(ctx context.Context, id, ownerID int64) error
}
