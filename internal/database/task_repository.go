package database

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"todoapp/internal/domain"
)

// taskColumns must match the Scan order in scanTask.
const taskColumns = `id, user_id, title, description, created_at`

// TaskRepo implements domain.TaskRepository backed by PostgreSQL.
// Every query that touches an existing task filters on (id, user_id) so
// ownership is enforced in the database, not after the fact.
type TaskRepo struct {
	pool *pgxpool.Pool
}

// NewTaskRepo creates a TaskRepo from the shared connection pool.
func NewTaskRepo(pool *pgxpool.Pool) *TaskRepo {
	return &TaskRepo{pool: pool}
}

func scanTask(row pgx.Row) (*domain.Task, error) {
	var task domain.Task
	err := row.Scan(&task.ID, &task.UserID, &task.Title, &task.Description, &task.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &task, nil
}

// Create inserts a new task and fills in the generated ID.
func (r *TaskRepo) Create(ctx context.Context, task *domain.Task) error {
	err := r.pool.QueryRow(ctx, `
		INSERT INTO tasks (user_id, title, description, created_at)
		VALUES ($1, $2, $3, $4)
		RETURNING id
	`, task.UserID, task.Title, task.Description, task.CreatedAt).Scan(&task.ID)

	if err != nil {
		return fmt.Errorf("failed to create task: %w", err)
	}
	return nil
}

// ListByOwner returns the owner's tasks in insertion order. A non-empty
// titleFilter narrows the result to tasks whose title contains the filter,
// case-insensitively.
func (r *TaskRepo) ListByOwner(ctx context.Context, ownerID int64, titleFilter string) ([]domain.Task, error) {
	var (
		rows pgx.Rows
		err  error
	)

	if titleFilter == "" {
		rows, err = r.pool.Query(ctx, `
			SELECT `+taskColumns+` FROM tasks
			WHERE user_id = $1
			ORDER BY id ASC
		`, ownerID)
	} else {
		rows, err = r.pool.Query(ctx, `
			SELECT `+taskColumns+` FROM tasks
			WHERE user_id = $1 AND title ILIKE '%' || $2 || '%'
			ORDER BY id ASC
		`, ownerID, escapeLike(titleFilter))
	}
	if err != nil {
		return nil, fmt.Errorf("failed to list tasks: %w", err)
	}
	defer rows.Close()

	tasks := make([]domain.Task, 0)
	for rows.Next() {
		var task domain.Task
		if err := rows.Scan(&task.ID, &task.UserID, &task.Title, &task.Description, &task.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan task: %w", err)
		}
		tasks = append(tasks, task)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read tasks: %w", err)
	}

	return tasks, nil
}

func (r *TaskRepo) GetByOwner(ctx context.Context, id, ownerID int64) (*domain.Task, error) {
	task, err := scanTask(r.pool.QueryRow(ctx,
		`SELECT `+taskColumns+` FROM tasks WHERE id = $1 AND user_id = $2`, id, ownerID))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.ErrTaskNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get task: %w", err)
	}
	return task, nil
}

// Update rewrites title and description of the owner's task. A task that
// does not exist or belongs to another user yields domain.ErrTaskNotFound.
func (r *TaskRepo) Update(ctx context.Context, id, ownerID int64, title, description string) error {
	tag, err := r.pool.Exec(ctx, `
		UPDATE tasks
		SET title = $1, description = $2
		WHERE id = $3 AND user_id = $4
	`, title, description, id, ownerID)

	if err != nil {
		return fmt.Errorf("failed to update task: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrTaskNotFound
	}
	return nil
}

// Delete removes the owner's task. A task that does not exist or belongs to
// another user yields domain.ErrTaskNotFound.
func (r *TaskRepo) Delete(ctx context.Context, id, ownerID int64) error {
	tag, err := r.pool.Exec(ctx, `
		DELETE FROM tasks WHERE id = $1 AND user_id = $2
	`, id, ownerID)

	if err != nil {
		return fmt.Errorf("failed to delete task: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrTaskNotFound
	}
	return nil
}

// escapeLike escapes LIKE metacharacters so user input matches literally
// inside the ILIKE pattern.
func escapeLike(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	s = strings.ReplaceAll(s, `%`, `\%`)
	s = strings.ReplaceAll(s, `_`, `\_`)
	return s
}
