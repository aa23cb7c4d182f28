package database

import (
	"context"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/require"

	"todoapp/internal/domain"
)

// CreateTestUser is a helper that creates a user with default values for testing.
// Returns the created user.
func CreateTestUser(t *testing.T, pool *pgxpool.Pool, username string) *domain.User {
	t.Helper()

	repo := NewUserRepo(pool)
	ctx := context.Background()

	user := &domain.User{
		Username:     username,
		PasswordHash: "$argon2id$v=19$m=65536,t=3,p=2$c2FsdHNhbHQ$dGVzdGhhc2g",
	}
	err := repo.Create(ctx, user)
	require.NoError(t, err)
	require.NotZero(t, user.ID)

	return user
}

// CreateTestTask is a helper that creates a task owned by the given user.
func CreateTestTask(t *testing.T, pool *pgxpool.Pool, ownerID int64, title string) *domain.Task {
	t.Helper()

	repo := NewTaskRepo(pool)
	ctx := context.Background()

	task := &domain.Task{
		UserID:      ownerID,
		Title:       title,
		Description: "description of " + title,
		CreatedAt:   time.Now().UTC(),
	}
	err := repo.Create(ctx, task)
	require.NoError(t, err)
	require.NotZero(t, task.ID)

	return task
}
