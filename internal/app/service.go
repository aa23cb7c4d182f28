// Package app is the application layer. It orchestrates the domain
// repositories and owns validation, credential checks, and task ownership
// rules.
package app

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"github.com/jonboulle/clockwork"

	"todoapp/internal/crypto"
	"todoapp/internal/domain"
	"todoapp/internal/metrics"
)

// Service implements domain.AppService on top of the user and task
// repositories.
type Service struct {
	users domain.UserRepository
	tasks domain.TaskRepository
	clock clockwork.Clock
}

// NewService creates the application layer service.
func NewService(users domain.UserRepository, tasks domain.TaskRepository, clock clockwork.Clock) *Service {
	return &Service{
		users: users,
		tasks: tasks,
		clock: clock,
	}
}

// RegisterUser creates a new account with a hashed password.
func (s *Service) RegisterUser(ctx context.Context, username, password string) (*domain.User, error) {
	username = strings.TrimSpace(username)
	if username == "" || password == "" {
		metrics.RegistrationsTotal.WithLabelValues("invalid").Inc()
		return nil, domain.ErrEmptyField
	}
	if len(username) > domain.MaxUsernameLen {
		metrics.RegistrationsTotal.WithLabelValues("invalid").Inc()
		return nil, domain.ErrFieldTooLong
	}

	hash, err := crypto.HashPassword(password)
	if err != nil {
		return nil, err
	}

	user := &domain.User{
		Username:     username,
		PasswordHash: hash,
	}
	if err := s.users.Create(ctx, user); err != nil {
		if errors.Is(err, domain.ErrDuplicateUsername) {
			metrics.RegistrationsTotal.WithLabelValues("duplicate").Inc()
		}
		return nil, err
	}

	metrics.RegistrationsTotal.WithLabelValues("success").Inc()
	slog.Info("User registered", "user_id", user.ID)
	return user, nil
}

// AuthenticateUser verifies the credentials and returns the account.
// Unknown usernames and wrong passwords both yield ErrInvalidCredentials
// so the response does not reveal which accounts exist.
func (s *Service) AuthenticateUser(ctx context.Context, username, password string) (*domain.User, error) {
	username = strings.TrimSpace(username)

	user, err := s.users.GetByUsername(ctx, username)
	if errors.Is(err, domain.ErrUserNotFound) {
		metrics.LoginsTotal.WithLabelValues("failure").Inc()
		return nil, domain.ErrInvalidCredentials
	}
	if err != nil {
		return nil, err
	}

	match, err := crypto.VerifyPassword(password, user.PasswordHash)
	if err != nil {
		return nil, err
	}
	if !match {
		metrics.LoginsTotal.WithLabelValues("failure").Inc()
		return nil, domain.ErrInvalidCredentials
	}

	metrics.LoginsTotal.WithLabelValues("success").Inc()
	return user, nil
}

// GetUserByID retrieves a user by internal ID.
func (s *Service) GetUserByID(ctx context.Context, id int64) (*domain.User, error) {
	return s.users.GetByID(ctx, id)
}

// CreateTask adds a task to the owner's list.
func (s *Service) CreateTask(ctx context.Context, ownerID int64, title, description string) (*domain.Task, error) {
	title = strings.TrimSpace(title)
	description = strings.TrimSpace(description)
	if err := validateTaskFields(title, description); err != nil {
		return nil, err
	}

	task := &domain.Task{
		UserID:      ownerID,
		Title:       title,
		Description: description,
		CreatedAt:   s.clock.Now().UTC(),
	}
	if err := s.tasks.Create(ctx, task); err != nil {
		return nil, err
	}

	metrics.TasksCreatedTotal.Inc()
	return task, nil
}

// ListTasks returns the owner's tasks in insertion order, optionally narrowed
// to titles containing titleFilter (case-insensitive).
func (s *Service) ListTasks(ctx context.Context, ownerID int64, titleFilter string) ([]domain.Task, error) {
	return s.tasks.ListByOwner(ctx, ownerID, strings.TrimSpace(titleFilter))
}

// GetTask returns a single task of the owner.
func (s *Service) GetTask(ctx context.Context, id, ownerID int64) (*domain.Task, error) {
	return s.tasks.GetByOwner(ctx, id, ownerID)
}

// UpdateTask rewrites title and description of the owner's task.
func (s *Service) UpdateTask(ctx context.Context, id, ownerID int64, title, description string) error {
	title = strings.TrimSpace(title)
	description = strings.TrimSpace(description)
	if err := validateTaskFields(title, description); err != nil {
		return err
	}

	return s.tasks.Update(ctx, id, ownerID, title, description)
}

// DeleteTask removes the owner's task.
func (s *Service) DeleteTask(ctx context.Context, id, ownerID int64) error {
	return s.tasks.Delete(ctx, id, ownerID)
}

func validateTaskFields(title, description string) error {
	if title == "" || description == "" {
		return domain.ErrEmptyField
	}
	if len(title) > domain.MaxTitleLen || len(description) > domain.MaxDescriptionLen {
		return domain.ErrFieldTooLong
	}
	return nil
}
