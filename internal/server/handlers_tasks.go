package server

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"todoapp/internal/domain"
	apperrors "todoapp/internal/errors"
)

func (s *Server) currentUserID(c echo.Context) (int64, error) {
	userID, ok := c.Get("userID").(int64)
	if !ok {
		return 0, apperrors.InternalError("invalid user ID in session", nil)
	}
	return userID, nil
}

func parseTaskID(c echo.Context) (int64, error) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return 0, apperrors.ValidationError("invalid task id")
	}
	return id, nil
}

// renderTaskList renders the index page with the owner's tasks, honoring the
// q search parameter.
func (s *Server) renderTaskList(c echo.Context, userID int64) error {
	ctx := c.Request().Context()
	query := c.QueryParam("q")

	tasks, err := s.app.ListTasks(ctx, userID, query)
	if err != nil {
		return apperrors.InternalError("failed to load tasks", err)
	}

	user, err := s.app.GetUserByID(ctx, userID)
	if err != nil {
		return apperrors.InternalError("failed to load user", err)
	}

	return s.renderTemplate(c, "index.html", map[string]any{
		"Username":  user.Username,
		"Tasks":     tasks,
		"Query":     query,
		"Flashes":   s.popFlashes(c),
		"CSRFToken": c.Get("csrf"),
	})
}

func (s *Server) handleTaskList(c echo.Context) error {
	userID, err := s.currentUserID(c)
	if err != nil {
		return err
	}
	return s.renderTaskList(c, userID)
}

func (s *Server) handleCreateTask(c echo.Context) error {
	userID, err := s.currentUserID(c)
	if err != nil {
		return err
	}
	ctx := c.Request().Context()

	title := c.FormValue("title")
	description := c.FormValue("desc")

	_, err = s.app.CreateTask(ctx, userID, title, description)
	switch {
	case errors.Is(err, domain.ErrEmptyField):
		// Re-render the list so the user keeps their place.
		s.addFlash(c, flashDanger, "Title and description cannot be empty!")
		return s.renderTaskList(c, userID)
	case errors.Is(err, domain.ErrFieldTooLong):
		s.addFlash(c, flashDanger, "Title or description is too long!")
		return s.renderTaskList(c, userID)
	case err != nil:
		return apperrors.InternalError("failed to create task", err)
	}

	slog.Info("Task created", "user_id", userID)
	s.addFlash(c, flashSuccess, "Task added successfully!")
	return c.Redirect(http.StatusFound, "/")
}

func (s *Server) handleUpdateTaskPage(c echo.Context) error {
	userID, err := s.currentUserID(c)
	if err != nil {
		return err
	}
	taskID, err := parseTaskID(c)
	if err != nil {
		return err
	}

	task, err := s.app.GetTask(c.Request().Context(), taskID, userID)
	if errors.Is(err, domain.ErrTaskNotFound) {
		return apperrors.NotFoundError("task not found").WithContext("task_id", taskID)
	}
	if err != nil {
		return apperrors.InternalError("failed to load task", err)
	}

	return s.renderTemplate(c, "update.html", map[string]any{
		"Task":      task,
		"Flashes":   s.popFlashes(c),
		"CSRFToken": c.Get("csrf"),
	})
}

func (s *Server) handleUpdateTask(c echo.Context) error {
	userID, err := s.currentUserID(c)
	if err != nil {
		return err
	}
	taskID, err := parseTaskID(c)
	if err != nil {
		return err
	}

	title := c.FormValue("title")
	description := c.FormValue("desc")

	err = s.app.UpdateTask(c.Request().Context(), taskID, userID, title, description)
	switch {
	case errors.Is(err, domain.ErrTaskNotFound):
		return apperrors.NotFoundError("task not found").WithContext("task_id", taskID)
	case errors.Is(err, domain.ErrEmptyField):
		s.addFlash(c, flashDanger, "Title and description cannot be empty!")
		return c.Redirect(http.StatusFound, "/update/"+c.Param("id"))
	case errors.Is(err, domain.ErrFieldTooLong):
		s.addFlash(c, flashDanger, "Title or description is too long!")
		return c.Redirect(http.StatusFound, "/update/"+c.Param("id"))
	case err != nil:
		return apperrors.InternalError("failed to update task", err)
	}

	slog.Info("Task updated", "user_id", userID, "task_id", taskID)
	s.addFlash(c, flashInfo, "Task updated successfully!")
	return c.Redirect(http.StatusFound, "/")
}

func (s *Server) handleDeleteTask(c echo.Context) error {
	userID, err := s.currentUserID(c)
	if err != nil {
		return err
	}
	taskID, err := parseTaskID(c)
	if err != nil {
		return err
	}

	err = s.app.DeleteTask(c.Request().Context(), taskID, userID)
	if errors.Is(err, domain.ErrTaskNotFound) {
		return apperrors.NotFoundError("task not found").WithContext("task_id", taskID)
	}
	if err != nil {
		return apperrors.InternalError("failed to delete task", err)
	}

	slog.Info("Task deleted", "user_id", userID, "task_id", taskID)
	s.addFlash(c, flashDanger, "Task deleted successfully!")
	return c.Redirect(http.StatusFound, "/")
}
