package server

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"todoapp/internal/domain"
)

// --- task list tests ---

func TestHandleTaskList_RendersOwnTasks(t *testing.T) {
	var gotOwnerID int64
	var gotFilter string
	app := &mockAppService{
		listTasksFn: func(_ context.Context, ownerID int64, titleFilter string) ([]domain.Task, error) {
			gotOwnerID, gotFilter = ownerID, titleFilter
			return []domain.Task{
				{ID: 1, UserID: ownerID, Title: "groceries", CreatedAt: time.Now()},
				{ID: 2, UserID: ownerID, Title: "laundry", CreatedAt: time.Now()},
			}, nil
		},
		getUserByIDFn: func(_ context.Context, id int64) (*domain.User, error) {
			return &domain.User{ID: id, Username: "alice"}, nil
		},
	}
	srv := newTestServer(t, app)

	req := httptest.NewRequest(http.MethodGet, "/?q=ries", nil)
	rec := httptest.NewRecorder()
	c := srv.echo.NewContext(req, rec)
	c.Set("userID", int64(42))

	err := srv.handleTaskList(c)
	assert.NoError(t, err)
	assert.Equal(t, 200, rec.Code)
	assert.Equal(t, int64(42), gotOwnerID)
	assert.Equal(t, "ries", gotFilter)
	assert.Contains(t, rec.Body.String(), "user=alice")
	assert.Contains(t, rec.Body.String(), "q=ries")
	assert.Contains(t, rec.Body.String(), "tasks=2")
}

func TestHandleTaskList_MissingUserID(t *testing.T) {
	srv := newTestServer(t, &mockAppService{})

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := srv.echo.NewContext(req, rec)

	err := callHandler(srv.handleTaskList, c)
	assert.NoError(t, err)
	assert.Equal(t, 500, rec.Code)
}

// --- create task tests ---

func TestHandleCreateTask_Success(t *testing.T) {
	var gotTitle, gotDesc string
	app := &mockAppService{
		createTaskFn: func(_ context.Context, ownerID int64, title, description string) (*domain.Task, error) {
			gotTitle, gotDesc = title, description
			return &domain.Task{ID: 1, UserID: ownerID, Title: title, Description: description}, nil
		},
	}
	srv := newTestServer(t, app)

	form := url.Values{"title": {"groceries"}, "desc": {"milk and eggs"}}
	req := newFormRequest("/", form)
	rec := httptest.NewRecorder()
	c := srv.echo.NewContext(req, rec)
	c.Set("userID", int64(42))

	err := srv.handleCreateTask(c)
	assert.NoError(t, err)
	assert.Equal(t, 302, rec.Code)
	assert.Equal(t, "/", rec.Header().Get("Location"))
	assert.Equal(t, "groceries", gotTitle)
	assert.Equal(t, "milk and eggs", gotDesc)
}

func TestHandleCreateTask_EmptyInputRerendersList(t *testing.T) {
	app := &mockAppService{
		createTaskFn: func(_ context.Context, _ int64, _, _ string) (*domain.Task, error) {
			return nil, domain.ErrEmptyField
		},
		listTasksFn: func(_ context.Context, _ int64, _ string) ([]domain.Task, error) {
			return []domain.Task{{ID: 1, Title: "existing"}}, nil
		},
	}
	srv := newTestServer(t, app)

	form := url.Values{"title": {""}, "desc": {""}}
	req := newFormRequest("/", form)
	rec := httptest.NewRecorder()
	c := srv.echo.NewContext(req, rec)
	c.Set("userID", int64(42))

	err := srv.handleCreateTask(c)
	assert.NoError(t, err)
	assert.Equal(t, 200, rec.Code)
	assert.Contains(t, rec.Body.String(), "tasks=1")
	assert.Contains(t, rec.Body.String(), "flash:danger:Title and description cannot be empty!")
}

// --- update task tests ---

func TestHandleUpdateTaskPage_Success(t *testing.T) {
	app := &mockAppService{
		getTaskFn: func(_ context.Context, taskID, ownerID int64) (*domain.Task, error) {
			return &domain.Task{ID: taskID, UserID: ownerID, Title: "groceries"}, nil
		},
	}
	srv := newTestServer(t, app)

	req := httptest.NewRequest(http.MethodGet, "/update/5", nil)
	rec := httptest.NewRecorder()
	c := srv.echo.NewContext(req, rec)
	c.SetPath("/update/:id")
	c.SetParamNames("id")
	c.SetParamValues("5")
	c.Set("userID", int64(42))

	err := srv.handleUpdateTaskPage(c)
	assert.NoError(t, err)
	assert.Equal(t, 200, rec.Code)
	assert.Contains(t, rec.Body.String(), "task=groceries")
}

func TestHandleUpdateTaskPage_NotFound(t *testing.T) {
	app := &mockAppService{
		getTaskFn: func(_ context.Context, _, _ int64) (*domain.Task, error) {
			return nil, domain.ErrTaskNotFound
		},
	}
	srv := newTestServer(t, app)

	req := httptest.NewRequest(http.MethodGet, "/update/99", nil)
	rec := httptest.NewRecorder()
	c := srv.echo.NewContext(req, rec)
	c.SetPath("/update/:id")
	c.SetParamNames("id")
	c.SetParamValues("99")
	c.Set("userID", int64(42))

	err := callHandler(srv.handleUpdateTaskPage, c)
	assert.NoError(t, err)
	assert.Equal(t, 404, rec.Code)
}

func TestHandleUpdateTask_Success(t *testing.T) {
	var gotTaskID, gotOwnerID int64
	app := &mockAppService{
		updateTaskFn: func(_ context.Context, taskID, ownerID int64, _, _ string) error {
			gotTaskID, gotOwnerID = taskID, ownerID
			return nil
		},
	}
	srv := newTestServer(t, app)

	form := url.Values{"title": {"new title"}, "desc": {"new desc"}}
	req := newFormRequest("/update/5", form)
	rec := httptest.NewRecorder()
	c := srv.echo.NewContext(req, rec)
	c.SetPath("/update/:id")
	c.SetParamNames("id")
	c.SetParamValues("5")
	c.Set("userID", int64(42))

	err := srv.handleUpdateTask(c)
	assert.NoError(t, err)
	assert.Equal(t, 302, rec.Code)
	assert.Equal(t, "/", rec.Header().Get("Location"))
	assert.Equal(t, int64(5), gotTaskID)
	assert.Equal(t, int64(42), gotOwnerID)
}

func TestHandleUpdateTask_EmptyInputRedirectsBack(t *testing.T) {
	app := &mockAppService{
		updateTaskFn: func(_ context.Context, _, _ int64, _, _ string) error {
			return domain.ErrEmptyField
		},
	}
	srv := newTestServer(t, app)

	form := url.Values{"title": {""}, "desc": {""}}
	req := newFormRequest("/update/5", form)
	rec := httptest.NewRecorder()
	c := srv.echo.NewContext(req, rec)
	c.SetPath("/update/:id")
	c.SetParamNames("id")
	c.SetParamValues("5")
	c.Set("userID", int64(42))

	err := srv.handleUpdateTask(c)
	assert.NoError(t, err)
	assert.Equal(t, 302, rec.Code)
	assert.Equal(t, "/update/5", rec.Header().Get("Location"))
}

func TestHandleUpdateTask_NotFound(t *testing.T) {
	app := &mockAppService{
		updateTaskFn: func(_ context.Context, _, _ int64, _, _ string) error {
			return domain.ErrTaskNotFound
		},
	}
	srv := newTestServer(t, app)

	form := url.Values{"title": {"t"}, "desc": {"d"}}
	req := newFormRequest("/update/99", form)
	rec := httptest.NewRecorder()
	c := srv.echo.NewContext(req, rec)
	c.SetPath("/update/:id")
	c.SetParamNames("id")
	c.SetParamValues("99")
	c.Set("userID", int64(42))

	err := callHandler(srv.handleUpdateTask, c)
	assert.NoError(t, err)
	assert.Equal(t, 404, rec.Code)
}

func TestHandleUpdateTask_InvalidID(t *testing.T) {
	srv := newTestServer(t, &mockAppService{})

	req := httptest.NewRequest(http.MethodGet, "/update/abc", nil)
	rec := httptest.NewRecorder()
	c := srv.echo.NewContext(req, rec)
	c.SetPath("/update/:id")
	c.SetParamNames("id")
	c.SetParamValues("abc")
	c.Set("userID", int64(42))

	err := callHandler(srv.handleUpdateTaskPage, c)
	assert.NoError(t, err)
	assert.Equal(t, 400, rec.Code)
}

// --- delete task tests ---

func TestHandleDeleteTask_Success(t *testing.T) {
	var gotTaskID, gotOwnerID int64
	app := &mockAppService{
		deleteTaskFn: func(_ context.Context, taskID, ownerID int64) error {
			gotTaskID, gotOwnerID = taskID, ownerID
			return nil
		},
	}
	srv := newTestServer(t, app)

	req := httptest.NewRequest(http.MethodGet, "/delete/5", nil)
	rec := httptest.NewRecorder()
	c := srv.echo.NewContext(req, rec)
	c.SetPath("/delete/:id")
	c.SetParamNames("id")
	c.SetParamValues("5")
	c.Set("userID", int64(42))

	err := srv.handleDeleteTask(c)
	assert.NoError(t, err)
	assert.Equal(t, 302, rec.Code)
	assert.Equal(t, "/", rec.Header().Get("Location"))
	assert.Equal(t, int64(5), gotTaskID)
	assert.Equal(t, int64(42), gotOwnerID)
}

func TestHandleDeleteTask_NotFound(t *testing.T) {
	app := &mockAppService{
		deleteTaskFn: func(_ context.Context, _, _ int64) error {
			return domain.ErrTaskNotFound
		},
	}
	srv := newTestServer(t, app)

	req := httptest.NewRequest(http.MethodGet, "/delete/99", nil)
	rec := httptest.NewRecorder()
	c := srv.echo.NewContext(req, rec)
	c.SetPath("/delete/:id")
	c.SetParamNames("id")
	c.SetParamValues("99")
	c.Set("userID", int64(42))

	err := callHandler(srv.handleDeleteTask, c)
	assert.NoError(t, err)
	assert.Equal(t, 404, rec.Code)
}

func TestHandleDeleteTask_InternalError(t *testing.T) {
	app := &mockAppService{
		deleteTaskFn: func(_ context.Context, _, _ int64) error {
			return fmt.Errorf("connection refused")
		},
	}
	srv := newTestServer(t, app)

	req := httptest.NewRequest(http.MethodGet, "/delete/5", nil)
	rec := httptest.NewRecorder()
	c := srv.echo.NewContext(req, rec)
	c.SetPath("/delete/:id")
	c.SetParamNames("id")
	c.SetParamValues("5")
	c.Set("userID", int64(42))

	err := callHandler(srv.handleDeleteTask, c)
	assert.NoError(t, err)
	assert.Equal(t, 500, rec.Code)
	// The database error never reaches the response body.
	assert.NotContains(t, rec.Body.String(), "connection refused")
}

// --- about page ---

func TestHandleAbout(t *testing.T) {
	srv := newTestServer(t, &mockAppService{})

	req := httptest.NewRequest(http.MethodGet, "/about", nil)
	rec := httptest.NewRecorder()
	c := srv.echo.NewContext(req, rec)

	require.NoError(t, srv.handleAbout(c))
	assert.Equal(t, 200, rec.Code)
	assert.Contains(t, rec.Body.String(), "About")
}
