package server

import (
	"context"
	"fmt"
	"html/template"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/sessions"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"

	"todoapp/internal/config"
	"todoapp/internal/domain"
	apperrors "todoapp/internal/errors"
)

// --- Mock implementations ---

type mockAppService struct {
	registerUserFn     func(ctx context.Context, username, password string) (*domain.User, error)
	authenticateUserFn func(ctx context.Context, username, password string) (*domain.User, error)
	getUserByIDFn      func(ctx context.Context, id int64) (*domain.User, error)
	createTaskFn       func(ctx context.Context, ownerID int64, title, description string) (*domain.Task, error)
	listTasksFn        func(ctx context.Context, ownerID int64, titleFilter string) ([]domain.Task, error)
	getTaskFn          func(ctx context.Context, taskID, ownerID int64) (*domain.Task, error)
	updateTaskFn       func(ctx context.Context, taskID, ownerID int64, title, description string) error
	deleteTaskFn       func(ctx context.Context, taskID, ownerID int64) error
}

func (m *mockAppService) RegisterUser(ctx context.Context, username, password string) (*domain.User, error) {
	if m.registerUserFn != nil {
		return m.registerUserFn(ctx, username, password)
	}
	return nil, fmt.Errorf("not implemented")
}

func (m *mockAppService) AuthenticateUser(ctx context.Context, username, password string) (*domain.User, error) {
	if m.authenticateUserFn != nil {
		return m.authenticateUserFn(ctx, username, password)
	}
	return nil, fmt.Errorf("not implemented")
}

func (m *mockAppService) GetUserByID(ctx context.Context, id int64) (*domain.User, error) {
	if m.getUserByIDFn != nil {
		return m.getUserByIDFn(ctx, id)
	}
	return &domain.User{ID: id, Username: "testuser"}, nil
}

func (m *mockAppService) CreateTask(ctx context.Context, ownerID int64, title, description string) (*domain.Task, error) {
	if m.createTaskFn != nil {
		return m.createTaskFn(ctx, ownerID, title, description)
	}
	return &domain.Task{ID: 1, UserID: ownerID, Title: title, Description: description}, nil
}

func (m *mockAppService) ListTasks(ctx context.Context, ownerID int64, titleFilter string) ([]domain.Task, error) {
	if m.listTasksFn != nil {
		return m.listTasksFn(ctx, ownerID, titleFilter)
	}
	return []domain.Task{}, nil
}

func (m *mockAppService) GetTask(ctx context.Context, taskID, ownerID int64) (*domain.Task, error) {
	if m.getTaskFn != nil {
		return m.getTaskFn(ctx, taskID, ownerID)
	}
	return nil, domain.ErrTaskNotFound
}

func (m *mockAppService) UpdateTask(ctx context.Context, taskID, ownerID int64, title, description string) error {
	if m.updateTaskFn != nil {
		return m.updateTaskFn(ctx, taskID, ownerID, title, description)
	}
	return nil
}

func (m *mockAppService) DeleteTask(ctx context.Context, taskID, ownerID int64) error {
	if m.deleteTaskFn != nil {
		return m.deleteTaskFn(ctx, taskID, ownerID)
	}
	return nil
}

// --- Test helpers ---

func newTestTemplates(t *testing.T) *template.Template {
	t.Helper()

	root := template.New("root")
	template.Must(root.New("index.html").Parse(
		`Index user={{.Username}} q={{.Query}} tasks={{len .Tasks}}{{range .Flashes}} flash:{{.Level}}:{{.Message}}{{end}}`))
	template.Must(root.New("update.html").Parse(
		`Update task={{.Task.Title}}{{range .Flashes}} flash:{{.Level}}:{{.Message}}{{end}}`))
	template.Must(root.New("login.html").Parse(
		`Login next={{.Next}}{{range .Flashes}} flash:{{.Level}}:{{.Message}}{{end}}`))
	template.Must(root.New("register.html").Parse(
		`Register{{range .Flashes}} flash:{{.Level}}:{{.Message}}{{end}}`))
	template.Must(root.New("about.html").Parse(
		`About{{range .Flashes}} flash:{{.Level}}:{{.Message}}{{end}}`))
	return root
}

func newTestServer(t *testing.T, app domain.AppService, opts ...func(*Server)) *Server {
	t.Helper()

	store := sessions.NewCookieStore([]byte("test-secret-key-32-bytes-long!!!"))
	store.Options = &sessions.Options{
		Path:   "/",
		MaxAge: 3600,
	}

	e := echo.New()
	// Install error middleware for tests to match production behavior
	e.Use(apperrors.Middleware())

	srv := &Server{
		echo:           e,
		config:         &config.Config{AppEnv: "test", Port: "8080"},
		app:            app,
		sessionStore:   store,
		templates:      newTestTemplates(t),
		csrfMiddleware: newCSRFMiddleware(),
		loginLimiter:   NewLoginRateLimiter(loginAttemptsPerMinute/60.0, loginBurst),
	}

	for _, opt := range opts {
		opt(srv)
	}

	// Register routes so endpoints are available for testing
	srv.registerRoutes()

	return srv
}

func withPostgresHealthCheck(db postgresHealthChecker) func(*Server) {
	return func(s *Server) {
		s.db = db
	}
}

// callHandler wraps a handler with error middleware, matching production behavior
func callHandler(handler echo.HandlerFunc, c echo.Context) error {
	return apperrors.Middleware()(handler)(c)
}

func setSessionUserID(t *testing.T, srv *Server, req *http.Request, rec *httptest.ResponseRecorder, userID int64) {
	t.Helper()
	session, err := srv.sessionStore.Get(req, sessionName)
	require.NoError(t, err)
	session.Values[sessionKeyUserID] = userID
	require.NoError(t, session.Save(req, rec))
}

// requestWithSession builds a request carrying the session cookies captured
// in rec.
func requestWithSession(method, target string, rec *httptest.ResponseRecorder) *http.Request {
	req := httptest.NewRequest(method, target, nil)
	for _, cookie := range rec.Result().Cookies() {
		req.AddCookie(cookie)
	}
	return req
}
