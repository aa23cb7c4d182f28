package server

import (
	"errors"
	"log/slog"
	"net/http"
	"net/url"
	"strings"

	"github.com/labstack/echo/v4"

	"todoapp/internal/domain"
	"todoapp/internal/metrics"
)

// requireAuth redirects anonymous requests to the login page, remembering
// where they were headed.
func (s *Server) requireAuth(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		session, err := s.sessionStore.Get(c.Request(), sessionName)
		if err != nil {
			return s.redirectToLogin(c)
		}

		userID, ok := session.Values[sessionKeyUserID].(int64)
		if !ok {
			return s.redirectToLogin(c)
		}

		// Store userID in context for handlers
		c.Set("userID", userID)
		return next(c)
	}
}

func (s *Server) redirectToLogin(c echo.Context) error {
	target := "/login"
	if path := c.Request().URL.Path; path != "/" && c.Request().Method == http.MethodGet {
		target += "?next=" + url.QueryEscape(path)
	}
	return c.Redirect(http.StatusFound, target)
}

// sanitizeNext keeps redirects local. Anything that is not a plain absolute
// path falls back to the task list.
func sanitizeNext(next string) string {
	if next == "" || !strings.HasPrefix(next, "/") || strings.HasPrefix(next, "//") {
		return "/"
	}
	return next
}

func (s *Server) handleRegisterPage(c echo.Context) error {
	return s.renderTemplate(c, "register.html", map[string]any{
		"Flashes":   s.popFlashes(c),
		"CSRFToken": c.Get("csrf"),
	})
}

func (s *Server) handleRegister(c echo.Context) error {
	username := c.FormValue("username")
	password := c.FormValue("password")
	ctx := c.Request().Context()

	user, err := s.app.RegisterUser(ctx, username, password)
	switch {
	case errors.Is(err, domain.ErrEmptyField):
		s.addFlash(c, flashDanger, "Username and password are required!")
		return c.Redirect(http.StatusFound, "/register")
	case errors.Is(err, domain.ErrFieldTooLong):
		s.addFlash(c, flashDanger, "Username is too long!")
		return c.Redirect(http.StatusFound, "/register")
	case errors.Is(err, domain.ErrDuplicateUsername):
		s.addFlash(c, flashWarning, "Username already exists!")
		return c.Redirect(http.StatusFound, "/register")
	case err != nil:
		return err
	}

	slog.Info("User registered", "user_id", user.ID)
	s.addFlash(c, flashSuccess, "Registration successful! Please log in.")
	return c.Redirect(http.StatusFound, "/login")
}

func (s *Server) handleLoginPage(c echo.Context) error {
	return s.renderTemplate(c, "login.html", map[string]any{
		"Flashes":   s.popFlashes(c),
		"CSRFToken": c.Get("csrf"),
		"Next":      sanitizeNext(c.QueryParam("next")),
	})
}

func (s *Server) handleLogin(c echo.Context) error {
	if !s.loginLimiter.Allow(c.RealIP()) {
		metrics.LoginsTotal.WithLabelValues("rate_limited").Inc()
		slog.Warn("Login rate limited", "ip", c.RealIP())
		return c.String(http.StatusTooManyRequests, "Too many login attempts. Please try again later.")
	}

	username := c.FormValue("username")
	password := c.FormValue("password")
	next := sanitizeNext(c.FormValue("next"))
	ctx := c.Request().Context()

	user, err := s.app.AuthenticateUser(ctx, username, password)
	if errors.Is(err, domain.ErrInvalidCredentials) {
		s.addFlash(c, flashDanger, "Invalid username or password!")
		return c.Redirect(http.StatusFound, "/login")
	}
	if err != nil {
		return err
	}

	session, err := s.sessionStore.Get(c.Request(), sessionName)
	if err != nil {
		slog.Warn("Failed to get session during login, starting fresh", "error", err)
	}
	session.Values[sessionKeyUserID] = user.ID
	if err := session.Save(c.Request(), c.Response().Writer); err != nil {
		slog.Error("Failed to save session during login", "error", err)
		return c.String(http.StatusInternalServerError, "Failed to save session")
	}

	slog.Info("User logged in", "user_id", user.ID)
	s.addFlash(c, flashSuccess, "Welcome back, "+user.Username+"!")
	return c.Redirect(http.StatusFound, next)
}

func (s *Server) handleLogout(c echo.Context) error {
	session, err := s.sessionStore.Get(c.Request(), sessionName)
	if err != nil {
		slog.Warn("Failed to get session during logout, starting fresh", "error", err)
	}

	// Drop only the identity so the session can still carry the flash
	// across the redirect.
	delete(session.Values, sessionKeyUserID)
	session.AddFlash(flash{Level: flashInfo, Message: "You have been logged out."})
	if err := session.Save(c.Request(), c.Response().Writer); err != nil {
		slog.Error("Failed to save session during logout", "error", err)
		return c.String(http.StatusInternalServerError, "Failed to logout due to session error. Please try again or clear your browser cookies.")
	}

	return c.Redirect(http.StatusFound, "/login")
}
