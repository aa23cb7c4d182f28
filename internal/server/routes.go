package server

import (
	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func (s *Server) registerRoutes() {
	// Observability endpoints (no auth required)
	s.echo.GET("/health/live", s.handleLiveness)
	s.echo.GET("/health/ready", s.handleReadiness)
	s.echo.GET("/version", s.handleVersion)
	s.echo.GET("/metrics", echo.WrapHandler(promhttp.Handler()))

	// Public pages
	s.echo.GET("/about", s.handleAbout)

	// Auth routes (CSRF protected so the token is issued on GET)
	s.echo.GET("/register", s.handleRegisterPage, s.csrfMiddleware)
	s.echo.POST("/register", s.handleRegister, s.csrfMiddleware)
	s.echo.GET("/login", s.handleLoginPage, s.csrfMiddleware)
	s.echo.POST("/login", s.handleLogin, s.csrfMiddleware)
	s.echo.GET("/logout", s.handleLogout, s.requireAuth)

	// Task routes (authenticated + CSRF protected)
	s.echo.GET("/", s.handleTaskList, s.requireAuth, s.csrfMiddleware)
	s.echo.POST("/", s.handleCreateTask, s.requireAuth, s.csrfMiddleware)
	s.echo.GET("/update/:id", s.handleUpdateTaskPage, s.requireAuth, s.csrfMiddleware)
	s.echo.POST("/update/:id", s.handleUpdateTask, s.requireAuth, s.csrfMiddleware)
	s.echo.GET("/delete/:id", s.handleDeleteTask, s.requireAuth)
}
