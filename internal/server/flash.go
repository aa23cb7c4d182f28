package server

import (
	"encoding/gob"
	"log/slog"

	"github.com/labstack/echo/v4"
)

// Flash levels map onto the alert styles in the templates.
const (
	flashSuccess = "success"
	flashDanger  = "danger"
	flashInfo    = "info"
	flashWarning = "warning"
)

// flash is a one-shot message carried in the session cookie across a
// redirect.
type flash struct {
	Level   string
	Message string
}

func init() {
	gob.Register(flash{})
}

// addFlash queues a flash message and saves the session.
func (s *Server) addFlash(c echo.Context, level, message string) {
	session, err := s.sessionStore.Get(c.Request(), sessionName)
	if err != nil {
		slog.Warn("Failed to get session for flash, starting fresh", "error", err)
	}
	session.AddFlash(flash{Level: level, Message: message})
	if err := session.Save(c.Request(), c.Response().Writer); err != nil {
		slog.Error("Failed to save flash to session", "error", err)
	}
}

// popFlashes drains queued flash messages and saves the session so they are
// shown exactly once.
func (s *Server) popFlashes(c echo.Context) []flash {
	session, err := s.sessionStore.Get(c.Request(), sessionName)
	if err != nil {
		slog.Warn("Failed to get session for flashes, starting fresh", "error", err)
	}

	raw := session.Flashes()
	if len(raw) == 0 {
		return nil
	}

	if err := session.Save(c.Request(), c.Response().Writer); err != nil {
		slog.Error("Failed to save session after draining flashes", "error", err)
	}

	flashes := make([]flash, 0, len(raw))
	for _, v := range raw {
		if f, ok := v.(flash); ok {
			flashes = append(flashes, f)
		}
	}
	return flashes
}
