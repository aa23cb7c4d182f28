package server

import "github.com/labstack/echo/v4"

func (s *Server) handleAbout(c echo.Context) error {
	return s.renderTemplate(c, "about.html", map[string]any{
		"Flashes": s.popFlashes(c),
	})
}
