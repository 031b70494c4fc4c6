package router

import (
	"github.com/labstack/echo/v4"

	"github.com/deppfellow/portfolio-api/internal/handler"
	"github.com/deppfellow/portfolio-api/internal/server"
)

// registerSystemRoutes registers the routes outside /api: the health check
// and the static files.
func registerSystemRoutes(r *echo.Echo, s *server.Server, h *handler.Handlers) {
	r.GET("/status", h.Health.CheckHealth)
	r.Static("/static", s.Config.Server.StaticDir)
}
