package handler

import (
	"github.com/labstack/echo/v4"

	"github.com/deppfellow/portfolio-api/internal/database"
	"github.com/deppfellow/portfolio-api/internal/server"
	"github.com/deppfellow/portfolio-api/internal/service"
)

type PageHandler struct {
	Handler
	pages *service.PageService
}

func NewPageHandler(s *server.Server, pages *service.PageService) *PageHandler {
	return &PageHandler{
		Handler: NewHandler(s),
		pages:   pages,
	}
}

func (h *PageHandler) All(c echo.Context, _ *service.NoRequest) (*database.Result, error) {
	return h.pages.All(c.Request().Context())
}

func (h *PageHandler) Visible(c echo.Context, _ *service.NoRequest) (*database.Result, error) {
	return h.pages.Visible(c.Request().Context())
}

func (h *PageHandler) Hidden(c echo.Context, _ *service.NoRequest) (*database.Result, error) {
	return h.pages.Hidden(c.Request().Context())
}

func (h *PageHandler) Get(c echo.Context, req *service.GetPageRequest) (*database.Result, error) {
	return h.pages.Get(c.Request().Context(), req)
}

func (h *PageHandler) Create(c echo.Context, req *service.CreatePageRequest) (*database.Result, error) {
	return h.pages.Create(c.Request().Context(), req)
}

func (h *PageHandler) Update(c echo.Context, req *service.UpdatePageRequest) (*database.Result, error) {
	return h.pages.Update(c.Request().Context(), req)
}

func (h *PageHandler) Delete(c echo.Context, req *service.DeleteByNameRequest) (*database.Result, error) {
	return h.pages.Delete(c.Request().Context(), req)
}
