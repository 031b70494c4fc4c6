package handler

import (
	"github.com/labstack/echo/v4"

	"github.com/deppfellow/portfolio-api/internal/database"
	"github.com/deppfellow/portfolio-api/internal/server"
	"github.com/deppfellow/portfolio-api/internal/service"
)

// TagHandler serves categories and technologies. The two differ only in
// their update payload.
type TagHandler struct {
	Handler
	tags *service.TagService
}

func NewTagHandler(s *server.Server, tags *service.TagService) *TagHandler {
	return &TagHandler{
		Handler: NewHandler(s),
		tags:    tags,
	}
}

func (h *TagHandler) All(c echo.Context, _ *service.NoRequest) (*database.Result, error) {
	return h.tags.All(c.Request().Context())
}

func (h *TagHandler) Create(c echo.Context, req *service.CreateTagRequest) (*database.Result, error) {
	return h.tags.Create(c.Request().Context(), req)
}

func (h *TagHandler) Rename(c echo.Context, req *service.UpdateCategoryRequest) (*database.Result, error) {
	return h.tags.Rename(c.Request().Context(), req)
}

func (h *TagHandler) Update(c echo.Context, req *service.UpdateTechnologyRequest) (*database.Result, error) {
	return h.tags.Update(c.Request().Context(), req)
}

func (h *TagHandler) Delete(c echo.Context, req *service.DeleteByNameRequest) (*database.Result, error) {
	return h.tags.Delete(c.Request().Context(), req)
}
