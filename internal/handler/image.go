package handler

import (
	"github.com/labstack/echo/v4"

	"github.com/deppfellow/portfolio-api/internal/database"
	"github.com/deppfellow/portfolio-api/internal/server"
	"github.com/deppfellow/portfolio-api/internal/service"
)

type ImageHandler struct {
	Handler
	images *service.ImageService
}

func NewImageHandler(s *server.Server, images *service.ImageService) *ImageHandler {
	return &ImageHandler{
		Handler: NewHandler(s),
		images:  images,
	}
}

func (h *ImageHandler) All(c echo.Context, _ *service.NoRequest) (*database.Result, error) {
	return h.images.All(c.Request().Context())
}

func (h *ImageHandler) ByID(c echo.Context, req *service.IDRequest) (*database.Result, error) {
	return h.images.ByID(c.Request().Context(), req)
}

func (h *ImageHandler) Create(c echo.Context, req *service.CreateImageRequest) (*database.Result, error) {
	return h.images.Create(c.Request().Context(), req)
}

func (h *ImageHandler) Update(c echo.Context, req *service.UpdateImageRequest) (*database.Result, error) {
	return h.images.Update(c.Request().Context(), req)
}

func (h *ImageHandler) Delete(c echo.Context, req *service.DeleteByIDRequest) (*database.Result, error) {
	return h.images.Delete(c.Request().Context(), req)
}
