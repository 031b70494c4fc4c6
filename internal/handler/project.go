package handler

import (
	"github.com/labstack/echo/v4"

	"github.com/deppfellow/portfolio-api/internal/database"
	"github.com/deppfellow/portfolio-api/internal/query"
	"github.com/deppfellow/portfolio-api/internal/server"
	"github.com/deppfellow/portfolio-api/internal/service"
)

// ProjectHandler serves projects and their technology and image links.
type ProjectHandler struct {
	Handler
	projects *service.ProjectService
	links    *service.LinkService
}

func NewProjectHandler(s *server.Server, projects *service.ProjectService, links *service.LinkService) *ProjectHandler {
	return &ProjectHandler{
		Handler:  NewHandler(s),
		projects: projects,
		links:    links,
	}
}

func (h *ProjectHandler) All(c echo.Context, _ *service.NoRequest) (*database.Result, error) {
	return h.projects.All(c.Request().Context())
}

func (h *ProjectHandler) NonScrap(c echo.Context, _ *service.NoRequest) (*database.Result, error) {
	return h.projects.NonScrap(c.Request().Context())
}

func (h *ProjectHandler) Scrap(c echo.Context, _ *service.NoRequest) (*database.Result, error) {
	return h.projects.Scrap(c.Request().Context())
}

func (h *ProjectHandler) ByID(c echo.Context, req *service.IDRequest) (*database.Result, error) {
	return h.projects.ByID(c.Request().Context(), req)
}

func (h *ProjectHandler) Create(c echo.Context, req *service.CreateProjectRequest) (*database.Result, error) {
	return h.projects.Create(c.Request().Context(), req)
}

func (h *ProjectHandler) Update(c echo.Context, req *service.UpdateProjectRequest) (*database.Result, error) {
	return h.projects.Update(c.Request().Context(), req)
}

func (h *ProjectHandler) Delete(c echo.Context, req *service.DeleteByIDRequest) (*database.Result, error) {
	return h.projects.Delete(c.Request().Context(), req)
}

func (h *ProjectHandler) Technologies(c echo.Context, req *service.OptionalIDRequest) (*database.Result, error) {
	return h.links.Tags(c.Request().Context(), query.ProjectTechnology, req)
}

func (h *ProjectHandler) LinkTechnology(c echo.Context, req *service.ProjectTechnologyRequest) (*database.Result, error) {
	return h.links.LinkTag(c.Request().Context(), query.ProjectTechnology, req.ProjectID, req.TechnologyName)
}

func (h *ProjectHandler) LinkTechnologies(c echo.Context, req *service.BatchProjectTechnologyRequest) (*database.Result, error) {
	return h.links.LinkTags(c.Request().Context(), query.ProjectTechnology, req.ProjectID, req.Technologies)
}

func (h *ProjectHandler) UnlinkTechnology(c echo.Context, req *service.ProjectTechnologyRequest) (*database.Result, error) {
	return h.links.UnlinkTag(c.Request().Context(), query.ProjectTechnology, req.ProjectID, req.TechnologyName)
}

func (h *ProjectHandler) UpdateTechnology(c echo.Context, req *service.UpdateProjectTechnologyRequest) (*database.Result, error) {
	return h.links.UpdateProjectTechnology(c.Request().Context(), req)
}

func (h *ProjectHandler) Images(c echo.Context, req *service.OptionalIDRequest) (*database.Result, error) {
	return h.links.Images(c.Request().Context(), query.ProjectImage, req)
}

func (h *ProjectHandler) LinkImage(c echo.Context, req *service.ProjectImageRequest) (*database.Result, error) {
	return h.links.LinkImage(c.Request().Context(), query.ProjectImage, req.ProjectID, req.ImageID)
}

func (h *ProjectHandler) UnlinkImage(c echo.Context, req *service.ProjectImageRequest) (*database.Result, error) {
	return h.links.UnlinkImage(c.Request().Context(), query.ProjectImage, req.ProjectID, req.ImageID)
}
