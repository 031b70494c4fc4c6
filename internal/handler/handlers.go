package handler

import (
	"github.com/deppfellow/portfolio-api/internal/server"
	"github.com/deppfellow/portfolio-api/internal/service"
)

// Handlers groups every HTTP handler so the router receives one value.
type Handlers struct {
	Health       *HealthHandler
	Pages        *PageHandler
	Posts        *PostHandler
	Projects     *ProjectHandler
	Images       *ImageHandler
	Categories   *TagHandler
	Technologies *TagHandler
}

func NewHandlers(s *server.Server, services *service.Services) *Handlers {
	return &Handlers{
		Health:       NewHealthHandler(s),
		Pages:        NewPageHandler(s, services.Pages),
		Posts:        NewPostHandler(s, services.Posts, services.Links),
		Projects:     NewProjectHandler(s, services.Projects, services.Links),
		Images:       NewImageHandler(s, services.Images),
		Categories:   NewTagHandler(s, services.Categories),
		Technologies: NewTagHandler(s, services.Technologies),
	}
}
