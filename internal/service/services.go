package service

import (
	"github.com/deppfellow/portfolio-api/internal/repository"
	"github.com/deppfellow/portfolio-api/internal/server"
)

type Services struct {
	Auth *AuthService

	Pages        *PageService
	Posts        *PostService
	Projects     *ProjectService
	Images       *ImageService
	Categories   *TagService
	Technologies *TagService
	Links        *LinkService
}

func NewService(s *server.Server, repos *repository.Repositories) (*Services, error) {
	authService := NewAuthService(s)

	return &Services{
		Auth:         authService,
		Pages:        NewPageService(repos),
		Posts:        NewPostService(repos),
		Projects:     NewProjectService(repos),
		Images:       NewImageService(repos),
		Categories:   NewCategoryService(repos),
		Technologies: NewTechnologyService(repos),
		Links:        NewLinkService(repos),
	}, nil
}
