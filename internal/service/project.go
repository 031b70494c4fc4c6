package service

import (
	"context"

	"github.com/deppfellow/portfolio-api/internal/database"
	"github.com/deppfellow/portfolio-api/internal/lib/utils"
	"github.com/deppfellow/portfolio-api/internal/query"
	"github.com/deppfellow/portfolio-api/internal/repository"
	"github.com/deppfellow/portfolio-api/internal/validation"
)

type CreateProjectRequest struct {
	Title       string      `json:"title" form:"title" validate:"required"`
	Description string      `json:"description" form:"description" validate:"required"`
	DeployedURL *string     `json:"deployed_url" form:"deployed_url"`
	GithubURL   *string     `json:"github_url" form:"github_url"`
	IsScrap     *utils.Text `json:"is_scrap" form:"is_scrap"`
	Published   *utils.Text `json:"published" form:"published"`
}

func (r *CreateProjectRequest) Validate() error { return validation.Struct(r) }

type UpdateProjectRequest struct {
	PrimaryKey  utils.Text  `json:"primary_key" form:"primary_key" validate:"required"`
	Title       *string     `json:"title" form:"title"`
	Description *string     `json:"description" form:"description"`
	DeployedURL *string     `json:"deployed_url" form:"deployed_url"`
	GithubURL   *string     `json:"github_url" form:"github_url"`
	IsScrap     *utils.Text `json:"is_scrap" form:"is_scrap"`
	Published   *utils.Text `json:"published" form:"published"`
}

func (r *UpdateProjectRequest) Validate() error { return validation.Struct(r) }

type ProjectService struct {
	projects *repository.Table
}

func NewProjectService(repos *repository.Repositories) *ProjectService {
	return &ProjectService{projects: repos.Projects}
}

func (s *ProjectService) All(ctx context.Context) (*database.Result, error) {
	return s.projects.All(ctx)
}

// NonScrap lists the full projects.
func (s *ProjectService) NonScrap(ctx context.Context) (*database.Result, error) {
	return s.projects.Where(ctx, "is_scrap", query.Bool(false), nil)
}

// Scrap lists the small experiments.
func (s *ProjectService) Scrap(ctx context.Context) (*database.Result, error) {
	return s.projects.Where(ctx, "is_scrap", query.Bool(true), nil)
}

func (s *ProjectService) ByID(ctx context.Context, req *IDRequest) (*database.Result, error) {
	var checks fieldChecks
	id := checks.id("id", req.ID)
	return s.projects.Where(ctx, "id", id, checks)
}

func (s *ProjectService) Create(ctx context.Context, req *CreateProjectRequest) (*database.Result, error) {
	title, description := req.Title, req.Description
	cols := query.Columns{
		{Name: "deployed_url", Value: text(req.DeployedURL)},
		{Name: "description", Value: text(&description)},
		{Name: "github_url", Value: text(req.GithubURL)},
		{Name: "is_scrap", Value: flag(req.IsScrap)},
		{Name: "published", Value: flag(req.Published)},
		{Name: "title", Value: text(&title)},
	}

	return s.projects.Insert(ctx, cols, nil)
}

func (s *ProjectService) Update(ctx context.Context, req *UpdateProjectRequest) (*database.Result, error) {
	var checks fieldChecks
	key := query.Key{Column: "id", Value: checks.id("primary_key", req.PrimaryKey)}

	cols := query.Columns{
		{Name: "title", Value: text(req.Title)},
		{Name: "is_scrap", Value: optionalFlag(req.IsScrap)},
		{Name: "published", Value: optionalFlag(req.Published)},
		{Name: "deployed_url", Value: text(req.DeployedURL)},
		{Name: "github_url", Value: text(req.GithubURL)},
		{Name: "description", Value: text(req.Description)},
	}

	return s.projects.Update(ctx, key, cols.WithoutEmpty(), checks)
}

func (s *ProjectService) Delete(ctx context.Context, req *DeleteByIDRequest) (*database.Result, error) {
	var checks fieldChecks
	id := checks.id("id", req.ID)
	return s.projects.Delete(ctx, query.Columns{{Name: "id", Value: id}}, checks)
}
