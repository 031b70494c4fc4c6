package service

import (
	"context"

	"github.com/deppfellow/portfolio-api/internal/database"
	"github.com/deppfellow/portfolio-api/internal/lib/utils"
	"github.com/deppfellow/portfolio-api/internal/query"
	"github.com/deppfellow/portfolio-api/internal/repository"
	"github.com/deppfellow/portfolio-api/internal/validation"
)

type CreateImageRequest struct {
	Name        string  `json:"name" form:"name" validate:"required"`
	Description *string `json:"description" form:"description"`
	StaticURL   string  `json:"static_url" form:"static_url" validate:"required"`
}

func (r *CreateImageRequest) Validate() error { return validation.Struct(r) }

type UpdateImageRequest struct {
	PrimaryKey  utils.Text `json:"primary_key" form:"primary_key" validate:"required"`
	Name        *string    `json:"name" form:"name"`
	Description *string    `json:"description" form:"description"`
	StaticURL   *string    `json:"static_url" form:"static_url"`
}

func (r *UpdateImageRequest) Validate() error { return validation.Struct(r) }

type ImageService struct {
	images *repository.Table
}

func NewImageService(repos *repository.Repositories) *ImageService {
	return &ImageService{images: repos.Images}
}

func (s *ImageService) All(ctx context.Context) (*database.Result, error) {
	return s.images.All(ctx)
}

func (s *ImageService) ByID(ctx context.Context, req *IDRequest) (*database.Result, error) {
	var checks fieldChecks
	id := checks.id("id", req.ID)
	return s.images.Where(ctx, "id", id, checks)
}

func (s *ImageService) Create(ctx context.Context, req *CreateImageRequest) (*database.Result, error) {
	name, staticURL := req.Name, req.StaticURL
	cols := query.Columns{
		{Name: "description", Value: text(req.Description)},
		{Name: "name", Value: text(&name)},
		{Name: "static_url", Value: text(&staticURL)},
	}

	return s.images.Insert(ctx, cols, nil)
}

func (s *ImageService) Update(ctx context.Context, req *UpdateImageRequest) (*database.Result, error) {
	var checks fieldChecks
	key := query.Key{Column: "id", Value: checks.id("primary_key", req.PrimaryKey)}

	cols := query.Columns{
		{Name: "name", Value: text(req.Name)},
		{Name: "description", Value: text(req.Description)},
		{Name: "static_url", Value: text(req.StaticURL)},
	}

	return s.images.Update(ctx, key, cols.WithoutEmpty(), checks)
}

func (s *ImageService) Delete(ctx context.Context, req *DeleteByIDRequest) (*database.Result, error) {
	var checks fieldChecks
	id := checks.id("id", req.ID)
	return s.images.Delete(ctx, query.Columns{{Name: "id", Value: id}}, checks)
}
