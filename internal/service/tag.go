package service

import (
	"context"
	"strings"

	"github.com/deppfellow/portfolio-api/internal/database"
	"github.com/deppfellow/portfolio-api/internal/query"
	"github.com/deppfellow/portfolio-api/internal/repository"
	"github.com/deppfellow/portfolio-api/internal/validation"
)

// CreateTagRequest creates a category or a technology. Color only applies
// to technologies.
type CreateTagRequest struct {
	Name  string  `json:"name" form:"name" validate:"required"`
	Color *string `json:"color" form:"color"`
}

func (r *CreateTagRequest) Validate() error { return validation.Struct(r) }

// UpdateCategoryRequest renames a category. Links follow the new name
// through the foreign key.
type UpdateCategoryRequest struct {
	PrimaryKey string `json:"primary_key" form:"primary_key" validate:"required"`
	Name       string `json:"name" form:"name" validate:"required"`
}

func (r *UpdateCategoryRequest) Validate() error { return validation.Struct(r) }

type UpdateTechnologyRequest struct {
	PrimaryKey string  `json:"primary_key" form:"primary_key" validate:"required"`
	Name       *string `json:"name" form:"name"`
	Color      *string `json:"color" form:"color"`
}

func (r *UpdateTechnologyRequest) Validate() error { return validation.Struct(r) }

// TagService manages a name-keyed tag table. Unlike the content tables,
// updates strip only missing fields, so an empty color clears it.
type TagService struct {
	tags     *repository.Table
	hasColor bool
}

func NewCategoryService(repos *repository.Repositories) *TagService {
	return &TagService{tags: repos.Categories}
}

func NewTechnologyService(repos *repository.Repositories) *TagService {
	return &TagService{tags: repos.Technologies, hasColor: true}
}

func (s *TagService) All(ctx context.Context) (*database.Result, error) {
	return s.tags.All(ctx)
}

func (s *TagService) Create(ctx context.Context, req *CreateTagRequest) (*database.Result, error) {
	cols := query.Columns{{Name: "name", Value: query.String(strings.TrimSpace(req.Name))}}
	if s.hasColor {
		cols = cols.Set("color", text(req.Color))
	}
	return s.tags.Insert(ctx, cols, nil)
}

func (s *TagService) Rename(ctx context.Context, req *UpdateCategoryRequest) (*database.Result, error) {
	name := req.Name
	return s.update(ctx, req.PrimaryKey, &name, nil)
}

func (s *TagService) Update(ctx context.Context, req *UpdateTechnologyRequest) (*database.Result, error) {
	return s.update(ctx, req.PrimaryKey, req.Name, req.Color)
}

func (s *TagService) update(ctx context.Context, primaryKey string, name, color *string) (*database.Result, error) {
	cols := query.Columns{{Name: "name", Value: text(name)}}
	if s.hasColor {
		cols = cols.Set("color", text(color))
	}
	key := query.Key{Column: "name", Value: query.String(strings.TrimSpace(primaryKey))}
	return s.tags.Update(ctx, key, cols.WithoutAbsent(), nil)
}

func (s *TagService) Delete(ctx context.Context, req *DeleteByNameRequest) (*database.Result, error) {
	return s.tags.Delete(ctx, query.Columns{{Name: "name", Value: query.String(strings.TrimSpace(req.Name))}}, nil)
}
