package service

import (
	"context"
	"strings"

	"github.com/deppfellow/portfolio-api/internal/database"
	"github.com/deppfellow/portfolio-api/internal/lib/utils"
	"github.com/deppfellow/portfolio-api/internal/query"
	"github.com/deppfellow/portfolio-api/internal/repository"
	"github.com/deppfellow/portfolio-api/internal/validation"
)

// CreatePageRequest creates a page. The page key is the slug of Name; Name
// itself is kept as the display name.
type CreatePageRequest struct {
	Name   string      `json:"name" form:"name" validate:"required"`
	Hidden *utils.Text `json:"hidden" form:"hidden"`
	Body   *string     `json:"body" form:"body"`
}

func (r *CreatePageRequest) Validate() error { return validation.Struct(r) }

// UpdatePageRequest updates the page keyed by PrimaryKey. Missing and empty
// fields keep their stored value.
type UpdatePageRequest struct {
	PrimaryKey string      `json:"primary_key" form:"primary_key" validate:"required"`
	Name       *string     `json:"name" form:"name"`
	Hidden     *utils.Text `json:"hidden" form:"hidden"`
	Body       *string     `json:"body" form:"body"`
}

func (r *UpdatePageRequest) Validate() error { return validation.Struct(r) }

// GetPageRequest selects one page by its key.
type GetPageRequest struct {
	Page string `param:"page" validate:"required"`
}

func (r *GetPageRequest) Validate() error { return validation.Struct(r) }

type PageService struct {
	pages *repository.Table
}

func NewPageService(repos *repository.Repositories) *PageService {
	return &PageService{pages: repos.Pages}
}

func (s *PageService) All(ctx context.Context) (*database.Result, error) {
	return s.pages.All(ctx)
}

func (s *PageService) Visible(ctx context.Context) (*database.Result, error) {
	return s.pages.Where(ctx, "hidden", query.Bool(false), nil)
}

func (s *PageService) Hidden(ctx context.Context) (*database.Result, error) {
	return s.pages.Where(ctx, "hidden", query.Bool(true), nil)
}

func (s *PageService) Get(ctx context.Context, req *GetPageRequest) (*database.Result, error) {
	return s.pages.Where(ctx, "name", query.String(req.Page), nil)
}

func (s *PageService) Create(ctx context.Context, req *CreatePageRequest) (*database.Result, error) {
	var checks fieldChecks
	name := strings.TrimSpace(req.Name)

	cols := query.Columns{
		{Name: "name", Value: query.String(checks.slug("name", name))},
		{Name: "pretty_name", Value: query.String(name)},
		{Name: "hidden", Value: flag(req.Hidden)},
		{Name: "body", Value: text(req.Body)},
	}

	return s.pages.Insert(ctx, cols, checks)
}

func (s *PageService) Update(ctx context.Context, req *UpdatePageRequest) (*database.Result, error) {
	var checks fieldChecks

	cols := query.Columns{
		{Name: "body", Value: text(req.Body)},
		{Name: "hidden", Value: optionalFlag(req.Hidden)},
	}
	if name := text(req.Name); !name.IsAbsent() && !name.IsEmptyString() {
		display := strings.TrimSpace(*req.Name)
		cols = cols.
			Set("name", query.String(checks.slug("name", display))).
			Set("pretty_name", name)
	}

	key := query.Key{Column: "name", Value: query.String(req.PrimaryKey)}
	return s.pages.Update(ctx, key, cols.WithoutEmpty(), checks)
}

func (s *PageService) Delete(ctx context.Context, req *DeleteByNameRequest) (*database.Result, error) {
	return s.pages.Delete(ctx, query.Columns{{Name: "name", Value: query.String(req.Name)}}, nil)
}
