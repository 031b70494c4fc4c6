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

// CreatePostRequest creates a post whose slug is derived from Title.
type CreatePostRequest struct {
	Title  string      `json:"title" form:"title" validate:"required"`
	Hidden *utils.Text `json:"hidden" form:"hidden"`
	Body   string      `json:"body" form:"body" validate:"required"`
}

func (r *CreatePostRequest) Validate() error { return validation.Struct(r) }

// UpdatePostRequest updates the post with id PrimaryKey. The slug is kept
// so published links stay valid.
type UpdatePostRequest struct {
	PrimaryKey utils.Text  `json:"primary_key" form:"primary_key" validate:"required"`
	Title      *string     `json:"title" form:"title"`
	Hidden     *utils.Text `json:"hidden" form:"hidden"`
	Body       *string     `json:"body" form:"body"`
}

func (r *UpdatePostRequest) Validate() error { return validation.Struct(r) }

type GetPostBySlugRequest struct {
	Slug string `param:"slug" validate:"required"`
}

func (r *GetPostBySlugRequest) Validate() error { return validation.Struct(r) }

type PostService struct {
	posts *repository.Table
}

func NewPostService(repos *repository.Repositories) *PostService {
	return &PostService{posts: repos.Posts}
}

func (s *PostService) All(ctx context.Context) (*database.Result, error) {
	return s.posts.All(ctx)
}

func (s *PostService) Visible(ctx context.Context) (*database.Result, error) {
	return s.posts.Where(ctx, "hidden", query.Bool(false), nil)
}

func (s *PostService) ByID(ctx context.Context, req *IDRequest) (*database.Result, error) {
	var checks fieldChecks
	id := checks.id("id", req.ID)
	return s.posts.Where(ctx, "id", id, checks)
}

func (s *PostService) BySlug(ctx context.Context, req *GetPostBySlugRequest) (*database.Result, error) {
	return s.posts.Where(ctx, "slug", query.String(req.Slug), nil)
}

func (s *PostService) Create(ctx context.Context, req *CreatePostRequest) (*database.Result, error) {
	var checks fieldChecks
	title := strings.TrimSpace(req.Title)

	cols := query.Columns{
		{Name: "title", Value: query.String(title)},
		{Name: "hidden", Value: flag(req.Hidden)},
		{Name: "body", Value: query.String(strings.TrimSpace(req.Body))},
		{Name: "slug", Value: query.String(checks.slug("title", title))},
	}

	return s.posts.Insert(ctx, cols, checks)
}

func (s *PostService) Update(ctx context.Context, req *UpdatePostRequest) (*database.Result, error) {
	var checks fieldChecks
	key := query.Key{Column: "id", Value: checks.id("primary_key", req.PrimaryKey)}

	cols := query.Columns{
		{Name: "title", Value: text(req.Title)},
		{Name: "hidden", Value: optionalFlag(req.Hidden)},
		{Name: "body", Value: text(req.Body)},
	}

	return s.posts.Update(ctx, key, cols.WithoutEmpty(), checks)
}

func (s *PostService) Delete(ctx context.Context, req *DeleteByIDRequest) (*database.Result, error) {
	var checks fieldChecks
	id := checks.id("id", req.ID)
	return s.posts.Delete(ctx, query.Columns{{Name: "id", Value: id}}, checks)
}
