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

type ProjectTechnologyRequest struct {
	ProjectID      utils.Text `json:"project_id" form:"project_id" validate:"required"`
	TechnologyName string     `json:"technology_name" form:"technology_name" validate:"required"`
}

func (r *ProjectTechnologyRequest) Validate() error { return validation.Struct(r) }

type BatchProjectTechnologyRequest struct {
	ProjectID    utils.Text `json:"project_id" form:"project_id" validate:"required"`
	Technologies string     `json:"technologies" form:"technologies"`
}

func (r *BatchProjectTechnologyRequest) Validate() error { return validation.Struct(r) }

// UpdateProjectTechnologyRequest moves the link identified by the primary
// key pair to a new project and/or technology.
type UpdateProjectTechnologyRequest struct {
	ProjectPrimaryKey    utils.Text  `json:"project_primary_key" form:"project_primary_key" validate:"required"`
	TechnologyPrimaryKey string      `json:"technology_primary_key" form:"technology_primary_key" validate:"required"`
	ProjectID            *utils.Text `json:"project_id" form:"project_id"`
	TechnologyName       *string     `json:"technology_name" form:"technology_name"`
}

func (r *UpdateProjectTechnologyRequest) Validate() error { return validation.Struct(r) }

type PostCategoryRequest struct {
	PostID       utils.Text `json:"post_id" form:"post_id" validate:"required"`
	CategoryName string     `json:"category_name" form:"category_name" validate:"required"`
}

func (r *PostCategoryRequest) Validate() error { return validation.Struct(r) }

type BatchPostCategoryRequest struct {
	PostID     utils.Text `json:"post_id" form:"post_id" validate:"required"`
	Categories string     `json:"categories" form:"categories"`
}

func (r *BatchPostCategoryRequest) Validate() error { return validation.Struct(r) }

type ProjectImageRequest struct {
	ProjectID utils.Text `json:"project_id" form:"project_id" validate:"required"`
	ImageID   utils.Text `json:"image_id" form:"image_id" validate:"required"`
}

func (r *ProjectImageRequest) Validate() error { return validation.Struct(r) }

type PostImageRequest struct {
	PostID  utils.Text `json:"post_id" form:"post_id" validate:"required"`
	ImageID utils.Text `json:"image_id" form:"image_id" validate:"required"`
}

func (r *PostImageRequest) Validate() error { return validation.Struct(r) }

// LinkService manages the many-to-many links between projects and posts and
// their tags and images.
type LinkService struct {
	links *repository.AssociationRepository
}

func NewLinkService(repos *repository.Repositories) *LinkService {
	return &LinkService{links: repos.Associations}
}

// Tags lists the tags of one primary row, or of all rows when the request
// has no id.
func (s *LinkService) Tags(ctx context.Context, a query.Association, req *OptionalIDRequest) (*database.Result, error) {
	var checks fieldChecks
	id := query.Absent()
	if req.ID != "" {
		id = checks.id("id", req.ID)
	}
	return s.links.Tags(ctx, a.Primary, a.Secondary, id, checks)
}

// Images lists the images of one primary row, or of all rows.
func (s *LinkService) Images(ctx context.Context, a query.Association, req *OptionalIDRequest) (*database.Result, error) {
	var checks fieldChecks
	id := query.Absent()
	if req.ID != "" {
		id = checks.id("id", req.ID)
	}
	return s.links.Media(ctx, a.Primary, id, checks)
}

// LinkTag creates the tag if needed and links it.
func (s *LinkService) LinkTag(ctx context.Context, a query.Association, primaryID utils.Text, tag string) (*database.Result, error) {
	var checks fieldChecks
	id := checks.id(a.PrimaryKeyColumn, primaryID)
	return s.links.LinkTag(ctx, a, tag, id, checks)
}

// LinkTags creates and links every tag of a comma separated list.
func (s *LinkService) LinkTags(ctx context.Context, a query.Association, primaryID utils.Text, list string) (*database.Result, error) {
	var checks fieldChecks
	id := checks.id(a.PrimaryKeyColumn, primaryID)
	return s.links.UpsertTags(ctx, a, list, id, checks)
}

func (s *LinkService) UnlinkTag(ctx context.Context, a query.Association, primaryID utils.Text, tag string) (*database.Result, error) {
	var checks fieldChecks
	id := checks.id(a.PrimaryKeyColumn, primaryID)
	return s.links.Unlink(ctx, a, id, query.String(strings.TrimSpace(tag)), checks)
}

func (s *LinkService) UpdateProjectTechnology(ctx context.Context, req *UpdateProjectTechnologyRequest) (*database.Result, error) {
	var checks fieldChecks
	a := query.ProjectTechnology
	projectKey := checks.id("project_primary_key", req.ProjectPrimaryKey)

	to := query.Columns{
		{Name: a.PrimaryKeyColumn, Value: query.Absent()},
		{Name: a.SecondaryKeyColumn, Value: text(req.TechnologyName)},
	}
	if req.ProjectID != nil && *req.ProjectID != "" {
		to = to.Set(a.PrimaryKeyColumn, checks.id(a.PrimaryKeyColumn, *req.ProjectID))
	}

	return s.links.Relink(ctx, a, projectKey, query.String(req.TechnologyPrimaryKey), to.WithoutEmpty(), checks)
}

func (s *LinkService) LinkImage(ctx context.Context, a query.Association, primaryID, imageID utils.Text) (*database.Result, error) {
	var checks fieldChecks
	id := checks.id(a.PrimaryKeyColumn, primaryID)
	image := checks.id(a.SecondaryKeyColumn, imageID)
	return s.links.Link(ctx, a, id, image, checks)
}

func (s *LinkService) UnlinkImage(ctx context.Context, a query.Association, primaryID, imageID utils.Text) (*database.Result, error) {
	var checks fieldChecks
	id := checks.id(a.PrimaryKeyColumn, primaryID)
	image := checks.id(a.SecondaryKeyColumn, imageID)
	return s.links.Unlink(ctx, a, id, image, checks)
}
