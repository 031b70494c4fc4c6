package handler

import (
	"github.com/labstack/echo/v4"

	"github.com/deppfellow/portfolio-api/internal/database"
	"github.com/deppfellow/portfolio-api/internal/query"
	"github.com/deppfellow/portfolio-api/internal/server"
	"github.com/deppfellow/portfolio-api/internal/service"
)

// PostHandler serves posts and their category and image links.
type PostHandler struct {
	Handler
	posts *service.PostService
	links *service.LinkService
}

func NewPostHandler(s *server.Server, posts *service.PostService, links *service.LinkService) *PostHandler {
	return &PostHandler{
		Handler: NewHandler(s),
		posts:   posts,
		links:   links,
	}
}

func (h *PostHandler) All(c echo.Context, _ *service.NoRequest) (*database.Result, error) {
	return h.posts.All(c.Request().Context())
}

func (h *PostHandler) Visible(c echo.Context, _ *service.NoRequest) (*database.Result, error) {
	return h.posts.Visible(c.Request().Context())
}

func (h *PostHandler) ByID(c echo.Context, req *service.IDRequest) (*database.Result, error) {
	return h.posts.ByID(c.Request().Context(), req)
}

func (h *PostHandler) BySlug(c echo.Context, req *service.GetPostBySlugRequest) (*database.Result, error) {
	return h.posts.BySlug(c.Request().Context(), req)
}

func (h *PostHandler) Create(c echo.Context, req *service.CreatePostRequest) (*database.Result, error) {
	return h.posts.Create(c.Request().Context(), req)
}

func (h *PostHandler) Update(c echo.Context, req *service.UpdatePostRequest) (*database.Result, error) {
	return h.posts.Update(c.Request().Context(), req)
}

func (h *PostHandler) Delete(c echo.Context, req *service.DeleteByIDRequest) (*database.Result, error) {
	return h.posts.Delete(c.Request().Context(), req)
}

func (h *PostHandler) Categories(c echo.Context, req *service.OptionalIDRequest) (*database.Result, error) {
	return h.links.Tags(c.Request().Context(), query.PostCategory, req)
}

func (h *PostHandler) LinkCategory(c echo.Context, req *service.PostCategoryRequest) (*database.Result, error) {
	return h.links.LinkTag(c.Request().Context(), query.PostCategory, req.PostID, req.CategoryName)
}

func (h *PostHandler) LinkCategories(c echo.Context, req *service.BatchPostCategoryRequest) (*database.Result, error) {
	return h.links.LinkTags(c.Request().Context(), query.PostCategory, req.PostID, req.Categories)
}

func (h *PostHandler) UnlinkCategory(c echo.Context, req *service.PostCategoryRequest) (*database.Result, error) {
	return h.links.UnlinkTag(c.Request().Context(), query.PostCategory, req.PostID, req.CategoryName)
}

func (h *PostHandler) Images(c echo.Context, req *service.OptionalIDRequest) (*database.Result, error) {
	return h.links.Images(c.Request().Context(), query.PostImage, req)
}

func (h *PostHandler) LinkImage(c echo.Context, req *service.PostImageRequest) (*database.Result, error) {
	return h.links.LinkImage(c.Request().Context(), query.PostImage, req.PostID, req.ImageID)
}

func (h *PostHandler) UnlinkImage(c echo.Context, req *service.PostImageRequest) (*database.Result, error) {
	return h.links.UnlinkImage(c.Request().Context(), query.PostImage, req.PostID, req.ImageID)
}
