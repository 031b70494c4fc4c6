package router

import (
	"github.com/labstack/echo/v4"

	"github.com/deppfellow/portfolio-api/internal/handler"
)

// registerAPIRoutes registers the content routes. Reads are public; every
// POST goes through auth.
func registerAPIRoutes(api *echo.Group, h *handler.Handlers, auth echo.MiddlewareFunc) {
	pages := api.Group("/pages")
	pages.GET("/all", handler.HandleQuery(h.Pages.Handler, h.Pages.All))
	pages.GET("/visible", handler.HandleQuery(h.Pages.Handler, h.Pages.Visible))
	pages.GET("/hidden", handler.HandleQuery(h.Pages.Handler, h.Pages.Hidden))
	pages.GET("/:page", handler.HandleQuery(h.Pages.Handler, h.Pages.Get))
	pages.POST("/create", handler.HandleQuery(h.Pages.Handler, h.Pages.Create), auth)
	pages.POST("/update", handler.HandleQuery(h.Pages.Handler, h.Pages.Update), auth)
	pages.POST("/delete", handler.HandleQuery(h.Pages.Handler, h.Pages.Delete), auth)

	images := api.Group("/images")
	images.GET("/all", handler.HandleQuery(h.Images.Handler, h.Images.All))
	images.GET("/id/:id", handler.HandleQuery(h.Images.Handler, h.Images.ByID))
	images.POST("/create", handler.HandleQuery(h.Images.Handler, h.Images.Create), auth)
	images.POST("/update", handler.HandleQuery(h.Images.Handler, h.Images.Update), auth)
	images.POST("/delete", handler.HandleQuery(h.Images.Handler, h.Images.Delete), auth)

	posts := api.Group("/posts")
	posts.GET("/all", handler.HandleQuery(h.Posts.Handler, h.Posts.All))
	posts.GET("/visible", handler.HandleQuery(h.Posts.Handler, h.Posts.Visible))
	posts.GET("/id/:id", handler.HandleQuery(h.Posts.Handler, h.Posts.ByID))
	posts.GET("/slug/:slug", handler.HandleQuery(h.Posts.Handler, h.Posts.BySlug))
	posts.POST("/create", handler.HandleQuery(h.Posts.Handler, h.Posts.Create), auth)
	posts.POST("/update", handler.HandleQuery(h.Posts.Handler, h.Posts.Update), auth)
	posts.POST("/delete", handler.HandleQuery(h.Posts.Handler, h.Posts.Delete), auth)

	postCategories := posts.Group("/categories")
	postCategories.GET("/all", handler.HandleQuery(h.Posts.Handler, h.Posts.Categories))
	postCategories.GET("/id/:id", handler.HandleQuery(h.Posts.Handler, h.Posts.Categories))
	postCategories.POST("/create", handler.HandleQuery(h.Posts.Handler, h.Posts.LinkCategory), auth)
	postCategories.POST("/create/batch", handler.HandleQuery(h.Posts.Handler, h.Posts.LinkCategories), auth)
	postCategories.POST("/delete", handler.HandleQuery(h.Posts.Handler, h.Posts.UnlinkCategory), auth)

	postImages := posts.Group("/images")
	postImages.GET("/all", handler.HandleQuery(h.Posts.Handler, h.Posts.Images))
	postImages.GET("/id/:id", handler.HandleQuery(h.Posts.Handler, h.Posts.Images))
	postImages.POST("/create", handler.HandleQuery(h.Posts.Handler, h.Posts.LinkImage), auth)
	postImages.POST("/delete", handler.HandleQuery(h.Posts.Handler, h.Posts.UnlinkImage), auth)

	projects := api.Group("/projects")
	projects.GET("/all", handler.HandleQuery(h.Projects.Handler, h.Projects.All))
	projects.GET("/non-scrap", handler.HandleQuery(h.Projects.Handler, h.Projects.NonScrap))
	projects.GET("/scrap", handler.HandleQuery(h.Projects.Handler, h.Projects.Scrap))
	projects.GET("/id/:id", handler.HandleQuery(h.Projects.Handler, h.Projects.ByID))
	projects.POST("/create", handler.HandleQuery(h.Projects.Handler, h.Projects.Create), auth)
	projects.POST("/update", handler.HandleQuery(h.Projects.Handler, h.Projects.Update), auth)
	projects.POST("/delete", handler.HandleQuery(h.Projects.Handler, h.Projects.Delete), auth)

	projectTechnologies := projects.Group("/technologies")
	projectTechnologies.GET("/all", handler.HandleQuery(h.Projects.Handler, h.Projects.Technologies))
	projectTechnologies.GET("/id/:id", handler.HandleQuery(h.Projects.Handler, h.Projects.Technologies))
	projectTechnologies.POST("/create", handler.HandleQuery(h.Projects.Handler, h.Projects.LinkTechnology), auth)
	projectTechnologies.POST("/create/batch", handler.HandleQuery(h.Projects.Handler, h.Projects.LinkTechnologies), auth)
	projectTechnologies.POST("/update", handler.HandleQuery(h.Projects.Handler, h.Projects.UpdateTechnology), auth)
	projectTechnologies.POST("/delete", handler.HandleQuery(h.Projects.Handler, h.Projects.UnlinkTechnology), auth)

	projectImages := projects.Group("/images")
	projectImages.GET("/all", handler.HandleQuery(h.Projects.Handler, h.Projects.Images))
	projectImages.GET("/id/:id", handler.HandleQuery(h.Projects.Handler, h.Projects.Images))
	projectImages.POST("/create", handler.HandleQuery(h.Projects.Handler, h.Projects.LinkImage), auth)
	projectImages.POST("/delete", handler.HandleQuery(h.Projects.Handler, h.Projects.UnlinkImage), auth)

	categories := api.Group("/categories")
	categories.GET("/all", handler.HandleQuery(h.Categories.Handler, h.Categories.All))
	categories.POST("/create", handler.HandleQuery(h.Categories.Handler, h.Categories.Create), auth)
	categories.POST("/update", handler.HandleQuery(h.Categories.Handler, h.Categories.Rename), auth)
	categories.POST("/delete", handler.HandleQuery(h.Categories.Handler, h.Categories.Delete), auth)

	technologies := api.Group("/technologies")
	technologies.GET("/all", handler.HandleQuery(h.Technologies.Handler, h.Technologies.All))
	technologies.POST("/create", handler.HandleQuery(h.Technologies.Handler, h.Technologies.Create), auth)
	technologies.POST("/update", handler.HandleQuery(h.Technologies.Handler, h.Technologies.Update), auth)
	technologies.POST("/delete", handler.HandleQuery(h.Technologies.Handler, h.Technologies.Delete), auth)
}
