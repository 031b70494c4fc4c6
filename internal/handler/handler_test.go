package handler_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/deppfellow/portfolio-api/internal/config"
	"github.com/deppfellow/portfolio-api/internal/database"
	"github.com/deppfellow/portfolio-api/internal/database/dbtest"
	"github.com/deppfellow/portfolio-api/internal/errs"
	"github.com/deppfellow/portfolio-api/internal/handler"
	"github.com/deppfellow/portfolio-api/internal/middleware"
	"github.com/deppfellow/portfolio-api/internal/repository"
	"github.com/deppfellow/portfolio-api/internal/server"
	"github.com/deppfellow/portfolio-api/internal/service"
)

type testApp struct {
	echo  *echo.Echo
	store *database.SQLStore
	h     *handler.Handlers
}

func newTestApp(t *testing.T) *testApp {
	t.Helper()

	store := dbtest.NewSQLite(t)
	logger := zerolog.Nop()
	cfg := &config.Config{
		Primary:       config.Primary{Env: "test"},
		Observability: config.DefaultObservabilityConfig(),
	}
	cfg.Observability.HealthChecks.Checks = []string{"database", "redis"}

	srv := server.NewWithStore(cfg, &logger, store)
	services, err := service.NewService(srv, repository.NewRepositories(srv))
	require.NoError(t, err)
	h := handler.NewHandlers(srv, services)

	e := echo.New()
	e.HTTPErrorHandler = middleware.NewGlobalMiddlewares(srv).GlobalErrorHandler
	e.GET("/status", h.Health.CheckHealth)
	e.GET("/pages/all", handler.HandleQuery(h.Pages.Handler, h.Pages.All))
	e.GET("/pages/:page", handler.HandleQuery(h.Pages.Handler, h.Pages.Get))
	e.POST("/pages/create", handler.HandleQuery(h.Pages.Handler, h.Pages.Create))
	e.POST("/pages/update", handler.HandleQuery(h.Pages.Handler, h.Pages.Update))
	e.GET("/posts/id/:id", handler.HandleQuery(h.Posts.Handler, h.Posts.ByID))
	e.POST("/posts/create", handler.HandleQuery(h.Posts.Handler, h.Posts.Create))
	e.POST("/categories/create", handler.HandleQuery(h.Categories.Handler, h.Categories.Create))
	e.GET("/projects/technologies/all", handler.HandleQuery(h.Projects.Handler, h.Projects.Technologies))
	e.GET("/projects/technologies/id/:id", handler.HandleQuery(h.Projects.Handler, h.Projects.Technologies))
	e.POST("/projects/technologies/create/batch", handler.HandleQuery(h.Projects.Handler, h.Projects.LinkTechnologies))
	e.POST("/projects/technologies/create", handler.HandleQuery(h.Projects.Handler, h.Projects.LinkTechnology))
	e.POST("/posts/categories/create/batch", handler.HandleQuery(h.Posts.Handler, h.Posts.LinkCategories))

	return &testApp{echo: e, store: store, h: h}
}

func (a *testApp) do(t *testing.T, req *http.Request) *httptest.ResponseRecorder {
	t.Helper()
	rec := httptest.NewRecorder()
	a.echo.ServeHTTP(rec, req)
	return rec
}

func (a *testApp) postJSON(t *testing.T, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	return a.do(t, req)
}

func (a *testApp) postForm(t *testing.T, path string, form url.Values) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationForm)
	return a.do(t, req)
}

func (a *testApp) get(t *testing.T, path string) *httptest.ResponseRecorder {
	t.Helper()
	return a.do(t, httptest.NewRequest(http.MethodGet, path, nil))
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &v), rec.Body.String())
	return v
}

func TestCreateAndReadPage(t *testing.T) {
	app := newTestApp(t)

	rec := app.postJSON(t, "/pages/create", `{"name":"About Me","body":"hello","hidden":false}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, handler.WriteResponse{AffectedRows: 1, Statements: 1}, decode[handler.WriteResponse](t, rec))

	rec = app.get(t, "/pages/about-me")
	require.Equal(t, http.StatusOK, rec.Code)
	rows := decode[[]map[string]any](t, rec)
	require.Len(t, rows, 1)
	assert.Equal(t, "About Me", rows[0]["pretty_name"])
	assert.Equal(t, "hello", rows[0]["body"])
}

func TestSelectAnswersEmptyArray(t *testing.T) {
	app := newTestApp(t)

	rec := app.get(t, "/pages/all")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `[]`, rec.Body.String())
}

func TestFormBodyIsAccepted(t *testing.T) {
	app := newTestApp(t)

	rec := app.postForm(t, "/posts/create", url.Values{
		"title":  {"Hello World"},
		"body":   {"first post"},
		"hidden": {"on"},
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	rec = app.get(t, "/posts/id/1")
	require.Equal(t, http.StatusOK, rec.Code)
	rows := decode[[]map[string]any](t, rec)
	require.Len(t, rows, 1)
	assert.Equal(t, "hello-world", rows[0]["slug"])
}

func TestMissingRequiredFieldIsValidationFailure(t *testing.T) {
	app := newTestApp(t)

	rec := app.postJSON(t, "/posts/create", `{"title":"No body"}`)
	require.Equal(t, http.StatusBadRequest, rec.Code)

	body := decode[errs.HTTPError](t, rec)
	assert.Equal(t, errs.CodeValidationFailed, body.Code)
	require.Len(t, body.Errors, 1)
	assert.Equal(t, "body", body.Errors[0].Field)
	assert.Equal(t, 0, dbtest.Count(t, app.store, "Post"))
}

func TestNonIntegerPathIDIsValidationFailure(t *testing.T) {
	app := newTestApp(t)

	rec := app.get(t, "/posts/id/abc")
	require.Equal(t, http.StatusBadRequest, rec.Code)
	body := decode[errs.HTTPError](t, rec)
	assert.Equal(t, errs.CodeValidationFailed, body.Code)
	assert.Equal(t, "id", body.Errors[0].Field)
}

func TestEmptyUpdateIsRejectedBeforeTheStore(t *testing.T) {
	app := newTestApp(t)
	dbtest.Exec(t, app.store, "INSERT INTO Page (name, pretty_name) VALUES ('about', 'About')")

	rec := app.postJSON(t, "/pages/update", `{"primary_key":"about","body":""}`)
	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, errs.CodeEmptyUpdate, decode[errs.HTTPError](t, rec).Code)
}

func TestDuplicateKeyIsFriendlyQueryFailure(t *testing.T) {
	app := newTestApp(t)

	rec := app.postJSON(t, "/categories/create", `{"name":"Go"}`)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = app.postJSON(t, "/categories/create", `{"name":"Go"}`)
	require.Equal(t, http.StatusBadRequest, rec.Code)
	body := decode[errs.HTTPError](t, rec)
	assert.Equal(t, "CATEGORY_ALREADY_EXISTS", body.Code)
	assert.Equal(t, "A Category with this Name already exists", body.Message)
}

func TestTechnologyLinks(t *testing.T) {
	app := newTestApp(t)
	dbtest.Exec(t, app.store, "INSERT INTO Project (id, title, description) VALUES (3, 'Site', 'x')")

	rec := app.postJSON(t, "/projects/technologies/create/batch", `{"project_id":3,"technologies":"Go, SQL,, "}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, handler.WriteResponse{AffectedRows: 4, Statements: 4}, decode[handler.WriteResponse](t, rec))

	// Repeating the batch is a no-op.
	rec = app.postJSON(t, "/projects/technologies/create/batch", `{"project_id":"3","technologies":"Go, SQL"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, handler.WriteResponse{AffectedRows: 0, Statements: 4}, decode[handler.WriteResponse](t, rec))

	rec = app.get(t, "/projects/technologies/id/3")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, decode[[]map[string]any](t, rec), 2)

	// A single link of an existing pair collides in the store.
	rec = app.postJSON(t, "/projects/technologies/create", `{"project_id":3,"technology_name":"Go"}`)
	require.Equal(t, http.StatusBadRequest, rec.Code)
	body := decode[errs.HTTPError](t, rec)
	assert.Contains(t, body.Message, "statement 2: ")

	rec = app.get(t, "/projects/technologies/all")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, decode[[]map[string]any](t, rec), 2)
}

func TestEmptyTagListIsNoOp(t *testing.T) {
	app := newTestApp(t)

	tests := []struct {
		name string
		path string
		body string
	}{
		{"empty technologies", "/projects/technologies/create/batch", `{"project_id":3,"technologies":""}`},
		{"blank technologies", "/projects/technologies/create/batch", `{"project_id":3,"technologies":" , ,, "}`},
		{"missing categories", "/posts/categories/create/batch", `{"post_id":1}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := app.postJSON(t, tt.path, tt.body)
			require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
			assert.JSONEq(t, `{"affected_rows":0,"statements":0}`, rec.Body.String())
		})
	}

	assert.Zero(t, dbtest.Count(t, app.store, "Technology"))
	assert.Zero(t, dbtest.Count(t, app.store, "ProjectTechnology"))

	// The primary id stays required.
	rec := app.postJSON(t, "/projects/technologies/create/batch", `{"technologies":"Go"}`)
	require.Equal(t, http.StatusBadRequest, rec.Code)
	body := decode[errs.HTTPError](t, rec)
	assert.Equal(t, "VALIDATION_FAILED", body.Code)
	assert.Equal(t, []errs.FieldError{{Field: "project_id", Error: "is required"}}, body.Errors)
}

func TestHealth(t *testing.T) {
	app := newTestApp(t)

	rec := app.get(t, "/status")
	require.Equal(t, http.StatusOK, rec.Code)

	body := decode[map[string]any](t, rec)
	assert.Equal(t, "healthy", body["status"])
	checks := body["checks"].(map[string]any)
	assert.Equal(t, "healthy", checks["database"].(map[string]any)["status"])
	assert.Equal(t, "disabled", checks["redis"].(map[string]any)["status"])

	require.NoError(t, app.store.Close())
	rec = app.get(t, "/status")
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}
