package router_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/deppfellow/portfolio-api/internal/config"
	"github.com/deppfellow/portfolio-api/internal/database/dbtest"
	"github.com/deppfellow/portfolio-api/internal/errs"
	"github.com/deppfellow/portfolio-api/internal/handler"
	"github.com/deppfellow/portfolio-api/internal/middleware"
	"github.com/deppfellow/portfolio-api/internal/repository"
	"github.com/deppfellow/portfolio-api/internal/router"
	"github.com/deppfellow/portfolio-api/internal/server"
	"github.com/deppfellow/portfolio-api/internal/service"
)

func newRouter(t *testing.T, rateLimit int) *echo.Echo {
	t.Helper()

	staticDir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(staticDir, "me.txt"), []byte("hi"), 0o600))

	logger := zerolog.Nop()
	cfg := &config.Config{
		Primary: config.Primary{Env: "test"},
		Server: config.ServerConfig{
			CORSAllowedOrigins: []string{"*"},
			StaticDir:          staticDir,
			RateLimit:          rateLimit,
		},
		Observability: config.DefaultObservabilityConfig(),
	}

	srv := server.NewWithStore(cfg, &logger, dbtest.NewSQLite(t))
	services, err := service.NewService(srv, repository.NewRepositories(srv))
	require.NoError(t, err)

	return router.NewRouter(srv, handler.NewHandlers(srv, services))
}

func serve(r *echo.Echo, method, path string) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(method, path, nil))
	return rec
}

func TestPublicReadRoutes(t *testing.T) {
	r := newRouter(t, 0)

	for _, path := range []string{
		"/api/pages/all", "/api/pages/visible", "/api/pages/hidden",
		"/api/images/all", "/api/posts/all", "/api/posts/visible",
		"/api/posts/categories/all", "/api/posts/images/all",
		"/api/projects/all", "/api/projects/non-scrap", "/api/projects/scrap",
		"/api/projects/technologies/all", "/api/projects/images/all",
		"/api/categories/all", "/api/technologies/all",
	} {
		rec := serve(r, http.MethodGet, path)
		assert.Equal(t, http.StatusOK, rec.Code, path)
		assert.JSONEq(t, `[]`, rec.Body.String(), path)
	}
}

func TestRequestIDIsEchoed(t *testing.T) {
	r := newRouter(t, 0)

	rec := serve(r, http.MethodGet, "/api/pages/all")
	assert.NotEmpty(t, rec.Header().Get(middleware.RequestIDHeader))

	req := httptest.NewRequest(http.MethodGet, "/api/pages/all", nil)
	req.Header.Set(middleware.RequestIDHeader, "abc-123")
	rec = httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	assert.Equal(t, "abc-123", rec.Header().Get(middleware.RequestIDHeader))
}

func TestWritesRequireAuth(t *testing.T) {
	r := newRouter(t, 0)

	for _, path := range []string{
		"/api/pages/create", "/api/posts/update", "/api/projects/delete",
		"/api/projects/technologies/create/batch", "/api/posts/images/create",
		"/api/technologies/update",
	} {
		req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(`{}`))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, req)

		require.Equal(t, http.StatusUnauthorized, rec.Code, path)
		var body errs.HTTPError
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
		assert.Equal(t, "UNAUTHORIZED", body.Code)
	}
}

func TestUnknownRouteIsNotFound(t *testing.T) {
	r := newRouter(t, 0)

	rec := serve(r, http.MethodGet, "/api/nope/all")
	require.Equal(t, http.StatusNotFound, rec.Code)

	var body errs.HTTPError
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "Route not found", body.Message)
}

func TestSystemRoutes(t *testing.T) {
	r := newRouter(t, 0)

	rec := serve(r, http.MethodGet, "/static/me.txt")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "hi", rec.Body.String())

	rec = serve(r, http.MethodGet, "/status")
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestRateLimit(t *testing.T) {
	r := newRouter(t, 2)

	assert.Equal(t, http.StatusOK, serve(r, http.MethodGet, "/api/pages/all").Code)
	assert.Equal(t, http.StatusOK, serve(r, http.MethodGet, "/api/pages/all").Code)

	rec := serve(r, http.MethodGet, "/api/pages/all")
	require.Equal(t, http.StatusTooManyRequests, rec.Code)
	var body errs.HTTPError
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "TOO_MANY_REQUESTS", body.Code)

	// System routes are not limited.
	assert.Equal(t, http.StatusOK, serve(r, http.MethodGet, "/status").Code)
}
