package server_test

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"productapi/internal/metrics"
	"productapi/internal/models"
	"productapi/internal/repositories"
	"productapi/internal/server"
	"productapi/internal/services"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const frontendURL = "http://localhost:5173"

// failingRepository simulates a store whose connection is gone.
type failingRepository struct {
	repositories.ProductRepository
}

func (failingRepository) GetAll(context.Context) ([]models.Product, error) {
	return nil, errors.New("connection refused")
}

func newApp(repo repositories.ProductRepository) (*fiber.App, *metrics.HTTP) {
	m := metrics.NewHTTP()
	app := server.New(server.Deps{
		Products:    services.NewProductService(repo, nil, nil),
		Metrics:     m,
		FrontendURL: frontendURL,
	})
	return app, m
}

func TestAPIRoot(t *testing.T) {
	app, _ := newApp(repositories.NewMemoryProductRepository())

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/api", nil), -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Regexp(t, "json", resp.Header.Get("Content-Type"))
	var body map[string]string
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, "Desde la API", body["msg"])
	assert.NotEmpty(t, resp.Header.Get(fiber.HeaderXRequestID))
}

func TestCORS(t *testing.T) {
	app, _ := newApp(repositories.NewMemoryProductRepository())

	req := httptest.NewRequest(http.MethodGet, "/api/products", nil)
	req.Header.Set("Origin", frontendURL)
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, frontendURL, resp.Header.Get(fiber.HeaderAccessControlAllowOrigin))

	req = httptest.NewRequest(http.MethodOptions, "/api/products", nil)
	req.Header.Set("Origin", frontendURL)
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	resp, err = app.Test(req, -1)
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)

	req = httptest.NewRequest(http.MethodGet, "/api/products", nil)
	req.Header.Set("Origin", "http://other.example")
	resp, err = app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	assert.Empty(t, resp.Header.Get(fiber.HeaderAccessControlAllowOrigin))
}

func TestPersistenceErrorIsHidden(t *testing.T) {
	app, _ := newApp(failingRepository{})

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/api/products", nil), -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.JSONEq(t, `{"error":"Hubo un error en el servidor"}`, string(raw))
	assert.NotContains(t, string(raw), "connection refused")
}

func TestUnknownRoute(t *testing.T) {
	app, _ := newApp(repositories.NewMemoryProductRepository())

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/api/unknown", nil), -1)
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestDocs(t *testing.T) {
	app, _ := newApp(repositories.NewMemoryProductRepository())

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/docs", nil), -1)
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusMovedPermanently, resp.StatusCode)
	assert.Equal(t, "/docs/index.html", resp.Header.Get("Location"))

	resp, err = app.Test(httptest.NewRequest(http.MethodGet, "/docs/doc.json", nil), -1)
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var doc struct {
		Paths map[string]map[string]any `json:"paths"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&doc))
	require.Contains(t, doc.Paths, "/api/products/{id}")
	for _, method := range []string{"get", "put", "patch", "delete"} {
		assert.Contains(t, doc.Paths["/api/products/{id}"], method)
	}
	assert.Contains(t, doc.Paths["/api/products"], "post")
}

func TestMetricsEndpoint(t *testing.T) {
	app, m := newApp(repositories.NewMemoryProductRepository())

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/api/products/abc", nil), -1)
	require.NoError(t, err)
	resp.Body.Close()
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp, err = app.Test(httptest.NewRequest(http.MethodGet, "/metrics", nil), -1)
	require.NoError(t, err)
	defer resp.Body.Close()
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Contains(t, string(raw), `route="/api/products/:id",status="400"`)
	assert.NotNil(t, m.RequestsTotal)
}
