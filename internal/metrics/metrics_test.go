package metrics_test

import (
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"productapi/internal/metrics"

	"github.com/gofiber/fiber/v2"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMiddleware_CountsByRoute(t *testing.T) {
	m := metrics.NewHTTP()
	app := fiber.New()
	app.Use(m.Middleware())
	app.Get("/api/products/:id", func(c *fiber.Ctx) error {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Producto no encontrado"})
	})
	app.Get("/metrics", m.Handler())

	for _, id := range []string{"1", "2"} {
		resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/api/products/"+id, nil), -1)
		require.NoError(t, err)
		resp.Body.Close()
	}

	assert.Equal(t, 2.0, testutil.ToFloat64(m.RequestsTotal.WithLabelValues("GET", "/api/products/:id", "404")))

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/metrics", nil), -1)
	require.NoError(t, err)
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), `http_requests_total{method="GET",route="/api/products/:id",status="404"} 2`)
}

func TestMiddleware_WrappedFiberError(t *testing.T) {
	m := metrics.NewHTTP()
	app := fiber.New(fiber.Config{
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			return c.SendStatus(fiber.StatusBadRequest)
		},
	})
	app.Use(m.Middleware())
	app.Post("/api/products", func(c *fiber.Ctx) error {
		return fmt.Errorf("decoding body: %w", fiber.ErrBadRequest)
	})

	resp, err := app.Test(httptest.NewRequest(http.MethodPost, "/api/products", nil), -1)
	require.NoError(t, err)
	resp.Body.Close()

	assert.Equal(t, 1.0, testutil.ToFloat64(m.RequestsTotal.WithLabelValues("POST", "/api/products", "400")))
	assert.Equal(t, 0.0, testutil.ToFloat64(m.RequestsTotal.WithLabelValues("POST", "/api/products", "500")))
}
