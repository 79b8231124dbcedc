package handlers

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v2"
)

// PingFunc reports whether the product store is reachable.
type PingFunc func(ctx context.Context) error

// APIHandler serves the API root and the health check.
type APIHandler struct {
	ping PingFunc
}

// NewAPIHandler creates a new APIHandler. ping may be nil when the products
// live in memory.
func NewAPIHandler(ping PingFunc) *APIHandler {
	return &APIHandler{ping: ping}
}

// RootResponse is the body of GET /api.
type RootResponse struct {
	Msg string `json:"msg" example:"Desde la API"`
}

// HealthResponse is the body of GET /health.
type HealthResponse struct {
	Status   string `json:"status" example:"healthy"`
	Time     string `json:"time"`
	Database string `json:"database" example:"connected"`
}

// HandleRoot answers the API root.
//
//	@Summary	API root
//	@Tags		System
//	@Produce	json
//	@Success	200	{object}	RootResponse
//	@Router		/api [get]
func (h *APIHandler) HandleRoot(c *fiber.Ctx) error {
	return c.JSON(RootResponse{Msg: msgAPIRoot})
}

// HandleHealth reports service health.
//
//	@Summary	Health check
//	@Tags		System
//	@Produce	json
//	@Success	200	{object}	HealthResponse
//	@Failure	503	{object}	HealthResponse
//	@Router		/health [get]
func (h *APIHandler) HandleHealth(c *fiber.Ctx) error {
	resp := HealthResponse{
		Status:   "healthy",
		Time:     time.Now().Format(time.RFC3339),
		Database: "in-memory",
	}
	if h.ping != nil {
		ctx, cancel := context.WithTimeout(c.UserContext(), 2*time.Second)
		defer cancel()
		if err := h.ping(ctx); err != nil {
			resp.Status = "unhealthy"
			resp.Database = "unavailable"
			return c.Status(fiber.StatusServiceUnavailable).JSON(resp)
		}
		resp.Database = "connected"
	}
	return c.JSON(resp)
}
