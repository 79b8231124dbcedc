package server

import (
	"errors"

	_ "productapi/docs"
	"productapi/internal/handlers"
	"productapi/internal/metrics"
	"productapi/internal/middleware"
	"productapi/internal/services"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/gofiber/swagger"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

const msgInternalError = "Hubo un error en el servidor"

// Deps are the collaborators the HTTP app is built from.
type Deps struct {
	Products    *services.ProductService
	Ping        handlers.PingFunc
	Metrics     *metrics.HTTP
	Logger      *zap.Logger
	FrontendURL string
	// AccessLog enables the request logger middleware.
	AccessLog bool
}

// New builds the fiber app with every route registered.
func New(deps Deps) *fiber.App {
	log := deps.Logger
	if log == nil {
		log = zap.NewNop()
	}
	m := deps.Metrics
	if m == nil {
		m = metrics.NewHTTP()
	}

	app := fiber.New(fiber.Config{
		AppName:      "productapi",
		ErrorHandler: errorHandler(log),
	})

	app.Use(recover.New())
	app.Use(requestid.New(requestid.Config{Generator: uuid.NewString}))
	if deps.AccessLog {
		app.Use(logger.New(logger.Config{
			Format: "${time} ${locals:requestid} ${status} - ${latency} ${method} ${path}\n",
		}))
	}
	app.Use(m.Middleware())
	app.Use(middleware.OriginGuard(deps.FrontendURL, log))
	if deps.FrontendURL != "" {
		app.Use(cors.New(cors.Config{
			AllowOrigins: deps.FrontendURL,
			AllowMethods: "GET,POST,PUT,PATCH,DELETE,OPTIONS",
		}))
	}

	apiHandler := handlers.NewAPIHandler(deps.Ping)
	productHandler := handlers.NewProductHandler(deps.Products, log)

	api := app.Group("/api")
	productHandler.RegisterRoutes(api)
	api.Get("/", apiHandler.HandleRoot)

	app.Get("/health", apiHandler.HandleHealth)
	app.Get("/metrics", m.Handler())

	app.Get("/docs", func(c *fiber.Ctx) error {
		return c.Redirect("/docs/index.html", fiber.StatusMovedPermanently)
	})
	app.Get("/docs/*", swagger.HandlerDefault)

	return app
}

// errorHandler answers fiber errors with their own status and hides anything
// else behind a generic 500.
func errorHandler(log *zap.Logger) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		var fe *fiber.Error
		if errors.As(err, &fe) {
			return c.Status(fe.Code).JSON(handlers.ErrorResponse{Error: fe.Message})
		}
		log.Error("request failed",
			zap.String("method", c.Method()),
			zap.String("path", c.Path()),
			zap.Any("request_id", c.Locals("requestid")),
			zap.Error(err),
		)
		return c.Status(fiber.StatusInternalServerError).JSON(handlers.ErrorResponse{Error: msgInternalError})
	}
}
