package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"productapi/internal/config"
	"productapi/internal/database"
	"productapi/internal/handlers"
	"productapi/internal/logger"
	"productapi/internal/models"
	"productapi/internal/repositories"
	"productapi/internal/server"
	"productapi/internal/services"
	"productapi/pkg/rabbitmq"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func setup(opts *options) (*config.Config, *zap.Logger, error) {
	cfg, err := config.Load(opts.envFile)
	if err != nil {
		return nil, nil, err
	}
	log, err := logger.New(cfg.LogLevel, cfg.IsProduction())
	if err != nil {
		return nil, nil, err
	}
	return cfg, log, nil
}

func openDatabase(cfg *config.Config) (*gorm.DB, error) {
	if cfg.DatabaseURL == "" {
		return nil, errors.New("DATABASE_URL is not set")
	}
	db, err := database.Open(cfg.DatabaseURL)
	if err != nil {
		return nil, err
	}
	if err := database.Migrate(db); err != nil {
		_ = database.Close(db)
		return nil, err
	}
	return db, nil
}

func runServe(opts *options) error {
	cfg, log, err := setup(opts)
	if err != nil {
		return err
	}
	defer log.Sync()

	// --- Persistence ---
	// Falls back to the in-memory store when the database is missing or unreachable.
	var (
		productRepo repositories.ProductRepository
		ping        handlers.PingFunc
		db          *gorm.DB
	)
	db, err = openDatabase(cfg)
	if err != nil {
		log.Error("Hubo un error al conectar con la base de datos, usando almacenamiento en memoria", zap.Error(err))
		productRepo = repositories.NewMemoryProductRepository()
	} else {
		log.Info("connected to database")
		productRepo = repositories.NewGORMProductRepository(db)
		ping = func(ctx context.Context) error { return database.Ping(ctx, db) }
	}

	// --- Events ---
	var publisher services.EventPublisher
	var mqClient *rabbitmq.Client
	if cfg.RabbitMQURL != "" {
		mqClient, err = rabbitmq.NewClient(rabbitmq.Config{URL: cfg.RabbitMQURL, Exchange: cfg.RabbitMQExchange})
		if err != nil {
			log.Warn("RabbitMQ unavailable, product events disabled", zap.Error(err))
		} else {
			publisher = mqClient
		}
	}

	productService := services.NewProductService(productRepo, publisher, log)

	app := server.New(server.Deps{
		Products:    productService,
		Ping:        ping,
		Logger:      log,
		FrontendURL: cfg.FrontendURL,
		AccessLog:   true,
	})

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(quit)

	listenErr := make(chan error, 1)
	go func() {
		log.Info("server running", zap.String("addr", cfg.Addr()))
		listenErr <- app.Listen(cfg.Addr())
	}()

	var serveErr error
	select {
	case <-quit:
		log.Info("shutting down server")
	case serveErr = <-listenErr:
		if serveErr != nil {
			log.Error("server failed", zap.Error(serveErr))
		}
	}

	if err := app.ShutdownWithTimeout(cfg.ShutdownTimeout); err != nil {
		log.Error("error during fiber shutdown", zap.Error(err))
	}
	if mqClient != nil {
		if err := mqClient.Close(); err != nil {
			log.Error("failed to close RabbitMQ client", zap.Error(err))
		}
	}
	if db != nil {
		if err := database.Close(db); err != nil {
			log.Error("failed to close database connection", zap.Error(err))
		}
	}
	log.Info("server stopped")
	if serveErr != nil {
		return fmt.Errorf("listen: %w", serveErr)
	}
	return nil
}

func runMigrate(opts *options) error {
	cfg, log, err := setup(opts)
	if err != nil {
		return err
	}
	defer log.Sync()

	db, err := openDatabase(cfg)
	if err != nil {
		return err
	}
	defer database.Close(db)
	log.Info("schema migration applied")
	return nil
}

func runSeed(ctx context.Context, opts *options) error {
	cfg, log, err := setup(opts)
	if err != nil {
		return err
	}
	defer log.Sync()

	db, err := openDatabase(cfg)
	if err != nil {
		return err
	}
	defer database.Close(db)

	if ctx == nil {
		ctx = context.Background()
	}
	n, err := seedProducts(ctx, repositories.NewGORMProductRepository(db))
	if err != nil {
		return err
	}
	log.Info("seeded products", zap.Int("count", n))
	return nil
}

// seedProducts populates the product repository with some initial data.
func seedProducts(ctx context.Context, repo repositories.ProductRepository) (int, error) {
	products := []models.Product{
		{Name: "Laptop", Price: decimal.RequireFromString("1200.00"), Availability: true},
		{Name: "Teclado Mecanico", Price: decimal.RequireFromString("75.00"), Availability: true},
		{Name: "Mouse Inalambrico", Price: decimal.RequireFromString("25.50"), Availability: true},
	}
	for i := range products {
		if err := repo.Create(ctx, &products[i]); err != nil {
			return i, fmt.Errorf("seeding product %s: %w", products[i].Name, err)
		}
	}
	return len(products), nil
}
