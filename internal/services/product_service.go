package services

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"productapi/internal/models"
	"productapi/internal/repositories"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Product event types, also used as routing keys.
const (
	EventProductCreated             = "product.created"
	EventProductUpdated             = "product.updated"
	EventProductAvailabilityChanged = "product.availability_changed"
	EventProductDeleted             = "product.deleted"
)

// EventPublisher delivers serialized events to a message broker.
type EventPublisher interface {
	Publish(ctx context.Context, routingKey string, body []byte) error
}

// ProductEvent is the message published after a product is mutated.
type ProductEvent struct {
	ID         string          `json:"id"`
	Type       string          `json:"type"`
	ProductID  uint            `json:"productId"`
	Product    *models.Product `json:"product,omitempty"`
	OccurredAt time.Time       `json:"occurredAt"`
}

// ProductService handles business logic related to products.
type ProductService struct {
	repo      repositories.ProductRepository
	publisher EventPublisher
	logger    *zap.Logger
}

// NewProductService creates a new ProductService. publisher may be nil, in
// which case no events are emitted.
func NewProductService(repo repositories.ProductRepository, publisher EventPublisher, logger *zap.Logger) *ProductService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ProductService{
		repo:      repo,
		publisher: publisher,
		logger:    logger,
	}
}

// GetAllProducts retrieves all products.
func (s *ProductService) GetAllProducts(ctx context.Context) ([]models.Product, error) {
	return s.repo.GetAll(ctx)
}

// GetProductByID retrieves a single product by its ID.
func (s *ProductService) GetProductByID(ctx context.Context, id uint) (*models.Product, error) {
	return s.repo.GetByID(ctx, id)
}

// CreateProduct stores a new product. New products are always available,
// attrs.Availability is ignored.
func (s *ProductService) CreateProduct(ctx context.Context, attrs models.ProductAttributes) (*models.Product, error) {
	product := &models.Product{
		Name:         attrs.Name,
		Price:        attrs.Price,
		Availability: true,
	}
	if err := s.repo.Create(ctx, product); err != nil {
		return nil, err
	}
	s.publish(ctx, EventProductCreated, product.ID, product)
	return product, nil
}

// UpdateProduct overwrites name, price and availability of a product.
func (s *ProductService) UpdateProduct(ctx context.Context, id uint, attrs models.ProductAttributes) (*models.Product, error) {
	if err := s.repo.Update(ctx, id, attrs); err != nil {
		return nil, err
	}
	product, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	s.publish(ctx, EventProductUpdated, id, product)
	return product, nil
}

// UpdateAvailability sets the availability of a product.
func (s *ProductService) UpdateAvailability(ctx context.Context, id uint, availability bool) (*models.Product, error) {
	if err := s.repo.UpdateAvailability(ctx, id, availability); err != nil {
		return nil, err
	}
	product, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	s.publish(ctx, EventProductAvailabilityChanged, id, product)
	return product, nil
}

// DeleteProduct deletes a product by its ID.
func (s *ProductService) DeleteProduct(ctx context.Context, id uint) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.publish(ctx, EventProductDeleted, id, nil)
	return nil
}

// publish is best-effort: failures are logged and never returned to callers.
func (s *ProductService) publish(ctx context.Context, eventType string, productID uint, product *models.Product) {
	if s.publisher == nil {
		return
	}
	event := ProductEvent{
		ID:         uuid.NewString(),
		Type:       eventType,
		ProductID:  productID,
		Product:    product,
		OccurredAt: time.Now().UTC(),
	}
	body, err := json.Marshal(event)
	if err != nil {
		s.logger.Error("failed to marshal product event", zap.String("type", eventType), zap.Error(err))
		return
	}
	if err := s.publisher.Publish(ctx, eventType, body); err != nil {
		s.logger.Warn("failed to publish product event",
			zap.String("type", eventType),
			zap.Uint("product_id", productID),
			zap.Error(fmt.Errorf("publish %s: %w", eventType, err)),
		)
	}
}
