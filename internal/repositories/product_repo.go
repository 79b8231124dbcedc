package repositories

import (
	"context"
	"errors"

	"productapi/internal/models"
)

// ErrProductNotFound is returned when no product matches the requested ID.
var ErrProductNotFound = errors.New("product not found")

// ProductRepository defines the interface for product data access.
type ProductRepository interface {
	GetAll(ctx context.Context) ([]models.Product, error)
	GetByID(ctx context.Context, id uint) (*models.Product, error)
	Create(ctx context.Context, product *models.Product) error
	Update(ctx context.Context, id uint, attrs models.ProductAttributes) error
	UpdateAvailability(ctx context.Context, id uint, availability bool) error
	Delete(ctx context.Context, id uint) error
}
