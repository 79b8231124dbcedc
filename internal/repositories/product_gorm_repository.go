package repositories

import (
	"context"
	"errors"
	"fmt"

	"productapi/internal/models"

	"gorm.io/gorm"
)

// GORMProductRepository is a GORM implementation of ProductRepository.
type GORMProductRepository struct {
	db *gorm.DB
}

// NewGORMProductRepository creates a new instance of GORMProductRepository.
func NewGORMProductRepository(db *gorm.DB) *GORMProductRepository {
	return &GORMProductRepository{
		db: db,
	}
}

// GetAll retrieves all products ordered by ID.
func (r *GORMProductRepository) GetAll(ctx context.Context) ([]models.Product, error) {
	products := make([]models.Product, 0)
	if err := r.db.WithContext(ctx).Order("id asc").Find(&products).Error; err != nil {
		return nil, fmt.Errorf("failed to get all products: %w", err)
	}
	return products, nil
}

// GetByID retrieves a single product by its ID.
func (r *GORMProductRepository) GetByID(ctx context.Context, id uint) (*models.Product, error) {
	var product models.Product
	if err := r.db.WithContext(ctx).First(&product, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProductNotFound
		}
		return nil, fmt.Errorf("failed to get product by ID %d: %w", id, err)
	}
	return &product, nil
}

// Create inserts a new product and fills in the generated ID.
func (r *GORMProductRepository) Create(ctx context.Context, product *models.Product) error {
	if err := r.db.WithContext(ctx).Create(product).Error; err != nil {
		return fmt.Errorf("failed to create product: %w", err)
	}
	return nil
}

// Update overwrites name, price and availability of an existing product.
func (r *GORMProductRepository) Update(ctx context.Context, id uint, attrs models.ProductAttributes) error {
	// A map is used so that availability=false is written too.
	return r.updates(ctx, id, map[string]any{
		"name":         attrs.Name,
		"price":        attrs.Price,
		"availability": attrs.Availability,
	})
}

// UpdateAvailability sets the availability flag of an existing product.
func (r *GORMProductRepository) UpdateAvailability(ctx context.Context, id uint, availability bool) error {
	return r.updates(ctx, id, map[string]any{"availability": availability})
}

func (r *GORMProductRepository) updates(ctx context.Context, id uint, values map[string]any) error {
	res := r.db.WithContext(ctx).Model(&models.Product{}).Where("id = ?", id).Updates(values)
	if res.Error != nil {
		return fmt.Errorf("failed to update product %d: %w", id, res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrProductNotFound
	}
	return nil
}

// Delete removes a product by its ID.
func (r *GORMProductRepository) Delete(ctx context.Context, id uint) error {
	res := r.db.WithContext(ctx).Delete(&models.Product{}, id)
	if res.Error != nil {
		return fmt.Errorf("failed to delete product %d: %w", id, res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrProductNotFound
	}
	return nil
}
