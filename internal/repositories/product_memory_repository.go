package repositories

import (
	"context"
	"sort"
	"sync"
	"time"

	"productapi/internal/models"
)

// MemoryProductRepository is an in-memory implementation of ProductRepository.
type MemoryProductRepository struct {
	products map[uint]models.Product
	nextID   uint
	mu       sync.RWMutex
}

// NewMemoryProductRepository creates a new instance of MemoryProductRepository.
func NewMemoryProductRepository() *MemoryProductRepository {
	return &MemoryProductRepository{
		products: make(map[uint]models.Product),
		nextID:   1,
	}
}

// GetAll returns all products ordered by ID.
func (r *MemoryProductRepository) GetAll(_ context.Context) ([]models.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	productList := make([]models.Product, 0, len(r.products))
	for _, p := range r.products {
		productList = append(productList, p)
	}
	sort.Slice(productList, func(i, j int) bool { return productList[i].ID < productList[j].ID })
	return productList, nil
}

// GetByID returns a product by its ID.
func (r *MemoryProductRepository) GetByID(_ context.Context, id uint) (*models.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	product, ok := r.products[id]
	if !ok {
		return nil, ErrProductNotFound
	}
	return &product, nil
}

// Create adds a new product, assigning the next ID.
func (r *MemoryProductRepository) Create(_ context.Context, product *models.Product) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := time.Now()
	product.ID = r.nextID
	product.CreatedAt = now
	product.UpdatedAt = now
	r.nextID++
	r.products[product.ID] = *product
	return nil
}

// Update overwrites name, price and availability of an existing product.
func (r *MemoryProductRepository) Update(_ context.Context, id uint, attrs models.ProductAttributes) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	product, ok := r.products[id]
	if !ok {
		return ErrProductNotFound
	}
	product.Name = attrs.Name
	product.Price = attrs.Price
	product.Availability = attrs.Availability
	product.UpdatedAt = time.Now()
	r.products[id] = product
	return nil
}

// UpdateAvailability sets the availability flag of an existing product.
func (r *MemoryProductRepository) UpdateAvailability(_ context.Context, id uint, availability bool) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	product, ok := r.products[id]
	if !ok {
		return ErrProductNotFound
	}
	product.Availability = availability
	product.UpdatedAt = time.Now()
	r.products[id] = product
	return nil
}

// Delete removes a product by its ID.
func (r *MemoryProductRepository) Delete(_ context.Context, id uint) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.products[id]; !ok {
		return ErrProductNotFound
	}
	delete(r.products, id)
	return nil
}
