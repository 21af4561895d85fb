package repository

import (
	"context"
	"errors"
	"fmt"

	"invomaster/internal/domain"
	"invomaster/internal/storage"
)

const productsKey = "products"

var (
	ErrProductNotFound = errors.New("product not found")
)

// ProductRepository defines the interface for product persistence. The whole
// catalog is stored as one ordered list under a single logical key, matching
// the key-value shape of the backing store.
type ProductRepository interface {
	FindAll(ctx context.Context) ([]domain.Product, error)
	FindByID(ctx context.Context, id string) (*domain.Product, error)
	ReplaceAll(ctx context.Context, products []domain.Product) error
}

type productRepository struct {
	store storage.KeyValueStore
}

// NewProductRepository creates a new instance of ProductRepository
func NewProductRepository(store storage.KeyValueStore) ProductRepository {
	return &productRepository{store: store}
}

// FindAll loads the full product list in insertion order. A store with no
// products yet yields an empty list, not an error.
func (r *productRepository) FindAll(ctx context.Context) ([]domain.Product, error) {
	var products []domain.Product
	if err := r.store.Get(productsKey, &products); err != nil {
		if errors.Is(err, storage.ErrKeyNotFound) {
			return []domain.Product{}, nil
		}
		return nil, fmt.Errorf("failed to load products: %w", err)
	}
	return products, nil
}

// FindByID retrieves a single product by its user-assigned id.
func (r *productRepository) FindByID(ctx context.Context, id string) (*domain.Product, error) {
	products, err := r.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	for i := range products {
		if products[i].ID == id {
			p := products[i]
			return &p, nil
		}
	}
	return nil, ErrProductNotFound
}

// ReplaceAll persists the given list as the new catalog contents.
func (r *productRepository) ReplaceAll(ctx context.Context, products []domain.Product) error {
	if err := r.store.Set(productsKey, products); err != nil {
		return fmt.Errorf("failed to persist products: %w", err)
	}
	return nil
}
