package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"invomaster/internal/domain"
	"invomaster/internal/repository"
)

// searchResultLimit caps the number of products returned by Search.
const searchResultLimit = 5

var (
	ErrProductExists     = errors.New("product with this id already exists")
	ErrInsufficientStock = errors.New("insufficient stock")
)

// StockLine identifies a quantity of one product to be consumed from stock.
type StockLine struct {
	ProductID string
	Quantity  int
}

// InventoryUpdateError reports the line that caused a stock update to fail.
// No stock is consumed when it is returned.
type InventoryUpdateError struct {
	ProductID string
	Err       error
}

func (e *InventoryUpdateError) Error() string {
	return fmt.Sprintf("inventory update failed for product %s: %v", e.ProductID, e.Err)
}

func (e *InventoryUpdateError) Unwrap() error { return e.Err }

// CatalogService defines the interface for product catalog business logic.
// It is the sole owner of authoritative stock counts.
type CatalogService interface {
	Add(ctx context.Context, product domain.Product) error
	Update(ctx context.Context, product domain.Product) error
	Remove(ctx context.Context, productID string) error
	GetByID(ctx context.Context, productID string) (*domain.Product, error)
	List(ctx context.Context) ([]domain.Product, error)
	Search(ctx context.Context, term string) ([]domain.Product, error)
	DecrementStock(ctx context.Context, productID string, amount int) error
	DecrementAll(ctx context.Context, lines []StockLine) error
}

type catalogService struct {
	mu       sync.RWMutex
	products []domain.Product
	repo     repository.ProductRepository
}

// NewCatalogService loads the persisted catalog and returns a service over it.
func NewCatalogService(ctx context.Context, repo repository.ProductRepository) (CatalogService, error) {
	products, err := repo.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load catalog: %w", err)
	}
	return &catalogService{products: products, repo: repo}, nil
}

// Add inserts a new product. It fails with ErrProductExists and leaves the
// catalog untouched when the id is already taken.
func (s *catalogService) Add(ctx context.Context, product domain.Product) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.indexOf(product.ID) >= 0 {
		return ErrProductExists
	}
	if product.Quantity < 0 {
		return fmt.Errorf("quantity must not be negative")
	}

	next := append(s.snapshot(), product)
	if err := s.repo.ReplaceAll(ctx, next); err != nil {
		return err
	}
	s.products = next
	return nil
}

// Update replaces a product wholesale by id.
func (s *catalogService) Update(ctx context.Context, product domain.Product) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexOf(product.ID)
	if i < 0 {
		return repository.ErrProductNotFound
	}
	if product.Quantity < 0 {
		return fmt.Errorf("quantity must not be negative")
	}

	next := s.snapshot()
	next[i] = product
	if err := s.repo.ReplaceAll(ctx, next); err != nil {
		return err
	}
	s.products = next
	return nil
}

// Remove deletes a product by id. Removing an absent id is a silent no-op:
// committed invoices carry their own snapshots, so deletion never cascades.
func (s *catalogService) Remove(ctx context.Context, productID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexOf(productID)
	if i < 0 {
		return nil
	}

	next := s.snapshot()
	next = append(next[:i], next[i+1:]...)
	if err := s.repo.ReplaceAll(ctx, next); err != nil {
		return err
	}
	s.products = next
	return nil
}

// GetByID retrieves a product by id.
func (s *catalogService) GetByID(ctx context.Context, productID string) (*domain.Product, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	i := s.indexOf(productID)
	if i < 0 {
		return nil, repository.ErrProductNotFound
	}
	p := s.products[i]
	return &p, nil
}

// List returns all products in insertion order.
func (s *catalogService) List(ctx context.Context) ([]domain.Product, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.snapshot(), nil
}

// Search matches products whose id or name contains the term,
// case-insensitively. Results are capped so the caller gets a short pick list.
func (s *catalogService) Search(ctx context.Context, term string) ([]domain.Product, error) {
	term = strings.ToLower(strings.TrimSpace(term))
	if term == "" {
		return []domain.Product{}, nil
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	matches := []domain.Product{}
	for _, p := range s.products {
		if strings.Contains(strings.ToLower(p.Name), term) || strings.Contains(strings.ToLower(p.ID), term) {
			matches = append(matches, p)
			if len(matches) == searchResultLimit {
				break
			}
		}
	}
	return matches, nil
}

// DecrementStock reduces a product's quantity by amount and persists the
// change. It fails with ErrProductNotFound or ErrInsufficientStock without
// mutating anything; quantity can never go negative.
func (s *catalogService) DecrementStock(ctx context.Context, productID string, amount int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	err := s.decrementLocked(ctx, []StockLine{{ProductID: productID, Quantity: amount}})
	var iue *InventoryUpdateError
	if errors.As(err, &iue) {
		return iue.Err
	}
	return err
}

// DecrementAll consumes stock for every line, or for none of them. Every
// line is validated against current stock before any quantity changes, so a
// failed call leaves the catalog exactly as it was.
func (s *catalogService) DecrementAll(ctx context.Context, lines []StockLine) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.decrementLocked(ctx, lines)
}

func (s *catalogService) decrementLocked(ctx context.Context, lines []StockLine) error {
	// Work on a scratch copy; s.products is only swapped once every line
	// has cleared, so repeated ids validate against the running balance.
	next := s.snapshot()
	for _, line := range lines {
		i := s.indexOf(line.ProductID)
		if i < 0 {
			return &InventoryUpdateError{ProductID: line.ProductID, Err: repository.ErrProductNotFound}
		}
		if line.Quantity > next[i].Quantity {
			return &InventoryUpdateError{ProductID: line.ProductID, Err: ErrInsufficientStock}
		}
		next[i].Quantity -= line.Quantity
	}

	if err := s.repo.ReplaceAll(ctx, next); err != nil {
		return err
	}
	s.products = next
	return nil
}

// indexOf returns the position of a product id, or -1. Callers must hold the lock.
func (s *catalogService) indexOf(productID string) int {
	for i := range s.products {
		if s.products[i].ID == productID {
			return i
		}
	}
	return -1
}

// snapshot copies the product list so callers never alias internal state.
func (s *catalogService) snapshot() []domain.Product {
	return append([]domain.Product(nil), s.products...)
}
