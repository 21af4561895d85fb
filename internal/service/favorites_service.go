package service

import (
	"context"
	"fmt"
	"sync"

	"invomaster/internal/domain"
	"invomaster/internal/repository"
)

// FavoritesService manages the user's favorite products. Favorites hold a
// snapshot of the product, so they survive catalog edits and removals.
type FavoritesService interface {
	Add(ctx context.Context, product domain.Product) error
	Remove(ctx context.Context, productID string) error
	IsFavorite(ctx context.Context, productID string) (bool, error)
	List(ctx context.Context) ([]domain.Product, error)
}

type favoritesService struct {
	mu        sync.RWMutex
	favorites []domain.Product
	repo      repository.FavoritesRepository
}

// NewFavoritesService loads the persisted favorites and returns a service over them.
func NewFavoritesService(ctx context.Context, repo repository.FavoritesRepository) (FavoritesService, error) {
	favorites, err := repo.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load favorites: %w", err)
	}
	return &favoritesService{favorites: favorites, repo: repo}, nil
}

// Add stores the product as a favorite. Adding an existing favorite is a no-op.
func (s *favoritesService) Add(ctx context.Context, product domain.Product) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, p := range s.favorites {
		if p.ID == product.ID {
			return nil
		}
	}

	next := append(append([]domain.Product(nil), s.favorites...), product)
	if err := s.repo.ReplaceAll(ctx, next); err != nil {
		return err
	}
	s.favorites = next
	return nil
}

// Remove drops the favorite by product id; absent ids are a silent no-op.
func (s *favoritesService) Remove(ctx context.Context, productID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i, p := range s.favorites {
		if p.ID != productID {
			continue
		}
		next := append([]domain.Product(nil), s.favorites...)
		next = append(next[:i], next[i+1:]...)
		if err := s.repo.ReplaceAll(ctx, next); err != nil {
			return err
		}
		s.favorites = next
		return nil
	}
	return nil
}

// IsFavorite reports whether the product id is in the favorites list.
func (s *favoritesService) IsFavorite(ctx context.Context, productID string) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, p := range s.favorites {
		if p.ID == productID {
			return true, nil
		}
	}
	return false, nil
}

// List returns the favorites in insertion order.
func (s *favoritesService) List(ctx context.Context) ([]domain.Product, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]domain.Product(nil), s.favorites...), nil
}
