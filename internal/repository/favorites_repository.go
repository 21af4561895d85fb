package repository

import (
	"context"
	"errors"
	"fmt"

	"invomaster/internal/domain"
	"invomaster/internal/storage"
)

const favoritesKey = "favorites"

// FavoritesRepository persists the user's favorite products. Entries are
// snapshots, so removing a product from the catalog does not touch the
// favorites list.
type FavoritesRepository interface {
	FindAll(ctx context.Context) ([]domain.Product, error)
	ReplaceAll(ctx context.Context, products []domain.Product) error
}

type favoritesRepository struct {
	store storage.KeyValueStore
}

// NewFavoritesRepository creates a new instance of FavoritesRepository
func NewFavoritesRepository(store storage.KeyValueStore) FavoritesRepository {
	return &favoritesRepository{store: store}
}

// FindAll loads the favorites list in insertion order.
func (r *favoritesRepository) FindAll(ctx context.Context) ([]domain.Product, error) {
	var products []domain.Product
	if err := r.store.Get(favoritesKey, &products); err != nil {
		if errors.Is(err, storage.ErrKeyNotFound) {
			return []domain.Product{}, nil
		}
		return nil, fmt.Errorf("failed to load favorites: %w", err)
	}
	return products, nil
}

// ReplaceAll persists the given list as the new favorites contents.
func (r *favoritesRepository) ReplaceAll(ctx context.Context, products []domain.Product) error {
	if err := r.store.Set(favoritesKey, products); err != nil {
		return fmt.Errorf("failed to persist favorites: %w", err)
	}
	return nil
}
