package service

import (
	"context"
	"testing"

	"invomaster/internal/repository"
	"invomaster/internal/storage"
)

func newTestFavorites(t *testing.T, repo repository.FavoritesRepository) FavoritesService {
	t.Helper()

	favorites, err := NewFavoritesService(context.Background(), repo)
	if err != nil {
		t.Fatalf("Failed to create favorites service: %v", err)
	}
	return favorites
}

func TestFavoritesAddAndRemove(t *testing.T) {
	ctx := context.Background()
	favorites := newTestFavorites(t, repository.NewFavoritesRepository(storage.NewMemoryStore()))

	product := testProduct("P1", 10, 5)
	if err := favorites.Add(ctx, product); err != nil {
		t.Fatalf("Add failed: %v", err)
	}
	if err := favorites.Add(ctx, product); err != nil {
		t.Errorf("Duplicate add should be a no-op, got %v", err)
	}

	list, err := favorites.List(ctx)
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(list) != 1 {
		t.Fatalf("Expected 1 favorite, got %d", len(list))
	}

	isFav, err := favorites.IsFavorite(ctx, "P1")
	if err != nil || !isFav {
		t.Errorf("Expected P1 to be a favorite (err=%v)", err)
	}

	if err := favorites.Remove(ctx, "P1"); err != nil {
		t.Fatalf("Remove failed: %v", err)
	}
	if err := favorites.Remove(ctx, "P1"); err != nil {
		t.Errorf("Removing an absent favorite should be a no-op, got %v", err)
	}
	isFav, _ = favorites.IsFavorite(ctx, "P1")
	if isFav {
		t.Errorf("P1 still a favorite after removal")
	}
}

func TestFavoritesPersist(t *testing.T) {
	ctx := context.Background()
	repo := repository.NewFavoritesRepository(storage.NewMemoryStore())

	favorites := newTestFavorites(t, repo)
	if err := favorites.Add(ctx, testProduct("P1", 10, 5)); err != nil {
		t.Fatalf("Add failed: %v", err)
	}

	reloaded := newTestFavorites(t, repo)
	isFav, err := reloaded.IsFavorite(ctx, "P1")
	if err != nil {
		t.Fatalf("IsFavorite failed: %v", err)
	}
	if !isFav {
		t.Errorf("Favorite did not survive reload")
	}
}
