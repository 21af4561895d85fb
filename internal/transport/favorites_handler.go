package transport

import (
	"errors"
	"net/http"

	"invomaster/internal/middleware"
	"invomaster/internal/repository"
	"invomaster/internal/service"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// AddFavoriteRequest represents the add-favorite payload
type AddFavoriteRequest struct {
	ProductID string `json:"product_id" validate:"required"`
}

// FavoritesHandler handles HTTP requests for the favorites list
type FavoritesHandler struct {
	favorites service.FavoritesService
	catalog   service.CatalogService
	logger    *zap.Logger
}

// NewFavoritesHandler creates a new FavoritesHandler
func NewFavoritesHandler(favorites service.FavoritesService, catalog service.CatalogService, logger *zap.Logger) *FavoritesHandler {
	return &FavoritesHandler{
		favorites: favorites,
		catalog:   catalog,
		logger:    logger,
	}
}

// RegisterRoutes registers all favorites routes
func (h *FavoritesHandler) RegisterRoutes(r chi.Router) {
	r.Route("/api/favorites", func(r chi.Router) {
		r.Get("/", h.List)
		r.Post("/", h.Add)
		r.Delete("/{productID}", h.Remove)
	})
}

// List returns the favorites in insertion order
func (h *FavoritesHandler) List(w http.ResponseWriter, r *http.Request) {
	favorites, err := h.favorites.List(r.Context())
	if err != nil {
		h.logger.Error("Failed to list favorites", zap.Error(err))
		middleware.RespondWithError(w, http.StatusInternalServerError, "failed to list favorites")
		return
	}
	middleware.RespondWithJSON(w, http.StatusOK, favorites)
}

// Add snapshots a catalog product into the favorites list
func (h *FavoritesHandler) Add(w http.ResponseWriter, r *http.Request) {
	var req AddFavoriteRequest
	if err := middleware.DecodeAndValidate(r, &req); err != nil {
		h.logger.Debug("Favorite validation failed", zap.Error(err))

		if validationErrors := middleware.FormatValidationErrors(err); len(validationErrors) > 0 {
			middleware.RespondWithValidationErrors(w, validationErrors)
			return
		}
		middleware.RespondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	product, err := h.catalog.GetByID(r.Context(), req.ProductID)
	if err != nil {
		if errors.Is(err, repository.ErrProductNotFound) {
			middleware.RespondWithError(w, http.StatusNotFound, "product not found")
			return
		}
		h.logger.Error("Failed to look up product", zap.Error(err))
		middleware.RespondWithError(w, http.StatusInternalServerError, "failed to add favorite")
		return
	}

	if err := h.favorites.Add(r.Context(), *product); err != nil {
		h.logger.Error("Failed to add favorite", zap.Error(err))
		middleware.RespondWithError(w, http.StatusInternalServerError, "failed to add favorite")
		return
	}

	h.logger.Info("Favorite added", zap.String("product_id", product.ID))
	middleware.RespondWithJSON(w, http.StatusCreated, product)
}

// Remove drops a favorite; removing an absent id succeeds
func (h *FavoritesHandler) Remove(w http.ResponseWriter, r *http.Request) {
	productID := chi.URLParam(r, "productID")

	if err := h.favorites.Remove(r.Context(), productID); err != nil {
		h.logger.Error("Failed to remove favorite", zap.Error(err))
		middleware.RespondWithError(w, http.StatusInternalServerError, "failed to remove favorite")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
