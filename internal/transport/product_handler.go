package transport

import (
	"errors"
	"net/http"
	"time"

	"invomaster/internal/domain"
	"invomaster/internal/export"
	"invomaster/internal/middleware"
	"invomaster/internal/repository"
	"invomaster/internal/service"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// ProductRequest represents the product create/update payload
type ProductRequest struct {
	ID           string  `json:"id" validate:"required"`
	Name         string  `json:"name" validate:"required"`
	Description  string  `json:"description"`
	BuyingPrice  float64 `json:"buying_price" validate:"gte=0"`
	ShippingCost float64 `json:"shipping_cost" validate:"gte=0"`
	SellingPrice float64 `json:"selling_price" validate:"gte=0"`
	Quantity     int     `json:"quantity" validate:"gte=0"`
	ShipmentDate string  `json:"shipment_date" validate:"omitempty,datetime=2006-01-02"`
	ImageURL     string  `json:"image_url"`
}

func (r ProductRequest) toDomain() domain.Product {
	var shipmentDate time.Time
	if r.ShipmentDate != "" {
		shipmentDate, _ = time.Parse("2006-01-02", r.ShipmentDate)
	}
	return domain.Product{
		ID:           r.ID,
		Name:         r.Name,
		Description:  r.Description,
		BuyingPrice:  decimal.NewFromFloat(r.BuyingPrice),
		ShippingCost: decimal.NewFromFloat(r.ShippingCost),
		SellingPrice: decimal.NewFromFloat(r.SellingPrice),
		Quantity:     r.Quantity,
		ShipmentDate: shipmentDate,
		ImageURL:     r.ImageURL,
	}
}

// ProductHandler handles HTTP requests for catalog operations
type ProductHandler struct {
	catalog service.CatalogService
	logger  *zap.Logger
}

// NewProductHandler creates a new ProductHandler
func NewProductHandler(catalog service.CatalogService, logger *zap.Logger) *ProductHandler {
	return &ProductHandler{
		catalog: catalog,
		logger:  logger,
	}
}

// RegisterRoutes registers all catalog routes
func (h *ProductHandler) RegisterRoutes(r chi.Router) {
	r.Route("/api/products", func(r chi.Router) {
		r.Get("/", h.List)
		r.Post("/", h.Create)
		r.Get("/search", h.Search)
		r.Get("/export", h.ExportWorkbook)

		r.Route("/{productID}", func(r chi.Router) {
			r.Get("/", h.Get)
			r.Put("/", h.Update)
			r.Delete("/", h.Remove)
		})
	})

	r.Get("/api/shipping/export", h.ExportShippingList)
}

// List returns the full catalog
func (h *ProductHandler) List(w http.ResponseWriter, r *http.Request) {
	products, err := h.catalog.List(r.Context())
	if err != nil {
		h.logger.Error("Failed to list products", zap.Error(err))
		middleware.RespondWithError(w, http.StatusInternalServerError, "failed to list products")
		return
	}
	middleware.RespondWithJSON(w, http.StatusOK, products)
}

// Create adds a new product to the catalog
func (h *ProductHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req ProductRequest
	if err := middleware.DecodeAndValidate(r, &req); err != nil {
		h.logger.Debug("Product validation failed", zap.Error(err))

		if validationErrors := middleware.FormatValidationErrors(err); len(validationErrors) > 0 {
			middleware.RespondWithValidationErrors(w, validationErrors)
			return
		}
		middleware.RespondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	product := req.toDomain()
	if err := h.catalog.Add(r.Context(), product); err != nil {
		if errors.Is(err, service.ErrProductExists) {
			middleware.RespondWithError(w, http.StatusConflict, "product with this id already exists")
			return
		}
		h.logger.Error("Failed to create product", zap.Error(err))
		middleware.RespondWithError(w, http.StatusInternalServerError, "failed to create product")
		return
	}

	h.logger.Info("Product created", zap.String("product_id", product.ID))
	middleware.RespondWithJSON(w, http.StatusCreated, product)
}

// Get returns a single product by id
func (h *ProductHandler) Get(w http.ResponseWriter, r *http.Request) {
	productID := chi.URLParam(r, "productID")

	product, err := h.catalog.GetByID(r.Context(), productID)
	if err != nil {
		if errors.Is(err, repository.ErrProductNotFound) {
			middleware.RespondWithError(w, http.StatusNotFound, "product not found")
			return
		}
		h.logger.Error("Failed to get product", zap.Error(err))
		middleware.RespondWithError(w, http.StatusInternalServerError, "failed to get product")
		return
	}
	middleware.RespondWithJSON(w, http.StatusOK, product)
}

// Update replaces a product wholesale
func (h *ProductHandler) Update(w http.ResponseWriter, r *http.Request) {
	productID := chi.URLParam(r, "productID")

	var req ProductRequest
	if err := middleware.DecodeAndValidate(r, &req); err != nil {
		h.logger.Debug("Product validation failed", zap.Error(err))

		if validationErrors := middleware.FormatValidationErrors(err); len(validationErrors) > 0 {
			middleware.RespondWithValidationErrors(w, validationErrors)
			return
		}
		middleware.RespondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.ID != productID {
		middleware.RespondWithError(w, http.StatusBadRequest, "product id in body does not match URL")
		return
	}

	product := req.toDomain()
	if err := h.catalog.Update(r.Context(), product); err != nil {
		if errors.Is(err, repository.ErrProductNotFound) {
			middleware.RespondWithError(w, http.StatusNotFound, "product not found")
			return
		}
		h.logger.Error("Failed to update product", zap.Error(err))
		middleware.RespondWithError(w, http.StatusInternalServerError, "failed to update product")
		return
	}

	h.logger.Info("Product updated", zap.String("product_id", product.ID))
	middleware.RespondWithJSON(w, http.StatusOK, product)
}

// Remove deletes a product; deleting an absent id succeeds
func (h *ProductHandler) Remove(w http.ResponseWriter, r *http.Request) {
	productID := chi.URLParam(r, "productID")

	if err := h.catalog.Remove(r.Context(), productID); err != nil {
		h.logger.Error("Failed to remove product", zap.Error(err))
		middleware.RespondWithError(w, http.StatusInternalServerError, "failed to remove product")
		return
	}

	h.logger.Info("Product removed", zap.String("product_id", productID))
	w.WriteHeader(http.StatusNoContent)
}

// Search matches products by id or name
func (h *ProductHandler) Search(w http.ResponseWriter, r *http.Request) {
	term := r.URL.Query().Get("q")

	products, err := h.catalog.Search(r.Context(), term)
	if err != nil {
		h.logger.Error("Failed to search products", zap.Error(err))
		middleware.RespondWithError(w, http.StatusInternalServerError, "failed to search products")
		return
	}
	middleware.RespondWithJSON(w, http.StatusOK, products)
}

// ExportWorkbook downloads the catalog as an xlsx workbook
func (h *ProductHandler) ExportWorkbook(w http.ResponseWriter, r *http.Request) {
	products, err := h.catalog.List(r.Context())
	if err != nil {
		h.logger.Error("Failed to load products for export", zap.Error(err))
		middleware.RespondWithError(w, http.StatusInternalServerError, "failed to export products")
		return
	}

	workbook, err := export.ProductsWorkbook(products)
	if err != nil {
		h.logger.Error("Failed to build products workbook", zap.Error(err))
		middleware.RespondWithError(w, http.StatusInternalServerError, "failed to export products")
		return
	}

	writeAttachment(w, "products.xlsx", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", workbook)
}

// ExportShippingList downloads products with stock on hand as an xlsx workbook
func (h *ProductHandler) ExportShippingList(w http.ResponseWriter, r *http.Request) {
	products, err := h.catalog.List(r.Context())
	if err != nil {
		h.logger.Error("Failed to load products for shipping export", zap.Error(err))
		middleware.RespondWithError(w, http.StatusInternalServerError, "failed to export shipping list")
		return
	}

	workbook, err := export.ShippingListWorkbook(products)
	if err != nil {
		h.logger.Error("Failed to build shipping workbook", zap.Error(err))
		middleware.RespondWithError(w, http.StatusInternalServerError, "failed to export shipping list")
		return
	}

	writeAttachment(w, "shipping_list.xlsx", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", workbook)
}

func writeAttachment(w http.ResponseWriter, filename, contentType string, body []byte) {
	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Content-Disposition", `attachment; filename="`+filename+`"`)
	w.WriteHeader(http.StatusOK)
	w.Write(body)
}
