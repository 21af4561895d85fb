package transport

import (
	"errors"
	"net/http"
	"strings"
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

// AddItemRequest represents the add-line payload
type AddItemRequest struct {
	ProductID string `json:"product_id" validate:"required"`
	Quantity  int    `json:"quantity" validate:"omitempty,gte=1"`
}

// SetQuantityRequest represents the set-line-quantity payload. A quantity of
// zero removes the line.
type SetQuantityRequest struct {
	Quantity *int `json:"quantity" validate:"required"`
}

// CustomerRequest represents the draft customer payload
type CustomerRequest struct {
	Name        string `json:"name" validate:"required"`
	PhoneNumber string `json:"phone_number"`
	Address     string `json:"address"`
	InvoiceDate string `json:"invoice_date" validate:"omitempty,datetime=2006-01-02"`
	DueDate     string `json:"due_date" validate:"omitempty,datetime=2006-01-02"`
}

// CommitRequest represents the commit payload
type CommitRequest struct {
	TaxRate *float64 `json:"tax_rate" validate:"omitempty,gte=0"`
}

// DraftResponse represents the current state of the in-progress invoice
type DraftResponse struct {
	CustomerName        string               `json:"customer_name"`
	CustomerPhoneNumber string               `json:"customer_phone_number,omitempty"`
	CustomerAddress     string               `json:"customer_address,omitempty"`
	Items               []domain.InvoiceItem `json:"items"`
	Totals              domain.Totals        `json:"totals"`
	Warning             string               `json:"warning,omitempty"`
}

// InvoiceHandler handles HTTP requests for the invoice draft and ledger
type InvoiceHandler struct {
	draft    *service.InvoiceBuilder
	invoices service.InvoiceService
	catalog  service.CatalogService
	pdf      *export.PDFRenderer
	taxRate  decimal.Decimal
	logger   *zap.Logger
}

// NewInvoiceHandler creates a new InvoiceHandler
func NewInvoiceHandler(
	draft *service.InvoiceBuilder,
	invoices service.InvoiceService,
	catalog service.CatalogService,
	pdf *export.PDFRenderer,
	taxRate decimal.Decimal,
	logger *zap.Logger,
) *InvoiceHandler {
	return &InvoiceHandler{
		draft:    draft,
		invoices: invoices,
		catalog:  catalog,
		pdf:      pdf,
		taxRate:  taxRate,
		logger:   logger,
	}
}

// RegisterRoutes registers all invoice routes
func (h *InvoiceHandler) RegisterRoutes(r chi.Router) {
	r.Route("/api/invoices", func(r chi.Router) {
		r.Get("/", h.List)
		r.Post("/commit", h.Commit)

		r.Route("/draft", func(r chi.Router) {
			r.Get("/", h.GetDraft)
			r.Delete("/", h.ResetDraft)
			r.Put("/customer", h.SetCustomer)
			r.Post("/items", h.AddItem)
			r.Put("/items/{productID}", h.SetItemQuantity)
			r.Delete("/items/{productID}", h.RemoveItem)
		})

		r.Route("/{invoiceID}", func(r chi.Router) {
			r.Get("/", h.Get)
			r.Get("/pdf", h.DownloadPDF)
		})
	})
}

func (h *InvoiceHandler) draftResponse(warning string) DraftResponse {
	name, phone, address := h.draft.Customer()
	return DraftResponse{
		CustomerName:        name,
		CustomerPhoneNumber: phone,
		CustomerAddress:     address,
		Items:               h.draft.Items(),
		Totals:              h.draft.Totals(h.taxRate),
		Warning:             warning,
	}
}

// GetDraft returns the in-progress invoice with freshly computed totals
func (h *InvoiceHandler) GetDraft(w http.ResponseWriter, r *http.Request) {
	middleware.RespondWithJSON(w, http.StatusOK, h.draftResponse(""))
}

// ResetDraft clears the in-progress invoice
func (h *InvoiceHandler) ResetDraft(w http.ResponseWriter, r *http.Request) {
	h.draft.Reset()
	w.WriteHeader(http.StatusNoContent)
}

// SetCustomer sets the draft's customer fields and dates
func (h *InvoiceHandler) SetCustomer(w http.ResponseWriter, r *http.Request) {
	var req CustomerRequest
	if err := middleware.DecodeAndValidate(r, &req); err != nil {
		h.logger.Debug("Customer validation failed", zap.Error(err))

		if validationErrors := middleware.FormatValidationErrors(err); len(validationErrors) > 0 {
			middleware.RespondWithValidationErrors(w, validationErrors)
			return
		}
		middleware.RespondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	h.draft.SetCustomer(req.Name, req.PhoneNumber, req.Address)

	invoiceDate := time.Now()
	if req.InvoiceDate != "" {
		invoiceDate, _ = time.Parse("2006-01-02", req.InvoiceDate)
	}
	var dueDate *time.Time
	if req.DueDate != "" {
		d, _ := time.Parse("2006-01-02", req.DueDate)
		dueDate = &d
	}
	h.draft.SetDates(invoiceDate, dueDate)

	middleware.RespondWithJSON(w, http.StatusOK, h.draftResponse(""))
}

// AddItem adds a product line to the draft, collapsing repeat products
func (h *InvoiceHandler) AddItem(w http.ResponseWriter, r *http.Request) {
	var req AddItemRequest
	if err := middleware.DecodeAndValidate(r, &req); err != nil {
		h.logger.Debug("Add item validation failed", zap.Error(err))

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
		middleware.RespondWithError(w, http.StatusInternalServerError, "failed to add item")
		return
	}

	qty := req.Quantity
	if qty == 0 {
		qty = 1
	}
	if err := h.draft.AddLine(*product, qty); err != nil {
		switch {
		case errors.Is(err, service.ErrOutOfStock):
			middleware.RespondWithError(w, http.StatusConflict, "product is out of stock")
		case errors.Is(err, service.ErrMaxQuantityReached):
			middleware.RespondWithError(w, http.StatusConflict, "cannot add more than available in stock")
		default:
			h.logger.Error("Failed to add item", zap.Error(err))
			middleware.RespondWithError(w, http.StatusInternalServerError, "failed to add item")
		}
		return
	}

	middleware.RespondWithJSON(w, http.StatusOK, h.draftResponse(""))
}

// SetItemQuantity updates a draft line's quantity; zero removes the line.
// Asking for more than is in stock clamps the line and reports a warning.
func (h *InvoiceHandler) SetItemQuantity(w http.ResponseWriter, r *http.Request) {
	productID := chi.URLParam(r, "productID")

	var req SetQuantityRequest
	if err := middleware.DecodeAndValidate(r, &req); err != nil {
		h.logger.Debug("Set quantity validation failed", zap.Error(err))

		if validationErrors := middleware.FormatValidationErrors(err); len(validationErrors) > 0 {
			middleware.RespondWithValidationErrors(w, validationErrors)
			return
		}
		middleware.RespondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	product, err := h.catalog.GetByID(r.Context(), productID)
	if err != nil {
		if errors.Is(err, repository.ErrProductNotFound) {
			middleware.RespondWithError(w, http.StatusNotFound, "product not found")
			return
		}
		h.logger.Error("Failed to look up product", zap.Error(err))
		middleware.RespondWithError(w, http.StatusInternalServerError, "failed to set quantity")
		return
	}

	warning := ""
	if err := h.draft.SetLineQuantity(*product, *req.Quantity); err != nil {
		if errors.Is(err, service.ErrInsufficientStock) {
			// Non-fatal: the line was clamped to available stock.
			warning = "requested quantity exceeds stock; line set to available quantity"
		} else {
			h.logger.Error("Failed to set quantity", zap.Error(err))
			middleware.RespondWithError(w, http.StatusInternalServerError, "failed to set quantity")
			return
		}
	}

	middleware.RespondWithJSON(w, http.StatusOK, h.draftResponse(warning))
}

// RemoveItem removes a draft line if present
func (h *InvoiceHandler) RemoveItem(w http.ResponseWriter, r *http.Request) {
	h.draft.RemoveLine(chi.URLParam(r, "productID"))
	middleware.RespondWithJSON(w, http.StatusOK, h.draftResponse(""))
}

// Commit finalizes the draft into a ledger-persisted invoice, consuming stock
func (h *InvoiceHandler) Commit(w http.ResponseWriter, r *http.Request) {
	var req CommitRequest
	if r.ContentLength > 0 {
		if err := middleware.DecodeAndValidate(r, &req); err != nil {
			h.logger.Debug("Commit validation failed", zap.Error(err))

			if validationErrors := middleware.FormatValidationErrors(err); len(validationErrors) > 0 {
				middleware.RespondWithValidationErrors(w, validationErrors)
				return
			}
			middleware.RespondWithError(w, http.StatusBadRequest, "invalid request body")
			return
		}
	}

	taxRate := h.taxRate
	if req.TaxRate != nil {
		taxRate = decimal.NewFromFloat(*req.TaxRate)
	}

	invoice, err := h.invoices.Commit(r.Context(), h.draft, taxRate)
	if err != nil {
		var iue *service.InventoryUpdateError
		switch {
		case errors.Is(err, service.ErrMissingCustomerName):
			middleware.RespondWithError(w, http.StatusBadRequest, "customer name is required")
		case errors.Is(err, service.ErrEmptyInvoice):
			middleware.RespondWithError(w, http.StatusBadRequest, "invoice has no items")
		case errors.As(err, &iue):
			middleware.RespondWithErrorDetails(w, http.StatusConflict, "inventory update failed",
				map[string]interface{}{"product_id": iue.ProductID})
		default:
			h.logger.Error("Commit failed", zap.Error(err))
			middleware.RespondWithError(w, http.StatusInternalServerError, "failed to commit invoice")
		}
		return
	}

	h.logger.Info("Invoice committed",
		zap.String("invoice_id", invoice.ID),
		zap.String("customer", invoice.CustomerName),
		zap.String("grand_total", invoice.GrandTotal.StringFixed(2)),
	)
	middleware.RespondWithJSON(w, http.StatusCreated, invoice)
}

// List returns all committed invoices, newest first
func (h *InvoiceHandler) List(w http.ResponseWriter, r *http.Request) {
	invoices, err := h.invoices.List(r.Context())
	if err != nil {
		h.logger.Error("Failed to list invoices", zap.Error(err))
		middleware.RespondWithError(w, http.StatusInternalServerError, "failed to list invoices")
		return
	}
	middleware.RespondWithJSON(w, http.StatusOK, invoices)
}

// Get returns a committed invoice by id
func (h *InvoiceHandler) Get(w http.ResponseWriter, r *http.Request) {
	invoice, err := h.invoices.GetByID(r.Context(), chi.URLParam(r, "invoiceID"))
	if err != nil {
		if errors.Is(err, repository.ErrInvoiceNotFound) {
			middleware.RespondWithError(w, http.StatusNotFound, "invoice not found")
			return
		}
		h.logger.Error("Failed to get invoice", zap.Error(err))
		middleware.RespondWithError(w, http.StatusInternalServerError, "failed to get invoice")
		return
	}
	middleware.RespondWithJSON(w, http.StatusOK, invoice)
}

// DownloadPDF renders a committed invoice as a PDF document
func (h *InvoiceHandler) DownloadPDF(w http.ResponseWriter, r *http.Request) {
	invoice, err := h.invoices.GetByID(r.Context(), chi.URLParam(r, "invoiceID"))
	if err != nil {
		if errors.Is(err, repository.ErrInvoiceNotFound) {
			middleware.RespondWithError(w, http.StatusNotFound, "invoice not found")
			return
		}
		h.logger.Error("Failed to get invoice", zap.Error(err))
		middleware.RespondWithError(w, http.StatusInternalServerError, "failed to render invoice")
		return
	}

	document, err := h.pdf.RenderInvoice(*invoice)
	if err != nil {
		h.logger.Error("Failed to render invoice PDF", zap.Error(err))
		middleware.RespondWithError(w, http.StatusInternalServerError, "failed to render invoice")
		return
	}

	filename := "Invoice_" + strings.ReplaceAll(invoice.CustomerName, " ", "_") + "_" + invoice.ID + ".pdf"
	writeAttachment(w, filename, "application/pdf", document)
}
