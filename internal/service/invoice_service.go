package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"invomaster/internal/domain"
	"invomaster/internal/repository"

	"github.com/bwmarrin/snowflake"
	"github.com/shopspring/decimal"
)

var (
	ErrMissingCustomerName = errors.New("customer name is required")
	ErrEmptyInvoice        = errors.New("invoice has no items")
)

// InvoiceService turns a draft into a committed, ledger-persisted invoice
// while consuming stock, and answers ledger queries.
type InvoiceService interface {
	Commit(ctx context.Context, builder *InvoiceBuilder, taxRate decimal.Decimal) (*domain.Invoice, error)
	GetByID(ctx context.Context, id string) (*domain.Invoice, error)
	List(ctx context.Context) ([]domain.Invoice, error)
}

type invoiceService struct {
	catalog CatalogService
	ledger  repository.InvoiceRepository
	node    *snowflake.Node
}

// NewInvoiceService creates a new instance of InvoiceService
func NewInvoiceService(catalog CatalogService, ledger repository.InvoiceRepository) (InvoiceService, error) {
	node, err := snowflake.NewNode(1)
	if err != nil {
		return nil, fmt.Errorf("failed to create id generator: %w", err)
	}
	return &invoiceService{catalog: catalog, ledger: ledger, node: node}, nil
}

// Commit finalizes the draft. Preconditions (customer name set, at least one
// line) are checked before anything is touched. Stock for every line is then
// consumed all-or-nothing: if any line fails validation the commit returns
// *InventoryUpdateError and neither the catalog nor the ledger changes.
// On success the immutable invoice is appended to the ledger and the builder
// is reset for the next sale.
func (s *invoiceService) Commit(ctx context.Context, builder *InvoiceBuilder, taxRate decimal.Decimal) (*domain.Invoice, error) {
	name, phone, address := builder.Customer()
	items := builder.Items()

	if strings.TrimSpace(name) == "" {
		return nil, ErrMissingCustomerName
	}
	if len(items) == 0 {
		return nil, ErrEmptyInvoice
	}

	lines := make([]StockLine, len(items))
	for i, item := range items {
		lines[i] = StockLine{ProductID: item.ProductID, Quantity: item.Quantity}
	}
	if err := s.catalog.DecrementAll(ctx, lines); err != nil {
		return nil, err
	}

	totals := builder.Totals(taxRate)
	invoiceDate, dueDate := builder.Dates()
	invoice := domain.Invoice{
		ID:                  fmt.Sprintf("INV-%s", s.node.Generate()),
		CustomerName:        name,
		CustomerPhoneNumber: phone,
		CustomerAddress:     address,
		Items:               items,
		SubTotal:            totals.SubTotal,
		TaxRate:             taxRate,
		TaxAmount:           totals.TaxAmount,
		GrandTotal:          totals.GrandTotal,
		InvoiceDate:         invoiceDate,
		DueDate:             dueDate,
	}

	if err := s.ledger.Append(ctx, invoice); err != nil {
		return nil, fmt.Errorf("failed to record invoice: %w", err)
	}

	builder.Reset()
	return &invoice, nil
}

// GetByID retrieves a committed invoice from the ledger.
func (s *invoiceService) GetByID(ctx context.Context, id string) (*domain.Invoice, error) {
	return s.ledger.FindByID(ctx, id)
}

// List returns all committed invoices, newest first.
func (s *invoiceService) List(ctx context.Context) ([]domain.Invoice, error) {
	return s.ledger.FindAll(ctx)
}
