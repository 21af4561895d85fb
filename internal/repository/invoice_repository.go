package repository

import (
	"context"
	"errors"
	"fmt"

	"invomaster/internal/domain"
	"invomaster/internal/storage"
)

const invoicesKey = "invoices"

var (
	ErrInvoiceNotFound = errors.New("invoice not found")
)

// InvoiceRepository persists the append-only ledger of committed invoices.
// Iteration order is newest first; there are no update or delete operations.
type InvoiceRepository interface {
	FindAll(ctx context.Context) ([]domain.Invoice, error)
	FindByID(ctx context.Context, id string) (*domain.Invoice, error)
	Append(ctx context.Context, invoice domain.Invoice) error
}

type invoiceRepository struct {
	store storage.KeyValueStore
}

// NewInvoiceRepository creates a new instance of InvoiceRepository
func NewInvoiceRepository(store storage.KeyValueStore) InvoiceRepository {
	return &invoiceRepository{store: store}
}

// FindAll loads all committed invoices, newest first.
func (r *invoiceRepository) FindAll(ctx context.Context) ([]domain.Invoice, error) {
	var invoices []domain.Invoice
	if err := r.store.Get(invoicesKey, &invoices); err != nil {
		if errors.Is(err, storage.ErrKeyNotFound) {
			return []domain.Invoice{}, nil
		}
		return nil, fmt.Errorf("failed to load invoices: %w", err)
	}
	return invoices, nil
}

// FindByID retrieves a committed invoice by id.
func (r *invoiceRepository) FindByID(ctx context.Context, id string) (*domain.Invoice, error) {
	invoices, err := r.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	for i := range invoices {
		if invoices[i].ID == id {
			inv := invoices[i]
			return &inv, nil
		}
	}
	return nil, ErrInvoiceNotFound
}

// Append inserts the invoice at the front of the ledger.
func (r *invoiceRepository) Append(ctx context.Context, invoice domain.Invoice) error {
	invoices, err := r.FindAll(ctx)
	if err != nil {
		return err
	}
	invoices = append([]domain.Invoice{invoice}, invoices...)
	if err := r.store.Set(invoicesKey, invoices); err != nil {
		return fmt.Errorf("failed to persist invoices: %w", err)
	}
	return nil
}
