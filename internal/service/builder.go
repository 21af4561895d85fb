package service

import (
	"errors"
	"sync"
	"time"

	"invomaster/internal/domain"

	"github.com/shopspring/decimal"
)

var (
	ErrOutOfStock         = errors.New("product is out of stock")
	ErrMaxQuantityReached = errors.New("cannot add more than available stock")
)

// InvoiceBuilder accumulates line items for one in-progress invoice. Lines
// are keyed by product id and kept in insertion order; prices are snapshots
// taken when the line is first added. The builder never touches the catalog.
type InvoiceBuilder struct {
	mu sync.Mutex

	items               []domain.InvoiceItem
	customerName        string
	customerPhoneNumber string
	customerAddress     string
	invoiceDate         time.Time
	dueDate             *time.Time
}

// NewInvoiceBuilder creates an empty builder dated today.
func NewInvoiceBuilder() *InvoiceBuilder {
	return &InvoiceBuilder{invoiceDate: time.Now()}
}

// AddLine adds qty units of the product to the draft. Adding a product that
// already has a line increases that line instead of duplicating it, capped at
// the product's available stock; hitting the cap returns ErrMaxQuantityReached
// with the line left at the cap. A product with no stock, or a fresh line
// requesting more than is available, returns ErrOutOfStock.
func (b *InvoiceBuilder) AddLine(product domain.Product, qty int) error {
	if qty < 1 {
		qty = 1
	}
	if product.Quantity <= 0 {
		return ErrOutOfStock
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	for i := range b.items {
		if b.items[i].ProductID != product.ID {
			continue
		}
		requested := b.items[i].Quantity + qty
		if requested > product.Quantity {
			b.setQuantityLocked(i, product.Quantity)
			return ErrMaxQuantityReached
		}
		b.setQuantityLocked(i, requested)
		return nil
	}

	if qty > product.Quantity {
		return ErrOutOfStock
	}
	unitPrice := product.SellingPrice
	b.items = append(b.items, domain.InvoiceItem{
		ProductID:   product.ID,
		ProductName: product.Name,
		Quantity:    qty,
		UnitPrice:   unitPrice,
		TotalPrice:  unitPrice.Mul(decimal.NewFromInt(int64(qty))),
	})
	return nil
}

// SetLineQuantity sets the quantity of the product's line. A quantity of zero
// or less removes the line. Asking for more than the product has in stock
// clamps the line to available stock and returns ErrInsufficientStock; the
// draft stays valid either way. Absent lines are a no-op.
func (b *InvoiceBuilder) SetLineQuantity(product domain.Product, qty int) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if qty <= 0 {
		b.removeLineLocked(product.ID)
		return nil
	}

	for i := range b.items {
		if b.items[i].ProductID != product.ID {
			continue
		}
		if qty > product.Quantity {
			b.setQuantityLocked(i, product.Quantity)
			return ErrInsufficientStock
		}
		b.setQuantityLocked(i, qty)
		return nil
	}
	return nil
}

// RemoveLine removes the product's line if present.
func (b *InvoiceBuilder) RemoveLine(productID string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.removeLineLocked(productID)
}

// Items returns a copy of the draft lines in insertion order.
func (b *InvoiceBuilder) Items() []domain.InvoiceItem {
	b.mu.Lock()
	defer b.mu.Unlock()
	return append([]domain.InvoiceItem(nil), b.items...)
}

// SetCustomer sets the customer fields for the draft.
func (b *InvoiceBuilder) SetCustomer(name, phoneNumber, address string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.customerName = name
	b.customerPhoneNumber = phoneNumber
	b.customerAddress = address
}

// SetDates sets the invoice date and optional due date.
func (b *InvoiceBuilder) SetDates(invoiceDate time.Time, dueDate *time.Time) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.invoiceDate = invoiceDate
	b.dueDate = dueDate
}

// Dates returns the draft's invoice date and optional due date.
func (b *InvoiceBuilder) Dates() (invoiceDate time.Time, dueDate *time.Time) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.invoiceDate, b.dueDate
}

// Customer returns the draft's customer fields.
func (b *InvoiceBuilder) Customer() (name, phoneNumber, address string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.customerName, b.customerPhoneNumber, b.customerAddress
}

// Totals computes the draft's monetary summary from the current lines. It is
// recomputed on every call; nothing is cached. The tax amount is rounded to
// two decimal places, so GrandTotal = SubTotal + TaxAmount holds exactly.
func (b *InvoiceBuilder) Totals(taxRate decimal.Decimal) domain.Totals {
	b.mu.Lock()
	defer b.mu.Unlock()

	subTotal := decimal.Zero
	for _, item := range b.items {
		subTotal = subTotal.Add(item.TotalPrice)
	}
	taxAmount := subTotal.Mul(taxRate).Round(2)
	return domain.Totals{
		SubTotal:   subTotal,
		TaxAmount:  taxAmount,
		GrandTotal: subTotal.Add(taxAmount),
	}
}

// Reset clears all lines and customer fields, ready for the next invoice.
func (b *InvoiceBuilder) Reset() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.items = nil
	b.customerName = ""
	b.customerPhoneNumber = ""
	b.customerAddress = ""
	b.invoiceDate = time.Now()
	b.dueDate = nil
}

// setQuantityLocked updates a line's quantity and recomputes its total so a
// stale TotalPrice is never observable. Callers must hold the lock.
func (b *InvoiceBuilder) setQuantityLocked(i, qty int) {
	b.items[i].Quantity = qty
	b.items[i].TotalPrice = b.items[i].UnitPrice.Mul(decimal.NewFromInt(int64(qty)))
}

func (b *InvoiceBuilder) removeLineLocked(productID string) {
	for i := range b.items {
		if b.items[i].ProductID == productID {
			b.items = append(b.items[:i], b.items[i+1:]...)
			return
		}
	}
}
