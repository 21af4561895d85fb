package service

import (
	"errors"
	"strconv"
	"testing"
	"time"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
	"github.com/shopspring/decimal"
)

func TestAddLineCollapsesDuplicates(t *testing.T) {
	builder := NewInvoiceBuilder()
	product := testProduct("P1", 10.00, 2)

	if err := builder.AddLine(product, 1); err != nil {
		t.Fatalf("First AddLine failed: %v", err)
	}
	if err := builder.AddLine(product, 1); err != nil {
		t.Fatalf("Second AddLine failed: %v", err)
	}

	items := builder.Items()
	if len(items) != 1 {
		t.Fatalf("Expected 1 collapsed line, got %d", len(items))
	}
	if items[0].Quantity != 2 {
		t.Errorf("Expected quantity 2, got %d", items[0].Quantity)
	}
	if !items[0].TotalPrice.Equal(decimal.NewFromFloat(20.00)) {
		t.Errorf("Expected line total 20.00, got %s", items[0].TotalPrice)
	}

	// A third unit exceeds the 2 in stock: the line stays at the cap.
	if err := builder.AddLine(product, 1); !errors.Is(err, ErrMaxQuantityReached) {
		t.Fatalf("Expected ErrMaxQuantityReached, got %v", err)
	}
	items = builder.Items()
	if items[0].Quantity != 2 || !items[0].TotalPrice.Equal(decimal.NewFromFloat(20.00)) {
		t.Errorf("Capped line changed: qty=%d total=%s", items[0].Quantity, items[0].TotalPrice)
	}
}

func TestAddLineOutOfStock(t *testing.T) {
	builder := NewInvoiceBuilder()

	if err := builder.AddLine(testProduct("P1", 10, 0), 1); !errors.Is(err, ErrOutOfStock) {
		t.Errorf("Expected ErrOutOfStock for zero stock, got %v", err)
	}
	if err := builder.AddLine(testProduct("P2", 10, 3), 4); !errors.Is(err, ErrOutOfStock) {
		t.Errorf("Expected ErrOutOfStock for fresh line over stock, got %v", err)
	}
	if len(builder.Items()) != 0 {
		t.Errorf("Failed adds must not create lines, got %d", len(builder.Items()))
	}
}

func TestAddLineNormalizesQuantity(t *testing.T) {
	builder := NewInvoiceBuilder()

	if err := builder.AddLine(testProduct("P1", 10, 5), 0); err != nil {
		t.Fatalf("AddLine failed: %v", err)
	}
	if got := builder.Items()[0].Quantity; got != 1 {
		t.Errorf("Quantity below 1 should be treated as 1, got %d", got)
	}
}

func TestSetLineQuantity(t *testing.T) {
	builder := NewInvoiceBuilder()
	product := testProduct("P1", 4.00, 5)
	if err := builder.AddLine(product, 2); err != nil {
		t.Fatalf("AddLine failed: %v", err)
	}

	if err := builder.SetLineQuantity(product, 4); err != nil {
		t.Fatalf("SetLineQuantity failed: %v", err)
	}
	if got := builder.Items()[0].Quantity; got != 4 {
		t.Errorf("Expected quantity 4, got %d", got)
	}

	// Over-stock requests clamp to available stock and warn.
	if err := builder.SetLineQuantity(product, 9); !errors.Is(err, ErrInsufficientStock) {
		t.Fatalf("Expected ErrInsufficientStock, got %v", err)
	}
	items := builder.Items()
	if items[0].Quantity != 5 {
		t.Errorf("Expected clamp to 5, got %d", items[0].Quantity)
	}
	if !items[0].TotalPrice.Equal(decimal.NewFromFloat(20.00)) {
		t.Errorf("Clamped line total: got %s, want 20.00", items[0].TotalPrice)
	}

	// Zero removes the line.
	if err := builder.SetLineQuantity(product, 0); err != nil {
		t.Fatalf("SetLineQuantity(0) failed: %v", err)
	}
	if len(builder.Items()) != 0 {
		t.Errorf("Expected line removed at quantity 0")
	}

	// Absent line is a no-op.
	if err := builder.SetLineQuantity(testProduct("ghost", 1, 1), 3); err != nil {
		t.Errorf("Absent line should be a no-op, got %v", err)
	}
	if len(builder.Items()) != 0 {
		t.Errorf("No-op created a line")
	}
}

func TestBuilderPriceSnapshot(t *testing.T) {
	builder := NewInvoiceBuilder()
	product := testProduct("P1", 10.00, 5)
	if err := builder.AddLine(product, 1); err != nil {
		t.Fatalf("AddLine failed: %v", err)
	}

	// A later price change on the product must not move the existing line.
	product.SellingPrice = decimal.NewFromFloat(99.99)
	if err := builder.AddLine(product, 1); err != nil {
		t.Fatalf("Second AddLine failed: %v", err)
	}

	items := builder.Items()
	if !items[0].UnitPrice.Equal(decimal.NewFromFloat(10.00)) {
		t.Errorf("Unit price moved after add: got %s", items[0].UnitPrice)
	}
	if !items[0].TotalPrice.Equal(decimal.NewFromFloat(20.00)) {
		t.Errorf("Line total: got %s, want 20.00", items[0].TotalPrice)
	}
}

func TestBuilderRemoveLine(t *testing.T) {
	builder := NewInvoiceBuilder()
	if err := builder.AddLine(testProduct("P1", 10, 5), 1); err != nil {
		t.Fatalf("AddLine failed: %v", err)
	}
	if err := builder.AddLine(testProduct("P2", 20, 5), 1); err != nil {
		t.Fatalf("AddLine failed: %v", err)
	}

	builder.RemoveLine("P1")
	items := builder.Items()
	if len(items) != 1 || items[0].ProductID != "P2" {
		t.Errorf("Expected only P2 to remain, got %+v", items)
	}

	builder.RemoveLine("P1")
	if len(builder.Items()) != 1 {
		t.Errorf("Removing an absent line must be a no-op")
	}
}

func TestBuilderReset(t *testing.T) {
	builder := NewInvoiceBuilder()
	if err := builder.AddLine(testProduct("P1", 10, 5), 2); err != nil {
		t.Fatalf("AddLine failed: %v", err)
	}
	builder.SetCustomer("Alice", "555-0100", "1 Main St")
	due := time.Date(2026, 9, 30, 0, 0, 0, 0, time.UTC)
	builder.SetDates(time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC), &due)

	builder.Reset()

	if len(builder.Items()) != 0 {
		t.Errorf("Reset left lines behind")
	}
	name, phone, address := builder.Customer()
	if name != "" || phone != "" || address != "" {
		t.Errorf("Reset left customer fields: %q %q %q", name, phone, address)
	}
	if _, dueDate := builder.Dates(); dueDate != nil {
		t.Errorf("Reset left due date")
	}
}

func TestProperty_TotalsConsistency(t *testing.T) {
	properties := gopter.NewProperties(nil)

	properties.Property("grand total is exactly sub total plus tax", prop.ForAll(
		func(prices []float64, taxPercent int) bool {
			builder := NewInvoiceBuilder()
			for i, price := range prices {
				p := testProduct("P"+strconv.Itoa(i), price, 100)
				if err := builder.AddLine(p, i%3+1); err != nil {
					t.Logf("FAIL: AddLine failed: %v", err)
					return false
				}
			}

			taxRate := decimal.NewFromInt(int64(taxPercent)).Div(decimal.NewFromInt(100))
			totals := builder.Totals(taxRate)

			expectedSub := decimal.Zero
			for _, item := range builder.Items() {
				if !item.TotalPrice.Equal(item.UnitPrice.Mul(decimal.NewFromInt(int64(item.Quantity)))) {
					t.Logf("FAIL: line total inconsistent with unit price")
					return false
				}
				expectedSub = expectedSub.Add(item.TotalPrice)
			}

			if !totals.SubTotal.Equal(expectedSub) {
				t.Logf("FAIL: sub total %s, expected %s", totals.SubTotal, expectedSub)
				return false
			}
			if !totals.TaxAmount.Equal(totals.SubTotal.Mul(taxRate).Round(2)) {
				t.Logf("FAIL: tax amount %s not rounded product", totals.TaxAmount)
				return false
			}
			return totals.GrandTotal.Equal(totals.SubTotal.Add(totals.TaxAmount))
		},
		gen.SliceOf(gen.Float64Range(0.01, 500)),
		gen.IntRange(0, 30),
	))

	properties.TestingRun(t, gopter.ConsoleReporter(false))
}
