package service

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
)

func TestDashboardSummary(t *testing.T) {
	ctx := context.Background()
	catalog := newTestCatalog(t,
		testProduct("P1", 10.00, 3),
		testProduct("P2", 5.50, 8),
		testProduct("P3", 100.00, 0),
	)
	dashboard := NewDashboardService(catalog)

	summary, err := dashboard.Summary(ctx)
	if err != nil {
		t.Fatalf("Summary failed: %v", err)
	}

	if summary.TotalProducts != 3 {
		t.Errorf("TotalProducts: got %d, want 3", summary.TotalProducts)
	}
	// 10*3 + 5.50*8 + 100*0 = 74.00
	if !summary.TotalInventoryValue.Equal(decimal.NewFromFloat(74.00)) {
		t.Errorf("TotalInventoryValue: got %s, want 74.00", summary.TotalInventoryValue)
	}
	// 74 / 3 rounded to two places.
	if !summary.AverageProductValue.Equal(decimal.NewFromFloat(24.67)) {
		t.Errorf("AverageProductValue: got %s, want 24.67", summary.AverageProductValue)
	}
	if summary.MostStockedProduct == nil {
		t.Fatalf("Expected a most stocked product")
	}
	if summary.MostStockedProduct.Name != "Product P2" || summary.MostStockedProduct.Quantity != 8 {
		t.Errorf("MostStockedProduct: got %+v", summary.MostStockedProduct)
	}
}

func TestDashboardSummaryEmptyCatalog(t *testing.T) {
	ctx := context.Background()
	dashboard := NewDashboardService(newTestCatalog(t))

	summary, err := dashboard.Summary(ctx)
	if err != nil {
		t.Fatalf("Summary failed: %v", err)
	}
	if summary.TotalProducts != 0 {
		t.Errorf("TotalProducts: got %d, want 0", summary.TotalProducts)
	}
	if !summary.TotalInventoryValue.IsZero() || !summary.AverageProductValue.IsZero() {
		t.Errorf("Expected zero values on empty catalog")
	}
	if summary.MostStockedProduct != nil {
		t.Errorf("Expected no most stocked product, got %+v", summary.MostStockedProduct)
	}
}
