package service

import (
	"context"

	"invomaster/internal/domain"

	"github.com/shopspring/decimal"
)

// DashboardSummary aggregates the catalog for the overview screen.
type DashboardSummary struct {
	TotalProducts       int             `json:"total_products"`
	TotalInventoryValue decimal.Decimal `json:"total_inventory_value"`
	AverageProductValue decimal.Decimal `json:"average_product_value"`
	MostStockedProduct  *StockedProduct `json:"most_stocked_product,omitempty"`
}

// StockedProduct names the product with the highest on-hand quantity.
type StockedProduct struct {
	Name     string `json:"name"`
	Quantity int    `json:"quantity"`
}

// DashboardService computes read-only aggregates over the catalog.
type DashboardService interface {
	Summary(ctx context.Context) (*DashboardSummary, error)
}

type dashboardService struct {
	catalog CatalogService
}

// NewDashboardService creates a new instance of DashboardService
func NewDashboardService(catalog CatalogService) DashboardService {
	return &dashboardService{catalog: catalog}
}

// Summary recomputes all aggregates from the current catalog contents.
func (s *dashboardService) Summary(ctx context.Context) (*DashboardSummary, error) {
	products, err := s.catalog.List(ctx)
	if err != nil {
		return nil, err
	}

	summary := &DashboardSummary{
		TotalProducts:       len(products),
		TotalInventoryValue: decimal.Zero,
		AverageProductValue: decimal.Zero,
	}

	var most *domain.Product
	for i, p := range products {
		summary.TotalInventoryValue = summary.TotalInventoryValue.Add(p.InventoryValue())
		if most == nil || p.Quantity > most.Quantity {
			most = &products[i]
		}
	}

	if len(products) > 0 {
		summary.AverageProductValue = summary.TotalInventoryValue.
			DivRound(decimal.NewFromInt(int64(len(products))), 2)
	}
	if most != nil {
		summary.MostStockedProduct = &StockedProduct{Name: most.Name, Quantity: most.Quantity}
	}
	return summary, nil
}
