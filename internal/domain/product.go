package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product represents a product in the catalog. The ID is user-assigned and
// unique within the catalog; Quantity is the authoritative on-hand stock.
type Product struct {
	ID           string          `json:"id"`
	Name         string          `json:"name"`
	Description  string          `json:"description"`
	BuyingPrice  decimal.Decimal `json:"buying_price"`
	ShippingCost decimal.Decimal `json:"shipping_cost"`
	SellingPrice decimal.Decimal `json:"selling_price"`
	Quantity     int             `json:"quantity"`
	ShipmentDate time.Time       `json:"shipment_date"`
	ImageURL     string          `json:"image_url,omitempty"`
}

// InventoryValue returns the stock value of the product at its selling price.
func (p Product) InventoryValue() decimal.Decimal {
	return p.SellingPrice.Mul(decimal.NewFromInt(int64(p.Quantity)))
}
