package export

import (
	"fmt"

	"invomaster/internal/domain"

	"github.com/xuri/excelize/v2"
)

// ProductsWorkbook builds an xlsx workbook listing the full catalog.
func ProductsWorkbook(products []domain.Product) ([]byte, error) {
	header := []any{
		"Product ID", "Name", "Description", "Buying Price", "Shipping Cost",
		"Selling Price", "Quantity", "Shipment Date", "Image URL",
	}
	rows := make([][]any, 0, len(products))
	for _, p := range products {
		rows = append(rows, []any{
			p.ID,
			p.Name,
			p.Description,
			p.BuyingPrice.InexactFloat64(),
			p.ShippingCost.InexactFloat64(),
			p.SellingPrice.InexactFloat64(),
			p.Quantity,
			p.ShipmentDate.Format("2006-01-02"),
			valueOr(p.ImageURL, "N/A"),
		})
	}
	return writeSheet("Products", header, rows)
}

// ShippingListWorkbook builds an xlsx workbook of products ready to ship,
// i.e. every product with stock on hand.
func ShippingListWorkbook(products []domain.Product) ([]byte, error) {
	header := []any{"Product ID", "Name", "Price", "Quantity", "Image URL"}
	rows := make([][]any, 0, len(products))
	for _, p := range products {
		if p.Quantity <= 0 {
			continue
		}
		rows = append(rows, []any{
			p.ID,
			p.Name,
			p.SellingPrice.InexactFloat64(),
			p.Quantity,
			valueOr(p.ImageURL, "N/A"),
		})
	}
	return writeSheet("Shipping List", header, rows)
}

func writeSheet(sheet string, header []any, rows [][]any) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", sheet); err != nil {
		return nil, fmt.Errorf("failed to name sheet: %w", err)
	}
	if err := f.SetSheetRow(sheet, "A1", &header); err != nil {
		return nil, fmt.Errorf("failed to write header row: %w", err)
	}
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return nil, fmt.Errorf("failed to locate row %d: %w", i+2, err)
		}
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return nil, fmt.Errorf("failed to write row %d: %w", i+2, err)
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("failed to serialize workbook: %w", err)
	}
	return buf.Bytes(), nil
}

func valueOr(s, fallback string) string {
	if s == "" {
		return fallback
	}
	return s
}
