package export

import (
	"bytes"
	"fmt"

	"invomaster/internal/domain"

	"github.com/jung-kurt/gofpdf"
	"github.com/shopspring/decimal"
)

var hundred = decimal.NewFromInt(100)

// PDFRenderer renders committed invoices as printable PDF documents.
type PDFRenderer struct {
	companyName string
}

// NewPDFRenderer creates a renderer that stamps the given company name on
// every document.
func NewPDFRenderer(companyName string) *PDFRenderer {
	return &PDFRenderer{companyName: companyName}
}

// RenderInvoice produces the PDF for a finalized invoice: company header,
// invoice metadata, a striped line-item table, and right-aligned totals.
func (r *PDFRenderer) RenderInvoice(invoice domain.Invoice) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetAutoPageBreak(true, 20)
	pdf.AddPage()

	pageWidth, _ := pdf.GetPageSize()
	left, _, right, _ := pdf.GetMargins()
	usable := pageWidth - left - right

	pdf.SetFont("Helvetica", "B", 16)
	pdf.CellFormat(usable, 8, r.companyName, "", 1, "L", false, 0, "")
	pdf.Ln(2)

	pdf.SetFont("Helvetica", "", 22)
	pdf.CellFormat(usable, 10, "Invoice", "", 1, "L", false, 0, "")
	pdf.Ln(2)

	pdf.SetFont("Helvetica", "", 10)
	writeLine := func(text string) {
		pdf.CellFormat(usable, 6, text, "", 1, "L", false, 0, "")
	}
	writeLine(fmt.Sprintf("Invoice ID: %s", invoice.ID))
	writeLine(fmt.Sprintf("Customer: %s", invoice.CustomerName))
	writeLine(fmt.Sprintf("Date: %s", invoice.InvoiceDate.Format("2006-01-02")))
	if invoice.CustomerPhoneNumber != "" {
		writeLine(fmt.Sprintf("Phone: %s", invoice.CustomerPhoneNumber))
	}
	if invoice.CustomerAddress != "" {
		writeLine("Address:")
		pdf.MultiCell(usable, 5, invoice.CustomerAddress, "", "L", false)
	}
	if invoice.DueDate != nil {
		writeLine(fmt.Sprintf("Due Date: %s", invoice.DueDate.Format("2006-01-02")))
	}
	pdf.Ln(4)

	colWidths := []float64{usable - 95, 25, 35, 35}
	headers := []string{"Product Name", "Quantity", "Unit Price", "Total Price"}
	aligns := []string{"L", "C", "R", "R"}

	pdf.SetFont("Helvetica", "B", 9)
	pdf.SetFillColor(30, 136, 229)
	pdf.SetTextColor(255, 255, 255)
	for i, h := range headers {
		pdf.CellFormat(colWidths[i], 7, h, "1", 0, aligns[i], true, 0, "")
	}
	pdf.Ln(-1)

	pdf.SetFont("Helvetica", "", 9)
	pdf.SetTextColor(0, 0, 0)
	for row, item := range invoice.Items {
		fill := row%2 == 1
		pdf.SetFillColor(235, 242, 250)
		cells := []string{
			item.ProductName,
			fmt.Sprintf("%d", item.Quantity),
			"$" + item.UnitPrice.StringFixed(2),
			"$" + item.TotalPrice.StringFixed(2),
		}
		for i, c := range cells {
			pdf.CellFormat(colWidths[i], 6, c, "1", 0, aligns[i], fill, 0, "")
		}
		pdf.Ln(-1)
	}
	pdf.Ln(6)

	labelWidth := usable - 40.0
	writeTotal := func(label, amount string, bold bool) {
		style := ""
		size := 10.0
		if bold {
			style = "B"
			size = 12
		}
		pdf.SetFont("Helvetica", style, size)
		pdf.CellFormat(labelWidth, 7, label, "", 0, "R", false, 0, "")
		pdf.CellFormat(40, 7, amount, "", 1, "R", false, 0, "")
	}
	taxPercent := invoice.TaxRate.Mul(hundred).StringFixed(0)
	writeTotal("Subtotal:", "$"+invoice.SubTotal.StringFixed(2), false)
	writeTotal(fmt.Sprintf("Tax (%s%%):", taxPercent), "$"+invoice.TaxAmount.StringFixed(2), false)
	writeTotal("Grand Total:", "$"+invoice.GrandTotal.StringFixed(2), true)

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("failed to render invoice pdf: %w", err)
	}
	return buf.Bytes(), nil
}
