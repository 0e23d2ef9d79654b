package infra

// pdf.go — invoice generation with go-pdf/fpdf.
// A4 invoice with order number, customer block, item table and bold total.
// The output file is saved to storagePath/facture_{numero}.pdf.

import (
	"fmt"
	"os"
	"path/filepath"

	"backoffice/internal/model"

	"github.com/go-pdf/fpdf"
	"github.com/shopspring/decimal"
)

// GenerateInvoicePDF renders the invoice for an order and returns the
// absolute path to the generated file. Regenerating overwrites the previous
// file for the same order.
func GenerateInvoicePDF(order *model.Order, storagePath string) (string, error) {
	if err := os.MkdirAll(storagePath, 0o755); err != nil {
		return "", fmt.Errorf("pdf: create storage dir: %w", err)
	}

	fileName := fmt.Sprintf("facture_%s.pdf", order.Number)
	filePath := filepath.Join(storagePath, fileName)

	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(15, 15, 15)
	pdf.AddPage()

	pageW, _ := pdf.GetPageSize()
	contentW := pageW - 30

	// ── Header ───────────────────────────────────────────────────────────────
	pdf.SetFont("Helvetica", "B", 18)
	pdf.CellFormat(contentW, 10, "Facture", "", 1, "L", false, 0, "")

	pdf.SetFont("Helvetica", "", 10)
	pdf.CellFormat(contentW, 6, fmt.Sprintf("Commande %s", order.Number), "", 1, "L", false, 0, "")
	pdf.CellFormat(contentW, 6, order.CreatedAt.Format("02/01/2006"), "", 1, "L", false, 0, "")
	pdf.Ln(4)

	// ── Customer block ───────────────────────────────────────────────────────
	pdf.SetFont("Helvetica", "B", 10)
	pdf.CellFormat(contentW, 6, "Client", "", 1, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 10)
	pdf.CellFormat(contentW, 5, order.CustomerName, "", 1, "L", false, 0, "")
	pdf.CellFormat(contentW, 5, order.CustomerEmail, "", 1, "L", false, 0, "")
	pdf.Ln(6)

	// ── Item table ───────────────────────────────────────────────────────────
	col1 := contentW * 0.52 // product name
	col2 := contentW * 0.12 // qty
	col3 := contentW * 0.18 // unit price
	col4 := contentW * 0.18 // subtotal

	pdf.SetFont("Helvetica", "B", 9)
	pdf.CellFormat(col1, 7, "Article", "B", 0, "L", false, 0, "")
	pdf.CellFormat(col2, 7, "Qté", "B", 0, "C", false, 0, "")
	pdf.CellFormat(col3, 7, "Prix unitaire", "B", 0, "R", false, 0, "")
	pdf.CellFormat(col4, 7, "Sous-total", "B", 1, "R", false, 0, "")

	pdf.SetFont("Helvetica", "", 9)
	for _, item := range order.Items {
		subtotal := item.UnitPrice.Mul(decimal.NewFromInt(int64(item.Quantity)))
		pdf.CellFormat(col1, 6, item.ProductName, "", 0, "L", false, 0, "")
		pdf.CellFormat(col2, 6, fmt.Sprintf("%d", item.Quantity), "", 0, "C", false, 0, "")
		pdf.CellFormat(col3, 6, item.UnitPrice.StringFixed(2)+" EUR", "", 0, "R", false, 0, "")
		pdf.CellFormat(col4, 6, subtotal.StringFixed(2)+" EUR", "", 1, "R", false, 0, "")
	}

	// ── Total ────────────────────────────────────────────────────────────────
	pdf.Ln(3)
	pdf.Line(15, pdf.GetY(), pageW-15, pdf.GetY())
	pdf.Ln(2)
	pdf.SetFont("Helvetica", "B", 12)
	pdf.CellFormat(col1+col2+col3, 8, "Total", "", 0, "R", false, 0, "")
	pdf.CellFormat(col4, 8, order.Total.StringFixed(2)+" EUR", "", 1, "R", false, 0, "")

	if err := pdf.OutputFileAndClose(filePath); err != nil {
		return "", fmt.Errorf("pdf: write %s: %w", filePath, err)
	}
	return filePath, nil
}
