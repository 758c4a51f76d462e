// Package export renders a saved invoice as a printable document.
package export

import (
	"fmt"
	"io"
	"strconv"

	"github.com/jung-kurt/gofpdf"

	"github.com/mmynk/hisaab/internal/calculator"
	"github.com/mmynk/hisaab/internal/models"
)

// Title is printed at the top of every exported invoice.
const Title = "Hisaab Kitaab - Medical Invoice"

type column struct {
	header string
	width  float64
	align  string
}

var pdfColumns = []column{
	{"#", 8, "C"},
	{"Item", 52, "L"},
	{"Qty", 14, "C"},
	{"Rate", 22, "R"},
	{"TP", 22, "R"},
	{"Disc %", 16, "C"},
	{"Per Piece", 24, "R"},
	{"Total", 32, "R"},
}

// WritePDF renders inv as an A4 PDF.
func WritePDF(w io.Writer, inv *models.Invoice, f *calculator.Formatter) error {
	if f == nil {
		f = calculator.NewFormatter("")
	}
	q := calculator.QuoteInvoice(inv.Items, inv.Payments)

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetTitle(inv.Name, false)
	pdf.AddPage()

	pdf.SetFont("Arial", "B", 16)
	pdf.CellFormat(0, 10, Title, "", 1, "L", false, 0, "")
	pdf.SetFont("Arial", "", 11)
	pdf.CellFormat(0, 7, "Invoice: "+inv.Name, "", 1, "L", false, 0, "")
	pdf.CellFormat(0, 7, "Date: "+inv.Date, "", 1, "L", false, 0, "")
	pdf.CellFormat(0, 7, "Status: "+string(inv.Status), "", 1, "L", false, 0, "")
	pdf.Ln(4)

	pdf.SetFont("Arial", "B", 9)
	pdf.SetFillColor(220, 220, 220)
	for _, c := range pdfColumns {
		pdf.CellFormat(c.width, 8, c.header, "1", 0, "C", true, 0, "")
	}
	pdf.Ln(-1)

	pdf.SetFont("Arial", "", 9)
	for i, item := range inv.Items {
		row := q.Rows[i]
		cells := []string{
			strconv.Itoa(i + 1),
			item.Name,
			item.Qty.String(),
			item.Rate.String(),
			fmt.Sprintf("%.2f", row.TradePrice),
			item.DiscountPercent.String(),
			fmt.Sprintf("%.2f", row.PerPiece),
			f.Format(row.RowTotal),
		}
		for j, c := range pdfColumns {
			pdf.CellFormat(c.width, 7, cells[j], "1", 0, c.align, false, 0, "")
		}
		pdf.Ln(-1)
	}

	labelWidth := 0.0
	for _, c := range pdfColumns[:len(pdfColumns)-1] {
		labelWidth += c.width
	}
	totalWidth := pdfColumns[len(pdfColumns)-1].width

	pdf.SetFont("Arial", "B", 10)
	pdf.CellFormat(labelWidth, 8, "TOTAL AMOUNT", "1", 0, "R", false, 0, "")
	pdf.CellFormat(totalWidth, 8, f.Format(q.Total), "1", 1, "R", false, 0, "")

	if len(inv.Payments) > 0 {
		pdf.Ln(4)
		pdf.SetFont("Arial", "B", 11)
		pdf.CellFormat(0, 8, "Payments", "", 1, "L", false, 0, "")
		pdf.SetFont("Arial", "", 9)
		for _, p := range inv.Payments {
			pdf.CellFormat(labelWidth, 7, p.Narration, "B", 0, "L", false, 0, "")
			pdf.CellFormat(totalWidth, 7, f.Format(p.Amount.OrZero()), "B", 1, "R", false, 0, "")
		}
	}

	pdf.Ln(4)
	pdf.SetFont("Arial", "", 10)
	pdf.CellFormat(labelWidth, 7, "Total Paid", "", 0, "R", false, 0, "")
	pdf.CellFormat(totalWidth, 7, "- "+f.Format(q.Paid), "", 1, "R", false, 0, "")
	pdf.SetFont("Arial", "B", 12)
	pdf.CellFormat(labelWidth, 9, "Balance Due", "T", 0, "R", false, 0, "")
	pdf.CellFormat(totalWidth, 9, f.Format(q.Balance), "T", 1, "R", false, 0, "")

	if err := pdf.Output(w); err != nil {
		return fmt.Errorf("failed to render pdf: %w", err)
	}
	return nil
}
