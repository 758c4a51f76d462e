package export

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"

	"github.com/mmynk/hisaab/internal/calculator"
	"github.com/mmynk/hisaab/internal/models"
)

const sheetName = "Invoice"

var xlsxHeaders = []string{"Item", "Qty", "Rate", "TP", "Disc %", "Per Piece", "Total"}

// headerRow is where the item table starts; rows above hold invoice metadata.
const headerRow = 5

// WriteXLSX renders inv as a single-sheet workbook. Blank numeric fields are
// left as empty cells; computed prices are written unrounded.
func WriteXLSX(w io.Writer, inv *models.Invoice) error {
	q := calculator.QuoteInvoice(inv.Items, inv.Payments)

	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", sheetName); err != nil {
		return fmt.Errorf("failed to name sheet: %w", err)
	}

	set := func(col, row int, v interface{}) error {
		cell, err := excelize.CoordinatesToCellName(col, row)
		if err != nil {
			return err
		}
		return f.SetCellValue(sheetName, cell, v)
	}
	amount := func(a models.Amount) interface{} {
		if v, ok := a.Value(); ok {
			return v
		}
		return ""
	}

	meta := [][2]interface{}{
		{"Invoice", inv.Name},
		{"Date", inv.Date},
		{"Status", string(inv.Status)},
	}
	for i, m := range meta {
		if err := set(1, i+1, m[0]); err != nil {
			return fmt.Errorf("failed to write metadata: %w", err)
		}
		if err := set(2, i+1, m[1]); err != nil {
			return fmt.Errorf("failed to write metadata: %w", err)
		}
	}

	for i, h := range xlsxHeaders {
		if err := set(i+1, headerRow, h); err != nil {
			return fmt.Errorf("failed to write header: %w", err)
		}
	}

	row := headerRow + 1
	for i, item := range inv.Items {
		values := []interface{}{
			item.Name,
			amount(item.Qty),
			amount(item.Rate),
			q.Rows[i].TradePrice,
			amount(item.DiscountPercent),
			q.Rows[i].PerPiece,
			q.Rows[i].RowTotal,
		}
		for col, v := range values {
			if err := set(col+1, row, v); err != nil {
				return fmt.Errorf("failed to write item row: %w", err)
			}
		}
		row++
	}

	row++
	totals := [][2]interface{}{
		{"Total Amount", q.Total},
		{"Total Paid", q.Paid},
		{"Balance", q.Balance},
	}
	for _, t := range totals {
		if err := set(6, row, t[0]); err != nil {
			return fmt.Errorf("failed to write totals: %w", err)
		}
		if err := set(7, row, t[1]); err != nil {
			return fmt.Errorf("failed to write totals: %w", err)
		}
		row++
	}

	if err := f.SetColWidth(sheetName, "A", "A", 30); err != nil {
		return fmt.Errorf("failed to size columns: %w", err)
	}
	if err := f.SetColWidth(sheetName, "B", "G", 12); err != nil {
		return fmt.Errorf("failed to size columns: %w", err)
	}

	if err := f.Write(w); err != nil {
		return fmt.Errorf("failed to write workbook: %w", err)
	}
	return nil
}
