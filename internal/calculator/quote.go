package calculator

import "github.com/mmynk/hisaab/internal/models"

// RowQuote holds the derived prices for one item.
type RowQuote struct {
	ItemID     string
	TradePrice float64
	PerPiece   float64
	RowTotal   float64
}

// Quote is everything the editor shows for a draft.
type Quote struct {
	Rows    []RowQuote
	Total   float64
	Paid    float64
	Balance float64
}

// QuoteInvoice computes per-row prices and invoice totals in one pass.
func QuoteInvoice(items []models.InvoiceItem, payments []models.Payment) Quote {
	q := Quote{Rows: make([]RowQuote, len(items))}
	for i, item := range items {
		row := RowQuote{
			ItemID:     item.ID,
			TradePrice: TradePrice(item.Rate.OrZero()),
			PerPiece:   PerPiecePrice(item),
		}
		row.RowTotal = item.Qty.OrZero() * row.PerPiece
		q.Rows[i] = row
		q.Total += row.RowTotal
	}
	q.Paid = TotalPaid(payments)
	q.Balance = q.Total - q.Paid
	return q
}
