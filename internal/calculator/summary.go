package calculator

import "github.com/mmynk/hisaab/internal/models"

// Summary aggregates totals across a user's invoices.
type Summary struct {
	Count   int `json:"count"`
	Pending int `json:"pending"`
	Paid    int `json:"paid"`

	TotalBilled   float64 `json:"totalBilled"`
	TotalReceived float64 `json:"totalReceived"`

	// Outstanding is TotalBilled - TotalReceived. Overpaid invoices
	// reduce it, so it may be negative.
	Outstanding float64 `json:"outstanding"`
}

// Summarize computes dashboard totals. Status counts follow the status the
// user chose, not the balance.
func Summarize(invoices []*models.Invoice) Summary {
	var s Summary
	for _, inv := range invoices {
		if inv == nil {
			continue
		}
		s.Count++
		switch inv.Status {
		case models.StatusPaid:
			s.Paid++
		default:
			s.Pending++
		}
		s.TotalBilled += InvoiceTotal(inv.Items)
		s.TotalReceived += TotalPaid(inv.Payments)
	}
	s.Outstanding = s.TotalBilled - s.TotalReceived
	return s
}
