package models

import "fmt"

// Status is the manually chosen state of an invoice.
// It is not derived from the balance.
type Status string

const (
	StatusPending Status = "Pending"
	StatusPaid    Status = "Paid"
)

// ParseStatus validates a status string.
func ParseStatus(s string) (Status, error) {
	switch Status(s) {
	case StatusPending, StatusPaid:
		return Status(s), nil
	default:
		return "", fmt.Errorf("unknown invoice status %q", s)
	}
}

// Invoice is the aggregate root: metadata, line items and payments.
type Invoice struct {
	// ID is stable across edits. Saving an invoice whose ID already exists
	// for the owner overwrites it.
	ID string `json:"id"`

	// Name is the display name. Required at save time.
	Name string `json:"name"`

	// Date is a calendar date (YYYY-MM-DD), defaulting to the creation day.
	Date string `json:"date"`

	Status Status `json:"status"`

	// Items are kept in entry order.
	Items []InvoiceItem `json:"items"`

	Payments []Payment `json:"payments"`

	// CreatedAt is epoch milliseconds. Set once on first save.
	CreatedAt int64 `json:"createdAt"`
}

// InvoiceItem is one billable line on an invoice.
type InvoiceItem struct {
	ID   string `json:"id"`
	Name string `json:"name"`

	Qty Amount `json:"qty"`

	// Rate is the retail (MRP) unit price.
	Rate Amount `json:"rate"`

	// DiscountPercent is a signed adjustment: negative is an extra discount,
	// positive is a surcharge.
	DiscountPercent Amount `json:"discountPercent"`
}

// Payment is one amount received against an invoice.
type Payment struct {
	ID        string `json:"id"`
	Narration string `json:"narration"`
	Amount    Amount `json:"amount"`
}

// Clone returns a deep copy so drafts never share slices with stored invoices.
func (inv *Invoice) Clone() *Invoice {
	if inv == nil {
		return nil
	}
	out := *inv
	if inv.Items != nil {
		out.Items = make([]InvoiceItem, len(inv.Items))
		copy(out.Items, inv.Items)
	}
	if inv.Payments != nil {
		out.Payments = make([]Payment, len(inv.Payments))
		copy(out.Payments, inv.Payments)
	}
	return &out
}
