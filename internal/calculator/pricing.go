// Package calculator derives prices and totals from invoice data.
// Every function here is pure: no I/O, no errors, no rounding.
// Rounding happens only when an amount is formatted for display.
package calculator

import (
	"math"

	"github.com/mmynk/hisaab/internal/models"
)

const (
	// TradeDeduction is the fixed margin taken off the retail rate.
	TradeDeduction = 0.145

	// DiscountBaseDeduction is taken off the trade price whenever a
	// non-zero discount or surcharge is entered, before that percentage applies.
	DiscountBaseDeduction = 0.15
)

// TradePrice returns the retail rate less the fixed 14.5% trade deduction.
// Callers normalize blank rates to 0.
func TradePrice(rate float64) float64 {
	return rate - rate*TradeDeduction
}

// PerPiecePrice returns the unit price after the trade deduction and any
// discount or surcharge.
//
// With no discount entered, or a discount of exactly 0, the result is the
// trade price. Otherwise the trade price is first reduced by a further 15%,
// then reduced by |d|% for a negative d or increased by d% for a positive d.
// The result is not clamped: a discount of 100% or more yields 0 or less.
func PerPiecePrice(item models.InvoiceItem) float64 {
	rate := item.Rate.OrZero()
	if rate == 0 {
		return 0
	}

	tp := TradePrice(rate)

	discount, entered := item.DiscountPercent.Value()
	if !entered {
		return tp
	}
	if discount == 0 {
		return tp
	}

	base := tp - tp*DiscountBaseDeduction
	if discount < 0 {
		return base * (1 - math.Abs(discount)/100)
	}
	return base * (1 + discount/100)
}

// RowTotal returns qty × per-piece price. A blank qty counts as 0.
func RowTotal(item models.InvoiceItem) float64 {
	return item.Qty.OrZero() * PerPiecePrice(item)
}

// InvoiceTotal sums the row totals of all items.
func InvoiceTotal(items []models.InvoiceItem) float64 {
	var total float64
	for _, item := range items {
		total += RowTotal(item)
	}
	return total
}

// TotalPaid sums payment amounts. Blank amounts count as 0.
func TotalPaid(payments []models.Payment) float64 {
	var paid float64
	for _, p := range payments {
		paid += p.Amount.OrZero()
	}
	return paid
}

// Balance is the invoice total minus payments. Negative means overpaid.
func Balance(items []models.InvoiceItem, payments []models.Payment) float64 {
	return InvoiceTotal(items) - TotalPaid(payments)
}
