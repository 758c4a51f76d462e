// Package models defines the core domain models for Hisaab.
//
// # Models
//
//   - Invoice: the aggregate root, owned by a single user
//   - InvoiceItem: one billable line (quantity, MRP rate, discount adjustment)
//   - Payment: one payment received against an invoice
//   - User: account that owns a collection of invoices
//
// # Unset numbers
//
// Numeric fields that the user may leave blank while editing are modelled with
// Amount, which distinguishes "not entered" from an explicit zero. A blank
// discount and a zero discount price identically today, but they remain
// separate states so the two can diverge later.
//
// # Derived totals
//
// No model stores a computed total. Row totals, invoice totals, amounts paid
// and balances are always derived through the calculator package.
package models
