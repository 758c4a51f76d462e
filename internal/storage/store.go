// Package storage provides abstractions for persistent data storage.
package storage

import (
	"context"
	"errors"

	"github.com/mmynk/hisaab/internal/models"
)

// ErrNotFound is returned when an invoice does not exist for the owner.
var ErrNotFound = errors.New("invoice not found")

// InvoiceStore holds each user's invoice collection.
// Every call reads or replaces whole invoices; there are no partial writes.
type InvoiceStore interface {
	// LoadInvoices returns the owner's invoices in the order they were first saved.
	// An owner with no invoices yields an empty slice.
	LoadInvoices(ctx context.Context, owner string) ([]*models.Invoice, error)

	// GetInvoice returns one invoice, or ErrNotFound.
	GetInvoice(ctx context.Context, owner, id string) (*models.Invoice, error)

	// UpsertInvoice replaces the invoice with the same ID, or appends it.
	// An existing invoice keeps its CreatedAt, which is written back to inv.
	UpsertInvoice(ctx context.Context, owner string, inv *models.Invoice) error
}

// UserStore holds accounts.
type UserStore interface {
	CreateUser(ctx context.Context, user *models.User) error

	// GetUserByUsername returns nil and no error when the user does not exist.
	GetUserByUsername(ctx context.Context, username string) (*models.User, error)
}

// Store is the full persistence surface used by the server.
// This abstraction allows swapping storage backends without changing
// the service layer.
type Store interface {
	InvoiceStore
	UserStore

	// Close releases any resources held by the store.
	Close() error
}
