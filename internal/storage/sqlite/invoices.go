package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/mmynk/hisaab/internal/models"
	"github.com/mmynk/hisaab/internal/storage"
)

// UpsertInvoice writes the whole invoice in one transaction. Items and
// payments are replaced so their stored order matches the draft.
// created_at is kept from the first save and copied back into inv.
func (s *SQLiteStore) UpsertInvoice(ctx context.Context, owner string, inv *models.Invoice) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	var createdAt int64
	err = tx.QueryRowContext(ctx,
		`INSERT INTO invoices (owner, id, name, date, status, created_at)
		 VALUES (?, ?, ?, ?, ?, ?)
		 ON CONFLICT (owner, id) DO UPDATE SET
		     name = excluded.name,
		     date = excluded.date,
		     status = excluded.status
		 RETURNING created_at`,
		owner, inv.ID, inv.Name, inv.Date, string(inv.Status), inv.CreatedAt,
	).Scan(&createdAt)
	if err != nil {
		return fmt.Errorf("failed to upsert invoice: %w", err)
	}

	if _, err := tx.ExecContext(ctx,
		"DELETE FROM invoice_items WHERE owner = ? AND invoice_id = ?", owner, inv.ID,
	); err != nil {
		return fmt.Errorf("failed to clear items: %w", err)
	}
	if _, err := tx.ExecContext(ctx,
		"DELETE FROM payments WHERE owner = ? AND invoice_id = ?", owner, inv.ID,
	); err != nil {
		return fmt.Errorf("failed to clear payments: %w", err)
	}

	for i, item := range inv.Items {
		_, err = tx.ExecContext(ctx,
			`INSERT INTO invoice_items (owner, invoice_id, position, id, name, qty, rate, discount_percent)
			 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
			owner, inv.ID, i, item.ID, item.Name,
			nullable(item.Qty), nullable(item.Rate), nullable(item.DiscountPercent),
		)
		if err != nil {
			return fmt.Errorf("failed to insert item: %w", err)
		}
	}

	for i, p := range inv.Payments {
		_, err = tx.ExecContext(ctx,
			`INSERT INTO payments (owner, invoice_id, position, id, narration, amount)
			 VALUES (?, ?, ?, ?, ?, ?)`,
			owner, inv.ID, i, p.ID, p.Narration, nullable(p.Amount),
		)
		if err != nil {
			return fmt.Errorf("failed to insert payment: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	inv.CreatedAt = createdAt
	return nil
}

// GetInvoice retrieves one invoice with its items and payments.
func (s *SQLiteStore) GetInvoice(ctx context.Context, owner, id string) (*models.Invoice, error) {
	inv := &models.Invoice{}
	var status string
	err := s.db.QueryRowContext(ctx,
		"SELECT id, name, date, status, created_at FROM invoices WHERE owner = ? AND id = ?",
		owner, id,
	).Scan(&inv.ID, &inv.Name, &inv.Date, &status, &inv.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %s", storage.ErrNotFound, id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get invoice: %w", err)
	}
	inv.Status = models.Status(status)

	if err := s.loadChildren(ctx, owner, inv); err != nil {
		return nil, err
	}
	return inv, nil
}

// LoadInvoices returns all of the owner's invoices in first-saved order.
func (s *SQLiteStore) LoadInvoices(ctx context.Context, owner string) ([]*models.Invoice, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT id, name, date, status, created_at FROM invoices WHERE owner = ? ORDER BY rowid",
		owner,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list invoices: %w", err)
	}

	invoices := []*models.Invoice{}
	for rows.Next() {
		inv := &models.Invoice{}
		var status string
		if err := rows.Scan(&inv.ID, &inv.Name, &inv.Date, &status, &inv.CreatedAt); err != nil {
			rows.Close()
			return nil, fmt.Errorf("failed to scan invoice: %w", err)
		}
		inv.Status = models.Status(status)
		invoices = append(invoices, inv)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate invoices: %w", err)
	}

	for _, inv := range invoices {
		if err := s.loadChildren(ctx, owner, inv); err != nil {
			return nil, err
		}
	}
	return invoices, nil
}

func (s *SQLiteStore) loadChildren(ctx context.Context, owner string, inv *models.Invoice) error {
	itemRows, err := s.db.QueryContext(ctx,
		`SELECT id, name, qty, rate, discount_percent FROM invoice_items
		 WHERE owner = ? AND invoice_id = ? ORDER BY position`,
		owner, inv.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to get items: %w", err)
	}
	defer itemRows.Close()

	inv.Items = []models.InvoiceItem{}
	for itemRows.Next() {
		var item models.InvoiceItem
		var qty, rate, discount sql.NullFloat64
		if err := itemRows.Scan(&item.ID, &item.Name, &qty, &rate, &discount); err != nil {
			return fmt.Errorf("failed to scan item: %w", err)
		}
		item.Qty = fromNull(qty)
		item.Rate = fromNull(rate)
		item.DiscountPercent = fromNull(discount)
		inv.Items = append(inv.Items, item)
	}
	if err := itemRows.Err(); err != nil {
		return fmt.Errorf("failed to iterate items: %w", err)
	}
	itemRows.Close()

	payRows, err := s.db.QueryContext(ctx,
		`SELECT id, narration, amount FROM payments
		 WHERE owner = ? AND invoice_id = ? ORDER BY position`,
		owner, inv.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to get payments: %w", err)
	}
	defer payRows.Close()

	inv.Payments = []models.Payment{}
	for payRows.Next() {
		var p models.Payment
		var amount sql.NullFloat64
		if err := payRows.Scan(&p.ID, &p.Narration, &amount); err != nil {
			return fmt.Errorf("failed to scan payment: %w", err)
		}
		p.Amount = fromNull(amount)
		inv.Payments = append(inv.Payments, p)
	}
	if err := payRows.Err(); err != nil {
		return fmt.Errorf("failed to iterate payments: %w", err)
	}

	return nil
}
