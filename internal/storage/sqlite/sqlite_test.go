package sqlite

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/mmynk/hisaab/internal/models"
	"github.com/mmynk/hisaab/internal/storage"
)

func newTestStore(t *testing.T) *SQLiteStore {
	t.Helper()

	tempDir, err := os.MkdirTemp("", "hisaab-test-*")
	if err != nil {
		t.Fatalf("Failed to create temp dir: %v", err)
	}
	t.Cleanup(func() { os.RemoveAll(tempDir) })

	store, err := New(filepath.Join(tempDir, "test.db"))
	if err != nil {
		t.Fatalf("Failed to create store: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func sampleInvoice(id, name string) *models.Invoice {
	return &models.Invoice{
		ID:        id,
		Name:      name,
		Date:      "2026-10-16",
		Status:    models.StatusPending,
		CreatedAt: 1760600000000,
		Items: []models.InvoiceItem{
			{ID: id + "-a", Name: "Augmentin 625", Qty: models.Num(10), Rate: models.Num(100), DiscountPercent: models.Unset()},
			{ID: id + "-b", Name: "Brufen", Qty: models.Num(2), Rate: models.Num(1000), DiscountPercent: models.Num(-10)},
			{ID: id + "-c", Name: "", Qty: models.Unset(), Rate: models.Unset(), DiscountPercent: models.Num(0)},
		},
		Payments: []models.Payment{
			{ID: id + "-p", Narration: "cash", Amount: models.Num(300)},
			{ID: id + "-q", Narration: "pending cheque", Amount: models.Unset()},
		},
	}
}

func TestSQLiteStore(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	t.Run("UpsertInvoice then GetInvoice round trips", func(t *testing.T) {
		original := sampleInvoice("inv-1", "City Hospital")
		if err := store.UpsertInvoice(ctx, "alice", original); err != nil {
			t.Fatalf("UpsertInvoice failed: %v", err)
		}

		got, err := store.GetInvoice(ctx, "alice", "inv-1")
		if err != nil {
			t.Fatalf("GetInvoice failed: %v", err)
		}

		if got.Name != original.Name || got.Date != original.Date || got.Status != original.Status {
			t.Errorf("metadata mismatch: got %+v", got)
		}
		if got.CreatedAt != original.CreatedAt {
			t.Errorf("CreatedAt mismatch: got %d, want %d", got.CreatedAt, original.CreatedAt)
		}
		if len(got.Items) != 3 {
			t.Fatalf("Items count mismatch: got %d, want 3", len(got.Items))
		}
		for i, item := range got.Items {
			if item != original.Items[i] {
				t.Errorf("item %d mismatch: got %+v, want %+v", i, item, original.Items[i])
			}
		}
		if got.Items[0].DiscountPercent.IsSet() {
			t.Error("unset discount should stay unset after storage")
		}
		if !got.Items[2].DiscountPercent.IsSet() {
			t.Error("explicit zero discount should stay set after storage")
		}
		if len(got.Payments) != 2 || got.Payments[1].Amount.IsSet() {
			t.Errorf("payments mismatch: got %+v", got.Payments)
		}
	})

	t.Run("UpsertInvoice with existing ID overwrites", func(t *testing.T) {
		before, err := store.LoadInvoices(ctx, "alice")
		if err != nil {
			t.Fatalf("LoadInvoices failed: %v", err)
		}

		edited := sampleInvoice("inv-1", "City Hospital (revised)")
		edited.Status = models.StatusPaid
		edited.Items = edited.Items[:1]
		edited.CreatedAt = 42
		if err := store.UpsertInvoice(ctx, "alice", edited); err != nil {
			t.Fatalf("UpsertInvoice failed: %v", err)
		}
		if edited.CreatedAt != 1760600000000 {
			t.Errorf("UpsertInvoice should report the kept CreatedAt, got %d", edited.CreatedAt)
		}

		after, err := store.LoadInvoices(ctx, "alice")
		if err != nil {
			t.Fatalf("LoadInvoices failed: %v", err)
		}
		if len(after) != len(before) {
			t.Errorf("collection length changed: got %d, want %d", len(after), len(before))
		}

		got, err := store.GetInvoice(ctx, "alice", "inv-1")
		if err != nil {
			t.Fatalf("GetInvoice failed: %v", err)
		}
		if got.Name != "City Hospital (revised)" || got.Status != models.StatusPaid {
			t.Errorf("overwrite not applied: %+v", got)
		}
		if len(got.Items) != 1 {
			t.Errorf("items not replaced: got %d", len(got.Items))
		}
		if got.CreatedAt != 1760600000000 {
			t.Errorf("CreatedAt should be kept from first save, got %d", got.CreatedAt)
		}
	})

	t.Run("LoadInvoices keeps first-saved order and owner isolation", func(t *testing.T) {
		if err := store.UpsertInvoice(ctx, "alice", sampleInvoice("inv-2", "Clinic")); err != nil {
			t.Fatalf("UpsertInvoice failed: %v", err)
		}
		if err := store.UpsertInvoice(ctx, "bob", sampleInvoice("inv-1", "Bob's invoice")); err != nil {
			t.Fatalf("UpsertInvoice failed: %v", err)
		}

		alice, err := store.LoadInvoices(ctx, "alice")
		if err != nil {
			t.Fatalf("LoadInvoices failed: %v", err)
		}
		if len(alice) != 2 || alice[0].ID != "inv-1" || alice[1].ID != "inv-2" {
			t.Errorf("unexpected alice invoices: %+v", alice)
		}

		bob, err := store.LoadInvoices(ctx, "bob")
		if err != nil {
			t.Fatalf("LoadInvoices failed: %v", err)
		}
		if len(bob) != 1 || bob[0].Name != "Bob's invoice" {
			t.Errorf("unexpected bob invoices: %+v", bob)
		}
	})

	t.Run("LoadInvoices for unknown owner is empty", func(t *testing.T) {
		got, err := store.LoadInvoices(ctx, "nobody")
		if err != nil {
			t.Fatalf("LoadInvoices failed: %v", err)
		}
		if got == nil || len(got) != 0 {
			t.Errorf("expected empty non-nil slice, got %v", got)
		}
	})

	t.Run("GetInvoice returns ErrNotFound", func(t *testing.T) {
		_, err := store.GetInvoice(ctx, "alice", "nonexistent-id")
		if !errors.Is(err, storage.ErrNotFound) {
			t.Errorf("expected ErrNotFound, got %v", err)
		}
	})
}

func TestSQLiteUsers(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	missing, err := store.GetUserByUsername(ctx, "alice")
	if err != nil {
		t.Fatalf("GetUserByUsername failed: %v", err)
	}
	if missing != nil {
		t.Fatalf("expected nil for missing user, got %+v", missing)
	}

	user := models.NewUser("alice", "hash")
	if err := store.CreateUser(ctx, user); err != nil {
		t.Fatalf("CreateUser failed: %v", err)
	}

	got, err := store.GetUserByUsername(ctx, "alice")
	if err != nil {
		t.Fatalf("GetUserByUsername failed: %v", err)
	}
	if got == nil || got.ID != user.ID || got.PasswordHash != "hash" {
		t.Errorf("unexpected user: %+v", got)
	}

	if err := store.CreateUser(ctx, models.NewUser("alice", "other")); err == nil {
		t.Error("expected duplicate username to fail")
	}
}
