// Package memory is an in-memory storage.Store for tests and local runs.
package memory

import (
	"context"
	"fmt"
	"sync"

	"github.com/mmynk/hisaab/internal/models"
	"github.com/mmynk/hisaab/internal/storage"
)

var _ storage.Store = (*Store)(nil)

// Store keeps copies of everything it is given; callers never share
// slices with it.
type Store struct {
	mu       sync.Mutex
	invoices map[string][]*models.Invoice
	users    map[string]*models.User
}

func New() *Store {
	return &Store{
		invoices: make(map[string][]*models.Invoice),
		users:    make(map[string]*models.User),
	}
}

func (s *Store) LoadInvoices(_ context.Context, owner string) ([]*models.Invoice, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]*models.Invoice, 0, len(s.invoices[owner]))
	for _, inv := range s.invoices[owner] {
		out = append(out, inv.Clone())
	}
	return out, nil
}

func (s *Store) GetInvoice(_ context.Context, owner, id string) (*models.Invoice, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, inv := range s.invoices[owner] {
		if inv.ID == id {
			return inv.Clone(), nil
		}
	}
	return nil, fmt.Errorf("%w: %s", storage.ErrNotFound, id)
}

// UpsertInvoice keeps the first CreatedAt, matching the SQLite store.
func (s *Store) UpsertInvoice(_ context.Context, owner string, inv *models.Invoice) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	stored := inv.Clone()
	list := s.invoices[owner]
	for i, existing := range list {
		if existing.ID == inv.ID {
			stored.CreatedAt = existing.CreatedAt
			inv.CreatedAt = existing.CreatedAt
			list[i] = stored
			return nil
		}
	}
	s.invoices[owner] = append(list, stored)
	return nil
}

func (s *Store) CreateUser(_ context.Context, user *models.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.users[user.Username]; exists {
		return fmt.Errorf("failed to create user: username %q taken", user.Username)
	}
	u := *user
	s.users[user.Username] = &u
	return nil
}

func (s *Store) GetUserByUsername(_ context.Context, username string) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	u, ok := s.users[username]
	if !ok {
		return nil, nil
	}
	out := *u
	return &out, nil
}

func (s *Store) Close() error {
	return nil
}
