// Package invoice manages an invoice while it is being edited.
//
// A Draft owns a private copy of the invoice. Edits never touch storage;
// only Save hands the finished invoice to the store, which inserts or
// overwrites it by ID.
package invoice

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/mmynk/hisaab/internal/calculator"
	"github.com/mmynk/hisaab/internal/models"
)

var (
	ErrNameRequired  = errors.New("invoice name is required")
	ErrNoSuchItem    = errors.New("no such item")
	ErrNoSuchPayment = errors.New("no such payment")
)

// DateLayout is the calendar date format used for Invoice.Date.
const DateLayout = "2006-01-02"

// State is the lifecycle position of a draft.
type State int

const (
	// StateNew is a freshly created draft with no edits.
	StateNew State = iota
	// StateDirty has unsaved edits.
	StateDirty
	// StateSaved matches what was last written to storage.
	StateSaved
)

func (s State) String() string {
	switch s {
	case StateNew:
		return "new"
	case StateDirty:
		return "dirty"
	case StateSaved:
		return "saved"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

// Saver persists a finished invoice for its owner, replacing any invoice
// with the same ID. It sets inv.CreatedAt to the stored value.
type Saver interface {
	UpsertInvoice(ctx context.Context, owner string, inv *models.Invoice) error
}

// Draft is an in-memory invoice being edited by one session.
type Draft struct {
	inv   *models.Invoice
	state State
	ids   IDGenerator
	now   func() time.Time
}

// Option configures a Draft.
type Option func(*Draft)

// WithIDGenerator replaces the default UUID generator.
func WithIDGenerator(g IDGenerator) Option {
	return func(d *Draft) { d.ids = g }
}

// WithClock replaces time.Now.
func WithClock(now func() time.Time) Option {
	return func(d *Draft) { d.now = now }
}

func newDraft(opts []Option) *Draft {
	d := &Draft{ids: UUIDGenerator{}, now: time.Now}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// NewDraft starts a pending invoice dated today with one blank item.
func NewDraft(opts ...Option) *Draft {
	d := newDraft(opts)
	d.inv = &models.Invoice{
		ID:       d.ids.NewID(),
		Date:     d.now().Format(DateLayout),
		Status:   models.StatusPending,
		Items:    []models.InvoiceItem{d.blankItem()},
		Payments: []models.Payment{},
	}
	d.state = StateNew
	return d
}

// Edit opens a copy of a stored invoice. Saving it overwrites the original.
func Edit(inv *models.Invoice, opts ...Option) *Draft {
	d := newDraft(opts)
	d.inv = inv.Clone()
	d.state = StateSaved
	return d
}

// Invoice returns a copy of the current draft contents.
func (d *Draft) Invoice() *models.Invoice {
	return d.inv.Clone()
}

func (d *Draft) State() State {
	return d.state
}

// Quote recomputes the totals the editor displays.
func (d *Draft) Quote() calculator.Quote {
	return calculator.QuoteInvoice(d.inv.Items, d.inv.Payments)
}

func (d *Draft) touch() {
	d.state = StateDirty
}

func (d *Draft) SetName(name string) {
	d.inv.Name = name
	d.touch()
}

func (d *Draft) SetDate(date string) {
	d.inv.Date = date
	d.touch()
}

func (d *Draft) SetStatus(status models.Status) {
	d.inv.Status = status
	d.touch()
}

func (d *Draft) blankItem() models.InvoiceItem {
	return models.InvoiceItem{ID: d.ids.NewID()}
}

// AddItem appends a blank item and returns its ID.
func (d *Draft) AddItem() string {
	item := d.blankItem()
	d.inv.Items = append(d.inv.Items, item)
	d.touch()
	return item.ID
}

// DuplicateLastRow appends a copy of the last item under a new ID.
// It reports false, and changes nothing, when there are no items.
func (d *Draft) DuplicateLastRow() (string, bool) {
	if len(d.inv.Items) == 0 {
		return "", false
	}
	item := d.inv.Items[len(d.inv.Items)-1]
	item.ID = d.ids.NewID()
	d.inv.Items = append(d.inv.Items, item)
	d.touch()
	return item.ID, true
}

// UpdateItem applies fn to the item with the given ID. The item ID cannot
// be changed by fn.
func (d *Draft) UpdateItem(id string, fn func(*models.InvoiceItem)) error {
	for i := range d.inv.Items {
		if d.inv.Items[i].ID != id {
			continue
		}
		fn(&d.inv.Items[i])
		d.inv.Items[i].ID = id
		d.touch()
		return nil
	}
	return fmt.Errorf("%w: %s", ErrNoSuchItem, id)
}

func (d *Draft) RemoveItem(id string) error {
	for i := range d.inv.Items {
		if d.inv.Items[i].ID == id {
			d.inv.Items = append(d.inv.Items[:i], d.inv.Items[i+1:]...)
			d.touch()
			return nil
		}
	}
	return fmt.Errorf("%w: %s", ErrNoSuchItem, id)
}

// AddPayment appends a blank payment and returns its ID.
func (d *Draft) AddPayment() string {
	p := models.Payment{ID: d.ids.NewID()}
	d.inv.Payments = append(d.inv.Payments, p)
	d.touch()
	return p.ID
}

func (d *Draft) UpdatePayment(id string, fn func(*models.Payment)) error {
	for i := range d.inv.Payments {
		if d.inv.Payments[i].ID != id {
			continue
		}
		fn(&d.inv.Payments[i])
		d.inv.Payments[i].ID = id
		d.touch()
		return nil
	}
	return fmt.Errorf("%w: %s", ErrNoSuchPayment, id)
}

func (d *Draft) RemovePayment(id string) error {
	for i := range d.inv.Payments {
		if d.inv.Payments[i].ID == id {
			d.inv.Payments = append(d.inv.Payments[:i], d.inv.Payments[i+1:]...)
			d.touch()
			return nil
		}
	}
	return fmt.Errorf("%w: %s", ErrNoSuchPayment, id)
}

// Save validates the draft and writes it for owner. On any error the draft
// and its state are left untouched.
func (d *Draft) Save(ctx context.Context, store Saver, owner string) (*models.Invoice, error) {
	if strings.TrimSpace(d.inv.Name) == "" {
		return nil, ErrNameRequired
	}

	out := d.inv.Clone()
	if out.ID == "" {
		out.ID = d.ids.NewID()
	}
	if out.CreatedAt == 0 {
		out.CreatedAt = d.now().UnixMilli()
	}
	if out.Date == "" {
		out.Date = d.now().Format(DateLayout)
	}
	if out.Status == "" {
		out.Status = models.StatusPending
	}
	if out.Items == nil {
		out.Items = []models.InvoiceItem{}
	}
	if out.Payments == nil {
		out.Payments = []models.Payment{}
	}
	for i := range out.Items {
		if out.Items[i].ID == "" {
			out.Items[i].ID = d.ids.NewID()
		}
	}
	for i := range out.Payments {
		if out.Payments[i].ID == "" {
			out.Payments[i].ID = d.ids.NewID()
		}
	}

	if err := store.UpsertInvoice(ctx, owner, out); err != nil {
		return nil, fmt.Errorf("failed to save invoice: %w", err)
	}

	d.inv = out.Clone()
	d.state = StateSaved
	return out, nil
}
