package service

import (
	"bytes"
	"fmt"
	"log/slog"
	"net/http"
	"sort"
	"strings"

	"github.com/mmynk/hisaab/internal/calculator"
	"github.com/mmynk/hisaab/internal/export"
	"github.com/mmynk/hisaab/internal/invoice"
	"github.com/mmynk/hisaab/internal/metrics"
	"github.com/mmynk/hisaab/internal/middleware"
	"github.com/mmynk/hisaab/internal/models"
	"github.com/mmynk/hisaab/internal/storage"
)

// InvoiceService is the editing surface: it lists, loads, prices and saves
// invoices for the logged-in user. Totals are computed on every response and
// never stored.
type InvoiceService struct {
	store     storage.InvoiceStore
	formatter *calculator.Formatter
	metrics   *metrics.Metrics
	logger    *slog.Logger
	draftOpts []invoice.Option
}

// NewInvoiceService creates a new InvoiceService with the given storage backend.
func NewInvoiceService(store storage.InvoiceStore, formatter *calculator.Formatter, m *metrics.Metrics, logger *slog.Logger, opts ...invoice.Option) *InvoiceService {
	return &InvoiceService{
		store:     store,
		formatter: formatter,
		metrics:   m,
		logger:    logger,
		draftOpts: opts,
	}
}

// Register mounts the invoice routes behind requireAuth.
func (s *InvoiceService) Register(mux *http.ServeMux, requireAuth func(http.Handler) http.Handler) {
	mux.Handle("GET /api/invoices", requireAuth(http.HandlerFunc(s.List)))
	mux.Handle("GET /api/invoices/new", requireAuth(http.HandlerFunc(s.New)))
	mux.Handle("GET /api/invoices/{id}", requireAuth(http.HandlerFunc(s.Get)))
	mux.Handle("PUT /api/invoices", requireAuth(http.HandlerFunc(s.Save)))
	mux.Handle("GET /api/invoices/{id}/export/{format}", requireAuth(http.HandlerFunc(s.Export)))
	mux.Handle("POST /api/quote", requireAuth(http.HandlerFunc(s.Quote)))
	mux.Handle("POST /api/drafts/duplicate-last-row", requireAuth(http.HandlerFunc(s.DuplicateLastRow)))
}

type totalsView struct {
	Total            float64 `json:"total"`
	Paid             float64 `json:"paid"`
	Balance          float64 `json:"balance"`
	TotalFormatted   string  `json:"totalFormatted"`
	PaidFormatted    string  `json:"paidFormatted"`
	BalanceFormatted string  `json:"balanceFormatted"`
}

type rowView struct {
	ItemID            string  `json:"itemId"`
	TradePrice        float64 `json:"tradePrice"`
	PerPiece          float64 `json:"perPiece"`
	RowTotal          float64 `json:"rowTotal"`
	RowTotalFormatted string  `json:"rowTotalFormatted"`
}

type invoiceView struct {
	Invoice *models.Invoice `json:"invoice"`
	Rows    []rowView       `json:"rows,omitempty"`
	totalsView
}

type summaryView struct {
	calculator.Summary
	OutstandingFormatted string `json:"outstandingFormatted"`
}

type listResponse struct {
	Invoices []invoiceView `json:"invoices"`
	Summary  summaryView   `json:"summary"`
}

func (s *InvoiceService) totals(q calculator.Quote) totalsView {
	return totalsView{
		Total:            q.Total,
		Paid:             q.Paid,
		Balance:          q.Balance,
		TotalFormatted:   s.formatter.Format(q.Total),
		PaidFormatted:    s.formatter.Format(q.Paid),
		BalanceFormatted: s.formatter.Format(q.Balance),
	}
}

func (s *InvoiceService) view(inv *models.Invoice, withRows bool) invoiceView {
	q := calculator.QuoteInvoice(inv.Items, inv.Payments)
	v := invoiceView{Invoice: inv, totalsView: s.totals(q)}
	if withRows {
		v.Rows = make([]rowView, len(q.Rows))
		for i, r := range q.Rows {
			v.Rows[i] = rowView{
				ItemID:            r.ItemID,
				TradePrice:        r.TradePrice,
				PerPiece:          r.PerPiece,
				RowTotal:          r.RowTotal,
				RowTotalFormatted: s.formatter.Format(r.RowTotal),
			}
		}
	}
	return v
}

// matchesSearch filters on name (case-insensitive) or date substring.
func matchesSearch(inv *models.Invoice, query string) bool {
	if query == "" {
		return true
	}
	return strings.Contains(strings.ToLower(inv.Name), strings.ToLower(query)) ||
		strings.Contains(inv.Date, query)
}

// List returns the user's invoices, newest first, with a summary over all of them.
func (s *InvoiceService) List(w http.ResponseWriter, r *http.Request) {
	owner := middleware.GetUsername(r.Context())
	query := strings.TrimSpace(r.URL.Query().Get("q"))

	all, err := s.store.LoadInvoices(r.Context(), owner)
	if err != nil {
		s.logger.Error("LoadInvoices failed", "user", owner, "error", err)
		writeError(w, err)
		return
	}

	var matched []*models.Invoice
	for _, inv := range all {
		if matchesSearch(inv, query) {
			matched = append(matched, inv)
		}
	}
	sort.SliceStable(matched, func(i, j int) bool {
		return matched[i].CreatedAt > matched[j].CreatedAt
	})

	resp := listResponse{Invoices: make([]invoiceView, 0, len(matched))}
	for _, inv := range matched {
		resp.Invoices = append(resp.Invoices, s.view(inv, false))
	}
	summary := calculator.Summarize(all)
	resp.Summary = summaryView{Summary: summary, OutstandingFormatted: s.formatter.Format(summary.Outstanding)}

	s.logger.Debug("Listed invoices", "user", owner, "query", query, "count", len(resp.Invoices))
	writeJSON(w, http.StatusOK, resp)
}

// New returns a fresh unsaved draft.
func (s *InvoiceService) New(w http.ResponseWriter, r *http.Request) {
	d := invoice.NewDraft(s.draftOpts...)
	writeJSON(w, http.StatusOK, s.view(d.Invoice(), true))
}

func (s *InvoiceService) Get(w http.ResponseWriter, r *http.Request) {
	owner := middleware.GetUsername(r.Context())
	id := r.PathValue("id")

	inv, err := s.store.GetInvoice(r.Context(), owner, id)
	if err != nil {
		s.logger.Warn("GetInvoice failed", "user", owner, "invoice_id", id, "error", err)
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, s.view(inv, true))
}

// Save upserts the posted invoice. A body carrying an existing ID overwrites
// that invoice; a body without an ID is stored under a new one.
func (s *InvoiceService) Save(w http.ResponseWriter, r *http.Request) {
	owner := middleware.GetUsername(r.Context())

	var body models.Invoice
	if err := decodeJSON(w, r, &body); err != nil {
		writeError(w, err)
		return
	}
	if body.Status != "" {
		if _, err := models.ParseStatus(string(body.Status)); err != nil {
			s.metrics.InvoiceSaves.WithLabelValues("rejected").Inc()
			s.logger.Warn("Invoice save rejected", "user", owner, "invoice_id", body.ID, "error", err)
			writeError(w, fmt.Errorf("%w: %v", errBadRequest, err))
			return
		}
	}

	saved, err := invoice.Edit(&body, s.draftOpts...).Save(r.Context(), s.store, owner)
	if err != nil {
		result := "error"
		if statusFor(err) == http.StatusBadRequest {
			result = "rejected"
		}
		s.metrics.InvoiceSaves.WithLabelValues(result).Inc()
		s.logger.Warn("Invoice save failed", "user", owner, "invoice_id", body.ID, "error", err)
		writeError(w, err)
		return
	}

	s.metrics.InvoiceSaves.WithLabelValues("saved").Inc()
	s.logger.Info("Invoice saved", "user", owner, "invoice_id", saved.ID, "items", len(saved.Items))
	writeJSON(w, http.StatusOK, s.view(saved, true))
}

// Quote prices a draft without saving it.
func (s *InvoiceService) Quote(w http.ResponseWriter, r *http.Request) {
	var body models.Invoice
	if err := decodeJSON(w, r, &body); err != nil {
		writeError(w, err)
		return
	}
	s.metrics.QuoteRequests.Inc()
	writeJSON(w, http.StatusOK, s.view(&body, true))
}

// DuplicateLastRow appends a copy of the draft's last item. A draft with no
// items comes back unchanged.
func (s *InvoiceService) DuplicateLastRow(w http.ResponseWriter, r *http.Request) {
	var body models.Invoice
	if err := decodeJSON(w, r, &body); err != nil {
		writeError(w, err)
		return
	}
	d := invoice.Edit(&body, s.draftOpts...)
	d.DuplicateLastRow()
	writeJSON(w, http.StatusOK, s.view(d.Invoice(), true))
}

// Export streams a stored invoice as PDF or XLSX.
func (s *InvoiceService) Export(w http.ResponseWriter, r *http.Request) {
	owner := middleware.GetUsername(r.Context())
	id := r.PathValue("id")
	format := r.PathValue("format")

	var contentType string
	switch format {
	case "pdf":
		contentType = "application/pdf"
	case "xlsx":
		contentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	default:
		writeError(w, fmt.Errorf("%w: unsupported export format %q", errBadRequest, format))
		return
	}

	inv, err := s.store.GetInvoice(r.Context(), owner, id)
	if err != nil {
		writeError(w, err)
		return
	}

	var buf bytes.Buffer
	if format == "pdf" {
		err = export.WritePDF(&buf, inv, s.formatter)
	} else {
		err = export.WriteXLSX(&buf, inv)
	}
	if err != nil {
		s.logger.Error("Export failed", "invoice_id", id, "format", format, "error", err)
		writeError(w, err)
		return
	}

	s.metrics.Exports.WithLabelValues(format).Inc()
	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", "invoice-"+inv.ID+"."+format))
	w.WriteHeader(http.StatusOK)
	w.Write(buf.Bytes())
}
