// Package metrics holds the Prometheus collectors for invoice activity.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "hisaab"

// Metrics groups the collectors. Each instance registers on its own
// registerer so tests can use a fresh prometheus.Registry.
type Metrics struct {
	InvoiceSaves  *prometheus.CounterVec
	Logins        *prometheus.CounterVec
	Exports       *prometheus.CounterVec
	QuoteRequests prometheus.Counter
}

// New creates and registers the collectors. A nil registerer uses the default.
func New(reg prometheus.Registerer) *Metrics {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	m := &Metrics{
		InvoiceSaves: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "invoice_saves_total",
			Help:      "Invoice save attempts by outcome.",
		}, []string{"result"}),
		Logins: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "logins_total",
			Help:      "Login attempts by outcome.",
		}, []string{"result"}),
		Exports: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "invoice_exports_total",
			Help:      "Invoice exports by format.",
		}, []string{"format"}),
		QuoteRequests: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "quote_requests_total",
			Help:      "Draft recomputations served.",
		}),
	}
	reg.MustRegister(m.InvoiceSaves, m.Logins, m.Exports, m.QuoteRequests)
	return m
}
