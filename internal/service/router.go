package service

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/mmynk/hisaab/internal/auth"
	"github.com/mmynk/hisaab/internal/middleware"
)

// NewMux mounts every route. gatherer backs /metrics.
func NewMux(authSvc *AuthService, invoiceSvc *InvoiceService, jwtManager *auth.JWTManager, gatherer prometheus.Gatherer) *http.ServeMux {
	mux := http.NewServeMux()
	requireAuth := middleware.RequireAuth(jwtManager)

	authSvc.Register(mux, requireAuth)
	invoiceSvc.Register(mux, requireAuth)

	mux.Handle("GET /metrics", promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{}))
	mux.HandleFunc("GET /healthz", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	return mux
}
