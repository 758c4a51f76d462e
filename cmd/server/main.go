package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"golang.org/x/net/http2"
	"golang.org/x/net/http2/h2c"

	"github.com/mmynk/hisaab/internal/auth"
	"github.com/mmynk/hisaab/internal/calculator"
	"github.com/mmynk/hisaab/internal/config"
	"github.com/mmynk/hisaab/internal/metrics"
	"github.com/mmynk/hisaab/internal/middleware"
	"github.com/mmynk/hisaab/internal/service"
	"github.com/mmynk/hisaab/internal/storage/sqlite"
	"github.com/mmynk/hisaab/pkg/logging"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("Failed to load config", "error", err)
		os.Exit(1)
	}

	logger := logging.Setup(cfg.LogLevel, cfg.LogFormat)

	store, err := sqlite.New(cfg.DBPath)
	if err != nil {
		logger.Error("Failed to initialize storage", "error", err)
		os.Exit(1)
	}
	defer store.Close()
	logger.Info("Storage initialized", "database", cfg.DBPath)

	m := metrics.New(prometheus.DefaultRegisterer)
	jwtManager := auth.NewJWTManager(cfg.JWTSecret, cfg.TokenTTL)

	authSvc := service.NewAuthService(auth.NewPasswordAuthenticator(store), jwtManager, m, logger)
	invoiceSvc := service.NewInvoiceService(store, calculator.NewFormatter(cfg.CurrencySymbol), m, logger)

	mux := service.NewMux(authSvc, invoiceSvc, jwtManager, prometheus.DefaultGatherer)
	handler := middleware.Logging(middleware.CORS(cfg.CORSOrigin)(mux))

	srv := &http.Server{
		Addr:              cfg.HTTPAddr(),
		Handler:           h2c.NewHandler(handler, &http2.Server{}),
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		logger.Info("Server starting", "address", srv.Addr, "env", cfg.AppEnv)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("Server failed", "error", err)
			stop()
		}
	}()

	<-ctx.Done()
	logger.Info("Shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("Graceful shutdown failed", "error", err)
	}
}
