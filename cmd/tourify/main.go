package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/adapters/humachi"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/riandyrn/otelchi"

	"github.com/neomorfeo/tourify/internal/adapter/fsm"
	"github.com/neomorfeo/tourify/internal/adapter/memory"
	oteladapter "github.com/neomorfeo/tourify/internal/adapter/otel"
	riveradapter "github.com/neomorfeo/tourify/internal/adapter/river"
	"github.com/neomorfeo/tourify/internal/adapter/sqlite"
	"github.com/neomorfeo/tourify/internal/app"
	"github.com/neomorfeo/tourify/internal/catalog"
	"github.com/neomorfeo/tourify/internal/config"
	"github.com/neomorfeo/tourify/internal/domain"

	handler "github.com/neomorfeo/tourify/internal/adapter/http"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "tourify: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	level, _ := cfg.Level()
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// --- Observability ---
	providers, err := oteladapter.Setup(ctx, cfg.Telemetry)
	if err != nil {
		return fmt.Errorf("otel: %w", err)
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := providers.Shutdown(shutdownCtx); err != nil {
			logger.Error("otel shutdown", "error", err)
		}
	}()

	// --- Adapters (out) ---
	var (
		base      domain.Store
		publisher domain.EventPublisher
	)
	switch cfg.StorageDriver {
	case config.DriverMemory:
		base = memory.New()
		logger.Warn("in-memory storage: data and change events are not persisted")
	default:
		db, err := oteladapter.OpenDB(cfg.DatabasePath)
		if err != nil {
			return fmt.Errorf("database: %w", err)
		}
		defer db.Close()

		store, err := sqlite.NewFromDB(db)
		if err != nil {
			return fmt.Errorf("store: %w", err)
		}
		base = store

		client, err := riveradapter.Setup(ctx, db, logger)
		if err != nil {
			return fmt.Errorf("river: %w", err)
		}
		if err := client.Start(ctx); err != nil {
			return fmt.Errorf("starting river: %w", err)
		}
		defer func() {
			stopCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if err := client.Stop(stopCtx); err != nil {
				logger.Error("river shutdown", "error", err)
			}
		}()
		publisher = oteladapter.NewTracingPublisher(riveradapter.NewPublisher(client))
	}

	store, err := oteladapter.NewTracingStore(base)
	if err != nil {
		return fmt.Errorf("store instrumentation: %w", err)
	}

	// --- Application ---
	cat, err := catalog.Load(cfg.CatalogPath)
	if err != nil {
		return err
	}
	auth, err := app.NewAuthService(cat, store, logger)
	if err != nil {
		return fmt.Errorf("auth: %w", err)
	}

	prospects := app.NewRepository[domain.Prospect](domain.KeyProspects, store, publisher, logger)
	transactions := app.NewRepository[domain.Transaction](domain.KeyTransactions, store, publisher, logger)
	tours := app.NewRepository[domain.Tour](domain.KeyTours, store, publisher, logger)
	pipeline := app.NewPipeline(prospects, fsm.New(cat.Statuses))

	// --- Adapters (in) ---
	router := chi.NewMux()
	router.Use(otelchi.Middleware(cfg.Telemetry.ServiceName, otelchi.WithChiRoutes(router)))
	router.Use(middleware.RequestID)
	router.Use(middleware.Logger)
	router.Use(middleware.Recoverer)

	api := humachi.New(router, huma.DefaultConfig("tourify", cfg.Telemetry.ServiceVersion))
	handler.Register(api, handler.Services{
		Catalog:      cat,
		Auth:         auth,
		Prospects:    prospects,
		Transactions: transactions,
		Tours:        tours,
		Pipeline:     pipeline,
	})

	// --- Server ---
	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("tourify listening", "port", cfg.Port, "storage", cfg.StorageDriver)
		logger.Info("API docs", "url", "http://localhost:"+cfg.Port+"/docs")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("server: %w", err)
		}
	case <-ctx.Done():
	}
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}

	logger.Info("stopped")
	return nil
}
