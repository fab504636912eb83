package main

// GET    /products, /products/{id}       - list / fetch products
// POST   /products                       - create a product
// PUT    /products/{id}                  - replace a product
// DELETE /products/{id}                  - delete a product
// GET    /orders, /orders/{id}           - list / fetch orders
// POST   /orders                         - create an order
// PUT    /orders/{id}                    - replace an order
// PATCH  /orders/{id}/status             - change order status
// POST   /orders/{id}/items              - add an item to an order
// DELETE /orders/{id}/items/{productId}  - remove an item from an order
// GET    /dashboard                      - revenue, counts, recent and low-stock lists
// GET    /user, PATCH /user              - profile
// GET    /settings, PATCH /settings      - theme and notifications
// POST   /assistant/{description,forecast,summary}
// GET    /activity                       - recent changes

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"inventory-dashboard/assistant"
	"inventory-dashboard/config"
	"inventory-dashboard/handler"
	"inventory-dashboard/journal"
	"inventory-dashboard/service"
	"inventory-dashboard/store"
	"inventory-dashboard/telemetry"
)

func main() {
	if err := run(); err != nil {
		slog.Error("fatal", "error", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// --- Logging & tracing ---
	logger := telemetry.NewLogger(os.Stderr, telemetry.ParseLevel(cfg.LogLevel))
	slog.SetDefault(logger)

	shutdownTracer, err := telemetry.SetupTracer(ctx, cfg.ServiceName, cfg.OTLPEndpoint)
	if err != nil {
		return err
	}
	defer func() {
		if err := shutdownTracer(context.Background()); err != nil {
			logger.Error("tracer shutdown", "error", err)
		}
	}()

	// --- Journal ---
	j, closeJournal, err := openJournal(ctx, cfg)
	if err != nil {
		return err
	}
	defer closeJournal()

	// --- Store ---
	st := store.NewMemoryStore(cfg.SeedData)

	// --- Assistant ---
	var gen assistant.Generator = assistant.Unavailable{}
	if cfg.APIKey != "" {
		g, err := assistant.NewGenAI(ctx, cfg.APIKey)
		if err != nil {
			return err
		}
		gen = g
	} else {
		logger.Warn("no API key configured, assistant requests will return the fallback message")
	}
	aide := assistant.NewGateway(gen, assistant.Models{
		Description: cfg.DescriptionModel,
		Forecast:    cfg.ForecastModel,
		Summary:     cfg.SummaryModel,
	}, assistant.WithLogger(logger))

	// --- Service ---
	svc := service.NewService(st, j, aide, logger)
	var serviceInterface service.ServiceInterface = svc

	// --- Handlers / Router ---
	h := handler.NewHandler(serviceInterface, logger)
	r := handler.NewRouter(h, logger)

	// --- Server ---
	srv := &http.Server{Addr: cfg.HTTPAddr, Handler: r}
	errCh := make(chan error, 1)
	go func() {
		logger.Info("server running", "addr", cfg.HTTPAddr, "seeded", cfg.SeedData, "journal", cfg.JournalDriver)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	case <-ctx.Done():
	}

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

func openJournal(ctx context.Context, cfg config.Config) (journal.Journal, func(), error) {
	switch cfg.JournalDriver {
	case "none":
		return journal.Nop{}, func() {}, nil
	case "memory":
		return journal.NewMemory(0), func() {}, nil
	default:
		sj, err := journal.Open(ctx, journal.Dialect(cfg.JournalDriver), cfg.JournalDSN)
		if err != nil {
			return nil, nil, err
		}
		return sj, func() { _ = sj.Close() }, nil
	}
}
