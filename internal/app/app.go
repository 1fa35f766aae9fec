// Package app assembles the application: configuration, logging, services,
// the HTTP router and the server lifecycle.
package app

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"kopkar/internal/config"
	"kopkar/internal/dataprocessing"
	"kopkar/internal/errors"
	"kopkar/internal/files"
	"kopkar/internal/infrastructure"
	custommw "kopkar/internal/middleware"
	"kopkar/internal/readers"
	"kopkar/internal/services"
	handlers "kopkar/internal/transport/http"
)

const (
	Version = "1.0.0"
	AppName = "Kopkar - Data Koperasi Karyawan"
)

// Application is the dependency container for the HTTP service.
type Application struct {
	Config      *config.Config
	Logger      *slog.Logger
	Router      *chi.Mux
	Server      *http.Server
	LoanService *services.LoanService
	FileManager *files.Manager
	Discovery   *files.Discovery
}

// NewApplication loads configuration and wires every component.
func NewApplication() (*Application, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("load configuration: %w", err)
	}

	logger, err := infrastructure.InitializeLogger(cfg.Logging)
	if err != nil {
		return nil, fmt.Errorf("initialize logger: %w", err)
	}

	logger.Info("application starting",
		slog.String("name", AppName),
		slog.String("version", Version))

	if err := cfg.EnsureDirectories(); err != nil {
		return nil, fmt.Errorf("ensure directories: %w", err)
	}

	app := &Application{
		Config: cfg,
		Logger: logger,
	}
	app.initializeServices()
	app.setupRouter()
	app.createServer()
	return app, nil
}

func (a *Application) initializeServices() {
	extensions := readers.SupportedExtensions()
	a.Discovery = files.NewDiscovery(a.Config.Paths.UploadDir, extensions)
	a.FileManager = files.NewManager(a.Config.Paths.UploadDir, extensions, a.Logger)

	aggregator := dataprocessing.NewAggregator(a.Config.Paths.UploadDir, a.Logger)
	a.LoanService = services.NewLoanService(aggregator, a.Logger)
}

func (a *Application) setupRouter() {
	r := chi.NewRouter()

	r.Use(custommw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(custommw.StructuredLogger(a.Logger))
	r.Use(custommw.Recoverer(a.Logger))
	r.Use(custommw.Metrics)
	if a.Config.RateLimit.Enabled {
		r.Use(custommw.RateLimit(a.Config.RateLimit.RPS, a.Config.RateLimit.Burst))
	}

	errorHandler := errors.NewErrorHandler(a.Logger)

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		errorHandler.HandleError(w, r, errors.ErrNotFound)
	})

	r.Route("/api", func(r chi.Router) {
		employeeHandler := handlers.NewEmployeeHandler(a.LoanService, a.Logger, errorHandler)
		r.Mount("/employees", employeeHandler.Routes())

		dashboardHandler := handlers.NewDashboardHandler(a.LoanService, a.Logger, errorHandler)
		r.Mount("/dashboard", dashboardHandler.Routes())

		fileHandler := handlers.NewFileHandler(a.FileManager, a.Discovery,
			a.Config.Server.MaxUploadBytes, a.Logger, errorHandler)
		r.Mount("/files", fileHandler.Routes())

		exportHandler := handlers.NewExportHandler(a.LoanService,
			a.Config.Paths.ExportDir, a.Logger, errorHandler)
		r.Mount("/exports", exportHandler.Routes())
	})

	healthHandler := handlers.NewHealthHandler(a.Logger, Version)
	r.Get("/healthz", healthHandler.Healthz)

	r.Handle("/metrics", promhttp.Handler())

	a.Router = r
}

func (a *Application) createServer() {
	a.Server = &http.Server{
		Addr:         fmt.Sprintf(":%d", a.Config.Server.Port),
		Handler:      a.Router,
		ReadTimeout:  a.Config.Server.ReadTimeout,
		WriteTimeout: a.Config.Server.WriteTimeout,
		IdleTimeout:  a.Config.Server.IdleTimeout,
	}
}

// Start begins serving. cancel is invoked when the listener fails so the
// caller's wait loop can unwind.
func (a *Application) Start(ctx context.Context, cancel context.CancelFunc) error {
	a.Logger.InfoContext(ctx, "server listening",
		slog.Int("port", a.Config.Server.Port),
		slog.String("upload_dir", a.Config.Paths.UploadDir),
		slog.String("export_dir", a.Config.Paths.ExportDir))

	go func() {
		if err := a.Server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			a.Logger.ErrorContext(ctx, "server error", slog.String("error", err.Error()))
			cancel()
		}
	}()
	return nil
}

// Stop shuts the server down gracefully within the configured timeout.
func (a *Application) Stop(ctx context.Context) error {
	a.Logger.InfoContext(ctx, "shutting down")

	shutdownCtx, cancel := context.WithTimeout(ctx, a.Config.Server.ShutdownTimeout)
	defer cancel()

	if err := a.Server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown: %w", err)
	}

	a.Logger.InfoContext(ctx, "shutdown complete")
	return nil
}

// Run serves until an interrupt or termination signal arrives, then stops
// gracefully.
func (a *Application) Run() error {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	if err := a.Start(ctx, cancel); err != nil {
		return err
	}

	select {
	case sig := <-sigChan:
		a.Logger.InfoContext(ctx, "received signal", slog.String("signal", sig.String()))
	case <-ctx.Done():
	}

	return a.Stop(context.Background())
}
