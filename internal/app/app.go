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
	"github.com/go-chi/render"

	"lomacli/internal/config"
	"lomacli/internal/errors"
	"lomacli/internal/infrastructure"
	customMiddleware "lomacli/internal/middleware"
	"lomacli/internal/services"
	handlers "lomacli/internal/transport/http"
)

const (
	Version = "1.0.0"
	AppName = "lomacli - Finnish holiday property transactions dashboard"
)

// Application is the main application container. It wires configuration,
// logging, services and the HTTP server together.
type Application struct {
	Config        *config.Config
	Router        *chi.Mux
	Server        *http.Server
	Repository    services.Repository
	DataService   *services.DataService
	HealthService *services.HealthService
	Metrics       *customMiddleware.Metrics
	Logger        *slog.Logger
}

// NewApplication creates a new application instance with dependency
// injection.
func NewApplication() (*Application, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	logger, err := infrastructure.InitializeLogger(cfg.Logging)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}

	logger.Info("Application starting",
		slog.String("name", AppName),
		slog.String("version", Version))

	// The dataset is loaded lazily on first request, but a missing file is
	// worth a warning at startup.
	if !config.FileExists(cfg.GetDatasetPath()) {
		logger.Warn("Dataset file not found, API will answer 503 until it appears",
			slog.String("path", cfg.GetDatasetPath()))
	}
	if !config.FileExists(cfg.GetMappingPath()) {
		logger.Warn("Region mapping file not found, rows will use the sentinel region",
			slog.String("path", cfg.GetMappingPath()))
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

// initializeServices wires the repository and application services
func (a *Application) initializeServices() {
	a.Repository = services.NewFileRepository(a.Config, a.Logger)
	a.DataService = services.NewDataService(a.Repository, a.Logger)
	a.HealthService = services.NewHealthService(Version, a.DataService, a.Logger)
	a.Metrics = customMiddleware.NewMetrics()
}

// setupRouter configures the HTTP router with all routes
func (a *Application) setupRouter() {
	r := chi.NewRouter()

	// Middleware ordering: RequestID -> RealIP -> StripSlashes -> Metrics ->
	// Logger -> Recoverer -> Compress -> SecurityHeaders -> CORS -> RateLimiter
	r.Use(customMiddleware.RequestID)
	r.Use(customMiddleware.RealIP)
	r.Use(customMiddleware.StripSlashes)
	r.Use(a.Metrics.Handler)
	r.Use(customMiddleware.StructuredLogger(a.Logger))
	r.Use(customMiddleware.Recoverer(a.Logger))
	r.Use(customMiddleware.Compress(5))
	r.Use(customMiddleware.SecurityHeaders)

	if a.Config.Security.EnableCORS {
		r.Use(customMiddleware.CORS(a.getCORSConfig()))
	}

	if a.Config.Security.RateLimit.Enabled {
		r.Use(customMiddleware.NewRateLimiter(
			a.Config.Security.RateLimit.RPS,
			a.Config.Security.RateLimit.Burst,
			a.Logger,
		).Handler)
	}

	a.setupAPIRoutes(r)

	// Prometheus exposition outside the API group
	r.Handle("/metrics", a.Metrics.Exporter())

	a.Router = r
}

// setupAPIRoutes configures API endpoints
func (a *Application) setupAPIRoutes(r chi.Router) {
	r.Route("/api", func(r chi.Router) {
		r.Use(render.SetContentType(render.ContentTypeJSON))
		r.Use(customMiddleware.Timeout(a.Config.Server.ReadTimeout, a.Logger))

		errorHandler := errors.NewErrorHandler(a.Logger, false)
		validation := customMiddleware.NewValidationMiddleware(a.Logger, errorHandler)

		healthHandler := handlers.NewHealthHandler(a.HealthService, a.Logger)
		r.Mount("/health", healthHandler.Routes())

		dataHandler := handlers.NewDataHandler(a.DataService, validation, a.Logger, errorHandler)
		r.With(validation.ValidateRequest).Mount("/data", dataHandler.Routes())
	})
}

// getCORSConfig builds the CORS policy from configuration
func (a *Application) getCORSConfig() customMiddleware.CORSConfig {
	origins := a.Config.Security.AllowedOrigins
	if len(origins) == 0 {
		origins = []string{fmt.Sprintf("http://localhost:%d", a.Config.Server.Port)}
	}

	return customMiddleware.CORSConfig{
		AllowedOrigins: origins,
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type", "X-Request-ID"},
		ExposedHeaders: []string{"X-Request-ID", "Content-Disposition"},
		MaxAge:         300,
		Logger:         a.Logger,
	}
}

// createServer creates the HTTP server
func (a *Application) createServer() {
	a.Server = &http.Server{
		Addr:         fmt.Sprintf(":%d", a.Config.Server.Port),
		Handler:      a.Router,
		ReadTimeout:  a.Config.Server.ReadTimeout,
		WriteTimeout: a.Config.Server.WriteTimeout,
		IdleTimeout:  a.Config.Server.IdleTimeout,
	}
}

// Start starts the HTTP server and warms the dataset cache
func (a *Application) Start(ctx context.Context, cancel context.CancelFunc) error {
	a.Logger.InfoContext(ctx, "Starting server",
		slog.Int("port", a.Config.Server.Port),
		slog.String("dataset", a.Config.GetDatasetPath()),
		slog.String("mapping", a.Config.GetMappingPath()))

	go func() {
		if err := a.Server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			a.Logger.ErrorContext(ctx, "Server error", slog.String("error", err.Error()))
			cancel()
		}
	}()

	// Warm the cache so the first request doesn't pay the load. A failure
	// here is not fatal: the dataset may appear later.
	if err := a.DataService.Reload(ctx); err != nil {
		a.Logger.WarnContext(ctx, "Dataset warm-up failed",
			slog.String("error", err.Error()))
	}

	return nil
}

// Stop gracefully shuts down the application
func (a *Application) Stop(ctx context.Context) error {
	a.Logger.InfoContext(ctx, "Shutting down application")

	shutdownCtx, cancel := context.WithTimeout(ctx, a.Config.Server.ShutdownTimeout)
	defer cancel()

	if err := a.Server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown error: %w", err)
	}

	infrastructure.CloseLogFile()

	a.Logger.InfoContext(ctx, "Application shutdown complete")
	return nil
}

// Run runs the application until interrupted
func (a *Application) Run() error {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	if err := a.Start(ctx, cancel); err != nil {
		return err
	}

	select {
	case <-sigChan:
		a.Logger.InfoContext(ctx, "Received interrupt signal")
	case <-ctx.Done():
	}

	return a.Stop(context.Background())
}
