package main

import (
	"context"
	"log"
	"log/slog"
	"net/http"
	"os"
	"strings"
	"time"

	"abctrack/internal/auth"
	"abctrack/internal/config"
	"abctrack/internal/export"
	"abctrack/internal/flow"
	"abctrack/internal/handler"
	"abctrack/internal/kv"
	"abctrack/internal/middleware"
	"abctrack/internal/remind"
	"abctrack/internal/service"
	"abctrack/internal/store"
	"abctrack/internal/suggest"

	"github.com/joho/godotenv"
	"github.com/rs/cors"
)

func main() {
	// Load .env file (silently ignore if it doesn't exist - for production)
	_ = godotenv.Load()

	// Load configuration
	cfg := config.Load()

	// Setup structured logging
	logLevel := slog.LevelInfo
	if cfg.Environment == "dev" {
		logLevel = slog.LevelDebug
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: logLevel,
	}))
	slog.SetDefault(logger)

	logger.Info("server starting",
		"environment", cfg.Environment,
		"port", cfg.Port,
		"storage_backend", cfg.StorageBackend,
	)

	// Create JWT verifier for caregiver authentication
	jwtVerifier, err := auth.NewJWTVerifier(cfg.AuthJWKSURL, logger)
	if err != nil {
		log.Fatalf("Failed to create JWT verifier: %v", err)
	}
	defer jwtVerifier.Close()

	// Create the key-value backend
	ctx := context.Background()
	kvStore, cleanup, err := openStorage(ctx, cfg, logger)
	if err != nil {
		log.Fatalf("Failed to open storage backend: %v", err)
	}
	defer cleanup()

	// Record store over the key-value layer
	recordStore := store.NewRecordStore(kvStore, logger)

	// Static flow definitions and sentiment tables
	flows, err := flow.NewRegistry()
	if err != nil {
		log.Fatalf("Failed to load flow definitions: %v", err)
	}

	// Suggestion service: remote completion client + 24h cache + fallback
	var suggestClient suggest.Client
	if cfg.SuggestionBaseURL != "" {
		suggestClient = suggest.NewCompletionClientWithConfig(
			cfg.SuggestionAPIKey, cfg.SuggestionModel,
			cfg.SuggestionBaseURL, suggest.DefaultCompletionTimeout,
		)
	} else {
		suggestClient = suggest.NewCompletionClient(cfg.SuggestionAPIKey, cfg.SuggestionModel)
	}
	suggestService, err := suggest.NewService(kvStore, suggestClient, logger)
	if err != nil {
		log.Fatalf("Failed to create suggestion service: %v", err)
	}

	// Export mailer (disabled without SES_FROM_EMAIL)
	mailer, err := export.NewMailer(ctx, cfg.AWSRegion, cfg.SESFromEmail, cfg.SESFromName, logger)
	if err != nil {
		log.Fatalf("Failed to create export mailer: %v", err)
	}

	// Services
	childService := service.NewChildService(recordStore, logger)
	logService := service.NewLogService(recordStore, flows, logger)
	exportService := service.NewExportService(recordStore, mailer, logger)

	// Daily reminder scheduler
	if cfg.RemindersEnabled {
		scheduler := remind.NewScheduler(recordStore, remind.NewEmailNotifier(mailer, logger), logger)
		if err := scheduler.Start(); err != nil {
			log.Fatalf("Failed to start reminder scheduler: %v", err)
		}
		defer scheduler.Stop()
	}

	// Handlers
	childHandler := handler.NewChildHandler(childService, logger)
	selectionHandler := handler.NewSelectionHandler(childService, logger)
	logHandler := handler.NewLogHandler(logService, childService, logger)
	suggestionHandler := handler.NewSuggestionHandler(suggestService, logger)
	flowHandler := handler.NewFlowHandler(flows, logger)
	settingsHandler := handler.NewSettingsHandler(recordStore, logger)
	exportHandler := handler.NewExportHandler(exportService, recordStore, logger)

	logger.Info("services initialized")

	// Create HTTP router (Go 1.22+ enhanced patterns)
	mux := http.NewServeMux()

	// Health check
	mux.HandleFunc("GET /health", childHandler.HealthCheck)

	// Child routes
	mux.HandleFunc("GET /api/children", childHandler.ListChildren)
	mux.HandleFunc("POST /api/children", childHandler.CreateChild)
	mux.HandleFunc("GET /api/children/{id}", childHandler.GetChild)
	mux.HandleFunc("PATCH /api/children/{id}", childHandler.UpdateChild)
	mux.HandleFunc("DELETE /api/children/{id}", childHandler.DeleteChild)

	// Custom options ("pins")
	mux.HandleFunc("POST /api/children/{id}/options", childHandler.AddCustomOption)
	mux.HandleFunc("DELETE /api/children/{id}/options", childHandler.RemoveCustomOption)

	// Log routes
	mux.HandleFunc("POST /api/children/{id}/logs", logHandler.AppendLog)
	mux.HandleFunc("GET /api/children/{id}/logs", logHandler.ListLogs)
	mux.HandleFunc("DELETE /api/children/{id}/logs", logHandler.ClearLogs)
	mux.HandleFunc("GET /api/children/{id}/streak", logHandler.GetProgress)

	// Selection pointer routes
	mux.HandleFunc("GET /api/selection", selectionHandler.GetSelection)
	mux.HandleFunc("PUT /api/selection", selectionHandler.SetSelection)
	mux.HandleFunc("POST /api/selection/ensure", selectionHandler.EnsureSelection)

	// Suggestion routes
	mux.HandleFunc("GET /api/suggestions", suggestionHandler.GetSuggestions)

	// Flow definition routes
	mux.HandleFunc("GET /api/flows", flowHandler.ListFlows)
	mux.HandleFunc("GET /api/flows/{name}", flowHandler.GetFlow)

	// Settings routes
	mux.HandleFunc("GET /api/settings/reminder", settingsHandler.GetReminder)
	mux.HandleFunc("PUT /api/settings/reminder", settingsHandler.SetReminder)
	mux.HandleFunc("GET /api/settings/onboarding", settingsHandler.GetOnboarding)
	mux.HandleFunc("PUT /api/settings/onboarding", settingsHandler.SetOnboarding)

	// Export and maintenance routes
	mux.HandleFunc("POST /api/export", exportHandler.Export)
	mux.HandleFunc("POST /api/maintenance/purge-corrupted", exportHandler.PurgeCorrupted)

	// Build middleware chain
	var httpHandler http.Handler = mux

	// Apply middleware in reverse order (they wrap each other)
	// Order: CORS → Recovery → Auth → Routes
	httpHandler = middleware.AuthMiddleware(jwtVerifier)(httpHandler)
	httpHandler = middleware.Recovery(logger)(httpHandler)

	// CORS - Must be before auth to handle OPTIONS pre-flight requests
	corsHandler := cors.New(cors.Options{
		AllowedOrigins:   strings.Split(cfg.CORSOrigins, ","),
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Origin", "Content-Type", "Accept", "Authorization"},
		AllowCredentials: true,
	})
	httpHandler = corsHandler.Handler(httpHandler)

	// Create HTTP server
	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      httpHandler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server
	logger.Info("server listening", "port", cfg.Port)
	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Fatalf("Failed to start server: %v", err)
	}
}

// openStorage creates the configured key-value backend and returns it with
// its cleanup function.
func openStorage(ctx context.Context, cfg *config.Config, logger *slog.Logger) (kv.Store, func(), error) {
	switch cfg.StorageBackend {
	case "redis":
		redisStore, err := kv.ConnectRedis(ctx, cfg.RedisURL)
		if err != nil {
			return nil, nil, err
		}
		logger.Info("redis connected")
		return redisStore, func() { _ = redisStore.Close() }, nil

	case "memory":
		logger.Warn("memory storage backend: data is lost on restart")
		return kv.NewMemoryStore(), func() {}, nil

	default: // postgres
		pool, err := kv.CreateConnectionPool(ctx, cfg.DatabaseURL)
		if err != nil {
			return nil, nil, err
		}
		pgStore := kv.NewPostgresStore(pool, cfg.TablePrefix)
		if err := pgStore.EnsureSchema(ctx); err != nil {
			pool.Close()
			return nil, nil, err
		}
		logger.Info("database connected", "max_conns", 25, "min_conns", 5)
		return pgStore, pool.Close, nil
	}
}
