package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/getsentry/sentry-go"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"github.com/Conceptual-Machines/prompt-studio-api/internal/api"
	"github.com/Conceptual-Machines/prompt-studio-api/internal/api/handlers"
	"github.com/Conceptual-Machines/prompt-studio-api/internal/config"
	"github.com/Conceptual-Machines/prompt-studio-api/internal/database"
	"github.com/Conceptual-Machines/prompt-studio-api/internal/llm"
	"github.com/Conceptual-Machines/prompt-studio-api/internal/metrics"
	"github.com/Conceptual-Machines/prompt-studio-api/internal/observability"
	"github.com/Conceptual-Machines/prompt-studio-api/internal/prompt"
	"github.com/Conceptual-Machines/prompt-studio-api/internal/services"
	"github.com/Conceptual-Machines/prompt-studio-api/internal/session"
	"github.com/Conceptual-Machines/prompt-studio-api/internal/studio"
)

const (
	sentryFlushTimeout = 2 * time.Second
	shutdownTimeout    = 10 * time.Second
	readHeaderTimeout  = 10 * time.Second
)

// releaseVersion is set via ldflags during build
var releaseVersion = "dev"

// GetVersion returns the current release version
func GetVersion() string {
	return releaseVersion
}

func main() {
	// Load environment variables
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	// Load configuration
	cfg := config.Load()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Initialize Sentry
	if cfg.SentryDSN != "" {
		if err := sentry.Init(sentry.ClientOptions{
			Dsn:              cfg.SentryDSN,
			Environment:      cfg.Environment,
			Release:          "prompt-studio-api@" + releaseVersion,
			EnableTracing:    true,
			TracesSampleRate: 1.0,
			EnableLogs:       true,
			Debug:            !cfg.IsProduction(),
			BeforeSend: func(event *sentry.Event, _ *sentry.EventHint) *sentry.Event {
				// Filter out sensitive data
				if event.Request != nil {
					event.Request.Headers = filterSensitiveHeaders(event.Request.Headers)
				}
				return event
			},
		}); err != nil {
			log.Printf("Failed to initialize Sentry: %v", err)
		} else {
			log.Printf("✅ Sentry initialized (environment: %s, release: %s)", cfg.Environment, releaseVersion)
			defer sentry.Flush(sentryFlushTimeout)
		}
	} else {
		log.Println("⚠️  Sentry not configured (SENTRY_DSN not set)")
	}

	// Initialize database
	db, err := database.Connect(cfg.DBType, cfg.DatabaseURL, !cfg.IsProduction())
	if err != nil {
		sentry.CaptureException(err)
		log.Fatal("Failed to connect to database:", err)
	}

	// Run migrations
	if err := database.Migrate(db); err != nil {
		sentry.CaptureException(err)
		log.Fatal("Failed to run migrations:", err)
	}

	// LLM providers
	factory := llm.NewProviderFactory(cfg.OpenAIAPIKey, cfg.GeminiAPIKey)
	promptProvider, err := factory.GetProvider(ctx, cfg.PromptModel, cfg.LLMProvider)
	if err != nil {
		log.Fatal("Failed to create prompt model provider:", err)
	}
	creativeProvider, err := factory.GetProvider(ctx, cfg.CreativeModel, cfg.LLMProvider)
	if err != nil {
		log.Fatal("Failed to create creative model provider:", err)
	}

	builder, err := prompt.NewPromptBuilder()
	if err != nil {
		log.Fatal("Failed to load prompt templates:", err)
	}

	// Observability
	observability.InitializeLangfuse(ctx, cfg)
	cloudwatch, err := metrics.NewClient(ctx, cfg.Environment)
	if err != nil {
		log.Printf("⚠️  CloudWatch metrics unavailable: %v", err)
	}
	recorder := metrics.NewRecorder(metrics.NewSentryMetrics(), cloudwatch)

	generator := services.NewGenerator(promptProvider, creativeProvider, services.GeneratorConfig{
		PromptModel:   cfg.PromptModel,
		CreativeModel: cfg.CreativeModel,
	}, builder, recorder)

	registry := studio.NewRegistry(session.NewStore(db), session.ErrNotFound, generator, generator, studio.Options{
		SuggestionDebounce: cfg.SuggestionDebounce,
		SuggestionTimeout:  cfg.SuggestionTimeout,
		OnSuggestionBatch:  recorder.RecordSuggestionBatch,
		IdleTTL:            cfg.SessionIdleTTL,
	})
	defer registry.Close()

	// Set Gin mode
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	router := api.SetupRouter(api.Dependencies{
		DB:       db,
		Config:   cfg,
		Registry: registry,
		Recorder: recorder,
		Models: handlers.ModelInfo{
			Provider:      cfg.LLMProvider,
			PromptModel:   cfg.PromptModel,
			CreativeModel: cfg.CreativeModel,
		},
		Version: GetVersion(),
	})

	server := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: readHeaderTimeout,
	}

	go func() {
		log.Printf("🚀 Starting server on port %s", cfg.Port)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			sentry.CaptureException(err)
			log.Fatal("Failed to start server:", err)
		}
	}()

	<-ctx.Done()
	log.Println("🛑 Shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Printf("⚠️  Graceful shutdown failed: %v", err)
	}
}

func filterSensitiveHeaders(headers map[string]string) map[string]string {
	filtered := make(map[string]string)
	sensitiveKeys := map[string]bool{
		"authorization": true,
		"cookie":        true,
		"x-api-key":     true,
	}

	for k, v := range headers {
		if sensitiveKeys[k] {
			filtered[k] = "[REDACTED]"
		} else {
			filtered[k] = v
		}
	}
	return filtered
}
