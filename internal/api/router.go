package api

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/Conceptual-Machines/prompt-studio-api/internal/api/handlers"
	apimiddleware "github.com/Conceptual-Machines/prompt-studio-api/internal/api/middleware"
	"github.com/Conceptual-Machines/prompt-studio-api/internal/config"
	"github.com/Conceptual-Machines/prompt-studio-api/internal/metrics"
	"github.com/Conceptual-Machines/prompt-studio-api/internal/studio"
)

// Dependencies are the long-lived services the routes are built on
type Dependencies struct {
	DB       *gorm.DB // optional; only the health check uses it directly
	Config   *config.Config
	Registry *studio.Registry
	Recorder *metrics.Recorder
	Models   handlers.ModelInfo
	Version  string
}

func SetupRouter(deps Dependencies) *gin.Engine {
	router := gin.New()

	// Recovery middleware (must be first)
	router.Use(apimiddleware.RecoverWithSentry())

	// Sentry middleware for error tracking
	router.Use(apimiddleware.SentryMiddleware())

	// Request tracking and structured logging
	router.Use(apimiddleware.RequestTracking(deps.Recorder))

	// CORS middleware
	router.Use(apimiddleware.CORS())

	// Health check
	healthHandler := handlers.NewHealthHandler(deps.DB)
	router.GET("/health", healthHandler.HealthCheck)

	// Metrics endpoint
	metricsHandler := handlers.NewMetricsHandler(deps.Version, deps.Registry, deps.Models)
	router.GET("/api/metrics", metricsHandler.GetMetrics)

	// Every studio route works on the calling client's session
	identity := apimiddleware.AnonymousClient()
	if deps.Config != nil && deps.Config.IsGatewayMode() {
		identity = apimiddleware.GatewayAuth()
	}

	sessionHandler := handlers.NewSessionHandler(deps.Registry)
	router.GET("/share", identity, sessionHandler.ShareLink)

	v1 := router.Group("/api/v1")
	v1.Use(identity)
	{
		v1.GET("/catalog", handlers.GetCatalog)

		studioHandler := handlers.NewStudioHandler(deps.Registry)
		v1.GET("/state", studioHandler.GetState)
		v1.PATCH("/state/inputs", studioHandler.EditInputs)
		v1.POST("/state/toggle", studioHandler.ToggleListValue)
		v1.POST("/state/locks/:field", studioHandler.ToggleLock)
		v1.POST("/state/preset", studioHandler.ApplyPreset)
		v1.POST("/state/clear", studioHandler.ClearForm)
		v1.POST("/state/clear-lyrics", studioHandler.ClearLyrics)
		v1.POST("/state/structure", studioHandler.AddSection)
		v1.PATCH("/state/structure/:id", studioHandler.UpdateSection)
		v1.DELETE("/state/structure/:id", studioHandler.RemoveSection)
		v1.POST("/state/structure/:id/move", studioHandler.MoveSection)
		v1.POST("/prompts/active", studioHandler.SelectPrompt)

		generationHandler := handlers.NewGenerationHandler(deps.Registry)
		v1.POST("/prompts", generationHandler.GeneratePrompts)
		v1.POST("/inspire", generationHandler.Inspire)
		v1.POST("/suggestions/refresh", generationHandler.RefreshSuggestions)
		v1.POST("/suggestions/rhythmic-feel", generationHandler.RhythmicFeel)
		v1.POST("/theme/expand", generationHandler.ExpandTheme)
		v1.POST("/lyrics", generationHandler.GenerateLyrics)
		v1.POST("/vibe/deconstruct", generationHandler.DeconstructVibe)

		v1.GET("/session/share", sessionHandler.Share)
		v1.POST("/session/import", sessionHandler.Import)
	}

	return router
}
