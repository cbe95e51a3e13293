package api

import (
	"context"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/gcbaptista/faq-assistant/internal/assistant"
	"github.com/gcbaptista/faq-assistant/internal/metrics"
	"github.com/gcbaptista/faq-assistant/internal/seed"
	"github.com/gcbaptista/faq-assistant/model"
	"github.com/gcbaptista/faq-assistant/services"
)

// Dashboard produces the analytics dashboard.
type Dashboard interface {
	GetDashboardData(ctx context.Context) (model.AnalyticsDashboard, error)
}

// Seeder loads the initial FAQ corpus.
type Seeder interface {
	Seed(ctx context.Context) (seed.Result, error)
}

// Dependencies wires the API to the rest of the service.
type Dependencies struct {
	Manager   services.FAQManager
	Assistant *assistant.Assistant
	Analytics Dashboard
	Seeder    Seeder
	Metrics   *metrics.Collector
	Logger    *zap.Logger
}

// API holds dependencies for API handlers.
type API struct {
	manager   services.FAQManager
	assistant *assistant.Assistant
	analytics Dashboard
	seeder    Seeder
	metrics   *metrics.Collector
	logger    *zap.Logger
}

// NewAPI creates a new API handler structure.
func NewAPI(deps Dependencies) *API {
	if deps.Logger == nil {
		deps.Logger = zap.NewNop()
	}
	if deps.Assistant == nil {
		deps.Assistant = assistant.New(deps.Manager)
	}
	if deps.Metrics == nil {
		deps.Metrics = metrics.New()
	}
	return &API{
		manager:   deps.Manager,
		assistant: deps.Assistant,
		analytics: deps.Analytics,
		seeder:    deps.Seeder,
		metrics:   deps.Metrics,
		logger:    deps.Logger,
	}
}

// NewRouter builds a gin engine with the standard middleware chain and every route.
func NewRouter(deps Dependencies, maxBodyBytes int64) *gin.Engine {
	apiHandler := NewAPI(deps)

	router := gin.New()
	router.Use(
		gin.Recovery(),
		RequestIDMiddleware(),
		LoggerMiddleware(apiHandler.logger),
		MetricsMiddleware(apiHandler.metrics),
		CORSMiddleware(),
		RequestSizeLimitMiddleware(maxBodyBytes),
	)
	apiHandler.registerRoutes(router)
	return router
}

// SetupRoutes defines all the API routes for the FAQ assistant.
func SetupRoutes(router *gin.Engine, deps Dependencies) {
	NewAPI(deps).registerRoutes(router)
}

func (api *API) registerRoutes(router *gin.Engine) {
	// Operational routes
	router.GET("/health", api.HealthCheckHandler)
	router.GET("/metrics", gin.WrapH(api.metrics.Handler()))
	router.GET("/analytics", api.GetAnalyticsHandler)

	// Relevance search and chat
	router.POST("/search", api.SearchHandler)
	chatRoutes := router.Group("/chat")
	{
		chatRoutes.POST("", api.ChatHandler)                       // Answer one chat message
		chatRoutes.GET("/suggestions", api.ChatSuggestionsHandler) // Greeting and quick questions
	}

	// FAQ management routes
	faqRoutes := router.Group("/faqs")
	{
		faqRoutes.POST("", api.CreateFAQHandler)          // Create a FAQ
		faqRoutes.GET("", api.ListFAQsHandler)            // List FAQs with filters and pagination
		faqRoutes.POST("/_seed", api.SeedFAQsHandler)     // Load the built-in corpus
		faqRoutes.GET("/:faqId", api.GetFAQHandler)       // Get a specific FAQ
		faqRoutes.PUT("/:faqId", api.UpdateFAQHandler)    // Replace a FAQ
		faqRoutes.DELETE("/:faqId", api.DeleteFAQHandler) // Delete a FAQ
	}
}
