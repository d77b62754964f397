package api

import (
	"github.com/gin-gonic/gin"

	"github.com/gcbaptista/go-autocorrect/config"
	"github.com/gcbaptista/go-autocorrect/internal/analytics"
	"github.com/gcbaptista/go-autocorrect/internal/jobs"
	"github.com/gcbaptista/go-autocorrect/model"
	"github.com/gcbaptista/go-autocorrect/services"
)

// Optional engine capabilities, discovered by type assertion.
type (
	corpusCorrector interface {
		Correct(corpusName, word string, maxSuggestions int) (model.CorrectionResult, error)
	}
	corpusCreator interface {
		CreateCorpus(settings config.CorpusSettings, data []byte) (model.CorpusStats, error)
	}
	settingsUpdater interface {
		UpdateCorpusSettings(name string, settings config.CorpusSettings) (config.CorpusSettings, error)
	}
	jobMetricsProvider interface {
		GetJobManager() *jobs.Manager
	}
	trackerSetter interface {
		SetTracker(tracker services.CorrectionTracker)
	}
)

// API holds dependencies for API handlers, primarily the corpus manager.
type API struct {
	engine    services.CorpusManager
	analytics *analytics.Service
	cfg       *config.Config
}

// NewAPI creates a new API handler structure. A nil cfg uses config.DefaultConfig.
// When the engine accepts a tracker, correction queries feed the analytics service.
func NewAPI(engine services.CorpusManager, cfg *config.Config) *API {
	if cfg == nil {
		cfg = config.DefaultConfig()
	}

	api := &API{
		engine:    engine,
		analytics: analytics.NewService(engine),
		cfg:       cfg,
	}
	if setter, ok := engine.(trackerSetter); ok {
		setter.SetTracker(api.analytics)
	}
	return api
}

// SetupRoutes defines all the API routes for the autocorrect service.
func SetupRoutes(router *gin.Engine, engine services.CorpusManager, cfg *config.Config) *API {
	apiHandler := NewAPI(engine, cfg)

	// Health check route
	router.GET("/health", apiHandler.HealthCheckHandler)

	// Analytics route
	router.GET("/analytics", apiHandler.GetAnalyticsHandler)

	// Job management routes
	jobRoutes := router.Group("/jobs")
	{
		jobRoutes.GET("/metrics", apiHandler.GetJobMetricsHandler) // Get job performance metrics
		jobRoutes.GET("/:jobId", apiHandler.GetJobHandler)         // Get job status by ID
	}

	// Corpus management routes
	corpusRoutes := router.Group("/corpora")
	{
		corpusRoutes.GET("", apiHandler.ListCorporaHandler)                           // List all corpora
		corpusRoutes.POST("/:name", apiHandler.LoadCorpusHandler)                     // Upload (or replace) a corpus
		corpusRoutes.GET("/:name", apiHandler.GetCorpusHandler)                       // Corpus statistics
		corpusRoutes.DELETE("/:name", apiHandler.DeleteCorpusHandler)                 // Delete a corpus
		corpusRoutes.PATCH("/:name/settings", apiHandler.UpdateCorpusSettingsHandler) // Update corpus settings
		corpusRoutes.GET("/:name/vocabulary", apiHandler.GetVocabularyHandler)        // Browse the vocabulary
		corpusRoutes.GET("/:name/jobs", apiHandler.ListJobsHandler)                   // List jobs for a corpus
		corpusRoutes.POST("/:name/_correct", apiHandler.CorrectHandler)               // Correct a single word
	}

	return apiHandler
}
