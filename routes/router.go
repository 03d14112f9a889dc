package routes

import (
	"aasaasi/controllers"
	"aasaasi/middlewares"

	"github.com/gin-gonic/gin"
)

// Controllers bundles every handler the API serves.
type Controllers struct {
	Health      *controllers.HealthController
	EnglishTest *controllers.EnglishTestController
	Dictionary  *controllers.DictionaryController
	Content     *controllers.ContentController
	Learning    *controllers.LearningController
	Analytics   *controllers.AnalyticsController
	AI          *controllers.AIController
	TTS         *controllers.TTSController

	// ChatLimit runs before the AI chat handler.
	ChatLimit gin.HandlerFunc
}

// SetupAPIRoutes mounts the probes and every /api route.
func SetupAPIRoutes(router *gin.Engine, c Controllers) {
	SetupHealthRoutes(router, c.Health)

	api := router.Group("/api")
	api.Use(middlewares.Session())
	{
		SetupEnglishTestRoutes(api, c.EnglishTest)
		SetupDictionaryRoutes(api, c.Dictionary)
		SetupContentRoutes(api, c.Content)
		SetupLearningRoutes(api, c.Learning)
		SetupAnalyticsRoutes(api, c.Analytics)
		SetupAIRoutes(api, c.AI, c.ChatLimit)
		SetupTTSRoutes(api, c.TTS)
	}
}
