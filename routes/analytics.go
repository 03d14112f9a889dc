package routes

import (
	"aasaasi/controllers"

	"github.com/gin-gonic/gin"
)

// SetupAnalyticsRoutes sets up the learner activity routes
func SetupAnalyticsRoutes(router *gin.RouterGroup, ctrl *controllers.AnalyticsController) {
	analytics := router.Group("/analytics")
	{
		analytics.POST("/event", ctrl.RecordEvent)
		analytics.GET("/summary", ctrl.Summary)
	}
}
