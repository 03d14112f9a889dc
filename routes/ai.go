package routes

import (
	"aasaasi/controllers"

	"github.com/gin-gonic/gin"
)

// SetupAIRoutes sets up the AI tutor routes. chatLimit, when set, guards
// the chat endpoint only.
func SetupAIRoutes(router *gin.RouterGroup, ctrl *controllers.AIController, chatLimit gin.HandlerFunc) {
	chat := []gin.HandlerFunc{ctrl.Chat}
	if chatLimit != nil {
		chat = append([]gin.HandlerFunc{chatLimit}, chat...)
	}

	ai := router.Group("/ai")
	{
		ai.POST("/chat", chat...)
		ai.GET("/history", ctrl.History)
	}
}
