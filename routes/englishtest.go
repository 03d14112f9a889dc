package routes

import (
	"aasaasi/controllers"

	"github.com/gin-gonic/gin"
)

// SetupEnglishTestRoutes sets up the placement test routes
func SetupEnglishTestRoutes(router *gin.RouterGroup, ctrl *controllers.EnglishTestController) {
	englishTest := router.Group("/english-test")
	{
		englishTest.GET("/questions", ctrl.Questions)
		englishTest.POST("/grade", ctrl.Grade)
		englishTest.POST("/placement", ctrl.Placement)
	}
}
