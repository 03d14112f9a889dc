package routes

import (
	"aasaasi/controllers"

	"github.com/gin-gonic/gin"
)

// SetupContentRoutes sets up the word of the day and idiom routes
func SetupContentRoutes(router *gin.RouterGroup, ctrl *controllers.ContentController) {
	wod := router.Group("/content/word-of-the-day")
	{
		wod.GET("", ctrl.WordOfTheDay)
		wod.GET("/history", ctrl.WordOfTheDayHistory)
		wod.GET("/words", ctrl.SampleWords)
	}

	idioms := router.Group("/idioms")
	{
		idioms.GET("/current", ctrl.CurrentIdiom)
		idioms.GET("/archive", ctrl.IdiomArchive)
		idioms.GET("/explain", ctrl.ExplainIdiom)
	}
}
