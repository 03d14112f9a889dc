package routes

import (
	"aasaasi/controllers"

	"github.com/gin-gonic/gin"
)

// SetupDictionaryRoutes sets up the bilingual dictionary routes
func SetupDictionaryRoutes(router *gin.RouterGroup, ctrl *controllers.DictionaryController) {
	dictionary := router.Group("/dictionary")
	{
		dictionary.GET("/lookup", ctrl.Lookup)
		dictionary.GET("/suggest", ctrl.Suggest)
		dictionary.GET("/recent", ctrl.Recent)
	}
}
