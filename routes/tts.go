package routes

import (
	"aasaasi/controllers"

	"github.com/gin-gonic/gin"
)

// SetupTTSRoutes sets up the text-to-speech route
func SetupTTSRoutes(router *gin.RouterGroup, ctrl *controllers.TTSController) {
	router.GET("/tts", ctrl.Speak)
}
