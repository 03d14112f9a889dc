package routes

import (
	"aasaasi/controllers"

	"github.com/gin-gonic/gin"
)

// SetupHealthRoutes sets up the probes on the engine itself, outside the
// /api group and its session middleware.
func SetupHealthRoutes(router *gin.Engine, ctrl *controllers.HealthController) {
	router.GET("/", ctrl.Root)
	router.HEAD("/", ctrl.RootHead)

	router.GET("/api/health", ctrl.Health)
	router.HEAD("/api/health", ctrl.Probe)
	router.OPTIONS("/api/health", ctrl.Probe)
}
