package controllers

import (
	"net/http"

	"aasaasi/internal/logger"
	"aasaasi/middlewares"
	"aasaasi/services"

	"github.com/gin-gonic/gin"
)

type AnalyticsController struct {
	svc *services.AnalyticsService
	log *logger.Logger
}

func NewAnalyticsController(svc *services.AnalyticsService, log *logger.Logger) *AnalyticsController {
	return &AnalyticsController{svc: svc, log: log}
}

// RecordEvent accepts both the current and the legacy event body.
func (h *AnalyticsController) RecordEvent(c *gin.Context) {
	var in services.EventInput
	if err := c.ShouldBindJSON(&in); err != nil {
		badRequest(c, "Invalid request body")
		return
	}
	if err := h.svc.Record(c.Request.Context(), middlewares.SessionID(c), in); err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true})
}

func (h *AnalyticsController) Summary(c *gin.Context) {
	var days int
	if err := queryInts(c, intParam{"days", 30, &days}); err != nil {
		respondError(c, h.log, err)
		return
	}
	sum, err := h.svc.Summary(c.Request.Context(), middlewares.SessionID(c), days)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, sum)
}
