package controllers

import (
	"net/http"

	"aasaasi/internal/logger"
	"aasaasi/models"
	"aasaasi/placement"
	"aasaasi/services"

	"github.com/gin-gonic/gin"
)

type EnglishTestController struct {
	svc *services.EnglishTestService
	log *logger.Logger
}

func NewEnglishTestController(svc *services.EnglishTestService, log *logger.Logger) *EnglishTestController {
	return &EnglishTestController{svc: svc, log: log}
}

// Questions serves GET /english-test/questions. ?limit= is the older name
// of ?total= and wins when both are given.
func (h *EnglishTestController) Questions(c *gin.Context) {
	var total int
	if err := queryInts(c, intParam{"total", 0, &total}); err != nil {
		respondError(c, h.log, err)
		return
	}
	if c.Query("limit") != "" {
		var limit int
		if err := queryInts(c, intParam{"limit", 0, &limit}); err != nil {
			respondError(c, h.log, err)
			return
		}
		if limit < 1 {
			badRequest(c, "limit must be between 1 and 60")
			return
		}
		total = limit
	}

	qs, err := h.svc.Questions(c.Request.Context(), c.DefaultQuery("mode", services.ModeQuick), total)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"questions": qs})
}

func (h *EnglishTestController) Grade(c *gin.Context) {
	var req models.GradeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "Invalid request body")
		return
	}
	res, err := h.svc.Grade(c.Request.Context(), req.Answers)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

type placementRequest struct {
	Details []models.GradeDetail `json:"details"`
}

type placementResponse struct {
	Level         placement.Level        `json:"level"`
	Label         string                 `json:"label"`
	ServedCounts  map[placement.Band]int `json:"servedCounts"`
	CorrectCounts map[placement.Band]int `json:"correctCounts"`
}

// Placement re-runs the estimator over details the client already holds.
func (h *EnglishTestController) Placement(c *gin.Context) {
	var req placementRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "Invalid request body")
		return
	}
	res := h.svc.Placement(req.Details)
	c.JSON(http.StatusOK, placementResponse{
		Level:         res.Level,
		Label:         res.Level.Label(),
		ServedCounts:  res.ServedCounts,
		CorrectCounts: res.CorrectCounts,
	})
}
