package controllers

import (
	"net/http"

	"aasaasi/internal/logger"
	"aasaasi/models"
	"aasaasi/services"

	"github.com/gin-gonic/gin"
)

// LearningController serves grammar, vocabulary and the practice tests.
type LearningController struct {
	svc *services.LearningService
	log *logger.Logger
}

func NewLearningController(svc *services.LearningService, log *logger.Logger) *LearningController {
	return &LearningController{svc: svc, log: log}
}

func (h *LearningController) GrammarTopics(c *gin.Context) {
	topics, err := h.svc.GrammarTopics(c.Request.Context())
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"topics": topics})
}

func (h *LearningController) GrammarTips(c *gin.Context) {
	tips, err := h.svc.GrammarTips(c.Request.Context(), c.Query("topic"))
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, tips)
}

func (h *LearningController) GrammarTest(c *gin.Context) {
	topic := c.Query("topic")
	qs, err := h.svc.GrammarTest(c.Request.Context(), topic)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"topic": topic, "questions": qs})
}

func (h *LearningController) VocabCategories(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"categories": services.VocabCategories})
}

func (h *LearningController) VocabWords(c *gin.Context) {
	var limit, offset int
	if err := queryInts(c, intParam{"limit", 8, &limit}, intParam{"offset", 0, &offset}); err != nil {
		respondError(c, h.log, err)
		return
	}
	page, err := h.svc.VocabWords(c.Request.Context(), c.DefaultQuery("category", "All"), c.Query("level"), limit, offset)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, page)
}

func (h *LearningController) TestKinds(c *gin.Context) {
	kinds, err := h.svc.TestKinds(c.Request.Context())
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"kinds": kinds})
}

type startTestRequest struct {
	Kind string `json:"kind"`
}

func (h *LearningController) StartTest(c *gin.Context) {
	var req startTestRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "Invalid request body")
		return
	}
	doc, err := h.svc.StartTest(c.Request.Context(), req.Kind)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, doc)
}

type submitTestRequest struct {
	Kind    string                `json:"kind"`
	Answers []models.SubmitAnswer `json:"answers"`
}

func (h *LearningController) SubmitTest(c *gin.Context) {
	var req submitTestRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "Invalid request body")
		return
	}
	res, err := h.svc.SubmitTest(c.Request.Context(), req.Kind, req.Answers)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, res)
}
