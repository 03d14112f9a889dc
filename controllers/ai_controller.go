package controllers

import (
	"net/http"

	"aasaasi/internal/logger"
	"aasaasi/middlewares"
	"aasaasi/services"

	"github.com/gin-gonic/gin"
)

type AIController struct {
	tutor *services.TutorService
	log   *logger.Logger
}

func NewAIController(tutor *services.TutorService, log *logger.Logger) *AIController {
	return &AIController{tutor: tutor, log: log}
}

type chatRequest struct {
	Message string `json:"message"`
}

func (h *AIController) Chat(c *gin.Context) {
	var req chatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "Invalid request body")
		return
	}
	reply, err := h.tutor.Chat(c.Request.Context(), middlewares.SessionID(c), req.Message)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, reply)
}

func (h *AIController) History(c *gin.Context) {
	conv, err := h.tutor.History(c.Request.Context(), middlewares.SessionID(c))
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, conv)
}
