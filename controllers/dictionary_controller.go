package controllers

import (
	"net/http"

	"aasaasi/internal/logger"
	"aasaasi/middlewares"
	"aasaasi/models"
	"aasaasi/services"

	"github.com/gin-gonic/gin"
)

type DictionaryController struct {
	svc *services.DictionaryService
	log *logger.Logger
}

func NewDictionaryController(svc *services.DictionaryService, log *logger.Logger) *DictionaryController {
	return &DictionaryController{svc: svc, log: log}
}

func (h *DictionaryController) Lookup(c *gin.Context) {
	dir := models.ParseDirection(c.DefaultQuery("dir", string(models.EnglishToSomali)))
	out, err := h.svc.Lookup(c.Request.Context(), middlewares.SessionID(c), c.Query("term"), dir)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, out)
}

func (h *DictionaryController) Suggest(c *gin.Context) {
	var limit int
	if err := queryInts(c, intParam{"limit", 5, &limit}); err != nil {
		respondError(c, h.log, err)
		return
	}
	dir := models.ParseDirection(c.DefaultQuery("dir", string(models.EnglishToSomali)))
	out, err := h.svc.Suggest(c.Request.Context(), middlewares.SessionID(c), c.Query("term"), dir, limit)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, out)
}

func (h *DictionaryController) Recent(c *gin.Context) {
	var limit int
	if err := queryInts(c, intParam{"limit", 10, &limit}); err != nil {
		respondError(c, h.log, err)
		return
	}
	out, err := h.svc.Recent(c.Request.Context(), middlewares.SessionID(c), limit)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, out)
}
