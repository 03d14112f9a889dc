package controllers

import (
	"net/http"
	"strings"

	"aasaasi/internal/logger"
	"aasaasi/middlewares"
	"aasaasi/models"
	"aasaasi/services"

	"github.com/gin-gonic/gin"
)

// ContentController serves the word of the day and the idiom of the week.
type ContentController struct {
	wod    *services.WordOfDayService
	idioms *services.IdiomService
	log    *logger.Logger
}

func NewContentController(wod *services.WordOfDayService, idioms *services.IdiomService, log *logger.Logger) *ContentController {
	return &ContentController{wod: wod, idioms: idioms, log: log}
}

func (h *ContentController) WordOfTheDay(c *gin.Context) {
	var (
		word *models.WordOfDay
		err  error
	)
	if date := strings.TrimSpace(c.Query("date")); date != "" {
		word, err = h.wod.On(c.Request.Context(), date)
	} else {
		word, err = h.wod.Today(c.Request.Context())
	}
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"word": word})
}

func (h *ContentController) WordOfTheDayHistory(c *gin.Context) {
	var limit int
	if err := queryInts(c, intParam{"limit", 7, &limit}); err != nil {
		respondError(c, h.log, err)
		return
	}
	hist, err := h.wod.History(c.Request.Context(), limit)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"history": hist})
}

func (h *ContentController) SampleWords(c *gin.Context) {
	var limit int
	if err := queryInts(c, intParam{"limit", 10, &limit}); err != nil {
		respondError(c, h.log, err)
		return
	}
	words, err := h.wod.Sample(c.Request.Context(), limit)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"words": words})
}

func (h *ContentController) CurrentIdiom(c *gin.Context) {
	out, err := h.idioms.Current(c.Request.Context(), middlewares.SessionID(c))
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, out)
}

func (h *ContentController) IdiomArchive(c *gin.Context) {
	var skip, limit int
	if err := queryInts(c, intParam{"skip", 0, &skip}, intParam{"limit", 20, &limit}); err != nil {
		respondError(c, h.log, err)
		return
	}
	items, err := h.idioms.Archive(c.Request.Context(), skip, limit)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"items": items, "skip": skip, "limit": limit})
}

func (h *ContentController) ExplainIdiom(c *gin.Context) {
	out, err := h.idioms.Explain(c.Request.Context(), c.Query("idiom"))
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, out)
}
