package controllers

import (
	"context"
	"net/http"
	"strconv"
	"strings"

	"aasaasi/internal/logger"

	"github.com/gin-gonic/gin"
)

// Speaker turns text into MP3 audio.
type Speaker interface {
	Audio(ctx context.Context, text, lang string, slow bool) ([]byte, error)
}

type TTSController struct {
	speaker Speaker
	log     *logger.Logger
}

func NewTTSController(speaker Speaker, log *logger.Logger) *TTSController {
	return &TTSController{speaker: speaker, log: log}
}

func (h *TTSController) Speak(c *gin.Context) {
	text := strings.TrimSpace(c.Query("text"))
	if text == "" {
		badRequest(c, "text is required")
		return
	}
	slow, err := strconv.ParseBool(c.DefaultQuery("slow", "false"))
	if err != nil {
		badRequest(c, "slow must be true or false")
		return
	}

	audio, err := h.speaker.Audio(c.Request.Context(), text, c.DefaultQuery("lang", "en"), slow)
	if err != nil {
		h.log.Warn("tts failed", "lang", c.Query("lang"), "error", err)
		badRequest(c, "TTS failed: "+err.Error())
		return
	}
	c.Header("Content-Disposition", `inline; filename="audio.mp3"`)
	c.Data(http.StatusOK, "audio/mpeg", audio)
}
