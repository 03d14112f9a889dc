package controllers

import (
	"context"
	"net/http"
	"time"

	"aasaasi/internal/logger"
	"aasaasi/store"

	"github.com/gin-gonic/gin"
)

const probeTimeout = 2 * time.Second

type HealthController struct {
	store store.Store
	log   *logger.Logger
}

func NewHealthController(s store.Store, log *logger.Logger) *HealthController {
	return &HealthController{store: s, log: log}
}

type healthResponse struct {
	Status  string           `json:"status"`
	DB      string           `json:"db"`
	Backend string           `json:"backend"`
	Counts  map[string]int64 `json:"counts,omitempty"`
}

// Health answers 200 even with the database down; "db" reports its state.
func (h *HealthController) Health(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), probeTimeout)
	defer cancel()

	resp := healthResponse{Status: "ok", DB: "up", Backend: h.store.Backend()}
	if err := h.store.Ping(ctx); err != nil {
		h.log.Warn("health ping failed", "error", err)
		resp.DB = "down"
		c.JSON(http.StatusOK, resp)
		return
	}
	counts, err := h.store.Counts(ctx)
	if err != nil {
		h.log.Warn("health counts failed", "error", err)
	}
	resp.Counts = counts
	c.JSON(http.StatusOK, resp)
}

// Probe answers HEAD and OPTIONS without touching the database.
func (h *HealthController) Probe(c *gin.Context) {
	c.Header("Allow", "GET,HEAD,OPTIONS")
	c.Status(http.StatusOK)
}

func (h *HealthController) Root(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"ok": true, "service": "Aasaasi API", "health": "/api/health"})
}

func (h *HealthController) RootHead(c *gin.Context) {
	c.Status(http.StatusOK)
}
