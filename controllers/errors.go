package controllers

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"aasaasi/internal/llm"
	"aasaasi/internal/logger"
	"aasaasi/services"
	"aasaasi/store"

	"github.com/gin-gonic/gin"
)

// respondError writes err as {"detail": ...} with the status its type
// calls for. Unexpected errors are logged and hidden behind a 500.
func respondError(c *gin.Context, log *logger.Logger, err error) {
	var (
		input   *services.InputError
		missing *services.NotFoundError
	)
	switch {
	case errors.As(err, &input):
		c.JSON(http.StatusBadRequest, gin.H{"detail": input.Detail})
	case errors.As(err, &missing):
		c.JSON(http.StatusNotFound, gin.H{"detail": missing.Detail})
	case errors.Is(err, store.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"detail": "Not found"})
	case llm.IsProviderError(err):
		status, detail := llm.HTTPStatus(err)
		log.Warn("AI provider error", "path", c.FullPath(), "status", status, "error", err)
		c.JSON(status, gin.H{"detail": detail})
	case store.IsUnavailable(err):
		log.Error("data source unavailable", "path", c.FullPath(), "error", err)
		c.JSON(http.StatusServiceUnavailable, gin.H{"detail": "DB not ready"})
	default:
		log.Error("request failed", "path", c.FullPath(), "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"detail": "Internal server error"})
	}
}

func badRequest(c *gin.Context, detail string) {
	c.JSON(http.StatusBadRequest, gin.H{"detail": detail})
}

// queryInt reads an integer query parameter, def when it is absent.
func queryInt(c *gin.Context, name string, def int) (int, error) {
	raw := strings.TrimSpace(c.Query(name))
	if raw == "" {
		return def, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, &services.InputError{Detail: fmt.Sprintf("%s must be an integer", name)}
	}
	return n, nil
}

// queryInts reads several integer parameters in order, stopping at the
// first bad one.
func queryInts(c *gin.Context, params ...intParam) error {
	for _, p := range params {
		n, err := queryInt(c, p.name, p.def)
		if err != nil {
			return err
		}
		*p.dst = n
	}
	return nil
}

type intParam struct {
	name string
	def  int
	dst  *int
}
