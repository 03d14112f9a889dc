package controllers

import (
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"aasaasi/internal/llm"
	"aasaasi/internal/logger"
	"aasaasi/services"
	"aasaasi/store"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func TestRespondError(t *testing.T) {
	gin.SetMode(gin.TestMode)

	tests := []struct {
		name   string
		err    error
		status int
		detail string
	}{
		{"input", &services.InputError{Detail: "bad"}, http.StatusBadRequest, `{"detail":"bad"}`},
		{"not found", fmt.Errorf("wrap: %w", &services.NotFoundError{Detail: "gone"}), http.StatusNotFound, `{"detail":"gone"}`},
		{"store not found", store.ErrNotFound, http.StatusNotFound, `{"detail":"Not found"}`},
		{"rate limit", &llm.ErrRateLimit{}, http.StatusTooManyRequests, `{"detail":"AI provider quota exceeded"}`},
		{"bad key", &llm.ErrUnauthorized{Err: errors.New("401")}, http.StatusUnauthorized, `{"detail":"Invalid AI provider API key"}`},
		{"unavailable", fmt.Errorf("find word: %w", store.ErrUnavailable), http.StatusServiceUnavailable, `{"detail":"DB not ready"}`},
		{"other", errors.New("boom"), http.StatusInternalServerError, `{"detail":"Internal server error"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(w)
			c.Request = httptest.NewRequest(http.MethodGet, "/", nil)

			respondError(c, logger.Nop(), tt.err)
			assert.Equal(t, tt.status, w.Code)
			assert.JSONEq(t, tt.detail, w.Body.String())
		})
	}
}

func TestProviderUnavailableIsBadGateway(t *testing.T) {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/", nil)

	respondError(c, logger.Nop(), &llm.ErrProviderUnavailable{Err: errors.New("502 upstream")})
	assert.Equal(t, http.StatusBadGateway, w.Code)
}
