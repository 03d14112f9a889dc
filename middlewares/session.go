package middlewares

import (
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const (
	SessionHeader = "X-Session-Id"

	sessionKey   = "sessionID"
	maxSessionID = 128
)

// Session takes the learner's session id from the X-Session-Id header or
// mints a new one, stores it in the context and echoes it back.
func Session() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := strings.TrimSpace(c.GetHeader(SessionHeader))
		if id == "" || len(id) > maxSessionID {
			id = "sess_" + uuid.NewString()
		}

		c.Set(sessionKey, id)
		c.Header(SessionHeader, id)
		c.Next()
	}
}

// SessionID returns the id set by Session, or "" outside of it.
func SessionID(c *gin.Context) string {
	return c.GetString(sessionKey)
}
