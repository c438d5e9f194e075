package middleware

import (
	"fmt"
	"time"

	"github.com/ariebrainware/embryo-ai/util"
	"github.com/gin-gonic/gin"
)

// EndpointCallLogger records one ENDPOINT_CALL audit event per request. The caller's
// username is resolved through the user cache when IdentifyUser recognized them.
func EndpointCallLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		duration := time.Since(start)
		status := c.Writer.Status()

		details := map[string]interface{}{
			"method":      c.Request.Method,
			"path":        c.FullPath(),
			"raw_path":    c.Request.URL.Path,
			"status":      status,
			"duration_ms": duration.Milliseconds(),
			"query":       c.Request.URL.RawQuery,
			"request_id":  GetRequestID(c),
		}

		event := util.SecurityEvent{
			EventType: util.EventEndpointCall,
			IP:        c.ClientIP(),
			UserAgent: c.Request.UserAgent(),
			Message:   fmt.Sprintf("%s %s -> %d", c.Request.Method, c.Request.URL.Path, status),
			Details:   details,
		}
		if userID, ok := GetUserID(c); ok {
			event.UserID = fmt.Sprintf("%d", userID)
			event.Username = util.GetUsername(GetDB(c), userID)
			details["user_id"] = userID
		}
		if role, ok := GetRole(c); ok {
			details["role"] = role
		}
		util.LogSecurityEvent(event)
	}
}
