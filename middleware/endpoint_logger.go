package middleware

import (
	"fmt"
	"time"

	"github.com/ariebrainware/hms-portal/util"
	"github.com/gin-gonic/gin"
)

// EndpointCallLogger records each HTTP request as an endpoint event in the
// security audit trail. The session, if any, is read after c.Next so it
// can sit in front of ValidateSessionToken.
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
		}
		if rid := c.GetString(requestIDKey); rid != "" {
			details["request_id"] = rid
		}

		evt := util.SecurityEvent{
			EventType: util.EventEndpointCall,
			IP:        c.ClientIP(),
			UserAgent: c.Request.UserAgent(),
			Message:   fmt.Sprintf("%s %s -> %d", c.Request.Method, c.Request.URL.Path, status),
			Details:   details,
		}
		if sess, ok := GetSession(c); ok {
			evt.UserID = sess.User.ID
			evt.Portal = string(sess.Portal)
			details["role"] = string(sess.User.Role)
		}
		util.LogSecurityEvent(evt)
	}
}
