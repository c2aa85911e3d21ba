package middleware

import (
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"resume-optimizer/internal/shared/telemetry"
)

// Logging emits one structured log line per request. Handlers may set
// resumeId or analysisId in the gin context to tag the line.
func Logging() gin.HandlerFunc {
	return func(c *gin.Context) {
		if strings.EqualFold(c.Request.Method, "OPTIONS") {
			c.Next()
			return
		}

		start := time.Now()
		c.Next()
		latency := time.Since(start)

		userID, _ := c.Get(userIDKey)
		isGuest, _ := c.Get("isGuest")
		resumeID, _ := c.Get("resumeId")
		analysisID, _ := c.Get("analysisId")

		telemetry.Info("request.complete", map[string]any{
			"request_id":  RequestIDFromContext(c),
			"method":      c.Request.Method,
			"path":        c.Request.URL.Path,
			"status":      c.Writer.Status(),
			"duration_ms": float64(latency.Microseconds()) / 1000.0,
			"user_id":     userID,
			"is_guest":    isGuest,
			"resume_id":   resumeID,
			"analysis_id": analysisID,
			"client_ip":   c.ClientIP(),
			"user_agent":  c.Request.UserAgent(),
		})
	}
}
