package httpserver

import (
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"storefront/internal/metrics"
)

const (
	sessionHeader = "X-Session-ID"
	sessionCtxKey = "sessionID"
)

// sessionMiddleware resolves the caller's session: the client echoes back the
// ID from a previous response, a missing or blank header mints a fresh one.
// The ID is always reflected in the response so clients can persist it.
func sessionMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		sid := strings.TrimSpace(c.GetHeader(sessionHeader))
		if sid == "" {
			sid = uuid.NewString()
		}
		c.Set(sessionCtxKey, sid)
		c.Header(sessionHeader, sid)
		c.Next()
	}
}

func sessionID(c *gin.Context) string {
	return c.GetString(sessionCtxKey)
}

// metricsMiddleware records request counts and latency per route template.
func metricsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		path := c.FullPath()
		if path == "" {
			path = "unmatched"
		}
		status := strconv.Itoa(c.Writer.Status())
		metrics.HTTPRequestsTotal.WithLabelValues(c.Request.Method, path, status).Inc()
		metrics.HTTPRequestDuration.WithLabelValues(c.Request.Method, path, status).Observe(time.Since(start).Seconds())
	}
}
