package middleware

import (
	"time"

	"github.com/cardinal-wishlist/wishlist-backend/pkg/logger"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const ctxRequestID = "request_id"

// RequestLogger logs API requests with structured fields. Health checks, metrics scrapes and
// swagger assets are skipped; the request id is still assigned and echoed.
func RequestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		requestID := c.GetHeader("X-Request-ID")
		if requestID == "" {
			requestID = uuid.New().String()[:8]
		}
		c.Set(ctxRequestID, requestID)
		c.Header("X-Request-ID", requestID)

		c.Next()

		if operationalPath(c.Request.URL.Path) {
			return
		}

		status := c.Writer.Status()
		log := logger.GetLogger()
		event := log.Info()
		switch {
		case status >= 500:
			event = log.Error()
		case status >= 400:
			event = log.Warn()
		}

		if id, ok := GetUserID(c); ok {
			event = event.Str("user_id", id.String())
		} else {
			event = event.Bool("anonymous", true)
		}
		if route := c.FullPath(); route != "" {
			event = event.Str("route", route)
		}
		if len(c.Errors) > 0 {
			event = event.Str("errors", c.Errors.String())
		}

		event.
			Str("request_id", requestID).
			Str("method", c.Request.Method).
			Str("path", c.Request.URL.Path).
			Int("status", status).
			Dur("latency", time.Since(start)).
			Str("client_ip", c.ClientIP()).
			Int("body_size", c.Writer.Size()).
			Msg("request")
	}
}

// GetRequestID returns the id assigned by RequestLogger
func GetRequestID(c *gin.Context) string {
	return c.GetString(ctxRequestID)
}
