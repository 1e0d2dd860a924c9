package server

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const requestIDHeader = "X-Request-Id"

// accessLog tags every request with an id and logs it once it is served.
// Successful polls are frequent and go to debug.
func (s *GameDataServer) accessLog() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		requestID := uuid.NewString()
		c.Header(requestIDHeader, requestID)

		c.Next()

		status := c.Writer.Status()
		zl := s.Logger.Zerolog()
		event := zl.Debug()
		if status >= 400 {
			event = zl.Info()
		}
		event.
			Str("request_id", requestID).
			Str("method", c.Request.Method).
			Str("path", c.Request.URL.Path).
			Int("status", status).
			Dur("latency", time.Since(start)).
			Str("client", c.ClientIP()).
			Msg("request")
	}
}
