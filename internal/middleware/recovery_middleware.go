package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mailam-cse/achievers-portal/internal/pkg/logger"
)

// Recovery converts panics into the rendered 500 page instead of a dropped
// connection, logging the panic value with the request path.
func Recovery() gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if rec := recover(); rec != nil {
				logger.Error().
					Interface("panic", rec).
					Str("method", c.Request.Method).
					Str("path", c.Request.URL.Path).
					Msg("Recovered from panic")
				c.HTML(http.StatusInternalServerError, "500.html", gin.H{
					"Title": "Server Error",
				})
				c.Abort()
			}
		}()
		c.Next()
	}
}

// RequestLogger emits one structured log line per completed request
func RequestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()
		logger.Info().
			Str("method", c.Request.Method).
			Str("path", c.Request.URL.Path).
			Int("status", c.Writer.Status()).
			Str("clientIP", c.ClientIP()).
			Msg("Request handled")
	}
}
