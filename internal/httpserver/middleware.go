package httpserver

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"

	"pulsevo/internal/util"
	"pulsevo/pkg/metrics"
	"pulsevo/pkg/trace"
)

// AuthMiddleware verifies the bearer token and attaches the caller's
// identity to the context. The error strings are part of the API contract.
func AuthMiddleware(jwtSecret, audience string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.GetHeader("Authorization") == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "no authorization header"})
			c.Abort()
			return
		}

		token := util.ExtractToken(c.Request)
		claims, err := util.ParseToken(token, jwtSecret, audience)
		if err != nil {
			reason := "invalid token"
			if errors.Is(err, jwt.ErrTokenExpired) {
				reason = "token expired"
			}
			c.JSON(http.StatusUnauthorized, gin.H{"error": reason})
			c.Abort()
			return
		}

		c.Set("user_id", claims.UserID)
		c.Set("user_email", claims.Email)

		c.Next()
	}
}

// TraceMiddleware propagates or generates a trace ID for each request.
func TraceMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		traceID := c.GetHeader(trace.Header)
		if traceID == "" {
			traceID = trace.GenerateTraceID()
		}
		c.Request = c.Request.WithContext(trace.WithContext(c.Request.Context(), traceID))
		c.Header(trace.Header, traceID)
		c.Next()
	}
}

// MetricsMiddleware records per-route request latency.
func MetricsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		path := c.FullPath()
		if path == "" {
			path = "unmatched"
		}
		metrics.RecordHTTPRequestDuration(
			c.Request.Method,
			path,
			strconv.Itoa(c.Writer.Status()),
			time.Since(start),
		)
	}
}
