package middleware

import (
	"time" // Request latency

	"vet_clinic/internal/response" // Error envelope

	"github.com/gin-gonic/gin"   // Gin web framework
	"github.com/sirupsen/logrus" // Structured logging
)

// SlowRequest is the latency above which a request is logged as a warning
const SlowRequest = 200 * time.Millisecond

// RequestLogger logs method, path, status and latency of every request
func RequestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		latency := time.Since(start)

		entry := logrus.WithFields(logrus.Fields{
			"method":  c.Request.Method,
			"path":    c.Request.URL.Path,
			"status":  c.Writer.Status(),
			"latency": latency,
		})
		switch {
		case c.Writer.Status() >= 500:
			entry.Error("Request failed")
		case latency > SlowRequest:
			entry.Warn("Slow request")
		default:
			entry.Info("Request handled")
		}
	}
}

// Recovery turns a panic into the 500 envelope
func Recovery() gin.HandlerFunc {
	return gin.CustomRecovery(func(c *gin.Context, recovered any) {
		logrus.WithFields(logrus.Fields{
			"path":  c.Request.URL.Path,
			"panic": recovered,
		}).Error("Recovered from panic")
		response.Internal(c)
	})
}
