package middleware

import (
	"time"

	"quickcourt/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// RequestLogger logs one line per request and exposes a request-scoped
// logger to handlers under the "logger" key.
func RequestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		base := utils.GetLogger()
		c.Set("logger", base.With(zap.String("method", c.Request.Method), zap.String("path", c.FullPath())))

		c.Next()

		fields := []zap.Field{
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("latency", time.Since(start)),
			zap.String("ip", getClientIP(c)),
		}
		if uid := UserID(c); uid != "" {
			fields = append(fields, zap.String("userID", uid))
		}
		switch status := c.Writer.Status(); {
		case status >= 500:
			base.Error("request", fields...)
		case status >= 400:
			base.Warn("request", fields...)
		default:
			base.Info("request", fields...)
		}
	}
}
