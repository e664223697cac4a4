package middleware

import (
	"time"

	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Logger writes one structured access log line per request.
func Logger() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		start := time.Now()
		ctx.Next()

		zap.L().Info("request",
			zap.String("request_id", requestid.Get(ctx)),
			zap.String("method", ctx.Request.Method),
			zap.String("path", ctx.Request.URL.Path),
			zap.String("profile", ctx.GetString(ContextKeyProfileID)),
			zap.Int("status", ctx.Writer.Status()),
			zap.Duration("latency", time.Since(start)),
		)
	}
}

// SimulateLatency delays mutating requests by d.
func SimulateLatency(d time.Duration) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		if d <= 0 || ctx.Request.Method == "GET" {
			ctx.Next()
			return
		}

		select {
		case <-time.After(d):
		case <-ctx.Request.Context().Done():
			ctx.Abort()
			return
		}

		ctx.Next()
	}
}
