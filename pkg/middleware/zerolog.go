package middleware

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/sakuray/campusvault/pkg/log"
)

// GinLoggerMiddleware 使用zerolog记录Gin请求日志的中间件.
// 上传下载请求体量大，额外记录请求和响应的字节数；4xx 记 warn，5xx 记 error.
func GinLoggerMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path
		raw := c.Request.URL.RawQuery
		method := c.Request.Method
		clientIP := c.ClientIP()
		requestSize := c.Request.ContentLength

		c.Next()

		latency := time.Since(start)
		statusCode := c.Writer.Status()
		responseSize := c.Writer.Size()

		if raw != "" {
			path = path + "?" + raw
		}

		logger := log.Logger()

		var event *zerolog.Event

		switch {
		case statusCode >= http.StatusInternalServerError:
			event = logger.Error()
		case statusCode >= http.StatusBadRequest:
			event = logger.Warn()
		default:
			event = logger.Info()
		}

		event = event.
			Int("status", statusCode).
			Dur("latency", latency).
			Str("method", method).
			Str("path", path).
			Str("client_ip", clientIP)

		if requestSize > 0 {
			event = event.Int64("request_bytes", requestSize)
		}

		if responseSize > 0 {
			event = event.Int("response_bytes", responseSize)
		}

		if len(c.Errors) > 0 {
			event = event.Str("error", c.Errors.String())
		}

		event.Msg("HTTP request")
	}
}
