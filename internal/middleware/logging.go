// Package middleware 存放 Gin 框架的中间件。
package middleware

import (
	"time"

	"faq-support-go/pkg/log"

	"github.com/gin-gonic/gin"
)

// RequestLogger 是一个 Gin 中间件，记录每个请求的状态码与耗时。
// 请求体与响应体包含用户对话内容，不写入日志。
func RequestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		startTime := time.Now()

		c.Next()

		log.Infow("HTTP Request Log",
			"statusCode", c.Writer.Status(),
			"latency", time.Since(startTime).String(),
			"clientIP", c.ClientIP(),
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"bytesOut", c.Writer.Size(),
		)
	}
}
