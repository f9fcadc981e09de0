// Package handler 包含了处理 HTTP 请求的控制器逻辑。
package handler

import (
	"errors"
	"net/http"

	"faq-support-go/internal/apperr"
	"faq-support-go/internal/service"

	"github.com/gin-gonic/gin"
)

const msgInvalidBody = "Invalid request body"

// bindJSON 解析请求体；失败时已写入错误响应并返回 false。
func bindJSON(c *gin.Context, dst interface{}, fail func(c *gin.Context, status int, msg string)) bool {
	if err := c.ShouldBindJSON(dst); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			fail(c, http.StatusRequestEntityTooLarge, "Request body too large")
			return false
		}
		fail(c, http.StatusBadRequest, msgInvalidBody)
		return false
	}
	return true
}

// chatError 使用聊天接口的 {"error": "..."} 格式。
func chatError(c *gin.Context, status int, msg string) {
	c.JSON(status, gin.H{"error": msg})
}

func writeChatError(c *gin.Context, err error) {
	chatError(c, apperr.HTTPStatus(err), apperr.Message(err, service.MsgServerError))
}

// envelope 使用管理接口的 {code, message, data} 格式。
func envelope(c *gin.Context, status int, msg string, data interface{}) {
	c.JSON(status, gin.H{"code": status, "message": msg, "data": data})
}

func envelopeError(c *gin.Context, status int, msg string) {
	envelope(c, status, msg, nil)
}

func writeEnvelopeError(c *gin.Context, err error) {
	envelopeError(c, apperr.HTTPStatus(err), apperr.Message(err, service.MsgServerError))
}
