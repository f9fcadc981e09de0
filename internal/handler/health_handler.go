package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Health 用于存活探测。
func Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"ok": true})
}

// NotFound 处理未注册的路由。
func NotFound(c *gin.Context) {
	chatError(c, http.StatusNotFound, "Not found")
}
