package handler

import (
	"net/http"

	"faq-support-go/internal/service"
	"faq-support-go/pkg/log"

	"github.com/gin-gonic/gin"
)

// IdempotencyHeader 携带客户端生成的幂等键。
const IdempotencyHeader = "Idempotency-Key"

// ChatHandler 负责处理聊天相关的 HTTP 请求。
type ChatHandler struct {
	chatService service.ChatService
}

// NewChatHandler 创建一个新的 ChatHandler。
func NewChatHandler(chatService service.ChatService) *ChatHandler {
	return &ChatHandler{chatService: chatService}
}

// SendMessageRequest 是 POST /chat/message 的请求体。
type SendMessageRequest struct {
	Message   string `json:"message"`
	SessionID string `json:"sessionId"`
}

// SendMessage 处理一条用户消息并返回回复。
func (h *ChatHandler) SendMessage(c *gin.Context) {
	var req SendMessageRequest
	if !bindJSON(c, &req, chatError) {
		return
	}

	res, err := h.chatService.SendMessage(c.Request.Context(), service.SendMessageInput{
		Message:        req.Message,
		SessionID:      req.SessionID,
		IdempotencyKey: c.GetHeader(IdempotencyHeader),
	})
	if err != nil {
		log.Warnf("[ChatHandler] 处理消息失败: %v", err)
		writeChatError(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

// GetHistory 返回会话的完整消息记录。
func (h *ChatHandler) GetHistory(c *gin.Context) {
	res, err := h.chatService.GetHistory(c.Request.Context(), c.Param("sessionId"))
	if err != nil {
		writeChatError(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}
