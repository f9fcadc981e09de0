package handler

import (
	"encoding/json"
	"net/http"
	"time"

	"faq-support-go/internal/apperr"
	"faq-support-go/internal/service"
	"faq-support-go/pkg/log"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

const wsWriteWait = 10 * time.Second

// ChatWSHandler 通过 WebSocket 提供与 POST /chat/message 相同的对话能力。
// 每条入站消息对应一条完整的回复帧。
type ChatWSHandler struct {
	chatService     service.ChatService
	upgrader        websocket.Upgrader
	maxMessageBytes int64
}

// NewChatWSHandler 创建一个新的 ChatWSHandler，只接受来自 allowedOrigin 的连接。
// 单帧大小与 HTTP 请求体共用 maxMessageBytes 上限，超出时连接被关闭。
func NewChatWSHandler(chatService service.ChatService, allowedOrigin string, maxMessageBytes int64) *ChatWSHandler {
	return &ChatWSHandler{
		chatService:     chatService,
		maxMessageBytes: maxMessageBytes,
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool {
				origin := r.Header.Get("Origin")
				return origin == "" || origin == allowedOrigin
			},
		},
	}
}

type wsReply struct {
	Reply     string `json:"reply,omitempty"`
	SessionID string `json:"sessionId,omitempty"`
	Error     string `json:"error,omitempty"`
}

// Handle 处理一个传入的 WebSocket 连接。
func (h *ChatWSHandler) Handle(c *gin.Context) {
	conn, err := h.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Error("WebSocket 升级失败", err)
		return
	}
	defer conn.Close()
	conn.SetReadLimit(h.maxMessageBytes)

	log.Infof("WebSocket 连接已建立, clientIP: %s", c.ClientIP())

	// 同一连接上未显式指定会话时沿用上一次的会话
	var sessionID string
	for {
		_, message, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				log.Warnf("从 WebSocket 读取消息失败: %v", err)
			}
			return
		}

		var req SendMessageRequest
		if err := json.Unmarshal(message, &req); err != nil {
			if !h.write(conn, wsReply{Error: msgInvalidBody}) {
				return
			}
			continue
		}
		if req.SessionID == "" {
			req.SessionID = sessionID
		}

		res, err := h.chatService.SendMessage(c.Request.Context(), service.SendMessageInput{
			Message:   req.Message,
			SessionID: req.SessionID,
		})
		if err != nil {
			if !h.write(conn, wsReply{Error: apperr.Message(err, service.MsgServerError)}) {
				return
			}
			continue
		}
		sessionID = res.SessionID
		if !h.write(conn, wsReply{Reply: res.Reply, SessionID: res.SessionID}) {
			return
		}
	}
}

func (h *ChatWSHandler) write(conn *websocket.Conn, frame wsReply) bool {
	_ = conn.SetWriteDeadline(time.Now().Add(wsWriteWait))
	if err := conn.WriteJSON(frame); err != nil {
		log.Warnf("写入 WebSocket 消息失败: %v", err)
		return false
	}
	return true
}
