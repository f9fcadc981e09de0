package service

import (
	"faq-support-go/internal/model"
	"faq-support-go/pkg/llm"
)

// SelectHistoryWindow 返回按时间顺序排列的最近 limit 条消息，
// 并将存储中的发送方映射为模型使用的角色。
func SelectHistoryWindow(messages []model.Message, limit int) []llm.Message {
	if limit <= 0 || len(messages) == 0 {
		return []llm.Message{}
	}

	start := 0
	if len(messages) > limit {
		start = len(messages) - limit
	}

	window := make([]llm.Message, 0, len(messages)-start)
	for _, m := range messages[start:] {
		role := llm.RoleAssistant
		if m.Sender == model.SenderUser {
			role = llm.RoleUser
		}
		window = append(window, llm.Message{Role: role, Content: m.Text})
	}
	return window
}
