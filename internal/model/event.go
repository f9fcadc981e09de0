package model

import "time"

// ReplyEvent 在每次生成回复后发布到 Kafka，用于离线统计失败原因与延迟。
type ReplyEvent struct {
	ConversationID string    `json:"conversationId"`
	UserMessageID  string    `json:"userMessageId"`
	ReplyMessageID string    `json:"replyMessageId"`
	Outcome        string    `json:"outcome"`
	Model          string    `json:"model"`
	LatencyMS      int64     `json:"latencyMs"`
	OccurredAt     time.Time `json:"occurredAt"`
}
