// Package model 包含了应用的数据模型定义。
package model

import "time"

// 消息发送方在存储中的取值。
const (
	SenderUser = "user"
	SenderAI   = "ai"
)

// Conversation 对应 conversations 表，只有标识和创建时间。
type Conversation struct {
	ID        string    `gorm:"type:varchar(64);primaryKey" json:"id"`
	CreatedAt time.Time `gorm:"precision:3;not null" json:"createdAt"`
}

func (Conversation) TableName() string {
	return "conversations"
}

// Message 代表会话中的一条消息，创建后不再修改。
type Message struct {
	ID             string    `gorm:"type:varchar(36);primaryKey" json:"id"`
	ConversationID string    `gorm:"type:varchar(64);not null;index:idx_messages_conversation_created,priority:1" json:"-"`
	Sender         string    `gorm:"type:varchar(8);not null" json:"sender"` // "user" 或 "ai"
	Text           string    `gorm:"type:text;not null" json:"text"`
	CreatedAt      time.Time `gorm:"precision:3;not null;index:idx_messages_conversation_created,priority:2" json:"createdAt"`
}

func (Message) TableName() string {
	return "messages"
}
