package repository

import (
	"context"
	"fmt"

	"faq-support-go/internal/model"

	"gorm.io/gorm"
)

// MessageRepository 定义了消息的持久化操作。消息只追加，不修改。
type MessageRepository interface {
	Create(ctx context.Context, msg *model.Message) error
	// ListByConversation 按创建时间升序返回会话的全部消息，会话不存在时返回空切片。
	ListByConversation(ctx context.Context, conversationID string) ([]model.Message, error)
}

type gormMessageRepository struct {
	db *gorm.DB
}

// NewMessageRepository 创建一个新的 MessageRepository 实例。
func NewMessageRepository(db *gorm.DB) MessageRepository {
	return &gormMessageRepository{db: db}
}

func (r *gormMessageRepository) Create(ctx context.Context, msg *model.Message) error {
	if err := r.db.WithContext(ctx).Create(msg).Error; err != nil {
		return fmt.Errorf("failed to create message: %w", err)
	}
	return nil
}

func (r *gormMessageRepository) ListByConversation(ctx context.Context, conversationID string) ([]model.Message, error) {
	messages := []model.Message{}
	// ID 为时间有序的 UUIDv7，同一毫秒内也能保持写入顺序
	err := r.db.WithContext(ctx).
		Where("conversation_id = ?", conversationID).
		Order("created_at ASC").
		Order("id ASC").
		Find(&messages).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list messages for %s: %w", conversationID, err)
	}
	return messages, nil
}
