// Package repository 提供了数据访问层的实现。
package repository

import (
	"context"
	"fmt"
	"time"

	"faq-support-go/internal/model"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ConversationRepository 定义了会话记录的操作接口。
type ConversationRepository interface {
	// EnsureExists 在会话不存在时创建它，已存在时不做任何事。
	EnsureExists(ctx context.Context, conversationID string) error
}

type gormConversationRepository struct {
	db *gorm.DB
}

// NewConversationRepository 创建一个新的 ConversationRepository 实例。
func NewConversationRepository(db *gorm.DB) ConversationRepository {
	return &gormConversationRepository{db: db}
}

func (r *gormConversationRepository) EnsureExists(ctx context.Context, conversationID string) error {
	conv := model.Conversation{ID: conversationID, CreatedAt: time.Now().UTC()}
	err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(&conv).Error
	if err != nil {
		return fmt.Errorf("failed to upsert conversation %s: %w", conversationID, err)
	}
	return nil
}
