package repository

import (
	"context"
	"fmt"

	"faq-support-go/internal/model"

	"gorm.io/gorm"
)

// FAQRepository 定义了 FAQ 数据的持久化操作。
type FAQRepository interface {
	// ListOrdered 按创建顺序返回全部 FAQ。
	ListOrdered(ctx context.Context) ([]model.FAQ, error)
	Count(ctx context.Context) (int64, error)
	Create(ctx context.Context, faqs ...*model.FAQ) error
}

type gormFAQRepository struct {
	db *gorm.DB
}

// NewFAQRepository 创建一个新的 FAQRepository 实例。
func NewFAQRepository(db *gorm.DB) FAQRepository {
	return &gormFAQRepository{db: db}
}

func (r *gormFAQRepository) ListOrdered(ctx context.Context) ([]model.FAQ, error) {
	faqs := []model.FAQ{}
	err := r.db.WithContext(ctx).Order("created_at ASC").Order("id ASC").Find(&faqs).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list faqs: %w", err)
	}
	return faqs, nil
}

func (r *gormFAQRepository) Count(ctx context.Context) (int64, error) {
	var total int64
	if err := r.db.WithContext(ctx).Model(&model.FAQ{}).Count(&total).Error; err != nil {
		return 0, fmt.Errorf("failed to count faqs: %w", err)
	}
	return total, nil
}

func (r *gormFAQRepository) Create(ctx context.Context, faqs ...*model.FAQ) error {
	if len(faqs) == 0 {
		return nil
	}
	if err := r.db.WithContext(ctx).Create(faqs).Error; err != nil {
		return fmt.Errorf("failed to create faqs: %w", err)
	}
	return nil
}
