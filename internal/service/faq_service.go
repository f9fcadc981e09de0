package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"faq-support-go/internal/apperr"
	"faq-support-go/internal/model"
	"faq-support-go/internal/repository"
	"faq-support-go/pkg/log"

	"github.com/google/uuid"
)

// FAQInput 是一条待写入的问答。
type FAQInput struct {
	Question string `json:"question"`
	Answer   string `json:"answer"`
}

// FAQService 管理 FAQ 集合。聊天请求每次都会重新读取该集合。
type FAQService interface {
	List(ctx context.Context) ([]model.FAQ, error)
	Create(ctx context.Context, in FAQInput) (*model.FAQ, error)
	// SeedIfEmpty 仅在 FAQ 表为空时写入 entries，返回实际写入条数。
	SeedIfEmpty(ctx context.Context, entries []FAQInput) (int, error)
}

type faqService struct {
	faqRepo repository.FAQRepository
	now     func() time.Time
}

// NewFAQService 创建一个新的 FAQService 实例。
func NewFAQService(faqRepo repository.FAQRepository) FAQService {
	return &faqService{faqRepo: faqRepo, now: time.Now}
}

func (s *faqService) List(ctx context.Context) ([]model.FAQ, error) {
	faqs, err := s.faqRepo.ListOrdered(ctx)
	if err != nil {
		return nil, apperr.E(apperr.CodeInternal, "FAQService.List", MsgServerError, err)
	}
	return faqs, nil
}

func (s *faqService) Create(ctx context.Context, in FAQInput) (*model.FAQ, error) {
	const op = "FAQService.Create"

	entry, err := normalizeFAQ(in)
	if err != nil {
		return nil, apperr.E(apperr.CodeInvalidArgument, op, err.Error(), nil)
	}
	f := newFAQ(entry, s.now().UTC())
	if err := s.faqRepo.Create(ctx, f); err != nil {
		return nil, apperr.E(apperr.CodeInternal, op, MsgServerError, err)
	}
	log.Infof("[FAQService] 新增 FAQ, id: %s", f.ID)
	return f, nil
}

func (s *faqService) SeedIfEmpty(ctx context.Context, entries []FAQInput) (int, error) {
	total, err := s.faqRepo.Count(ctx)
	if err != nil {
		return 0, fmt.Errorf("count faqs: %w", err)
	}
	if total > 0 {
		log.Infof("[FAQService] FAQ 表已有 %d 条记录, 跳过初始化", total)
		return 0, nil
	}

	// 逐条递增创建时间，保证读取顺序与种子顺序一致
	base := s.now().UTC()
	faqs := make([]*model.FAQ, 0, len(entries))
	for i, e := range entries {
		entry, err := normalizeFAQ(e)
		if err != nil {
			return 0, fmt.Errorf("seed entry %d: %w", i, err)
		}
		faqs = append(faqs, newFAQ(entry, base.Add(time.Duration(i)*time.Millisecond)))
	}
	if err := s.faqRepo.Create(ctx, faqs...); err != nil {
		return 0, fmt.Errorf("insert seed faqs: %w", err)
	}
	log.Infof("[FAQService] 已写入 %d 条初始 FAQ", len(faqs))
	return len(faqs), nil
}

// normalizeFAQ 只检查问题与答案非空，不改动答案内容。
func normalizeFAQ(in FAQInput) (FAQInput, error) {
	q := strings.TrimSpace(in.Question)
	if q == "" {
		return in, fmt.Errorf("question required")
	}
	if strings.TrimSpace(in.Answer) == "" {
		return in, fmt.Errorf("answer required")
	}
	return FAQInput{Question: q, Answer: in.Answer}, nil
}

func newFAQ(in FAQInput, createdAt time.Time) *model.FAQ {
	id, err := uuid.NewV7()
	if err != nil {
		id = uuid.New()
	}
	return &model.FAQ{ID: id.String(), Question: in.Question, Answer: in.Answer, CreatedAt: createdAt}
}
