package repository

import (
	"context"
	"sort"
	"sync"
	"time"

	"faq-support-go/internal/model"
)

// MemoryStore 是进程内的存储实现，适用于本地开发和测试。
// 三类记录共享同一把锁，单条记录的写入是原子的。
type MemoryStore struct {
	mu            sync.RWMutex
	faqs          []model.FAQ
	conversations map[string]model.Conversation
	messages      map[string][]model.Message
}

// NewMemoryStore 创建一个空的内存存储。
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		conversations: make(map[string]model.Conversation),
		messages:      make(map[string][]model.Message),
	}
}

// FAQs 返回基于该存储的 FAQRepository。
func (s *MemoryStore) FAQs() FAQRepository { return memoryFAQRepository{s} }

// Conversations 返回基于该存储的 ConversationRepository。
func (s *MemoryStore) Conversations() ConversationRepository { return memoryConversationRepository{s} }

// Messages 返回基于该存储的 MessageRepository。
func (s *MemoryStore) Messages() MessageRepository { return memoryMessageRepository{s} }

// ConversationCount 返回已创建的会话数量。
func (s *MemoryStore) ConversationCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.conversations)
}

// MessageCount 返回所有会话中的消息总数。
func (s *MemoryStore) MessageCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	total := 0
	for _, msgs := range s.messages {
		total += len(msgs)
	}
	return total
}

type memoryFAQRepository struct{ s *MemoryStore }

func (r memoryFAQRepository) ListOrdered(_ context.Context) ([]model.FAQ, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	faqs := make([]model.FAQ, len(r.s.faqs))
	copy(faqs, r.s.faqs)
	sort.SliceStable(faqs, func(i, j int) bool {
		return faqs[i].CreatedAt.Before(faqs[j].CreatedAt)
	})
	return faqs, nil
}

func (r memoryFAQRepository) Count(_ context.Context) (int64, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	return int64(len(r.s.faqs)), nil
}

func (r memoryFAQRepository) Create(_ context.Context, faqs ...*model.FAQ) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, f := range faqs {
		r.s.faqs = append(r.s.faqs, *f)
	}
	return nil
}

type memoryConversationRepository struct{ s *MemoryStore }

func (r memoryConversationRepository) EnsureExists(_ context.Context, conversationID string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.conversations[conversationID]; ok {
		return nil
	}
	r.s.conversations[conversationID] = model.Conversation{ID: conversationID, CreatedAt: time.Now().UTC()}
	return nil
}

type memoryMessageRepository struct{ s *MemoryStore }

func (r memoryMessageRepository) Create(_ context.Context, msg *model.Message) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.conversations[msg.ConversationID]; !ok {
		return ErrConversationNotFound
	}
	r.s.messages[msg.ConversationID] = append(r.s.messages[msg.ConversationID], *msg)
	return nil
}

func (r memoryMessageRepository) ListByConversation(_ context.Context, conversationID string) ([]model.Message, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	stored := r.s.messages[conversationID]
	messages := make([]model.Message, len(stored))
	copy(messages, stored)
	sort.SliceStable(messages, func(i, j int) bool {
		return messages[i].CreatedAt.Before(messages[j].CreatedAt)
	})
	return messages, nil
}
