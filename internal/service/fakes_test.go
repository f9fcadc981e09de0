package service

import (
	"context"
	"errors"
	"sync"
	"time"

	"faq-support-go/internal/model"
	"faq-support-go/internal/repository"
	"faq-support-go/pkg/llm"
)

// scriptedProvider 返回预设回复，并记录每次调用收到的消息与 context。
type scriptedProvider struct {
	mu      sync.Mutex
	reply   string
	err     error
	calls   [][]llm.Message
	ctxs    []context.Context
	respond func(ctx context.Context, messages []llm.Message) (string, error)
}

func (p *scriptedProvider) Chat(ctx context.Context, messages []llm.Message) (string, error) {
	p.mu.Lock()
	p.calls = append(p.calls, append([]llm.Message(nil), messages...))
	p.ctxs = append(p.ctxs, ctx)
	respond := p.respond
	p.mu.Unlock()
	if respond != nil {
		return respond(ctx, messages)
	}
	return p.reply, p.err
}

func (p *scriptedProvider) Model() string { return "test-model" }

func (p *scriptedProvider) lastCall() []llm.Message {
	p.mu.Lock()
	defer p.mu.Unlock()
	if len(p.calls) == 0 {
		return nil
	}
	return p.calls[len(p.calls)-1]
}

func (p *scriptedProvider) callCount() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.calls)
}

// memoryReplyCache 是 ReplyCache 的内存实现。
type memoryReplyCache struct {
	mu      sync.Mutex
	entries map[string]repository.CachedReply
	ttls    map[string]time.Duration
}

func newMemoryReplyCache() *memoryReplyCache {
	return &memoryReplyCache{
		entries: make(map[string]repository.CachedReply),
		ttls:    make(map[string]time.Duration),
	}
}

func (c *memoryReplyCache) Get(_ context.Context, conversationID, key string) (*repository.CachedReply, bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	r, ok := c.entries[repository.ReplyKey(conversationID, key)]
	if !ok {
		return nil, false, nil
	}
	return &r, true, nil
}

func (c *memoryReplyCache) Put(_ context.Context, conversationID, key string, reply repository.CachedReply, ttl time.Duration) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[repository.ReplyKey(conversationID, key)] = reply
	c.ttls[repository.ReplyKey(conversationID, key)] = ttl
	return nil
}

type recordingPublisher struct {
	mu     sync.Mutex
	events []model.ReplyEvent
	err    error
}

func (p *recordingPublisher) PublishReply(_ context.Context, event model.ReplyEvent) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, event)
	return p.err
}

var errStorageDown = errors.New("storage down")

// failingMessages 包装一个 MessageRepository，按发送方让写入失败。
type failingMessages struct {
	repository.MessageRepository
	failSender string
	failList   bool
}

func (f failingMessages) Create(ctx context.Context, msg *model.Message) error {
	if msg.Sender == f.failSender {
		return errStorageDown
	}
	return f.MessageRepository.Create(ctx, msg)
}

func (f failingMessages) ListByConversation(ctx context.Context, conversationID string) ([]model.Message, error) {
	if f.failList {
		return nil, errStorageDown
	}
	return f.MessageRepository.ListByConversation(ctx, conversationID)
}

type failingConversations struct{}

func (failingConversations) EnsureExists(context.Context, string) error { return errStorageDown }
