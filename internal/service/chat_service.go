// Package service 包含了应用的业务逻辑层。
package service

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"faq-support-go/internal/apperr"
	"faq-support-go/internal/config"
	"faq-support-go/internal/model"
	"faq-support-go/internal/repository"
	"faq-support-go/pkg/log"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
)

// MsgServerError 是存储层失败时返回给客户端的通用文案。
const MsgServerError = "Server error. Please try again."

// SendMessageInput 是一次入站聊天消息。
type SendMessageInput struct {
	Message   string
	SessionID string
	// IdempotencyKey 非空且配置了 Redis 时，相同键的重试直接返回首次结果。
	IdempotencyKey string
}

// SendMessageResult 是返回给客户端的回复与会话标识。
type SendMessageResult struct {
	Reply     string `json:"reply"`
	SessionID string `json:"sessionId"`
}

// HistoryResult 是会话的完整消息记录。
type HistoryResult struct {
	SessionID string          `json:"sessionId"`
	Messages  []model.Message `json:"messages"`
}

// EventPublisher 发布回复事件，失败不影响请求结果。
type EventPublisher interface {
	PublishReply(ctx context.Context, event model.ReplyEvent) error
}

// ChatService 定义了聊天操作的接口。
type ChatService interface {
	SendMessage(ctx context.Context, in SendMessageInput) (*SendMessageResult, error)
	GetHistory(ctx context.Context, sessionID string) (*HistoryResult, error)
}

type chatService struct {
	faqRepo          repository.FAQRepository
	conversationRepo repository.ConversationRepository
	messageRepo      repository.MessageRepository
	invoker          ModelInvoker
	publisher        EventPublisher
	replyCache       repository.ReplyCache
	cfg              config.ChatConfig
}

// NewChatService 创建一个新的 ChatService 实例。publisher 与 replyCache 可以为 nil。
func NewChatService(
	faqRepo repository.FAQRepository,
	conversationRepo repository.ConversationRepository,
	messageRepo repository.MessageRepository,
	invoker ModelInvoker,
	publisher EventPublisher,
	replyCache repository.ReplyCache,
	cfg config.ChatConfig,
) ChatService {
	return &chatService{
		faqRepo:          faqRepo,
		conversationRepo: conversationRepo,
		messageRepo:      messageRepo,
		invoker:          invoker,
		publisher:        publisher,
		replyCache:       replyCache,
		cfg:              cfg,
	}
}

// SendMessage 处理一条入站消息：校验、确保会话存在、保存用户消息、
// 并发加载 FAQ 与历史、调用模型、保存回复。
// 保存用户消息之后的任何失败都不会回滚该消息。
func (s *chatService) SendMessage(ctx context.Context, in SendMessageInput) (*SendMessageResult, error) {
	const op = "ChatService.SendMessage"

	// 1. 校验
	text, err := s.validateMessage(in.Message)
	if err != nil {
		return nil, apperr.E(apperr.CodeInvalidArgument, op, err.Error(), nil)
	}

	// 2. 会话标识；幂等记录按客户端提交的会话隔离
	requestedID := strings.TrimSpace(in.SessionID)
	replay := replayScope{
		conversationID: requestedID,
		key:            strings.TrimSpace(in.IdempotencyKey),
		messageHash:    hashMessage(text),
	}
	if cached := s.lookupReplay(ctx, replay); cached != nil {
		return cached, nil
	}

	conversationID := requestedID
	if conversationID == "" {
		conversationID = uuid.NewString()
	}

	// 3. 确保会话存在
	if err := s.conversationRepo.EnsureExists(ctx, conversationID); err != nil {
		return nil, s.storageFailure(op, "ensure conversation", conversationID, err)
	}

	// 4. 保存用户消息
	userMsg := newMessage(conversationID, model.SenderUser, text)
	if err := s.messageRepo.Create(ctx, userMsg); err != nil {
		return nil, s.storageFailure(op, "persist user message", conversationID, err)
	}

	// 5. 并发加载 FAQ 与完整历史
	var (
		faqs    []model.FAQ
		history []model.Message
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		faqs, err = s.faqRepo.ListOrdered(gctx)
		return err
	})
	g.Go(func() error {
		var err error
		history, err = s.messageRepo.ListByConversation(gctx, conversationID)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, s.storageFailure(op, "load context", conversationID, err)
	}

	// 6. 截取历史窗口并构建 system 指令
	window := SelectHistoryWindow(history, s.cfg.MaxHistoryMessages)
	system := BuildGroundingPrompt(faqs)

	// 7. 调用模型，失败时得到兜底文案
	start := time.Now()
	reply := s.invoker.Invoke(ctx, system, window, text)
	latency := time.Since(start)

	// 8. 保存回复；即使客户端已断开也要落库
	persistCtx := context.WithoutCancel(ctx)
	aiMsg := newMessage(conversationID, model.SenderAI, reply.Text)
	if err := s.messageRepo.Create(persistCtx, aiMsg); err != nil {
		return nil, s.storageFailure(op, "persist reply", conversationID, err)
	}

	log.Infow("[ChatService] 回复已保存",
		"conversationId", conversationID,
		"outcome", reply.Outcome,
		"faqCount", len(faqs),
		"historyWindow", len(window),
		"latency", latency.String(),
	)

	s.publish(persistCtx, model.ReplyEvent{
		ConversationID: conversationID,
		UserMessageID:  userMsg.ID,
		ReplyMessageID: aiMsg.ID,
		Outcome:        string(reply.Outcome),
		Model:          s.invoker.Model(),
		LatencyMS:      latency.Milliseconds(),
		OccurredAt:     aiMsg.CreatedAt,
	})

	result := &SendMessageResult{Reply: reply.Text, SessionID: conversationID}
	s.rememberReplay(persistCtx, replay, result)
	return result, nil
}

// GetHistory 返回会话的全部消息；会话不存在时返回空列表。
func (s *chatService) GetHistory(ctx context.Context, sessionID string) (*HistoryResult, error) {
	const op = "ChatService.GetHistory"

	sessionID = strings.TrimSpace(sessionID)
	if sessionID == "" {
		return nil, apperr.E(apperr.CodeInvalidArgument, op, "sessionId required", nil)
	}

	messages, err := s.messageRepo.ListByConversation(ctx, sessionID)
	if err != nil {
		return nil, s.storageFailure(op, "list messages", sessionID, err)
	}
	if messages == nil {
		messages = []model.Message{}
	}
	return &HistoryResult{SessionID: sessionID, Messages: messages}, nil
}

func (s *chatService) validateMessage(raw string) (string, error) {
	text := strings.TrimSpace(raw)
	if text == "" {
		return "", fmt.Errorf("Message cannot be empty")
	}
	if utf8.RuneCountInString(text) > s.cfg.MaxMessageChars {
		return "", fmt.Errorf("Message too long (max %d chars)", s.cfg.MaxMessageChars)
	}
	return text, nil
}

func (s *chatService) storageFailure(op, step, conversationID string, err error) error {
	log.Errorw("[ChatService] 存储操作失败",
		"op", op,
		"step", step,
		"conversationId", conversationID,
		"error", err,
	)
	return apperr.E(apperr.CodeInternal, op, MsgServerError, fmt.Errorf("%s: %w", step, err))
}

func (s *chatService) publish(ctx context.Context, event model.ReplyEvent) {
	if s.publisher == nil {
		return
	}
	if err := s.publisher.PublishReply(ctx, event); err != nil {
		log.Warnw("[ChatService] 发布回复事件失败", "conversationId", event.ConversationID, "error", err)
	}
}

// replayScope 标识一条幂等记录：客户端提交的会话、幂等键与消息摘要。
type replayScope struct {
	conversationID string
	key            string
	messageHash    string
}

func (s *chatService) lookupReplay(ctx context.Context, scope replayScope) *SendMessageResult {
	if scope.key == "" || s.replyCache == nil {
		return nil
	}
	cached, ok, err := s.replyCache.Get(ctx, scope.conversationID, scope.key)
	if err != nil {
		log.Warnw("[ChatService] 读取幂等记录失败", "key", scope.key, "error", err)
		return nil
	}
	if !ok {
		return nil
	}
	if cached.MessageHash != scope.messageHash {
		log.Warnw("[ChatService] 幂等键对应的消息不一致, 按新请求处理", "key", scope.key, "conversationId", scope.conversationID)
		return nil
	}
	log.Infow("[ChatService] 命中幂等记录, 直接返回", "key", scope.key, "conversationId", cached.SessionID)
	return &SendMessageResult{Reply: cached.Reply, SessionID: cached.SessionID}
}

func (s *chatService) rememberReplay(ctx context.Context, scope replayScope, result *SendMessageResult) {
	if scope.key == "" || s.replyCache == nil {
		return
	}
	ttl := time.Duration(s.cfg.IdempotencyTTLHours) * time.Hour
	record := repository.CachedReply{Reply: result.Reply, SessionID: result.SessionID, MessageHash: scope.messageHash}
	if err := s.replyCache.Put(ctx, scope.conversationID, scope.key, record, ttl); err != nil {
		log.Warnw("[ChatService] 写入幂等记录失败", "key", scope.key, "error", err)
	}
}

func hashMessage(text string) string {
	sum := sha256.Sum256([]byte(text))
	return hex.EncodeToString(sum[:])
}

// newMessage 生成一条带时间有序 ID 的消息。
func newMessage(conversationID, sender, text string) *model.Message {
	id, err := uuid.NewV7()
	if err != nil {
		id = uuid.New()
	}
	return &model.Message{
		ID:             id.String(),
		ConversationID: conversationID,
		Sender:         sender,
		Text:           text,
		CreatedAt:      time.Now().UTC(),
	}
}
