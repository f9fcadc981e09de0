package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"faq-support-go/pkg/llm"
	"faq-support-go/pkg/log"
)

// Outcome 标记一次模型调用的结果类别，只用于日志与事件，不对用户展示。
type Outcome string

const (
	OutcomeOK            Outcome = "ok"
	OutcomeNotConfigured Outcome = "not_configured"
	OutcomeTimeout       Outcome = "timeout"
	OutcomeUnavailable   Outcome = "unavailable"
	OutcomeEmpty         Outcome = "empty"
)

// 模型无法给出有效回答时返回给用户的固定文案。
const (
	FallbackNotConfigured = "LLM is not configured (missing API key). Please set OPENAI_API_KEY on the server."
	FallbackTimeout       = "The AI took too long to respond. Please try again."
	FallbackUnavailable   = "The AI service is temporarily unavailable. Please try again in a moment."
	FallbackEmpty         = "I couldn't generate a reply. Please try again."
)

// Reply 是模型调用的结果。Text 总是可以直接持久化并展示。
type Reply struct {
	Text    string
	Outcome Outcome
	Err     error
}

// OK 表示 Text 来自模型本身。
func (r Reply) OK() bool { return r.Outcome == OutcomeOK }

// ModelInvoker 定义了带超时与兜底文案的模型调用。Invoke 不返回错误。
type ModelInvoker interface {
	Invoke(ctx context.Context, system string, history []llm.Message, userMessage string) Reply
	Model() string
}

type modelInvoker struct {
	provider llm.Provider
	timeout  time.Duration
}

// NewModelInvoker 创建一个新的 ModelInvoker。
func NewModelInvoker(provider llm.Provider, timeout time.Duration) ModelInvoker {
	return &modelInvoker{provider: provider, timeout: timeout}
}

func (m *modelInvoker) Model() string { return m.provider.Model() }

type completion struct {
	text string
	err  error
}

// Invoke 依次组装 system、历史与新的用户消息后调用模型。
func (m *modelInvoker) Invoke(ctx context.Context, system string, history []llm.Message, userMessage string) Reply {
	messages := make([]llm.Message, 0, len(history)+2)
	messages = append(messages, llm.Message{Role: llm.RoleSystem, Content: system})
	messages = append(messages, history...)
	messages = append(messages, llm.Message{Role: llm.RoleUser, Content: userMessage})

	callCtx, cancel := context.WithTimeout(ctx, m.timeout)
	defer cancel()

	// provider 不响应取消时也要按时返回；缓冲通道保证其 goroutine 能够退出
	done := make(chan completion, 1)
	go func() {
		text, err := m.provider.Chat(callCtx, messages)
		done <- completion{text: text, err: err}
	}()

	var res completion
	select {
	case res = <-done:
	case <-callCtx.Done():
		res = completion{err: callCtx.Err()}
	}

	reply := classify(res, callCtx.Err())
	if !reply.OK() {
		log.Warnw("[ModelInvoker] 模型调用未返回有效回答",
			"outcome", reply.Outcome,
			"model", m.provider.Model(),
			"error", reply.Err,
		)
	}
	return reply
}

func classify(res completion, ctxErr error) Reply {
	switch {
	case errors.Is(res.err, llm.ErrNotConfigured):
		return Reply{Text: FallbackNotConfigured, Outcome: OutcomeNotConfigured, Err: res.err}
	case res.err != nil && (ctxErr != nil || errors.Is(res.err, context.DeadlineExceeded) || errors.Is(res.err, context.Canceled)):
		return Reply{Text: FallbackTimeout, Outcome: OutcomeTimeout, Err: res.err}
	case res.err != nil:
		return Reply{Text: FallbackUnavailable, Outcome: OutcomeUnavailable, Err: res.err}
	}

	text := strings.TrimSpace(res.text)
	if text == "" {
		return Reply{Text: FallbackEmpty, Outcome: OutcomeEmpty}
	}
	return Reply{Text: text, Outcome: OutcomeOK}
}
