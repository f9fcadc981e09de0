package seed_test

import (
	"context"
	"strings"
	"sync"
	"testing"
	"time"

	"faq-support-go/internal/config"
	"faq-support-go/internal/repository"
	"faq-support-go/internal/seed"
	"faq-support-go/internal/service"
	"faq-support-go/pkg/llm"
)

const shippingAnswer = "We ship within India in 1–3 business days. International shipping (USA/UK/EU) takes 7–12 business days. Orders over ₹1999 ship free in India."

type recordingProvider struct {
	mu    sync.Mutex
	calls [][]llm.Message
}

func (p *recordingProvider) Chat(_ context.Context, messages []llm.Message) (string, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.calls = append(p.calls, messages)
	return shippingAnswer, nil
}

func (p *recordingProvider) Model() string { return "test-model" }

func TestShippingQuestionWithBuiltinFAQs(t *testing.T) {
	ctx := context.Background()
	store := repository.NewMemoryStore()
	if _, err := service.NewFAQService(store.FAQs()).SeedIfEmpty(ctx, seed.Builtin()); err != nil {
		t.Fatalf("seed: %v", err)
	}

	provider := &recordingProvider{}
	cfg := config.ChatConfig{MaxHistoryMessages: 18, MaxMessageChars: 2000, IdempotencyTTLHours: 24}
	svc := service.NewChatService(store.FAQs(), store.Conversations(), store.Messages(),
		service.NewModelInvoker(provider, time.Second), nil, nil, cfg)

	res, err := svc.SendMessage(ctx, service.SendMessageInput{Message: "How long does shipping take?"})
	if err != nil {
		t.Fatalf("SendMessage: %v", err)
	}
	if res.SessionID == "" || res.Reply != shippingAnswer {
		t.Fatalf("unexpected result %+v", res)
	}

	if len(provider.calls) != 1 {
		t.Fatalf("expected one model call, got %d", len(provider.calls))
	}
	sent := provider.calls[0]
	system := sent[0].Content
	if !strings.Contains(system, "QUESTION: What is your shipping policy?\nOFFICIAL ANSWER: "+shippingAnswer) {
		t.Fatalf("shipping FAQ missing from system instruction")
	}
	if last := sent[len(sent)-1]; last.Role != llm.RoleUser || last.Content != "How long does shipping take?" {
		t.Fatalf("last model message must be the user turn, got %+v", last)
	}

	hist, err := svc.GetHistory(ctx, res.SessionID)
	if err != nil {
		t.Fatalf("GetHistory: %v", err)
	}
	if len(hist.Messages) != 2 ||
		hist.Messages[0].Sender != "user" || hist.Messages[0].Text != "How long does shipping take?" ||
		hist.Messages[1].Sender != "ai" || hist.Messages[1].Text != shippingAnswer {
		t.Fatalf("unexpected history %+v", hist.Messages)
	}
}
