package repository

import (
	"context"
	"errors"
	"testing"
	"time"

	"faq-support-go/internal/model"
)

func TestEnsureExistsIsIdempotent(t *testing.T) {
	store := NewMemoryStore()
	repo := store.Conversations()
	ctx := context.Background()

	for i := 0; i < 2; i++ {
		if err := repo.EnsureExists(ctx, "abc"); err != nil {
			t.Fatalf("EnsureExists err: %v", err)
		}
	}

	if got := store.ConversationCount(); got != 1 {
		t.Fatalf("expected exactly one conversation, got %d", got)
	}
}

func TestMessagesListedInCreationOrder(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()
	if err := store.Conversations().EnsureExists(ctx, "abc"); err != nil {
		t.Fatalf("EnsureExists err: %v", err)
	}

	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	// 故意乱序写入
	for _, m := range []model.Message{
		{ID: "2", ConversationID: "abc", Sender: model.SenderAI, Text: "second", CreatedAt: base.Add(time.Second)},
		{ID: "1", ConversationID: "abc", Sender: model.SenderUser, Text: "first", CreatedAt: base},
		{ID: "3", ConversationID: "abc", Sender: model.SenderUser, Text: "third", CreatedAt: base.Add(2 * time.Second)},
	} {
		m := m
		if err := store.Messages().Create(ctx, &m); err != nil {
			t.Fatalf("Create err: %v", err)
		}
	}

	got, err := store.Messages().ListByConversation(ctx, "abc")
	if err != nil {
		t.Fatalf("ListByConversation err: %v", err)
	}
	if len(got) != 3 {
		t.Fatalf("expected 3 messages, got %d", len(got))
	}
	for i, want := range []string{"first", "second", "third"} {
		if got[i].Text != want {
			t.Fatalf("message %d: got %q want %q", i, got[i].Text, want)
		}
	}
}

func TestListUnknownConversationIsEmpty(t *testing.T) {
	store := NewMemoryStore()

	got, err := store.Messages().ListByConversation(context.Background(), "does-not-exist")
	if err != nil {
		t.Fatalf("ListByConversation err: %v", err)
	}
	if got == nil || len(got) != 0 {
		t.Fatalf("expected empty non-nil slice, got %#v", got)
	}
}

func TestMessageRequiresConversation(t *testing.T) {
	store := NewMemoryStore()

	err := store.Messages().Create(context.Background(), &model.Message{ID: "1", ConversationID: "missing"})
	if !errors.Is(err, ErrConversationNotFound) {
		t.Fatalf("expected ErrConversationNotFound, got %v", err)
	}
}

func TestFAQsOrderedByCreation(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	err := store.FAQs().Create(ctx,
		&model.FAQ{ID: "b", Question: "Q2", Answer: "A2", CreatedAt: base.Add(time.Minute)},
		&model.FAQ{ID: "a", Question: "Q1", Answer: "A1", CreatedAt: base},
	)
	if err != nil {
		t.Fatalf("Create err: %v", err)
	}

	faqs, err := store.FAQs().ListOrdered(ctx)
	if err != nil {
		t.Fatalf("ListOrdered err: %v", err)
	}
	if len(faqs) != 2 || faqs[0].Question != "Q1" || faqs[1].Question != "Q2" {
		t.Fatalf("unexpected order: %#v", faqs)
	}
	if n, _ := store.FAQs().Count(ctx); n != 2 {
		t.Fatalf("expected count 2, got %d", n)
	}
}
