// Package llm provides providers for the hosted language-model capability.
package llm

import (
	"context"
	"errors"
	"fmt"

	"faq-support-go/internal/config"
)

// Roles understood by every provider.
const (
	RoleSystem    = "system"
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// ErrNotConfigured is returned by the disabled provider when no credential is present.
var ErrNotConfigured = errors.New("llm provider is not configured")

// Message is one role-tagged turn sent to the model.
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// Provider is the remote completion capability: a list of turns in, one completion out.
type Provider interface {
	Chat(ctx context.Context, messages []Message) (string, error)
	// Model returns the model identifier used for requests.
	Model() string
}

// NewProvider selects the provider once at startup. A missing API key is a
// valid state and yields the disabled provider.
func NewProvider(ctx context.Context, cfg config.LLMConfig) (Provider, error) {
	if !cfg.Enabled() {
		return Disabled(), nil
	}
	switch cfg.Provider {
	case "openai":
		return NewOpenAIClient(cfg), nil
	case "ark":
		return NewArkProvider(ctx, cfg)
	default:
		return nil, fmt.Errorf("unsupported llm provider %q", cfg.Provider)
	}
}

type disabledProvider struct{}

// Disabled returns a provider that never performs I/O and always fails with ErrNotConfigured.
func Disabled() Provider { return disabledProvider{} }

func (disabledProvider) Chat(context.Context, []Message) (string, error) {
	return "", ErrNotConfigured
}

func (disabledProvider) Model() string { return "" }
