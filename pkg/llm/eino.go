package llm

import (
	"context"
	"fmt"

	"faq-support-go/internal/config"

	"github.com/cloudwego/eino-ext/components/model/ark"
	"github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/schema"
)

type chatModelProvider struct {
	chatModel model.BaseChatModel
	modelName string
}

// NewChatModelProvider adapts any eino chat model to Provider.
func NewChatModelProvider(chatModel model.BaseChatModel, modelName string) Provider {
	return &chatModelProvider{chatModel: chatModel, modelName: modelName}
}

// NewArkProvider builds a Volcengine Ark chat model through eino-ext.
func NewArkProvider(ctx context.Context, cfg config.LLMConfig) (Provider, error) {
	temperature := float32(cfg.Generation.Temperature)
	maxTokens := cfg.Generation.MaxTokens

	arkCfg := &ark.ChatModelConfig{
		BaseURL: cfg.ArkBaseURL,
		Region:  cfg.Region,
		APIKey:  cfg.APIKey,
		Model:   cfg.Model,
	}
	if temperature != 0 {
		arkCfg.Temperature = &temperature
	}
	if maxTokens != 0 {
		arkCfg.MaxTokens = &maxTokens
	}

	chatModel, err := ark.NewChatModel(ctx, arkCfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create ark chat model: %w", err)
	}
	return NewChatModelProvider(chatModel, cfg.Model), nil
}

func (p *chatModelProvider) Model() string { return p.modelName }

func (p *chatModelProvider) Chat(ctx context.Context, messages []Message) (string, error) {
	input := make([]*schema.Message, 0, len(messages))
	for _, m := range messages {
		switch m.Role {
		case RoleSystem:
			input = append(input, schema.SystemMessage(m.Content))
		case RoleAssistant:
			input = append(input, schema.AssistantMessage(m.Content, nil))
		default:
			input = append(input, schema.UserMessage(m.Content))
		}
	}

	resp, err := p.chatModel.Generate(ctx, input)
	if err != nil {
		return "", fmt.Errorf("failed to run chat model: %w", err)
	}
	if resp == nil {
		return "", nil
	}
	return resp.Content, nil
}
