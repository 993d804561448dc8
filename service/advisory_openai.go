package service

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"strings"

	openai "github.com/sashabaranov/go-openai"

	"github.com/ludo-technologies/jrev/domain"
	"github.com/ludo-technologies/jrev/internal/config"
)

// OpenAIAdvisoryClient consults an OpenAI-compatible chat completion API
type OpenAIAdvisoryClient struct {
	client *openai.Client
	model  string
}

const openAISystemPrompt = "You are a senior Java code reviewer. Follow the response format the user asks for exactly."

// NewOpenAIAdvisoryClient creates an OpenAI-backed advisory client.
// The API key is read from OPENAI_API_KEY.
func NewOpenAIAdvisoryClient(cfg *config.AdvisoryConfig) (*OpenAIAdvisoryClient, error) {
	apiKey := strings.TrimSpace(os.Getenv("OPENAI_API_KEY"))
	if apiKey == "" {
		return nil, domain.NewConfigError("OPENAI_API_KEY environment variable not set", nil)
	}

	clientCfg := openai.DefaultConfig(apiKey)
	if cfg.BaseURL != "" && cfg.BaseURL != config.DefaultAdvisoryBaseURL {
		clientCfg.BaseURL = cfg.BaseURL
	}

	slog.Debug("initializing OpenAI advisory client", "model", cfg.Model)
	return &OpenAIAdvisoryClient{
		client: openai.NewClientWithConfig(clientCfg),
		model:  cfg.Model,
	}, nil
}

// Invoke implements domain.AdvisoryClient
func (o *OpenAIAdvisoryClient) Invoke(ctx context.Context, prompt string) (string, error) {
	req := openai.ChatCompletionRequest{
		Model: o.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: openAISystemPrompt},
			{Role: openai.ChatMessageRoleUser, Content: prompt},
		},
	}

	resp, err := o.client.CreateChatCompletion(ctx, req)
	if err != nil {
		slog.Error("OpenAI API call failed", "error", err)
		return "", domain.NewAdvisoryError("OpenAI API call failed", err)
	}
	if len(resp.Choices) == 0 {
		slog.Warn("OpenAI returned no choices")
		return "", domain.NewAdvisoryError("OpenAI returned no choices", nil)
	}

	slog.Debug("received response from OpenAI", "finish_reason", resp.Choices[0].FinishReason)
	return resp.Choices[0].Message.Content, nil
}

// NewAdvisoryClient builds the advisory client selected by the config
func NewAdvisoryClient(cfg *config.AdvisoryConfig) (domain.AdvisoryClient, error) {
	switch cfg.Backend {
	case "ollama":
		return NewOllamaAdvisoryClient(cfg), nil
	case "openai":
		return NewOpenAIAdvisoryClient(cfg)
	default:
		return nil, domain.NewConfigError(fmt.Sprintf("unknown advisory backend '%s'", cfg.Backend), nil)
	}
}
