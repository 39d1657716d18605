package openai

import (
	"context"
	"fmt"
	"net/http"
	"time"

	openai "github.com/sashabaranov/go-openai"
	"go.uber.org/zap"

	"github.com/prism-learn/prism/internal/domain"
	"github.com/prism-learn/prism/internal/metrics"
)

// ChatModel is a chat completion provider using the OpenAI-compatible API
// (Groq in the default deployment).
type ChatModel struct {
	client *openai.Client
	model  string
	logger *zap.Logger
}

// ChatConfig holds the chat completion provider settings.
type ChatConfig struct {
	APIKey  string
	BaseURL string
	Model   string
	Timeout time.Duration // per-request cap, 0 = no client timeout
	Logger  *zap.Logger
}

// NewChatModel creates an OpenAI-compatible chat completion provider.
func NewChatModel(cfg *ChatConfig) *ChatModel {
	clientCfg := openai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		clientCfg.BaseURL = cfg.BaseURL
	}
	if cfg.Timeout > 0 {
		clientCfg.HTTPClient = &http.Client{Timeout: cfg.Timeout}
	}

	return &ChatModel{
		client: openai.NewClientWithConfig(clientCfg),
		model:  cfg.Model,
		logger: cfg.Logger,
	}
}

// Chat implements domain.ChatModel. Returns the first choice's content.
func (m *ChatModel) Chat(ctx context.Context, messages []domain.Message, opts domain.ChatOptions) (string, error) {
	task := opts.Task
	if task == "" {
		task = "chat"
	}

	req := openai.ChatCompletionRequest{
		Model:       m.model,
		Messages:    toOpenAIMessages(messages),
		Temperature: opts.Temperature,
	}
	if opts.MaxTokens > 0 {
		req.MaxTokens = opts.MaxTokens
	}

	start := time.Now()

	resp, err := m.client.CreateChatCompletion(ctx, req)

	duration := time.Since(start)

	if err != nil {
		metrics.LLMRequestsTotal.WithLabelValues(m.model, task, "error").Inc()
		return "", parseAPIError(err, "chat", domain.ErrLLMProviderError)
	}

	if len(resp.Choices) == 0 {
		metrics.LLMRequestsTotal.WithLabelValues(m.model, task, "error").Inc()
		return "", fmt.Errorf("empty chat completion response: %w", domain.ErrLLMProviderError)
	}

	metrics.LLMRequestsTotal.WithLabelValues(m.model, task, "success").Inc()
	metrics.LLMRequestDuration.WithLabelValues(m.model, task).Observe(duration.Seconds())

	return resp.Choices[0].Message.Content, nil
}

// HealthCheck verifies API availability via ListModels (free endpoint).
func (m *ChatModel) HealthCheck(ctx context.Context) error {
	if _, err := m.client.ListModels(ctx); err != nil {
		return fmt.Errorf("list models: %w", err)
	}
	return nil
}

func toOpenAIMessages(messages []domain.Message) []openai.ChatCompletionMessage {
	out := make([]openai.ChatCompletionMessage, 0, len(messages))
	for _, msg := range messages {
		out = append(out, openai.ChatCompletionMessage{
			Role:    msg.Role,
			Content: msg.Content,
		})
	}
	return out
}
