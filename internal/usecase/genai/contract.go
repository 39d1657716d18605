package genai

import (
	"context"

	"github.com/prism-learn/prism/internal/domain"
)

// ChatModel produces chat completions.
type ChatModel interface {
	Chat(ctx context.Context, messages []domain.Message, opts domain.ChatOptions) (string, error)
}
