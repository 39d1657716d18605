package domain

import "context"

// LLM chat roles.
const (
	RoleSystem    = "system"
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// Message is a single turn sent to the chat model.
type Message struct {
	Role    string
	Content string
}

// ChatOptions tune a single chat completion call. Task names the calling
// operation (ask, quiz, interview, ...) and is used as a metrics label only.
type ChatOptions struct {
	Temperature float32
	MaxTokens   int
	Task        string
}

// ChatModel is the shared LLM chat completion contract between layers.
type ChatModel interface {
	Chat(ctx context.Context, messages []Message, opts ChatOptions) (string, error)
}
