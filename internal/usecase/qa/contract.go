package qa

import (
	"context"

	"github.com/prism-learn/prism/internal/domain"
)

// Retriever finds the chunks most similar to a question.
type Retriever interface {
	Retrieve(ctx context.Context, scope domain.Scope, query string, topK int) ([]domain.ChunkMatch, error)
}

// History persists a notebook's Q&A conversation.
type History interface {
	Append(ctx context.Context, notebookID string, msgs ...domain.ChatMessage) error
	List(ctx context.Context, notebookID string) ([]domain.ChatMessage, error)
	Clear(ctx context.Context, notebookID string) error
}
