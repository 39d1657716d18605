package note

import (
	"context"

	"github.com/prism-learn/prism/internal/domain"
)

// Repository defines the storage contract for notes.
type Repository interface {
	Create(ctx context.Context, n domain.Note) error
	Update(ctx context.Context, n domain.Note) error
	FindByID(ctx context.Context, noteID string) (domain.Note, error)
	ListByNotebook(ctx context.Context, notebookID string) ([]domain.Note, error)
	Delete(ctx context.Context, noteID string) error
}

// Retriever finds the chunks most similar to a topic query.
type Retriever interface {
	Retrieve(ctx context.Context, scope domain.Scope, query string, topK int) ([]domain.ChunkMatch, error)
}
