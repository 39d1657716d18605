package card

import (
	"context"

	"github.com/prism-learn/prism/internal/domain"
	"github.com/prism-learn/prism/internal/usecase/genai"
)

// Documents lists a notebook's documents with their cached chunks.
type Documents interface {
	ListByNotebook(ctx context.Context, notebookID string) ([]domain.Document, error)
}

// Chunker recovers a document's text chunks, re-extracting when the
// cache is empty.
type Chunker interface {
	EnsureChunks(ctx context.Context, doc domain.Document) []string
}

// Generator produces validated structured output from the LLM.
type Generator interface {
	Object(ctx context.Context, spec genai.Spec, out any) error
}

// Repository persists liked cards and folders.
type Repository interface {
	Save(ctx context.Context, c domain.SavedCard) error
	FindByCardID(ctx context.Context, notebookID, cardID string) (domain.SavedCard, error)
	FindByID(ctx context.Context, savedID string) (domain.SavedCard, error)
	ListByNotebook(ctx context.Context, notebookID string) ([]domain.SavedCard, error)
	DeleteByCardID(ctx context.Context, notebookID, cardID string) error
	CreateFolder(ctx context.Context, f domain.CardFolder) error
	ListFolders(ctx context.Context, notebookID string) ([]domain.CardFolder, error)
	FindFolderByID(ctx context.Context, folderID string) (domain.CardFolder, error)
	DeleteFolder(ctx context.Context, f domain.CardFolder) error
}
