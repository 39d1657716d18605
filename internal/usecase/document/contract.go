package document

import (
	"context"
	"io"

	"github.com/prism-learn/prism/internal/domain"
)

// Notebooks verifies the parent notebook exists before any document work.
type Notebooks interface {
	Exists(ctx context.Context, id string) (bool, error)
}

// Repository defines the storage contract for document metadata.
type Repository interface {
	Create(ctx context.Context, doc domain.Document) error
	Get(ctx context.Context, notebookID, docID string) (domain.Document, error)
	FindByID(ctx context.Context, docID string) (domain.Document, error)
	ListByNotebook(ctx context.Context, notebookID string) ([]domain.Document, error)
	UpdateChunks(ctx context.Context, notebookID, docID string, chunks []string) error
	Delete(ctx context.Context, notebookID, docID string) error
}

// VectorStore indexes and removes embedded chunks.
type VectorStore interface {
	Upsert(ctx context.Context, records []domain.VectorRecord) error
	DeleteByDocument(ctx context.Context, docID string) (int, error)
}

// BlobStore persists PDF binaries.
type BlobStore interface {
	Put(ctx context.Context, notebookID, documentID string, r io.Reader, size int64) (string, error)
	Get(ctx context.Context, notebookID, documentID string) (io.ReadCloser, int64, error)
	Delete(ctx context.Context, notebookID, documentID string) error
}

// Embedder vectorizes extracted chunks.
type Embedder interface {
	BatchEmbed(ctx context.Context, texts []string) (domain.BatchEmbeddingResult, error)
}
