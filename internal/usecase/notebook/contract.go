package notebook

import (
	"context"

	"github.com/prism-learn/prism/internal/domain"
)

// Repository defines the storage contract for notebooks.
type Repository interface {
	Create(ctx context.Context, nb domain.Notebook) error
	Get(ctx context.Context, id string) (domain.Notebook, error)
	List(ctx context.Context) ([]domain.Notebook, error)
	Update(ctx context.Context, nb domain.Notebook) error
	Delete(ctx context.Context, id string) error
}

// DocumentRepository reads and removes a notebook's document metadata.
type DocumentRepository interface {
	ListByNotebook(ctx context.Context, notebookID string) ([]domain.Document, error)
	CountByNotebook(ctx context.Context, notebookID string) (int, error)
	Delete(ctx context.Context, notebookID, docID string) error
}

// VectorStore removes a notebook's embedded chunks.
type VectorStore interface {
	DeleteByNotebook(ctx context.Context, notebookID string) (int, error)
}

// BlobStore removes stored PDF binaries.
type BlobStore interface {
	Delete(ctx context.Context, notebookID, documentID string) error
}
