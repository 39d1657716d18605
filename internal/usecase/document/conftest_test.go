package document

import (
	"context"
	"io"

	"github.com/prism-learn/prism/internal/domain"
)

type mockNotebooks struct {
	existsFn func(ctx context.Context, id string) (bool, error)
}

func (m *mockNotebooks) Exists(ctx context.Context, id string) (bool, error) {
	if m.existsFn != nil {
		return m.existsFn(ctx, id)
	}
	return true, nil
}

type mockRepo struct {
	createFn         func(ctx context.Context, doc domain.Document) error
	getFn            func(ctx context.Context, notebookID, docID string) (domain.Document, error)
	findByIDFn       func(ctx context.Context, docID string) (domain.Document, error)
	listByNotebookFn func(ctx context.Context, notebookID string) ([]domain.Document, error)
	updateChunksFn   func(ctx context.Context, notebookID, docID string, chunks []string) error
	deleteFn         func(ctx context.Context, notebookID, docID string) error
}

func (m *mockRepo) Create(ctx context.Context, doc domain.Document) error {
	if m.createFn != nil {
		return m.createFn(ctx, doc)
	}
	return nil
}

func (m *mockRepo) Get(ctx context.Context, notebookID, docID string) (domain.Document, error) {
	if m.getFn != nil {
		return m.getFn(ctx, notebookID, docID)
	}
	return domain.Document{}, domain.ErrDocumentNotFound
}

func (m *mockRepo) FindByID(ctx context.Context, docID string) (domain.Document, error) {
	if m.findByIDFn != nil {
		return m.findByIDFn(ctx, docID)
	}
	return domain.Document{}, domain.ErrDocumentNotFound
}

func (m *mockRepo) ListByNotebook(ctx context.Context, notebookID string) ([]domain.Document, error) {
	if m.listByNotebookFn != nil {
		return m.listByNotebookFn(ctx, notebookID)
	}
	return nil, nil
}

func (m *mockRepo) UpdateChunks(ctx context.Context, notebookID, docID string, chunks []string) error {
	if m.updateChunksFn != nil {
		return m.updateChunksFn(ctx, notebookID, docID, chunks)
	}
	return nil
}

func (m *mockRepo) Delete(ctx context.Context, notebookID, docID string) error {
	if m.deleteFn != nil {
		return m.deleteFn(ctx, notebookID, docID)
	}
	return nil
}

type mockVectors struct {
	upsertFn           func(ctx context.Context, records []domain.VectorRecord) error
	deleteByDocumentFn func(ctx context.Context, docID string) (int, error)
}

func (m *mockVectors) Upsert(ctx context.Context, records []domain.VectorRecord) error {
	if m.upsertFn != nil {
		return m.upsertFn(ctx, records)
	}
	return nil
}

func (m *mockVectors) DeleteByDocument(ctx context.Context, docID string) (int, error) {
	if m.deleteByDocumentFn != nil {
		return m.deleteByDocumentFn(ctx, docID)
	}
	return 0, nil
}

type mockBlobs struct {
	putFn    func(ctx context.Context, notebookID, documentID string, r io.Reader, size int64) (string, error)
	getFn    func(ctx context.Context, notebookID, documentID string) (io.ReadCloser, int64, error)
	deleteFn func(ctx context.Context, notebookID, documentID string) error
}

func (m *mockBlobs) Put(ctx context.Context, notebookID, documentID string, r io.Reader, size int64) (string, error) {
	if m.putFn != nil {
		return m.putFn(ctx, notebookID, documentID, r, size)
	}
	return notebookID + "/" + documentID + ".pdf", nil
}

func (m *mockBlobs) Get(ctx context.Context, notebookID, documentID string) (io.ReadCloser, int64, error) {
	if m.getFn != nil {
		return m.getFn(ctx, notebookID, documentID)
	}
	return nil, 0, domain.ErrFileNotFound
}

func (m *mockBlobs) Delete(ctx context.Context, notebookID, documentID string) error {
	if m.deleteFn != nil {
		return m.deleteFn(ctx, notebookID, documentID)
	}
	return nil
}

type mockEmbedder struct {
	batchEmbedFn func(ctx context.Context, texts []string) (domain.BatchEmbeddingResult, error)
}

func (m *mockEmbedder) BatchEmbed(ctx context.Context, texts []string) (domain.BatchEmbeddingResult, error) {
	if m.batchEmbedFn != nil {
		return m.batchEmbedFn(ctx, texts)
	}
	embeddings := make([][]float32, len(texts))
	for i := range embeddings {
		embeddings[i] = []float32{0.1, 0.2}
	}
	return domain.BatchEmbeddingResult{Embeddings: embeddings}, nil
}
