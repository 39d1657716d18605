package document

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/prism-learn/prism/internal/chunk"
	"github.com/prism-learn/prism/internal/domain"
	"github.com/prism-learn/prism/internal/extract"
)

// Config tunes the ingest pipeline.
type Config struct {
	ChunkSize    int
	ChunkOverlap int
}

// Service handles the document lifecycle: ingest (extract, chunk, embed,
// index), listing, raw PDF access and removal.
type Service struct {
	notebooks Notebooks
	repo      Repository
	vectors   VectorStore
	blobs     BlobStore
	embedder  Embedder
	logger    *zap.Logger

	chunkSize    int
	chunkOverlap int

	now         func() time.Time
	newID       func() string
	extractText func(filename string, data []byte) (string, error)
}

// New creates a document service. Zero config fields fall back to the
// package chunk defaults.
func New(notebooks Notebooks, repo Repository, vectors VectorStore, blobs BlobStore, embedder Embedder, cfg Config, logger *zap.Logger) *Service {
	if cfg.ChunkSize <= 0 {
		cfg.ChunkSize = chunk.DefaultSize
	}
	if cfg.ChunkOverlap <= 0 {
		cfg.ChunkOverlap = chunk.DefaultOverlap
	}
	return &Service{
		notebooks:    notebooks,
		repo:         repo,
		vectors:      vectors,
		blobs:        blobs,
		embedder:     embedder,
		logger:       logger,
		chunkSize:    cfg.ChunkSize,
		chunkOverlap: cfg.ChunkOverlap,
		now:          time.Now,
		newID:        uuid.NewString,
		extractText:  extractText,
	}
}

// UploadFile is one incoming file from a multipart upload.
type UploadFile struct {
	Filename string
	Data     []byte
}

// Upload ingests PDFs into a notebook: extract text, split into chunks,
// store the binary and metadata, then embed and index the chunks best
// effort. A single non-PDF file fails the whole request.
func (s *Service) Upload(ctx context.Context, notebookID string, files []UploadFile) ([]domain.Document, error) {
	if err := s.requireNotebook(ctx, notebookID); err != nil {
		return nil, err
	}

	uploaded := make([]domain.Document, 0, len(files))
	for _, f := range files {
		if !strings.HasSuffix(strings.ToLower(f.Filename), ".pdf") {
			return nil, fmt.Errorf("%s is %w", f.Filename, domain.ErrNotPDF)
		}

		doc, err := s.ingest(ctx, notebookID, f)
		if err != nil {
			return nil, fmt.Errorf("ingest %s: %w", f.Filename, err)
		}

		doc.Chunks = nil
		doc.FilePath = ""
		uploaded = append(uploaded, doc)
	}
	return uploaded, nil
}

func (s *Service) ingest(ctx context.Context, notebookID string, f UploadFile) (domain.Document, error) {
	text, err := s.extractText(f.Filename, f.Data)
	if err != nil {
		return domain.Document{}, err
	}

	chunks, err := chunk.Split(text, s.chunkSize, s.chunkOverlap)
	if err != nil {
		return domain.Document{}, fmt.Errorf("split text: %w", err)
	}

	docID := s.newID()
	path, err := s.blobs.Put(ctx, notebookID, docID, bytes.NewReader(f.Data), int64(len(f.Data)))
	if err != nil {
		return domain.Document{}, fmt.Errorf("store pdf: %w", err)
	}

	doc := domain.Document{
		ID:          docID,
		NotebookID:  notebookID,
		Filename:    f.Filename,
		UploadedAt:  domain.FormatTime(s.now()),
		ChunksCount: len(chunks),
		Chunks:      chunks,
		FilePath:    path,
	}
	if err := s.repo.Create(ctx, doc); err != nil {
		return domain.Document{}, fmt.Errorf("save metadata: %w", err)
	}

	s.indexChunks(ctx, doc, chunks)

	s.logger.Info("document ingested",
		zap.String("notebook_id", notebookID),
		zap.String("doc_id", docID),
		zap.String("filename", f.Filename),
		zap.Int("chunks", len(chunks)))
	return doc, nil
}

// indexChunks embeds and upserts a document's chunks. Indexing is best
// effort: when the batch embed fails, each chunk is retried on its own and
// failed chunks are skipped. The document record stays either way; a
// degraded document can still be re-indexed or read, so the upload must
// not fail because of it.
func (s *Service) indexChunks(ctx context.Context, doc domain.Document, chunks []string) {
	if len(chunks) == 0 {
		return
	}

	records := make([]domain.VectorRecord, 0, len(chunks))

	batch, err := s.embedder.BatchEmbed(ctx, chunks)
	if err == nil && len(batch.Embeddings) == len(chunks) {
		for i, text := range chunks {
			records = append(records, s.record(doc, i, text, batch.Embeddings[i]))
		}
	} else {
		s.logger.Warn("batch embed failed, retrying per chunk",
			zap.String("doc_id", doc.ID), zap.Int("chunks", len(chunks)), zap.Error(err))
		for i, text := range chunks {
			single, err := s.embedder.BatchEmbed(ctx, []string{text})
			if err != nil || len(single.Embeddings) != 1 {
				s.logger.Warn("embed chunk failed, skipping",
					zap.String("doc_id", doc.ID), zap.Int("chunk_index", i), zap.Error(err))
				continue
			}
			records = append(records, s.record(doc, i, text, single.Embeddings[0]))
		}
	}

	if len(records) == 0 {
		s.logger.Warn("document stored without vectors",
			zap.String("doc_id", doc.ID), zap.Int("chunks", len(chunks)))
		return
	}

	if err := s.vectors.Upsert(ctx, records); err != nil {
		s.logger.Warn("index chunks failed",
			zap.String("doc_id", doc.ID), zap.Int("records", len(records)), zap.Error(err))
	}
}

func (s *Service) record(doc domain.Document, i int, text string, vector []float32) domain.VectorRecord {
	return domain.VectorRecord{
		ID:         fmt.Sprintf("%s_%d", doc.ID, i),
		DocID:      doc.ID,
		NotebookID: doc.NotebookID,
		Filename:   doc.Filename,
		ChunkIndex: i,
		Text:       text,
		Vector:     vector,
	}
}

// List returns a notebook's documents, newest first, without cached chunks.
func (s *Service) List(ctx context.Context, notebookID string) ([]domain.Document, error) {
	if err := s.requireNotebook(ctx, notebookID); err != nil {
		return nil, err
	}

	docs, err := s.repo.ListByNotebook(ctx, notebookID)
	if err != nil {
		return nil, fmt.Errorf("list documents: %w", err)
	}
	for i := range docs {
		docs[i].Chunks = nil
		docs[i].FilePath = ""
	}
	return docs, nil
}

// GetPDF opens a document's stored binary for streaming. The caller closes
// the reader. The returned filename is the original upload name.
func (s *Service) GetPDF(ctx context.Context, notebookID, docID string) (io.ReadCloser, int64, string, error) {
	doc, err := s.repo.Get(ctx, notebookID, docID)
	if err != nil {
		return nil, 0, "", fmt.Errorf("get document: %w", err)
	}

	rc, size, err := s.blobs.Get(ctx, notebookID, docID)
	if err != nil {
		return nil, 0, "", fmt.Errorf("open pdf: %w", err)
	}
	return rc, size, doc.Filename, nil
}

// Delete removes a document by ID alone. The binary and the vectors go
// best effort; the metadata delete is the one that must succeed.
func (s *Service) Delete(ctx context.Context, docID string) error {
	doc, err := s.repo.FindByID(ctx, docID)
	if err != nil {
		return fmt.Errorf("find document: %w", err)
	}

	if err := s.blobs.Delete(ctx, doc.NotebookID, doc.ID); err != nil {
		s.logger.Warn("delete pdf failed",
			zap.String("doc_id", doc.ID), zap.Error(err))
	}

	deleted, err := s.vectors.DeleteByDocument(ctx, doc.ID)
	if err != nil {
		s.logger.Warn("delete vectors failed",
			zap.String("doc_id", doc.ID), zap.Int("deleted", deleted), zap.Error(err))
	}

	if err := s.repo.Delete(ctx, doc.NotebookID, doc.ID); err != nil {
		return fmt.Errorf("delete document: %w", err)
	}
	return nil
}

// EnsureChunks returns a document's text chunks, re-extracting from the
// stored PDF when the cache is empty. Re-extraction is best effort: any
// failure yields no chunks rather than an error, and a successful
// re-extraction is persisted back when possible.
func (s *Service) EnsureChunks(ctx context.Context, doc domain.Document) []string {
	if len(doc.Chunks) > 0 {
		return doc.Chunks
	}

	rc, size, err := s.blobs.Get(ctx, doc.NotebookID, doc.ID)
	if err != nil {
		s.logger.Warn("reopen pdf failed",
			zap.String("doc_id", doc.ID), zap.Error(err))
		return nil
	}
	defer rc.Close()

	data, err := io.ReadAll(io.LimitReader(rc, size))
	if err != nil {
		s.logger.Warn("reread pdf failed",
			zap.String("doc_id", doc.ID), zap.Error(err))
		return nil
	}

	text, err := s.extractText(doc.Filename, data)
	if err != nil {
		s.logger.Warn("re-extract failed",
			zap.String("doc_id", doc.ID), zap.Error(err))
		return nil
	}

	chunks, err := chunk.Split(text, s.chunkSize, s.chunkOverlap)
	if err != nil || len(chunks) == 0 {
		return nil
	}

	if err := s.repo.UpdateChunks(ctx, doc.NotebookID, doc.ID, chunks); err != nil {
		s.logger.Warn("persist re-extracted chunks failed",
			zap.String("doc_id", doc.ID), zap.Error(err))
	}
	return chunks
}

func extractText(filename string, data []byte) (string, error) {
	ext, err := extract.ByExtension(filename)
	if err != nil {
		return "", err
	}
	text, err := ext.Extract(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("extract text: %w", err)
	}
	return text, nil
}

func (s *Service) requireNotebook(ctx context.Context, notebookID string) error {
	ok, err := s.notebooks.Exists(ctx, notebookID)
	if err != nil {
		return fmt.Errorf("check notebook: %w", err)
	}
	if !ok {
		return domain.ErrNotebookNotFound
	}
	return nil
}
