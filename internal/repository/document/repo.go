package document

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strconv"

	"github.com/prism-learn/prism/internal/db"
	"github.com/prism-learn/prism/internal/domain"
)

// store is the consumer interface for documents (ISP).
type store interface {
	JSONSet(ctx context.Context, key, path string, data []byte) error
	JSONGet(ctx context.Context, key string, paths ...string) ([]byte, error)
	Del(ctx context.Context, key string) error
	Exists(ctx context.Context, key string) (bool, error)
	Scan(ctx context.Context, pattern string) ([]string, error)
}

// Repo implements usecase document metadata storage on RedisJSON.
// Keys follow {prefix}doc:{notebook_id}:{document_id} so a notebook's
// documents can be listed with a single SCAN.
type Repo struct {
	store  store
	prefix string
}

// New creates a document repository.
func New(s store, prefix string) *Repo {
	if prefix == "" {
		prefix = domain.DefaultKeyPrefix
	}
	return &Repo{store: s, prefix: prefix}
}

// Create stores a document with its cached chunks.
func (r *Repo) Create(ctx context.Context, doc domain.Document) error {
	data, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("marshal document: %w", err)
	}
	key := r.key(doc.NotebookID, doc.ID)
	if err := r.store.JSONSet(ctx, key, "$", data); err != nil {
		return fmt.Errorf("json.set document %s: %w", doc.ID, err)
	}
	return nil
}

// Get returns a document by notebook and document ID.
func (r *Repo) Get(ctx context.Context, notebookID, docID string) (domain.Document, error) {
	raw, err := r.store.JSONGet(ctx, r.key(notebookID, docID), "$")
	if err != nil {
		if errors.Is(err, db.ErrKeyNotFound) {
			return domain.Document{}, domain.ErrDocumentNotFound
		}
		return domain.Document{}, fmt.Errorf("json.get document %s: %w", docID, err)
	}
	return parseDocument(raw)
}

// FindByID locates a document when only its ID is known (delete endpoint).
func (r *Repo) FindByID(ctx context.Context, docID string) (domain.Document, error) {
	keys, err := r.store.Scan(ctx, fmt.Sprintf("%sdoc:*:%s", r.prefix, docID))
	if err != nil {
		return domain.Document{}, fmt.Errorf("scan document %s: %w", docID, err)
	}
	if len(keys) == 0 {
		return domain.Document{}, domain.ErrDocumentNotFound
	}

	raw, err := r.store.JSONGet(ctx, keys[0], "$")
	if err != nil {
		if errors.Is(err, db.ErrKeyNotFound) {
			return domain.Document{}, domain.ErrDocumentNotFound
		}
		return domain.Document{}, fmt.Errorf("json.get %s: %w", keys[0], err)
	}
	return parseDocument(raw)
}

// ListByNotebook returns a notebook's documents, newest upload first.
func (r *Repo) ListByNotebook(ctx context.Context, notebookID string) ([]domain.Document, error) {
	keys, err := r.store.Scan(ctx, r.key(notebookID, "*"))
	if err != nil {
		return nil, fmt.Errorf("scan documents: %w", err)
	}

	docs := make([]domain.Document, 0, len(keys))
	for _, key := range keys {
		raw, err := r.store.JSONGet(ctx, key, "$")
		if err != nil {
			if errors.Is(err, db.ErrKeyNotFound) {
				continue
			}
			return nil, fmt.Errorf("json.get %s: %w", key, err)
		}
		doc, err := parseDocument(raw)
		if err != nil {
			return nil, fmt.Errorf("parse %s: %w", key, err)
		}
		docs = append(docs, doc)
	}

	sort.Slice(docs, func(i, j int) bool {
		return docs[i].UploadedAt > docs[j].UploadedAt
	})

	return docs, nil
}

// CountByNotebook returns the number of documents in a notebook.
func (r *Repo) CountByNotebook(ctx context.Context, notebookID string) (int, error) {
	keys, err := r.store.Scan(ctx, r.key(notebookID, "*"))
	if err != nil {
		return 0, fmt.Errorf("scan documents: %w", err)
	}
	return len(keys), nil
}

// UpdateChunks replaces a document's cached chunks in place.
func (r *Repo) UpdateChunks(ctx context.Context, notebookID, docID string, chunks []string) error {
	key := r.key(notebookID, docID)

	data, err := json.Marshal(chunks)
	if err != nil {
		return fmt.Errorf("marshal chunks: %w", err)
	}
	if err := r.store.JSONSet(ctx, key, "$.chunks", data); err != nil {
		if errors.Is(err, db.ErrKeyNotFound) {
			return domain.ErrDocumentNotFound
		}
		return fmt.Errorf("json.set chunks %s: %w", docID, err)
	}
	if err := r.store.JSONSet(ctx, key, "$.chunks_count", []byte(strconv.Itoa(len(chunks)))); err != nil {
		return fmt.Errorf("json.set chunks_count %s: %w", docID, err)
	}
	return nil
}

// Delete removes a document's metadata.
func (r *Repo) Delete(ctx context.Context, notebookID, docID string) error {
	key := r.key(notebookID, docID)

	exists, err := r.store.Exists(ctx, key)
	if err != nil {
		return fmt.Errorf("check exists document %s: %w", docID, err)
	}
	if !exists {
		return domain.ErrDocumentNotFound
	}

	if err := r.store.Del(ctx, key); err != nil {
		return fmt.Errorf("del document %s: %w", docID, err)
	}
	return nil
}

func (r *Repo) key(notebookID, docID string) string {
	return fmt.Sprintf("%sdoc:%s:%s", r.prefix, notebookID, docID)
}

// parseDocument unwraps the JSONPath array returned by JSON.GET $.
func parseDocument(raw []byte) (domain.Document, error) {
	var items []domain.Document
	if err := json.Unmarshal(raw, &items); err != nil {
		var doc domain.Document
		if err2 := json.Unmarshal(raw, &doc); err2 == nil {
			return doc, nil
		}
		return domain.Document{}, fmt.Errorf("unmarshal document: %w", err)
	}
	if len(items) == 0 {
		return domain.Document{}, domain.ErrDocumentNotFound
	}
	return items[0], nil
}
