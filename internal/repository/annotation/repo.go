package annotation

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"

	"github.com/prism-learn/prism/internal/db"
	"github.com/prism-learn/prism/internal/domain"
)

// store is the consumer interface for annotations (ISP).
type store interface {
	JSONSet(ctx context.Context, key, path string, data []byte) error
	JSONGet(ctx context.Context, key string, paths ...string) ([]byte, error)
	Del(ctx context.Context, key string) error
	Scan(ctx context.Context, pattern string) ([]string, error)
}

// Repo persists PDF annotations on RedisJSON under
// {prefix}ann:{notebook_id}:{annotation_id}.
type Repo struct {
	store  store
	prefix string
}

// New creates an annotation repository.
func New(s store, prefix string) *Repo {
	if prefix == "" {
		prefix = domain.DefaultKeyPrefix
	}
	return &Repo{store: s, prefix: prefix}
}

// Create stores an annotation.
func (r *Repo) Create(ctx context.Context, a domain.Annotation) error {
	return r.put(ctx, a)
}

// Update overwrites an existing annotation located by ID.
func (r *Repo) Update(ctx context.Context, a domain.Annotation) error {
	existing, err := r.FindByID(ctx, a.ID)
	if err != nil {
		return err
	}
	a.NotebookID = existing.NotebookID
	a.DocumentID = existing.DocumentID
	a.CreatedAt = existing.CreatedAt
	return r.put(ctx, a)
}

// FindByID locates an annotation when only its ID is known.
func (r *Repo) FindByID(ctx context.Context, annotationID string) (domain.Annotation, error) {
	keys, err := r.store.Scan(ctx, fmt.Sprintf("%sann:*:%s", r.prefix, annotationID))
	if err != nil {
		return domain.Annotation{}, fmt.Errorf("scan annotation %s: %w", annotationID, err)
	}
	if len(keys) == 0 {
		return domain.Annotation{}, domain.ErrAnnotationNotFound
	}

	raw, err := r.store.JSONGet(ctx, keys[0], "$")
	if err != nil {
		if errors.Is(err, db.ErrKeyNotFound) {
			return domain.Annotation{}, domain.ErrAnnotationNotFound
		}
		return domain.Annotation{}, fmt.Errorf("json.get %s: %w", keys[0], err)
	}
	return parseAnnotation(raw)
}

// ListByNotebook returns a notebook's annotations, optionally filtered by
// document, ordered by page then creation time.
func (r *Repo) ListByNotebook(ctx context.Context, notebookID, documentID string) ([]domain.Annotation, error) {
	keys, err := r.store.Scan(ctx, r.key(notebookID, "*"))
	if err != nil {
		return nil, fmt.Errorf("scan annotations: %w", err)
	}

	annotations := make([]domain.Annotation, 0, len(keys))
	for _, key := range keys {
		raw, err := r.store.JSONGet(ctx, key, "$")
		if err != nil {
			if errors.Is(err, db.ErrKeyNotFound) {
				continue
			}
			return nil, fmt.Errorf("json.get %s: %w", key, err)
		}
		a, err := parseAnnotation(raw)
		if err != nil {
			return nil, fmt.Errorf("parse %s: %w", key, err)
		}
		if documentID != "" && a.DocumentID != documentID {
			continue
		}
		annotations = append(annotations, a)
	}

	sort.Slice(annotations, func(i, j int) bool {
		if annotations[i].PageNumber != annotations[j].PageNumber {
			return annotations[i].PageNumber < annotations[j].PageNumber
		}
		return annotations[i].CreatedAt < annotations[j].CreatedAt
	})

	return annotations, nil
}

// Delete removes an annotation located by ID.
func (r *Repo) Delete(ctx context.Context, annotationID string) error {
	a, err := r.FindByID(ctx, annotationID)
	if err != nil {
		return err
	}
	if err := r.store.Del(ctx, r.key(a.NotebookID, a.ID)); err != nil {
		return fmt.Errorf("del annotation %s: %w", annotationID, err)
	}
	return nil
}

func (r *Repo) put(ctx context.Context, a domain.Annotation) error {
	data, err := json.Marshal(a)
	if err != nil {
		return fmt.Errorf("marshal annotation: %w", err)
	}
	if err := r.store.JSONSet(ctx, r.key(a.NotebookID, a.ID), "$", data); err != nil {
		return fmt.Errorf("json.set annotation %s: %w", a.ID, err)
	}
	return nil
}

func (r *Repo) key(notebookID, annotationID string) string {
	return fmt.Sprintf("%sann:%s:%s", r.prefix, notebookID, annotationID)
}

func parseAnnotation(raw []byte) (domain.Annotation, error) {
	var items []domain.Annotation
	if err := json.Unmarshal(raw, &items); err != nil || len(items) == 0 {
		var a domain.Annotation
		if err2 := json.Unmarshal(raw, &a); err2 == nil {
			return a, nil
		}
		return domain.Annotation{}, fmt.Errorf("unmarshal annotation: %w", err)
	}
	return items[0], nil
}
