package note

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"

	"github.com/prism-learn/prism/internal/db"
	"github.com/prism-learn/prism/internal/domain"
)

// store is the consumer interface for notes (ISP).
type store interface {
	JSONSet(ctx context.Context, key, path string, data []byte) error
	JSONGet(ctx context.Context, key string, paths ...string) ([]byte, error)
	Del(ctx context.Context, key string) error
	Scan(ctx context.Context, pattern string) ([]string, error)
}

// Repo persists notes on RedisJSON. Keys follow
// {prefix}note:{notebook_id}:{note_id}; update and delete address a note by
// ID alone, so those scan with a wildcard notebook segment.
type Repo struct {
	store  store
	prefix string
}

// New creates a note repository.
func New(s store, prefix string) *Repo {
	if prefix == "" {
		prefix = domain.DefaultKeyPrefix
	}
	return &Repo{store: s, prefix: prefix}
}

// Create stores a note.
func (r *Repo) Create(ctx context.Context, n domain.Note) error {
	return r.put(ctx, n)
}

// Update overwrites an existing note located by ID.
func (r *Repo) Update(ctx context.Context, n domain.Note) error {
	existing, err := r.FindByID(ctx, n.ID)
	if err != nil {
		return err
	}
	n.NotebookID = existing.NotebookID
	n.CreatedAt = existing.CreatedAt
	return r.put(ctx, n)
}

// FindByID locates a note when only its ID is known.
func (r *Repo) FindByID(ctx context.Context, noteID string) (domain.Note, error) {
	keys, err := r.store.Scan(ctx, fmt.Sprintf("%snote:*:%s", r.prefix, noteID))
	if err != nil {
		return domain.Note{}, fmt.Errorf("scan note %s: %w", noteID, err)
	}
	if len(keys) == 0 {
		return domain.Note{}, domain.ErrNoteNotFound
	}

	raw, err := r.store.JSONGet(ctx, keys[0], "$")
	if err != nil {
		if errors.Is(err, db.ErrKeyNotFound) {
			return domain.Note{}, domain.ErrNoteNotFound
		}
		return domain.Note{}, fmt.Errorf("json.get %s: %w", keys[0], err)
	}
	return parseNote(raw)
}

// ListByNotebook returns a notebook's notes, newest first.
func (r *Repo) ListByNotebook(ctx context.Context, notebookID string) ([]domain.Note, error) {
	keys, err := r.store.Scan(ctx, r.key(notebookID, "*"))
	if err != nil {
		return nil, fmt.Errorf("scan notes: %w", err)
	}

	notes := make([]domain.Note, 0, len(keys))
	for _, key := range keys {
		raw, err := r.store.JSONGet(ctx, key, "$")
		if err != nil {
			if errors.Is(err, db.ErrKeyNotFound) {
				continue
			}
			return nil, fmt.Errorf("json.get %s: %w", key, err)
		}
		n, err := parseNote(raw)
		if err != nil {
			return nil, fmt.Errorf("parse %s: %w", key, err)
		}
		notes = append(notes, n)
	}

	sort.Slice(notes, func(i, j int) bool {
		return notes[i].CreatedAt > notes[j].CreatedAt
	})

	return notes, nil
}

// Delete removes a note located by ID.
func (r *Repo) Delete(ctx context.Context, noteID string) error {
	n, err := r.FindByID(ctx, noteID)
	if err != nil {
		return err
	}
	if err := r.store.Del(ctx, r.key(n.NotebookID, n.ID)); err != nil {
		return fmt.Errorf("del note %s: %w", noteID, err)
	}
	return nil
}

func (r *Repo) put(ctx context.Context, n domain.Note) error {
	data, err := json.Marshal(n)
	if err != nil {
		return fmt.Errorf("marshal note: %w", err)
	}
	if err := r.store.JSONSet(ctx, r.key(n.NotebookID, n.ID), "$", data); err != nil {
		return fmt.Errorf("json.set note %s: %w", n.ID, err)
	}
	return nil
}

func (r *Repo) key(notebookID, noteID string) string {
	return fmt.Sprintf("%snote:%s:%s", r.prefix, notebookID, noteID)
}

func parseNote(raw []byte) (domain.Note, error) {
	var items []domain.Note
	if err := json.Unmarshal(raw, &items); err != nil || len(items) == 0 {
		var n domain.Note
		if err2 := json.Unmarshal(raw, &n); err2 == nil {
			return n, nil
		}
		return domain.Note{}, fmt.Errorf("unmarshal note: %w", err)
	}
	return items[0], nil
}
