package chat

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/prism-learn/prism/internal/db"
	"github.com/prism-learn/prism/internal/domain"
)

// store is the consumer interface for chat history (ISP).
type store interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Del(ctx context.Context, key string) error
}

// Repo persists a notebook's Q&A history as one JSON array value.
// History is small and append-mostly, so read-modify-write is fine here.
type Repo struct {
	store  store
	prefix string
}

// New creates a chat history repository.
func New(s store, prefix string) *Repo {
	if prefix == "" {
		prefix = domain.DefaultKeyPrefix
	}
	return &Repo{store: s, prefix: prefix}
}

// Append adds messages to a notebook's history.
func (r *Repo) Append(ctx context.Context, notebookID string, msgs ...domain.ChatMessage) error {
	history, err := r.List(ctx, notebookID)
	if err != nil {
		return err
	}

	history = append(history, msgs...)
	data, err := json.Marshal(history)
	if err != nil {
		return fmt.Errorf("marshal history: %w", err)
	}
	if err := r.store.Set(ctx, r.key(notebookID), data); err != nil {
		return fmt.Errorf("set history %s: %w", notebookID, err)
	}
	return nil
}

// List returns a notebook's history. A notebook with no history yields an
// empty slice, not an error.
func (r *Repo) List(ctx context.Context, notebookID string) ([]domain.ChatMessage, error) {
	raw, err := r.store.Get(ctx, r.key(notebookID))
	if err != nil {
		if errors.Is(err, db.ErrKeyNotFound) {
			return []domain.ChatMessage{}, nil
		}
		return nil, fmt.Errorf("get history %s: %w", notebookID, err)
	}

	var history []domain.ChatMessage
	if err := json.Unmarshal(raw, &history); err != nil {
		return nil, fmt.Errorf("unmarshal history %s: %w", notebookID, err)
	}
	return history, nil
}

// Clear removes a notebook's history. Clearing an empty history is a no-op.
func (r *Repo) Clear(ctx context.Context, notebookID string) error {
	if err := r.store.Del(ctx, r.key(notebookID)); err != nil {
		return fmt.Errorf("del history %s: %w", notebookID, err)
	}
	return nil
}

func (r *Repo) key(notebookID string) string {
	return fmt.Sprintf("%schat:%s", r.prefix, notebookID)
}
