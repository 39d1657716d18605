package interview

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/prism-learn/prism/internal/db"
	"github.com/prism-learn/prism/internal/domain"
)

// store is the consumer interface for interview sessions (ISP).
type store interface {
	JSONSet(ctx context.Context, key, path string, data []byte) error
	JSONGet(ctx context.Context, key string, paths ...string) ([]byte, error)
	Del(ctx context.Context, key string) error
}

// Repo persists interview sessions on RedisJSON under {prefix}iv:{session_id}.
type Repo struct {
	store  store
	prefix string
}

// New creates an interview session repository.
func New(s store, prefix string) *Repo {
	if prefix == "" {
		prefix = domain.DefaultKeyPrefix
	}
	return &Repo{store: s, prefix: prefix}
}

// Save stores a session (create or overwrite).
func (r *Repo) Save(ctx context.Context, session domain.InterviewSession) error {
	data, err := json.Marshal(session)
	if err != nil {
		return fmt.Errorf("marshal session: %w", err)
	}
	if err := r.store.JSONSet(ctx, r.key(session.ID), "$", data); err != nil {
		return fmt.Errorf("json.set session %s: %w", session.ID, err)
	}
	return nil
}

// Get returns a session by ID.
func (r *Repo) Get(ctx context.Context, sessionID string) (domain.InterviewSession, error) {
	raw, err := r.store.JSONGet(ctx, r.key(sessionID), "$")
	if err != nil {
		if errors.Is(err, db.ErrKeyNotFound) {
			return domain.InterviewSession{}, domain.ErrSessionNotFound
		}
		return domain.InterviewSession{}, fmt.Errorf("json.get session %s: %w", sessionID, err)
	}

	var items []domain.InterviewSession
	if err := json.Unmarshal(raw, &items); err != nil || len(items) == 0 {
		var s domain.InterviewSession
		if err2 := json.Unmarshal(raw, &s); err2 == nil {
			return s, nil
		}
		return domain.InterviewSession{}, fmt.Errorf("unmarshal session %s: %w", sessionID, err)
	}
	return items[0], nil
}

// Delete removes a session.
func (r *Repo) Delete(ctx context.Context, sessionID string) error {
	if err := r.store.Del(ctx, r.key(sessionID)); err != nil {
		return fmt.Errorf("del session %s: %w", sessionID, err)
	}
	return nil
}

func (r *Repo) key(sessionID string) string {
	return fmt.Sprintf("%siv:%s", r.prefix, sessionID)
}
