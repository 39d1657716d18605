package notebook

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"

	"github.com/prism-learn/prism/internal/db"
	"github.com/prism-learn/prism/internal/domain"
)

// store is the consumer interface for notebooks (ISP).
type store interface {
	JSONSet(ctx context.Context, key, path string, data []byte) error
	JSONGet(ctx context.Context, key string, paths ...string) ([]byte, error)
	Del(ctx context.Context, key string) error
	Exists(ctx context.Context, key string) (bool, error)
	Scan(ctx context.Context, pattern string) ([]string, error)
}

// Repo implements usecase notebook storage on RedisJSON.
type Repo struct {
	store  store
	prefix string
}

// New creates a notebook repository.
func New(s store, prefix string) *Repo {
	if prefix == "" {
		prefix = domain.DefaultKeyPrefix
	}
	return &Repo{store: s, prefix: prefix}
}

// Create stores a new notebook.
func (r *Repo) Create(ctx context.Context, nb domain.Notebook) error {
	data, err := json.Marshal(nb)
	if err != nil {
		return fmt.Errorf("marshal notebook: %w", err)
	}
	if err := r.store.JSONSet(ctx, r.key(nb.ID), "$", data); err != nil {
		return fmt.Errorf("json.set notebook %s: %w", nb.ID, err)
	}
	return nil
}

// Get returns a notebook by ID.
func (r *Repo) Get(ctx context.Context, id string) (domain.Notebook, error) {
	raw, err := r.store.JSONGet(ctx, r.key(id), "$")
	if err != nil {
		if errors.Is(err, db.ErrKeyNotFound) {
			return domain.Notebook{}, domain.ErrNotebookNotFound
		}
		return domain.Notebook{}, fmt.Errorf("json.get notebook %s: %w", id, err)
	}
	return parseNotebook(raw)
}

// List returns all notebooks sorted by CreatedAt descending (newest first).
func (r *Repo) List(ctx context.Context) ([]domain.Notebook, error) {
	keys, err := r.store.Scan(ctx, r.key("*"))
	if err != nil {
		return nil, fmt.Errorf("scan notebooks: %w", err)
	}

	notebooks := make([]domain.Notebook, 0, len(keys))
	for _, key := range keys {
		raw, err := r.store.JSONGet(ctx, key, "$")
		if err != nil {
			if errors.Is(err, db.ErrKeyNotFound) {
				continue
			}
			return nil, fmt.Errorf("json.get %s: %w", key, err)
		}
		nb, err := parseNotebook(raw)
		if err != nil {
			return nil, fmt.Errorf("parse %s: %w", key, err)
		}
		notebooks = append(notebooks, nb)
	}

	sort.Slice(notebooks, func(i, j int) bool {
		return notebooks[i].CreatedAt > notebooks[j].CreatedAt
	})

	return notebooks, nil
}

// Update overwrites an existing notebook.
func (r *Repo) Update(ctx context.Context, nb domain.Notebook) error {
	exists, err := r.store.Exists(ctx, r.key(nb.ID))
	if err != nil {
		return fmt.Errorf("check exists notebook %s: %w", nb.ID, err)
	}
	if !exists {
		return domain.ErrNotebookNotFound
	}
	return r.Create(ctx, nb)
}

// Delete removes a notebook.
func (r *Repo) Delete(ctx context.Context, id string) error {
	exists, err := r.store.Exists(ctx, r.key(id))
	if err != nil {
		return fmt.Errorf("check exists notebook %s: %w", id, err)
	}
	if !exists {
		return domain.ErrNotebookNotFound
	}
	if err := r.store.Del(ctx, r.key(id)); err != nil {
		return fmt.Errorf("json.del notebook %s: %w", id, err)
	}
	return nil
}

// Exists reports whether a notebook exists.
func (r *Repo) Exists(ctx context.Context, id string) (bool, error) {
	exists, err := r.store.Exists(ctx, r.key(id))
	if err != nil {
		return false, fmt.Errorf("check exists notebook %s: %w", id, err)
	}
	return exists, nil
}

func (r *Repo) key(id string) string {
	return fmt.Sprintf("%snb:%s", r.prefix, id)
}

// parseNotebook unwraps the JSONPath array returned by JSON.GET $.
func parseNotebook(raw []byte) (domain.Notebook, error) {
	var items []domain.Notebook
	if err := json.Unmarshal(raw, &items); err != nil {
		// Not wrapped in an array (root path get on older servers).
		var nb domain.Notebook
		if err2 := json.Unmarshal(raw, &nb); err2 == nil {
			return nb, nil
		}
		return domain.Notebook{}, fmt.Errorf("unmarshal notebook: %w", err)
	}
	if len(items) == 0 {
		return domain.Notebook{}, domain.ErrNotebookNotFound
	}
	return items[0], nil
}
