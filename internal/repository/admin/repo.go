package admin

import (
	"context"
	"fmt"

	"github.com/prism-learn/prism/internal/domain"
)

// store is the consumer interface for maintenance operations (ISP).
type store interface {
	Scan(ctx context.Context, pattern string) ([]string, error)
	DelMulti(ctx context.Context, keys []string) error
}

// deleteBatch caps one pipelined DEL during a wipe.
const deleteBatch = 500

// Repo performs maintenance operations across the whole key namespace.
type Repo struct {
	store  store
	prefix string
}

// New creates an admin repository.
func New(s store, prefix string) *Repo {
	if prefix == "" {
		prefix = domain.DefaultKeyPrefix
	}
	return &Repo{store: s, prefix: prefix}
}

// WipeAll deletes every key under the application prefix and returns the
// number of keys removed. The FT index definition itself is left in place;
// it simply becomes empty.
func (r *Repo) WipeAll(ctx context.Context) (int, error) {
	keys, err := r.store.Scan(ctx, r.prefix+"*")
	if err != nil {
		return 0, fmt.Errorf("scan namespace: %w", err)
	}

	deleted := 0
	for start := 0; start < len(keys); start += deleteBatch {
		end := min(start+deleteBatch, len(keys))
		if err := r.store.DelMulti(ctx, keys[start:end]); err != nil {
			return deleted, fmt.Errorf("del batch at %d: %w", start, err)
		}
		deleted += end - start
	}
	return deleted, nil
}
