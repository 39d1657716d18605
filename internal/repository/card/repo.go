package card

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"

	"github.com/prism-learn/prism/internal/db"
	"github.com/prism-learn/prism/internal/domain"
)

// store is the consumer interface for saved cards and folders (ISP).
type store interface {
	JSONSet(ctx context.Context, key, path string, data []byte) error
	JSONGet(ctx context.Context, key string, paths ...string) ([]byte, error)
	Del(ctx context.Context, key string) error
	Scan(ctx context.Context, pattern string) ([]string, error)
}

// Repo persists liked doomscroll cards and their folders.
type Repo struct {
	store  store
	prefix string
}

// New creates a card repository.
func New(s store, prefix string) *Repo {
	if prefix == "" {
		prefix = domain.DefaultKeyPrefix
	}
	return &Repo{store: s, prefix: prefix}
}

// Save stores a saved card (overwrites on same ID).
func (r *Repo) Save(ctx context.Context, c domain.SavedCard) error {
	data, err := json.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshal card: %w", err)
	}
	if err := r.store.JSONSet(ctx, r.cardKey(c.NotebookID, c.ID), "$", data); err != nil {
		return fmt.Errorf("json.set card %s: %w", c.ID, err)
	}
	return nil
}

// FindByCardID returns the saved copy of a generated card, if any.
// Like is idempotent on the generated card's ID, not the saved record's.
func (r *Repo) FindByCardID(ctx context.Context, notebookID, cardID string) (domain.SavedCard, error) {
	cards, err := r.ListByNotebook(ctx, notebookID)
	if err != nil {
		return domain.SavedCard{}, err
	}
	for _, c := range cards {
		if c.CardID == cardID {
			return c, nil
		}
	}
	return domain.SavedCard{}, domain.ErrCardNotFound
}

// FindByID locates a saved card by its record ID across notebooks.
func (r *Repo) FindByID(ctx context.Context, savedID string) (domain.SavedCard, error) {
	keys, err := r.store.Scan(ctx, fmt.Sprintf("%scard:*:%s", r.prefix, savedID))
	if err != nil {
		return domain.SavedCard{}, fmt.Errorf("scan card %s: %w", savedID, err)
	}
	if len(keys) == 0 {
		return domain.SavedCard{}, domain.ErrCardNotFound
	}
	return r.getCard(ctx, keys[0])
}

// ListByNotebook returns a notebook's saved cards, newest first.
func (r *Repo) ListByNotebook(ctx context.Context, notebookID string) ([]domain.SavedCard, error) {
	keys, err := r.store.Scan(ctx, r.cardKey(notebookID, "*"))
	if err != nil {
		return nil, fmt.Errorf("scan cards: %w", err)
	}

	cards := make([]domain.SavedCard, 0, len(keys))
	for _, key := range keys {
		c, err := r.getCard(ctx, key)
		if err != nil {
			if errors.Is(err, domain.ErrCardNotFound) {
				continue
			}
			return nil, err
		}
		cards = append(cards, c)
	}

	sort.Slice(cards, func(i, j int) bool {
		return cards[i].CreatedAt > cards[j].CreatedAt
	})

	return cards, nil
}

// DeleteByCardID removes a saved card addressed by the generated card's ID.
func (r *Repo) DeleteByCardID(ctx context.Context, notebookID, cardID string) error {
	c, err := r.FindByCardID(ctx, notebookID, cardID)
	if err != nil {
		return err
	}
	if err := r.store.Del(ctx, r.cardKey(notebookID, c.ID)); err != nil {
		return fmt.Errorf("del card %s: %w", c.ID, err)
	}
	return nil
}

// CreateFolder stores a card folder.
func (r *Repo) CreateFolder(ctx context.Context, f domain.CardFolder) error {
	data, err := json.Marshal(f)
	if err != nil {
		return fmt.Errorf("marshal folder: %w", err)
	}
	if err := r.store.JSONSet(ctx, r.folderKey(f.NotebookID, f.ID), "$", data); err != nil {
		return fmt.Errorf("json.set folder %s: %w", f.ID, err)
	}
	return nil
}

// ListFolders returns a notebook's folders, oldest first.
func (r *Repo) ListFolders(ctx context.Context, notebookID string) ([]domain.CardFolder, error) {
	keys, err := r.store.Scan(ctx, r.folderKey(notebookID, "*"))
	if err != nil {
		return nil, fmt.Errorf("scan folders: %w", err)
	}

	folders := make([]domain.CardFolder, 0, len(keys))
	for _, key := range keys {
		raw, err := r.store.JSONGet(ctx, key, "$")
		if err != nil {
			if errors.Is(err, db.ErrKeyNotFound) {
				continue
			}
			return nil, fmt.Errorf("json.get %s: %w", key, err)
		}
		f, err := parseFolder(raw)
		if err != nil {
			return nil, fmt.Errorf("parse %s: %w", key, err)
		}
		folders = append(folders, f)
	}

	sort.Slice(folders, func(i, j int) bool {
		return folders[i].CreatedAt < folders[j].CreatedAt
	})

	return folders, nil
}

// FindFolderByID locates a folder by ID across notebooks.
func (r *Repo) FindFolderByID(ctx context.Context, folderID string) (domain.CardFolder, error) {
	keys, err := r.store.Scan(ctx, fmt.Sprintf("%sfolder:*:%s", r.prefix, folderID))
	if err != nil {
		return domain.CardFolder{}, fmt.Errorf("scan folder %s: %w", folderID, err)
	}
	if len(keys) == 0 {
		return domain.CardFolder{}, domain.ErrFolderNotFound
	}

	raw, err := r.store.JSONGet(ctx, keys[0], "$")
	if err != nil {
		if errors.Is(err, db.ErrKeyNotFound) {
			return domain.CardFolder{}, domain.ErrFolderNotFound
		}
		return domain.CardFolder{}, fmt.Errorf("json.get %s: %w", keys[0], err)
	}
	return parseFolder(raw)
}

// DeleteFolder removes a folder.
func (r *Repo) DeleteFolder(ctx context.Context, f domain.CardFolder) error {
	if err := r.store.Del(ctx, r.folderKey(f.NotebookID, f.ID)); err != nil {
		return fmt.Errorf("del folder %s: %w", f.ID, err)
	}
	return nil
}

func (r *Repo) getCard(ctx context.Context, key string) (domain.SavedCard, error) {
	raw, err := r.store.JSONGet(ctx, key, "$")
	if err != nil {
		if errors.Is(err, db.ErrKeyNotFound) {
			return domain.SavedCard{}, domain.ErrCardNotFound
		}
		return domain.SavedCard{}, fmt.Errorf("json.get %s: %w", key, err)
	}

	var items []domain.SavedCard
	if err := json.Unmarshal(raw, &items); err != nil || len(items) == 0 {
		var c domain.SavedCard
		if err2 := json.Unmarshal(raw, &c); err2 == nil {
			return c, nil
		}
		return domain.SavedCard{}, fmt.Errorf("unmarshal card %s: %w", key, err)
	}
	return items[0], nil
}

func parseFolder(raw []byte) (domain.CardFolder, error) {
	var items []domain.CardFolder
	if err := json.Unmarshal(raw, &items); err != nil || len(items) == 0 {
		var f domain.CardFolder
		if err2 := json.Unmarshal(raw, &f); err2 == nil {
			return f, nil
		}
		return domain.CardFolder{}, fmt.Errorf("unmarshal folder: %w", err)
	}
	return items[0], nil
}

func (r *Repo) cardKey(notebookID, savedID string) string {
	return fmt.Sprintf("%scard:%s:%s", r.prefix, notebookID, savedID)
}

func (r *Repo) folderKey(notebookID, folderID string) string {
	return fmt.Sprintf("%sfolder:%s:%s", r.prefix, notebookID, folderID)
}
