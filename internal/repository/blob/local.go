package blob

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/prism-learn/prism/internal/domain"
)

// Local stores files on the local filesystem under a base directory.
type Local struct {
	dir string
}

// NewLocal creates a disk-backed blob store rooted at dir.
func NewLocal(dir string) (*Local, error) {
	if dir == "" {
		return nil, fmt.Errorf("blob dir is required")
	}
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return nil, fmt.Errorf("create blob dir: %w", err)
	}
	return &Local{dir: dir}, nil
}

// Put implements Store.
func (l *Local) Put(_ context.Context, notebookID, documentID string, r io.Reader, _ int64) (string, error) {
	path := l.path(notebookID, documentID)

	if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
		return "", fmt.Errorf("create notebook dir: %w", err)
	}

	f, err := os.Create(filepath.Clean(path))
	if err != nil {
		return "", fmt.Errorf("create file: %w", err)
	}
	defer f.Close()

	if _, err := io.Copy(f, r); err != nil {
		return "", fmt.Errorf("write file: %w", err)
	}
	return path, nil
}

// Get implements Store.
func (l *Local) Get(_ context.Context, notebookID, documentID string) (io.ReadCloser, int64, error) {
	path := l.path(notebookID, documentID)

	f, err := os.Open(filepath.Clean(path))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, 0, domain.ErrFileNotFound
		}
		return nil, 0, fmt.Errorf("open file: %w", err)
	}

	info, err := f.Stat()
	if err != nil {
		f.Close()
		return nil, 0, fmt.Errorf("stat file: %w", err)
	}
	return f, info.Size(), nil
}

// Delete implements Store.
func (l *Local) Delete(_ context.Context, notebookID, documentID string) error {
	err := os.Remove(l.path(notebookID, documentID))
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("remove file: %w", err)
	}
	return nil
}

// DeleteAll implements Store. The base directory itself is kept.
func (l *Local) DeleteAll(_ context.Context) error {
	entries, err := os.ReadDir(l.dir)
	if err != nil {
		return fmt.Errorf("read blob dir: %w", err)
	}
	for _, e := range entries {
		if err := os.RemoveAll(filepath.Join(l.dir, e.Name())); err != nil {
			return fmt.Errorf("remove %s: %w", e.Name(), err)
		}
	}
	return nil
}

func (l *Local) path(notebookID, documentID string) string {
	return filepath.Join(l.dir, filepath.FromSlash(objectName(notebookID, documentID)))
}
