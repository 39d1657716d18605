package admin

import "context"

// Wiper deletes every key in the application's namespace.
type Wiper interface {
	WipeAll(ctx context.Context) (int, error)
}

// BlobStore removes stored binaries.
type BlobStore interface {
	DeleteAll(ctx context.Context) error
}

// Flusher drops pending in-memory artifacts (quiz and test answer keys).
type Flusher interface {
	Clear()
}
