package admin

import (
	"context"
	"fmt"

	"go.uber.org/zap"
)

// Service performs destructive maintenance across every store.
type Service struct {
	wiper    Wiper
	blobs    BlobStore
	flushers []Flusher
	logger   *zap.Logger
}

// New creates an admin service.
func New(wiper Wiper, blobs BlobStore, flushers []Flusher, logger *zap.Logger) *Service {
	return &Service{wiper: wiper, blobs: blobs, flushers: flushers, logger: logger}
}

// ClearResult reports what a wipe removed.
type ClearResult struct {
	Message     string `json:"message"`
	KeysDeleted int    `json:"keys_deleted"`
}

// ClearAll wipes metadata and vectors, stored binaries, and pending
// artifacts. Vector records live under the same key prefix as metadata,
// so a namespace wipe removes both; the FT index stays defined, empty.
func (s *Service) ClearAll(ctx context.Context) (ClearResult, error) {
	deleted, err := s.wiper.WipeAll(ctx)
	if err != nil {
		return ClearResult{}, fmt.Errorf("wipe namespace: %w", err)
	}

	if err := s.blobs.DeleteAll(ctx); err != nil {
		return ClearResult{}, fmt.Errorf("delete binaries: %w", err)
	}

	for _, f := range s.flushers {
		f.Clear()
	}

	s.logger.Info("all data cleared", zap.Int("keys_deleted", deleted))

	return ClearResult{Message: "All documents cleared successfully", KeysDeleted: deleted}, nil
}
