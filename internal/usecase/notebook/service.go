package notebook

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/prism-learn/prism/internal/domain"
)

// Service handles notebook CRUD with live document counts and cascade delete.
type Service struct {
	repo    Repository
	docs    DocumentRepository
	vectors VectorStore
	blobs   BlobStore
	logger  *zap.Logger

	now   func() time.Time
	newID func() string
}

// New creates a notebook service.
func New(repo Repository, docs DocumentRepository, vectors VectorStore, blobs BlobStore, logger *zap.Logger) *Service {
	return &Service{
		repo:    repo,
		docs:    docs,
		vectors: vectors,
		blobs:   blobs,
		logger:  logger,
		now:     time.Now,
		newID:   uuid.NewString,
	}
}

// CreateParams are the user-supplied notebook attributes.
type CreateParams struct {
	Name  string
	Color string
	Icon  string
}

// Create stores a new notebook. Color and icon default when empty.
func (s *Service) Create(ctx context.Context, p CreateParams) (domain.Notebook, error) {
	if p.Name == "" {
		return domain.Notebook{}, fmt.Errorf("notebook name is required: %w", domain.ErrInvalidInput)
	}
	if p.Color == "" {
		p.Color = domain.DefaultNotebookColor
	}
	if p.Icon == "" {
		p.Icon = domain.DefaultNotebookIcon
	}

	nb := domain.Notebook{
		ID:        s.newID(),
		Name:      p.Name,
		Color:     p.Color,
		Icon:      p.Icon,
		CreatedAt: domain.FormatTime(s.now()),
	}

	if err := s.repo.Create(ctx, nb); err != nil {
		return domain.Notebook{}, fmt.Errorf("create notebook: %w", err)
	}
	return nb, nil
}

// Get returns a notebook with its current document count.
func (s *Service) Get(ctx context.Context, id string) (domain.Notebook, error) {
	nb, err := s.repo.Get(ctx, id)
	if err != nil {
		return domain.Notebook{}, fmt.Errorf("get notebook: %w", err)
	}
	return s.withDocCount(ctx, nb)
}

// List returns all notebooks, newest first, with current document counts.
func (s *Service) List(ctx context.Context) ([]domain.Notebook, error) {
	notebooks, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list notebooks: %w", err)
	}
	for i := range notebooks {
		notebooks[i], err = s.withDocCount(ctx, notebooks[i])
		if err != nil {
			return nil, err
		}
	}
	return notebooks, nil
}

// UpdateParams carries the optional notebook fields to change.
type UpdateParams struct {
	Name  *string
	Color *string
	Icon  *string
}

// Update applies a partial update and returns the refreshed notebook.
// An update with no fields set is rejected.
func (s *Service) Update(ctx context.Context, id string, p UpdateParams) (domain.Notebook, error) {
	if p.Name == nil && p.Color == nil && p.Icon == nil {
		return domain.Notebook{}, fmt.Errorf("no update data provided: %w", domain.ErrInvalidInput)
	}

	nb, err := s.repo.Get(ctx, id)
	if err != nil {
		return domain.Notebook{}, fmt.Errorf("get notebook: %w", err)
	}

	if p.Name != nil {
		nb.Name = *p.Name
	}
	if p.Color != nil {
		nb.Color = *p.Color
	}
	if p.Icon != nil {
		nb.Icon = *p.Icon
	}

	if err := s.repo.Update(ctx, nb); err != nil {
		return domain.Notebook{}, fmt.Errorf("update notebook: %w", err)
	}
	return s.withDocCount(ctx, nb)
}

// Delete removes a notebook and everything attached to it. Vector and blob
// cleanup is best effort: failures are logged, the notebook still goes.
func (s *Service) Delete(ctx context.Context, id string) error {
	if _, err := s.repo.Get(ctx, id); err != nil {
		return fmt.Errorf("get notebook: %w", err)
	}

	docs, err := s.docs.ListByNotebook(ctx, id)
	if err != nil {
		return fmt.Errorf("list documents: %w", err)
	}
	for _, doc := range docs {
		if err := s.docs.Delete(ctx, id, doc.ID); err != nil {
			return fmt.Errorf("delete document %s: %w", doc.ID, err)
		}
		if err := s.blobs.Delete(ctx, id, doc.ID); err != nil {
			s.logger.Warn("delete pdf failed",
				zap.String("notebook_id", id), zap.String("doc_id", doc.ID), zap.Error(err))
		}
	}

	deleted, err := s.vectors.DeleteByNotebook(ctx, id)
	if err != nil {
		s.logger.Warn("delete vectors failed",
			zap.String("notebook_id", id), zap.Int("deleted", deleted), zap.Error(err))
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete notebook: %w", err)
	}
	return nil
}

func (s *Service) withDocCount(ctx context.Context, nb domain.Notebook) (domain.Notebook, error) {
	count, err := s.docs.CountByNotebook(ctx, nb.ID)
	if err != nil {
		return domain.Notebook{}, fmt.Errorf("count documents: %w", err)
	}
	nb.DocumentCount = count
	return nb, nil
}
