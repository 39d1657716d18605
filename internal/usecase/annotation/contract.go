package annotation

import (
	"context"

	"github.com/prism-learn/prism/internal/domain"
)

// Repository defines the storage contract for annotations.
type Repository interface {
	Create(ctx context.Context, a domain.Annotation) error
	Update(ctx context.Context, a domain.Annotation) error
	FindByID(ctx context.Context, annotationID string) (domain.Annotation, error)
	ListByNotebook(ctx context.Context, notebookID, documentID string) ([]domain.Annotation, error)
	Delete(ctx context.Context, annotationID string) error
}
