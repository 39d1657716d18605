package annotation

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/prism-learn/prism/internal/domain"
	"github.com/prism-learn/prism/internal/prompt"
)

const defaultHighlightColor = "#ffeb3b"

// Service handles PDF annotations and AI queries about highlighted text.
type Service struct {
	repo   Repository
	model  domain.ChatModel
	logger *zap.Logger

	now   func() time.Time
	newID func() string
}

// New creates an annotation service.
func New(repo Repository, model domain.ChatModel, logger *zap.Logger) *Service {
	return &Service{
		repo:   repo,
		model:  model,
		logger: logger,
		now:    time.Now,
		newID:  uuid.NewString,
	}
}

// CreateParams are the user-supplied annotation attributes.
type CreateParams struct {
	NotebookID      string
	DocumentID      string
	PageNumber      int
	HighlightedText string
	Position        domain.Position
	Color           string
	Note            string
}

// Create stores a new annotation. Color defaults to the highlighter yellow.
func (s *Service) Create(ctx context.Context, p CreateParams) (domain.Annotation, error) {
	if p.NotebookID == "" || p.DocumentID == "" {
		return domain.Annotation{}, fmt.Errorf("notebook_id and document_id are required: %w", domain.ErrInvalidInput)
	}
	if p.Color == "" {
		p.Color = defaultHighlightColor
	}

	a := domain.Annotation{
		ID:              s.newID(),
		NotebookID:      p.NotebookID,
		DocumentID:      p.DocumentID,
		PageNumber:      p.PageNumber,
		HighlightedText: p.HighlightedText,
		Position:        p.Position,
		Color:           p.Color,
		Note:            p.Note,
		CreatedAt:       domain.FormatTime(s.now()),
	}
	if err := s.repo.Create(ctx, a); err != nil {
		return domain.Annotation{}, fmt.Errorf("create annotation: %w", err)
	}
	return a, nil
}

// List returns a notebook's annotations, optionally filtered to one
// document, ordered by page then creation time.
func (s *Service) List(ctx context.Context, notebookID, documentID string) ([]domain.Annotation, error) {
	annotations, err := s.repo.ListByNotebook(ctx, notebookID, documentID)
	if err != nil {
		return nil, fmt.Errorf("list annotations: %w", err)
	}
	return annotations, nil
}

// UpdateParams carries the optional annotation fields to change.
type UpdateParams struct {
	Color *string
	Note  *string
}

// Update changes an annotation's color or note by ID.
func (s *Service) Update(ctx context.Context, annotationID string, p UpdateParams) (domain.Annotation, error) {
	a, err := s.repo.FindByID(ctx, annotationID)
	if err != nil {
		return domain.Annotation{}, fmt.Errorf("find annotation: %w", err)
	}

	if p.Color != nil {
		a.Color = *p.Color
	}
	if p.Note != nil {
		a.Note = *p.Note
	}

	if err := s.repo.Update(ctx, a); err != nil {
		return domain.Annotation{}, fmt.Errorf("update annotation: %w", err)
	}
	return a, nil
}

// Delete removes an annotation by ID.
func (s *Service) Delete(ctx context.Context, annotationID string) error {
	if err := s.repo.Delete(ctx, annotationID); err != nil {
		return fmt.Errorf("delete annotation: %w", err)
	}
	return nil
}

// QueryResult is an AI answer about a highlighted passage.
type QueryResult struct {
	Question        string `json:"question"`
	HighlightedText string `json:"highlighted_text"`
	Answer          string `json:"answer"`
}

// Query asks the model a question about an annotation's highlighted text.
func (s *Service) Query(ctx context.Context, annotationID, question string) (QueryResult, error) {
	a, err := s.repo.FindByID(ctx, annotationID)
	if err != nil {
		return QueryResult{}, fmt.Errorf("find annotation: %w", err)
	}

	answer, err := s.model.Chat(ctx,
		[]domain.Message{{Role: domain.RoleUser, Content: prompt.AnnotationQuery(a.HighlightedText, question)}},
		domain.ChatOptions{Temperature: 0.7, MaxTokens: 500, Task: "annotation_query"})
	if err != nil {
		return QueryResult{}, fmt.Errorf("answer query: %w", err)
	}

	return QueryResult{
		Question:        question,
		HighlightedText: a.HighlightedText,
		Answer:          answer,
	}, nil
}
