package note

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/prism-learn/prism/internal/domain"
	"github.com/prism-learn/prism/internal/prompt"
)

const (
	generateTopK      = 10
	defaultTopicQuery = "comprehensive summary of all topics"
	aiNoteColor       = "#e3f2fd"
)

// Service handles user notes and AI note generation from documents.
type Service struct {
	repo      Repository
	retriever Retriever
	model     domain.ChatModel
	logger    *zap.Logger

	now   func() time.Time
	newID func() string
}

// New creates a note service.
func New(repo Repository, retriever Retriever, model domain.ChatModel, logger *zap.Logger) *Service {
	return &Service{
		repo:      repo,
		retriever: retriever,
		model:     model,
		logger:    logger,
		now:       time.Now,
		newID:     uuid.NewString,
	}
}

// CreateParams are the user-supplied note attributes.
type CreateParams struct {
	NotebookID string
	Title      string
	Content    string
	NoteType   string
	Color      string
	Tags       []string
}

// Create stores a new user note.
func (s *Service) Create(ctx context.Context, p CreateParams) (domain.Note, error) {
	if p.NotebookID == "" {
		return domain.Note{}, fmt.Errorf("notebook_id is required: %w", domain.ErrInvalidInput)
	}
	if p.NoteType == "" {
		p.NoteType = domain.NoteTypeText
	}
	if p.Color == "" {
		p.Color = "#ffffff"
	}
	if p.Tags == nil {
		p.Tags = []string{}
	}

	ts := domain.FormatTime(s.now())
	n := domain.Note{
		ID:         s.newID(),
		NotebookID: p.NotebookID,
		Title:      p.Title,
		Content:    p.Content,
		NoteType:   p.NoteType,
		Color:      p.Color,
		Tags:       p.Tags,
		CreatedAt:  ts,
		UpdatedAt:  ts,
	}
	if err := s.repo.Create(ctx, n); err != nil {
		return domain.Note{}, fmt.Errorf("create note: %w", err)
	}
	return n, nil
}

// List returns a notebook's notes, newest first.
func (s *Service) List(ctx context.Context, notebookID string) ([]domain.Note, error) {
	notes, err := s.repo.ListByNotebook(ctx, notebookID)
	if err != nil {
		return nil, fmt.Errorf("list notes: %w", err)
	}
	return notes, nil
}

// UpdateParams carries the optional note fields to change.
type UpdateParams struct {
	Title   *string
	Content *string
	Color   *string
	Tags    []string
}

// Update applies a partial update by note ID and refreshes updated_at.
func (s *Service) Update(ctx context.Context, noteID string, p UpdateParams) (domain.Note, error) {
	n, err := s.repo.FindByID(ctx, noteID)
	if err != nil {
		return domain.Note{}, fmt.Errorf("find note: %w", err)
	}

	if p.Title != nil {
		n.Title = *p.Title
	}
	if p.Content != nil {
		n.Content = *p.Content
	}
	if p.Color != nil {
		n.Color = *p.Color
	}
	if p.Tags != nil {
		n.Tags = p.Tags
	}
	n.UpdatedAt = domain.FormatTime(s.now())

	if err := s.repo.Update(ctx, n); err != nil {
		return domain.Note{}, fmt.Errorf("update note: %w", err)
	}
	return n, nil
}

// Delete removes a note by ID.
func (s *Service) Delete(ctx context.Context, noteID string) error {
	if err := s.repo.Delete(ctx, noteID); err != nil {
		return fmt.Errorf("delete note: %w", err)
	}
	return nil
}

// GenerateParams select the source material and the note subtype.
type GenerateParams struct {
	NotebookID  string
	DocumentIDs []string
	NoteType    string // summary, key_points, mind_map, flashcards, quiz, timeline, comparison_table
	Topic       string // empty means all topics
}

// Generate retrieves topic-relevant chunks and writes an AI note of the
// requested subtype, stored alongside user notes.
func (s *Service) Generate(ctx context.Context, p GenerateParams) (domain.Note, error) {
	query := p.Topic
	if query == "" {
		query = defaultTopicQuery
	}

	scope := domain.Scope{NotebookID: p.NotebookID, DocumentIDs: p.DocumentIDs}
	matches, err := s.retriever.Retrieve(ctx, scope, query, generateTopK)
	if err != nil {
		return domain.Note{}, fmt.Errorf("retrieve content: %w", err)
	}
	if len(matches) == 0 {
		return domain.Note{}, domain.ErrNoContent
	}

	contextParts := make([]string, len(matches))
	for i, m := range matches {
		contextParts[i] = m.Text
	}

	notePrompt, storedType := prompt.Note(p.NoteType, strings.Join(contextParts, "\n\n"))
	content, err := s.model.Chat(ctx,
		[]domain.Message{{Role: domain.RoleUser, Content: notePrompt}},
		domain.ChatOptions{Temperature: 0.7, MaxTokens: 2000, Task: "note"})
	if err != nil {
		return domain.Note{}, fmt.Errorf("generate note: %w", err)
	}

	title := "AI Generated " + titleCase(p.NoteType)
	if p.Topic != "" {
		title += ": " + p.Topic
	}

	ts := domain.FormatTime(s.now())
	n := domain.Note{
		ID:         s.newID(),
		NotebookID: p.NotebookID,
		Title:      title,
		Content:    content,
		NoteType:   storedType,
		Color:      aiNoteColor,
		Tags:       []string{"AI Generated", p.NoteType},
		CreatedAt:  ts,
		UpdatedAt:  ts,
	}
	if err := s.repo.Create(ctx, n); err != nil {
		return domain.Note{}, fmt.Errorf("save note: %w", err)
	}

	s.logger.Info("note generated",
		zap.String("notebook_id", p.NotebookID),
		zap.String("note_id", n.ID),
		zap.String("note_type", p.NoteType))
	return n, nil
}

// titleCase turns a snake_case subtype into a display title ("key_points"
// -> "Key Points").
func titleCase(s string) string {
	words := strings.Split(s, "_")
	for i, w := range words {
		if w == "" {
			continue
		}
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}
