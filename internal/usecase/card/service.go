package card

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/prism-learn/prism/internal/domain"
	"github.com/prism-learn/prism/internal/prompt"
	"github.com/prism-learn/prism/internal/usecase/genai"
)

const (
	defaultCardCount = 10

	maxTitleLen   = 100
	maxContentLen = 500
	maxExampleLen = 300
)

// Service generates bite-size learning cards from a notebook's documents
// and manages the user's saved cards and folders.
type Service struct {
	docs    Documents
	chunker Chunker
	gen     Generator
	repo    Repository
	logger  *zap.Logger

	now     func() time.Time
	newID   func() string
	shuffle func(chunks []string)
}

// New creates a card service.
func New(docs Documents, chunker Chunker, gen Generator, repo Repository, logger *zap.Logger) *Service {
	return &Service{
		docs:    docs,
		chunker: chunker,
		gen:     gen,
		repo:    repo,
		logger:  logger,
		now:     time.Now,
		newID:   uuid.NewString,
		shuffle: func(chunks []string) {
			rand.Shuffle(len(chunks), func(i, j int) {
				chunks[i], chunks[j] = chunks[j], chunks[i]
			})
		},
	}
}

// Generated is a batch of cards for the feed. Message is set when the
// batch is empty or short, explaining why.
type Generated struct {
	Cards   []domain.Card `json:"cards"`
	Count   int           `json:"count"`
	Message string        `json:"message,omitempty"`
}

// Generate produces up to count cards from randomly ordered document
// chunks, rotating through the card types for variety. An exhausted
// notebook yields an empty batch with a message rather than an error.
func (s *Service) Generate(ctx context.Context, notebookID string, count int) (Generated, error) {
	if count <= 0 {
		count = defaultCardCount
	}

	docs, err := s.docs.ListByNotebook(ctx, notebookID)
	if err != nil {
		return Generated{}, fmt.Errorf("list documents: %w", err)
	}
	if len(docs) == 0 {
		return Generated{Cards: []domain.Card{}, Message: "No documents found for this notebook"}, nil
	}

	var chunks []string
	for _, doc := range docs {
		chunks = append(chunks, s.chunker.EnsureChunks(ctx, doc)...)
	}
	if len(chunks) == 0 {
		return Generated{Cards: []domain.Card{}, Message: "No content found in documents"}, nil
	}
	s.shuffle(chunks)

	cards := make([]domain.Card, 0, count)
	typeIdx, chunkIdx := 0, 0
	maxAttempts := count * 3
	for attempts := 0; len(cards) < count && attempts < maxAttempts && chunkIdx < len(chunks); attempts++ {
		cardType := domain.CardTypes[typeIdx%len(domain.CardTypes)]
		if card, ok := s.generateCard(ctx, cardType, chunks[chunkIdx]); ok {
			cards = append(cards, card)
			typeIdx++
		}
		chunkIdx++
	}

	if len(cards) == 0 {
		return Generated{Cards: cards, Message: "Could not generate cards from the content"}, nil
	}
	return Generated{Cards: cards, Count: len(cards)}, nil
}

// generateCard runs one structured generation. Failures are logged and
// skipped so the batch degrades instead of erroring.
func (s *Service) generateCard(ctx context.Context, cardType, chunk string) (domain.Card, bool) {
	p, ok := prompt.Card(cardType, chunk)
	if !ok {
		return domain.Card{}, false
	}

	var out struct {
		Title   string `json:"title"`
		Content string `json:"content"`
		Example string `json:"example"`
	}
	err := s.gen.Object(ctx, genai.Spec{
		Task:        "card",
		System:      prompt.CardSystem,
		Prompt:      p,
		Temperature: 0.8,
		MaxTokens:   500,
		Retries:     2,
		Required:    []string{"title", "content"},
	}, &out)
	if err != nil {
		s.logger.Warn("card generation failed",
			zap.String("card_type", cardType), zap.Error(err))
		return domain.Card{}, false
	}

	return domain.Card{
		Type:    cardType,
		Title:   truncate(out.Title, maxTitleLen),
		Content: truncate(out.Content, maxContentLen),
		Example: truncate(out.Example, maxExampleLen),
	}, true
}

// LikeParams carries the card being saved; the card itself travels with
// the request since generated cards are not persisted server-side.
type LikeParams struct {
	NotebookID string
	CardID     string
	Type       string
	Title      string
	Content    string
	Example    string
	Color      string
}

// LikeResult reports the saved record. Liking an already-saved card is
// idempotent.
type LikeResult struct {
	Success     bool   `json:"success"`
	SavedCardID string `json:"saved_card_id"`
	Message     string `json:"message"`
}

// Like persists a card the user wants to keep.
func (s *Service) Like(ctx context.Context, p LikeParams) (LikeResult, error) {
	if p.NotebookID == "" || p.CardID == "" {
		return LikeResult{}, fmt.Errorf("notebook_id and card_id are required: %w", domain.ErrInvalidInput)
	}

	existing, err := s.repo.FindByCardID(ctx, p.NotebookID, p.CardID)
	if err == nil {
		return LikeResult{Success: true, SavedCardID: existing.ID, Message: "Card already saved"}, nil
	}
	if !errors.Is(err, domain.ErrCardNotFound) {
		return LikeResult{}, fmt.Errorf("check saved card: %w", err)
	}

	saved := domain.SavedCard{
		ID:         s.newID(),
		NotebookID: p.NotebookID,
		CardID:     p.CardID,
		Type:       p.Type,
		Title:      p.Title,
		Content:    p.Content,
		Example:    p.Example,
		Color:      p.Color,
		CreatedAt:  domain.FormatTime(s.now()),
	}
	if err := s.repo.Save(ctx, saved); err != nil {
		return LikeResult{}, fmt.Errorf("save card: %w", err)
	}
	return LikeResult{Success: true, SavedCardID: saved.ID, Message: "Card saved successfully"}, nil
}

// Saved returns a notebook's saved cards, newest first.
func (s *Service) Saved(ctx context.Context, notebookID string) ([]domain.SavedCard, error) {
	cards, err := s.repo.ListByNotebook(ctx, notebookID)
	if err != nil {
		return nil, fmt.Errorf("list saved cards: %w", err)
	}
	return cards, nil
}

// Unlike removes a saved card, addressed by the generated card's ID.
func (s *Service) Unlike(ctx context.Context, notebookID, cardID string) error {
	if err := s.repo.DeleteByCardID(ctx, notebookID, cardID); err != nil {
		return fmt.Errorf("delete saved card: %w", err)
	}
	return nil
}

// CreateFolder adds a named folder for organizing saved cards.
func (s *Service) CreateFolder(ctx context.Context, notebookID, name string) (domain.CardFolder, error) {
	if notebookID == "" || name == "" {
		return domain.CardFolder{}, fmt.Errorf("notebook_id and name are required: %w", domain.ErrInvalidInput)
	}

	f := domain.CardFolder{
		ID:         s.newID(),
		NotebookID: notebookID,
		Name:       name,
		CreatedAt:  domain.FormatTime(s.now()),
	}
	if err := s.repo.CreateFolder(ctx, f); err != nil {
		return domain.CardFolder{}, fmt.Errorf("create folder: %w", err)
	}
	return f, nil
}

// ListFolders returns a notebook's folders, oldest first.
func (s *Service) ListFolders(ctx context.Context, notebookID string) ([]domain.CardFolder, error) {
	folders, err := s.repo.ListFolders(ctx, notebookID)
	if err != nil {
		return nil, fmt.Errorf("list folders: %w", err)
	}
	return folders, nil
}

// DeleteFolder removes a folder after moving its cards back to
// uncategorized, so no saved card is lost with the folder.
func (s *Service) DeleteFolder(ctx context.Context, folderID string) error {
	f, err := s.repo.FindFolderByID(ctx, folderID)
	if err != nil {
		return fmt.Errorf("find folder: %w", err)
	}

	cards, err := s.repo.ListByNotebook(ctx, f.NotebookID)
	if err != nil {
		return fmt.Errorf("list saved cards: %w", err)
	}
	for _, c := range cards {
		if c.FolderID != folderID {
			continue
		}
		c.FolderID = ""
		if err := s.repo.Save(ctx, c); err != nil {
			return fmt.Errorf("uncategorize card %s: %w", c.ID, err)
		}
	}

	if err := s.repo.DeleteFolder(ctx, f); err != nil {
		return fmt.Errorf("delete folder: %w", err)
	}
	return nil
}

// MoveCard assigns a saved card to a folder; an empty folderID moves it
// back to uncategorized.
func (s *Service) MoveCard(ctx context.Context, savedID, folderID string) (domain.SavedCard, error) {
	c, err := s.repo.FindByID(ctx, savedID)
	if err != nil {
		return domain.SavedCard{}, fmt.Errorf("find saved card: %w", err)
	}

	c.FolderID = folderID
	if err := s.repo.Save(ctx, c); err != nil {
		return domain.SavedCard{}, fmt.Errorf("move card: %w", err)
	}
	return c, nil
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max]
}
