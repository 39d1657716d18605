package qa

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/prism-learn/prism/internal/domain"
	"github.com/prism-learn/prism/internal/prompt"
)

const (
	askTopK      = 5
	noMatchReply = "I couldn't find any relevant information in the uploaded documents."
)

// Service answers questions grounded in a notebook's documents and keeps
// the per-notebook conversation history.
type Service struct {
	retriever Retriever
	model     domain.ChatModel
	history   History
	logger    *zap.Logger

	now func() time.Time
}

// New creates a Q&A service.
func New(retriever Retriever, model domain.ChatModel, history History, logger *zap.Logger) *Service {
	return &Service{
		retriever: retriever,
		model:     model,
		history:   history,
		logger:    logger,
		now:       time.Now,
	}
}

// Answer is a grounded reply with the chunks it was built from.
type Answer struct {
	Answer  string          `json:"answer"`
	Sources []domain.Source `json:"sources"`
}

// Ask retrieves the most similar chunks in scope and has the model answer
// from that context. No matches yields a canned reply with empty sources.
// The exchange is appended to the notebook's history best effort.
func (s *Service) Ask(ctx context.Context, scope domain.Scope, question string) (Answer, error) {
	if strings.TrimSpace(question) == "" {
		return Answer{}, fmt.Errorf("question is required: %w", domain.ErrInvalidInput)
	}

	matches, err := s.retriever.Retrieve(ctx, scope, question, askTopK)
	if err != nil {
		return Answer{}, fmt.Errorf("retrieve context: %w", err)
	}

	ans := Answer{Sources: []domain.Source{}}
	if len(matches) == 0 {
		ans.Answer = noMatchReply
		s.record(ctx, scope.NotebookID, question, ans.Answer)
		return ans, nil
	}

	contextParts := make([]string, len(matches))
	for i, m := range matches {
		contextParts[i] = m.Text
		ans.Sources = append(ans.Sources, domain.Source{
			Filename:   m.Filename,
			ChunkIndex: m.ChunkIndex,
			Score:      m.Score,
		})
	}

	reply, err := s.model.Chat(ctx,
		[]domain.Message{{Role: domain.RoleUser, Content: prompt.Answer(strings.Join(contextParts, "\n\n"), question)}},
		domain.ChatOptions{Temperature: 0.7, MaxTokens: 1024, Task: "ask"})
	if err != nil {
		return Answer{}, fmt.Errorf("generate answer: %w", err)
	}

	ans.Answer = reply
	s.record(ctx, scope.NotebookID, question, reply)
	return ans, nil
}

// History returns the notebook's conversation, oldest first.
func (s *Service) History(ctx context.Context, notebookID string) ([]domain.ChatMessage, error) {
	msgs, err := s.history.List(ctx, notebookID)
	if err != nil {
		return nil, fmt.Errorf("list history: %w", err)
	}
	return msgs, nil
}

// SaveHistory appends client-supplied messages to the notebook's history,
// stamping them with the current time.
func (s *Service) SaveHistory(ctx context.Context, notebookID string, msgs []domain.ChatMessage) error {
	if notebookID == "" || len(msgs) == 0 {
		return fmt.Errorf("notebook_id and messages are required: %w", domain.ErrInvalidInput)
	}

	ts := domain.FormatTime(s.now())
	for i := range msgs {
		msgs[i].CreatedAt = ts
	}
	if err := s.history.Append(ctx, notebookID, msgs...); err != nil {
		return fmt.Errorf("append history: %w", err)
	}
	return nil
}

// ClearHistory drops the notebook's conversation.
func (s *Service) ClearHistory(ctx context.Context, notebookID string) error {
	if err := s.history.Clear(ctx, notebookID); err != nil {
		return fmt.Errorf("clear history: %w", err)
	}
	return nil
}

// record appends the question/answer pair. A history write failure never
// fails the ask itself.
func (s *Service) record(ctx context.Context, notebookID, question, answer string) {
	ts := domain.FormatTime(s.now())
	err := s.history.Append(ctx, notebookID,
		domain.ChatMessage{Role: domain.RoleUser, Content: question, CreatedAt: ts},
		domain.ChatMessage{Role: domain.RoleAssistant, Content: answer, CreatedAt: ts},
	)
	if err != nil {
		s.logger.Warn("append chat history failed",
			zap.String("notebook_id", notebookID), zap.Error(err))
	}
}
