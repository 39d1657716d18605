package interview

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

// contextWindow is how many recent turns feed the next-question prompt.
const contextWindow = 8

// Service runs simulated job interviews: the model interviews, the user
// answers, and a completed session gets a structured evaluation.
type Service struct {
	repo   Repository
	model  domain.ChatModel
	scorer Scorer
	logger *zap.Logger

	now   func() time.Time
	newID func() string
}

// New creates an interview service.
func New(repo Repository, model domain.ChatModel, scorer Scorer, logger *zap.Logger) *Service {
	return &Service{
		repo:   repo,
		model:  model,
		scorer: scorer,
		logger: logger,
		now:    time.Now,
		newID:  uuid.NewString,
	}
}

// StartParams configure a new interview session.
type StartParams struct {
	NotebookID    string
	InterviewType string // technical, behavioral, mixed
	Difficulty    string // easy, medium, hard
	Duration      int    // minutes
}

// Started is a fresh session with the interviewer's opening message.
type Started struct {
	SessionID      string `json:"session_id"`
	InitialMessage string `json:"initial_message"`
}

// Start opens a session: the model introduces itself and asks the first
// question, and the session is persisted as active.
func (s *Service) Start(ctx context.Context, p StartParams) (Started, error) {
	opening, err := s.model.Chat(ctx,
		[]domain.Message{{Role: domain.RoleSystem, Content: prompt.InterviewStart(p.InterviewType, p.Difficulty, p.Duration)}},
		domain.ChatOptions{Temperature: 0.7, MaxTokens: 300, Task: "interview"})
	if err != nil {
		return Started{}, fmt.Errorf("generate opening: %w", err)
	}

	sessionID := s.newID()
	session := domain.InterviewSession{
		ID:            sessionID,
		NotebookID:    p.NotebookID,
		InterviewType: p.InterviewType,
		Difficulty:    p.Difficulty,
		Duration:      p.Duration,
		Messages: []domain.InterviewMessage{{
			Role:      domain.InterviewRoleInterviewer,
			Content:   opening,
			Timestamp: domain.FormatTime(s.now()),
		}},
		Status:    domain.InterviewStatusActive,
		CreatedAt: domain.FormatTime(s.now()),
	}
	if err := s.repo.Save(ctx, session); err != nil {
		return Started{}, fmt.Errorf("save session: %w", err)
	}

	s.logger.Info("interview started",
		zap.String("session_id", sessionID),
		zap.String("type", p.InterviewType),
		zap.String("difficulty", p.Difficulty))

	return Started{SessionID: sessionID, InitialMessage: opening}, nil
}

// Respond records the candidate's answer and returns the interviewer's
// next question, generated from the recent conversation window.
func (s *Service) Respond(ctx context.Context, sessionID, userResponse string) (string, error) {
	session, err := s.repo.Get(ctx, sessionID)
	if err != nil {
		return "", fmt.Errorf("get session: %w", err)
	}

	session.Messages = append(session.Messages, domain.InterviewMessage{
		Role:      domain.InterviewRoleCandidate,
		Content:   userResponse,
		Timestamp: domain.FormatTime(s.now()),
	})

	messages := []domain.Message{{
		Role:    domain.RoleSystem,
		Content: prompt.InterviewContinue(session.InterviewType),
	}}
	window := session.Messages
	if len(window) > contextWindow {
		window = window[len(window)-contextWindow:]
	}
	for _, m := range window {
		role := domain.RoleUser
		if m.Role == domain.InterviewRoleInterviewer {
			role = domain.RoleAssistant
		}
		messages = append(messages, domain.Message{Role: role, Content: m.Content})
	}

	next, err := s.model.Chat(ctx, messages,
		domain.ChatOptions{Temperature: 0.7, MaxTokens: 300, Task: "interview"})
	if err != nil {
		return "", fmt.Errorf("generate next question: %w", err)
	}

	session.Messages = append(session.Messages, domain.InterviewMessage{
		Role:      domain.InterviewRoleInterviewer,
		Content:   next,
		Timestamp: domain.FormatTime(s.now()),
	})
	if err := s.repo.Save(ctx, session); err != nil {
		return "", fmt.Errorf("save session: %w", err)
	}

	return next, nil
}

// Ended carries the evaluation of a completed session.
type Ended struct {
	Score    domain.InterviewScore `json:"score"`
	Feedback Feedback              `json:"feedback"`
}

// Feedback groups the textual parts of the evaluation.
type Feedback struct {
	Strengths       []string `json:"strengths"`
	Improvements    []string `json:"improvements"`
	Recommendations []string `json:"recommendations"`
}

// End completes a session: the transcript is scored, and the session is
// marked completed with the evaluation attached.
func (s *Service) End(ctx context.Context, sessionID string) (Ended, error) {
	session, err := s.repo.Get(ctx, sessionID)
	if err != nil {
		return Ended{}, fmt.Errorf("get session: %w", err)
	}

	score := s.scorer.Interview(ctx, session.InterviewType, session.Difficulty, transcript(session.Messages))

	session.Status = domain.InterviewStatusCompleted
	session.Score = &score
	session.CompletedAt = domain.FormatTime(s.now())
	if err := s.repo.Save(ctx, session); err != nil {
		return Ended{}, fmt.Errorf("save session: %w", err)
	}

	s.logger.Info("interview ended",
		zap.String("session_id", sessionID),
		zap.Int("overall_score", score.OverallScore))

	return Ended{
		Score: score,
		Feedback: Feedback{
			Strengths:       score.Strengths,
			Improvements:    score.Improvements,
			Recommendations: score.Recommendations,
		},
	}, nil
}

// transcript renders the session as labeled turns for scoring.
func transcript(messages []domain.InterviewMessage) string {
	lines := make([]string, len(messages))
	for i, m := range messages {
		speaker := "Candidate"
		if m.Role == domain.InterviewRoleInterviewer {
			speaker = "Interviewer"
		}
		lines[i] = fmt.Sprintf("%s: %s", speaker, m.Content)
	}
	return strings.Join(lines, "\n\n")
}
