package interview

import (
	"context"

	"github.com/prism-learn/prism/internal/domain"
)

// Repository defines the storage contract for interview sessions.
type Repository interface {
	Save(ctx context.Context, session domain.InterviewSession) error
	Get(ctx context.Context, sessionID string) (domain.InterviewSession, error)
}

// Scorer evaluates a completed interview transcript.
type Scorer interface {
	Interview(ctx context.Context, interviewType, difficulty, transcript string) domain.InterviewScore
}
