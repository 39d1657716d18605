package quiz

import (
	"context"

	"github.com/prism-learn/prism/internal/domain"
	"github.com/prism-learn/prism/internal/usecase/genai"
)

// Documents exposes the notebook's document count for preconditions.
type Documents interface {
	CountByNotebook(ctx context.Context, notebookID string) (int, error)
}

// Sampler pulls a diverse set of chunks for generation.
type Sampler interface {
	Sample(ctx context.Context, scope domain.Scope, prefix string, numQueries, maxChunks int) ([]domain.ChunkMatch, error)
}

// Generator produces validated structured output from the LLM.
type Generator interface {
	Array(ctx context.Context, spec genai.Spec, out any) error
}

// Artifacts holds generated quizzes between generate and submit.
type Artifacts interface {
	Put(key string, quiz domain.Quiz)
	Get(key string) (domain.Quiz, bool)
}
