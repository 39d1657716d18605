package mocktest

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
	Object(ctx context.Context, spec genai.Spec, out any) error
}

// Evaluator grades individual answers.
type Evaluator interface {
	Theory(ctx context.Context, q domain.TheoryQuestion, answer string) domain.TheoryEvaluation
	Code(ctx context.Context, q domain.CodingQuestion, code, language string) domain.CodeEvaluation
	Reorder(q domain.ReorderQuestion, ordered []string) (score float64, correctPositions int)
}

// Artifacts holds generated tests between generate and submit.
type Artifacts interface {
	Put(key string, test domain.MockTest)
	Get(key string) (domain.MockTest, bool)
}
