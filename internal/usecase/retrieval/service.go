package retrieval

import (
	"context"
	"fmt"
	"math/rand/v2"

	"github.com/prism-learn/prism/internal/domain"
)

// sampleTopK is how many chunks each randomized probe pulls.
const sampleTopK = 3

// Service retrieves document chunks: targeted (similar to a query) or
// sampled (diverse coverage for quiz and test generation).
type Service struct {
	embedder Embedder
	vectors  VectorSearcher
	randInt  func(n int) int
}

// New creates a retrieval service.
func New(embedder Embedder, vectors VectorSearcher) *Service {
	return &Service{
		embedder: embedder,
		vectors:  vectors,
		randInt:  rand.IntN,
	}
}

// Retrieve embeds the query and returns the topK most similar chunks in scope.
func (s *Service) Retrieve(ctx context.Context, scope domain.Scope, query string, topK int) ([]domain.ChunkMatch, error) {
	result, err := s.embedder.Embed(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("embed query: %w", err)
	}

	matches, err := s.vectors.Search(ctx, scope, result.Embedding, topK)
	if err != nil {
		return nil, fmt.Errorf("search chunks: %w", err)
	}
	return matches, nil
}

// Sample pulls a diverse set of chunks by probing the index up to
// numQueries times with randomized throwaway queries ("<prefix> <n>") and
// keeping the union, deduplicated by exact text. Probing stops early once
// the pool holds maxChunks entries (0 = no cap). Generation tasks feed on
// breadth, not similarity to any particular question.
func (s *Service) Sample(ctx context.Context, scope domain.Scope, prefix string, numQueries, maxChunks int) ([]domain.ChunkMatch, error) {
	seen := make(map[string]bool)
	var chunks []domain.ChunkMatch

	for i := 0; i < numQueries; i++ {
		if maxChunks > 0 && len(chunks) >= maxChunks {
			break
		}

		probe := fmt.Sprintf("%s %d", prefix, s.randInt(10000)+1)

		result, err := s.embedder.Embed(ctx, probe)
		if err != nil {
			return nil, fmt.Errorf("embed probe: %w", err)
		}

		matches, err := s.vectors.Search(ctx, scope, result.Embedding, sampleTopK)
		if err != nil {
			return nil, fmt.Errorf("search probe: %w", err)
		}

		for _, m := range matches {
			if seen[m.Text] {
				continue
			}
			seen[m.Text] = true
			chunks = append(chunks, m)
		}
	}

	if maxChunks > 0 && len(chunks) > maxChunks {
		chunks = chunks[:maxChunks]
	}
	return chunks, nil
}
