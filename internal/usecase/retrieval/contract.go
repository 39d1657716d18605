package retrieval

import (
	"context"

	"github.com/prism-learn/prism/internal/domain"
)

// Embedder vectorizes query text.
type Embedder interface {
	Embed(ctx context.Context, text string) (domain.EmbeddingResult, error)
}

// VectorSearcher runs scoped KNN queries over stored chunks.
type VectorSearcher interface {
	Search(ctx context.Context, scope domain.Scope, vector []float32, k int) ([]domain.ChunkMatch, error)
}
