package mocktest

import (
	"context"

	"github.com/prism-learn/prism/internal/domain"
	"github.com/prism-learn/prism/internal/usecase/genai"
)

type mockDocs struct {
	countFn func(ctx context.Context, notebookID string) (int, error)
}

func (m *mockDocs) CountByNotebook(ctx context.Context, notebookID string) (int, error) {
	if m.countFn != nil {
		return m.countFn(ctx, notebookID)
	}
	return 1, nil
}

type mockSampler struct {
	sampleFn func(ctx context.Context, scope domain.Scope, prefix string, numQueries, maxChunks int) ([]domain.ChunkMatch, error)
}

func (m *mockSampler) Sample(ctx context.Context, scope domain.Scope, prefix string, numQueries, maxChunks int) ([]domain.ChunkMatch, error) {
	if m.sampleFn != nil {
		return m.sampleFn(ctx, scope, prefix, numQueries, maxChunks)
	}
	return []domain.ChunkMatch{{Text: "sampled content"}}, nil
}

type mockGenerator struct {
	objectFn func(ctx context.Context, spec genai.Spec, out any) error
}

func (m *mockGenerator) Object(ctx context.Context, spec genai.Spec, out any) error {
	if m.objectFn != nil {
		return m.objectFn(ctx, spec, out)
	}
	return nil
}

type mockEvaluator struct {
	theoryFn func(ctx context.Context, q domain.TheoryQuestion, answer string) domain.TheoryEvaluation
	codeFn   func(ctx context.Context, q domain.CodingQuestion, code, language string) domain.CodeEvaluation
}

func (m *mockEvaluator) Theory(ctx context.Context, q domain.TheoryQuestion, answer string) domain.TheoryEvaluation {
	if m.theoryFn != nil {
		return m.theoryFn(ctx, q, answer)
	}
	return domain.TheoryEvaluation{Score: 80, Feedback: "ok"}
}

func (m *mockEvaluator) Code(ctx context.Context, q domain.CodingQuestion, code, language string) domain.CodeEvaluation {
	if m.codeFn != nil {
		return m.codeFn(ctx, q, code, language)
	}
	return domain.CodeEvaluation{Score: 60, Feedback: "ok"}
}

func (m *mockEvaluator) Reorder(q domain.ReorderQuestion, ordered []string) (float64, int) {
	hits := 0
	for i, item := range ordered {
		if i < len(q.CorrectOrder) && item == q.CorrectOrder[i] {
			hits++
		}
	}
	if len(q.CorrectOrder) == 0 {
		return 0, 0
	}
	return float64(hits) / float64(len(q.CorrectOrder)) * 100, hits
}

type mockModel struct {
	chatFn func(ctx context.Context, messages []domain.Message, opts domain.ChatOptions) (string, error)
}

func (m *mockModel) Chat(ctx context.Context, messages []domain.Message, opts domain.ChatOptions) (string, error) {
	if m.chatFn != nil {
		return m.chatFn(ctx, messages, opts)
	}
	return "analysis", nil
}

type mockArtifacts struct {
	stored map[string]domain.MockTest
}

func newMockArtifacts() *mockArtifacts {
	return &mockArtifacts{stored: make(map[string]domain.MockTest)}
}

func (m *mockArtifacts) Put(key string, test domain.MockTest) {
	m.stored[key] = test
}

func (m *mockArtifacts) Get(key string) (domain.MockTest, bool) {
	test, ok := m.stored[key]
	return test, ok
}
