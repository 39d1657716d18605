package quiz

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
	return []domain.ChunkMatch{{Text: "chunk"}}, nil
}

type mockGenerator struct {
	arrayFn func(ctx context.Context, spec genai.Spec, out any) error
}

func (m *mockGenerator) Array(ctx context.Context, spec genai.Spec, out any) error {
	if m.arrayFn != nil {
		return m.arrayFn(ctx, spec, out)
	}
	return nil
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
	stored map[string]domain.Quiz
}

func newMockArtifacts() *mockArtifacts {
	return &mockArtifacts{stored: make(map[string]domain.Quiz)}
}

func (m *mockArtifacts) Put(key string, quiz domain.Quiz) {
	m.stored[key] = quiz
}

func (m *mockArtifacts) Get(key string) (domain.Quiz, bool) {
	quiz, ok := m.stored[key]
	return quiz, ok
}
