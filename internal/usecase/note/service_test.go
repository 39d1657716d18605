package note

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/prism-learn/prism/internal/domain"
)

type mockRepo struct {
	notes    map[string]domain.Note
	createFn func(ctx context.Context, n domain.Note) error
	updateFn func(ctx context.Context, n domain.Note) error
	listFn   func(ctx context.Context, notebookID string) ([]domain.Note, error)
	deleteFn func(ctx context.Context, noteID string) error
}

func newMockRepo() *mockRepo {
	return &mockRepo{notes: make(map[string]domain.Note)}
}

func (m *mockRepo) Create(ctx context.Context, n domain.Note) error {
	if m.createFn != nil {
		return m.createFn(ctx, n)
	}
	m.notes[n.ID] = n
	return nil
}

func (m *mockRepo) Update(ctx context.Context, n domain.Note) error {
	if m.updateFn != nil {
		return m.updateFn(ctx, n)
	}
	m.notes[n.ID] = n
	return nil
}

func (m *mockRepo) FindByID(_ context.Context, noteID string) (domain.Note, error) {
	n, ok := m.notes[noteID]
	if !ok {
		return domain.Note{}, domain.ErrNoteNotFound
	}
	return n, nil
}

func (m *mockRepo) ListByNotebook(ctx context.Context, notebookID string) ([]domain.Note, error) {
	if m.listFn != nil {
		return m.listFn(ctx, notebookID)
	}
	return nil, nil
}

func (m *mockRepo) Delete(ctx context.Context, noteID string) error {
	if m.deleteFn != nil {
		return m.deleteFn(ctx, noteID)
	}
	if _, ok := m.notes[noteID]; !ok {
		return domain.ErrNoteNotFound
	}
	delete(m.notes, noteID)
	return nil
}

type mockRetriever struct {
	retrieveFn func(ctx context.Context, scope domain.Scope, query string, topK int) ([]domain.ChunkMatch, error)
}

func (m *mockRetriever) Retrieve(ctx context.Context, scope domain.Scope, query string, topK int) ([]domain.ChunkMatch, error) {
	if m.retrieveFn != nil {
		return m.retrieveFn(ctx, scope, query, topK)
	}
	return nil, nil
}

type mockModel struct {
	chatFn func(ctx context.Context, messages []domain.Message, opts domain.ChatOptions) (string, error)
}

func (m *mockModel) Chat(ctx context.Context, messages []domain.Message, opts domain.ChatOptions) (string, error) {
	if m.chatFn != nil {
		return m.chatFn(ctx, messages, opts)
	}
	return "generated content", nil
}

func newTestService(repo *mockRepo, retriever *mockRetriever, model *mockModel) *Service {
	svc := New(repo, retriever, model, zap.NewNop())
	svc.now = func() time.Time { return time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC) }
	svc.newID = func() string { return "note-fixed" }
	return svc
}

func TestCreate(t *testing.T) {
	repo := newMockRepo()
	svc := newTestService(repo, &mockRetriever{}, &mockModel{})

	n, err := svc.Create(context.Background(), CreateParams{
		NotebookID: "nb1", Title: "My note", Content: "body",
	})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	if n.ID != "note-fixed" || n.NoteType != domain.NoteTypeText || n.Color != "#ffffff" {
		t.Errorf("defaults not applied: %+v", n)
	}
	if n.Tags == nil || n.CreatedAt != n.UpdatedAt {
		t.Errorf("unexpected note: %+v", n)
	}
	if _, ok := repo.notes["note-fixed"]; !ok {
		t.Error("note not stored")
	}
}

func TestCreate_MissingNotebook(t *testing.T) {
	svc := newTestService(newMockRepo(), &mockRetriever{}, &mockModel{})

	_, err := svc.Create(context.Background(), CreateParams{Title: "x"})
	if !errors.Is(err, domain.ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}

func TestUpdate_Partial(t *testing.T) {
	repo := newMockRepo()
	repo.notes["n1"] = domain.Note{
		ID: "n1", NotebookID: "nb1", Title: "old", Content: "keep",
		Color: "#ffffff", CreatedAt: "2025-01-01T00:00:00.000000", UpdatedAt: "2025-01-01T00:00:00.000000",
	}
	svc := newTestService(repo, &mockRetriever{}, &mockModel{})

	title := "new title"
	n, err := svc.Update(context.Background(), "n1", UpdateParams{Title: &title})
	if err != nil {
		t.Fatalf("Update failed: %v", err)
	}

	if n.Title != "new title" || n.Content != "keep" {
		t.Errorf("partial update wrong: %+v", n)
	}
	if n.UpdatedAt == n.CreatedAt {
		t.Error("updated_at not refreshed")
	}
}

func TestUpdate_NotFound(t *testing.T) {
	svc := newTestService(newMockRepo(), &mockRetriever{}, &mockModel{})

	title := "x"
	_, err := svc.Update(context.Background(), "ghost", UpdateParams{Title: &title})
	if !errors.Is(err, domain.ErrNoteNotFound) {
		t.Fatalf("expected ErrNoteNotFound, got %v", err)
	}
}

func TestDelete_NotFound(t *testing.T) {
	svc := newTestService(newMockRepo(), &mockRetriever{}, &mockModel{})

	err := svc.Delete(context.Background(), "ghost")
	if !errors.Is(err, domain.ErrNoteNotFound) {
		t.Fatalf("expected ErrNoteNotFound, got %v", err)
	}
}

func TestGenerate(t *testing.T) {
	repo := newMockRepo()
	retriever := &mockRetriever{
		retrieveFn: func(_ context.Context, scope domain.Scope, query string, topK int) ([]domain.ChunkMatch, error) {
			if scope.NotebookID != "nb1" || query != "sorting algorithms" || topK != generateTopK {
				t.Errorf("unexpected retrieve call: %+v %q %d", scope, query, topK)
			}
			return []domain.ChunkMatch{{Text: "quicksort partitions"}}, nil
		},
	}
	model := &mockModel{
		chatFn: func(_ context.Context, messages []domain.Message, opts domain.ChatOptions) (string, error) {
			if opts.Task != "note" || opts.MaxTokens != 2000 {
				t.Errorf("unexpected options: %+v", opts)
			}
			if !strings.Contains(messages[0].Content, "quicksort partitions") {
				t.Errorf("prompt missing context:\n%s", messages[0].Content)
			}
			return "Q: what is quicksort?\nA: ...", nil
		},
	}
	svc := newTestService(repo, retriever, model)

	n, err := svc.Generate(context.Background(), GenerateParams{
		NotebookID: "nb1", NoteType: "flashcards", Topic: "sorting algorithms",
	})
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}

	if n.Title != "AI Generated Flashcards: sorting algorithms" {
		t.Errorf("title = %q", n.Title)
	}
	if n.NoteType != domain.NoteTypeFlashcards || n.Color != aiNoteColor {
		t.Errorf("unexpected note: %+v", n)
	}
	if len(n.Tags) != 2 || n.Tags[0] != "AI Generated" || n.Tags[1] != "flashcards" {
		t.Errorf("tags = %v", n.Tags)
	}
	if _, ok := repo.notes["note-fixed"]; !ok {
		t.Error("generated note not stored")
	}
}

func TestGenerate_DefaultTopicQuery(t *testing.T) {
	retriever := &mockRetriever{
		retrieveFn: func(_ context.Context, _ domain.Scope, query string, _ int) ([]domain.ChunkMatch, error) {
			if query != defaultTopicQuery {
				t.Errorf("query = %q, want %q", query, defaultTopicQuery)
			}
			return []domain.ChunkMatch{{Text: "c"}}, nil
		},
	}
	svc := newTestService(newMockRepo(), retriever, &mockModel{})

	n, err := svc.Generate(context.Background(), GenerateParams{NotebookID: "nb1", NoteType: "key_points"})
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}
	if n.Title != "AI Generated Key Points" {
		t.Errorf("title = %q", n.Title)
	}
}

func TestGenerate_NoContent(t *testing.T) {
	svc := newTestService(newMockRepo(), &mockRetriever{}, &mockModel{})

	_, err := svc.Generate(context.Background(), GenerateParams{NotebookID: "nb1", NoteType: "summary"})
	if !errors.Is(err, domain.ErrNoContent) {
		t.Fatalf("expected ErrNoContent, got %v", err)
	}
}
