package notebook

import (
	"context"
	"errors"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/prism-learn/prism/internal/domain"
)

type mockRepo struct {
	notebooks map[string]domain.Notebook
	createFn  func(ctx context.Context, nb domain.Notebook) error
	deleteFn  func(ctx context.Context, id string) error
}

func newMockRepo() *mockRepo {
	return &mockRepo{notebooks: make(map[string]domain.Notebook)}
}

func (m *mockRepo) Create(ctx context.Context, nb domain.Notebook) error {
	if m.createFn != nil {
		return m.createFn(ctx, nb)
	}
	m.notebooks[nb.ID] = nb
	return nil
}

func (m *mockRepo) Get(_ context.Context, id string) (domain.Notebook, error) {
	nb, ok := m.notebooks[id]
	if !ok {
		return domain.Notebook{}, domain.ErrNotebookNotFound
	}
	return nb, nil
}

func (m *mockRepo) List(_ context.Context) ([]domain.Notebook, error) {
	out := make([]domain.Notebook, 0, len(m.notebooks))
	for _, nb := range m.notebooks {
		out = append(out, nb)
	}
	return out, nil
}

func (m *mockRepo) Update(_ context.Context, nb domain.Notebook) error {
	m.notebooks[nb.ID] = nb
	return nil
}

func (m *mockRepo) Delete(ctx context.Context, id string) error {
	if m.deleteFn != nil {
		return m.deleteFn(ctx, id)
	}
	delete(m.notebooks, id)
	return nil
}

type mockDocs struct {
	docs     map[string][]domain.Document
	deleted  []string
	deleteFn func(ctx context.Context, notebookID, docID string) error
}

func newMockDocs() *mockDocs {
	return &mockDocs{docs: make(map[string][]domain.Document)}
}

func (m *mockDocs) ListByNotebook(_ context.Context, notebookID string) ([]domain.Document, error) {
	return m.docs[notebookID], nil
}

func (m *mockDocs) CountByNotebook(_ context.Context, notebookID string) (int, error) {
	return len(m.docs[notebookID]), nil
}

func (m *mockDocs) Delete(ctx context.Context, notebookID, docID string) error {
	if m.deleteFn != nil {
		return m.deleteFn(ctx, notebookID, docID)
	}
	m.deleted = append(m.deleted, docID)
	return nil
}

type mockVectors struct {
	deleted  int
	deleteFn func(ctx context.Context, notebookID string) (int, error)
}

func (m *mockVectors) DeleteByNotebook(ctx context.Context, notebookID string) (int, error) {
	if m.deleteFn != nil {
		return m.deleteFn(ctx, notebookID)
	}
	m.deleted++
	return 3, nil
}

type mockBlobs struct {
	deleted  []string
	deleteFn func(ctx context.Context, notebookID, docID string) error
}

func (m *mockBlobs) Delete(ctx context.Context, notebookID, docID string) error {
	if m.deleteFn != nil {
		return m.deleteFn(ctx, notebookID, docID)
	}
	m.deleted = append(m.deleted, docID)
	return nil
}

func newTestService(repo *mockRepo, docs *mockDocs, vectors *mockVectors, blobs *mockBlobs) *Service {
	svc := New(repo, docs, vectors, blobs, zap.NewNop())
	svc.now = func() time.Time { return time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC) }
	svc.newID = func() string { return "nb-fixed" }
	return svc
}

func TestCreate(t *testing.T) {
	repo := newMockRepo()
	svc := newTestService(repo, newMockDocs(), &mockVectors{}, &mockBlobs{})

	nb, err := svc.Create(context.Background(), CreateParams{Name: "Physics", Color: "#123456", Icon: "⚛️"})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	if nb.ID != "nb-fixed" || nb.Name != "Physics" || nb.Color != "#123456" || nb.Icon != "⚛️" {
		t.Errorf("unexpected notebook: %+v", nb)
	}
	if nb.CreatedAt != "2025-06-01T12:00:00.000000" {
		t.Errorf("CreatedAt = %q", nb.CreatedAt)
	}
	if _, ok := repo.notebooks["nb-fixed"]; !ok {
		t.Error("notebook not stored")
	}
}

func TestCreate_Defaults(t *testing.T) {
	svc := newTestService(newMockRepo(), newMockDocs(), &mockVectors{}, &mockBlobs{})

	nb, err := svc.Create(context.Background(), CreateParams{Name: "Bare"})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if nb.Color != domain.DefaultNotebookColor || nb.Icon != domain.DefaultNotebookIcon {
		t.Errorf("defaults not applied: %+v", nb)
	}
}

func TestCreate_MissingName(t *testing.T) {
	svc := newTestService(newMockRepo(), newMockDocs(), &mockVectors{}, &mockBlobs{})

	_, err := svc.Create(context.Background(), CreateParams{})
	if !errors.Is(err, domain.ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}

func TestGet_WithDocCount(t *testing.T) {
	repo := newMockRepo()
	repo.notebooks["nb1"] = domain.Notebook{ID: "nb1", Name: "Physics"}
	docs := newMockDocs()
	docs.docs["nb1"] = []domain.Document{{ID: "d1"}, {ID: "d2"}}

	svc := newTestService(repo, docs, &mockVectors{}, &mockBlobs{})

	nb, err := svc.Get(context.Background(), "nb1")
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if nb.DocumentCount != 2 {
		t.Errorf("DocumentCount = %d, want 2", nb.DocumentCount)
	}
}

func TestGet_NotFound(t *testing.T) {
	svc := newTestService(newMockRepo(), newMockDocs(), &mockVectors{}, &mockBlobs{})

	_, err := svc.Get(context.Background(), "ghost")
	if !errors.Is(err, domain.ErrNotebookNotFound) {
		t.Fatalf("expected ErrNotebookNotFound, got %v", err)
	}
}

func TestList(t *testing.T) {
	repo := newMockRepo()
	repo.notebooks["nb1"] = domain.Notebook{ID: "nb1"}
	repo.notebooks["nb2"] = domain.Notebook{ID: "nb2"}
	docs := newMockDocs()
	docs.docs["nb2"] = []domain.Document{{ID: "d1"}}

	svc := newTestService(repo, docs, &mockVectors{}, &mockBlobs{})

	notebooks, err := svc.List(context.Background())
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(notebooks) != 2 {
		t.Fatalf("notebooks = %d, want 2", len(notebooks))
	}
	for _, nb := range notebooks {
		if nb.ID == "nb2" && nb.DocumentCount != 1 {
			t.Errorf("nb2 DocumentCount = %d, want 1", nb.DocumentCount)
		}
	}
}

func TestUpdate(t *testing.T) {
	repo := newMockRepo()
	repo.notebooks["nb1"] = domain.Notebook{ID: "nb1", Name: "Old", Color: "#111111", Icon: "x"}

	svc := newTestService(repo, newMockDocs(), &mockVectors{}, &mockBlobs{})

	name := "New"
	nb, err := svc.Update(context.Background(), "nb1", UpdateParams{Name: &name})
	if err != nil {
		t.Fatalf("Update failed: %v", err)
	}
	if nb.Name != "New" || nb.Color != "#111111" || nb.Icon != "x" {
		t.Errorf("partial update went wrong: %+v", nb)
	}
}

func TestUpdate_NoFields(t *testing.T) {
	repo := newMockRepo()
	repo.notebooks["nb1"] = domain.Notebook{ID: "nb1"}

	svc := newTestService(repo, newMockDocs(), &mockVectors{}, &mockBlobs{})

	_, err := svc.Update(context.Background(), "nb1", UpdateParams{})
	if !errors.Is(err, domain.ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}

func TestDelete_Cascades(t *testing.T) {
	repo := newMockRepo()
	repo.notebooks["nb1"] = domain.Notebook{ID: "nb1"}
	docs := newMockDocs()
	docs.docs["nb1"] = []domain.Document{{ID: "d1"}, {ID: "d2"}}
	vectors := &mockVectors{}
	blobs := &mockBlobs{}

	svc := newTestService(repo, docs, vectors, blobs)

	if err := svc.Delete(context.Background(), "nb1"); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}

	if len(docs.deleted) != 2 || len(blobs.deleted) != 2 {
		t.Errorf("docs deleted = %v, blobs deleted = %v", docs.deleted, blobs.deleted)
	}
	if vectors.deleted != 1 {
		t.Errorf("vector delete calls = %d, want 1", vectors.deleted)
	}
	if _, ok := repo.notebooks["nb1"]; ok {
		t.Error("notebook still stored")
	}
}

func TestDelete_BlobFailureIsBestEffort(t *testing.T) {
	repo := newMockRepo()
	repo.notebooks["nb1"] = domain.Notebook{ID: "nb1"}
	docs := newMockDocs()
	docs.docs["nb1"] = []domain.Document{{ID: "d1"}}
	blobs := &mockBlobs{
		deleteFn: func(_ context.Context, _, _ string) error {
			return errors.New("disk gone")
		},
	}

	svc := newTestService(repo, docs, &mockVectors{}, blobs)

	if err := svc.Delete(context.Background(), "nb1"); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	if _, ok := repo.notebooks["nb1"]; ok {
		t.Error("notebook must be deleted despite blob failure")
	}
}

func TestDelete_NotFound(t *testing.T) {
	svc := newTestService(newMockRepo(), newMockDocs(), &mockVectors{}, &mockBlobs{})

	err := svc.Delete(context.Background(), "ghost")
	if !errors.Is(err, domain.ErrNotebookNotFound) {
		t.Fatalf("expected ErrNotebookNotFound, got %v", err)
	}
}
