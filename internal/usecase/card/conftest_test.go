package card

import (
	"context"
	"encoding/json"
	"time"

	"go.uber.org/zap"

	"github.com/prism-learn/prism/internal/domain"
	"github.com/prism-learn/prism/internal/usecase/genai"
)

type mockDocs struct {
	docs   []domain.Document
	listFn func(ctx context.Context, notebookID string) ([]domain.Document, error)
}

func (m *mockDocs) ListByNotebook(ctx context.Context, notebookID string) ([]domain.Document, error) {
	if m.listFn != nil {
		return m.listFn(ctx, notebookID)
	}
	return m.docs, nil
}

type mockChunker struct {
	chunksFn func(ctx context.Context, doc domain.Document) []string
}

func (m *mockChunker) EnsureChunks(ctx context.Context, doc domain.Document) []string {
	if m.chunksFn != nil {
		return m.chunksFn(ctx, doc)
	}
	return doc.Chunks
}

type mockGen struct {
	calls    int
	objectFn func(ctx context.Context, spec genai.Spec, out any) error
}

func (m *mockGen) Object(ctx context.Context, spec genai.Spec, out any) error {
	m.calls++
	if m.objectFn != nil {
		return m.objectFn(ctx, spec, out)
	}
	return nil
}

type mockRepo struct {
	cards   map[string]domain.SavedCard
	folders map[string]domain.CardFolder
	saveFn  func(ctx context.Context, c domain.SavedCard) error
}

func newMockRepo() *mockRepo {
	return &mockRepo{
		cards:   make(map[string]domain.SavedCard),
		folders: make(map[string]domain.CardFolder),
	}
}

func (m *mockRepo) Save(ctx context.Context, c domain.SavedCard) error {
	if m.saveFn != nil {
		return m.saveFn(ctx, c)
	}
	m.cards[c.ID] = c
	return nil
}

func (m *mockRepo) FindByCardID(_ context.Context, notebookID, cardID string) (domain.SavedCard, error) {
	for _, c := range m.cards {
		if c.NotebookID == notebookID && c.CardID == cardID {
			return c, nil
		}
	}
	return domain.SavedCard{}, domain.ErrCardNotFound
}

func (m *mockRepo) FindByID(_ context.Context, savedID string) (domain.SavedCard, error) {
	c, ok := m.cards[savedID]
	if !ok {
		return domain.SavedCard{}, domain.ErrCardNotFound
	}
	return c, nil
}

func (m *mockRepo) ListByNotebook(_ context.Context, notebookID string) ([]domain.SavedCard, error) {
	var out []domain.SavedCard
	for _, c := range m.cards {
		if c.NotebookID == notebookID {
			out = append(out, c)
		}
	}
	return out, nil
}

func (m *mockRepo) DeleteByCardID(ctx context.Context, notebookID, cardID string) error {
	c, err := m.FindByCardID(ctx, notebookID, cardID)
	if err != nil {
		return err
	}
	delete(m.cards, c.ID)
	return nil
}

func (m *mockRepo) CreateFolder(_ context.Context, f domain.CardFolder) error {
	m.folders[f.ID] = f
	return nil
}

func (m *mockRepo) ListFolders(_ context.Context, notebookID string) ([]domain.CardFolder, error) {
	var out []domain.CardFolder
	for _, f := range m.folders {
		if f.NotebookID == notebookID {
			out = append(out, f)
		}
	}
	return out, nil
}

func (m *mockRepo) FindFolderByID(_ context.Context, folderID string) (domain.CardFolder, error) {
	f, ok := m.folders[folderID]
	if !ok {
		return domain.CardFolder{}, domain.ErrFolderNotFound
	}
	return f, nil
}

func (m *mockRepo) DeleteFolder(_ context.Context, f domain.CardFolder) error {
	delete(m.folders, f.ID)
	return nil
}

// jsonInto simulates a successful structured generation.
func jsonInto(out any, payload string) error {
	return json.Unmarshal([]byte(payload), out)
}

// newTestService pins time, IDs, and chunk order for determinism.
func newTestService(docs *mockDocs, chunker *mockChunker, gen *mockGen, repo *mockRepo) *Service {
	svc := New(docs, chunker, gen, repo, zap.NewNop())
	svc.now = func() time.Time { return time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC) }
	n := 0
	svc.newID = func() string {
		n++
		if n == 1 {
			return "saved-fixed"
		}
		return "saved-fixed-2"
	}
	svc.shuffle = func([]string) {}
	return svc
}
