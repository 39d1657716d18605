package card

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/prism-learn/prism/internal/domain"
	"github.com/prism-learn/prism/internal/usecase/genai"
)

func TestGenerate(t *testing.T) {
	docs := &mockDocs{docs: []domain.Document{
		{ID: "d1", Chunks: []string{"mitochondria are the powerhouse", "osmosis moves water"}},
		{ID: "d2", Chunks: []string{"DNA encodes proteins"}},
	}}
	gen := &mockGen{
		objectFn: func(_ context.Context, spec genai.Spec, out any) error {
			if spec.Task != "card" || spec.Temperature != 0.8 || spec.MaxTokens != 500 || spec.Retries != 2 {
				t.Errorf("unexpected spec: %+v", spec)
			}
			if !strings.Contains(spec.Prompt, "mitochondria") &&
				!strings.Contains(spec.Prompt, "osmosis") &&
				!strings.Contains(spec.Prompt, "DNA") {
				t.Errorf("prompt missing chunk text:\n%s", spec.Prompt)
			}
			return jsonInto(out, `{"title":"Did you know?","content":"A fact.","example":"An example."}`)
		},
	}
	svc := newTestService(docs, &mockChunker{}, gen, newMockRepo())

	got, err := svc.Generate(context.Background(), "nb1", 3)
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}

	if got.Count != 3 || len(got.Cards) != 3 || got.Message != "" {
		t.Fatalf("unexpected batch: %+v", got)
	}
	// Types rotate per successful card.
	if got.Cards[0].Type != "fun_fact" || got.Cards[1].Type != "mnemonic" || got.Cards[2].Type != "key_concept" {
		t.Errorf("type rotation wrong: %s %s %s", got.Cards[0].Type, got.Cards[1].Type, got.Cards[2].Type)
	}
	if got.Cards[0].Title != "Did you know?" || got.Cards[0].Content != "A fact." {
		t.Errorf("unexpected card: %+v", got.Cards[0])
	}
}

func TestGenerate_TruncatesLongFields(t *testing.T) {
	docs := &mockDocs{docs: []domain.Document{{ID: "d1", Chunks: []string{"chunk"}}}}
	long := strings.Repeat("x", 600)
	gen := &mockGen{
		objectFn: func(_ context.Context, _ genai.Spec, out any) error {
			return jsonInto(out, fmt.Sprintf(`{"title":%q,"content":%q,"example":%q}`, long, long, long))
		},
	}
	svc := newTestService(docs, &mockChunker{}, gen, newMockRepo())

	got, err := svc.Generate(context.Background(), "nb1", 1)
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}
	c := got.Cards[0]
	if len(c.Title) != 100 || len(c.Content) != 500 || len(c.Example) != 300 {
		t.Errorf("truncation wrong: title=%d content=%d example=%d",
			len(c.Title), len(c.Content), len(c.Example))
	}
}

func TestGenerate_NoDocuments(t *testing.T) {
	svc := newTestService(&mockDocs{}, &mockChunker{}, &mockGen{}, newMockRepo())

	got, err := svc.Generate(context.Background(), "nb1", 5)
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}
	if len(got.Cards) != 0 || got.Message != "No documents found for this notebook" {
		t.Errorf("unexpected batch: %+v", got)
	}
}

func TestGenerate_NoContent(t *testing.T) {
	docs := &mockDocs{docs: []domain.Document{{ID: "d1"}}}
	chunker := &mockChunker{chunksFn: func(context.Context, domain.Document) []string { return nil }}
	svc := newTestService(docs, chunker, &mockGen{}, newMockRepo())

	got, err := svc.Generate(context.Background(), "nb1", 5)
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}
	if got.Message != "No content found in documents" {
		t.Errorf("message = %q", got.Message)
	}
}

func TestGenerate_AllAttemptsFail(t *testing.T) {
	chunks := make([]string, 20)
	for i := range chunks {
		chunks[i] = fmt.Sprintf("chunk %d", i)
	}
	docs := &mockDocs{docs: []domain.Document{{ID: "d1", Chunks: chunks}}}
	gen := &mockGen{
		objectFn: func(context.Context, genai.Spec, any) error {
			return errors.New("model unavailable")
		},
	}
	svc := newTestService(docs, &mockChunker{}, gen, newMockRepo())

	got, err := svc.Generate(context.Background(), "nb1", 2)
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}
	if got.Message != "Could not generate cards from the content" {
		t.Errorf("message = %q", got.Message)
	}
	// Attempts are bounded at three per requested card.
	if gen.calls != 6 {
		t.Errorf("generation calls = %d, want 6", gen.calls)
	}
}

func TestGenerate_SkipsFailedChunks(t *testing.T) {
	docs := &mockDocs{docs: []domain.Document{
		{ID: "d1", Chunks: []string{"bad chunk", "good chunk"}},
	}}
	gen := &mockGen{
		objectFn: func(_ context.Context, spec genai.Spec, out any) error {
			if strings.Contains(spec.Prompt, "bad chunk") {
				return errors.New("unparseable")
			}
			return jsonInto(out, `{"title":"T","content":"C"}`)
		},
	}
	svc := newTestService(docs, &mockChunker{}, gen, newMockRepo())

	got, err := svc.Generate(context.Background(), "nb1", 2)
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}
	if len(got.Cards) != 1 || got.Cards[0].Type != "fun_fact" {
		t.Errorf("unexpected batch: %+v", got)
	}
}

func TestLike(t *testing.T) {
	repo := newMockRepo()
	svc := newTestService(&mockDocs{}, &mockChunker{}, &mockGen{}, repo)

	got, err := svc.Like(context.Background(), LikeParams{
		NotebookID: "nb1", CardID: "c1", Type: "fun_fact",
		Title: "Did you know?", Content: "A fact.", Color: "#e3f2fd",
	})
	if err != nil {
		t.Fatalf("Like failed: %v", err)
	}
	if !got.Success || got.SavedCardID != "saved-fixed" || got.Message != "Card saved successfully" {
		t.Errorf("unexpected result: %+v", got)
	}

	saved := repo.cards["saved-fixed"]
	if saved.CardID != "c1" || saved.CreatedAt != "2025-06-01T12:00:00.000000" {
		t.Errorf("unexpected saved card: %+v", saved)
	}

	// Liking again keeps the original record.
	again, err := svc.Like(context.Background(), LikeParams{NotebookID: "nb1", CardID: "c1"})
	if err != nil {
		t.Fatalf("second Like failed: %v", err)
	}
	if again.SavedCardID != "saved-fixed" || again.Message != "Card already saved" {
		t.Errorf("like not idempotent: %+v", again)
	}
	if len(repo.cards) != 1 {
		t.Errorf("saved cards = %d, want 1", len(repo.cards))
	}
}

func TestLike_MissingIDs(t *testing.T) {
	svc := newTestService(&mockDocs{}, &mockChunker{}, &mockGen{}, newMockRepo())

	_, err := svc.Like(context.Background(), LikeParams{NotebookID: "nb1"})
	if !errors.Is(err, domain.ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}

func TestUnlike_NotFound(t *testing.T) {
	svc := newTestService(&mockDocs{}, &mockChunker{}, &mockGen{}, newMockRepo())

	err := svc.Unlike(context.Background(), "nb1", "ghost")
	if !errors.Is(err, domain.ErrCardNotFound) {
		t.Fatalf("expected ErrCardNotFound, got %v", err)
	}
}

func TestCreateFolder(t *testing.T) {
	repo := newMockRepo()
	svc := newTestService(&mockDocs{}, &mockChunker{}, &mockGen{}, repo)

	f, err := svc.CreateFolder(context.Background(), "nb1", "Biology")
	if err != nil {
		t.Fatalf("CreateFolder failed: %v", err)
	}
	if f.ID != "saved-fixed" || f.Name != "Biology" || f.CreatedAt != "2025-06-01T12:00:00.000000" {
		t.Errorf("unexpected folder: %+v", f)
	}
	if _, ok := repo.folders["saved-fixed"]; !ok {
		t.Error("folder not stored")
	}
}

func TestCreateFolder_MissingName(t *testing.T) {
	svc := newTestService(&mockDocs{}, &mockChunker{}, &mockGen{}, newMockRepo())

	_, err := svc.CreateFolder(context.Background(), "nb1", "")
	if !errors.Is(err, domain.ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}

func TestDeleteFolder_UncategorizesCards(t *testing.T) {
	repo := newMockRepo()
	repo.folders["f1"] = domain.CardFolder{ID: "f1", NotebookID: "nb1", Name: "Biology"}
	repo.cards["s1"] = domain.SavedCard{ID: "s1", NotebookID: "nb1", CardID: "c1", FolderID: "f1"}
	repo.cards["s2"] = domain.SavedCard{ID: "s2", NotebookID: "nb1", CardID: "c2", FolderID: "other"}
	svc := newTestService(&mockDocs{}, &mockChunker{}, &mockGen{}, repo)

	if err := svc.DeleteFolder(context.Background(), "f1"); err != nil {
		t.Fatalf("DeleteFolder failed: %v", err)
	}

	if _, ok := repo.folders["f1"]; ok {
		t.Error("folder not deleted")
	}
	if repo.cards["s1"].FolderID != "" {
		t.Errorf("member card not uncategorized: %+v", repo.cards["s1"])
	}
	if repo.cards["s2"].FolderID != "other" {
		t.Errorf("unrelated card touched: %+v", repo.cards["s2"])
	}
}

func TestDeleteFolder_NotFound(t *testing.T) {
	svc := newTestService(&mockDocs{}, &mockChunker{}, &mockGen{}, newMockRepo())

	err := svc.DeleteFolder(context.Background(), "ghost")
	if !errors.Is(err, domain.ErrFolderNotFound) {
		t.Fatalf("expected ErrFolderNotFound, got %v", err)
	}
}

func TestMoveCard(t *testing.T) {
	repo := newMockRepo()
	repo.cards["s1"] = domain.SavedCard{ID: "s1", NotebookID: "nb1", CardID: "c1"}
	svc := newTestService(&mockDocs{}, &mockChunker{}, &mockGen{}, repo)

	got, err := svc.MoveCard(context.Background(), "s1", "f1")
	if err != nil {
		t.Fatalf("MoveCard failed: %v", err)
	}
	if got.FolderID != "f1" || repo.cards["s1"].FolderID != "f1" {
		t.Errorf("card not moved: %+v", repo.cards["s1"])
	}
}

func TestMoveCard_NotFound(t *testing.T) {
	svc := newTestService(&mockDocs{}, &mockChunker{}, &mockGen{}, newMockRepo())

	_, err := svc.MoveCard(context.Background(), "ghost", "f1")
	if !errors.Is(err, domain.ErrCardNotFound) {
		t.Fatalf("expected ErrCardNotFound, got %v", err)
	}
}
