package vector

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/prism-learn/prism/internal/db"
	"github.com/prism-learn/prism/internal/domain"
)

func TestEnsureIndex_SkipsWhenPresent(t *testing.T) {
	repo, ms := newTestRepo(t)
	ms.indexExistsFn = func(_ context.Context, name string) (bool, error) {
		if name != "prism:vec:idx" {
			t.Errorf("index name = %q, want prism:vec:idx", name)
		}
		return true, nil
	}
	ms.createIndexFn = func(_ context.Context, _ *db.IndexDefinition) error {
		t.Error("CreateIndex should not be called when index exists")
		return nil
	}

	if err := repo.EnsureIndex(context.Background()); err != nil {
		t.Fatalf("EnsureIndex failed: %v", err)
	}
}

func TestEnsureIndex_CreatesDefinition(t *testing.T) {
	repo, ms := newTestRepo(t)

	var got *db.IndexDefinition
	ms.createIndexFn = func(_ context.Context, def *db.IndexDefinition) error {
		got = def
		return nil
	}

	if err := repo.EnsureIndex(context.Background()); err != nil {
		t.Fatalf("EnsureIndex failed: %v", err)
	}
	if got == nil {
		t.Fatal("expected CreateIndex call")
	}
	if got.StorageType != db.StorageHash {
		t.Errorf("storage = %v, want HASH", got.StorageType)
	}
	if len(got.Prefixes) != 1 || got.Prefixes[0] != "prism:vec:" {
		t.Errorf("prefixes = %v, want [prism:vec:]", got.Prefixes)
	}

	var vecField *db.IndexField
	for i := range got.Fields {
		if got.Fields[i].Type == db.IndexFieldVector {
			vecField = &got.Fields[i]
		}
	}
	if vecField == nil {
		t.Fatal("expected a vector field")
	}
	if vecField.VectorDim != 4 {
		t.Errorf("dim = %d, want 4", vecField.VectorDim)
	}
	if vecField.VectorDistance != db.DistanceCosine {
		t.Errorf("distance = %v, want COSINE", vecField.VectorDistance)
	}
}

func TestUpsert_Batches(t *testing.T) {
	repo, ms := newTestRepo(t) // batch size 2

	var batches [][]db.HashSetItem
	ms.hsetMultiFn = func(_ context.Context, items []db.HashSetItem) error {
		batches = append(batches, items)
		return nil
	}

	records := make([]domain.VectorRecord, 5)
	for i := range records {
		records[i] = domain.VectorRecord{
			ID:         fmt.Sprintf("doc1_%d", i),
			DocID:      "doc1",
			NotebookID: "nb1",
			ChunkIndex: i,
			Text:       "chunk",
			Vector:     []float32{1, 2, 3, 4},
		}
	}

	if err := repo.Upsert(context.Background(), records); err != nil {
		t.Fatalf("Upsert failed: %v", err)
	}

	if len(batches) != 3 {
		t.Fatalf("expected 3 batches, got %d", len(batches))
	}
	if len(batches[0]) != 2 || len(batches[1]) != 2 || len(batches[2]) != 1 {
		t.Errorf("unexpected batch sizes: %d/%d/%d", len(batches[0]), len(batches[1]), len(batches[2]))
	}
	if batches[0][0].Key != "prism:vec:doc1_0" {
		t.Errorf("key = %q, want prism:vec:doc1_0", batches[0][0].Key)
	}
	fields := batches[0][0].Fields
	if fields["doc_id"] != "doc1" || fields["notebook_id"] != "nb1" || fields["chunk_index"] != "0" {
		t.Errorf("unexpected fields: %v", fields)
	}
	if len(fields["vector"]) != 16 {
		t.Errorf("vector blob = %d bytes, want 16", len(fields["vector"]))
	}
}

func TestSearch_ScopesToNotebookAndDocs(t *testing.T) {
	repo, ms := newTestRepo(t)

	var gotQuery *db.KNNQuery
	ms.searchKNNFn = func(_ context.Context, q *db.KNNQuery) (*db.SearchResult, error) {
		gotQuery = q
		return &db.SearchResult{
			Total: 1,
			Entries: []db.SearchEntry{
				{
					Key:   "prism:vec:doc1_3",
					Score: 0.91,
					Fields: map[string]string{
						"text": "the chunk", "filename": "a.pdf", "chunk_index": "3",
					},
				},
			},
		}, nil
	}

	scope := domain.Scope{NotebookID: "nb1", DocumentIDs: []string{"doc1", "doc2"}}
	matches, err := repo.Search(context.Background(), scope, []float32{1, 2, 3, 4}, 5)
	if err != nil {
		t.Fatalf("Search failed: %v", err)
	}

	if gotQuery.K != 5 {
		t.Errorf("k = %d, want 5", gotQuery.K)
	}
	if len(gotQuery.Tags) != 2 {
		t.Fatalf("expected 2 tag filters, got %d", len(gotQuery.Tags))
	}
	if gotQuery.Tags[0].Key != "notebook_id" || gotQuery.Tags[0].Values[0] != "nb1" {
		t.Errorf("unexpected notebook filter: %+v", gotQuery.Tags[0])
	}
	if gotQuery.Tags[1].Key != "doc_id" || len(gotQuery.Tags[1].Values) != 2 {
		t.Errorf("unexpected doc filter: %+v", gotQuery.Tags[1])
	}

	if len(matches) != 1 {
		t.Fatalf("expected 1 match, got %d", len(matches))
	}
	m := matches[0]
	if m.Text != "the chunk" || m.Filename != "a.pdf" || m.ChunkIndex != 3 || m.Score != 0.91 {
		t.Errorf("unexpected match: %+v", m)
	}
}

func TestDeleteByDocument_PagesAndCounts(t *testing.T) {
	repo, ms := newTestRepo(t)

	pages := 0
	ms.searchListFn = func(_ context.Context, _, query string, offset, limit int, _ []string) (*db.SearchResult, error) {
		if query != `@doc_id:{doc\-1}` {
			t.Errorf("query = %q", query)
		}
		if offset != 0 {
			t.Errorf("offset = %d, want 0 (deletion shrinks the set)", offset)
		}
		pages++
		if pages == 1 {
			entries := make([]db.SearchEntry, deleteScanLimit)
			for i := range entries {
				entries[i] = db.SearchEntry{Key: fmt.Sprintf("prism:vec:doc-1_%d", i)}
			}
			return &db.SearchResult{Total: deleteScanLimit + 2, Entries: entries}, nil
		}
		return &db.SearchResult{
			Total:   2,
			Entries: []db.SearchEntry{{Key: "prism:vec:doc-1_500"}, {Key: "prism:vec:doc-1_501"}},
		}, nil
	}

	deleted, err := repo.DeleteByDocument(context.Background(), "doc-1")
	if err != nil {
		t.Fatalf("DeleteByDocument failed: %v", err)
	}
	if deleted != deleteScanLimit+2 {
		t.Errorf("deleted = %d, want %d", deleted, deleteScanLimit+2)
	}
}

func TestDeleteByNotebook_BestEffortOnError(t *testing.T) {
	repo, ms := newTestRepo(t)

	calls := 0
	ms.searchListFn = func(_ context.Context, _, _ string, _, _ int, _ []string) (*db.SearchResult, error) {
		calls++
		if calls == 1 {
			entries := make([]db.SearchEntry, deleteScanLimit)
			for i := range entries {
				entries[i] = db.SearchEntry{Key: fmt.Sprintf("prism:vec:d_%d", i)}
			}
			return &db.SearchResult{Total: deleteScanLimit, Entries: entries}, nil
		}
		return nil, errors.New("index gone")
	}

	deleted, err := repo.DeleteByNotebook(context.Background(), "nb1")
	if err == nil {
		t.Fatal("expected error from second page")
	}
	if deleted != deleteScanLimit {
		t.Errorf("deleted = %d, want %d (first page succeeded)", deleted, deleteScanLimit)
	}
}

func TestDeleteAll(t *testing.T) {
	repo, ms := newTestRepo(t)

	ms.scanFn = func(_ context.Context, pattern string) ([]string, error) {
		if pattern != "prism:vec:*" {
			t.Errorf("pattern = %q, want prism:vec:*", pattern)
		}
		return []string{"prism:vec:a_0", "prism:vec:a_1"}, nil
	}
	var gotKeys []string
	ms.delMultiFn = func(_ context.Context, keys []string) error {
		gotKeys = keys
		return nil
	}

	deleted, err := repo.DeleteAll(context.Background())
	if err != nil {
		t.Fatalf("DeleteAll failed: %v", err)
	}
	if deleted != 2 || len(gotKeys) != 2 {
		t.Errorf("deleted = %d, keys = %v", deleted, gotKeys)
	}
}
