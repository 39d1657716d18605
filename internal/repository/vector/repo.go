package vector

import (
	"context"
	"encoding/binary"
	"fmt"
	"math"
	"strconv"

	"github.com/prism-learn/prism/internal/db"
	"github.com/prism-learn/prism/internal/domain"
)

// deleteScanLimit caps one FT.SEARCH page during filtered deletion.
const deleteScanLimit = 500

// store is the consumer interface for vector records (ISP).
type store interface {
	HSetMulti(ctx context.Context, items []db.HashSetItem) error
	DelMulti(ctx context.Context, keys []string) error
	Scan(ctx context.Context, pattern string) ([]string, error)
	CreateIndex(ctx context.Context, def *db.IndexDefinition) error
	DropIndex(ctx context.Context, name string) error
	IndexExists(ctx context.Context, name string) (bool, error)
	SearchKNN(ctx context.Context, q *db.KNNQuery) (*db.SearchResult, error)
	SearchList(ctx context.Context, index, query string, offset, limit int, fields []string) (*db.SearchResult, error)
}

// HNSWConfig holds HNSW index build parameters.
type HNSWConfig struct {
	M           int
	EFConstruct int
}

// Repo stores embedded chunks as hashes behind one FT vector index.
type Repo struct {
	store       store
	prefix      string
	dim         int
	upsertBatch int
	hnsw        HNSWConfig
}

// New creates a vector repository. dim is the embedding dimensionality,
// upsertBatch the pipelined HSET batch size.
func New(s store, prefix string, dim, upsertBatch int) *Repo {
	if prefix == "" {
		prefix = domain.DefaultKeyPrefix
	}
	if upsertBatch <= 0 {
		upsertBatch = 100
	}
	return &Repo{
		store:       s,
		prefix:      prefix,
		dim:         dim,
		upsertBatch: upsertBatch,
		hnsw:        HNSWConfig{M: 16, EFConstruct: 200},
	}
}

// WithHNSW configures HNSW index parameters.
func (r *Repo) WithHNSW(cfg HNSWConfig) *Repo {
	if cfg.M > 0 {
		r.hnsw.M = cfg.M
	}
	if cfg.EFConstruct > 0 {
		r.hnsw.EFConstruct = cfg.EFConstruct
	}
	return r
}

// EnsureIndex creates the vector index if it does not exist yet.
func (r *Repo) EnsureIndex(ctx context.Context) error {
	exists, err := r.store.IndexExists(ctx, r.indexName())
	if err != nil {
		return fmt.Errorf("check index exists: %w", err)
	}
	if exists {
		return nil
	}

	def := &db.IndexDefinition{
		Name:        r.indexName(),
		StorageType: db.StorageHash,
		Prefixes:    []string{r.keyPrefix()},
		Fields: []db.IndexField{
			{Name: "doc_id", Type: db.IndexFieldTag},
			{Name: "notebook_id", Type: db.IndexFieldTag},
			{Name: "chunk_index", Type: db.IndexFieldNumeric},
			{
				Name:              "vector",
				Type:              db.IndexFieldVector,
				VectorAlgo:        db.VectorHNSW,
				VectorDim:         r.dim,
				VectorDistance:    db.DistanceCosine,
				VectorM:           r.hnsw.M,
				VectorEFConstruct: r.hnsw.EFConstruct,
			},
		},
	}

	if err := r.store.CreateIndex(ctx, def); err != nil {
		return fmt.Errorf("create vector index: %w", err)
	}
	return nil
}

// Upsert writes embedded chunks in pipelined batches.
func (r *Repo) Upsert(ctx context.Context, records []domain.VectorRecord) error {
	for start := 0; start < len(records); start += r.upsertBatch {
		end := min(start+r.upsertBatch, len(records))

		items := make([]db.HashSetItem, 0, end-start)
		for _, rec := range records[start:end] {
			items = append(items, db.HashSetItem{
				Key:    r.key(rec.ID),
				Fields: recordToHash(rec),
			})
		}

		if err := r.store.HSetMulti(ctx, items); err != nil {
			return fmt.Errorf("hset batch at %d: %w", start, err)
		}
	}
	return nil
}

// Search runs a KNN query scoped to a notebook and optional document set.
func (r *Repo) Search(ctx context.Context, scope domain.Scope, vector []float32, k int) ([]domain.ChunkMatch, error) {
	tags := []db.TagFilter{
		{Key: "notebook_id", Values: []string{scope.NotebookID}},
	}
	if len(scope.DocumentIDs) > 0 {
		tags = append(tags, db.TagFilter{Key: "doc_id", Values: scope.DocumentIDs})
	}

	result, err := r.store.SearchKNN(ctx, &db.KNNQuery{
		IndexName:    r.indexName(),
		Tags:         tags,
		Vector:       vector,
		K:            k,
		ReturnFields: []string{"text", "filename", "chunk_index", "__vector_score"},
	})
	if err != nil {
		return nil, fmt.Errorf("knn search: %w", err)
	}

	matches := make([]domain.ChunkMatch, 0, len(result.Entries))
	for _, e := range result.Entries {
		chunkIndex, _ := strconv.Atoi(e.Fields["chunk_index"])
		matches = append(matches, domain.ChunkMatch{
			Text:       e.Fields["text"],
			Filename:   e.Fields["filename"],
			ChunkIndex: chunkIndex,
			Score:      e.Score,
		})
	}
	return matches, nil
}

// DeleteByDocument removes all vectors of one document. Best effort: returns
// the number of keys deleted even when a later page fails.
func (r *Repo) DeleteByDocument(ctx context.Context, docID string) (int, error) {
	return r.deleteByQuery(ctx, fmt.Sprintf("@doc_id:{%s}", db.EscapeTag(docID)))
}

// DeleteByNotebook removes all vectors of one notebook. Best effort.
func (r *Repo) DeleteByNotebook(ctx context.Context, notebookID string) (int, error) {
	return r.deleteByQuery(ctx, fmt.Sprintf("@notebook_id:{%s}", db.EscapeTag(notebookID)))
}

// DeleteAll removes every vector record via SCAN. Best effort.
func (r *Repo) DeleteAll(ctx context.Context) (int, error) {
	keys, err := r.store.Scan(ctx, r.keyPrefix()+"*")
	if err != nil {
		return 0, fmt.Errorf("scan vectors: %w", err)
	}
	if len(keys) == 0 {
		return 0, nil
	}
	if err := r.store.DelMulti(ctx, keys); err != nil {
		return 0, fmt.Errorf("del vectors: %w", err)
	}
	return len(keys), nil
}

// deleteByQuery pages through FT.SEARCH hits and deletes them. Always
// searches from offset 0: deletion shrinks the result set between pages.
func (r *Repo) deleteByQuery(ctx context.Context, query string) (int, error) {
	deleted := 0
	for {
		result, err := r.store.SearchList(ctx, r.indexName(), query, 0, deleteScanLimit, []string{"chunk_index"})
		if err != nil {
			return deleted, fmt.Errorf("search for delete: %w", err)
		}
		if len(result.Entries) == 0 {
			return deleted, nil
		}

		keys := make([]string, 0, len(result.Entries))
		for _, e := range result.Entries {
			keys = append(keys, e.Key)
		}
		if err := r.store.DelMulti(ctx, keys); err != nil {
			return deleted, fmt.Errorf("del batch: %w", err)
		}
		deleted += len(keys)

		if len(result.Entries) < deleteScanLimit {
			return deleted, nil
		}
	}
}

func (r *Repo) indexName() string {
	return r.prefix + "vec:idx"
}

func (r *Repo) keyPrefix() string {
	return r.prefix + "vec:"
}

func (r *Repo) key(recordID string) string {
	return r.keyPrefix() + recordID
}

// recordToHash converts a vector record to HSET fields. The vector is the
// raw little-endian float32 blob FT.SEARCH expects.
func recordToHash(rec domain.VectorRecord) map[string]string {
	return map[string]string{
		"doc_id":      rec.DocID,
		"notebook_id": rec.NotebookID,
		"filename":    rec.Filename,
		"chunk_index": strconv.Itoa(rec.ChunkIndex),
		"text":        rec.Text,
		"vector":      vectorToBytes(rec.Vector),
	}
}

func vectorToBytes(v []float32) string {
	buf := make([]byte, len(v)*4)
	for i, f := range v {
		binary.LittleEndian.PutUint32(buf[i*4:], math.Float32bits(f))
	}
	return string(buf)
}
