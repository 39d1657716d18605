package domain

// Document is an uploaded PDF with its cached text chunks.
type Document struct {
	ID          string   `json:"id"`
	NotebookID  string   `json:"notebook_id"`
	Filename    string   `json:"filename"`
	UploadedAt  string   `json:"uploaded_at"`
	ChunksCount int      `json:"chunks_count"`
	Chunks      []string `json:"chunks,omitempty"`
	FilePath    string   `json:"file_path,omitempty"`
}

// VectorRecord is a single embedded chunk ready for upsert.
// ID follows the `{doc_id}_{chunk_index}` convention.
type VectorRecord struct {
	ID         string
	DocID      string
	NotebookID string
	Filename   string
	ChunkIndex int
	Text       string
	Vector     []float32
}

// ChunkMatch is a retrieved chunk with its similarity score.
type ChunkMatch struct {
	Text       string  `json:"text"`
	Filename   string  `json:"filename"`
	ChunkIndex int     `json:"chunk_index"`
	Score      float64 `json:"score"`
}

// Scope restricts retrieval to a notebook and, optionally, specific documents.
type Scope struct {
	NotebookID  string
	DocumentIDs []string // empty means all documents in the notebook
}
