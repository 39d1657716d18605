package domain

// ChatMessage is one entry in a notebook's persisted Q&A history.
type ChatMessage struct {
	Role      string `json:"role"` // "user" or "assistant"
	Content   string `json:"content"`
	CreatedAt string `json:"created_at"`
}

// Source points at the chunk a Q&A answer was grounded on.
type Source struct {
	Filename   string  `json:"filename"`
	ChunkIndex int     `json:"chunk_index"`
	Score      float64 `json:"score"`
}
