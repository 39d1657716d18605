package domain

// Position locates a highlight on a PDF page.
type Position struct {
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// Annotation is a highlighted region of a PDF with an optional note.
type Annotation struct {
	ID              string   `json:"id"`
	NotebookID      string   `json:"notebook_id"`
	DocumentID      string   `json:"document_id"`
	PageNumber      int      `json:"page_number"`
	HighlightedText string   `json:"highlighted_text"`
	Position        Position `json:"position"`
	Color           string   `json:"color"`
	Note            string   `json:"note,omitempty"`
	CreatedAt       string   `json:"created_at"`
}
