package domain

// Notebook is the primary organizational unit: documents, notes, quizzes,
// chat history, and cards all hang off a notebook.
type Notebook struct {
	ID            string `json:"id"`
	Name          string `json:"name"`
	Color         string `json:"color"`
	Icon          string `json:"icon"`
	CreatedAt     string `json:"created_at"`
	DocumentCount int    `json:"document_count"`
}

// Default notebook appearance.
const (
	DefaultNotebookColor = "#2f5bea"
	DefaultNotebookIcon  = "📚"
)
