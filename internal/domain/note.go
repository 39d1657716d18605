package domain

// Note types as stored. AI-generated notes carry the ai_* subtypes so the
// client can render them (mind maps, flashcards, quizzes, timelines).
const (
	NoteTypeText       = "text"
	NoteTypeRichText   = "rich_text"
	NoteTypeDrawing    = "drawing"
	NoteTypeMindMap    = "ai_mindmap"
	NoteTypeFlashcards = "ai_flashcards"
	NoteTypeQuiz       = "ai_quiz"
	NoteTypeTimeline   = "ai_timeline"
)

// Note is a user-authored or AI-generated note attached to a notebook.
type Note struct {
	ID         string   `json:"id"`
	NotebookID string   `json:"notebook_id"`
	Title      string   `json:"title"`
	Content    string   `json:"content"`
	NoteType   string   `json:"note_type"`
	Color      string   `json:"color"`
	Tags       []string `json:"tags"`
	CreatedAt  string   `json:"created_at"`
	UpdatedAt  string   `json:"updated_at"`
}
