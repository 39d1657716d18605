package domain

// CardTypes is the rotation of bite-size card flavors, cycled round-robin
// during generation for variety.
var CardTypes = []string{
	"fun_fact", "mnemonic", "key_concept", "quote",
	"summary", "tip", "question", "definition",
}

// Card is a generated bite-size learning card.
type Card struct {
	Type    string `json:"type"`
	Title   string `json:"title"`
	Content string `json:"content"`
	Example string `json:"example,omitempty"`
}

// SavedCard is a card the user liked, persisted per notebook.
type SavedCard struct {
	ID         string `json:"id"`
	NotebookID string `json:"notebook_id"`
	CardID     string `json:"card_id"`
	Type       string `json:"type"`
	Title      string `json:"title"`
	Content    string `json:"content"`
	Example    string `json:"example,omitempty"`
	Color      string `json:"color"`
	FolderID   string `json:"folder_id,omitempty"`
	CreatedAt  string `json:"created_at"`
}

// CardFolder organizes saved cards within a notebook.
type CardFolder struct {
	ID         string `json:"id"`
	NotebookID string `json:"notebook_id"`
	Name       string `json:"name"`
	CreatedAt  string `json:"created_at"`
}
