package chi

import (
	"net/http"

	chi5 "github.com/go-chi/chi/v5"

	noteuc "github.com/prism-learn/prism/internal/usecase/note"
)

func (s *Server) handleListNotes(w http.ResponseWriter, r *http.Request) {
	notes, err := s.notes.List(r.Context(), chi5.URLParam(r, "notebookID"))
	if err != nil {
		s.handleDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"notes": notes})
}

type createNoteRequest struct {
	NotebookID string   `json:"notebook_id"`
	Title      string   `json:"title"`
	Content    string   `json:"content"`
	NoteType   string   `json:"note_type"`
	Color      string   `json:"color"`
	Tags       []string `json:"tags"`
}

func (s *Server) handleCreateNote(w http.ResponseWriter, r *http.Request) {
	var req createNoteRequest
	if !decode(w, r, &req) {
		return
	}

	n, err := s.notes.Create(r.Context(), noteuc.CreateParams{
		NotebookID: req.NotebookID,
		Title:      req.Title,
		Content:    req.Content,
		NoteType:   req.NoteType,
		Color:      req.Color,
		Tags:       req.Tags,
	})
	if err != nil {
		s.handleDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, n)
}

type updateNoteRequest struct {
	Title   *string  `json:"title"`
	Content *string  `json:"content"`
	Color   *string  `json:"color"`
	Tags    []string `json:"tags"`
}

func (s *Server) handleUpdateNote(w http.ResponseWriter, r *http.Request) {
	var req updateNoteRequest
	if !decode(w, r, &req) {
		return
	}

	n, err := s.notes.Update(r.Context(), chi5.URLParam(r, "noteID"), noteuc.UpdateParams{
		Title:   req.Title,
		Content: req.Content,
		Color:   req.Color,
		Tags:    req.Tags,
	})
	if err != nil {
		s.handleDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, n)
}

func (s *Server) handleDeleteNote(w http.ResponseWriter, r *http.Request) {
	if err := s.notes.Delete(r.Context(), chi5.URLParam(r, "noteID")); err != nil {
		s.handleDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "Note deleted successfully"})
}

type generateNoteRequest struct {
	NotebookID  string   `json:"notebook_id"`
	DocumentIDs []string `json:"document_ids"`
	NoteType    string   `json:"note_type"`
	Topic       string   `json:"topic"`
}

func (s *Server) handleGenerateNote(w http.ResponseWriter, r *http.Request) {
	var req generateNoteRequest
	if !decode(w, r, &req) {
		return
	}

	n, err := s.notes.Generate(r.Context(), noteuc.GenerateParams{
		NotebookID:  req.NotebookID,
		DocumentIDs: req.DocumentIDs,
		NoteType:    req.NoteType,
		Topic:       req.Topic,
	})
	if err != nil {
		s.handleDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, n)
}
