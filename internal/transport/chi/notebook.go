package chi

import (
	"net/http"

	chi5 "github.com/go-chi/chi/v5"

	notebookuc "github.com/prism-learn/prism/internal/usecase/notebook"
)

type createNotebookRequest struct {
	Name  string `json:"name"`
	Color string `json:"color"`
	Icon  string `json:"icon"`
}

func (s *Server) handleCreateNotebook(w http.ResponseWriter, r *http.Request) {
	var req createNotebookRequest
	if !decode(w, r, &req) {
		return
	}

	nb, err := s.notebooks.Create(r.Context(), notebookuc.CreateParams{
		Name:  req.Name,
		Color: req.Color,
		Icon:  req.Icon,
	})
	if err != nil {
		s.handleDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, nb)
}

func (s *Server) handleListNotebooks(w http.ResponseWriter, r *http.Request) {
	notebooks, err := s.notebooks.List(r.Context())
	if err != nil {
		s.handleDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, notebooks)
}

func (s *Server) handleGetNotebook(w http.ResponseWriter, r *http.Request) {
	nb, err := s.notebooks.Get(r.Context(), chi5.URLParam(r, "notebookID"))
	if err != nil {
		s.handleDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, nb)
}

type updateNotebookRequest struct {
	Name  *string `json:"name"`
	Color *string `json:"color"`
	Icon  *string `json:"icon"`
}

func (s *Server) handleUpdateNotebook(w http.ResponseWriter, r *http.Request) {
	var req updateNotebookRequest
	if !decode(w, r, &req) {
		return
	}

	nb, err := s.notebooks.Update(r.Context(), chi5.URLParam(r, "notebookID"), notebookuc.UpdateParams{
		Name:  req.Name,
		Color: req.Color,
		Icon:  req.Icon,
	})
	if err != nil {
		s.handleDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, nb)
}

func (s *Server) handleDeleteNotebook(w http.ResponseWriter, r *http.Request) {
	if err := s.notebooks.Delete(r.Context(), chi5.URLParam(r, "notebookID")); err != nil {
		s.handleDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "Notebook deleted successfully"})
}
