package chi

import (
	"net/http"

	chi5 "github.com/go-chi/chi/v5"

	"github.com/prism-learn/prism/internal/domain"
	annotationuc "github.com/prism-learn/prism/internal/usecase/annotation"
)

func (s *Server) handleListAnnotations(w http.ResponseWriter, r *http.Request) {
	annotations, err := s.annotations.List(r.Context(),
		chi5.URLParam(r, "notebookID"), r.URL.Query().Get("document_id"))
	if err != nil {
		s.handleDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"annotations": annotations})
}

type createAnnotationRequest struct {
	NotebookID      string          `json:"notebook_id"`
	DocumentID      string          `json:"document_id"`
	PageNumber      int             `json:"page_number"`
	HighlightedText string          `json:"highlighted_text"`
	Position        domain.Position `json:"position"`
	Color           string          `json:"color"`
	Note            string          `json:"note"`
}

func (s *Server) handleCreateAnnotation(w http.ResponseWriter, r *http.Request) {
	var req createAnnotationRequest
	if !decode(w, r, &req) {
		return
	}

	a, err := s.annotations.Create(r.Context(), annotationuc.CreateParams{
		NotebookID:      req.NotebookID,
		DocumentID:      req.DocumentID,
		PageNumber:      req.PageNumber,
		HighlightedText: req.HighlightedText,
		Position:        req.Position,
		Color:           req.Color,
		Note:            req.Note,
	})
	if err != nil {
		s.handleDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, a)
}

type updateAnnotationRequest struct {
	Color *string `json:"color"`
	Note  *string `json:"note"`
}

func (s *Server) handleUpdateAnnotation(w http.ResponseWriter, r *http.Request) {
	var req updateAnnotationRequest
	if !decode(w, r, &req) {
		return
	}

	a, err := s.annotations.Update(r.Context(), chi5.URLParam(r, "annotationID"), annotationuc.UpdateParams{
		Color: req.Color,
		Note:  req.Note,
	})
	if err != nil {
		s.handleDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, a)
}

func (s *Server) handleDeleteAnnotation(w http.ResponseWriter, r *http.Request) {
	if err := s.annotations.Delete(r.Context(), chi5.URLParam(r, "annotationID")); err != nil {
		s.handleDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "Annotation deleted successfully"})
}

type queryAnnotationRequest struct {
	AnnotationID string `json:"annotation_id"`
	Question     string `json:"question"`
}

func (s *Server) handleQueryAnnotation(w http.ResponseWriter, r *http.Request) {
	var req queryAnnotationRequest
	if !decode(w, r, &req) {
		return
	}

	res, err := s.annotations.Query(r.Context(), req.AnnotationID, req.Question)
	if err != nil {
		s.handleDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}
