package chi

import (
	"net/http"

	chi5 "github.com/go-chi/chi/v5"

	"github.com/prism-learn/prism/internal/domain"
)

type askRequest struct {
	Question    string   `json:"question"`
	NotebookID  string   `json:"notebook_id"`
	DocumentIDs []string `json:"document_ids"`
}

func (s *Server) handleAsk(w http.ResponseWriter, r *http.Request) {
	var req askRequest
	if !decode(w, r, &req) {
		return
	}

	ans, err := s.qa.Ask(r.Context(), domain.Scope{
		NotebookID:  req.NotebookID,
		DocumentIDs: req.DocumentIDs,
	}, req.Question)
	if err != nil {
		s.handleDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, ans)
}

func (s *Server) handleGetChatHistory(w http.ResponseWriter, r *http.Request) {
	msgs, err := s.qa.History(r.Context(), chi5.URLParam(r, "notebookID"))
	if err != nil {
		s.handleDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"messages": msgs})
}

type saveChatHistoryRequest struct {
	NotebookID string               `json:"notebook_id"`
	Messages   []domain.ChatMessage `json:"messages"`
}

func (s *Server) handleSaveChatHistory(w http.ResponseWriter, r *http.Request) {
	var req saveChatHistoryRequest
	if !decode(w, r, &req) {
		return
	}

	if err := s.qa.SaveHistory(r.Context(), req.NotebookID, req.Messages); err != nil {
		s.handleDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "Chat history saved"})
}

func (s *Server) handleClearChatHistory(w http.ResponseWriter, r *http.Request) {
	if err := s.qa.ClearHistory(r.Context(), chi5.URLParam(r, "notebookID")); err != nil {
		s.handleDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "Chat history cleared"})
}
