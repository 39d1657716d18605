package chi

import (
	"net/http"

	chi5 "github.com/go-chi/chi/v5"

	carduc "github.com/prism-learn/prism/internal/usecase/card"
)

type generateCardsRequest struct {
	NotebookID string `json:"notebook_id"`
	Count      int    `json:"count"`
}

func (s *Server) handleGenerateCards(w http.ResponseWriter, r *http.Request) {
	var req generateCardsRequest
	if !decode(w, r, &req) {
		return
	}

	batch, err := s.cards.Generate(r.Context(), req.NotebookID, req.Count)
	if err != nil {
		s.handleDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, batch)
}

type likeCardRequest struct {
	NotebookID string `json:"notebook_id"`
	CardID     string `json:"card_id"`
	Type       string `json:"type"`
	Title      string `json:"title"`
	Content    string `json:"content"`
	Example    string `json:"example"`
	Color      string `json:"color"`
}

func (s *Server) handleLikeCard(w http.ResponseWriter, r *http.Request) {
	var req likeCardRequest
	if !decode(w, r, &req) {
		return
	}

	res, err := s.cards.Like(r.Context(), carduc.LikeParams{
		NotebookID: req.NotebookID,
		CardID:     req.CardID,
		Type:       req.Type,
		Title:      req.Title,
		Content:    req.Content,
		Example:    req.Example,
		Color:      req.Color,
	})
	if err != nil {
		s.handleDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

func (s *Server) handleListSavedCards(w http.ResponseWriter, r *http.Request) {
	cards, err := s.cards.Saved(r.Context(), chi5.URLParam(r, "notebookID"))
	if err != nil {
		s.handleDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"cards": cards})
}

func (s *Server) handleDeleteSavedCard(w http.ResponseWriter, r *http.Request) {
	err := s.cards.Unlike(r.Context(), chi5.URLParam(r, "notebookID"), chi5.URLParam(r, "cardID"))
	if err != nil {
		s.handleDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"success": true})
}

type createFolderRequest struct {
	NotebookID string `json:"notebook_id"`
	Name       string `json:"name"`
}

func (s *Server) handleCreateFolder(w http.ResponseWriter, r *http.Request) {
	var req createFolderRequest
	if !decode(w, r, &req) {
		return
	}

	f, err := s.cards.CreateFolder(r.Context(), req.NotebookID, req.Name)
	if err != nil {
		s.handleDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"folder": f})
}

func (s *Server) handleListFolders(w http.ResponseWriter, r *http.Request) {
	folders, err := s.cards.ListFolders(r.Context(), chi5.URLParam(r, "notebookID"))
	if err != nil {
		s.handleDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"folders": folders})
}

func (s *Server) handleDeleteFolder(w http.ResponseWriter, r *http.Request) {
	if err := s.cards.DeleteFolder(r.Context(), chi5.URLParam(r, "folderID")); err != nil {
		s.handleDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"success": true})
}

type moveCardRequest struct {
	FolderID string `json:"folder_id"`
}

func (s *Server) handleMoveCard(w http.ResponseWriter, r *http.Request) {
	var req moveCardRequest
	if !decode(w, r, &req) {
		return
	}

	if _, err := s.cards.MoveCard(r.Context(), chi5.URLParam(r, "cardID"), req.FolderID); err != nil {
		s.handleDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"success": true})
}
