package chi

import (
	"net/http"

	interviewuc "github.com/prism-learn/prism/internal/usecase/interview"
)

type startInterviewRequest struct {
	NotebookID    string `json:"notebook_id"`
	InterviewType string `json:"interview_type"`
	Difficulty    string `json:"difficulty"`
	Duration      int    `json:"duration"`
}

func (s *Server) handleStartInterview(w http.ResponseWriter, r *http.Request) {
	var req startInterviewRequest
	if !decode(w, r, &req) {
		return
	}

	started, err := s.interviews.Start(r.Context(), interviewuc.StartParams{
		NotebookID:    req.NotebookID,
		InterviewType: req.InterviewType,
		Difficulty:    req.Difficulty,
		Duration:      req.Duration,
	})
	if err != nil {
		s.handleDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, started)
}

type respondInterviewRequest struct {
	SessionID    string `json:"session_id"`
	UserResponse string `json:"user_response"`
}

func (s *Server) handleRespondInterview(w http.ResponseWriter, r *http.Request) {
	var req respondInterviewRequest
	if !decode(w, r, &req) {
		return
	}

	next, err := s.interviews.Respond(r.Context(), req.SessionID, req.UserResponse)
	if err != nil {
		s.handleDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"next_question": next})
}

type endInterviewRequest struct {
	SessionID string `json:"session_id"`
}

func (s *Server) handleEndInterview(w http.ResponseWriter, r *http.Request) {
	var req endInterviewRequest
	if !decode(w, r, &req) {
		return
	}

	ended, err := s.interviews.End(r.Context(), req.SessionID)
	if err != nil {
		s.handleDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, ended)
}
