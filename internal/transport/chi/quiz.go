package chi

import (
	"net/http"

	"github.com/prism-learn/prism/internal/domain"
	mocktestuc "github.com/prism-learn/prism/internal/usecase/mocktest"
	quizuc "github.com/prism-learn/prism/internal/usecase/quiz"
)

type generateQuizRequest struct {
	NotebookID   string   `json:"notebook_id"`
	DocumentIDs  []string `json:"document_ids"`
	NumQuestions int      `json:"num_questions"`
	Difficulty   string   `json:"difficulty"`
}

func (s *Server) handleGenerateQuiz(w http.ResponseWriter, r *http.Request) {
	var req generateQuizRequest
	if !decode(w, r, &req) {
		return
	}

	quiz, err := s.quizzes.Generate(r.Context(), quizuc.GenerateParams{
		NotebookID:   req.NotebookID,
		DocumentIDs:  req.DocumentIDs,
		NumQuestions: req.NumQuestions,
		Difficulty:   req.Difficulty,
	})
	if err != nil {
		s.handleDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, quiz)
}

type submitQuizRequest struct {
	QuizID  string              `json:"quiz_id"`
	Answers []domain.QuizAnswer `json:"answers"`
}

func (s *Server) handleSubmitQuiz(w http.ResponseWriter, r *http.Request) {
	var req submitQuizRequest
	if !decode(w, r, &req) {
		return
	}

	result, err := s.quizzes.Submit(r.Context(), req.QuizID, req.Answers)
	if err != nil {
		s.handleDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

type generateMockTestRequest struct {
	NotebookID  string   `json:"notebook_id"`
	DocumentIDs []string `json:"document_ids"`
	NumTheory   int      `json:"num_theory"`
	NumCoding   int      `json:"num_coding"`
	NumReorder  int      `json:"num_reorder"`
	Difficulty  string   `json:"difficulty"`
	Language    string   `json:"language"`
}

func (s *Server) handleGenerateMockTest(w http.ResponseWriter, r *http.Request) {
	var req generateMockTestRequest
	if !decode(w, r, &req) {
		return
	}

	test, err := s.mocktests.Generate(r.Context(), mocktestuc.GenerateParams{
		NotebookID:  req.NotebookID,
		DocumentIDs: req.DocumentIDs,
		NumTheory:   req.NumTheory,
		NumCoding:   req.NumCoding,
		NumReorder:  req.NumReorder,
		Difficulty:  req.Difficulty,
		Language:    req.Language,
	})
	if err != nil {
		s.handleDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, test)
}

type submitMockTestRequest struct {
	TestID         string                 `json:"test_id"`
	TheoryAnswers  []domain.TheoryAnswer  `json:"theory_answers"`
	CodingAnswers  []domain.CodingAnswer  `json:"coding_answers"`
	ReorderAnswers []domain.ReorderAnswer `json:"reorder_answers"`
}

func (s *Server) handleSubmitMockTest(w http.ResponseWriter, r *http.Request) {
	var req submitMockTestRequest
	if !decode(w, r, &req) {
		return
	}

	result, err := s.mocktests.Submit(r.Context(), req.TestID, mocktestuc.Submission{
		TheoryAnswers:  req.TheoryAnswers,
		CodingAnswers:  req.CodingAnswers,
		ReorderAnswers: req.ReorderAnswers,
	})
	if err != nil {
		s.handleDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}
