// Package chi exposes the learning backend as an HTTP/JSON API.
package chi

import (
	"encoding/json"
	"errors"
	"net/http"

	chi5 "github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/prism-learn/prism/internal/domain"
	adminuc "github.com/prism-learn/prism/internal/usecase/admin"
	annotationuc "github.com/prism-learn/prism/internal/usecase/annotation"
	carduc "github.com/prism-learn/prism/internal/usecase/card"
	documentuc "github.com/prism-learn/prism/internal/usecase/document"
	healthuc "github.com/prism-learn/prism/internal/usecase/health"
	interviewuc "github.com/prism-learn/prism/internal/usecase/interview"
	mocktestuc "github.com/prism-learn/prism/internal/usecase/mocktest"
	noteuc "github.com/prism-learn/prism/internal/usecase/note"
	notebookuc "github.com/prism-learn/prism/internal/usecase/notebook"
	qauc "github.com/prism-learn/prism/internal/usecase/qa"
	quizuc "github.com/prism-learn/prism/internal/usecase/quiz"
)

// Server routes HTTP requests to the use case services.
type Server struct {
	notebooks   *notebookuc.Service
	documents   *documentuc.Service
	qa          *qauc.Service
	quizzes     *quizuc.Service
	mocktests   *mocktestuc.Service
	notes       *noteuc.Service
	annotations *annotationuc.Service
	interviews  *interviewuc.Service
	cards       *carduc.Service
	admin       *adminuc.Service
	health      *healthuc.Service
	logger      *zap.Logger
}

// NewServer creates an HTTP API server.
func NewServer(
	notebooks *notebookuc.Service,
	documents *documentuc.Service,
	qa *qauc.Service,
	quizzes *quizuc.Service,
	mocktests *mocktestuc.Service,
	notes *noteuc.Service,
	annotations *annotationuc.Service,
	interviews *interviewuc.Service,
	cards *carduc.Service,
	admin *adminuc.Service,
	health *healthuc.Service,
	logger *zap.Logger,
) *Server {
	return &Server{
		notebooks:   notebooks,
		documents:   documents,
		qa:          qa,
		quizzes:     quizzes,
		mocktests:   mocktests,
		notes:       notes,
		annotations: annotations,
		interviews:  interviews,
		cards:       cards,
		admin:       admin,
		health:      health,
		logger:      logger,
	}
}

// Register mounts every route on the router. Middleware is the caller's
// business; this only wires paths to handlers.
func (s *Server) Register(r chi5.Router) {
	r.Get("/", s.handleRoot)
	r.Get("/health", s.handleHealth)
	r.Get("/metrics", promhttp.Handler().ServeHTTP)

	r.Post("/notebooks", s.handleCreateNotebook)
	r.Get("/notebooks", s.handleListNotebooks)
	r.Get("/notebooks/{notebookID}", s.handleGetNotebook)
	r.Put("/notebooks/{notebookID}", s.handleUpdateNotebook)
	r.Delete("/notebooks/{notebookID}", s.handleDeleteNotebook)

	r.Post("/upload-pdfs/{notebookID}", s.handleUploadPDFs)
	r.Get("/documents/{notebookID}", s.handleListDocuments)
	r.Get("/documents/{notebookID}/{docID}/pdf", s.handleGetPDF)
	r.Delete("/documents/{docID}", s.handleDeleteDocument)

	r.Post("/ask", s.handleAsk)
	r.Get("/chat-history/{notebookID}", s.handleGetChatHistory)
	r.Post("/chat-history", s.handleSaveChatHistory)
	r.Delete("/chat-history/{notebookID}", s.handleClearChatHistory)

	r.Post("/generate-quiz", s.handleGenerateQuiz)
	r.Post("/submit-quiz", s.handleSubmitQuiz)
	r.Post("/generate-mock-test", s.handleGenerateMockTest)
	r.Post("/submit-mock-test", s.handleSubmitMockTest)

	r.Get("/notes/{notebookID}", s.handleListNotes)
	r.Post("/notes", s.handleCreateNote)
	r.Post("/notes/generate", s.handleGenerateNote)
	r.Put("/notes/{noteID}", s.handleUpdateNote)
	r.Delete("/notes/{noteID}", s.handleDeleteNote)

	r.Get("/annotations/{notebookID}", s.handleListAnnotations)
	r.Post("/annotations", s.handleCreateAnnotation)
	r.Post("/annotations/query", s.handleQueryAnnotation)
	r.Put("/annotations/{annotationID}", s.handleUpdateAnnotation)
	r.Delete("/annotations/{annotationID}", s.handleDeleteAnnotation)

	r.Post("/interview/start", s.handleStartInterview)
	r.Post("/interview/respond", s.handleRespondInterview)
	r.Post("/interview/end", s.handleEndInterview)

	r.Post("/doomscroll/generate", s.handleGenerateCards)
	r.Post("/doomscroll/like", s.handleLikeCard)
	r.Get("/doomscroll/saved/{notebookID}", s.handleListSavedCards)
	r.Delete("/doomscroll/saved/{notebookID}/{cardID}", s.handleDeleteSavedCard)
	r.Post("/doomscroll/folders", s.handleCreateFolder)
	r.Get("/doomscroll/folders/{notebookID}", s.handleListFolders)
	r.Delete("/doomscroll/folders/{folderID}", s.handleDeleteFolder)
	r.Put("/doomscroll/card/{cardID}/folder", s.handleMoveCard)

	r.Delete("/clear-all", s.handleClearAll)
}

func (s *Server) handleRoot(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"message": "RAG API is running"})
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	report := s.health.Check(r.Context())

	status := http.StatusOK
	if report.Status != healthuc.Healthy {
		status = http.StatusServiceUnavailable
	}
	writeJSON(w, status, map[string]any{
		"status": report.Status,
		"checks": report.Checks,
	})
}

func (s *Server) handleClearAll(w http.ResponseWriter, r *http.Request) {
	res, err := s.admin.ClearAll(r.Context())
	if err != nil {
		s.handleDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

// errorResponse is the uniform error body.
type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// sentinelMapping ties a domain sentinel to its HTTP representation.
// Message overrides the sentinel's text when set.
type sentinelMapping struct {
	sentinel error
	status   int
	code     string
	message  string
}

var sentinelMappings = []sentinelMapping{
	{sentinel: domain.ErrNotebookNotFound, status: http.StatusNotFound, code: "notebook_not_found"},
	{sentinel: domain.ErrDocumentNotFound, status: http.StatusNotFound, code: "document_not_found"},
	{sentinel: domain.ErrNoteNotFound, status: http.StatusNotFound, code: "note_not_found"},
	{sentinel: domain.ErrAnnotationNotFound, status: http.StatusNotFound, code: "annotation_not_found"},
	{sentinel: domain.ErrSessionNotFound, status: http.StatusNotFound, code: "session_not_found"},
	{sentinel: domain.ErrCardNotFound, status: http.StatusNotFound, code: "card_not_found"},
	{sentinel: domain.ErrFolderNotFound, status: http.StatusNotFound, code: "folder_not_found"},
	{sentinel: domain.ErrArtifactNotFound, status: http.StatusNotFound, code: "artifact_not_found"},
	{sentinel: domain.ErrFileNotFound, status: http.StatusNotFound, code: "file_not_found"},
	{sentinel: domain.ErrNoDocuments, status: http.StatusBadRequest, code: "no_documents",
		message: "No documents uploaded. Please upload documents first."},
	{sentinel: domain.ErrNoContent, status: http.StatusBadRequest, code: "no_content"},
	{sentinel: domain.ErrNotPDF, status: http.StatusBadRequest, code: "not_pdf"},
	{sentinel: domain.ErrInvalidInput, status: http.StatusBadRequest, code: "invalid_input"},
	{sentinel: domain.ErrEmbeddingFailed, status: http.StatusBadGateway, code: "embedding_provider_error"},
	{sentinel: domain.ErrLLMProviderError, status: http.StatusBadGateway, code: "llm_provider_error"},
}

func (s *Server) handleDomainError(w http.ResponseWriter, err error) {
	for _, m := range sentinelMappings {
		if !errors.Is(err, m.sentinel) {
			continue
		}
		msg := m.message
		if msg == "" {
			msg = m.sentinel.Error()
		}
		s.logger.Warn("domain error", zap.Error(err))
		writeJSON(w, m.status, errorResponse{Code: m.code, Message: msg})
		return
	}

	s.logger.Error("internal error", zap.Error(err))
	writeJSON(w, http.StatusInternalServerError,
		errorResponse{Code: "internal_error", Message: "internal error"})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeBadRequest(w http.ResponseWriter, message string) {
	writeJSON(w, http.StatusBadRequest, errorResponse{Code: "bad_request", Message: message})
}

// decode unmarshals a JSON request body, reporting malformed input itself.
// Returns false when the handler should stop.
func decode(w http.ResponseWriter, r *http.Request, v any) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		writeBadRequest(w, "Invalid request body: "+err.Error())
		return false
	}
	return true
}
