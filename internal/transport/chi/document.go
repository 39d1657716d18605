package chi

import (
	"fmt"
	"io"
	"net/http"
	"strconv"

	chi5 "github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	documentuc "github.com/prism-learn/prism/internal/usecase/document"
)

// maxUploadMemory is the multipart in-memory threshold; larger parts
// spill to temp files.
const maxUploadMemory = 32 << 20

func (s *Server) handleUploadPDFs(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxUploadMemory); err != nil {
		writeBadRequest(w, "Invalid multipart form: "+err.Error())
		return
	}

	headers := r.MultipartForm.File["files"]
	if len(headers) == 0 {
		writeBadRequest(w, "No files provided")
		return
	}

	files := make([]documentuc.UploadFile, 0, len(headers))
	for _, fh := range headers {
		f, err := fh.Open()
		if err != nil {
			writeBadRequest(w, fmt.Sprintf("Cannot read %s: %v", fh.Filename, err))
			return
		}
		data, err := io.ReadAll(f)
		_ = f.Close()
		if err != nil {
			writeBadRequest(w, fmt.Sprintf("Cannot read %s: %v", fh.Filename, err))
			return
		}
		files = append(files, documentuc.UploadFile{Filename: fh.Filename, Data: data})
	}

	docs, err := s.documents.Upload(r.Context(), chi5.URLParam(r, "notebookID"), files)
	if err != nil {
		s.handleDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"message":   fmt.Sprintf("Successfully uploaded %d PDF(s)", len(docs)),
		"documents": docs,
	})
}

func (s *Server) handleListDocuments(w http.ResponseWriter, r *http.Request) {
	docs, err := s.documents.List(r.Context(), chi5.URLParam(r, "notebookID"))
	if err != nil {
		s.handleDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"documents": docs})
}

func (s *Server) handleGetPDF(w http.ResponseWriter, r *http.Request) {
	notebookID := chi5.URLParam(r, "notebookID")
	docID := chi5.URLParam(r, "docID")

	rc, size, filename, err := s.documents.GetPDF(r.Context(), notebookID, docID)
	if err != nil {
		s.handleDomainError(w, err)
		return
	}
	defer func() { _ = rc.Close() }()

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", fmt.Sprintf("inline; filename=%q", filename))
	if size > 0 {
		w.Header().Set("Content-Length", strconv.FormatInt(size, 10))
	}
	if _, err := io.Copy(w, rc); err != nil {
		s.logger.Warn("stream pdf interrupted", zap.Error(err))
	}
}

func (s *Server) handleDeleteDocument(w http.ResponseWriter, r *http.Request) {
	if err := s.documents.Delete(r.Context(), chi5.URLParam(r, "docID")); err != nil {
		s.handleDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "Document deleted successfully"})
}
