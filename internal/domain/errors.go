package domain

import "errors"

var (
	// ErrNotebookNotFound signals a missing notebook.
	ErrNotebookNotFound = errors.New("notebook not found")
	// ErrDocumentNotFound signals a missing document.
	ErrDocumentNotFound = errors.New("document not found")
	// ErrNoteNotFound signals a missing note.
	ErrNoteNotFound = errors.New("note not found")
	// ErrAnnotationNotFound signals a missing annotation.
	ErrAnnotationNotFound = errors.New("annotation not found")
	// ErrSessionNotFound signals a missing interview session.
	ErrSessionNotFound = errors.New("interview session not found")
	// ErrCardNotFound signals a missing saved card.
	ErrCardNotFound = errors.New("card not found")
	// ErrFolderNotFound signals a missing card folder.
	ErrFolderNotFound = errors.New("folder not found")
	// ErrArtifactNotFound signals an expired or unknown quiz/test artifact.
	ErrArtifactNotFound = errors.New("artifact not found")
	// ErrFileNotFound signals a missing stored file.
	ErrFileNotFound = errors.New("file not found")

	// ErrNoDocuments signals that a notebook has no uploaded documents.
	ErrNoDocuments = errors.New("no documents uploaded")
	// ErrNoContent signals that no usable content could be retrieved from documents.
	ErrNoContent = errors.New("no content retrieved from documents")
	// ErrNotPDF signals an upload that is not a PDF file.
	ErrNotPDF = errors.New("not a PDF file")
	// ErrInvalidInput signals a malformed or empty request.
	ErrInvalidInput = errors.New("invalid input")

	// ErrEmbeddingFailed signals an embedding provider failure.
	ErrEmbeddingFailed = errors.New("embedding provider error")
	// ErrLLMProviderError signals an LLM provider failure.
	ErrLLMProviderError = errors.New("llm provider error")
)
