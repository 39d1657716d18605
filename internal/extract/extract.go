// Package extract pulls plain text out of uploaded files for chunking.
package extract

import (
	"bytes"
	"fmt"
	"io"
	"strings"

	"github.com/dslipak/pdf"
)

// MaxFileSize is the hard limit for text extraction (50MB).
const MaxFileSize = 50 * 1024 * 1024

// Extractor pulls plain text out of a single file format.
type Extractor interface {
	Extract(r io.ReaderAt, size int64) (string, error)
}

// ByExtension returns the extractor for a filename, or an error for
// unsupported types.
func ByExtension(filename string) (Extractor, error) {
	switch {
	case strings.HasSuffix(strings.ToLower(filename), ".pdf"):
		return PDF{}, nil
	case strings.HasSuffix(strings.ToLower(filename), ".txt"),
		strings.HasSuffix(strings.ToLower(filename), ".md"):
		return Text{}, nil
	default:
		return nil, fmt.Errorf("unsupported file type: %s", filename)
	}
}

// PDF extracts text from PDF files, all pages concatenated.
type PDF struct{}

// Extract reads the full plain text of the PDF.
func (PDF) Extract(r io.ReaderAt, size int64) (string, error) {
	if size > MaxFileSize {
		return "", fmt.Errorf("file exceeds size limit of %d bytes", MaxFileSize)
	}

	reader, err := pdf.NewReader(r, size)
	if err != nil {
		return "", fmt.Errorf("failed to open PDF: %w", err)
	}

	plain, err := reader.GetPlainText()
	if err != nil {
		return "", fmt.Errorf("failed to read PDF text: %w", err)
	}

	var buf bytes.Buffer
	if _, err := buf.ReadFrom(plain); err != nil {
		return "", fmt.Errorf("failed to read PDF text: %w", err)
	}
	return buf.String(), nil
}

// Text passes plain-text files through unchanged.
type Text struct{}

// Extract reads the whole file as UTF-8 text.
func (Text) Extract(r io.ReaderAt, size int64) (string, error) {
	if size > MaxFileSize {
		return "", fmt.Errorf("file exceeds size limit of %d bytes", MaxFileSize)
	}
	buf := make([]byte, size)
	if _, err := r.ReadAt(buf, 0); err != nil && err != io.EOF {
		return "", fmt.Errorf("failed to read file: %w", err)
	}
	return string(buf), nil
}
