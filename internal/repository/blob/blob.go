// Package blob stores uploaded PDF binaries. Two drivers exist: local disk
// for development and S3/MinIO for deployments. Objects are addressed as
// {notebook_id}/{document_id}.pdf.
package blob

import (
	"context"
	"io"
)

// Store is the binary file storage contract.
type Store interface {
	// Put writes a file and returns its storage path.
	Put(ctx context.Context, notebookID, documentID string, r io.Reader, size int64) (string, error)
	// Get opens a stored file for reading. The caller closes the reader.
	Get(ctx context.Context, notebookID, documentID string) (io.ReadCloser, int64, error)
	// Delete removes a stored file. Deleting a missing file is not an error.
	Delete(ctx context.Context, notebookID, documentID string) error
	// DeleteAll removes every stored file.
	DeleteAll(ctx context.Context) error
}

const contentTypePDF = "application/pdf"

func objectName(notebookID, documentID string) string {
	return notebookID + "/" + documentID + ".pdf"
}
