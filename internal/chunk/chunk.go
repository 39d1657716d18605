// Package chunk splits extracted text into overlapping windows for embedding.
package chunk

import "fmt"

// Default chunking parameters.
const (
	DefaultSize    = 1000
	DefaultOverlap = 200
)

// Split cuts text into chunks of at most size bytes, each starting
// size-overlap bytes after the previous one. Overlap keeps context at chunk
// boundaries from being lost between adjacent windows. Empty text yields nil.
func Split(text string, size, overlap int) ([]string, error) {
	if size <= 0 {
		return nil, fmt.Errorf("chunk size must be positive, got %d", size)
	}
	if overlap < 0 {
		return nil, fmt.Errorf("chunk overlap must not be negative, got %d", overlap)
	}
	if overlap >= size {
		return nil, fmt.Errorf("chunk overlap (%d) must be smaller than chunk size (%d)", overlap, size)
	}
	if text == "" {
		return nil, nil
	}

	stride := size - overlap
	var chunks []string
	for start := 0; start < len(text); start += stride {
		end := start + size
		if end > len(text) {
			end = len(text)
		}
		chunks = append(chunks, text[start:end])
	}
	return chunks, nil
}
