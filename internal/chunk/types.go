package chunk

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
)

// Chunk size defaults, in characters.
const (
	DefaultChunkSize    = 500
	DefaultChunkOverlap = 100
)

// Metadata keys set by the chunker.
const (
	// MetaSection holds the most recent section header text.
	MetaSection = "section"
	// MetaSubchunk marks chunks produced by splitting an oversized section.
	MetaSubchunk = "is_subchunk"
)

// Chunk is a retrievable unit of knowledge-base text.
// Chunks are immutable once created; IDs are unique within one engine
// instance.
type Chunk struct {
	// ID is derived from the content hash and the ordinal.
	ID string

	// Content is the chunk text.
	Content string

	// Metadata carries the section label and sub-chunk flag, plus any
	// caller-supplied keys for dynamically added chunks.
	Metadata map[string]string

	// Source identifies where the chunk came from (file path or "dynamic").
	Source string

	// Ordinal is the chunk's position in the corpus.
	Ordinal int
}

// Section returns the section label, or "" if none was detected.
func (c *Chunk) Section() string {
	return c.Metadata[MetaSection]
}

// IsSubchunk reports whether the chunk was split out of a larger section.
func (c *Chunk) IsSubchunk() bool {
	return c.Metadata[MetaSubchunk] == "true"
}

// NewID generates a stable chunk identifier from content and position.
func NewID(content string, ordinal int) string {
	sum := sha256.Sum256([]byte(content))
	return fmt.Sprintf("chunk_%d_%s", ordinal, hex.EncodeToString(sum[:])[:8])
}
