// Package search orchestrates the retrieval engine: chunking, the two
// ranked indexes, query expansion, score fusion and the result cache.
package search

import (
	"fmt"

	"github.com/AlmazPRO7/StdvBot/internal/chunk"
	"github.com/AlmazPRO7/StdvBot/internal/config"
)

// Method selects the ranking path for a search.
type Method string

const (
	// MethodBM25 uses the probabilistic index only.
	MethodBM25 Method = "bm25"
	// MethodTFIDF uses the vector-space index only.
	MethodTFIDF Method = "tfidf"
	// MethodHybrid fuses both indexes with weighted normalized scores.
	MethodHybrid Method = "hybrid"
)

// ParseMethod converts a string tag into a Method.
func ParseMethod(s string) (Method, error) {
	switch Method(s) {
	case MethodBM25, MethodTFIDF, MethodHybrid:
		return Method(s), nil
	case "":
		return MethodHybrid, nil
	default:
		return "", fmt.Errorf("unknown search method %q (want bm25, tfidf or hybrid)", s)
	}
}

// Result is a scored chunk returned by a search. The chunk is shared with
// the engine, not copied.
type Result struct {
	// Chunk is the matched chunk.
	Chunk *chunk.Chunk `json:"-"`

	// Score is the fused (or single-index) relevance score. Always >= 0.
	Score float64 `json:"score"`

	// BM25Score and TFIDFScore are the per-index sub-scores. A zero value
	// means the corresponding index did not surface the chunk.
	BM25Score  float64 `json:"bm25_score"`
	TFIDFScore float64 `json:"tfidf_score"`

	// KeywordMatches counts distinct query tokens present in the chunk.
	KeywordMatches int `json:"keyword_matches"`
}

// Preview returns the chunk content truncated for display.
func (r *Result) Preview(maxChars int) string {
	runes := []rune(r.Chunk.Content)
	if maxChars <= 0 || len(runes) <= maxChars {
		return r.Chunk.Content
	}
	return string(runes[:maxChars]) + "..."
}

// Stats is a read-only diagnostic snapshot of the engine.
type Stats struct {
	TotalChunks         int           `json:"total_chunks"`
	BM25VocabularySize  int           `json:"bm25_vocabulary_size"`
	TFIDFVocabularySize int           `json:"tfidf_vocabulary_size"`
	AvgChunkLength      float64       `json:"avg_chunk_length"`
	CacheSize           int           `json:"cache_size"`
	Config              config.Engine `json:"config"`
}
