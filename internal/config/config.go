// Package config defines the retrieval engine configuration and its
// YAML loading rules.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Engine holds the tuning parameters for the retrieval engine.
//
// Values can be loaded from a YAML file; anything left unset falls back
// to the defaults from Default().
type Engine struct {
	// BM25K1 controls term-frequency saturation in BM25 scoring.
	BM25K1 float64 `yaml:"bm25_k1" json:"bm25_k1"`

	// BM25B controls document-length normalization in BM25 scoring (0-1).
	BM25B float64 `yaml:"bm25_b" json:"bm25_b"`

	// ChunkSize is the maximum chunk length in characters.
	ChunkSize int `yaml:"chunk_size" json:"chunk_size"`

	// ChunkOverlap is the overlap between consecutive sub-chunks in characters.
	// Must be smaller than ChunkSize.
	ChunkOverlap int `yaml:"chunk_overlap" json:"chunk_overlap"`

	// MinScoreThreshold filters out low-relevance results.
	MinScoreThreshold float64 `yaml:"min_score_threshold" json:"min_score_threshold"`

	// DefaultTopK is used when a search is requested with topK <= 0.
	DefaultTopK int `yaml:"default_top_k" json:"default_top_k"`

	// BM25Weight and TFIDFWeight blend the two indexes in hybrid search.
	// By convention they sum to 1.0, but this is not enforced: callers may
	// tune them freely, at the cost of fused scores no longer being
	// bounded by 1.0.
	BM25Weight  float64 `yaml:"bm25_weight" json:"bm25_weight"`
	TFIDFWeight float64 `yaml:"tfidf_weight" json:"tfidf_weight"`

	// EnableQueryExpansion toggles synonym expansion on the BM25 path.
	EnableQueryExpansion bool `yaml:"enable_query_expansion" json:"enable_query_expansion"`

	// MaxExpansionTerms caps synonyms appended per query term.
	MaxExpansionTerms int `yaml:"max_expansion_terms" json:"max_expansion_terms"`

	// EnableCache toggles the hybrid result cache.
	EnableCache bool `yaml:"enable_cache" json:"enable_cache"`

	// CacheSize bounds the number of cached result lists.
	CacheSize int `yaml:"cache_size" json:"cache_size"`
}

// Default returns the reference engine configuration.
func Default() Engine {
	return Engine{
		BM25K1:               1.5,
		BM25B:                0.75,
		ChunkSize:            500,
		ChunkOverlap:         100,
		MinScoreThreshold:    0.05,
		DefaultTopK:          3,
		BM25Weight:           0.6,
		TFIDFWeight:          0.4,
		EnableQueryExpansion: true,
		MaxExpansionTerms:    3,
		EnableCache:          true,
		CacheSize:            100,
	}
}

// LoadFile reads an Engine configuration from a YAML file, applying
// defaults for any unset field. The file must exist; callers that want
// optional configs should stat first.
func LoadFile(path string) (Engine, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("read config: %w", err)
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config %s: %w", path, err)
	}

	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("config %s: %w", path, err)
	}

	return cfg, nil
}

// Validate normalizes out-of-range values back to safe defaults.
// It never fails for recoverable inconsistencies: the engine is expected
// to stay available with a usable configuration.
func (c *Engine) Validate() error {
	def := Default()

	if c.BM25K1 <= 0 {
		c.BM25K1 = def.BM25K1
	}
	if c.BM25B < 0 || c.BM25B > 1 {
		c.BM25B = def.BM25B
	}
	if c.ChunkSize <= 0 {
		c.ChunkSize = def.ChunkSize
	}
	if c.ChunkOverlap < 0 {
		c.ChunkOverlap = def.ChunkOverlap
	}
	// Overlap must leave room for the window to advance.
	if c.ChunkOverlap >= c.ChunkSize {
		c.ChunkOverlap = c.ChunkSize / 2
	}
	if c.MinScoreThreshold < 0 {
		c.MinScoreThreshold = def.MinScoreThreshold
	}
	if c.DefaultTopK <= 0 {
		c.DefaultTopK = def.DefaultTopK
	}
	if c.BM25Weight < 0 {
		c.BM25Weight = def.BM25Weight
	}
	if c.TFIDFWeight < 0 {
		c.TFIDFWeight = def.TFIDFWeight
	}
	if c.MaxExpansionTerms <= 0 {
		c.MaxExpansionTerms = def.MaxExpansionTerms
	}
	if c.CacheSize <= 0 {
		c.CacheSize = def.CacheSize
	}

	return nil
}
