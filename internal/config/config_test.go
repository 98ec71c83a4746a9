package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	assert.Equal(t, 1.5, cfg.BM25K1)
	assert.Equal(t, 0.75, cfg.BM25B)
	assert.Equal(t, 500, cfg.ChunkSize)
	assert.Equal(t, 100, cfg.ChunkOverlap)
	assert.Equal(t, 0.05, cfg.MinScoreThreshold)
	assert.Equal(t, 3, cfg.DefaultTopK)
	assert.InDelta(t, 1.0, cfg.BM25Weight+cfg.TFIDFWeight, 1e-9)
	assert.True(t, cfg.EnableQueryExpansion)
	assert.True(t, cfg.EnableCache)
	assert.Equal(t, 100, cfg.CacheSize)
}

func TestLoadFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "engine.yaml")

	yaml := `
bm25_k1: 1.2
chunk_size: 800
bm25_weight: 0.7
tfidf_weight: 0.3
enable_cache: false
`
	require.NoError(t, os.WriteFile(path, []byte(yaml), 0644))

	cfg, err := LoadFile(path)
	require.NoError(t, err)

	// Overridden values
	assert.Equal(t, 1.2, cfg.BM25K1)
	assert.Equal(t, 800, cfg.ChunkSize)
	assert.Equal(t, 0.7, cfg.BM25Weight)
	assert.False(t, cfg.EnableCache)

	// Unset values keep defaults
	assert.Equal(t, 0.75, cfg.BM25B)
	assert.Equal(t, 100, cfg.ChunkOverlap)
	assert.Equal(t, 3, cfg.DefaultTopK)
}

func TestLoadFile_Missing(t *testing.T) {
	_, err := LoadFile(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestLoadFile_Malformed(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "bad.yaml")
	require.NoError(t, os.WriteFile(path, []byte("chunk_size: [not a number"), 0644))

	_, err := LoadFile(path)
	assert.Error(t, err)
}

func TestValidate_ClampsOutOfRange(t *testing.T) {
	cfg := Engine{
		BM25K1:            -1,
		BM25B:             2.0,
		ChunkSize:         100,
		ChunkOverlap:      100, // overlap >= size would stall the chunk window
		MinScoreThreshold: -0.5,
		DefaultTopK:       0,
		MaxExpansionTerms: 0,
		CacheSize:         -5,
	}

	require.NoError(t, cfg.Validate())

	assert.Equal(t, 1.5, cfg.BM25K1)
	assert.Equal(t, 0.75, cfg.BM25B)
	assert.Equal(t, 50, cfg.ChunkOverlap, "overlap clamped below chunk size")
	assert.Equal(t, 0.05, cfg.MinScoreThreshold)
	assert.Equal(t, 3, cfg.DefaultTopK)
	assert.Equal(t, 3, cfg.MaxExpansionTerms)
	assert.Equal(t, 100, cfg.CacheSize)
}
