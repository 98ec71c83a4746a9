package search

import (
	"fmt"
	"log/slog"
	"os"
	"sort"
	"strings"
	"sync"

	lru "github.com/hashicorp/golang-lru/v2"
	"golang.org/x/sync/errgroup"

	"github.com/AlmazPRO7/StdvBot/internal/chunk"
	"github.com/AlmazPRO7/StdvBot/internal/config"
	"github.com/AlmazPRO7/StdvBot/internal/index"
)

// contextSeparator joins chunks in the concatenated context string handed
// to the LLM client.
const contextSeparator = "\n---\n"

// Engine owns the chunk set, both search indexes, the query expander and
// the hybrid result cache.
//
// The search surface never returns errors for well-formed inputs: a load
// failure degrades to an empty corpus, malformed or empty queries yield
// empty result sets, and cache pressure is handled by eviction.
//
// All reads (Search*, Retrieve*, Stats) may run concurrently; Load and
// AddChunk take the write lock and rebuild both indexes wholesale, so a
// reader never observes a partially rebuilt index.
type Engine struct {
	mu       sync.RWMutex
	cfg      config.Engine
	splitter *chunk.Splitter
	chunks   []*chunk.Chunk
	bm25     *index.BM25
	tfidf    *index.TFIDF
	expander *Expander
	cache    *lru.Cache[string, []*Result]
	logger   *slog.Logger
}

// Option configures the engine.
type Option func(*Engine)

// WithExpander replaces the default query expander.
func WithExpander(exp *Expander) Option {
	return func(e *Engine) {
		if exp != nil {
			e.expander = exp
		}
	}
}

// WithLogger sets the engine logger.
func WithLogger(logger *slog.Logger) Option {
	return func(e *Engine) {
		if logger != nil {
			e.logger = logger
		}
	}
}

// NewEngine creates an engine with an empty corpus. Invalid configuration
// values are normalized rather than rejected; the engine always comes up.
func NewEngine(cfg config.Engine, opts ...Option) *Engine {
	_ = cfg.Validate()

	e := &Engine{
		cfg: cfg,
		splitter: chunk.NewSplitter(chunk.Options{
			ChunkSize:    cfg.ChunkSize,
			ChunkOverlap: cfg.ChunkOverlap,
		}),
		bm25:     index.NewBM25(cfg.BM25K1, cfg.BM25B),
		tfidf:    index.NewTFIDF(),
		expander: NewExpander(),
		logger:   slog.Default(),
	}

	if cfg.EnableCache {
		// lru.New only fails for non-positive sizes, which Validate rules out.
		e.cache, _ = lru.New[string, []*Result](cfg.CacheSize)
	}

	for _, opt := range opts {
		opt(e)
	}

	return e
}

// Load chunks the corpus text and rebuilds both indexes.
func (e *Engine) Load(text string) {
	e.loadFrom(text, "corpus")
}

// LoadFile reads the knowledge base from disk. A missing or unreadable
// file degrades to an empty corpus with a logged warning; the search
// surface stays available and simply returns no results.
func (e *Engine) LoadFile(path string) {
	data, err := os.ReadFile(path)
	if err != nil {
		e.logger.Warn("knowledge_base_load_failed",
			slog.String("path", path),
			slog.String("error", err.Error()))
		e.loadFrom("", path)
		return
	}
	e.loadFrom(string(data), path)
}

func (e *Engine) loadFrom(text, source string) {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.chunks = e.splitter.Split(text, source)
	e.rebuildLocked()

	e.logger.Info("knowledge_base_loaded",
		slog.String("source", source),
		slog.Int("chunks", len(e.chunks)))
}

// rebuildLocked rebuilds both indexes from the current chunk list and
// invalidates the result cache. Caller must hold the write lock.
func (e *Engine) rebuildLocked() {
	contents := make([]string, len(e.chunks))
	for i, c := range e.chunks {
		contents[i] = c.Content
	}

	// The indexes are independent; build them in parallel.
	var g errgroup.Group
	g.Go(func() error {
		e.bm25.Build(contents)
		return nil
	})
	g.Go(func() error {
		e.tfidf.Build(contents)
		return nil
	})
	_ = g.Wait()

	if e.cache != nil {
		e.cache.Purge()
	}

	e.logger.Debug("indexes_rebuilt",
		slog.Int("chunks", len(e.chunks)),
		slog.Int("bm25_vocabulary", e.bm25.VocabularySize()),
		slog.Int("tfidf_vocabulary", e.tfidf.VocabularySize()))
}

// AddChunk appends a chunk with a freshly generated id and rebuilds both
// indexes. This is a full rebuild by design; acceptable for the
// batch-loaded corpora this engine targets.
func (e *Engine) AddChunk(content string, metadata map[string]string) {
	e.mu.Lock()
	defer e.mu.Unlock()

	meta := make(map[string]string, len(metadata))
	for k, v := range metadata {
		meta[k] = v
	}

	ordinal := len(e.chunks)
	e.chunks = append(e.chunks, &chunk.Chunk{
		ID:       chunk.NewID(content, ordinal),
		Content:  content,
		Metadata: meta,
		Source:   "dynamic",
		Ordinal:  ordinal,
	})

	e.rebuildLocked()

	e.logger.Info("chunk_added",
		slog.String("id", e.chunks[ordinal].ID),
		slog.Int("total_chunks", len(e.chunks)))
}

// SearchBM25 ranks chunks with the probabilistic index. The query is
// expanded with domain synonyms when expansion is enabled.
func (e *Engine) SearchBM25(query string, topK int) []*Result {
	e.mu.RLock()
	defer e.mu.RUnlock()

	topK = e.effectiveTopK(topK)

	searchQuery := query
	if e.cfg.EnableQueryExpansion {
		searchQuery = e.expander.Expand(query, e.cfg.MaxExpansionTerms)
	}

	var results []*Result
	for _, hit := range e.bm25.Search(searchQuery, topK*2) {
		if hit.Score < e.cfg.MinScoreThreshold {
			continue
		}
		c := e.chunks[hit.Ordinal]
		results = append(results, &Result{
			Chunk:          c,
			Score:          hit.Score,
			BM25Score:      hit.Score,
			KeywordMatches: index.CountMatches(searchQuery, c.Content),
		})
	}

	return truncate(results, topK)
}

// SearchTFIDF ranks chunks with the vector-space index. The raw query is
// used so the vector signal stays distinct from the expanded BM25 path.
func (e *Engine) SearchTFIDF(query string, topK int) []*Result {
	e.mu.RLock()
	defer e.mu.RUnlock()

	topK = e.effectiveTopK(topK)

	var results []*Result
	for _, hit := range e.tfidf.Search(query, topK*2) {
		if hit.Score < e.cfg.MinScoreThreshold {
			continue
		}
		c := e.chunks[hit.Ordinal]
		results = append(results, &Result{
			Chunk:          c,
			Score:          hit.Score,
			TFIDFScore:     hit.Score,
			KeywordMatches: index.CountMatches(query, c.Content),
		})
	}

	return truncate(results, topK)
}

// SearchHybrid runs both indexes over an enlarged candidate pool,
// normalizes each index's scores by its maximum, and fuses them with the
// configured weights. Results are cached per (query, topK) when caching
// is enabled.
//
// Fusion weights are deliberate tunables and are not forced to sum to
// 1.0; with unconventional weights the fused score may exceed 1.0.
func (e *Engine) SearchHybrid(query string, topK int) []*Result {
	e.mu.RLock()
	defer e.mu.RUnlock()

	topK = e.effectiveTopK(topK)

	key := cacheKey(query, topK, MethodHybrid)
	if e.cache != nil {
		if cached, ok := e.cache.Get(key); ok {
			return cached
		}
	}

	expandedQuery := query
	if e.cfg.EnableQueryExpansion {
		expandedQuery = e.expander.Expand(query, e.cfg.MaxExpansionTerms)
	}

	pool := topK * 3
	bm25Hits := e.bm25.Search(expandedQuery, pool)
	tfidfHits := e.tfidf.Search(query, pool)

	maxBM25 := maxScore(bm25Hits)
	maxTFIDF := maxScore(tfidfHits)

	fused := make(map[int]*Result, len(bm25Hits)+len(tfidfHits))

	for _, hit := range bm25Hits {
		r := fusedResult(fused, e.chunks, hit.Ordinal)
		r.BM25Score = hit.Score / maxBM25
	}
	for _, hit := range tfidfHits {
		r := fusedResult(fused, e.chunks, hit.Ordinal)
		r.TFIDFScore = hit.Score / maxTFIDF
	}

	results := make([]*Result, 0, len(fused))
	for _, r := range fused {
		r.Score = e.cfg.BM25Weight*r.BM25Score + e.cfg.TFIDFWeight*r.TFIDFScore
		if r.Score <= 0 || r.Score < e.cfg.MinScoreThreshold {
			continue
		}
		r.KeywordMatches = index.CountMatches(query, r.Chunk.Content)
		results = append(results, r)
	}

	// Descending by fused score; ties keep corpus order for determinism.
	sort.Slice(results, func(i, j int) bool {
		if results[i].Score != results[j].Score {
			return results[i].Score > results[j].Score
		}
		return results[i].Chunk.Ordinal < results[j].Chunk.Ordinal
	})

	results = truncate(results, topK)

	if e.cache != nil {
		e.cache.Add(key, results)
	}

	return results
}

// RetrieveWithScores dispatches to one of the three search methods.
func (e *Engine) RetrieveWithScores(query string, topK int, method Method) []*Result {
	switch method {
	case MethodBM25:
		return e.SearchBM25(query, topK)
	case MethodTFIDF:
		return e.SearchTFIDF(query, topK)
	default:
		return e.SearchHybrid(query, topK)
	}
}

// Retrieve formats the top matching chunks into a single context string,
// each prefixed with a section hint and joined by a separator. Returns ""
// when the corpus is empty or nothing matches; it never fails.
func (e *Engine) Retrieve(query string, topK int, method Method) string {
	results := e.RetrieveWithScores(query, topK, method)
	if len(results) == 0 {
		return ""
	}

	parts := make([]string, 0, len(results))
	for _, r := range results {
		if section := r.Chunk.Section(); section != "" {
			parts = append(parts, fmt.Sprintf("[Section: %s]\n%s", section, r.Chunk.Content))
		} else {
			parts = append(parts, r.Chunk.Content)
		}
	}

	return strings.Join(parts, contextSeparator)
}

// ClearCache drops all cached results.
func (e *Engine) ClearCache() {
	if e.cache != nil {
		e.cache.Purge()
	}
}

// Chunks returns a copy of the current chunk list.
func (e *Engine) Chunks() []*chunk.Chunk {
	e.mu.RLock()
	defer e.mu.RUnlock()

	out := make([]*chunk.Chunk, len(e.chunks))
	copy(out, e.chunks)
	return out
}

// Stats returns a read-only diagnostic snapshot.
func (e *Engine) Stats() Stats {
	e.mu.RLock()
	defer e.mu.RUnlock()

	cacheSize := 0
	if e.cache != nil {
		cacheSize = e.cache.Len()
	}

	return Stats{
		TotalChunks:         len(e.chunks),
		BM25VocabularySize:  e.bm25.VocabularySize(),
		TFIDFVocabularySize: e.tfidf.VocabularySize(),
		AvgChunkLength:      e.bm25.AvgDocLength(),
		CacheSize:           cacheSize,
		Config:              e.cfg,
	}
}

// Config returns the active configuration.
func (e *Engine) Config() config.Engine {
	return e.cfg
}

func (e *Engine) effectiveTopK(topK int) int {
	if topK <= 0 {
		return e.cfg.DefaultTopK
	}
	return topK
}

func cacheKey(query string, topK int, method Method) string {
	return fmt.Sprintf("%s:%d:%s", query, topK, method)
}

func fusedResult(m map[int]*Result, chunks []*chunk.Chunk, ordinal int) *Result {
	if r, ok := m[ordinal]; ok {
		return r
	}
	r := &Result{Chunk: chunks[ordinal]}
	m[ordinal] = r
	return r
}

// maxScore returns the maximum hit score, or 1 for an empty list so that
// normalization against an empty index contributes zero without dividing
// by zero.
func maxScore(hits []index.Hit) float64 {
	max := 0.0
	for _, h := range hits {
		if h.Score > max {
			max = h.Score
		}
	}
	if max == 0 {
		return 1
	}
	return max
}

func truncate(results []*Result, topK int) []*Result {
	if topK > 0 && len(results) > topK {
		return results[:topK]
	}
	return results
}
