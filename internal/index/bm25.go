package index

import (
	"math"
	"sort"
)

// BM25 default tuning parameters.
const (
	DefaultK1 = 1.5
	DefaultB  = 0.75
)

// Hit is a document surfaced by an index search, identified by its
// position in the indexed corpus.
type Hit struct {
	Ordinal int
	Score   float64
}

// BM25 is an Okapi BM25 ranking index.
//
// score(D,Q) = Σ IDF(qi) * (f(qi,D) * (k1+1)) / (f(qi,D) + k1 * (1 - b + b * |D|/avgdl))
//
// k1 controls term-frequency saturation, b controls length normalization.
// The index is rebuilt wholesale via Build; it holds no locks of its own.
type BM25 struct {
	k1 float64
	b  float64

	termFreqs  []map[string]int
	docLengths []int
	avgDocLen  float64
	docFreqs   map[string]int
	corpusSize int
}

// NewBM25 creates an empty BM25 index. Non-positive k1 or out-of-range b
// fall back to the defaults.
func NewBM25(k1, b float64) *BM25 {
	if k1 <= 0 {
		k1 = DefaultK1
	}
	if b < 0 || b > 1 {
		b = DefaultB
	}
	return &BM25{
		k1:       k1,
		b:        b,
		docFreqs: make(map[string]int),
	}
}

// Build indexes the given document contents, replacing any previous state.
func (idx *BM25) Build(docs []string) {
	idx.corpusSize = len(docs)
	idx.termFreqs = make([]map[string]int, 0, len(docs))
	idx.docLengths = make([]int, 0, len(docs))
	idx.docFreqs = make(map[string]int)
	idx.avgDocLen = 0

	totalLen := 0
	for _, doc := range docs {
		tokens := Tokenize(doc)
		tf := make(map[string]int, len(tokens))
		for _, tok := range tokens {
			tf[tok]++
		}
		idx.termFreqs = append(idx.termFreqs, tf)
		idx.docLengths = append(idx.docLengths, len(tokens))
		totalLen += len(tokens)

		for term := range tf {
			idx.docFreqs[term]++
		}
	}

	if idx.corpusSize > 0 {
		idx.avgDocLen = float64(totalLen) / float64(idx.corpusSize)
	}
}

// idf computes smoothed inverse document frequency for a term.
// Terms absent from the corpus contribute zero, never a negative weight.
func (idx *BM25) idf(term string) float64 {
	df := idx.docFreqs[term]
	if df == 0 {
		return 0
	}
	return math.Log((float64(idx.corpusSize)-float64(df)+0.5)/(float64(df)+0.5) + 1)
}

// scoreTokens computes the BM25 score of pre-tokenized query terms
// against the document at ordinal.
func (idx *BM25) scoreTokens(queryTokens []string, ordinal int) float64 {
	if len(queryTokens) == 0 || idx.avgDocLen == 0 {
		return 0
	}

	tf := idx.termFreqs[ordinal]
	docLen := float64(idx.docLengths[ordinal])

	score := 0.0
	for _, term := range queryTokens {
		freq, ok := tf[term]
		if !ok {
			continue
		}

		numerator := float64(freq) * (idx.k1 + 1)
		denominator := float64(freq) + idx.k1*(1-idx.b+idx.b*docLen/idx.avgDocLen)
		score += idx.idf(term) * numerator / denominator
	}
	return score
}

// Score computes the BM25 score of a raw query against one document.
func (idx *BM25) Score(query string, ordinal int) float64 {
	if ordinal < 0 || ordinal >= idx.corpusSize {
		return 0
	}
	return idx.scoreTokens(Tokenize(query), ordinal)
}

// Search scores the query against every document and returns up to topK
// hits with positive scores, sorted by descending score. Ties keep the
// original corpus order so repeated searches are deterministic.
func (idx *BM25) Search(query string, topK int) []Hit {
	queryTokens := Tokenize(query)
	if len(queryTokens) == 0 {
		return nil
	}

	var hits []Hit
	for i := 0; i < idx.corpusSize; i++ {
		if score := idx.scoreTokens(queryTokens, i); score > 0 {
			hits = append(hits, Hit{Ordinal: i, Score: score})
		}
	}

	sort.SliceStable(hits, func(i, j int) bool {
		return hits[i].Score > hits[j].Score
	})

	if topK > 0 && len(hits) > topK {
		hits = hits[:topK]
	}
	return hits
}

// VocabularySize returns the number of distinct indexed terms.
func (idx *BM25) VocabularySize() int {
	return len(idx.docFreqs)
}

// AvgDocLength returns the average document length in tokens.
func (idx *BM25) AvgDocLength() float64 {
	return idx.avgDocLen
}

// CorpusSize returns the number of indexed documents.
func (idx *BM25) CorpusSize() int {
	return idx.corpusSize
}
