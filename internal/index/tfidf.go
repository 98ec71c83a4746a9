package index

import (
	"math"
	"sort"
)

// TFIDF is a vector-space index ranking documents by cosine similarity
// of TF-IDF weight vectors.
//
// IDF(t) = ln(N / (1 + df(t))) + 1, smoothed so unseen terms stay finite.
// Vectors are sparse maps over the shared tokenizer's terms.
type TFIDF struct {
	vectors []map[string]float64
	norms   []float64
	idf     map[string]float64
	corpus  int
}

// NewTFIDF creates an empty vector-space index.
func NewTFIDF() *TFIDF {
	return &TFIDF{idf: make(map[string]float64)}
}

// Build indexes the given document contents, replacing any previous state.
func (idx *TFIDF) Build(docs []string) {
	idx.corpus = len(docs)
	idx.idf = make(map[string]float64)

	termFreqs := make([]map[string]int, 0, len(docs))
	docFreqs := make(map[string]int)

	for _, doc := range docs {
		tokens := Tokenize(doc)
		tf := make(map[string]int, len(tokens))
		for _, tok := range tokens {
			tf[tok]++
		}
		termFreqs = append(termFreqs, tf)

		for term := range tf {
			docFreqs[term]++
		}
	}

	for term, df := range docFreqs {
		idx.idf[term] = math.Log(float64(idx.corpus)/float64(1+df)) + 1
	}

	idx.vectors = make([]map[string]float64, 0, len(docs))
	idx.norms = make([]float64, 0, len(docs))
	for _, tf := range termFreqs {
		vec := make(map[string]float64, len(tf))
		sumSquares := 0.0
		for term, freq := range tf {
			w := float64(freq) * idx.idf[term]
			vec[term] = w
			sumSquares += w * w
		}
		idx.vectors = append(idx.vectors, vec)
		idx.norms = append(idx.norms, math.Sqrt(sumSquares))
	}
}

// queryVector builds the query's TF-IDF vector with corpus IDF weights.
// Terms unseen in the corpus keep weight 1.0 per frequency unit; they
// cannot match any document but do affect the query norm, matching the
// reference scoring.
func (idx *TFIDF) queryVector(queryTokens []string) (map[string]float64, float64) {
	tf := make(map[string]int, len(queryTokens))
	for _, tok := range queryTokens {
		tf[tok]++
	}

	vec := make(map[string]float64, len(tf))
	sumSquares := 0.0
	for term, freq := range tf {
		w, ok := idx.idf[term]
		if !ok {
			w = 1.0
		}
		weight := float64(freq) * w
		vec[term] = weight
		sumSquares += weight * weight
	}
	return vec, math.Sqrt(sumSquares)
}

// cosine computes similarity between the query vector and the document at
// ordinal, restricted to their shared terms. Zero when the vectors share
// no terms.
func (idx *TFIDF) cosine(queryVec map[string]float64, queryNorm float64, ordinal int) float64 {
	docVec := idx.vectors[ordinal]

	dot := 0.0
	for term, qw := range queryVec {
		if dw, ok := docVec[term]; ok {
			dot += qw * dw
		}
	}
	if dot == 0 {
		return 0
	}

	denom := queryNorm * idx.norms[ordinal]
	if denom == 0 {
		return 0
	}
	return dot / denom
}

// Score computes cosine similarity of a raw query against one document.
func (idx *TFIDF) Score(query string, ordinal int) float64 {
	if ordinal < 0 || ordinal >= idx.corpus {
		return 0
	}
	vec, norm := idx.queryVector(Tokenize(query))
	return idx.cosine(vec, norm, ordinal)
}

// Search scores the query against every document and returns up to topK
// hits with positive scores, sorted by descending score with corpus-order
// tie-breaking.
func (idx *TFIDF) Search(query string, topK int) []Hit {
	queryTokens := Tokenize(query)
	if len(queryTokens) == 0 {
		return nil
	}

	queryVec, queryNorm := idx.queryVector(queryTokens)

	var hits []Hit
	for i := range idx.vectors {
		if score := idx.cosine(queryVec, queryNorm, i); score > 0 {
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
func (idx *TFIDF) VocabularySize() int {
	return len(idx.idf)
}

// CorpusSize returns the number of indexed documents.
func (idx *TFIDF) CorpusSize() int {
	return idx.corpus
}
