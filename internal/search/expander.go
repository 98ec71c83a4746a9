package search

import (
	"strings"

	"github.com/AlmazPRO7/StdvBot/internal/index"
)

// Expander widens query recall by appending domain synonyms for known
// query terms. It is a pure lookup with no external I/O, so expanded
// queries are deterministic for a given table.
type Expander struct {
	synonyms map[string][]string
}

// ExpanderOption configures the expander.
type ExpanderOption func(*Expander)

// WithSynonyms adds custom synonym mappings on top of the defaults.
func WithSynonyms(synonyms map[string][]string) ExpanderOption {
	return func(e *Expander) {
		for k, v := range synonyms {
			e.synonyms[strings.ToLower(k)] = append(e.synonyms[strings.ToLower(k)], v...)
		}
	}
}

// NewExpander creates an expander seeded with DefaultSynonyms.
func NewExpander(opts ...ExpanderOption) *Expander {
	e := &Expander{synonyms: make(map[string][]string, len(DefaultSynonyms))}
	for k, v := range DefaultSynonyms {
		e.synonyms[k] = v
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Expand appends up to maxTerms synonyms per recognized query token to
// the query string. Tokens without a table entry are left untouched, and
// synonyms already present (or added for an earlier token) are not
// repeated. Returns the query unchanged when nothing matches.
func (e *Expander) Expand(query string, maxTerms int) string {
	if maxTerms <= 0 {
		return query
	}

	tokens := index.Tokenize(query)
	if len(tokens) == 0 {
		return query
	}

	seen := make(map[string]struct{}, len(tokens))
	for _, tok := range tokens {
		seen[tok] = struct{}{}
	}

	var added []string
	for _, tok := range tokens {
		synonyms, ok := e.synonyms[tok]
		if !ok {
			continue
		}

		n := 0
		for _, syn := range synonyms {
			if n >= maxTerms {
				break
			}
			key := strings.ToLower(syn)
			if _, dup := seen[key]; dup {
				continue
			}
			seen[key] = struct{}{}
			added = append(added, syn)
			n++
		}
	}

	if len(added) == 0 {
		return query
	}
	return query + " " + strings.Join(added, " ")
}
