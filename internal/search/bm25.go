package search

import (
	"math"
	"sort"
	"strings"

	"github.com/flytohub/flyto-indexer/internal/symbol"
)

const (
	k1 = 1.5
	b  = 0.75
)

// Posting is one (document, term frequency) pair in a term's postings list.
type Posting struct {
	SymbolID string `json:"symbol_id"`
	TermFreq int    `json:"tf"`
}

// Index is the persistent BM25 state: postings per term, and document
// length per symbol, IDF computed over symbols (not files) per §4.6.
type Index struct {
	Postings map[string][]Posting `json:"postings"`
	DocLen   map[string]int       `json:"doc_len"`
	DocCount int                  `json:"doc_count"`
	AvgLen   float64              `json:"avg_len"`
}

// NewIndex returns an empty index.
func NewIndex() *Index {
	return &Index{Postings: make(map[string][]Posting), DocLen: make(map[string]int)}
}

// Document is the term stream built for one symbol: the concatenation of
// tokenized identifier, kind, file path components, doc tokens, and
// decorators, per §4.6.
func Document(rec symbol.Record) []string {
	var terms []string
	terms = append(terms, Tokenize(simpleDocName(rec.ID.Name))...)
	terms = append(terms, strings.ToLower(string(rec.Kind)))
	for _, part := range strings.FieldsFunc(rec.ID.Path, func(r rune) bool { return r == '/' || r == '.' }) {
		terms = append(terms, Tokenize(part)...)
	}
	terms = append(terms, tokenizeText(rec.Doc)...)
	for _, d := range rec.Decorators {
		terms = append(terms, Tokenize(d)...)
	}
	return terms
}

func simpleDocName(name string) string {
	if i := strings.LastIndexByte(name, '.'); i >= 0 {
		return name[i+1:]
	}
	return name
}

func tokenizeText(s string) []string {
	var out []string
	for _, w := range strings.Fields(s) {
		w = strings.Trim(w, ".,:;()[]{}\"'")
		out = append(out, Tokenize(w)...)
	}
	return out
}

// AddDocument indexes one symbol's term stream. It appends postings and
// does not remove any prior postings for the same SymbolID, so callers
// re-indexing a changed symbol call RemoveDocument first.
func (idx *Index) AddDocument(id string, terms []string) {
	freq := make(map[string]int, len(terms))
	for _, t := range terms {
		freq[t]++
	}
	idx.DocLen[id] = len(terms)
	for term, tf := range freq {
		idx.Postings[term] = append(idx.Postings[term], Posting{SymbolID: id, TermFreq: tf})
	}
}

// RemoveDocument strips every posting belonging to id, used when a symbol
// is deleted or re-parsed.
func (idx *Index) RemoveDocument(id string) {
	delete(idx.DocLen, id)
	for term, postings := range idx.Postings {
		out := postings[:0]
		for _, p := range postings {
			if p.SymbolID != id {
				out = append(out, p)
			}
		}
		if len(out) == 0 {
			delete(idx.Postings, term)
		} else {
			idx.Postings[term] = out
		}
	}
}

// Finalize recomputes DocCount and AvgLen from the current DocLen table.
// Call once after a batch of AddDocument/RemoveDocument calls, before
// Search or persistence.
func (idx *Index) Finalize() {
	idx.DocCount = len(idx.DocLen)
	if idx.DocCount == 0 {
		idx.AvgLen = 0
		return
	}
	total := 0
	for _, l := range idx.DocLen {
		total += l
	}
	idx.AvgLen = float64(total) / float64(idx.DocCount)
}

// Hit is one scored symbol from a Search call.
type Hit struct {
	SymbolID string
	Score    float64
}

// Search runs standard Okapi BM25 (k1=1.5, b=0.75) over the query's
// tokenized terms and returns the top max hits, highest score first.
func (idx *Index) Search(query string, max int) []Hit {
	if idx.DocCount == 0 {
		return nil
	}
	var queryTerms []string
	for _, w := range strings.Fields(query) {
		queryTerms = append(queryTerms, Tokenize(w)...)
	}

	scores := make(map[string]float64)
	for _, term := range dedup(queryTerms) {
		postings := idx.Postings[term]
		if len(postings) == 0 {
			continue
		}
		idf := math.Log(1 + (float64(idx.DocCount)-float64(len(postings))+0.5)/(float64(len(postings))+0.5))
		for _, p := range postings {
			docLen := float64(idx.DocLen[p.SymbolID])
			tf := float64(p.TermFreq)
			denom := tf + k1*(1-b+b*docLen/idx.AvgLen)
			scores[p.SymbolID] += idf * (tf * (k1 + 1)) / denom
		}
	}

	hits := make([]Hit, 0, len(scores))
	for id, score := range scores {
		hits = append(hits, Hit{SymbolID: id, Score: score})
	}
	sort.Slice(hits, func(i, j int) bool {
		if hits[i].Score != hits[j].Score {
			return hits[i].Score > hits[j].Score
		}
		return hits[i].SymbolID < hits[j].SymbolID
	})
	if max > 0 && len(hits) > max {
		hits = hits[:max]
	}
	return hits
}
