package spectral

import (
	"errors"
	"math"
	"sort"

	"github.com/weierstrassextremevaluetheorem/eigenslur/internal/textutil"
)

// DefaultStopwords is the fixed English stopword list filtered out of graph
// construction by default (spec.md glossary).
var DefaultStopwords = map[string]bool{
	"a": true, "an": true, "and": true, "are": true, "as": true, "at": true,
	"be": true, "been": true, "but": true, "by": true, "for": true, "from": true,
	"had": true, "has": true, "have": true, "he": true, "her": true, "his": true,
	"i": true, "if": true, "in": true, "into": true, "is": true, "it": true,
	"its": true, "me": true, "my": true, "of": true, "on": true, "or": true,
	"our": true, "she": true, "that": true, "the": true, "their": true,
	"them": true, "they": true, "this": true, "to": true, "was": true,
	"we": true, "were": true, "with": true, "you": true, "your": true,
}

// ErrWindowTooSmall is returned by BuildCooccurrenceGraph when window_size < 2.
var ErrWindowTooSmall = errors.New("spectral: window_size must be >= 2")

// CooccurrenceGraph is an undirected weighted graph over string nodes.
type CooccurrenceGraph struct {
	Adjacency            map[string]map[string]float64
	TokenDocumentFreq     map[string]int
	ContextCount          int
}

type pairKey struct {
	a, b string
}

// GraphOptions configures BuildCooccurrenceGraph. A zero value is invalid;
// use NewGraphOptions for the documented defaults.
type GraphOptions struct {
	WindowSize     int
	MinTokenLength int
	Stopwords      map[string]bool
}

// NewGraphOptions returns the documented defaults (window_size=6,
// min_token_length=2, DEFAULT stopwords).
func NewGraphOptions() GraphOptions {
	return GraphOptions{
		WindowSize:     6,
		MinTokenLength: 2,
		Stopwords:      DefaultStopwords,
	}
}

func filterTokens(text string, opts GraphOptions) []string {
	tokens := textutil.Tokenize(text)
	filtered := make([]string, 0, len(tokens))
	for _, token := range tokens {
		if len(token) < opts.MinTokenLength {
			continue
		}
		if opts.Stopwords != nil && opts.Stopwords[token] {
			continue
		}
		filtered = append(filtered, token)
	}
	return filtered
}

// BuildCooccurrenceGraph builds a windowed, proximity-weighted co-occurrence
// graph over contexts (spec.md §4.4).
func BuildCooccurrenceGraph(contexts []string, opts GraphOptions) (*CooccurrenceGraph, error) {
	if opts.WindowSize < 2 {
		return nil, ErrWindowTooSmall
	}

	pairDocFreq := make(map[pairKey]int)
	pairProximitySum := make(map[pairKey]float64)
	tokenDocFreq := make(map[string]int)
	contextCount := 0

	for _, text := range contexts {
		tokens := filterTokens(text, opts)
		if len(tokens) == 0 {
			continue
		}
		contextCount++

		distinct := make(map[string]bool, len(tokens))
		for _, token := range tokens {
			distinct[token] = true
		}
		for token := range distinct {
			tokenDocFreq[token]++
		}

		contextPairProximity := make(map[pairKey]float64)
		n := len(tokens)
		for i := 0; i < n; i++ {
			limit := i + opts.WindowSize
			if limit > n {
				limit = n
			}
			for j := i + 1; j < limit; j++ {
				tokenA, tokenB := tokens[i], tokens[j]
				if tokenA == tokenB {
					continue
				}
				pair := pairKey{tokenA, tokenB}
				if tokenA > tokenB {
					pair = pairKey{tokenB, tokenA}
				}
				proximity := 1.0 / float64(j-i)
				if existing, ok := contextPairProximity[pair]; !ok || proximity > existing {
					contextPairProximity[pair] = proximity
				}
			}
		}

		for pair, proximity := range contextPairProximity {
			pairDocFreq[pair]++
			pairProximitySum[pair] += proximity
		}
	}

	if contextCount == 0 || len(pairDocFreq) == 0 {
		return &CooccurrenceGraph{
			Adjacency:        map[string]map[string]float64{},
			TokenDocumentFreq: tokenDocFreq,
			ContextCount:     contextCount,
		}, nil
	}

	adjacency := make(map[string]map[string]float64)
	for pair, count := range pairDocFreq {
		dfA := tokenDocFreq[pair.a]
		dfB := tokenDocFreq[pair.b]
		if dfA == 0 || dfB == 0 {
			continue
		}

		pmi := math.Log(float64(count*contextCount) / float64(dfA*dfB))
		support := float64(count) / float64(contextCount)
		meanProximity := pairProximitySum[pair] / float64(count)
		weight := math.Max(0, pmi) + support*meanProximity
		if weight <= 0 {
			continue
		}

		if adjacency[pair.a] == nil {
			adjacency[pair.a] = make(map[string]float64)
		}
		if adjacency[pair.b] == nil {
			adjacency[pair.b] = make(map[string]float64)
		}
		adjacency[pair.a][pair.b] = weight
		adjacency[pair.b][pair.a] = weight
	}

	return &CooccurrenceGraph{
		Adjacency:        adjacency,
		TokenDocumentFreq: tokenDocFreq,
		ContextCount:     contextCount,
	}, nil
}

// sortedKeys returns the map's keys in ascending order, used to keep BFS
// neighbor expansion deterministic.
func sortedKeys(neighbors map[string]float64) []string {
	keys := make([]string, 0, len(neighbors))
	for k := range neighbors {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
