package search

import (
	"StockScan-Backend/domain"
	"sort"
	"sync"

	"github.com/lithammer/fuzzysearch/fuzzy"
)

// DefaultMaxRank is the Levenshtein distance cutoff above which a fuzzy
// match is discarded.
const DefaultMaxRank = 20

type (
	// Index holds a per-user fuzzy index over product name, category and
	// barcode. It is derived data: callers rebuild a user's shard from a
	// fresh catalog snapshot after every mutation rather than patching it
	// incrementally.
	Index interface {
		Rebuild(userID string, products []domain.ProductResponse)
		Search(userID string, query string) []domain.ProductResponse
		Drop(userID string)
	}

	indexEntry struct {
		product domain.ProductResponse
		keys    []string
	}

	index struct {
		mu      sync.RWMutex
		maxRank int
		shards  map[string][]indexEntry
	}
)

func NewIndex(maxRank int) Index {
	if maxRank <= 0 {
		maxRank = DefaultMaxRank
	}
	return &index{
		maxRank: maxRank,
		shards:  make(map[string][]indexEntry),
	}
}

func (i *index) Rebuild(userID string, products []domain.ProductResponse) {
	entries := make([]indexEntry, 0, len(products))
	for _, p := range products {
		keys := []string{p.Name, p.Category}
		if p.Barcode != "" {
			keys = append(keys, p.Barcode)
		}
		entries = append(entries, indexEntry{product: p, keys: keys})
	}

	i.mu.Lock()
	i.shards[userID] = entries
	i.mu.Unlock()
}

// Search returns products ranked by ascending edit distance to the query.
// An empty query returns the full snapshot in catalog order.
func (i *index) Search(userID string, query string) []domain.ProductResponse {
	i.mu.RLock()
	entries := i.shards[userID]
	i.mu.RUnlock()

	if query == "" {
		results := make([]domain.ProductResponse, 0, len(entries))
		for _, e := range entries {
			results = append(results, e.product)
		}
		return results
	}

	type ranked struct {
		product domain.ProductResponse
		rank    int
	}

	matches := make([]ranked, 0, len(entries))
	for _, e := range entries {
		best := -1
		for _, key := range e.keys {
			rank := fuzzy.RankMatchNormalizedFold(query, key)
			if rank < 0 || rank > i.maxRank {
				continue
			}
			if best < 0 || rank < best {
				best = rank
			}
		}
		if best >= 0 {
			matches = append(matches, ranked{product: e.product, rank: best})
		}
	}

	sort.SliceStable(matches, func(a, b int) bool {
		return matches[a].rank < matches[b].rank
	})

	results := make([]domain.ProductResponse, 0, len(matches))
	for _, m := range matches {
		results = append(results, m.product)
	}
	return results
}

func (i *index) Drop(userID string) {
	i.mu.Lock()
	delete(i.shards, userID)
	i.mu.Unlock()
}
