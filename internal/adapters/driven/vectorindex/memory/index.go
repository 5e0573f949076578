// Package memory provides an in-memory vector index.
// Useful for tests and for ephemeral runs where persistence is unwanted.
package memory

import (
	"context"
	"fmt"
	"math"
	"sort"
	"sync"

	"github.com/custodia-labs/attest-cli/internal/core/domain"
	"github.com/custodia-labs/attest-cli/internal/core/ports/driven"
)

// Ensure Index implements the interface.
var _ driven.VectorIndex = (*Index)(nil)

// Index is an in-memory vector index. Safe for concurrent use.
type Index struct {
	mu      sync.RWMutex
	entries []driven.IndexEntry
	ids     map[string]struct{}
}

// New creates an empty in-memory index.
func New() *Index {
	return &Index{
		ids: make(map[string]struct{}),
	}
}

// Count returns the number of entries in the index.
func (idx *Index) Count(_ context.Context) (int, error) {
	idx.mu.RLock()
	defer idx.mu.RUnlock()
	return len(idx.entries), nil
}

// InsertBatch inserts all entries or none. Entries are validated before
// any state changes.
func (idx *Index) InsertBatch(_ context.Context, entries []driven.IndexEntry) error {
	if len(entries) == 0 {
		return nil
	}

	idx.mu.Lock()
	defer idx.mu.Unlock()

	seen := make(map[string]struct{}, len(entries))
	for _, entry := range entries {
		if entry.ID == "" {
			return fmt.Errorf("entry with empty id")
		}
		if len(entry.Embedding) == 0 {
			return fmt.Errorf("entry %s has empty embedding", entry.ID)
		}
		if _, dup := idx.ids[entry.ID]; dup {
			return fmt.Errorf("entry %s already indexed", entry.ID)
		}
		if _, dup := seen[entry.ID]; dup {
			return fmt.Errorf("duplicate entry %s in batch", entry.ID)
		}
		seen[entry.ID] = struct{}{}
	}

	for _, entry := range entries {
		idx.entries = append(idx.entries, entry)
		idx.ids[entry.ID] = struct{}{}
	}
	return nil
}

// Query returns up to topK entries nearest to the given embedding,
// ordered by ascending cosine distance with insertion order breaking ties.
func (idx *Index) Query(_ context.Context, embedding []float32, topK int) ([]driven.VectorHit, error) {
	if topK <= 0 {
		return nil, nil
	}

	idx.mu.RLock()
	defer idx.mu.RUnlock()

	hits := make([]driven.VectorHit, 0, len(idx.entries))
	for _, entry := range idx.entries {
		if len(entry.Embedding) != len(embedding) {
			return nil, fmt.Errorf("%w: dimension mismatch: index has %d, query has %d",
				domain.ErrIndexUnavailable, len(entry.Embedding), len(embedding))
		}
		hits = append(hits, driven.VectorHit{
			ID:       entry.ID,
			Content:  entry.Content,
			Metadata: entry.Metadata,
			Distance: cosineDistance(embedding, entry.Embedding),
		})
	}

	sort.SliceStable(hits, func(i, j int) bool {
		return hits[i].Distance < hits[j].Distance
	})
	if len(hits) > topK {
		hits = hits[:topK]
	}
	return hits, nil
}

// Close is a no-op for the in-memory index.
func (idx *Index) Close() error {
	return nil
}

// cosineDistance returns 1 - cosine similarity. Zero-norm vectors are
// treated as maximally distant.
func cosineDistance(a, b []float32) float64 {
	var dot, normA, normB float64
	for i := range a {
		dot += float64(a[i]) * float64(b[i])
		normA += float64(a[i]) * float64(a[i])
		normB += float64(b[i]) * float64(b[i])
	}
	if normA == 0 || normB == 0 {
		return 1.0
	}
	return 1.0 - dot/(math.Sqrt(normA)*math.Sqrt(normB))
}
