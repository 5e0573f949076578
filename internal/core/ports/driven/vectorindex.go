package driven

import (
	"context"

	"github.com/custodia-labs/attest-cli/internal/core/domain"
)

// VectorIndex persists document embeddings and answers nearest-neighbour
// queries. The index is either empty or holds exactly one entry per corpus
// document; InsertBatch must commit all entries or none so partial
// population is never observable.
//
// Concurrent reads are safe. InsertBatch is the only mutating operation and
// is serialised by the Indexer service.
type VectorIndex interface {
	// Count returns the number of stored entries.
	Count(ctx context.Context) (int, error)

	// InsertBatch stores all entries atomically.
	InsertBatch(ctx context.Context, entries []IndexEntry) error

	// Query returns up to k entries nearest to the given embedding,
	// ordered by ascending distance with ties broken by insertion order.
	// An empty index yields an empty result, not an error.
	Query(ctx context.Context, embedding []float32, k int) ([]VectorHit, error)

	// Close releases resources.
	Close() error
}

// IndexEntry is a single vector with its document content and attribution
// metadata.
type IndexEntry struct {
	// ID matches the corpus Document.ID.
	ID string

	// Content is the full document text, stored for retrieval.
	Content string

	// Embedding is the document vector.
	Embedding []float32

	// Metadata is the fixed-shape attribution record.
	Metadata domain.DocMetadata
}

// VectorHit is a nearest-neighbour query result.
type VectorHit struct {
	// ID is the matched entry's document ID.
	ID string

	// Content is the stored document text.
	Content string

	// Metadata is the stored attribution record.
	Metadata domain.DocMetadata

	// Distance is the cosine distance to the query (lower = closer).
	Distance float64
}
