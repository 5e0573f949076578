package services

import (
	"context"
	"fmt"

	"github.com/custodia-labs/attest-cli/internal/core/domain"
	"github.com/custodia-labs/attest-cli/internal/core/ports/driven"
	"github.com/custodia-labs/attest-cli/internal/logger"
)

// Retriever answers nearest-neighbour queries over the vector index.
// It must share the embedding service used for population; a model change
// between population and query time requires a fresh index database.
type Retriever struct {
	embedder driven.EmbeddingService
	index    driven.VectorIndex
}

// NewRetriever creates a new retriever.
func NewRetriever(embedder driven.EmbeddingService, index driven.VectorIndex) *Retriever {
	return &Retriever{embedder: embedder, index: index}
}

// Retrieve returns up to topK documents nearest to the query, ordered by
// descending relevance (relevance = 1 - cosine distance). Equal distances
// keep index insertion order, so repeated calls over fixed index contents
// return identical sequences. An empty index yields an empty slice, not
// an error.
func (s *Retriever) Retrieve(ctx context.Context, query string, topK int) ([]domain.RetrievedDoc, error) {
	embedding, err := s.embedder.Embed(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("%w: embedding query: %w", domain.ErrEmbeddingService, err)
	}
	logger.Debug("Query embedding: %d dimensions", len(embedding))

	hits, err := s.index.Query(ctx, embedding, topK)
	if err != nil {
		return nil, fmt.Errorf("%w: querying index: %w", domain.ErrIndexUnavailable, err)
	}
	logger.Debug("Retrieved %d documents (topK=%d)", len(hits), topK)

	docs := make([]domain.RetrievedDoc, len(hits))
	for i, hit := range hits {
		docs[i] = domain.RetrievedDoc{
			ID:        hit.ID,
			Content:   hit.Content,
			Source:    hit.Metadata.Source,
			Section:   hit.Metadata.Section,
			Title:     hit.Metadata.Title,
			Relevance: 1 - hit.Distance,
		}
	}

	return docs, nil
}
