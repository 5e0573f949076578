package services

import (
	"context"
	"fmt"
	"sync"

	"github.com/custodia-labs/attest-cli/internal/core/domain"
	"github.com/custodia-labs/attest-cli/internal/core/ports/driven"
	"github.com/custodia-labs/attest-cli/internal/logger"
)

// Indexer populates the vector index from the corpus store exactly once.
// Population is idempotent across calls and process restarts: a non-empty
// index is treated as fully populated and left untouched.
type Indexer struct {
	corpus   driven.CorpusStore
	embedder driven.EmbeddingService
	index    driven.VectorIndex

	// mu serialises EnsurePopulated so racing first calls perform at most
	// one embedding-and-insert pass.
	mu        sync.Mutex
	populated bool
}

// NewIndexer creates a new indexer.
func NewIndexer(
	corpus driven.CorpusStore,
	embedder driven.EmbeddingService,
	index driven.VectorIndex,
) *Indexer {
	return &Indexer{
		corpus:   corpus,
		embedder: embedder,
		index:    index,
	}
}

// EnsurePopulated makes the vector index hold exactly one entry per corpus
// document. If the index already has entries it returns immediately;
// otherwise it loads the corpus, embeds every document, and commits all
// entries in a single atomic batch. On any embedding failure nothing is
// committed, so the index stays empty rather than partially populated.
func (s *Indexer) EnsurePopulated(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.populated {
		return nil
	}

	count, err := s.index.Count(ctx)
	if err != nil {
		return fmt.Errorf("%w: counting entries: %w", domain.ErrIndexUnavailable, err)
	}
	if count > 0 {
		logger.Debug("Index already populated with %d entries", count)
		s.populated = true
		return nil
	}

	docs, err := s.corpus.Load()
	if err != nil {
		return fmt.Errorf("load corpus: %w", err)
	}
	if len(docs) == 0 {
		logger.Warn("Corpus is empty, index left unpopulated")
		s.populated = true
		return nil
	}
	logger.Info("Populating index with %d corpus documents", len(docs))

	texts := make([]string, len(docs))
	for i := range docs {
		texts[i] = docs[i].SearchableText()
	}

	// Embed everything before touching the index so a mid-corpus
	// embedding failure cannot leave a partial commit behind.
	vectors, err := s.embedder.EmbedBatch(ctx, texts)
	if err != nil {
		return fmt.Errorf("%w: embedding corpus: %w", domain.ErrEmbeddingService, err)
	}
	if len(vectors) != len(docs) {
		return fmt.Errorf("%w: got %d vectors for %d documents",
			domain.ErrEmbeddingService, len(vectors), len(docs))
	}

	entries := make([]driven.IndexEntry, len(docs))
	for i := range docs {
		if len(vectors[i]) == 0 {
			return fmt.Errorf("%w: empty vector for document %s",
				domain.ErrEmbeddingService, docs[i].ID)
		}
		if len(vectors[i]) != len(vectors[0]) {
			return fmt.Errorf("%w: inconsistent vector dimensions for document %s",
				domain.ErrEmbeddingService, docs[i].ID)
		}
		entries[i] = driven.IndexEntry{
			ID:        docs[i].ID,
			Content:   docs[i].Content,
			Embedding: vectors[i],
			Metadata:  docs[i].Metadata(),
		}
	}

	if err := s.index.InsertBatch(ctx, entries); err != nil {
		return fmt.Errorf("%w: committing batch: %w", domain.ErrIndexUnavailable, err)
	}

	logger.Info("Index populated: %d entries, %d dimensions", len(entries), len(vectors[0]))
	s.populated = true
	return nil
}
