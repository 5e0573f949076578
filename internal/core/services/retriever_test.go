package services

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/attest-cli/internal/core/domain"
)

func TestRetriever_Retrieve(t *testing.T) {
	index := &mockVectorIndex{hits: testHits()}
	retriever := NewRetriever(&mockEmbeddingService{}, index)
	ctx := context.Background()

	docs, err := retriever.Retrieve(ctx, "How is access controlled?", 4)

	require.NoError(t, err)
	require.Len(t, docs, 3)
	assert.Equal(t, "nist-ac-1", docs[0].ID)
	assert.Equal(t, "NIST", docs[0].Source)
	assert.Equal(t, "AC-1", docs[0].Section)
	assert.Equal(t, "Access Control", docs[0].Title)
	assert.InDelta(t, 0.9, docs[0].Relevance, 1e-9)
}

func TestRetriever_Retrieve_DescendingRelevance(t *testing.T) {
	index := &mockVectorIndex{hits: testHits()}
	retriever := NewRetriever(&mockEmbeddingService{}, index)

	docs, err := retriever.Retrieve(context.Background(), "audit", 4)

	require.NoError(t, err)
	for i := 1; i < len(docs); i++ {
		assert.GreaterOrEqual(t, docs[i-1].Relevance, docs[i].Relevance,
			"closer documents must rank at least as high")
	}
}

func TestRetriever_Retrieve_Deterministic(t *testing.T) {
	index := &mockVectorIndex{hits: testHits()}
	retriever := NewRetriever(&mockEmbeddingService{}, index)
	ctx := context.Background()

	first, err := retriever.Retrieve(ctx, "access", 4)
	require.NoError(t, err)
	second, err := retriever.Retrieve(ctx, "access", 4)
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestRetriever_Retrieve_TopKLimit(t *testing.T) {
	index := &mockVectorIndex{hits: testHits()}
	retriever := NewRetriever(&mockEmbeddingService{}, index)

	docs, err := retriever.Retrieve(context.Background(), "access", 2)

	require.NoError(t, err)
	assert.Len(t, docs, 2)
}

func TestRetriever_Retrieve_EmptyIndex(t *testing.T) {
	retriever := NewRetriever(&mockEmbeddingService{}, &mockVectorIndex{})

	docs, err := retriever.Retrieve(context.Background(), "anything", 4)

	require.NoError(t, err)
	assert.Empty(t, docs)
}

func TestRetriever_Retrieve_EmbeddingFailure(t *testing.T) {
	embedder := &mockEmbeddingService{embedErr: errors.New("unreachable")}
	retriever := NewRetriever(embedder, &mockVectorIndex{hits: testHits()})

	_, err := retriever.Retrieve(context.Background(), "access", 4)

	assert.ErrorIs(t, err, domain.ErrEmbeddingService)
}

func TestRetriever_Retrieve_IndexFailure(t *testing.T) {
	index := &mockVectorIndex{queryErr: errors.New("locked")}
	retriever := NewRetriever(&mockEmbeddingService{}, index)

	_, err := retriever.Retrieve(context.Background(), "access", 4)

	assert.ErrorIs(t, err, domain.ErrIndexUnavailable)
}
