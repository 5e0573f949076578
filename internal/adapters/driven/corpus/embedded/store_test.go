package embedded

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {
	store := NewStore()

	docs, err := store.Load()

	require.NoError(t, err)
	require.NotEmpty(t, docs)

	seen := make(map[string]struct{}, len(docs))
	sources := make(map[string]struct{})
	for _, doc := range docs {
		require.NoError(t, doc.Validate(), "document %s", doc.ID)
		_, dup := seen[doc.ID]
		assert.False(t, dup, "duplicate id %s", doc.ID)
		seen[doc.ID] = struct{}{}
		sources[doc.Source] = struct{}{}
	}

	assert.Contains(t, sources, "NIST CSF 2.0")
	assert.Contains(t, sources, "ISO 27001")
	assert.Contains(t, sources, "SOC 2")
}

func TestLoad_DeterministicOrder(t *testing.T) {
	store := NewStore()

	first, err := store.Load()
	require.NoError(t, err)
	second, err := store.Load()
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestLoad_SearchableText(t *testing.T) {
	store := NewStore()

	docs, err := store.Load()
	require.NoError(t, err)

	for _, doc := range docs {
		assert.Equal(t, doc.Title+": "+doc.Content, doc.SearchableText())
	}
}
