package file

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/attest-cli/internal/core/domain"
)

func newTestConfigStore(t *testing.T) *ConfigStore {
	t.Helper()
	return NewConfigStoreAt(filepath.Join(t.TempDir(), "config.toml"))
}

func TestLoad_MissingFileReturnsDefaults(t *testing.T) {
	store := newTestConfigStore(t)

	settings, err := store.Load()

	require.NoError(t, err)
	assert.Equal(t, domain.DefaultSettings(), settings)
}

func TestSaveAndLoad_Roundtrip(t *testing.T) {
	store := newTestConfigStore(t)

	settings := domain.Settings{
		Embedding: domain.EmbeddingSettings{
			Provider:          domain.AIProviderOllama,
			Model:             "nomic-embed-text",
			BaseURL:           "http://localhost:11434",
			RequestsPerSecond: 5,
		},
		Generation: domain.GenerationSettings{
			Provider: domain.AIProviderAnthropic,
			Model:    "claude-3-5-haiku-latest",
			APIKey:   "sk-ant-test",
		},
		Retrieval: domain.RetrievalSettings{TopK: 8},
		DataDir:   "/tmp/attest-data",
	}

	require.NoError(t, store.Save(settings))

	loaded, err := store.Load()
	require.NoError(t, err)
	assert.Equal(t, settings, loaded)
}

func TestSave_CreatesDirectoryAndRestrictsPermissions(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.toml")
	store := NewConfigStoreAt(path)

	require.NoError(t, store.Save(domain.DefaultSettings()))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())
}

func TestLoad_PartialFileKeepsDefaults(t *testing.T) {
	store := newTestConfigStore(t)
	partial := "[generation]\nprovider = \"ollama\"\nmodel = \"llama3.2\"\n"
	require.NoError(t, os.WriteFile(store.Path(), []byte(partial), 0o600))

	settings, err := store.Load()

	require.NoError(t, err)
	assert.Equal(t, domain.AIProviderOllama, settings.Generation.Provider)
	assert.Equal(t, "llama3.2", settings.Generation.Model)
	// Sections absent from the file keep their defaults.
	assert.Equal(t, domain.AIProviderOpenAI, settings.Embedding.Provider)
	assert.Equal(t, domain.DefaultTopK, settings.Retrieval.TopK)
}

func TestLoad_MalformedFile(t *testing.T) {
	store := newTestConfigStore(t)
	require.NoError(t, os.WriteFile(store.Path(), []byte("not = [valid"), 0o600))

	_, err := store.Load()

	require.Error(t, err)
}

func TestPath(t *testing.T) {
	store := NewConfigStoreAt("/some/where/config.toml")
	assert.Equal(t, "/some/where/config.toml", store.Path())
}
