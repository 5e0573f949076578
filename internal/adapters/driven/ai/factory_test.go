package ai

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/attest-cli/internal/adapters/driven/embedding/ratelimit"
	"github.com/custodia-labs/attest-cli/internal/core/domain"
)

// fakeOpenAI responds OK to the /models reachability check.
func fakeOpenAI(t *testing.T) *httptest.Server {
	t.Helper()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/models" {
			w.WriteHeader(http.StatusOK)
			w.Write([]byte(`{"data":[]}`))
			return
		}
		w.WriteHeader(http.StatusNotFound)
	}))
	t.Cleanup(server.Close)
	return server
}

// fakeOllama responds OK to the /api/tags reachability check.
func fakeOllama(t *testing.T) *httptest.Server {
	t.Helper()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/api/tags" {
			w.WriteHeader(http.StatusOK)
			w.Write([]byte(`{"models":[]}`))
			return
		}
		w.WriteHeader(http.StatusNotFound)
	}))
	t.Cleanup(server.Close)
	return server
}

// fakeAnthropic responds OK to the /v1/messages reachability check.
func fakeAnthropic(t *testing.T) *httptest.Server {
	t.Helper()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/v1/messages" {
			w.WriteHeader(http.StatusOK)
			w.Write([]byte(`{"content":[{"type":"text","text":"pong"}]}`))
			return
		}
		w.WriteHeader(http.StatusNotFound)
	}))
	t.Cleanup(server.Close)
	return server
}

func TestCreateEmbeddingService_OpenAI(t *testing.T) {
	server := fakeOpenAI(t)

	service, err := CreateEmbeddingService(context.Background(), domain.EmbeddingSettings{
		Provider: domain.AIProviderOpenAI,
		Model:    "text-embedding-3-small",
		BaseURL:  server.URL,
		APIKey:   "sk-test",
	})

	require.NoError(t, err)
	defer service.Close()
	assert.Equal(t, "text-embedding-3-small", service.ModelName())
	assert.Equal(t, 1536, service.Dimensions())
}

func TestCreateEmbeddingService_Ollama(t *testing.T) {
	server := fakeOllama(t)

	service, err := CreateEmbeddingService(context.Background(), domain.EmbeddingSettings{
		Provider: domain.AIProviderOllama,
		BaseURL:  server.URL,
	})

	require.NoError(t, err)
	defer service.Close()
	assert.Equal(t, "nomic-embed-text", service.ModelName())
}

func TestCreateEmbeddingService_RateLimited(t *testing.T) {
	server := fakeOpenAI(t)

	service, err := CreateEmbeddingService(context.Background(), domain.EmbeddingSettings{
		Provider:          domain.AIProviderOpenAI,
		Model:             "text-embedding-3-small",
		BaseURL:           server.URL,
		APIKey:            "sk-test",
		RequestsPerSecond: 10,
	})

	require.NoError(t, err)
	defer service.Close()
	assert.IsType(t, &ratelimit.EmbeddingService{}, service)
}

func TestCreateEmbeddingService_NotConfigured(t *testing.T) {
	_, err := CreateEmbeddingService(context.Background(), domain.EmbeddingSettings{
		Provider: domain.AIProviderOpenAI, // Requires a key
	})
	require.Error(t, err)

	_, err = CreateEmbeddingService(context.Background(), domain.EmbeddingSettings{
		Provider: "mystery",
	})
	require.Error(t, err)
}

func TestCreateEmbeddingService_AnthropicUnsupported(t *testing.T) {
	_, err := CreateEmbeddingService(context.Background(), domain.EmbeddingSettings{
		Provider: domain.AIProviderAnthropic,
		APIKey:   "sk-ant-test",
	})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "does not offer embeddings")
}

func TestCreateEmbeddingService_UnreachableProvider(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	t.Cleanup(server.Close)

	_, err := CreateEmbeddingService(context.Background(), domain.EmbeddingSettings{
		Provider: domain.AIProviderOpenAI,
		BaseURL:  server.URL,
		APIKey:   "sk-bad",
	})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "unavailable")
}

func TestCreateGenerationService_OpenAI(t *testing.T) {
	server := fakeOpenAI(t)

	service, err := CreateGenerationService(context.Background(), domain.GenerationSettings{
		Provider: domain.AIProviderOpenAI,
		Model:    "gpt-4o-mini",
		BaseURL:  server.URL,
		APIKey:   "sk-test",
	})

	require.NoError(t, err)
	defer service.Close()
	assert.Equal(t, "gpt-4o-mini", service.ModelName())
}

func TestCreateGenerationService_Anthropic(t *testing.T) {
	server := fakeAnthropic(t)

	service, err := CreateGenerationService(context.Background(), domain.GenerationSettings{
		Provider: domain.AIProviderAnthropic,
		BaseURL:  server.URL,
		APIKey:   "sk-ant-test",
	})

	require.NoError(t, err)
	defer service.Close()
	assert.Equal(t, "claude-3-5-haiku-latest", service.ModelName())
}

func TestCreateGenerationService_Ollama(t *testing.T) {
	server := fakeOllama(t)

	service, err := CreateGenerationService(context.Background(), domain.GenerationSettings{
		Provider: domain.AIProviderOllama,
		BaseURL:  server.URL,
		Model:    "llama3.2",
	})

	require.NoError(t, err)
	defer service.Close()
	assert.Equal(t, "llama3.2", service.ModelName())
}

func TestCreateGenerationService_NotConfigured(t *testing.T) {
	_, err := CreateGenerationService(context.Background(), domain.GenerationSettings{
		Provider: domain.AIProviderAnthropic, // Requires a key
	})
	require.Error(t, err)
}
