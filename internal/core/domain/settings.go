package domain

// AIProvider identifies an AI service provider for embeddings or generation.
type AIProvider string

// Available AI providers.
const (
	// AIProviderOllama is a local Ollama instance.
	AIProviderOllama AIProvider = "ollama"

	// AIProviderOpenAI is the OpenAI cloud API.
	AIProviderOpenAI AIProvider = "openai"

	// AIProviderAnthropic is the Anthropic cloud API.
	AIProviderAnthropic AIProvider = "anthropic"
)

// IsValid returns true if the AI provider is recognised.
func (p AIProvider) IsValid() bool {
	switch p {
	case AIProviderOllama, AIProviderOpenAI, AIProviderAnthropic:
		return true
	default:
		return false
	}
}

// RequiresAPIKey returns true if this provider needs an API key.
func (p AIProvider) RequiresAPIKey() bool {
	return p == AIProviderOpenAI || p == AIProviderAnthropic
}

// String returns the string representation.
func (p AIProvider) String() string {
	return string(p)
}

// EmbeddingSettings configures the embedding provider.
// The model (and therefore the vector dimensionality) must stay constant
// between index population and query time; changing it requires a fresh
// index database.
type EmbeddingSettings struct {
	// Provider selects the embedding backend.
	Provider AIProvider `toml:"provider"`

	// Model is the embedding model name.
	Model string `toml:"model"`

	// BaseURL overrides the provider API base URL.
	BaseURL string `toml:"base_url,omitempty"`

	// APIKey authenticates against cloud providers.
	APIKey string `toml:"api_key,omitempty"`

	// RequestsPerSecond caps embedding calls during index population.
	// Zero disables rate limiting.
	RequestsPerSecond float64 `toml:"requests_per_second,omitempty"`
}

// IsConfigured returns true when the settings can produce a usable service.
func (s *EmbeddingSettings) IsConfigured() bool {
	if s == nil || !s.Provider.IsValid() {
		return false
	}
	if s.Provider.RequiresAPIKey() && s.APIKey == "" {
		return false
	}
	return true
}

// GenerationSettings configures the text generation provider.
type GenerationSettings struct {
	// Provider selects the generation backend.
	Provider AIProvider `toml:"provider"`

	// Model is the generation model name.
	Model string `toml:"model"`

	// BaseURL overrides the provider API base URL.
	BaseURL string `toml:"base_url,omitempty"`

	// APIKey authenticates against cloud providers.
	APIKey string `toml:"api_key,omitempty"`
}

// IsConfigured returns true when the settings can produce a usable service.
func (s *GenerationSettings) IsConfigured() bool {
	if s == nil || !s.Provider.IsValid() {
		return false
	}
	if s.Provider.RequiresAPIKey() && s.APIKey == "" {
		return false
	}
	return true
}

// DefaultTopK is the number of documents retrieved per question.
const DefaultTopK = 4

// RetrievalSettings configures retrieval behaviour.
type RetrievalSettings struct {
	// TopK is the maximum number of documents retrieved per question.
	TopK int `toml:"top_k"`
}

// EffectiveTopK returns TopK, falling back to the default when unset.
func (s RetrievalSettings) EffectiveTopK() int {
	if s.TopK <= 0 {
		return DefaultTopK
	}
	return s.TopK
}

// Settings is the root application configuration.
type Settings struct {
	// Embedding configures the embedding provider.
	Embedding EmbeddingSettings `toml:"embedding"`

	// Generation configures the generation provider.
	Generation GenerationSettings `toml:"generation"`

	// Retrieval configures retrieval behaviour.
	Retrieval RetrievalSettings `toml:"retrieval"`

	// DataDir is where the vector index database lives.
	// Empty means ~/.attest/data.
	DataDir string `toml:"data_dir,omitempty"`
}

// DefaultSettings returns settings matching the reference deployment:
// OpenAI embeddings and generation with the small/cheap models.
func DefaultSettings() Settings {
	return Settings{
		Embedding: EmbeddingSettings{
			Provider: AIProviderOpenAI,
			Model:    "text-embedding-3-small",
		},
		Generation: GenerationSettings{
			Provider: AIProviderOpenAI,
			Model:    "gpt-4o-mini",
		},
		Retrieval: RetrievalSettings{TopK: DefaultTopK},
	}
}
