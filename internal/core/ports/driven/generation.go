package driven

import "context"

// GenerationService produces text responses from a system instruction and a
// user prompt. The core issues exactly one generation request per question
// and returns the output verbatim; retry policy belongs to callers.
//
// Implementations may include:
//   - OpenAI (gpt-4o-mini, gpt-4o)
//   - Anthropic (Claude)
//   - Ollama (local models)
type GenerationService interface {
	// Generate produces a completion for the given system instruction and
	// user prompt.
	Generate(ctx context.Context, system, prompt string, opts GenerateOptions) (string, error)

	// ModelName returns the name of the generation model being used.
	ModelName() string

	// Ping validates the service is reachable by making a lightweight
	// test request.
	Ping(ctx context.Context) error

	// Close releases resources.
	Close() error
}

// GenerateOptions configures text generation behaviour.
type GenerateOptions struct {
	// MaxTokens is the maximum number of tokens to generate.
	MaxTokens int

	// Temperature controls randomness (0.0 = deterministic, 1.0 = creative).
	Temperature float64
}
