// Package ai constructs embedding and generation services from settings.
package ai

import (
	"context"
	"fmt"
	"time"

	embeddingollama "github.com/custodia-labs/attest-cli/internal/adapters/driven/embedding/ollama"
	embeddingopenai "github.com/custodia-labs/attest-cli/internal/adapters/driven/embedding/openai"
	"github.com/custodia-labs/attest-cli/internal/adapters/driven/embedding/ratelimit"
	generationanthropic "github.com/custodia-labs/attest-cli/internal/adapters/driven/generation/anthropic"
	generationollama "github.com/custodia-labs/attest-cli/internal/adapters/driven/generation/ollama"
	generationopenai "github.com/custodia-labs/attest-cli/internal/adapters/driven/generation/openai"
	"github.com/custodia-labs/attest-cli/internal/core/domain"
	"github.com/custodia-labs/attest-cli/internal/core/ports/driven"
	"github.com/custodia-labs/attest-cli/internal/logger"
)

// pingTimeout bounds the reachability check during service creation.
const pingTimeout = 5 * time.Second

// CreateEmbeddingService builds an embedding service from settings and
// verifies the provider is reachable before returning it.
func CreateEmbeddingService(ctx context.Context, settings domain.EmbeddingSettings) (driven.EmbeddingService, error) {
	if !settings.IsConfigured() {
		return nil, fmt.Errorf("embedding provider %q is not configured", settings.Provider)
	}

	var (
		service driven.EmbeddingService
		err     error
	)
	switch settings.Provider {
	case domain.AIProviderOpenAI:
		service, err = embeddingopenai.NewEmbeddingService(embeddingopenai.Config{
			APIKey:  settings.APIKey,
			BaseURL: settings.BaseURL,
			Model:   settings.Model,
		})
		if err != nil {
			return nil, err
		}
	case domain.AIProviderOllama:
		service = embeddingollama.NewEmbeddingService(embeddingollama.Config{
			BaseURL: settings.BaseURL,
			Model:   settings.Model,
		})
	default:
		return nil, fmt.Errorf("provider %q does not offer embeddings", settings.Provider)
	}

	if err := ping(ctx, service.Ping); err != nil {
		service.Close()
		return nil, fmt.Errorf("embedding service unavailable: %w", err)
	}
	logger.Debug("embedding service ready: %s (%d dimensions)", service.ModelName(), service.Dimensions())

	if settings.RequestsPerSecond > 0 {
		limited, err := ratelimit.Wrap(service, settings.RequestsPerSecond)
		if err != nil {
			service.Close()
			return nil, err
		}
		logger.Debug("embedding rate limit: %.1f requests/second", settings.RequestsPerSecond)
		return limited, nil
	}
	return service, nil
}

// CreateGenerationService builds a generation service from settings and
// verifies the provider is reachable before returning it.
func CreateGenerationService(ctx context.Context, settings domain.GenerationSettings) (driven.GenerationService, error) {
	if !settings.IsConfigured() {
		return nil, fmt.Errorf("generation provider %q is not configured", settings.Provider)
	}

	var (
		service driven.GenerationService
		err     error
	)
	switch settings.Provider {
	case domain.AIProviderOpenAI:
		service, err = generationopenai.NewGenerationService(generationopenai.Config{
			APIKey:  settings.APIKey,
			BaseURL: settings.BaseURL,
			Model:   settings.Model,
		})
		if err != nil {
			return nil, err
		}
	case domain.AIProviderAnthropic:
		service, err = generationanthropic.NewGenerationService(generationanthropic.Config{
			APIKey:  settings.APIKey,
			BaseURL: settings.BaseURL,
			Model:   settings.Model,
		})
		if err != nil {
			return nil, err
		}
	case domain.AIProviderOllama:
		service = generationollama.NewGenerationService(generationollama.Config{
			BaseURL: settings.BaseURL,
			Model:   settings.Model,
		})
	default:
		return nil, fmt.Errorf("provider %q does not offer generation", settings.Provider)
	}

	if err := ping(ctx, service.Ping); err != nil {
		service.Close()
		return nil, fmt.Errorf("generation service unavailable: %w", err)
	}
	logger.Debug("generation service ready: %s", service.ModelName())

	return service, nil
}

func ping(ctx context.Context, fn func(context.Context) error) error {
	pingCtx, cancel := context.WithTimeout(ctx, pingTimeout)
	defer cancel()
	return fn(pingCtx)
}
