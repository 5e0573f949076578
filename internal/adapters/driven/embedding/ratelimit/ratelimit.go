// Package ratelimit wraps an embedding service with client-side rate limiting.
package ratelimit

import (
	"context"
	"fmt"

	"golang.org/x/time/rate"

	"github.com/custodia-labs/attest-cli/internal/core/ports/driven"
)

// Ensure EmbeddingService implements the interface.
var _ driven.EmbeddingService = (*EmbeddingService)(nil)

// EmbeddingService decorates another embedding service with a token
// bucket limiter so hosted APIs are not hammered during bulk indexing.
type EmbeddingService struct {
	inner   driven.EmbeddingService
	limiter *rate.Limiter
}

// Wrap returns a rate-limited view of the given embedding service.
// requestsPerSecond must be positive; burst allows short spikes up to
// the same size as the sustained rate (minimum 1).
func Wrap(inner driven.EmbeddingService, requestsPerSecond float64) (*EmbeddingService, error) {
	if requestsPerSecond <= 0 {
		return nil, fmt.Errorf("ratelimit: requests per second must be positive, got %v", requestsPerSecond)
	}
	burst := int(requestsPerSecond)
	if burst < 1 {
		burst = 1
	}
	return &EmbeddingService{
		inner:   inner,
		limiter: rate.NewLimiter(rate.Limit(requestsPerSecond), burst),
	}, nil
}

// Embed waits for the limiter before delegating.
func (s *EmbeddingService) Embed(ctx context.Context, text string) ([]float32, error) {
	if err := s.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("ratelimit: %w", err)
	}
	return s.inner.Embed(ctx, text)
}

// EmbedBatch reserves one token per input before delegating, so a batch
// of N texts counts as N requests against the limit.
func (s *EmbeddingService) EmbedBatch(ctx context.Context, texts []string) ([][]float32, error) {
	if len(texts) == 0 {
		return s.inner.EmbedBatch(ctx, texts)
	}
	n := len(texts)
	if n > s.limiter.Burst() {
		// WaitN fails outright when n exceeds the burst size; chunk the
		// wait instead so large corpora still drain at the sustained rate.
		remaining := n
		for remaining > 0 {
			step := s.limiter.Burst()
			if step > remaining {
				step = remaining
			}
			if err := s.limiter.WaitN(ctx, step); err != nil {
				return nil, fmt.Errorf("ratelimit: %w", err)
			}
			remaining -= step
		}
	} else {
		if err := s.limiter.WaitN(ctx, n); err != nil {
			return nil, fmt.Errorf("ratelimit: %w", err)
		}
	}
	return s.inner.EmbedBatch(ctx, texts)
}

// Dimensions returns the inner service's embedding vector size.
func (s *EmbeddingService) Dimensions() int {
	return s.inner.Dimensions()
}

// ModelName returns the inner service's model name.
func (s *EmbeddingService) ModelName() string {
	return s.inner.ModelName()
}

// Ping delegates to the inner service without consuming a token.
func (s *EmbeddingService) Ping(ctx context.Context) error {
	return s.inner.Ping(ctx)
}

// Close closes the inner service.
func (s *EmbeddingService) Close() error {
	return s.inner.Close()
}
