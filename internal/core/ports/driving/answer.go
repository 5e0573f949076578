package driving

import (
	"context"

	"github.com/custodia-labs/attest-cli/internal/core/domain"
)

// Answerer is the single entry point exposed by the core: answer a question
// grounded in the reference corpus. Transport layers (CLI, HTTP) map onto
// this operation and own any retry or timeout policy.
type Answerer interface {
	// Answer runs the question through retrieve-assemble-generate and
	// returns the composed result. The first call populates the vector
	// index if it is empty.
	//
	// Failures are wrapped domain sentinels: domain.ErrInvalidQuestion
	// for blank questions, domain.ErrDataUnavailable,
	// domain.ErrEmbeddingService, domain.ErrIndexUnavailable and
	// domain.ErrGenerationService for pipeline failures. No partial
	// Answer is ever returned alongside an error.
	Answer(ctx context.Context, question string) (*domain.Answer, error)

	// Ready reports whether the vector index is populated, populating it
	// if needed. Exposed so callers can warm the index ahead of the
	// first question.
	Ready(ctx context.Context) error
}
