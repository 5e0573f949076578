package domain

import "errors"

// Domain errors represent the failure taxonomy of the answer pipeline.
// All failures surface to the caller as wrapped sentinels; nothing is
// logged-and-swallowed inside the core.
var (
	// ErrInvalidQuestion indicates an empty or whitespace-only question.
	// This is a caller error and is rejected before any remote work.
	ErrInvalidQuestion = errors.New("invalid question")

	// ErrDataUnavailable indicates the reference corpus could not be read
	// or failed to parse into the required shape. Fatal at startup.
	ErrDataUnavailable = errors.New("corpus data unavailable")

	// ErrEmbeddingService indicates the embedding service is unreachable
	// or returned a malformed vector. Transient; retry is a caller policy.
	ErrEmbeddingService = errors.New("embedding service error")

	// ErrGenerationService indicates the generation call failed or timed
	// out. Transient; the core never retries it.
	ErrGenerationService = errors.New("generation service error")

	// ErrIndexUnavailable indicates a vector index storage failure.
	// Fatal for both the read and write paths.
	ErrIndexUnavailable = errors.New("vector index unavailable")
)
