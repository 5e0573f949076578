package driven

import "github.com/custodia-labs/attest-cli/internal/core/domain"

// CorpusStore loads the static reference corpus. The corpus is read once,
// is immutable afterwards, and has no other side effects.
type CorpusStore interface {
	// Load returns the corpus documents in their dataset order.
	// It fails with domain.ErrDataUnavailable when the backing dataset
	// cannot be read or a document is missing a required field.
	Load() ([]domain.Document, error)
}
