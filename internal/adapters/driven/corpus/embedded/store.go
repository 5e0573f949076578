// Package embedded provides the built-in compliance reference corpus.
// The dataset ships inside the binary so the CLI works offline with no
// setup beyond provider credentials.
package embedded

import (
	_ "embed"
	"encoding/json"
	"fmt"

	"github.com/custodia-labs/attest-cli/internal/core/domain"
	"github.com/custodia-labs/attest-cli/internal/core/ports/driven"
)

// Ensure Store implements the interface.
var _ driven.CorpusStore = (*Store)(nil)

//go:embed data/compliance_docs.json
var corpusData []byte

// Store loads the embedded compliance corpus.
type Store struct{}

// NewStore creates a corpus store backed by the embedded dataset.
func NewStore() *Store {
	return &Store{}
}

type corpusFile struct {
	Documents []corpusDocument `json:"documents"`
}

type corpusDocument struct {
	ID      string `json:"id"`
	Source  string `json:"source"`
	Section string `json:"section"`
	Title   string `json:"title"`
	Content string `json:"content"`
}

// Load parses and validates the embedded dataset.
func (s *Store) Load() ([]domain.Document, error) {
	var file corpusFile
	if err := json.Unmarshal(corpusData, &file); err != nil {
		return nil, fmt.Errorf("%w: parse corpus: %w", domain.ErrDataUnavailable, err)
	}
	if len(file.Documents) == 0 {
		return nil, fmt.Errorf("%w: corpus is empty", domain.ErrDataUnavailable)
	}

	docs := make([]domain.Document, 0, len(file.Documents))
	seen := make(map[string]struct{}, len(file.Documents))
	for _, raw := range file.Documents {
		doc := domain.Document{
			ID:      raw.ID,
			Source:  raw.Source,
			Section: raw.Section,
			Title:   raw.Title,
			Content: raw.Content,
		}
		if err := doc.Validate(); err != nil {
			return nil, fmt.Errorf("%w: %w", domain.ErrDataUnavailable, err)
		}
		if _, dup := seen[doc.ID]; dup {
			return nil, fmt.Errorf("%w: duplicate document id %s", domain.ErrDataUnavailable, doc.ID)
		}
		seen[doc.ID] = struct{}{}
		docs = append(docs, doc)
	}
	return docs, nil
}
