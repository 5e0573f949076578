package services

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/custodia-labs/attest-cli/internal/core/domain"
	"github.com/custodia-labs/attest-cli/internal/core/ports/driving"
	"github.com/custodia-labs/attest-cli/internal/logger"
)

// Ensure AnswerService implements the interface.
var _ driving.Answerer = (*AnswerService)(nil)

// AnswerService is the orchestrator behind the Answerer port. It moves from
// Uninitialized to Ready on the first successful index population (at most
// once per process; the persisted index survives restarts) and composes
// Retriever and Assembler for each question.
type AnswerService struct {
	indexer   *Indexer
	retriever *Retriever
	assembler *Assembler
	topK      int
}

// NewAnswerService creates a new answer service. topK values below 1 fall
// back to the default of 4.
func NewAnswerService(indexer *Indexer, retriever *Retriever, assembler *Assembler, topK int) *AnswerService {
	if topK <= 0 {
		topK = domain.DefaultTopK
	}
	return &AnswerService{
		indexer:   indexer,
		retriever: retriever,
		assembler: assembler,
		topK:      topK,
	}
}

// Ready populates the vector index if it is empty.
func (s *AnswerService) Ready(ctx context.Context) error {
	return s.indexer.EnsurePopulated(ctx)
}

// Answer runs one question through the full pipeline. Blank questions are
// rejected before any index or embedding work happens. Any failure aborts
// the call; no partial Answer is returned.
func (s *AnswerService) Answer(ctx context.Context, question string) (*domain.Answer, error) {
	logger.Section("Answer")
	logger.Debug("Question: %q", question)

	if strings.TrimSpace(question) == "" {
		return nil, fmt.Errorf("%w: question is empty", domain.ErrInvalidQuestion)
	}

	if err := s.indexer.EnsurePopulated(ctx); err != nil {
		return nil, err
	}

	retrieved, err := s.retriever.Retrieve(ctx, question, s.topK)
	if err != nil {
		return nil, err
	}

	response, err := s.assembler.AssembleAndGenerate(ctx, question, retrieved)
	if err != nil {
		return nil, err
	}

	snippets := make([]domain.Snippet, len(retrieved))
	for i, doc := range retrieved {
		snippets[i] = domain.NewSnippet(doc)
	}

	answer := &domain.Answer{
		Question:         question,
		Response:         response,
		Sources:          uniqueSources(retrieved),
		RelevantSnippets: snippets,
	}
	logger.Info("Answered with %d snippets from %d sources", len(snippets), len(answer.Sources))

	return answer, nil
}

// uniqueSources extracts the distinct source names, sorted for
// deterministic output. The order carries no meaning for callers.
func uniqueSources(retrieved []domain.RetrievedDoc) []string {
	seen := make(map[string]bool, len(retrieved))
	sources := make([]string, 0, len(retrieved))
	for _, doc := range retrieved {
		if !seen[doc.Source] {
			seen[doc.Source] = true
			sources = append(sources, doc.Source)
		}
	}
	sort.Strings(sources)
	return sources
}
