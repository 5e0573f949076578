package services

import (
	"context"
	"sync"

	"github.com/custodia-labs/attest-cli/internal/core/domain"
	"github.com/custodia-labs/attest-cli/internal/core/ports/driven"
)

// --- Mock implementations ---

// mockCorpusStore implements driven.CorpusStore for testing.
type mockCorpusStore struct {
	docs    []domain.Document
	loadErr error
}

func (m *mockCorpusStore) Load() ([]domain.Document, error) {
	if m.loadErr != nil {
		return nil, m.loadErr
	}
	return m.docs, nil
}

// mockEmbeddingService implements driven.EmbeddingService for testing.
// Embeddings are deterministic per text so ranking tests are reproducible.
type mockEmbeddingService struct {
	mu         sync.Mutex
	embedCalls int
	batchCalls int
	embedErr   error
	batchErr   error

	// failAfter aborts EmbedBatch after this many texts when > 0,
	// simulating a mid-corpus embedding failure.
	failAfter int

	// vectors overrides the deterministic embedding per text.
	vectors map[string][]float32
}

func (m *mockEmbeddingService) Embed(_ context.Context, text string) ([]float32, error) {
	m.mu.Lock()
	m.embedCalls++
	m.mu.Unlock()
	if m.embedErr != nil {
		return nil, m.embedErr
	}
	return m.vectorFor(text), nil
}

func (m *mockEmbeddingService) EmbedBatch(_ context.Context, texts []string) ([][]float32, error) {
	m.mu.Lock()
	m.batchCalls++
	m.mu.Unlock()
	if m.batchErr != nil && m.failAfter <= 0 {
		return nil, m.batchErr
	}
	result := make([][]float32, 0, len(texts))
	for i, text := range texts {
		if m.failAfter > 0 && i >= m.failAfter {
			return nil, m.batchErr
		}
		result = append(result, m.vectorFor(text))
	}
	return result, nil
}

func (m *mockEmbeddingService) vectorFor(text string) []float32 {
	if v, ok := m.vectors[text]; ok {
		return v
	}
	// Cheap deterministic 3-dim embedding derived from the text bytes.
	var sum float32
	for _, b := range []byte(text) {
		sum += float32(b)
	}
	return []float32{sum, float32(len(text)), 1}
}

func (m *mockEmbeddingService) calls() (embed, batch int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.embedCalls, m.batchCalls
}

func (m *mockEmbeddingService) Dimensions() int { return 3 }

func (m *mockEmbeddingService) ModelName() string { return "mock-embed" }

func (m *mockEmbeddingService) Ping(_ context.Context) error { return nil }

func (m *mockEmbeddingService) Close() error { return nil }

// mockVectorIndex implements driven.VectorIndex for testing. It records
// inserts and returns canned hits, counting operations for race assertions.
type mockVectorIndex struct {
	mu          sync.Mutex
	entries     []driven.IndexEntry
	hits        []driven.VectorHit
	countErr    error
	insertErr   error
	queryErr    error
	insertCalls int
}

func (m *mockVectorIndex) Count(_ context.Context) (int, error) {
	if m.countErr != nil {
		return 0, m.countErr
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.entries), nil
}

func (m *mockVectorIndex) InsertBatch(_ context.Context, entries []driven.IndexEntry) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.insertCalls++
	if m.insertErr != nil {
		return m.insertErr
	}
	m.entries = append(m.entries, entries...)
	return nil
}

func (m *mockVectorIndex) Query(_ context.Context, _ []float32, k int) ([]driven.VectorHit, error) {
	if m.queryErr != nil {
		return nil, m.queryErr
	}
	if k > len(m.hits) {
		return m.hits, nil
	}
	return m.hits[:k], nil
}

func (m *mockVectorIndex) Close() error { return nil }

func (m *mockVectorIndex) inserted() (calls, entries int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.insertCalls, len(m.entries)
}

// mockGenerationService implements driven.GenerationService for testing.
type mockGenerationService struct {
	mu          sync.Mutex
	response    string
	generateErr error
	calls       int
	lastSystem  string
	lastPrompt  string
}

func (m *mockGenerationService) Generate(
	_ context.Context, system, prompt string, _ driven.GenerateOptions,
) (string, error) {
	m.mu.Lock()
	m.calls++
	m.lastSystem = system
	m.lastPrompt = prompt
	m.mu.Unlock()
	if m.generateErr != nil {
		return "", m.generateErr
	}
	if m.response != "" {
		return m.response, nil
	}
	return "generated response", nil
}

func (m *mockGenerationService) ModelName() string { return "mock-llm" }

func (m *mockGenerationService) Ping(_ context.Context) error { return nil }

func (m *mockGenerationService) Close() error { return nil }

// mockPromptStore implements driven.PromptStore for testing.
type mockPromptStore struct {
	prompts map[string]string
	loadErr error
}

func (m *mockPromptStore) Load(name string) (string, error) {
	if m.loadErr != nil {
		return "", m.loadErr
	}
	return m.prompts[name], nil
}

// --- Test fixtures ---

func testCorpus() []domain.Document {
	return []domain.Document{
		{
			ID:      "nist-ac-1",
			Source:  "NIST",
			Section: "AC-1",
			Title:   "Access Control",
			Content: "Access to administrative functions is restricted to authorized roles.",
		},
		{
			ID:      "nist-au-2",
			Source:  "NIST",
			Section: "AU-2",
			Title:   "Audit Events",
			Content: "Security-relevant events are logged and reviewed periodically.",
		},
		{
			ID:      "iso-a9",
			Source:  "ISO",
			Section: "A.9",
			Title:   "Access Management",
			Content: "User access provisioning follows a formal registration process.",
		},
	}
}

func testEntries() []driven.IndexEntry {
	docs := testCorpus()
	entries := make([]driven.IndexEntry, len(docs))
	for i, doc := range docs {
		entries[i] = driven.IndexEntry{
			ID:        doc.ID,
			Content:   doc.Content,
			Embedding: []float32{float32(i), 1, 0},
			Metadata:  doc.Metadata(),
		}
	}
	return entries
}

func testHits() []driven.VectorHit {
	docs := testCorpus()
	hits := make([]driven.VectorHit, len(docs))
	for i, doc := range docs {
		hits[i] = driven.VectorHit{
			ID:       doc.ID,
			Content:  doc.Content,
			Metadata: doc.Metadata(),
			Distance: 0.1 + 0.2*float64(i),
		}
	}
	return hits
}
