package file

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/custodia-labs/attest-cli/internal/core/ports/driven"
)

// Ensure PromptStore implements the interface.
var _ driven.PromptStore = (*PromptStore)(nil)

const promptsDirName = "prompts"

// Default prompt templates, written to disk on first use so users can
// edit them in place.
var defaultPrompts = map[string]string{
	driven.PromptAnswerSystem: `You are a security compliance expert helping vendors respond to customer security questionnaires.
Your responses should be:
1. Professional and confident
2. Specific to the question asked
3. Reference relevant compliance frameworks (NIST CSF 2.0, ISO 27001)
4. Structured with clear sections when appropriate
5. Concise but comprehensive

Use the provided compliance framework context to inform your response.
Do NOT make up capabilities - only reference what is standard practice based on the frameworks.`,

	driven.PromptAnswerUser: `Customer Question:
%s

Relevant Compliance Framework Context:
%s

Generate a professional vendor response that addresses the customer's question using the compliance framework context above. Include specific references to the frameworks where appropriate.`,

	driven.PromptAnswerUserNoContext: `Customer Question:
%s

No relevant compliance framework material was found for this question. State honestly that no grounding material is available and give only general, clearly-labelled guidance. Do NOT cite frameworks or invent capabilities.`,
}

// PromptStore loads prompt templates from ~/.attest/prompts, seeding
// each file with its embedded default the first time it is requested.
type PromptStore struct {
	dir string
}

// NewPromptStore creates a prompt store rooted at ~/.attest/prompts.
func NewPromptStore() (*PromptStore, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return nil, fmt.Errorf("resolve home directory: %w", err)
	}
	return NewPromptStoreAt(filepath.Join(home, configDirName, promptsDirName)), nil
}

// NewPromptStoreAt creates a prompt store rooted at the given directory.
func NewPromptStoreAt(dir string) *PromptStore {
	return &PromptStore{dir: dir}
}

// Load returns the prompt template for the given name. If the file does
// not exist yet it is created from the embedded default.
func (s *PromptStore) Load(name string) (string, error) {
	fallback, known := defaultPrompts[name]
	if !known {
		return "", fmt.Errorf("unknown prompt %q", name)
	}

	path := filepath.Join(s.dir, name+".txt")
	data, err := os.ReadFile(path)
	if err == nil {
		return string(data), nil
	}
	if !errors.Is(err, fs.ErrNotExist) {
		return "", fmt.Errorf("read prompt %s: %w", name, err)
	}

	if err := s.seed(path, fallback); err != nil {
		// Seeding is best effort; the embedded default still serves.
		return fallback, nil
	}
	return fallback, nil
}

// seed writes the default template so users can discover and edit it.
func (s *PromptStore) seed(path, content string) error {
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return err
	}
	return os.WriteFile(path, []byte(content), 0o644)
}
