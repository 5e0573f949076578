package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/custodia-labs/attest-cli/internal/core/domain"
	"github.com/custodia-labs/attest-cli/internal/core/ports/driven"
	"github.com/custodia-labs/attest-cli/internal/logger"
)

// Generation parameters matching the reference deployment.
const (
	generateMaxTokens   = 1000
	generateTemperature = 0.7
)

// defaultAnswerSystemPrompt is the fallback system instruction when no
// PromptStore is configured.
const defaultAnswerSystemPrompt = `You are a security compliance expert helping vendors respond to customer security questionnaires.
Your responses should be:
1. Professional and confident
2. Specific to the question asked
3. Reference relevant compliance frameworks (NIST CSF 2.0, ISO 27001)
4. Structured with clear sections when appropriate
5. Concise but comprehensive

Use the provided compliance framework context to inform your response.
Do NOT make up capabilities - only reference what is standard practice based on the frameworks.`

// defaultAnswerUserPrompt is the fallback user prompt template when no
// PromptStore is configured. Placeholders: question, context.
const defaultAnswerUserPrompt = `Customer Question:
%s

Relevant Compliance Framework Context:
%s

Generate a professional vendor response that addresses the customer's question using the compliance framework context above. Include specific references to the frameworks where appropriate.`

// defaultAnswerUserNoContextPrompt is the fallback user prompt template for
// an empty retrieval set. Placeholder: question.
const defaultAnswerUserNoContextPrompt = `Customer Question:
%s

No relevant compliance framework material was found for this question. State honestly that no grounding material is available and give only general, clearly-labelled guidance. Do NOT cite frameworks or invent capabilities.`

// Assembler builds a grounding context from retrieved documents and issues
// exactly one generation request per question.
type Assembler struct {
	generator driven.GenerationService
	prompts   driven.PromptStore
}

// NewAssembler creates a new assembler. The prompt store is optional; when
// nil, embedded default prompts are used.
func NewAssembler(generator driven.GenerationService, prompts driven.PromptStore) *Assembler {
	return &Assembler{generator: generator, prompts: prompts}
}

// AssembleAndGenerate concatenates the retrieved documents into a grounding
// context and returns the generated response verbatim. An empty retrieval
// set still produces a generation call, with an explicit instruction that
// no grounding material was found. Failures are never retried here.
func (s *Assembler) AssembleAndGenerate(
	ctx context.Context, question string, retrieved []domain.RetrievedDoc,
) (string, error) {
	system := s.loadPrompt(driven.PromptAnswerSystem, defaultAnswerSystemPrompt)

	var prompt string
	if len(retrieved) == 0 {
		logger.Debug("Empty retrieval set, generating ungrounded response")
		template := s.loadPrompt(driven.PromptAnswerUserNoContext, defaultAnswerUserNoContextPrompt)
		prompt = fmt.Sprintf(template, question)
	} else {
		grounding := buildContext(retrieved)
		logger.Debug("Grounding context: %d documents, %d bytes", len(retrieved), len(grounding))
		template := s.loadPrompt(driven.PromptAnswerUser, defaultAnswerUserPrompt)
		prompt = fmt.Sprintf(template, question, grounding)
	}

	response, err := s.generator.Generate(ctx, system, prompt, driven.GenerateOptions{
		MaxTokens:   generateMaxTokens,
		Temperature: generateTemperature,
	})
	if err != nil {
		return "", fmt.Errorf("%w: %w", domain.ErrGenerationService, err)
	}

	return response, nil
}

// buildContext concatenates per-document blocks in retrieval order,
// separated by a blank line:
//
//	[source - section]
//	title: content
func buildContext(retrieved []domain.RetrievedDoc) string {
	blocks := make([]string, len(retrieved))
	for i, doc := range retrieved {
		blocks[i] = fmt.Sprintf("[%s - %s]\n%s: %s", doc.Source, doc.Section, doc.Title, doc.Content)
	}
	return strings.Join(blocks, "\n\n")
}

// loadPrompt loads a prompt from the store, falling back to the default if
// unavailable.
func (s *Assembler) loadPrompt(name, fallback string) string {
	if s.prompts == nil {
		return fallback
	}
	prompt, err := s.prompts.Load(name)
	if err != nil {
		logger.Debug("Prompt %s unavailable, using default: %v", name, err)
		return fallback
	}
	return prompt
}
