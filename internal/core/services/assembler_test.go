package services

import (
	"bytes"
	"context"
	"errors"
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/attest-cli/internal/core/domain"
	"github.com/custodia-labs/attest-cli/internal/core/ports/driven"
	"github.com/custodia-labs/attest-cli/internal/logger"
)

func retrievedDocs() []domain.RetrievedDoc {
	return []domain.RetrievedDoc{
		{
			ID: "nist-ac-1", Source: "NIST", Section: "AC-1",
			Title: "Access Control", Content: "Admin access is role-restricted.",
			Relevance: 0.9,
		},
		{
			ID: "iso-a9", Source: "ISO", Section: "A.9",
			Title: "Access Management", Content: "Formal provisioning process.",
			Relevance: 0.7,
		},
	}
}

func TestAssembler_ContextFormat(t *testing.T) {
	generator := &mockGenerationService{}
	assembler := NewAssembler(generator, nil)

	_, err := assembler.AssembleAndGenerate(context.Background(), "How is access controlled?", retrievedDocs())

	require.NoError(t, err)
	assert.Contains(t, generator.lastPrompt,
		"[NIST - AC-1]\nAccess Control: Admin access is role-restricted.")
	assert.Contains(t, generator.lastPrompt,
		"[ISO - A.9]\nAccess Management: Formal provisioning process.")
	// Blocks separated by a blank line, in retrieval order.
	assert.Contains(t, generator.lastPrompt,
		"Admin access is role-restricted.\n\n[ISO - A.9]")
	assert.Contains(t, generator.lastPrompt, "How is access controlled?")
	assert.Contains(t, generator.lastSystem, "security compliance expert")
}

func TestAssembler_SingleGenerationCall(t *testing.T) {
	generator := &mockGenerationService{}
	assembler := NewAssembler(generator, nil)

	_, err := assembler.AssembleAndGenerate(context.Background(), "q", retrievedDocs())

	require.NoError(t, err)
	assert.Equal(t, 1, generator.calls)
}

func TestAssembler_EmptyRetrievalStillGenerates(t *testing.T) {
	generator := &mockGenerationService{response: "honest answer"}
	assembler := NewAssembler(generator, nil)

	response, err := assembler.AssembleAndGenerate(context.Background(), "q", nil)

	require.NoError(t, err)
	assert.Equal(t, "honest answer", response)
	assert.Equal(t, 1, generator.calls, "generation proceeds without grounding")
	assert.Contains(t, generator.lastPrompt, "No relevant compliance framework material was found")
	assert.NotContains(t, generator.lastPrompt, "[NIST")
}

func TestAssembler_ResponseVerbatim(t *testing.T) {
	generator := &mockGenerationService{response: "  raw output \n"}
	assembler := NewAssembler(generator, nil)

	response, err := assembler.AssembleAndGenerate(context.Background(), "q", retrievedDocs())

	require.NoError(t, err)
	assert.Equal(t, "  raw output \n", response, "no post-processing")
}

func TestAssembler_GenerationFailure(t *testing.T) {
	generator := &mockGenerationService{generateErr: errors.New("timeout")}
	assembler := NewAssembler(generator, nil)

	_, err := assembler.AssembleAndGenerate(context.Background(), "q", retrievedDocs())

	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrGenerationService)
	assert.Equal(t, 1, generator.calls, "no retry")
}

func TestAssembler_PromptStoreOverrides(t *testing.T) {
	generator := &mockGenerationService{}
	prompts := &mockPromptStore{prompts: map[string]string{
		driven.PromptAnswerSystem: "custom system",
		driven.PromptAnswerUser:   "Q=%s C=%s",
	}}
	assembler := NewAssembler(generator, prompts)

	_, err := assembler.AssembleAndGenerate(context.Background(), "why", retrievedDocs())

	require.NoError(t, err)
	assert.Equal(t, "custom system", generator.lastSystem)
	assert.True(t, strings.HasPrefix(generator.lastPrompt, "Q=why C=["))
}

func TestAssembler_PromptStoreFailureFallsBack(t *testing.T) {
	defer func() {
		logger.SetVerbose(false)
		logger.SetOutput(os.Stderr)
	}()
	buf := &bytes.Buffer{}
	logger.SetOutput(buf)
	logger.SetVerbose(true)

	generator := &mockGenerationService{}
	prompts := &mockPromptStore{loadErr: errors.New("fs error")}
	assembler := NewAssembler(generator, prompts)

	_, err := assembler.AssembleAndGenerate(context.Background(), "q", retrievedDocs())

	require.NoError(t, err)
	assert.Contains(t, generator.lastSystem, "security compliance expert")
	assert.Contains(t, buf.String(), "fs error", "fallback is diagnosable in verbose mode")
}
