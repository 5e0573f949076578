// Package cli implements the attest command line interface.
package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/attest-cli/internal/adapters/driven/ai"
	"github.com/custodia-labs/attest-cli/internal/adapters/driven/config/file"
	"github.com/custodia-labs/attest-cli/internal/adapters/driven/corpus/embedded"
	"github.com/custodia-labs/attest-cli/internal/adapters/driven/vectorindex/sqlite"
	"github.com/custodia-labs/attest-cli/internal/core/domain"
	"github.com/custodia-labs/attest-cli/internal/core/ports/driving"
	"github.com/custodia-labs/attest-cli/internal/core/services"
	"github.com/custodia-labs/attest-cli/internal/logger"
)

// version is set at build time via -ldflags.
var version = "dev"

var verboseFlag bool

var rootCmd = &cobra.Command{
	Use:   "attest",
	Short: "Answer security questionnaires from your compliance documentation",
	Long: `Attest answers security questionnaire questions using retrieval-augmented
generation over a corpus of compliance documentation (NIST CSF, ISO 27001,
SOC 2). Questions are matched against indexed documents and answered with
source attribution.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(_ *cobra.Command, _ []string) {
		logger.SetVerbose(verboseFlag)
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verboseFlag, "verbose", "v", false, "enable verbose output")
}

// Execute runs the root command.
func Execute() error {
	err := rootCmd.Execute()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	}
	return err
}

// pipeline bundles the composed answer service with the resources that
// must be released when the command finishes.
type pipeline struct {
	answerer driving.Answerer
	closers  []func() error
}

// Close releases pipeline resources in reverse acquisition order.
func (p *pipeline) Close() {
	for i := len(p.closers) - 1; i >= 0; i-- {
		if err := p.closers[i](); err != nil {
			logger.Warn("close: %v", err)
		}
	}
}

// newPipeline is swapped out in tests.
var newPipeline = buildPipeline

// buildPipeline loads settings and composes the full answer pipeline.
func buildPipeline(ctx context.Context) (*pipeline, error) {
	configStore, err := file.NewConfigStore()
	if err != nil {
		return nil, err
	}
	settings, err := configStore.Load()
	if err != nil {
		return nil, err
	}
	logger.Debug("Config loaded from %s", configStore.Path())

	p := &pipeline{}

	embedder, err := ai.CreateEmbeddingService(ctx, settings.Embedding)
	if err != nil {
		return nil, err
	}
	p.closers = append(p.closers, embedder.Close)

	generator, err := ai.CreateGenerationService(ctx, settings.Generation)
	if err != nil {
		p.Close()
		return nil, err
	}
	p.closers = append(p.closers, generator.Close)

	index, err := sqlite.Open(indexPath(settings))
	if err != nil {
		p.Close()
		return nil, fmt.Errorf("%w: %w", domain.ErrIndexUnavailable, err)
	}
	p.closers = append(p.closers, index.Close)

	prompts, err := file.NewPromptStore()
	if err != nil {
		p.Close()
		return nil, err
	}

	corpus := embedded.NewStore()
	indexer := services.NewIndexer(corpus, embedder, index)
	retriever := services.NewRetriever(embedder, index)
	assembler := services.NewAssembler(generator, prompts)
	p.answerer = services.NewAnswerService(indexer, retriever, assembler, settings.Retrieval.EffectiveTopK())

	return p, nil
}

// indexPath resolves the vector index location. The filename embeds the
// embedding model so switching models starts a fresh index.
func indexPath(settings domain.Settings) string {
	dir := settings.DataDir
	if dir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			dir = ".attest-data"
		} else {
			dir = filepath.Join(home, ".attest", "data")
		}
	}
	model := settings.Embedding.Model
	if model == "" {
		model = "default"
	}
	return filepath.Join(dir, fmt.Sprintf("index-%s.db", sanitizeFilename(model)))
}

// sanitizeFilename replaces path-hostile characters in a model name.
func sanitizeFilename(name string) string {
	out := []rune(name)
	for i, r := range out {
		switch r {
		case '/', '\\', ':', ' ':
			out[i] = '-'
		}
	}
	return string(out)
}
