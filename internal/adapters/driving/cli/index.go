package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/attest-cli/internal/adapters/driven/config/file"
	"github.com/custodia-labs/attest-cli/internal/adapters/driven/vectorindex/sqlite"
)

var indexCmd = &cobra.Command{
	Use:   "index",
	Short: "Manage the vector index",
}

var indexEnsureCmd = &cobra.Command{
	Use:   "ensure",
	Short: "Populate the vector index if it is empty",
	Long: `Populate the vector index from the built-in compliance corpus.

Population runs at most once: a non-empty index is left untouched. The ask
and serve commands do this automatically on first use; running it up front
avoids paying the embedding cost on the first question.`,
	Args: cobra.NoArgs,
	RunE: runIndexEnsure,
}

var indexStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show the vector index location and entry count",
	Args:  cobra.NoArgs,
	RunE:  runIndexStatus,
}

func init() {
	indexCmd.AddCommand(indexEnsureCmd)
	indexCmd.AddCommand(indexStatusCmd)
	rootCmd.AddCommand(indexCmd)
}

func runIndexEnsure(cmd *cobra.Command, _ []string) error {
	p, err := newPipeline(cmd.Context())
	if err != nil {
		return err
	}
	defer p.Close()

	if err := p.answerer.Ready(cmd.Context()); err != nil {
		return err
	}

	fmt.Fprintln(cmd.OutOrStdout(), "Index ready.")
	return nil
}

// runIndexStatus inspects the index directly, without touching the AI
// providers, so it works with no credentials configured.
func runIndexStatus(cmd *cobra.Command, _ []string) error {
	configStore, err := file.NewConfigStore()
	if err != nil {
		return err
	}
	settings, err := configStore.Load()
	if err != nil {
		return err
	}

	path := indexPath(settings)
	store, err := sqlite.Open(path)
	if err != nil {
		return err
	}
	defer store.Close()

	count, err := store.Count(cmd.Context())
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Index:   %s\n", path)
	fmt.Fprintf(out, "Entries: %d\n", count)
	if count == 0 {
		fmt.Fprintln(out, "Run 'attest index ensure' to populate it.")
	}
	return nil
}
