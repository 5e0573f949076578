package cli

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/attest-cli/internal/core/domain"
)

var askJSONFlag bool

var askCmd = &cobra.Command{
	Use:   "ask <question>",
	Short: "Ask a compliance question",
	Long: `Ask a question against the indexed compliance documentation.

The answer is generated from the most relevant documents and printed with
source attribution. Use --json for machine-readable output.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runAsk,
}

func init() {
	askCmd.Flags().BoolVar(&askJSONFlag, "json", false, "output the answer as JSON")
	rootCmd.AddCommand(askCmd)
}

func runAsk(cmd *cobra.Command, args []string) error {
	question := strings.Join(args, " ")

	p, err := newPipeline(cmd.Context())
	if err != nil {
		return err
	}
	defer p.Close()

	answer, err := p.answerer.Answer(cmd.Context(), question)
	if err != nil {
		return err
	}

	if askJSONFlag {
		return printAnswerJSON(cmd, answer)
	}
	printAnswerText(cmd, answer)
	return nil
}

func printAnswerJSON(cmd *cobra.Command, answer *domain.Answer) error {
	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(answer)
}

func printAnswerText(cmd *cobra.Command, answer *domain.Answer) {
	out := cmd.OutOrStdout()

	fmt.Fprintln(out, answer.Response)

	if len(answer.Sources) > 0 {
		fmt.Fprintf(out, "\nSources: %s\n", strings.Join(answer.Sources, ", "))
	}

	if len(answer.RelevantSnippets) > 0 {
		fmt.Fprintln(out, "\nRelevant material:")
		for _, snippet := range answer.RelevantSnippets {
			fmt.Fprintf(out, "  [%s - %s] %s (relevance %.3f)\n",
				snippet.Source, snippet.Section, snippet.Title, snippet.Relevance)
		}
	}
}
