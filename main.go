// Command attest answers security questionnaire questions grounded in a
// compliance reference corpus (NIST CSF 2.0 and ISO 27001 excerpts).
package main

import (
	"os"

	"github.com/custodia-labs/attest-cli/internal/adapters/driving/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
