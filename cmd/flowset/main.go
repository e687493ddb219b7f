// Command flowset is the CLI for the flow-value fixpoint analyzer.
package main

import (
	"os"

	"github.com/flowset/flowset/internal/cli"
)

func main() {
	cmd := cli.NewRootCommand()
	if err := cmd.Execute(); err != nil {
		os.Exit(cli.GetExitCode(err))
	}
}
