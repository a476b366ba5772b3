// Command eddy generates synthetic datasets and runs the automated EDA
// pipeline against them.
package main

import (
	"fmt"
	"os"

	"github.com/roach88/eddy/internal/cli"
)

func main() {
	cmd := cli.NewRootCommand()
	if err := cmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(cli.GetExitCode(err))
	}
}
