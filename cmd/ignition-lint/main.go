package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/ignition-tooling/ignition-lint/pkg/cli"
)

// version is set at build time via -ldflags.
var version = "dev"

func main() {
	rootCmd := cli.NewRootCommand(version)
	if err := rootCmd.Execute(); err != nil {
		if !errors.Is(err, cli.ErrLintFailed) {
			fmt.Fprintln(os.Stderr, "Error:", err)
			os.Exit(2)
		}
		os.Exit(1)
	}
}
