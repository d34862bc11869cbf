package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var version = "dev"

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	return newRootCommand().Execute()
}

func newRootCommand() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "qbctl",
		Short:         "Market summary query builder tooling",
		Long:          "qbctl validates and compiles query builder documents and seeds the demo dataset.",
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.AddCommand(NewCompileCommand())
	rootCmd.AddCommand(NewValidateCommand())
	rootCmd.AddCommand(NewSeedCommand())

	return rootCmd
}
