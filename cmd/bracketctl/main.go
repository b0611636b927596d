package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "bracketctl",
		Short: "Compute bracket layouts and group standings offline",
		Long: `bracketctl runs the bracket layout and round-robin standings engines on
JSON read from a file or stdin, without a database or server.`,
		SilenceUsage: true,
	}
	rootCmd.AddCommand(newLayoutCmd())
	rootCmd.AddCommand(newStandingsCmd())
	return rootCmd
}

func Execute() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "bracketctl: %s\n", err)
		os.Exit(1)
	}
}

func main() {
	Execute()
}
