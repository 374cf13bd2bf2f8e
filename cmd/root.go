package cmd

import (
	"fmt"
	"os"

	"wavefm/server"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "wavefm",
	Short: "WaveFM is a music streaming API service.",
	Run: func(cmd *cobra.Command, args []string) {
		// Bare invocation behaves like `wavefm server`.
		server.Start()
	},
}

// Execute executes the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
