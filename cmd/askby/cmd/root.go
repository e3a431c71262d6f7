package cmd

import (
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "askby",
	Short: "Ask questions about the company knowledge base",
	Long: `askby answers questions about Weblink International Taiwan from a local
knowledge corpus, using a chat model grounded in the retrieved sources.

Available commands:
  serve      Start the web server
  examples   List the example questions, or print one by index
  ask        Answer a single question from the command line
  version    Print the version

Use "askby [command] --help" for more information about a command.`,
	SilenceUsage: true,
}

// Execute executes the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
