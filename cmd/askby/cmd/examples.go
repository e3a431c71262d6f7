package cmd

import (
	"fmt"
	"strconv"

	"github.com/nfrund/askby/internal/examples"
	"github.com/spf13/cobra"
)

var examplesCmd = &cobra.Command{
	Use:   "examples [index]",
	Short: "List the example questions, or print one by index",
	Long: `Without arguments, list the example questions shown on the landing page
with their indexes. With an index, print that example's question, so it can be
piped into "askby ask".

Examples:
  askby examples
  askby ask "$(askby examples 1)"`,
	Args: cobra.MaximumNArgs(1),
	RunE: runExamples,
}

func runExamples(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()
	list, err := examples.NewList(func(value string) {
		fmt.Fprintln(out, value)
	})
	if err != nil {
		return err
	}

	if len(args) == 0 {
		for _, it := range list.Items() {
			fmt.Fprintf(out, "%d\t%s\n", it.Index, it.Text)
		}
		return nil
	}

	idx, err := strconv.Atoi(args[0])
	if err != nil {
		return fmt.Errorf("invalid index %q: %w", args[0], err)
	}
	if err := list.Activate(idx); err != nil {
		return fmt.Errorf("%w %d", err, idx)
	}
	return nil
}

func init() {
	rootCmd.AddCommand(examplesCmd)
}
