package cmd

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/nfrund/askby/internal/app"
	"github.com/nfrund/askby/internal/ask"
	"github.com/nfrund/askby/internal/config"
	"github.com/nfrund/askby/internal/logging"
	"github.com/samber/do/v2"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
)

var (
	askOverrides ask.Overrides
	askJSON      bool
)

var askCmd = &cobra.Command{
	Use:   "ask <question>",
	Short: "Answer a single question from the command line",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := config.New()
		logging.New()

		injector := app.NewInjector(cfg, afero.NewOsFs())
		approach, err := do.Invoke[ask.Approach](injector)
		if err != nil {
			return err
		}

		ans, err := approach.Run(cmd.Context(), strings.Join(args, " "), askOverrides)
		if err != nil {
			return err
		}
		return printAnswer(cmd, ans)
	},
}

func printAnswer(cmd *cobra.Command, ans *ask.Answer) error {
	out := cmd.OutOrStdout()
	if askJSON {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(ans)
	}
	fmt.Fprintln(out, ans.Answer)
	if len(ans.DataPoints) > 0 {
		fmt.Fprintln(out, "\nSources:")
		for _, dp := range ans.DataPoints {
			fmt.Fprintf(out, "  - %s\n", dp)
		}
	}
	return nil
}

func init() {
	f := askCmd.Flags()
	f.StringVar(&askOverrides.RetrievalMode, "mode", "", "retrieval mode: text, vectors or hybrid")
	f.IntVar(&askOverrides.Top, "top", 0, "number of sources to retrieve (default 3)")
	f.StringVar(&askOverrides.ExcludeCategory, "exclude-category", "", "skip documents in this category")
	f.BoolVar(&askOverrides.SemanticCaptions, "captions", false, "use matching sentences instead of whole documents")
	f.BoolVar(&askJSON, "json", false, "print the full answer as JSON")
	rootCmd.AddCommand(askCmd)
}
