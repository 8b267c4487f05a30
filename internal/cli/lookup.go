package cli

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"ngramkit/internal/adapter/analyzer"
	"ngramkit/internal/usecase"
)

var lookupJSON bool

var lookupCmd = &cobra.Command{
	Use:   "lookup <phrase>",
	Short: "Show how often a phrase occurs as an n-gram",
	Long: `Tokenize a phrase with the corpus settings and print its stored count.

Examples:
  ngramkit lookup "little lamb"
  ngramkit lookup had a little --json`,
	Args: cobra.MinimumNArgs(1),
	RunE: runLookup,
}

func init() {
	rootCmd.AddCommand(lookupCmd)
	lookupCmd.Flags().BoolVar(&lookupJSON, "json", false, "output as JSON")
}

func runLookup(cmd *cobra.Command, args []string) error {
	cfg := GetConfig()

	st, err := openCounts()
	if err != nil {
		return err
	}
	defer st.Close()

	topUC := usecase.NewTopUseCase(st, analyzer.NewTokenizer(cfg.Tokenize))
	gram, err := topUC.Lookup(strings.Join(args, " "))
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if lookupJSON {
		return json.NewEncoder(out).Encode(gram)
	}

	stats, err := topUC.Stats()
	if err != nil {
		return err
	}
	fmt.Fprintf(out, "%s: %d", gram.Join(cfg.Generate.Separator), gram.Count)
	if stats.TotalGrams > 0 {
		fmt.Fprintf(out, " (%.4f%% of %d grams)", 100*float64(gram.Count)/float64(stats.TotalGrams), stats.TotalGrams)
	}
	fmt.Fprintln(out)
	return nil
}
