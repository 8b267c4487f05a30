package cli

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"ngramkit/config"
	"ngramkit/internal/adapter/analyzer"
	"ngramkit/internal/adapter/store"
	"ngramkit/internal/usecase"
)

var (
	topK    int
	topSize int
	topJSON bool
)

var topCmd = &cobra.Command{
	Use:   "top",
	Short: "Show the most frequent n-grams",
	Long: `Show the most frequent n-grams of a counted corpus.

Examples:
  ngramkit top
  ngramkit top -k 50 --n 3 --json`,
	Args: cobra.NoArgs,
	RunE: runTop,
}

func init() {
	rootCmd.AddCommand(topCmd)
	topCmd.Flags().IntVarP(&topK, "top-k", "k", 20, "number of results")
	topCmd.Flags().IntVarP(&topSize, "n", "n", 0, "only grams of this size (0 for any)")
	topCmd.Flags().BoolVar(&topJSON, "json", false, "output as JSON")
}

// openCounts opens the count store of the root directory, failing when
// nothing has been counted yet.
func openCounts() (*store.BoltStore, error) {
	dbPath := config.CountsDBPath(GetRootDir())
	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		return nil, fmt.Errorf("no counts found. Run 'ngramkit count' first")
	}
	st, err := store.NewBoltStore(dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open count store: %w", err)
	}
	return st, nil
}

func runTop(cmd *cobra.Command, args []string) error {
	cfg := GetConfig()

	st, err := openCounts()
	if err != nil {
		return err
	}
	defer st.Close()

	topUC := usecase.NewTopUseCase(st, analyzer.NewTokenizer(cfg.Tokenize))
	grams, err := topUC.Top(topK, topSize)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if topJSON {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(grams)
	}

	if len(grams) == 0 {
		fmt.Fprintln(out, "No n-grams found.")
		return nil
	}
	for i, g := range grams {
		fmt.Fprintf(out, "%4d. %8d  %s\n", i+1, g.Count, g.Join(cfg.Generate.Separator))
	}
	return nil
}
