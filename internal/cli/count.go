package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"ngramkit/config"
	"ngramkit/internal/adapter/analyzer"
	"ngramkit/internal/adapter/fs"
	"ngramkit/internal/adapter/store"
	"ngramkit/internal/usecase"
)

var countQuiet bool

var countCmd = &cobra.Command{
	Use:   "count [path]",
	Short: "Count n-grams across a corpus",
	Long: `Count the n-grams of every matching file in the specified directory.
Counts are stored in .ngram/counts.db within the target directory and are
updated incrementally: unchanged files are skipped, changed files are
recounted and deleted files are subtracted.

Examples:
  ngramkit count .               # Count current directory
  ngramkit count /path/to/texts  # Count specific directory`,
	Args: cobra.MaximumNArgs(1),
	RunE: runCount,
}

func init() {
	rootCmd.AddCommand(countCmd)
	countCmd.Flags().BoolVarP(&countQuiet, "quiet", "q", false, "hide the progress bar")
}

func runCount(cmd *cobra.Command, args []string) error {
	path := GetRootDir()
	if len(args) > 0 {
		var err error
		path, err = filepath.Abs(args[0])
		if err != nil {
			return fmt.Errorf("invalid path: %w", err)
		}
	}

	info, err := os.Stat(path)
	if err != nil {
		return fmt.Errorf("path does not exist: %w", err)
	}
	if !info.IsDir() {
		return fmt.Errorf("path is not a directory: %s", path)
	}

	cfg := GetConfig()
	log := GetLogger()
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}

	if err := config.EnsureDataDir(path); err != nil {
		return fmt.Errorf("failed to create .ngram directory: %w", err)
	}

	dbPath := config.CountsDBPath(path)
	st, err := store.NewBoltStore(dbPath)
	if err != nil {
		return fmt.Errorf("failed to open count store: %w", err)
	}
	defer st.Close()

	migrationResult, err := st.CheckMigration(cfg)
	if err != nil {
		return fmt.Errorf("failed to check migration: %w", err)
	}

	if migrationResult.NeedsRebuild {
		log.Info("rebuilding counts", zap.String("reason", migrationResult.Reason))
		if err := st.Clear(); err != nil {
			return fmt.Errorf("failed to clear counts: %w", err)
		}
	} else if migrationResult.NeedsMigration {
		log.Info("running schema migration", zap.String("reason", migrationResult.Reason))
		if err := st.Migrate(cfg); err != nil {
			return fmt.Errorf("migration failed: %w", err)
		}
	}

	tokenizer := analyzer.NewTokenizer(cfg.Tokenize)
	walker := fs.NewWalker(cfg.Corpus.Includes, cfg.Corpus.Excludes)
	generateUC := usecase.NewGenerateUseCase(tokenizer, cfg.Generate, log)
	countUC := usecase.NewCountUseCase(st, walker, tokenizer, generateUC, cfg.Corpus.Unit, log)

	var progress usecase.ProgressFunc
	if !countQuiet {
		progress = newProgress()
	}

	result, err := countUC.Count(cmd.Context(), path, progress)
	if err != nil {
		return fmt.Errorf("counting failed: %w", err)
	}

	// Record the settings the counts were produced with.
	if err := st.Migrate(cfg); err != nil {
		return fmt.Errorf("failed to update schema info: %w", err)
	}

	stats, err := st.GetStats()
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "\nCounting complete:\n")
	fmt.Fprintf(out, "  Files counted:  %d\n", result.FilesCounted)
	fmt.Fprintf(out, "  Files skipped:  %d (unchanged)\n", result.FilesSkipped)
	fmt.Fprintf(out, "  Files deleted:  %d (removed)\n", result.FilesDeleted)
	fmt.Fprintf(out, "  Grams counted:  %d\n", result.GramsCounted)
	fmt.Fprintf(out, "  Corpus:         %d docs, %d items, %d grams (%d unique)\n",
		stats.TotalDocs, stats.TotalItems, stats.TotalGrams, stats.UniqueGrams)

	if len(result.Errors) > 0 {
		fmt.Fprintf(out, "\nWarnings:\n")
		for _, e := range result.Errors {
			fmt.Fprintf(out, "  - %s\n", e)
		}
	}

	fmt.Fprintf(out, "\nCounts stored at: %s\n", dbPath)
	return nil
}

// newProgress returns a progress callback that lazily creates a bar once the
// number of files is known.
func newProgress() usecase.ProgressFunc {
	var (
		bar       *progressbar.ProgressBar
		mu        sync.Mutex
		startTime time.Time
	)

	return func(processed, total int, currentFile string) {
		mu.Lock()
		defer mu.Unlock()

		if bar == nil {
			startTime = time.Now()
			bar = progressbar.NewOptions(total,
				progressbar.OptionSetWriter(os.Stderr),
				progressbar.OptionEnableColorCodes(true),
				progressbar.OptionShowBytes(false),
				progressbar.OptionSetWidth(40),
				progressbar.OptionShowCount(),
				progressbar.OptionSetDescription("[cyan]Counting[reset]"),
				progressbar.OptionSetTheme(progressbar.Theme{
					Saucer:        "[green]=[reset]",
					SaucerHead:    "[green]>[reset]",
					SaucerPadding: " ",
					BarStart:      "[",
					BarEnd:        "]",
				}),
				progressbar.OptionOnCompletion(func() {
					fmt.Fprintln(os.Stderr)
				}),
			)
		}

		_ = bar.Set(processed)

		if processed > 0 {
			elapsed := time.Since(startTime)
			rate := float64(processed) / elapsed.Seconds()
			if rate > 0 {
				eta := time.Duration(float64(total-processed)/rate) * time.Second
				bar.Describe(fmt.Sprintf("[cyan]Counting[reset] ETA: %s", formatDuration(eta)))
			}
		}
	}
}

// formatDuration formats a duration in a human-readable way.
func formatDuration(d time.Duration) string {
	if d < time.Second {
		return "<1s"
	}
	if d < time.Minute {
		return fmt.Sprintf("%ds", int(d.Seconds()))
	}
	if d < time.Hour {
		m := int(d.Minutes())
		s := int(d.Seconds()) % 60
		return fmt.Sprintf("%dm%ds", m, s)
	}
	h := int(d.Hours())
	m := int(d.Minutes()) % 60
	return fmt.Sprintf("%dh%dm", h, m)
}
