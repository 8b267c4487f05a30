package cli

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"ngramkit/config"
	"ngramkit/internal/adapter/analyzer"
	"ngramkit/internal/usecase"
)

var (
	genText     string
	genFile     string
	genMinN     int
	genMaxN     int
	genMinK     int
	genMaxK     int
	genPadLeft  string
	genPadRight string
	genNoPad    bool
	genUnit     string
	genJSON     bool
)

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Print the n-grams of a text",
	Long: `Tokenize text and print its n-grams, one per line. Text comes from --text,
--file, or standard input. Range and marker flags override the config.

Examples:
  ngramkit generate -t "Mary had a little lamb" --min-n 2 --max-n 2
  ngramkit generate -t "Mary had a little lamb" --min-n 2 --max-n 2 --max-k 1
  echo "insurgents killed in ongoing fighting" | ngramkit generate --no-pad --json`,
	RunE: runGenerate,
}

func init() {
	rootCmd.AddCommand(generateCmd)
	generateCmd.Flags().StringVarP(&genText, "text", "t", "", "text to process")
	generateCmd.Flags().StringVarP(&genFile, "file", "f", "", "file to process")
	generateCmd.Flags().IntVar(&genMinN, "min-n", 0, "smallest gram size (default from config)")
	generateCmd.Flags().IntVar(&genMaxN, "max-n", 0, "largest gram size (default from config)")
	generateCmd.Flags().IntVar(&genMinK, "min-k", -1, "smallest skip budget (default from config)")
	generateCmd.Flags().IntVar(&genMaxK, "max-k", -1, "largest skip budget (default from config)")
	generateCmd.Flags().StringVar(&genPadLeft, "pad-left", "", "left boundary marker (default from config)")
	generateCmd.Flags().StringVar(&genPadRight, "pad-right", "", "right boundary marker (default from config)")
	generateCmd.Flags().BoolVar(&genNoPad, "no-pad", false, "disable boundary markers")
	generateCmd.Flags().StringVar(&genUnit, "unit", "", "sequence unit: line or file (default from config)")
	generateCmd.Flags().BoolVar(&genJSON, "json", false, "output as JSON lines")
	generateCmd.MarkFlagsMutuallyExclusive("text", "file")
}

func runGenerate(cmd *cobra.Command, args []string) error {
	cfg := GetConfig()

	gen := cfg.Generate
	if genMinN > 0 {
		gen.MinN = genMinN
	}
	if genMaxN > 0 {
		gen.MaxN = genMaxN
	}
	if genMinK >= 0 {
		gen.MinK = genMinK
	}
	if genMaxK >= 0 {
		gen.MaxK = genMaxK
	}
	if cmd.Flags().Changed("pad-left") {
		gen.PadLeft = genPadLeft
	}
	if cmd.Flags().Changed("pad-right") {
		gen.PadRight = genPadRight
	}
	if genNoPad {
		gen.PadLeft, gen.PadRight = "", ""
	}

	unit := cfg.Corpus.Unit
	if genUnit != "" {
		unit = genUnit
	}
	if unit != config.UnitLine && unit != config.UnitFile {
		return fmt.Errorf("unknown unit %q", unit)
	}

	text, err := readInput(cmd.InOrStdin())
	if err != nil {
		return err
	}

	tokenizer := analyzer.NewTokenizer(cfg.Tokenize)
	generateUC := usecase.NewGenerateUseCase(tokenizer, gen, GetLogger())

	grams, err := generateUC.GenerateText(text, unit)
	if err != nil {
		return err
	}

	out := bufio.NewWriter(cmd.OutOrStdout())
	defer out.Flush()

	enc := json.NewEncoder(out)
	for gram := range grams {
		if genJSON {
			if err := enc.Encode(gram); err != nil {
				return err
			}
			continue
		}
		if _, err := fmt.Fprintln(out, strings.Join(gram, gen.Separator)); err != nil {
			return err
		}
	}
	return nil
}

func readInput(stdin io.Reader) (string, error) {
	switch {
	case genText != "":
		return genText, nil
	case genFile != "":
		data, err := os.ReadFile(genFile)
		if err != nil {
			return "", fmt.Errorf("failed to read %s: %w", genFile, err)
		}
		return string(data), nil
	default:
		data, err := io.ReadAll(stdin)
		if err != nil {
			return "", fmt.Errorf("failed to read stdin: %w", err)
		}
		return string(data), nil
	}
}
