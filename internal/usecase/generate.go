package usecase

import (
	"iter"

	"go.uber.org/zap"
	"ngramkit/config"
	"ngramkit/internal/port"
	"ngramkit/ngram"
)

// GenerateUseCase turns text into n-grams according to the generation
// settings.
type GenerateUseCase struct {
	tokenizer port.Tokenizer
	cfg       config.GenerateConfig
	logger    *zap.Logger
}

// NewGenerateUseCase creates a new generate use case.
func NewGenerateUseCase(tokenizer port.Tokenizer, cfg config.GenerateConfig, logger *zap.Logger) *GenerateUseCase {
	return &GenerateUseCase{
		tokenizer: tokenizer,
		cfg:       cfg,
		logger:    logger,
	}
}

// Options returns the padding options for the configured markers. An empty
// marker leaves that side unpadded.
func (u *GenerateUseCase) Options() []ngram.Option[string] {
	var opts []ngram.Option[string]
	if u.cfg.PadLeft != "" {
		opts = append(opts, ngram.WithLeftPad(u.cfg.PadLeft))
	}
	if u.cfg.PadRight != "" {
		opts = append(opts, ngram.WithRightPad(u.cfg.PadRight))
	}
	return opts
}

// Generate returns a generator over the n-grams of one item sequence.
func (u *GenerateUseCase) Generate(items []string) (*ngram.Generator[string], error) {
	return ngram.Build(items, u.cfg.MinN, u.cfg.MaxN, u.cfg.MinK, u.cfg.MaxK, u.Options()...)
}

// GenerateText tokenizes text into one sequence per unit and yields the
// n-grams of every sequence in order. Grams never span two sequences.
func (u *GenerateUseCase) GenerateText(text, unit string) (iter.Seq[[]string], error) {
	seqs := u.tokenizer.Sequences(text, unit)

	gens := make([]*ngram.Generator[string], 0, len(seqs))
	for _, items := range seqs {
		g, err := u.Generate(items)
		if err != nil {
			return nil, err
		}
		gens = append(gens, g)
	}

	u.logger.Debug("generating n-grams",
		zap.Int("sequences", len(seqs)),
		zap.Int("min_n", u.cfg.MinN),
		zap.Int("max_n", u.cfg.MaxN),
		zap.Int("max_k", u.cfg.MaxK),
	)

	return func(yield func([]string) bool) {
		for _, g := range gens {
			for gram := range g.All() {
				if !yield(gram) {
					return
				}
			}
		}
	}, nil
}
