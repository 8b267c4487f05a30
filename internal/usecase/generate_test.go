package usecase

import (
	"errors"
	"slices"
	"testing"

	"go.uber.org/zap"
	"ngramkit/config"
	"ngramkit/internal/adapter/analyzer"
	"ngramkit/ngram"
)

func newGenerateUseCase(gen config.GenerateConfig) *GenerateUseCase {
	tokenizer := analyzer.NewTokenizer(config.DefaultConfig().Tokenize)
	return NewGenerateUseCase(tokenizer, gen, zap.NewNop())
}

func collect(t *testing.T, u *GenerateUseCase, text, unit string) [][]string {
	t.Helper()
	seq, err := u.GenerateText(text, unit)
	if err != nil {
		t.Fatal(err)
	}
	var grams [][]string
	for g := range seq {
		grams = append(grams, g)
	}
	return grams
}

func TestGenerateTextPadded(t *testing.T) {
	u := newGenerateUseCase(config.DefaultConfig().Generate)

	grams := collect(t, u, "The cat", config.UnitFile)
	// 2 unigrams, 3 bigrams and 4 trigrams over <s> <s> the cat </s> </s>
	if len(grams) != 9 {
		t.Fatalf("expected 9 grams, got %d: %v", len(grams), grams)
	}
	for _, g := range grams {
		if !slices.Contains(g, "the") && !slices.Contains(g, "cat") {
			t.Errorf("gram without items: %v", g)
		}
	}
}

func TestGenerateTextPerLine(t *testing.T) {
	u := newGenerateUseCase(config.DefaultConfig().Generate)

	grams := collect(t, u, "the cat\nsat", config.UnitLine)
	if len(grams) != 15 {
		t.Fatalf("expected 15 grams, got %d", len(grams))
	}
	for _, g := range grams {
		if slices.Contains(g, "cat") && slices.Contains(g, "sat") {
			t.Errorf("gram spans two lines: %v", g)
		}
	}

	// the same text as a single unit joins the lines
	joined := collect(t, u, "the cat\nsat", config.UnitFile)
	found := false
	for _, g := range joined {
		if slices.Equal(g, []string{"the", "cat", "sat"}) {
			found = true
		}
	}
	if !found {
		t.Error("expected trigram across the line break in file mode")
	}
}

func TestGenerateTextUnpadded(t *testing.T) {
	gen := config.DefaultConfig().Generate
	gen.PadLeft, gen.PadRight = "", ""
	u := newGenerateUseCase(gen)

	grams := collect(t, u, "a b c", config.UnitFile)
	want := [][]string{
		{"a"}, {"a", "b"}, {"a", "b", "c"},
		{"b"}, {"b", "c"},
		{"c"},
	}
	if !slices.EqualFunc(grams, want, func(x, y []string) bool { return slices.Equal(x, y) }) {
		t.Errorf("expected %v, got %v", want, grams)
	}
}

func TestGenerateTextEarlyStop(t *testing.T) {
	u := newGenerateUseCase(config.DefaultConfig().Generate)
	seq, err := u.GenerateText("one two three four", config.UnitFile)
	if err != nil {
		t.Fatal(err)
	}
	n := 0
	for range seq {
		n++
		if n == 3 {
			break
		}
	}
	if n != 3 {
		t.Errorf("expected to stop after 3 grams, got %d", n)
	}
}

func TestGenerateInvalidRange(t *testing.T) {
	gen := config.DefaultConfig().Generate
	gen.MinN = 0
	u := newGenerateUseCase(gen)

	if _, err := u.GenerateText("some text", config.UnitFile); !errors.Is(err, ngram.ErrInvalidArgument) {
		t.Errorf("expected ErrInvalidArgument, got %v", err)
	}
}
