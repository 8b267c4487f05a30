package analyzer

import (
	"reflect"
	"testing"

	"ngramkit/config"
)

func plainConfig() config.TokenizeConfig {
	return config.TokenizeConfig{Lowercase: true, MinLength: 1}
}

func TestTokenizer_Tokenize_Plain(t *testing.T) {
	tok := NewTokenizer(plainConfig())

	tokens := tok.Tokenize("Mary had a little lamb.")
	expected := []string{"mary", "had", "a", "little", "lamb"}
	if !reflect.DeepEqual(tokens, expected) {
		t.Errorf("expected %v, got %v", expected, tokens)
	}
}

func TestTokenizer_Tokenize_KeepsCase(t *testing.T) {
	cfg := plainConfig()
	cfg.Lowercase = false
	tok := NewTokenizer(cfg)

	tokens := tok.Tokenize("Mary had")
	if tokens[0] != "Mary" {
		t.Errorf("expected case preserved, got %v", tokens)
	}
}

func TestTokenizer_Tokenize_WithStemming(t *testing.T) {
	cfg := plainConfig()
	cfg.Stemming = true
	tok := NewTokenizer(cfg)

	tokens := tok.Tokenize("running dogs")
	expected := []string{"run", "dog"}
	if !reflect.DeepEqual(tokens, expected) {
		t.Errorf("expected %v, got %v", expected, tokens)
	}
}

func TestTokenizer_StopwordRemoval(t *testing.T) {
	cfg := plainConfig()
	cfg.Stopwords = true
	tok := NewTokenizer(cfg)

	tokens := tok.Tokenize("The quick brown fox")
	expected := []string{"quick", "brown", "fox"}
	if !reflect.DeepEqual(tokens, expected) {
		t.Errorf("expected %v, got %v", expected, tokens)
	}
}

func TestTokenizer_MinLength(t *testing.T) {
	cfg := plainConfig()
	cfg.MinLength = 2
	tok := NewTokenizer(cfg)

	tokens := tok.Tokenize("a I go to")
	for _, token := range tokens {
		if len(token) < 2 {
			t.Errorf("short word should be removed: %s", token)
		}
	}
	if len(tokens) != 2 {
		t.Errorf("expected 2 tokens, got %v", tokens)
	}
}

func TestTokenizer_EmptyInput(t *testing.T) {
	tok := NewTokenizer(plainConfig())

	if tokens := tok.Tokenize(""); len(tokens) != 0 {
		t.Errorf("expected 0 tokens for empty input, got %d", len(tokens))
	}
	if seqs := tok.Sequences("\n\n  \n", config.UnitLine); len(seqs) != 0 {
		t.Errorf("expected no sequences, got %v", seqs)
	}
}

func TestTokenizer_Sequences(t *testing.T) {
	tok := NewTokenizer(plainConfig())
	text := "Mary had a little lamb\n\nIts fleece was white\n"

	lines := tok.Sequences(text, config.UnitLine)
	if len(lines) != 2 {
		t.Fatalf("expected 2 line sequences, got %d: %v", len(lines), lines)
	}
	if lines[1][0] != "its" {
		t.Errorf("unexpected second line %v", lines[1])
	}

	whole := tok.Sequences(text, config.UnitFile)
	if len(whole) != 1 || len(whole[0]) != 9 {
		t.Errorf("expected a single 9-item sequence, got %v", whole)
	}
}

func TestSplitWords(t *testing.T) {
	tests := []struct {
		input    string
		expected int
	}{
		{"hello world", 2},
		{"hello_world", 1},
		{"hello-world", 2},
		{"func(x, y)", 3},
		{"don't stop", 2},
		{"snake_case_name", 1},
		{"123numbers456", 1},
	}

	for _, tt := range tests {
		words := splitWords(tt.input)
		if len(words) != tt.expected {
			t.Errorf("splitWords(%q) = %d words, want %d: %v", tt.input, len(words), tt.expected, words)
		}
	}
}
