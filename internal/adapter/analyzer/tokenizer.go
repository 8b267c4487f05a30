package analyzer

import (
	"strings"
	"unicode"

	porterstemmer "github.com/kiteco/go-porterstemmer"
	"ngramkit/config"
)

// Tokenizer splits text into items with optional case folding, stemming and
// stopword removal.
type Tokenizer struct {
	stopwords map[string]struct{}
	lower     bool
	stem      bool
	minLength int
}

// NewTokenizer creates a new Tokenizer.
func NewTokenizer(cfg config.TokenizeConfig) *Tokenizer {
	t := &Tokenizer{
		lower:     cfg.Lowercase,
		stem:      cfg.Stemming,
		minLength: cfg.MinLength,
	}
	if cfg.Stopwords {
		t.stopwords = defaultStopwords()
	}
	return t
}

// Tokenize splits text into items.
func (t *Tokenizer) Tokenize(text string) []string {
	words := splitWords(text)
	tokens := make([]string, 0, len(words))

	for _, word := range words {
		if t.lower {
			word = strings.ToLower(word)
		}
		if len([]rune(word)) < t.minLength {
			continue
		}
		if _, isStop := t.stopwords[strings.ToLower(word)]; isStop {
			continue
		}
		if t.stem {
			word = porterstemmer.StemString(word)
		}
		tokens = append(tokens, word)
	}

	return tokens
}

// Sequences splits text into item sequences, one per non-empty line or one
// for the whole text. Sequences that tokenize to nothing are dropped.
func (t *Tokenizer) Sequences(text string, unit string) [][]string {
	if unit == config.UnitFile {
		if tokens := t.Tokenize(text); len(tokens) > 0 {
			return [][]string{tokens}
		}
		return nil
	}

	var seqs [][]string
	for _, line := range strings.Split(text, "\n") {
		if tokens := t.Tokenize(line); len(tokens) > 0 {
			seqs = append(seqs, tokens)
		}
	}
	return seqs
}

// splitWords splits text into words using unicode word boundaries.
func splitWords(text string) []string {
	var words []string
	var current strings.Builder

	for _, r := range text {
		if unicode.IsLetter(r) || unicode.IsDigit(r) || r == '_' || r == '\'' {
			current.WriteRune(r)
		} else {
			if current.Len() > 0 {
				words = append(words, current.String())
				current.Reset()
			}
		}
	}
	if current.Len() > 0 {
		words = append(words, current.String())
	}

	return words
}

// defaultStopwords returns a set of common English stopwords.
func defaultStopwords() map[string]struct{} {
	stops := []string{
		"a", "an", "and", "are", "as", "at", "be", "by", "for",
		"from", "has", "he", "in", "is", "it", "its", "of", "on",
		"that", "the", "to", "was", "were", "will", "with", "this",
		"have", "had", "but", "not", "you", "your", "we", "our",
		"they", "their", "she", "her", "his", "if", "or", "so",
		"no", "can", "do", "does", "did", "been", "being", "would",
		"could", "should", "may", "might", "must", "shall", "which",
		"who", "whom", "what", "when", "where", "why", "how", "all",
		"each", "every", "both", "few", "more", "most", "other",
		"some", "such", "than", "too", "very", "just", "also",
	}
	m := make(map[string]struct{}, len(stops))
	for _, s := range stops {
		m[s] = struct{}{}
	}
	return m
}
