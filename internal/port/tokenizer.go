package port

type Tokenizer interface {
	Tokenize(text string) []string

	// Sequences splits text into independent item sequences, one per
	// corpus unit.
	Sequences(text string, unit string) [][]string
}
