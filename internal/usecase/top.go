package usecase

import (
	"fmt"

	"ngramkit/internal/domain"
	"ngramkit/internal/port"
)

// TopUseCase answers frequency queries against stored counts.
type TopUseCase struct {
	store     port.CountStore
	tokenizer port.Tokenizer
}

func NewTopUseCase(store port.CountStore, tokenizer port.Tokenizer) *TopUseCase {
	return &TopUseCase{store: store, tokenizer: tokenizer}
}

// Top returns the k most frequent grams. size restricts results to grams of
// that many items; 0 means any size.
func (u *TopUseCase) Top(k, size int) ([]domain.Gram, error) {
	if k < 0 || size < 0 {
		return nil, fmt.Errorf("k and size must be non-negative, got %d and %d", k, size)
	}
	return u.store.TopGrams(k, size)
}

// Lookup tokenizes phrase the way the corpus was tokenized and returns its
// stored frequency.
func (u *TopUseCase) Lookup(phrase string) (domain.Gram, error) {
	items := u.tokenizer.Tokenize(phrase)
	if len(items) == 0 {
		return domain.Gram{}, fmt.Errorf("phrase %q has no items after tokenizing", phrase)
	}
	n, err := u.store.GetCount(items)
	if err != nil {
		return domain.Gram{}, err
	}
	return domain.Gram{Items: items, Count: n}, nil
}

func (u *TopUseCase) Stats() (domain.Stats, error) {
	return u.store.GetStats()
}
