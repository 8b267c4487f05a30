package port

import "ngramkit/internal/domain"

// CountStore persists n-gram frequencies per document and for the corpus.
type CountStore interface {
	PutDoc(doc domain.Document) error

	GetDoc(id string) (domain.Document, error)

	ListDocs() ([]domain.Document, error)

	// ApplyDoc replaces the gram counts contributed by doc in one step.
	ApplyDoc(doc domain.Document, counts domain.GramCounts, items int64) error

	// RemoveDoc subtracts everything doc contributed and forgets it.
	RemoveDoc(id string) error

	GetCount(items []string) (int64, error)

	// TopGrams returns the k most frequent grams; size 0 means any size.
	TopGrams(k int, size int) ([]domain.Gram, error)

	GetStats() (domain.Stats, error)

	Close() error
}
