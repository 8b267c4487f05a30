package usecase

import (
	"testing"

	"ngramkit/config"
	"ngramkit/internal/adapter/analyzer"
	"ngramkit/internal/adapter/memstore"
	"ngramkit/internal/domain"
)

func TestTopAndLookup(t *testing.T) {
	st := memstore.NewMemoryStore()
	counts := make(domain.GramCounts)
	for _, g := range [][]string{{"the"}, {"the"}, {"cat"}, {"the", "cat"}} {
		counts.Add(g)
	}
	if err := st.ApplyDoc(domain.Document{ID: "d"}, counts, 3); err != nil {
		t.Fatal(err)
	}

	u := NewTopUseCase(st, analyzer.NewTokenizer(config.DefaultConfig().Tokenize))

	top, err := u.Top(1, 0)
	if err != nil {
		t.Fatal(err)
	}
	if len(top) != 1 || top[0].Join(" ") != "the" || top[0].Count != 2 {
		t.Errorf("unexpected top gram %+v", top)
	}

	bigrams, err := u.Top(10, 2)
	if err != nil {
		t.Fatal(err)
	}
	if len(bigrams) != 1 {
		t.Errorf("expected one bigram, got %+v", bigrams)
	}

	gram, err := u.Lookup("The  Cat!")
	if err != nil {
		t.Fatal(err)
	}
	if gram.Count != 1 || gram.Join(" ") != "the cat" {
		t.Errorf("unexpected lookup result %+v", gram)
	}

	if _, err := u.Lookup("  ...  "); err == nil {
		t.Error("expected error for empty phrase")
	}
	if _, err := u.Top(-1, 0); err == nil {
		t.Error("expected error for negative k")
	}

	stats, err := u.Stats()
	if err != nil {
		t.Fatal(err)
	}
	if stats.UniqueGrams != 3 {
		t.Errorf("expected 3 unique grams, got %d", stats.UniqueGrams)
	}
}
