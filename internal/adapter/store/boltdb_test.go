package store

import (
	"errors"
	"path/filepath"
	"testing"
	"time"

	"ngramkit/config"
	"ngramkit/internal/domain"
)

func openTestStore(t *testing.T) *BoltStore {
	t.Helper()
	st, err := NewBoltStore(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { st.Close() })
	return st
}

func counts(grams ...[]string) domain.GramCounts {
	c := make(domain.GramCounts)
	for _, g := range grams {
		c.Add(g)
	}
	return c
}

func TestApplyDocAccumulates(t *testing.T) {
	st := openTestStore(t)

	doc1 := domain.Document{ID: "a", Path: "a.txt", ModTime: time.Unix(100, 0)}
	doc2 := domain.Document{ID: "b", Path: "b.txt", ModTime: time.Unix(200, 0)}

	if err := st.ApplyDoc(doc1, counts([]string{"the"}, []string{"the", "cat"}), 2); err != nil {
		t.Fatal(err)
	}
	if err := st.ApplyDoc(doc2, counts([]string{"the"}, []string{"dog"}), 2); err != nil {
		t.Fatal(err)
	}

	n, err := st.GetCount([]string{"the"})
	if err != nil {
		t.Fatal(err)
	}
	if n != 2 {
		t.Errorf("expected count 2 for 'the', got %d", n)
	}

	stats, err := st.GetStats()
	if err != nil {
		t.Fatal(err)
	}
	want := domain.Stats{TotalDocs: 2, TotalItems: 4, TotalGrams: 4, UniqueGrams: 3}
	if stats != want {
		t.Errorf("expected stats %+v, got %+v", want, stats)
	}

	doc, err := st.GetDoc("b")
	if err != nil {
		t.Fatal(err)
	}
	if doc.Path != "b.txt" || doc.ModTime.Unix() != 200 {
		t.Errorf("unexpected document %+v", doc)
	}
}

func TestApplyDocReplacesPreviousCounts(t *testing.T) {
	st := openTestStore(t)
	doc := domain.Document{ID: "a", Path: "a.txt", ModTime: time.Unix(1, 0)}

	if err := st.ApplyDoc(doc, counts([]string{"old"}, []string{"old"}), 2); err != nil {
		t.Fatal(err)
	}
	if err := st.ApplyDoc(doc, counts([]string{"new"}), 1); err != nil {
		t.Fatal(err)
	}

	if n, _ := st.GetCount([]string{"old"}); n != 0 {
		t.Errorf("expected stale gram to be gone, got %d", n)
	}
	if n, _ := st.GetCount([]string{"new"}); n != 1 {
		t.Errorf("expected count 1 for 'new', got %d", n)
	}

	stats, _ := st.GetStats()
	want := domain.Stats{TotalDocs: 1, TotalItems: 1, TotalGrams: 1, UniqueGrams: 1}
	if stats != want {
		t.Errorf("expected stats %+v, got %+v", want, stats)
	}
}

func TestRemoveDoc(t *testing.T) {
	st := openTestStore(t)

	if err := st.ApplyDoc(domain.Document{ID: "a"}, counts([]string{"x", "y"}), 2); err != nil {
		t.Fatal(err)
	}
	if err := st.ApplyDoc(domain.Document{ID: "b"}, counts([]string{"x", "y"}), 2); err != nil {
		t.Fatal(err)
	}
	if err := st.RemoveDoc("a"); err != nil {
		t.Fatal(err)
	}

	if n, _ := st.GetCount([]string{"x", "y"}); n != 1 {
		t.Errorf("expected count 1 after removal, got %d", n)
	}
	if _, err := st.GetDoc("a"); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
	if err := st.RemoveDoc("missing"); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound for unknown doc, got %v", err)
	}

	docs, err := st.ListDocs()
	if err != nil {
		t.Fatal(err)
	}
	if len(docs) != 1 || docs[0].ID != "b" {
		t.Errorf("expected only doc b, got %+v", docs)
	}
}

func TestTopGrams(t *testing.T) {
	st := openTestStore(t)

	c := counts(
		[]string{"a"}, []string{"a"}, []string{"a"},
		[]string{"b"}, []string{"b"},
		[]string{"a", "b"}, []string{"a", "b"},
		[]string{"c"},
	)
	if err := st.ApplyDoc(domain.Document{ID: "d"}, c, 6); err != nil {
		t.Fatal(err)
	}

	top, err := st.TopGrams(3, 0)
	if err != nil {
		t.Fatal(err)
	}
	if len(top) != 3 {
		t.Fatalf("expected 3 grams, got %d", len(top))
	}
	if top[0].Join(" ") != "a" || top[0].Count != 3 {
		t.Errorf("expected 'a'x3 first, got %+v", top[0])
	}
	// ties are ordered by key
	if top[1].Join(" ") != "a b" || top[2].Join(" ") != "b" {
		t.Errorf("unexpected tie order: %+v", top)
	}

	bigrams, err := st.TopGrams(10, 2)
	if err != nil {
		t.Fatal(err)
	}
	if len(bigrams) != 1 || bigrams[0].Size() != 2 {
		t.Errorf("expected a single bigram, got %+v", bigrams)
	}
}

func TestPersistence(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.db")

	st, err := NewBoltStore(path)
	if err != nil {
		t.Fatal(err)
	}
	if err := st.ApplyDoc(domain.Document{ID: "a"}, counts([]string{"q"}), 1); err != nil {
		t.Fatal(err)
	}
	st.Close()

	st, err = NewBoltStore(path)
	if err != nil {
		t.Fatal(err)
	}
	defer st.Close()

	if n, _ := st.GetCount([]string{"q"}); n != 1 {
		t.Errorf("expected count to survive reopen, got %d", n)
	}
}

func TestMigrationAndRebuild(t *testing.T) {
	st := openTestStore(t)
	cfg := config.DefaultConfig()

	result, err := st.CheckMigration(cfg)
	if err != nil {
		t.Fatal(err)
	}
	if !result.NeedsMigration || result.NeedsRebuild {
		t.Errorf("fresh store should need migration only, got %+v", result)
	}

	if err := st.Migrate(cfg); err != nil {
		t.Fatal(err)
	}
	rebuild, _, err := st.NeedsRebuild(cfg)
	if err != nil {
		t.Fatal(err)
	}
	if rebuild {
		t.Error("expected no rebuild with unchanged config")
	}

	changed := config.DefaultConfig()
	changed.Generate.MaxK = 2
	rebuild, reason, err := st.NeedsRebuild(changed)
	if err != nil {
		t.Fatal(err)
	}
	if !rebuild || reason == "" {
		t.Errorf("expected rebuild after changing max_k, got %v %q", rebuild, reason)
	}

	// display-only settings do not invalidate counts
	display := config.DefaultConfig()
	display.Generate.Separator = "_"
	if rebuild, _, _ := st.NeedsRebuild(display); rebuild {
		t.Error("separator change should not require rebuild")
	}
}

func TestClear(t *testing.T) {
	st := openTestStore(t)
	cfg := config.DefaultConfig()
	if err := st.Migrate(cfg); err != nil {
		t.Fatal(err)
	}
	if err := st.ApplyDoc(domain.Document{ID: "a"}, counts([]string{"z"}), 1); err != nil {
		t.Fatal(err)
	}

	if err := st.Clear(); err != nil {
		t.Fatal(err)
	}

	if n, _ := st.GetCount([]string{"z"}); n != 0 {
		t.Errorf("expected no counts after clear, got %d", n)
	}
	stats, _ := st.GetStats()
	if stats != (domain.Stats{}) {
		t.Errorf("expected zero stats after clear, got %+v", stats)
	}
	info, err := st.GetSchemaInfo()
	if err != nil {
		t.Fatal(err)
	}
	if info.Version != CurrentSchemaVersion || info.ConfigHash != ComputeConfigHash(cfg) {
		t.Errorf("schema info should survive clear, got %+v", info)
	}
}
