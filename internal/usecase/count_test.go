package usecase

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"go.uber.org/zap"
	"ngramkit/config"
	"ngramkit/internal/adapter/analyzer"
	"ngramkit/internal/adapter/fs"
	"ngramkit/internal/adapter/memstore"
)

func newCountUseCase(st *memstore.MemoryStore) *CountUseCase {
	cfg := config.DefaultConfig()
	cfg.Generate.MaxN = 2
	cfg.Generate.PadLeft, cfg.Generate.PadRight = "", ""

	tokenizer := analyzer.NewTokenizer(cfg.Tokenize)
	walker := fs.NewWalker([]string{"**/*.txt"}, nil)
	gen := NewGenerateUseCase(tokenizer, cfg.Generate, zap.NewNop())
	return NewCountUseCase(st, walker, tokenizer, gen, config.UnitLine, zap.NewNop())
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
}

func countOf(t *testing.T, st *memstore.MemoryStore, items ...string) int64 {
	t.Helper()
	n, err := st.GetCount(items)
	if err != nil {
		t.Fatal(err)
	}
	return n
}

func TestCountIncremental(t *testing.T) {
	dir := t.TempDir()
	a := filepath.Join(dir, "a.txt")
	b := filepath.Join(dir, "b.txt")
	writeFile(t, a, "the cat\nthe dog")
	writeFile(t, b, "The cat")
	writeFile(t, filepath.Join(dir, "notes.md"), "the the the")

	st := memstore.NewMemoryStore()
	u := newCountUseCase(st)
	ctx := context.Background()

	var calls int
	result, err := u.Count(ctx, dir, func(processed, total int, _ string) {
		calls++
		if processed > total {
			t.Errorf("processed %d exceeds total %d", processed, total)
		}
	})
	if err != nil {
		t.Fatal(err)
	}
	if result.FilesCounted != 2 || calls != 2 {
		t.Fatalf("expected 2 files counted with 2 progress calls, got %+v and %d", result, calls)
	}
	if got := countOf(t, st, "the"); got != 3 {
		t.Errorf("expected 'the' x3, got %d", got)
	}
	if got := countOf(t, st, "the", "cat"); got != 2 {
		t.Errorf("expected 'the cat' x2, got %d", got)
	}
	if got := countOf(t, st, "cat", "the"); got != 0 {
		t.Errorf("grams must not cross lines, got %d", got)
	}

	result, err = u.Count(ctx, dir, nil)
	if err != nil {
		t.Fatal(err)
	}
	if result.FilesSkipped != 2 || result.FilesCounted != 0 {
		t.Errorf("expected both files skipped, got %+v", result)
	}

	writeFile(t, b, "a bird")
	future := time.Now().Add(time.Hour)
	if err := os.Chtimes(b, future, future); err != nil {
		t.Fatal(err)
	}
	if err := os.Remove(a); err != nil {
		t.Fatal(err)
	}

	result, err = u.Count(ctx, dir, nil)
	if err != nil {
		t.Fatal(err)
	}
	if result.FilesCounted != 1 || result.FilesDeleted != 1 {
		t.Errorf("expected 1 counted and 1 deleted, got %+v", result)
	}
	if got := countOf(t, st, "the"); got != 0 {
		t.Errorf("expected old counts gone, got %d", got)
	}
	if got := countOf(t, st, "a", "bird"); got != 1 {
		t.Errorf("expected 'a bird' x1, got %d", got)
	}

	stats, _ := st.GetStats()
	if stats.TotalDocs != 1 || stats.TotalItems != 2 || stats.TotalGrams != 3 {
		t.Errorf("unexpected stats %+v", stats)
	}
}

func TestCountCanceled(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "a.txt"), "x y")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	u := newCountUseCase(memstore.NewMemoryStore())
	if _, err := u.Count(ctx, dir, nil); err != context.Canceled {
		t.Errorf("expected context.Canceled, got %v", err)
	}
}

func TestDetectKind(t *testing.T) {
	tests := map[string]string{
		"notes.md":   "markdown",
		"a/b/c.txt":  "text",
		"data.csv":   "table",
		"binary.bin": "unknown",
	}
	for path, want := range tests {
		if got := detectKind(path); got != want {
			t.Errorf("detectKind(%q) = %q, want %q", path, got, want)
		}
	}
}
