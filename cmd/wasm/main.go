//go:build js && wasm

package main

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"syscall/js"
	"time"

	"go.uber.org/zap"
	"ngramkit/config"
	"ngramkit/internal/adapter/analyzer"
	"ngramkit/internal/adapter/cache"
	"ngramkit/internal/adapter/memstore"
	"ngramkit/internal/domain"
	"ngramkit/internal/usecase"
)

var (
	cfg       *config.Config
	store     *memstore.MemoryStore
	tokenizer *analyzer.Tokenizer
	topUC     *usecase.TopUseCase
	topCache  *cache.TopCache
	ranker    *cache.CachedRanker
)

func init() {
	cfg = config.DefaultConfig()
	store = memstore.NewMemoryStore()
	tokenizer = analyzer.NewTokenizer(cfg.Tokenize)
	topUC = usecase.NewTopUseCase(store, tokenizer)
	topCache = cache.NewTopCache(50, 10*time.Minute)
	ranker = cache.NewCachedRanker(topUC, topCache)
}

func main() {
	c := make(chan struct{})

	js.Global().Set("ngramGenerate", js.FuncOf(generate))
	js.Global().Set("ngramAdd", js.FuncOf(addContent))
	js.Global().Set("ngramTop", js.FuncOf(top))
	js.Global().Set("ngramClear", js.FuncOf(clearCounts))
	js.Global().Set("ngramStats", js.FuncOf(getStats))

	<-c
}

// generate(text, [minN, maxN, maxK]) returns the n-grams of text.
func generate(this js.Value, args []js.Value) interface{} {
	if len(args) < 1 {
		return makeError("usage: ngramGenerate(text, [minN, maxN, maxK])")
	}

	gen := cfg.Generate
	if len(args) > 2 {
		gen.MinN = args[1].Int()
		gen.MaxN = args[2].Int()
	}
	if len(args) > 3 {
		gen.MaxK = args[3].Int()
	}

	uc := usecase.NewGenerateUseCase(tokenizer, gen, zap.NewNop())
	grams, err := uc.GenerateText(args[0].String(), cfg.Corpus.Unit)
	if err != nil {
		return makeError(err.Error())
	}

	output := [][]string{}
	for g := range grams {
		output = append(output, g)
	}
	return makeResult(map[string]interface{}{
		"grams": output,
	})
}

func addContent(this js.Value, args []js.Value) interface{} {
	if len(args) < 2 {
		return makeError("usage: ngramAdd(filename, content)")
	}

	filename := args[0].String()
	content := args[1].String()

	uc := usecase.NewGenerateUseCase(tokenizer, cfg.Generate, zap.NewNop())
	counts := make(domain.GramCounts)
	var items int64
	for _, seq := range tokenizer.Sequences(content, cfg.Corpus.Unit) {
		items += int64(len(seq))
		g, err := uc.Generate(seq)
		if err != nil {
			return makeError(err.Error())
		}
		for gram := range g.All() {
			counts.Add(gram)
		}
	}

	doc := domain.Document{
		ID:      generateDocID(filename),
		Path:    filename,
		ModTime: time.Now(),
		Lang:    "text",
	}
	if err := store.ApplyDoc(doc, counts, items); err != nil {
		return makeError("counting failed: " + err.Error())
	}
	topCache.Invalidate()

	return makeResult(map[string]interface{}{
		"success":  true,
		"grams":    counts.Total(),
		"unique":   len(counts),
		"filename": filename,
	})
}

func top(this js.Value, args []js.Value) interface{} {
	k, size := 10, 0
	if len(args) > 0 {
		k = args[0].Int()
	}
	if len(args) > 1 {
		size = args[1].Int()
	}

	grams, err := ranker.Top(k, size)
	if err != nil {
		return makeError(err.Error())
	}

	output := make([]map[string]interface{}, 0, len(grams))
	for _, g := range grams {
		output = append(output, map[string]interface{}{
			"gram":  g.Join(cfg.Generate.Separator),
			"count": g.Count,
		})
	}
	return makeResult(map[string]interface{}{
		"results": output,
	})
}

func clearCounts(this js.Value, args []js.Value) interface{} {
	store = memstore.NewMemoryStore()
	topUC = usecase.NewTopUseCase(store, tokenizer)
	topCache.Invalidate()
	ranker = cache.NewCachedRanker(topUC, topCache)
	return makeResult(map[string]interface{}{
		"success": true,
	})
}

func getStats(this js.Value, args []js.Value) interface{} {
	stats, _ := store.GetStats()
	docs, _ := store.ListDocs()

	filenames := make([]string, len(docs))
	for i, doc := range docs {
		filenames[i] = doc.Path
	}

	return makeResult(map[string]interface{}{
		"totalDocs":   stats.TotalDocs,
		"totalItems":  stats.TotalItems,
		"totalGrams":  stats.TotalGrams,
		"uniqueGrams": stats.UniqueGrams,
		"files":       filenames,
	})
}

func generateDocID(path string) string {
	hash := sha256.Sum256([]byte(path))
	return hex.EncodeToString(hash[:8])
}

func makeError(msg string) interface{} {
	result, _ := json.Marshal(map[string]interface{}{
		"error": msg,
	})
	return string(result)
}

func makeResult(data map[string]interface{}) interface{} {
	result, _ := json.Marshal(data)
	return string(result)
}
