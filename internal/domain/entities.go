package domain

import (
	"errors"
	"strings"
	"time"
)

// ErrNotFound is returned by stores for unknown documents.
var ErrNotFound = errors.New("not found")

type Document struct {
	ID      string
	Path    string
	ModTime time.Time
	Lang    string
}

// KeySep joins gram items into a storage key. It cannot appear in tokenized
// items.
const KeySep = "\x1f"

// Gram is an n-gram together with its corpus frequency.
type Gram struct {
	Items []string `json:"items"`
	Count int64    `json:"count"`
}

// Key returns the storage key of the gram.
func (g Gram) Key() string {
	return GramKey(g.Items)
}

// Size returns the number of items in the gram.
func (g Gram) Size() int {
	return len(g.Items)
}

// Join renders the gram for display.
func (g Gram) Join(sep string) string {
	return strings.Join(g.Items, sep)
}

func GramKey(items []string) string {
	return strings.Join(items, KeySep)
}

func ParseGramKey(key string) []string {
	return strings.Split(key, KeySep)
}

// GramCounts maps gram keys to frequencies.
type GramCounts map[string]int64

// Add counts one occurrence of items.
func (c GramCounts) Add(items []string) {
	c[GramKey(items)]++
}

// Total returns the sum of all frequencies.
func (c GramCounts) Total() int64 {
	var total int64
	for _, n := range c {
		total += n
	}
	return total
}

type Stats struct {
	TotalDocs   int   `json:"total_docs"`
	TotalItems  int64 `json:"total_items"`
	TotalGrams  int64 `json:"total_grams"`
	UniqueGrams int   `json:"unique_grams"`
}
