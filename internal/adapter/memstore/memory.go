package memstore

import (
	"fmt"
	"sort"
	"sync"

	"ngramkit/internal/domain"
	"ngramkit/internal/port"
)

type docEntry struct {
	doc    domain.Document
	counts domain.GramCounts
	items  int64
}

// MemoryStore is a map-backed CountStore. It keeps the same bookkeeping as
// the bolt store and is used by tests and one-shot runs.
type MemoryStore struct {
	mu    sync.RWMutex
	docs  map[string]*docEntry
	grams map[string]int64
	stats domain.Stats
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		docs:  make(map[string]*docEntry),
		grams: make(map[string]int64),
	}
}

func (s *MemoryStore) PutDoc(doc domain.Document) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if e, ok := s.docs[doc.ID]; ok {
		e.doc = doc
		return nil
	}
	s.docs[doc.ID] = &docEntry{doc: doc}
	s.stats.TotalDocs++
	return nil
}

func (s *MemoryStore) GetDoc(id string) (domain.Document, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	e, ok := s.docs[id]
	if !ok {
		return domain.Document{}, fmt.Errorf("document %s: %w", id, domain.ErrNotFound)
	}
	return e.doc, nil
}

func (s *MemoryStore) ListDocs() ([]domain.Document, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	docs := make([]domain.Document, 0, len(s.docs))
	for _, e := range s.docs {
		docs = append(docs, e.doc)
	}
	return docs, nil
}

func (s *MemoryStore) ApplyDoc(doc domain.Document, counts domain.GramCounts, items int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.subtract(doc.ID) {
		s.stats.TotalDocs++
	}

	own := make(domain.GramCounts, len(counts))
	for key, n := range counts {
		if s.grams[key] == 0 {
			s.stats.UniqueGrams++
		}
		s.grams[key] += n
		s.stats.TotalGrams += n
		own[key] = n
	}
	s.stats.TotalItems += items
	s.docs[doc.ID] = &docEntry{doc: doc, counts: own, items: items}
	return nil
}

func (s *MemoryStore) RemoveDoc(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.subtract(id) {
		return fmt.Errorf("document %s: %w", id, domain.ErrNotFound)
	}
	delete(s.docs, id)
	s.stats.TotalDocs--
	return nil
}

// subtract must be called with the write lock held.
func (s *MemoryStore) subtract(id string) bool {
	e, ok := s.docs[id]
	if !ok {
		return false
	}
	for key, n := range e.counts {
		left := s.grams[key] - n
		s.stats.TotalGrams -= n
		if left <= 0 {
			delete(s.grams, key)
			s.stats.UniqueGrams--
			continue
		}
		s.grams[key] = left
	}
	s.stats.TotalItems -= e.items
	e.counts = nil
	e.items = 0
	return true
}

func (s *MemoryStore) GetCount(items []string) (int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.grams[domain.GramKey(items)], nil
}

func (s *MemoryStore) TopGrams(k int, size int) ([]domain.Gram, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	grams := make([]domain.Gram, 0, len(s.grams))
	for key, n := range s.grams {
		items := domain.ParseGramKey(key)
		if size > 0 && len(items) != size {
			continue
		}
		grams = append(grams, domain.Gram{Items: items, Count: n})
	}
	sort.Slice(grams, func(i, j int) bool {
		if grams[i].Count != grams[j].Count {
			return grams[i].Count > grams[j].Count
		}
		return grams[i].Key() < grams[j].Key()
	})
	if k > 0 && len(grams) > k {
		grams = grams[:k]
	}
	return grams, nil
}

func (s *MemoryStore) GetStats() (domain.Stats, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.stats, nil
}

func (s *MemoryStore) Close() error {
	return nil
}

var _ port.CountStore = (*MemoryStore)(nil)
