package store

import (
	"encoding/binary"
	"encoding/json"
	"fmt"
	"sort"
	"time"

	"go.etcd.io/bbolt"
	"ngramkit/internal/domain"
)

var (
	bucketDocs     = []byte("docs")
	bucketGrams    = []byte("grams")
	bucketDocGrams = []byte("doc_grams")
	bucketStats    = []byte("stats")
	keyStats       = []byte("corpus_stats")
	dataBuckets    = [][]byte{bucketDocs, bucketGrams, bucketDocGrams}
	allBuckets     = append(dataBuckets, bucketStats)
)

// ErrNotFound is returned when a document is not in the store.
var ErrNotFound = domain.ErrNotFound

// BoltStore keeps corpus n-gram counts in a bbolt database. Every document
// records the counts it contributed so that a changed or deleted file can be
// subtracted without recounting the corpus.
type BoltStore struct {
	db *bbolt.DB
}

func NewBoltStore(path string) (*BoltStore, error) {
	db, err := bbolt.Open(path, 0600, &bbolt.Options{Timeout: time.Second})
	if err != nil {
		return nil, fmt.Errorf("failed to open bolt db: %w", err)
	}

	err = db.Update(func(tx *bbolt.Tx) error {
		for _, b := range allBuckets {
			if _, err := tx.CreateBucketIfNotExists(b); err != nil {
				return fmt.Errorf("failed to create bucket %s: %w", b, err)
			}
		}
		return nil
	})
	if err != nil {
		db.Close()
		return nil, err
	}

	return &BoltStore{db: db}, nil
}

type docMeta struct {
	Path    string `json:"path"`
	ModTime int64  `json:"mod_time"`
	Lang    string `json:"lang"`
	Items   int64  `json:"items"`
}

func encodeCount(n int64) []byte {
	buf := make([]byte, 8)
	binary.BigEndian.PutUint64(buf, uint64(n))
	return buf
}

func decodeCount(data []byte) int64 {
	if len(data) != 8 {
		return 0
	}
	return int64(binary.BigEndian.Uint64(data))
}

func (s *BoltStore) PutDoc(doc domain.Document) error {
	return s.db.Update(func(tx *bbolt.Tx) error {
		b := tx.Bucket(bucketDocs)
		var meta docMeta
		if data := b.Get([]byte(doc.ID)); data != nil {
			if err := json.Unmarshal(data, &meta); err != nil {
				return err
			}
		} else {
			stats, err := readStats(tx)
			if err != nil {
				return err
			}
			stats.TotalDocs++
			if err := writeStats(tx, stats); err != nil {
				return err
			}
		}
		meta.Path = doc.Path
		meta.ModTime = doc.ModTime.Unix()
		meta.Lang = doc.Lang
		return putDocMeta(tx, doc.ID, meta)
	})
}

func putDocMeta(tx *bbolt.Tx, id string, meta docMeta) error {
	data, err := json.Marshal(meta)
	if err != nil {
		return err
	}
	return tx.Bucket(bucketDocs).Put([]byte(id), data)
}

func (s *BoltStore) GetDoc(id string) (domain.Document, error) {
	var doc domain.Document
	err := s.db.View(func(tx *bbolt.Tx) error {
		data := tx.Bucket(bucketDocs).Get([]byte(id))
		if data == nil {
			return fmt.Errorf("document %s: %w", id, ErrNotFound)
		}
		var meta docMeta
		if err := json.Unmarshal(data, &meta); err != nil {
			return err
		}
		doc = toDocument(id, meta)
		return nil
	})
	return doc, err
}

func toDocument(id string, meta docMeta) domain.Document {
	return domain.Document{
		ID:      id,
		Path:    meta.Path,
		ModTime: time.Unix(meta.ModTime, 0),
		Lang:    meta.Lang,
	}
}

func (s *BoltStore) ListDocs() ([]domain.Document, error) {
	var docs []domain.Document
	err := s.db.View(func(tx *bbolt.Tx) error {
		return tx.Bucket(bucketDocs).ForEach(func(k, v []byte) error {
			var meta docMeta
			if err := json.Unmarshal(v, &meta); err != nil {
				return err
			}
			docs = append(docs, toDocument(string(k), meta))
			return nil
		})
	})
	return docs, err
}

// ApplyDoc stores doc and replaces whatever counts it contributed before with
// counts, all in a single transaction.
func (s *BoltStore) ApplyDoc(doc domain.Document, counts domain.GramCounts, items int64) error {
	return s.db.Update(func(tx *bbolt.Tx) error {
		stats, err := readStats(tx)
		if err != nil {
			return err
		}

		existed, err := subtractDoc(tx, doc.ID, &stats)
		if err != nil {
			return err
		}
		if !existed {
			stats.TotalDocs++
		}

		grams := tx.Bucket(bucketGrams)
		for key, n := range counts {
			old := decodeCount(grams.Get([]byte(key)))
			if old == 0 {
				stats.UniqueGrams++
			}
			if err := grams.Put([]byte(key), encodeCount(old+n)); err != nil {
				return err
			}
			stats.TotalGrams += n
		}
		stats.TotalItems += items

		data, err := json.Marshal(counts)
		if err != nil {
			return err
		}
		if err := tx.Bucket(bucketDocGrams).Put([]byte(doc.ID), data); err != nil {
			return err
		}

		meta := docMeta{
			Path:    doc.Path,
			ModTime: doc.ModTime.Unix(),
			Lang:    doc.Lang,
			Items:   items,
		}
		if err := putDocMeta(tx, doc.ID, meta); err != nil {
			return err
		}
		return writeStats(tx, stats)
	})
}

// RemoveDoc subtracts the counts contributed by a document and deletes it.
func (s *BoltStore) RemoveDoc(id string) error {
	return s.db.Update(func(tx *bbolt.Tx) error {
		stats, err := readStats(tx)
		if err != nil {
			return err
		}
		existed, err := subtractDoc(tx, id, &stats)
		if err != nil {
			return err
		}
		if !existed {
			return fmt.Errorf("document %s: %w", id, ErrNotFound)
		}
		stats.TotalDocs--
		if err := tx.Bucket(bucketDocs).Delete([]byte(id)); err != nil {
			return err
		}
		return writeStats(tx, stats)
	})
}

// subtractDoc removes the gram counts and item total of a stored document. It
// reports whether the document was known.
func subtractDoc(tx *bbolt.Tx, id string, stats *domain.Stats) (bool, error) {
	docData := tx.Bucket(bucketDocs).Get([]byte(id))
	if docData == nil {
		return false, nil
	}
	var meta docMeta
	if err := json.Unmarshal(docData, &meta); err != nil {
		return false, err
	}
	stats.TotalItems -= meta.Items

	docGrams := tx.Bucket(bucketDocGrams)
	data := docGrams.Get([]byte(id))
	if data == nil {
		return true, nil
	}
	var counts domain.GramCounts
	if err := json.Unmarshal(data, &counts); err != nil {
		return false, fmt.Errorf("corrupt counts for %s: %w", id, err)
	}

	grams := tx.Bucket(bucketGrams)
	for key, n := range counts {
		left := decodeCount(grams.Get([]byte(key))) - n
		stats.TotalGrams -= n
		if left <= 0 {
			stats.UniqueGrams--
			if err := grams.Delete([]byte(key)); err != nil {
				return false, err
			}
			continue
		}
		if err := grams.Put([]byte(key), encodeCount(left)); err != nil {
			return false, err
		}
	}
	return true, docGrams.Delete([]byte(id))
}

func (s *BoltStore) GetCount(items []string) (int64, error) {
	var n int64
	err := s.db.View(func(tx *bbolt.Tx) error {
		n = decodeCount(tx.Bucket(bucketGrams).Get([]byte(domain.GramKey(items))))
		return nil
	})
	return n, err
}

// TopGrams returns the k most frequent grams, optionally restricted to one
// size. Ties are broken by key so results are stable.
func (s *BoltStore) TopGrams(k int, size int) ([]domain.Gram, error) {
	var grams []domain.Gram
	err := s.db.View(func(tx *bbolt.Tx) error {
		return tx.Bucket(bucketGrams).ForEach(func(key, v []byte) error {
			items := domain.ParseGramKey(string(key))
			if size > 0 && len(items) != size {
				return nil
			}
			grams = append(grams, domain.Gram{Items: items, Count: decodeCount(v)})
			return nil
		})
	})
	if err != nil {
		return nil, err
	}
	return rankGrams(grams, k), nil
}

func rankGrams(grams []domain.Gram, k int) []domain.Gram {
	sort.Slice(grams, func(i, j int) bool {
		if grams[i].Count != grams[j].Count {
			return grams[i].Count > grams[j].Count
		}
		return grams[i].Key() < grams[j].Key()
	})
	if k > 0 && len(grams) > k {
		grams = grams[:k]
	}
	return grams
}

func readStats(tx *bbolt.Tx) (domain.Stats, error) {
	var stats domain.Stats
	data := tx.Bucket(bucketStats).Get(keyStats)
	if data == nil {
		return stats, nil
	}
	err := json.Unmarshal(data, &stats)
	return stats, err
}

func writeStats(tx *bbolt.Tx, stats domain.Stats) error {
	data, err := json.Marshal(stats)
	if err != nil {
		return err
	}
	return tx.Bucket(bucketStats).Put(keyStats, data)
}

func (s *BoltStore) GetStats() (domain.Stats, error) {
	var stats domain.Stats
	err := s.db.View(func(tx *bbolt.Tx) error {
		var err error
		stats, err = readStats(tx)
		return err
	})
	return stats, err
}

func (s *BoltStore) Close() error {
	return s.db.Close()
}
