package ngram

import (
	"iter"
	"slices"
)

// SkipVectorIter enumerates every vector of Length non-negative integers whose
// sum is at most Budget. Vectors come in ascending lexicographic order, so
// the first coordinate varies slowest. A zero length yields a single empty
// vector.
//
// The slice returned by Next is reused by the following call.
type SkipVectorIter struct {
	vec     []int
	budget  int
	sum     int
	started bool
	done    bool
}

// NewSkipVectorIter returns an enumerator for the given vector length and
// skip budget. Negative arguments are treated as zero.
func NewSkipVectorIter(length, budget int) *SkipVectorIter {
	if length < 0 {
		length = 0
	}
	if budget < 0 {
		budget = 0
	}
	return &SkipVectorIter{
		vec:    make([]int, length),
		budget: budget,
	}
}

// Reset rewinds the enumerator to its first vector.
func (it *SkipVectorIter) Reset() {
	clear(it.vec)
	it.sum = 0
	it.started = false
	it.done = false
}

// Next returns the next vector, or false once the enumeration is exhausted.
func (it *SkipVectorIter) Next() ([]int, bool) {
	if it.done {
		return nil, false
	}
	if !it.started {
		it.started = true
		return it.vec, true
	}
	if !it.advance() {
		it.done = true
		return nil, false
	}
	return it.vec, true
}

// advance moves the odometer one step. While budget remains the last
// coordinate is bumped; otherwise the rightmost non-zero coordinate is zeroed
// and carried into its left neighbour.
func (it *SkipVectorIter) advance() bool {
	last := len(it.vec) - 1
	if last < 0 {
		return false
	}
	if it.sum < it.budget {
		it.vec[last]++
		it.sum++
		return true
	}
	j := last
	for j >= 0 && it.vec[j] == 0 {
		j--
	}
	if j <= 0 {
		return false
	}
	it.sum -= it.vec[j] - 1
	it.vec[j] = 0
	it.vec[j-1]++
	return true
}

// SkipVectors lazily yields every length-long vector of non-negative skips
// summing to at most budget. Each yielded vector is a fresh copy.
func SkipVectors(length, budget int) iter.Seq[[]int] {
	return func(yield func([]int) bool) {
		it := NewSkipVectorIter(length, budget)
		for {
			vec, ok := it.Next()
			if !ok || !yield(slices.Clone(vec)) {
				return
			}
		}
	}
}
