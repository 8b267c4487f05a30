package ngram

import (
	"iter"
	"slices"
)

type phase int

const (
	// Grams anchored on a left marker.
	phaseLeft phase = iota
	// Grams made only of input items.
	phaseInterior
	// Grams that start on an input item and end on a right marker.
	phaseRight
	phaseDone
)

// Generator is a pull-based cursor over the n-grams of a padded sequence.
//
// Emission runs in three phases. Grams starting on a left marker come first,
// ordered by size, then anchor, then skip vector. Interior grams follow,
// ordered by anchor, then size, then skip vector. Grams reaching into the
// right markers come last, ordered by size, then end position, then skip
// vector, with skips laid out backwards from the end.
//
// A gram is never emitted if it holds no input item or if one of its gaps
// jumps over a boundary marker; the latter would repeat a tighter gram.
//
// A Generator is not safe for concurrent use, but any number of generators may
// read the same input slice as long as nobody mutates it.
type Generator[T any] struct {
	view   padded[T]
	minN   int
	maxN   int
	budget int

	phase phase
	outer int
	inner int
	iters []*SkipVectorIter
	cur   *SkipVectorIter
	pos   []int
}

func newGenerator[T any](items []T, minN, maxN, budget int, o options[T]) *Generator[T] {
	g := &Generator[T]{
		view:   newPadded(items, maxN-1, o),
		minN:   minN,
		maxN:   maxN,
		budget: budget,
		iters:  make([]*SkipVectorIter, maxN-minN+1),
		pos:    make([]int, maxN),
	}
	g.Reset()
	return g
}

// Reset rewinds the generator to its first n-gram.
func (g *Generator[T]) Reset() {
	g.phase = phaseLeft
	g.outer, _, g.inner, _ = g.bounds()
	g.seek()
}

// Next returns the next n-gram, or false once the generator is exhausted. The
// returned slice belongs to the caller.
func (g *Generator[T]) Next() ([]T, bool) {
	for g.phase != phaseDone {
		vec, ok := g.cur.Next()
		if !ok {
			g.step()
			continue
		}
		if gram, ok := g.extract(vec); ok {
			return gram, true
		}
	}
	return nil, false
}

// All yields the remaining n-grams.
func (g *Generator[T]) All() iter.Seq[[]T] {
	return func(yield func([]T) bool) {
		for {
			gram, ok := g.Next()
			if !ok || !yield(gram) {
				return
			}
		}
	}
}

// Collect drains the generator into a slice.
func (g *Generator[T]) Collect() [][]T {
	return slices.Collect(g.All())
}

// bounds returns the outer and inner loop ranges of the current phase.
func (g *Generator[T]) bounds() (outerLo, outerHi, innerLo, innerHi int) {
	left := g.view.left
	items := left + len(g.view.items)
	switch g.phase {
	case phaseLeft:
		return g.minN, g.maxN + 1, 0, left
	case phaseInterior:
		return left, items, g.minN, g.maxN + 1
	case phaseRight:
		return g.minN, g.maxN + 1, items, g.view.Len()
	}
	return 0, 0, 0, 0
}

// cell returns the size and anchor of the current loop position.
func (g *Generator[T]) cell() (n, anchor int) {
	if g.phase == phaseInterior {
		return g.inner, g.outer
	}
	return g.outer, g.inner
}

func (g *Generator[T]) step() {
	_, _, innerLo, innerHi := g.bounds()
	g.inner++
	if g.inner >= innerHi {
		g.outer++
		g.inner = innerLo
	}
	g.seek()
}

// seek settles on the first non-empty loop position at or after the current
// one and rewinds its skip vectors.
func (g *Generator[T]) seek() {
	for g.phase != phaseDone {
		_, outerHi, innerLo, innerHi := g.bounds()
		if g.outer < outerHi && innerLo < innerHi {
			n, _ := g.cell()
			g.cur = g.skipVectors(n)
			return
		}
		g.phase++
		g.outer, _, g.inner, _ = g.bounds()
	}
	g.cur = nil
}

func (g *Generator[T]) skipVectors(n int) *SkipVectorIter {
	it := g.iters[n-g.minN]
	if it == nil {
		it = NewSkipVectorIter(n-1, g.budget)
		g.iters[n-g.minN] = it
	} else {
		it.Reset()
	}
	return it
}

func (g *Generator[T]) extract(skips []int) ([]T, bool) {
	n, anchor := g.cell()
	pos := g.pos[:n]
	length := g.view.Len()
	end := g.view.left + len(g.view.items)

	switch g.phase {
	case phaseLeft:
		if !forward(pos, anchor, skips, length) || !g.hasItem(pos) || g.skipsMarker(pos) {
			return nil, false
		}
	case phaseInterior:
		if !forward(pos, anchor, skips, length) || pos[n-1] >= end {
			return nil, false
		}
	case phaseRight:
		if !backward(pos, anchor, skips, length) || !g.view.isItem(pos[0]) || g.skipsMarker(pos) {
			return nil, false
		}
	}

	gram := make([]T, n)
	for i, p := range pos {
		gram[i] = g.view.At(p)
	}
	return gram, true
}

func (g *Generator[T]) hasItem(pos []int) bool {
	for _, p := range pos {
		if g.view.isItem(p) {
			return true
		}
	}
	return false
}

// skipsMarker reports whether any gap between consecutive positions passes
// over a boundary marker.
func (g *Generator[T]) skipsMarker(pos []int) bool {
	for j := 1; j < len(pos); j++ {
		lo, hi := pos[j-1]+1, pos[j]-1
		if lo > hi {
			continue
		}
		if !g.view.isItem(lo) || !g.view.isItem(hi) {
			return true
		}
	}
	return false
}
