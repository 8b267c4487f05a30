package ngram

import "iter"

// padded is a read-only view of items bracketed by boundary markers. Markers
// are produced by At and never stored.
type padded[T any] struct {
	items []T
	left  int
	right int
	opts  options[T]
}

func newPadded[T any](items []T, p int, o options[T]) padded[T] {
	if p < 0 {
		p = 0
	}
	v := padded[T]{items: items, opts: o}
	if o.hasLeft {
		v.left = p
	}
	if o.hasRight {
		v.right = p
	}
	return v
}

// Len returns the length of the padded sequence.
func (v padded[T]) Len() int {
	return v.left + len(v.items) + v.right
}

// At returns the element at padded position i.
func (v padded[T]) At(i int) T {
	switch {
	case i < v.left:
		return v.opts.left
	case i < v.left+len(v.items):
		return v.items[i-v.left]
	default:
		return v.opts.right
	}
}

// isItem reports whether padded position i holds an input item.
func (v padded[T]) isItem(i int) bool {
	return i >= v.left && i < v.left+len(v.items)
}

func (v padded[T]) all() iter.Seq[T] {
	return func(yield func(T) bool) {
		for i := 0; i < v.Len(); i++ {
			if !yield(v.At(i)) {
				return
			}
		}
	}
}

// Pad returns items bracketed by p copies of each configured marker. A side
// without a marker gets no padding regardless of p.
func Pad[T any](items []T, p int, opts ...Option[T]) iter.Seq[T] {
	return newPadded(items, p, newOptions(opts)).all()
}
