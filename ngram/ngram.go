package ngram

// NGrams returns the contiguous windows of n items. Each configured marker is
// repeated n-1 times on its side.
func NGrams[T any](items []T, n int, opts ...Option[T]) (*Generator[T], error) {
	return SkipGrams(items, n, 0, opts...)
}

// Bigrams is NGrams with n = 2.
func Bigrams[T any](items []T, opts ...Option[T]) (*Generator[T], error) {
	return NGrams(items, 2, opts...)
}

// Trigrams is NGrams with n = 3.
func Trigrams[T any](items []T, opts ...Option[T]) (*Generator[T], error) {
	return NGrams(items, 3, opts...)
}

// SkipGrams returns every n-gram whose gaps skip at most k items in total.
// Each configured marker is repeated n-1 times on its side. With k = 0 it is
// identical to NGrams.
func SkipGrams[T any](items []T, n, k int, opts ...Option[T]) (*Generator[T], error) {
	return Build(items, n, n, k, k, opts...)
}

// Everygrams returns the contiguous n-grams of every size in [minN, maxN].
// Markers are repeated maxN-1 times so that every size sees the same
// boundaries. Grams sharing a start position are emitted together, smallest
// first.
func Everygrams[T any](items []T, minN, maxN int, opts ...Option[T]) (*Generator[T], error) {
	return Build(items, minN, maxN, 0, 0, opts...)
}

// Build is the general k-skip-n-gram generator: the union over sizes in
// [minN, maxN] of the skip-grams with budget maxK. Markers are repeated maxN-1
// times per side.
//
// minK is validated but does not filter the output: a budget of maxK already
// covers every skip total from zero upwards.
func Build[T any](items []T, minN, maxN, minK, maxK int, opts ...Option[T]) (*Generator[T], error) {
	if err := Validate(minN, maxN, minK, maxK); err != nil {
		return nil, err
	}
	return newGenerator(items, minN, maxN, maxK, newOptions(opts)), nil
}
