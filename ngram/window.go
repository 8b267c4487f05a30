package ngram

// Positions returns the indexes selected by starting at start and stepping
// 1+skips[j] for each gap, along with whether all of them are below length.
func Positions(start int, skips []int, length int) ([]int, bool) {
	pos := make([]int, len(skips)+1)
	return pos, forward(pos, start, skips, length)
}

// Extract draws the n-gram anchored at start with the given gaps from seq.
// A window running past the end of seq is reported as absent, not as an
// error.
func Extract[T any](seq []T, start int, skips []int) ([]T, bool) {
	pos, ok := Positions(start, skips, len(seq))
	if !ok {
		return nil, false
	}
	gram := make([]T, len(pos))
	for i, p := range pos {
		gram[i] = seq[p]
	}
	return gram, true
}

// forward fills pos with the positions anchored at start.
func forward(pos []int, start int, skips []int, length int) bool {
	if start < 0 {
		return false
	}
	pos[0] = start
	for j, skip := range skips {
		pos[j+1] = pos[j] + 1 + skip
	}
	return pos[len(pos)-1] < length
}

// backward fills pos with positions laid out leftwards from end. skips[0] is
// the gap nearest end.
func backward(pos []int, end int, skips []int, length int) bool {
	if end >= length {
		return false
	}
	last := len(pos) - 1
	pos[last] = end
	for j, skip := range skips {
		pos[last-j-1] = pos[last-j] - 1 - skip
	}
	return pos[0] >= 0
}
