package ngram

// Option configures the boundary markers of a generation call.
type Option[T any] func(*options[T])

type options[T any] struct {
	left     T
	right    T
	hasLeft  bool
	hasRight bool
}

// WithLeftPad brackets the start of the sequence with v.
func WithLeftPad[T any](v T) Option[T] {
	return func(o *options[T]) {
		o.left = v
		o.hasLeft = true
	}
}

// WithRightPad brackets the end of the sequence with v.
func WithRightPad[T any](v T) Option[T] {
	return func(o *options[T]) {
		o.right = v
		o.hasRight = true
	}
}

// WithPadding sets both boundary markers.
func WithPadding[T any](left, right T) Option[T] {
	return func(o *options[T]) {
		WithLeftPad(left)(o)
		WithRightPad(right)(o)
	}
}

func newOptions[T any](opts []Option[T]) options[T] {
	var o options[T]
	for _, opt := range opts {
		if opt != nil {
			opt(&o)
		}
	}
	return o
}
