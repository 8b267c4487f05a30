package ngram

import (
	"errors"
	"fmt"
)

// ErrInvalidArgument is returned when a size or skip budget violates its
// precondition. It is always reported when a generator is constructed, never
// during iteration.
var ErrInvalidArgument = errors.New("invalid argument")

func invalid(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalidArgument, fmt.Sprintf(format, args...))
}

func validateSizes(minN, maxN int) error {
	if minN < 1 {
		return invalid("n must be >= 1, got %d", minN)
	}
	if minN > maxN {
		return invalid("min n (%d) is greater than max n (%d)", minN, maxN)
	}
	return nil
}

func validateBudgets(minK, maxK int) error {
	if minK < 0 {
		return invalid("skip budget must be >= 0, got %d", minK)
	}
	if minK > maxK {
		return invalid("min k (%d) is greater than max k (%d)", minK, maxK)
	}
	return nil
}

// Validate checks a size range and a skip budget range with the same rules
// Build applies.
func Validate(minN, maxN, minK, maxK int) error {
	if err := validateSizes(minN, maxN); err != nil {
		return err
	}
	return validateBudgets(minK, maxK)
}
