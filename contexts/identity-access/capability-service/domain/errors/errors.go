package errors

import "errors"

var (
	ErrInvalidChallengeID = errors.New("invalid challenge id")
	ErrChallengeNotFound  = errors.New("challenge not found")
)

// IsNotFound reports whether err means the challenge reference itself is
// unresolvable, a caller bug, not a permission outcome.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrChallengeNotFound)
}
