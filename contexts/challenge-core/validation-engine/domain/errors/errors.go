package errors

import "errors"

var (
	// Validation class: bad input from a caller.
	ErrValidatorNotInSnapshot = errors.New("validator is not in the report's validator snapshot")
	ErrInvalidDecision        = errors.New("invalid vote decision")
	ErrInvalidInput           = errors.New("invalid vote input")

	// Conflict class: legal requests the current state refuses.
	ErrReportClosed       = errors.New("report closed")
	ErrChallengeNotActive = errors.New("challenge is not active")
	ErrReportNotClosed    = errors.New("report is not closed")
	ErrVersionConflict    = errors.New("report version conflict")
	ErrRetriesExhausted   = errors.New("optimistic write retries exhausted")
	ErrReopenNotAllowed   = errors.New("reopen requires a moderator role")

	// Not-found class: unresolvable references.
	ErrChallengeNotFound = errors.New("challenge not found")
	ErrReportNotFound    = errors.New("progress report not found")
	ErrUserNotFound      = errors.New("user not found")

	// Corrupt-state class: persisted data violating the decision enum.
	// Fatal; the engine refuses to guess and never auto-corrects.
	ErrCorruptVoteState = errors.New("persisted vote carries an unknown decision")
)

// IsValidation reports whether err belongs to the validation class.
func IsValidation(err error) bool {
	return errors.Is(err, ErrValidatorNotInSnapshot) ||
		errors.Is(err, ErrInvalidDecision) ||
		errors.Is(err, ErrInvalidInput)
}

// IsConflict reports whether err belongs to the conflict class, including
// exhausted optimistic-write retries.
func IsConflict(err error) bool {
	return errors.Is(err, ErrReportClosed) ||
		errors.Is(err, ErrChallengeNotActive) ||
		errors.Is(err, ErrReportNotClosed) ||
		errors.Is(err, ErrVersionConflict) ||
		errors.Is(err, ErrRetriesExhausted) ||
		errors.Is(err, ErrReopenNotAllowed)
}

// IsNotFound reports whether err belongs to the not-found class.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrChallengeNotFound) ||
		errors.Is(err, ErrReportNotFound) ||
		errors.Is(err, ErrUserNotFound)
}

// IsCorruptState reports whether err signals persisted-state corruption.
func IsCorruptState(err error) bool {
	return errors.Is(err, ErrCorruptVoteState)
}
