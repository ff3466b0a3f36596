package generation

import "errors"

// ErrAlreadyInProgress is returned when a generate call arrives while the same
// artifact is still loading and the operation does not supersede.
var ErrAlreadyInProgress = errors.New("generation already in progress")

// ErrWrongState is returned when an operation requires a specific record
// state, e.g. revising an artifact that was never generated or is approved.
var ErrWrongState = errors.New("artifact is not in a revisable state")

// ValidationError is a request-level problem the caller can fix
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

func validationf(msg string) error {
	return &ValidationError{Message: msg}
}

// ErrEmptyTitles is the operator-facing message for a 2xx response that
// carried no usable titles. The conflation with real failures is deliberate:
// both resolve with "try again".
const ErrEmptyTitles = "No titles were generated. Please try again."
