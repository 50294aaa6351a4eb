package validation

import (
	"errors"
	"fmt"
)

// ErrMissingInput indicates a submission without a configuration document.
// Rules are not evaluated.
var ErrMissingInput = errors.New("pipeline configuration is required")

// PersistenceError reports a failure recording a completed challenge. The
// Outcome returned alongside it is complete and still authoritative.
type PersistenceError struct {
	Challenge string
	Err       error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("record completion of %q: %v", e.Challenge, e.Err)
}

func (e *PersistenceError) Unwrap() error { return e.Err }
