package types

import (
	"errors"
	"fmt"
)

// Standard errors. Failures local to one game never abort a batch; only
// ledger persistence problems are terminal for an operation.
// See docs/ARCHITECTURE.md § Error Handling.
var (
	// ErrNotFound reports that a game, user, or run could not be resolved
	// upstream. Expected during interactive lookups; callers check it with
	// errors.Is and report rather than abort.
	ErrNotFound = errors.New("entity not found")

	// ErrEndOfSeq terminates iteration over a paginated sequence.
	ErrEndOfSeq = errors.New("end of sequence")

	// ErrWriteFailure reports that a workbook could not be persisted. The
	// affected game's backup is aborted and its ledger entry left untouched.
	ErrWriteFailure = errors.New("workbook write failed")

	// ErrLedgerPersistence reports that the ledger file could not be read
	// or written. Fatal for the current operation.
	ErrLedgerPersistence = errors.New("ledger persistence failed")
)

// TransientError marks an upstream failure worth retrying after a cooldown:
// timeouts, rate limiting, and 5xx responses.
type TransientError struct {
	Op  string
	Err error
}

func (e *TransientError) Error() string {
	return fmt.Sprintf("transient: %s: %v", e.Op, e.Err)
}

func (e *TransientError) Unwrap() error { return e.Err }

// IsTransient reports whether err is, or wraps, a TransientError.
func IsTransient(err error) bool {
	var te *TransientError
	return errors.As(err, &te)
}
