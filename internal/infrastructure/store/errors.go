package store

import "errors"

var (
	// ErrNotFound is returned when a referenced row does not exist.
	ErrNotFound = errors.New("record not found")

	// ErrInsufficientAvailable means a take-out asked for more than the
	// size's available quantity at mutation time.
	ErrInsufficientAvailable = errors.New("insufficient available quantity")

	// ErrInsufficientCirculation means a return or burn asked for more than
	// the size's in-circulation quantity at mutation time.
	ErrInsufficientCirculation = errors.New("insufficient quantity in circulation")

	// ErrConflictRetryable means the conditional update lost a race with a
	// concurrent mutation on the same row. The precondition may still hold,
	// so callers may retry.
	ErrConflictRetryable = errors.New("concurrent update conflict, retry")

	// ErrStoreUnavailable wraps infrastructure failures. No partial state is
	// left behind when it is returned.
	ErrStoreUnavailable = errors.New("store unavailable")

	// ErrDuplicateKey is returned when an insert violates a unique constraint.
	ErrDuplicateKey = errors.New("duplicate key")
)
