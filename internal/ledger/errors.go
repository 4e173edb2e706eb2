package ledger

import "errors"

// Sentinel errors returned at operation boundaries. Callers classify with
// errors.Is; operation-specific detail is attached via fmt.Errorf("%w").
var (
	ErrValidation = errors.New("invalid input")
	ErrNotFound   = errors.New("not found")
	ErrConflict   = errors.New("already exists")

	// ErrStorage means the in-memory mutation succeeded but the snapshot
	// write did not. Durability is unknown; retrying the save is the
	// caller's call, the mutation itself must not be repeated.
	ErrStorage = errors.New("snapshot write failed")
)
