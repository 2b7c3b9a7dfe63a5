package wordledb

import "errors"

// Sentinel errors for the repository layer.
var (
	// ErrNotFound indicates no result exists for the requested (puzzle, player).
	ErrNotFound = errors.New("result not found")

	// ErrDuplicate indicates an insert hit the (puzzle, player) uniqueness constraint.
	// Callers treat it exactly like a duplicate detected before the write.
	ErrDuplicate = errors.New("result already exists")
)
