package wordledb

import (
	"context"
	"time"

	wordledomain "github.com/Black-And-White-Club/wordle-bot/app/modules/wordle/domain"
)

// Repository persists Wordle results. Implementations must enforce uniqueness of
// (puzzle, player) on Insert and never overwrite an existing result.
//
// Error semantics:
//   - ErrNotFound: no result for the key
//   - ErrDuplicate: Insert rejected by the uniqueness constraint
//   - Other errors: infrastructure failures
type Repository interface {
	// Exists reports whether a result is stored for (puzzle, player).
	Exists(ctx context.Context, puzzle int, player string) (bool, error)

	// Get returns the stored result for (puzzle, player).
	Get(ctx context.Context, puzzle int, player string) (*wordledomain.Result, error)

	// Insert stores a new result. SubmittedAt is stamped when zero.
	Insert(ctx context.Context, result *wordledomain.Result) error

	// ByPuzzle returns every result for puzzle ascending by score, ties in insertion order.
	ByPuzzle(ctx context.Context, puzzle int) ([]wordledomain.Result, error)

	// ByMonth returns every result dated in the given month and year, in no particular order.
	ByMonth(ctx context.Context, month time.Month, year int) ([]wordledomain.Result, error)

	// Close releases the underlying handle.
	Close() error
}
