package puzzledate

import "errors"

var (
	// ErrNoData indicates the lookup has no puzzle for the requested date.
	ErrNoData = errors.New("no puzzle data for date")

	// ErrResolution wraps every failure to map a puzzle id to a date.
	// Callers treat it as a hard failure of the submission.
	ErrResolution = errors.New("puzzle date resolution failed")

	// ErrStepLimit indicates the walk exceeded its configured bound.
	ErrStepLimit = errors.New("resolution step limit exceeded")

	// ErrNonMonotonic indicates the walk revisited a date, so the lookup data is not
	// strictly increasing by one puzzle per day.
	ErrNonMonotonic = errors.New("lookup data is not monotonic")
)
