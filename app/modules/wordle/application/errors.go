package wordleservice

import "errors"

// Service errors. Resolution failures surface as puzzledate.ErrResolution and are
// not redeclared here.
var (
	// ErrInvalidSubmission indicates a submission that cannot be stored, such as one without a sender.
	ErrInvalidSubmission = errors.New("invalid submission")
)
