package wordledomain

import (
	"errors"
	"fmt"
	"strconv"
	"time"
)

// DateLayout is the ISO calendar date format results are stored and displayed with.
const DateLayout = "2006-01-02"

// FailureMarker is shown in place of the score for a failed attempt.
const FailureMarker = "X"

var (
	// ErrScoreOutOfRange indicates a score outside [1, max_tries+1].
	ErrScoreOutOfRange = errors.New("score out of range")

	// ErrInvalidMaxTries indicates a non-positive attempt cap.
	ErrInvalidMaxTries = errors.New("max tries must be positive")
)

// Result is one player's outcome for one puzzle.
//
// Score runs from 1 to MaxTries+1; MaxTries+1 encodes a failed attempt.
type Result struct {
	Puzzle      int
	Player      string
	Score       int
	MaxTries    int
	Date        time.Time
	Month       string
	Year        int
	SubmittedAt time.Time
}

// NewResult builds a Result for puzzle and stamps the month/year grouping keys from date.
func NewResult(puzzle int, player string, score, maxTries int, date time.Time) (Result, error) {
	r := Result{
		Puzzle:   puzzle,
		Player:   player,
		Score:    score,
		MaxTries: maxTries,
	}
	r.SetDate(date)
	if err := r.Validate(); err != nil {
		return Result{}, err
	}
	return r, nil
}

// SetDate normalizes date to a UTC calendar day and derives Month and Year from it.
func (r *Result) SetDate(date time.Time) {
	day := CalendarDay(date)
	r.Date = day
	r.Month = day.Month().String()
	r.Year = day.Year()
}

// Validate checks the score bounds.
func (r Result) Validate() error {
	if r.MaxTries < 1 {
		return ErrInvalidMaxTries
	}
	if r.Score < 1 || r.Score > r.MaxTries+1 {
		return fmt.Errorf("%w: %d not in [1, %d]", ErrScoreOutOfRange, r.Score, r.MaxTries+1)
	}
	return nil
}

// Failed reports whether the attempt ran out of tries.
func (r Result) Failed() bool {
	return r.Score > r.MaxTries
}

// Key returns the (puzzle, player) identity of the result.
func (r Result) Key() string {
	return ResultKey(r.Puzzle, r.Player)
}

// DateString returns the ISO form of Date.
func (r Result) DateString() string {
	return r.Date.Format(DateLayout)
}

// FormatScore renders the score as N/max or X/max.
func (r Result) FormatScore() string {
	return FormatScore(r.Score, r.MaxTries)
}

// FormatScore renders score as N/maxTries, or X/maxTries for a failed attempt.
func FormatScore(score, maxTries int) string {
	shown := strconv.Itoa(score)
	if score > maxTries {
		shown = FailureMarker
	}
	return shown + "/" + strconv.Itoa(maxTries)
}

// ResultKey is the unique identity of a result: "<puzzle>_<player>".
func ResultKey(puzzle int, player string) string {
	return strconv.Itoa(puzzle) + "_" + player
}

// CalendarDay truncates t to midnight UTC of its calendar date.
func CalendarDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// ParseDate parses an ISO calendar date.
func ParseDate(s string) (time.Time, error) {
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q: %w", s, err)
	}
	return t, nil
}
