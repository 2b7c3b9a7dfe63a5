package puzzledate

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	wordledomain "github.com/Black-And-White-Club/wordle-bot/app/modules/wordle/domain"
)

// DefaultMaxSteps bounds a walk to roughly thirteen years of days.
const DefaultMaxSteps = 5000

// Metrics receives resolver observations.
type Metrics interface {
	RecordLookup(outcome string)
	RecordResolutionSteps(steps int)
}

type noopMetrics struct{}

func (noopMetrics) RecordLookup(string)       {}
func (noopMetrics) RecordResolutionSteps(int) {}

// Resolver maps puzzle ids to calendar dates by walking one day at a time from an
// anchor date. Puzzle ids increase by exactly one per day, so the walk moves toward
// the target and stops after |distance| steps.
type Resolver struct {
	lookup   Lookup
	clock    Clock
	maxSteps int
	logger   *slog.Logger
	metrics  Metrics
}

// Option customizes a Resolver.
type Option func(*Resolver)

// WithClock sets the source of the default anchor date.
func WithClock(c Clock) Option {
	return func(r *Resolver) { r.clock = c }
}

// WithMaxSteps bounds the number of lookups per resolution.
func WithMaxSteps(n int) Option {
	return func(r *Resolver) {
		if n > 0 {
			r.maxSteps = n
		}
	}
}

// WithMetrics records lookup outcomes and walk lengths.
func WithMetrics(m Metrics) Option {
	return func(r *Resolver) {
		if m != nil {
			r.metrics = m
		}
	}
}

// NewResolver creates a Resolver over lookup.
func NewResolver(lookup Lookup, logger *slog.Logger, opts ...Option) *Resolver {
	r := &Resolver{
		lookup:   lookup,
		clock:    SystemClock{},
		maxSteps: DefaultMaxSteps,
		logger:   logger,
		metrics:  noopMetrics{},
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Resolve returns the date of puzzleID, anchoring the walk at today.
func (r *Resolver) Resolve(ctx context.Context, puzzleID int) (time.Time, error) {
	return r.ResolveFrom(ctx, puzzleID, r.clock.Now())
}

// ResolveFrom returns the date of puzzleID, starting the walk at anchor.
func (r *Resolver) ResolveFrom(ctx context.Context, puzzleID int, anchor time.Time) (time.Time, error) {
	date := wordledomain.CalendarDay(anchor)
	seen := make(map[time.Time]int)

	for step := 0; step < r.maxSteps; step++ {
		if _, ok := seen[date]; ok {
			r.metrics.RecordLookup("non_monotonic")
			return time.Time{}, fmt.Errorf("%w: puzzle %d: revisited %s: %w",
				ErrResolution, puzzleID, date.Format(wordledomain.DateLayout), ErrNonMonotonic)
		}

		current, err := r.lookup.PuzzleID(ctx, date)
		if err != nil {
			r.metrics.RecordLookup("error")
			return time.Time{}, fmt.Errorf("%w: puzzle %d: %w", ErrResolution, puzzleID, err)
		}
		r.metrics.RecordLookup("ok")
		seen[date] = current

		r.logger.DebugContext(ctx, "Checked puzzle date",
			slog.String("date", date.Format(wordledomain.DateLayout)),
			slog.Int("puzzle_id", current),
			slog.Int("target", puzzleID),
		)

		switch {
		case current == puzzleID:
			r.metrics.RecordResolutionSteps(step + 1)
			return date, nil
		case current > puzzleID:
			date = date.AddDate(0, 0, -1)
		default:
			date = date.AddDate(0, 0, 1)
		}
	}

	r.metrics.RecordLookup("step_limit")
	return time.Time{}, fmt.Errorf("%w: puzzle %d after %d steps: %w", ErrResolution, puzzleID, r.maxSteps, ErrStepLimit)
}
