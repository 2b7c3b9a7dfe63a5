package wordleservice

import (
	"context"
	"time"

	wordledomain "github.com/Black-And-White-Club/wordle-bot/app/modules/wordle/domain"
)

// Service is the entry point shared by the CLI, HTTP and NATS transports.
type Service interface {
	// HandleMessage classifies text from sender and produces at most one reply.
	HandleMessage(ctx context.Context, in wordledomain.Inbound) (wordledomain.Reply, error)

	// DailyBoard returns the ranking for one puzzle.
	DailyBoard(ctx context.Context, puzzle int) (wordledomain.DailyBoard, error)

	// MonthlyReport returns the rendered monthly board, or the "No entries found" message.
	MonthlyReport(ctx context.Context, month time.Month, year int) (string, error)

	// MonthlyBoard returns the monthly standings; ok is false when the month has no results.
	MonthlyBoard(ctx context.Context, month time.Month, year int) (board wordledomain.MonthlyBoard, ok bool, err error)

	// MonthResults returns the raw results behind a monthly board, grouped by ascending puzzle.
	MonthResults(ctx context.Context, month time.Month, year int) ([]wordledomain.Result, error)
}

// DateResolver maps a puzzle id to its calendar date.
type DateResolver interface {
	Resolve(ctx context.Context, puzzleID int) (time.Time, error)
}

// Metrics receives service observations.
type Metrics interface {
	RecordOperationAttempt(ctx context.Context, operation string)
	RecordOperationSuccess(ctx context.Context, operation string)
	RecordOperationFailure(ctx context.Context, operation string)
	RecordOperationDuration(ctx context.Context, operation string, d time.Duration)
	RecordMessage(ctx context.Context, kind wordledomain.Kind, duplicate bool)
}

// NoopMetrics discards everything.
type NoopMetrics struct{}

func (NoopMetrics) RecordOperationAttempt(context.Context, string)                 {}
func (NoopMetrics) RecordOperationSuccess(context.Context, string)                 {}
func (NoopMetrics) RecordOperationFailure(context.Context, string)                 {}
func (NoopMetrics) RecordOperationDuration(context.Context, string, time.Duration) {}
func (NoopMetrics) RecordMessage(context.Context, wordledomain.Kind, bool)         {}
