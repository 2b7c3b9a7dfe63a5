package wordleservice

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"time"

	wordledomain "github.com/Black-And-White-Club/wordle-bot/app/modules/wordle/domain"
	wordledb "github.com/Black-And-White-Club/wordle-bot/app/modules/wordle/infrastructure/repositories"
	"github.com/Black-And-White-Club/wordle-bot/app/observability"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// WordleService implements the Service interface.
type WordleService struct {
	repo    wordledb.Repository
	parser  *MessageParser
	guard   *DuplicateGuard
	engine  *LeaderboardEngine
	logger  *slog.Logger
	metrics Metrics
	tracer  trace.Tracer
}

var _ Service = (*WordleService)(nil)

// NewWordleService creates a new WordleService.
func NewWordleService(
	repo wordledb.Repository,
	resolver DateResolver,
	engine *LeaderboardEngine,
	logger *slog.Logger,
	metrics Metrics,
	tracer trace.Tracer,
) *WordleService {
	if metrics == nil {
		metrics = NoopMetrics{}
	}
	return &WordleService{
		repo:    repo,
		parser:  NewMessageParser(resolver),
		guard:   NewDuplicateGuard(repo),
		engine:  engine,
		logger:  logger,
		metrics: metrics,
		tracer:  tracer,
	}
}

// operationFunc is the signature of a wrapped service operation.
type operationFunc[T any] func(ctx context.Context) (T, error)

// withTelemetry wraps a service operation with tracing, metrics, and panic recovery.
func withTelemetry[T any](
	s *WordleService,
	ctx context.Context,
	operationName string,
	attrs []attribute.KeyValue,
	op operationFunc[T],
) (result T, err error) {
	ctx, span := s.tracer.Start(ctx, operationName, trace.WithAttributes(
		append([]attribute.KeyValue{attribute.String("operation", operationName)}, attrs...)...,
	))
	defer span.End()

	s.metrics.RecordOperationAttempt(ctx, operationName)

	startTime := time.Now()
	defer func() {
		s.metrics.RecordOperationDuration(ctx, operationName, time.Since(startTime))
	}()

	s.logger.DebugContext(ctx, operationName+" triggered",
		slog.String("operation", operationName),
		observability.CorrelationAttr(ctx),
	)

	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("panic in %s: %v", operationName, r)
			s.logger.ErrorContext(ctx, "Critical panic recovered",
				slog.String("operation", operationName),
				observability.CorrelationAttr(ctx),
				slog.Any("error", err),
			)
			s.metrics.RecordOperationFailure(ctx, operationName)
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
			var zero T
			result = zero
		}
	}()

	result, err = op(ctx)
	if err != nil {
		wrappedErr := fmt.Errorf("%s: %w", operationName, err)
		s.logger.ErrorContext(ctx, "Operation failed with error",
			slog.String("operation", operationName),
			observability.CorrelationAttr(ctx),
			slog.Any("error", wrappedErr),
		)
		s.metrics.RecordOperationFailure(ctx, operationName)
		span.RecordError(wrappedErr)
		span.SetStatus(codes.Error, wrappedErr.Error())
		return result, wrappedErr
	}

	s.metrics.RecordOperationSuccess(ctx, operationName)
	return result, nil
}

// HandleMessage classifies the inbound text and produces the reply for it.
// Unrecognized text yields an empty reply and no error.
func (s *WordleService) HandleMessage(ctx context.Context, in wordledomain.Inbound) (wordledomain.Reply, error) {
	return withTelemetry(s, ctx, "HandleMessage", []attribute.KeyValue{
		attribute.String("sender", in.Sender),
	}, func(ctx context.Context) (wordledomain.Reply, error) {
		c, err := s.parser.Classify(ctx, in.Text)
		if err != nil {
			return wordledomain.Reply{}, err
		}

		var reply wordledomain.Reply
		switch c.Kind {
		case wordledomain.KindSubmission:
			reply, err = s.submit(ctx, in.Sender, c.Submission.Result)
		case wordledomain.KindQuery:
			var text string
			text, err = s.monthlyReport(ctx, c.Query.Month, c.Query.Year)
			reply = wordledomain.Reply{Kind: wordledomain.KindQuery, Text: text}
		default:
			reply = wordledomain.Reply{Kind: wordledomain.KindUnrecognized}
		}
		if err != nil {
			return wordledomain.Reply{}, err
		}

		s.metrics.RecordMessage(ctx, reply.Kind, reply.Duplicate)
		return reply, nil
	})
}

// submit stores result for player and reports the puzzle and month boards. A
// duplicate, whether seen by the guard or by the store constraint, yields the
// duplicate message instead.
func (s *WordleService) submit(ctx context.Context, player string, result wordledomain.Result) (wordledomain.Reply, error) {
	if player == "" {
		return wordledomain.Reply{}, fmt.Errorf("%w: missing sender", ErrInvalidSubmission)
	}
	result.Player = player
	if err := result.Validate(); err != nil {
		return wordledomain.Reply{}, fmt.Errorf("%w: %w", ErrInvalidSubmission, err)
	}

	check, err := s.guard.Check(ctx, result.Puzzle, player)
	if err != nil {
		return wordledomain.Reply{}, err
	}
	if check.IsDuplicate {
		return s.duplicateReply(ctx, check), nil
	}

	if err := s.repo.Insert(ctx, &result); err != nil {
		if !errors.Is(err, wordledb.ErrDuplicate) {
			return wordledomain.Reply{}, fmt.Errorf("store result: %w", err)
		}
		// Lost a race with a concurrent submission for the same key.
		check, err = s.guard.Check(ctx, result.Puzzle, player)
		if err != nil {
			return wordledomain.Reply{}, err
		}
		if !check.IsDuplicate {
			check = DuplicateCheck{IsDuplicate: true, Message: DuplicateMessage(result)}
		}
		return s.duplicateReply(ctx, check), nil
	}

	s.logger.InfoContext(ctx, "Stored Wordle result",
		slog.Int("puzzle", result.Puzzle),
		slog.String("player", player),
		slog.String("score", result.FormatScore()),
		slog.String("date", result.DateString()),
		observability.CorrelationAttr(ctx),
	)

	daily, err := s.engine.Daily(ctx, result.Puzzle)
	if err != nil {
		return wordledomain.Reply{}, err
	}
	monthly, err := s.monthlyReport(ctx, result.Date.Month(), result.Year)
	if err != nil {
		return wordledomain.Reply{}, err
	}

	return wordledomain.Reply{
		Kind: wordledomain.KindSubmission,
		Text: daily.String() + "\n\n" + monthly,
	}, nil
}

func (s *WordleService) duplicateReply(ctx context.Context, check DuplicateCheck) wordledomain.Reply {
	attrs := []any{observability.CorrelationAttr(ctx)}
	if check.Existing != nil {
		attrs = append(attrs,
			slog.Int("puzzle", check.Existing.Puzzle),
			slog.String("player", check.Existing.Player),
		)
	}
	s.logger.InfoContext(ctx, "Rejected duplicate submission", attrs...)

	return wordledomain.Reply{
		Kind:      wordledomain.KindSubmission,
		Text:      check.Message,
		Duplicate: true,
	}
}

func (s *WordleService) monthlyReport(ctx context.Context, month time.Month, year int) (string, error) {
	board, ok, err := s.engine.Monthly(ctx, month, year)
	if err != nil {
		return "", err
	}
	if !ok {
		return wordledomain.NoEntriesMessage(month, year), nil
	}
	return board.String(), nil
}

// DailyBoard returns the ranking for puzzle.
func (s *WordleService) DailyBoard(ctx context.Context, puzzle int) (wordledomain.DailyBoard, error) {
	return withTelemetry(s, ctx, "DailyBoard", []attribute.KeyValue{
		attribute.Int("puzzle", puzzle),
	}, func(ctx context.Context) (wordledomain.DailyBoard, error) {
		return s.engine.Daily(ctx, puzzle)
	})
}

// MonthlyReport returns the rendered monthly board or the "No entries found" message.
func (s *WordleService) MonthlyReport(ctx context.Context, month time.Month, year int) (string, error) {
	return withTelemetry(s, ctx, "MonthlyReport", []attribute.KeyValue{
		attribute.String("period", wordledomain.MonthPeriod(month, year)),
	}, func(ctx context.Context) (string, error) {
		return s.monthlyReport(ctx, month, year)
	})
}

// MonthlyBoard returns the point table for month/year.
func (s *WordleService) MonthlyBoard(ctx context.Context, month time.Month, year int) (wordledomain.MonthlyBoard, bool, error) {
	type monthly struct {
		board wordledomain.MonthlyBoard
		ok    bool
	}
	out, err := withTelemetry(s, ctx, "MonthlyBoard", []attribute.KeyValue{
		attribute.String("period", wordledomain.MonthPeriod(month, year)),
	}, func(ctx context.Context) (monthly, error) {
		board, ok, err := s.engine.Monthly(ctx, month, year)
		return monthly{board: board, ok: ok}, err
	})
	return out.board, out.ok, err
}

// MonthResults returns every result of month/year ordered by puzzle, then score.
func (s *WordleService) MonthResults(ctx context.Context, month time.Month, year int) ([]wordledomain.Result, error) {
	return withTelemetry(s, ctx, "MonthResults", []attribute.KeyValue{
		attribute.String("period", wordledomain.MonthPeriod(month, year)),
	}, func(ctx context.Context) ([]wordledomain.Result, error) {
		results, err := s.repo.ByMonth(ctx, month, year)
		if err != nil {
			return nil, err
		}
		slices.SortStableFunc(results, func(a, b wordledomain.Result) int {
			if a.Puzzle != b.Puzzle {
				return a.Puzzle - b.Puzzle
			}
			return a.Score - b.Score
		})
		return results, nil
	})
}
