package wordleservice

import (
	"context"
	"io"
	"log/slog"
	"sync"
	"time"

	wordledomain "github.com/Black-And-White-Club/wordle-bot/app/modules/wordle/domain"
	wordledb "github.com/Black-And-White-Club/wordle-bot/app/modules/wordle/infrastructure/repositories"
	"go.opentelemetry.io/otel/trace/noop"
)

var launch = time.Date(2021, time.June, 19, 0, 0, 0, 0, time.UTC)

// ------------------------
// Fake Resolver
// ------------------------

// FakeResolver dates puzzle n as launch + n days unless ResolveFunc is set.
type FakeResolver struct {
	calls []int

	ResolveFunc func(ctx context.Context, puzzleID int) (time.Time, error)
}

func (f *FakeResolver) Resolve(ctx context.Context, puzzleID int) (time.Time, error) {
	f.calls = append(f.calls, puzzleID)
	if f.ResolveFunc != nil {
		return f.ResolveFunc(ctx, puzzleID)
	}
	return launch.AddDate(0, 0, puzzleID), nil
}

// ------------------------
// Fake Repository
// ------------------------

// FakeRepository delegates to an in-memory store unless a Func override is set.
type FakeRepository struct {
	trace []string
	store *wordledb.MemoryRepository

	ExistsFunc   func(ctx context.Context, puzzle int, player string) (bool, error)
	GetFunc      func(ctx context.Context, puzzle int, player string) (*wordledomain.Result, error)
	InsertFunc   func(ctx context.Context, result *wordledomain.Result) error
	ByPuzzleFunc func(ctx context.Context, puzzle int) ([]wordledomain.Result, error)
	ByMonthFunc  func(ctx context.Context, month time.Month, year int) ([]wordledomain.Result, error)
}

func NewFakeRepository() *FakeRepository {
	return &FakeRepository{trace: []string{}, store: wordledb.NewMemoryRepository()}
}

// Trace returns the sequence of method calls made to the fake.
func (f *FakeRepository) Trace() []string {
	out := make([]string, len(f.trace))
	copy(out, f.trace)
	return out
}

func (f *FakeRepository) record(step string) {
	f.trace = append(f.trace, step)
}

func (f *FakeRepository) Exists(ctx context.Context, puzzle int, player string) (bool, error) {
	f.record("Exists")
	if f.ExistsFunc != nil {
		return f.ExistsFunc(ctx, puzzle, player)
	}
	return f.store.Exists(ctx, puzzle, player)
}

func (f *FakeRepository) Get(ctx context.Context, puzzle int, player string) (*wordledomain.Result, error) {
	f.record("Get")
	if f.GetFunc != nil {
		return f.GetFunc(ctx, puzzle, player)
	}
	return f.store.Get(ctx, puzzle, player)
}

func (f *FakeRepository) Insert(ctx context.Context, result *wordledomain.Result) error {
	f.record("Insert")
	if f.InsertFunc != nil {
		return f.InsertFunc(ctx, result)
	}
	return f.store.Insert(ctx, result)
}

func (f *FakeRepository) ByPuzzle(ctx context.Context, puzzle int) ([]wordledomain.Result, error) {
	f.record("ByPuzzle")
	if f.ByPuzzleFunc != nil {
		return f.ByPuzzleFunc(ctx, puzzle)
	}
	return f.store.ByPuzzle(ctx, puzzle)
}

func (f *FakeRepository) ByMonth(ctx context.Context, month time.Month, year int) ([]wordledomain.Result, error) {
	f.record("ByMonth")
	if f.ByMonthFunc != nil {
		return f.ByMonthFunc(ctx, month, year)
	}
	return f.store.ByMonth(ctx, month, year)
}

func (f *FakeRepository) Close() error {
	f.record("Close")
	return nil
}

var _ wordledb.Repository = (*FakeRepository)(nil)

// ------------------------
// Fake Metrics
// ------------------------

type FakeMetrics struct {
	mu       sync.Mutex
	attempts map[string]int
	failures map[string]int
	messages []string
}

func NewFakeMetrics() *FakeMetrics {
	return &FakeMetrics{attempts: map[string]int{}, failures: map[string]int{}}
}

func (m *FakeMetrics) RecordOperationAttempt(_ context.Context, op string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.attempts[op]++
}

func (m *FakeMetrics) RecordOperationSuccess(context.Context, string) {}

func (m *FakeMetrics) RecordOperationFailure(_ context.Context, op string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.failures[op]++
}

func (m *FakeMetrics) RecordOperationDuration(context.Context, string, time.Duration) {}

func (m *FakeMetrics) RecordMessage(_ context.Context, kind wordledomain.Kind, duplicate bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	label := kind.String()
	if duplicate {
		label += "/duplicate"
	}
	m.messages = append(m.messages, label)
}

// ------------------------
// Helpers
// ------------------------

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newTestService(repo wordledb.Repository, resolver DateResolver, ranking wordledomain.RankingPolicy, points wordledomain.PointsPolicy, metrics Metrics) *WordleService {
	return NewWordleService(
		repo,
		resolver,
		NewLeaderboardEngine(repo, ranking, points),
		testLogger(),
		metrics,
		noop.NewTracerProvider().Tracer("test"),
	)
}
