package wordledb

import (
	"context"
	"slices"
	"sync"
	"time"

	wordledomain "github.com/Black-And-White-Club/wordle-bot/app/modules/wordle/domain"
)

// MemoryRepository keeps results in process memory. Used by tests and dry runs.
type MemoryRepository struct {
	mu      sync.RWMutex
	results []wordledomain.Result
	index   map[string]int
	now     func() time.Time
}

var _ Repository = (*MemoryRepository)(nil)

func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{
		index: make(map[string]int),
		now:   func() time.Time { return time.Now().UTC() },
	}
}

func (r *MemoryRepository) Exists(_ context.Context, puzzle int, player string) (bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.index[wordledomain.ResultKey(puzzle, player)]
	return ok, nil
}

func (r *MemoryRepository) Get(_ context.Context, puzzle int, player string) (*wordledomain.Result, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	i, ok := r.index[wordledomain.ResultKey(puzzle, player)]
	if !ok {
		return nil, ErrNotFound
	}
	result := r.results[i]
	return &result, nil
}

func (r *MemoryRepository) Insert(_ context.Context, result *wordledomain.Result) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	key := result.Key()
	if _, ok := r.index[key]; ok {
		return ErrDuplicate
	}
	if result.SubmittedAt.IsZero() {
		result.SubmittedAt = r.now()
	}
	r.index[key] = len(r.results)
	r.results = append(r.results, *result)
	return nil
}

func (r *MemoryRepository) ByPuzzle(_ context.Context, puzzle int) ([]wordledomain.Result, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var out []wordledomain.Result
	for _, res := range r.results {
		if res.Puzzle == puzzle {
			out = append(out, res)
		}
	}
	wordledomain.SortByScore(out)
	return out, nil
}

func (r *MemoryRepository) ByMonth(_ context.Context, month time.Month, year int) ([]wordledomain.Result, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	name := month.String()
	out := slices.DeleteFunc(slices.Clone(r.results), func(res wordledomain.Result) bool {
		return res.Month != name || res.Year != year
	})
	return out, nil
}

func (r *MemoryRepository) Close() error { return nil }
