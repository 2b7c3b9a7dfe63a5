package wordleservice

import (
	"context"
	"fmt"
	"slices"
	"time"

	wordledomain "github.com/Black-And-White-Club/wordle-bot/app/modules/wordle/domain"
	wordledb "github.com/Black-And-White-Club/wordle-bot/app/modules/wordle/infrastructure/repositories"
)

// LeaderboardEngine builds daily and monthly boards from stored results.
type LeaderboardEngine struct {
	repo    wordledb.Repository
	ranking wordledomain.RankingPolicy
	points  wordledomain.PointsPolicy
}

func NewLeaderboardEngine(repo wordledb.Repository, ranking wordledomain.RankingPolicy, points wordledomain.PointsPolicy) *LeaderboardEngine {
	if ranking == "" {
		ranking = wordledomain.RankingPositional
	}
	if points == "" {
		points = wordledomain.PointsLinear
	}
	return &LeaderboardEngine{repo: repo, ranking: ranking, points: points}
}

// Daily ranks every result for puzzle. An unknown puzzle yields a board with no rows.
func (e *LeaderboardEngine) Daily(ctx context.Context, puzzle int) (wordledomain.DailyBoard, error) {
	results, err := e.repo.ByPuzzle(ctx, puzzle)
	if err != nil {
		return wordledomain.DailyBoard{}, fmt.Errorf("LeaderboardEngine.Daily: %w", err)
	}
	return wordledomain.DailyBoard{
		Puzzle: puzzle,
		Rows:   wordledomain.RankDaily(results, e.ranking),
	}, nil
}

// Monthly totals points over every puzzle dated in month/year. The bool is false when
// the month has no results at all.
func (e *LeaderboardEngine) Monthly(ctx context.Context, month time.Month, year int) (wordledomain.MonthlyBoard, bool, error) {
	results, err := e.repo.ByMonth(ctx, month, year)
	if err != nil {
		return wordledomain.MonthlyBoard{}, false, fmt.Errorf("LeaderboardEngine.Monthly: %w", err)
	}
	if len(results) == 0 {
		return wordledomain.MonthlyBoard{}, false, nil
	}

	byPuzzle := GroupByPuzzle(results)
	puzzles := make([]int, 0, len(byPuzzle))
	for p := range byPuzzle {
		puzzles = append(puzzles, p)
	}
	slices.Sort(puzzles)

	tally := wordledomain.NewTally()
	for _, p := range puzzles {
		group := byPuzzle[p]
		wordledomain.SortByScore(group)
		tally.Add(wordledomain.AwardPoints(group, e.points))
	}

	return wordledomain.MonthlyBoard{
		Month:     month,
		Year:      year,
		Puzzles:   puzzles,
		Standings: tally.Standings(),
	}, true, nil
}

// GroupByPuzzle buckets results by puzzle id, keeping their relative order.
func GroupByPuzzle(results []wordledomain.Result) map[int][]wordledomain.Result {
	out := make(map[int][]wordledomain.Result)
	for _, r := range results {
		out[r.Puzzle] = append(out[r.Puzzle], r)
	}
	return out
}
