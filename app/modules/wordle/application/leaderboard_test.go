package wordleservice

import (
	"context"
	"fmt"
	"testing"
	"time"

	wordledomain "github.com/Black-And-White-Club/wordle-bot/app/modules/wordle/domain"
	"github.com/brianvoe/gofakeit/v7"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"
)

func seed(t *testing.T, repo *FakeRepository, puzzle int, entries ...string) {
	t.Helper()
	for _, e := range entries {
		var player, token string
		_, err := fmt.Sscanf(e, "%s %s", &player, &token)
		require.NoError(t, err)

		score := 7
		if token != "X" {
			_, err = fmt.Sscanf(token, "%d", &score)
			require.NoError(t, err)
		}
		r, err := wordledomain.NewResult(puzzle, player, score, 6, launch.AddDate(0, 0, puzzle))
		require.NoError(t, err)
		require.NoError(t, repo.Insert(context.Background(), &r))
	}
}

func TestLeaderboardEngine_Daily(t *testing.T) {
	repo := NewFakeRepository()
	seed(t, repo, 1000, "dave X", "alice 4", "bob 3", "carol 4", "erin X")

	tests := []struct {
		policy wordledomain.RankingPolicy
		want   string
	}{
		{
			policy: wordledomain.RankingPositional,
			want: "🎯 Wordle 1000 Leaderboard\n" +
				"1. bob — 3/6\n" +
				"2. alice — 4/6\n" +
				"3. carol — 4/6\n" +
				"4. dave — X/6\n" +
				"5. erin — X/6",
		},
		{
			policy: wordledomain.RankingSolvedOnly,
			want: "🎯 Wordle 1000 Leaderboard\n" +
				"1. bob — 3/6\n" +
				"2. alice — 4/6\n" +
				"3. carol — 4/6\n" +
				"❌ dave — X/6\n" +
				"❌ erin — X/6",
		},
	}

	for _, tt := range tests {
		t.Run(string(tt.policy), func(t *testing.T) {
			board, err := NewLeaderboardEngine(repo, tt.policy, wordledomain.PointsLinear).Daily(context.Background(), 1000)
			require.NoError(t, err)
			if diff := cmp.Diff(tt.want, board.String()); diff != "" {
				t.Errorf("daily board mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestLeaderboardEngine_DailyFailuresLast(t *testing.T) {
	repo := NewFakeRepository()
	seed(t, repo, 1000, "a X", "b 6", "c X", "d 1", "e 5", "f X", "g 2")

	board, err := NewLeaderboardEngine(repo, "", "").Daily(context.Background(), 1000)
	require.NoError(t, err)

	seenFailure := false
	prev := 0
	for _, row := range board.Rows {
		require.GreaterOrEqual(t, row.Score, prev, "scores must be non-decreasing")
		prev = row.Score
		if row.Failed {
			seenFailure = true
		} else {
			require.False(t, seenFailure, "success %s listed after a failure", row.Player)
		}
	}
}

func TestLeaderboardEngine_DailyUnknownPuzzle(t *testing.T) {
	board, err := NewLeaderboardEngine(NewFakeRepository(), "", "").Daily(context.Background(), 42)
	require.NoError(t, err)
	require.Empty(t, board.Rows)
	require.Equal(t, "🎯 Wordle 42 Leaderboard", board.String())
}

func TestLeaderboardEngine_Monthly(t *testing.T) {
	// 986 is 2024-03-01, 987 is 2024-03-02; 985 falls in February.
	repo := NewFakeRepository()
	seed(t, repo, 985, "alice 1")
	seed(t, repo, 986, "alice 4", "bob 2", "carol X", "dave 3")
	seed(t, repo, 987, "carol 3", "alice 3", "bob X")

	tests := []struct {
		policy wordledomain.PointsPolicy
		want   []wordledomain.Standing
	}{
		{
			// alice 3+4, bob 5+0, carol 0+4, dave 4
			policy: wordledomain.PointsLinear,
			want: []wordledomain.Standing{
				{Rank: 1, Player: "alice", Points: 7},
				{Rank: 2, Player: "bob", Points: 5},
				{Rank: 3, Player: "dave", Points: 4},
				{Rank: 4, Player: "carol", Points: 4},
			},
		},
		{
			// 986: bob 3, dave 2, alice 1; 987: carol 3, alice 2.
			// Equal totals keep first-appearance order.
			policy: wordledomain.PointsPodium,
			want: []wordledomain.Standing{
				{Rank: 1, Player: "bob", Points: 3},
				{Rank: 2, Player: "alice", Points: 3},
				{Rank: 3, Player: "carol", Points: 3},
				{Rank: 4, Player: "dave", Points: 2},
			},
		},
	}

	for _, tt := range tests {
		t.Run(string(tt.policy), func(t *testing.T) {
			board, ok, err := NewLeaderboardEngine(repo, "", tt.policy).Monthly(context.Background(), time.March, 2024)
			require.NoError(t, err)
			require.True(t, ok)
			require.Equal(t, []int{986, 987}, board.Puzzles)
			if diff := cmp.Diff(tt.want, board.Standings); diff != "" {
				t.Errorf("standings mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestLeaderboardEngine_MonthlyEmpty(t *testing.T) {
	repo := NewFakeRepository()
	seed(t, repo, 985, "alice 1")

	_, ok, err := NewLeaderboardEngine(repo, "", "").Monthly(context.Background(), time.March, 2024)
	require.NoError(t, err)
	require.False(t, ok)
}

func TestLeaderboardEngine_MonthlyLinearTotals(t *testing.T) {
	faker := gofakeit.New(7)
	repo := NewFakeRepository()
	want := map[string]int{}

	players := make([]string, 8)
	for i := range players {
		players[i] = fmt.Sprintf("%s-%d", faker.FirstName(), i)
	}

	// Puzzles 986..1016 cover March 2024.
	for puzzle := 986; puzzle <= 1016; puzzle++ {
		for _, player := range players {
			if faker.Bool() {
				continue
			}
			score := faker.IntRange(1, 7)
			r, err := wordledomain.NewResult(puzzle, player, score, 6, launch.AddDate(0, 0, puzzle))
			require.NoError(t, err)
			require.NoError(t, repo.Insert(context.Background(), &r))
			want[player] += 6 - score + 1
		}
	}

	board, ok, err := NewLeaderboardEngine(repo, "", wordledomain.PointsLinear).Monthly(context.Background(), time.March, 2024)
	require.NoError(t, err)
	require.True(t, ok)

	got := map[string]int{}
	for i, s := range board.Standings {
		got[s.Player] = s.Points
		if i > 0 {
			require.LessOrEqual(t, s.Points, board.Standings[i-1].Points)
		}
	}
	require.Equal(t, want, got)
}
