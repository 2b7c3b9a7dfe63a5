package wordledomain

import (
	"cmp"
	"fmt"
	"slices"
)

// RankingPolicy selects how the daily leaderboard numbers its rows.
type RankingPolicy string

const (
	// RankingPositional ranks every entry by its position, failures included.
	RankingPositional RankingPolicy = "positional"
	// RankingSolvedOnly numbers successful entries only; failures are marked and unranked.
	RankingSolvedOnly RankingPolicy = "solved_only"
)

// PointsPolicy selects how monthly points are awarded per puzzle.
type PointsPolicy string

const (
	// PointsLinear awards max_tries - score + 1 for every entry (0 on failure).
	PointsLinear PointsPolicy = "linear"
	// PointsPodium awards 3, 2 and 1 to the first three successful entries of a puzzle.
	PointsPodium PointsPolicy = "podium"
)

var podiumPoints = []int{3, 2, 1}

// ParseRankingPolicy validates a configured ranking policy name. Empty means positional.
func ParseRankingPolicy(s string) (RankingPolicy, error) {
	switch RankingPolicy(s) {
	case "", RankingPositional:
		return RankingPositional, nil
	case RankingSolvedOnly:
		return RankingSolvedOnly, nil
	}
	return "", fmt.Errorf("unknown ranking policy %q", s)
}

// ParsePointsPolicy validates a configured points policy name. Empty means linear.
func ParsePointsPolicy(s string) (PointsPolicy, error) {
	switch PointsPolicy(s) {
	case "", PointsLinear:
		return PointsLinear, nil
	case PointsPodium:
		return PointsPodium, nil
	}
	return "", fmt.Errorf("unknown points policy %q", s)
}

// SortByScore orders results ascending by score. The sort is stable, so callers
// that pass results in insertion order keep that order among equal scores.
func SortByScore(results []Result) {
	slices.SortStableFunc(results, func(a, b Result) int {
		return cmp.Compare(a.Score, b.Score)
	})
}

// RankDaily turns one puzzle's results, already ascending by score, into leaderboard rows.
func RankDaily(results []Result, policy RankingPolicy) []DailyRow {
	rows := make([]DailyRow, 0, len(results))
	next := 1
	for i, r := range results {
		row := DailyRow{
			Player:   r.Player,
			Score:    r.Score,
			MaxTries: r.MaxTries,
			Failed:   r.Failed(),
		}
		switch {
		case policy == RankingSolvedOnly && row.Failed:
			// unranked
		case policy == RankingSolvedOnly:
			row.Rank = next
			next++
		default:
			row.Rank = i + 1
		}
		rows = append(rows, row)
	}
	return rows
}

// PointAward is the points one player earned on one puzzle.
type PointAward struct {
	Player string
	Points int
}

// AwardPoints scores one puzzle's results, already ascending by score.
func AwardPoints(results []Result, policy PointsPolicy) []PointAward {
	awards := make([]PointAward, 0, len(results))
	podium := 0
	for _, r := range results {
		points := 0
		switch policy {
		case PointsPodium:
			if !r.Failed() && podium < len(podiumPoints) {
				points = podiumPoints[podium]
				podium++
			}
		default:
			points = r.MaxTries - r.Score + 1
		}
		awards = append(awards, PointAward{Player: r.Player, Points: points})
	}
	return awards
}

// Tally accumulates points per player while remembering first-appearance order.
type Tally struct {
	order  []string
	points map[string]int
}

// NewTally returns an empty Tally.
func NewTally() *Tally {
	return &Tally{points: make(map[string]int)}
}

// Add credits each award to its player.
func (t *Tally) Add(awards []PointAward) {
	for _, a := range awards {
		if _, seen := t.points[a.Player]; !seen {
			t.order = append(t.order, a.Player)
		}
		t.points[a.Player] += a.Points
	}
}

// Len is the number of distinct players seen.
func (t *Tally) Len() int {
	return len(t.order)
}

// Standings sorts players by points descending. Equal totals keep first-appearance order.
func (t *Tally) Standings() []Standing {
	standings := make([]Standing, 0, len(t.order))
	for _, player := range t.order {
		standings = append(standings, Standing{Player: player, Points: t.points[player]})
	}
	slices.SortStableFunc(standings, func(a, b Standing) int {
		return cmp.Compare(b.Points, a.Points)
	})
	for i := range standings {
		standings[i].Rank = i + 1
	}
	return standings
}
