package wordledomain

import (
	"fmt"
	"strings"
	"time"
)

// DailyRow is one line of a puzzle leaderboard. Rank is 0 when the row is unranked.
type DailyRow struct {
	Rank     int
	Player   string
	Score    int
	MaxTries int
	Failed   bool
}

// String renders a numbered row, or a ❌ row without a rank for an unranked failure.
func (r DailyRow) String() string {
	score := FormatScore(r.Score, r.MaxTries)
	if r.Rank == 0 {
		return fmt.Sprintf("❌ %s — %s", r.Player, score)
	}
	return fmt.Sprintf("%d. %s — %s", r.Rank, r.Player, score)
}

// DailyBoard is the ranking for a single puzzle.
type DailyBoard struct {
	Puzzle int
	Rows   []DailyRow
}

// Title is the header line of the board.
func (b DailyBoard) Title() string {
	return fmt.Sprintf("🎯 Wordle %d Leaderboard", b.Puzzle)
}

func (b DailyBoard) String() string {
	lines := make([]string, 0, len(b.Rows)+1)
	lines = append(lines, b.Title())
	for _, row := range b.Rows {
		lines = append(lines, row.String())
	}
	return strings.Join(lines, "\n")
}

// Standing is one player's accumulated monthly points.
type Standing struct {
	Rank   int
	Player string
	Points int
}

func (s Standing) String() string {
	return fmt.Sprintf("%d. %s — %d pts", s.Rank, s.Player, s.Points)
}

// MonthlyBoard is the point table for a calendar month.
type MonthlyBoard struct {
	Month     time.Month
	Year      int
	Puzzles   []int
	Standings []Standing
}

// Period renders "<Month> <Year>".
func (b MonthlyBoard) Period() string {
	return MonthPeriod(b.Month, b.Year)
}

// Title is the header line of the board.
func (b MonthlyBoard) Title() string {
	return fmt.Sprintf("🏆 Monthly Leaderboard (%s)", b.Period())
}

func (b MonthlyBoard) String() string {
	lines := make([]string, 0, len(b.Standings)+1)
	lines = append(lines, b.Title())
	for _, s := range b.Standings {
		lines = append(lines, s.String())
	}
	return strings.Join(lines, "\n")
}

// MonthPeriod renders "<Month> <Year>".
func MonthPeriod(month time.Month, year int) string {
	return fmt.Sprintf("%s %d", month, year)
}

// NoEntriesMessage is the reply for a monthly query that matched nothing.
func NoEntriesMessage(month time.Month, year int) string {
	return fmt.Sprintf("No entries found for %s.", MonthPeriod(month, year))
}
