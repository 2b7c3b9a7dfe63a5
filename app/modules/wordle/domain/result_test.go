package wordledomain

import (
	"errors"
	"testing"
	"time"
)

func TestNewResultDerivesMonthAndYear(t *testing.T) {
	date := time.Date(2024, time.March, 1, 18, 30, 0, 0, time.FixedZone("EST", -5*3600))

	r, err := NewResult(1234, "alice", 3, 6, date)
	if err != nil {
		t.Fatalf("NewResult() error = %v", err)
	}
	if r.DateString() != "2024-03-01" {
		t.Errorf("DateString() = %q, want 2024-03-01", r.DateString())
	}
	if r.Month != "March" || r.Year != 2024 {
		t.Errorf("Month/Year = %s/%d, want March/2024", r.Month, r.Year)
	}
}

func TestResultValidate(t *testing.T) {
	tests := []struct {
		name    string
		score   int
		max     int
		wantErr error
	}{
		{name: "best", score: 1, max: 6},
		{name: "failure", score: 7, max: 6},
		{name: "zero", score: 0, max: 6, wantErr: ErrScoreOutOfRange},
		{name: "beyond failure", score: 8, max: 6, wantErr: ErrScoreOutOfRange},
		{name: "no tries", score: 1, max: 0, wantErr: ErrInvalidMaxTries},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Result{Score: tt.score, MaxTries: tt.max}.Validate()
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("Validate() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestFormatScore(t *testing.T) {
	if got := FormatScore(3, 6); got != "3/6" {
		t.Errorf("FormatScore(3, 6) = %q", got)
	}
	if got := FormatScore(7, 6); got != "X/6" {
		t.Errorf("FormatScore(7, 6) = %q", got)
	}
}

func TestParseMonthName(t *testing.T) {
	tests := []struct {
		in   string
		want time.Month
		ok   bool
	}{
		{in: "March", want: time.March, ok: true},
		{in: "march", want: time.March, ok: true},
		{in: "DECEMBER", want: time.December, ok: true},
		{in: "Marchh", ok: false},
		{in: "Mar", ok: false},
		{in: "", ok: false},
	}
	for _, tt := range tests {
		got, ok := ParseMonthName(tt.in)
		if ok != tt.ok || got != tt.want {
			t.Errorf("ParseMonthName(%q) = %v, %v; want %v, %v", tt.in, got, ok, tt.want, tt.ok)
		}
	}
}

func TestFrameAndExtractReply(t *testing.T) {
	text := "🎯 Wordle 1234 Leaderboard\n1. alice — 3/6"
	output := "Decoded message: ...\n" + FrameReply(text) + "trailing log line\n"

	got, ok := ExtractReply(output)
	if !ok {
		t.Fatal("ExtractReply() found no markers")
	}
	if got != text {
		t.Errorf("ExtractReply() = %q, want %q", got, text)
	}

	if _, ok := ExtractReply("no markers here"); ok {
		t.Error("ExtractReply() should fail without markers")
	}
}

func TestBoardsRender(t *testing.T) {
	daily := DailyBoard{Puzzle: 1234, Rows: []DailyRow{{Rank: 1, Player: "alice", Score: 3, MaxTries: 6}}}
	if got, want := daily.String(), "🎯 Wordle 1234 Leaderboard\n1. alice — 3/6"; got != want {
		t.Errorf("DailyBoard.String() = %q, want %q", got, want)
	}

	monthly := MonthlyBoard{Month: time.March, Year: 2024, Standings: []Standing{{Rank: 1, Player: "alice", Points: 4}}}
	if got, want := monthly.String(), "🏆 Monthly Leaderboard (March 2024)\n1. alice — 4 pts"; got != want {
		t.Errorf("MonthlyBoard.String() = %q, want %q", got, want)
	}

	if got := NoEntriesMessage(time.March, 2024); got != "No entries found for March 2024." {
		t.Errorf("NoEntriesMessage() = %q", got)
	}
}
