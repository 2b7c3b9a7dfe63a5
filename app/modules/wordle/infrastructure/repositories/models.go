package wordledb

import (
	"fmt"
	"time"

	wordledomain "github.com/Black-And-White-Club/wordle-bot/app/modules/wordle/domain"
	"github.com/uptrace/bun"
)

// Result is the relational row for one (puzzle, player) result.
type Result struct {
	bun.BaseModel `bun:"table:results,alias:r"`

	ID          int64     `bun:"id,pk,autoincrement"`
	Puzzle      int       `bun:"puzzle,notnull"`
	Player      string    `bun:"player,notnull"`
	Score       int       `bun:"score,notnull"`
	MaxTries    int       `bun:"max_tries,notnull"`
	Date        string    `bun:"date,notnull"` // YYYY-MM-DD
	Month       string    `bun:"month,notnull"`
	Year        int       `bun:"year,notnull"`
	SubmittedAt time.Time `bun:"submitted_at,notnull"`
}

func resultFromDomain(r *wordledomain.Result) *Result {
	return &Result{
		Puzzle:      r.Puzzle,
		Player:      r.Player,
		Score:       r.Score,
		MaxTries:    r.MaxTries,
		Date:        r.DateString(),
		Month:       r.Month,
		Year:        r.Year,
		SubmittedAt: r.SubmittedAt.UTC(),
	}
}

func (m *Result) toDomain() (wordledomain.Result, error) {
	date, err := wordledomain.ParseDate(m.Date)
	if err != nil {
		return wordledomain.Result{}, fmt.Errorf("result %d: %w", m.ID, err)
	}
	return wordledomain.Result{
		Puzzle:      m.Puzzle,
		Player:      m.Player,
		Score:       m.Score,
		MaxTries:    m.MaxTries,
		Date:        date,
		Month:       m.Month,
		Year:        m.Year,
		SubmittedAt: m.SubmittedAt,
	}, nil
}

func toDomainSlice(rows []Result) ([]wordledomain.Result, error) {
	out := make([]wordledomain.Result, 0, len(rows))
	for i := range rows {
		r, err := rows[i].toDomain()
		if err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, nil
}
