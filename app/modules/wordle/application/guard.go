package wordleservice

import (
	"context"
	"errors"
	"fmt"
	"strings"

	wordledomain "github.com/Black-And-White-Club/wordle-bot/app/modules/wordle/domain"
	wordledb "github.com/Black-And-White-Club/wordle-bot/app/modules/wordle/infrastructure/repositories"
)

// DuplicateCheck is the outcome of a DuplicateGuard lookup.
type DuplicateCheck struct {
	IsDuplicate bool
	Existing    *wordledomain.Result
	Message     string
}

// DuplicateGuard rejects a second submission for the same (puzzle, player).
type DuplicateGuard struct {
	repo wordledb.Repository
}

func NewDuplicateGuard(repo wordledb.Repository) *DuplicateGuard {
	return &DuplicateGuard{repo: repo}
}

// Check looks up the stored result for (puzzle, player). The message quotes the stored
// score, not the one being resubmitted.
func (g *DuplicateGuard) Check(ctx context.Context, puzzle int, player string) (DuplicateCheck, error) {
	existing, err := g.repo.Get(ctx, puzzle, player)
	if err != nil {
		if errors.Is(err, wordledb.ErrNotFound) {
			return DuplicateCheck{}, nil
		}
		return DuplicateCheck{}, fmt.Errorf("DuplicateGuard.Check: %w", err)
	}
	return DuplicateCheck{
		IsDuplicate: true,
		Existing:    existing,
		Message:     DuplicateMessage(*existing),
	}, nil
}

// DuplicateMessage tells player which score is already on record.
func DuplicateMessage(existing wordledomain.Result) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s! You've solved Wordle %d already", existing.Player, existing.Puzzle)
	if existing.Failed() {
		b.WriteString(" (or at least tried to). ")
	} else {
		b.WriteString(". ")
	}
	fmt.Fprintf(&b, "The score you got was %s.", existing.FormatScore())
	return b.String()
}
