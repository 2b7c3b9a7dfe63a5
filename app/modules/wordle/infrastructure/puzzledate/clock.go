package puzzledate

import (
	"fmt"
	"strings"
	"time"

	wordledomain "github.com/Black-And-White-Club/wordle-bot/app/modules/wordle/domain"
	"github.com/olebedev/when"
	"github.com/olebedev/when/rules/common"
	"github.com/olebedev/when/rules/en"
)

// Clock supplies the default anchor date.
type Clock interface {
	Now() time.Time
}

// SystemClock reads the wall clock.
type SystemClock struct{}

func (SystemClock) Now() time.Time { return time.Now() }

// AnchorClock always returns the same instant.
type AnchorClock struct {
	anchor time.Time
}

// NewAnchorClock pins Now to t. A zero t pins the current time.
func NewAnchorClock(t time.Time) AnchorClock {
	if t.IsZero() {
		return AnchorClock{anchor: time.Now()}
	}
	return AnchorClock{anchor: t}
}

func (c AnchorClock) Now() time.Time { return c.anchor }

// ParseAnchor reads an anchor date given on the command line. It accepts an ISO
// date or a natural-language phrase ("yesterday", "last friday") relative to base.
func ParseAnchor(input string, base time.Time) (time.Time, error) {
	input = strings.TrimSpace(input)
	if input == "" {
		return wordledomain.CalendarDay(base), nil
	}
	if t, err := time.Parse(wordledomain.DateLayout, input); err == nil {
		return t, nil
	}

	w := when.New(nil)
	w.Add(en.All...)
	w.Add(common.All...)

	r, err := w.Parse(strings.ToLower(input), base)
	if err != nil {
		return time.Time{}, fmt.Errorf("parse anchor %q: %w", input, err)
	}
	if r == nil {
		return time.Time{}, fmt.Errorf("could not recognize anchor date %q", input)
	}
	return wordledomain.CalendarDay(r.Time), nil
}
