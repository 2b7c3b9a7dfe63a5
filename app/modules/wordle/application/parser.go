package wordleservice

import (
	"context"
	"regexp"
	"strconv"
	"strings"

	wordledomain "github.com/Black-And-White-Club/wordle-bot/app/modules/wordle/domain"
)

var (
	submissionPattern = regexp.MustCompile(`^Wordle (\d{1,3}(?:[,.]\d{3})+|\d+) ([Xx]|\d+)/(\d+)`)
	queryPattern      = regexp.MustCompile(`(?i)^Wordle Leaderboard (\w+) (\d{4})\b`)
)

// MessageParser classifies chat text as a score submission, a leaderboard query, or neither.
type MessageParser struct {
	resolver DateResolver
}

func NewMessageParser(resolver DateResolver) *MessageParser {
	return &MessageParser{resolver: resolver}
}

// Classify inspects text. The only error it returns is a date resolution failure for an
// otherwise valid submission; malformed input is reported as KindUnrecognized.
func (p *MessageParser) Classify(ctx context.Context, text string) (wordledomain.Classification, error) {
	text = strings.TrimSpace(text)

	if m := submissionPattern.FindStringSubmatch(text); m != nil {
		result, ok := parseSubmission(m)
		if !ok {
			return wordledomain.Classification{Kind: wordledomain.KindUnrecognized}, nil
		}
		date, err := p.resolver.Resolve(ctx, result.Puzzle)
		if err != nil {
			return wordledomain.Classification{}, err
		}
		result.SetDate(date)
		return wordledomain.Classification{
			Kind:       wordledomain.KindSubmission,
			Submission: &wordledomain.Submission{Result: result},
		}, nil
	}

	if m := queryPattern.FindStringSubmatch(text); m != nil {
		month, ok := wordledomain.ParseMonthName(m[1])
		if !ok {
			return wordledomain.Classification{Kind: wordledomain.KindUnrecognized}, nil
		}
		year, err := strconv.Atoi(m[2])
		if err != nil {
			return wordledomain.Classification{Kind: wordledomain.KindUnrecognized}, nil
		}
		return wordledomain.Classification{
			Kind:  wordledomain.KindQuery,
			Query: &wordledomain.LeaderboardQuery{Month: month, Year: year},
		}, nil
	}

	return wordledomain.Classification{Kind: wordledomain.KindUnrecognized}, nil
}

// parseSubmission converts the submission match groups. The date is filled in by the caller.
func parseSubmission(m []string) (wordledomain.Result, bool) {
	digits := strings.NewReplacer(",", "", ".", "").Replace(m[1])
	puzzle, err := strconv.Atoi(digits)
	if err != nil || puzzle < 0 {
		return wordledomain.Result{}, false
	}

	maxTries, err := strconv.Atoi(m[3])
	if err != nil || maxTries < 1 {
		return wordledomain.Result{}, false
	}

	score := maxTries + 1
	if !strings.EqualFold(m[2], wordledomain.FailureMarker) {
		score, err = strconv.Atoi(m[2])
		if err != nil || score < 1 || score > maxTries {
			return wordledomain.Result{}, false
		}
	}

	return wordledomain.Result{Puzzle: puzzle, Score: score, MaxTries: maxTries}, true
}
