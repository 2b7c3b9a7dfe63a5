package wordledomain

import (
	"strings"
	"time"
)

// Reply markers delimit the reply text inside surrounding process output.
const (
	ReplyStartMarker = "---Message Start---"
	ReplyEndMarker   = "---Message End---"
)

// Kind classifies an inbound message.
type Kind int

const (
	KindUnrecognized Kind = iota
	KindSubmission
	KindQuery
)

func (k Kind) String() string {
	switch k {
	case KindSubmission:
		return "submission"
	case KindQuery:
		return "query"
	default:
		return "unrecognized"
	}
}

// Inbound is a decoded chat message.
type Inbound struct {
	Sender string
	Text   string
	Chat   string
}

// Submission is a parsed score report. Result.Player is left empty for the caller to fill.
type Submission struct {
	Result Result
}

// LeaderboardQuery asks for the monthly table of a given month.
type LeaderboardQuery struct {
	Month time.Month
	Year  int
}

// Classification is the outcome of parsing one inbound text.
// Exactly one of Submission or Query is set, according to Kind.
type Classification struct {
	Kind       Kind
	Submission *Submission
	Query      *LeaderboardQuery
}

// Reply is the single text produced for an inbound message. Text is empty when
// the message was not recognized.
type Reply struct {
	Kind      Kind
	Text      string
	Duplicate bool
}

// Empty reports whether there is nothing to send back.
func (r Reply) Empty() bool {
	return r.Text == ""
}

// FrameReply wraps text in the start/end markers on their own lines.
func FrameReply(text string) string {
	return "\n" + ReplyStartMarker + "\n" + text + "\n" + ReplyEndMarker + "\n"
}

// ExtractReply returns the text between the first pair of reply markers in output.
func ExtractReply(output string) (string, bool) {
	start := strings.Index(output, ReplyStartMarker+"\n")
	if start < 0 {
		return "", false
	}
	rest := output[start+len(ReplyStartMarker)+1:]
	end := strings.Index(rest, "\n"+ReplyEndMarker)
	if end < 0 {
		return "", false
	}
	return rest[:end], true
}
