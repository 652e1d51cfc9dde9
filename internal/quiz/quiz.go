// Package quiz implements the session controller for a single quiz attempt:
// one question at a time, revisable selection, scored submission, and a final
// report handed off to a recorder. The controller is a synchronous state
// machine driven by exactly one caller; it performs no I/O of its own except
// the fire-and-forget report dispatch at the end of a session.
package quiz

import (
	"context"
	"math"
	"time"
)

// Question is one multiple-choice question. Options holds at least two
// entries and Correct indexes the right one. Questions are immutable once
// handed to the controller.
type Question struct {
	Prompt  string   `json:"question"`
	Options []string `json:"options"`
	Correct int      `json:"correct_answer"`
}

// AnswerRecord is the immutable outcome of one submitted answer.
type AnswerRecord struct {
	Selected  int  `json:"selected"`
	Correct   int  `json:"correct"`
	IsCorrect bool `json:"is_correct"`
}

// Report is the terminal summary of a finished session. It is produced
// exactly once, when the last answer has been revealed and the session
// advances past it.
type Report struct {
	Score           int            `json:"score"`
	TotalQuestions  int            `json:"total_questions"`
	Percentage      int            `json:"percentage"`
	DurationSeconds int            `json:"duration_seconds"`
	Answers         []AnswerRecord `json:"answers"`
}

// Recorder persists a finished quiz's report. Implementations must be safe
// to call from a goroutine other than the controller's caller. A recorder
// failure never affects the controller: the report stays authoritative on
// this side.
type Recorder interface {
	RecordReport(ctx context.Context, lessonID int64, r *Report) error
}

// Percentage converts a score out of total into a whole percentage using
// round-half-up on the float quotient, so 5/8 is 63 and 1/3 is 33.
func Percentage(score, total int) int {
	if total <= 0 {
		return 0
	}
	return int(math.Floor(float64(score)/float64(total)*100 + 0.5))
}

// durationSeconds measures elapsed whole seconds, never negative.
func durationSeconds(from, to time.Time) int {
	d := to.Sub(from)
	if d < 0 {
		return 0
	}
	return int(d.Seconds())
}
