package quiz

import (
	"context"
	"fmt"
	"log/slog"
	"time"
)

// recordTimeout bounds the background report dispatch.
const recordTimeout = 10 * time.Second

// Controller owns one quiz session from Start through Finished. It is not
// safe for concurrent use: the contract assumes a single logical caller
// driving operations strictly in sequence, matching one user answering one
// quiz. Starting a new session mid-quiz is a defined reset, not a race.
type Controller struct {
	recorder Recorder
	now      func() time.Time

	state     State
	lessonID  int64
	questions []Question
	current   int
	selected  int
	hasChoice bool
	answers   []AnswerRecord
	score     int
	startedAt time.Time
	report    *Report
}

// Option configures a Controller.
type Option func(*Controller)

// WithClock overrides the controller's time source.
func WithClock(now func() time.Time) Option {
	return func(c *Controller) { c.now = now }
}

// New creates an idle controller. recorder may be nil, in which case
// finished reports are simply not dispatched.
func New(recorder Recorder, opts ...Option) *Controller {
	c := &Controller{
		recorder: recorder,
		now:      time.Now,
		state:    StateIdle,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Start begins a fresh session over questions, discarding any session in
// progress. It is legal from every state; calling it from Finished (or
// mid-quiz) models a retake. An empty or malformed question set fails
// without touching the current session.
func (c *Controller) Start(lessonID int64, questions []Question) error {
	if len(questions) == 0 {
		return ErrEmptyQuestionSet
	}
	for i, q := range questions {
		if len(q.Options) < 2 {
			return fmt.Errorf("question %d has %d options: %w", i, len(q.Options), ErrInvalidQuestion)
		}
		if q.Correct < 0 || q.Correct >= len(q.Options) {
			return fmt.Errorf("question %d correct index %d: %w", i, q.Correct, ErrInvalidQuestion)
		}
	}

	c.lessonID = lessonID
	c.questions = questions
	c.current = 0
	c.hasChoice = false
	c.answers = nil
	c.score = 0
	c.startedAt = c.now()
	c.report = nil
	c.state = StateAwaitingSelection
	return nil
}

// SelectOption chooses an option for the current question. Re-selecting
// before submission overwrites the prior choice.
func (c *Controller) SelectOption(i int) error {
	if c.state != StateAwaitingSelection && c.state != StateAnswerSelected {
		return fmt.Errorf("select in state %s: %w", c.state, ErrInvalidTransition)
	}
	if i < 0 || i >= len(c.questions[c.current].Options) {
		return fmt.Errorf("option %d of %d: %w", i, len(c.questions[c.current].Options), ErrOptionOutOfRange)
	}
	c.selected = i
	c.hasChoice = true
	c.state = StateAnswerSelected
	return nil
}

// SubmitAnswer scores the current selection against the answer key, records
// it, and reveals correctness. One submission per question: a second submit
// without advancing fails with ErrAlreadySubmitted.
func (c *Controller) SubmitAnswer() error {
	switch c.state {
	case StateAnswerSelected:
		// fall through to scoring below
	case StateAwaitingSelection:
		return ErrNoSelection
	case StateAnswerRevealed:
		return ErrAlreadySubmitted
	default:
		return fmt.Errorf("submit in state %s: %w", c.state, ErrInvalidTransition)
	}

	q := c.questions[c.current]
	rec := AnswerRecord{
		Selected:  c.selected,
		Correct:   q.Correct,
		IsCorrect: c.selected == q.Correct,
	}
	c.answers = append(c.answers, rec)
	if rec.IsCorrect {
		c.score++
	}
	c.hasChoice = false
	c.state = StateAnswerRevealed
	return nil
}

// Advance moves past a revealed answer: to the next question, or after the
// last one to Finished, building the report and dispatching it to the
// recorder in the background. Recorder failures are logged, never surfaced;
// the report on this side stays authoritative either way.
func (c *Controller) Advance() error {
	if c.state != StateAnswerRevealed {
		return fmt.Errorf("advance in state %s: %w", c.state, ErrInvalidTransition)
	}

	if c.current+1 < len(c.questions) {
		c.current++
		c.state = StateAwaitingSelection
		return nil
	}

	c.current = len(c.questions)
	answers := make([]AnswerRecord, len(c.answers))
	copy(answers, c.answers)
	c.report = &Report{
		Score:           c.score,
		TotalQuestions:  len(c.questions),
		Percentage:      Percentage(c.score, len(c.questions)),
		DurationSeconds: durationSeconds(c.startedAt, c.now()),
		Answers:         answers,
	}
	c.state = StateFinished

	if c.recorder != nil {
		go dispatchReport(c.recorder, c.lessonID, c.report)
	}
	return nil
}

// dispatchReport runs on its own goroutine with a private copy of the
// report, so a retake cannot race the write.
func dispatchReport(rec Recorder, lessonID int64, r *Report) {
	ctx, cancel := context.WithTimeout(context.Background(), recordTimeout)
	defer cancel()

	cp := *r
	if err := rec.RecordReport(ctx, lessonID, &cp); err != nil {
		slog.Error("record quiz report failed",
			"lesson_id", lessonID,
			"score", r.Score,
			"error", err)
	}
}

// State returns the current lifecycle state.
func (c *Controller) State() State { return c.state }

// LessonID returns the lesson this session was started for.
func (c *Controller) LessonID() int64 { return c.lessonID }

// CurrentIndex returns the zero-based index of the question being served.
// Once finished it equals TotalQuestions.
func (c *Controller) CurrentIndex() int { return c.current }

// CurrentQuestion returns the question being served, or nil when the
// controller is idle or finished.
func (c *Controller) CurrentQuestion() *Question {
	if c.state == StateIdle || c.state == StateFinished {
		return nil
	}
	return &c.questions[c.current]
}

// SelectedOption returns the pending selection and whether one exists.
func (c *Controller) SelectedOption() (int, bool) {
	if !c.hasChoice {
		return 0, false
	}
	return c.selected, true
}

// Score returns the count of correct answers so far.
func (c *Controller) Score() int { return c.score }

// TotalQuestions returns the size of the active question set.
func (c *Controller) TotalQuestions() int { return len(c.questions) }

// Answers returns a copy of the records submitted so far.
func (c *Controller) Answers() []AnswerRecord {
	out := make([]AnswerRecord, len(c.answers))
	copy(out, c.answers)
	return out
}

// Report returns the terminal report, or nil before the session finishes.
func (c *Controller) Report() *Report { return c.report }

// StartedAt returns when the active session began.
func (c *Controller) StartedAt() time.Time { return c.startedAt }
