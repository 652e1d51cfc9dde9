package lessons

import "time"

// Input holds the learner's request for a new lesson.
type Input struct {
	// Topic is the subject to teach, e.g. "Photosynthesis" or
	// "The French Revolution".
	Topic string

	// Difficulty is the requested difficulty from 1 (easiest) to 5
	// (hardest). Out-of-range values get an intermediate descriptor.
	Difficulty int
}

// Lesson is a generated lesson ready for display.
type Lesson struct {
	// ID is the database row ID. Zero when the lesson could not be
	// persisted.
	ID int64

	Topic      string
	Difficulty int

	// Body is the lesson text in the markup dialect the UI renders
	// (headings, lists, emphasis, code, blockquotes).
	Body string

	// Fallback marks canned content produced without an LLM.
	Fallback bool

	CreatedAt time.Time
}
