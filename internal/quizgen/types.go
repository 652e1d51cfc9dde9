package quizgen

import "github.com/devika/tutora/internal/quiz"

// Request holds all context needed to generate a quiz.
type Request struct {
	// LessonID is the lesson row the quiz belongs to.
	// Zero for ad-hoc quizzes with no saved lesson.
	LessonID int64

	// Topic is the subject the questions cover, e.g. "Photosynthesis"
	// or "The French Revolution".
	Topic string

	// Difficulty is the requested difficulty from 1 (easiest) to 5
	// (hardest). Out-of-range values get a moderate prompt descriptor.
	Difficulty int

	// LessonBody is optional lesson content the questions should be
	// based on. Only the first Config.MaxContentChars runes reach the
	// prompt.
	LessonBody string
}

// QuestionSet is a complete generated quiz ready for a session.
type QuestionSet struct {
	Questions []quiz.Question
}
