package quizgen

import (
	"context"
	"fmt"

	"github.com/devika/tutora/internal/quiz"
)

// Fallback implements Generator with a canned question set built from
// the request topic. It serves quizzes when no LLM provider is
// configured or generation fails, and never returns an error.
type Fallback struct {
	// Count is the number of questions to produce. Zero means the
	// default quiz length.
	Count int
}

// Generate returns a deterministic question set for the request topic.
func (f *Fallback) Generate(_ context.Context, req Request) (*QuestionSet, error) {
	topic := req.Topic
	if topic == "" {
		topic = "this topic"
	}

	all := []quiz.Question{
		{
			Prompt:  fmt.Sprintf("What is the main concept of %s?", topic),
			Options: []string{"Its core principles", "An unrelated field", "A single memorized fact", "Nothing in particular"},
			Correct: 0,
		},
		{
			Prompt:  fmt.Sprintf("What is a key concept in %s?", topic),
			Options: []string{"The fundamental building blocks", "Only obscure trivia", "Random guesswork", "Skipping the basics"},
			Correct: 0,
		},
		{
			Prompt:  fmt.Sprintf("What is an important aspect of %s?", topic),
			Options: []string{"How its parts relate to each other", "Ignoring definitions", "Learning it in one pass", "Avoiding examples"},
			Correct: 0,
		},
		{
			Prompt:  fmt.Sprintf("What would you like to learn more about regarding %s?", topic),
			Options: []string{"Basic concepts", "Advanced topics", "Practical applications", "Related subjects"},
			Correct: 0,
		},
		{
			Prompt:  fmt.Sprintf("Which approach helps most when studying %s?", topic),
			Options: []string{"Breaking it into smaller parts", "Memorizing without context", "Skipping the fundamentals", "Avoiding practice"},
			Correct: 0,
		},
	}

	count := f.Count
	if count <= 0 {
		count = DefaultConfig().QuestionCount
	}
	if count > len(all) {
		count = len(all)
	}

	return &QuestionSet{Questions: all[:count]}, nil
}
